// Package export renders computed analytics snapshots and raw records
// into shareable documents. The formatters perform no analytics of
// their own; every number they emit was computed upstream.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/StrideHQ/stride-web/internal/analytics"
	"github.com/StrideHQ/stride-web/internal/models"
)

// Format selects an export rendering.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// ParseFormat validates a raw format string. Empty defaults to JSON.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatText:
		return Format(raw), nil
	default:
		return "", fmt.Errorf("unknown export format %q", raw)
	}
}

// ContentType returns the MIME type for the rendered document.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Metrics is the summary block embedded in the JSON document.
type Metrics struct {
	CompletionRate   float64 `json:"completion_rate"`
	VelocityThisWeek int     `json:"velocity_this_week"`
	CurrentStreak    int     `json:"current_streak"`
	TotalTasks       int     `json:"total_tasks"`
	CompletedTasks   int     `json:"completed_tasks"`
	OverdueTasks     int     `json:"overdue_tasks"`
}

// Document is the full JSON export payload.
type Document struct {
	Timestamp time.Time           `json:"timestamp"`
	Timeframe analytics.Timeframe `json:"timeframe"`
	Goals     []models.Goal       `json:"goals"`
	Subgoals  []models.Subgoal    `json:"subgoals"`
	Todos     []models.Task       `json:"todos"`
	Metrics   Metrics             `json:"metrics"`
}

// Exporter renders exports for one snapshot plus its raw records.
type Exporter struct {
	Snapshot *analytics.Snapshot
	Goals    []models.Goal
	Subgoals []models.Subgoal
	Tasks    []models.Task
}

// Render produces the document bytes for the requested format.
func (e *Exporter) Render(f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return e.renderCSV()
	case FormatText:
		return []byte(e.Summary()), nil
	default:
		return e.renderJSON()
	}
}

func (e *Exporter) renderJSON() ([]byte, error) {
	completionRate := 0.0
	if len(e.Tasks) > 0 {
		completionRate = float64(e.Snapshot.Overview.CompletedTasks) / float64(len(e.Tasks)) * 100
	}
	doc := Document{
		Timestamp: e.Snapshot.ComputedAt,
		Timeframe: e.Snapshot.Timeframe,
		Goals:     e.Goals,
		Subgoals:  e.Subgoals,
		Todos:     e.Tasks,
		Metrics: Metrics{
			CompletionRate:   completionRate,
			VelocityThisWeek: e.Snapshot.Overview.CompletedThisWeek,
			CurrentStreak:    e.Snapshot.Streaks.Current,
			TotalTasks:       e.Snapshot.Overview.TotalTasks,
			CompletedTasks:   e.Snapshot.Overview.CompletedTasks,
			OverdueTasks:     e.Snapshot.Overview.OverdueTasks,
		},
	}
	return json.MarshalIndent(doc, "", "  ")
}

// csvHeader is the fixed column order of the task CSV.
var csvHeader = []string{
	"Task Name", "Status", "Priority", "Category", "Start Date", "End Date",
	"Goal", "Subgoal", "Completion Rate", "Days to Complete",
}

func (e *Exporter) renderCSV() ([]byte, error) {
	goalNames := make(map[int64]string, len(e.Goals))
	for _, g := range e.Goals {
		goalNames[g.ID] = g.Name
	}
	subgoalNames := make(map[int64]string, len(e.Subgoals))
	for _, sg := range e.Subgoals {
		subgoalNames[sg.ID] = sg.Name
	}

	// The overall rate is repeated on every row; render it once so all
	// rows agree exactly.
	rate := percent(e.Snapshot.Overview.CompletedTasks, len(e.Tasks))

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range e.Tasks {
		status := "Pending"
		if t.Done {
			status = "Completed"
		}
		subgoal := ""
		if t.SubgoalID != nil {
			subgoal = subgoalNames[*t.SubgoalID]
		}
		category := ""
		if t.Category != nil {
			category = *t.Category
		}
		daysToComplete := 0
		if t.StartDate != nil && t.EndDate != nil {
			daysToComplete = int(math.Ceil(t.EndDate.Sub(*t.StartDate).Hours() / 24))
		}
		row := []string{
			t.Name,
			status,
			string(t.Priority),
			category,
			formatDate(t.StartDate),
			formatDate(t.EndDate),
			goalNames[t.GoalID],
			subgoal,
			rate,
			strconv.Itoa(daysToComplete),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Summary is the fixed 4-line plain-text digest used for sharing.
func (e *Exporter) Summary() string {
	return fmt.Sprintf(`Analytics Summary (%s):
- Completion Rate: %s
- Weekly Velocity: %d tasks
- Current Streak: %d days
- Generated: %s`,
		e.Snapshot.Timeframe,
		percent(e.Snapshot.Overview.CompletedTasks, len(e.Tasks)),
		e.Snapshot.Overview.CompletedThisWeek,
		e.Snapshot.Streaks.Current,
		e.Snapshot.ComputedAt.Format("2006-01-02"),
	)
}

// percent renders completed/total as a percentage with exactly one
// decimal place. decimal division avoids float formatting artifacts;
// the value is computed once and reused verbatim wherever it appears.
func percent(completed, total int) string {
	if total == 0 {
		return "0.0%"
	}
	rate := decimal.NewFromInt(int64(completed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100))
	return rate.StringFixed(1) + "%"
}

func formatDate(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format(time.RFC3339)
}
