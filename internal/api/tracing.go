package api

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SpanEnricher is a middleware that enriches the current span with
// analytics request parameters so traces can be sliced by timeframe,
// goal scope, and export format.
func SpanEnricher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		q := r.URL.Query()
		if tf := q.Get("timeframe"); tf != "" {
			span.SetAttributes(attribute.String("analytics.timeframe", tf))
		}
		if goalID := q.Get("goal_id"); goalID != "" {
			span.SetAttributes(attribute.String("analytics.goal_id", goalID))
		}
		if format := q.Get("format"); format != "" {
			span.SetAttributes(attribute.String("export.format", format))
		}

		next.ServeHTTP(w, r)
	})
}
