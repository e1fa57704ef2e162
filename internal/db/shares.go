package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/StrideHQ/stride-web/internal/models"
)

// CreateExportShare records a stored export artifact under its token
func (db *DB) CreateExportShare(ctx context.Context, share models.ExportShare) error {
	query := `
		INSERT INTO export_shares (token, object_key, format, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := db.conn.ExecContext(ctx, query,
		share.Token, share.ObjectKey, share.Format, share.CreatedAt, share.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create export share: %w", err)
	}
	return nil
}

// GetExportShare looks up a share by token. Expired shares return
// ErrShareExpired; the row is left for the sweeper to collect.
func (db *DB) GetExportShare(ctx context.Context, token string, now time.Time) (*models.ExportShare, error) {
	query := `SELECT token, object_key, format, created_at, expires_at FROM export_shares WHERE token = $1`

	var share models.ExportShare
	err := db.conn.QueryRowContext(ctx, query, token).Scan(
		&share.Token,
		&share.ObjectKey,
		&share.Format,
		&share.CreatedAt,
		&share.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to get export share: %w", err)
	}

	if now.After(share.ExpiresAt) {
		return nil, ErrShareExpired
	}
	return &share, nil
}

// DeleteExportShare removes a share row by token
func (db *DB) DeleteExportShare(ctx context.Context, token string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM export_shares WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete export share: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrShareNotFound
	}
	return nil
}

// ListExpiredShares returns shares whose expiry has passed, for the
// background sweeper
func (db *DB) ListExpiredShares(ctx context.Context, now time.Time, limit int) ([]models.ExportShare, error) {
	query := `
		SELECT token, object_key, format, created_at, expires_at
		FROM export_shares
		WHERE expires_at < $1
		ORDER BY expires_at
		LIMIT $2
	`

	rows, err := db.conn.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired shares: %w", err)
	}
	defer rows.Close()

	shares := []models.ExportShare{}
	for rows.Next() {
		var share models.ExportShare
		if err := rows.Scan(&share.Token, &share.ObjectKey, &share.Format, &share.CreatedAt, &share.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan export share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shares, nil
}
