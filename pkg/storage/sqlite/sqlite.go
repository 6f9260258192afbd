package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/absmach/fedwatch/pkg/errors"
	"github.com/absmach/fedwatch/pkg/storage"
	"github.com/absmach/fedwatch/snapshot"
)

type history struct {
	db *sql.DB
}

// NewHistory opens (creating if needed) a SQLite-backed history at path.
// Metrics and status are stored as JSON blobs; the error column and
// timestamp are queryable directly.
func NewHistory(path string) (storage.HistoryRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			metrics TEXT,
			status TEXT,
			error TEXT,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
	`); err != nil {
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &history{db: db}, nil
}

func (h *history) Append(ctx context.Context, record snapshot.Record) error {
	if record.ID == "" {
		return errors.ErrEmptyKey
	}

	metrics, err := marshalNullable(record.Metrics)
	if err != nil {
		return err
	}
	status, err := marshalNullable(record.Status)
	if err != nil {
		return err
	}

	_, err = h.db.ExecContext(ctx,
		`INSERT INTO history (id, metrics, status, error, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.ID, metrics, status, record.Error, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append history record: %w", err)
	}

	return nil
}

func (h *history) List(ctx context.Context, offset, limit uint64) (snapshot.HistoryPage, error) {
	var total uint64
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&total); err != nil {
		return snapshot.HistoryPage{}, fmt.Errorf("failed to count history records: %w", err)
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT id, metrics, status, error, created_at FROM history ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return snapshot.HistoryPage{}, fmt.Errorf("failed to list history records: %w", err)
	}
	defer rows.Close()

	page := snapshot.HistoryPage{
		Offset: offset,
		Limit:  limit,
		Total:  total,
	}
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return snapshot.HistoryPage{}, err
		}
		page.Records = append(page.Records, record)
	}

	return page, rows.Err()
}

func (h *history) Latest(ctx context.Context) (snapshot.Record, error) {
	row := h.db.QueryRowContext(ctx,
		`SELECT id, metrics, status, error, created_at FROM history ORDER BY created_at DESC LIMIT 1`,
	)

	record, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return snapshot.Record{}, errors.ErrNotFound
	}

	return record, err
}

func scanRecord(scan func(...any) error) (snapshot.Record, error) {
	var (
		record          snapshot.Record
		metrics, status sql.NullString
		createdAt       time.Time
	)
	if err := scan(&record.ID, &metrics, &status, &record.Error, &createdAt); err != nil {
		return snapshot.Record{}, err
	}
	record.CreatedAt = createdAt

	if metrics.Valid && metrics.String != "" {
		var m snapshot.Metrics
		if err := json.Unmarshal([]byte(metrics.String), &m); err != nil {
			return snapshot.Record{}, fmt.Errorf("failed to decode metrics column: %w", err)
		}
		record.Metrics = &m
	}
	if status.Valid && status.String != "" {
		var s snapshot.Status
		if err := json.Unmarshal([]byte(status.String), &s); err != nil {
			return snapshot.Record{}, fmt.Errorf("failed to decode status column: %w", err)
		}
		record.Status = &s
	}

	return record, nil
}

func marshalNullable(v any) (sql.NullString, error) {
	switch v := v.(type) {
	case *snapshot.Metrics:
		if v == nil {
			return sql.NullString{}, nil
		}
	case *snapshot.Status:
		if v == nil {
			return sql.NullString{}, nil
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}

	return sql.NullString{String: string(data), Valid: true}, nil
}
