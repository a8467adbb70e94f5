package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthrokit/anthrokit/internal/model"
)

// StoredReliability pairs a saved reliability report with its row
// metadata.
type StoredReliability struct {
	// ID is the unique identifier of the session in the database.
	ID int64

	// Measurer identifies who took the replicate readings.
	Measurer string

	// RecordedAt is when the session was stored.
	RecordedAt time.Time

	// Report is the full per-site reliability report.
	Report model.ReliabilityReport
}

// SaveReliability stores a replicate-session reliability report.
// Sessions without a measurer are stored under the placeholder
// "anonymous", matching the assessment policy.
func (hdb *HistoryDB) SaveReliability(ctx context.Context, measurer string, report model.ReliabilityReport) (int64, error) {
	if measurer == "" {
		measurer = "anonymous"
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize reliability report: %w", err)
	}

	insert := `
	INSERT INTO replicate_sessions (measurer, overall, site_count, report_json)
	VALUES (?, ?, ?, ?)
	`
	result, err := hdb.db.ExecContext(ctx, insert,
		measurer,
		report.Overall.String(),
		len(report.Sites),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save reliability report: %w", err)
	}

	return result.LastInsertId()
}

// GetReliabilityHistory retrieves up to limit stored sessions for a
// measurer, newest first. A limit of 0 or less returns the full history.
func (hdb *HistoryDB) GetReliabilityHistory(ctx context.Context, measurer string, limit int) ([]StoredReliability, error) {
	if measurer == "" {
		measurer = "anonymous"
	}

	query := `
	SELECT id, measurer, recorded_at, report_json FROM replicate_sessions
	WHERE measurer = ?
	ORDER BY recorded_at DESC, id DESC
	`
	args := []any{measurer}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get reliability history: %w", err)
	}
	defer rows.Close()

	var sessions []StoredReliability
	for rows.Next() {
		var s StoredReliability
		var recordedAt string
		var reportJSON string

		if err := rows.Scan(&s.ID, &s.Measurer, &recordedAt, &reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan reliability session: %w", err)
		}

		s.RecordedAt = parseTimestamp(recordedAt)
		if err := json.Unmarshal([]byte(reportJSON), &s.Report); err != nil {
			continue // Skip malformed records
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
