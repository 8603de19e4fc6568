// Package ledger keeps the import results of the current process in an
// in-memory SQLite database. Nothing is written to disk; the data is gone
// once the ledger is closed.
package ledger

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/layerkit/psimport/pkg/errors"
	"github.com/layerkit/psimport/pkg/importer"
	_ "modernc.org/sqlite"
)

// Ledger records import results. It implements importer.Recorder.
type Ledger struct {
	db *sql.DB
}

var _ importer.Recorder = (*Ledger)(nil)

// New opens an empty in-memory ledger.
func New() (*Ledger, error) {
	slog.Debug("ledger_init")

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		slog.Error("ledger_open_failed", "error", err)
		return nil, errors.Wrap(err, "failed to open ledger")
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		slog.Error("ledger_schema_failed", "error", err)
		return nil, errors.Wrap(err, "failed to create ledger schema")
	}

	return &Ledger{db: db}, nil
}

// Close drops the ledger.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record inserts one result.
func (l *Ledger) Record(ctx context.Context, runID string, seq int, r importer.ImportResult) error {
	query := `
		INSERT INTO import_results (run_id, seq, path, layer_name, outcome, error_message)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := l.db.ExecContext(ctx, query, runID, seq, r.Path, r.LayerName, string(r.Outcome), r.Error)
	if err != nil {
		slog.Error("ledger_insert_failed", "run_id", runID, "seq", seq, "path", r.Path, "error", err)
		return errors.Wrap(err, "failed to record import result")
	}

	slog.Debug("ledger_result_recorded", "run_id", runID, "seq", seq, "outcome", r.Outcome)
	return nil
}

// Results returns a run's results in batch order.
func (l *Ledger) Results(ctx context.Context, runID string) ([]importer.ImportResult, error) {
	query := `
		SELECT path, layer_name, outcome, error_message
		FROM import_results WHERE run_id = ? ORDER BY seq
	`
	rows, err := l.db.QueryContext(ctx, query, runID)
	if err != nil {
		slog.Error("ledger_query_failed", "run_id", runID, "error", err)
		return nil, errors.Wrap(err, "failed to query results")
	}
	defer rows.Close()

	var results []importer.ImportResult
	for rows.Next() {
		var r importer.ImportResult
		var outcome string
		var errorMessage sql.NullString
		if err := rows.Scan(&r.Path, &r.LayerName, &outcome, &errorMessage); err != nil {
			return nil, errors.Wrap(err, "failed to scan result")
		}
		r.Outcome = importer.Outcome(outcome)
		r.Error = errorMessage.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}
	return results, nil
}

// Summary counts a run's outcomes.
func (l *Ledger) Summary(ctx context.Context, runID string) (Summary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN outcome = 'succeeded' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN outcome = 'failed' THEN 1 ELSE 0 END), 0)
		FROM import_results WHERE run_id = ?
	`
	var s Summary
	if err := l.db.QueryRowContext(ctx, query, runID).Scan(&s.Total, &s.Succeeded, &s.Failed); err != nil {
		slog.Error("ledger_summary_failed", "run_id", runID, "error", err)
		return Summary{}, errors.Wrap(err, "failed to summarise run")
	}
	return s, nil
}
