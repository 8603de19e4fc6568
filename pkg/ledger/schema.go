package ledger

// Schema creates the table of import results. Rows are only ever inserted.
const Schema = `
CREATE TABLE IF NOT EXISTS import_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    path TEXT NOT NULL,
    layer_name TEXT NOT NULL,
    outcome TEXT NOT NULL CHECK(outcome IN ('succeeded', 'failed')),
    error_message TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_import_results_run ON import_results(run_id, seq);
`

// Summary counts a run's outcomes.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
}
