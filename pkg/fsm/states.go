package fsm

import (
	"context"
	"log/slog"
	"sync"

	"github.com/layerkit/psimport/pkg/imagepath"
	"github.com/layerkit/psimport/pkg/importer"
	"github.com/layerkit/psimport/pkg/photoshop"
)

// Machine holds the dependencies and run-scoped state of one import run.
// The resolved document is a live host handle, so it stays here instead
// of in the FSM response.
type Machine struct {
	batch *importer.Batch

	mu     sync.Mutex
	doc    photoshop.Document
	report *importer.Report
	fatal  error
}

// NewMachine creates a machine for one run of batch.
func NewMachine(batch *importer.Batch) *Machine {
	return &Machine{
		batch:  batch,
		report: &importer.Report{RunID: batch.RunID()},
	}
}

// Report returns the report accumulated so far and the fatal error, if any.
func (m *Machine) Report() (*importer.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := *m.report
	r.Results = append([]importer.ImportResult(nil), m.report.Results...)
	return &r, m.fatal
}

// filter keeps supported images only.
func (m *Machine) filter(paths []string, resp *RunResponse) {
	slog.Info("fsm_state_filter", "run_id", m.batch.RunID(), "selected", len(paths))

	resp.Paths = imagepath.Filter(paths)
	if len(resp.Paths) == 0 {
		resp.Status = StatusNothingToDo
		m.mu.Lock()
		m.report.NothingToDo = true
		m.mu.Unlock()
		slog.Info("batch_nothing_to_do", "run_id", m.batch.RunID(), "dropped", len(paths))
		return
	}

	resp.Status = StatusImporting
	slog.Info("selection_filtered", "run_id", m.batch.RunID(), "kept", len(resp.Paths), "dropped", len(paths)-len(resp.Paths))
}

// resolve obtains the target document. Skipped when there is nothing to do.
func (m *Machine) resolve(ctx context.Context, resp *RunResponse) error {
	if resp.Status == StatusNothingToDo {
		return nil
	}
	slog.Info("fsm_state_resolve_document", "run_id", m.batch.RunID())

	doc, err := m.batch.Resolve(ctx)
	if err != nil {
		return m.abortf(resp, err, "run %s", m.batch.RunID())
	}

	info := doc.Info()
	resp.Document = &info

	m.mu.Lock()
	m.doc = doc
	m.report.Document = &info
	m.mu.Unlock()
	return nil
}

// importAll places every filtered image in order. Image failures are
// counted, not returned.
func (m *Machine) importAll(ctx context.Context, resp *RunResponse) error {
	if resp.Status == StatusNothingToDo {
		return nil
	}
	slog.Info("fsm_state_import", "run_id", m.batch.RunID(), "image_count", len(resp.Paths))

	m.mu.Lock()
	doc := m.doc
	m.mu.Unlock()

	for i, path := range resp.Paths {
		if err := ctx.Err(); err != nil {
			return m.abortf(resp, err, "batch interrupted after %d of %d images", i, len(resp.Paths))
		}

		result := m.batch.ImportOne(ctx, doc, i, path)
		if result.OK() {
			resp.Succeeded++
		} else {
			resp.Failed++
		}

		m.mu.Lock()
		m.report.Results = append(m.report.Results, result)
		m.mu.Unlock()
	}
	return nil
}

func (m *Machine) complete(resp *RunResponse) {
	if resp.Status != StatusNothingToDo {
		resp.Status = StatusCompleted
	}
	slog.Info("fsm_complete",
		"run_id", m.batch.RunID(),
		"status", resp.Status,
		"succeeded", resp.Succeeded,
		"failed", resp.Failed)
}
