package importer

import (
	"context"
	"log/slog"

	"github.com/layerkit/psimport/pkg/errors"
	"github.com/layerkit/psimport/pkg/photoshop"
)

// Observer is told about each failed image as soon as it fails.
type Observer interface {
	ImportFailed(result ImportResult)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ImportResult)

func (f ObserverFunc) ImportFailed(r ImportResult) { f(r) }

// Recorder stores results as they are produced.
type Recorder interface {
	Record(ctx context.Context, runID string, seq int, result ImportResult) error
}

// Batch imports an ordered list of images into one resolved document.
type Batch struct {
	session  photoshop.Session
	resolver *Resolver
	importer *LayerImporter
	observer Observer
	recorder Recorder
	runID    string
}

// Option configures a Batch.
type Option func(*Batch)

// WithObserver reports each failure to o as it occurs.
func WithObserver(o Observer) Option {
	return func(b *Batch) { b.observer = o }
}

// WithRecorder stores every result in r.
func WithRecorder(r Recorder) Option {
	return func(b *Batch) { b.recorder = r }
}

// WithRunID tags the report and recorded results.
func WithRunID(id string) Option {
	return func(b *Batch) { b.runID = id }
}

// NewBatch creates a batch orchestrator over an acquired session.
func NewBatch(session photoshop.Session, resolver *Resolver, importer *LayerImporter, opts ...Option) *Batch {
	b := &Batch{
		session:  session,
		resolver: resolver,
		importer: importer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RunID returns the id given with WithRunID.
func (b *Batch) RunID() string { return b.runID }

// Run imports paths, which must already be filtered. An empty list touches
// nothing in the host and reports NothingToDo. A document resolution
// failure is returned as an error and no image is imported; individual
// image failures never stop the batch.
func (b *Batch) Run(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{RunID: b.runID}

	if len(paths) == 0 {
		slog.Info("batch_nothing_to_do", "run_id", b.runID)
		report.NothingToDo = true
		return report, nil
	}

	slog.Info("batch_started", "run_id", b.runID, "image_count", len(paths))

	doc, err := b.Resolve(ctx)
	if err != nil {
		return report, err
	}
	info := doc.Info()
	report.Document = &info

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			slog.Warn("batch_interrupted", "run_id", b.runID, "done", i, "remaining", len(paths)-i)
			return report, errors.Wrap(err, "batch interrupted")
		}
		report.Results = append(report.Results, b.ImportOne(ctx, doc, i, path))
	}

	slog.Info("batch_complete",
		"run_id", b.runID,
		"succeeded", len(report.Succeeded()),
		"failed", len(report.Failed()))
	return report, nil
}

// Resolve resolves the target document for this batch.
func (b *Batch) Resolve(ctx context.Context) (photoshop.Document, error) {
	return b.resolver.Resolve(ctx, b.session)
}

// ImportOne imports the seq-th image into doc, records the result and
// notifies the observer if it failed.
func (b *Batch) ImportOne(ctx context.Context, doc photoshop.Document, seq int, path string) ImportResult {
	result := b.importer.Import(ctx, doc, path)

	if b.recorder != nil {
		if err := b.recorder.Record(ctx, b.runID, seq, result); err != nil {
			slog.Warn("import_result_record_failed", "run_id", b.runID, "path", path, "error", err)
		}
	}
	if !result.OK() && b.observer != nil {
		b.observer.ImportFailed(result)
	}
	return result
}
