// Package importer places image files into a host document as layers.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/layerkit/psimport/pkg/errors"
	"github.com/layerkit/psimport/pkg/photoshop"
)

// Resolver picks the document a batch is imported into.
type Resolver struct {
	spec photoshop.DocumentSpec
}

// NewResolver returns a resolver that creates documents from spec.
func NewResolver(spec photoshop.DocumentSpec) *Resolver {
	return &Resolver{spec: spec}
}

// Resolve returns the active document untouched, or creates one from the
// resolver's spec when the host has none open. Any failure wraps
// errors.ErrDocumentResolution.
func (r *Resolver) Resolve(ctx context.Context, session photoshop.Session) (photoshop.Document, error) {
	doc, ok, err := session.ActiveDocument(ctx)
	if err != nil {
		slog.Warn("active_document_query_failed", "error", err)
	}
	if ok {
		info := doc.Info()
		slog.Info("document_reused", "name", info.Name, "width", info.Width, "height", info.Height)
		return doc, nil
	}

	slog.Info("document_create_started",
		"name", r.spec.Name,
		"width", r.spec.Width,
		"height", r.spec.Height,
		"resolution", r.spec.Resolution)

	doc, cerr := session.AddDocument(ctx, r.spec)
	if cerr != nil {
		slog.Error("document_create_failed", "name", r.spec.Name, "error", cerr)
		return nil, fmt.Errorf("%w: %w", errors.ErrDocumentResolution, cerr)
	}

	slog.Info("document_created", "name", r.spec.Name)
	return doc, nil
}
