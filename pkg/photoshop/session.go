// Package photoshop is the boundary to the host application's automation
// interface. A Session is acquired once per run and passed to everything
// that talks to the host; it must be closed when the run ends.
package photoshop

import "context"

// DefaultProgID is the COM programmatic identifier of the host.
const DefaultProgID = "Photoshop.Application"

// Defaults for documents created when none is active.
const (
	DefaultWidth      = 1920
	DefaultHeight     = 1080
	DefaultResolution = 72
	DefaultName       = "New Document"
)

// DocumentSpec describes a document to create.
type DocumentSpec struct {
	Width      float64
	Height     float64
	Resolution float64
	Name       string
}

// DefaultDocumentSpec returns the fixed defaults.
func DefaultDocumentSpec() DocumentSpec {
	return DocumentSpec{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Resolution: DefaultResolution,
		Name:       DefaultName,
	}
}

// DocumentInfo is a snapshot of a document's attributes.
type DocumentInfo struct {
	Name       string  `json:"name" yaml:"name"`
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	Resolution float64 `json:"resolution" yaml:"resolution"`
}

// Session is a handle to a running host instance.
type Session interface {
	// ActiveDocument returns the focused document. ok is false when the
	// host has no open document.
	ActiveDocument(ctx context.Context) (doc Document, ok bool, err error)

	// AddDocument creates a document, which becomes the active one.
	AddDocument(ctx context.Context, spec DocumentSpec) (Document, error)

	// Close releases the session. Documents stay open in the host.
	Close() error
}

// Document is an open document owned by the host.
type Document interface {
	Info() DocumentInfo

	// AddLayer creates an empty layer at the top of the document.
	AddLayer(ctx context.Context) (Layer, error)

	// Execute runs an ExtendScript payload with this document active.
	Execute(ctx context.Context, script string) error
}

// Layer is a layer within a Document.
type Layer interface {
	Name() string
	SetName(ctx context.Context, name string) error
}
