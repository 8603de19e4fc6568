package photoshop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// MemorySession is an in-process host. It backs --dry-run and tests: every
// operation is recorded, nothing leaves the process, and failures can be
// injected per operation.
type MemorySession struct {
	mu     sync.Mutex
	docs   []*MemoryDocument
	active *MemoryDocument
	closed bool

	// FailActive makes ActiveDocument return an error.
	FailActive error
	// FailAdd makes AddDocument return an error.
	FailAdd error
	// FailLayer makes AddLayer return an error.
	FailLayer error
	// FailScript, when set, is consulted for every executed script.
	FailScript func(script string) error

	scripts []string
	calls   int
}

// NewMemorySession returns an empty host with no open documents.
func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

// Open adds a document and makes it active, as if a user had opened it.
func (m *MemorySession) Open(spec DocumentSpec) *MemoryDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addLocked(spec)
}

func (m *MemorySession) addLocked(spec DocumentSpec) *MemoryDocument {
	d := &MemoryDocument{
		m: m,
		info: DocumentInfo{
			Name:       spec.Name,
			Width:      spec.Width,
			Height:     spec.Height,
			Resolution: spec.Resolution,
		},
	}
	m.docs = append(m.docs, d)
	m.active = d
	return d
}

func (m *MemorySession) ActiveDocument(ctx context.Context) (Document, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkLocked(ctx); err != nil {
		return nil, false, err
	}
	m.calls++
	if m.FailActive != nil {
		return nil, false, m.FailActive
	}
	if m.active == nil {
		return nil, false, nil
	}
	return m.active, true, nil
}

func (m *MemorySession) AddDocument(ctx context.Context, spec DocumentSpec) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkLocked(ctx); err != nil {
		return nil, err
	}
	m.calls++
	if m.FailAdd != nil {
		return nil, m.FailAdd
	}
	d := m.addLocked(spec)
	slog.Debug("memory_document_added", "name", spec.Name, "width", spec.Width, "height", spec.Height)
	return d, nil
}

func (m *MemorySession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MemorySession) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Documents returns the open documents in creation order.
func (m *MemorySession) Documents() []*MemoryDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MemoryDocument, len(m.docs))
	copy(out, m.docs)
	return out
}

// Scripts returns every script executed, in order.
func (m *MemorySession) Scripts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.scripts))
	copy(out, m.scripts)
	return out
}

// Calls counts every document and layer operation sent to the host.
func (m *MemorySession) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MemorySession) checkLocked(ctx context.Context) error {
	if m.closed {
		return fmt.Errorf("memory session closed")
	}
	return ctx.Err()
}

// MemoryDocument is a document held by a MemorySession.
type MemoryDocument struct {
	m      *MemorySession
	info   DocumentInfo
	layers []*MemoryLayer
}

func (d *MemoryDocument) Info() DocumentInfo { return d.info }

func (d *MemoryDocument) AddLayer(ctx context.Context) (Layer, error) {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()
	if err := d.m.checkLocked(ctx); err != nil {
		return nil, err
	}
	d.m.calls++
	if d.m.FailLayer != nil {
		return nil, d.m.FailLayer
	}
	l := &MemoryLayer{m: d.m, name: fmt.Sprintf("Layer %d", len(d.layers)+1)}
	d.layers = append(d.layers, l)
	d.m.active = d
	return l, nil
}

// Execute activates d and records script. A successful script fills the
// topmost layer.
func (d *MemoryDocument) Execute(ctx context.Context, script string) error {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()
	if err := d.m.checkLocked(ctx); err != nil {
		return err
	}
	d.m.calls++
	d.m.active = d
	d.m.scripts = append(d.m.scripts, script)
	slog.Debug("memory_script_executed", "document", d.info.Name, "script", script)

	if d.m.FailScript != nil {
		if err := d.m.FailScript(script); err != nil {
			return err
		}
	}
	if n := len(d.layers); n > 0 {
		d.layers[n-1].placed = true
	}
	return nil
}

// Layers returns the document's layers, bottom first.
func (d *MemoryDocument) Layers() []*MemoryLayer {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()
	out := make([]*MemoryLayer, len(d.layers))
	copy(out, d.layers)
	return out
}

// MemoryLayer is a layer of a MemoryDocument.
type MemoryLayer struct {
	m      *MemorySession
	name   string
	placed bool
}

func (l *MemoryLayer) Name() string {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.name
}

func (l *MemoryLayer) SetName(ctx context.Context, name string) error {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	if err := l.m.checkLocked(ctx); err != nil {
		return err
	}
	l.m.calls++
	l.name = name
	return nil
}

// Placed reports whether a place action filled this layer.
func (l *MemoryLayer) Placed() bool {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.placed
}
