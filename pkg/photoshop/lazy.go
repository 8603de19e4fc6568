package photoshop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/layerkit/psimport/pkg/errors"
)

// Opener acquires a session.
type Opener func(ctx context.Context) (Session, error)

// LazySession defers acquiring the host until the first call, so a run
// with nothing to import never starts the host. A failed acquisition is
// remembered and returned by every later call.
type LazySession struct {
	open Opener

	mu     sync.Mutex
	s      Session
	err    error
	tried  bool
	closed bool
}

// NewLazySession wraps open.
func NewLazySession(open Opener) *LazySession {
	return &LazySession{open: open}
}

func (l *LazySession) get(ctx context.Context) (Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, fmt.Errorf("%w: session closed", errors.ErrSessionUnavailable)
	}
	if !l.tried {
		l.tried = true
		s, err := l.open(ctx)
		if err != nil {
			slog.Error("session_acquire_failed", "error", err)
			l.err = fmt.Errorf("%w: %w", errors.ErrSessionUnavailable, err)
		} else {
			l.s = s
		}
	}
	return l.s, l.err
}

// Acquired reports whether the underlying session was opened.
func (l *LazySession) Acquired() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s != nil
}

func (l *LazySession) ActiveDocument(ctx context.Context) (Document, bool, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, false, err
	}
	return s.ActiveDocument(ctx)
}

func (l *LazySession) AddDocument(ctx context.Context, spec DocumentSpec) (Document, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.AddDocument(ctx, spec)
}

// Close releases the underlying session if one was acquired.
func (l *LazySession) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.s == nil {
		return nil
	}
	return l.s.Close()
}
