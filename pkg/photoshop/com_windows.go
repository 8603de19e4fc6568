//go:build windows

package photoshop

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/layerkit/psimport/pkg/errors"
)

var errSessionClosed = fmt.Errorf("photoshop session closed")

// comSession talks to the host over COM. COM objects are apartment
// threaded, so every call runs on the single goroutine that initialised
// COM; callers hand work to it through calls.
type comSession struct {
	calls chan func()
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once

	// Touched only on the COM goroutine.
	app  *ole.IDispatch
	refs []*ole.VARIANT
}

// NewSession connects to the host identified by progID, starting it if needed.
func NewSession(ctx context.Context, progID string) (Session, error) {
	slog.Info("photoshop_session_init", "prog_id", progID, "platform", runtime.GOOS)

	s := &comSession{
		calls: make(chan func()),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	ready := make(chan error, 1)
	go s.loop(progID, ready)

	if err := <-ready; err != nil {
		slog.Error("photoshop_session_failed", "prog_id", progID, "error", err)
		return nil, err
	}

	slog.Info("photoshop_session_ready", "prog_id", progID)
	return s, nil
}

func (s *comSession) loop(progID string, ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(s.done)

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		ready <- errors.Wrap(err, "failed to initialise COM")
		return
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject(progID)
	if err != nil {
		ready <- errors.Wrapf(err, "failed to create %s", progID)
		return
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		ready <- errors.Wrapf(err, "failed to query dispatch for %s", progID)
		return
	}
	s.app = app

	defer func() {
		for i := len(s.refs) - 1; i >= 0; i-- {
			s.refs[i].Clear()
		}
		s.refs = nil
		s.app.Release()
	}()

	ready <- nil

	for {
		select {
		case fn := <-s.calls:
			fn()
		case <-s.quit:
			return
		}
	}
}

// do runs fn on the COM goroutine and waits for it. A cancelled context
// stops a call from being queued but never interrupts one in flight.
func (s *comSession) do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	call := func() {
		defer func() {
			if r := recover(); r != nil {
				errc <- fmt.Errorf("com call panicked: %v", r)
			}
		}()
		errc <- fn()
	}

	select {
	case s.calls <- call:
	case <-s.quit:
		return errSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-errc
}

// property reads an object-valued property and keeps it alive until Close.
func (s *comSession) property(obj *ole.IDispatch, name string) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(obj, name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s", name)
	}
	return s.keep(v, name)
}

// call invokes an object-returning method and keeps the result alive until Close.
func (s *comSession) call(obj *ole.IDispatch, name string, params ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.CallMethod(obj, name, params...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call %s", name)
	}
	return s.keep(v, name)
}

func (s *comSession) keep(v *ole.VARIANT, name string) (*ole.IDispatch, error) {
	d := v.ToIDispatch()
	if d == nil {
		v.Clear()
		return nil, fmt.Errorf("%s is not an object", name)
	}
	s.refs = append(s.refs, v)
	return d, nil
}

func (s *comSession) ActiveDocument(ctx context.Context) (Document, bool, error) {
	var doc *comDocument
	err := s.do(ctx, func() error {
		docs, err := s.property(s.app, "Documents")
		if err != nil {
			return err
		}
		count, err := oleutil.GetProperty(docs, "Count")
		if err != nil {
			return errors.Wrap(err, "failed to count documents")
		}
		n := number(count)
		count.Clear()
		if n == 0 {
			return nil
		}

		active, err := s.property(s.app, "ActiveDocument")
		if err != nil {
			return err
		}
		doc, err = s.document(active)
		return err
	})
	if err != nil {
		slog.Error("photoshop_active_document_failed", "error", err)
		return nil, false, err
	}
	if doc == nil {
		slog.Info("photoshop_no_active_document")
		return nil, false, nil
	}
	return doc, true, nil
}

func (s *comSession) AddDocument(ctx context.Context, spec DocumentSpec) (Document, error) {
	var doc *comDocument
	err := s.do(ctx, func() error {
		docs, err := s.property(s.app, "Documents")
		if err != nil {
			return err
		}
		added, err := s.call(docs, "Add", spec.Width, spec.Height, spec.Resolution, spec.Name)
		if err != nil {
			return err
		}
		doc, err = s.document(added)
		return err
	})
	if err != nil {
		slog.Error("photoshop_add_document_failed", "name", spec.Name, "error", err)
		return nil, err
	}
	return doc, nil
}

func (s *comSession) Close() error {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
		slog.Info("photoshop_session_closed")
	})
	return nil
}

func (s *comSession) document(disp *ole.IDispatch) (*comDocument, error) {
	d := &comDocument{s: s, disp: disp}

	name, err := oleutil.GetProperty(disp, "Name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read document name")
	}
	d.info.Name = name.ToString()
	name.Clear()

	for prop, dst := range map[string]*float64{
		"Width":      &d.info.Width,
		"Height":     &d.info.Height,
		"Resolution": &d.info.Resolution,
	} {
		v, err := oleutil.GetProperty(disp, prop)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read document %s", prop)
		}
		*dst = number(v)
		v.Clear()
	}
	return d, nil
}

type comDocument struct {
	s    *comSession
	disp *ole.IDispatch
	info DocumentInfo
}

func (d *comDocument) Info() DocumentInfo { return d.info }

func (d *comDocument) AddLayer(ctx context.Context) (Layer, error) {
	var layer *comLayer
	err := d.s.do(ctx, func() error {
		layers, err := d.s.property(d.disp, "ArtLayers")
		if err != nil {
			return err
		}
		added, err := d.s.call(layers, "Add")
		if err != nil {
			return err
		}
		layer = &comLayer{s: d.s, disp: added}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return layer, nil
}

// Execute activates d and runs script through DoJavaScript, which always
// targets the host's active document.
func (d *comDocument) Execute(ctx context.Context, script string) error {
	return d.s.do(ctx, func() error {
		a, err := oleutil.PutProperty(d.s.app, "ActiveDocument", d.disp)
		if err != nil {
			return errors.Wrap(err, "failed to activate document")
		}
		a.Clear()

		v, err := oleutil.CallMethod(d.s.app, "DoJavaScript", script)
		if err != nil {
			return errors.Wrap(err, "DoJavaScript failed")
		}
		v.Clear()
		return nil
	})
}

type comLayer struct {
	s    *comSession
	disp *ole.IDispatch
	name string
}

func (l *comLayer) Name() string { return l.name }

func (l *comLayer) SetName(ctx context.Context, name string) error {
	return l.s.do(ctx, func() error {
		v, err := oleutil.PutProperty(l.disp, "Name", name)
		if err != nil {
			return errors.Wrap(err, "failed to set layer name")
		}
		v.Clear()
		l.name = name
		return nil
	})
}

// number converts a numeric VARIANT to float64; anything else is 0.
func number(v *ole.VARIANT) float64 {
	switch n := v.Value().(type) {
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
