// Package fsm drives one import run through its states with the
// superfly/fsm library: filter the selection, resolve the target document,
// import every image, complete. Every error aborts; nothing is retried.
package fsm

import (
	"context"
	"fmt"

	"github.com/layerkit/psimport/pkg/errors"
	"github.com/superfly/fsm"
)

// Name is the registered FSM name.
const Name = "image-import"

// Register registers the import FSM
func (m *Machine) Register(ctx context.Context, manager *fsm.Manager) (fsm.Start[RunRequest, RunResponse], fsm.Resume, error) {
	start, resume, err := fsm.Register[RunRequest, RunResponse](manager, Name).
		Start(StateFilter, m.handleFilter).
		To(StateResolveDocument, m.handleResolveDocument).
		To(StateImport, m.handleImport).
		To(StateComplete, m.handleComplete).
		End(StateFailed).
		Build(ctx)

	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to register FSM")
	}

	return start, resume, nil
}

func response(req *fsm.Request[RunRequest, RunResponse]) *RunResponse {
	if req.W.Msg != nil {
		return req.W.Msg
	}
	return &RunResponse{}
}

func (m *Machine) handleFilter(ctx context.Context, req *fsm.Request[RunRequest, RunResponse]) (*fsm.Response[RunResponse], error) {
	resp := response(req)
	m.filter(req.Msg.Paths, resp)
	return fsm.NewResponse(resp), nil
}

func (m *Machine) handleResolveDocument(ctx context.Context, req *fsm.Request[RunRequest, RunResponse]) (*fsm.Response[RunResponse], error) {
	resp := response(req)
	if err := m.resolve(ctx, resp); err != nil {
		return nil, fsm.Abort(err)
	}
	return fsm.NewResponse(resp), nil
}

func (m *Machine) handleImport(ctx context.Context, req *fsm.Request[RunRequest, RunResponse]) (*fsm.Response[RunResponse], error) {
	resp := response(req)
	if err := m.importAll(ctx, resp); err != nil {
		return nil, fsm.Abort(err)
	}
	return fsm.NewResponse(resp), nil
}

func (m *Machine) handleComplete(ctx context.Context, req *fsm.Request[RunRequest, RunResponse]) (*fsm.Response[RunResponse], error) {
	resp := response(req)
	m.complete(resp)
	return fsm.NewResponse(resp), nil
}

// abortf records a fatal error for the run and returns it.
func (m *Machine) abortf(resp *RunResponse, err error, format string, args ...any) error {
	err = errors.Wrap(err, fmt.Sprintf(format, args...))
	resp.Status = StatusFailed
	resp.ErrorMessage = err.Error()

	m.mu.Lock()
	m.fatal = err
	m.mu.Unlock()
	return err
}
