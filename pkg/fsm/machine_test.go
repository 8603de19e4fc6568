package fsm

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	pserrors "github.com/layerkit/psimport/pkg/errors"
	"github.com/layerkit/psimport/pkg/imagepath"
	"github.com/layerkit/psimport/pkg/importer"
	"github.com/layerkit/psimport/pkg/photoshop"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImages(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte("img"), 0o644))
		paths = append(paths, p)
	}
	return paths
}

func newBatch(session photoshop.Session, opts ...importer.Option) *importer.Batch {
	opts = append([]importer.Option{importer.WithRunID("run-test")}, opts...)
	return importer.NewBatch(session,
		importer.NewResolver(photoshop.DefaultDocumentSpec()),
		importer.NewLayerImporter(imagepath.NewValidator(0), false),
		opts...)
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{DBPath: t.TempDir(), Logger: NewLogger("error")}
}

type syncRecorder struct {
	mu      sync.Mutex
	results []importer.ImportResult
}

func (s *syncRecorder) Record(_ context.Context, _ string, _ int, r importer.ImportResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func (s *syncRecorder) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

func TestMachineStatesNothingToDo(t *testing.T) {
	ctx := context.Background()
	m := photoshop.NewMemorySession()
	machine := NewMachine(newBatch(m))
	resp := &RunResponse{}

	machine.filter([]string{"notes.txt", "clip.gif"}, resp)
	require.NoError(t, machine.resolve(ctx, resp))
	require.NoError(t, machine.importAll(ctx, resp))
	machine.complete(resp)

	assert.Equal(t, StatusNothingToDo, resp.Status)
	assert.Empty(t, resp.Paths)
	assert.Zero(t, m.Calls())

	report, err := machine.Report()
	require.NoError(t, err)
	assert.True(t, report.NothingToDo)
}

func TestMachineStatesPartialFailure(t *testing.T) {
	ctx := context.Background()
	paths := writeImages(t, "good1.jpg", "bad.jpg", "notes.txt", "good2.jpg")
	m := photoshop.NewMemorySession()
	m.FailScript = func(script string) error {
		if strings.Contains(script, "bad.jpg") {
			return errors.New("place rejected")
		}
		return nil
	}
	machine := NewMachine(newBatch(m))
	resp := &RunResponse{}

	machine.filter(paths, resp)
	require.NoError(t, machine.resolve(ctx, resp))
	require.NoError(t, machine.importAll(ctx, resp))
	machine.complete(resp)

	assert.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, []string{paths[0], paths[1], paths[3]}, resp.Paths)
	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	require.NotNil(t, resp.Document)
	assert.Equal(t, photoshop.DefaultName, resp.Document.Name)

	report, err := machine.Report()
	require.NoError(t, err)
	assert.Equal(t, []string{paths[0], paths[3]}, report.Succeeded())
	assert.Equal(t, []string{paths[1]}, report.Failed())
}

func TestMachineStatesResolveFailure(t *testing.T) {
	ctx := context.Background()
	paths := writeImages(t, "a.png")
	m := photoshop.NewMemorySession()
	m.FailActive = errors.New("none")
	m.FailAdd = errors.New("refused")
	machine := NewMachine(newBatch(m))
	resp := &RunResponse{}

	machine.filter(paths, resp)
	err := machine.resolve(ctx, resp)
	require.Error(t, err)
	assert.True(t, pserrors.Is(err, pserrors.ErrDocumentResolution))
	assert.Equal(t, StatusFailed, resp.Status)
	assert.NotEmpty(t, resp.ErrorMessage)

	report, fatal := machine.Report()
	assert.Equal(t, err, fatal)
	assert.Empty(t, report.Results)
}

func TestRun(t *testing.T) {
	paths := writeImages(t, "one.png", "two.psd")
	m := photoshop.NewMemorySession()

	report, err := Run(context.Background(), testConfig(t), newBatch(m), append(paths, "skip.bmp"))
	require.NoError(t, err)

	assert.Equal(t, "run-test", report.RunID)
	assert.Equal(t, paths, report.Succeeded())
	assert.Empty(t, report.Failed())
	assert.Len(t, m.Scripts(), 2)
}

func TestRunDocumentFailure(t *testing.T) {
	paths := writeImages(t, "one.png")
	m := photoshop.NewMemorySession()
	m.FailActive = errors.New("none")
	m.FailAdd = errors.New("refused")

	report, err := Run(context.Background(), testConfig(t), newBatch(m), paths)
	require.Error(t, err)
	assert.True(t, pserrors.Is(err, pserrors.ErrDocumentResolution))
	assert.Empty(t, report.Results)
	assert.Empty(t, m.Scripts())
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"loud", logrus.InfoLevel},
	}
	for _, tt := range tests {
		logger := NewLogger(tt.level)
		assert.Equal(t, tt.want, logger.GetLevel(), tt.level)
		assert.Equal(t, os.Stderr, logger.Out)
	}
}

func TestRunHonoursLoggerLevel(t *testing.T) {
	paths := writeImages(t, "one.png")

	var quiet bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&quiet)
	logger.SetLevel(logrus.ErrorLevel)

	_, err := Run(context.Background(), Config{DBPath: t.TempDir(), Logger: logger}, newBatch(photoshop.NewMemorySession()), paths)
	require.NoError(t, err)
	assert.Empty(t, quiet.String())

	var verbose bytes.Buffer
	logger.SetOutput(&verbose)
	logger.SetLevel(logrus.InfoLevel)

	_, err = Run(context.Background(), Config{DBPath: t.TempDir(), Logger: logger}, newBatch(photoshop.NewMemorySession()), paths)
	require.NoError(t, err)
	assert.NotEmpty(t, verbose.String())
}

func TestRunCancelledReportMatchesRecorded(t *testing.T) {
	paths := writeImages(t, "1.png", "2.png", "3.png", "4.png")
	m := photoshop.NewMemorySession()
	rec := &syncRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.FailScript = func(string) error {
		cancel()
		return nil
	}

	report, _ := Run(ctx, testConfig(t), newBatch(m, importer.WithRecorder(rec)), paths)

	require.NotNil(t, report)
	assert.Equal(t, rec.len(), len(report.Results))
	assert.NotEmpty(t, report.Results)
}
