package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/layerkit/psimport/internal/config"
	"github.com/layerkit/psimport/pkg/importer"
	"github.com/layerkit/psimport/pkg/ledger"
	"github.com/layerkit/psimport/pkg/photoshop"
)

type recordingNotifier struct {
	warnings, errors, infos []string
}

func (n *recordingNotifier) Warning(msg string) { n.warnings = append(n.warnings, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }
func (n *recordingNotifier) Info(msg string)    { n.infos = append(n.infos, msg) }

func dryRunConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ProgID:        photoshop.DefaultProgID,
		DryRun:        true,
		DocWidth:      photoshop.DefaultWidth,
		DocHeight:     photoshop.DefaultHeight,
		DocResolution: photoshop.DefaultResolution,
		DocName:       photoshop.DefaultName,
		FSMDBPath:     t.TempDir(),
		LogLevel:      "error",
	}
}

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

func TestImportSelectionNotifies(t *testing.T) {
	paths := writeImages(t, "a.png", "b.jpg")
	paths = append(paths, filepath.Join(t.TempDir(), "gone.png"))

	r, err := newRunner(dryRunConfig(t))
	require.NoError(t, err)
	defer r.Close()

	n := &recordingNotifier{}
	report, summary, err := r.importSelection(context.Background(), paths, n)
	require.NoError(t, err)

	assert.Equal(t, ledger.Summary{Total: 3, Succeeded: 2, Failed: 1}, summary)
	assert.Equal(t, paths[2:], report.Failed())
	require.Len(t, n.errors, 1)
	assert.Contains(t, n.errors[0], "gone.png")
	require.Len(t, n.infos, 1)
	assert.Contains(t, n.infos[0], "2 imported, 1 failed")
	assert.Empty(t, n.warnings)
	assert.Len(t, r.memory.Scripts(), 2)

	recorded, err := r.ledger.Results(context.Background(), r.runID)
	require.NoError(t, err)
	assert.Equal(t, recorded, report.Results)
}

func TestImportSelectionEmptyWarns(t *testing.T) {
	r, err := newRunner(dryRunConfig(t))
	require.NoError(t, err)
	defer r.Close()

	n := &recordingNotifier{}
	report, _, err := r.importSelection(context.Background(), []string{"readme.txt"}, n)
	require.NoError(t, err)

	assert.True(t, report.NothingToDo)
	assert.Equal(t, []string{"No images selected"}, n.warnings)
	assert.Empty(t, n.infos)
	assert.Zero(t, r.memory.Calls())
}

func TestImportSelectionFatal(t *testing.T) {
	r, err := newRunner(dryRunConfig(t))
	require.NoError(t, err)
	defer r.Close()
	r.memory.FailAdd = assert.AnError

	n := &recordingNotifier{}
	_, _, err = r.importSelection(context.Background(), writeImages(t, "a.png"), n)
	require.Error(t, err)

	require.Len(t, n.errors, 1)
	assert.Contains(t, n.errors[0], "document resolution failed")
	assert.Empty(t, n.infos)
}

func sampleReport() (*importer.Report, ledger.Summary) {
	return &importer.Report{
			RunID:    "run-1",
			Document: &photoshop.DocumentInfo{Name: "New Document", Width: 1920, Height: 1080, Resolution: 72},
			Results: []importer.ImportResult{
				{Path: "/i/a.png", LayerName: "a.png", Outcome: importer.OutcomeSucceeded},
				{Path: "/i/b.png", LayerName: "b.png", Outcome: importer.OutcomeFailed, Error: "place rejected"},
			},
		},
		ledger.Summary{Total: 2, Succeeded: 1, Failed: 1}
}

func TestWriteReportText(t *testing.T) {
	report, summary := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "text", report, summary))

	out := buf.String()
	assert.Contains(t, out, "Document: New Document (1920x1080 @ 72 dpi)")
	assert.Contains(t, out, "✅ /i/a.png")
	assert.Contains(t, out, "❌ /i/b.png: place rejected")
	assert.True(t, strings.HasSuffix(out, "1 imported, 1 failed\n"))
}

func TestWriteReportNothingToDo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "text", &importer.Report{NothingToDo: true}, ledger.Summary{}))
	assert.Equal(t, "No images to import\n", buf.String())
}

func TestWriteReportStructured(t *testing.T) {
	report, summary := sampleReport()

	var jbuf bytes.Buffer
	require.NoError(t, writeReport(&jbuf, "json", report, summary))
	var fromJSON reportView
	require.NoError(t, json.Unmarshal(jbuf.Bytes(), &fromJSON))
	assert.Equal(t, "run-1", fromJSON.RunID)
	assert.Equal(t, summary, fromJSON.Summary)
	assert.Equal(t, report.Results, fromJSON.Results)

	var ybuf bytes.Buffer
	require.NoError(t, writeReport(&ybuf, "yaml", report, summary))
	assert.Contains(t, ybuf.String(), "layer_name: b.png")
	assert.Contains(t, ybuf.String(), "error: place rejected")

	var fromYAML reportView
	require.NoError(t, yaml.Unmarshal(ybuf.Bytes(), &fromYAML))
	assert.Equal(t, *report.Document, *fromYAML.Document)
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"text", "yaml", "json"} {
		assert.NoError(t, checkFormat(f))
	}
	assert.Error(t, checkFormat("xml"))
}
