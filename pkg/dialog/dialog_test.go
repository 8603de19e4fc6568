package dialog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSelectorReturnsCopy(t *testing.T) {
	s := StaticSelector{"a.png", "b.txt"}

	got, err := s.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.txt"}, got)

	got[0] = "changed"
	assert.Equal(t, "a.png", s[0])
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	n.Warning("No images selected")
	n.Error("Failed to import image: a.png")
	n.Info("Image import complete")

	out := buf.String()
	assert.Contains(t, out, `level=WARN msg=notify message="No images selected"`)
	assert.Contains(t, out, `level=ERROR msg=notify message="Failed to import image: a.png"`)
	assert.Contains(t, out, `level=INFO msg=notify message="Image import complete"`)
}

func TestNotifiersImplementInterface(t *testing.T) {
	var _ Notifier = LogNotifier{}
	var _ Notifier = NewModalNotifier("t")
	var _ Selector = NewFileSelector("t")
	var _ Selector = StaticSelector(nil)
}
