// Package dialog holds the user-facing collaborators of the interactive
// flow: the native file picker and modal notifications.
package dialog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ncruces/zenity"

	"github.com/layerkit/psimport/pkg/imagepath"
)

// Selector asks the user for files.
type Selector interface {
	Select(ctx context.Context) ([]string, error)
}

// FileSelector shows a native multi-select dialog limited to supported images.
type FileSelector struct {
	Title string
}

// NewFileSelector returns a selector whose dialog has the given title.
func NewFileSelector(title string) *FileSelector {
	return &FileSelector{Title: title}
}

// Select returns the chosen paths. Cancelling the dialog yields an empty
// selection, not an error.
func (s *FileSelector) Select(ctx context.Context) ([]string, error) {
	paths, err := zenity.SelectFileMultiple(
		zenity.Context(ctx),
		zenity.Title(s.Title),
		zenity.FileFilters{
			{Name: "Images", Patterns: imagepath.DialogPatterns(), CaseFold: true},
			{Name: "All files", Patterns: []string{"*.*"}},
		},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		slog.Info("file_selection_cancelled")
		return nil, nil
	}
	if err != nil {
		slog.Error("file_selection_failed", "error", err)
		return nil, err
	}

	slog.Info("files_selected", "count", len(paths))
	return paths, nil
}

// StaticSelector returns a fixed list. It stands in for the dialog when
// paths come from the command line.
type StaticSelector []string

func (s StaticSelector) Select(context.Context) ([]string, error) {
	out := make([]string, len(s))
	copy(out, s)
	return out, nil
}
