//go:build !windows

package photoshop

import (
	"context"
	"fmt"
	"runtime"

	"github.com/layerkit/psimport/pkg/errors"
)

// NewSession fails on platforms without COM automation.
func NewSession(ctx context.Context, progID string) (Session, error) {
	return nil, fmt.Errorf("photoshop automation on %s: %w", runtime.GOOS, errors.ErrNotSupported)
}
