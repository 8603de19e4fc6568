package imagepath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	require.NoError(t, os.WriteFile(good, []byte("0123456789"), 0o644))
	big := filepath.Join(dir, "big.jpg")
	require.NoError(t, os.WriteFile(big, make([]byte, 200), 0o644))
	sub := filepath.Join(dir, "folder.png")
	require.NoError(t, os.Mkdir(sub, 0o755))

	v := NewValidator(100)

	tests := []struct {
		name      string
		path      string
		shouldErr bool
	}{
		{"existing file", good, false},
		{"missing file", filepath.Join(dir, "missing.png"), true},
		{"unsupported", filepath.Join(dir, "notes.txt"), true},
		{"too large", big, true},
		{"directory", sub, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.path)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFileSizeUnlimited(t *testing.T) {
	v := NewValidator(0)
	assert.NoError(t, v.ValidateFileSize(1<<40))
}

func TestValidateUnsupportedListsExtensions(t *testing.T) {
	err := NewValidator(0).Validate("notes.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".jpg, .jpeg, .png, .psd, .tiff, .tif")
}
