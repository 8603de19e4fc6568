package imagepath

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Validator checks that a selected file can be handed to the host.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator. A maxFileSize of zero disables the size check.
func NewValidator(maxFileSize int64) *Validator {
	slog.Debug("image_validator_init", "max_file_size_mb", maxFileSize/1024/1024)
	return &Validator{maxFileSize: maxFileSize}
}

// Validate checks extension, existence, file type and size.
func (v *Validator) Validate(path string) error {
	if !Supported(path) {
		slog.Warn("image_validation_failed", "path", path, "reason", "unsupported_extension")
		return fmt.Errorf("unsupported file type: %s (supported: %s)", path, strings.Join(Extensions(), ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		slog.Warn("image_validation_failed", "path", path, "reason", "stat_failed", "error", err)
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		slog.Warn("image_validation_failed", "path", path, "reason", "not_regular_file")
		return fmt.Errorf("not a regular file: %s", path)
	}

	return v.ValidateFileSize(info.Size())
}

// ValidateFileSize checks if a file exceeds the configured maximum.
func (v *Validator) ValidateFileSize(size int64) error {
	if v.maxFileSize > 0 && size > v.maxFileSize {
		slog.Warn("image_file_size_exceeded",
			"file_size_mb", size/1024/1024,
			"max_file_size_mb", v.maxFileSize/1024/1024)
		return fmt.Errorf("file size %d exceeds max %d", size, v.maxFileSize)
	}
	return nil
}
