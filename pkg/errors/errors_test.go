package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))

	err := Wrap(ErrDocumentResolution, "create document")
	assert.EqualError(t, err, "create document: document resolution failed")
	assert.True(t, Is(err, ErrDocumentResolution))
}

func TestWrapf(t *testing.T) {
	assert.Nil(t, Wrapf(nil, "image %d", 1))

	err := Wrapf(fmt.Errorf("boom"), "image %s", "a.png")
	assert.EqualError(t, err, "image a.png: boom")
}

func TestJoinKeepsSentinels(t *testing.T) {
	err := Join(ErrSessionUnavailable, ErrNotSupported)
	assert.True(t, Is(err, ErrSessionUnavailable))
	assert.True(t, Is(err, ErrNotSupported))
}
