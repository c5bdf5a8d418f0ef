package syspal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Capability detection runs once, at construction, purely from what the
// injected provider implements.
func TestNewHandler_DetectsCapabilities(t *testing.T) {
	t.Parallel()

	caps := NewHandler(nil, &fakeUnix{}, Config{}).Capabilities()
	assert.Equal(t, Capabilities{}, caps)

	caps = NewHandler(nil, &fakeCloneUnix{fakeUnix: &fakeUnix{}}, Config{}).Capabilities()
	assert.True(t, caps.CloneFile)
	assert.False(t, caps.WholeFileCopy)
	assert.False(t, caps.VectoredIO)

	caps = NewHandler(nil, &fakeVectorUnix{fakeUnix: &fakeUnix{}}, Config{}).Capabilities()
	assert.True(t, caps.VectoredIO)
	assert.False(t, caps.CloneFile)
}

func TestNewHandler_DefaultsCopyBufferSize(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, &fakeUnix{}, Config{})
	assert.Equal(t, defaultCopyBufferSize, h.cfg.CopyBufferSize)

	h = NewHandler(nil, &fakeUnix{}, Config{CopyBufferSize: 1024})
	assert.Equal(t, 1024, h.cfg.CopyBufferSize)
}
