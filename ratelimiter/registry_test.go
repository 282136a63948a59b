package ratelimiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("http://nowhere:8188")
	assert.Error(t, err, "expected error for unknown endpoint")

	limiter := New(10)
	registry.Set("http://comfy:8188", limiter)

	retrieved, err := registry.Get("http://comfy:8188")
	require.NoError(t, err)
	assert.Same(t, limiter, retrieved)

	replacement := New(20)
	registry.Set("http://comfy:8188", replacement)

	retrieved, err = registry.Get("http://comfy:8188")
	require.NoError(t, err)
	assert.Same(t, replacement, retrieved)
}
