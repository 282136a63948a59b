package comfyapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePrompt(t *testing.T) {
	assert.ErrorIs(t, ValidatePrompt(nil), ErrEmptyPrompt)
	assert.ErrorIs(t, ValidatePrompt(Prompt{}), ErrEmptyPrompt)
	assert.NoError(t, ValidatePrompt(Prompt{"1": map[string]any{}}))
}

func TestValidateUpload(t *testing.T) {
	assert.ErrorIs(t, ValidateUpload("", []byte("x")), ErrEmptyFilename)
	assert.ErrorIs(t, ValidateUpload("a.png", nil), ErrEmptyUploadData)
	assert.ErrorIs(t, ValidateUpload("a.bin", []byte("x")), ErrInvalidMIMEType)
	assert.ErrorIs(t, ValidateUpload("big.png", make([]byte, MaxUploadSize+1)), ErrUploadTooLarge)

	assert.NoError(t, ValidateUpload("a.png", []byte("x")))
	assert.NoError(t, ValidateUpload("photo.JPG", []byte("x")))
}

func TestGetMIMEType(t *testing.T) {
	tests := map[string]string{
		"a.png":     "image/png",
		"b.JPG":     "image/jpeg",
		"c.jpeg":    "image/jpeg",
		"d.webp":    "image/webp",
		"e.gif":     "image/gif",
		"f.mp4":     "video/mp4",
		"g.webm":    "video/webm",
		"h.unknown": "application/octet-stream",
	}
	for path, want := range tests {
		assert.Equal(t, want, GetMIMEType(path), "path %s", path)
	}
}
