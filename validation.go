package comfyapi

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validation errors
var (
	ErrEmptyPrompt     = errors.New("prompt cannot be empty")
	ErrEmptyFilename   = errors.New("filename cannot be empty")
	ErrEmptyUploadData = errors.New("upload data cannot be empty")
	ErrUploadTooLarge  = errors.New("upload exceeds maximum size")
	ErrInvalidMIMEType = errors.New("invalid or unsupported MIME type")
)

// MaxUploadSize is the maximum allowed upload size in bytes (50MB).
const MaxUploadSize = 50 * 1024 * 1024

// ValidMIMETypes contains the image MIME types accepted for upload.
var ValidMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ValidatePrompt validates a prompt graph before submission.
func ValidatePrompt(prompt Prompt) error {
	if len(prompt) == 0 {
		return ErrEmptyPrompt
	}
	return nil
}

// ValidateUpload validates an upload's name and payload.
func ValidateUpload(name string, data []byte) error {
	if name == "" {
		return ErrEmptyFilename
	}
	if len(data) == 0 {
		return ErrEmptyUploadData
	}
	if len(data) > MaxUploadSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrUploadTooLarge, len(data), MaxUploadSize)
	}
	if mime := GetMIMEType(name); !ValidMIMETypes[mime] {
		return fmt.Errorf("%w: %s", ErrInvalidMIMEType, mime)
	}
	return nil
}

// GetMIMEType guesses a MIME type from a filename extension.
func GetMIMEType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}
