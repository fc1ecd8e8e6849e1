package validator

import (
	"errors"
	"net/http"
	"strings"
)

// Default upload constraints
const (
	DefaultMaxUploadSize = 10 * 1024 * 1024 // 10MB
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file too large")
	ErrMissingType     = errors.New("missing content type")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// DefaultAllowedMimeTypes contains the default whitelist of image types for uploads.
var DefaultAllowedMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// UploadConfig defines constraints for file uploads.
type UploadConfig struct {
	MaxFileSize      int64
	AllowedMimeTypes map[string]bool
}

// DefaultUploadConfig returns the default upload configuration.
func DefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize:      DefaultMaxUploadSize,
		AllowedMimeTypes: DefaultAllowedMimeTypes,
	}
}

// NewUploadConfig builds constraints from configured values, falling back to defaults.
func NewUploadConfig(maxSize int64, allowed []string) *UploadConfig {
	cfg := DefaultUploadConfig()
	if maxSize > 0 {
		cfg.MaxFileSize = maxSize
	}
	if len(allowed) > 0 {
		cfg.AllowedMimeTypes = make(map[string]bool, len(allowed))
		for _, t := range allowed {
			cfg.AllowedMimeTypes[normalize(t)] = true
		}
	}
	return cfg
}

// ValidateFileSize checks if the file size is within the allowed limit.
func (c *UploadConfig) ValidateFileSize(size int64) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > c.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// ValidateMimeType checks if the MIME type is in the allowed whitelist.
func (c *UploadConfig) ValidateMimeType(mimeType string) error {
	normalized := normalize(mimeType)
	if normalized == "" {
		return ErrMissingType
	}
	if !c.AllowedMimeTypes[normalized] {
		return ErrUnsupportedType
	}
	return nil
}

// DetectAndValidateMimeType sniffs the leading bytes of the file. When the
// sniffer cannot name a specific type (text or binary fallback) the declared
// type is trusted.
func (c *UploadConfig) DetectAndValidateMimeType(head []byte, declaredType string) (string, error) {
	detected := normalize(http.DetectContentType(head))
	if detected == "application/octet-stream" || strings.HasPrefix(detected, "text/") {
		detected = normalize(declaredType)
	}
	if err := c.ValidateMimeType(detected); err != nil {
		return detected, err
	}
	return detected, nil
}

// Validate performs full validation on an upload.
func (c *UploadConfig) Validate(size int64, declaredType string, head []byte) (string, error) {
	if err := c.ValidateFileSize(size); err != nil {
		return "", err
	}
	if err := c.ValidateMimeType(declaredType); err != nil {
		return "", err
	}
	return c.DetectAndValidateMimeType(head, declaredType)
}

// normalize lowercases and strips parameters ("text/plain; charset=utf-8").
func normalize(mimeType string) string {
	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(normalized, ";"); idx > 0 {
		normalized = strings.TrimSpace(normalized[:idx])
	}
	return normalized
}
