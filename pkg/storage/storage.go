package storage

// Package storage defines the contract between the blogging host and its media
// storage backend. The host only ever talks to an Adapter; the S3 implementation
// lives in the s3 subpackage.

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
)

var (
	// ErrNotConfigured is returned when a required backend setting is missing.
	// No network call is attempted once it has been detected.
	ErrNotConfigured = errors.New("storage adapter is not configured")

	// ErrUnreadableFile is returned when the local upload cannot be read.
	ErrUnreadableFile = errors.New("upload file is not readable")
)

// UploadRequest describes one file handed over by the host for persistence.
// It is owned by a single Save call.
type UploadRequest struct {
	// Path is the local temp file written by the host.
	Path string
	// Name is the original file name as uploaded by the user.
	Name string
	// ContentType is the declared MIME type.
	ContentType string
	// TargetDir is the host-chosen directory (e.g. "2024/03").
	// Adapters fall back to the current year/month when empty.
	TargetDir string
}

// Adapter is the set of operations every media backend must provide.
type Adapter interface {
	// Save persists the file and returns its public URL.
	Save(ctx context.Context, req *UploadRequest) (string, error)

	// Serve returns a reusable middleware that streams stored objects.
	// On failure it sets 404 and hands control to the next handler.
	Serve() app.HandlerFunc

	// Exists reports whether an object is stored under the key (or public URL).
	Exists(ctx context.Context, ref string) (bool, error)

	// Delete removes the object stored under the key (or public URL).
	Delete(ctx context.Context, ref string) error
}
