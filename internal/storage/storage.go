package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains blob storage abstractions for managed uploads.
// Backends: an S3-compatible object store (MinIO) and an afero filesystem
// (local directory or in-memory).

var (
	// ErrNotFound is returned when a key does not exist in the backend.
	ErrNotFound = errors.New("storage: object not found")
	// ErrPresignUnsupported is returned by backends that cannot hand out
	// direct download URLs. Callers stream through Get instead.
	ErrPresignUnsupported = errors.New("storage: presigned urls not supported")
	// ErrExists is returned by Put when the key is already taken.
	ErrExists = errors.New("storage: object already exists")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob store used for managed assets.
type Storage interface {
	// Put writes an object under key. Keys are bare file names.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get returns a streaming reader for key. Missing keys yield ErrNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes key. Missing keys yield ErrNotFound.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL, or ErrPresignUnsupported.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
