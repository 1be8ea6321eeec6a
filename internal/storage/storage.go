// Package storage contains the attachment storage backends: the remote blob
// HTTP client, an S3-compatible MinIO backend, local disk, and the
// FallbackStorage decorator that combines a remote primary with local disk.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrNotConfigured is returned by a backend that lacks credentials or an endpoint.
	ErrNotConfigured = errors.New("storage backend not configured")
	// ErrObjectNotFound is returned when a location does not resolve to a stored object.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidLocation is returned when a location cannot belong to the backend.
	ErrInvalidLocation = errors.New("invalid object location")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes; ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object. URL is empty for local files.
type ObjectInfo struct {
	Key          string
	URL          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the capability shared by every backend.
type Storage interface {
	// Put stores the content of r under a backend-generated key derived from filename.
	Put(ctx context.Context, filename string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Open streams the object addressed by location (a URL for remote backends,
	// a path for local disk).
	Open(ctx context.Context, location string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes the object by key.
	Delete(ctx context.Context, key string) error
}

// Location is where an attachment ended up. Exactly one of URL and LocalPath is set.
type Location struct {
	URL       string
	Pathname  string
	LocalPath string
}

// Remote reports whether the attachment lives on the primary backend.
func (l Location) Remote() bool {
	return l.URL != ""
}

// Empty reports whether the location addresses nothing.
func (l Location) Empty() bool {
	return l.URL == "" && l.LocalPath == ""
}
