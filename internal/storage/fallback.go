package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gedo/internal/metrics"
)

// AttachmentStore is what the upload pipeline and the record service need
// from storage.
type AttachmentStore interface {
	Save(ctx context.Context, filename string, data []byte, opt PutObjectOptions) (Location, ObjectInfo, error)
	Open(ctx context.Context, loc Location) (io.ReadCloser, ObjectInfo, error)
	Remove(ctx context.Context, loc Location) error
}

// FallbackStorage tries the remote primary first and falls back to local disk
// when the primary fails or is not configured. Reads and deletes dispatch on
// where the attachment actually lives.
type FallbackStorage struct {
	primary Storage
	local   Storage
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewFallback combines primary (may be nil) with the local backend.
func NewFallback(primary, local Storage, logger *slog.Logger, m *metrics.Metrics) *FallbackStorage {
	return &FallbackStorage{primary: primary, local: local, logger: logger, metrics: m}
}

// Save stores data and reports where it went. It only fails when local disk fails too.
func (f *FallbackStorage) Save(ctx context.Context, filename string, data []byte, opt PutObjectOptions) (Location, ObjectInfo, error) {
	opt.Size = int64(len(data))

	if f.primary != nil {
		info, err := f.primary.Put(ctx, filename, bytes.NewReader(data), opt)
		if err == nil && info.URL != "" {
			f.metrics.UploadStored("remote")
			return Location{URL: info.URL, Pathname: info.Key}, info, nil
		}
		if err == nil {
			err = errors.New("remote storage returned no url")
		}
		f.logger.ErrorContext(ctx, "remote storage failed, falling back to local disk",
			"filename", filename,
			"error", err,
		)
		f.metrics.StorageFallback()
	}

	info, err := f.local.Put(ctx, filename, bytes.NewReader(data), opt)
	if err != nil {
		return Location{}, ObjectInfo{}, fmt.Errorf("store on local disk: %w", err)
	}
	f.metrics.UploadStored("local")
	return Location{LocalPath: info.Key}, info, nil
}

// Open streams the attachment from its backend.
func (f *FallbackStorage) Open(ctx context.Context, loc Location) (io.ReadCloser, ObjectInfo, error) {
	switch {
	case loc.Remote():
		if f.primary == nil {
			return nil, ObjectInfo{}, fmt.Errorf("open remote attachment: %w", ErrNotConfigured)
		}
		return f.primary.Open(ctx, loc.URL)
	case loc.LocalPath != "":
		return f.local.Open(ctx, loc.LocalPath)
	default:
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
}

// Remove deletes the attachment from its backend. An empty location is a no-op.
func (f *FallbackStorage) Remove(ctx context.Context, loc Location) error {
	switch {
	case loc.Remote():
		if f.primary == nil {
			return fmt.Errorf("remove remote attachment: %w", ErrNotConfigured)
		}
		return f.primary.Delete(ctx, loc.Pathname)
	case loc.LocalPath != "":
		return f.local.Delete(ctx, loc.LocalPath)
	default:
		return nil
	}
}
