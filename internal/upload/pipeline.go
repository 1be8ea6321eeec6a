// Package upload validates attachment uploads and hands accepted files to
// storage. Checks run in a fixed order and stop at the first failure:
// extension, size, emptiness, magic bytes, content integrity. Accepted files
// are hashed and their names sanitized before storage.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gedo/internal/config"
	"gedo/internal/metrics"
	"gedo/internal/model"
	"gedo/internal/storage"
)

// File is an uploaded file as received from a multipart form.
type File struct {
	Filename    string
	ContentType string
	Content     io.ReadSeeker
}

// ValidationResult describes an accepted upload.
type ValidationResult struct {
	DetectedType     string
	FileHash         string
	SafeFilename     string
	OriginalFilename string
	Extension        string
	FileSize         int64
}

// Store persists accepted files. *storage.FallbackStorage implements it.
type Store interface {
	Save(ctx context.Context, filename string, data []byte, opt storage.PutObjectOptions) (storage.Location, storage.ObjectInfo, error)
}

// Pipeline validates and stores attachments. It keeps no state between calls.
type Pipeline struct {
	store   Store
	maxSize int64
	allowed map[string]struct{}
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewPipeline(store Store, cfg config.UploadConfig, logger *slog.Logger, m *metrics.Metrics) *Pipeline {
	maxSize := cfg.MaxContentLength
	if maxSize <= 0 {
		maxSize = config.DefaultMaxContentLength
	}
	exts := cfg.AllowedExtensions
	if len(exts) == 0 {
		exts = config.DefaultAllowedExtensions
	}
	allowed := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		allowed[e] = struct{}{}
	}
	return &Pipeline{store: store, maxSize: maxSize, allowed: allowed, logger: logger, metrics: m}
}

// Validate runs every check and returns the file content on success.
// Validation failures are *RejectionError; other errors come from reading.
func (p *Pipeline) Validate(f File) (*ValidationResult, []byte, error) {
	if f.Filename == "" || f.Content == nil {
		return nil, nil, reject(CodeFilenameRequired, ReasonFilenameRequired)
	}
	ext := storage.Extension(f.Filename)
	if _, ok := p.allowed[ext]; !ok || ext == "" {
		return nil, nil, reject(CodeExtensionNotAllowed, ReasonExtensionNotAllowed)
	}

	size, err := f.Content.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("measure upload: %w", err)
	}
	if _, err := f.Content.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("rewind upload: %w", err)
	}
	if size > p.maxSize {
		return nil, nil, tooLarge(p.maxSize)
	}
	if size == 0 {
		return nil, nil, reject(CodeFileEmpty, ReasonFileEmpty)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(f.Content, data); err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}
	if _, err := f.Content.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("rewind upload: %w", err)
	}

	detected, ok := DetectType(data, ext)
	if !ok {
		p.logger.Debug("upload type not allowed", "filename", f.Filename, "detected", detected)
		return nil, nil, reject(CodeTypeNotAllowed, ReasonTypeNotAllowed)
	}
	if err := CheckContent(data, detected); err != nil {
		p.logger.Debug("upload content check failed", "filename", f.Filename, "detected", detected, "error", err)
		return nil, nil, reject(CodeContentInvalid, ReasonContentInvalid)
	}

	hash, err := HashReader(f.Content)
	if err != nil {
		return nil, nil, fmt.Errorf("hash upload: %w", err)
	}

	return &ValidationResult{
		DetectedType:     detected,
		FileHash:         hash,
		SafeFilename:     SanitizeFilename(f.Filename),
		OriginalFilename: f.Filename,
		Extension:        ext,
		FileSize:         size,
	}, data, nil
}

// Save validates f and stores it, remote first and local disk second.
func (p *Pipeline) Save(ctx context.Context, f File) (*model.Attachment, error) {
	res, data, err := p.Validate(f)
	if err != nil {
		var rej *RejectionError
		if errors.As(err, &rej) {
			p.metrics.UploadRejected(rej.Code)
			p.logger.InfoContext(ctx, "upload rejected", "filename", f.Filename, "code", rej.Code)
		}
		return nil, err
	}

	loc, _, err := p.store.Save(ctx, res.SafeFilename, data, storage.PutObjectOptions{
		ContentType: res.DetectedType,
		Metadata: map[string]string{
			"original-filename": res.SafeFilename,
			"sha256":            res.FileHash,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}

	return &model.Attachment{
		StorageURL:       loc.URL,
		StoragePathname:  loc.Pathname,
		LocalPath:        loc.LocalPath,
		OriginalFilename: res.SafeFilename,
		Extension:        res.Extension,
		SizeBytes:        res.FileSize,
		ContentType:      res.DetectedType,
		FileHash:         res.FileHash,
	}, nil
}
