package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gedo/internal/config"
)

// StatusError reports a non-200 answer from the blob endpoint.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("blob %s: unexpected status %d", e.Op, e.StatusCode)
}

// blobStorage talks to a remote object store over plain HTTP: authenticated PUT
// and DELETE on {base}/{pathname}, unauthenticated GET on the returned URL.
// Each call is a single attempt bounded by the client timeout.
type blobStorage struct {
	baseURL string
	token   string
	folder  string
	client  *http.Client
	logger  *slog.Logger
}

type blobPutResponse struct {
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
}

// NewBlob creates the blob HTTP client. It returns ErrNotConfigured when no
// token is set so callers can run on local disk only.
func NewBlob(cfg config.BlobConfig, logger *slog.Logger) (Storage, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("blob token is required: %w", ErrNotConfigured)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("blob base url is required: %w", ErrNotConfigured)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &blobStorage{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		folder:  cfg.Folder,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}, nil
}

// Put uploads r under {folder}/{uuid}.{ext}.
func (b *blobStorage) Put(ctx context.Context, filename string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	key := ObjectKey(b.folder, filename)
	contentType := ResolveContentType(opt.ContentType, filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.baseURL+"/"+key, r)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("build blob put request: %w", err)
	}
	if opt.Size > 0 {
		req.ContentLength = opt.Size
	}
	req.Header.Set("Authorization", "Bearer "+b.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := b.client.Do(req)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("blob put: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return ObjectInfo{}, &StatusError{Op: "put", StatusCode: resp.StatusCode}
	}

	var out blobPutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ObjectInfo{}, fmt.Errorf("decode blob put response: %w", err)
	}
	if out.URL == "" {
		return ObjectInfo{}, fmt.Errorf("blob put: response without url")
	}
	if out.Pathname == "" {
		out.Pathname = key
	}

	return ObjectInfo{
		Key:          out.Pathname,
		URL:          out.URL,
		Size:         opt.Size,
		ContentType:  contentType,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}, nil
}

// Open streams the object at the public URL returned by Put.
func (b *blobStorage) Open(ctx context.Context, location string) (io.ReadCloser, ObjectInfo, error) {
	u, err := url.Parse(location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ObjectInfo{}, ErrInvalidLocation
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("build blob get request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("blob get: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ObjectInfo{}, ErrObjectNotFound
	default:
		resp.Body.Close()
		return nil, ObjectInfo{}, &StatusError{Op: "get", StatusCode: resp.StatusCode}
	}

	return resp.Body, ObjectInfo{
		Key:         strings.TrimPrefix(u.Path, "/"),
		URL:         location,
		Size:        resp.ContentLength,
		ETag:        resp.Header.Get("ETag"),
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// Delete removes the object by pathname. Success is judged by status code only.
func (b *blobStorage) Delete(ctx context.Context, pathname string) error {
	if pathname == "" {
		return ErrInvalidLocation
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.baseURL+"/"+strings.TrimLeft(pathname, "/"), nil)
	if err != nil {
		return fmt.Errorf("build blob delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.token)

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.ErrorContext(ctx, "blob delete failed", "pathname", pathname, "error", err)
		return fmt.Errorf("blob delete: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		b.logger.WarnContext(ctx, "blob delete rejected", "pathname", pathname, "status", resp.StatusCode)
		return &StatusError{Op: "delete", StatusCode: resp.StatusCode}
	}
	return nil
}
