package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gedo/internal/config"
)

// minioStorage stores attachments in an S3-compatible bucket (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client  *minio.Client
	bucket  string
	folder  string
	baseURL string
}

// NewMinIO creates a new S3-compatible storage client backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig, folder string) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required: %w", ErrNotConfigured)
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required: %w", ErrNotConfigured)
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required: %w", ErrNotConfigured)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{
		client:  cli,
		bucket:  cfg.Bucket,
		folder:  folder,
		baseURL: strings.TrimRight(cli.EndpointURL().String(), "/"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// Put uploads an object using streaming I/O under {folder}/{uuid}.{ext}.
func (m *minioStorage) Put(ctx context.Context, filename string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	key := ObjectKey(m.folder, filename)
	contentType := ResolveContentType(opt.ContentType, filename)

	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: opt.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		URL:          m.objectURL(key),
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  contentType,
		LastModified: time.Now(), // PutObject does not report LastModified
		Metadata:     opt.Metadata,
	}, nil
}

// Open streams the object addressed by its URL or bare key.
func (m *minioStorage) Open(ctx context.Context, location string) (io.ReadCloser, ObjectInfo, error) {
	key, err := m.keyFromLocation(location)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, err
	}
	return obj, ObjectInfo{
		Key:          key,
		URL:          m.objectURL(key),
		Size:         st.Size,
		ETag:         st.ETag,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
		Metadata:     st.UserMetadata,
	}, nil
}

// Delete removes an object by key.
func (m *minioStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidLocation
	}
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

func (m *minioStorage) objectURL(key string) string {
	return m.baseURL + "/" + m.bucket + "/" + key
}

func (m *minioStorage) keyFromLocation(location string) (string, error) {
	if !strings.Contains(location, "://") {
		if location == "" {
			return "", ErrInvalidLocation
		}
		return strings.TrimLeft(location, "/"), nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", ErrInvalidLocation
	}
	key, ok := strings.CutPrefix(strings.TrimLeft(u.Path, "/"), m.bucket+"/")
	if !ok || key == "" {
		return "", ErrInvalidLocation
	}
	return key, nil
}
