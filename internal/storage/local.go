package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// localStorage keeps attachments under a server-controlled directory. Keys are
// absolute file paths; files are named {hex8}_{filename} to avoid collisions.
type localStorage struct {
	dir string
}

// NewLocal creates the upload directory if needed.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload folder is required: %w", ErrNotConfigured)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload folder: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}
	return &localStorage{dir: abs}, nil
}

func (l *localStorage) Put(_ context.Context, filename string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	name := filepath.Base(filepath.Clean("/" + filename))
	if name == "/" || name == "." {
		return ObjectInfo{}, ErrInvalidLocation
	}
	path := filepath.Join(l.dir, strings.ReplaceAll(uuid.NewString(), "-", "")[:8]+"_"+name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create local file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return ObjectInfo{}, fmt.Errorf("write local file: %w", err)
	}

	return ObjectInfo{
		Key:          path,
		Size:         n,
		ContentType:  ResolveContentType(opt.ContentType, filename),
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}, nil
}

func (l *localStorage) Open(_ context.Context, location string) (io.ReadCloser, ObjectInfo, error) {
	path, err := l.resolve(location)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, ObjectInfo{
		Key:          path,
		Size:         st.Size(),
		ContentType:  ContentTypeForExtension(Extension(path)),
		LastModified: st.ModTime(),
	}, nil
}

// Delete removes the file. A file that is already gone is not an error.
func (l *localStorage) Delete(_ context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// resolve rejects paths that escape the upload directory.
func (l *localStorage) resolve(location string) (string, error) {
	if location == "" {
		return "", ErrInvalidLocation
	}
	path := filepath.Clean(location)
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, path)
	}
	rel, err := filepath.Rel(l.dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidLocation
	}
	return path, nil
}
