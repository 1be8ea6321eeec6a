package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gedo/internal/config"
	"gedo/internal/logging"
)

func newTestBlob(t *testing.T, srv *httptest.Server) Storage {
	t.Helper()
	s, err := NewBlob(config.BlobConfig{
		BaseURL: srv.URL,
		Token:   "secret-token",
		Folder:  "uploads",
		Timeout: 5 * time.Second,
	}, logging.Discard())
	require.NoError(t, err)
	return s
}

func TestNewBlob_RequiresToken(t *testing.T) {
	_, err := NewBlob(config.BlobConfig{BaseURL: "https://blob.example"}, logging.Discard())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBlob_Put(t *testing.T) {
	var gotPath, gotAuth, gotType string
	var gotLen int64
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotLen = r.ContentLength
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"url":"https://cdn.example`+r.URL.Path+`","pathname":"`+strings.TrimPrefix(r.URL.Path, "/")+`"}`)
	}))
	defer srv.Close()

	s := newTestBlob(t, srv)
	info, err := s.Put(context.Background(), "Relatorio.pdf", strings.NewReader("%PDF-data"), PutObjectOptions{Size: 9})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "/uploads/"))
	assert.True(t, strings.HasSuffix(gotPath, ".pdf"))
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, int64(9), gotLen)
	assert.Equal(t, "%PDF-data", string(gotBody))

	assert.Equal(t, strings.TrimPrefix(gotPath, "/"), info.Key)
	assert.Equal(t, "https://cdn.example"+gotPath, info.URL)
	assert.Equal(t, "application/pdf", info.ContentType)
}

func TestBlob_Put_DeclaredContentTypeWins(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		_, _ = io.WriteString(w, `{"url":"https://cdn.example/x","pathname":"x"}`)
	}))
	defer srv.Close()

	_, err := newTestBlob(t, srv).Put(context.Background(), "notes.txt", strings.NewReader("hi"), PutObjectOptions{Size: 2, ContentType: "text/plain; charset=utf-8"})
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", gotType)
}

func TestBlob_Put_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestBlob(t, srv).Put(context.Background(), "a.pdf", strings.NewReader("x"), PutObjectOptions{Size: 1})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Equal(t, "put", se.Op)
}

func TestBlob_Put_MissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"pathname":"uploads/a.pdf"}`)
	}))
	defer srv.Close()

	_, err := newTestBlob(t, srv).Put(context.Background(), "a.pdf", strings.NewReader("x"), PutObjectOptions{Size: 1})
	assert.Error(t, err)
}

func TestBlob_Delete(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotAuth = r.Method, r.URL.Path, r.Header.Get("Authorization")
		w.WriteHeader(status)
	}))
	defer srv.Close()

	s := newTestBlob(t, srv)
	require.NoError(t, s.Delete(context.Background(), "uploads/abc.pdf"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/uploads/abc.pdf", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)

	status = http.StatusInternalServerError
	err := s.Delete(context.Background(), "uploads/abc.pdf")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "delete", se.Op)

	assert.ErrorIs(t, s.Delete(context.Background(), ""), ErrInvalidLocation)
}

func TestBlob_Open(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		if r.URL.Path == "/missing.pdf" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.WriteString(w, "file-content")
	}))
	defer srv.Close()

	s := newTestBlob(t, srv)
	rc, info, err := s.Open(context.Background(), srv.URL+"/uploads/abc.pdf")
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "file-content", string(body))
	assert.Equal(t, "uploads/abc.pdf", info.Key)
	assert.Equal(t, "application/octet-stream", info.ContentType)

	_, _, err = s.Open(context.Background(), srv.URL+"/missing.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	_, _, err = s.Open(context.Background(), "file:///etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidLocation)
}
