package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PutOpenDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	info, err := s.Put(ctx, "relatorio.txt", strings.NewReader("conteudo"), PutObjectOptions{Size: 8})
	require.NoError(t, err)
	assert.Empty(t, info.URL)
	assert.Equal(t, int64(8), info.Size)
	assert.Equal(t, "text/plain", info.ContentType)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}_relatorio\.txt$`), filepath.Base(info.Key))

	rc, oi, err := s.Open(ctx, info.Key)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "conteudo", string(body))
	assert.Equal(t, int64(8), oi.Size)

	require.NoError(t, s.Delete(ctx, info.Key))
	_, err = os.Stat(info.Key)
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, s.Delete(ctx, info.Key))

	_, _, err = s.Open(ctx, info.Key)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocal_SameNameDoesNotCollide(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	a, err := s.Put(ctx, "a.txt", strings.NewReader("1"), PutObjectOptions{})
	require.NoError(t, err)
	b, err := s.Put(ctx, "a.txt", strings.NewReader("2"), PutObjectOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, b.Key)
}

func TestLocal_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	info, err := s.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"), PutObjectOptions{})
	require.NoError(t, err)
	abs, _ := filepath.Abs(dir)
	assert.Equal(t, abs, filepath.Dir(info.Key))
}

func TestLocal_RejectsPathsOutsideFolder(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, _, err = s.Open(ctx, "/etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidLocation)
	_, _, err = s.Open(ctx, "../outside.txt")
	assert.ErrorIs(t, err, ErrInvalidLocation)
	assert.ErrorIs(t, s.Delete(ctx, ""), ErrInvalidLocation)
}
