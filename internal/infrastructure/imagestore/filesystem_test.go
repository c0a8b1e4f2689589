package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_UploadYDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "http://localhost:8080/images/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Upload(ctx, []byte("contenido"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/images/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := filepath.Base(url)
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))

	require.NoError(t, s.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// Borrar dos veces no falla.
	assert.NoError(t, s.Delete(ctx, url))
}

func TestFileStore_IgnoraURLsAjenas(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "http://localhost:8080/images")
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(dir), "fuera.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { _ = os.Remove(outside) })

	ctx := context.Background()
	assert.NoError(t, s.Delete(ctx, "https://res.cloudinary.com/demo/image/upload/a.png"))
	assert.NoError(t, s.Delete(ctx, "http://localhost:8080/images/../fuera.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestFileStore_TipoNoSoportado(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), "/images")
	require.NoError(t, err)
	_, err = s.Upload(context.Background(), []byte("GIF89a"), "image/gif")
	assert.Error(t, err)
}
