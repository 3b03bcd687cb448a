package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArchive(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"00.png", "01.png", "02.png"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("frame-"+name), 0o644))
		paths = append(paths, p)
	}

	out := filepath.Join(t.TempDir(), "frames.zip")
	require.NoError(t, NewZipper().CreateArchive(context.Background(), paths, out))

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 3)
	assert.Equal(t, "00.png", r.File[0].Name)
	assert.Equal(t, "01.png", r.File[1].Name)
	assert.Equal(t, "02.png", r.File[2].Name)
}

func TestCreateArchiveMissingFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames.zip")
	err := NewZipper().CreateArchive(context.Background(), []string{"/nonexistent/0.png"}, out)
	require.Error(t, err)
}

func TestCreateArchiveCancelled(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "00.png")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewZipper().CreateArchive(ctx, []string{p}, filepath.Join(dir, "out.zip"))
	assert.ErrorIs(t, err, context.Canceled)
}
