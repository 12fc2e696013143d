/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package uploads

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskUploaderWritesFile(t *testing.T) {
	dir := t.TempDir()

	d, err := NewDiskUploader(dir, "/public/", logrus.New())
	require.NoError(t, err)

	url, err := d.Upload(context.Background(), Images, "../../Foto.PNG", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "/public/imagenes/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/public/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestDiskUploaderUniqueNames(t *testing.T) {
	d, err := NewDiskUploader(t.TempDir(), "/public", logrus.New())
	require.NoError(t, err)

	a, err := d.Upload(context.Background(), Videos, "clip.mp4", "video/mp4", strings.NewReader("a"), 1)
	require.NoError(t, err)
	b, err := d.Upload(context.Background(), Videos, "clip.mp4", "video/mp4", strings.NewReader("b"), 1)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDiskUploaderRejectsUnknownKind(t *testing.T) {
	d, err := NewDiskUploader(t.TempDir(), "/public", logrus.New())
	require.NoError(t, err)

	_, err = d.Upload(context.Background(), Kind("otros"), "x.txt", "", strings.NewReader("x"), 1)
	assert.Error(t, err)
}

func TestDiskUploaderRemove(t *testing.T) {
	dir := t.TempDir()

	d, err := NewDiskUploader(dir, "/public", logrus.New())
	require.NoError(t, err)

	url, err := d.Upload(context.Background(), Videos, "clip.mp4", "video/mp4", strings.NewReader("a"), 1)
	require.NoError(t, err)

	path := filepath.Join(dir, strings.TrimPrefix(url, "/public/"))
	require.FileExists(t, path)

	require.NoError(t, d.Remove(context.Background(), url))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	assert.NoError(t, d.Remove(context.Background(), url), "removing twice is not an error")
}

func TestDiskUploaderRemoveStaysInsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	outside := filepath.Join(root, "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	d, err := NewDiskUploader(dir, "/public", logrus.New())
	require.NoError(t, err)

	for _, location := range []string{
		"/public/imagenes/../../keep.txt",
		"/public/../keep.txt",
		"/elsewhere/imagenes/a.png",
		"/public/imagenes/..",
	} {
		assert.ErrorIs(t, d.Remove(context.Background(), location), ErrForeignLocation, location)
	}

	assert.FileExists(t, outside)
}
