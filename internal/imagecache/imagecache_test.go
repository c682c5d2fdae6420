package imagecache

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blackPNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIsInvertibleCachesByHash(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	content := blackPNG(t)
	v1, err := c.IsInvertible(content)
	require.NoError(t, err)
	assert.True(t, v1)
	assert.Equal(t, 1, c.Len())

	// same content again: still one entry, cache hit
	v2, err := c.IsInvertible(content)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, c.Len())
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.yaml")

	c, err := Load(path)
	require.NoError(t, err)
	_, err = c.IsInvertible(blackPNG(t))
	require.NoError(t, err)
	require.NoError(t, c.Save())

	c2, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c2.Len())
}
