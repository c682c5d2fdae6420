package imagecheck

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, c color.Color, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMeanLuminanceBlack(t *testing.T) {
	data := encodePNG(t, color.Black, 16, 16)
	lum, err := MeanLuminance(bytes.NewReader(data))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, lum, 0.01)
}

func TestMeanLuminanceWhite(t *testing.T) {
	data := encodePNG(t, color.White, 16, 16)
	lum, err := MeanLuminance(bytes.NewReader(data))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, lum, 0.01)
}

// TestIsInvertibleThreshold checks the luminance cutoff between an
// invertible (dark) and non-invertible (light) image.
func TestIsInvertibleThreshold(t *testing.T) {
	dark := encodePNG(t, color.Black, 16, 16)
	invert, err := IsInvertible(bytes.NewReader(dark))
	require.NoError(t, err)
	assert.True(t, invert)

	light := encodePNG(t, color.White, 16, 16)
	invert, err = IsInvertible(bytes.NewReader(light))
	require.NoError(t, err)
	assert.False(t, invert)
}
