// Package imagecheck computes whether an image is dark enough to need a
// browser-side color inversion in dark mode, by decoding and downscaling
// it with golang.org/x/image and sampling mean HSL lightness.
package imagecheck

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// InvertThreshold is the mean-lightness cutoff: below this the image gets
// the invertible-auto class, at or above it does not.
const InvertThreshold = 0.09

// sampleSize bounds the downscaled image used for sampling, so large
// images are not walked pixel-by-pixel.
const sampleSize = 64

// MeanLuminance decodes an image and returns its mean HSL lightness (the
// L channel: the average of a pixel's largest and smallest RGB component)
// in [0, 1], downscaling to a small fixed size first via
// golang.org/x/image/draw so the cost is independent of the source
// resolution.
func MeanLuminance(r io.Reader) (float64, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return 0, err
	}

	bounds := img.Bounds()
	w, h := sampleSize, sampleSize
	if bounds.Dx() < w {
		w = bounds.Dx()
	}
	if bounds.Dy() < h {
		h = bounds.Dy()
	}
	if w == 0 || h == 0 {
		return 0, nil
	}

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(small, small.Bounds(), img, bounds, draw.Over, nil)

	var total float64
	count := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := small.At(x, y).RGBA()
			// HSL lightness, channels are 16-bit premultiplied by alpha
			lum := (float64(max(r, g, b)) + float64(min(r, g, b))) / 2 / 65535.0
			total += lum
			count++
		}
	}

	return total / float64(count), nil
}

// IsInvertible reports whether an image's mean lightness is dark enough
// to warrant the invertible-auto class.
func IsInvertible(r io.Reader) (bool, error) {
	lum, err := MeanLuminance(r)
	if err != nil {
		return false, err
	}
	return lum < InvertThreshold, nil
}
