// Package encode writes a rendered canvas out as PNG, JPEG or WebP.
package encode

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/chai2010/webp"
)

// Format selects the output container.
type Format int

const (
	PNG Format = iota
	JPEG
	WebP
)

// Options controls lossy encoders; Quality is in [1, 100] and ignored by PNG.
type Options struct {
	Quality int
}

// DefaultOptions matches the resources config's default JPEG quality.
var DefaultOptions = Options{Quality: 90}

// Write encodes img to sink in the requested format.
func Write(sink io.Writer, img image.Image, format Format, opts Options) error {
	if opts.Quality <= 0 {
		opts.Quality = DefaultOptions.Quality
	}
	switch format {
	case PNG:
		return png.Encode(sink, img)
	case JPEG:
		return jpeg.Encode(sink, img, &jpeg.Options{Quality: opts.Quality})
	case WebP:
		return webp.Encode(sink, img, &webp.Options{Lossless: false, Quality: float32(opts.Quality)})
	default:
		return fmt.Errorf("unsupported output format %d", format)
	}
}
