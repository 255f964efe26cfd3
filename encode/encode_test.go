package encode

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return img
}

func TestWritePNGProducesValidHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testImage(), PNG, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(buf.Bytes(), sig) {
		t.Fatalf("output does not start with the PNG signature")
	}
}

func TestWriteJPEGDefaultsQualityWhenUnset(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testImage(), JPEG, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected non-empty JPEG output")
	}
}

func TestWriteRejectsUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testImage(), Format(99), Options{}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
