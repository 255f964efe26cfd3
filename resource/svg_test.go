package resource

import "testing"

func TestRasterizeSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><rect width="100" height="100"/></svg>`)
	img, err := RasterizeSVG(svg, 50, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := img.Bounds().Dx(); got != 50 {
		t.Fatalf("width = %d, want 50", got)
	}
	if got := img.Bounds().Dy(); got != 20 {
		t.Fatalf("height = %d, want 20", got)
	}
}

func TestSVGIntrinsicSize(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100"><rect width="200" height="100"/></svg>`)
	w, h, err := SVGIntrinsicSize(svg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 200 || h != 100 {
		t.Fatalf("got (%v, %v), want (200, 100)", w, h)
	}
}

func TestDecodeImageDetectsSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"></svg>`)
	src, err := DecodeImage(svg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !src.IsSvg() {
		t.Fatalf("expected SVG source")
	}
}
