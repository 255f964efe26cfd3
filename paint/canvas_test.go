package paint

import (
	"testing"

	"github.com/rupor-github/boxrender/style"
)

func TestCanvasBlendOverOpaque(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0, [4]uint8{255, 0, 0, 255})
	c.Blend(0, 0, [4]uint8{0, 255, 0, 128})

	got := c.Pix[0:4]
	if got[3] != 255 {
		t.Fatalf("blending over an opaque pixel should stay opaque, got alpha %d", got[3])
	}
	if got[0] == 255 || got[1] == 0 {
		t.Fatalf("expected red to mix toward green, got %v", got)
	}
}

func TestCanvasBlendOutOfBoundsIsNoop(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Blend(-1, 0, [4]uint8{1, 2, 3, 4})
	c.Blend(2, 2, [4]uint8{1, 2, 3, 4})
	for _, b := range c.Pix {
		if b != 0 {
			t.Fatalf("out-of-bounds blend should not touch the buffer, got %v", c.Pix)
		}
	}
}

func TestRoundedRectMaskCornersAreTransparent(t *testing.T) {
	rc := newRoundedMaskCache()
	m := rc.roundedRectMask(20, 20, style.Corners[float64]{TopLeft: 8, TopRight: 8, BottomRight: 8, BottomLeft: 8})

	if m.cov[0] != 0 {
		t.Fatalf("top-left corner pixel should be outside a rounded rect, got coverage %d", m.cov[0])
	}
	center := 10*20 + 10
	if m.cov[center] == 0 {
		t.Fatalf("center pixel should be fully inside the rounded rect")
	}
}

func TestRoundedRectMaskCacheReusesSameKey(t *testing.T) {
	rc := newRoundedMaskCache()
	a := rc.roundedRectMask(10, 10, style.AllCorners(2.0))
	b := rc.roundedRectMask(10, 10, style.AllCorners(2.0))
	if a != b {
		t.Fatalf("expected the same mask pointer for identical (w,h,radii)")
	}
}
