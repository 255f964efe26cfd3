// Package paint rasterizes a solved layout tree onto an RGBA canvas:
// backgrounds, box-shadows, borders, rounded-corner clipping and the
// debug overlay, then delegates each leaf's own content to its
// PaintContent implementation in package node.
package paint

import (
	"image"
	"math"

	"github.com/srwiley/rasterx"

	"github.com/rupor-github/boxrender/style"
)

// Canvas is a straight-alpha RGBA buffer, initialized fully transparent,
// satisfying node.Canvas so leaf PaintContent implementations can draw
// into it directly.
type Canvas struct {
	Width, Height int
	Pix           []uint8 // 4 bytes per pixel, row-major, straight alpha
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

func (c *Canvas) Bounds() (int, int) { return c.Width, c.Height }

func (c *Canvas) offset(x, y int) int { return (y*c.Width + x) * 4 }

// Set overwrites a pixel outright, ignoring whatever was there.
func (c *Canvas) Set(x, y int, col [4]uint8) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	o := c.offset(x, y)
	copy(c.Pix[o:o+4], col[:])
}

// Blend composites col over the existing pixel using straight-alpha
// "over" compositing.
func (c *Canvas) Blend(x, y int, col [4]uint8) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	if col[3] == 0 {
		return
	}
	o := c.offset(x, y)
	if col[3] == 255 {
		copy(c.Pix[o:o+4], col[:])
		return
	}

	sa := float64(col[3]) / 255
	da := float64(c.Pix[o+3]) / 255
	outA := sa + da*(1-sa)
	if outA == 0 {
		return
	}
	for i := 0; i < 3; i++ {
		sc := float64(col[i]) / 255
		dc := float64(c.Pix[o+i]) / 255
		outC := (sc*sa + dc*da*(1-sa)) / outA
		c.Pix[o+i] = clamp255(outC * 255)
	}
	c.Pix[o+3] = clamp255(outA * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// Image returns an *image.RGBA view over the same pixel buffer, used by
// the encode package.
func (c *Canvas) Image() *image.RGBA {
	return &image.RGBA{Pix: c.Pix, Stride: c.Width * 4, Rect: image.Rect(0, 0, c.Width, c.Height)}
}

// roundedMaskCache amortizes mask rasterization across siblings sharing
// the same (w, h, radii) tuple within a single render.
type roundedMaskCache struct {
	masks map[maskKey]*mask
}

type maskKey struct {
	w, h                                 int
	tl, tr, br, bl                       float64
}

type mask struct {
	w, h int
	cov  []uint8
}

func newRoundedMaskCache() *roundedMaskCache {
	return &roundedMaskCache{masks: make(map[maskKey]*mask)}
}

// roundedRectMask rasterizes (or returns the cached) 8-bit coverage mask
// for a rounded rect of size w by h with the given per-corner radii,
// clamped to min(w,h)/2 per corner.
func (rc *roundedMaskCache) roundedRectMask(w, h int, radii style.Corners[float64]) *mask {
	maxR := math.Min(float64(w), float64(h)) / 2
	tl, tr, br, bl := clampR(radii.TopLeft, maxR), clampR(radii.TopRight, maxR), clampR(radii.BottomRight, maxR), clampR(radii.BottomLeft, maxR)
	key := maskKey{w: w, h: h, tl: tl, tr: tr, br: br, bl: bl}
	if m, ok := rc.masks[key]; ok {
		return m
	}

	img := image.NewAlpha(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(image.Opaque)

	drawRoundedRectPath(filler, float64(w), float64(h), tl, tr, br, bl)
	filler.Draw()

	m := &mask{w: w, h: h, cov: img.Pix}
	rc.masks[key] = m
	return m
}

func clampR(r, max float64) float64 {
	if r > max {
		return max
	}
	if r < 0 {
		return 0
	}
	return r
}

// drawRoundedRectPath builds the four-quadratic-corner path for a w by h
// rounded rect with independent per-corner radii, matching the CSS
// border-radius shorthand's corner ordering (top-left, top-right,
// bottom-right, bottom-left).
func drawRoundedRectPath(filler *rasterx.Filler, w, h, tl, tr, br, bl float64) {
	filler.Start(rasterx.ToFixedP(tl, 0))
	filler.Line(rasterx.ToFixedP(w-tr, 0))
	if tr > 0 {
		filler.QuadBezier(rasterx.ToFixedP(w, 0), rasterx.ToFixedP(w, tr))
	}
	filler.Line(rasterx.ToFixedP(w, h-br))
	if br > 0 {
		filler.QuadBezier(rasterx.ToFixedP(w, h), rasterx.ToFixedP(w-br, h))
	}
	filler.Line(rasterx.ToFixedP(bl, h))
	if bl > 0 {
		filler.QuadBezier(rasterx.ToFixedP(0, h), rasterx.ToFixedP(0, h-bl))
	}
	filler.Line(rasterx.ToFixedP(0, tl))
	if tl > 0 {
		filler.QuadBezier(rasterx.ToFixedP(0, 0), rasterx.ToFixedP(tl, 0))
	}
	filler.Stop(true)
}
