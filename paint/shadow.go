package paint

import (
	"math"

	"github.com/rupor-github/boxrender/css"
	"github.com/rupor-github/boxrender/node"
	"github.com/rupor-github/boxrender/style"
)

// css0Basis is the css.Basis used to resolve percentage-valued
// properties (border-radius, text-stroke width) against a node's own
// border box — no parent/root font-size context is needed at paint time
// since those lengths were already baked into resolved.FontSize earlier.
func css0Basis(box node.Box) css.Basis {
	return css.Basis{ContainingBlock: math.Min(box.Width, box.Height)}
}

func css0GradientDrawContext(w, h int) css.DrawContext {
	return css.DrawContext{Width: float64(w), Height: float64(h)}
}

// paintBoxShadows draws the declared shadow stack back-to-front (the
// last-declared shadow is furthest back), so the loop below runs in
// reverse so the first-declared shadow ends up painted last, i.e. on top
// of the others, per the painter design.
func paintBoxShadows(canvas *Canvas, box node.Box, resolved *style.Resolved, masks *roundedMaskCache) {
	if len(resolved.BoxShadow) == 0 {
		return
	}
	corners := cornersOf(resolved, box)
	for i := len(resolved.BoxShadow) - 1; i >= 0; i-- {
		paintOneShadow(canvas, box, resolved.BoxShadow[i], corners, masks)
	}
}

func paintOneShadow(canvas *Canvas, box node.Box, shadow style.BoxShadow, corners style.Corners[float64], masks *roundedMaskCache) {
	if shadow.Color.A == 0 {
		return
	}

	basis := css0Basis(box)
	spread, _ := shadow.SpreadRadius.Resolve(basis)
	blur, _ := shadow.BlurRadius.Resolve(basis)
	offsetX, _ := shadow.OffsetX.Resolve(basis)
	offsetY, _ := shadow.OffsetY.Resolve(basis)

	w := int(math.Round(box.Width + 2*spread))
	h := int(math.Round(box.Height + 2*spread))
	if w < 1 || h < 1 {
		return
	}

	grown := style.Corners[float64]{
		TopLeft:     math.Max(0, corners.TopLeft+spread),
		TopRight:    math.Max(0, corners.TopRight+spread),
		BottomRight: math.Max(0, corners.BottomRight+spread),
		BottomLeft:  math.Max(0, corners.BottomLeft+spread),
	}
	m := masks.roundedRectMask(w, h, grown)
	cov := m.cov
	if blur > 0 {
		cov = gaussianBlurAlpha(m.cov, w, h, blur/2)
	}

	originX := int(math.Round(box.X - spread + offsetX))
	originY := int(math.Round(box.Y - spread + offsetY))
	col := [4]uint8{shadow.Color.R, shadow.Color.G, shadow.Color.B, shadow.Color.A}

	if shadow.Inset {
		paintInsetShadow(canvas, box, cov, w, h, originX, originY, col, corners, masks)
		return
	}

	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			c := cov[row+x]
			if c == 0 {
				continue
			}
			a := uint8((int(col[3]) * int(c)) / 255)
			canvas.Blend(originX+x, originY+y, [4]uint8{col[0], col[1], col[2], a})
		}
	}
}

// paintInsetShadow draws the inverted mask inside the box, clipped to
// the box's own (unblurred) rounded rect — so the shadow never bleeds
// past the border, only inward from it.
func paintInsetShadow(canvas *Canvas, box node.Box, invCovSrc []uint8, srcW, srcH int, originX, originY int, col [4]uint8, corners style.Corners[float64], masks *roundedMaskCache) {
	bw, bh := int(math.Round(box.Width)), int(math.Round(box.Height))
	bx, by := int(math.Round(box.X)), int(math.Round(box.Y))
	if bw < 1 || bh < 1 {
		return
	}
	clip := masks.roundedRectMask(bw, bh, corners).cov
	for y := 0; y < bh; y++ {
		sy := y - (originY - by)
		if sy < 0 || sy >= srcH {
			continue
		}
		for x := 0; x < bw; x++ {
			sx := x - (originX - bx)
			if sx < 0 || sx >= srcW {
				continue
			}
			cov := int(255-invCovSrc[sy*srcW+sx]) * int(clip[y*bw+x]) / 255
			if cov == 0 {
				continue
			}
			a := uint8((int(col[3]) * cov) / 255)
			canvas.Blend(bx+x, by+y, [4]uint8{col[0], col[1], col[2], a})
		}
	}
}

// gaussianBlurAlpha applies a separable Gaussian blur of
// the given standard deviation to an 8-bit alpha-only buffer.
func gaussianBlurAlpha(src []uint8, w, h int, sigma float64) []uint8 {
	if sigma <= 0 {
		return src
	}
	radius := int(math.Ceil(sigma * 3))
	kernel := gaussianKernel(radius, sigma)

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			for k := -radius; k <= radius; k++ {
				sx := x + k
				if sx < 0 || sx >= w {
					continue
				}
				sum += float64(src[y*w+sx]) * kernel[k+radius]
			}
			tmp[y*w+x] = sum
		}
	}

	out := make([]uint8, w*h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sum := 0.0
			for k := -radius; k <= radius; k++ {
				sy := y + k
				if sy < 0 || sy >= h {
					continue
				}
				sum += tmp[sy*w+x] * kernel[k+radius]
			}
			out[y*w+x] = clamp255(sum)
		}
	}
	return out
}

func gaussianKernel(radius int, sigma float64) []float64 {
	k := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+radius] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}
