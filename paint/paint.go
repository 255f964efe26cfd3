package paint

import (
	"math"
	"strings"

	"github.com/rupor-github/boxrender/css"
	"github.com/rupor-github/boxrender/layout"
	"github.com/rupor-github/boxrender/node"
	"github.com/rupor-github/boxrender/style"
)

// Walk paints a solved layout tree onto canvas, depth-first, child after
// parent, per the painter's per-node order: shadow, background color,
// background images, content, border, children, debug overlay.
func Walk(canvas *Canvas, result *layout.Result, rctx node.RenderContext, drawDebugBorder bool) {
	masks := newRoundedMaskCache()
	rctx.Transform = css.Identity
	walkNode(canvas, result, rctx, masks, drawDebugBorder)
}

func walkNode(canvas *Canvas, result *layout.Result, rctx node.RenderContext, masks *roundedMaskCache, debug bool) {
	box := result.Box
	resolved := result.Node.Resolved()

	own := nodeTransform(resolved, box)
	effective := own.Mul(rctx.Transform)

	if effective == css.Identity {
		paintNode(canvas, result.Node, box, resolved, rctx, masks)
	} else {
		paintNodeTransformed(canvas, result.Node, box, resolved, rctx, masks, effective)
	}

	childCtx := rctx
	childCtx.Transform = effective
	for _, child := range result.Children {
		walkNode(canvas, child, childCtx, masks, debug)
	}

	if debug {
		paintDebugOverlay(canvas, box)
	}
}

// paintNode runs the untransformed fast path, drawing straight onto canvas.
func paintNode(canvas *Canvas, n node.Node, box node.Box, resolved *style.Resolved, rctx node.RenderContext, masks *roundedMaskCache) {
	paintBoxShadows(canvas, box, resolved, masks)
	paintBackgroundColor(canvas, box, resolved, masks)
	paintBackgroundImages(canvas, box, resolved, masks)
	n.PaintContent(canvas, box, rctx)
	paintBorder(canvas, box, resolved, masks)
}

// nodeTransform parses a node's own declared transform (if any) and
// pivots it at the box's own center, matching CSS's default
// transform-origin. A node with no transform (or an unparseable one)
// contributes the identity, leaving the ancestor chain untouched.
func nodeTransform(resolved *style.Resolved, box node.Box) css.Affine {
	raw := strings.TrimSpace(resolved.Transform)
	if raw == "" || raw == "none" {
		return css.Identity
	}
	m, err := css.ParseTransform(raw, css0Basis(box))
	if err != nil {
		return css.Identity
	}
	cx, cy := box.X+box.Width/2, box.Y+box.Height/2
	pre := css.Affine{A: 1, D: 1, E: -cx, F: -cy}
	post := css.Affine{A: 1, D: 1, E: cx, F: cy}
	return pre.Mul(m).Mul(post)
}

// paintNodeTransformed draws a node's own shadow/background/content/border
// into a padded offscreen buffer positioned at the box's own (untransformed)
// origin, then forward-maps every non-transparent source pixel through transform
// onto canvas. This covers the common translate/scale/rotate cases without
// needing a Canvas.Get to do proper inverse-sampled resampling; a rotated
// or upscaled box can show small gaps between splatted source pixels.
func paintNodeTransformed(canvas *Canvas, n node.Node, box node.Box, resolved *style.Resolved, rctx node.RenderContext, masks *roundedMaskCache, transform css.Affine) {
	pad := shadowPadding(resolved, box)
	w := int(math.Ceil(box.Width)) + 2*pad
	h := int(math.Ceil(box.Height)) + 2*pad
	if w < 1 || h < 1 {
		return
	}

	offscreen := NewCanvas(w, h)
	localBox := box
	localBox.X, localBox.Y = float64(pad), float64(pad)
	paintNode(offscreen, n, localBox, resolved, rctx, masks)

	originX, originY := box.X-float64(pad), box.Y-float64(pad)
	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			o := row + x*4
			a := offscreen.Pix[o+3]
			if a == 0 {
				continue
			}
			dx, dy := transform.Apply(originX+float64(x), originY+float64(y))
			canvas.Blend(int(math.Round(dx)), int(math.Round(dy)), [4]uint8{offscreen.Pix[o], offscreen.Pix[o+1], offscreen.Pix[o+2], a})
		}
	}
}

// shadowPadding returns how far box-shadows can bleed past the border box,
// so the offscreen buffer used by paintNodeTransformed is large enough to
// hold them.
func shadowPadding(resolved *style.Resolved, box node.Box) int {
	basis := css0Basis(box)
	pad := 0.0
	for _, s := range resolved.BoxShadow {
		spread, _ := s.SpreadRadius.Resolve(basis)
		blur, _ := s.BlurRadius.Resolve(basis)
		ox, _ := s.OffsetX.Resolve(basis)
		oy, _ := s.OffsetY.Resolve(basis)
		edge := spread + blur*1.5 + math.Max(math.Abs(ox), math.Abs(oy))
		if edge > pad {
			pad = edge
		}
	}
	return int(math.Ceil(pad))
}

func cornersOf(resolved *style.Resolved, box node.Box) style.Corners[float64] {
	basis := css0Basis(box)
	tl, _ := resolved.BorderRadius.TopLeft.Resolve(basis)
	tr, _ := resolved.BorderRadius.TopRight.Resolve(basis)
	br, _ := resolved.BorderRadius.BottomRight.Resolve(basis)
	bl, _ := resolved.BorderRadius.BottomLeft.Resolve(basis)
	return style.Corners[float64]{TopLeft: tl, TopRight: tr, BottomRight: br, BottomLeft: bl}
}

func paintBackgroundColor(canvas *Canvas, box node.Box, resolved *style.Resolved, masks *roundedMaskCache) {
	col := resolved.BackgroundColor
	if col.A == 0 {
		return
	}
	w, h := int(math.Round(box.Width)), int(math.Round(box.Height))
	if w < 1 || h < 1 {
		return
	}
	m := masks.roundedRectMask(w, h, cornersOf(resolved, box))
	blendMasked(canvas, int(math.Round(box.X)), int(math.Round(box.Y)), m, [4]uint8{col.R, col.G, col.B, col.A})
}

// paintBackgroundImages renders each declared gradient layer, first
// declared painted top-most per CSS background-image stacking, clipped
// to the border-box's rounded rect.
func paintBackgroundImages(canvas *Canvas, box node.Box, resolved *style.Resolved, masks *roundedMaskCache) {
	if len(resolved.BackgroundImage) == 0 {
		return
	}
	w, h := int(math.Round(box.Width)), int(math.Round(box.Height))
	if w < 1 || h < 1 {
		return
	}
	m := masks.roundedRectMask(w, h, cornersOf(resolved, box))
	originX, originY := int(math.Round(box.X)), int(math.Round(box.Y))

	for i := len(resolved.BackgroundImage) - 1; i >= 0; i-- {
		grad := resolved.BackgroundImage[i]
		ctx := css0GradientDrawContext(w, h)
		resolvedGrad := grad.ToDrawContext(ctx)
		for y := 0; y < h; y++ {
			mrow := y * w
			for x := 0; x < w; x++ {
				cov := m.cov[mrow+x]
				if cov == 0 {
					continue
				}
				c := resolvedGrad.At(float64(x), float64(y))
				a := uint8((int(c.A) * int(cov)) / 255)
				canvas.Blend(originX+x, originY+y, [4]uint8{c.R, c.G, c.B, a})
			}
		}
	}
}

func paintBorder(canvas *Canvas, box node.Box, resolved *style.Resolved, masks *roundedMaskCache) {
	avgWidth := (box.Border.Top + box.Border.Right + box.Border.Bottom + box.Border.Left) / 4
	if avgWidth <= 0 || resolved.BorderColor.A == 0 {
		return
	}
	w, h := int(math.Round(box.Width)), int(math.Round(box.Height))
	if w < 1 || h < 1 {
		return
	}
	outer := masks.roundedRectMask(w, h, cornersOf(resolved, box))

	innerW, innerH := w-int(math.Round(avgWidth*2)), h-int(math.Round(avgWidth*2))
	var inner *mask
	if innerW > 0 && innerH > 0 {
		shrunk := cornersOf(resolved, box)
		shrunk.TopLeft = math.Max(0, shrunk.TopLeft-avgWidth)
		shrunk.TopRight = math.Max(0, shrunk.TopRight-avgWidth)
		shrunk.BottomRight = math.Max(0, shrunk.BottomRight-avgWidth)
		shrunk.BottomLeft = math.Max(0, shrunk.BottomLeft-avgWidth)
		inner = masks.roundedRectMask(innerW, innerH, shrunk)
	}

	originX, originY := int(math.Round(box.X)), int(math.Round(box.Y))
	innerOffX := int(math.Round(avgWidth))
	innerOffY := int(math.Round(avgWidth))
	col := [4]uint8{resolved.BorderColor.R, resolved.BorderColor.G, resolved.BorderColor.B, resolved.BorderColor.A}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cov := outer.cov[y*w+x]
			if cov == 0 {
				continue
			}
			if inner != nil {
				ix, iy := x-innerOffX, y-innerOffY
				if ix >= 0 && iy >= 0 && ix < inner.w && iy < inner.h && inner.cov[iy*inner.w+ix] > 0 {
					continue
				}
			}
			a := uint8((int(col[3]) * int(cov)) / 255)
			canvas.Blend(originX+x, originY+y, [4]uint8{col[0], col[1], col[2], a})
		}
	}
}

// paintDebugOverlay strokes a green 1px outline of the full box and a red
// 1px outline of the content box.
func paintDebugOverlay(canvas *Canvas, box node.Box) {
	strokeRect(canvas, box.X, box.Y, box.Width, box.Height, [4]uint8{0, 200, 0, 255})
	content := box.ContentBox()
	strokeRect(canvas, content.X, content.Y, content.Width, content.Height, [4]uint8{220, 0, 0, 255})
}

func strokeRect(canvas *Canvas, x, y, w, h float64, col [4]uint8) {
	x0, y0 := int(math.Round(x)), int(math.Round(y))
	x1, y1 := int(math.Round(x+w)), int(math.Round(y+h))
	for px := x0; px <= x1; px++ {
		canvas.Set(px, y0, col)
		canvas.Set(px, y1, col)
	}
	for py := y0; py <= y1; py++ {
		canvas.Set(x0, py, col)
		canvas.Set(x1, py, col)
	}
}

// blendMasked blits a flat color through a coverage mask, used by
// background-color (gradients walk the mask directly since their color
// varies per pixel).
func blendMasked(canvas *Canvas, originX, originY int, m *mask, col [4]uint8) {
	for y := 0; y < m.h; y++ {
		row := y * m.w
		for x := 0; x < m.w; x++ {
			cov := m.cov[row+x]
			if cov == 0 {
				continue
			}
			a := uint8((int(col[3]) * int(cov)) / 255)
			canvas.Blend(originX+x, originY+y, [4]uint8{col[0], col[1], col[2], a})
		}
	}
}
