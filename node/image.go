package node

import (
	"context"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/rupor-github/boxrender/resource"
	"github.com/rupor-github/boxrender/style"
)

// Image is a leaf node rendering a single bitmap or SVG source, resolved
// from Src through the GlobalContext's resource stores during hydration.
type Image struct {
	base
	Src string

	cached *resource.ImageState
}

func NewImage(src string) *Image {
	return &Image{Src: src}
}

func (im *Image) Children() []Node { return nil }

// ShouldHydrate is true iff cached_image is still empty, i.e. hydration
// hasn't resolved Src yet for this node instance.
func (im *Image) ShouldHydrate() bool { return im.cached == nil }

func (im *Image) Hydrate(ctx context.Context, rctx RenderContext) error {
	state := rctx.Global.Resolve(ctx, im.Src)
	im.cached = &state
	return nil
}

// intrinsicSize reports the source's natural pixel size, parsing just the
// SVG viewBox when the source is vector.
func (im *Image) intrinsicSize() (w, h float64, ok bool) {
	if im.cached == nil || im.cached.Source == nil {
		return 0, 0, false
	}
	src := im.cached.Source
	if src.IsSvg() {
		w, h, err := resource.SVGIntrinsicSize(src.Svg)
		if err != nil {
			return 0, 0, false
		}
		return w, h, true
	}
	iw, ih, ok := src.IntrinsicSize()
	return float64(iw), float64(ih), ok
}

// Measure implements the image sizing rule: both axes known use them
// verbatim; one known axis scales the other by the intrinsic aspect
// ratio; neither known starts from the intrinsic size; a definite
// available space that would shrink either axis rescales maintaining
// aspect ratio, with the perpendicular constraint re-checked once.
func (im *Image) Measure(avail [2]AvailableSpace, known Known, rctx RenderContext) Size {
	iw, ih, ok := im.intrinsicSize()
	if !ok {
		iw, ih = 0, 0
	}
	aspect := 1.0
	if ih != 0 {
		aspect = iw / ih
	}

	w, h := iw, ih
	switch {
	case known.Width != nil && known.Height != nil:
		w, h = *known.Width, *known.Height
	case known.Width != nil:
		w = *known.Width
		h = w / aspect
	case known.Height != nil:
		h = *known.Height
		w = h * aspect
	}

	if avail[0].Kind == Definite && avail[0].Value < w {
		w = avail[0].Value
		h = w / aspect
		if avail[1].Kind == Definite && avail[1].Value < h {
			h = avail[1].Value
			w = h * aspect
		}
	}
	if avail[1].Kind == Definite && avail[1].Value < h {
		h = avail[1].Value
		w = h * aspect
		if avail[0].Kind == Definite && avail[0].Value < w {
			w = avail[0].Value
			h = w / aspect
		}
	}

	return Size{Width: w, Height: h}
}

// PaintContent composites the resolved source into the content box per
// the node's object-fit, resampling via Lanczos for downscales and
// bilinear for modest upscales; SVG sources are rasterized directly at
// the destination size rather than resampled after the fact.
func (im *Image) PaintContent(canvas Canvas, box Box, rctx RenderContext) {
	if im.cached == nil || im.cached.Source == nil {
		return
	}
	content := box.ContentBox()
	dstW := int(math.Round(content.Width))
	dstH := int(math.Round(content.Height))
	if dstW < 1 || dstH < 1 {
		return
	}

	fit := im.resolved.ObjectFit
	src := im.cached.Source

	var bitmap image.Image
	if src.IsSvg() {
		sw, sh := fitSourceRect(svgDimOrDefault(src.Svg), dstW, dstH, fit)
		img, err := resource.RasterizeSVG(src.Svg, sw, sh)
		if err != nil {
			return
		}
		bitmap = img
		if fit == style.ObjectFitCover || fit == style.ObjectFitNone {
			bitmap = imaging.CropCenter(img, dstW, dstH)
		}
	} else {
		bitmap = resampleForFit(src.Bitmap, dstW, dstH, fit)
	}

	blitCentered(canvas, bitmap, int(math.Round(content.X)), int(math.Round(content.Y)), dstW, dstH)
}

func svgDimOrDefault(svg []byte) (int, int) {
	w, h, err := resource.SVGIntrinsicSize(svg)
	if err != nil || w <= 0 || h <= 0 {
		return 300, 300
	}
	return int(math.Round(w)), int(math.Round(h))
}

// fitSourceRect returns the size to rasterize/resample a source at, given
// its intrinsic size and the destination content box, honoring object-fit.
func fitSourceRect(iw, ih int, dstW, dstH int, fit style.ObjectFit) (w, h int) {
	if iw <= 0 || ih <= 0 {
		return dstW, dstH
	}
	switch fit {
	case style.ObjectFitFill:
		return dstW, dstH
	case style.ObjectFitNone:
		return iw, ih
	case style.ObjectFitContain, style.ObjectFitScaleDown:
		scale := math.Min(float64(dstW)/float64(iw), float64(dstH)/float64(ih))
		if fit == style.ObjectFitScaleDown && scale > 1 {
			scale = 1
		}
		return int(math.Round(float64(iw) * scale)), int(math.Round(float64(ih) * scale))
	case style.ObjectFitCover:
		scale := math.Max(float64(dstW)/float64(iw), float64(dstH)/float64(ih))
		return int(math.Round(float64(iw) * scale)), int(math.Round(float64(ih) * scale))
	default:
		return dstW, dstH
	}
}

// resampleForFit resizes a decoded bitmap to the object-fit's target
// size, then center-crops to the destination box for cover/none.
func resampleForFit(src image.Image, dstW, dstH int, fit style.ObjectFit) image.Image {
	b := src.Bounds()
	iw, ih := b.Dx(), b.Dy()
	if iw == 0 || ih == 0 {
		return src
	}

	tw, th := fitSourceRect(iw, ih, dstW, dstH, fit)

	filter := imaging.Lanczos
	if tw >= iw && th >= ih && tw <= iw*2 && th <= ih*2 {
		filter = imaging.Linear
	}

	resized := imaging.Resize(src, tw, th, filter)

	switch fit {
	case style.ObjectFitCover, style.ObjectFitNone:
		return imaging.CropCenter(resized, dstW, dstH)
	default:
		return resized
	}
}

// blitCentered composites src onto canvas, centering it within a dstW by
// dstH window anchored at (originX, originY) — the content box origin for
// fill/none/contain/scale-down, or the pre-cropped exact box for cover.
func blitCentered(canvas Canvas, src image.Image, originX, originY, dstW, dstH int) {
	b := src.Bounds()
	offX := originX + (dstW-b.Dx())/2
	offY := originY + (dstH-b.Dy())/2

	cw, ch := canvas.Bounds()
	for y := 0; y < b.Dy(); y++ {
		py := offY + y
		if py < 0 || py >= ch {
			continue
		}
		for x := 0; x < b.Dx(); x++ {
			px := offX + x
			if px < 0 || px >= cw {
				continue
			}
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			canvas.Blend(px, py, [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)})
		}
	}
}
