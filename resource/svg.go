package resource

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// defaultSVGSize is used when a document's viewBox carries no usable
// dimensions at all.
const defaultSVGSize = 300

// SVGIntrinsicSize parses just enough of an SVG document to report its
// natural aspect ratio, without rasterizing — used by the measure pass for
// an <image> node whose width or height is auto.
func SVGIntrinsicSize(svgData []byte) (w, h float64, err error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return 0, 0, fmt.Errorf("parse SVG: %w", err)
	}
	w, h = icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 {
		w = defaultSVGSize
	}
	if h <= 0 {
		h = defaultSVGSize
	}
	return w, h, nil
}

// RasterizeSVG renders svgData into an RGBA bitmap at exactly targetW by
// targetH pixels; the caller (the measure/object-fit pipeline) is
// responsible for choosing that size. The destination starts fully
// transparent so a document that never paints part of its viewBox leaves
// that area free for whatever sits behind it in the box tree.
func RasterizeSVG(svgData []byte, targetW, targetH int) (image.Image, error) {
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("parse SVG: %w", err)
	}

	icon.SetTarget(0, 0, float64(targetW), float64(targetH))

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(targetW, targetH, dst, dst.Bounds())
	dasher := rasterx.NewDasher(targetW, targetH, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
