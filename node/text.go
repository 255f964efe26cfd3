package node

import (
	"context"
	"image"
	"math"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/rupor-github/boxrender/css"
)

// Text is a leaf node rendering a run of plain text, laid out greedily
// word-by-word against the resolved font and wrap constraints.
type Text struct {
	base
	Content string

	lines []shapedLine
}

func NewText(content string) *Text {
	return &Text{Content: content}
}

func (t *Text) Children() []Node      { return nil }
func (t *Text) ShouldHydrate() bool   { return false }
func (t *Text) Hydrate(context.Context, RenderContext) error { return nil }

// shapedWord is one whitespace-delimited token, pre-shaped so wrapping
// only needs to sum cached advances rather than re-run the shaper.
type shapedWord struct {
	text    string
	out     shaping.Output
	advance float64
}

type shapedLine struct {
	words []shapedWord
	width float64
}

// Measure implements the empty/zero-constraint fast path and the greedy
// word-wrap width/height computation: width constraints come from
// known.Width else avail[0] (MinContent collapses to 0, MaxContent is
// unconstrained). avail[1] is not consulted for height: the line count is
// capped to line_clamp lines when set, otherwise to the whole lines that
// fit in known.Height when that is given.
func (t *Text) Measure(avail [2]AvailableSpace, known Known, rctx RenderContext) Size {
	if strings.TrimSpace(t.Content) == "" {
		return Size{}
	}

	maxWidth := math.Inf(1)
	switch {
	case known.Width != nil:
		maxWidth = *known.Width
	case avail[0].Kind == MinContent:
		maxWidth = 0
	case avail[0].Kind == Definite:
		maxWidth = avail[0].Value
	}

	fontSizePx, _ := t.resolved.FontSize.Resolve(basisFor(rctx))
	if fontSizePx <= 0 {
		fontSizePx = rctx.ParentFontSize
	}
	lineHeight := t.resolved.LineHeight.Resolve(fontSizePx, basisFor(rctx))

	face, _ := rctx.Global.Fonts.MatchFamily(t.resolved.FontFamily)
	words := shapeWords(t.Content, face, fontSizePx)
	lines := wrapWords(words, maxWidth, spaceAdvance(face, fontSizePx))
	t.lines = lines

	lineCount := len(lines)
	if t.resolved.LineClamp > 0 && lineCount > t.resolved.LineClamp {
		lineCount = t.resolved.LineClamp
	}

	width := 0.0
	for _, ln := range lines {
		if ln.width > width {
			width = ln.width
		}
	}

	height := float64(lineCount) * lineHeight
	if known.Height != nil && t.resolved.LineClamp == 0 {
		maxLines := int(math.Floor(*known.Height / lineHeight))
		if maxLines > 0 && maxLines < lineCount {
			lineCount = maxLines
			height = float64(lineCount) * lineHeight
		}
	}

	return Size{Width: math.Ceil(width), Height: math.Ceil(height)}
}

func basisFor(rctx RenderContext) css.Basis {
	return css.Basis{
		ParentFontSize: rctx.ParentFontSize,
		RootFontSize:   rctx.Viewport.FontSize,
		ViewportWidth:  rctx.Viewport.Width,
		ViewportHeight: rctx.Viewport.Height,
	}
}

// shapeWords shapes each whitespace-separated token independently via the
// HarfBuzz-backed shaper, caching each word's total advance in pixels.
func shapeWords(content string, face *font.Face, fontSizePx float64) []shapedWord {
	fields := strings.Fields(content)
	words := make([]shapedWord, 0, len(fields))
	shaper := &shaping.HarfbuzzShaper{}
	for _, w := range fields {
		runes := []rune(w)
		if face == nil || len(runes) == 0 {
			words = append(words, shapedWord{text: w})
			continue
		}
		input := shaping.Input{
			Text:     runes,
			RunStart: 0,
			RunEnd:   len(runes),
			Face:     face,
			Size:     fixed.I(int(math.Round(fontSizePx))),
			Script:   language.Latin,
			Language: language.NewLanguage("en"),
		}
		out := shaper.Shape(input)
		words = append(words, shapedWord{text: w, out: out, advance: fixedToFloat(out.Advance)})
	}
	return words
}

func spaceAdvance(face *font.Face, fontSizePx float64) float64 {
	if face == nil {
		return fontSizePx * 0.3
	}
	shaper := &shaping.HarfbuzzShaper{}
	input := shaping.Input{
		Text:     []rune(" "),
		RunStart: 0,
		RunEnd:   1,
		Face:     face,
		Size:     fixed.I(int(math.Round(fontSizePx))),
		Script:   language.Latin,
		Language: language.NewLanguage("en"),
	}
	out := shaper.Shape(input)
	return fixedToFloat(out.Advance)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// wrapWords greedily fills lines until the next word would overflow
// maxWidth, matching simple CSS text flow (word-break: normal). A single
// word wider than maxWidth still gets its own line rather than being
// split, unless word-break/overflow-wrap policy is handled upstream.
func wrapWords(words []shapedWord, maxWidth float64, spaceW float64) []shapedLine {
	var lines []shapedLine
	var cur shapedLine
	for _, w := range words {
		next := cur.width
		if len(cur.words) > 0 {
			next += spaceW
		}
		next += w.advance
		if len(cur.words) > 0 && next > maxWidth && !math.IsInf(maxWidth, 1) {
			lines = append(lines, cur)
			cur = shapedLine{words: []shapedWord{w}, width: w.advance}
			continue
		}
		cur.words = append(cur.words, w)
		cur.width = next
	}
	if len(cur.words) > 0 {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = append(lines, shapedLine{})
	}
	return lines
}

// PaintContent walks the already-wrapped lines and, for each shaped word,
// rasterizes every glyph's own outline and blends its coverage mask onto
// the canvas at the glyph's shaped pen position.
func (t *Text) PaintContent(canvas Canvas, box Box, rctx RenderContext) {
	if len(t.lines) == 0 {
		return
	}
	content := box.ContentBox()
	fontSizePx, _ := t.resolved.FontSize.Resolve(basisFor(rctx))
	lineHeight := t.resolved.LineHeight.Resolve(fontSizePx, basisFor(rctx))
	col := [4]uint8{t.resolved.Color.R, t.resolved.Color.G, t.resolved.Color.B, t.resolved.Color.A}
	face, _ := rctx.Global.Fonts.MatchFamily(t.resolved.FontFamily)

	y := content.Y
	for i, ln := range t.lines {
		if t.resolved.LineClamp > 0 && i >= t.resolved.LineClamp {
			break
		}
		x := content.X
		baseline := y + lineHeight*0.8
		for _, w := range ln.words {
			blitGlyphRun(canvas, face, x, baseline, fontSizePx, w, col)
			x += w.advance + fontSizePx*0.3
		}
		y += lineHeight
	}
}

// blitGlyphRun walks a shaped word's glyphs in shaping order, advancing the
// pen by each glyph's own XAdvance/offset rather than by a uniform cell
// width. A word with no matching face, or a glyph with no outline (a
// space), is skipped — its footprint is already reserved by the advance.
func blitGlyphRun(canvas Canvas, face *font.Face, penX, baseline, fontSizePx float64, w shapedWord, col [4]uint8) {
	if face == nil {
		return
	}
	upem := float64(face.Upem())
	if upem <= 0 {
		upem = 1000
	}
	scale := fontSizePx / upem

	pen := penX
	for _, g := range w.out.Glyphs {
		gx := pen + fixedToFloat(g.XOffset)
		gy := baseline - fixedToFloat(g.YOffset)
		blitGlyph(canvas, face, g.GlyphID, gx, gy, scale, col)
		pen += fixedToFloat(g.XAdvance)
	}
}

// blitGlyph rasterizes one glyph outline into a tightly cropped alpha
// coverage buffer via the same rasterx scanner/filler pipeline the paint
// package uses for rounded-rect masks, then blends that coverage onto the
// canvas at the glyph's pen position. Outline coordinates come back in
// font units (y-up); they're scaled to pixel size and flipped to the
// canvas's y-down convention before rasterizing.
func blitGlyph(canvas Canvas, face *font.Face, gid font.GID, originX, originY, scale float64, col [4]uint8) {
	data := face.GlyphData(gid)
	outline, ok := data.(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, seg := range outline.Segments {
		n := segmentPointCount(seg.Op)
		for i := 0; i < n; i++ {
			px, py := float64(seg.Args[i].X)*scale, -float64(seg.Args[i].Y)*scale
			minX, maxX = math.Min(minX, px), math.Max(maxX, px)
			minY, maxY = math.Min(minY, py), math.Max(maxY, py)
		}
	}
	if math.IsInf(minX, 1) {
		return
	}

	const margin = 1.0
	w := int(math.Ceil(maxX-minX+2*margin))
	h := int(math.Ceil(maxY-minY+2*margin))
	if w <= 0 || h <= 0 {
		return
	}
	offX, offY := -minX+margin, -minY+margin

	img := image.NewAlpha(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(image.Opaque)

	pt := func(p font.SegmentPoint) fixed.Point26_6 {
		return rasterx.ToFixedP(float64(p.X)*scale+offX, -float64(p.Y)*scale+offY)
	}

	open := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case font.SegmentOpMoveTo:
			if open {
				filler.Stop(true)
			}
			filler.Start(pt(seg.Args[0]))
			open = true
		case font.SegmentOpLineTo:
			filler.Line(pt(seg.Args[0]))
		case font.SegmentOpQuadTo:
			filler.QuadBezier(pt(seg.Args[0]), pt(seg.Args[1]))
		case font.SegmentOpCubeTo:
			filler.CubicBezier(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}
	if open {
		filler.Stop(true)
	}
	filler.Draw()

	baseX := int(math.Round(originX - offX))
	baseY := int(math.Round(originY - offY))
	for py := 0; py < h; py++ {
		row := py * img.Stride
		for px := 0; px < w; px++ {
			cov := img.Pix[row+px]
			if cov == 0 {
				continue
			}
			a := uint8((int(col[3]) * int(cov)) / 255)
			canvas.Blend(baseX+px, baseY+py, [4]uint8{col[0], col[1], col[2], a})
		}
	}
}

func segmentPointCount(op font.SegmentOp) int {
	switch op {
	case font.SegmentOpQuadTo:
		return 2
	case font.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}

