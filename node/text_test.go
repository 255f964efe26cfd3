package node

import (
	"testing"

	"github.com/go-text/typesetting/font"

	"github.com/rupor-github/boxrender/css"
	"github.com/rupor-github/boxrender/style"
)

type fakeCanvas struct {
	w, h  int
	set   int
	blend int
}

func (c *fakeCanvas) Bounds() (int, int) { return c.w, c.h }
func (c *fakeCanvas) Set(x, y int, col [4]uint8) {
	c.set++
}
func (c *fakeCanvas) Blend(x, y int, col [4]uint8) {
	c.blend++
}

func TestTextMeasureEmptyContentIsZero(t *testing.T) {
	txt := NewText("   ")
	size := txt.Measure([2]AvailableSpace{DefiniteSpace(200), DefiniteSpace(100)}, Known{}, testRenderContext())
	if size.Width != 0 || size.Height != 0 {
		t.Fatalf("blank text should measure to zero, got %+v", size)
	}
}

func TestTextMeasureWrapsOnMaxWidth(t *testing.T) {
	txt := NewText("a a a a a a a a a a")
	txt.SetResolved(style.Resolved{
		FontSize:   css.Length{Kind: css.Px, Value: 16},
		LineHeight: style.LineHeight{Normal: true},
	})
	narrow := txt.Measure([2]AvailableSpace{DefiniteSpace(20), DefiniteSpace(1000)}, Known{}, testRenderContext())
	wide := txt.Measure([2]AvailableSpace{DefiniteSpace(2000), DefiniteSpace(1000)}, Known{}, testRenderContext())
	if narrow.Height <= wide.Height {
		t.Fatalf("narrower available width should wrap onto more lines (taller box): narrow=%+v wide=%+v", narrow, wide)
	}
}

func TestPaintContentWithoutFaceIsNoop(t *testing.T) {
	txt := NewText("hello world")
	txt.SetResolved(style.Resolved{
		FontSize:   css.Length{Kind: css.Px, Value: 16},
		LineHeight: style.LineHeight{Normal: true},
		Color:      css.Color{R: 255, A: 255},
	})
	rctx := testRenderContext()
	txt.Measure([2]AvailableSpace{DefiniteSpace(200), DefiniteSpace(100)}, Known{}, rctx)

	canvas := &fakeCanvas{w: 200, h: 100}
	txt.PaintContent(canvas, Box{Width: 200, Height: 100}, rctx)

	if canvas.blend != 0 {
		t.Fatalf("with no registered font face, no glyph should be blitted, got %d blends", canvas.blend)
	}
}

func TestSegmentPointCountMatchesOpArity(t *testing.T) {
	if n := segmentPointCount(font.SegmentOpMoveTo); n != 1 {
		t.Fatalf("moveTo takes 1 point, got %d", n)
	}
	if n := segmentPointCount(font.SegmentOpQuadTo); n != 2 {
		t.Fatalf("quadTo takes 2 points, got %d", n)
	}
	if n := segmentPointCount(font.SegmentOpCubeTo); n != 3 {
		t.Fatalf("cubeTo takes 3 points, got %d", n)
	}
}
