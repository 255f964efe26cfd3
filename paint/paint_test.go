package paint

import (
	"testing"

	"github.com/rupor-github/boxrender/css"
	"github.com/rupor-github/boxrender/layout"
	"github.com/rupor-github/boxrender/node"
	"github.com/rupor-github/boxrender/resource"
	"github.com/rupor-github/boxrender/style"
)

func rootRctx() node.RenderContext {
	return node.RenderContext{
		Global:   resource.NewGlobalContext(10, nil),
		Viewport: node.Viewport{Width: 100, Height: 100, FontSize: 16},
	}
}

func TestWalkAppliesTranslateTransform(t *testing.T) {
	box := node.NewContainer()
	box.SetResolved(style.Resolved{
		BackgroundColor: css.Color{R: 255, A: 255},
		Transform:       "translate(20px, 0px)",
	})
	boxBox := node.Box{X: 10, Y: 10, Width: 10, Height: 10}
	result := &layout.Result{Node: box, Box: boxBox}

	canvas := NewCanvas(100, 100)
	Walk(canvas, result, rootRctx(), false)

	if canvas.Pix[(15*100+15)*4+3] != 0 {
		t.Fatalf("untranslated origin should be empty, the box should have moved")
	}
	o := (15*100 + 35) * 4
	if canvas.Pix[o] != 255 || canvas.Pix[o+3] == 0 {
		t.Fatalf("translated box should paint red at its shifted position, got %v", canvas.Pix[o:o+4])
	}
}

func TestWalkIdentityTransformUsesFastPath(t *testing.T) {
	box := node.NewContainer()
	box.SetResolved(style.Resolved{BackgroundColor: css.Color{G: 255, A: 255}})
	boxBox := node.Box{X: 5, Y: 5, Width: 10, Height: 10}
	result := &layout.Result{Node: box, Box: boxBox}

	canvas := NewCanvas(40, 40)
	Walk(canvas, result, rootRctx(), false)

	o := (10*40 + 10) * 4
	if canvas.Pix[o+1] != 255 {
		t.Fatalf("expected green fill at box center, got %v", canvas.Pix[o:o+4])
	}
}

func TestNodeTransformPivotsAtBoxCenter(t *testing.T) {
	box := node.Box{X: 10, Y: 10, Width: 20, Height: 20}
	resolved := &style.Resolved{Transform: "scale(2)"}
	m := nodeTransform(resolved, box)

	cx, cy := box.X+box.Width/2, box.Y+box.Height/2
	x, y := m.Apply(cx, cy)
	if x != cx || y != cy {
		t.Fatalf("scale should leave the pivot (box center) fixed, got (%v, %v) want (%v, %v)", x, y, cx, cy)
	}
}
