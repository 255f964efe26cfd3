package layout

import (
	"testing"

	"github.com/rupor-github/boxrender/css"
	"github.com/rupor-github/boxrender/node"
	"github.com/rupor-github/boxrender/resource"
	"github.com/rupor-github/boxrender/style"
)

func rootContext() node.RenderContext {
	return node.RenderContext{
		Global:         resource.NewGlobalContext(10, nil),
		Viewport:       node.Viewport{Width: 400, Height: 300, FontSize: 16},
		ParentFontSize: 16,
	}
}

func TestSolveBlockStacksChildren(t *testing.T) {
	auto := css.Length{Kind: css.Auto}
	a := node.NewText("a")
	a.SetResolved(style.Resolved{Display: style.DisplayBlock, Width: auto, Height: css.Length{Kind: css.Px, Value: 50}, FontSize: css.Length{Kind: css.Px, Value: 16}})
	b := node.NewText("b")
	b.SetResolved(style.Resolved{Display: style.DisplayBlock, Width: auto, Height: css.Length{Kind: css.Px, Value: 30}, FontSize: css.Length{Kind: css.Px, Value: 16}})

	root := node.NewContainer(a, b)
	root.SetResolved(style.Resolved{Display: style.DisplayBlock, Width: css.Length{Kind: css.Px, Value: 400}, Height: css.Length{Kind: css.Px, Value: 300}})

	result := Solve(root, rootContext())
	if len(result.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(result.Children))
	}
	if result.Children[0].Box.Y != 0 {
		t.Fatalf("first child Y = %v, want 0", result.Children[0].Box.Y)
	}
	if result.Children[1].Box.Y != 50 {
		t.Fatalf("second child Y = %v, want 50", result.Children[1].Box.Y)
	}
}

func TestLayoutFlexDistributesGrow(t *testing.T) {
	auto := css.Length{Kind: css.Auto}
	a := node.NewContainer()
	a.SetResolved(style.Resolved{Display: style.DisplayBlock, FlexGrow: 1, Width: auto, Height: auto})
	b := node.NewContainer()
	b.SetResolved(style.Resolved{Display: style.DisplayBlock, FlexGrow: 1, Width: auto, Height: auto})

	root := node.NewContainer(a, b)
	root.SetResolved(style.Resolved{
		Display:       style.DisplayFlex,
		FlexDirection: style.FlexRow,
		Width:         css.Length{Kind: css.Px, Value: 400},
		Height:        css.Length{Kind: css.Px, Value: 100},
	})

	result := Solve(root, rootContext())
	if result.Children[0].Box.Width != 200 || result.Children[1].Box.Width != 200 {
		t.Fatalf("expected equal 200px split, got %+v / %+v", result.Children[0].Box, result.Children[1].Box)
	}
}

func TestLayoutGridSizesFrTracksAndAutoFlows(t *testing.T) {
	auto := css.Length{Kind: css.Auto}
	a := node.NewContainer()
	a.SetResolved(style.Resolved{Display: style.DisplayBlock, Width: auto, Height: auto})
	b := node.NewContainer()
	b.SetResolved(style.Resolved{Display: style.DisplayBlock, Width: auto, Height: auto})
	c := node.NewContainer()
	c.SetResolved(style.Resolved{Display: style.DisplayBlock, Width: auto, Height: auto})

	root := node.NewContainer(a, b, c)
	root.SetResolved(style.Resolved{
		Display:             style.DisplayGrid,
		Width:               css.Length{Kind: css.Px, Value: 300},
		Height:              css.Length{Kind: css.Px, Value: 200},
		GridTemplateColumns: []style.TrackSize{{Kind: style.TrackFr, Value: 1}, {Kind: style.TrackFr, Value: 2}},
	})

	result := Solve(root, rootContext())
	if len(result.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(result.Children))
	}
	if w := result.Children[0].Box.Width; w != 100 {
		t.Fatalf("1fr column width = %v, want 100", w)
	}
	if w := result.Children[1].Box.Width; w != 200 {
		t.Fatalf("2fr column width = %v, want 200", w)
	}
	// third child auto-flows to the next row, back in column 1.
	if x, y := result.Children[2].Box.X, result.Children[2].Box.Y; x != 0 || y != 100 {
		t.Fatalf("auto-flowed child position = (%v, %v), want (0, 100)", x, y)
	}
}

func TestLayoutGridPlacesNamedAreas(t *testing.T) {
	auto := css.Length{Kind: css.Auto}
	header := node.NewContainer()
	header.SetResolved(style.Resolved{Display: style.DisplayBlock, Width: auto, Height: auto, GridRow: style.GridPlacement{Area: "header"}})
	main := node.NewContainer()
	main.SetResolved(style.Resolved{Display: style.DisplayBlock, Width: auto, Height: auto, GridRow: style.GridPlacement{Area: "main"}})

	areas, err := style.ParseGridTemplateAreas("\"header header\"\n\"main main\"")
	if err != nil {
		t.Fatalf("ParseGridTemplateAreas error: %v", err)
	}

	root := node.NewContainer(header, main)
	root.SetResolved(style.Resolved{
		Display:           style.DisplayGrid,
		Width:             css.Length{Kind: css.Px, Value: 300},
		Height:            css.Length{Kind: css.Px, Value: 200},
		GridTemplateAreas: areas,
	})

	result := Solve(root, rootContext())
	if y := result.Children[0].Box.Y; y != 0 {
		t.Fatalf("header row Y = %v, want 0", y)
	}
	if y := result.Children[1].Box.Y; y != 100 {
		t.Fatalf("main row Y = %v, want 100", y)
	}
	if w := result.Children[0].Box.Width; w != 300 {
		t.Fatalf("header spans both columns, want width 300, got %v", w)
	}
}
