package render

import (
	"context"
	"testing"

	"github.com/rupor-github/boxrender/css"
	"github.com/rupor-github/boxrender/node"
	"github.com/rupor-github/boxrender/resource"
	"github.com/rupor-github/boxrender/style"
)

func TestRenderRejectsNonPixelRoot(t *testing.T) {
	root := node.NewContainer()
	root.Declared().Width = style.Set(css.Length{Kind: css.Percent, Value: 100})
	root.Declared().Height = style.Set(css.Length{Kind: css.Px, Value: 100})

	global := resource.NewGlobalContext(10, nil)
	viewport := node.Viewport{Width: 100, Height: 100, FontSize: 16}

	_, err := Render(context.Background(), viewport, global, root)
	if err != ErrInvalidRootSize {
		t.Fatalf("expected ErrInvalidRootSize, got %v", err)
	}
}

func TestRenderProducesCanvasOfViewportSize(t *testing.T) {
	root := node.NewContainer()
	root.Declared().Width = style.Set(css.Length{Kind: css.Px, Value: 200})
	root.Declared().Height = style.Set(css.Length{Kind: css.Px, Value: 150})
	root.Declared().BackgroundColor = style.Set(css.Color{R: 10, G: 20, B: 30, A: 255})

	global := resource.NewGlobalContext(10, nil)
	viewport := node.Viewport{Width: 200, Height: 150, FontSize: 16}

	canvas, err := Render(context.Background(), viewport, global, root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canvas.Width != 200 || canvas.Height != 150 {
		t.Fatalf("canvas size = %dx%d, want 200x150", canvas.Width, canvas.Height)
	}
}
