package node

import (
	"context"
	"testing"

	"github.com/rupor-github/boxrender/resource"
	"github.com/rupor-github/boxrender/style"
)

func testRenderContext() RenderContext {
	return RenderContext{
		Global:         resource.NewGlobalContext(10, nil),
		Viewport:       Viewport{Width: 800, Height: 600, FontSize: 16},
		ParentFontSize: 16,
	}
}

func TestContainerShouldHydrateIsOrOfChildren(t *testing.T) {
	leaf := NewImage("missing")
	c := NewContainer(leaf)
	if !c.ShouldHydrate() {
		t.Fatalf("expected container to need hydration while its image child does")
	}

	leaf.cached = &resource.ImageState{NetworkError: true}
	if c.ShouldHydrate() {
		t.Fatalf("expected container hydration to settle once children are resolved")
	}
}

func TestImageShouldHydrateUntilResolved(t *testing.T) {
	im := NewImage("local://asset")
	if !im.ShouldHydrate() {
		t.Fatalf("fresh image node should need hydration")
	}

	rctx := testRenderContext()
	rctx.Global.Persistent.Insert("local://asset", resource.ImageSource{})
	if err := im.Hydrate(context.Background(), rctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if im.ShouldHydrate() {
		t.Fatalf("image should no longer need hydration once cached")
	}
}

func TestImageMeasureScalesByAspectRatio(t *testing.T) {
	im := NewImage("x")
	im.cached = &resource.ImageState{Source: &resource.ImageSource{Svg: []byte(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100"></svg>`)}}

	kw := 100.0
	size := im.Measure(
		[2]AvailableSpace{{Kind: MaxContent}, {Kind: MaxContent}},
		Known{Width: &kw},
		testRenderContext(),
	)
	if size.Width != 100 || size.Height != 50 {
		t.Fatalf("got %+v, want 100x50", size)
	}
}

func TestTextMeasureEmptyContent(t *testing.T) {
	tx := NewText("   ")
	size := tx.Measure([2]AvailableSpace{{Kind: MaxContent}, {Kind: MaxContent}}, Known{}, testRenderContext())
	if size.Width != 0 || size.Height != 0 {
		t.Fatalf("expected zero size for whitespace-only text, got %+v", size)
	}
}

func TestTextMeasureWrapsOnWidthConstraint(t *testing.T) {
	tx := NewText("one two three four five")
	tx.resolved = style.Initial()
	tx.resolved.FontSize.Value = 16

	narrow := tx.Measure([2]AvailableSpace{{Kind: Definite, Value: 40}, {Kind: MaxContent}}, Known{}, testRenderContext())
	wide := tx.Measure([2]AvailableSpace{{Kind: Definite, Value: 4000}, {Kind: MaxContent}}, Known{}, testRenderContext())

	if narrow.Height <= wide.Height {
		t.Fatalf("narrower constraint should wrap to more lines: narrow=%+v wide=%+v", narrow, wide)
	}
}
