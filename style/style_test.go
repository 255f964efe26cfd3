package style

import (
	"testing"

	"github.com/rupor-github/boxrender/css"
)

func TestRootResolvedFallsBackToInitial(t *testing.T) {
	r := RootResolved(Declared{})
	if r.Display != DisplayBlock {
		t.Fatalf("expected initial display block, got %v", r.Display)
	}
	if r.FontSize != (css.Length{Kind: css.Px, Value: 16}) {
		t.Fatalf("expected initial font-size 16px, got %+v", r.FontSize)
	}
}

func TestInheritForChildInheritsColorButNotWidth(t *testing.T) {
	parent := RootResolved(Declared{Color: Set(css.Color{R: 10, G: 20, B: 30, A: 255})})
	parent.Width = css.Length{Kind: css.Px, Value: 300}

	child := InheritForChild(Declared{}, parent)
	if child.Color != parent.Color {
		t.Fatalf("color is inheritable, expected child to inherit %+v, got %+v", parent.Color, child.Color)
	}
	if child.Width == parent.Width {
		t.Fatalf("width is not inheritable, child should not pick up parent's explicit 300px")
	}
}

func TestInheritForChildExplicitValueWins(t *testing.T) {
	parent := RootResolved(Declared{Color: Set(css.Color{R: 255, A: 255})})
	child := InheritForChild(Declared{Color: Set(css.Color{G: 255, A: 255})}, parent)
	if child.Color != (css.Color{G: 255, A: 255}) {
		t.Fatalf("explicit declared color should win over inheritance, got %+v", child.Color)
	}
}

func TestInheritKeywordTakesParentRegardlessOfInheritability(t *testing.T) {
	parent := RootResolved(Declared{})
	parent.Width = css.Length{Kind: css.Px, Value: 123}

	child := InheritForChild(Declared{Width: Inherit[css.Length]()}, parent)
	if child.Width != parent.Width {
		t.Fatalf("explicit \"inherit\" should copy parent's width even though width isn't normally inherited, got %+v", child.Width)
	}
}
