// Package node defines the polymorphic box tree: Container, Text and Image
// nodes sharing a common capability set (style access, child enumeration,
// hydration, measurement, paint) dispatched through the Node interface
// rather than a tagged-union macro, per Go convention.
package node

import (
	"context"

	"github.com/rupor-github/boxrender/css"
	"github.com/rupor-github/boxrender/resource"
	"github.com/rupor-github/boxrender/style"
)

// Size is a resolved width/height pair in pixels.
type Size struct {
	Width, Height float64
}

// AvailableSpaceKind is one of the three CSS sizing intents a measure call
// may receive on a given axis.
type AvailableSpaceKind int

const (
	MinContent AvailableSpaceKind = iota
	MaxContent
	Definite
)

// AvailableSpace is one axis's layout constraint.
type AvailableSpace struct {
	Kind  AvailableSpaceKind
	Value float64 // meaningful only when Kind == Definite
}

func DefiniteSpace(v float64) AvailableSpace { return AvailableSpace{Kind: Definite, Value: v} }

// Known is the pair of already-resolved axis sizes a measure call may have.
type Known struct {
	Width, Height *float64
}

// Viewport is the outermost sizing context: the canvas dimensions and the
// root font size lengths resolve "rem" against.
type Viewport struct {
	Width, Height float64
	FontSize      float64
}

// DefaultFontSize is used when a viewport doesn't specify one, matching the
// original source's default.
const DefaultFontSize = 16.0

// RenderContext is the ephemeral, cloned-on-descent context threaded
// through hydrate/measure/paint: a reference to process-scoped global
// state plus the viewport, the inherited font size needed to resolve
// "em"/"rem" lengths at any depth, and the accumulated CSS transform of
// every ancestor (and the node itself once painted), pivoted at each
// box's own center, so descendants inherit their parent's transform the
// way CSS's transform property does.
type RenderContext struct {
	Global         *resource.GlobalContext
	Viewport       Viewport
	ParentFontSize float64
	Transform      css.Affine
}

// WithParentFontSize returns a copy of ctx for a child whose own resolved
// font-size is fontSizePx.
func (ctx RenderContext) WithParentFontSize(fontSizePx float64) RenderContext {
	ctx.ParentFontSize = fontSizePx
	return ctx
}

// Node is implemented by *Container, *Text and *Image. A Container's own
// PaintContent is always a no-op; its children are painted by the
// orchestrator's recursive walk, not by PaintContent.
type Node interface {
	Declared() *style.Declared
	Resolved() *style.Resolved
	SetResolved(style.Resolved)
	Children() []Node
	ShouldHydrate() bool
	Hydrate(ctx context.Context, rctx RenderContext) error
	Measure(avail [2]AvailableSpace, known Known, rctx RenderContext) Size
	PaintContent(canvas Canvas, box Box, rctx RenderContext)
}

// Canvas is the minimal surface paint content needs; the concrete
// implementation (an alpha-blending RGBA buffer) lives in package paint.
type Canvas interface {
	Bounds() (w, h int)
	Set(x, y int, c [4]uint8)
	Blend(x, y int, c [4]uint8)
}

// Box is a node's resolved layout geometry in absolute canvas
// coordinates, matching the Layout record described in the layout
// driver design.
type Box struct {
	X, Y          float64
	Width, Height float64
	Padding       style.Sides[float64]
	Border        style.Sides[float64]
}

// ContentBox returns the box with padding and border removed.
func (b Box) ContentBox() Box {
	return Box{
		X:      b.X + b.Border.Left + b.Padding.Left,
		Y:      b.Y + b.Border.Top + b.Padding.Top,
		Width:  b.Width - b.Border.Left - b.Border.Right - b.Padding.Left - b.Padding.Right,
		Height: b.Height - b.Border.Top - b.Border.Bottom - b.Padding.Top - b.Padding.Bottom,
	}
}

// base holds the fields every node kind shares.
type base struct {
	declared style.Declared
	resolved style.Resolved
}

func (b *base) Declared() *style.Declared   { return &b.declared }
func (b *base) Resolved() *style.Resolved   { return &b.resolved }
func (b *base) SetResolved(r style.Resolved) { b.resolved = r }
