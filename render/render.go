// Package render implements the top-level render(viewport, global, root)
// orchestrator: inherit styles, hydrate, lay out, paint, and hand back
// the finished canvas.
package render

import (
	"context"
	"fmt"

	"github.com/rupor-github/boxrender/css"
	"github.com/rupor-github/boxrender/layout"
	"github.com/rupor-github/boxrender/node"
	"github.com/rupor-github/boxrender/paint"
	"github.com/rupor-github/boxrender/resource"
	"github.com/rupor-github/boxrender/style"
)

// RenderError distinguishes the orchestrator's own precondition failures
// from whatever a node's Hydrate returned.
type RenderError struct {
	msg string
}

func (e *RenderError) Error() string { return e.msg }

var ErrInvalidRootSize = &RenderError{msg: "root node must have a definite pixel width and height"}

// Render walks the full pipeline described in the orchestrator design:
// inherit styles top-down, hydrate, build and solve the layout tree
// (requiring the root's width/height to be definite pixels), allocate
// the canvas, paint, and return it.
func Render(ctx context.Context, viewport node.Viewport, global *resource.GlobalContext, root node.Node) (*paint.Canvas, error) {
	inheritStyles(root, style.RootResolved(*root.Declared()))

	if err := hydrate(ctx, root, global, viewport); err != nil {
		return nil, fmt.Errorf("hydrate: %w", err)
	}

	resolved := root.Resolved()
	if resolved.Width.Kind != css.Px || resolved.Height.Kind != css.Px {
		return nil, ErrInvalidRootSize
	}

	rctx := node.RenderContext{Global: global, Viewport: viewport, ParentFontSize: viewport.FontSize}
	solved := layout.Solve(root, rctx)

	canvas := paint.NewCanvas(int(viewport.Width), int(viewport.Height))
	paint.Walk(canvas, solved, rctx, global.DrawDebugBorder)

	return canvas, nil
}

// inheritStyles walks the declared tree top-down, resolving each node's
// style against its parent's already-resolved style and storing the
// result on the node, per the single-pass cascade described in the style
// resolution design.
func inheritStyles(n node.Node, resolved style.Resolved) {
	n.SetResolved(resolved)
	for _, child := range n.Children() {
		childResolved := style.InheritForChild(*child.Declared(), resolved)
		inheritStyles(child, childResolved)
	}
}

// hydrate walks the tree depth-first and resolves every node whose
// ShouldHydrate is true, one node at a time; hydration completes in full
// before this function returns, satisfying the ordering invariant that
// hydration precedes measurement. A cancelled ctx is checked before each
// node and stops the walk with ctx's error.
func hydrate(ctx context.Context, root node.Node, global *resource.GlobalContext, viewport node.Viewport) error {
	rctx := node.RenderContext{Global: global, Viewport: viewport, ParentFontSize: viewport.FontSize}
	return hydrateNode(ctx, root, rctx)
}

func hydrateNode(ctx context.Context, n node.Node, rctx node.RenderContext) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.ShouldHydrate() {
		if err := n.Hydrate(ctx, rctx); err != nil {
			return err
		}
	}
	for _, child := range n.Children() {
		if err := hydrateNode(ctx, child, rctx); err != nil {
			return err
		}
	}
	return nil
}
