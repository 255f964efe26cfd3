package node

import "context"

// Container groups children under a box/flex/grid layout and paints no
// content of its own — its background, border and shadow are still drawn
// by the orchestrator from its resolved style, just like any other node.
type Container struct {
	base
	children []Node
}

func NewContainer(children ...Node) *Container {
	return &Container{children: children}
}

func (c *Container) Children() []Node { return c.children }

// ShouldHydrate is the OR of every descendant's ShouldHydrate: a container
// itself never needs hydration, but the orchestrator must still visit it
// to reach image descendants.
func (c *Container) ShouldHydrate() bool {
	for _, child := range c.children {
		if child.ShouldHydrate() {
			return true
		}
	}
	return false
}

func (c *Container) Hydrate(ctx context.Context, rctx RenderContext) error {
	return nil
}

func (c *Container) Measure(avail [2]AvailableSpace, known Known, rctx RenderContext) Size {
	// A container's size is driven entirely by the layout solver (block,
	// flex or grid algorithm operating over its children); it never
	// reports an intrinsic size of its own.
	return Size{}
}

func (c *Container) PaintContent(canvas Canvas, box Box, rctx RenderContext) {}
