// Package layout implements the box/flex/grid constraint solver that
// turns a hydrated node tree into a tree of resolved geometry boxes.
package layout

import (
	"math"

	"github.com/rupor-github/boxrender/css"
	"github.com/rupor-github/boxrender/node"
	"github.com/rupor-github/boxrender/style"
)

// Result is the resolved geometry for one node, in absolute canvas
// coordinates, plus its children's results in tree order.
type Result struct {
	Node     node.Node
	Box      node.Box
	Children []*Result
}

// Solve lays out root against the viewport as available space and
// returns the root's resolved geometry tree. Every node must already be
// resolved (inherit_style_for_children) and hydrated before this runs.
func Solve(root node.Node, rctx node.RenderContext) *Result {
	avail := [2]node.AvailableSpace{
		node.DefiniteSpace(rctx.Viewport.Width),
		node.DefiniteSpace(rctx.Viewport.Height),
	}
	box := node.Box{Width: rctx.Viewport.Width, Height: rctx.Viewport.Height}
	return layoutNode(root, box, avail, rctx)
}

// layoutNode resolves this node's own box (size, padding, border) against
// the available space it was offered, then dispatches to the child
// placement algorithm matching its resolved display.
func layoutNode(n node.Node, box node.Box, avail [2]node.AvailableSpace, rctx node.RenderContext) *Result {
	resolved := n.Resolved()
	box = resolveBoxGeometry(n, box, avail, rctx)

	children := n.Children()
	res := &Result{Node: n, Box: box}
	if len(children) == 0 || resolved.Display == style.DisplayNone {
		return res
	}

	content := box.ContentBox()
	switch resolved.Display {
	case style.DisplayFlex:
		res.Children = layoutFlex(resolved, children, content, rctx)
	case style.DisplayGrid:
		res.Children = layoutGrid(resolved, children, content, rctx)
	default:
		res.Children = layoutBlock(children, content, rctx)
	}
	return res
}

// containingBlockBasis builds the css.Basis a node's own length
// properties resolve against: percentages are relative to the box it was
// offered, em/rem/vw/vh come from the render context.
func containingBlockBasis(containingBlock float64, rctx node.RenderContext) css.Basis {
	return css.Basis{
		ContainingBlock: containingBlock,
		ParentFontSize:  rctx.ParentFontSize,
		RootFontSize:    rctx.Viewport.FontSize,
		ViewportWidth:   rctx.Viewport.Width,
		ViewportHeight:  rctx.Viewport.Height,
	}
}

func resolveSides(s style.Sides[css.Length], basis css.Basis) style.Sides[float64] {
	top, _ := s.Top.Resolve(basis)
	right, _ := s.Right.Resolve(basis)
	bottom, _ := s.Bottom.Resolve(basis)
	left, _ := s.Left.Resolve(basis)
	return style.Sides[float64]{Top: top, Right: right, Bottom: bottom, Left: left}
}

// resolveBoxGeometry resolves width/height/padding/border for n against
// the available space and known size hints, calling the node's own
// Measure for leaves whose size isn't fully determined by style alone.
func resolveBoxGeometry(n node.Node, box node.Box, avail [2]node.AvailableSpace, rctx node.RenderContext) node.Box {
	resolved := n.Resolved()
	widthBasis := containingBlockBasis(box.Width, rctx)
	heightBasis := containingBlockBasis(box.Height, rctx)

	padding := resolveSides(resolved.Padding, widthBasis)
	border := resolveSides(resolved.BorderWidth, widthBasis)

	known := node.Known{}
	if w, ok := resolved.Width.Resolve(widthBasis); ok {
		known.Width = &w
	}
	if h, ok := resolved.Height.Resolve(heightBasis); ok {
		known.Height = &h
	}

	width, height := box.Width, box.Height
	if _, isContainer := n.(*node.Container); !isContainer && len(n.Children()) == 0 {
		size := n.Measure(avail, known, rctx)
		if known.Width != nil {
			width = *known.Width
		} else {
			width = size.Width
		}
		if known.Height != nil {
			height = *known.Height
		} else {
			height = size.Height
		}
	} else {
		if known.Width != nil {
			width = *known.Width
		}
		if known.Height != nil {
			height = *known.Height
		}
	}

	return node.Box{
		X: box.X, Y: box.Y,
		Width: width, Height: height,
		Padding: padding, Border: border,
	}
}

// layoutBlock stacks children vertically, offering each the full content
// width (a leaf with auto width takes its measured width instead) and
// advancing Y by each child's border-box height; margins are not applied.
func layoutBlock(children []node.Node, content node.Box, rctx node.RenderContext) []*Result {
	results := make([]*Result, 0, len(children))
	y := content.Y
	for _, child := range children {
		avail := [2]node.AvailableSpace{
			node.DefiniteSpace(content.Width),
			{Kind: node.MaxContent},
		}
		childBox := node.Box{X: content.X, Y: y, Width: content.Width}
		res := layoutNode(child, childBox, avail, rctx)
		results = append(results, res)
		y += res.Box.Height
	}
	return results
}

type flexItem struct {
	child        node.Node
	basis        float64
	grow, shrink float64
}

// layoutFlex distributes children along the main axis per flex-grow and
// flex-shrink, using each child's measured size as its flex-basis. Only a
// single-line row/row-reverse/column/column-reverse container is
// implemented; flex-wrap is not.
func layoutFlex(parent *style.Resolved, children []node.Node, content node.Box, rctx node.RenderContext) []*Result {
	isColumn := parent.FlexDirection == style.FlexColumn || parent.FlexDirection == style.FlexColumnReverse
	reverse := parent.FlexDirection == style.FlexRowReverse || parent.FlexDirection == style.FlexColumnReverse

	mainSize := content.Width
	if isColumn {
		mainSize = content.Height
	}

	items := make([]flexItem, 0, len(children))
	totalBasis := 0.0
	for _, child := range children {
		r := child.Resolved()
		size := child.Measure([2]node.AvailableSpace{{Kind: node.MaxContent}, {Kind: node.MaxContent}}, node.Known{}, rctx)
		basis := size.Width
		if isColumn {
			basis = size.Height
		}
		items = append(items, flexItem{child: child, basis: basis, grow: r.FlexGrow, shrink: r.FlexShrink})
		totalBasis += basis
	}

	freeSpace := mainSize - totalBasis
	totalGrow, totalShrink := 0.0, 0.0
	for _, it := range items {
		totalGrow += it.grow
		totalShrink += it.shrink
	}

	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	results := make([]*Result, 0, len(children))
	pos := content.X
	if isColumn {
		pos = content.Y
	}
	for _, it := range items {
		size := it.basis
		switch {
		case freeSpace > 0 && totalGrow > 0:
			size += freeSpace * it.grow / totalGrow
		case freeSpace < 0 && totalShrink > 0:
			size += freeSpace * it.shrink / totalShrink
		}
		if size < 0 {
			size = 0
		}

		var childBox node.Box
		var avail [2]node.AvailableSpace
		if isColumn {
			childBox = node.Box{X: content.X, Y: pos, Width: content.Width, Height: size}
			avail = [2]node.AvailableSpace{node.DefiniteSpace(content.Width), node.DefiniteSpace(size)}
		} else {
			childBox = node.Box{X: pos, Y: content.Y, Width: size, Height: content.Height}
			avail = [2]node.AvailableSpace{node.DefiniteSpace(size), node.DefiniteSpace(content.Height)}
		}
		res := layoutNode(it.child, childBox, avail, rctx)
		results = append(results, res)
		pos += size
	}
	return results
}

// layoutGrid sizes the explicit track lists (px/percent/fr, with fr and
// auto tracks splitting whatever space is left after fixed and percent
// tracks are subtracted), places each child into its row/column cell — by
// named area (grid-template-areas, lowered by style.ParseGridTemplateAreas),
// by explicit grid-row/grid-column lines, or by row-major auto-flow into
// the next unoccupied cell — and lays the child out against that cell's
// resolved pixel box. Auto-placement only ever claims a single 1x1 cell per
// item; spanning auto-placed items (grid-row: span 2 with no explicit
// start) is not implemented.
func layoutGrid(parent *style.Resolved, children []node.Node, content node.Box, rctx node.RenderContext) []*Result {
	rowGap, _ := parent.Gap.Row.Resolve(containingBlockBasis(content.Height, rctx))
	colGap, _ := parent.Gap.Column.Resolve(containingBlockBasis(content.Width, rctx))

	rows, cols := gridDimensions(parent, len(children))
	rowSizes := resolveTracks(parent.GridTemplateRows, parent.GridAutoRows, rows, content.Height, rowGap)
	colSizes := resolveTracks(parent.GridTemplateColumns, parent.GridAutoColumns, cols, content.Width, colGap)
	rowOffsets := trackOffsets(rowSizes, rowGap)
	colOffsets := trackOffsets(colSizes, colGap)
	rowCount, colCount := len(rowOffsets)-1, len(colOffsets)-1

	occupied := map[[2]int]bool{}
	cursor := 0
	results := make([]*Result, 0, len(children))
	for _, child := range children {
		r := child.Resolved()
		rowStart, rowEnd, colStart, colEnd, next := placeGridItem(r.GridRow, r.GridColumn, parent.GridTemplateAreas, colCount, occupied, cursor)
		cursor = next
		rowStart, rowEnd = clampLine(rowStart, rowEnd, rowCount)
		colStart, colEnd = clampLine(colStart, colEnd, colCount)
		markOccupied(occupied, rowStart, rowEnd, colStart, colEnd)

		childBox := node.Box{
			X:      content.X + colOffsets[colStart-1],
			Y:      content.Y + rowOffsets[rowStart-1],
			Width:  colOffsets[colEnd-1] - colOffsets[colStart-1],
			Height: rowOffsets[rowEnd-1] - rowOffsets[rowStart-1],
		}
		avail := [2]node.AvailableSpace{node.DefiniteSpace(childBox.Width), node.DefiniteSpace(childBox.Height)}
		results = append(results, layoutNode(child, childBox, avail, rctx))
	}
	return results
}

// gridDimensions derives the explicit track-grid shape: grid-template-areas
// (if any) sets a floor, explicit grid-template-rows/columns lists can
// extend it, and the implicit row count grows further to make room for
// however many children auto-flow would need to place, row-major, into the
// resulting column count.
func gridDimensions(parent *style.Resolved, childCount int) (rows, cols int) {
	rows, cols = 1, 1
	if parent.GridTemplateAreas.Rows > 0 {
		rows, cols = parent.GridTemplateAreas.Rows, parent.GridTemplateAreas.Columns
	}
	if n := len(parent.GridTemplateRows); n > rows {
		rows = n
	}
	if n := len(parent.GridTemplateColumns); n > cols {
		cols = n
	}
	if cols < 1 {
		cols = 1
	}
	if needed := int(math.Ceil(float64(childCount) / float64(cols))); needed > rows {
		rows = needed
	}
	return rows, cols
}

// resolveTracks sizes count tracks against containerSize: Fixed and Percent
// tracks claim their pixel size up front; whatever space remains after
// those and the inter-track gaps is split among Fr tracks proportionally to
// their factor, with each Auto track sharing that leftover space as if it
// were its own implicit 1fr track. Declared tracks beyond count are
// ignored; declared tracks short of count repeat from autoTracks (the
// grid-auto-rows/columns pattern), falling back to Auto.
func resolveTracks(explicit, autoTracks []style.TrackSize, count int, containerSize, gap float64) []float64 {
	if count < 1 {
		count = 1
	}
	tracks := make([]style.TrackSize, count)
	for i := range tracks {
		switch {
		case i < len(explicit):
			tracks[i] = explicit[i]
		case len(autoTracks) > 0:
			tracks[i] = autoTracks[i%len(autoTracks)]
		default:
			tracks[i] = style.TrackSize{Kind: style.TrackAuto}
		}
	}

	fixedTotal, frTotal := 0.0, 0.0
	autoCount := 0
	for _, t := range tracks {
		switch t.Kind {
		case style.TrackFixed:
			fixedTotal += t.Value
		case style.TrackPercent:
			fixedTotal += t.Value / 100 * containerSize
		case style.TrackFr:
			frTotal += t.Value
		case style.TrackAuto:
			autoCount++
		}
	}
	remaining := containerSize - gap*float64(count-1) - fixedTotal
	if remaining < 0 {
		remaining = 0
	}
	frShare := frTotal + float64(autoCount)

	sizes := make([]float64, count)
	for i, t := range tracks {
		switch t.Kind {
		case style.TrackFixed:
			sizes[i] = t.Value
		case style.TrackPercent:
			sizes[i] = t.Value / 100 * containerSize
		case style.TrackFr:
			if frShare > 0 {
				sizes[i] = remaining * t.Value / frShare
			}
		case style.TrackAuto:
			if frShare > 0 {
				sizes[i] = remaining / frShare
			}
		}
	}
	return sizes
}

// trackOffsets turns per-track pixel sizes into 1-based grid-line
// positions: offsets[i] is the position of line i+1, i.e. where track i+1
// begins. No gap is added past the last track.
func trackOffsets(sizes []float64, gap float64) []float64 {
	offsets := make([]float64, len(sizes)+1)
	pos := 0.0
	for i, s := range sizes {
		offsets[i] = pos
		pos += s
		if i < len(sizes)-1 {
			pos += gap
		}
	}
	offsets[len(sizes)] = pos
	return offsets
}

// placeGridItem resolves one child's row/column span: a named area wins
// outright, then an item with both axes explicitly placed uses those
// lines verbatim, and anything else auto-flows into the next unoccupied
// single cell starting from cursor (row-major over colCount columns).
func placeGridItem(rowPlacement, colPlacement style.GridPlacement, areas style.GridTemplateAreas, colCount int, occupied map[[2]int]bool, cursor int) (rowStart, rowEnd, colStart, colEnd, nextCursor int) {
	if region, ok := areaRegion(areas, rowPlacement, colPlacement); ok {
		return region.RowStart, region.RowEnd, region.ColStart, region.ColEnd, cursor
	}

	rs, re := explicitLine(rowPlacement)
	cs, ce := explicitLine(colPlacement)
	if rs != 0 && cs != 0 {
		return rs, re, cs, ce, cursor
	}

	for {
		r := cursor/colCount + 1
		c := cursor%colCount + 1
		cursor++
		if !occupied[[2]int{r, c}] {
			return r, r + 1, c, c + 1, cursor
		}
	}
}

func areaRegion(areas style.GridTemplateAreas, rowPlacement, colPlacement style.GridPlacement) (style.GridRegion, bool) {
	name := rowPlacement.Area
	if name == "" {
		name = colPlacement.Area
	}
	if name == "" {
		return style.GridRegion{}, false
	}
	region, ok := areas.Regions[name]
	return region, ok
}

// explicitLine reads a GridPlacement's start/end as 1-based, exclusive-end
// grid lines, defaulting a missing end to a single-track span. Start == 0
// means "not explicitly placed" (auto).
func explicitLine(p style.GridPlacement) (start, end int) {
	if p.Start == 0 {
		return 0, 0
	}
	end = p.End
	if end == 0 {
		end = p.Start + 1
	}
	return p.Start, end
}

func markOccupied(occupied map[[2]int]bool, rowStart, rowEnd, colStart, colEnd int) {
	for r := rowStart; r < rowEnd; r++ {
		for c := colStart; c < colEnd; c++ {
			occupied[[2]int{r, c}] = true
		}
	}
}

// clampLine keeps a placement's lines within [1, count+1] so track-offset
// lookups never run out of bounds, no matter what an out-of-range explicit
// placement or a mis-sized auto-flow cursor produced.
func clampLine(start, end, count int) (int, int) {
	if start < 1 {
		start = 1
	}
	if start > count {
		start = count
	}
	if end > count+1 {
		end = count + 1
	}
	if end <= start {
		end = start + 1
	}
	return start, end
}
