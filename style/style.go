package style

import "github.com/rupor-github/boxrender/css"

// Declared is the style bag attached to a node as the author wrote it:
// every property is a Value[T] that may be an explicit value, "inherit",
// or "unset". Fields absent from a JSON payload decode to the zero value,
// Unset, exactly like an un-declared CSS property.
type Declared struct {
	// Box
	Width, Height                   Value[css.Length]
	MinWidth, MinHeight              Value[css.Length]
	MaxWidth, MaxHeight              Value[css.Length]
	Padding, Margin, BorderWidth     Value[Sides[css.Length]]
	Inset                            Value[Sides[css.Length]]
	Position                         Value[Position]
	Display                          Value[Display]
	FlexDirection                    Value[FlexDirection]
	FlexWrap                         Value[FlexWrap]
	FlexBasis                        Value[css.Length]
	FlexGrow, FlexShrink             Value[float64]
	JustifyContent                   Value[Justify]
	AlignItems, AlignContent         Value[Justify]
	AlignSelf                        Value[Justify]
	Gap                              Value[Gap]
	GridTemplateRows, GridTemplateColumns Value[[]TrackSize]
	GridAutoRows, GridAutoColumns    Value[[]TrackSize]
	GridRow, GridColumn              Value[GridPlacement]
	GridTemplateAreas                Value[GridTemplateAreas]
	AspectRatio                      Value[float64]
	Overflow                         Value[Overflow]
	ObjectFit                       Value[ObjectFit]
	Transform                        Value[string] // raw CSS transform list, resolved at paint time against box geometry

	// Paint (non-inherited)
	BackgroundColor Value[css.Color]
	BackgroundImage Value[[]css.Gradient]
	BoxShadow       Value[[]BoxShadow]

	// Inheritable
	Color                  Value[css.Color]
	FontFamily             Value[string]
	FontSize               Value[css.Length]
	FontWeight             Value[int]
	FontStyle              Value[string]
	LineHeight             Value[LineHeight]
	LetterSpacing          Value[css.Length]
	TextAlign              Value[string]
	TextStroke             Value[TextStroke]
	WordBreak              Value[WordBreak]
	OverflowWrap           Value[OverflowWrap]
	LineClamp              Value[int]
	BorderColor            Value[css.Color]
	BorderRadius           Value[Corners[css.Length]]
}

// Resolved is every property reduced to a concrete value after walking the
// tree from root to leaf, carrying inheritable values down as described in
// the style resolution design.
type Resolved struct {
	Width, Height               css.Length
	MinWidth, MinHeight         css.Length
	MaxWidth, MaxHeight         css.Length
	Padding, Margin, BorderWidth Sides[css.Length]
	Inset                       Sides[css.Length]
	Position                    Position
	Display                     Display
	FlexDirection               FlexDirection
	FlexWrap                    FlexWrap
	FlexBasis                   css.Length
	FlexGrow, FlexShrink        float64
	JustifyContent              Justify
	AlignItems, AlignContent    Justify
	AlignSelf                   Justify
	Gap                         Gap
	GridTemplateRows, GridTemplateColumns []TrackSize
	GridAutoRows, GridAutoColumns          []TrackSize
	GridRow, GridColumn         GridPlacement
	GridTemplateAreas           GridTemplateAreas
	AspectRatio                 float64 // 0 means unset
	Overflow                    Overflow
	ObjectFit                   ObjectFit
	Transform                   string

	BackgroundColor css.Color
	BackgroundImage []css.Gradient
	BoxShadow       []BoxShadow

	Color         css.Color
	FontFamily    string
	FontSize      css.Length
	FontWeight    int
	FontStyle     string
	LineHeight    LineHeight
	LetterSpacing css.Length
	TextAlign     string
	TextStroke    TextStroke
	WordBreak     WordBreak
	OverflowWrap  OverflowWrap
	LineClamp     int // 0 means no clamp
	BorderColor   css.Color
	BorderRadius  Corners[css.Length]
}

// Initial returns the table of initial values for every non-inherited
// property, used when a property is absent/unset and has no inheritable
// fallback.
func Initial() Resolved {
	return Resolved{
		Width:        css.Length{Kind: css.Auto},
		Height:       css.Length{Kind: css.Auto},
		MinWidth:     css.Length{Kind: css.Auto},
		MinHeight:    css.Length{Kind: css.Auto},
		MaxWidth:     css.Length{Kind: css.Auto},
		MaxHeight:    css.Length{Kind: css.Auto},
		FlexBasis:    css.Length{Kind: css.Auto},
		FlexGrow:     0,
		FlexShrink:   1,
		Display:      DisplayBlock,
		Position:     PositionStatic,
		JustifyContent: JustifyStart,
		AlignItems:   JustifyStretch,
		AlignContent: JustifyStretch,
		AlignSelf:    JustifyStretch,
		Overflow:     OverflowVisible,
		ObjectFit:    ObjectFitFill,

		BackgroundColor: css.Transparent,

		Color:         css.Color{A: 255},
		FontFamily:    "sans-serif",
		FontSize:      css.Length{Kind: css.Px, Value: 16},
		FontWeight:    400,
		FontStyle:     "normal",
		LineHeight:    LineHeight{Normal: true},
		TextAlign:     "left",
		WordBreak:     WordBreakNormal,
		OverflowWrap:  OverflowWrapNormal,
		BorderColor:   css.Color{A: 255},
	}
}

// InheritForChild resolves d (a child's declared style) against parent (the
// parent's already-resolved style), producing the child's Resolved style.
// This is the single top-down step inherit_style_for_children performs at
// every node; applying it twice in a row to the same (already-resolved)
// input is a fixed point, since every field either copies forward or
// re-derives the same explicit value.
func InheritForChild(d Declared, parent Resolved) Resolved {
	initial := Initial()
	r := Resolved{}

	r.Width = d.Width.Resolve(parent.Width, initial.Width, false)
	r.Height = d.Height.Resolve(parent.Height, initial.Height, false)
	r.MinWidth = d.MinWidth.Resolve(parent.MinWidth, initial.MinWidth, false)
	r.MinHeight = d.MinHeight.Resolve(parent.MinHeight, initial.MinHeight, false)
	r.MaxWidth = d.MaxWidth.Resolve(parent.MaxWidth, initial.MaxWidth, false)
	r.MaxHeight = d.MaxHeight.Resolve(parent.MaxHeight, initial.MaxHeight, false)
	r.Padding = d.Padding.Resolve(parent.Padding, Sides[css.Length]{}, false)
	r.Margin = d.Margin.Resolve(parent.Margin, Sides[css.Length]{}, false)
	r.BorderWidth = d.BorderWidth.Resolve(parent.BorderWidth, Sides[css.Length]{}, false)
	r.Inset = d.Inset.Resolve(parent.Inset, Sides[css.Length]{Top: css.Length{Kind: css.Auto}, Right: css.Length{Kind: css.Auto}, Bottom: css.Length{Kind: css.Auto}, Left: css.Length{Kind: css.Auto}}, false)
	r.Position = d.Position.Resolve(parent.Position, initial.Position, false)
	r.Display = d.Display.Resolve(parent.Display, initial.Display, false)
	r.FlexDirection = d.FlexDirection.Resolve(parent.FlexDirection, initial.FlexDirection, false)
	r.FlexWrap = d.FlexWrap.Resolve(parent.FlexWrap, initial.FlexWrap, false)
	r.FlexBasis = d.FlexBasis.Resolve(parent.FlexBasis, initial.FlexBasis, false)
	r.FlexGrow = d.FlexGrow.Resolve(parent.FlexGrow, initial.FlexGrow, false)
	r.FlexShrink = d.FlexShrink.Resolve(parent.FlexShrink, initial.FlexShrink, false)
	r.JustifyContent = d.JustifyContent.Resolve(parent.JustifyContent, initial.JustifyContent, false)
	r.AlignItems = d.AlignItems.Resolve(parent.AlignItems, initial.AlignItems, false)
	r.AlignContent = d.AlignContent.Resolve(parent.AlignContent, initial.AlignContent, false)
	r.AlignSelf = d.AlignSelf.Resolve(parent.AlignSelf, initial.AlignSelf, false)
	r.Gap = d.Gap.Resolve(parent.Gap, Gap{}, false)
	r.GridTemplateRows = d.GridTemplateRows.Resolve(parent.GridTemplateRows, nil, false)
	r.GridTemplateColumns = d.GridTemplateColumns.Resolve(parent.GridTemplateColumns, nil, false)
	r.GridAutoRows = d.GridAutoRows.Resolve(parent.GridAutoRows, nil, false)
	r.GridAutoColumns = d.GridAutoColumns.Resolve(parent.GridAutoColumns, nil, false)
	r.GridRow = d.GridRow.Resolve(parent.GridRow, GridPlacement{}, false)
	r.GridColumn = d.GridColumn.Resolve(parent.GridColumn, GridPlacement{}, false)
	r.GridTemplateAreas = d.GridTemplateAreas.Resolve(parent.GridTemplateAreas, GridTemplateAreas{}, false)
	r.AspectRatio = d.AspectRatio.Resolve(parent.AspectRatio, initial.AspectRatio, false)
	r.Overflow = d.Overflow.Resolve(parent.Overflow, initial.Overflow, false)
	r.ObjectFit = d.ObjectFit.Resolve(parent.ObjectFit, initial.ObjectFit, false)
	r.Transform = d.Transform.Resolve(parent.Transform, "", false)

	r.BackgroundColor = d.BackgroundColor.Resolve(parent.BackgroundColor, initial.BackgroundColor, false)
	r.BackgroundImage = d.BackgroundImage.Resolve(parent.BackgroundImage, nil, false)
	r.BoxShadow = d.BoxShadow.Resolve(parent.BoxShadow, nil, false)

	r.Color = d.Color.Resolve(parent.Color, initial.Color, true)
	r.FontFamily = d.FontFamily.Resolve(parent.FontFamily, initial.FontFamily, true)
	r.FontSize = d.FontSize.Resolve(parent.FontSize, initial.FontSize, true)
	r.FontWeight = d.FontWeight.Resolve(parent.FontWeight, initial.FontWeight, true)
	r.FontStyle = d.FontStyle.Resolve(parent.FontStyle, initial.FontStyle, true)
	r.LineHeight = d.LineHeight.Resolve(parent.LineHeight, initial.LineHeight, true)
	r.LetterSpacing = d.LetterSpacing.Resolve(parent.LetterSpacing, css.Length{}, true)
	r.TextAlign = d.TextAlign.Resolve(parent.TextAlign, initial.TextAlign, true)
	r.TextStroke = d.TextStroke.Resolve(parent.TextStroke, TextStroke{}, true)
	r.WordBreak = d.WordBreak.Resolve(parent.WordBreak, initial.WordBreak, true)
	r.OverflowWrap = d.OverflowWrap.Resolve(parent.OverflowWrap, initial.OverflowWrap, true)
	r.LineClamp = d.LineClamp.Resolve(parent.LineClamp, 0, true)
	r.BorderColor = d.BorderColor.Resolve(parent.BorderColor, initial.BorderColor, true)
	r.BorderRadius = d.BorderRadius.Resolve(parent.BorderRadius, Corners[css.Length]{}, true)

	return r
}

// RootResolved resolves a root node's declared style with no parent: every
// inheritable property falls back to the initial table, since "inherit" at
// the root has nothing to inherit from and degrades to initial.
func RootResolved(d Declared) Resolved {
	return InheritForChild(d, Initial())
}
