package style

import (
	"strings"

	"github.com/rupor-github/boxrender/css"
)

// Sides is the [top, right, bottom, left] CSS shorthand quad, used for
// margin, padding, border-width and inset.
type Sides[T any] struct {
	Top, Right, Bottom, Left T
}

// AllSides returns a Sides with every side set to v.
func AllSides[T any](v T) Sides[T] {
	return Sides[T]{Top: v, Right: v, Bottom: v, Left: v}
}

// Corners is the [top-left, top-right, bottom-right, bottom-left] CSS
// shorthand quad, used for border-radius.
type Corners[T any] struct {
	TopLeft, TopRight, BottomRight, BottomLeft T
}

func AllCorners[T any](v T) Corners[T] {
	return Corners[T]{TopLeft: v, TopRight: v, BottomRight: v, BottomLeft: v}
}

// ParseSidesLength parses the 1/2/3/4-value CSS shorthand form for lengths,
// e.g. "10px", "10px 20px", "10px 20px 5px", "1px 2px 3px 4px".
func ParseSidesLength(raw string) (Sides[css.Length], error) {
	fields := strings.Fields(raw)
	lengths := make([]css.Length, 0, len(fields))
	for _, f := range fields {
		l, err := css.ParseLength(f)
		if err != nil {
			return Sides[css.Length]{}, err
		}
		lengths = append(lengths, l)
	}
	switch len(lengths) {
	case 1:
		return AllSides(lengths[0]), nil
	case 2:
		return Sides[css.Length]{Top: lengths[0], Bottom: lengths[0], Left: lengths[1], Right: lengths[1]}, nil
	case 3:
		return Sides[css.Length]{Top: lengths[0], Left: lengths[1], Right: lengths[1], Bottom: lengths[2]}, nil
	case 4:
		return Sides[css.Length]{Top: lengths[0], Right: lengths[1], Bottom: lengths[2], Left: lengths[3]}, nil
	default:
		return Sides[css.Length]{}, errInvalidShorthand(raw)
	}
}

// ParseCornersLength parses the 1/2/3/4-value CSS shorthand form for
// border-radius corners, in the standard CSS corner order
// (top-left, top-right, bottom-right, bottom-left).
func ParseCornersLength(raw string) (Corners[css.Length], error) {
	fields := strings.Fields(raw)
	lengths := make([]css.Length, 0, len(fields))
	for _, f := range fields {
		l, err := css.ParseLength(f)
		if err != nil {
			return Corners[css.Length]{}, err
		}
		lengths = append(lengths, l)
	}
	switch len(lengths) {
	case 1:
		return AllCorners(lengths[0]), nil
	case 2:
		return Corners[css.Length]{TopLeft: lengths[0], BottomRight: lengths[0], TopRight: lengths[1], BottomLeft: lengths[1]}, nil
	case 3:
		return Corners[css.Length]{TopLeft: lengths[0], TopRight: lengths[1], BottomLeft: lengths[1], BottomRight: lengths[2]}, nil
	case 4:
		return Corners[css.Length]{TopLeft: lengths[0], TopRight: lengths[1], BottomRight: lengths[2], BottomLeft: lengths[3]}, nil
	default:
		return Corners[css.Length]{}, errInvalidShorthand(raw)
	}
}

type shorthandError string

func (e shorthandError) Error() string { return string(e) }

func errInvalidShorthand(raw string) error {
	return shorthandError("invalid CSS shorthand value: " + raw)
}
