// Package css parses the CSS-flavored value syntax used by node styles:
// lengths, colors, transforms and gradients. It does not parse stylesheets
// or selectors — every value here is scoped to a single declared property.
package css

import (
	"fmt"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// LengthKind tags which unit a Length was declared in.
type LengthKind int

const (
	Px LengthKind = iota
	Em
	Rem
	Percent
	Vh
	Vw
	Auto
)

// Length is a single CSS length or percentage value, kept in its declared
// unit until resolved against a RenderContext and a basis.
type Length struct {
	Kind  LengthKind
	Value float64
}

func (l Length) String() string {
	switch l.Kind {
	case Auto:
		return "auto"
	case Percent:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "%"
	case Em:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "em"
	case Rem:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "rem"
	case Vh:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "vh"
	case Vw:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "vw"
	default:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "px"
	}
}

// Basis carries the values a Length may need to resolve to pixels.
type Basis struct {
	// ContainingBlock is the percentage basis (width or height, depending
	// on the axis the length applies to).
	ContainingBlock float64
	// ParentFontSize resolves "em" lengths.
	ParentFontSize float64
	// RootFontSize resolves "rem" lengths.
	RootFontSize float64
	// ViewportWidth/Height resolve "vw"/"vh" lengths.
	ViewportWidth  float64
	ViewportHeight float64
}

// Resolve converts l to device pixels given basis. Auto resolves to 0 with
// ok=false so callers can distinguish "no constraint" from "zero".
func (l Length) Resolve(basis Basis) (px float64, ok bool) {
	switch l.Kind {
	case Auto:
		return 0, false
	case Percent:
		return l.Value / 100 * basis.ContainingBlock, true
	case Em:
		return l.Value * basis.ParentFontSize, true
	case Rem:
		return l.Value * basis.RootFontSize, true
	case Vh:
		return l.Value / 100 * basis.ViewportHeight, true
	case Vw:
		return l.Value / 100 * basis.ViewportWidth, true
	default:
		return l.Value, true
	}
}

// ParseLength parses a single length/percentage/"auto" token, e.g. "12px",
// "1.5em", "50%", "auto".
func ParseLength(raw string) (Length, error) {
	s := strings.TrimSpace(raw)
	if s == "auto" {
		return Length{Kind: Auto}, nil
	}

	l := css.NewLexer(parse.NewInputString(s))
	tt, data := l.Next()
	if tt == css.WhitespaceToken {
		tt, data = l.Next()
	}

	switch tt {
	case css.PercentageToken:
		v, err := strconv.ParseFloat(string(data[:len(data)-1]), 64)
		if err != nil {
			return Length{}, fmt.Errorf("invalid percentage %q: %w", raw, err)
		}
		return Length{Kind: Percent, Value: v}, nil
	case css.DimensionToken:
		num, unit := splitDimension(string(data))
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Length{}, fmt.Errorf("invalid length %q: %w", raw, err)
		}
		kind, err := unitKind(unit)
		if err != nil {
			return Length{}, err
		}
		return Length{Kind: kind, Value: v}, nil
	case css.NumberToken:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return Length{}, fmt.Errorf("invalid number %q: %w", raw, err)
		}
		// A bare zero is valid without a unit; any other bare number is not
		// meaningful as a length and is treated as pixels for leniency with
		// hand-authored trees.
		return Length{Kind: Px, Value: v}, nil
	case css.IdentToken:
		if string(data) == "auto" {
			return Length{Kind: Auto}, nil
		}
		return Length{}, fmt.Errorf("unrecognized length keyword %q", raw)
	default:
		return Length{}, fmt.Errorf("cannot parse length from %q", raw)
	}
}

func splitDimension(s string) (num, unit string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '.' || c == '-' || c == '+' || (c >= '0' && c <= '9') || c == 'e' || c == 'E' {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

func unitKind(unit string) (LengthKind, error) {
	switch strings.ToLower(unit) {
	case "px":
		return Px, nil
	case "em":
		return Em, nil
	case "rem":
		return Rem, nil
	case "vh":
		return Vh, nil
	case "vw":
		return Vw, nil
	default:
		return 0, fmt.Errorf("unsupported length unit %q", unit)
	}
}
