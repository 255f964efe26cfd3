package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Affine is a 2D affine transform, stored row-major as takumi's rendering
// pipeline keeps it: [a b c d e f] maps (x, y) -> (a*x + c*y + e, b*x + d*y + f).
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the affine transform that leaves points unchanged.
var Identity = Affine{A: 1, D: 1}

// Mul composes m then n, i.e. applying the result is equivalent to applying
// m first and then n.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
		E: m.E*n.A + m.F*n.C + n.E,
		F: m.E*n.B + m.F*n.D + n.F,
	}
}

// Apply transforms a point by the affine matrix.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

func translate(tx, ty float64) Affine { return Affine{A: 1, D: 1, E: tx, F: ty} }
func scale(sx, sy float64) Affine     { return Affine{A: sx, D: sy} }
func rotate(rad float64) Affine {
	s, c := math.Sin(rad), math.Cos(rad)
	return Affine{A: c, B: s, C: -s, D: c}
}
func skew(rx, ry float64) Affine {
	return Affine{A: 1, B: math.Tan(ry), C: math.Tan(rx), D: 1}
}

// ParseTransform parses a CSS transform list (e.g.
// "translate(10px, 5px) rotate(15deg) scale(1.2)") into a single composed
// Affine, applied left to right as CSS specifies.
func ParseTransform(raw string, basis Basis) (Affine, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "none" {
		return Identity, nil
	}

	result := Identity
	for len(s) > 0 {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			return Affine{}, fmt.Errorf("malformed transform %q", raw)
		}
		name := strings.ToLower(strings.TrimSpace(s[:open]))
		close := matchingParen(s, open)
		if close < 0 {
			return Affine{}, fmt.Errorf("unbalanced parentheses in transform %q", raw)
		}
		args := splitArgs(s[open+1 : close])

		fn, err := parseTransformFunc(name, args, basis)
		if err != nil {
			return Affine{}, err
		}
		result = result.Mul(fn)

		s = strings.TrimSpace(s[close+1:])
	}
	return result, nil
}

func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseTransformFunc(name string, args []string, basis Basis) (Affine, error) {
	length := func(s string) (float64, error) {
		l, err := ParseLength(s)
		if err != nil {
			return 0, err
		}
		px, _ := l.Resolve(basis)
		return px, nil
	}
	num := func(s string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	angle := func(s string) (float64, error) {
		s = strings.TrimSpace(s)
		switch {
		case strings.HasSuffix(s, "deg"):
			v, err := strconv.ParseFloat(strings.TrimSuffix(s, "deg"), 64)
			return v * math.Pi / 180, err
		case strings.HasSuffix(s, "rad"):
			return strconv.ParseFloat(strings.TrimSuffix(s, "rad"), 64)
		case strings.HasSuffix(s, "turn"):
			v, err := strconv.ParseFloat(strings.TrimSuffix(s, "turn"), 64)
			return v * 2 * math.Pi, err
		default:
			v, err := strconv.ParseFloat(s, 64)
			return v * math.Pi / 180, err
		}
	}

	switch name {
	case "translate":
		tx, err := length(args[0])
		if err != nil {
			return Affine{}, err
		}
		ty := 0.0
		if len(args) > 1 {
			if ty, err = length(args[1]); err != nil {
				return Affine{}, err
			}
		}
		return translate(tx, ty), nil
	case "translatex":
		tx, err := length(args[0])
		return translate(tx, 0), err
	case "translatey":
		ty, err := length(args[0])
		return translate(0, ty), err
	case "scale":
		sx, err := num(args[0])
		if err != nil {
			return Affine{}, err
		}
		sy := sx
		if len(args) > 1 {
			if sy, err = num(args[1]); err != nil {
				return Affine{}, err
			}
		}
		return scale(sx, sy), nil
	case "scalex":
		sx, err := num(args[0])
		return scale(sx, 1), err
	case "scaley":
		sy, err := num(args[0])
		return scale(1, sy), err
	case "rotate":
		a, err := angle(args[0])
		return rotate(a), err
	case "skew":
		rx, err := angle(args[0])
		if err != nil {
			return Affine{}, err
		}
		ry := 0.0
		if len(args) > 1 {
			if ry, err = angle(args[1]); err != nil {
				return Affine{}, err
			}
		}
		return skew(rx, ry), nil
	case "skewx":
		rx, err := angle(args[0])
		return skew(rx, 0), err
	case "skewy":
		ry, err := angle(args[0])
		return skew(0, ry), err
	case "matrix":
		if len(args) != 6 {
			return Affine{}, fmt.Errorf("matrix() takes 6 arguments, got %d", len(args))
		}
		vals := make([]float64, 6)
		for i, a := range args {
			v, err := num(a)
			if err != nil {
				return Affine{}, err
			}
			vals[i] = v
		}
		return Affine{A: vals[0], B: vals[1], C: vals[2], D: vals[3], E: vals[4], F: vals[5]}, nil
	default:
		return Affine{}, fmt.Errorf("unsupported transform function %q", name)
	}
}
