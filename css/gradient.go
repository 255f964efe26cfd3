package css

import (
	"fmt"
	"math"
	"strings"
)

// ColorStop is a single color-stop in a gradient, with an optional hint
// position (0-1, fraction of the gradient line/radius).
type ColorStop struct {
	Color    Color
	Position float64 // 0-1
	HasHint  bool
}

// DrawContext carries the per-paint geometry a Gradient needs to evaluate
// colors at concrete pixel coordinates, computed once per paint call.
type DrawContext struct {
	Width, Height float64
}

// Gradient is implemented by LinearGradient, RadialGradient and NoiseV1. The
// two-phase shape (ToDrawContext then At) mirrors how a gradient is resolved
// once per node box and then sampled once per covered pixel.
type Gradient interface {
	ToDrawContext(box DrawContext) ResolvedGradient
}

// ResolvedGradient samples a color at a pixel coordinate local to the box
// the gradient was resolved against.
type ResolvedGradient interface {
	At(x, y float64) Color
}

// LinearGradient paints stops along a line at the given angle (CSS
// convention: 0deg points up, increasing clockwise).
type LinearGradient struct {
	AngleRadians float64
	Stops        []ColorStop
}

type resolvedLinear struct {
	dx, dy float64 // unit direction of the gradient line
	cx, cy float64 // box center
	length float64 // projected length of the gradient line across the box
	stops  []ColorStop
}

func (g LinearGradient) ToDrawContext(box DrawContext) ResolvedGradient {
	// CSS angle 0 = up, 90 = right.
	a := g.AngleRadians
	dx, dy := math.Sin(a), -math.Cos(a)
	halfW, halfH := box.Width/2, box.Height/2
	length := math.Abs(dx)*box.Width + math.Abs(dy)*box.Height
	return &resolvedLinear{dx: dx, dy: dy, cx: halfW, cy: halfH, length: length, stops: normalizeStops(g.Stops)}
}

func (r *resolvedLinear) At(x, y float64) Color {
	if r.length == 0 {
		return sampleStops(r.stops, 0)
	}
	proj := (x-r.cx)*r.dx + (y-r.cy)*r.dy
	t := proj/r.length + 0.5
	return sampleStops(r.stops, t)
}

// RadialGradient paints stops outward from the box center, scaled by the
// farthest-corner radius. A leading shape/size/position argument is
// accepted by the parser and ignored; the center is always the box center.
type RadialGradient struct {
	Stops []ColorStop
}

type resolvedRadial struct {
	cx, cy, radius float64
	stops          []ColorStop
}

func (g RadialGradient) ToDrawContext(box DrawContext) ResolvedGradient {
	cx, cy := box.Width/2, box.Height/2
	radius := math.Hypot(cx, cy)
	if radius == 0 {
		radius = 1
	}
	return &resolvedRadial{cx: cx, cy: cy, radius: radius, stops: normalizeStops(g.Stops)}
}

func (r *resolvedRadial) At(x, y float64) Color {
	d := math.Hypot(x-r.cx, y-r.cy)
	return sampleStops(r.stops, d/r.radius)
}

// NoiseV1 is a fractal Brownian motion gradient over Perlin noise, matching
// the defaults and parameter set of the original "noise-v1(...)" function:
// seed, frequency, octaves, persistence (amplitude falloff per octave),
// lacunarity (frequency growth per octave) and overall opacity.
type NoiseV1 struct {
	Seed        int64
	Frequency   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Opacity     float64
	Low, High   Color
}

// DefaultNoiseV1 returns the documented defaults for noise-v1() when a
// parameter is omitted.
func DefaultNoiseV1() NoiseV1 {
	return NoiseV1{
		Seed:        0,
		Frequency:   1.0,
		Octaves:     6,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Opacity:     1.0,
		Low:         Color{0, 0, 0, 255},
		High:        Color{255, 255, 255, 255},
	}
}

type resolvedNoise struct {
	n             NoiseV1
	width, height float64
	perm          [512]int
}

func (g NoiseV1) ToDrawContext(box DrawContext) ResolvedGradient {
	return &resolvedNoise{n: g, width: box.Width, height: box.Height, perm: permFromSeed(g.Seed)}
}

func (r *resolvedNoise) At(x, y float64) Color {
	nx := x / math.Max(r.width, 1)
	ny := y / math.Max(r.height, 1)

	var sum, amplitude, freq, max float64
	amplitude = 1
	freq = r.n.Frequency
	for o := 0; o < r.n.Octaves; o++ {
		sum += amplitude * perlin2D(nx*freq, ny*freq, &r.perm)
		max += amplitude
		amplitude *= r.n.Persistence
		freq *= r.n.Lacunarity
	}
	v := (sum/max + 1) / 2 // fold [-1,1] into [0,1]
	c := lerpColor(r.n.Low, r.n.High, v)
	c.A = uint8(float64(c.A) * r.n.Opacity)
	return c
}

func normalizeStops(stops []ColorStop) []ColorStop {
	if len(stops) == 0 {
		return stops
	}
	out := make([]ColorStop, len(stops))
	copy(out, stops)
	if !out[0].HasHint {
		out[0].Position = 0
		out[0].HasHint = true
	}
	if !out[len(out)-1].HasHint {
		out[len(out)-1].Position = 1
		out[len(out)-1].HasHint = true
	}
	// Fill un-hinted interior stops evenly between their hinted neighbors.
	i := 0
	for i < len(out) {
		if out[i].HasHint {
			i++
			continue
		}
		j := i
		for j < len(out) && !out[j].HasHint {
			j++
		}
		start, end := out[i-1].Position, out[j].Position
		n := j - i + 1
		for k := i; k < j; k++ {
			out[k].Position = start + (end-start)*float64(k-i+1)/float64(n)
			out[k].HasHint = true
		}
		i = j
	}
	return out
}

func sampleStops(stops []ColorStop, t float64) Color {
	if len(stops) == 0 {
		return Transparent
	}
	if t <= stops[0].Position {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Position {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Position {
			prev := stops[i-1]
			span := stops[i].Position - prev.Position
			if span <= 0 {
				return stops[i].Color
			}
			frac := (t - prev.Position) / span
			return lerpColor(prev.Color, stops[i].Color, frac)
		}
	}
	return last.Color
}

func lerpColor(a, b Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// ParseGradient recognizes "linear-gradient(...)", "radial-gradient(...)"
// and "noise-v1(...)" function syntax.
func ParseGradient(raw string, basis Basis) (Gradient, error) {
	s := strings.TrimSpace(raw)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("not a gradient function: %q", raw)
	}
	name := strings.ToLower(strings.TrimSpace(s[:open]))
	args := splitTopLevelCommas(s[open+1 : len(s)-1])

	switch name {
	case "linear-gradient":
		return parseLinearGradient(args)
	case "radial-gradient":
		return parseRadialGradient(args)
	case "noise-v1":
		return parseNoiseV1(args)
	default:
		return nil, fmt.Errorf("unsupported gradient function %q", name)
	}
}

func splitTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[last:]))
	return parts
}

func parseLinearGradient(args []string) (Gradient, error) {
	angle := math.Pi // default: "to bottom" == 180deg
	start := 0
	if len(args) > 0 {
		first := strings.ToLower(strings.TrimSpace(args[0]))
		switch {
		case strings.HasPrefix(first, "to "):
			angle = angleFromKeyword(first)
			start = 1
		case strings.HasSuffix(first, "deg") || strings.HasSuffix(first, "rad") || strings.HasSuffix(first, "turn"):
			a, err := parseAngleToken(first)
			if err != nil {
				return nil, err
			}
			angle = a
			start = 1
		}
	}
	stops, err := parseStops(args[start:])
	if err != nil {
		return nil, err
	}
	return LinearGradient{AngleRadians: angle, Stops: stops}, nil
}

func parseRadialGradient(args []string) (Gradient, error) {
	start := 0
	if len(args) > 0 && !strings.Contains(args[0], "#") && looksLikeShape(args[0]) {
		start = 1
	}
	stops, err := parseStops(args[start:])
	if err != nil {
		return nil, err
	}
	return RadialGradient{Stops: stops}, nil
}

func looksLikeShape(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Contains(s, "circle") || strings.Contains(s, "ellipse") || strings.Contains(s, "at ")
}

func parseNoiseV1(args []string) (Gradient, error) {
	n := DefaultNoiseV1()
	for _, a := range args {
		kv := strings.SplitN(strings.TrimSpace(a), ":", 2)
		if len(kv) != 2 {
			continue
		}
		key, val := strings.ToLower(strings.TrimSpace(kv[0])), strings.TrimSpace(kv[1])
		var f float64
		if _, err := fmt.Sscanf(val, "%g", &f); err != nil {
			continue
		}
		switch key {
		case "seed":
			n.Seed = int64(f)
		case "frequency":
			n.Frequency = f
		case "octaves":
			n.Octaves = int(f)
		case "persistence":
			n.Persistence = f
		case "lacunarity":
			n.Lacunarity = f
		case "opacity":
			n.Opacity = f
		}
	}
	return n, nil
}

func angleFromKeyword(s string) float64 {
	switch strings.TrimSpace(strings.TrimPrefix(s, "to")) {
	case "top":
		return 0
	case "right":
		return math.Pi / 2
	case "bottom":
		return math.Pi
	case "left":
		return 3 * math.Pi / 2
	default:
		return math.Pi
	}
}

func parseAngleToken(s string) (float64, error) {
	switch {
	case strings.HasSuffix(s, "deg"):
		var v float64
		_, err := fmt.Sscanf(s, "%gdeg", &v)
		return v * math.Pi / 180, err
	case strings.HasSuffix(s, "turn"):
		var v float64
		_, err := fmt.Sscanf(s, "%gturn", &v)
		return v * 2 * math.Pi, err
	case strings.HasSuffix(s, "rad"):
		var v float64
		_, err := fmt.Sscanf(s, "%grad", &v)
		return v, err
	default:
		return 0, fmt.Errorf("invalid angle %q", s)
	}
}

func parseStops(args []string) ([]ColorStop, error) {
	stops := make([]ColorStop, 0, len(args))
	for _, a := range args {
		parts := strings.Fields(a)
		if len(parts) == 0 {
			continue
		}
		c, err := ParseColor(parts[0])
		if err != nil {
			return nil, err
		}
		stop := ColorStop{Color: c}
		if len(parts) > 1 {
			l, err := ParseLength(parts[1])
			if err != nil {
				return nil, err
			}
			px, _ := l.Resolve(Basis{ContainingBlock: 1})
			if l.Kind == Percent {
				stop.Position = px
			} else {
				stop.Position = px / 100
			}
			stop.HasHint = true
		}
		stops = append(stops, stop)
	}
	return stops, nil
}
