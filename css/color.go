package css

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Color is a straight-alpha RGBA color, directly convertible to
// image/color.RGBA — paint primitives operate on this type without any
// further conversion.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA returns the equivalent image/color.NRGBA (straight alpha, same
// representation as Color, kept for interop with packages that expect the
// standard library's type name).
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Transparent is fully transparent black, the zero value of Color in all
// but name.
var Transparent = Color{}

// namedColors is the full CSS Color Module Level 4 named-color keyword
// table, plus the "transparent" and "currentcolor" special keywords (the
// latter resolved eagerly to black, since this renderer has no notion of
// "the current computed color of the element" to defer to).
var namedColors = map[string]Color{
	"transparent": {0, 0, 0, 0},
	"currentcolor": {0, 0, 0, 255},

	"aliceblue":            {240, 248, 255, 255},
	"antiquewhite":         {250, 235, 215, 255},
	"aqua":                 {0, 255, 255, 255},
	"aquamarine":           {127, 255, 212, 255},
	"azure":                {240, 255, 255, 255},
	"beige":                {245, 245, 220, 255},
	"bisque":               {255, 228, 196, 255},
	"black":                {0, 0, 0, 255},
	"blanchedalmond":       {255, 235, 205, 255},
	"blue":                 {0, 0, 255, 255},
	"blueviolet":           {138, 43, 226, 255},
	"brown":                {165, 42, 42, 255},
	"burlywood":            {222, 184, 135, 255},
	"cadetblue":            {95, 158, 160, 255},
	"chartreuse":           {127, 255, 0, 255},
	"chocolate":            {210, 105, 30, 255},
	"coral":                {255, 127, 80, 255},
	"cornflowerblue":       {100, 149, 237, 255},
	"cornsilk":             {255, 248, 220, 255},
	"crimson":              {220, 20, 60, 255},
	"cyan":                 {0, 255, 255, 255},
	"darkblue":             {0, 0, 139, 255},
	"darkcyan":             {0, 139, 139, 255},
	"darkgoldenrod":        {184, 134, 11, 255},
	"darkgray":             {169, 169, 169, 255},
	"darkgreen":            {0, 100, 0, 255},
	"darkgrey":             {169, 169, 169, 255},
	"darkkhaki":            {189, 183, 107, 255},
	"darkmagenta":          {139, 0, 139, 255},
	"darkolivegreen":       {85, 107, 47, 255},
	"darkorange":           {255, 140, 0, 255},
	"darkorchid":           {153, 50, 204, 255},
	"darkred":              {139, 0, 0, 255},
	"darksalmon":           {233, 150, 122, 255},
	"darkseagreen":         {143, 188, 143, 255},
	"darkslateblue":        {72, 61, 139, 255},
	"darkslategray":        {47, 79, 79, 255},
	"darkslategrey":        {47, 79, 79, 255},
	"darkturquoise":        {0, 206, 209, 255},
	"darkviolet":           {148, 0, 211, 255},
	"deeppink":             {255, 20, 147, 255},
	"deepskyblue":          {0, 191, 255, 255},
	"dimgray":              {105, 105, 105, 255},
	"dimgrey":              {105, 105, 105, 255},
	"dodgerblue":           {30, 144, 255, 255},
	"firebrick":            {178, 34, 34, 255},
	"floralwhite":          {255, 250, 240, 255},
	"forestgreen":          {34, 139, 34, 255},
	"fuchsia":              {255, 0, 255, 255},
	"gainsboro":            {220, 220, 220, 255},
	"ghostwhite":           {248, 248, 255, 255},
	"gold":                 {255, 215, 0, 255},
	"goldenrod":            {218, 165, 32, 255},
	"gray":                 {128, 128, 128, 255},
	"grey":                 {128, 128, 128, 255},
	"green":                {0, 128, 0, 255},
	"greenyellow":          {173, 255, 47, 255},
	"honeydew":             {240, 255, 240, 255},
	"hotpink":              {255, 105, 180, 255},
	"indianred":            {205, 92, 92, 255},
	"indigo":               {75, 0, 130, 255},
	"ivory":                {255, 255, 240, 255},
	"khaki":                {240, 230, 140, 255},
	"lavender":             {230, 230, 250, 255},
	"lavenderblush":        {255, 240, 245, 255},
	"lawngreen":            {124, 252, 0, 255},
	"lemonchiffon":         {255, 250, 205, 255},
	"lightblue":            {173, 216, 230, 255},
	"lightcoral":           {240, 128, 128, 255},
	"lightcyan":            {224, 255, 255, 255},
	"lightgoldenrodyellow": {250, 250, 210, 255},
	"lightgray":            {211, 211, 211, 255},
	"lightgreen":           {144, 238, 144, 255},
	"lightgrey":            {211, 211, 211, 255},
	"lightpink":            {255, 182, 193, 255},
	"lightsalmon":          {255, 160, 122, 255},
	"lightseagreen":        {32, 178, 170, 255},
	"lightskyblue":         {135, 206, 250, 255},
	"lightslategray":       {119, 136, 153, 255},
	"lightslategrey":       {119, 136, 153, 255},
	"lightsteelblue":       {176, 196, 222, 255},
	"lightyellow":          {255, 255, 224, 255},
	"lime":                 {0, 255, 0, 255},
	"limegreen":            {50, 205, 50, 255},
	"linen":                {250, 240, 230, 255},
	"magenta":              {255, 0, 255, 255},
	"maroon":               {128, 0, 0, 255},
	"mediumaquamarine":     {102, 205, 170, 255},
	"mediumblue":           {0, 0, 205, 255},
	"mediumorchid":         {186, 85, 211, 255},
	"mediumpurple":         {147, 112, 219, 255},
	"mediumseagreen":       {60, 179, 113, 255},
	"mediumslateblue":      {123, 104, 238, 255},
	"mediumspringgreen":    {0, 250, 154, 255},
	"mediumturquoise":      {72, 209, 204, 255},
	"mediumvioletred":      {199, 21, 133, 255},
	"midnightblue":         {25, 25, 112, 255},
	"mintcream":            {245, 255, 250, 255},
	"mistyrose":            {255, 228, 225, 255},
	"moccasin":             {255, 228, 181, 255},
	"navajowhite":          {255, 222, 173, 255},
	"navy":                 {0, 0, 128, 255},
	"oldlace":              {253, 245, 230, 255},
	"olive":                {128, 128, 0, 255},
	"olivedrab":            {107, 142, 35, 255},
	"orange":               {255, 165, 0, 255},
	"orangered":            {255, 69, 0, 255},
	"orchid":               {218, 112, 214, 255},
	"palegoldenrod":        {238, 232, 170, 255},
	"palegreen":            {152, 251, 152, 255},
	"paleturquoise":        {175, 238, 238, 255},
	"palevioletred":        {219, 112, 147, 255},
	"papayawhip":           {255, 239, 213, 255},
	"peachpuff":            {255, 218, 185, 255},
	"peru":                 {205, 133, 63, 255},
	"pink":                 {255, 192, 203, 255},
	"plum":                 {221, 160, 221, 255},
	"powderblue":           {176, 224, 230, 255},
	"purple":               {128, 0, 128, 255},
	"rebeccapurple":        {102, 51, 153, 255},
	"red":                  {255, 0, 0, 255},
	"rosybrown":            {188, 143, 143, 255},
	"royalblue":            {65, 105, 225, 255},
	"saddlebrown":          {139, 69, 19, 255},
	"salmon":               {250, 128, 114, 255},
	"sandybrown":           {244, 164, 96, 255},
	"seagreen":             {46, 139, 87, 255},
	"seashell":             {255, 245, 238, 255},
	"sienna":               {160, 82, 45, 255},
	"silver":               {192, 192, 192, 255},
	"skyblue":              {135, 206, 235, 255},
	"slateblue":            {106, 90, 205, 255},
	"slategray":            {112, 128, 144, 255},
	"slategrey":            {112, 128, 144, 255},
	"snow":                 {255, 250, 250, 255},
	"springgreen":          {0, 255, 127, 255},
	"steelblue":            {70, 130, 180, 255},
	"tan":                  {210, 180, 140, 255},
	"teal":                 {0, 128, 128, 255},
	"thistle":              {216, 191, 216, 255},
	"tomato":               {255, 99, 71, 255},
	"turquoise":            {64, 224, 208, 255},
	"violet":               {238, 130, 238, 255},
	"wheat":                {245, 222, 179, 255},
	"white":                {255, 255, 255, 255},
	"whitesmoke":           {245, 245, 245, 255},
	"yellow":               {255, 255, 0, 255},
	"yellowgreen":          {154, 205, 50, 255},
}

// colorNames maps each distinct RGBA value back to its canonical name, for
// Serialize. Where several keywords alias the same value (gray/grey,
// cyan/aqua, magenta/fuchsia, ...), the alphabetically first keyword wins;
// which alias wins doesn't matter for the parse(serialize(c)) == c law,
// only that the choice is deterministic.
var colorNames = func() map[Color]string {
	keys := make([]string, 0, len(namedColors))
	for name := range namedColors {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	out := make(map[Color]string, len(keys))
	for _, name := range keys {
		c := namedColors[name]
		if _, ok := out[c]; !ok {
			out[c] = name
		}
	}
	return out
}()

// Serialize renders a Color back to CSS text: its canonical named-color
// keyword when one matches exactly, otherwise hex (#rrggbb, or #rrggbbaa
// when not fully opaque).
func Serialize(c Color) string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor parses a CSS color value: named colors, #rgb/#rgba/#rrggbb/
// #rrggbbaa hex forms, and rgb()/rgba()/hsl()/hsla() functional forms.
func ParseColor(raw string) (Color, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Color{}, fmt.Errorf("empty color value")
	}

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}

	lower := strings.ToLower(s)
	if c, ok := namedColors[lower]; ok {
		return c, nil
	}

	if i := strings.IndexByte(s, '('); i > 0 && strings.HasSuffix(s, ")") {
		fn := strings.ToLower(strings.TrimSpace(s[:i]))
		args := splitArgs(s[i+1 : len(s)-1])
		switch fn {
		case "rgb", "rgba":
			return parseRGBFunc(args)
		case "hsl", "hsla":
			return parseHSLFunc(args)
		}
	}

	return Color{}, fmt.Errorf("unrecognized color value %q", raw)
}

func parseHexColor(s string) (Color, error) {
	h := s[1:]
	expand := func(c byte) string { return string([]byte{c, c}) }

	var r, g, b, a string
	switch len(h) {
	case 3:
		r, g, b, a = expand(h[0]), expand(h[1]), expand(h[2]), "ff"
	case 4:
		r, g, b, a = expand(h[0]), expand(h[1]), expand(h[2]), expand(h[3])
	case 6:
		r, g, b, a = h[0:2], h[2:4], h[4:6], "ff"
	case 8:
		r, g, b, a = h[0:2], h[2:4], h[4:6], h[6:8]
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}

	rv, err1 := strconv.ParseUint(r, 16, 8)
	gv, err2 := strconv.ParseUint(g, 16, 8)
	bv, err3 := strconv.ParseUint(b, 16, 8)
	av, err4 := strconv.ParseUint(a, 16, 8)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return Color{R: uint8(rv), G: uint8(gv), B: uint8(bv), A: uint8(av)}, nil
}

func splitArgs(s string) []string {
	s = strings.ReplaceAll(s, "/", ",")
	raw := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	args := make([]string, 0, len(raw))
	for _, a := range raw {
		if a = strings.TrimSpace(a); a != "" {
			args = append(args, a)
		}
	}
	return args
}

func parseComponent(s string) (float64, bool, error) {
	isPercent := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid color component %q: %w", s, err)
	}
	return v, isPercent, nil
}

func parseRGBFunc(args []string) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("rgb() takes 3 or 4 components, got %d", len(args))
	}
	comp := func(s string) (uint8, error) {
		v, pct, err := parseComponent(s)
		if err != nil {
			return 0, err
		}
		if pct {
			v = v / 100 * 255
		}
		return clampByte(v), nil
	}
	r, err := comp(args[0])
	if err != nil {
		return Color{}, err
	}
	g, err := comp(args[1])
	if err != nil {
		return Color{}, err
	}
	b, err := comp(args[2])
	if err != nil {
		return Color{}, err
	}
	a := uint8(255)
	if len(args) == 4 {
		av, pct, err := parseComponent(args[3])
		if err != nil {
			return Color{}, err
		}
		if !pct {
			av *= 100
		}
		a = clampByte(av / 100 * 255)
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}

func parseHSLFunc(args []string) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("hsl() takes 3 or 4 components, got %d", len(args))
	}
	h, _, err := parseComponent(strings.TrimSuffix(args[0], "deg"))
	if err != nil {
		return Color{}, err
	}
	s, _, err := parseComponent(args[1])
	if err != nil {
		return Color{}, err
	}
	l, _, err := parseComponent(args[2])
	if err != nil {
		return Color{}, err
	}
	r, g, b := hslToRGB(h, s/100, l/100)
	a := uint8(255)
	if len(args) == 4 {
		av, pct, err := parseComponent(args[3])
		if err != nil {
			return Color{}, err
		}
		if !pct {
			av *= 100
		}
		a = clampByte(av / 100 * 255)
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1, b1 = c, x, 0
	case h < 120:
		r1, g1, b1 = x, c, 0
	case h < 180:
		r1, g1, b1 = 0, c, x
	case h < 240:
		r1, g1, b1 = 0, x, c
	case h < 300:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	return clampByte((r1 + m) * 255), clampByte((g1 + m) * 255), clampByte((b1 + m) * 255)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
