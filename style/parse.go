package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rupor-github/boxrender/css"
)

// parseCSSString dispatches a bare CSS string to the right parser for T,
// by switching on T's concrete type at the call site. This is the single
// choke point every property's CSS-string shorthand goes through.
func parseCSSString[T any](s string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case css.Length:
		l, err := css.ParseLength(s)
		return any(l).(T), err
	case css.Color:
		c, err := css.ParseColor(s)
		return any(c).(T), err
	case Sides[css.Length]:
		sides, err := ParseSidesLength(s)
		return any(sides).(T), err
	case Corners[css.Length]:
		corners, err := ParseCornersLength(s)
		return any(corners).(T), err
	case float64:
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return any(v).(T), err
	case int:
		v, err := strconv.Atoi(strings.TrimSpace(s))
		return any(v).(T), err
	case string:
		return any(strings.TrimSpace(s)).(T), nil
	case []css.Gradient:
		layers, err := parseBackgroundImageList(s)
		return any(layers).(T), err
	case []TrackSize:
		tracks, err := ParseTrackSizeList(s)
		return any(tracks).(T), err
	case GridTemplateAreas:
		areas, err := ParseGridTemplateAreas(s)
		return any(areas).(T), err
	case GridPlacement:
		p, err := ParseGridPlacement(s)
		return any(p).(T), err
	default:
		return zero, fmt.Errorf("no CSS-string parser registered for %T", zero)
	}
}

// parseBackgroundImageList splits a comma-separated list of top-level
// gradient functions (background-image accepts multiple layers) and parses
// each with css.ParseGradient.
func parseBackgroundImageList(s string) ([]css.Gradient, error) {
	parts := splitTopLevelGradients(s)
	out := make([]css.Gradient, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "none" {
			continue
		}
		g, err := css.ParseGradient(p, css.Basis{})
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func splitTopLevelGradients(s string) []string {
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
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}
