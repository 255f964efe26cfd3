package css

import "testing"

func TestParseLinearGradientDefaultsToBottomAngle(t *testing.T) {
	g, err := ParseGradient("linear-gradient(#fff, #000)", Basis{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lg, ok := g.(LinearGradient)
	if !ok {
		t.Fatalf("expected LinearGradient, got %T", g)
	}
	if lg.AngleRadians != 3.141592653589793 {
		t.Fatalf("default angle should be 180deg (to bottom), got %v", lg.AngleRadians)
	}
}

func TestLinearGradientAtInterpolatesAlongAxis(t *testing.T) {
	g := LinearGradient{AngleRadians: 1.5707963267948966, Stops: []ColorStop{ // 90deg, left to right
		{Color: Color{R: 0, A: 255}, Position: 0, HasHint: true},
		{Color: Color{R: 255, A: 255}, Position: 1, HasHint: true},
	}}
	resolved := g.ToDrawContext(DrawContext{Width: 100, Height: 10})

	left := resolved.At(0, 5)
	right := resolved.At(100, 5)
	if left.R >= right.R {
		t.Fatalf("expected red channel to increase left to right, got left=%d right=%d", left.R, right.R)
	}
}

func TestRadialGradientCenterUsesFirstStop(t *testing.T) {
	g := RadialGradient{Stops: []ColorStop{
		{Color: Color{R: 255, A: 255}, Position: 0, HasHint: true},
		{Color: Color{B: 255, A: 255}, Position: 1, HasHint: true},
	}}
	resolved := g.ToDrawContext(DrawContext{Width: 50, Height: 50})
	c := resolved.At(25, 25)
	if c.R != 255 {
		t.Fatalf("gradient center should sample the first stop, got %+v", c)
	}
}

func TestParseGradientRejectsUnknownFunction(t *testing.T) {
	if _, err := ParseGradient("conic-gradient(#fff, #000)", Basis{}); err == nil {
		t.Fatalf("expected error for unsupported gradient function")
	}
}
