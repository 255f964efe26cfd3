package css

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		raw  string
		want Color
	}{
		{"#fff", Color{255, 255, 255, 255}},
		{"#ff0000", Color{255, 0, 0, 255}},
		{"#00ff0080", Color{0, 255, 0, 128}},
		{"red", Color{255, 0, 0, 255}},
		{"transparent", Color{0, 0, 0, 0}},
		{"rgb(10, 20, 30)", Color{10, 20, 30, 255}},
		{"rgba(10, 20, 30, 0.5)", Color{10, 20, 30, 128}},
		{"rgb(100%, 0%, 0%)", Color{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.raw)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestParseColorHSL(t *testing.T) {
	got, err := ParseColor("hsl(0, 100%, 50%)")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	want := Color{255, 0, 0, 255}
	if got != want {
		t.Errorf("ParseColor(hsl red) = %+v, want %+v", got, want)
	}
}

func TestParseColorInvalid(t *testing.T) {
	if _, err := ParseColor("not-a-color"); err == nil {
		t.Errorf("expected error for invalid color")
	}
}

func TestNamedColorRoundTrip(t *testing.T) {
	if len(namedColors) < 150 {
		t.Fatalf("expected the full CSS named-color table (148 keywords plus transparent/currentcolor), got %d", len(namedColors))
	}
	for name, c := range namedColors {
		serialized := Serialize(c)
		got, err := ParseColor(serialized)
		if err != nil {
			t.Fatalf("%q: ParseColor(Serialize(%+v)=%q) error: %v", name, c, serialized, err)
		}
		if got != c {
			t.Errorf("%q: round trip broke, parse(serialize(%+v)) = %+v", name, c, got)
		}
	}
}
