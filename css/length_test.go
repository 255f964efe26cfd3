package css

import "testing"

func TestParseLength(t *testing.T) {
	tests := []struct {
		raw      string
		wantKind LengthKind
		wantVal  float64
	}{
		{"12px", Px, 12},
		{"1.5em", Em, 1.5},
		{"2rem", Rem, 2},
		{"50%", Percent, 50},
		{"auto", Auto, 0},
		{"10vh", Vh, 10},
		{"10vw", Vw, 10},
		{"0", Px, 0},
	}

	for _, tt := range tests {
		got, err := ParseLength(tt.raw)
		if err != nil {
			t.Fatalf("ParseLength(%q) error: %v", tt.raw, err)
		}
		if got.Kind != tt.wantKind || got.Value != tt.wantVal {
			t.Errorf("ParseLength(%q) = %+v, want kind=%v val=%v", tt.raw, got, tt.wantKind, tt.wantVal)
		}
	}
}

func TestLengthResolve(t *testing.T) {
	basis := Basis{ContainingBlock: 200, ParentFontSize: 16, RootFontSize: 16, ViewportWidth: 800, ViewportHeight: 600}

	tests := []struct {
		l    Length
		want float64
	}{
		{Length{Kind: Px, Value: 10}, 10},
		{Length{Kind: Percent, Value: 50}, 100},
		{Length{Kind: Em, Value: 2}, 32},
		{Length{Kind: Rem, Value: 2}, 32},
		{Length{Kind: Vh, Value: 10}, 60},
		{Length{Kind: Vw, Value: 10}, 80},
	}
	for _, tt := range tests {
		got, ok := tt.l.Resolve(basis)
		if !ok {
			t.Fatalf("Resolve(%+v) reported not ok", tt.l)
		}
		if got != tt.want {
			t.Errorf("Resolve(%+v) = %v, want %v", tt.l, got, tt.want)
		}
	}

	if _, ok := (Length{Kind: Auto}).Resolve(basis); ok {
		t.Errorf("Auto length should resolve with ok=false")
	}
}
