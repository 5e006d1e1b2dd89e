package ambient

import (
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"#f00f", Color{1, 0, 0, 1}},
		{"#ff000000", Color{1, 0, 0, 0}},
		{"#00ff0080", Color{0, 1, 0, 128.0 / 255}},
		{" #FF185D ", Color{1, 0x18 / 255.0, 0x5d / 255.0, 1}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		assertNear(t, tt.in+" R", got.R, tt.want.R)
		assertNear(t, tt.in+" G", got.G, tt.want.G)
		assertNear(t, tt.in+" B", got.B, tt.want.B)
		assertNear(t, tt.in+" A", got.A, tt.want.A)
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "ffffff", "#ff", "#fffff", "#gggggg", "#ffffffzz"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) succeeded, want error", in)
		}
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParseColor("nope")
}

func TestColorHex(t *testing.T) {
	for _, in := range []string{"#ff185d", "#ffffff6e", "#ff185d27", "#00000086", "#ff185d50"} {
		if got := MustParseColor(in).Hex(); got != in {
			t.Errorf("Hex(%s) = %s", in, got)
		}
	}
}

func TestColorBlend(t *testing.T) {
	a := Color{1, 0, 0, 1}
	b := Color{0, 0, 1, 0}
	if got := a.Blend(b, 0); got.Hex() != a.Hex() {
		t.Errorf("Blend(0) = %s, want %s", got.Hex(), a.Hex())
	}
	if got := a.Blend(b, 1); got.Hex() != b.Hex() {
		t.Errorf("Blend(1) = %s, want %s", got.Hex(), b.Hex())
	}
	mid := a.Blend(b, 0.5)
	assertNear(t, "mid alpha", mid.A, 0.5)
	for _, v := range []float64{mid.R, mid.G, mid.B} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			t.Errorf("blend component %v outside [0, 1]", v)
		}
	}
}

func TestPaletteForTheme(t *testing.T) {
	if ThemeFor(true) != ThemeDark || ThemeFor(false) != ThemeLight {
		t.Fatal("ThemeFor mapping wrong")
	}
	if len(PaletteFor(ThemeDark)) != 3 || PaletteFor(ThemeDark)[1] != DarkPalette[1] {
		t.Error("PaletteFor(dark) != DarkPalette")
	}
	if PaletteFor(ThemeLight)[1] != LightPalette[1] {
		t.Error("PaletteFor(light) != LightPalette")
	}
	if BackgroundFor(ThemeDark) == BackgroundFor(ThemeLight) {
		t.Error("themes share a background")
	}
	if ThemeDark.String() != "dark" || ThemeLight.String() != "light" {
		t.Error("Theme.String mismatch")
	}
}

func TestPalettePick(t *testing.T) {
	seen := make(map[Color]bool)
	for range 300 {
		c := DarkPalette.Pick()
		if !DarkPalette.Contains(c) {
			t.Fatalf("Pick returned %v outside palette", c.Hex())
		}
		seen[c] = true
	}
	if len(seen) != len(DarkPalette) {
		t.Errorf("picked %d distinct colors in 300 draws, want %d", len(seen), len(DarkPalette))
	}
	if (Palette{}).Pick() != ColorWhite {
		t.Error("empty palette should pick white")
	}
}

func TestParsePaletteError(t *testing.T) {
	if _, err := ParsePalette("#fff", "bad"); err == nil {
		t.Error("expected error")
	}
}

func TestRange(t *testing.T) {
	r := Range{2, 4}
	for range 100 {
		if v := r.Random(); v < 2 || v >= 4 {
			t.Fatalf("Random() = %v outside [2, 4)", v)
		}
	}
	if (Range{3, 3}).Random() != 3 {
		t.Error("degenerate range should return Min")
	}
	if !(Range{}).IsZero() || r.IsZero() {
		t.Error("IsZero mismatch")
	}
	if !r.Contains(4) || r.Contains(4.01) {
		t.Error("Contains should be inclusive")
	}
}
