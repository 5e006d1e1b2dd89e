package ambient

import (
	"fmt"
	"math/rand/v2"
)

// Theme selects one of the fixed palettes.
type Theme uint8

const (
	ThemeLight Theme = iota // light page background
	ThemeDark               // dark page background
)

// ThemeFor maps the host's dark-mode signal to a Theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// String returns "light" or "dark".
func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Palette is an ordered set of particle colors.
type Palette []Color

// DarkPalette is used while the host reports dark mode.
var DarkPalette = MustParsePalette("#ff185d", "#ffffff6e", "#ff185d27")

// LightPalette is used while the host reports light mode.
var LightPalette = MustParsePalette("#ff185d", "#00000086", "#ff185d50")

// Background colors the run host clears the window to for each theme.
var (
	DarkBackground  = MustParseColor("#101014")
	LightBackground = MustParseColor("#f4f4f6")
)

// PaletteFor returns the palette for the given theme. The returned slice
// MUST NOT be mutated.
func PaletteFor(t Theme) Palette {
	if t == ThemeDark {
		return DarkPalette
	}
	return LightPalette
}

// BackgroundFor returns the clear color for the given theme.
func BackgroundFor(t Theme) Color {
	if t == ThemeDark {
		return DarkBackground
	}
	return LightBackground
}

// ParsePalette parses each hex string with ParseColor.
func ParsePalette(hexes ...string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for i, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// MustParsePalette is like ParsePalette but panics on malformed input.
func MustParsePalette(hexes ...string) Palette {
	p, err := ParsePalette(hexes...)
	if err != nil {
		panic(err)
	}
	return p
}

// Pick returns a uniformly random member of the palette. An empty palette
// yields ColorWhite.
func (p Palette) Pick() Color {
	if len(p) == 0 {
		return ColorWhite
	}
	return p[rand.IntN(len(p))]
}

// Contains reports whether c is one of the palette's colors.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Hex returns the palette as hex strings, in order.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}
