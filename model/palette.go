package model

import "strings"

// DefaultColor is used when a note is created or updated without a color.
const DefaultColor = "#ffffff"

// Palette lists the colors a note may take, in display order.
var Palette = []string{
	"#ffffff", // white
	"#fff9c4", // yellow
	"#c8e6c9", // green
	"#bbdefb", // blue
	"#d1c4e9", // purple
	"#ffccbc", // orange
}

var paletteNames = map[string]string{
	"#ffffff": "white",
	"#fff9c4": "yellow",
	"#c8e6c9": "green",
	"#bbdefb": "blue",
	"#d1c4e9": "purple",
	"#ffccbc": "orange",
}

// IsPaletteColor reports whether c is one of the palette values.
// Comparison is case-insensitive so "#FFFFFF" is accepted.
func IsPaletteColor(c string) bool {
	_, ok := paletteNames[strings.ToLower(c)]
	return ok
}

// NormalizeColor lower-cases c and substitutes DefaultColor for an empty value.
func NormalizeColor(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return DefaultColor
	}
	return c
}

// ColorName returns a human readable name for a palette color, or c itself.
func ColorName(c string) string {
	if name, ok := paletteNames[strings.ToLower(c)]; ok {
		return name
	}
	return c
}

// PaletteIndex returns the position of c in Palette, or -1.
func PaletteIndex(c string) int {
	c = strings.ToLower(c)
	for i, p := range Palette {
		if p == c {
			return i
		}
	}
	return -1
}
