// Package contrast picks highlight colors that stay readable against the
// text color they sit under.
package contrast

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Color is an sRGB color.
type Color struct {
	R, G, B uint8
}

// Black is the fallback when no usable text color is known.
var Black = Color{}

// Palette holds the three highlight states of a marker.
type Palette struct {
	Normal  string `json:"normal"`
	Preview string `json:"preview"`
	Focus   string `json:"focus"`
}

var (
	// DarkText is used when the text is dark: bright yellows and oranges.
	DarkText = Palette{Normal: "#FFDD33", Preview: "#FFAA33", Focus: "#FF5533"}
	// LightText is used when the text is light: deeper ambers.
	LightText = Palette{Normal: "#CC9900", Preview: "#FF6600", Focus: "#CC3300"}
)

var (
	rgbPattern = regexp.MustCompile(`(?i)^\s*rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+%?)\s*)?\)`)
	hexPattern = regexp.MustCompile(`(?i)^#([0-9a-f]{3}|[0-9a-f]{6})$`)
)

// ParseColor reads rgb(), rgba(), #rgb and #rrggbb. Anything else is black.
func ParseColor(s string) Color {
	s = strings.TrimSpace(s)
	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		return Color{R: channel(m[1]), G: channel(m[2]), B: channel(m[3])}
	}
	if m := hexPattern.FindStringSubmatch(s); m != nil {
		hex := m[1]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		return Color{R: hexByte(hex[0:2]), G: hexByte(hex[2:4]), B: hexByte(hex[4:6])}
	}
	return Black
}

func channel(s string) uint8 {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return uint8(min(n, 255))
}

func hexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

// IsTransparent reports whether a computed color carries no visible text
// color: empty, the transparent keyword, or an rgba() with zero alpha.
func IsTransparent(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "transparent" {
		return true
	}
	m := rgbPattern.FindStringSubmatch(s)
	if m == nil || m[4] == "" {
		return false
	}
	alpha := strings.TrimSuffix(m[4], "%")
	f, err := strconv.ParseFloat(alpha, 64)
	return err == nil && f == 0
}

// Luminance returns the WCAG relative luminance of c in [0, 1].
func Luminance(c Color) float64 {
	lin := func(v uint8) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ForColor returns the palette for text drawn in c.
func ForColor(c Color) Palette {
	if Luminance(c) < 0.5 {
		return DarkText
	}
	return LightText
}

// ForText returns the palette for the first non-transparent color in
// colors, which are ordered from the element outwards through its
// ancestors. With no usable color the text is assumed black.
func ForText(colors ...string) Palette {
	for _, c := range colors {
		if !IsTransparent(c) {
			return ForColor(ParseColor(c))
		}
	}
	return ForColor(Black)
}
