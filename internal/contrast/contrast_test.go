package contrast

import (
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Color
	}{
		{"rgb", "rgb(10, 20, 30)", Color{10, 20, 30}},
		{"rgba", "rgba(255,255,255,0.5)", Color{255, 255, 255}},
		{"upper case", "RGB(1,2,3)", Color{1, 2, 3}},
		{"long hex", "#FF8000", Color{255, 128, 0}},
		{"short hex", "#fff", Color{255, 255, 255}},
		{"clamped", "rgb(300, 0, 0)", Color{255, 0, 0}},
		{"named color", "red", Black},
		{"bad hex", "#12345", Black},
		{"empty", "", Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseColor(tt.input); got != tt.expected {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance(Black); got != 0 {
		t.Errorf("black luminance = %v, want 0", got)
	}
	if got := Luminance(Color{255, 255, 255}); math.Abs(got-1) > 1e-9 {
		t.Errorf("white luminance = %v, want 1", got)
	}
	if Luminance(Color{0, 255, 0}) <= Luminance(Color{0, 0, 255}) {
		t.Error("green should be brighter than blue")
	}
}

func TestForText(t *testing.T) {
	tests := []struct {
		name   string
		colors []string
		want   Palette
	}{
		{"dark text", []string{"rgb(20, 20, 20)"}, DarkText},
		{"light text", []string{"#fafafa"}, LightText},
		{"no colors", nil, DarkText},
		{"transparent defers to ancestor", []string{"rgba(0, 0, 0, 0)", "transparent", "rgb(240,240,240)"}, LightText},
		{"all transparent", []string{"", "transparent"}, DarkText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForText(tt.colors...); got != tt.want {
				t.Errorf("ForText(%v) = %+v, want %+v", tt.colors, got, tt.want)
			}
		})
	}
}

func TestIsTransparent(t *testing.T) {
	for _, c := range []string{"", "transparent", "rgba(0, 0, 0, 0)", "rgba(10,10,10,0%)"} {
		if !IsTransparent(c) {
			t.Errorf("IsTransparent(%q) = false", c)
		}
	}
	for _, c := range []string{"rgb(0,0,0)", "rgba(0,0,0,1)", "#000"} {
		if IsTransparent(c) {
			t.Errorf("IsTransparent(%q) = true", c)
		}
	}
}
