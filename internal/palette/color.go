// Package palette loads, reorders and names palette colors.
package palette

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrMalformedHex is returned for strings that are not #rrggbb.
var ErrMalformedHex = errors.New("malformed hex color")

// Color is an HSL color with every component in [0,1].
type Color struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Black is the fallback for every failed lookup or conversion.
var Black = Color{}

// ParseHex converts "#rrggbb" to HSL.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Black, fmt.Errorf("%q: %w", s, ErrMalformedHex)
	}
	for i := 1; i < len(s); i++ {
		if !isHexChar(s[i]) {
			return Black, fmt.Errorf("%q: %w", s, ErrMalformedHex)
		}
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Black, fmt.Errorf("%q: %w", s, ErrMalformedHex)
	}
	h, sat, l := c.Hsl()
	return Color{H: h / 360, S: sat, L: l}, nil
}

// HexToColor is ParseHex with black substituted on failure.
func HexToColor(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		return Black
	}
	return c
}

// Hue returns the hue of s in [0,1), or 0 when s does not parse.
func Hue(s string) float64 {
	return HexToColor(s).H
}

func (c Color) colorful() colorful.Color {
	return colorful.Hsl(c.H*360, c.S, c.L).Clamped()
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.colorful().RGBA()
}

// String formats the color as hsl(h, s%, l%) with hue in degrees.
func (c Color) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.H*360, c.S*100, c.L*100)
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
