package canvas

import (
	"image/color"
	"strconv"
	"strings"
)

// RGBA represents a color with float64 components in [0, 1].
// Components are unpremultiplied and in gamma (storage) space; the
// rendering core converts to its premultiplied linear representation on
// entry.
type RGBA struct {
	R, G, B, A float64
}

// Common colors.
var (
	Transparent = RGBA{}
	Black       = RGBA{A: 1}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
	Red         = RGBA{R: 1, A: 1}
	Green       = RGBA{G: 1, A: 1}
	Blue        = RGBA{B: 1, A: 1}
	Yellow      = RGBA{R: 1, G: 1, A: 1}
)

// RGB creates an opaque color from RGB components (0-1 range).
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// RGBA2 creates a color from RGBA components (0-1 range).
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Hex creates a color from a hex string.
// Supports "RGB", "RGBA", "RRGGBB" and "RRGGBBAA", with an optional '#'
// prefix. Invalid strings return Transparent.
func Hex(hex string) RGBA {
	hex = strings.TrimPrefix(hex, "#")

	expand := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String()
	}

	switch len(hex) {
	case 3, 4:
		hex = expand(hex)
	case 6, 8:
	default:
		return Transparent
	}

	bad := false
	comp := func(i int) float64 {
		v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			bad = true
			return 0
		}
		return float64(v) / 255
	}

	c := RGBA{R: comp(0), G: comp(2), B: comp(4), A: 1}
	if len(hex) == 8 {
		c.A = comp(6)
	}
	if bad {
		return Transparent
	}
	return c
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Color converts to a standard library color.Color.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor creates an RGBA from a standard library color.Color.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v + 0.5
}
