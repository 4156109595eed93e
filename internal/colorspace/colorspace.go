// Package colorspace provides gamma transfer curves and premultiplied
// alpha conversions for the rendering core.
//
// The core stores all colors premultiplied and linearized: RGB components
// are converted out of their storage gamma space and multiplied by alpha
// on entry, and converted back on exit. Alpha itself is never
// gamma-encoded.
package colorspace

import "github.com/chewxy/math32"

// Curve selects the gamma transfer function applied when converting
// between storage pixel values and the linear working space.
type Curve uint8

const (
	// None treats storage values as already linear.
	None Curve = iota
	// Pow2 approximates gamma 2.0: linearize by squaring, delinearize
	// by square root. Cheap and close enough for many uses.
	Pow2
	// SRGB applies the standard piecewise sRGB transfer function.
	SRGB
)

// MinAlpha is the smallest alpha treated as visible. Below this,
// unpremultiplication collapses to transparent black and coverage is
// treated as empty. The value is 1/8160, one thirty-second of the
// 1/255 step of 8-bit storage.
const MinAlpha = 1.0 / 8160.0

// Linearize converts one gamma-space component to linear.
func (c Curve) Linearize(s float32) float32 {
	switch c {
	case Pow2:
		return s * s
	case SRGB:
		if s <= 0.04045 {
			return s / 12.92
		}
		return math32.Pow((s+0.055)/1.055, 2.4)
	default:
		return s
	}
}

// Delinearize converts one linear component back to gamma space.
func (c Curve) Delinearize(l float32) float32 {
	switch c {
	case Pow2:
		if l <= 0 {
			return 0
		}
		return math32.Sqrt(l)
	case SRGB:
		if l <= 0.0031308 {
			return l * 12.92
		}
		return 1.055*math32.Pow(l, 1.0/2.4) - 0.055
	default:
		return l
	}
}

// Premultiply converts an unpremultiplied gamma-space color to the
// premultiplied linear working representation.
func (c Curve) Premultiply(r, g, b, a float32) (pr, pg, pb, pa float32) {
	return c.Linearize(r) * a, c.Linearize(g) * a, c.Linearize(b) * a, a
}

// Unpremultiply converts a premultiplied linear color back to
// unpremultiplied gamma space. Colors with alpha below MinAlpha collapse
// to transparent black.
func (c Curve) Unpremultiply(pr, pg, pb, pa float32) (r, g, b, a float32) {
	if pa < MinAlpha {
		return 0, 0, 0, 0
	}
	inv := 1 / pa
	return c.Delinearize(pr * inv), c.Delinearize(pg * inv), c.Delinearize(pb * inv), pa
}
