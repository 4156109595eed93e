// Package blend composites coverage runs onto a pixel surface.
//
// The compositor merges two run streams in (y, x) order: the current
// pass's path coverage and the clip mask visibility. Between consecutive
// merge keys on a row it paints a span of pixels, blending with
// premultiplied linear arithmetic and writing back through the surface's
// format-converting span interface.
package blend

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/canvas/internal/colorspace"
	"github.com/gogpu/canvas/internal/raster"
)

// Op is an HTML composite operation, encoded as four boolean flags over
// the two blend factors: the two low bits select the foreground factor,
// the next two bits select the background factor. Factor selectors:
// 0 = zero, 1 = one, 2 = the other pixel's alpha, 3 = one minus the
// other pixel's alpha.
type Op uint8

// Composite operations.
const (
	SourceCopy      Op = 1
	SourceIn        Op = 2
	SourceOut       Op = 3
	Lighter         Op = 5
	DestinationOver Op = 7
	DestinationIn   Op = 8
	DestinationAtop Op = 11
	DestinationOut  Op = 12
	SourceOver      Op = 13
	SourceAtop      Op = 14
	Xor             Op = 15
)

func factor(sel uint8, otherAlpha float32) float32 {
	switch sel {
	case 0:
		return 0
	case 1:
		return 1
	case 2:
		return otherAlpha
	default:
		return 1 - otherAlpha
	}
}

// Factors returns the foreground and background blend factors for the
// given pixel alphas.
func (op Op) Factors(foreAlpha, backAlpha float32) (mixFore, mixBack float32) {
	return factor(uint8(op)&3, backAlpha), factor(uint8(op)>>2&3, foreAlpha)
}

// PreservesUncovered reports whether pixels without path coverage keep
// their destination value. When false (the background factor is zero or
// scales by the foreground alpha), the compositor must visit every
// visible pixel even where the path does not reach.
func (op Op) PreservesUncovered() bool {
	sel := uint8(op) >> 2 & 3
	return sel == 1 || sel == 3
}

// Spans is the surface contract the compositor draws through: scanline
// fragments of unpremultiplied gamma-space float RGBA, 4 floats per
// pixel.
type Spans interface {
	ReadSpan(x, y int, dst []float32)
	WriteSpan(x, y int, src []float32)
}

// Painter samples the premultiplied linear color of the active brush at
// a pixel center in canvas coordinates.
type Painter func(x, y float64) (r, g, b, a float32)

// Compositor owns the scanline scratch buffer, reused across calls.
type Compositor struct {
	span []float32
}

// Composite blends the path run stream onto dst through the clip mask.
//
// For each painted pixel: fore = coverage * alpha * paint(center); the
// op's factors mix fore against the (linearized, premultiplied)
// destination; blended alpha is clamped to 1; the clip visibility then
// interpolates between the blend and the untouched destination.
func (c *Compositor) Composite(dst Spans, width int, path, clip []raster.Run,
	paint Painter, alpha float32, op Op, curve colorspace.Curve) {
	requireCoverage := op.PreservesUncovered()

	i, j := 0, 0
	var pathSum, clipSum float32
	curY, curX := -1, 0
	for i < len(path) || j < len(clip) {
		ky, kx := nextKey(path, clip, i, j)

		if ky != curY {
			pathSum, clipSum = 0, 0
			curY, curX = ky, kx
		} else if kx > curX {
			coverage := math32.Min(math32.Abs(pathSum), 1)
			visibility := math32.Min(math32.Abs(clipSum), 1)
			if visibility >= colorspace.MinAlpha &&
				(coverage >= colorspace.MinAlpha || !requireCoverage) {
				c.paintSpan(dst, curX, min(kx, width), curY,
					coverage, visibility, paint, alpha, op, curve)
			}
			curX = kx
		}

		for i < len(path) && int(path[i].Y) == ky && int(path[i].X) == kx {
			pathSum += path[i].Delta
			i++
		}
		for j < len(clip) && int(clip[j].Y) == ky && int(clip[j].X) == kx {
			clipSum += clip[j].Delta
			j++
		}
	}
}

func nextKey(path, clip []raster.Run, i, j int) (y, x int) {
	switch {
	case i >= len(path):
		return int(clip[j].Y), int(clip[j].X)
	case j >= len(clip):
		return int(path[i].Y), int(path[i].X)
	default:
		py, px := int(path[i].Y), int(path[i].X)
		cy, cx := int(clip[j].Y), int(clip[j].X)
		if py < cy || (py == cy && px < cx) {
			return py, px
		}
		return cy, cx
	}
}

func (c *Compositor) paintSpan(dst Spans, x0, x1, y int,
	coverage, visibility float32, paint Painter, alpha float32, op Op,
	curve colorspace.Curve) {
	n := x1 - x0
	if n <= 0 {
		return
	}
	if cap(c.span) < n*4 {
		c.span = make([]float32, n*4)
	}
	span := c.span[:n*4]
	dst.ReadSpan(x0, y, span)

	scale := coverage * alpha
	for p := 0; p < n; p++ {
		s := span[p*4 : p*4+4 : p*4+4]
		br, bg, bb, ba := curve.Premultiply(s[0], s[1], s[2], s[3])

		fr, fg, fb, fa := paint(float64(x0+p)+0.5, float64(y)+0.5)
		fr, fg, fb, fa = fr*scale, fg*scale, fb*scale, fa*scale

		mixF, mixB := op.Factors(fa, ba)
		nr := fr*mixF + br*mixB
		ng := fg*mixF + bg*mixB
		nb := fb*mixF + bb*mixB
		na := fa*mixF + ba*mixB
		if na > 1 {
			na = 1
		}

		nr = visibility*nr + (1-visibility)*br
		ng = visibility*ng + (1-visibility)*bg
		nb = visibility*nb + (1-visibility)*bb
		na = visibility*na + (1-visibility)*ba

		s[0], s[1], s[2], s[3] = curve.Unpremultiply(nr, ng, nb, na)
	}
	dst.WriteSpan(x0, y, span)
}
