package canvas

import (
	"math"

	"github.com/gogpu/canvas/internal/blend"
)

// transparentPainter paints nothing.
func transparentPainter(x, y float64) (float32, float32, float32, float32) {
	return 0, 0, 0, 0
}

// solidPainter returns a painter for one premultiplied linear color.
func (c *Canvas) solidPainter(col RGBA) blend.Painter {
	r, g, b, a := c.gamma.Premultiply(
		float32(col.R), float32(col.G), float32(col.B), float32(col.A))
	return func(x, y float64) (float32, float32, float32, float32) {
		return r, g, b, a
	}
}

// gradientTable is a draw-call snapshot of gradient stops converted to
// unpremultiplied linear components. Interpolation happens in linear
// space on unpremultiplied values, then premultiplies, per the painter
// contract.
type gradientTable struct {
	offsets []float64
	colors  [][4]float32
}

func (c *Canvas) buildTable(stops []ColorStop) gradientTable {
	t := gradientTable{
		offsets: make([]float64, len(stops)),
		colors:  make([][4]float32, len(stops)),
	}
	for i, s := range stops {
		t.offsets[i] = s.Offset
		t.colors[i] = [4]float32{
			c.gamma.Linearize(float32(s.Color.R)),
			c.gamma.Linearize(float32(s.Color.G)),
			c.gamma.Linearize(float32(s.Color.B)),
			float32(s.Color.A),
		}
	}
	return t
}

// lookup samples the stop table at t, clamping outside [0, 1], and
// returns the premultiplied linear color.
func (t *gradientTable) lookup(pos float64) (float32, float32, float32, float32) {
	n := len(t.offsets)
	if pos <= t.offsets[0] {
		c := t.colors[0]
		return c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]
	}
	if pos >= t.offsets[n-1] {
		c := t.colors[n-1]
		return c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]
	}
	i := 1
	for t.offsets[i] < pos {
		i++
	}
	u := float32((pos - t.offsets[i-1]) / (t.offsets[i] - t.offsets[i-1]))
	lo, hi := t.colors[i-1], t.colors[i]
	var out [4]float32
	for k := 0; k < 4; k++ {
		out[k] = lo[k] + (hi[k]-lo[k])*u
	}
	return out[0] * out[3], out[1] * out[3], out[2] * out[3], out[3]
}

// painterFor builds the per-pixel sampling function for a brush under
// the current state. Sample points arrive at canvas-space pixel centers
// and are mapped through the inverse transform into the brush's
// user-space coordinates.
func (c *Canvas) painterFor(b Brush) blend.Painter {
	inv := c.state.inv
	switch br := b.(type) {
	case *SolidBrush:
		return c.solidPainter(br.Color)

	case *LinearGradient:
		stops := br.Stops()
		if len(stops) == 0 {
			return transparentPainter
		}
		table := c.buildTable(stops)
		if len(stops) == 1 || br.Start == br.End {
			r, g, bl, a := table.lookup(0)
			return func(x, y float64) (float32, float32, float32, float32) {
				return r, g, bl, a
			}
		}
		d := br.End.Sub(br.Start)
		den := d.LengthSquared()
		start := br.Start
		return func(x, y float64) (float32, float32, float32, float32) {
			p := inv.TransformPoint(Point{X: x, Y: y})
			t := p.Sub(start).Dot(d) / den
			return table.lookup(t)
		}

	case *RadialGradient:
		stops := br.Stops()
		if len(stops) == 0 || br.StartRadius < 0 || br.EndRadius < 0 {
			return transparentPainter
		}
		table := c.buildTable(stops)
		cd := br.End.Sub(br.Start)
		dr := br.EndRadius - br.StartRadius
		r0 := br.StartRadius
		start := br.Start
		// Quadratic coefficients of |p - lerp(start,end,t)| =
		// lerp(r0,r1,t), constant across samples.
		qa := cd.LengthSquared() - dr*dr
		return func(x, y float64) (float32, float32, float32, float32) {
			p := inv.TransformPoint(Point{X: x, Y: y})
			pd := p.Sub(start)
			qb := -2 * (pd.Dot(cd) + r0*dr)
			qc := pd.LengthSquared() - r0*r0
			t, ok := largestRoot(qa, qb, qc, r0, dr)
			if !ok {
				return 0, 0, 0, 0
			}
			return table.lookup(t)
		}

	case *PatternBrush:
		if br == nil || br.width == 0 {
			return transparentPainter
		}
		// The sampling footprint is how far one canvas pixel reaches in
		// pattern space, never below one source pixel and clamped to
		// four times the source span.
		fx := clampFootprint(math.Hypot(inv.A, inv.B), br.width)
		fy := clampFootprint(math.Hypot(inv.C, inv.D), br.height)
		return func(x, y float64) (float32, float32, float32, float32) {
			p := inv.TransformPoint(Point{X: x, Y: y})
			return br.sample(p.X, p.Y, fx, fy)
		}
	}
	return transparentPainter
}

func clampFootprint(f float64, span int) float64 {
	if f < 1 {
		return 1
	}
	if max := 4 * float64(span); f > max {
		return max
	}
	return f
}

// largestRoot picks the larger root of qa*t^2 + qb*t + qc = 0 whose
// interpolated radius r0 + t*dr is non-negative.
func largestRoot(qa, qb, qc, r0, dr float64) (float64, bool) {
	if qa == 0 {
		if qb == 0 {
			return 0, false
		}
		t := -qc / qb
		if r0+t*dr < 0 {
			return 0, false
		}
		return t, true
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (-qb + sq) / (2 * qa)
	t2 := (-qb - sq) / (2 * qa)
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if r0+t1*dr >= 0 {
		return t1, true
	}
	if r0+t2*dr >= 0 {
		return t2, true
	}
	return 0, false
}
