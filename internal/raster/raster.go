// Package raster converts polylines into sparse signed-coverage pixel
// runs.
//
// A Run contributes a signed change in fractional coverage at one pixel
// cell. Traversing a row's runs in x order and accumulating deltas gives
// the coverage at each pixel as min(|sum|, 1). The representation is
// sparse: only cells actually crossed by geometry carry runs, which keeps
// unbounded paths, clip intersection and shadow generation on a single
// data structure.
//
// The per-segment emission follows the signed trapezoidal area scheme of
// golang.org/x/image/vector, emitting run deltas instead of accumulating
// into a dense buffer.
package raster

import (
	"sort"

	"github.com/chewxy/math32"
)

// Point is a 2D point in canvas coordinates.
type Point struct {
	X, Y float64
}

// Run is a signed coverage delta at pixel (X, Y).
// Runs are ordered by (Y, X, |Delta|) once a conversion completes.
type Run struct {
	X, Y  uint16
	Delta float32
}

// Converter turns polyline subpaths into sorted, coalesced runs.
// Its internal buffers are reused across calls and never shrink.
type Converter struct {
	runs    []Run
	clipped []Point
	scratch []Point
	width   int
	height  int
}

// Reset prepares the converter for a new pass over a raster of the given
// size. Width and height include any padding the caller needs (the
// shadow pass scan-converts into a padded grid).
func (c *Converter) Reset(width, height int) {
	c.runs = c.runs[:0]
	c.width = width
	c.height = height
}

// Runs returns the accumulated runs. Only valid after Finish.
func (c *Converter) Runs() []Run {
	return c.runs
}

// AddSubpath clips the polygon to the raster rectangle and emits runs
// for every resulting edge. The subpath is treated as closed: fills and
// stroke outlines both arrive as closed polygons.
func (c *Converter) AddSubpath(pts []Point) {
	if len(pts) < 3 {
		return
	}
	poly := c.clipToRect(pts)
	if len(poly) < 3 {
		return
	}
	for i := 0; i < len(poly); i++ {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		c.addSegment(float32(a.X), float32(a.Y), float32(b.X), float32(b.Y))
	}
}

// Finish sorts the runs by (y, x, |delta|) and coalesces runs sharing a
// cell. Zero deltas are dropped.
func (c *Converter) Finish() []Run {
	runs := c.runs
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Y != runs[j].Y {
			return runs[i].Y < runs[j].Y
		}
		if runs[i].X != runs[j].X {
			return runs[i].X < runs[j].X
		}
		return math32.Abs(runs[i].Delta) < math32.Abs(runs[j].Delta)
	})
	out := runs[:0]
	for i := 0; i < len(runs); {
		x, y := runs[i].X, runs[i].Y
		delta := runs[i].Delta
		j := i + 1
		for j < len(runs) && runs[j].X == x && runs[j].Y == y {
			delta += runs[j].Delta
			j++
		}
		if delta != 0 {
			out = append(out, Run{X: x, Y: y, Delta: delta})
		}
		i = j
	}
	c.runs = out
	return out
}

// clipToRect clips a closed polygon to [0,width]x[0,height] with
// Sutherland-Hodgman, one rectangle edge at a time.
func (c *Converter) clipToRect(pts []Point) []Point {
	w := float64(c.width)
	h := float64(c.height)
	in := append(c.clipped[:0], pts...)
	out := c.scratch[:0]
	edges := [4]struct {
		inside func(Point) bool
		cross  func(a, b Point) Point
	}{
		{func(p Point) bool { return p.X >= 0 },
			func(a, b Point) Point { return lerpAtX(a, b, 0) }},
		{func(p Point) bool { return p.X <= w },
			func(a, b Point) Point { return lerpAtX(a, b, w) }},
		{func(p Point) bool { return p.Y >= 0 },
			func(a, b Point) Point { return lerpAtY(a, b, 0) }},
		{func(p Point) bool { return p.Y <= h },
			func(a, b Point) Point { return lerpAtY(a, b, h) }},
	}
	for _, e := range edges {
		out = out[:0]
		for i := 0; i < len(in); i++ {
			a := in[i]
			b := in[(i+1)%len(in)]
			ain, bin := e.inside(a), e.inside(b)
			switch {
			case ain && bin:
				out = append(out, b)
			case ain && !bin:
				out = append(out, e.cross(a, b))
			case !ain && bin:
				out = append(out, e.cross(a, b), b)
			}
		}
		in, out = out, in
		if len(in) == 0 {
			break
		}
	}
	c.clipped, c.scratch = in, out
	return in
}

func lerpAtX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{X: x, Y: a.Y + (b.Y-a.Y)*t}
}

func lerpAtY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{X: a.X + (b.X-a.X)*t, Y: y}
}

// addSegment emits runs for one non-horizontal segment. The segment is
// walked from smaller to larger y; the sign of the original direction is
// carried in dir. Within each pixel row the covered area splits between
// the cells the segment crosses as signed trapezoids, with the remainder
// carried to the cell right of the last crossing.
func (c *Converter) addSegment(ax, ay, bx, by float32) {
	dir := float32(1)
	if ay > by {
		dir = -1
		ax, ay, bx, by = bx, by, ax, ay
	}
	if by == ay {
		return
	}
	dxdy := (bx - ax) / (by - ay)

	x := ax
	y := int(math32.Floor(ay))
	yMax := int(math32.Ceil(by))
	if yMax > c.height {
		yMax = c.height
	}

	for ; y < yMax; y++ {
		dy := math32.Min(float32(y+1), by) - math32.Max(float32(y), ay)
		if dy <= 0 {
			continue
		}
		xNext := x + dy*dxdy

		x0, x1 := x, xNext
		if x > xNext {
			x0, x1 = xNext, x
		}
		x0i := int(math32.Floor(x0))
		x0Floor := float32(x0i)
		x1i := int(math32.Ceil(x1))
		x1Ceil := float32(x1i)
		d := dir * dy

		if x1i <= x0i+1 {
			// The segment stays within one pixel column this row.
			xmf := 0.5*(x+xNext) - x0Floor
			c.push(x0i, y, d*(1-xmf))
			c.push(x0i+1, y, d*xmf)
		} else {
			s := 1 / (x1 - x0)
			x0f := x0 - x0Floor
			oneMinusX0f := 1 - x0f
			a0 := 0.5 * s * oneMinusX0f * oneMinusX0f
			x1f := x1 - x1Ceil + 1
			am := 0.5 * s * x1f * x1f

			c.push(x0i, y, d*a0)
			if x1i == x0i+2 {
				c.push(x0i+1, y, d*(1-a0-am))
			} else {
				a1 := s * (1.5 - x0f)
				c.push(x0i+1, y, d*(a1-a0))
				dTimesS := d * s
				for xi := x0i + 2; xi < x1i-1; xi++ {
					c.push(xi, y, dTimesS)
				}
				a2 := a1 + s*float32(x1i-x0i-3)
				c.push(x1i-1, y, d*(1-a2-am))
			}
			c.push(x1i, y, d*am)
		}

		x = xNext
	}
}

func (c *Converter) push(x, y int, delta float32) {
	if delta == 0 || x < 0 || y < 0 {
		return
	}
	c.runs = append(c.runs, Run{X: uint16(x), Y: uint16(y), Delta: delta})
}

// FullMask appends the runs of a mask covering the whole raster: for
// every row two runs {0,y,+1} and {width,y,-1}. This is the initial clip
// mask of a fresh canvas state.
func FullMask(dst []Run, width, height int) []Run {
	for y := 0; y < height; y++ {
		dst = append(dst,
			Run{X: 0, Y: uint16(y), Delta: 1},
			Run{X: uint16(width), Y: uint16(y), Delta: -1})
	}
	return dst
}
