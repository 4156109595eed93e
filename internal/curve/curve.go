// Package curve flattens cubic Bezier segments into polylines by
// adaptive subdivision.
//
// Subdivision stops when both control points sit within the flatness
// tolerance of the chord and, when stroking, the turning angle across
// the segment stays under the angular limit. Before recursing, each
// cubic is split at its axis extrema and at the curvature extremum so
// that the recursion only ever sees smooth monotone arcs; cusps and
// loops cannot stall it.
package curve

import (
	"math"
	"sort"
)

// Point is a 2D point.
type Point struct {
	X, Y float64
}

func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) mul(s float64) Point { return Point{p.X * s, p.Y * s} }

func (p Point) dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

func (p Point) cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

func (p Point) length() float64 { return math.Hypot(p.X, p.Y) }

func lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Tolerance is the flatness limit in pixels.
const Tolerance = 0.125

// maxDepth bounds the recursion; at depth 20 a segment has been halved
// down to a millionth of its original span.
const maxDepth = 20

// FillAngular disables the angular test: fills only care about chord
// distance.
const FillAngular = -1.0

// StrokeAngular derives the angular cosine limit for a stroke of the
// given line width: the angle at which an arc of half-stroke radius has
// a sagitta equal to the flatness tolerance.
func StrokeAngular(lineWidth float64) float64 {
	ratio := Tolerance / math.Max(lineWidth*0.5, Tolerance)
	return (ratio-2)*ratio*2 + 1
}

// AddBezier appends the tessellation of the cubic (p1, c1, c2, p2) to
// out. The start point p1 is assumed already present. Before the
// recursive flattening, the cubic is split at the parameters of its x
// and y derivative roots and at the curvature extremum.
func AddBezier(out []Point, p1, c1, c2, p2 Point, angular float64) []Point {
	var ts [6]float64
	n := 0

	d1 := c1.sub(p1)
	d2 := c2.sub(c1)
	d3 := p2.sub(c2)

	// Axis extrema: roots of the quadratic derivative per axis.
	n = appendQuadRoots(ts[:], n,
		d1.X-2*d2.X+d3.X, 2*(d2.X-d1.X), d1.X)
	n = appendQuadRoots(ts[:], n,
		d1.Y-2*d2.Y+d3.Y, 2*(d2.Y-d1.Y), d1.Y)

	// Curvature extremum.
	k := d1.sub(d2.mul(2)).add(d3)
	a := d2.cross(k) - d1.cross(k)
	b := -2*d1.cross(d2) + d1.cross(d3)
	if a != 0 {
		if t := -b / (2 * a); t > 0 && t < 1 {
			ts[n] = t
			n++
		}
	}

	sort.Float64s(ts[:n])

	prev := 0.0
	start, sc1, sc2, send := p1, c1, c2, p2
	for i := 0; i < n; i++ {
		t := ts[i]
		if t <= prev || t >= 1 {
			continue
		}
		// Re-parameterize the split position onto the remaining tail.
		local := (t - prev) / (1 - prev)
		var head [4]Point
		head, start, sc1, sc2, send = split(start, sc1, sc2, send, local)
		out = addTessellation(out, head[0], head[1], head[2], head[3], angular, 0)
		prev = t
	}
	return addTessellation(out, start, sc1, sc2, send, angular, 0)
}

// appendQuadRoots appends the roots of a*t^2 + b*t + c that lie strictly
// inside (0, 1).
func appendQuadRoots(ts []float64, n int, a, b, c float64) int {
	if a == 0 {
		if b != 0 {
			if t := -c / b; t > 0 && t < 1 {
				ts[n] = t
				n++
			}
		}
		return n
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return n
	}
	sq := math.Sqrt(disc)
	for _, t := range [2]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if t > 0 && t < 1 {
			ts[n] = t
			n++
		}
	}
	return n
}

// split divides the cubic at parameter t by de Casteljau, returning the
// head as an array and the tail as loose points.
func split(p1, c1, c2, p2 Point, t float64) (head [4]Point, t1, tc1, tc2, t2 Point) {
	ab := lerp(p1, c1, t)
	bc := lerp(c1, c2, t)
	cd := lerp(c2, p2, t)
	abc := lerp(ab, bc, t)
	bcd := lerp(bc, cd, t)
	mid := lerp(abc, bcd, t)
	head = [4]Point{p1, ab, abc, mid}
	return head, mid, bcd, cd, p2
}

// addTessellation is the recursive flatness test. When the segment is
// flat enough (and, for strokes, straight enough) it appends the control
// points if they carry tangent information, then the endpoint.
func addTessellation(out []Point, p1, c1, c2, p2 Point, angular float64, depth int) []Point {
	chord := p2.sub(p1)
	chordLen := chord.length()

	flat := false
	if chordLen > 0 {
		d1 := math.Abs(chord.cross(c1.sub(p1))) / chordLen
		d2 := math.Abs(chord.cross(c2.sub(p1))) / chordLen
		flat = d1 <= Tolerance && d2 <= Tolerance
	} else {
		flat = c1.sub(p1).length() <= Tolerance && c2.sub(p1).length() <= Tolerance
	}

	if flat && angular > FillAngular {
		in := c1.sub(p1)
		outv := p2.sub(c2)
		il, ol := in.length(), outv.length()
		if il > 0 && ol > 0 {
			flat = in.dot(outv)/(il*ol) >= angular
		}
	}

	if flat || depth >= maxDepth {
		if angular > FillAngular {
			// Keep the interior control points so the stroker sees the
			// true tangents at the endpoints.
			if c1.sub(p1).length() > 0 && c1 != p2 {
				out = append(out, c1)
			}
			if c2.sub(c1).length() > 0 && c2 != p2 {
				out = append(out, c2)
			}
		}
		return append(out, p2)
	}

	head, t1, tc1, tc2, t2 := split(p1, c1, c2, p2, 0.5)
	out = addTessellation(out, head[0], head[1], head[2], head[3], angular, depth+1)
	return addTessellation(out, t1, tc1, tc2, t2, angular, depth+1)
}
