// Package stroke expands stroked polylines into closed fillable
// outlines.
//
// Each subpath is traced as a half-stroke along one offset side and a
// second half-stroke back along the other. Closed subpaths close each
// half as its own polygon; open subpaths connect the two halves with
// caps into a single loop. The resulting polygons are filled with the
// nonzero winding rule, which tolerates the self-overlap that inner
// joins produce; on very tight inner turns the trace runs through the
// vertex itself (incoming offset, vertex, outgoing offset) so the
// overlap region keeps nonzero coverage. The vertex is the only extra
// point, and the two offset sides are not swapped.
//
// All math runs in user space; the caller transforms emitted points back
// to canvas space.
package stroke

import (
	"math"

	"github.com/gogpu/canvas/internal/curve"
)

// Point is a 2D point in user-space coordinates.
type Point struct {
	X, Y float64
}

// Cap is the shape drawn at the ends of open subpaths.
type Cap int

const (
	// CapButt ends the stroke flat at the endpoint.
	CapButt Cap = iota
	// CapSquare extends the stroke half a line width past the endpoint.
	CapSquare
	// CapCircle rounds the end with a semicircle.
	CapCircle
)

// Join is the shape drawn where two segments meet.
type Join int

const (
	// JoinMiter extends the outer edges to their intersection, subject
	// to the miter limit.
	JoinMiter Join = iota
	// JoinBevel connects the outer edge points directly.
	JoinBevel
	// JoinRound connects the outer edge points with a circular arc.
	JoinRound
)

// Style carries the stroke parameters for one expansion.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
}

// Expander turns subpaths into stroke outline polygons. The point
// buffer is reused across calls.
type Expander struct {
	style   Style
	half    float64
	angular float64
	buf     []curve.Point
	sink    func([]Point)
}

// NewExpander creates an expander that hands each finished outline
// polygon to sink.
func NewExpander(style Style, sink func([]Point)) *Expander {
	return &Expander{
		style:   style,
		half:    style.Width * 0.5,
		angular: curve.StrokeAngular(style.Width),
		sink:    sink,
	}
}

// Subpath expands one subpath. Points must be free of consecutive
// duplicates; subpaths without two distinct points produce nothing.
func (e *Expander) Subpath(pts []Point, closed bool) {
	if closed && len(pts) > 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return
	}

	if closed && len(pts) >= 3 {
		e.begin()
		e.halfStrokeClosed(pts)
		e.finish()
		rev := reverse(pts)
		e.begin()
		e.halfStrokeClosed(rev)
		e.finish()
		return
	}

	e.begin()
	e.halfStrokeOpen(pts)
	e.cap(pts[len(pts)-1], unit(sub(pts[len(pts)-1], pts[len(pts)-2])))
	rev := reverse(pts)
	e.halfStrokeOpen(rev)
	e.cap(pts[0], unit(sub(pts[0], pts[1])))
	e.finish()
}

func (e *Expander) begin() { e.buf = e.buf[:0] }

func (e *Expander) finish() {
	if len(e.buf) < 3 {
		return
	}
	out := make([]Point, len(e.buf))
	for i, p := range e.buf {
		out[i] = Point{p.X, p.Y}
	}
	e.sink(out)
}

func (e *Expander) emit(p Point) {
	e.buf = append(e.buf, curve.Point{X: p.X, Y: p.Y})
}

// halfStrokeOpen traces the left offset side from the first point to the
// last, emitting joins at interior vertices.
func (e *Expander) halfStrokeOpen(pts []Point) {
	d0 := unit(sub(pts[1], pts[0]))
	e.emit(add(pts[0], scale(perp(d0), e.half)))
	for i := 1; i < len(pts)-1; i++ {
		e.vertex(pts[i-1], pts[i], pts[i+1])
	}
	dn := unit(sub(pts[len(pts)-1], pts[len(pts)-2]))
	e.emit(add(pts[len(pts)-1], scale(perp(dn), e.half)))
}

// halfStrokeClosed traces the left offset side around the whole loop,
// joining at every vertex including the wrap.
func (e *Expander) halfStrokeClosed(pts []Point) {
	n := len(pts)
	for i := 0; i < n; i++ {
		e.vertex(pts[(i-1+n)%n], pts[i], pts[(i+1)%n])
	}
}

// vertex emits the trace across one interior vertex v.
func (e *Expander) vertex(prev, v, next Point) {
	in := unit(sub(v, prev))
	out := unit(sub(next, v))
	inOff := scale(perp(in), e.half)
	outOff := scale(perp(out), e.half)
	turn := cross(in, out)
	dot := in.X*out.X + in.Y*out.Y

	if turn == 0 {
		if dot > 0 {
			return // collinear, nothing to join
		}
		// Full reversal: trace around the end like a cap.
		e.emit(add(v, inOff))
		if e.style.Join == JoinRound {
			e.semicircle(v, in)
		}
		e.emit(add(v, outOff))
		return
	}

	if turn > 0 {
		// The left side is inside this turn. The two offset segments
		// cross; nonzero winding absorbs the overlap, except on tight
		// turns where the crossing escapes both segments and the
		// overlap would lose coverage without extra winding points.
		reach := e.half * (1 - dot) / math.Abs(turn)
		if reach > dist(v, prev) && reach > dist(v, next) {
			e.emit(add(v, inOff))
			e.emit(v)
			e.emit(add(v, outOff))
		} else {
			e.emit(add(v, inOff))
			e.emit(add(v, outOff))
		}
		return
	}

	// Outer join.
	e.emit(add(v, inOff))
	switch e.style.Join {
	case JoinMiter:
		ml := e.style.MiterLimit
		if 2/(1+dot) <= ml*ml {
			m := add(v, scale(Point{out.X - in.X, out.Y - in.Y}, e.half/turn))
			e.emit(m)
		}
	case JoinRound:
		e.roundArc(v, inOff, outOff, in, out)
	}
	e.emit(add(v, outOff))
}

// roundArc appends the tessellated circular arc between the two offset
// points around center v. A single cubic with tangent length
// 4/3*tan(angle/4) approximates the arc; the tessellator flattens it
// under the stroke's angular limit.
func (e *Expander) roundArc(v, fromOff, toOff, inDir, outDir Point) {
	a := add(v, fromOff)
	b := add(v, toOff)
	cosA := (fromOff.X*toOff.X + fromOff.Y*toOff.Y) / (e.half * e.half)
	cosA = math.Max(-1, math.Min(1, cosA))
	angle := math.Acos(cosA)
	alpha := 4.0 / 3.0 * math.Tan(angle/4) * e.half

	c1 := add(a, scale(inDir, alpha))
	c2 := sub(b, scale(outDir, alpha))
	e.buf = curve.AddBezier(e.buf,
		curve.Point{X: a.X, Y: a.Y},
		curve.Point{X: c1.X, Y: c1.Y},
		curve.Point{X: c2.X, Y: c2.Y},
		curve.Point{X: b.X, Y: b.Y},
		e.angular)
}

// semicircle traces a half circle around p bulging along d, from
// p+perp(d)*half to p-perp(d)*half, as two quarter-circle cubics.
func (e *Expander) semicircle(p, d Point) {
	o := scale(perp(d), e.half)
	a := add(p, o)
	m := add(p, scale(d, e.half))
	b := sub(p, o)
	alpha := circleAlpha * e.half
	pd := unit(o)
	e.buf = curve.AddBezier(e.buf,
		curve.Point{X: a.X, Y: a.Y},
		curve.Point{X: a.X + d.X*alpha, Y: a.Y + d.Y*alpha},
		curve.Point{X: m.X + pd.X*alpha, Y: m.Y + pd.Y*alpha},
		curve.Point{X: m.X, Y: m.Y},
		e.angular)
	e.buf = curve.AddBezier(e.buf,
		curve.Point{X: m.X, Y: m.Y},
		curve.Point{X: m.X - pd.X*alpha, Y: m.Y - pd.Y*alpha},
		curve.Point{X: b.X + d.X*alpha, Y: b.Y + d.Y*alpha},
		curve.Point{X: b.X, Y: b.Y},
		e.angular)
}

// circleAlpha is 4/3*tan(pi/8), the cubic tangent length that traces a
// quarter circle of unit radius.
const circleAlpha = 0.55228475

// cap emits the cap shape at endpoint p facing direction d.
func (e *Expander) cap(p, d Point) {
	o := scale(perp(d), e.half)
	switch e.style.Cap {
	case CapSquare:
		ext := scale(d, e.half)
		e.emit(add(add(p, o), ext))
		e.emit(add(sub(p, o), ext))
	case CapCircle:
		e.semicircle(p, d)
	}
}

func sub(a, b Point) Point { return Point{a.X - b.X, a.Y - b.Y} }

func add(a, b Point) Point { return Point{a.X + b.X, a.Y + b.Y} }

func scale(p Point, s float64) Point { return Point{p.X * s, p.Y * s} }

func perp(p Point) Point { return Point{-p.Y, p.X} }

func cross(a, b Point) float64 { return a.X*b.Y - a.Y*b.X }

func dist(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

func unit(p Point) Point {
	l := math.Hypot(p.X, p.Y)
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

func reverse(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
