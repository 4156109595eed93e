package canvas

import "math"

// subpath records one subpath's slice of a shared point buffer.
type subpath struct {
	start  int
	count  int
	closed bool
}

// bezierPath stores subpaths of cubic segments: each subpath holds
// 1 + 3k points (start plus k cubics). All points are in canvas
// coordinates; the forward transform is applied as points enter.
type bezierPath struct {
	pts  []Point
	subs []subpath
}

func (p *bezierPath) reset() {
	p.pts = p.pts[:0]
	p.subs = p.subs[:0]
}

func (p *bezierPath) current() *subpath {
	if len(p.subs) == 0 {
		return nil
	}
	return &p.subs[len(p.subs)-1]
}

func (p *bezierPath) lastPoint() (Point, bool) {
	s := p.current()
	if s == nil || s.count == 0 {
		return Point{}, false
	}
	return p.pts[s.start+s.count-1], true
}

// BeginPath discards the current path and starts a new one.
func (c *Canvas) BeginPath() {
	c.path.reset()
}

// MoveTo starts a new subpath at the given user-space point.
// A subpath holding only a pending MoveTo is silently replaced.
func (c *Canvas) MoveTo(x, y float64) {
	c.moveToPoint(c.state.fwd.TransformPoint(Point{X: x, Y: y}))
}

func (c *Canvas) moveToPoint(p Point) {
	if s := c.path.current(); s != nil && s.count == 1 {
		c.path.pts[s.start] = p
		return
	}
	c.path.subs = append(c.path.subs, subpath{start: len(c.path.pts), count: 1})
	c.path.pts = append(c.path.pts, p)
}

// LineTo adds a straight segment to the given user-space point.
// On an empty path it is equivalent to MoveTo. Zero-length segments are
// skipped.
func (c *Canvas) LineTo(x, y float64) {
	c.lineToPoint(c.state.fwd.TransformPoint(Point{X: x, Y: y}))
}

func (c *Canvas) lineToPoint(p Point) {
	prev, ok := c.path.lastPoint()
	if !ok {
		c.moveToPoint(p)
		return
	}
	if prev == p {
		return
	}
	// A line is stored as the degenerate cubic (prev, prev, p, p) so
	// the path buffer holds cubics uniformly.
	s := c.path.current()
	c.path.pts = append(c.path.pts, prev, p, p)
	s.count += 3
}

// QuadraticCurveTo adds a quadratic segment, lifted to the equivalent
// cubic by moving each endpoint two thirds of the way toward the
// control point.
func (c *Canvas) QuadraticCurveTo(cx, cy, x, y float64) {
	ctrl := c.state.fwd.TransformPoint(Point{X: cx, Y: cy})
	p := c.state.fwd.TransformPoint(Point{X: x, Y: y})
	prev, ok := c.path.lastPoint()
	if !ok {
		c.moveToPoint(ctrl)
		prev = ctrl
	}
	c1 := prev.Lerp(ctrl, 2.0/3.0)
	c2 := p.Lerp(ctrl, 2.0/3.0)
	c.curveToPoints(c1, c2, p)
}

// BezierCurveTo adds a cubic segment with two control points.
func (c *Canvas) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	c1 := c.state.fwd.TransformPoint(Point{X: c1x, Y: c1y})
	c2 := c.state.fwd.TransformPoint(Point{X: c2x, Y: c2y})
	p := c.state.fwd.TransformPoint(Point{X: x, Y: y})
	if _, ok := c.path.lastPoint(); !ok {
		c.moveToPoint(c1)
	}
	c.curveToPoints(c1, c2, p)
}

func (c *Canvas) curveToPoints(c1, c2, p Point) {
	s := c.path.current()
	c.path.pts = append(c.path.pts, c1, c2, p)
	s.count += 3
}

// ClosePath closes the current subpath with a straight segment back to
// its start and begins a new subpath there.
func (c *Canvas) ClosePath() {
	s := c.path.current()
	if s == nil || s.count == 0 {
		return
	}
	start := c.path.pts[s.start]
	c.lineToPoint(start)
	c.path.current().closed = true
	c.moveToPoint(start)
}

// Rect adds a closed rectangle subpath.
func (c *Canvas) Rect(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

// Arc adds a circular arc centered on (x, y) with the given radius,
// from angle a1 to a2 in radians. Negative radii are silently ignored.
// Spans larger than a full circle are clamped to one full circle.
func (c *Canvas) Arc(x, y, r, a1, a2 float64, ccw bool) {
	if r < 0 {
		return
	}
	span := a2 - a1
	twoPi := 2 * math.Pi
	if ccw {
		if span <= -twoPi {
			span = -twoPi
		} else {
			span = math.Mod(span, twoPi)
			if span > 0 {
				span -= twoPi
			}
		}
	} else {
		if span >= twoPi {
			span = twoPi
		} else {
			span = math.Mod(span, twoPi)
			if span < 0 {
				span += twoPi
			}
		}
	}

	sin1, cos1 := math.Sincos(a1)
	c.LineTo(x+r*cos1, y+r*sin1)
	if span == 0 || r == 0 {
		return
	}

	segments := int(math.Ceil(16 * math.Abs(span) / twoPi))
	seg := span / float64(segments)
	alpha := 4.0 / 3.0 * math.Tan(seg/4) * r
	for i := 0; i < segments; i++ {
		t0 := a1 + float64(i)*seg
		t1 := t0 + seg
		sin0, cos0 := math.Sincos(t0)
		sin1, cos1 := math.Sincos(t1)
		c.BezierCurveTo(
			x+r*cos0-alpha*sin0, y+r*sin0+alpha*cos0,
			x+r*cos1+alpha*sin1, y+r*sin1-alpha*cos1,
			x+r*cos1, y+r*sin1)
	}
}

// ArcTo adds an arc of the given radius tangent to the two edges from
// the current point to (x1, y1) and from there to (x2, y2). Nearly
// collinear edges and invalid radii degrade to a LineTo of the corner.
func (c *Canvas) ArcTo(x1, y1, x2, y2, r float64) {
	last, ok := c.path.lastPoint()
	if !ok {
		c.MoveTo(x1, y1)
		return
	}
	p0 := c.state.inv.TransformPoint(last)
	v := Point{X: x1, Y: y1}
	p2 := Point{X: x2, Y: y2}

	d1 := v.Sub(p0).Normalize()
	d2 := p2.Sub(v).Normalize()
	cross := d1.Cross(d2)
	if r < 0 || math.Abs(cross) < 1e-4 {
		c.LineTo(x1, y1)
		return
	}

	// Tangent length along each edge from the corner.
	cosPhi := d1.Dot(d2)
	tanHalf := math.Sqrt((1 - cosPhi) / (1 + cosPhi))
	t := r / tanHalf
	t1 := v.Sub(d1.Mul(t))
	t2 := v.Add(d2.Mul(t))

	side := 1.0
	if cross < 0 {
		side = -1
	}
	center := t1.Add(d1.Perp().Mul(r * side))
	a1 := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	a2 := math.Atan2(t2.Y-center.Y, t2.X-center.X)

	c.LineTo(t1.X, t1.Y)
	c.Arc(center.X, center.Y, r, a1, a2, cross < 0)
}

// IsPointInPath reports whether the canvas-space point (x, y) lies
// inside the current path under the nonzero winding rule.
func (c *Canvas) IsPointInPath(x, y float64) bool {
	c.tessellateFill()
	winding := 0
	for _, s := range c.lines.subs {
		pts := c.lines.pts[s.start : s.start+s.count]
		if len(pts) < 3 {
			continue
		}
		for i := 0; i < len(pts); i++ {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if (a.Y <= y) != (b.Y <= y) {
				cx := a.X + (y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
				if cx > x {
					if b.Y > a.Y {
						winding++
					} else {
						winding--
					}
				}
			}
		}
	}
	return winding != 0
}
