package curve

import (
	"math"
	"testing"
)

// eval evaluates the cubic at parameter t.
func eval(p1, c1, c2, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*u*p1.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p2.X,
		Y: u*u*u*p1.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p2.Y,
	}
}

func TestStraightCubicCollapses(t *testing.T) {
	p1 := Point{0, 0}
	p2 := Point{30, 0}
	out := AddBezier(nil, p1, Point{10, 0}, Point{20, 0}, p2, FillAngular)
	if len(out) == 0 {
		t.Fatal("no points emitted")
	}
	last := out[len(out)-1]
	if last != p2 {
		t.Errorf("last point = %v, want %v", last, p2)
	}
	for _, p := range out {
		if math.Abs(p.Y) > 1e-9 {
			t.Errorf("point %v off the line", p)
		}
	}
}

func TestFillTessellationWithinTolerance(t *testing.T) {
	tests := []struct {
		name           string
		p1, c1, c2, p2 Point
	}{
		{"arc-like", Point{0, 0}, Point{0, 55}, Point{45, 100}, Point{100, 100}},
		{"s-curve", Point{0, 0}, Point{100, 0}, Point{0, 100}, Point{100, 100}},
		{"loop", Point{0, 0}, Point{120, 80}, Point{-20, 80}, Point{100, 0}},
		{"cusp", Point{0, 0}, Point{100, 100}, Point{0, 100}, Point{100, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := AddBezier(nil, tc.p1, tc.c1, tc.c2, tc.p2, FillAngular)
			pts := append([]Point{tc.p1}, out...)

			// Every curve sample must lie near the polyline.
			for i := 0; i <= 256; i++ {
				s := eval(tc.p1, tc.c1, tc.c2, tc.p2, float64(i)/256)
				best := math.Inf(1)
				for j := 0; j+1 < len(pts); j++ {
					if d := pointSegDist(s, pts[j], pts[j+1]); d < best {
						best = d
					}
				}
				// The flatness bound applies to control distance, which
				// bounds curve distance; allow modest slack.
				if best > 4*Tolerance {
					t.Fatalf("sample %v is %v from polyline", s, best)
				}
			}
		})
	}
}

func pointSegDist(p, a, b Point) float64 {
	ab := b.sub(a)
	l2 := ab.dot(ab)
	if l2 == 0 {
		return p.sub(a).length()
	}
	t := p.sub(a).dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.sub(Point{a.X + ab.X*t, a.Y + ab.Y*t}).length()
}

func TestStrokeAngular(t *testing.T) {
	// Thin strokes hit the tolerance floor and disable the angle test;
	// thick strokes demand straighter segments.
	thin := StrokeAngular(0.01)
	thick := StrokeAngular(40)
	if thin >= thick {
		t.Errorf("angular(thin)=%v should be below angular(thick)=%v", thin, thick)
	}
	if thick >= 1 {
		t.Errorf("angular limit must stay below 1, got %v", thick)
	}
	// At width = 4*tolerance the ratio is 1/2: (1/2-2)*1/2*2+1 = -1/2.
	got := StrokeAngular(4 * Tolerance)
	if math.Abs(got-(-0.5)) > 1e-12 {
		t.Errorf("StrokeAngular(4*tol) = %v, want -0.5", got)
	}
}

func TestStrokeTessellationKeepsEndTangents(t *testing.T) {
	p1 := Point{0, 0}
	c1 := Point{0, 50}
	c2 := Point{50, 100}
	p2 := Point{100, 100}
	out := AddBezier(nil, p1, c1, c2, p2, StrokeAngular(4))
	if len(out) < 2 {
		t.Fatalf("too few points: %d", len(out))
	}
	// The first emitted edge must leave p1 along the initial tangent
	// (straight up in y), within tessellation slack.
	first := out[0]
	d := first.sub(p1)
	if math.Abs(d.X) > math.Abs(d.Y) {
		t.Errorf("first edge %v does not follow the start tangent", d)
	}
}
