package stroke

import (
	"math"
	"testing"
)

func expand(t *testing.T, style Style, pts []Point, closed bool) [][]Point {
	t.Helper()
	var polys [][]Point
	e := NewExpander(style, func(p []Point) {
		polys = append(polys, p)
	})
	e.Subpath(pts, closed)
	return polys
}

func bounds(polys [][]Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return
}

func TestButtCapSegmentIsRectangle(t *testing.T) {
	style := Style{Width: 10, Cap: CapButt, Join: JoinMiter, MiterLimit: 10}
	polys := expand(t, style, []Point{{10, 20}, {50, 20}}, false)
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	minX, minY, maxX, maxY := bounds(polys)
	if minX != 10 || maxX != 50 || minY != 15 || maxY != 25 {
		t.Errorf("bounds (%v,%v)-(%v,%v), want (10,15)-(50,25)",
			minX, minY, maxX, maxY)
	}
}

func TestSquareCapExtends(t *testing.T) {
	style := Style{Width: 10, Cap: CapSquare, Join: JoinMiter, MiterLimit: 10}
	polys := expand(t, style, []Point{{10, 20}, {50, 20}}, false)
	minX, _, maxX, _ := bounds(polys)
	if minX != 5 || maxX != 55 {
		t.Errorf("x bounds (%v, %v), want (5, 55)", minX, maxX)
	}
}

func TestCircleCapExtends(t *testing.T) {
	style := Style{Width: 10, Cap: CapCircle, Join: JoinMiter, MiterLimit: 10}
	polys := expand(t, style, []Point{{10, 20}, {50, 20}}, false)
	minX, minY, maxX, maxY := bounds(polys)
	// Semicircular caps reach half a width beyond the endpoints, up to
	// the cubic approximation error.
	const eps = 0.1
	if math.Abs(minX-5) > eps || math.Abs(maxX-55) > eps {
		t.Errorf("x bounds (%v, %v), want about (5, 55)", minX, maxX)
	}
	if math.Abs(minY-15) > eps || math.Abs(maxY-25) > eps {
		t.Errorf("y bounds (%v, %v), want about (15, 25)", minY, maxY)
	}
}

func TestMiterJoinReachesCorner(t *testing.T) {
	// A right angle with a generous miter limit: the outer corner
	// extends to half a diagonal width beyond the vertex.
	style := Style{Width: 10, Cap: CapButt, Join: JoinMiter, MiterLimit: 10}
	polys := expand(t, style, []Point{{0, 0}, {40, 0}, {40, 40}}, false)
	_, _, maxX, _ := bounds(polys)
	if math.Abs(maxX-45) > 1e-9 {
		t.Errorf("miter corner x = %v, want 45", maxX)
	}
}

func TestMiterLimitFallsBackToBevel(t *testing.T) {
	// A right angle needs a miter ratio of sqrt(2), above the limit of
	// 1.05, so the join falls back to a bevel: no point lies beyond the
	// bevel edge from (40,-5) to (45,0), the line x-y = 45.
	style := Style{Width: 10, Cap: CapButt, Join: JoinMiter, MiterLimit: 1.05}
	polys := expand(t, style, []Point{{0, 0}, {40, 0}, {40, 40}}, false)
	for _, poly := range polys {
		for _, p := range poly {
			if p.X-p.Y > 45.0001 {
				t.Errorf("point %v lies beyond the bevel edge", p)
			}
		}
	}
	_, _, maxX, _ := bounds(polys)
	if maxX > 45.0001 {
		t.Errorf("join extends to %v despite miter limit", maxX)
	}
	if maxX < 44 {
		t.Errorf("bevel edge missing, maxX = %v", maxX)
	}
}

func TestRoundJoinStaysWithinRadius(t *testing.T) {
	style := Style{Width: 10, Cap: CapButt, Join: JoinRound, MiterLimit: 10}
	polys := expand(t, style, []Point{{0, 0}, {40, 0}, {40, 40}}, false)
	for _, poly := range polys {
		for _, p := range poly {
			// Stroke tessellation keeps the flattened pieces' control
			// points, which sit off the arc by at most the 0.125
			// flatness tolerance.
			d := math.Hypot(p.X-40, p.Y-0)
			if p.X > 40 && p.Y < 0 && d > 5.125 {
				t.Errorf("round join point %v is %v from the vertex", p, d)
			}
		}
	}
}

func TestClosedSubpathEmitsTwoLoops(t *testing.T) {
	style := Style{Width: 4, Cap: CapButt, Join: JoinMiter, MiterLimit: 10}
	square := []Point{{10, 10}, {50, 10}, {50, 50}, {10, 50}}
	polys := expand(t, style, square, true)
	if len(polys) != 2 {
		t.Fatalf("got %d polygons, want 2 (outer and inner loop)", len(polys))
	}
	minX, minY, maxX, maxY := bounds(polys)
	if minX != 8 || minY != 8 || maxX != 52 || maxY != 52 {
		t.Errorf("outer bounds (%v,%v)-(%v,%v), want (8,8)-(52,52)",
			minX, minY, maxX, maxY)
	}
}

func TestDegenerateSubpathsProduceNothing(t *testing.T) {
	style := Style{Width: 10, Cap: CapCircle, Join: JoinRound, MiterLimit: 10}
	if polys := expand(t, style, nil, false); len(polys) != 0 {
		t.Errorf("nil subpath produced %d polygons", len(polys))
	}
	if polys := expand(t, style, []Point{{5, 5}}, false); len(polys) != 0 {
		t.Errorf("single point produced %d polygons", len(polys))
	}
}
