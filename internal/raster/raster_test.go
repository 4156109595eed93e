package raster

import (
	"math"
	"testing"
)

// coverage accumulates one row of runs into per-pixel coverage.
func coverage(runs []Run, y, width int) []float32 {
	out := make([]float32, width)
	sum := float32(0)
	for i, r := range runs {
		if int(r.Y) != y {
			continue
		}
		sum += r.Delta
		next := width
		for j := i + 1; j < len(runs); j++ {
			if int(runs[j].Y) == y {
				next = int(runs[j].X)
				break
			}
		}
		c := float32(math.Min(math.Abs(float64(sum)), 1))
		for x := int(r.X); x < next && x < width; x++ {
			out[x] = c
		}
	}
	return out
}

func convert(t *testing.T, w, h int, polys ...[]Point) []Run {
	t.Helper()
	var c Converter
	c.Reset(w, h)
	for _, p := range polys {
		c.AddSubpath(p)
	}
	return c.Finish()
}

func TestRowDeltasSumToZero(t *testing.T) {
	tests := []struct {
		name string
		poly []Point
	}{
		{"rect", []Point{{10, 10}, {40, 10}, {40, 30}, {10, 30}}},
		{"triangle", []Point{{5, 5}, {45, 20}, {12, 44}}},
		{"offgrid", []Point{{1.3, 2.7}, {46.1, 8.9}, {30.5, 41.2}, {3.9, 33.3}}},
		{"beyond edges", []Point{{-20, -10}, {80, -5}, {70, 60}, {-15, 55}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runs := convert(t, 50, 50, tc.poly)
			sums := map[int]float32{}
			for _, r := range runs {
				sums[int(r.Y)] += r.Delta
			}
			for y, s := range sums {
				if math.Abs(float64(s)) > 1e-4 {
					t.Errorf("row %d: delta sum = %v, want 0", y, s)
				}
			}
		})
	}
}

func TestRunsSortedAndCoalesced(t *testing.T) {
	runs := convert(t, 50, 50,
		[]Point{{5, 5}, {45, 5}, {45, 45}, {5, 45}},
		[]Point{{10, 10}, {40, 10}, {40, 40}, {10, 40}})
	for i := 1; i < len(runs); i++ {
		a, b := runs[i-1], runs[i]
		if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
			t.Fatalf("runs out of order at %d: %+v then %+v", i, a, b)
		}
		if a.X == b.X && a.Y == b.Y {
			t.Fatalf("uncoalesced duplicate cell at %d: %+v", i, a)
		}
	}
	for _, r := range runs {
		if r.Delta == 0 {
			t.Fatalf("zero delta run survived: %+v", r)
		}
	}
}

func TestAxisAlignedRectCoverage(t *testing.T) {
	runs := convert(t, 50, 50, []Point{{10, 10}, {40, 10}, {40, 30}, {10, 30}})

	cov := coverage(runs, 20, 50)
	for x := 0; x < 50; x++ {
		want := float32(0)
		if x >= 10 && x < 40 {
			want = 1
		}
		if math.Abs(float64(cov[x]-want)) > 1e-4 {
			t.Errorf("row 20 x=%d: coverage %v, want %v", x, cov[x], want)
		}
	}

	if cov := coverage(runs, 5, 50); cov[20] != 0 {
		t.Errorf("row above rect covered: %v", cov[20])
	}
	if cov := coverage(runs, 35, 50); cov[20] != 0 {
		t.Errorf("row below rect covered: %v", cov[20])
	}
}

func TestFractionalCoverage(t *testing.T) {
	// A rect spanning half a pixel column yields 0.5 coverage.
	runs := convert(t, 20, 20, []Point{{5, 5}, {10.5, 5}, {10.5, 15}, {5, 15}})
	cov := coverage(runs, 10, 20)
	if math.Abs(float64(cov[7]-1)) > 1e-4 {
		t.Errorf("interior coverage = %v, want 1", cov[7])
	}
	if math.Abs(float64(cov[10]-0.5)) > 1e-4 {
		t.Errorf("half pixel coverage = %v, want 0.5", cov[10])
	}
	if cov[11] != 0 {
		t.Errorf("outside coverage = %v, want 0", cov[11])
	}
}

func TestScreenEdgeClipping(t *testing.T) {
	// A polygon reaching far beyond the raster clips cleanly: full
	// coverage up to the edges, terminating runs at x = width.
	runs := convert(t, 30, 30, []Point{{-100, -100}, {130, -100}, {130, 130}, {-100, 130}})
	for y := 0; y < 30; y++ {
		cov := coverage(runs, y, 30)
		for x := 0; x < 30; x++ {
			if math.Abs(float64(cov[x]-1)) > 1e-4 {
				t.Fatalf("pixel (%d,%d): coverage %v, want 1", x, y, cov[x])
			}
		}
	}
	for _, r := range runs {
		if int(r.X) > 30 || int(r.Y) >= 30 {
			t.Fatalf("run outside raster: %+v", r)
		}
	}
}

func TestFullMask(t *testing.T) {
	mask := FullMask(nil, 10, 3)
	if len(mask) != 6 {
		t.Fatalf("len = %d, want 6", len(mask))
	}
	for y := 0; y < 3; y++ {
		a, b := mask[y*2], mask[y*2+1]
		if int(a.Y) != y || a.X != 0 || a.Delta != 1 {
			t.Errorf("row %d open run = %+v", y, a)
		}
		if int(b.Y) != y || b.X != 10 || b.Delta != -1 {
			t.Errorf("row %d close run = %+v", y, b)
		}
	}
}

func TestDegenerateSubpaths(t *testing.T) {
	var c Converter
	c.Reset(20, 20)
	c.AddSubpath(nil)
	c.AddSubpath([]Point{{5, 5}})
	c.AddSubpath([]Point{{5, 5}, {10, 10}})
	if runs := c.Finish(); len(runs) != 0 {
		t.Errorf("degenerate subpaths produced %d runs", len(runs))
	}
}
