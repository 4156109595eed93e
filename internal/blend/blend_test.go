package blend

import (
	"math"
	"testing"

	"github.com/gogpu/canvas/internal/colorspace"
	"github.com/gogpu/canvas/internal/raster"
)

func TestOpFactors(t *testing.T) {
	const foreA, backA = 0.25, 0.75
	tests := []struct {
		name     string
		op       Op
		mixFore  float32
		mixBack  float32
	}{
		{"source-in", SourceIn, backA, 0},
		{"source-copy", SourceCopy, 1, 0},
		{"source-out", SourceOut, 1 - backA, 0},
		{"destination-in", DestinationIn, 0, foreA},
		{"destination-atop", DestinationAtop, 1 - backA, foreA},
		{"lighter", Lighter, 1, 1},
		{"destination-over", DestinationOver, 1 - backA, 1},
		{"destination-out", DestinationOut, 0, 1 - foreA},
		{"source-atop", SourceAtop, backA, 1 - foreA},
		{"source-over", SourceOver, 1, 1 - foreA},
		{"xor", Xor, 1 - backA, 1 - foreA},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mf, mb := tc.op.Factors(foreA, backA)
			if mf != tc.mixFore || mb != tc.mixBack {
				t.Errorf("Factors = (%v, %v), want (%v, %v)",
					mf, mb, tc.mixFore, tc.mixBack)
			}
		})
	}
}

func TestPreservesUncovered(t *testing.T) {
	preserving := []Op{Lighter, DestinationOver, DestinationOut,
		SourceAtop, SourceOver, Xor}
	erasing := []Op{SourceIn, SourceCopy, SourceOut,
		DestinationIn, DestinationAtop}
	for _, op := range preserving {
		if !op.PreservesUncovered() {
			t.Errorf("op %d should preserve uncovered pixels", op)
		}
	}
	for _, op := range erasing {
		if op.PreservesUncovered() {
			t.Errorf("op %d should not preserve uncovered pixels", op)
		}
	}
}

// memSpans is a simple float32 surface for compositor tests.
type memSpans struct {
	w, h int
	px   []float32
}

func newMemSpans(w, h int) *memSpans {
	return &memSpans{w: w, h: h, px: make([]float32, w*h*4)}
}

func (m *memSpans) ReadSpan(x, y int, dst []float32) {
	copy(dst, m.px[(y*m.w+x)*4:])
}

func (m *memSpans) WriteSpan(x, y int, src []float32) {
	copy(m.px[(y*m.w+x)*4:], src)
}

func (m *memSpans) at(x, y int) [4]float32 {
	var out [4]float32
	copy(out[:], m.px[(y*m.w+x)*4:])
	return out
}

func solidRed(x, y float64) (float32, float32, float32, float32) {
	return 1, 0, 0, 1
}

func TestCompositeSourceOverInsideCoverage(t *testing.T) {
	dst := newMemSpans(8, 4)
	path := []raster.Run{
		{X: 2, Y: 1, Delta: 1}, {X: 6, Y: 1, Delta: -1},
	}
	clip := raster.FullMask(nil, 8, 4)
	var c Compositor
	c.Composite(dst, 8, path, clip, solidRed, 1, SourceOver, colorspace.None)

	for x := 0; x < 8; x++ {
		px := dst.at(x, 1)
		inside := x >= 2 && x < 6
		if inside && (px[0] != 1 || px[3] != 1) {
			t.Errorf("x=%d: got %v, want opaque red", x, px)
		}
		if !inside && px[3] != 0 {
			t.Errorf("x=%d: got %v, want untouched", x, px)
		}
	}
	if px := dst.at(3, 0); px[3] != 0 {
		t.Errorf("row 0 touched: %v", px)
	}
}

func TestCompositeRespectsClip(t *testing.T) {
	dst := newMemSpans(8, 2)
	path := []raster.Run{
		{X: 0, Y: 0, Delta: 1}, {X: 8, Y: 0, Delta: -1},
	}
	// Clip visible only on x in [4, 6).
	clip := []raster.Run{
		{X: 4, Y: 0, Delta: 1}, {X: 6, Y: 0, Delta: -1},
	}
	var c Compositor
	c.Composite(dst, 8, path, clip, solidRed, 1, SourceOver, colorspace.None)

	for x := 0; x < 8; x++ {
		px := dst.at(x, 0)
		visible := x >= 4 && x < 6
		if visible && px[0] != 1 {
			t.Errorf("x=%d: got %v, want red", x, px)
		}
		if !visible && px != ([4]float32{}) {
			t.Errorf("x=%d: clip leak %v", x, px)
		}
	}
}

func TestCompositeSourceCopyErasesUncovered(t *testing.T) {
	dst := newMemSpans(4, 1)
	for x := 0; x < 4; x++ {
		dst.WriteSpan(x, 0, []float32{0, 1, 0, 1})
	}
	// Path covers nothing; source-copy must still erase everything
	// visible under the clip.
	clip := raster.FullMask(nil, 4, 1)
	var c Compositor
	c.Composite(dst, 4, nil, clip, solidRed, 1, SourceCopy, colorspace.None)

	for x := 0; x < 4; x++ {
		if px := dst.at(x, 0); px[3] != 0 {
			t.Errorf("x=%d: got %v, want erased", x, px)
		}
	}
}

func TestCompositeGlobalAlpha(t *testing.T) {
	dst := newMemSpans(2, 1)
	path := []raster.Run{{X: 0, Y: 0, Delta: 1}, {X: 2, Y: 0, Delta: -1}}
	clip := raster.FullMask(nil, 2, 1)
	var c Compositor
	c.Composite(dst, 2, path, clip, solidRed, 0.5, SourceOver, colorspace.None)

	px := dst.at(0, 0)
	if math.Abs(float64(px[3]-0.5)) > 1e-3 {
		t.Errorf("alpha = %v, want 0.5", px[3])
	}
}
