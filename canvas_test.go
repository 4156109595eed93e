package canvas

import (
	"bytes"
	"testing"
)

func TestClearRect(t *testing.T) {
	pm := NewPixmap(20, 20)
	ctx := New(pm)
	ctx.SetFillStyle(Solid(Red))
	ctx.FillRect(0, 0, 20, 20)
	ctx.ClearRect(5, 5, 8, 8)

	if _, _, _, a := rgbaAt(pm, 8, 8); a != 0 {
		t.Errorf("cleared pixel alpha = %d, want 0", a)
	}
	expectRGBA(t, pm, 2, 2, 255, 0, 0, 255)
	expectRGBA(t, pm, 15, 15, 255, 0, 0, 255)
}

func TestClearRectIgnoresCompositeAndAlpha(t *testing.T) {
	pm := NewPixmap(20, 20)
	ctx := New(pm)
	ctx.SetFillStyle(Solid(Red))
	ctx.FillRect(0, 0, 20, 20)

	ctx.SetGlobalAlpha(0.25)
	ctx.SetGlobalCompositeOperation(Lighter)
	ctx.SetFillStyle(SolidRGBA(0, 0, 1, 0.5))
	ctx.ClearRect(5, 5, 8, 8)

	if _, _, _, a := rgbaAt(pm, 8, 8); a != 0 {
		t.Errorf("cleared pixel alpha = %d, want 0", a)
	}
	if got := ctx.GlobalAlpha(); got != 0.25 {
		t.Errorf("globalAlpha clobbered: %v", got)
	}
	if got := ctx.GlobalCompositeOperation(); got != Lighter {
		t.Errorf("composite op clobbered: %v", got)
	}
}

func TestIsPointInPath(t *testing.T) {
	ctx := New(NewPixmap(100, 100))
	ctx.BeginPath()
	ctx.Rect(20, 20, 40, 40)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 40, 40, true},
		{"near edge inside", 21, 21, true},
		{"outside left", 10, 40, false},
		{"outside below", 40, 70, false},
		{"far corner", 95, 95, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ctx.IsPointInPath(tc.x, tc.y); got != tc.want {
				t.Errorf("IsPointInPath(%v,%v) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestIsPointInPathNonzeroWinding(t *testing.T) {
	// Two same-direction nested rects: the ring and the hole both wind
	// nonzero, so the hole still counts as inside.
	ctx := New(NewPixmap(100, 100))
	ctx.BeginPath()
	ctx.Rect(10, 10, 80, 80)
	ctx.Rect(30, 30, 40, 40)
	if !ctx.IsPointInPath(50, 50) {
		t.Error("nested same-winding point should be inside")
	}
}

func TestTransformedFill(t *testing.T) {
	pm := NewPixmap(60, 60)
	ctx := New(pm)
	ctx.Translate(30, 30)
	ctx.Rotate(0.7853981633974483) // 45 degrees
	ctx.SetFillStyle(Solid(Blue))
	ctx.FillRect(-10, -10, 20, 20)

	// A rotated square is a diamond: its corners reach along the axes.
	expectRGBA(t, pm, 30, 30, 0, 0, 255, 255)
	expectRGBA(t, pm, 30, 20, 0, 0, 255, 255)
	expectRGBA(t, pm, 40, 30, 0, 0, 255, 255)
	if _, _, _, a := rgbaAt(pm, 40, 40); a != 0 {
		t.Errorf("outside the diamond alpha = %d, want 0", a)
	}
}

func TestQuadraticMatchesLiftedCubic(t *testing.T) {
	a := NewPixmap(80, 80)
	ca := New(a)
	ca.SetFillStyle(Solid(Black))
	ca.BeginPath()
	ca.MoveTo(10, 70)
	ca.QuadraticCurveTo(40, -10, 70, 70)
	ca.ClosePath()
	ca.Fill()

	b := NewPixmap(80, 80)
	cb := New(b)
	cb.SetFillStyle(Solid(Black))
	cb.BeginPath()
	cb.MoveTo(10, 70)
	// The 2/3 lift of the same quadratic.
	cb.BezierCurveTo(30, 70-160.0/3, 50, 70-160.0/3, 70, 70)
	cb.ClosePath()
	cb.Fill()

	if !bytes.Equal(a.Data(), b.Data()) {
		t.Error("quadratic and its lifted cubic rendered differently")
	}
}

func TestArcFullCircleArea(t *testing.T) {
	pm := NewPixmap(100, 100)
	ctx := New(pm)
	ctx.SetFillStyle(Solid(Black))
	ctx.BeginPath()
	ctx.Arc(50, 50, 30, 0, 6.283185307179586, false)
	ctx.Fill()

	covered := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if _, _, _, a := rgbaAt(pm, x, y); a > 128 {
				covered++
			}
		}
	}
	want := 3.141592653589793 * 30 * 30
	if d := float64(covered) - want; d < -want*0.02 || d > want*0.02 {
		t.Errorf("circle area %d, want about %.0f", covered, want)
	}
	expectRGBA(t, pm, 50, 50, 0, 0, 0, 255)
	if _, _, _, a := rgbaAt(pm, 85, 50); a != 0 {
		t.Errorf("outside circle alpha = %d", a)
	}
}

func TestArcToRoundsCorner(t *testing.T) {
	pm := NewPixmap(100, 100)
	ctx := New(pm)
	ctx.SetFillStyle(Solid(Black))
	ctx.BeginPath()
	ctx.MoveTo(10, 90)
	ctx.LineTo(10, 30)
	ctx.ArcTo(10, 10, 30, 10, 20)
	ctx.LineTo(90, 10)
	ctx.LineTo(90, 90)
	ctx.ClosePath()
	ctx.Fill()

	// The sharp corner at (10,10) is replaced by a radius-20 arc: the
	// corner pixel itself stays empty, the arc interior is filled.
	if _, _, _, a := rgbaAt(pm, 12, 12); a != 0 {
		t.Errorf("rounded-off corner alpha = %d, want 0", a)
	}
	expectRGBA(t, pm, 30, 30, 0, 0, 0, 255)
	expectRGBA(t, pm, 50, 50, 0, 0, 0, 255)
}

func TestPathPersistsAcrossFills(t *testing.T) {
	pm := NewPixmap(40, 40)
	ctx := New(pm)
	ctx.BeginPath()
	ctx.Rect(5, 5, 10, 10)
	ctx.SetFillStyle(Solid(Red))
	ctx.Fill()
	// FillRect must not disturb the retained path.
	ctx.SetFillStyle(Solid(Green))
	ctx.FillRect(25, 25, 10, 10)
	ctx.SetFillStyle(Solid(Blue))
	ctx.Fill()

	expectRGBA(t, pm, 10, 10, 0, 0, 255, 255)
	expectRGBA(t, pm, 30, 30, 0, 255, 0, 255)
}

func TestLighterAddsChannels(t *testing.T) {
	pm := NewPixmap(10, 10)
	ctx := New(pm, WithGamma(GammaNone))
	ctx.SetFillStyle(SolidRGBA(0.5, 0, 0, 1))
	ctx.FillRect(0, 0, 10, 10)
	ctx.SetGlobalCompositeOperation(Lighter)
	ctx.SetFillStyle(SolidRGBA(0.25, 0.5, 0, 1))
	ctx.FillRect(0, 0, 10, 10)

	r, g, _, a := rgbaAt(pm, 5, 5)
	if d := int(r) - 191; d < -2 || d > 2 {
		t.Errorf("red = %d, want about 191", r)
	}
	if d := int(g) - 128; d < -2 || d > 2 {
		t.Errorf("green = %d, want about 128", g)
	}
	if a != 255 {
		t.Errorf("alpha = %d, want clamped to 255", a)
	}
}
