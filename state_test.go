package canvas

import "testing"

func TestSaveRestoreRoundTrip(t *testing.T) {
	ctx := New(NewPixmap(64, 64))
	ctx.SetGlobalAlpha(0.5)
	ctx.SetGlobalCompositeOperation(Xor)
	ctx.SetLineWidth(7)
	ctx.SetLineCap(LineCapCircle)
	ctx.SetLineJoin(LineJoinRound)
	ctx.SetMiterLimit(3)
	ctx.SetLineDash([]float64{4, 2})
	ctx.SetLineDashOffset(1.5)
	ctx.SetShadowColor(RGBA2(0, 0, 0, 0.25))
	ctx.SetShadowOffset(2, 3)
	ctx.SetShadowBlur(4)
	ctx.Translate(10, 20)

	// Capture, mutate through several nested saves, then unwind.
	for n := 1; n <= 3; n++ {
		ctx.Save()
		ctx.SetGlobalAlpha(0.1)
		ctx.SetLineWidth(float64(n))
		ctx.SetLineDash([]float64{1})
		ctx.Rotate(0.3)
		ctx.BeginPath()
		ctx.Rect(0, 0, 10, 10)
		ctx.Clip()
	}
	for n := 1; n <= 3; n++ {
		ctx.Restore()
	}

	if got := ctx.GlobalAlpha(); got != 0.5 {
		t.Errorf("globalAlpha = %v, want 0.5", got)
	}
	if got := ctx.GlobalCompositeOperation(); got != Xor {
		t.Errorf("op = %v, want xor", got)
	}
	if got := ctx.LineWidth(); got != 7 {
		t.Errorf("lineWidth = %v, want 7", got)
	}
	if got := ctx.LineDash(); len(got) != 2 || got[0] != 4 || got[1] != 2 {
		t.Errorf("dash = %v, want [4 2]", got)
	}
	want := Translation(10, 20)
	if got := ctx.GetTransform(); got != want {
		t.Errorf("transform = %+v, want %+v", got, want)
	}
}

func TestSaveOverflowPanics(t *testing.T) {
	ctx := New(NewPixmap(8, 8))
	for i := 0; i < maxSaveDepth; i++ {
		ctx.Save()
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic on save stack overflow")
		}
	}()
	ctx.Save()
}

func TestRestoreUnderflowPanics(t *testing.T) {
	ctx := New(NewPixmap(8, 8))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on restore without save")
		}
	}()
	ctx.Restore()
}

func TestInvalidInputsSilentlyIgnored(t *testing.T) {
	ctx := New(NewPixmap(8, 8))

	ctx.SetGlobalAlpha(1.5)
	if got := ctx.GlobalAlpha(); got != 1 {
		t.Errorf("out-of-range alpha accepted: %v", got)
	}
	ctx.SetGlobalAlpha(-0.1)
	if got := ctx.GlobalAlpha(); got != 1 {
		t.Errorf("negative alpha accepted: %v", got)
	}

	ctx.SetLineWidth(0)
	ctx.SetLineWidth(-3)
	if got := ctx.LineWidth(); got != 1 {
		t.Errorf("non-positive width accepted: %v", got)
	}

	ctx.SetMiterLimit(-1)
	if ctx.state.miterLimit != 10 {
		t.Errorf("negative miter limit accepted: %v", ctx.state.miterLimit)
	}

	ctx.SetLineDash([]float64{5, -1})
	if len(ctx.state.dash) != 0 {
		t.Errorf("negative dash entry accepted: %v", ctx.state.dash)
	}

	ctx.SetGlobalCompositeOperation(CompositeOp(99))
	if got := ctx.GlobalCompositeOperation(); got != SourceOver {
		t.Errorf("invalid op accepted: %v", got)
	}
}

func TestOddDashPatternDuplicated(t *testing.T) {
	ctx := New(NewPixmap(8, 8))
	ctx.SetLineDash([]float64{5, 3, 2})
	got := ctx.LineDash()
	want := []float64{5, 3, 2, 5, 3, 2}
	if len(got) != len(want) {
		t.Fatalf("dash = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dash = %v, want %v", got, want)
		}
	}
}

func TestNewRejectsBadSurfaces(t *testing.T) {
	if New(nil) != nil {
		t.Error("New(nil) should return nil")
	}
}
