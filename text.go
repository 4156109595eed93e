package canvas

import "github.com/gogpu/canvas/text"

// SetFont sets the face used by FillText, StrokeText and MeasureText.
// A nil face restores the built-in default.
func (c *Canvas) SetFont(face *text.Face) {
	c.state.font = face
}

// SetTextAlign sets the horizontal anchoring of drawn text.
func (c *Canvas) SetTextAlign(align TextAlign) {
	switch align {
	case AlignStart, AlignEnd, AlignLeft, AlignRight, AlignCenter:
		c.state.textAlign = align
	}
}

// SetTextBaseline sets the vertical anchoring of drawn text.
func (c *Canvas) SetTextBaseline(baseline TextBaseline) {
	switch baseline {
	case BaselineAlphabetic, BaselineTop, BaselineMiddle, BaselineBottom,
		BaselineHanging:
		c.state.textBaseline = baseline
	}
}

// TextMetrics is the result of measuring a string.
type TextMetrics struct {
	// Width is the total advance width in user-space pixels.
	Width float64
}

// MeasureText measures a string with the current font.
func (c *Canvas) MeasureText(s string) TextMetrics {
	face := c.font()
	if face == nil {
		return TextMetrics{}
	}
	return TextMetrics{Width: face.Advance(s)}
}

// FillText fills a string at the user-space anchor (x, y), honoring the
// current text alignment and baseline. The glyph outlines run through
// the same pipeline as any filled path.
func (c *Canvas) FillText(s string, x, y float64) {
	c.drawText(s, x, y, (*Canvas).Fill)
}

// StrokeText strokes a string's glyph outlines at the user-space anchor
// (x, y).
func (c *Canvas) StrokeText(s string, x, y float64) {
	c.drawText(s, x, y, (*Canvas).Stroke)
}

// font returns the active face, falling back to the built-in default at
// the HTML canvas default size of 10 pixels.
func (c *Canvas) font() *text.Face {
	if c.state.font != nil {
		return c.state.font
	}
	return text.DefaultSource().Face(10)
}

func (c *Canvas) drawText(s string, x, y float64, draw func(*Canvas)) {
	if s == "" {
		return
	}
	face := c.font()
	if face == nil {
		return
	}
	glyphs, advance := face.Shape(s)
	if len(glyphs) == 0 {
		return
	}

	x += alignShift(c.state.textAlign, text.DetectDirection(s), advance)
	y += baselineShift(c.state.textBaseline, face.Metrics())

	c.withTempPath(func() {
		for _, g := range glyphs {
			c.emitGlyph(face, g, x, y)
		}
		draw(c)
	})
}

// emitGlyph replays one glyph outline into the current path at the
// given baseline origin.
func (c *Canvas) emitGlyph(face *text.Face, g text.Glyph, x, y float64) {
	segs := face.Outline(g.GID)
	if len(segs) == 0 {
		return
	}
	gx := x + g.X
	gy := y + g.Y
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case text.SegmentOpMoveTo:
			if open {
				c.ClosePath()
			}
			c.MoveTo(gx+seg.Args[0].X, gy+seg.Args[0].Y)
			open = true
		case text.SegmentOpLineTo:
			c.LineTo(gx+seg.Args[0].X, gy+seg.Args[0].Y)
		case text.SegmentOpQuadTo:
			c.QuadraticCurveTo(
				gx+seg.Args[0].X, gy+seg.Args[0].Y,
				gx+seg.Args[1].X, gy+seg.Args[1].Y)
		case text.SegmentOpCubeTo:
			c.BezierCurveTo(
				gx+seg.Args[0].X, gy+seg.Args[0].Y,
				gx+seg.Args[1].X, gy+seg.Args[1].Y,
				gx+seg.Args[2].X, gy+seg.Args[2].Y)
		}
	}
	if open {
		c.ClosePath()
	}
}

func alignShift(align TextAlign, dir text.Direction, advance float64) float64 {
	rtl := dir == text.RightToLeft
	switch align {
	case AlignCenter:
		return -advance / 2
	case AlignRight:
		return -advance
	case AlignLeft:
		return 0
	case AlignEnd:
		if !rtl {
			return -advance
		}
		return 0
	default: // AlignStart
		if rtl {
			return -advance
		}
		return 0
	}
}

func baselineShift(baseline TextBaseline, m text.Metrics) float64 {
	switch baseline {
	case BaselineTop:
		return m.Ascent
	case BaselineHanging:
		return 0.8 * m.Ascent
	case BaselineMiddle:
		return (m.Ascent - m.Descent) / 2
	case BaselineBottom:
		return -m.Descent
	default: // BaselineAlphabetic
		return 0
	}
}
