package canvas

import (
	"math"

	"github.com/gogpu/canvas/internal/blend"
	"github.com/gogpu/canvas/internal/clipmask"
	"github.com/gogpu/canvas/internal/colorspace"
	"github.com/gogpu/canvas/internal/curve"
	"github.com/gogpu/canvas/internal/dash"
	"github.com/gogpu/canvas/internal/filter"
	"github.com/gogpu/canvas/internal/raster"
	"github.com/gogpu/canvas/internal/stroke"
)

// linePath stores tessellated polyline subpaths in canvas coordinates.
type linePath struct {
	pts  []raster.Point
	subs []subpath
}

func (l *linePath) reset() {
	l.pts = l.pts[:0]
	l.subs = l.subs[:0]
}

// Canvas is an immediate-mode 2D drawing context over a Surface,
// modeled on the HTML5 canvas element.
//
// A Canvas is single-threaded: every call completes synchronously
// before returning, and a single instance must not be used from
// multiple goroutines. Distinct instances are fully independent.
//
//	pm := canvas.NewPixmap(512, 512)
//	ctx := canvas.New(pm)
//	ctx.SetFillStyle(canvas.Solid(canvas.Red))
//	ctx.FillRect(64, 64, 384, 384)
type Canvas struct {
	surface Surface
	width   int
	height  int
	gamma   colorspace.Curve

	state drawState
	stack [maxSaveDepth]drawState
	depth int

	path  bezierPath
	lines linePath

	// Scratch buffers reused across draw calls; they never shrink.
	polys       [][]raster.Point
	curveBuf    []curve.Point
	offsetPts   []raster.Point
	userPts     []stroke.Point
	dashSubs    []dash.Subpath
	conv        raster.Converter
	comp        blend.Compositor
	grid        filter.Grid
	shadowRuns  []raster.Run
	clipScratch []raster.Run
}

// New creates a canvas drawing into the given surface. Returns nil if
// surface is nil or its dimensions fall outside [1, 32768].
func New(surface Surface, opts ...Option) *Canvas {
	if surface == nil {
		return nil
	}
	w, h := surface.Width(), surface.Height()
	if w < 1 || h < 1 || w > 32768 || h > 32768 {
		return nil
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Canvas{
		surface: surface,
		width:   w,
		height:  h,
		gamma:   colorspace.Curve(o.gamma),
		state:   defaultState(w, h),
	}
}

// Width returns the surface width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the surface height in pixels.
func (c *Canvas) Height() int { return c.height }

// ---------------------------------------------------------------
// Transform
// ---------------------------------------------------------------

// SetTransform replaces the current transformation matrix. A
// non-invertible matrix is silently ignored.
func (c *Canvas) SetTransform(a, b, cc, d, e, f float64) {
	m := Matrix{A: a, B: b, C: cc, D: d, E: e, F: f}
	inv, ok := m.Invert()
	if !ok {
		return
	}
	c.state.fwd = m
	c.state.inv = inv
}

// Transform multiplies the current matrix by the given one. A
// non-invertible product is silently ignored.
func (c *Canvas) Transform(a, b, cc, d, e, f float64) {
	m := c.state.fwd.Multiply(Matrix{A: a, B: b, C: cc, D: d, E: e, F: f})
	inv, ok := m.Invert()
	if !ok {
		return
	}
	c.state.fwd = m
	c.state.inv = inv
}

// Translate moves the origin of user space.
func (c *Canvas) Translate(x, y float64) {
	c.Transform(1, 0, 0, 1, x, y)
}

// Scale scales user space.
func (c *Canvas) Scale(x, y float64) {
	c.Transform(x, 0, 0, y, 0, 0)
}

// Rotate rotates user space by an angle in radians.
func (c *Canvas) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	c.Transform(cos, sin, -sin, cos, 0, 0)
}

// GetTransform returns the current transformation matrix.
func (c *Canvas) GetTransform() Matrix {
	return c.state.fwd
}

// ---------------------------------------------------------------
// Style
// ---------------------------------------------------------------

// SetGlobalAlpha sets the global alpha multiplier. Values outside
// [0, 1] are silently ignored.
func (c *Canvas) SetGlobalAlpha(a float64) {
	if a >= 0 && a <= 1 {
		c.state.globalAlpha = a
	}
}

// GlobalAlpha returns the global alpha multiplier.
func (c *Canvas) GlobalAlpha() float64 { return c.state.globalAlpha }

// SetGlobalCompositeOperation sets the composite operation for
// subsequent drawing. Unknown values are silently ignored.
func (c *Canvas) SetGlobalCompositeOperation(op CompositeOp) {
	if op.valid() {
		c.state.op = op
	}
}

// GlobalCompositeOperation returns the current composite operation.
func (c *Canvas) GlobalCompositeOperation() CompositeOp { return c.state.op }

// SetShadowColor sets the shadow color. Shadows draw when the color has
// positive alpha and the blur or either offset is nonzero.
func (c *Canvas) SetShadowColor(col RGBA) { c.state.shadowColor = col }

// SetShadowOffset sets the shadow offset in canvas-space pixels.
func (c *Canvas) SetShadowOffset(x, y float64) {
	c.state.shadowOffsetX = x
	c.state.shadowOffsetY = y
}

// SetShadowBlur sets the shadow blur amount. Negative values are
// silently ignored.
func (c *Canvas) SetShadowBlur(blur float64) {
	if blur >= 0 {
		c.state.shadowBlur = blur
	}
}

// SetLineWidth sets the stroke width in user-space units. Zero and
// negative widths are silently ignored.
func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 {
		c.state.lineWidth = w
	}
}

// LineWidth returns the stroke width.
func (c *Canvas) LineWidth() float64 { return c.state.lineWidth }

// SetLineCap sets the open stroke endpoint shape.
func (c *Canvas) SetLineCap(cap LineCap) { c.state.lineCap = cap }

// SetLineJoin sets the stroke join shape.
func (c *Canvas) SetLineJoin(join LineJoin) { c.state.lineJoin = join }

// SetMiterLimit sets the miter-to-bevel threshold. Zero and negative
// values are silently ignored.
func (c *Canvas) SetMiterLimit(limit float64) {
	if limit > 0 {
		c.state.miterLimit = limit
	}
}

// SetLineDash sets the dash pattern in user-space units. A pattern
// with an odd number of entries is duplicated; any negative entry
// discards the call. An empty pattern disables dashing.
func (c *Canvas) SetLineDash(pattern []float64) {
	for _, d := range pattern {
		if d < 0 {
			return
		}
	}
	c.state.dash = append(c.state.dash[:0], pattern...)
	if len(pattern)%2 != 0 {
		c.state.dash = append(c.state.dash, pattern...)
	}
}

// LineDash returns a copy of the dash pattern.
func (c *Canvas) LineDash() []float64 {
	return append([]float64(nil), c.state.dash...)
}

// SetLineDashOffset sets the starting offset into the dash pattern.
func (c *Canvas) SetLineDashOffset(offset float64) {
	c.state.dashOffset = offset
}

// SetFillStyle sets the brush used by Fill and FillRect.
func (c *Canvas) SetFillStyle(b Brush) {
	if b != nil {
		c.state.fillStyle = b
	}
}

// SetStrokeStyle sets the brush used by Stroke and StrokeRect.
func (c *Canvas) SetStrokeStyle(b Brush) {
	if b != nil {
		c.state.strokeStyle = b
	}
}

// ---------------------------------------------------------------
// Tessellation
// ---------------------------------------------------------------

// tessellateFill flattens the current path into polylines with the
// fill tolerance (no angular limit).
func (c *Canvas) tessellateFill() {
	c.tessellate(curve.FillAngular)
}

func (c *Canvas) tessellate(angular float64) {
	c.lines.reset()
	for _, s := range c.path.subs {
		if s.count < 4 {
			continue // pending MoveTo
		}
		start := len(c.lines.pts)
		pts := c.path.pts[s.start : s.start+s.count]
		c.lines.pts = append(c.lines.pts, raster.Point{X: pts[0].X, Y: pts[0].Y})
		for i := 1; i+2 < len(pts); i += 3 {
			prev := c.lines.pts[len(c.lines.pts)-1]
			buf := curve.AddBezier(c.curveBuf[:0],
				curve.Point{X: prev.X, Y: prev.Y},
				curve.Point{X: pts[i].X, Y: pts[i].Y},
				curve.Point{X: pts[i+1].X, Y: pts[i+1].Y},
				curve.Point{X: pts[i+2].X, Y: pts[i+2].Y},
				angular)
			for _, p := range buf {
				c.lines.pts = append(c.lines.pts, raster.Point{X: p.X, Y: p.Y})
			}
			c.curveBuf = buf[:0]
		}
		c.lines.subs = append(c.lines.subs, subpath{
			start:  start,
			count:  len(c.lines.pts) - start,
			closed: s.closed,
		})
	}
}

// ---------------------------------------------------------------
// Drawing
// ---------------------------------------------------------------

// Fill fills the current path with the fill style under the nonzero
// winding rule.
func (c *Canvas) Fill() {
	c.tessellateFill()
	if len(c.lines.subs) == 0 {
		return
	}
	c.paint(c.state.fillStyle, c.addFillSubpaths)
}

// Stroke strokes the current path with the stroke style, applying the
// dash pattern, joins and caps.
func (c *Canvas) Stroke() {
	if c.state.lineWidth <= 0 {
		return
	}
	c.buildStrokePolys()
	if len(c.polys) == 0 {
		return
	}
	c.paint(c.state.strokeStyle, c.addStrokePolys)
}

// Clip intersects the clip mask with the filled region of the current
// path. The only way to enlarge the mask again is Restore.
func (c *Canvas) Clip() {
	c.tessellateFill()
	c.conv.Reset(c.width, c.height)
	c.addFillSubpaths(&c.conv, 0, 0)
	runs := c.conv.Finish()

	res := clipmask.Intersect(c.clipScratch, c.state.clip, runs)
	c.clipScratch = c.state.clip[:0]
	c.state.clip = res
}

// FillRect fills a rectangle without disturbing the current path.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.withTempPath(func() {
		c.Rect(x, y, w, h)
		c.Fill()
	})
}

// StrokeRect strokes a rectangle outline without disturbing the current
// path.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.withTempPath(func() {
		c.Rect(x, y, w, h)
		c.Stroke()
	})
}

// ClearRect resets a rectangle to transparent black, ignoring the
// composite operation, alpha and shadows, but respecting the clip and
// transform.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	c.withTempPath(func() {
		saved := c.state.op
		savedAlpha := c.state.globalAlpha
		savedShadow := c.state.shadowColor
		savedFill := c.state.fillStyle
		c.state.op = DestinationOut
		c.state.globalAlpha = 1
		c.state.shadowColor = Transparent
		c.state.fillStyle = Solid(White)
		c.Rect(x, y, w, h)
		c.Fill()
		c.state.op = saved
		c.state.globalAlpha = savedAlpha
		c.state.shadowColor = savedShadow
		c.state.fillStyle = savedFill
	})
}

// withTempPath runs fn with a scratch path, then restores the caller's
// path untouched.
func (c *Canvas) withTempPath(fn func()) {
	savedPts := c.path.pts
	savedSubs := c.path.subs
	c.path.pts = nil
	c.path.subs = nil
	fn()
	c.path.pts = savedPts
	c.path.subs = savedSubs
}

// addFillSubpaths feeds the tessellated fill polylines, offset by
// (dx, dy), into the scan converter.
func (c *Canvas) addFillSubpaths(conv *raster.Converter, dx, dy float64) {
	for _, s := range c.lines.subs {
		pts := c.lines.pts[s.start : s.start+s.count]
		c.offsetPts = c.offsetPts[:0]
		for _, p := range pts {
			c.offsetPts = append(c.offsetPts, raster.Point{X: p.X + dx, Y: p.Y + dy})
		}
		conv.AddSubpath(c.offsetPts)
	}
}

// addStrokePolys feeds the expanded stroke outlines, offset by
// (dx, dy), into the scan converter.
func (c *Canvas) addStrokePolys(conv *raster.Converter, dx, dy float64) {
	for _, poly := range c.polys {
		c.offsetPts = c.offsetPts[:0]
		for _, p := range poly {
			c.offsetPts = append(c.offsetPts, raster.Point{X: p.X + dx, Y: p.Y + dy})
		}
		conv.AddSubpath(c.offsetPts)
	}
}

// buildStrokePolys runs the stroke half of the pipeline: tessellate
// with the stroke's angular limit, dash, then expand every subpath into
// closed outline polygons in canvas space.
func (c *Canvas) buildStrokePolys() {
	scale := math.Sqrt(math.Abs(c.state.fwd.Determinant()))
	c.tessellate(curve.StrokeAngular(c.state.lineWidth * scale))
	c.polys = c.polys[:0]

	// Gather subpaths, dropping consecutive duplicate points.
	c.dashSubs = c.dashSubs[:0]
	for _, s := range c.lines.subs {
		pts := c.lines.pts[s.start : s.start+s.count]
		var sub []dash.Point
		for _, p := range pts {
			q := dash.Point{X: p.X, Y: p.Y}
			if n := len(sub); n > 0 && sub[n-1] == q {
				continue
			}
			sub = append(sub, q)
		}
		if len(sub) < 2 {
			continue
		}
		c.dashSubs = append(c.dashSubs, dash.Subpath{Pts: sub, Closed: s.closed})
	}

	subs := c.dashSubs
	if len(c.state.dash) > 0 {
		inv := c.state.inv
		measure := func(a, b dash.Point) float64 {
			v := inv.TransformVector(Point{X: b.X - a.X, Y: b.Y - a.Y})
			return v.Length()
		}
		subs = dash.Split(subs, c.state.dash, c.state.dashOffset, measure)
	}

	style := stroke.Style{
		Width:      c.state.lineWidth,
		Cap:        stroke.Cap(c.state.lineCap),
		Join:       joinFor(c.state.lineJoin),
		MiterLimit: c.state.miterLimit,
	}
	fwd := c.state.fwd
	exp := stroke.NewExpander(style, func(poly []stroke.Point) {
		out := make([]raster.Point, len(poly))
		for i, p := range poly {
			q := fwd.TransformPoint(Point{X: p.X, Y: p.Y})
			out[i] = raster.Point{X: q.X, Y: q.Y}
		}
		c.polys = append(c.polys, out)
	})

	inv := c.state.inv
	for _, sub := range subs {
		c.userPts = c.userPts[:0]
		for _, p := range sub.Pts {
			q := inv.TransformPoint(Point{X: p.X, Y: p.Y})
			u := stroke.Point{X: q.X, Y: q.Y}
			if n := len(c.userPts); n > 0 && c.userPts[n-1] == u {
				continue
			}
			c.userPts = append(c.userPts, u)
		}
		exp.Subpath(c.userPts, sub.Closed)
	}
}

// joinFor maps the public join enum onto the expander's; unknown values
// map to a miter join.
func joinFor(j LineJoin) stroke.Join {
	switch j {
	case LineJoinBevel:
		return stroke.JoinBevel
	case LineJoinRound:
		return stroke.JoinRound
	default:
		return stroke.JoinMiter
	}
}

// shadowEnabled reports whether the current state casts shadows.
func (c *Canvas) shadowEnabled() bool {
	return c.state.shadowColor.A > 0 &&
		(c.state.shadowBlur > 0 ||
			c.state.shadowOffsetX != 0 || c.state.shadowOffsetY != 0)
}

// paint runs the shadow pass (if enabled) and then the main pass for
// one draw call. addTo replays the call's geometry into a scan
// converter at a given offset.
func (c *Canvas) paint(brush Brush, addTo func(*raster.Converter, float64, float64)) {
	alpha := float32(c.state.globalAlpha)
	op := blend.Op(c.state.op)

	if c.shadowEnabled() {
		radius := filter.Radius(c.state.shadowBlur)
		border := filter.Border(radius)
		gw := c.width + 2*border
		gh := c.height + 2*border

		c.conv.Reset(gw, gh)
		addTo(&c.conv,
			float64(border)+c.state.shadowOffsetX,
			float64(border)+c.state.shadowOffsetY)
		runs := c.conv.Finish()

		c.grid.Reset(gw, gh)
		c.grid.Splat(runs)
		c.grid.Blur(c.state.shadowBlur, radius)
		c.shadowRuns = c.grid.Runs(c.shadowRuns, border, c.width, c.height)

		logger().Debug("canvas: shadow pass",
			"radius", radius, "border", border, "runs", len(c.shadowRuns))

		c.comp.Composite(c.surface, c.width, c.shadowRuns, c.state.clip,
			c.solidPainter(c.state.shadowColor), alpha, op, c.gamma)
	}

	c.conv.Reset(c.width, c.height)
	addTo(&c.conv, 0, 0)
	runs := c.conv.Finish()

	c.comp.Composite(c.surface, c.width, runs, c.state.clip,
		c.painterFor(brush), alpha, op, c.gamma)
}
