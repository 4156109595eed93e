package canvas

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// gradientStops holds the shared stop list of both gradient kinds.
// Offsets stay strictly sorted; duplicates and out-of-range offsets are
// silently dropped.
type gradientStops struct {
	stops []ColorStop
}

// AddColorStop inserts a stop keeping offsets strictly sorted.
// Offsets outside [0, 1] and offsets already present are ignored.
func (g *gradientStops) AddColorStop(offset float64, c RGBA) {
	if !(offset >= 0 && offset <= 1) {
		return
	}
	i := 0
	for i < len(g.stops) && g.stops[i].Offset < offset {
		i++
	}
	if i < len(g.stops) && g.stops[i].Offset == offset {
		return
	}
	g.stops = append(g.stops, ColorStop{})
	copy(g.stops[i+1:], g.stops[i:])
	g.stops[i] = ColorStop{Offset: offset, Color: c}
}

// Stops returns the sorted stop list.
func (g *gradientStops) Stops() []ColorStop {
	return g.stops
}

// LinearGradient interpolates colors along the line between two points.
// Points are in user-space coordinates; samples beyond the endpoints
// clamp to the nearest stop.
type LinearGradient struct {
	gradientStops
	Start, End Point
}

func (*LinearGradient) brushMarker() {}

// NewLinearGradient creates a linear gradient brush between two points.
//
// Example:
//
//	g := canvas.NewLinearGradient(0, 0, 0, 100)
//	g.AddColorStop(0, canvas.White)
//	g.AddColorStop(1, canvas.Black)
//	ctx.SetFillStyle(g)
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{
		Start: Point{X: x0, Y: y0},
		End:   Point{X: x1, Y: y1},
	}
}

// RadialGradient interpolates colors between two circles, as specified
// for HTML canvas createRadialGradient.
type RadialGradient struct {
	gradientStops
	Start, End             Point
	StartRadius, EndRadius float64
}

func (*RadialGradient) brushMarker() {}

// NewRadialGradient creates a radial gradient brush between two circles.
// Negative radii yield a brush that paints nothing.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *RadialGradient {
	return &RadialGradient{
		Start:       Point{X: x0, Y: y0},
		End:         Point{X: x1, Y: y1},
		StartRadius: r0,
		EndRadius:   r1,
	}
}
