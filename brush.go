package canvas

// Brush represents what to paint with.
// This is a sealed interface - only types in this package implement it.
//
// Supported brush types:
//   - SolidBrush: a single solid color
//   - LinearGradient: a multi-stop gradient between two points
//   - RadialGradient: a multi-stop gradient between two circles
//   - PatternBrush: a tiled image, created via (*Canvas).CreatePattern
//
// Example usage:
//
//	ctx.SetFillStyle(canvas.Solid(canvas.Red))
//	ctx.SetStrokeStyle(canvas.SolidHex("#FF5733"))
type Brush interface {
	// brushMarker is an unexported method that seals this interface.
	// Only types in this package can implement Brush.
	brushMarker()
}

// SolidBrush is a single-color brush.
type SolidBrush struct {
	// Color is the solid color of this brush.
	Color RGBA
}

func (*SolidBrush) brushMarker() {}

// Solid creates a SolidBrush from an RGBA color.
func Solid(c RGBA) *SolidBrush {
	return &SolidBrush{Color: c}
}

// SolidRGB creates an opaque SolidBrush from RGB components (0-1 range).
func SolidRGB(r, g, b float64) *SolidBrush {
	return &SolidBrush{Color: RGB(r, g, b)}
}

// SolidRGBA creates a SolidBrush from RGBA components (0-1 range).
func SolidRGBA(r, g, b, a float64) *SolidBrush {
	return &SolidBrush{Color: RGBA2(r, g, b, a)}
}

// SolidHex creates a SolidBrush from a hex color string.
//
// Example:
//
//	brush := canvas.SolidHex("#FF5733")
func SolidHex(hex string) *SolidBrush {
	return &SolidBrush{Color: Hex(hex)}
}
