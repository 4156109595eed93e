package canvas

// Surface is the pixel-buffer collaborator a Canvas draws into.
//
// The core never touches storage pixels directly: it reads and writes
// scanline fragments as unpremultiplied gamma-space float32 RGBA, four
// floats per pixel, and the surface converts to and from its own
// storage format. The surface is owned by the caller and must outlive
// the canvas; the canvas mutates it exclusively for the duration of
// each draw call.
type Surface interface {
	// Width returns the surface width in pixels, in [1, 32768].
	Width() int

	// Height returns the surface height in pixels, in [1, 32768].
	Height() int

	// ReadSpan converts len(dst)/4 pixels starting at (x, y) into dst
	// as unpremultiplied gamma-space RGBA floats.
	ReadSpan(x, y int, dst []float32)

	// WriteSpan converts len(src)/4 float RGBA pixels back into storage
	// format starting at (x, y).
	WriteSpan(x, y int, src []float32)
}
