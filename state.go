package canvas

import (
	"github.com/gogpu/canvas/internal/raster"
	"github.com/gogpu/canvas/text"
)

// maxSaveDepth is the capacity of the save/restore stack.
const maxSaveDepth = 16

// drawState is the full set of reversible drawing state captured by
// Save and restored by Restore.
type drawState struct {
	fwd Matrix
	inv Matrix

	globalAlpha float64
	op          CompositeOp

	shadowColor   RGBA
	shadowOffsetX float64
	shadowOffsetY float64
	shadowBlur    float64

	lineWidth  float64
	lineCap    LineCap
	lineJoin   LineJoin
	miterLimit float64
	dash       []float64
	dashOffset float64

	textAlign    TextAlign
	textBaseline TextBaseline
	font         *text.Face

	fillStyle   Brush
	strokeStyle Brush

	clip []raster.Run
}

// defaultState initializes the HTML canvas defaults and a clip mask
// covering the whole surface.
func defaultState(width, height int) drawState {
	return drawState{
		fwd:         Identity(),
		inv:         Identity(),
		globalAlpha: 1,
		op:          SourceOver,
		lineWidth:   1,
		lineCap:     LineCapButt,
		lineJoin:    LineJoinMiter,
		miterLimit:  10,
		fillStyle:   Solid(Black),
		strokeStyle: Solid(Black),
		clip:        raster.FullMask(nil, width, height),
	}
}

// copyFrom deep-copies src into s, reusing s's slice storage so that
// repeated save/restore cycles do not reallocate.
func (s *drawState) copyFrom(src *drawState) {
	dashBuf := s.dash[:0]
	clipBuf := s.clip[:0]
	*s = *src
	s.dash = append(dashBuf, src.dash...)
	s.clip = append(clipBuf, src.clip...)
}

// Save pushes a copy of the current drawing state.
// Exceeding the stack depth of 16 is a programming error and panics.
func (c *Canvas) Save() {
	if c.depth >= maxSaveDepth {
		panic("canvas: save stack overflow")
	}
	c.stack[c.depth].copyFrom(&c.state)
	c.depth++
}

// Restore pops the most recently saved drawing state.
// Restoring with no saved state is a programming error and panics.
func (c *Canvas) Restore() {
	if c.depth == 0 {
		panic("canvas: restore without save")
	}
	c.depth--
	c.state.copyFrom(&c.stack[c.depth])
}
