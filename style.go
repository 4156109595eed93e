package canvas

import "github.com/gogpu/canvas/internal/blend"

// LineCap specifies the shape of open stroke endpoints.
type LineCap int

const (
	// LineCapButt ends the stroke flat at the endpoint.
	LineCapButt LineCap = iota
	// LineCapSquare extends the stroke half a line width past the
	// endpoint.
	LineCapSquare
	// LineCapCircle rounds the endpoint with a semicircle.
	LineCapCircle
)

// LineJoin specifies the shape where two stroke segments meet.
type LineJoin int

const (
	// LineJoinMiter extends the outer edges to a point, limited by the
	// miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinBevel connects the outer edges with a straight edge.
	LineJoinBevel
	// LineJoinRound connects the outer edges with a circular arc.
	LineJoinRound
)

// Repetition controls how a pattern tiles outside its source image.
type Repetition int

const (
	// Repeat tiles the pattern in both directions.
	Repeat Repetition = iota
	// RepeatX tiles horizontally only.
	RepeatX
	// RepeatY tiles vertically only.
	RepeatY
	// NoRepeat samples transparent black outside the image.
	NoRepeat
)

// TextAlign positions text horizontally relative to the anchor point.
type TextAlign int

const (
	// AlignStart aligns to the leading edge of the text direction.
	AlignStart TextAlign = iota
	// AlignEnd aligns to the trailing edge of the text direction.
	AlignEnd
	// AlignLeft draws the text to the right of the anchor.
	AlignLeft
	// AlignRight draws the text to the left of the anchor.
	AlignRight
	// AlignCenter centers the text on the anchor.
	AlignCenter
)

// TextBaseline positions text vertically relative to the anchor point.
type TextBaseline int

const (
	// BaselineAlphabetic anchors at the alphabetic baseline.
	BaselineAlphabetic TextBaseline = iota
	// BaselineTop anchors at the top of the em box.
	BaselineTop
	// BaselineMiddle anchors midway between top and bottom.
	BaselineMiddle
	// BaselineBottom anchors at the bottom of the em box.
	BaselineBottom
	// BaselineHanging anchors at the hanging baseline.
	BaselineHanging
	// BaselineIdeographic anchors at the ideographic baseline, treated
	// as bottom.
	BaselineIdeographic = BaselineBottom
)

// Gamma selects the transfer curve applied between storage pixel values
// and the linear blending space. It is fixed at canvas creation.
type Gamma uint8

const (
	// GammaNone blends directly on storage values.
	GammaNone Gamma = iota
	// GammaPow2 approximates gamma 2.0 by squaring.
	GammaPow2
	// GammaSRGB applies the standard sRGB transfer function.
	GammaSRGB
)

// CompositeOp is an HTML global composite operation.
type CompositeOp uint8

// Composite operations. The numeric values pack the blend factor
// selectors of each operation into four bits (see internal/blend).
const (
	SourceCopy      = CompositeOp(blend.SourceCopy)
	SourceIn        = CompositeOp(blend.SourceIn)
	SourceOut       = CompositeOp(blend.SourceOut)
	Lighter         = CompositeOp(blend.Lighter)
	DestinationOver = CompositeOp(blend.DestinationOver)
	DestinationIn   = CompositeOp(blend.DestinationIn)
	DestinationAtop = CompositeOp(blend.DestinationAtop)
	DestinationOut  = CompositeOp(blend.DestinationOut)
	SourceOver      = CompositeOp(blend.SourceOver)
	SourceAtop      = CompositeOp(blend.SourceAtop)
	Xor             = CompositeOp(blend.Xor)
)

func (op CompositeOp) valid() bool {
	switch blend.Op(op) {
	case blend.SourceCopy, blend.SourceIn, blend.SourceOut, blend.Lighter,
		blend.DestinationOver, blend.DestinationIn, blend.DestinationAtop,
		blend.DestinationOut, blend.SourceOver, blend.SourceAtop, blend.Xor:
		return true
	}
	return false
}
