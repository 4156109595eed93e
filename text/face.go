// Package text provides font faces and glyph outlines for canvas text
// drawing.
//
// Fonts are parsed and shaped with go-text/typesetting; the canvas
// feeds the resulting outlines through its ordinary Bezier fill
// pipeline, so text obeys transforms, gradients, shadows and clipping
// like any other path.
package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// Source is a parsed font. It is immutable and may be shared; create a
// Face per size to draw with it.
type Source struct {
	fnt  *font.Font
	upem float64
}

// NewSource parses a TTF or OTF font from raw bytes.
func NewSource(data []byte) (*Source, error) {
	// ParseTTF returns a *Face embedding the thread-safe *Font.
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Source{fnt: face.Font, upem: float64(face.Upem())}, nil
}

var (
	defaultOnce   sync.Once
	defaultSource *Source
)

// DefaultSource returns a built-in fallback face (Go Regular). The font
// is parsed on first use.
func DefaultSource() *Source {
	defaultOnce.Do(func() {
		defaultSource, _ = NewSource(goregular.TTF)
	})
	return defaultSource
}

// Face is a Source at a specific pixel size. A Face is not safe for
// concurrent use; it belongs to the single-threaded canvas that draws
// with it.
type Face struct {
	src    *Source
	size   float64
	face   *font.Face
	shaper shaping.HarfbuzzShaper
}

// Face creates a face of the given pixel size.
func (s *Source) Face(size float64) *Face {
	if s == nil || size <= 0 {
		return nil
	}
	return &Face{
		src:  s,
		size: size,
		face: font.NewFace(s.fnt),
	}
}

// Size returns the face's pixel size.
func (f *Face) Size() float64 { return f.size }

// Metrics carries the face's vertical metrics in pixels. Ascent is the
// distance from the baseline up to the em top, Descent the (positive)
// distance down to the em bottom.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Metrics returns the face's scaled font metrics.
func (f *Face) Metrics() Metrics {
	ext, ok := f.face.FontHExtents()
	scale := f.size / f.src.upem
	if !ok {
		return Metrics{Ascent: f.size * 0.8, Descent: f.size * 0.2}
	}
	descent := float64(ext.Descender) * scale
	if descent < 0 {
		descent = -descent
	}
	return Metrics{
		Ascent:  float64(ext.Ascender) * scale,
		Descent: descent,
		LineGap: float64(ext.LineGap) * scale,
	}
}

// Glyph is one positioned glyph of a shaped string: the glyph ID plus
// the offset of its origin from the text origin, in pixels, y down.
type Glyph struct {
	GID  font.GID
	X, Y float64
}

// Shape lays out a string with HarfBuzz shaping (ligatures, kerning,
// complex scripts) and returns the positioned glyphs and the total
// advance width in pixels.
func (f *Face) Shape(s string) ([]Glyph, float64) {
	if f == nil || s == "" {
		return nil, 0
	}
	runes := []rune(s)
	dir := di.DirectionLTR
	if DetectDirection(s) == RightToLeft {
		dir = di.DirectionRTL
	}
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      f.face,
		Size:      fixedFromFloat(f.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})

	glyphs := make([]Glyph, 0, len(out.Glyphs))
	pen := 0.0
	for _, g := range out.Glyphs {
		glyphs = append(glyphs, Glyph{
			GID: g.GlyphID,
			X:   pen + floatFromFixed(g.XOffset),
			Y:   -floatFromFixed(g.YOffset),
		})
		pen += floatFromFixed(g.XAdvance)
	}
	return glyphs, pen
}

// Advance returns the total advance width of the string in pixels.
func (f *Face) Advance(s string) float64 {
	_, adv := f.Shape(s)
	return adv
}

// SegmentOp is a glyph outline path operation.
type SegmentOp uint8

// Outline path operations.
const (
	SegmentOpMoveTo SegmentOp = iota
	SegmentOpLineTo
	SegmentOpQuadTo
	SegmentOpCubeTo
)

// SegmentPoint is an outline coordinate in pixels, y down, relative to
// the glyph origin on the baseline.
type SegmentPoint struct {
	X, Y float64
}

// Segment is one outline operation with its control and target points:
// MoveTo/LineTo use Args[0], QuadTo uses Args[0] (control) and Args[1],
// CubeTo uses Args[0], Args[1] (controls) and Args[2].
type Segment struct {
	Op   SegmentOp
	Args [3]SegmentPoint
}

// Outline returns the glyph's outline scaled to the face size, with
// the font's y-up coordinates flipped to the canvas's y-down. Glyphs
// without outline data return nil.
func (f *Face) Outline(gid font.GID) []Segment {
	data := f.face.GlyphData(gid)
	outline, ok := data.(font.GlyphOutline)
	if !ok {
		return nil
	}
	scale := f.size / f.src.upem
	segs := make([]Segment, len(outline.Segments))
	for i, s := range outline.Segments {
		seg := Segment{Op: SegmentOp(s.Op)}
		for k, p := range s.Args {
			seg.Args[k] = SegmentPoint{
				X: float64(p.X) * scale,
				Y: -float64(p.Y) * scale,
			}
		}
		segs[i] = seg
	}
	return segs
}

// Direction is the resolved base direction of a string.
type Direction int

// Base directions.
const (
	LeftToRight Direction = iota
	RightToLeft
)

// DetectDirection returns the base direction of a string from its
// first strong bidirectional character.
func DetectDirection(s string) Direction {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return LeftToRight
		case bidi.R, bidi.AL:
			return RightToLeft
		}
	}
	return LeftToRight
}

// detectScript returns the script of the first non-space rune. Mixed
// script text should be split into runs before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedFromFloat(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v*64 + 0.5)
}

func floatFromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
