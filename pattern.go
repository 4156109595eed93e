package canvas

import (
	"image"
	"math"
)

// PatternBrush paints with a tiled image.
//
// The brush owns a premultiplied linear copy of the source pixels,
// sampled at creation time with the creating canvas's gamma curve; the
// source image may be freed or mutated afterwards without affecting the
// brush.
type PatternBrush struct {
	pixels     []float32 // premultiplied linear RGBA, 4 per pixel
	width      int
	height     int
	repetition Repetition
}

func (*PatternBrush) brushMarker() {}

// Width returns the pattern width in pixels.
func (p *PatternBrush) Width() int { return p.width }

// Height returns the pattern height in pixels.
func (p *PatternBrush) Height() int { return p.height }

// Repetition returns the pattern's repeat mode.
func (p *PatternBrush) Repetition() Repetition { return p.repetition }

// CreatePattern creates a pattern brush from an image. The image pixels
// are copied and converted through the canvas's gamma curve.
// A nil or empty image returns nil.
func (c *Canvas) CreatePattern(img image.Image, rep Repetition) *PatternBrush {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	p := &PatternBrush{
		pixels:     make([]float32, w*h*4),
		width:      w,
		height:     h,
		repetition: rep,
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			col := FromColor(img.At(x, y))
			pr, pg, pb, pa := c.gamma.Premultiply(
				float32(col.R), float32(col.G), float32(col.B), float32(col.A))
			p.pixels[i], p.pixels[i+1], p.pixels[i+2], p.pixels[i+3] = pr, pg, pb, pa
			i += 4
		}
	}
	return p
}

// at returns the premultiplied linear pixel at integer coordinates,
// applying the repeat mode. Outside the image in a non-repeating
// direction it returns transparent black.
func (p *PatternBrush) at(x, y int) (r, g, b, a float32) {
	switch p.repetition {
	case Repeat:
		x, y = wrap(x, p.width), wrap(y, p.height)
	case RepeatX:
		x = wrap(x, p.width)
	case RepeatY:
		y = wrap(y, p.height)
	}
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, 0, 0, 0
	}
	i := (y*p.width + x) * 4
	return p.pixels[i], p.pixels[i+1], p.pixels[i+2], p.pixels[i+3]
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// keys evaluates the Keys bicubic convolution kernel (the C1 cubic with
// a = -1/2, as used for Catmull-Rom resampling) at distance t.
func keys(t float32) float32 {
	if t < 0 {
		t = -t
	}
	switch {
	case t < 1:
		return (1.5*t-2.5)*t*t + 1
	case t < 2:
		return ((-0.5*t+2.5)*t-4)*t + 2
	default:
		return 0
	}
}

// sample performs the bicubic convolution at pattern-space point
// (x, y) with a sampling footprint of (fx, fy) source pixels per output
// pixel. The kernel stretches with the footprint, so a minified pattern
// averages over its enlarged support and stays antialiased.
func (p *PatternBrush) sample(x, y, fx, fy float64) (r, g, b, a float32) {
	x -= 0.5
	y -= 0.5
	y0 := int(math.Ceil(y - 2*fy))
	y1 := int(math.Floor(y + 2*fy))
	x0 := int(math.Ceil(x - 2*fx))
	x1 := int(math.Floor(x + 2*fx))
	var sum [4]float32
	var wsum float32
	for sy := y0; sy <= y1; sy++ {
		wy := keys(float32((float64(sy) - y) / fy))
		if wy == 0 {
			continue
		}
		for sx := x0; sx <= x1; sx++ {
			w := wy * keys(float32((float64(sx)-x)/fx))
			if w == 0 {
				continue
			}
			pr, pg, pb, pa := p.at(sx, sy)
			sum[0] += w * pr
			sum[1] += w * pg
			sum[2] += w * pb
			sum[3] += w * pa
			wsum += w
		}
	}
	if wsum == 0 {
		return 0, 0, 0, 0
	}
	inv := 1 / wsum
	r, g, b, a = sum[0]*inv, sum[1]*inv, sum[2]*inv, sum[3]*inv
	if a > 1 {
		a = 1
	}
	return r, g, b, a
}
