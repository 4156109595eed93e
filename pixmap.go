package canvas

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// PixelFormat selects the storage layout of a Pixmap.
type PixelFormat int

const (
	// FormatRGBA8 stores 8-bit RGBA, 4 bytes per pixel.
	FormatRGBA8 PixelFormat = iota
	// FormatBGRA8 stores 8-bit BGRA, 4 bytes per pixel.
	FormatBGRA8
	// FormatARGB8 stores 8-bit ARGB, 4 bytes per pixel.
	FormatARGB8
	// FormatABGR8 stores 8-bit ABGR, 4 bytes per pixel.
	FormatABGR8
	// FormatGray8 stores 8-bit luminance, 1 byte per pixel.
	FormatGray8
	// FormatRGBA128F stores float32 RGBA, 16 bytes per pixel.
	FormatRGBA128F
)

// BytesPerPixel returns the storage size of one pixel.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatGray8:
		return 1
	case FormatRGBA128F:
		return 16
	default:
		return 4
	}
}

// rgbaOrder returns the byte offsets of R, G, B, A for the 4-byte
// formats.
func (f PixelFormat) rgbaOrder() (r, g, b, a int) {
	switch f {
	case FormatBGRA8:
		return 2, 1, 0, 3
	case FormatARGB8:
		return 1, 2, 3, 0
	case FormatABGR8:
		return 3, 2, 1, 0
	default:
		return 0, 1, 2, 3
	}
}

// Pixmap is an in-memory Surface with a configurable pixel format.
type Pixmap struct {
	width  int
	height int
	stride int
	format PixelFormat
	data   []uint8
}

// NewPixmap creates an RGBA8 pixmap with the given dimensions.
// Dimensions outside [1, 32768] are clamped into range.
func NewPixmap(width, height int) *Pixmap {
	return NewPixmapWithFormat(width, height, FormatRGBA8)
}

// NewPixmapWithFormat creates a pixmap with the given pixel format.
func NewPixmapWithFormat(width, height int, format PixelFormat) *Pixmap {
	width = clampDim(width)
	height = clampDim(height)
	bpp := format.BytesPerPixel()
	return &Pixmap{
		width:  width,
		height: height,
		stride: width * bpp,
		format: format,
		data:   make([]uint8, width*height*bpp),
	}
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	if v > 32768 {
		return 32768
	}
	return v
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.height }

// Stride returns the number of bytes per row.
func (p *Pixmap) Stride() int { return p.stride }

// Format returns the pixel format.
func (p *Pixmap) Format() PixelFormat { return p.format }

// Data returns the raw pixel data in storage format.
func (p *Pixmap) Data() []uint8 { return p.data }

// ReadSpan implements Surface.
func (p *Pixmap) ReadSpan(x, y int, dst []float32) {
	n := len(dst) / 4
	if y < 0 || y >= p.height || x < 0 || x+n > p.width {
		return
	}
	switch p.format {
	case FormatGray8:
		row := p.data[y*p.stride+x:]
		for i := 0; i < n; i++ {
			v := float32(row[i]) / 255
			dst[i*4], dst[i*4+1], dst[i*4+2], dst[i*4+3] = v, v, v, 1
		}
	case FormatRGBA128F:
		row := p.data[y*p.stride+x*16:]
		for i := 0; i < 4*n; i++ {
			dst[i] = math.Float32frombits(
				binary.LittleEndian.Uint32(row[i*4:]))
		}
	default:
		ri, gi, bi, ai := p.format.rgbaOrder()
		row := p.data[y*p.stride+x*4:]
		for i := 0; i < n; i++ {
			px := row[i*4 : i*4+4]
			dst[i*4] = float32(px[ri]) / 255
			dst[i*4+1] = float32(px[gi]) / 255
			dst[i*4+2] = float32(px[bi]) / 255
			dst[i*4+3] = float32(px[ai]) / 255
		}
	}
}

// WriteSpan implements Surface.
func (p *Pixmap) WriteSpan(x, y int, src []float32) {
	n := len(src) / 4
	if y < 0 || y >= p.height || x < 0 || x+n > p.width {
		return
	}
	switch p.format {
	case FormatGray8:
		row := p.data[y*p.stride+x:]
		for i := 0; i < n; i++ {
			// Rec. 709 luma weights.
			l := 0.2126*src[i*4] + 0.7152*src[i*4+1] + 0.0722*src[i*4+2]
			row[i] = quantize(l)
		}
	case FormatRGBA128F:
		row := p.data[y*p.stride+x*16:]
		for i := 0; i < 4*n; i++ {
			binary.LittleEndian.PutUint32(row[i*4:], math.Float32bits(src[i]))
		}
	default:
		ri, gi, bi, ai := p.format.rgbaOrder()
		row := p.data[y*p.stride+x*4:]
		for i := 0; i < n; i++ {
			px := row[i*4 : i*4+4]
			px[ri] = quantize(src[i*4])
			px[gi] = quantize(src[i*4+1])
			px[bi] = quantize(src[i*4+2])
			px[ai] = quantize(src[i*4+3])
		}
	}
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// SetPixel sets the color of a single pixel (unpremultiplied,
// gamma-space components in [0, 1]).
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	span := [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
	p.WriteSpan(x, y, span[:])
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	var span [4]float32
	p.ReadSpan(x, y, span[:])
	return RGBA{
		R: float64(span[0]),
		G: float64(span[1]),
		B: float64(span[2]),
		A: float64(span[3]),
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	span := [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			p.WriteSpan(x, y, span[:])
		}
	}
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	span := make([]float32, p.width*4)
	for y := 0; y < p.height; y++ {
		p.ReadSpan(0, y, span)
		for x := 0; x < p.width; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = quantize(span[x*4])
			img.Pix[i+1] = quantize(span[x*4+1])
			img.Pix[i+2] = quantize(span[x*4+2])
			img.Pix[i+3] = quantize(span[x*4+3])
		}
	}
	return img
}

// FromImage creates an RGBA8 pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < pm.height; y++ {
		for x := 0; x < pm.width; x++ {
			pm.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
