package canvas

import "image"

// DrawImage draws an image with its top-left corner at (x, y) in user
// space, at its natural size.
func (c *Canvas) DrawImage(img image.Image, x, y float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	c.DrawImageRect(img, x, y, float64(b.Dx()), float64(b.Dy()))
}

// DrawImageRect draws an image scaled into the user-space rectangle
// (x, y, w, h). The image goes through the same sampling, shadow,
// clipping and compositing pipeline as a pattern fill.
func (c *Canvas) DrawImageRect(img image.Image, x, y, w, h float64) {
	if img == nil || w == 0 || h == 0 {
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	pat := c.CreatePattern(img, NoRepeat)
	if pat == nil {
		return
	}

	savedFwd, savedInv := c.state.fwd, c.state.inv
	savedFill := c.state.fillStyle
	c.Translate(x, y)
	c.Scale(w/iw, h/ih)
	c.state.fillStyle = pat
	c.withTempPath(func() {
		c.Rect(0, 0, iw, ih)
		c.Fill()
	})
	c.state.fwd, c.state.inv = savedFwd, savedInv
	c.state.fillStyle = savedFill
}

// GetImageData copies the rectangle (x, y, w, h) of canvas-space pixels
// into a new RGBA8 pixmap. The rectangle is clamped to the surface;
// an empty intersection returns nil.
func (c *Canvas) GetImageData(x, y, w, h int) *Pixmap {
	x0, y0, x1, y1 := clampRect(x, y, w, h, c.width, c.height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	out := NewPixmap(x1-x0, y1-y0)
	span := make([]float32, (x1-x0)*4)
	for row := y0; row < y1; row++ {
		c.surface.ReadSpan(x0, row, span)
		out.WriteSpan(0, row-y0, span)
	}
	return out
}

// PutImageData copies pixels back into the surface at (x, y), in
// canvas space, bypassing the transform, clip, alpha and composite
// operation, exactly as HTML putImageData does.
func (c *Canvas) PutImageData(src *Pixmap, x, y int) {
	if src == nil {
		return
	}
	x0, y0, x1, y1 := clampRect(x, y, src.Width(), src.Height(), c.width, c.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	span := make([]float32, (x1-x0)*4)
	for row := y0; row < y1; row++ {
		src.ReadSpan(x0-x, row-y, span)
		c.surface.WriteSpan(x0, row, span)
	}
}

func clampRect(x, y, w, h, maxW, maxH int) (x0, y0, x1, y1 int) {
	x0, y0 = x, y
	x1, y1 = x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > maxW {
		x1 = maxW
	}
	if y1 > maxH {
		y1 = maxH
	}
	return
}
