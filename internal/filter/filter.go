// Package filter renders shadow alpha grids with a box-blur Gaussian
// approximation.
//
// Three passes of an extended box filter per axis approximate a Gaussian
// of sigma = blur/2 (Gwosdek et al., "Theoretical foundations of
// Gaussian convolution by extended box filtering"). The grid carries a
// border wide enough that blurred alpha never clips at the edges.
package filter

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/canvas/internal/raster"
)

// Radius returns the box radius used for a given shadow blur.
func Radius(blur float64) int {
	sigma2 := 0.25 * blur * blur
	r := int(math.Floor(0.5*math.Sqrt(4*sigma2+1) - 0.5))
	if r < 0 {
		r = 0
	}
	return r
}

// Border returns the grid padding for a given box radius: three passes
// each spread at most radius+1 pixels.
func Border(radius int) int {
	return 3 * (radius + 1)
}

// Grid is a reusable alpha raster for the shadow pass.
type Grid struct {
	Width, Height int
	Alpha         []float32
	line          []float32
	scratch       []float32
}

// Reset resizes the grid and clears it to zero.
func (g *Grid) Reset(width, height int) {
	g.Width, g.Height = width, height
	n := width * height
	if cap(g.Alpha) < n {
		g.Alpha = make([]float32, n)
	}
	g.Alpha = g.Alpha[:n]
	for i := range g.Alpha {
		g.Alpha[i] = 0
	}
}

// Splat renders sorted coverage runs into the grid as per-pixel alpha.
func (g *Grid) Splat(runs []raster.Run) {
	for i := 0; i < len(runs); {
		y := int(runs[i].Y)
		if y >= g.Height {
			break
		}
		row := g.Alpha[y*g.Width : (y+1)*g.Width]
		sum := float32(0)
		for i < len(runs) && int(runs[i].Y) == y {
			x := int(runs[i].X)
			sum += runs[i].Delta
			xNext := g.Width
			if i+1 < len(runs) && int(runs[i+1].Y) == y {
				xNext = int(runs[i+1].X)
			}
			cov := math32.Min(math32.Abs(sum), 1)
			if cov != 0 {
				for p := x; p < xNext && p < g.Width; p++ {
					row[p] = cov
				}
			}
			i++
		}
	}
}

// Blur applies three extended-box passes along rows, then three along
// columns, approximating a Gaussian with sigma = blur/2.
func (g *Grid) Blur(blur float64, radius int) {
	if blur <= 0 {
		return
	}
	sigma2 := 0.25 * blur * blur
	r := float64(radius)
	alpha := (2*r + 1) * (r*(r+1) - sigma2) / (2*sigma2 - 6*(r+1)*(r+1))
	divisor := 2*(alpha+r) + 1
	w1 := float32(alpha / divisor)
	w2 := float32((1 - alpha) / divisor)

	n := g.Width
	if g.Height > n {
		n = g.Height
	}
	if cap(g.line) < n {
		g.line = make([]float32, n)
		g.scratch = make([]float32, n)
	}

	for pass := 0; pass < 3; pass++ {
		for y := 0; y < g.Height; y++ {
			row := g.Alpha[y*g.Width : (y+1)*g.Width]
			g.blurLine(row, radius, w1, w2)
		}
	}
	for pass := 0; pass < 3; pass++ {
		for x := 0; x < g.Width; x++ {
			col := g.line[:g.Height]
			for y := 0; y < g.Height; y++ {
				col[y] = g.Alpha[y*g.Width+x]
			}
			g.blurLine(col, radius, w1, w2)
			for y := 0; y < g.Height; y++ {
				g.Alpha[y*g.Width+x] = col[y]
			}
		}
	}
}

// blurLine runs one extended-box pass in place: the window of radius r
// at full weight plus the two samples just outside it at fractional
// weight. Out-of-range samples read as zero.
func (g *Grid) blurLine(line []float32, radius int, w1, w2 float32) {
	n := len(line)
	out := g.scratch[:n]

	at := func(i int) float32 {
		if i < 0 || i >= n {
			return 0
		}
		return line[i]
	}

	// Sliding sums over the inner (radius) and extended (radius+1)
	// windows.
	var inner, extended float32
	for k := -radius; k <= radius; k++ {
		inner += at(k)
	}
	extended = inner + at(-radius-1) + at(radius+1)

	for i := 0; i < n; i++ {
		out[i] = w1*extended + w2*inner
		inner += at(i+radius+1) - at(i-radius)
		extended += at(i+radius+2) - at(i-radius-1)
	}
	copy(line, out)
}

// Runs re-encodes the grid's visible window as coverage runs in canvas
// coordinates: canvas pixel (x, y) reads grid cell (x+border, y+border).
func (g *Grid) Runs(dst []raster.Run, border, width, height int) []raster.Run {
	dst = dst[:0]
	for y := 0; y < height; y++ {
		gy := y + border
		if gy < 0 || gy >= g.Height {
			continue
		}
		row := g.Alpha[gy*g.Width : (gy+1)*g.Width]
		prev := float32(0)
		for x := 0; x < width; x++ {
			gx := x + border
			var a float32
			if gx >= 0 && gx < g.Width {
				a = row[gx]
			}
			if a != prev {
				dst = append(dst, raster.Run{
					X: uint16(x), Y: uint16(y), Delta: a - prev})
				prev = a
			}
		}
		if prev != 0 {
			dst = append(dst, raster.Run{
				X: uint16(width), Y: uint16(y), Delta: -prev})
		}
	}
	return dst
}
