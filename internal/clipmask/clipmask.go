// Package clipmask intersects clip masks with filled path coverage.
//
// A clip mask is a run stream whose per-row partial sums are a
// visibility value in [0,1]. Intersection merges the current mask with a
// new path's coverage runs: at every merge key the product of the two
// accumulated coverages becomes the new visibility, and the difference
// from the previous visibility is emitted as a run. The merge keeps
// partial sums of the result inside [0,1] by construction.
package clipmask

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/canvas/internal/raster"
)

// Intersect merges mask with path into dst (reusing its storage) and
// returns the new mask runs. Both inputs must be sorted by (y, x).
func Intersect(dst []raster.Run, mask, path []raster.Run) []raster.Run {
	dst = dst[:0]

	i, j := 0, 0
	var sumOld, sumNew, last float32
	curY := -1
	for i < len(mask) || j < len(path) {
		ky, kx := nextKey(mask, path, i, j)
		if ky != curY {
			sumOld, sumNew, last = 0, 0, 0
			curY = ky
		}
		for i < len(mask) && int(mask[i].Y) == ky && int(mask[i].X) == kx {
			sumOld += mask[i].Delta
			i++
		}
		for j < len(path) && int(path[j].Y) == ky && int(path[j].X) == kx {
			sumNew += path[j].Delta
			j++
		}
		visibility := math32.Min(math32.Abs(sumOld), 1) *
			math32.Min(math32.Abs(sumNew), 1)
		if delta := visibility - last; delta != 0 {
			if n := len(dst); n > 0 &&
				dst[n-1].Y == uint16(ky) && dst[n-1].X == uint16(kx) {
				dst[n-1].Delta += delta
				if dst[n-1].Delta == 0 {
					dst = dst[:n-1]
				}
			} else {
				dst = append(dst, raster.Run{
					X: uint16(kx), Y: uint16(ky), Delta: delta})
			}
			last = visibility
		}
	}
	return dst
}

func nextKey(a, b []raster.Run, i, j int) (y, x int) {
	switch {
	case i >= len(a):
		return int(b[j].Y), int(b[j].X)
	case j >= len(b):
		return int(a[i].Y), int(a[i].X)
	default:
		ay, ax := int(a[i].Y), int(a[i].X)
		by, bx := int(b[j].Y), int(b[j].X)
		if ay < by || (ay == by && ax < bx) {
			return ay, ax
		}
		return by, bx
	}
}
