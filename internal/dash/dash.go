// Package dash breaks polyline subpaths into dashed subpaths.
//
// Dash lengths apply in user-space units: the walk measures each segment
// after mapping it back through the inverse of the current transform, so
// a scaled canvas dashes at the pattern's nominal lengths.
package dash

// Point is a 2D point in canvas coordinates.
type Point struct {
	X, Y float64
}

// Subpath is a slice of a point buffer plus a closed flag.
type Subpath struct {
	Pts    []Point
	Closed bool
}

// Measure returns the user-space length of the segment from a to b.
// The canvas supplies its inverse transform here.
type Measure func(a, b Point) float64

// Split walks the pattern over each input subpath and returns the "on"
// stretches as new open subpaths. The pattern must be non-empty with an
// even number of non-negative entries and a positive total; offset may
// be any float and is wrapped modulo the total.
//
// When a closed subpath both starts and ends mid-dash, the final dash is
// spliced onto the front of the first so the wrap joint renders as a
// continuous stroke.
func Split(subs []Subpath, pattern []float64, offset float64, measure Measure) []Subpath {
	total := 0.0
	for _, d := range pattern {
		total += d
	}
	if total <= 0 {
		return subs
	}

	var out []Subpath
	for _, sub := range subs {
		pts := sub.Pts
		if len(pts) < 2 {
			continue
		}
		if sub.Closed {
			pts = append(append([]Point{}, pts...), pts[0])
		}

		first := len(out)

		// Position the walk at the wrapped offset.
		phase := offset - total*float64(int(offset/total))
		if phase < 0 {
			phase += total
		}
		index := 0
		on := true
		startsOn := false
		for phase >= pattern[index] {
			phase -= pattern[index]
			index = (index + 1) % len(pattern)
			on = !on
		}
		startsOn = on

		var cur []Point
		if on {
			cur = append(cur, pts[0])
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := measure(a, b)
			if segLen <= 0 {
				continue
			}
			walked := 0.0
			for {
				remain := pattern[index] - phase
				if walked+remain >= segLen {
					phase += segLen - walked
					break
				}
				walked += remain
				t := walked / segLen
				boundary := Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
				if on {
					cur = append(cur, boundary)
					out = append(out, Subpath{Pts: cur})
					cur = nil
				} else {
					cur = append(cur, boundary)
				}
				on = !on
				phase = 0
				index = (index + 1) % len(pattern)
			}
			if on {
				cur = append(cur, b)
			}
		}
		endsAtEnd := false
		if on && len(cur) >= 2 {
			out = append(out, Subpath{Pts: cur})
			endsAtEnd = true
		}

		// Splice the wrap joint of a closed subpath: the trailing dash
		// reaches the subpath end while the leading one starts at the
		// subpath start, so they form one continuous stretch.
		if sub.Closed && startsOn && endsAtEnd &&
			len(out)-first >= 2 {
			last := out[len(out)-1]
			out = out[:len(out)-1]
			merged := append(last.Pts, out[first].Pts[1:]...)
			out[first].Pts = merged
		}
	}
	return out
}
