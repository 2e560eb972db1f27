package model

import "math"

// geomEpsilon absorbs floating point noise so that boxes sharing an edge
// are never reported as overlapping or out of bounds.
const geomEpsilon = 1e-9

// IntervalsOverlap reports whether the closed intervals [c1-len1/2, c1+len1/2]
// and [c2-len2/2, c2+len2/2] share more than a boundary point.
func IntervalsOverlap(c1, len1, c2, len2 float64) bool {
	return math.Abs(c1-c2) < (len1+len2)/2-geomEpsilon
}

// FitsOrientation reports whether a box of boxW x boxH fits an empty
// container of containerW x containerH without rotating it.
func FitsOrientation(boxW, boxH, containerW, containerH float64) bool {
	return boxW <= containerW+geomEpsilon && boxH <= containerH+geomEpsilon
}

// FitsEitherOrientation reports whether a box fits an empty container as-is
// or rotated by 90 degrees.
func FitsEitherOrientation(boxW, boxH, containerW, containerH float64) bool {
	return FitsOrientation(boxW, boxH, containerW, containerH) ||
		FitsOrientation(boxH, boxW, containerW, containerH)
}

// WithinRange reports whether the interval centered at c with length l lies
// inside [0, limit].
func WithinRange(c, l, limit float64) bool {
	return c-l/2 >= -geomEpsilon && c+l/2 <= limit+geomEpsilon
}

// GridSteps returns how many grid positions of size step fit in [lo, hi],
// counting both ends. It returns 1 when the range is empty or degenerate so
// callers always have the lower bound to fall back on.
func GridSteps(lo, hi, step float64) int {
	if step <= 0 || hi <= lo {
		return 1
	}
	return int(math.Floor((hi-lo)/step+geomEpsilon)) + 1
}
