// Package geom provides the primitive geometry used by the burl kernel:
// points and vectors (from the sdfx vec packages), parametrized lines and
// circles in 2-D and 3-D, and the chordal-deviation query that drives
// curve tessellation. All operations are pure functions over immutable
// values.
package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Epsilon is the default comparison tolerance for floating point drift in
// derived coordinates. It is not the tessellation tolerance, which callers
// supply explicitly.
const Epsilon = 1e-9

// EqualWithin2 reports whether two 2-D points coincide within eps.
func EqualWithin2(a, b v2.Vec, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// EqualWithin3 reports whether two 3-D points coincide within eps.
func EqualWithin3(a, b v3.Vec, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps
}

// ChordCount returns the number of vertices needed to approximate a full
// circle of the given radius such that no chord deviates from the arc by
// more than tolerance. The result is never below 3.
func ChordCount(radius, tolerance float64) int {
	if tolerance >= radius {
		return 3
	}
	// Chordal deviation of a regular n-gon inscribed in a circle of radius r
	// is r*(1 - cos(pi/n)). Solve for n.
	n := int(math.Ceil(math.Pi / math.Acos(1-tolerance/radius)))
	if n < 3 {
		n = 3
	}
	return n
}
