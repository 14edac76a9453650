package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Curve3 is a parametrized curve in ambient 3-D space. Implementations are
// small comparable value types, so two Curve3 values can be compared with ==
// to test for geometric identity.
type Curve3 interface {
	// Point evaluates the curve at parameter t.
	Point(t float64) v3.Vec
	// Translate returns the curve moved by delta.
	Translate(delta v3.Vec) Curve3
	// Reverse returns the curve with its direction of travel flipped, such
	// that reversed.Point(-t) == original.Point(t).
	Reverse() Curve3
}

// Curve2 is a parametrized curve in a surface's 2-D coordinate system.
type Curve2 interface {
	Point(t float64) v2.Vec
	Reverse() Curve2
}

// ---------------------------------------------------------------------------
// Lines
// ---------------------------------------------------------------------------

// Line3 is a 3-D line parametrized as Origin + t*Direction.
type Line3 struct {
	Origin    v3.Vec
	Direction v3.Vec
}

// LineFromPoints3 returns the line through a and b, with a at parameter 0
// and b at parameter 1.
func LineFromPoints3(a, b v3.Vec) Line3 {
	return Line3{Origin: a, Direction: b.Sub(a)}
}

// Point evaluates the line at parameter t.
func (l Line3) Point(t float64) v3.Vec {
	return l.Origin.Add(l.Direction.MulScalar(t))
}

// Translate returns the line moved by delta.
func (l Line3) Translate(delta v3.Vec) Curve3 {
	return Line3{Origin: l.Origin.Add(delta), Direction: l.Direction}
}

// Reverse flips the direction of travel. The origin stays fixed, so
// reversed.Point(-t) == original.Point(t).
func (l Line3) Reverse() Curve3 {
	return Line3{Origin: l.Origin, Direction: l.Direction.MulScalar(-1)}
}

// Line2 is a 2-D line parametrized as Origin + t*Direction.
type Line2 struct {
	Origin    v2.Vec
	Direction v2.Vec
}

// LineFromPoints2 returns the line through a and b, with a at parameter 0
// and b at parameter 1.
func LineFromPoints2(a, b v2.Vec) Line2 {
	return Line2{Origin: a, Direction: b.Sub(a)}
}

// LineFromPointsWithCoords2 returns the line through a and b such that a is
// at parameter ta and b at parameter tb. It preserves an existing curve
// parametrization when a curve is re-expressed in new coordinates.
// ta and tb must differ.
func LineFromPointsWithCoords2(a, b v2.Vec, ta, tb float64) Line2 {
	dir := b.Sub(a).MulScalar(1 / (tb - ta))
	return Line2{Origin: a.Sub(dir.MulScalar(ta)), Direction: dir}
}

// Point evaluates the line at parameter t.
func (l Line2) Point(t float64) v2.Vec {
	return l.Origin.Add(l.Direction.MulScalar(t))
}

// Reverse flips the direction of travel, keeping the origin fixed.
func (l Line2) Reverse() Curve2 {
	return Line2{Origin: l.Origin, Direction: l.Direction.MulScalar(-1)}
}

// ---------------------------------------------------------------------------
// Circles
// ---------------------------------------------------------------------------

// Circle3 is a 3-D circle parametrized as
// Center + A*cos(t) + B*sin(t), with t in radians. A and B span the circle's
// plane and have the circle's radius as length.
type Circle3 struct {
	Center v3.Vec
	A      v3.Vec
	B      v3.Vec
}

// CircleFromRadius3 returns a circle of the given radius in the xy-plane,
// centered at the origin.
func CircleFromRadius3(radius float64) Circle3 {
	return Circle3{
		A: v3.Vec{X: radius},
		B: v3.Vec{Y: radius},
	}
}

// Radius returns the circle's radius.
func (c Circle3) Radius() float64 {
	return c.A.Length()
}

// Point evaluates the circle at angle t.
func (c Circle3) Point(t float64) v3.Vec {
	return c.Center.
		Add(c.A.MulScalar(math.Cos(t))).
		Add(c.B.MulScalar(math.Sin(t)))
}

// Translate returns the circle moved by delta.
func (c Circle3) Translate(delta v3.Vec) Curve3 {
	return Circle3{Center: c.Center.Add(delta), A: c.A, B: c.B}
}

// Reverse flips the direction of travel by negating the B axis, so
// reversed.Point(-t) == original.Point(t).
func (c Circle3) Reverse() Curve3 {
	return Circle3{Center: c.Center, A: c.A, B: c.B.MulScalar(-1)}
}

// Circle2 is a 2-D circle parametrized as Center + A*cos(t) + B*sin(t).
type Circle2 struct {
	Center v2.Vec
	A      v2.Vec
	B      v2.Vec
}

// CircleFromRadius2 returns a circle of the given radius centered at the
// local origin.
func CircleFromRadius2(radius float64) Circle2 {
	return Circle2{
		A: v2.Vec{X: radius},
		B: v2.Vec{Y: radius},
	}
}

// Radius returns the circle's radius.
func (c Circle2) Radius() float64 {
	return c.A.Length()
}

// Point evaluates the circle at angle t.
func (c Circle2) Point(t float64) v2.Vec {
	return c.Center.
		Add(c.A.MulScalar(math.Cos(t))).
		Add(c.B.MulScalar(math.Sin(t)))
}

// Reverse flips the direction of travel by negating the B axis.
func (c Circle2) Reverse() Curve2 {
	return Circle2{Center: c.Center, A: c.A, B: c.B.MulScalar(-1)}
}
