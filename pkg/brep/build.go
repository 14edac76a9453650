package brep

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
)

// Constructors for entities whose local and global forms must be derived
// together. Callers hand in local coordinates; the global side is always
// computed through the owning surface's parametrization, never supplied
// separately.

// UAxisCurve returns the curve along a surface's u axis, expressed in that
// surface's local coordinates.
func UAxisCurve(s Surface) Curve {
	return Curve{
		Surface: s,
		Local:   geom.Line2{Direction: v2.Vec{X: 1}},
		Global:  GlobalCurve{Geometry: s.U},
	}
}

// VertexOnCurve places a vertex at parameter t on a curve. The surface-local
// and global positions are both evaluated from the curve's parametrization.
func VertexOnCurve(c Curve, t float64) Vertex {
	local := c.Local.Point(t)
	global := GlobalVertex{Position: c.Surface.Point(local)}
	return Vertex{
		T:     t,
		Curve: c,
		Surface: SurfaceVertex{
			Position: local,
			Surface:  c.Surface,
			Global:   global,
		},
		Global: global,
	}
}

// LineSegment builds a half-edge between two surface-local points. The edge
// runs from a (parameter 0) to b (parameter 1).
func LineSegment(s Surface, a, b v2.Vec) HalfEdge {
	ga := s.Point(a)
	gb := s.Point(b)

	curve := Curve{
		Surface: s,
		Local:   geom.LineFromPoints2(a, b),
		Global:  GlobalCurve{Geometry: geom.LineFromPoints3(ga, gb)},
	}

	globals := [2]GlobalVertex{{Position: ga}, {Position: gb}}
	locals := [2]v2.Vec{a, b}
	var vertices [2]Vertex
	for i := range vertices {
		vertices[i] = Vertex{
			T:     float64(i),
			Curve: curve,
			Surface: SurfaceVertex{
				Position: locals[i],
				Surface:  s,
				Global:   globals[i],
			},
			Global: globals[i],
		}
	}

	return HalfEdge{
		Curve:    curve,
		Vertices: vertices,
		Global: GlobalEdge{
			Curve:    curve.Global,
			Vertices: globals,
		},
	}
}

// CircleEdge builds a closed half-edge for a full circle of the given radius
// around the surface-local point center. The surface's u axis must be a line,
// so that local coordinates map affinely into 3-D. The edge's two vertices
// are the same surface-local point at parameters 0 and 2*pi; sharing one
// surface vertex keeps the loop exactly closed.
func CircleEdge(s Surface, center v2.Vec, radius float64) (HalfEdge, error) {
	u, ok := s.U.(geom.Line3)
	if !ok {
		return HalfEdge{}, fmt.Errorf("circle edge: surface u axis is %T, need a line", s.U)
	}

	local := geom.Circle2{
		Center: center,
		A:      v2.Vec{X: radius},
		B:      v2.Vec{Y: radius},
	}
	// The surface map is affine in local coordinates, so the circle's axes
	// map through the linear part only.
	global := geom.Circle3{
		Center: s.Point(center),
		A:      u.Direction.MulScalar(radius),
		B:      s.V.MulScalar(radius),
	}

	curve := Curve{
		Surface: s,
		Local:   local,
		Global:  GlobalCurve{Geometry: global},
	}

	start := local.Point(0)
	g := GlobalVertex{Position: s.Point(start)}
	sv := SurfaceVertex{Position: start, Surface: s, Global: g}

	vertices := [2]Vertex{
		{T: 0, Curve: curve, Surface: sv, Global: g},
		{T: 2 * math.Pi, Curve: curve, Surface: sv, Global: g},
	}

	return HalfEdge{
		Curve:    curve,
		Vertices: vertices,
		Global: GlobalEdge{
			Curve:    curve.Global,
			Vertices: [2]GlobalVertex{g, g},
		},
	}, nil
}

// PlaneThrough returns the surface swept from a line through origin along
// uDir, with v as the sweep path. It is the general form behind XYPlane and
// XZPlane.
func PlaneThrough(origin, uDir, v v3.Vec) Surface {
	return Surface{
		U: geom.Line3{Origin: origin, Direction: uDir},
		V: v,
	}
}
