// Package sweep implements the burl sweep engine: extruding an entity of
// dimension N into an entity of dimension N+1 by translating it along a
// path. A vertex sweeps into an edge, an edge into a face, and a closed
// sketch into a shell. Every operation derives the surface-local and global
// forms of its output together, so the two never drift apart.
//
// All operations are pure: they read immutable inputs and return new
// immutable values. Concurrent sweeps need no coordination.
package sweep

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/brep"
	"github.com/chazu/burl/pkg/geom"
)

// Path is a sweep path vector. Sketches are drawn in the xy-plane, so a
// path's orientation is judged against the +z axis: sweeping downward
// reverses the swept edge first, which keeps side faces oriented the same
// way regardless of the caller-supplied sign.
type Path struct {
	Vector v3.Vec
}

// IsNegativeDirection reports whether the path points into the -z half
// space.
func (p Path) IsNegativeDirection() bool {
	return p.Vector.Dot(v3.Vec{Z: 1}) < 0
}

// GlobalVertex sweeps a global vertex along path, producing the global edge
// from the vertex to its translation. A zero-length path is legal and
// produces a degenerate edge; callers that need visible geometry must guard
// against it themselves.
func GlobalVertex(v brep.GlobalVertex, path v3.Vec) brep.GlobalEdge {
	a := v
	b := brep.GlobalVertex{Position: v.Position.Add(path)}

	return brep.GlobalEdge{
		Curve: brep.GlobalCurve{
			Geometry: geom.LineFromPoints3(a.Position, b.Position),
		},
		Vertices: [2]brep.GlobalVertex{a, b},
	}
}

// Vertex sweeps a vertex along a surface's v path, producing the half-edge
// from the vertex to its translation, expressed in that surface's
// coordinates.
//
// The vertex's curve must be the surface's u curve and path must be the
// surface's v path; anything else is a contract violation. The input vertex
// is not an endpoint of the output edge: the output edge lies on a new
// curve, and both of its vertices are newly synthesized.
func Vertex(vertex brep.Vertex, surface brep.Surface, path v3.Vec) (brep.HalfEdge, error) {
	// Without these two conditions the vertex has no known surface
	// coordinates, and the output edge's v range would not be [0,1].
	if vertex.Curve.Global.Geometry != surface.U {
		return brep.HalfEdge{}, InvalidSweepInputError{
			Reason: "vertex curve is not the surface's u curve",
		}
	}
	if path != surface.V {
		return brep.HalfEdge{}, InvalidSweepInputError{
			Reason: "path is not the surface's v path",
		}
	}

	// The global form is the straight segment from the vertex to its
	// translation.
	edgeGlobal := GlobalVertex(vertex.Global, path)

	// In surface coordinates the output edge runs from (t, 0) to (t, 1):
	// the u coordinate is the input vertex's curve parameter, and the v
	// coordinates are fixed by the parametrization convention. This is a
	// straight line in surface space even when the surface's u curve is a
	// circle, because the path is the surface's own v axis.
	pointsSurface := [2]v2.Vec{
		{X: vertex.T, Y: 0},
		{X: vertex.T, Y: 1},
	}

	curve := brep.Curve{
		Surface: surface,
		Local:   geom.LineFromPoints2(pointsSurface[0], pointsSurface[1]),
		Global:  edgeGlobal.Curve,
	}

	var vertices [2]brep.Vertex
	for i := range vertices {
		surfaceVertex := brep.SurfaceVertex{
			Position: pointsSurface[i],
			Surface:  surface,
			Global:   edgeGlobal.Vertices[i],
		}
		vertices[i] = brep.Vertex{
			T:       pointsSurface[i].Y,
			Curve:   curve,
			Surface: surfaceVertex,
			Global:  edgeGlobal.Vertices[i],
		}
	}

	return brep.HalfEdge{
		Curve:    curve,
		Vertices: vertices,
		Global:   edgeGlobal,
	}, nil
}

// Surface sweeps a curve's global form along path, producing the surface
// whose u axis is the curve and whose v axis is the path.
func Surface(curve brep.GlobalCurve, path v3.Vec) brep.Surface {
	return brep.Surface{U: curve.Geometry, V: path}
}
