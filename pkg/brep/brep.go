// Package brep defines the boundary-representation data model for burl:
// vertices, curves, edges, cycles, faces and shells, each present in both a
// global (ambient 3-D) form and a surface-local parametric form. All entities
// are immutable value records; an operation that "modifies" an entity returns
// a new value. Every local entity carries its global counterpart, and the two
// are always derived together from one source of truth so that evaluating a
// local coordinate through its owning parametrization reproduces the stored
// global position.
package brep

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
)

// Color is an RGBA face color.
type Color [4]uint8

// ---------------------------------------------------------------------------
// Global forms
// ---------------------------------------------------------------------------

// GlobalVertex is a point in ambient 3-D space, independent of any surface.
type GlobalVertex struct {
	Position v3.Vec
}

// GlobalCurve is a curve in ambient 3-D space.
type GlobalCurve struct {
	Geometry geom.Curve3
}

// Translate returns the curve moved by delta.
func (c GlobalCurve) Translate(delta v3.Vec) GlobalCurve {
	return GlobalCurve{Geometry: c.Geometry.Translate(delta)}
}

// GlobalEdge is a bounded curve segment in ambient 3-D space.
type GlobalEdge struct {
	Curve    GlobalCurve
	Vertices [2]GlobalVertex
}

// ---------------------------------------------------------------------------
// Surface-local forms
// ---------------------------------------------------------------------------

// Surface is a 2-D parametric patch embedded in 3-D, defined as the sweep of
// a curve along a path. The u axis is always the swept curve; the v axis is
// always the sweep path.
type Surface struct {
	U geom.Curve3
	V v3.Vec
}

// Point evaluates the surface at the local coordinate p, where p.X is the
// parameter along the u curve and p.Y scales the v path.
func (s Surface) Point(p v2.Vec) v3.Vec {
	return s.U.Point(p.X).Add(s.V.MulScalar(p.Y))
}

// Translate returns the surface moved by delta. The v axis is a direction
// and is unaffected.
func (s Surface) Translate(delta v3.Vec) Surface {
	return Surface{U: s.U.Translate(delta), V: s.V}
}

// XYPlane returns the plane spanned by the x and y axes.
func XYPlane() Surface {
	return Surface{
		U: geom.Line3{Direction: v3.Vec{X: 1}},
		V: v3.Vec{Y: 1},
	}
}

// XZPlane returns the plane spanned by the x and z axes.
func XZPlane() Surface {
	return Surface{
		U: geom.Line3{Direction: v3.Vec{X: 1}},
		V: v3.Vec{Z: 1},
	}
}

// SurfaceVertex is a point expressed in a surface's 2-D coordinates. Two
// SurfaceVertex values are identical exactly when their surface, local
// position and global form all match; global coincidence alone does not
// make them the same vertex.
type SurfaceVertex struct {
	Position v2.Vec
	Surface  Surface
	Global   GlobalVertex
}

// Curve is a curve expressed in a surface's local 2-D coordinates, paired
// with its global form.
type Curve struct {
	Surface Surface
	Local   geom.Curve2
	Global  GlobalCurve
}

// Reverse returns the curve with both its local and global direction of
// travel flipped.
func (c Curve) Reverse() Curve {
	return Curve{
		Surface: c.Surface,
		Local:   c.Local.Reverse(),
		Global:  GlobalCurve{Geometry: c.Global.Geometry.Reverse()},
	}
}

// Vertex is a point on a Curve, positioned by a single curve parameter.
type Vertex struct {
	T       float64
	Curve   Curve
	Surface SurfaceVertex
	Global  GlobalVertex
}

// ---------------------------------------------------------------------------
// Topology
// ---------------------------------------------------------------------------

// HalfEdge is a bounded segment of a Curve, directed from Vertices[0] to
// Vertices[1].
type HalfEdge struct {
	Curve    Curve
	Vertices [2]Vertex
	Global   GlobalEdge
}

// Reverse returns the edge traversed in the opposite direction. The curve
// and the global form are unchanged; only the vertex order flips.
func (e HalfEdge) Reverse() HalfEdge {
	return HalfEdge{
		Curve:    e.Curve,
		Vertices: [2]Vertex{e.Vertices[1], e.Vertices[0]},
		Global:   e.Global,
	}
}

// ReverseIncludingCurve returns the edge traversed in the opposite
// direction with its curve's parametrization flipped as well. Vertex
// parameters are negated so every vertex keeps its position on the
// reversed curve.
func (e HalfEdge) ReverseIncludingCurve() HalfEdge {
	curve := e.Curve.Reverse()
	var vertices [2]Vertex
	for i, v := range [2]Vertex{e.Vertices[1], e.Vertices[0]} {
		vertices[i] = Vertex{
			T:       -v.T,
			Curve:   curve,
			Surface: v.Surface,
			Global:  v.Global,
		}
	}
	return HalfEdge{
		Curve:    curve,
		Vertices: vertices,
		Global:   e.Global,
	}
}

// Cycle is an ordered closed loop of edges bounding a face. Consecutive
// edges share an endpoint by surface-local identity.
type Cycle struct {
	Surface Surface
	Edges   []HalfEdge
}

// IsClosed reports whether every edge's end vertex matches the next edge's
// start vertex, comparing surface-local forms. The last edge must connect
// back to the first.
func (c Cycle) IsClosed() bool {
	for i := range c.Edges {
		j := (i + 1) % len(c.Edges)
		if c.Edges[i].Vertices[1].Surface != c.Edges[j].Vertices[0].Surface {
			return false
		}
	}
	return true
}

// Face is a bounded region of a Surface.
type Face struct {
	Surface Surface
	Cycle   Cycle
	Color   Color
}

// Translate returns the face moved by delta: its surface, the global form
// of every edge and vertex, and the curves they lie on all move together.
// Local coordinates are unchanged, since the coordinate system moves with
// the surface.
func (f Face) Translate(delta v3.Vec) Face {
	surface := f.Surface.Translate(delta)

	edges := make([]HalfEdge, len(f.Cycle.Edges))
	for i, e := range f.Cycle.Edges {
		curve := Curve{
			Surface: surface,
			Local:   e.Curve.Local,
			Global:  e.Curve.Global.Translate(delta),
		}
		var vertices [2]Vertex
		for k, v := range e.Vertices {
			global := GlobalVertex{Position: v.Global.Position.Add(delta)}
			vertices[k] = Vertex{
				T:     v.T,
				Curve: curve,
				Surface: SurfaceVertex{
					Position: v.Surface.Position,
					Surface:  surface,
					Global:   global,
				},
				Global: global,
			}
		}
		edges[i] = HalfEdge{
			Curve:    curve,
			Vertices: vertices,
			Global: GlobalEdge{
				Curve: e.Global.Curve.Translate(delta),
				Vertices: [2]GlobalVertex{
					{Position: e.Global.Vertices[0].Position.Add(delta)},
					{Position: e.Global.Vertices[1].Position.Add(delta)},
				},
			},
		}
	}

	return Face{
		Surface: surface,
		Cycle:   Cycle{Surface: surface, Edges: edges},
		Color:   f.Color,
	}
}

// Shell is a set of faces forming a (possibly open) 3-D boundary. Faces are
// kept deduplicated in a deterministic order; the order carries no meaning
// beyond making dedup and iteration stable.
type Shell struct {
	Faces []Face
}

// NewShell builds a shell from faces, dropping duplicates by geometric
// content and sorting the rest into the canonical dedup order.
func NewShell(faces []Face) Shell {
	return Shell{Faces: dedupFaces(faces)}
}
