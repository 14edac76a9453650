// Package approx implements the burl approximation engine: converting exact
// curved geometry into tessellated point sequences within a caller-supplied
// tolerance. Tessellations of boundary curves are computed once per
// traversal and shared through a cache, so faces that border the same curve
// receive byte-identical points and adjacent mesh patches join without
// cracks.
//
// Approximation is a deterministic function of (entity, tolerance): the same
// input always tessellates to the same points, whichever cache is used.
package approx

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/brep"
	"github.com/chazu/burl/pkg/geom"
)

// Tolerance is the maximum permitted deviation between an exact curve and
// its tessellation. It is a bare scalar, not a configuration object.
type Tolerance float64

// NewTolerance validates a tolerance value. Zero and negative values cannot
// bound a deviation and are rejected.
func NewTolerance(v float64) (Tolerance, error) {
	if v <= 0 {
		return 0, fmt.Errorf("tolerance must be positive, got %v", v)
	}
	return Tolerance(v), nil
}

// EdgeApprox is the tessellation of one edge: its exact endpoint positions
// with tolerance-bounded interior points between them, in traversal order.
type EdgeApprox struct {
	Points []v3.Vec
}

// CycleApprox is the tessellation of a closed loop: the concatenation of
// its edges' tessellations with the shared endpoints deduplicated. The
// first point is not repeated at the end.
type CycleApprox struct {
	Points []v3.Vec
}

// FaceApprox is the tessellation of a face boundary. For curved side faces
// (surfaces swept from a circle), Rows additionally carries the bottom and
// top boundary rows, matched point for point and running in the same
// direction, so consumers can mesh the interior as strips that follow the
// surface.
type FaceApprox struct {
	Exterior CycleApprox
	Rows     [2][]v3.Vec
	Color    brep.Color
}

// ShellApprox is the set of a shell's face tessellations, deduplicated by
// geometric content and held in a deterministic order.
type ShellApprox struct {
	Faces []FaceApprox
}

// curveInterior returns the tessellation points strictly between the curve
// parameters from and to, evaluated on the edge's global geometry. Endpoint
// positions are never produced here; they are taken verbatim from the exact
// vertices. Curve parameters carry the same meaning in the local and global
// forms, so the bounds apply to either.
func curveInterior(c brep.GlobalCurve, from, to float64, tolerance Tolerance) []v3.Vec {
	switch k := c.Geometry.(type) {
	case geom.Line3:
		// A chord of a line has zero deviation.
		return nil

	case geom.Circle3:
		full := geom.ChordCount(k.Radius(), float64(tolerance))
		span := math.Abs(to-from) / (2 * math.Pi)
		segments := int(math.Ceil(float64(full) * span))
		if segments < 1 {
			segments = 1
		}

		points := make([]v3.Vec, 0, segments-1)
		for i := 1; i < segments; i++ {
			t := from + (to-from)*float64(i)/float64(segments)
			points = append(points, k.Point(t))
		}
		return points

	default:
		// Interface is sealed to lines and circles today; an unknown kind
		// gets the coarsest legal answer rather than a panic.
		return nil
	}
}

// Edge tessellates one edge. The result starts and ends at the edge's exact
// vertex positions; interior points come from the shared cache, so every
// edge over the same bounded global curve tessellates identically within
// one traversal.
func Edge(e brep.HalfEdge, tolerance Tolerance, cache *Cache) EdgeApprox {
	key := brep.KeyGlobalEdge(e.Global)

	// Canonical direction is increasing curve parameter. Edges sharing a
	// global curve share its parametrization, so every holder of the same
	// key computes the same bounds. Global endpoints cannot serve here: on
	// a closed curve they coincide and carry no direction.
	from, to := e.Vertices[0].T, e.Vertices[1].T
	reverse := from > to
	if reverse {
		from, to = to, from
	}

	canonical := cache.points(key, func() []v3.Vec {
		return curveInterior(e.Curve.Global, from, to, tolerance)
	})

	// An edge traversing the shared curve against the canonical direction
	// reads the points reversed; the points themselves stay bit-identical.
	interior := canonical
	if reverse {
		interior = reversed(canonical)
	}

	points := make([]v3.Vec, 0, len(interior)+2)
	points = append(points, e.Vertices[0].Global.Position)
	points = append(points, interior...)
	points = append(points, e.Vertices[1].Global.Position)

	return EdgeApprox{Points: points}
}

// Cycle tessellates a closed loop. Each edge contributes all of its points
// except the last, which is the exact same value as the next edge's first
// point; the closing point (equal to the cycle's first) is dropped the same
// way.
func Cycle(c brep.Cycle, tolerance Tolerance, cache *Cache) CycleApprox {
	var points []v3.Vec
	for _, e := range c.Edges {
		ea := Edge(e, tolerance, cache)
		if len(ea.Points) > 0 {
			points = append(points, ea.Points[:len(ea.Points)-1]...)
		}
	}
	return CycleApprox{Points: points}
}

// Face tessellates a face's bounding cycle.
func Face(f brep.Face, tolerance Tolerance, cache *Cache) FaceApprox {
	fa := FaceApprox{
		Exterior: Cycle(f.Cycle, tolerance, cache),
		Color:    f.Color,
	}
	if rows, ok := sideRows(f, tolerance, cache); ok {
		fa.Rows = rows
	}
	return fa
}

// sideRows extracts matched boundary rows from a curved side face. Such a
// face is non-planar, so its interior must follow the surface between the
// swept curve and its translation; a boundary fan cannot represent it.
// A swept face's cycle holds the swept curve first and its translation
// third, traversed backwards; both are translates of one curve, so they
// tessellate to the same point count. Faces that do not match that shape
// fall back to boundary-only tessellation.
func sideRows(f brep.Face, tolerance Tolerance, cache *Cache) ([2][]v3.Vec, bool) {
	if _, curved := f.Surface.U.(geom.Circle3); !curved {
		return [2][]v3.Vec{}, false
	}
	if len(f.Cycle.Edges) != 4 {
		return [2][]v3.Vec{}, false
	}

	bottom := Edge(f.Cycle.Edges[0], tolerance, cache).Points
	top := reversed(Edge(f.Cycle.Edges[2], tolerance, cache).Points)
	if len(bottom) != len(top) {
		return [2][]v3.Vec{}, false
	}
	return [2][]v3.Vec{bottom, top}, true
}

func reversed(points []v3.Vec) []v3.Vec {
	out := make([]v3.Vec, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}
