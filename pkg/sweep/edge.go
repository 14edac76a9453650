package sweep

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burl/pkg/brep"
	"github.com/chazu/burl/pkg/geom"
)

// Edge sweeps an edge along a path, producing the side face bounded by the
// edge, its translation, and the two swept endpoint edges.
func Edge(edge brep.HalfEdge, color brep.Color, path Path) (brep.Face, error) {
	// Normalize direction first, so side faces come out the same whichever
	// way the caller points the path.
	if path.IsNegativeDirection() {
		edge = edge.ReverseIncludingCurve()
	}

	surface := Surface(edge.Curve.Global, path.Vector)

	// The input edge is not defined in the new side surface, so it cannot
	// serve as the bottom of the loop directly. Re-express it: each vertex
	// keeps its curve parameter t and lands at surface coordinates (t, 0).
	bottomEdge := func() brep.HalfEdge {
		pointsSurface := [2]v2.Vec{
			{X: edge.Vertices[0].T, Y: 0},
			{X: edge.Vertices[1].T, Y: 0},
		}

		// A line is correct here even when the global curve is a circle:
		// projected into the side surface, the swept curve is the u axis,
		// which is a straight line in surface coordinates.
		curve := brep.Curve{
			Surface: surface,
			Local: geom.LineFromPointsWithCoords2(
				pointsSurface[0], pointsSurface[1],
				edge.Vertices[0].T, edge.Vertices[1].T,
			),
			Global: edge.Curve.Global,
		}

		var vertices [2]brep.Vertex
		for i, v := range edge.Vertices {
			surfaceVertex := brep.SurfaceVertex{
				Position: pointsSurface[i],
				Surface:  surface,
				Global:   v.Global,
			}
			vertices[i] = brep.Vertex{
				T:       v.T,
				Curve:   curve,
				Surface: surfaceVertex,
				Global:  v.Global,
			}
		}

		return brep.HalfEdge{
			Curve:    curve,
			Vertices: vertices,
			Global:   edge.Global,
		}
	}()

	var sideEdges [2]brep.HalfEdge
	for i, v := range bottomEdge.Vertices {
		side, err := Vertex(v, surface, path.Vector)
		if err != nil {
			return brep.Face{}, err
		}
		sideEdges[i] = side
	}

	topEdge := func() brep.HalfEdge {
		// The far endpoints of the side edges are the top edge's global
		// vertices. Taking them verbatim, instead of translating the bottom
		// vertices again, guarantees the loop shares identical endpoints.
		globalVertices := [2]brep.GlobalVertex{
			sideEdges[0].Global.Vertices[1],
			sideEdges[1].Global.Vertices[1],
		}

		pointsSurface := [2]v2.Vec{
			{X: bottomEdge.Vertices[0].T, Y: 1},
			{X: bottomEdge.Vertices[1].T, Y: 1},
		}

		curve := brep.Curve{
			Surface: surface,
			Local: geom.LineFromPointsWithCoords2(
				pointsSurface[0], pointsSurface[1],
				bottomEdge.Vertices[0].T, bottomEdge.Vertices[1].T,
			),
			Global: bottomEdge.Curve.Global.Translate(path.Vector),
		}

		var vertices [2]brep.Vertex
		for i, v := range bottomEdge.Vertices {
			surfaceVertex := brep.SurfaceVertex{
				Position: pointsSurface[i],
				Surface:  surface,
				Global:   globalVertices[i],
			}
			vertices[i] = brep.Vertex{
				T:       v.T,
				Curve:   curve,
				Surface: surfaceVertex,
				Global:  globalVertices[i],
			}
		}

		return brep.HalfEdge{
			Curve:    curve,
			Vertices: vertices,
			Global: brep.GlobalEdge{
				Curve:    curve.Global,
				Vertices: globalVertices,
			},
		}
	}()

	edges := []brep.HalfEdge{bottomEdge, sideEdges[1], topEdge, sideEdges[0]}

	// Orientation pass: walk the loop and flip any edge whose start does
	// not meet the previous edge's end. The comparison must use surface
	// forms; global forms can coincide when sweeping circles (opposite ends
	// of a closed curve) even though the surface vertices differ.
	for i := range edges {
		j := (i + 1) % len(edges)
		prevLast := edges[i].Vertices[1].Surface
		nextFirst := edges[j].Vertices[0].Surface
		if prevLast != nextFirst {
			edges[j] = edges[j].Reverse()
		}
	}

	// A single pass must have closed the loop; anything left over is a
	// geometric inconsistency in the generated edges.
	for i := range edges {
		j := (i + 1) % len(edges)
		if edges[i].Vertices[1].Surface != edges[j].Vertices[0].Surface {
			return brep.Face{}, InconsistentLoopError{Edge: i}
		}
	}

	cycle := brep.Cycle{Surface: surface, Edges: edges}

	return brep.Face{
		Surface: surface,
		Cycle:   cycle,
		Color:   color,
	}, nil
}
