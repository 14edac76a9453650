package sweep

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burl/pkg/brep"
)

// Sketch is a closed loop of edges on one surface, ready to be swept into a
// shell. The loop must be closed by surface-local identity; a single closed
// edge (a full circle) is a valid sketch on its own.
type Sketch struct {
	Surface brep.Surface
	Edges   []brep.HalfEdge
}

// PolygonSketch builds a sketch from surface-local points, connected by
// line segments in order and closed back to the first point. At least three
// points are required for a non-degenerate sketch, but fewer are accepted
// and produce degenerate geometry.
func PolygonSketch(surface brep.Surface, points []v2.Vec) Sketch {
	edges := make([]brep.HalfEdge, 0, len(points))
	for i, p := range points {
		next := points[(i+1)%len(points)]
		edges = append(edges, brep.LineSegment(surface, p, next))
	}
	return Sketch{Surface: surface, Edges: edges}
}

// CircleSketch builds a sketch from a single closed circular edge.
func CircleSketch(surface brep.Surface, center v2.Vec, radius float64) (Sketch, error) {
	edge, err := brep.CircleEdge(surface, center, radius)
	if err != nil {
		return Sketch{}, err
	}
	return Sketch{Surface: surface, Edges: []brep.HalfEdge{edge}}, nil
}

// Face assembles the sketch into the face it bounds on its own surface.
func (s Sketch) Face(color brep.Color) brep.Face {
	return brep.Face{
		Surface: s.Surface,
		Cycle:   brep.Cycle{Surface: s.Surface, Edges: s.Edges},
		Color:   color,
	}
}

// Sketch sweeps a closed sketch along a path, producing the shell of the
// swept solid: one side face per sketch edge, plus the sketch's own face
// and its translation as bottom and top caps. The shell's face set is
// deduplicated, so sweeping a sketch with repeated edges cannot produce
// doubled side faces. A zero-length path produces a degenerate shell.
func SketchShell(sketch Sketch, color brep.Color, path Path) (brep.Shell, error) {
	faces := make([]brep.Face, 0, len(sketch.Edges)+2)

	for _, edge := range sketch.Edges {
		side, err := Edge(edge, color, path)
		if err != nil {
			return brep.Shell{}, err
		}
		faces = append(faces, side)
	}

	bottom := sketch.Face(color)
	top := bottom.Translate(path.Vector)
	faces = append(faces, bottom, top)

	return brep.NewShell(faces), nil
}
