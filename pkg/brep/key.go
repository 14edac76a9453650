package brep

import (
	"sort"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
)

// Content keys give geometric entities a deterministic total order, used for
// shell dedup and for cache identity during approximation. A key encodes the
// full geometric content of an entity: equal keys mean identical geometry.
// Keys use exact float formatting, so they are stable across runs.

func strconvFormat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func key3(v v3.Vec) string {
	return strconvFormat(v.X) + "," + strconvFormat(v.Y) + "," + strconvFormat(v.Z)
}

// KeyCurve3 returns the content key of a 3-D curve.
func KeyCurve3(c geom.Curve3) string {
	switch k := c.(type) {
	case geom.Line3:
		return "line3(" + key3(k.Origin) + ";" + key3(k.Direction) + ")"
	case geom.Circle3:
		return "circle3(" + key3(k.Center) + ";" + key3(k.A) + ";" + key3(k.B) + ")"
	default:
		return "curve3(?)"
	}
}

// KeyGlobalEdge returns the content key of a global edge. Adjacent faces
// that reference the same bounded curve segment produce the same key, which
// is what lets their tessellations be shared.
func KeyGlobalEdge(e GlobalEdge) string {
	return "edge(" + KeyCurve3(e.Curve.Geometry) +
		";" + key3(e.Vertices[0].Position) +
		";" + key3(e.Vertices[1].Position) + ")"
}

// KeySurface returns the content key of a surface.
func KeySurface(s Surface) string {
	return "surface(" + KeyCurve3(s.U) + ";" + key3(s.V) + ")"
}

// KeyFace returns the content key of a face: its surface plus the global
// edges of its bounding cycle in traversal order.
func KeyFace(f Face) string {
	var b strings.Builder
	b.WriteString("face(")
	b.WriteString(KeySurface(f.Surface))
	for _, e := range f.Cycle.Edges {
		b.WriteString(";")
		b.WriteString(KeyGlobalEdge(e.Global))
	}
	b.WriteString(")")
	return b.String()
}

// dedupFaces sorts faces by content key and drops exact duplicates. The
// order is a total order over geometric content; it carries no semantic
// meaning.
func dedupFaces(faces []Face) []Face {
	if len(faces) == 0 {
		return nil
	}

	type keyed struct {
		key  string
		face Face
	}
	ks := make([]keyed, len(faces))
	for i, f := range faces {
		ks[i] = keyed{key: KeyFace(f), face: f}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })

	out := make([]Face, 0, len(ks))
	for i, k := range ks {
		if i > 0 && k.key == ks[i-1].key {
			continue
		}
		out = append(out, k.face)
	}
	return out
}
