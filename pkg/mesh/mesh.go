// Package mesh converts shell approximations into triangle meshes suitable
// for rendering. Planar face boundaries are fan-triangulated, which is exact
// for convex planar boundaries; curved side faces are meshed as strips
// between their matched boundary rows, so their triangles lie on chords of
// the surface. Concave planar faces would need the full planar triangulator,
// which lives outside this kernel.
package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/approx"
	"github.com/chazu/burl/pkg/brep"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Colors   []float32 `json:"colors"`   // [r0,g0,b0,a0, ...] per vertex
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// FromShell builds one mesh covering every face of a shell approximation.
// Faces with fewer than three boundary points contribute nothing; a
// zero-area (degenerate) face contributes zero-area triangles, which
// consumers can detect and drop.
func FromShell(sa approx.ShellApprox) *Mesh {
	m := &Mesh{}
	for _, fa := range sa.Faces {
		appendFace(m, fa)
	}
	return m
}

// appendFace triangulates one face into the mesh: strip meshing when the
// approximation carries matched boundary rows, boundary fan otherwise.
func appendFace(m *Mesh, fa approx.FaceApprox) {
	if len(fa.Rows[0]) > 1 {
		appendStrip(m, fa)
		return
	}

	pts := fa.Exterior.Points
	if len(pts) < 3 {
		return
	}
	for i := 1; i+1 < len(pts); i++ {
		appendTriangle(m, fa.Color, sdf.Triangle3{pts[0], pts[i], pts[i+1]})
	}
}

// appendStrip meshes a curved side face as quads between its boundary rows,
// two triangles per quad. Unlike a boundary fan, every triangle spans one
// tessellation segment, so it deviates from the surface no more than the
// chords of the rows themselves.
func appendStrip(m *Mesh, fa approx.FaceApprox) {
	bottom, top := fa.Rows[0], fa.Rows[1]
	for i := 0; i+1 < len(bottom); i++ {
		appendTriangle(m, fa.Color, sdf.Triangle3{bottom[i], bottom[i+1], top[i+1]})
		appendTriangle(m, fa.Color, sdf.Triangle3{bottom[i], top[i+1], top[i]})
	}
}

func appendTriangle(m *Mesh, color brep.Color, tri sdf.Triangle3) {
	r := float32(color[0]) / 255
	g := float32(color[1]) / 255
	b := float32(color[2]) / 255
	a := float32(color[3]) / 255

	// Flat shading: every corner of a triangle carries the face normal.
	n := tri.Normal()
	nx := float32(n.X)
	ny := float32(n.Y)
	nz := float32(n.Z)

	base := uint32(m.VertexCount())
	for j := 0; j < 3; j++ {
		v := tri[j]
		m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		m.Normals = append(m.Normals, nx, ny, nz)
		m.Colors = append(m.Colors, r, g, b, a)
		m.Indices = append(m.Indices, base)
		base++
	}
}

// Area returns the total surface area of the mesh, summing the area of
// every triangle. Degenerate geometry reports zero.
func (m *Mesh) Area() float64 {
	var area float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.vertex(m.Indices[i])
		b := m.vertex(m.Indices[i+1])
		c := m.vertex(m.Indices[i+2])
		area += b.Sub(a).Cross(c.Sub(a)).Length() / 2
	}
	return area
}

func (m *Mesh) vertex(i uint32) v3.Vec {
	return v3.Vec{
		X: float64(m.Vertices[3*i]),
		Y: float64(m.Vertices[3*i+1]),
		Z: float64(m.Vertices[3*i+2]),
	}
}
