package approx_test

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/approx"
	"github.com/chazu/burl/pkg/brep"
	"github.com/chazu/burl/pkg/sweep"
)

func mustTolerance(t *testing.T, v float64) approx.Tolerance {
	t.Helper()
	tol, err := approx.NewTolerance(v)
	if err != nil {
		t.Fatalf("NewTolerance(%v) failed: %v", v, err)
	}
	return tol
}

// boxShell sweeps a unit square into a box shell.
func boxShell(t *testing.T) brep.Shell {
	t.Helper()
	square := sweep.PolygonSketch(brep.XYPlane(), []v2.Vec{
		{}, {X: 1}, {X: 1, Y: 1}, {Y: 1},
	})
	shell, err := sweep.SketchShell(square, brep.Color{}, sweep.Path{Vector: v3.Vec{Z: 1}})
	if err != nil {
		t.Fatalf("SketchShell failed: %v", err)
	}
	return shell
}

// cylinderShell sweeps a circle into a cylinder shell.
func cylinderShell(t *testing.T, radius, height float64) brep.Shell {
	t.Helper()
	circle, err := sweep.CircleSketch(brep.XYPlane(), v2.Vec{}, radius)
	if err != nil {
		t.Fatalf("CircleSketch failed: %v", err)
	}
	shell, err := sweep.SketchShell(circle, brep.Color{}, sweep.Path{Vector: v3.Vec{Z: height}})
	if err != nil {
		t.Fatalf("SketchShell failed: %v", err)
	}
	return shell
}

func TestNewTolerance(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"positive", 0.1, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := approx.NewTolerance(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTolerance(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestShellRejectsInvalidTolerance(t *testing.T) {
	if _, err := approx.Shell(boxShell(t), 0); err == nil {
		t.Fatal("expected error for zero tolerance")
	}
}

func TestEdgeApproxLineIsJustEndpoints(t *testing.T) {
	e := brep.LineSegment(brep.XYPlane(), v2.Vec{}, v2.Vec{X: 1})

	ea := approx.Edge(e, mustTolerance(t, 0.01), approx.NewCache())
	if len(ea.Points) != 2 {
		t.Fatalf("line approximation has %d points, want 2", len(ea.Points))
	}
	if ea.Points[0] != e.Vertices[0].Global.Position {
		t.Error("first point is not the exact start position")
	}
	if ea.Points[1] != e.Vertices[1].Global.Position {
		t.Error("last point is not the exact end position")
	}
}

func TestEdgeApproxCircleWithinTolerance(t *testing.T) {
	const radius, tolerance = 2.0, 0.05
	e, err := brep.CircleEdge(brep.XYPlane(), v2.Vec{}, radius)
	if err != nil {
		t.Fatalf("CircleEdge failed: %v", err)
	}

	ea := approx.Edge(e, mustTolerance(t, tolerance), approx.NewCache())
	if len(ea.Points) < 4 {
		t.Fatalf("circle approximation has only %d points", len(ea.Points))
	}

	// Every sampled point lies on the circle, and no chord midpoint
	// deviates from the arc by more than the tolerance.
	for i, p := range ea.Points {
		r := math.Hypot(p.X, p.Y)
		if math.Abs(r-radius) > 1e-9 {
			t.Errorf("point %d at radius %v, want %v", i, r, radius)
		}
	}
	for i := 0; i+1 < len(ea.Points); i++ {
		mid := ea.Points[i].Add(ea.Points[i+1]).MulScalar(0.5)
		deviation := radius - math.Hypot(mid.X, mid.Y)
		if deviation > tolerance {
			t.Errorf("chord %d deviates by %v, tolerance %v", i, deviation, tolerance)
		}
	}
}

func TestCycleApproxSharesEndpointsExactly(t *testing.T) {
	shell := boxShell(t)
	tol := mustTolerance(t, 0.1)
	cache := approx.NewCache()

	for fi, f := range shell.Faces {
		cycle := f.Cycle
		ca := approx.Cycle(cycle, tol, cache)

		// Each edge contributed its first point; the dropped last points
		// are exactly the next edge's first. Walk the edges again and
		// check the stitching is bit-identical.
		var offset int
		for i, e := range cycle.Edges {
			ea := approx.Edge(e, tol, cache)
			if ca.Points[offset] != ea.Points[0] {
				t.Errorf("face %d edge %d: cycle point differs from edge start", fi, i)
			}
			next := cycle.Edges[(i+1)%len(cycle.Edges)]
			nextStart := approx.Edge(next, tol, cache).Points[0]
			if ea.Points[len(ea.Points)-1] != nextStart {
				t.Errorf("face %d edge %d: end not bit-identical to next start", fi, i)
			}
			offset += len(ea.Points) - 1
		}
	}
}

func TestShellApproxDeterministic(t *testing.T) {
	shell := cylinderShell(t, 1, 2)
	tol := mustTolerance(t, 0.01)

	// Two traversals with separate caches must match point for point.
	first, err := approx.Shell(shell, tol)
	if err != nil {
		t.Fatalf("Shell failed: %v", err)
	}
	second, err := approx.Shell(shell, tol)
	if err != nil {
		t.Fatalf("Shell failed: %v", err)
	}

	assertShellApproxEqual(t, first, second)
}

func TestShellParallelMatchesSequential(t *testing.T) {
	shell := cylinderShell(t, 1.5, 3)
	tol := mustTolerance(t, 0.005)

	sequential, err := approx.Shell(shell, tol)
	if err != nil {
		t.Fatalf("Shell failed: %v", err)
	}
	parallel, err := approx.ShellParallel(shell, tol)
	if err != nil {
		t.Fatalf("ShellParallel failed: %v", err)
	}

	assertShellApproxEqual(t, sequential, parallel)
}

func TestShellApproxDedupsIdenticalFaces(t *testing.T) {
	// A zero-length sweep collapses the two caps onto each other; their
	// tessellations dedup to one.
	square := sweep.PolygonSketch(brep.XYPlane(), []v2.Vec{
		{}, {X: 1}, {X: 1, Y: 1}, {Y: 1},
	})
	shell, err := sweep.SketchShell(square, brep.Color{}, sweep.Path{})
	if err != nil {
		t.Fatalf("SketchShell failed: %v", err)
	}

	sa, err := approx.Shell(shell, mustTolerance(t, 0.1))
	if err != nil {
		t.Fatalf("Shell failed: %v", err)
	}
	if len(sa.Faces) >= len(shell.Faces)+2 {
		t.Errorf("expected dedup to drop coincident caps, got %d face approximations", len(sa.Faces))
	}
}

func TestSharedEdgeTessellatedOnce(t *testing.T) {
	// Every boundary circle of the cylinder is shared between the side
	// face and a cap; the cache must hold one entry per distinct edge,
	// not one per (face, edge) pair.
	shell := cylinderShell(t, 1, 2)
	tol := mustTolerance(t, 0.01)
	cache := approx.NewCache()

	for _, f := range shell.Faces {
		approx.Face(f, tol, cache)
	}

	distinct := make(map[string]struct{})
	for _, f := range shell.Faces {
		for _, e := range f.Cycle.Edges {
			distinct[brep.KeyGlobalEdge(e.Global)] = struct{}{}
		}
	}
	if cache.Len() != len(distinct) {
		t.Errorf("cache holds %d entries, want %d distinct edges", cache.Len(), len(distinct))
	}
}

func TestFaceApproxCurvedSideCarriesRows(t *testing.T) {
	shell := cylinderShell(t, 1, 2)
	tol := mustTolerance(t, 0.01)
	cache := approx.NewCache()

	sides := 0
	for _, f := range shell.Faces {
		fa := approx.Face(f, tol, cache)
		if len(fa.Rows[0]) == 0 {
			continue
		}
		sides++

		bottom, top := fa.Rows[0], fa.Rows[1]
		if len(bottom) != len(top) {
			t.Fatalf("row lengths differ: %d vs %d", len(bottom), len(top))
		}
		// Rows run in the same direction: each top point sits exactly
		// one sweep path above its bottom partner.
		for i := range bottom {
			want := bottom[i].Add(v3.Vec{Z: 2})
			if math.Abs(top[i].X-want.X) > 1e-9 ||
				math.Abs(top[i].Y-want.Y) > 1e-9 ||
				math.Abs(top[i].Z-want.Z) > 1e-9 {
				t.Fatalf("row point %d: top %v is not bottom + path %v", i, top[i], want)
			}
		}
	}
	if sides != 1 {
		t.Errorf("expected 1 face with boundary rows (the side face), got %d", sides)
	}

	// Planar faces never carry rows.
	for _, f := range boxShell(t).Faces {
		fa := approx.Face(f, tol, cache)
		if len(fa.Rows[0]) != 0 {
			t.Error("planar face should not carry boundary rows")
		}
	}
}

func assertShellApproxEqual(t *testing.T, a, b approx.ShellApprox) {
	t.Helper()
	if len(a.Faces) != len(b.Faces) {
		t.Fatalf("face counts differ: %d vs %d", len(a.Faces), len(b.Faces))
	}
	for i := range a.Faces {
		pa := a.Faces[i].Exterior.Points
		pb := b.Faces[i].Exterior.Points
		if len(pa) != len(pb) {
			t.Fatalf("face %d point counts differ: %d vs %d", i, len(pa), len(pb))
		}
		for j := range pa {
			if pa[j] != pb[j] {
				t.Fatalf("face %d point %d differs: %v vs %v", i, j, pa[j], pb[j])
			}
		}
	}
}
