package engine

import (
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(sweep sq :along path)`,
			expect: `(sweep sq "__kw_along" path)`,
		},
		{
			name:   "multiple keywords",
			input:  `(sweep sq :along path :color red)`,
			expect: `(sweep sq "__kw_along" path "__kw_color" red)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:swept-along`,
			expect: `"__kw_swept-along"`,
		},
		{
			name:   "escaped quote in string",
			input:  `"say \"hi\" :kw"`,
			expect: `"say \"hi\" :kw"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Swept box test
// ---------------------------------------------------------------------------

func TestSweepBuiltinBox(t *testing.T) {
	eng := NewEngine()

	source := `
(def sq (polygon 0 0 400 0 400 200 0 200))
(sweep sq :along (vec3 0 0 19) :color (color 160 120 80))
`
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(res.Shells) != 1 {
		t.Fatalf("expected 1 shell, got %d", len(res.Shells))
	}

	shell := res.Shells[0]
	if len(shell.Faces) != 6 {
		t.Fatalf("expected 6 faces, got %d", len(shell.Faces))
	}

	// The named color lands on the side faces.
	want := [4]uint8{160, 120, 80, 255}
	colored := 0
	for _, f := range shell.Faces {
		if f.Color == want {
			colored++
		}
	}
	if colored == 0 {
		t.Error("expected at least one face carrying the sweep color")
	}
}

// ---------------------------------------------------------------------------
// Variable reference test
// ---------------------------------------------------------------------------

func TestVariableReference(t *testing.T) {
	eng := NewEngine()

	source := `
(def height 19)
(def sq (polygon 0 0 10 0 10 10 0 10))
(sweep sq :along (vec3 0 0 height))
`
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(res.Shells) != 1 {
		t.Fatalf("expected 1 shell, got %d", len(res.Shells))
	}

	// Find the top cap at z = 19.
	found := false
	for _, f := range res.Shells[0].Faces {
		for _, e := range f.Cycle.Edges {
			if e.Vertices[0].Global.Position.Z == 19 {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected geometry at z=19 (height from variable)")
	}
}

// ---------------------------------------------------------------------------
// Circle sketch test
// ---------------------------------------------------------------------------

func TestCircleBuiltin(t *testing.T) {
	eng := NewEngine()

	source := `(sweep (circle 7.5) :along (vec3 0 0 3))`
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(res.Shells) != 1 {
		t.Fatalf("expected 1 shell, got %d", len(res.Shells))
	}
	if got := len(res.Shells[0].Faces); got != 3 {
		t.Errorf("swept circle should have 3 faces (side plus caps), got %d", got)
	}
}

// ---------------------------------------------------------------------------
// Tessellation chaining test
// ---------------------------------------------------------------------------

func TestTessellateBuiltinMeshArea(t *testing.T) {
	eng := NewEngine()

	source := `
(def box (sweep (polygon 0 0 2 0 2 3 0 3) :along (vec3 0 0 4)))
(tessellate box 0.01)
`
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(res.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(res.Meshes))
	}

	want := 2.0 * (2*3 + 3*4 + 2*4)
	if got := res.Meshes[0].Area(); math.Abs(got-want) > 1e-3 {
		t.Errorf("mesh area = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// Multiple sweeps accumulate
// ---------------------------------------------------------------------------

func TestMultipleSweepsAccumulate(t *testing.T) {
	eng := NewEngine()

	source := `
(def sq (polygon 0 0 1 0 1 1 0 1))
(sweep sq :along (vec3 0 0 1))
(sweep sq :along (vec3 0 0 2))
(sweep (circle 1) :along (vec3 0 0 1))
`
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(res.Shells) != 3 {
		t.Errorf("expected 3 shells, got %d", len(res.Shells))
	}
}

// ---------------------------------------------------------------------------
// Default color applies when :color is omitted
// ---------------------------------------------------------------------------

func TestSweepDefaultColor(t *testing.T) {
	eng := NewEngine()

	source := `(sweep (polygon 0 0 1 0 1 1 0 1) :along (vec3 0 0 1))`
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(res.Shells) != 1 {
		t.Fatalf("expected 1 shell, got %d", len(res.Shells))
	}
	found := false
	for _, f := range res.Shells[0].Faces {
		if f.Color == defaultColor {
			found = true
		}
	}
	if !found {
		t.Error("expected faces to carry the default color")
	}
}

// ---------------------------------------------------------------------------
// Color alpha defaults to 255
// ---------------------------------------------------------------------------

func TestColorAlphaDefault(t *testing.T) {
	eng := NewEngine()

	source := `(sweep (polygon 0 0 1 0 1 1 0 1) :along (vec3 0 0 1) :color (color 10 20 30))`
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	want := [4]uint8{10, 20, 30, 255}
	found := false
	for _, f := range res.Shells[0].Faces {
		if f.Color == want {
			found = true
		}
	}
	if !found {
		t.Error("expected a face with alpha defaulted to 255")
	}
}

// ---------------------------------------------------------------------------
// Keyword argument parsing unit tests
// ---------------------------------------------------------------------------

func TestParseArgsSeparatesKeywords(t *testing.T) {
	source := `(sweep sq :along p :color c)`
	pre := preprocessSource(source)
	if pre != `(sweep sq "__kw_along" p "__kw_color" c)` {
		t.Fatalf("unexpected preprocessing: %q", pre)
	}
}

// ---------------------------------------------------------------------------
// Empty source produces empty result (regression)
// ---------------------------------------------------------------------------

func TestEmptySourceStillWorks(t *testing.T) {
	eng := NewEngine()
	res, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if res == nil {
		t.Fatal("expected non-nil result")
	}
	if len(res.Shells) != 0 {
		t.Errorf("expected no shells, got %d", len(res.Shells))
	}
}

// ---------------------------------------------------------------------------
// Plain arithmetic still works (regression)
// ---------------------------------------------------------------------------

func TestArithmeticStillWorks(t *testing.T) {
	eng := NewEngine()
	res, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if res == nil {
		t.Fatal("expected non-nil result")
	}
}
