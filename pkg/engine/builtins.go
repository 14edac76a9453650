package engine

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/burl/pkg/approx"
	"github.com/chazu/burl/pkg/brep"
	"github.com/chazu/burl/pkg/mesh"
	"github.com/chazu/burl/pkg/sweep"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource converts :keyword tokens to recognizable string literals
// (:along -> "__kw_along") before handing source to zygomys, so builtins can
// take keyword arguments without registering keyword symbols as globals. It
// also rewrites Lisp ; comments to the // form zygomys understands. String
// literal contents are never touched.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals verbatim.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Lisp line comments become // comments, which zygomys accepts.
		// The comment body is copied verbatim, keywords included.
		if b[i] == ';' {
			for i < len(b) && b[i] == ';' {
				i++
			}
			result = append(result, '/', '/')
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Keyword token: :name -> "__kw_name"
		if b[i] == ':' && i+1 < len(b) && isKWChar(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, kwPrefix...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isKWChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '-' || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a 3-D vector.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpColor wraps a face color.
type sexpColor struct {
	color brep.Color
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(color %d %d %d %d)", c.color[0], c.color[1], c.color[2], c.color[3])
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// sexpSketch wraps a closed sketch so it can be passed from `polygon` or
// `circle` into `sweep`.
type sexpSketch struct {
	sketch sweep.Sketch
}

func (s *sexpSketch) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(sketch %d edges)", len(s.sketch.Edges))
}
func (s *sexpSketch) Type() *zygo.RegisteredType { return nil }

// sexpShell wraps a swept shell.
type sexpShell struct {
	shell brep.Shell
}

func (s *sexpShell) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shell %d faces)", len(s.shell.Faces))
}
func (s *sexpShell) Type() *zygo.RegisteredType { return nil }

// sexpMesh wraps a tessellated mesh.
type sexpMesh struct {
	mesh *mesh.Mesh
}

func (m *sexpMesh) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mesh %d triangles)", m.mesh.TriangleCount())
}
func (m *sexpMesh) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toColor extracts a color from a sexpColor.
func toColor(s zygo.Sexp) (brep.Color, error) {
	if c, ok := s.(*sexpColor); ok {
		return c.color, nil
	}
	return brep.Color{}, fmt.Errorf("expected color, got %T (%s)", s, s.SexpString(nil))
}

// toSketch extracts a sketch from a sexpSketch.
func toSketch(s zygo.Sexp) (sweep.Sketch, error) {
	if sk, ok := s.(*sexpSketch); ok {
		return sk.sketch, nil
	}
	return sweep.Sketch{}, fmt.Errorf("expected sketch, got %T (%s)", s, s.SexpString(nil))
}

// toShell extracts a shell from a sexpShell.
func toShell(s zygo.Sexp) (brep.Shell, error) {
	if sh, ok := s.(*sexpShell); ok {
		return sh.shell, nil
	}
	return brep.Shell{}, fmt.Errorf("expected shell, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// defaultColor is used when a sweep does not name a color.
var defaultColor = brep.Color{255, 0, 0, 255}

// registerBuiltins installs the burl DSL builtins into a zygomys
// environment. The builtins record every swept shell and tessellated mesh
// into the provided Result during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, result *Result) {

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires 3 numbers, got %d args", len(args))
		}
		var parts [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
			}
			parts[i] = f
		}
		return &sexpVec3{vec: v3.Vec{X: parts[0], Y: parts[1], Z: parts[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (color r g b) or (color r g b a), components 0-255
	// -----------------------------------------------------------------------
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 && len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("color requires 3 or 4 numbers, got %d args", len(args))
		}
		c := brep.Color{0, 0, 0, 255}
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("color: %w", err)
			}
			if f < 0 || f > 255 {
				return zygo.SexpNull, fmt.Errorf("color: component %d out of range [0,255]: %v", i, f)
			}
			c[i] = uint8(f)
		}
		return &sexpColor{color: c}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon x1 y1 x2 y2 x3 y3 ...) — closed sketch in the xy-plane
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 6 || len(args)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least 3 x,y pairs, got %d args", len(args))
		}
		points := make([]v2.Vec, 0, len(args)/2)
		for i := 0; i < len(args); i += 2 {
			x, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: point %d x: %w", i/2, err)
			}
			y, err := toFloat64(args[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: point %d y: %w", i/2, err)
			}
			points = append(points, v2.Vec{X: x, Y: y})
		}
		sketch := sweep.PolygonSketch(brep.XYPlane(), points)
		return &sexpSketch{sketch: sketch}, nil
	})

	// -----------------------------------------------------------------------
	// (circle radius) — circular sketch in the xy-plane, centered at origin
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("circle requires a radius, got %d args", len(args))
		}
		radius, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
		}
		if radius <= 0 {
			return zygo.SexpNull, fmt.Errorf("circle: radius must be positive, got %v", radius)
		}
		sketch, err := sweep.CircleSketch(brep.XYPlane(), v2.Vec{}, radius)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		return &sexpSketch{sketch: sketch}, nil
	})

	// -----------------------------------------------------------------------
	// (sweep sketch :along (vec3 0 0 10) :color (color 200 150 90))
	// -----------------------------------------------------------------------
	env.AddFunction("sweep", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("sweep requires a sketch argument")
		}
		sketch, err := toSketch(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sweep: %w", err)
		}

		along, ok := pa.kw["along"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("sweep requires :along (vec3 ...)")
		}
		path, err := toVec3(along)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sweep: along: %w", err)
		}

		color := defaultColor
		if v, ok := pa.kw["color"]; ok {
			color, err = toColor(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sweep: color: %w", err)
			}
		}

		shell, err := sweep.SketchShell(sketch, color, sweep.Path{Vector: path})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sweep: %w", err)
		}

		result.Shells = append(result.Shells, shell)
		return &sexpShell{shell: shell}, nil
	})

	// -----------------------------------------------------------------------
	// (tessellate shell tolerance)
	// -----------------------------------------------------------------------
	env.AddFunction("tessellate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("tessellate requires a shell and a tolerance")
		}
		shell, err := toShell(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tessellate: %w", err)
		}
		tolValue, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tessellate: tolerance: %w", err)
		}
		tol, err := approx.NewTolerance(tolValue)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tessellate: %w", err)
		}

		sa, err := approx.Shell(shell, tol)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tessellate: %w", err)
		}

		m := mesh.FromShell(sa)
		result.Meshes = append(result.Meshes, m)
		return &sexpMesh{mesh: m}, nil
	})
}
