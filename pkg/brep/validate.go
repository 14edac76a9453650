package brep

import (
	"fmt"

	"github.com/chazu/burl/pkg/geom"
)

// ValidationSeverity indicates whether a validation finding makes the
// topology unusable or is merely advisory.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // broken topology
	SeverityWarning                           // degenerate but well-formed
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Face     int // index of the face in the shell, -1 if shell-level
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Face < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] face %d: %s", e.Severity, e.Face, e.Message)
}

// ValidateShell runs all structural checks on a shell and returns a slice of
// findings. An empty slice means the shell is valid. Degenerate geometry
// (zero-length edges, zero-area faces) is reported as a warning, not an
// error: it is legal output of a zero-length sweep and downstream consumers
// decide whether to reject it.
func ValidateShell(s Shell) []ValidationError {
	var errs []ValidationError
	for i, f := range s.Faces {
		for _, fe := range ValidateFace(f) {
			fe.Face = i
			errs = append(errs, fe)
		}
	}
	return errs
}

// ValidateFace checks one face: its cycle must be non-empty and closed by
// surface-local identity, every edge must live on the face's surface, and
// every vertex's local coordinates must reproduce its stored global
// position through the owning parametrizations.
func ValidateFace(f Face) []ValidationError {
	var errs []ValidationError

	if len(f.Cycle.Edges) == 0 {
		errs = append(errs, ValidationError{
			Face:     -1,
			Message:  "cycle has no edges",
			Severity: SeverityError,
		})
		return errs
	}

	if f.Cycle.Surface != f.Surface {
		errs = append(errs, ValidationError{
			Face:     -1,
			Message:  "cycle surface differs from face surface",
			Severity: SeverityError,
		})
	}

	for i, e := range f.Cycle.Edges {
		if e.Curve.Surface != f.Surface {
			errs = append(errs, ValidationError{
				Face:     -1,
				Message:  fmt.Sprintf("edge %d lies on a different surface", i),
				Severity: SeverityError,
			})
		}
		for k, v := range e.Vertices {
			errs = append(errs, validateVertex(v, i, k)...)
		}

		j := (i + 1) % len(f.Cycle.Edges)
		if e.Vertices[1].Surface != f.Cycle.Edges[j].Vertices[0].Surface {
			errs = append(errs, ValidationError{
				Face:     -1,
				Message:  fmt.Sprintf("edge %d does not connect to edge %d", i, j),
				Severity: SeverityError,
			})
		}

		// Coincident endpoints mean a zero-length edge, except on a
		// circle, where a closed edge shares its endpoints while
		// spanning a full arc.
		_, onCircle := e.Curve.Local.(geom.Circle2)
		if e.Vertices[0].Surface == e.Vertices[1].Surface &&
			(!onCircle || e.Vertices[0].T == e.Vertices[1].T) {
			errs = append(errs, ValidationError{
				Face:     -1,
				Message:  fmt.Sprintf("edge %d has zero length", i),
				Severity: SeverityWarning,
			})
		}
	}

	return errs
}

// validateVertex checks the local/global consistency of one vertex: its
// curve parameter must evaluate to its surface-local position, and that
// position must evaluate to its global position.
func validateVertex(v Vertex, edge, slot int) []ValidationError {
	var errs []ValidationError

	onCurve := v.Curve.Local.Point(v.T)
	if !geom.EqualWithin2(onCurve, v.Surface.Position, geom.Epsilon) {
		errs = append(errs, ValidationError{
			Face: -1,
			Message: fmt.Sprintf(
				"edge %d vertex %d: curve position %v does not match surface position %v",
				edge, slot, onCurve, v.Surface.Position),
			Severity: SeverityError,
		})
	}

	onSurface := v.Curve.Surface.Point(v.Surface.Position)
	if !geom.EqualWithin3(onSurface, v.Global.Position, geom.Epsilon) {
		errs = append(errs, ValidationError{
			Face: -1,
			Message: fmt.Sprintf(
				"edge %d vertex %d: surface position maps to %v, global form stores %v",
				edge, slot, onSurface, v.Global.Position),
			Severity: SeverityError,
		})
	}

	if v.Surface.Global != v.Global {
		errs = append(errs, ValidationError{
			Face: -1,
			Message: fmt.Sprintf(
				"edge %d vertex %d: surface form references a different global vertex",
				edge, slot),
			Severity: SeverityError,
		})
	}

	return errs
}
