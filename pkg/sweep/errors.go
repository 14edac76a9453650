package sweep

import "fmt"

// InvalidSweepInputError reports a contract violation: the caller supplied a
// vertex/surface/path combination that breaks the parametrization convention
// (the vertex's curve must be the surface's u curve, and the path must be
// the surface's v path). This indicates a bug in the calling code, not bad
// data, and is never recoverable by retrying.
type InvalidSweepInputError struct {
	Reason string
}

func (e InvalidSweepInputError) Error() string {
	return fmt.Sprintf("invalid sweep input: %s", e.Reason)
}

// InconsistentLoopError reports that the orientation pass could not stitch
// the four edges of a swept face into a closed loop. The cycle would be
// malformed, so it is never returned.
type InconsistentLoopError struct {
	Edge int // index of the edge that fails to connect to its successor
}

func (e InconsistentLoopError) Error() string {
	return fmt.Sprintf("inconsistent loop: edge %d does not connect to its successor", e.Edge)
}
