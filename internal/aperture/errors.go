package aperture

import "fmt"

// GeometryError reports a malformed control point: mismatched leaf-bank
// lengths or missing jaw data. It indicates a defect in the upstream plan
// data, so it is propagated instead of being zeroed away, and it aborts the
// whole beam's computation.
type GeometryError struct {
	Beam         string
	ControlPoint int
	Reason       string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("beam %q control point %d: %s", e.Beam, e.ControlPoint, e.Reason)
}
