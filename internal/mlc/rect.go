// Package mlc models the beam-limiting hardware of a linac head: the
// rectangular jaws and the parallel leaf pairs of a multi-leaf collimator.
// Coordinates follow IEC 61217 projected onto the isocenter plane: leaves
// travel along X, pairs stack along Y, and Top > Bottom for every rectangle.
package mlc

import "fmt"

// Rect is a rectangular extent used for both jaw and leaf-pair positions,
// relative to the isocenter.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r Rect) String() string {
	return fmt.Sprintf("left: %.1f top: %.1f right: %.1f bottom: %.1f",
		r.Left, r.Top, r.Right, r.Bottom)
}

// Jaw is the rectangular collimator clipping the overall field extent,
// independent of the MLC.
type Jaw struct {
	Rect
}

// OpenJaw returns a jaw retracted far enough to never clip a clinical
// field (±400 mm covers every commercial MLC).
func OpenJaw() Jaw {
	return Jaw{Rect{Left: -400, Top: 400, Right: 400, Bottom: -400}}
}
