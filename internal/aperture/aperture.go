// Package aperture derives the open beam shape of one control point from
// its leaf-bank positions and jaw limits, and exposes the aggregate shape
// measures (area, side perimeter, per-pair areas) the metric strategies
// consume. An Aperture is built once per control point and never mutated.
package aperture

import (
	"github.com/planqa/aperture/internal/domain"
	"github.com/planqa/aperture/internal/mlc"
)

// Aperture is the derived open-shape descriptor of a single control point.
type Aperture struct {
	Jaw         mlc.Jaw
	LeafPairs   []mlc.LeafPair
	GantryAngle float64

	eps float64
}

// New assembles an aperture from raw bank positions, per-pair widths and the
// jaw in effect. Callers must have checked that bankA, bankB and widths have
// equal lengths; FromBeam does this and reports a GeometryError otherwise.
func New(bankA, bankB, widths []float64, jaw mlc.Jaw, gantryAngle float64, cfg domain.Config) *Aperture {
	tops := mlc.LeafTops(widths)
	pairs := make([]mlc.LeafPair, len(widths))
	for i := range widths {
		pairs[i] = mlc.NewLeafPair(bankA[i], bankB[i], widths[i], tops[i], jaw, cfg.Epsilon)
	}
	return &Aperture{Jaw: jaw, LeafPairs: pairs, GantryAngle: gantryAngle, eps: cfg.Epsilon}
}

// Area returns the total open area: the sum of jaw-clipped gap length times
// open leaf width over all pairs. A fully closed aperture has area 0; that
// is a valid state, not an error.
func (a *Aperture) Area() float64 {
	var area float64
	for _, lp := range a.LeafPairs {
		area += lp.FieldArea()
	}
	return area
}

// LeafPairAreas returns the open area of every pair, index-aligned with the
// beam's leaf geometry. Closed pairs report 0.
func (a *Aperture) LeafPairAreas() []float64 {
	areas := make([]float64, len(a.LeafPairs))
	for i, lp := range a.LeafPairs {
		areas[i] = lp.FieldArea()
	}
	return areas
}

// OpenPairCount returns the number of pairs exposing a positive gap.
func (a *Aperture) OpenPairCount() int {
	n := 0
	for _, lp := range a.LeafPairs {
		if lp.IsOpen() {
			n++
		}
	}
	return n
}

// HasOpenLeafBehindJaws reports whether any open pair has a leaf tip
// shielded by the X jaws. The aperture is still valid; the service layer
// logs a warning so the plan data can be reviewed upstream.
func (a *Aperture) HasOpenLeafBehindJaws() bool {
	for _, lp := range a.LeafPairs {
		if lp.IsOpenBehindJaw() {
			return true
		}
	}
	return false
}

// SidePerimeter returns the summed length of the exposed leaf-side edges:
// the top cap of the first pair, one edge term per adjacent pair, and the
// bottom cap of the last pair. Together with the leaf-tip edges this is the
// "circumference" of ratio metrics; irregular silhouettes expose more side
// edge for the same area.
func (a *Aperture) SidePerimeter() float64 {
	if len(a.LeafPairs) == 0 {
		return 0
	}

	perimeter := a.LeafPairs[0].FieldSize()
	for i := 1; i < len(a.LeafPairs); i++ {
		perimeter += a.sideEdge(a.LeafPairs[i-1], a.LeafPairs[i])
	}
	perimeter += a.LeafPairs[len(a.LeafPairs)-1].FieldSize()

	return perimeter
}

// sideEdge returns the exposed edge length between two vertically adjacent
// pairs. An edge hidden by the jaw contributes nothing, an edge where one
// side is jaw-closed contributes the other side's full gap, disjoint gaps
// contribute both, and overlapping gaps contribute the clipped left/right
// offsets.
func (a *Aperture) sideEdge(top, bottom mlc.LeafPair) float64 {
	switch {
	case top.IsOutsideJaw() && bottom.IsOutsideJaw():
		return 0
	case a.Jaw.Top-top.Position.Bottom <= a.eps:
		// Jaw top at or below the upper pair: only the lower pair's edge shows.
		return bottom.FieldSize()
	case bottom.Position.Top-a.Jaw.Bottom <= a.eps:
		// Jaw bottom at or above the lower pair: only the upper pair's edge shows.
		return top.FieldSize()
	case bottom.Position.Left > top.Position.Right || bottom.Position.Right < top.Position.Left:
		// Disjoint gaps: both full edges are exposed.
		return top.FieldSize() + bottom.FieldSize()
	}

	topLeft := clampLow(top.Position.Left, a.Jaw.Left)
	bottomLeft := clampLow(bottom.Position.Left, a.Jaw.Left)
	topRight := clampHigh(top.Position.Right, a.Jaw.Right)
	bottomRight := clampHigh(bottom.Position.Right, a.Jaw.Right)

	return abs(topLeft-bottomLeft) + abs(topRight-bottomRight)
}

func clampLow(v, low float64) float64 {
	if v < low {
		return low
	}
	return v
}

func clampHigh(v, high float64) float64 {
	if v > high {
		return high
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
