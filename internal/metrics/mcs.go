package metrics

import (
	"github.com/planqa/aperture/internal/aperture"
	"github.com/planqa/aperture/internal/mlc"
)

// ModulationComplexity is the McNiven modulation complexity score (McNiven
// et al., Med Phys 2010, 37:505-15): the product of the leaf-sequence
// variability (LSV) and the aperture-area variability (AAV) per control
// point. Values fall in (0, 1]; 1 means every segment is as large and as
// regular as the beam allows, smaller values mean heavier modulation.
// Leaves positioned under the jaws are not considered.
type ModulationComplexity struct{}

func (ModulationComplexity) Name() string { return "mcs" }

func (ModulationComplexity) Unit(string) string { return "dimensionless" }

func (ModulationComplexity) Values(apertures []*aperture.Aperture) []float64 {
	norm := maxApertureExtent(apertures)

	values := make([]float64, len(apertures))
	for i, ap := range apertures {
		var gapSum float64
		for _, lp := range ap.LeafPairs {
			if lp.IsOpen() {
				gapSum += lp.FieldSize()
			}
		}
		aav := divisionOrZero(gapSum, norm)
		values[i] = leafSequenceVariability(ap) * aav
	}
	return values
}

// maxApertureExtent is the AAV normalization: for every leaf pair that opens
// anywhere in the beam, the widest span its banks reach across all control
// points, summed over pairs.
func maxApertureExtent(apertures []*aperture.Aperture) float64 {
	if len(apertures) == 0 {
		return 0
	}

	n := len(apertures[0].LeafPairs)
	var norm float64
	for i := 0; i < n; i++ {
		var minLeft, maxRight float64
		seen := false
		for _, ap := range apertures {
			if i >= len(ap.LeafPairs) {
				continue
			}
			lp := ap.LeafPairs[i]
			if !lp.IsOpen() {
				continue
			}
			if !seen || lp.Position.Left < minLeft {
				minLeft = lp.Position.Left
			}
			if !seen || lp.Position.Right > maxRight {
				maxRight = lp.Position.Right
			}
			seen = true
		}
		if seen {
			norm += maxRight - minLeft
		}
	}
	return norm
}

// leafSequenceVariability scores how much adjacent open leaves differ in
// position, per bank, normalized by the bank's positional spread. A bank
// whose open leaves are perfectly aligned scores 1.
func leafSequenceVariability(ap *aperture.Aperture) float64 {
	var open []mlc.LeafPair
	for _, lp := range ap.LeafPairs {
		if lp.IsOpen() {
			open = append(open, lp)
		}
	}
	if len(open) == 0 {
		return 0
	}

	lefts := make([]float64, len(open))
	rights := make([]float64, len(open))
	for i, lp := range open {
		lefts[i] = lp.Position.Left
		rights[i] = lp.Position.Right
	}

	return bankVariability(lefts) * bankVariability(rights)
}

func bankVariability(pos []float64) float64 {
	if len(pos) < 2 {
		return 1
	}

	minPos, maxPos := pos[0], pos[0]
	for _, p := range pos[1:] {
		if p < minPos {
			minPos = p
		}
		if p > maxPos {
			maxPos = p
		}
	}
	spread := maxPos - minPos
	if spread == 0 {
		// All open leaves aligned: no variability.
		return 1
	}

	var sum float64
	for i := 0; i < len(pos)-1; i++ {
		diff := pos[i+1] - pos[i]
		if diff < 0 {
			diff = -diff
		}
		sum += spread - diff
	}
	return sum / (float64(len(pos)-1) * spread)
}
