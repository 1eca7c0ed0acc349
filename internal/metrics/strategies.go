package metrics

import (
	"math"

	"github.com/planqa/aperture/internal/aperture"
)

func init() {
	register(ComplexityIndex{})
	register(MeanLeafPairArea{})
	register(ApertureArea{})
	register(ApertureIrregularity{})
	register(ModulationComplexity{})
}

// ComplexityIndex is the circumference-over-area ratio, the primary
// modulation-complexity indicator: small apertures with irregular edges
// score higher. Unit is inverse length.
type ComplexityIndex struct{}

func (ComplexityIndex) Name() string { return "ci" }

func (ComplexityIndex) Unit(lengthUnit string) string { return lengthUnit + "^-1" }

func (ComplexityIndex) Values(apertures []*aperture.Aperture) []float64 {
	values := make([]float64, len(apertures))
	for i, ap := range apertures {
		values[i] = divisionOrZero(ap.SidePerimeter(), ap.Area())
	}
	return values
}

// MeanLeafPairArea is the mean open area across the open leaf pairs of each
// aperture. Closed pairs are excluded from the mean; a fully closed aperture
// reports 0.
type MeanLeafPairArea struct{}

func (MeanLeafPairArea) Name() string { return "mean-area" }

func (MeanLeafPairArea) Unit(lengthUnit string) string { return lengthUnit + "^2" }

func (MeanLeafPairArea) Values(apertures []*aperture.Aperture) []float64 {
	values := make([]float64, len(apertures))
	for i, ap := range apertures {
		var sum float64
		var n int
		for _, area := range ap.LeafPairAreas() {
			if area != 0 {
				sum += area
				n++
			}
		}
		values[i] = divisionOrZero(sum, float64(n))
	}
	return values
}

// ApertureArea is the total open area of each aperture, used as a plan-level
// single-number size summary.
type ApertureArea struct{}

func (ApertureArea) Name() string { return "area" }

func (ApertureArea) Unit(lengthUnit string) string { return lengthUnit + "^2" }

func (ApertureArea) Values(apertures []*aperture.Aperture) []float64 {
	values := make([]float64, len(apertures))
	for i, ap := range apertures {
		values[i] = ap.Area()
	}
	return values
}

// ApertureIrregularity normalizes the squared side perimeter against the
// perimeter of the circle with the same area (Du et al., Med Phys 2014,
// 41:021716): sidePerimeter^2 / (4*pi*area). Dimensionless; 1 for the
// equivalent circle, growing with silhouette irregularity; 0 for a closed
// aperture.
type ApertureIrregularity struct{}

func (ApertureIrregularity) Name() string { return "irregularity" }

func (ApertureIrregularity) Unit(string) string { return "dimensionless" }

func (ApertureIrregularity) Values(apertures []*aperture.Aperture) []float64 {
	values := make([]float64, len(apertures))
	for i, ap := range apertures {
		p := ap.SidePerimeter()
		values[i] = divisionOrZero(p*p, 4*math.Pi*ap.Area())
	}
	return values
}
