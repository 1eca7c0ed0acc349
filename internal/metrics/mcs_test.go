package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planqa/aperture/internal/aperture"
	"github.com/planqa/aperture/internal/domain"
	"github.com/planqa/aperture/internal/mlc"
)

func rectangularAperture(lefts, rights []float64) *aperture.Aperture {
	widths := make([]float64, len(lefts))
	for i := range widths {
		widths[i] = 10
	}
	return aperture.New(lefts, rights, widths, mlc.OpenJaw(), 0, domain.DefaultConfig())
}

func TestModulationComplexity_StaticRectangleScoresOne(t *testing.T) {
	ap := rectangularAperture(
		[]float64{-50, -50, -50},
		[]float64{50, 50, 50},
	)

	values := ModulationComplexity{}.Values([]*aperture.Aperture{ap, ap})

	require.Len(t, values, 2)
	assert.InDelta(t, 1.0, values[0], 1e-12)
	assert.InDelta(t, 1.0, values[1], 1e-12)
}

func TestModulationComplexity_StaggeredLeavesScoreBelowOne(t *testing.T) {
	ap := rectangularAperture(
		[]float64{-50, -30, -10},
		[]float64{10, 30, 50},
	)

	values := ModulationComplexity{}.Values([]*aperture.Aperture{ap})

	require.Len(t, values, 1)
	assert.Greater(t, values[0], 0.0)
	assert.Less(t, values[0], 1.0)
}

func TestModulationComplexity_SmallSegmentLowersAAV(t *testing.T) {
	wide := rectangularAperture([]float64{-50, -50}, []float64{50, 50})
	narrow := rectangularAperture([]float64{-10, -10}, []float64{10, 10})

	values := ModulationComplexity{}.Values([]*aperture.Aperture{wide, narrow})

	// The wide segment sets the normalization, so it scores 1; the narrow
	// one exposes a fifth of the reachable extent.
	assert.InDelta(t, 1.0, values[0], 1e-12)
	assert.InDelta(t, 0.2, values[1], 1e-12)
}

func TestModulationComplexity_ClosedApertureScoresZero(t *testing.T) {
	closed := rectangularAperture([]float64{0, 0}, []float64{0, 0})
	open := rectangularAperture([]float64{-50, -50}, []float64{50, 50})

	values := ModulationComplexity{}.Values([]*aperture.Aperture{open, closed})

	assert.Equal(t, 0.0, values[1])
}
