package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planqa/aperture/internal/aperture"
	"github.com/planqa/aperture/internal/domain"
	"github.com/planqa/aperture/internal/mlc"
)

func singlePairAperture(t *testing.T, left, right float64) []*aperture.Aperture {
	t.Helper()
	return []*aperture.Aperture{
		aperture.New([]float64{left}, []float64{right}, []float64{5}, mlc.OpenJaw(), 0, domain.DefaultConfig()),
	}
}

func closedAperture(t *testing.T) []*aperture.Aperture {
	t.Helper()
	return singlePairAperture(t, 0, 0)
}

func TestRegistry_KnownMetrics(t *testing.T) {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"area", "ci", "irregularity", "mcs", "mean-area"}, names)

	_, err := ByName("nope")
	assert.Error(t, err)

	s, err := ByName("ci")
	require.NoError(t, err)
	assert.Equal(t, "ci", s.Name())
}

func TestComplexityIndex_SinglePair(t *testing.T) {
	// Gap 10, width 5: area 50, perimeter 2*10 (top and bottom caps).
	values := ComplexityIndex{}.Values(singlePairAperture(t, -5, 5))

	require.Len(t, values, 1)
	assert.InDelta(t, 0.4, values[0], 1e-12)
	assert.Equal(t, "mm^-1", ComplexityIndex{}.Unit("mm"))
}

func TestComplexityIndex_ClosedApertureIsZero(t *testing.T) {
	values := ComplexityIndex{}.Values(closedAperture(t))
	assert.Equal(t, []float64{0}, values)
}

func TestApertureArea_SinglePair(t *testing.T) {
	values := ApertureArea{}.Values(singlePairAperture(t, -5, 5))
	assert.Equal(t, []float64{50}, values)
	assert.Equal(t, "mm^2", ApertureArea{}.Unit("mm"))
}

func TestMeanLeafPairArea_SkipsClosedPairs(t *testing.T) {
	// Pair 0 open with area 1000, pair 1 closed, pair 2 open with area 200.
	ap := aperture.New(
		[]float64{-50, 0, -10},
		[]float64{50, 0, 10},
		[]float64{10, 10, 10},
		mlc.OpenJaw(), 0, domain.DefaultConfig(),
	)

	values := MeanLeafPairArea{}.Values([]*aperture.Aperture{ap})
	assert.InDelta(t, 600.0, values[0], 1e-12)
}

func TestMeanLeafPairArea_ClosedApertureIsZero(t *testing.T) {
	values := MeanLeafPairArea{}.Values(closedAperture(t))
	assert.Equal(t, []float64{0}, values)
}

func TestApertureIrregularity_SinglePair(t *testing.T) {
	// perimeter 20, area 50: 400 / (4*pi*50) = 2/pi.
	values := ApertureIrregularity{}.Values(singlePairAperture(t, -5, 5))
	assert.InDelta(t, 2/math.Pi, values[0], 1e-12)
}

func TestApertureIrregularity_ClosedApertureIsZero(t *testing.T) {
	values := ApertureIrregularity{}.Values(closedAperture(t))
	assert.Equal(t, []float64{0}, values)
}
