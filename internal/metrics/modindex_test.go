package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planqa/aperture/internal/aperture"
	"github.com/planqa/aperture/internal/domain"
	"github.com/planqa/aperture/internal/testutil"
)

func threeCPBeam(opts ...testutil.BeamOption) *domain.Beam {
	base := []testutil.BeamOption{testutil.WithControlPoints(
		testutil.NewTestCP(10, -50, 50, testutil.WithWeight(0)),
		testutil.NewTestCP(10, -50, 50, testutil.WithWeight(0.5)),
		testutil.NewTestCP(10, -50, 50, testutil.WithWeight(1)),
	)}
	return testutil.NewTestBeam("b1", append(base, opts...)...)
}

func TestModulationIndex_NeedsThreeControlPoints(t *testing.T) {
	b := testutil.NewTestBeam("b1") // two control points

	_, err := ModulationIndexForBeam(b, domain.DefaultConfig(), 1)
	var aggErr *AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Contains(t, aggErr.Reason, "3 control points")
}

func TestModulationIndex_StaticBeamIsZero(t *testing.T) {
	res, err := ModulationIndexForBeam(threeCPBeam(), domain.DefaultConfig(), 1)
	require.NoError(t, err)

	assert.InDelta(t, 0, res.Speed, 1e-9)
	assert.InDelta(t, 0, res.Acceleration, 1e-9)
	assert.InDelta(t, 0, res.Total, 1e-9)
}

func TestModulationIndex_MovingLeavesScorePositive(t *testing.T) {
	b := testutil.NewTestBeam("b1", testutil.WithControlPoints(
		testutil.NewTestCP(10, -50, 50, testutil.WithWeight(0), testutil.WithGantry(180)),
		testutil.NewTestCP(10, -30, 30, testutil.WithWeight(0.3), testutil.WithGantry(200)),
		testutil.NewTestCP(10, -45, 20, testutil.WithWeight(0.5), testutil.WithGantry(230)),
		testutil.NewTestCP(10, -10, 40, testutil.WithWeight(1), testutil.WithGantry(250)),
	))

	res, err := ModulationIndexForBeam(b, domain.DefaultConfig(), 1)
	require.NoError(t, err)

	assert.Greater(t, res.Speed, 0.0)
	assert.Greater(t, res.Acceleration, 0.0)
	assert.GreaterOrEqual(t, res.Total, 0.0)
}

func TestModulationIndex_GeometryErrorPropagates(t *testing.T) {
	b := threeCPBeam(testutil.WithBoundaries([]float64{-10, 0, 10}))

	_, err := ModulationIndexForBeam(b, domain.DefaultConfig(), 1)
	var geomErr *aperture.GeometryError
	require.ErrorAs(t, err, &geomErr)
}
