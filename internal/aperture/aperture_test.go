package aperture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planqa/aperture/internal/domain"
	"github.com/planqa/aperture/internal/mlc"
)

func uniformBanks(pairs int, left, right float64) (bankA, bankB []float64) {
	bankA = make([]float64, pairs)
	bankB = make([]float64, pairs)
	for i := range bankA {
		bankA[i] = left
		bankB[i] = right
	}
	return bankA, bankB
}

func uniformWidths(pairs int, width float64) []float64 {
	widths := make([]float64, pairs)
	for i := range widths {
		widths[i] = width
	}
	return widths
}

func TestAperture_RectangularField(t *testing.T) {
	bankA, bankB := uniformBanks(10, -50, 50)
	ap := New(bankA, bankB, uniformWidths(10, 10), mlc.OpenJaw(), 0, domain.DefaultConfig())

	assert.Equal(t, 10000.0, ap.Area())
	assert.Equal(t, 200.0, ap.SidePerimeter())
	assert.Equal(t, 10, ap.OpenPairCount())
	assert.False(t, ap.HasOpenLeafBehindJaws())
}

func TestAperture_FullyClosed(t *testing.T) {
	bankA, bankB := uniformBanks(10, 0, 0)
	ap := New(bankA, bankB, uniformWidths(10, 10), mlc.OpenJaw(), 0, domain.DefaultConfig())

	assert.Equal(t, 0.0, ap.Area())
	assert.Equal(t, 0.0, ap.SidePerimeter())
	assert.Equal(t, 0, ap.OpenPairCount())
}

func TestAperture_LeafPairAreas(t *testing.T) {
	bankA := []float64{-50, 0, -10}
	bankB := []float64{50, 0, 10}
	ap := New(bankA, bankB, uniformWidths(3, 10), mlc.OpenJaw(), 0, domain.DefaultConfig())

	assert.Equal(t, []float64{1000, 0, 200}, ap.LeafPairAreas())
	assert.Equal(t, 2, ap.OpenPairCount())
}

func TestAperture_StaggeredPerimeter(t *testing.T) {
	// Two pairs, lower one shifted right by 10 on both sides: the step
	// exposes 10 on each side between the pairs.
	bankA := []float64{-50, -40}
	bankB := []float64{50, 60}
	ap := New(bankA, bankB, uniformWidths(2, 10), mlc.OpenJaw(), 0, domain.DefaultConfig())

	// 100 (top cap) + 10 + 10 (side steps) + 100 (bottom cap)
	assert.Equal(t, 220.0, ap.SidePerimeter())
}

func TestAperture_DisjointGapsExposeBothEdges(t *testing.T) {
	bankA := []float64{-50, 10}
	bankB := []float64{-10, 50}
	ap := New(bankA, bankB, uniformWidths(2, 10), mlc.OpenJaw(), 0, domain.DefaultConfig())

	// 40 + (40 + 40) + 40: both full tip gaps show between disjoint openings.
	assert.Equal(t, 160.0, ap.SidePerimeter())
}

func TestAperture_JawClosedPairDropsEdgeTerms(t *testing.T) {
	// Three pairs, jaw bottom at the top of the lowest pair: the lowest
	// pair is closed and the middle pair's bottom edge becomes the cap.
	jaw := mlc.Jaw{Rect: mlc.Rect{Left: -400, Top: 400, Right: 400, Bottom: -10}}
	bankA, bankB := uniformBanks(3, -50, 50)
	ap := New(bankA, bankB, uniformWidths(3, 10), jaw, 0, domain.DefaultConfig())

	assert.Equal(t, 2000.0, ap.Area())
	assert.Equal(t, 200.0, ap.SidePerimeter())
}

func TestAperture_OpenLeafBehindJaws(t *testing.T) {
	jaw := mlc.Jaw{Rect: mlc.Rect{Left: -10, Top: 400, Right: 400, Bottom: -400}}
	bankA, bankB := uniformBanks(2, -50, 50)
	ap := New(bankA, bankB, uniformWidths(2, 10), jaw, 0, domain.DefaultConfig())

	assert.True(t, ap.HasOpenLeafBehindJaws())
	assert.Equal(t, 60.0, ap.LeafPairs[0].FieldSize())
}

func TestFromBeam_JawCarriesForward(t *testing.T) {
	bankA, bankB := uniformBanks(2, -50, 50)
	beam := &domain.Beam{
		Name:           "b1",
		DeliveryType:   domain.DeliveryTreatment,
		MU:             100,
		LeafBoundaries: []float64{-10, 0, 10},
		ControlPoints: []domain.ControlPoint{
			{CumulativeWeight: 0, BankA: bankA, BankB: bankB, Jaw: &domain.JawPositions{X1: -20, X2: 20, Y1: -400, Y2: 400}},
			{CumulativeWeight: 1, BankA: bankA, BankB: bankB},
		},
	}

	apertures, err := FromBeam(beam, domain.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, apertures, 2)

	// The second control point inherits the first jaw: both clip to x in [-20, 20].
	assert.Equal(t, apertures[0].Jaw, apertures[1].Jaw)
	assert.Equal(t, 40.0, apertures[1].LeafPairs[0].FieldSize())
}

func TestFromBeam_MissingFirstJaw(t *testing.T) {
	bankA, bankB := uniformBanks(2, -50, 50)
	beam := &domain.Beam{
		Name:           "b1",
		LeafBoundaries: []float64{-10, 0, 10},
		ControlPoints: []domain.ControlPoint{
			{CumulativeWeight: 0, BankA: bankA, BankB: bankB},
		},
	}

	_, err := FromBeam(beam, domain.DefaultConfig())
	var geomErr *GeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Equal(t, "b1", geomErr.Beam)
	assert.Equal(t, 0, geomErr.ControlPoint)
}

func TestFromBeam_BankLengthMismatch(t *testing.T) {
	beam := &domain.Beam{
		Name:           "b1",
		LeafBoundaries: []float64{-10, 0, 10},
		ControlPoints: []domain.ControlPoint{
			{
				CumulativeWeight: 0,
				BankA:            []float64{-50, -50},
				BankB:            []float64{50},
				Jaw:              &domain.JawPositions{X1: -400, X2: 400, Y1: -400, Y2: 400},
			},
		},
	}

	_, err := FromBeam(beam, domain.DefaultConfig())
	var geomErr *GeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Contains(t, geomErr.Reason, "bank lengths differ")
}

func TestFromBeam_BankDoesNotMatchLeafPairs(t *testing.T) {
	bankA, bankB := uniformBanks(3, -50, 50)
	beam := &domain.Beam{
		Name:           "b1",
		LeafBoundaries: []float64{-10, 0, 10}, // 2 pairs
		ControlPoints: []domain.ControlPoint{
			{
				CumulativeWeight: 0,
				BankA:            bankA,
				BankB:            bankB,
				Jaw:              &domain.JawPositions{X1: -400, X2: 400, Y1: -400, Y2: 400},
			},
		},
	}

	_, err := FromBeam(beam, domain.DefaultConfig())
	var geomErr *GeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Contains(t, geomErr.Reason, "leaf pairs")
}

func TestFromBeam_NoBoundaries(t *testing.T) {
	beam := &domain.Beam{Name: "b1"}

	_, err := FromBeam(beam, domain.DefaultConfig())
	var geomErr *GeometryError
	require.ErrorAs(t, err, &geomErr)
}
