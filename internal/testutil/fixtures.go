package testutil

import (
	"github.com/planqa/aperture/internal/domain"
)

// UniformBoundaries returns pairs+1 leaf boundaries of equal width, stacked
// symmetrically around zero.
func UniformBoundaries(pairs int, width float64) []float64 {
	bounds := make([]float64, pairs+1)
	start := -float64(pairs) * width / 2
	for i := range bounds {
		bounds[i] = start + float64(i)*width
	}
	return bounds
}

// OpenJawPositions returns a jaw setting wide enough to never clip.
func OpenJawPositions() *domain.JawPositions {
	return &domain.JawPositions{X1: -400, X2: 400, Y1: -400, Y2: 400}
}

// ControlPoint options
type CPOption func(*domain.ControlPoint)

func WithWeight(w float64) CPOption {
	return func(cp *domain.ControlPoint) {
		cp.CumulativeWeight = w
	}
}

func WithGantry(angle float64) CPOption {
	return func(cp *domain.ControlPoint) {
		cp.GantryAngle = angle
	}
}

func WithJaw(x1, x2, y1, y2 float64) CPOption {
	return func(cp *domain.ControlPoint) {
		cp.Jaw = &domain.JawPositions{X1: x1, X2: x2, Y1: y1, Y2: y2}
	}
}

func WithBanks(bankA, bankB []float64) CPOption {
	return func(cp *domain.ControlPoint) {
		cp.BankA = bankA
		cp.BankB = bankB
	}
}

// NewTestCP builds a control point with every leaf pair at the same
// left/right positions and a wide-open jaw.
func NewTestCP(pairs int, left, right float64, opts ...CPOption) domain.ControlPoint {
	cp := domain.ControlPoint{
		BankA: make([]float64, pairs),
		BankB: make([]float64, pairs),
		Jaw:   OpenJawPositions(),
	}
	for i := 0; i < pairs; i++ {
		cp.BankA[i] = left
		cp.BankB[i] = right
	}
	for _, opt := range opts {
		opt(&cp)
	}
	return cp
}

// Beam options
type BeamOption func(*domain.Beam)

func WithDeliveryType(dt domain.DeliveryType) BeamOption {
	return func(b *domain.Beam) {
		b.DeliveryType = dt
	}
}

func WithMU(mu float64) BeamOption {
	return func(b *domain.Beam) {
		b.MU = mu
	}
}

func WithBoundaries(bounds []float64) BeamOption {
	return func(b *domain.Beam) {
		b.LeafBoundaries = bounds
	}
}

func WithControlPoints(cps ...domain.ControlPoint) BeamOption {
	return func(b *domain.Beam) {
		b.ControlPoints = cps
	}
}

// NewTestBeam builds a treatment beam with 10 leaf pairs of width 10 and a
// static rectangular aperture held over two control points.
func NewTestBeam(name string, opts ...BeamOption) *domain.Beam {
	const pairs = 10
	b := &domain.Beam{
		Name:           name,
		DeliveryType:   domain.DeliveryTreatment,
		MU:             100,
		LeafBoundaries: UniformBoundaries(pairs, 10),
		ControlPoints: []domain.ControlPoint{
			NewTestCP(pairs, -50, 50, WithWeight(0)),
			NewTestCP(pairs, -50, 50, WithWeight(1)),
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewTestPlan builds a plan wrapping the given beams.
func NewTestPlan(label string, beams ...*domain.Beam) *domain.Plan {
	return &domain.Plan{
		Label: label,
		Beams: beams,
	}
}
