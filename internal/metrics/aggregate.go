package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/planqa/aperture/internal/aperture"
	"github.com/planqa/aperture/internal/domain"
)

// AggregationError reports that a weighted average had zero total weight
// available, so no value is defined. It is surfaced to the caller rather
// than coerced to 0 or NaN.
type AggregationError struct {
	Scope  string
	Reason string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregating %s: %s", e.Scope, e.Reason)
}

// ControlPointMUs converts the beam's cumulative meterset weights into
// cumulative MU values, scaled so the final control point reaches the beam
// meterset.
func ControlPointMUs(b *domain.Beam) []float64 {
	mus := make([]float64, len(b.ControlPoints))
	if len(mus) == 0 {
		return mus
	}
	final := b.ControlPoints[len(b.ControlPoints)-1].CumulativeWeight
	if final == 0 {
		return mus
	}
	for i, cp := range b.ControlPoints {
		mus[i] = b.MU * cp.CumulativeWeight / final
	}
	return mus
}

// MUDeltas turns cumulative MU values into per-control-point weights: the MU
// delivered since the previous control point. The first control point has no
// preceding delta and always weighs 0; its aperture still matters as the
// starting state of delta-based scores.
func MUDeltas(mus []float64) []float64 {
	deltas := make([]float64, len(mus))
	for i := 1; i < len(mus); i++ {
		deltas[i] = mus[i] - mus[i-1]
	}
	return deltas
}

// WeightedMean reduces values by their weights. Zero-weight entries
// contribute nothing; zero total weight is an AggregationError for the given
// scope.
func WeightedMean(values, weights []float64, scope string) (float64, error) {
	if floats.Sum(weights) <= 0 {
		return 0, &AggregationError{Scope: scope, Reason: "zero total weight, no average defined"}
	}
	return stat.Mean(values, weights), nil
}

// PerControlPoint returns the unweighted per-control-point scalars of one
// beam for the given strategy, in control-point order.
func PerControlPoint(b *domain.Beam, s Strategy, cfg domain.Config) ([]float64, error) {
	apertures, err := aperture.FromBeam(b, cfg)
	if err != nil {
		return nil, err
	}
	return s.Values(apertures), nil
}

// ForBeam returns the beam-level scalar: the MU-delta-weighted mean of the
// per-control-point values.
func ForBeam(b *domain.Beam, s Strategy, cfg domain.Config) (float64, error) {
	values, err := PerControlPoint(b, s, cfg)
	if err != nil {
		return 0, err
	}
	weights := MUDeltas(ControlPointMUs(b))
	return WeightedMean(values, weights, fmt.Sprintf("beam %q", b.Name))
}

// BeamValue pairs a beam with its aggregated metric value.
type BeamValue struct {
	Beam  string
	MU    float64
	Value float64
}

// ForPlanPerBeam returns the beam-level values of every treatment beam with
// positive MU, in delivery order. A geometry failure in any control point
// aborts the whole call; no partial scalars are returned.
func ForPlanPerBeam(p *domain.Plan, s Strategy, cfg domain.Config) ([]BeamValue, error) {
	beams := p.TreatmentBeams()
	out := make([]BeamValue, 0, len(beams))
	for _, b := range beams {
		v, err := ForBeam(b, s, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, BeamValue{Beam: b.Name, MU: b.MU, Value: v})
	}
	return out, nil
}

// ForPlan returns the plan-level scalar: the meterset-weighted mean of the
// beam values over treatment beams with positive MU. A plan whose only beams
// are setup fields or have zero MU has no defined average.
func ForPlan(p *domain.Plan, s Strategy, cfg domain.Config) (float64, error) {
	beamValues, err := ForPlanPerBeam(p, s, cfg)
	if err != nil {
		return 0, err
	}
	if len(beamValues) == 0 {
		return 0, &AggregationError{Scope: "plan", Reason: "no treatment beams with positive MU"}
	}

	values := make([]float64, len(beamValues))
	weights := make([]float64, len(beamValues))
	for i, bv := range beamValues {
		values[i] = bv.Value
		weights[i] = bv.MU
	}
	return WeightedMean(values, weights, "plan")
}
