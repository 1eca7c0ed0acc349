package importer

import (
	"fmt"

	"github.com/planqa/aperture/internal/domain"
)

// ValidatePlanSchema checks the plan schema against the data-model
// invariants before conversion. Returns every validation error found, not
// just the first.
func ValidatePlanSchema(schema *PlanSchema) []error {
	var errs []error

	if schema.Plan.Label == "" {
		errs = append(errs, fmt.Errorf("plan.label is required"))
	}
	if len(schema.Beams) == 0 {
		errs = append(errs, fmt.Errorf("plan must contain at least one beam"))
	}

	for i := range schema.Beams {
		errs = append(errs, validateBeam(i, &schema.Beams[i])...)
	}

	return errs
}

func validateBeam(i int, b *BeamImport) []error {
	var errs []error
	prefix := fmt.Sprintf("beams[%d]", i)

	if b.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if !domain.ValidDeliveryTypes[b.DeliveryType] {
		errs = append(errs, fmt.Errorf("%s.delivery_type: invalid value %q", prefix, b.DeliveryType))
	}
	if b.MU < 0 {
		errs = append(errs, fmt.Errorf("%s.mu must not be negative", prefix))
	}

	if len(b.LeafBoundaries) < 2 {
		errs = append(errs, fmt.Errorf("%s.leaf_boundaries needs at least 2 values", prefix))
	} else {
		for j := 1; j < len(b.LeafBoundaries); j++ {
			if b.LeafBoundaries[j] <= b.LeafBoundaries[j-1] {
				errs = append(errs, fmt.Errorf("%s.leaf_boundaries must be strictly increasing (index %d)", prefix, j))
				break
			}
		}
	}
	pairs := len(b.LeafBoundaries) - 1

	if len(b.ControlPoints) == 0 {
		errs = append(errs, fmt.Errorf("%s.control_points must not be empty", prefix))
		return errs
	}

	if b.ControlPoints[0].Jaw == nil {
		errs = append(errs, fmt.Errorf("%s.control_points[0].jaw is required", prefix))
	}
	if b.ControlPoints[0].CumulativeWeight != 0 {
		errs = append(errs, fmt.Errorf("%s.control_points[0].cumulative_weight must be 0", prefix))
	}

	prev := 0.0
	for j := range b.ControlPoints {
		cp := &b.ControlPoints[j]
		cpPrefix := fmt.Sprintf("%s.control_points[%d]", prefix, j)

		if cp.CumulativeWeight < prev {
			errs = append(errs, fmt.Errorf("%s.cumulative_weight decreases (%g after %g)", cpPrefix, cp.CumulativeWeight, prev))
		}
		prev = cp.CumulativeWeight

		if len(cp.BankA) != len(cp.BankB) {
			errs = append(errs, fmt.Errorf("%s: bank_a has %d positions, bank_b has %d", cpPrefix, len(cp.BankA), len(cp.BankB)))
		}
		if pairs > 0 && len(cp.BankA) != pairs {
			errs = append(errs, fmt.Errorf("%s: bank_a has %d positions for %d leaf pairs", cpPrefix, len(cp.BankA), pairs))
		}
		if cp.Jaw != nil {
			if cp.Jaw.X2 < cp.Jaw.X1 {
				errs = append(errs, fmt.Errorf("%s.jaw: x2 must not be less than x1", cpPrefix))
			}
			if cp.Jaw.Y2 < cp.Jaw.Y1 {
				errs = append(errs, fmt.Errorf("%s.jaw: y2 must not be less than y1", cpPrefix))
			}
		}
	}

	last := b.ControlPoints[len(b.ControlPoints)-1]
	if b.MU > 0 && last.CumulativeWeight <= 0 {
		errs = append(errs, fmt.Errorf("%s: final cumulative_weight must be positive for a beam with MU", prefix))
	}

	return errs
}
