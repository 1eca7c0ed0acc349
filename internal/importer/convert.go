package importer

import (
	"github.com/planqa/aperture/internal/domain"
)

// Convert transforms a validated plan schema into the domain record the
// metric core consumes. Call ValidatePlanSchema first; Convert assumes the
// schema is valid.
func Convert(schema *PlanSchema) *domain.Plan {
	plan := &domain.Plan{
		Label:     schema.Plan.Label,
		PlanName:  schema.Plan.Name,
		PatientID: schema.Plan.PatientID,
		Date:      schema.Plan.Date,
		Beams:     make([]*domain.Beam, 0, len(schema.Beams)),
	}

	for i := range schema.Beams {
		plan.Beams = append(plan.Beams, convertBeam(&schema.Beams[i]))
	}
	return plan
}

func convertBeam(b *BeamImport) *domain.Beam {
	beam := &domain.Beam{
		Name:           b.Name,
		DeliveryType:   domain.DeliveryType(b.DeliveryType),
		MU:             b.MU,
		LeafBoundaries: append([]float64(nil), b.LeafBoundaries...),
		ControlPoints:  make([]domain.ControlPoint, 0, len(b.ControlPoints)),
	}

	for _, cp := range b.ControlPoints {
		dcp := domain.ControlPoint{
			CumulativeWeight: cp.CumulativeWeight,
			GantryAngle:      cp.GantryAngle,
			BankA:            append([]float64(nil), cp.BankA...),
			BankB:            append([]float64(nil), cp.BankB...),
		}
		if cp.Jaw != nil {
			dcp.Jaw = &domain.JawPositions{X1: cp.Jaw.X1, X2: cp.Jaw.X2, Y1: cp.Jaw.Y1, Y2: cp.Jaw.Y2}
		}
		beam.ControlPoints = append(beam.ControlPoints, dcp)
	}
	return beam
}

// LoadPlan loads, validates and converts a plan file in one step. Validation
// failures are joined into a single error listing every problem.
func LoadPlan(path string) (*domain.Plan, error) {
	schema, err := LoadPlanSchema(path)
	if err != nil {
		return nil, err
	}
	if errs := ValidatePlanSchema(schema); len(errs) > 0 {
		return nil, &ValidationError{File: path, Problems: errs}
	}
	return Convert(schema), nil
}
