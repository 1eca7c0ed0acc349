package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planqa/aperture/internal/domain"
)

func validSchema() *PlanSchema {
	return &PlanSchema{
		Plan: PlanInfo{Label: "plan-1", Name: "Prostate VMAT", PatientID: "pat-42"},
		Beams: []BeamImport{
			{
				Name:           "arc-1",
				DeliveryType:   "TREATMENT",
				MU:             250,
				LeafBoundaries: []float64{-10, 0, 10},
				ControlPoints: []ControlPointImport{
					{
						CumulativeWeight: 0,
						GantryAngle:      180,
						BankA:            []float64{-50, -40},
						BankB:            []float64{50, 60},
						Jaw:              &JawImport{X1: -60, X2: 70, Y1: -15, Y2: 15},
					},
					{
						CumulativeWeight: 1,
						GantryAngle:      200,
						BankA:            []float64{-45, -35},
						BankB:            []float64{45, 55},
					},
				},
			},
		},
	}
}

func TestValidatePlanSchema_ValidPlan(t *testing.T) {
	assert.Empty(t, ValidatePlanSchema(validSchema()))
}

func TestValidatePlanSchema_ReportsEveryProblem(t *testing.T) {
	schema := validSchema()
	schema.Plan.Label = ""
	schema.Beams[0].Name = ""
	schema.Beams[0].MU = -1

	errs := ValidatePlanSchema(schema)
	require.Len(t, errs, 3)
}

func TestValidatePlanSchema_InvalidCases(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlanSchema)
		wantMsg string
	}{
		{
			name:    "no beams",
			mutate:  func(s *PlanSchema) { s.Beams = nil },
			wantMsg: "at least one beam",
		},
		{
			name:    "bad delivery type",
			mutate:  func(s *PlanSchema) { s.Beams[0].DeliveryType = "IMAGING" },
			wantMsg: "delivery_type",
		},
		{
			name:    "too few boundaries",
			mutate:  func(s *PlanSchema) { s.Beams[0].LeafBoundaries = []float64{0} },
			wantMsg: "at least 2",
		},
		{
			name:    "non-increasing boundaries",
			mutate:  func(s *PlanSchema) { s.Beams[0].LeafBoundaries = []float64{-10, -10, 10} },
			wantMsg: "strictly increasing",
		},
		{
			name:    "no control points",
			mutate:  func(s *PlanSchema) { s.Beams[0].ControlPoints = nil },
			wantMsg: "control_points must not be empty",
		},
		{
			name:    "missing first jaw",
			mutate:  func(s *PlanSchema) { s.Beams[0].ControlPoints[0].Jaw = nil },
			wantMsg: "jaw is required",
		},
		{
			name:    "nonzero first weight",
			mutate:  func(s *PlanSchema) { s.Beams[0].ControlPoints[0].CumulativeWeight = 0.1 },
			wantMsg: "must be 0",
		},
		{
			name: "decreasing weights",
			mutate: func(s *PlanSchema) {
				s.Beams[0].ControlPoints[1].CumulativeWeight = 1
				s.Beams[0].ControlPoints = append(s.Beams[0].ControlPoints, ControlPointImport{
					CumulativeWeight: 0.5,
					BankA:            []float64{-45, -35},
					BankB:            []float64{45, 55},
				})
			},
			wantMsg: "decreases",
		},
		{
			name:    "bank size mismatch",
			mutate:  func(s *PlanSchema) { s.Beams[0].ControlPoints[1].BankA = []float64{-45} },
			wantMsg: "bank_a",
		},
		{
			name:    "crossed jaws",
			mutate:  func(s *PlanSchema) { s.Beams[0].ControlPoints[0].Jaw = &JawImport{X1: 10, X2: -10} },
			wantMsg: "x2 must not be less than x1",
		},
		{
			name: "zero final weight with MU",
			mutate: func(s *PlanSchema) {
				s.Beams[0].ControlPoints[1].CumulativeWeight = 0
			},
			wantMsg: "final cumulative_weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := validSchema()
			tt.mutate(schema)

			errs := ValidatePlanSchema(schema)
			require.NotEmpty(t, errs)

			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tt.wantMsg) {
					found = true
				}
			}
			assert.True(t, found, "no error mentions %q in %v", tt.wantMsg, errs)
		})
	}
}

func TestConvert_BuildsDomainPlan(t *testing.T) {
	plan := Convert(validSchema())

	assert.Equal(t, "plan-1", plan.Label)
	assert.Equal(t, "Prostate VMAT", plan.PlanName)
	require.Len(t, plan.Beams, 1)

	beam := plan.Beams[0]
	assert.Equal(t, domain.DeliveryTreatment, beam.DeliveryType)
	assert.Equal(t, 250.0, beam.MU)
	assert.Equal(t, 2, beam.LeafPairCount())
	require.Len(t, beam.ControlPoints, 2)

	first := beam.ControlPoints[0]
	require.NotNil(t, first.Jaw)
	assert.Equal(t, -60.0, first.Jaw.X1)
	assert.Nil(t, beam.ControlPoints[1].Jaw)
}

func TestConvert_CopiesSlices(t *testing.T) {
	schema := validSchema()
	plan := Convert(schema)

	schema.Beams[0].ControlPoints[0].BankA[0] = 999
	assert.Equal(t, -50.0, plan.Beams[0].ControlPoints[0].BankA[0])
}

func TestLoadPlan_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	data := `{
		"plan": {"label": "plan-1"},
		"beams": [{
			"name": "arc-1",
			"delivery_type": "TREATMENT",
			"mu": 100,
			"leaf_boundaries": [-10, 0, 10],
			"control_points": [
				{"cumulative_weight": 0, "bank_a": [-50, -50], "bank_b": [50, 50],
				 "jaw": {"x1": -60, "x2": 60, "y1": -15, "y2": 15}},
				{"cumulative_weight": 1, "bank_a": [-50, -50], "bank_b": [50, 50]}
			]
		}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "plan-1", plan.Label)
	require.Len(t, plan.Beams, 1)
	assert.Equal(t, 100.0, plan.Beams[0].MU)
}

func TestLoadPlan_InvalidFileReturnsValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	data := `{"plan": {"label": ""}, "beams": []}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadPlan(path)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Problems, 2)
	assert.Contains(t, err.Error(), "2 problem(s)")
}

func TestLoadPlan_MissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
