package domain

import "time"

// Plan is a fully loaded radiotherapy treatment plan. Beams appear in
// delivery order. A Plan is populated once by the importer and treated as
// read-only everywhere else.
type Plan struct {
	Label     string
	PlanName  string
	PatientID string
	Date      string
	Beams     []*Beam
}

// TreatmentBeams returns the beams that participate in plan-level
// aggregation: delivery type TREATMENT with positive total MU. Setup fields
// and zero-MU beams are excluded entirely, they contribute no weight.
func (p *Plan) TreatmentBeams() []*Beam {
	var beams []*Beam
	for _, b := range p.Beams {
		if b.DeliveryType == DeliveryTreatment && b.MU > 0 {
			beams = append(beams, b)
		}
	}
	return beams
}

// TotalMU returns the summed meterset of all treatment beams.
func (p *Plan) TotalMU() float64 {
	var total float64
	for _, b := range p.TreatmentBeams() {
		total += b.MU
	}
	return total
}

// Beam is one treatment field: an ordered control-point sequence sharing a
// single leaf-pair boundary geometry.
type Beam struct {
	Name           string
	DeliveryType   DeliveryType
	MU             float64
	LeafBoundaries []float64 // n+1 boundary positions for n leaf pairs
	ControlPoints  []ControlPoint
}

// LeafWidths derives the per-pair leaf widths from the boundary positions.
func (b *Beam) LeafWidths() []float64 {
	if len(b.LeafBoundaries) < 2 {
		return nil
	}
	widths := make([]float64, len(b.LeafBoundaries)-1)
	for i := range widths {
		widths[i] = b.LeafBoundaries[i+1] - b.LeafBoundaries[i]
		if widths[i] < 0 {
			widths[i] = -widths[i]
		}
	}
	return widths
}

// LeafPairCount returns the number of leaf pairs in the beam's MLC.
func (b *Beam) LeafPairCount() int {
	if len(b.LeafBoundaries) < 2 {
		return 0
	}
	return len(b.LeafBoundaries) - 1
}

// JawPositions holds the rectangular jaw limits of one control point in IEC
// coordinates: X1/X2 bound the leaf-travel axis, Y1/Y2 the perpendicular
// axis.
type JawPositions struct {
	X1, X2 float64
	Y1, Y2 float64
}

// ControlPoint is a snapshot of the delivery state. BankA and BankB hold one
// position per leaf pair, index-aligned with the beam's leaf widths. Jaw is
// nil when the control point inherits the previous jaw setting; the first
// control point of a beam must carry one.
type ControlPoint struct {
	CumulativeWeight float64
	GantryAngle      float64
	BankA            []float64
	BankB            []float64
	Jaw              *JawPositions
}

// Run is one persisted computation: a plan evaluated against a set of metric
// strategies at a point in time.
type Run struct {
	ID          string
	PlanLabel   string
	SourceFile  string
	CreatedAt   time.Time
	PlanMetrics []PlanMetricValue
	BeamMetrics []BeamMetricValue
}

// PlanMetricValue is one plan-level scalar in a stored run.
type PlanMetricValue struct {
	Metric string
	Unit   string
	Value  float64
}

// BeamMetricValue is one beam-level scalar in a stored run.
type BeamMetricValue struct {
	BeamName     string
	DeliveryType DeliveryType
	BeamMU       float64
	Metric       string
	Value        float64
}
