// Package importer loads treatment plans from the JSON exchange format and
// converts them into domain records. It is the data-loading collaborator of
// the metric core: the core itself never touches files.
//
// The format mirrors the DICOM RT Plan fields the metrics need. A converter
// exporting these fields from RTPLAN files is expected upstream; this
// package only validates and adapts.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlanSchema is the top-level JSON structure of a plan file.
type PlanSchema struct {
	Plan  PlanInfo     `json:"plan"`
	Beams []BeamImport `json:"beams"`
}

// PlanInfo carries the plan-level metadata.
type PlanInfo struct {
	Label     string `json:"label"`
	Name      string `json:"name,omitempty"`
	PatientID string `json:"patient_id,omitempty"`
	Date      string `json:"date,omitempty"`
}

// BeamImport defines one beam in the plan file.
type BeamImport struct {
	Name           string               `json:"name"`
	DeliveryType   string               `json:"delivery_type"`
	MU             float64              `json:"mu"`
	LeafBoundaries []float64            `json:"leaf_boundaries"`
	ControlPoints  []ControlPointImport `json:"control_points"`
}

// ControlPointImport defines one control point. Jaw may be omitted on every
// control point after the first; the previous setting carries forward.
type ControlPointImport struct {
	CumulativeWeight float64    `json:"cumulative_weight"`
	GantryAngle      float64    `json:"gantry_angle,omitempty"`
	BankA            []float64  `json:"bank_a"`
	BankB            []float64  `json:"bank_b"`
	Jaw              *JawImport `json:"jaw,omitempty"`
}

// JawImport holds the rectangular jaw limits in IEC coordinates.
type JawImport struct {
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
	Y1 float64 `json:"y1"`
	Y2 float64 `json:"y2"`
}

// LoadPlanSchema reads and parses a plan JSON file.
func LoadPlanSchema(path string) (*PlanSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema PlanSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &schema, nil
}
