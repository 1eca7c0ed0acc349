package aperture

import (
	"fmt"

	"github.com/planqa/aperture/internal/domain"
	"github.com/planqa/aperture/internal/mlc"
)

// FromBeam builds one aperture per control point of the beam. Jaw settings
// carry forward: a control point without its own jaw reuses the previous
// one, so the first control point must carry a jaw. Any malformed control
// point yields a GeometryError and no apertures, the beam is computed whole
// or not at all.
func FromBeam(b *domain.Beam, cfg domain.Config) ([]*Aperture, error) {
	widths := b.LeafWidths()
	if len(widths) == 0 {
		return nil, &GeometryError{Beam: b.Name, ControlPoint: 0, Reason: "beam has no leaf boundary geometry"}
	}

	var jaw mlc.Jaw
	haveJaw := false

	apertures := make([]*Aperture, 0, len(b.ControlPoints))
	for i := range b.ControlPoints {
		cp := &b.ControlPoints[i]

		if cp.Jaw != nil {
			jaw = jawFromPositions(*cp.Jaw)
			haveJaw = true
		}
		if !haveJaw {
			return nil, &GeometryError{Beam: b.Name, ControlPoint: i, Reason: "missing jaw data"}
		}

		if len(cp.BankA) != len(cp.BankB) {
			return nil, &GeometryError{
				Beam:         b.Name,
				ControlPoint: i,
				Reason:       fmt.Sprintf("bank lengths differ: A has %d, B has %d", len(cp.BankA), len(cp.BankB)),
			}
		}
		if len(cp.BankA) != len(widths) {
			return nil, &GeometryError{
				Beam:         b.Name,
				ControlPoint: i,
				Reason:       fmt.Sprintf("bank length %d does not match %d leaf pairs", len(cp.BankA), len(widths)),
			}
		}

		apertures = append(apertures, New(cp.BankA, cp.BankB, widths, jaw, cp.GantryAngle, cfg))
	}

	return apertures, nil
}

// jawFromPositions converts IEC jaw limits to the aperture coordinate frame.
// The Y axis is inverted so that Top > Bottom: Y1 (toward the gantry) maps
// to -Y1 as the top edge, Y2 to -Y2 as the bottom edge.
func jawFromPositions(jp domain.JawPositions) mlc.Jaw {
	return mlc.Jaw{Rect: mlc.Rect{
		Left:   jp.X1,
		Top:    -jp.Y1,
		Right:  jp.X2,
		Bottom: -jp.Y2,
	}}
}
