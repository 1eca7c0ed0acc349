package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat"

	"github.com/planqa/aperture/internal/aperture"
	"github.com/planqa/aperture/internal/domain"
)

// ModulationIndexResult holds the three Park modulation indices for one beam
// (Park et al., Phys Med Biol 2014, 59:7315): speed considers MLC leaf
// speeds only, acceleration adds leaf accelerations, and total additionally
// weights each control point by gantry acceleration and dose-rate variation.
type ModulationIndexResult struct {
	Speed        float64
	Acceleration float64
	Total        float64
}

const (
	// Control points delivering up to this many MU are paced by the
	// gantry, not the dose rate (Varian TrueBeam delivery model).
	gantryLimitedMU = 4.238
	gantryStepTime  = 2.0341 / 4.8
	maxDoseRateMUs  = 10.0

	// Logistic weighting parameters for the total index.
	miBeta  = 2.0
	miAlpha = 2.0

	// Gauss-Legendre nodes for the index integrals.
	miQuadNodes = 200
)

// cpDeliveryTime estimates the delivery time of one control point from the
// MU it delivers.
func cpDeliveryTime(deltaMU float64) float64 {
	if deltaMU <= gantryLimitedMU {
		return gantryStepTime
	}
	return deltaMU / maxDoseRateMUs
}

// ModulationIndexForBeam computes the Park modulation indices of one beam.
// k bounds the integration range of the threshold fraction f; Park et al.
// use k = 1. The beam needs at least three control points so that leaf
// accelerations exist.
func ModulationIndexForBeam(b *domain.Beam, cfg domain.Config, k float64) (ModulationIndexResult, error) {
	var res ModulationIndexResult

	n := len(b.ControlPoints)
	if n < 3 {
		return res, &AggregationError{
			Scope:  fmt.Sprintf("beam %q", b.Name),
			Reason: fmt.Sprintf("modulation index needs at least 3 control points, got %d", n),
		}
	}
	// Bank validation happens in aperture construction; the index itself
	// works on the raw bank positions.
	if _, err := aperture.FromBeam(b, cfg); err != nil {
		return res, err
	}

	m := b.LeafPairCount()
	cols := 2 * m

	pos := make([][]float64, n)
	for t, cp := range b.ControlPoints {
		row := make([]float64, cols)
		copy(row[:m], cp.BankA)
		copy(row[m:], cp.BankB)
		pos[t] = row
	}

	deltas := MUDeltas(ControlPointMUs(b))
	times := make([]float64, n) // times[0] unused
	for t := 1; t < n; t++ {
		times[t] = cpDeliveryTime(deltas[t])
	}

	// speed[t][j] and acc[t][j]; rows 0 (and 1 for acc) stay nil.
	speed := make([][]float64, n)
	for t := 1; t < n; t++ {
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			row[j] = math.Abs(pos[t][j]-pos[t-1][j]) / times[t]
		}
		speed[t] = row
	}
	acc := make([][]float64, n)
	for t := 2; t < n; t++ {
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			row[j] = math.Abs(speed[t][j]-speed[t-1][j]) / times[t]
		}
		acc[t] = row
	}

	speedStd := columnStdDev(speed[1:], cols)
	accStd := columnStdDev(acc[2:], cols)

	meanTime := floats.Sum(times[1:]) / float64(n-1)
	accAlpha := 1 / meanTime

	// Gantry acceleration and dose-rate variation weights, defined from the
	// third control point on.
	wga := make([]float64, n)
	wmu := make([]float64, n)
	gantrySpeed := make([]float64, n)
	doseRate := make([]float64, n)
	for t := 1; t < n; t++ {
		gantrySpeed[t] = gantryDelta(b.ControlPoints[t-1].GantryAngle, b.ControlPoints[t].GantryAngle) / times[t]
		doseRate[t] = deltas[t] / times[t]
	}
	for t := 2; t < n; t++ {
		gantryAcc := math.Abs(gantrySpeed[t]-gantrySpeed[t-1]) / times[t]
		wga[t] = logisticWeight(gantryAcc)
		wmu[t] = logisticWeight(math.Abs(doseRate[t] - doseRate[t-1]))
	}

	zSpeed := func(f float64) float64 {
		count := 0
		for t := 1; t < n; t++ {
			for j := 0; j < cols; j++ {
				if speed[t][j] > f*speedStd[j] {
					count++
				}
			}
		}
		return float64(count) / float64(n-1)
	}

	exceeds := func(t int, f float64) int {
		count := 0
		for j := 0; j < cols; j++ {
			if speed[t][j] > f*speedStd[j] {
				count++
				continue
			}
			if acc[t] != nil && acc[t][j] > accAlpha*f*accStd[j] {
				count++
			}
		}
		return count
	}

	zAcc := func(f float64) float64 {
		count := 0
		for t := 1; t < n; t++ {
			count += exceeds(t, f)
		}
		return float64(count) / float64(n-2)
	}

	zTotal := func(f float64) float64 {
		var sum float64
		for t := 2; t < n; t++ {
			sum += float64(exceeds(t, f)) * wga[t] * wmu[t]
		}
		return sum / float64(n-2)
	}

	res.Speed = quad.Fixed(zSpeed, 0, k, miQuadNodes, nil, 0)
	res.Acceleration = quad.Fixed(zAcc, 0, k, miQuadNodes, nil, 0)
	res.Total = quad.Fixed(zTotal, 0, k, miQuadNodes, nil, 0)
	return res, nil
}

// columnStdDev returns the sample standard deviation of every column.
func columnStdDev(rows [][]float64, cols int) []float64 {
	out := make([]float64, cols)
	col := make([]float64, 0, len(rows))
	for j := 0; j < cols; j++ {
		col = col[:0]
		for _, row := range rows {
			col = append(col, row[j])
		}
		if len(col) < 2 {
			continue
		}
		out[j] = stat.StdDev(col, nil)
	}
	return out
}

// gantryDelta returns the shortest angular distance between two gantry
// angles in degrees.
func gantryDelta(a, b float64) float64 {
	phi := math.Mod(math.Abs(b-a), 360)
	if phi > 180 {
		return 360 - phi
	}
	return phi
}

func logisticWeight(x float64) float64 {
	return miBeta / (1 + (miBeta-1)*math.Exp(-x/miAlpha))
}
