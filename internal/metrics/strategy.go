// Package metrics implements the complexity metric strategies and the
// MU-weighted aggregation that turns per-control-point scalars into beam and
// plan scores. Strategies are a closed set selected by name at composition
// time; each consumes the aperture sequence of one beam and is free of any
// shared state, so computations are pure and repeatable.
package metrics

import (
	"fmt"
	"sort"

	"github.com/planqa/aperture/internal/aperture"
)

// Strategy computes one scalar per control point from a beam's aperture
// sequence. Strategies receive the whole sequence because some scores (the
// modulation complexity score) normalize each control point against the
// beam's other apertures.
type Strategy interface {
	// Name is the identifier used to select the strategy from the CLI
	// and to key stored results.
	Name() string
	// Unit is the fixed unit of the scalar: inverse-length, squared-length
	// or dimensionless. Callers must not reinterpret units across metrics.
	Unit(lengthUnit string) string
	// Values returns one scalar per aperture, index-aligned with the
	// control points that produced them.
	Values(apertures []*aperture.Aperture) []float64
}

var registry = map[string]Strategy{}

func register(s Strategy) {
	registry[s.Name()] = s
}

// ByName returns the strategy registered under name.
func ByName(name string) (Strategy, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q (run 'aperture metrics' for the list)", name)
	}
	return s, nil
}

// All returns every registered strategy, sorted by name for stable output.
func All() []Strategy {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Strategy, len(names))
	for i, name := range names {
		out[i] = registry[name]
	}
	return out
}

// divisionOrZero implements the shared degenerate-aperture rule: a metric
// normalized by a zero quantity reports 0 for that control point instead of
// raising a division error. The control point still participates in
// MU-weighted aggregation with value 0.
func divisionOrZero(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
