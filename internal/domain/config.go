package domain

// Config carries the geometry constants shared by every aperture
// computation. It is set once at startup and passed down unchanged.
type Config struct {
	// Epsilon widens the boundary-coincidence comparisons in jaw/leaf
	// clipping. A jaw edge within Epsilon of a leaf edge counts the leaf
	// pair as closed, so edges are never counted twice.
	Epsilon float64
	// LengthUnit is the assumed unit of all positions and widths in the
	// input coordinate system. Metric units derive from it (mm -> mm^-1,
	// mm^2).
	LengthUnit string
}

// DefaultConfig returns exact boundary comparisons and millimeter
// coordinates.
func DefaultConfig() Config {
	return Config{Epsilon: 0, LengthUnit: "mm"}
}
