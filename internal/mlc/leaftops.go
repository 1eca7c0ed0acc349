package mlc

// LeafTops locates the top edge of every leaf pair relative to the
// isocenter, given the per-pair widths. The pair right below the isocenter
// (index len/2) has its top edge at 0; pairs above stack upward, pairs below
// stack downward. Pair 0 is the topmost.
func LeafTops(widths []float64) []float64 {
	tops := make([]float64, len(widths))
	if len(widths) == 0 {
		return tops
	}

	middle := len(widths) / 2

	for i := middle + 1; i < len(widths); i++ {
		tops[i] = tops[i-1] - widths[i-1]
	}
	for i := middle - 1; i >= 0; i-- {
		tops[i] = tops[i+1] + widths[i]
	}
	return tops
}
