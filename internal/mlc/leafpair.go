package mlc

// LeafPair is one opposing pair of MLC leaves. Left is the bank-A position,
// Right the bank-B position; Top/Bottom bound the pair along the
// perpendicular axis. Each pair keeps a reference to the jaw active at its
// control point so all clipping happens against the same rectangle.
type LeafPair struct {
	Position Rect
	Width    float64
	Jaw      Jaw

	eps float64
}

// NewLeafPair builds a pair from bank positions, its width, the position of
// its top edge, and the jaw in effect. eps widens boundary-coincidence
// comparisons (see Config.Epsilon).
func NewLeafPair(left, right, width, top float64, jaw Jaw, eps float64) LeafPair {
	return LeafPair{
		Position: Rect{Left: left, Top: top, Right: right, Bottom: top - width},
		Width:    width,
		Jaw:      jaw,
		eps:      eps,
	}
}

// IsOutsideJaw reports whether the pair lies outside the jaw rectangle.
// The comparisons are inclusive: if a jaw edge coincides with a leaf edge,
// the jaw edge *is* the leaf edge and the pair counts as closed, so that the
// shared edge is never counted twice in perimeter terms.
func (lp LeafPair) IsOutsideJaw() bool {
	return lp.Jaw.Top-lp.Position.Bottom <= lp.eps ||
		lp.Position.Top-lp.Jaw.Bottom <= lp.eps ||
		lp.Position.Right-lp.Jaw.Left <= lp.eps ||
		lp.Jaw.Right-lp.Position.Left <= lp.eps
}

// FieldSize returns the jaw-clipped open gap along the leaf-travel axis.
// Closed or crossed leaves yield 0, never a negative length.
func (lp LeafPair) FieldSize() float64 {
	if lp.IsOutsideJaw() {
		return 0
	}
	left := lp.Position.Left
	if lp.Jaw.Left > left {
		left = lp.Jaw.Left
	}
	right := lp.Position.Right
	if lp.Jaw.Right < right {
		right = lp.Jaw.Right
	}
	if right <= left {
		return 0
	}
	return right - left
}

// OpenLeafWidth returns how much of the pair's width is open, considering
// the jaw position along the perpendicular axis.
func (lp LeafPair) OpenLeafWidth() float64 {
	if lp.IsOutsideJaw() {
		return 0
	}
	top := lp.Position.Top
	if lp.Jaw.Top < top {
		top = lp.Jaw.Top
	}
	bottom := lp.Position.Bottom
	if lp.Jaw.Bottom > bottom {
		bottom = lp.Jaw.Bottom
	}
	return top - bottom
}

// FieldArea returns the open area contributed by this pair.
func (lp LeafPair) FieldArea() float64 {
	return lp.FieldSize() * lp.OpenLeafWidth()
}

// IsOpen reports whether the pair exposes a positive gap inside the jaw.
func (lp LeafPair) IsOpen() bool {
	return lp.FieldSize() > 0
}

// IsOpenBehindJaw reports an open pair whose leaf tips sit behind the X
// jaws. The gap is still inside the field, but part of the nominal opening
// is shielded; callers may want to warn about it.
func (lp LeafPair) IsOpenBehindJaw() bool {
	return lp.FieldSize() > 0 &&
		(lp.Jaw.Left > lp.Position.Left || lp.Jaw.Right < lp.Position.Right)
}
