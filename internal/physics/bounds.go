package physics

// Bounds is an axis-aligned rectangle given by its edges.
type Bounds struct {
	Top, Right, Down, Left float64
}

// WorldBounds is the fixed world the ship flies in.
var WorldBounds = Bounds{Top: 0, Right: 1000, Down: 1000, Left: 0}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 {
	return b.Down - b.Top
}

// Clamp keeps a box with the given half extents inside bounds.
// Each axis is handled independently: when the position on an axis is
// clamped, the velocity on that axis becomes exactly zero (no bounce).
func Clamp(pos, vel Vector2, bounds Bounds, half Vector2) (Vector2, Vector2) {
	pos.X, vel.X = clampAxis(pos.X, vel.X, bounds.Left+half.X, bounds.Right-half.X)
	pos.Y, vel.Y = clampAxis(pos.Y, vel.Y, bounds.Top+half.Y, bounds.Down-half.Y)
	return pos, vel
}

func clampAxis(p, v, lo, hi float64) (float64, float64) {
	switch {
	case p < lo:
		return lo, 0
	case p > hi:
		return hi, 0
	}
	return p, v
}
