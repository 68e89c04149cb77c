package alder

import "math"

// Bounds is an axis-aligned rectangle stored as min/max corners. The
// coordinate system has its origin at the top-left, with Y increasing
// downward. Invariant: MinX <= MaxX and MinY <= MaxY.
//
// Behavior with NaN or infinite components is undefined; callers feed
// finite numbers. World and QuadTree construction reject non-finite
// regions up front so the per-tick path never has to check.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// SetMinMax mutates the bounds in place. The caller supplies ordered
// corners (x0 <= x1, y0 <= y1), so the min/max invariant holds by
// construction.
func (b *Bounds) SetMinMax(x0, y0, x1, y1 float64) {
	b.MinX = x0
	b.MinY = y0
	b.MaxX = x1
	b.MaxY = y1
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// CenterX returns the horizontal midpoint.
func (b Bounds) CenterX() float64 {
	return (b.MinX + b.MaxX) / 2
}

// CenterY returns the vertical midpoint.
func (b Bounds) CenterY() float64 {
	return (b.MinY + b.MaxY) / 2
}

// Overlaps reports whether b and other intersect on both axes.
// Touching edges count as overlapping: the broadphase must never produce a
// false negative, so boundary contact is resolved conservatively and left
// to the narrow phase.
func (b Bounds) Overlaps(other Bounds) bool {
	return b.MinX <= other.MaxX &&
		b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY &&
		b.MaxY >= other.MinY
}

// Contains reports whether the point (x, y) lies inside the bounds.
// Points on the edge are considered inside.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY
}

// ContainsBounds reports whether other lies entirely inside b, edges
// included.
func (b Bounds) ContainsBounds(other Bounds) bool {
	return other.MinX >= b.MinX && other.MaxX <= b.MaxX &&
		other.MinY >= b.MinY && other.MaxY <= b.MaxY
}

// Translate shifts the bounds in place by (dx, dy).
func (b *Bounds) Translate(dx, dy float64) {
	b.MinX += dx
	b.MaxX += dx
	b.MinY += dy
	b.MaxY += dy
}

// Union returns the smallest bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// isFinite reports whether all four corners are finite numbers.
func (b Bounds) isFinite() bool {
	return !math.IsNaN(b.MinX) && !math.IsInf(b.MinX, 0) &&
		!math.IsNaN(b.MinY) && !math.IsInf(b.MinY, 0) &&
		!math.IsNaN(b.MaxX) && !math.IsInf(b.MaxX, 0) &&
		!math.IsNaN(b.MaxY) && !math.IsInf(b.MaxY, 0)
}

// isOrdered reports whether the min/max invariant holds.
func (b Bounds) isOrdered() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}
