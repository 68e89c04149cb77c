package alder

import (
	"fmt"
	"math"
)

// ShapeType enumerates the closed set of narrow-phase shapes.
type ShapeType uint8

const (
	ShapeRect    ShapeType = iota // axis-aligned rectangle
	ShapeEllipse                  // ellipse, tested as a circle of mean radius
	ShapePolygon                  // convex polygon
	ShapeLine                     // two-point segment

	numShapeTypes = 4
)

// Shape is a tagged variant describing a body's collision geometry in the
// ancestor's local space. Exactly one layout is meaningful per type:
// Width/Height for rects and ellipses, Points for polygons and lines.
// Offset shifts the shape relative to the ancestor's position.
type Shape struct {
	Type             ShapeType
	OffsetX, OffsetY float64
	Width, Height    float64
	Points           []Vec2
}

// RectShape returns an axis-aligned rectangle shape. Extents must be
// non-negative.
func RectShape(w, h float64) Shape {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("alder: rect shape extent must be non-negative, got %v x %v", w, h))
	}
	return Shape{Type: ShapeRect, Width: w, Height: h}
}

// EllipseShape returns an ellipse shape with the given semi-axes. Narrow
// phase treats the ellipse as a circle of radius (rx+ry)/2; for a true
// circle pass rx == ry.
func EllipseShape(rx, ry float64) Shape {
	if rx < 0 || ry < 0 {
		panic(fmt.Sprintf("alder: ellipse radii must be non-negative, got %v, %v", rx, ry))
	}
	return Shape{Type: ShapeEllipse, Width: rx * 2, Height: ry * 2}
}

// PolygonShape returns a convex polygon shape. Points are in local space
// and must describe a convex polygon in either winding order; at least
// three are required.
func PolygonShape(points []Vec2) Shape {
	if len(points) < 3 {
		panic(fmt.Sprintf("alder: polygon shape needs at least 3 points, got %d", len(points)))
	}
	return Shape{Type: ShapePolygon, Points: points}
}

// LineShape returns a two-point segment shape.
func LineShape(x0, y0, x1, y1 float64) Shape {
	return Shape{Type: ShapeLine, Points: []Vec2{{x0, y0}, {x1, y1}}}
}

// BoundsAt returns the shape's axis-aligned bounds with the ancestor at
// (x, y).
func (s Shape) BoundsAt(x, y float64) Bounds {
	x += s.OffsetX
	y += s.OffsetY
	switch s.Type {
	case ShapeRect, ShapeEllipse:
		return Bounds{MinX: x, MinY: y, MaxX: x + s.Width, MaxY: y + s.Height}
	default:
		if len(s.Points) == 0 {
			return Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
		}
		b := Bounds{
			MinX: x + s.Points[0].X, MinY: y + s.Points[0].Y,
			MaxX: x + s.Points[0].X, MaxY: y + s.Points[0].Y,
		}
		for _, p := range s.Points[1:] {
			b.MinX = math.Min(b.MinX, x+p.X)
			b.MinY = math.Min(b.MinY, y+p.Y)
			b.MaxX = math.Max(b.MaxX, x+p.X)
			b.MaxY = math.Max(b.MaxY, y+p.Y)
		}
		return b
	}
}

// --- Narrow-phase dispatch ---

// overlapFunc computes the minimum translation vector pushing shape a
// (ancestor at ax, ay) out of shape b (ancestor at bx, by). ok is false
// when the shapes do not penetrate. Touching without penetration is not a
// contact; the broadphase already treats boundary contact conservatively.
type overlapFunc func(a Shape, ax, ay float64, b Shape, bx, by float64) (Vec2, bool)

// overlapTable is the closed pair table. A nil entry is an unsupported
// pairing and reports no collision rather than failing the tick.
var overlapTable [numShapeTypes][numShapeTypes]overlapFunc

func init() {
	overlapTable[ShapeRect][ShapeRect] = overlapRectRect
	overlapTable[ShapeRect][ShapeEllipse] = overlapRectEllipse
	overlapTable[ShapeEllipse][ShapeRect] = flipOverlap(overlapRectEllipse)
	overlapTable[ShapeEllipse][ShapeEllipse] = overlapEllipseEllipse
	overlapTable[ShapeRect][ShapePolygon] = overlapSAT
	overlapTable[ShapePolygon][ShapeRect] = overlapSAT
	overlapTable[ShapePolygon][ShapePolygon] = overlapSAT
	overlapTable[ShapeRect][ShapeLine] = overlapSAT
	overlapTable[ShapeLine][ShapeRect] = overlapSAT
	overlapTable[ShapePolygon][ShapeLine] = overlapSAT
	overlapTable[ShapeLine][ShapePolygon] = overlapSAT
	// ellipse/polygon, ellipse/line, and line/line stay nil.
}

// shapeOverlap runs the pair table for two shapes at world positions.
func shapeOverlap(a Shape, ax, ay float64, b Shape, bx, by float64) (Vec2, bool) {
	if int(a.Type) >= numShapeTypes || int(b.Type) >= numShapeTypes {
		return Vec2{}, false
	}
	fn := overlapTable[a.Type][b.Type]
	if fn == nil {
		return Vec2{}, false
	}
	return fn(a, ax, ay, b, bx, by)
}

// flipOverlap swaps the argument order of fn and negates the result, so
// one implementation serves both orderings of an asymmetric pair.
func flipOverlap(fn overlapFunc) overlapFunc {
	return func(a Shape, ax, ay float64, b Shape, bx, by float64) (Vec2, bool) {
		ov, ok := fn(b, bx, by, a, ax, ay)
		return Vec2{X: -ov.X, Y: -ov.Y}, ok
	}
}

// overlapRectRect is the axis-aligned fast path: penetration on each axis,
// push along the shallower one toward a's center.
func overlapRectRect(a Shape, ax, ay float64, b Shape, bx, by float64) (Vec2, bool) {
	ab := a.BoundsAt(ax, ay)
	bb := b.BoundsAt(bx, by)
	overlapX := math.Min(ab.MaxX, bb.MaxX) - math.Max(ab.MinX, bb.MinX)
	overlapY := math.Min(ab.MaxY, bb.MaxY) - math.Max(ab.MinY, bb.MinY)
	if overlapX <= 0 || overlapY <= 0 {
		return Vec2{}, false
	}
	if overlapX < overlapY {
		if ab.CenterX() < bb.CenterX() {
			overlapX = -overlapX
		}
		return Vec2{X: overlapX}, true
	}
	if ab.CenterY() < bb.CenterY() {
		overlapY = -overlapY
	}
	return Vec2{Y: overlapY}, true
}

// circleAt reduces an ellipse shape to its narrow-phase circle.
func circleAt(s Shape, x, y float64) (cx, cy, r float64) {
	cx = x + s.OffsetX + s.Width/2
	cy = y + s.OffsetY + s.Height/2
	r = (s.Width + s.Height) / 4
	return cx, cy, r
}

func overlapEllipseEllipse(a Shape, ax, ay float64, b Shape, bx, by float64) (Vec2, bool) {
	acx, acy, ar := circleAt(a, ax, ay)
	bcx, bcy, br := circleAt(b, bx, by)
	dx := acx - bcx
	dy := acy - bcy
	dist := math.Hypot(dx, dy)
	pen := ar + br - dist
	if pen <= 0 {
		return Vec2{}, false
	}
	if dist == 0 {
		// Coincident centers: push along Y, direction is arbitrary.
		return Vec2{Y: pen}, true
	}
	return Vec2{X: dx / dist * pen, Y: dy / dist * pen}, true
}

// overlapRectEllipse tests an AABB against a circle by clamping the circle
// center to the rect. The returned vector pushes the rect out of the
// circle.
func overlapRectEllipse(a Shape, ax, ay float64, b Shape, bx, by float64) (Vec2, bool) {
	rb := a.BoundsAt(ax, ay)
	cx, cy, r := circleAt(b, bx, by)

	nearX := math.Max(rb.MinX, math.Min(cx, rb.MaxX))
	nearY := math.Max(rb.MinY, math.Min(cy, rb.MaxY))
	dx := nearX - cx
	dy := nearY - cy
	distSq := dx*dx + dy*dy

	if distSq > 0 {
		if distSq >= r*r {
			return Vec2{}, false
		}
		dist := math.Sqrt(distSq)
		pen := r - dist
		return Vec2{X: dx / dist * pen, Y: dy / dist * pen}, true
	}

	// Circle center inside the rect: fall back to the AABB test against
	// the circle's bounding square so the push-out axis stays sensible.
	return overlapRectRect(a, ax, ay,
		Shape{Type: ShapeRect, OffsetX: b.OffsetX + b.Width/2 - r, OffsetY: b.OffsetY + b.Height/2 - r, Width: r * 2, Height: r * 2},
		bx, by)
}

// --- Separating axis test ---

// maxStackPoints sizes the stack buffers for shape outlines. Polygons with
// more vertices spill to the heap, which is fine off the fast path.
const maxStackPoints = 8

// shapePoints appends the shape's outline in world space. Rects expand to
// their four corners so SAT can treat every supported shape uniformly.
func shapePoints(s Shape, x, y float64, buf []Vec2) []Vec2 {
	x += s.OffsetX
	y += s.OffsetY
	switch s.Type {
	case ShapeRect, ShapeEllipse:
		return append(buf,
			Vec2{X: x, Y: y},
			Vec2{X: x + s.Width, Y: y},
			Vec2{X: x + s.Width, Y: y + s.Height},
			Vec2{X: x, Y: y + s.Height},
		)
	default:
		for _, p := range s.Points {
			buf = append(buf, Vec2{X: x + p.X, Y: y + p.Y})
		}
		return buf
	}
}

// overlapSAT is the general convex test: project both outlines onto every
// edge normal and keep the axis of least penetration. Lines participate as
// two-point polygons.
func overlapSAT(a Shape, ax, ay float64, b Shape, bx, by float64) (Vec2, bool) {
	var abuf, bbuf [maxStackPoints]Vec2
	apts := shapePoints(a, ax, ay, abuf[:0])
	bpts := shapePoints(b, bx, by, bbuf[:0])
	return satMTV(apts, bpts)
}

// satMTV returns the minimum translation pushing polygon a out of polygon b.
func satMTV(a, b []Vec2) (Vec2, bool) {
	minOverlap := math.Inf(1)
	var minAxis Vec2

	for pass := 0; pass < 2; pass++ {
		pts := a
		if pass == 1 {
			pts = b
		}
		n := len(pts)
		for i := 0; i < n; i++ {
			j := i + 1
			if j == n {
				j = 0
			}
			ex := pts[j].X - pts[i].X
			ey := pts[j].Y - pts[i].Y
			axisX, axisY := -ey, ex
			length := math.Hypot(axisX, axisY)
			if length == 0 {
				continue
			}
			axisX /= length
			axisY /= length

			aMin, aMax := project(a, axisX, axisY)
			bMin, bMax := project(b, axisX, axisY)
			overlap := intervalPenetration(aMin, aMax, bMin, bMax)
			if overlap <= 0 {
				return Vec2{}, false
			}
			if overlap < minOverlap {
				minOverlap = overlap
				minAxis = Vec2{X: axisX, Y: axisY}
			}
		}
	}

	// Orient the axis so it pushes a away from b.
	acx, acy := centroid(a)
	bcx, bcy := centroid(b)
	if (acx-bcx)*minAxis.X+(acy-bcy)*minAxis.Y < 0 {
		minAxis.X = -minAxis.X
		minAxis.Y = -minAxis.Y
	}
	return Vec2{X: minAxis.X * minOverlap, Y: minAxis.Y * minOverlap}, true
}

// intervalPenetration returns the distance separating two projection
// intervals along one axis. When one interval contains the other the
// result is the shorter escape, so a zero-thickness segment inside a
// polygon still reports its push-out distance instead of zero.
func intervalPenetration(aMin, aMax, bMin, bMax float64) float64 {
	if aMin < bMin {
		if aMax < bMax {
			return aMax - bMin
		}
		return math.Min(aMax-bMin, bMax-aMin)
	}
	if aMax > bMax {
		return bMax - aMin
	}
	return math.Min(aMax-bMin, bMax-aMin)
}

func project(pts []Vec2, axisX, axisY float64) (min, max float64) {
	min = pts[0].X*axisX + pts[0].Y*axisY
	max = min
	for _, p := range pts[1:] {
		d := p.X*axisX + p.Y*axisY
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

func centroid(pts []Vec2) (x, y float64) {
	for _, p := range pts {
		x += p.X
		y += p.Y
	}
	n := float64(len(pts))
	return x / n, y / n
}
