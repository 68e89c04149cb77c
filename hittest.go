package alder

import "github.com/hajimehoshi/ebiten/v2"

// Point picking over the broadphase: a quadtree point query narrows the
// candidates, then an exact containment test per shape decides. Nodes with
// a body are tested against their collision shape; plain collidable nodes
// fall back to their world bounds.

// HitTest returns the topmost node at the world point (x, y), ordered by
// ZIndex, or nil when nothing is hit. The quadtree holds the snapshot
// built at the start of the most recent tick, so results lag node motion
// by at most one frame.
func HitTest(w *World, x, y float64) *Node {
	buf := w.pool.GetNodeBuffer()
	buf = hitTestAll(w, x, y, buf)
	var hit *Node
	if len(buf) > 0 {
		hit = buf[0]
	}
	w.pool.PutNodeBuffer(buf)
	return hit
}

// HitTestAll appends every node at the world point (x, y) to buf, topmost
// first.
func HitTestAll(w *World, x, y float64, buf []*Node) []*Node {
	return hitTestAll(w, x, y, buf)
}

func hitTestAll(w *World, x, y float64, buf []*Node) []*Node {
	point := Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
	start := len(buf)
	buf = w.broadphase.Retrieve(point, buf, ByZIndex)

	// Compact in place, keeping exact hits only.
	kept := start
	for _, n := range buf[start:] {
		if n.disposed {
			continue
		}
		if hitNode(n, x, y) {
			buf[kept] = n
			kept++
		}
	}
	for i := kept; i < len(buf); i++ {
		buf[i] = nil
	}
	return buf[:kept]
}

// CursorHit returns the topmost node under the mouse cursor, treating
// screen coordinates as world coordinates. Pass the cursor through a
// camera transform first if the view is offset.
func CursorHit(w *World) *Node {
	cx, cy := ebiten.CursorPosition()
	return HitTest(w, float64(cx), float64(cy))
}

func hitNode(n *Node, x, y float64) bool {
	if n.body != nil {
		return shapeContains(n.body.Shape, n.worldX, n.worldY, x, y)
	}
	return n.WorldBounds().Contains(x, y)
}

// shapeContains reports whether the world point (px, py) lies inside the
// shape with its ancestor at (x, y). Edges count as inside. Lines have no
// interior and never contain a point.
func shapeContains(s Shape, x, y, px, py float64) bool {
	switch s.Type {
	case ShapeRect:
		return s.BoundsAt(x, y).Contains(px, py)
	case ShapeEllipse:
		cx, cy, r := circleAt(s, x, y)
		dx := px - cx
		dy := py - cy
		return dx*dx+dy*dy <= r*r
	case ShapePolygon:
		return polygonContains(s.Points, x+s.OffsetX, y+s.OffsetY, px, py)
	default:
		return false
	}
}

// polygonContains runs the cross-product sign test: the point is inside a
// convex polygon iff it sits on the same side of every edge, either
// winding order.
func polygonContains(pts []Vec2, ox, oy, px, py float64) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := ox + pts[i].X
		y1 := oy + pts[i].Y
		j := i + 1
		if j == n {
			j = 0
		}
		x2 := ox + pts[j].X
		y2 := oy + pts[j].Y

		cross := (x2-x1)*(py-y1) - (y2-y1)*(px-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
