package alder

import "math"

// Detector is the narrow-phase resolver. It consumes broadphase candidate
// sets from the world's quadtree and performs exact shape tests, response,
// and notification for true overlaps.
type Detector struct {
	world *World
}

func newDetector(w *World) *Detector {
	return &Detector{world: w}
}

// Collisions resolves contacts for entity against the current frame's
// quadtree snapshot and returns the number of resolved contacts.
//
// Candidates are processed in retrieval order, which is implementation-
// defined and not guaranteed stable across frames. Self-pairs, bodiless
// candidates, and static-vs-static pairs are skipped — the latter is the
// invariant that keeps per-frame cost proportional to moving bodies, not
// total bodies. Unsupported shape pairings count as no collision.
func (d *Detector) Collisions(entity *Node) int {
	if entity == nil || entity.disposed {
		return 0
	}
	body := entity.body
	if body == nil {
		return 0
	}
	w := d.world

	buf := w.pool.GetNodeBuffer()
	buf = w.broadphase.Retrieve(body.WorldBounds(), buf, nil)

	contacts := 0
	for _, cand := range buf {
		if cand == entity || cand.disposed {
			continue
		}
		other := cand.body
		if other == nil {
			continue
		}
		if body.Static && other.Static {
			continue
		}
		overlap, ok := shapeOverlap(
			body.Shape, entity.worldX, entity.worldY,
			other.Shape, cand.worldX, cand.worldY,
		)
		if !ok {
			continue
		}
		contacts++
		d.respond(entity, cand, overlap)
	}

	w.pool.PutNodeBuffer(buf)
	return contacts
}

// respond notifies both participants and, if neither opts out, separates
// the pair along the minimum translation vector and applies restitution on
// the contact normal.
func (d *Detector) respond(a, b *Node, overlap Vec2) {
	solidA := true
	if a.OnCollision != nil {
		solidA = a.OnCollision(CollisionContext{Node: a, Other: b, Overlap: overlap})
	}
	solidB := true
	if b.OnCollision != nil {
		solidB = b.OnCollision(CollisionContext{Node: b, Other: a, Overlap: Vec2{X: -overlap.X, Y: -overlap.Y}})
	}

	if d.world.sink != nil {
		d.world.sink.EmitCollision(CollisionEvent{
			EntityA:  a.ID,
			EntityB:  b.ID,
			OverlapX: overlap.X,
			OverlapY: overlap.Y,
		})
	}

	if !solidA || !solidB {
		return
	}

	ab := a.body
	bb := b.body
	aYields := !ab.Static && !ab.Kinematic
	bYields := !bb.Static && !bb.Kinematic

	switch {
	case aYields && bYields:
		a.translate(overlap.X/2, overlap.Y/2)
		b.translate(-overlap.X/2, -overlap.Y/2)
	case aYields:
		a.translate(overlap.X, overlap.Y)
	case bYields:
		b.translate(-overlap.X, -overlap.Y)
	default:
		// Neither side yields; notification only.
		return
	}

	length := math.Hypot(overlap.X, overlap.Y)
	if length == 0 {
		return
	}
	nx := overlap.X / length
	ny := overlap.Y / length
	if aYields {
		reflect(ab, nx, ny)
	}
	if bYields {
		reflect(bb, -nx, -ny)
	}
}

// reflect kills the velocity component driving the body into the contact
// and bounces it back scaled by restitution.
func reflect(b *Body, nx, ny float64) {
	vn := b.Velocity.X*nx + b.Velocity.Y*ny
	if vn >= 0 {
		return
	}
	scale := (1 + b.Bounce) * vn
	b.Velocity.X -= scale * nx
	b.Velocity.Y -= scale * ny
}
