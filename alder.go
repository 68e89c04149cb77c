package alder

// Vec2 is a 2D vector used for positions, velocities, forces, and overlap
// results throughout the API.
type Vec2 struct {
	X, Y float64
}

// CollisionContext carries the data for one side of a resolved contact.
// The Overlap vector is the minimum translation that pushes Node out of
// Other; the other participant receives the same context with Overlap
// negated.
type CollisionContext struct {
	Node    *Node
	Other   *Node
	Overlap Vec2
}

// CollisionEvent is the flattened form of a contact, emitted to an optional
// CollisionSink for consumption outside the physics loop (diagnostics, ECS
// bridges).
type CollisionEvent struct {
	EntityA  uint32
	EntityB  uint32
	OverlapX float64
	OverlapY float64
}

// CollisionSink is the interface for optional event forwarding. When set on
// a World, every resolved contact is emitted once, after both participants'
// OnCollision callbacks have run.
type CollisionSink interface {
	EmitCollision(event CollisionEvent)
}
