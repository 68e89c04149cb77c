package alder

import "fmt"

// positionEpsilon is the smallest per-tick displacement considered a real
// move. Anything below it leaves the ancestor's dirty flag untouched so
// renderers can skip static subtrees.
const positionEpsilon = 1e-8

// Body is the per-entity physics state owned by a renderable node (its
// "ancestor"). The body stores velocity and accumulated force; position
// lives on the ancestor and is advanced by Update.
//
// Static bodies are excluded from gravity and integration but remain
// collision targets. Kinematic bodies ignore forces and gravity yet still
// integrate velocity, which suits externally driven platforms (see
// MotionTween).
type Body struct {
	// Shape is the collision geometry in the ancestor's local space.
	Shape Shape

	// Velocity in units per second.
	Velocity Vec2

	// Mass must be positive. Defaults to 1.
	Mass float64

	// GravityScale multiplies the world gravity for this body only.
	// Zero disables gravity, exactly like IgnoreGravity.
	GravityScale float64

	// MaxVelocity clamps the speed per axis after force application.
	// A zero component leaves that axis unclamped.
	MaxVelocity Vec2

	// Friction decelerates each axis toward zero, in units per second
	// squared. Applied during integration, after forces.
	Friction Vec2

	// Bounce is the restitution applied on the contact normal during
	// collision response. 0 = dead stop, 1 = full reflection.
	Bounce float64

	// Flags
	Static        bool
	Kinematic     bool
	IgnoreGravity bool

	// Internal
	ancestor    *Node
	force       Vec2
	updateStamp uint64 // tick marker for the double-integration assertion
	driven      bool   // ancestor already moved by an external driver this tick
}

// NewBody creates a dynamic body with the given shape, unit mass, and
// full gravity.
func NewBody(shape Shape) *Body {
	return &Body{
		Shape:        shape,
		Mass:         1,
		GravityScale: 1,
	}
}

// Ancestor returns the node this body is attached to, or nil.
func (b *Body) Ancestor() *Node {
	return b.ancestor
}

// ApplyForce accumulates a force for the next integration step. Forces are
// zeroed by the world after each body's slot in the update loop.
func (b *Body) ApplyForce(fx, fy float64) {
	b.force.X += fx
	b.force.Y += fy
}

// ApplyImpulse changes velocity immediately, scaled by mass.
func (b *Body) ApplyImpulse(ix, iy float64) {
	b.Velocity.X += ix / b.Mass
	b.Velocity.Y += iy / b.Mass
}

// Force returns the currently accumulated force.
func (b *Body) Force() Vec2 {
	return b.force
}

// SetVelocity overwrites the velocity.
func (b *Body) SetVelocity(vx, vy float64) {
	b.Velocity.X = vx
	b.Velocity.Y = vy
}

// WorldBounds returns the body's shape bounds at the ancestor's current
// world position. Panics if the body is unattached.
func (b *Body) WorldBounds() Bounds {
	if b.ancestor == nil {
		panic("alder: body has no ancestor")
	}
	return b.Shape.BoundsAt(b.ancestor.worldX, b.ancestor.worldY)
}

// Update integrates one step of semi-implicit Euler: velocity absorbs the
// accumulated force first, then position advances by the new velocity.
// The position delta is written to the ancestor. Returns whether the
// position changed meaningfully.
//
// Gravity is not applied here — the world adds it to the force accumulator
// before calling Update, keeping gravity a world-level policy.
func (b *Body) Update(dt float64) bool {
	if b.Static || b.ancestor == nil {
		return false
	}
	if b.driven {
		// An external driver (MotionTween) translated the ancestor and set
		// the velocity this tick; skip integration so the motion is not
		// applied twice.
		b.driven = false
		return false
	}
	if globalDebug && b.Mass <= 0 {
		panic(fmt.Sprintf("alder debug: body on %q has non-positive mass %v", b.ancestor.Name, b.Mass))
	}

	if !b.Kinematic {
		b.Velocity.X += b.force.X / b.Mass * dt
		b.Velocity.Y += b.force.Y / b.Mass * dt
		b.Velocity.X = applyFriction(b.Velocity.X, b.Friction.X*dt)
		b.Velocity.Y = applyFriction(b.Velocity.Y, b.Friction.Y*dt)
		if b.MaxVelocity.X > 0 {
			b.Velocity.X = clamp(b.Velocity.X, b.MaxVelocity.X)
		}
		if b.MaxVelocity.Y > 0 {
			b.Velocity.Y = clamp(b.Velocity.Y, b.MaxVelocity.Y)
		}
	}

	dx := b.Velocity.X * dt
	dy := b.Velocity.Y * dt
	if dx > -positionEpsilon && dx < positionEpsilon &&
		dy > -positionEpsilon && dy < positionEpsilon {
		return false
	}
	b.ancestor.translate(dx, dy)
	return true
}

// applyFriction reduces speed toward zero by the friction amount.
func applyFriction(speed, friction float64) float64 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}

// clamp limits a value to [-max, max].
func clamp(v, max float64) float64 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
