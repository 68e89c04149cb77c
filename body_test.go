package alder

import (
	"math"
	"testing"
)

func newAttachedBody(shape Shape) (*Node, *Body) {
	n := NewNode("n", 0, 0, shape.Width, shape.Height)
	b := NewBody(shape)
	n.SetBody(b)
	return n, b
}

func TestNewBodyDefaults(t *testing.T) {
	b := NewBody(RectShape(10, 10))
	if b.Mass != 1 {
		t.Errorf("Mass = %v, want 1", b.Mass)
	}
	if b.GravityScale != 1 {
		t.Errorf("GravityScale = %v, want 1", b.GravityScale)
	}
	if b.Static || b.Kinematic || b.IgnoreGravity {
		t.Error("flags must default to false")
	}
}

func TestBodyUpdateSemiImplicitEuler(t *testing.T) {
	n, b := newAttachedBody(RectShape(10, 10))

	// Velocity absorbs the force before the position advances: one half
	// tick with force (10, 0) ends with v = 5 and a move of 2.5.
	b.ApplyForce(10, 0)
	if !b.Update(0.5) {
		t.Fatal("Update reported no movement")
	}
	if b.Velocity.X != 5 {
		t.Errorf("Velocity.X = %v, want 5", b.Velocity.X)
	}
	if n.X != 2.5 {
		t.Errorf("position X = %v, want 2.5", n.X)
	}
}

func TestBodyUpdateMassScalesForce(t *testing.T) {
	_, light := newAttachedBody(RectShape(1, 1))
	_, heavy := newAttachedBody(RectShape(1, 1))
	heavy.Mass = 4

	light.ApplyForce(8, 0)
	heavy.ApplyForce(8, 0)
	light.Update(1)
	heavy.Update(1)

	if light.Velocity.X != 8 {
		t.Errorf("light Velocity.X = %v, want 8", light.Velocity.X)
	}
	if heavy.Velocity.X != 2 {
		t.Errorf("heavy Velocity.X = %v, want 2", heavy.Velocity.X)
	}
}

func TestBodyUpdateFriction(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
		friction float64
		dt       float64
		want     float64
	}{
		{"decelerates", 10, 4, 1, 6},
		{"negative side", -10, 4, 1, -6},
		{"stops at zero", 2, 5, 1, 0},
		{"stops at zero negative", -2, 5, 1, 0},
		{"scaled by dt", 10, 4, 0.5, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, b := newAttachedBody(RectShape(1, 1))
			b.SetVelocity(tt.velocity, 0)
			b.Friction.X = tt.friction
			b.Update(tt.dt)
			if b.Velocity.X != tt.want {
				t.Errorf("Velocity.X = %v, want %v", b.Velocity.X, tt.want)
			}
		})
	}
}

func TestBodyUpdateMaxVelocity(t *testing.T) {
	_, b := newAttachedBody(RectShape(1, 1))
	b.MaxVelocity = Vec2{X: 3, Y: 3}
	b.ApplyForce(100, -100)
	b.Update(1)
	if b.Velocity.X != 3 {
		t.Errorf("Velocity.X = %v, want clamp at 3", b.Velocity.X)
	}
	if b.Velocity.Y != -3 {
		t.Errorf("Velocity.Y = %v, want clamp at -3", b.Velocity.Y)
	}

	// A zero component leaves that axis unclamped.
	_, u := newAttachedBody(RectShape(1, 1))
	u.MaxVelocity = Vec2{X: 3}
	u.ApplyForce(0, 100)
	u.Update(1)
	if u.Velocity.Y != 100 {
		t.Errorf("unclamped Velocity.Y = %v, want 100", u.Velocity.Y)
	}
}

func TestBodyUpdateEpsilon(t *testing.T) {
	n, b := newAttachedBody(RectShape(1, 1))
	b.SetVelocity(1e-10, 1e-10)
	if b.Update(1) {
		t.Error("sub-epsilon displacement reported as movement")
	}
	if n.X != 0 || n.Y != 0 {
		t.Errorf("position moved to (%v, %v)", n.X, n.Y)
	}
	if n.ConsumeDirty() {
		t.Error("sub-epsilon displacement marked the node dirty")
	}
}

func TestBodyUpdateStatic(t *testing.T) {
	n, b := newAttachedBody(RectShape(1, 1))
	b.Static = true
	b.SetVelocity(100, 100)
	b.ApplyForce(50, 50)
	if b.Update(1) {
		t.Error("static body reported movement")
	}
	if n.X != 0 || n.Y != 0 {
		t.Error("static body moved")
	}
}

func TestBodyUpdateKinematic(t *testing.T) {
	n, b := newAttachedBody(RectShape(1, 1))
	b.Kinematic = true
	b.SetVelocity(3, 0)
	b.Friction.X = 100
	b.MaxVelocity = Vec2{X: 1, Y: 1}
	b.ApplyForce(100, 100)

	if !b.Update(1) {
		t.Fatal("kinematic body with velocity did not move")
	}
	if b.Velocity.X != 3 {
		t.Errorf("kinematic velocity changed to %v", b.Velocity.X)
	}
	if n.X != 3 {
		t.Errorf("position X = %v, want 3", n.X)
	}
}

func TestBodyUpdateUnattached(t *testing.T) {
	b := NewBody(RectShape(1, 1))
	b.SetVelocity(5, 5)
	if b.Update(1) {
		t.Error("unattached body reported movement")
	}
}

func TestBodyApplyImpulse(t *testing.T) {
	_, b := newAttachedBody(RectShape(1, 1))
	b.Mass = 2
	b.ApplyImpulse(4, -6)
	if b.Velocity.X != 2 || b.Velocity.Y != -3 {
		t.Errorf("velocity = %+v, want (2, -3)", b.Velocity)
	}
}

func TestBodyForceAccumulates(t *testing.T) {
	_, b := newAttachedBody(RectShape(1, 1))
	b.ApplyForce(1, 2)
	b.ApplyForce(3, -1)
	if got := b.Force(); got != (Vec2{X: 4, Y: 1}) {
		t.Errorf("Force() = %+v, want (4, 1)", got)
	}
}

func TestBodyWorldBounds(t *testing.T) {
	n, b := newAttachedBody(RectShape(10, 20))
	n.X, n.Y = 30, 40
	updateWorldPositions(n, 0, 0)
	want := Bounds{MinX: 30, MinY: 40, MaxX: 40, MaxY: 60}
	if got := b.WorldBounds(); got != want {
		t.Errorf("WorldBounds = %+v, want %+v", got, want)
	}
}

func TestBodyWorldBoundsUnattachedPanics(t *testing.T) {
	b := NewBody(RectShape(1, 1))
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unattached WorldBounds, got none")
		}
	}()
	b.WorldBounds()
}

func TestBodyNonPositiveMassPanicsInDebug(t *testing.T) {
	globalDebug = true
	defer func() { globalDebug = false }()

	_, b := newAttachedBody(RectShape(1, 1))
	b.Mass = 0
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected debug panic for zero mass, got none")
		}
	}()
	b.Update(1)
}

func TestApplyFriction(t *testing.T) {
	if got := applyFriction(10, 3); got != 7 {
		t.Errorf("applyFriction(10, 3) = %v, want 7", got)
	}
	if got := applyFriction(-10, 3); got != -7 {
		t.Errorf("applyFriction(-10, 3) = %v, want -7", got)
	}
	if got := applyFriction(2, 3); got != 0 {
		t.Errorf("applyFriction(2, 3) = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 3); got != 3 {
		t.Errorf("clamp(5, 3) = %v, want 3", got)
	}
	if got := clamp(-5, 3); got != -3 {
		t.Errorf("clamp(-5, 3) = %v, want -3", got)
	}
	if got := clamp(2, 3); got != 2 {
		t.Errorf("clamp(2, 3) = %v, want 2", got)
	}
	if got := clamp(math.Copysign(0, -1), 3); got != 0 {
		t.Errorf("clamp(-0, 3) = %v, want 0", got)
	}
}
