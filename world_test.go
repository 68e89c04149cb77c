package alder

import (
	"math"
	"testing"
)

func TestNewWorldValidation(t *testing.T) {
	t.Run("inverted bounds", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic, got none")
			}
		}()
		NewWorld(WorldConfig{Bounds: Bounds{100, 0, 0, 100}})
	})
	t.Run("negative maxChildren", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic, got none")
			}
		}()
		NewWorld(WorldConfig{Bounds: Bounds{0, 0, 100, 100}, MaxChildren: -1})
	})
}

func TestWorldGravity(t *testing.T) {
	w := NewWorld(WorldConfig{
		Bounds:  Bounds{0, 0, 1000, 1000},
		Gravity: Vec2{Y: 0.98},
	})
	light := addRectEntity(w, "light", 10, 10, 10, false)
	heavy := addRectEntity(w, "heavy", 100, 10, 10, false)
	heavy.Body().Mass = 5

	w.Update(1)

	// Gravity is an acceleration: both bodies gain the same velocity and
	// fall the same distance regardless of mass.
	if light.Body().Velocity.Y != 0.98 {
		t.Errorf("light Velocity.Y = %v, want 0.98", light.Body().Velocity.Y)
	}
	if heavy.Body().Velocity.Y != 0.98 {
		t.Errorf("heavy Velocity.Y = %v, want 0.98", heavy.Body().Velocity.Y)
	}
	if math.Abs(light.Y-10.98) > 1e-12 {
		t.Errorf("light Y = %v, want 10.98", light.Y)
	}

	w.Update(1)
	if v := light.Body().Velocity.Y; math.Abs(v-1.96) > 1e-12 {
		t.Errorf("Velocity.Y after two ticks = %v, want 1.96", v)
	}
}

func TestWorldGravityExemptions(t *testing.T) {
	w := NewWorld(WorldConfig{
		Bounds:  Bounds{0, 0, 1000, 1000},
		Gravity: Vec2{Y: 10},
	})
	ignoring := addRectEntity(w, "ignoring", 10, 10, 10, false)
	ignoring.Body().IgnoreGravity = true
	weightless := addRectEntity(w, "weightless", 50, 10, 10, false)
	weightless.Body().GravityScale = 0
	scaled := addRectEntity(w, "scaled", 100, 10, 10, false)
	scaled.Body().GravityScale = 0.5
	kinematic := addRectEntity(w, "kinematic", 200, 10, 10, false)
	kinematic.Body().Kinematic = true
	static := addRectEntity(w, "static", 300, 10, 10, true)

	w.Update(1)

	if ignoring.Body().Velocity.Y != 0 {
		t.Errorf("IgnoreGravity body fell: Velocity.Y = %v", ignoring.Body().Velocity.Y)
	}
	if weightless.Body().Velocity.Y != 0 {
		t.Errorf("zero GravityScale body fell: Velocity.Y = %v", weightless.Body().Velocity.Y)
	}
	if scaled.Body().Velocity.Y != 5 {
		t.Errorf("scaled Velocity.Y = %v, want 5", scaled.Body().Velocity.Y)
	}
	if kinematic.Body().Velocity.Y != 0 {
		t.Errorf("kinematic body fell: Velocity.Y = %v", kinematic.Body().Velocity.Y)
	}
	if static.Y != 10 {
		t.Errorf("static body moved: Y = %v", static.Y)
	}
}

func TestWorldUpdateEndToEnd(t *testing.T) {
	w := newCollisionWorld()
	a := addRectEntity(w, "a", 10, 10, 10, false)
	a.Body().SetVelocity(5, 0)
	b := addRectEntity(w, "b", 20, 10, 10, true)

	hits := 0
	a.OnCollision = func(CollisionContext) bool { hits++; return true }

	w.Update(1)

	// a integrates to x=15, penetrates the wall by 5, and is pushed back
	// out with its approach velocity killed.
	if hits != 1 {
		t.Fatalf("collision callbacks = %d, want 1", hits)
	}
	if a.X != 10 {
		t.Errorf("a.X = %v, want 10 after separation", a.X)
	}
	if a.Body().Velocity.X != 0 {
		t.Errorf("a Velocity.X = %v, want 0 after dead-stop contact", a.Body().Velocity.X)
	}
	if b.X != 20 {
		t.Errorf("wall moved: b.X = %v", b.X)
	}

	// Settled: the next tick produces no motion and the touching pair is
	// no longer a contact.
	w.Update(1)
	if a.X != 10 {
		t.Errorf("a.X = %v after settle tick, want 10", a.X)
	}
	if hits != 1 {
		t.Errorf("collision callbacks after settle = %d, want still 1", hits)
	}
}

func TestWorldStaticOnlyProducesNoDetection(t *testing.T) {
	w := newCollisionWorld()
	// Overlapping static walls: nothing ever initiates detection.
	a := addRectEntity(w, "a", 10, 10, 20, true)
	b := addRectEntity(w, "b", 15, 10, 20, true)
	calls := 0
	a.OnCollision = func(CollisionContext) bool { calls++; return true }
	b.OnCollision = func(CollisionContext) bool { calls++; return true }

	w.Update(1)

	if calls != 0 {
		t.Errorf("static-only world produced %d callback invocations, want 0", calls)
	}
	if a.X != 10 || b.X != 15 {
		t.Error("static-only world moved a body")
	}
}

func TestWorldForceClearedAfterTick(t *testing.T) {
	w := newCollisionWorld()
	a := addRectEntity(w, "a", 10, 10, 10, false)
	a.Body().ApplyForce(7, 0)

	w.Update(1)
	if got := a.Body().Force(); got != (Vec2{}) {
		t.Errorf("force after tick = %+v, want zero", got)
	}
	// The force acted for exactly one tick.
	if a.Body().Velocity.X != 7 {
		t.Errorf("Velocity.X = %v, want 7", a.Body().Velocity.X)
	}
	w.Update(1)
	if a.Body().Velocity.X != 7 {
		t.Errorf("Velocity.X after second tick = %v, want unchanged 7", a.Body().Velocity.X)
	}
}

// --- Body registration ---

func TestWorldAddBody(t *testing.T) {
	w := newCollisionWorld()
	a := addRectEntity(w, "a", 10, 10, 10, false)

	if w.AddBody(a.Body()) {
		t.Error("duplicate AddBody returned true")
	}
	if len(w.Bodies()) != 1 {
		t.Errorf("Bodies() has %d entries, want 1", len(w.Bodies()))
	}

	t.Run("nil body", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic, got none")
			}
		}()
		w.AddBody(nil)
	})
	t.Run("unattached body", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic, got none")
			}
		}()
		w.AddBody(NewBody(RectShape(1, 1)))
	})
}

func TestWorldRemoveBody(t *testing.T) {
	w := newCollisionWorld()
	a := addRectEntity(w, "a", 10, 10, 10, false)

	if !w.RemoveBody(a.Body()) {
		t.Error("RemoveBody returned false for a registered body")
	}
	if len(w.Bodies()) != 0 {
		t.Errorf("Bodies() has %d entries, want 0", len(w.Bodies()))
	}
	if w.RemoveBody(a.Body()) {
		t.Error("RemoveBody returned true for an unregistered body")
	}
}

func TestWorldDeferredMutationDuringUpdate(t *testing.T) {
	w := newCollisionWorld()
	a := addRectEntity(w, "a", 10, 10, 10, false)
	b := addRectEntity(w, "b", 15, 10, 10, true)

	spawned := NewNode("spawned", 100, 100, 10, 10)
	spawned.SetBody(NewBody(RectShape(10, 10)))
	w.Root().AddChild(spawned)

	var sizeDuring int
	a.OnCollision = func(CollisionContext) bool {
		if !w.AddBody(spawned.Body()) {
			t.Error("deferred AddBody returned false")
		}
		w.RemoveBody(b.Body())
		sizeDuring = len(w.Bodies())
		return true
	}

	w.Update(1)

	if sizeDuring != 2 {
		t.Errorf("Bodies() during update = %d, want 2 (mutations deferred)", sizeDuring)
	}
	if len(w.Bodies()) != 2 {
		t.Fatalf("Bodies() after update = %d, want 2", len(w.Bodies()))
	}
	if !w.containsBody(spawned.Body()) {
		t.Error("deferred add was not applied")
	}
	if w.containsBody(b.Body()) {
		t.Error("deferred remove was not applied")
	}
}

// --- Pause and culling ---

func TestWorldPause(t *testing.T) {
	w := newCollisionWorld()
	a := addRectEntity(w, "a", 10, 10, 10, false)
	a.Body().SetVelocity(5, 0)
	menu := addRectEntity(w, "menu", 100, 100, 10, false)
	menu.Body().SetVelocity(5, 0)
	menu.UpdateWhenPaused = true

	w.Pause()
	if !w.IsPaused() {
		t.Fatal("IsPaused() = false after Pause")
	}
	w.Update(1)

	if a.X != 10 {
		t.Errorf("paused body moved: a.X = %v", a.X)
	}
	if menu.X != 105 {
		t.Errorf("UpdateWhenPaused body frozen: menu.X = %v, want 105", menu.X)
	}

	w.Resume()
	w.Update(1)
	if a.X != 15 {
		t.Errorf("resumed body a.X = %v, want 15", a.X)
	}
}

func TestWorldViewportCulling(t *testing.T) {
	w := newCollisionWorld()
	inside := addRectEntity(w, "inside", 10, 10, 10, false)
	inside.Body().SetVelocity(1, 0)
	outside := addRectEntity(w, "outside", 150, 150, 10, false)
	outside.Body().SetVelocity(1, 0)
	alwaysOn := addRectEntity(w, "alwaysOn", 150, 100, 10, false)
	alwaysOn.Body().SetVelocity(1, 0)
	alwaysOn.AlwaysUpdate = true

	w.SetViewport(Bounds{0, 0, 100, 100})
	w.Update(1)

	if inside.X != 11 {
		t.Errorf("inside.X = %v, want 11", inside.X)
	}
	if outside.X != 150 {
		t.Errorf("culled body moved: outside.X = %v", outside.X)
	}
	if alwaysOn.X != 151 {
		t.Errorf("AlwaysUpdate body culled: alwaysOn.X = %v, want 151", alwaysOn.X)
	}

	w.ClearViewport()
	w.Update(1)
	if outside.X != 151 {
		t.Errorf("outside.X = %v after ClearViewport, want 151", outside.X)
	}
}

// --- Region and reset ---

func TestWorldSetBounds(t *testing.T) {
	w := newCollisionWorld()
	next := Bounds{0, 0, 800, 600}
	w.SetBounds(next)
	if w.Bounds() != next {
		t.Errorf("Bounds() = %+v, want %+v", w.Bounds(), next)
	}

	// The quadtree adopts the region at the next rebuild.
	w.Update(1)
	if w.Broadphase().Bounds() != next {
		t.Errorf("broadphase bounds = %+v, want %+v", w.Broadphase().Bounds(), next)
	}

	t.Run("invalid region", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic, got none")
			}
		}()
		w.SetBounds(Bounds{10, 0, 0, 10})
	})
}

func TestWorldReset(t *testing.T) {
	w := NewWorld(WorldConfig{
		Bounds:  Bounds{0, 0, 200, 200},
		Gravity: Vec2{Y: 9.8},
	})
	addRectEntity(w, "a", 10, 10, 10, false)
	addRectEntity(w, "b", 50, 50, 10, true)
	w.Update(1)

	w.Reset()

	if len(w.Bodies()) != 0 {
		t.Errorf("Bodies() after Reset = %d, want 0", len(w.Bodies()))
	}
	if w.Root().NumChildren() != 0 {
		t.Errorf("root has %d children after Reset, want 0", w.Root().NumChildren())
	}
	if w.Gravity != (Vec2{Y: 9.8}) {
		t.Error("Reset changed gravity")
	}
	if w.Bounds() != (Bounds{0, 0, 200, 200}) {
		t.Error("Reset changed the world region")
	}

	// The world remains usable.
	c := addRectEntity(w, "c", 10, 10, 10, false)
	c.Body().SetVelocity(1, 0)
	w.Update(1)
	if c.X != 11 {
		t.Errorf("c.X = %v after post-Reset tick, want 11", c.X)
	}
}

// --- Debug assertions ---

func TestWorldPoolDrainAssertion(t *testing.T) {
	w := newCollisionWorld()
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	// A borrow held across the tick boundary is a leak.
	w.Pool().GetBounds()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected debug panic for leaked pool object, got none")
		}
	}()
	w.Update(1)
}

func TestWorldUpdateDebugStatsDoNotPanic(t *testing.T) {
	w := newCollisionWorld()
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	a := addRectEntity(w, "a", 10, 10, 10, false)
	a.Body().SetVelocity(5, 0)
	addRectEntity(w, "b", 20, 10, 10, true)

	w.Update(1)
	w.Update(1)
}

func TestWorldViewportCullingUsesShapeBounds(t *testing.T) {
	w := newCollisionWorld()

	// The node extent sits outside the viewport, but the offset shape
	// hangs inside it. The body collides there, so it must keep updating.
	n := NewNode("offset", 150, 150, 10, 10)
	shape := RectShape(10, 10)
	shape.OffsetX = -100
	shape.OffsetY = -100
	b := NewBody(shape)
	b.SetVelocity(1, 0)
	n.SetBody(b)
	w.Root().AddChild(n)
	w.AddBody(b)

	w.SetViewport(Bounds{0, 0, 100, 100})
	w.Update(1)
	if n.X != 151 {
		t.Errorf("offset-shape body was culled: X = %v, want 151", n.X)
	}
}
