package alder

import (
	"fmt"
	"time"
)

// WorldConfig configures a World at construction. Zero values fall back to
// sensible defaults where noted; invalid values fail fast.
type WorldConfig struct {
	// Bounds is the world region covered by the broadphase quadtree.
	// Required, finite, min <= max.
	Bounds Bounds

	// Gravity is applied to every eligible body each tick, scaled by the
	// body's mass and GravityScale.
	Gravity Vec2

	// MaxChildren is the quadtree per-leaf capacity before a split.
	// 0 = DefaultMaxChildren.
	MaxChildren int

	// MaxDepth is the deepest quadtree level. 0 = DefaultMaxDepth.
	MaxDepth int

	// Pool supplies transient objects for the update loop. nil = a new
	// private pool.
	Pool *Pool
}

// World is the owning simulation container: it holds the renderable tree
// root, the set of active bodies, one QuadTree, and one Detector, and
// drives the per-tick update from a single Update call.
type World struct {
	// Gravity may be swapped at runtime; it is world-level policy, not
	// body state.
	Gravity Vec2

	root       *Node
	bounds     Bounds
	broadphase *QuadTree
	detector   *Detector
	pool       *Pool

	bodies        []*Body
	pendingAdd    []*Body
	pendingRemove []*Body
	updating      bool

	paused      bool
	viewport    Bounds
	hasViewport bool

	sink  CollisionSink
	debug bool
	tick  uint64
}

// NewWorld creates a world from cfg. Panics on an invalid configuration —
// errors surface at construction, never mid-tick.
func NewWorld(cfg WorldConfig) *World {
	if cfg.MaxChildren == 0 {
		cfg.MaxChildren = DefaultMaxChildren
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Pool == nil {
		cfg.Pool = NewPool()
	}
	w := &World{
		Gravity: cfg.Gravity,
		root:    NewContainer("world"),
		bounds:  cfg.Bounds,
		pool:    cfg.Pool,
	}
	// NewQuadTree validates bounds and split tuning.
	w.broadphase = NewQuadTree(cfg.Bounds, cfg.MaxChildren, cfg.MaxDepth, cfg.Pool)
	w.broadphase.Clear()
	w.detector = newDetector(w)
	return w
}

// Root returns the world's root container node.
func (w *World) Root() *Node {
	return w.root
}

// Broadphase returns the world's quadtree for general-purpose spatial
// queries (input hit-testing, AI perception). The tree holds the snapshot
// built at the start of the most recent tick.
func (w *World) Broadphase() *QuadTree {
	return w.broadphase
}

// Detector returns the world's narrow-phase resolver.
func (w *World) Detector() *Detector {
	return w.detector
}

// Pool returns the world's object pool.
func (w *World) Pool() *Pool {
	return w.pool
}

// Bounds returns the world region.
func (w *World) Bounds() Bounds {
	return w.bounds
}

// SetBounds resizes the world region, e.g. on level load. The quadtree
// picks up the new region at the next tick's rebuild; registered bodies
// are untouched. Panics on an invalid region.
func (w *World) SetBounds(b Bounds) {
	validateRegion(b)
	w.bounds = b
}

// --- Body set ---

// AddBody registers a body with the world's active set. Returns false if
// the body is already registered (uniqueness is enforced; duplicate
// insertion is a no-op). Panics if body is nil or not attached to a node.
// Safe to call from collision callbacks: mutation during the update loop
// is deferred until the pass completes.
func (w *World) AddBody(body *Body) bool {
	if body == nil {
		panic("alder: cannot add nil body")
	}
	if body.ancestor == nil {
		panic("alder: body must be attached to a node before AddBody")
	}
	if w.containsBody(body) {
		return false
	}
	if w.updating {
		w.pendingAdd = append(w.pendingAdd, body)
		return true
	}
	w.bodies = append(w.bodies, body)
	return true
}

// RemoveBody unregisters a body. Returns false if the body was not
// registered. Safe to call from collision callbacks; removal during the
// update loop is deferred until the pass completes.
func (w *World) RemoveBody(body *Body) bool {
	if !w.containsBody(body) {
		return false
	}
	if w.updating {
		w.pendingRemove = append(w.pendingRemove, body)
		return true
	}
	w.removeBodyNow(body)
	return true
}

// Bodies returns the active body set for diagnostics. The returned slice
// MUST NOT be mutated by the caller; it excludes mutations deferred during
// an in-flight update.
func (w *World) Bodies() []*Body {
	return w.bodies
}

func (w *World) containsBody(body *Body) bool {
	for _, b := range w.bodies {
		if b == body {
			return true
		}
	}
	for _, b := range w.pendingAdd {
		if b == body {
			return true
		}
	}
	return false
}

func (w *World) removeBodyNow(body *Body) {
	for i, b := range w.bodies {
		if b == body {
			copy(w.bodies[i:], w.bodies[i+1:])
			w.bodies[len(w.bodies)-1] = nil
			w.bodies = w.bodies[:len(w.bodies)-1]
			return
		}
	}
}

func (w *World) flushPending() {
	for _, b := range w.pendingRemove {
		w.removeBodyNow(b)
	}
	w.pendingRemove = w.pendingRemove[:0]
	for _, b := range w.pendingAdd {
		found := false
		for _, existing := range w.bodies {
			if existing == b {
				found = true
				break
			}
		}
		if !found {
			w.bodies = append(w.bodies, b)
		}
	}
	w.pendingAdd = w.pendingAdd[:0]
}

// --- Pause and viewport culling ---

// Pause suspends body updates. Bodies whose ancestor sets UpdateWhenPaused
// keep updating (e.g. menu physics over a frozen game).
func (w *World) Pause() {
	w.paused = true
}

// Resume lifts a pause.
func (w *World) Resume() {
	w.paused = false
}

// IsPaused reports whether the world is paused.
func (w *World) IsPaused() bool {
	return w.paused
}

/// SetViewport enables viewport culling: bodies whose shape bounds fall
// outside the region are skipped unless the ancestor sets AlwaysUpdate.
func (w *World) SetViewport(b Bounds) {
	validateRegion(b)
	w.viewport = b
	w.hasViewport = true
}

// ClearViewport disables viewport culling; every registered body updates.
func (w *World) ClearViewport() {
	w.hasViewport = false
}

// --- Event sink and debug mode ---

// SetCollisionSink sets the optional collision event forwarder (see the
// alder/ecs subpackage for a Donburi-backed sink).
func (w *World) SetCollisionSink(sink CollisionSink) {
	w.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, pool leaks,
// double integration, stale-quadtree retrieval, and disposed-node tree
// operations panic with descriptive messages, and per-tick stats are
// logged to stderr.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
	globalDebug = enabled
}

// --- Update loop ---

// Update runs one simulation tick, strictly ordered: refresh world
// positions, clear and repopulate the quadtree from the full renderable
// tree, then for each registered body — skipping static bodies, paused
// bodies without the exemption, and culled bodies — apply gravity,
// integrate, resolve collisions for its ancestor, and zero its force
// accumulator.
//
// The loop makes exactly one pass; a dropped frame means the whole
// sequence reruns next tick from current state. AddBody/RemoveBody calls
// made by collision callbacks are deferred and applied after the pass.
func (w *World) Update(dt float64) {
	w.tick++

	var stats worldStats
	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}

	updateWorldPositions(w.root, 0, 0)
	w.broadphase.ClearBounds(w.bounds)
	w.broadphase.InsertContainer(w.root)

	if w.debug {
		stats.broadphaseTime = time.Since(t0)
		stats.inserted = w.broadphase.Len()
		t0 = time.Now()
	}

	w.updating = true
	for _, body := range w.bodies {
		if body.Static {
			continue
		}
		n := body.ancestor
		if n == nil || n.disposed {
			continue
		}
		if w.paused && !n.UpdateWhenPaused {
			continue
		}
		// Cull on the body's shape bounds, not the ancestor's extent: the
		// shape may be offset past the node and is what collides.
		if w.hasViewport && !n.AlwaysUpdate && !body.WorldBounds().Overlaps(w.viewport) {
			continue
		}

		if globalDebug {
			if body.updateStamp == w.tick {
				panic(fmt.Sprintf("alder debug: body on %q integrated twice in tick %d", n.Name, w.tick))
			}
		}
		body.updateStamp = w.tick

		w.applyGravity(body)
		if body.Update(dt) {
			n.dirty = true
		}
		contacts := w.detector.Collisions(n)
		body.force = Vec2{}

		if w.debug {
			stats.updated++
			stats.contacts += contacts
		}
	}
	w.updating = false
	w.flushPending()

	if globalDebug && w.pool.Outstanding() != 0 {
		panic(fmt.Sprintf("alder debug: %d pooled objects not returned by end of tick %d", w.pool.Outstanding(), w.tick))
	}

	if w.debug {
		stats.solveTime = time.Since(t0)
		stats.bodies = len(w.bodies)
		w.debugLog(stats)
	}
}

// applyGravity adds the world gravity to the body's force accumulator,
// scaled by mass so acceleration stays mass-independent. IgnoreGravity, a
// zero GravityScale, and kinematic bodies all short-circuit it.
func (w *World) applyGravity(b *Body) {
	if b.IgnoreGravity || b.GravityScale == 0 || b.Kinematic {
		return
	}
	b.force.X += w.Gravity.X * b.GravityScale * b.Mass
	b.force.Y += w.Gravity.Y * b.GravityScale * b.Mass
}

// Reset clears the quadtree and the active body set, and detaches all of
// the root's children. The world region, gravity, and pool survive.
func (w *World) Reset() {
	w.bodies = nil
	w.pendingAdd = nil
	w.pendingRemove = nil
	w.root.RemoveChildren()
	w.broadphase.ClearBounds(w.bounds)
}
