// Package alder is a spatial broadphase and collision core for 2D games.
//
// Alder provides the pieces a frame-driven game needs to answer "what might
// be touching what" every tick: an axis-aligned [Bounds] value type, a
// [QuadTree] broadphase rebuilt each frame, a force-integrating [Body], a
// narrow-phase [Detector], and a [World] that drives the whole cycle from a
// single Update call.
//
// # Quick start
//
// Create a world, attach bodies to nodes in its tree, and call
// [World.Update] once per simulation tick:
//
//	world := alder.NewWorld(alder.WorldConfig{
//		Bounds:  alder.Bounds{MinX: 0, MinY: 0, MaxX: 800, MaxY: 600},
//		Gravity: alder.Vec2{Y: 0.98},
//	})
//
//	crate := alder.NewNode("crate", 100, 50, 16, 16)
//	crate.SetBody(alder.NewBody(alder.RectShape(16, 16)))
//	world.Root().AddChild(crate)
//	world.AddBody(crate.Body())
//
//	// each tick:
//	world.Update(1.0 / 60.0)
//
// # Broadphase and narrow phase
//
// Each tick the world clears its [QuadTree] and repopulates it from the
// node tree, then integrates every non-static body and asks the [Detector]
// to resolve collisions against quadtree-retrieved candidates. Retrieval is
// conservative: candidates are a superset of true contacts, and callers
// performing their own queries via [QuadTree.Retrieve] must run an exact
// overlap test before treating a candidate as a hit.
//
// Narrow-phase tests use a closed set of shapes — [RectShape],
// [EllipseShape], [PolygonShape], [LineShape] — dispatched through a fixed
// pair table. Unsupported pairings report no collision rather than failing
// the tick.
//
// # Single-threaded by design
//
// The entire update cycle runs synchronously inside one tick callback.
// There is no internal locking; the fixed-timestep cadence is the caller's
// responsibility. Transient query buffers and bounds come from a [Pool]
// passed into the world, and borrowers must return them before the tick
// ends. [World.SetDebugMode] enables assertions that catch pool leaks,
// double integration, and stale-quadtree reads.
//
// # Extras
//
// [MotionTween] animates kinematic bodies with [gween] easing,
// [DrawQuadTree] and [DrawBodies] render a debug overlay onto an
// [Ebitengine] image, and the alder/ecs subpackage bridges collision events
// into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package alder
