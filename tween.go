package alder

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MotionTween animates a node between positions with an easing curve.
// It is the intended driver for kinematic bodies — moving platforms,
// doors, elevators — whose motion comes from gameplay rather than forces.
//
// Each Update writes the eased position through the node and, when a body
// is attached, back-computes the implied velocity so collision response
// pushes riders along correctly. The body's own integration is suppressed
// for that tick; the tween is the sole source of motion it drives.
type MotionTween struct {
	node   *Node
	tweenX *gween.Tween
	tweenY *gween.Tween
	done   bool
}

// NewMotionTween animates node from its current local position to
// (toX, toY) over duration seconds.
func NewMotionTween(node *Node, toX, toY float64, duration float32, easeFn ease.TweenFunc) *MotionTween {
	if node == nil {
		panic("alder: cannot tween a nil node")
	}
	return &MotionTween{
		node:   node,
		tweenX: gween.New(float32(node.X), float32(toX), duration, easeFn),
		tweenY: gween.New(float32(node.Y), float32(toY), duration, easeFn),
	}
}

// Update advances the tween by dt seconds and returns true once finished.
// Call before World.Update each tick so the body's implied velocity is
// current when collisions resolve.
func (t *MotionTween) Update(dt float32) bool {
	if t.done {
		return true
	}
	x, doneX := t.tweenX.Update(dt)
	y, doneY := t.tweenY.Update(dt)

	dx := float64(x) - t.node.X
	dy := float64(y) - t.node.Y
	if body := t.node.body; body != nil && dt > 0 {
		body.Velocity.X = dx / float64(dt)
		body.Velocity.Y = dy / float64(dt)
		body.driven = true
	}
	if dx != 0 || dy != 0 {
		t.node.translate(dx, dy)
	}

	t.done = doneX && doneY
	if t.done {
		// Motion has stopped; leave no residual velocity behind.
		if body := t.node.body; body != nil {
			body.Velocity = Vec2{}
		}
	}
	return t.done
}

// Done reports whether the tween has finished.
func (t *MotionTween) Done() bool {
	return t.done
}
