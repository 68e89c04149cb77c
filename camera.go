package alder

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera tracks a world-space focus point and derives the culling viewport
// handed to World.SetViewport. It can snap to a position, follow a node
// with a lerp factor, or animate to a target with an easing curve.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Width and Height are the view extent in world units.
	Width, Height float64

	followTarget  *Node
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	// clampEnabled restricts the camera position so the view stays within
	// clampBounds.
	clampEnabled bool
	clampBounds  Bounds

	scrollTween *scrollAnim
}

// NewCamera creates a camera with the given view extent, centered on the
// origin. Panics on a non-positive extent.
func NewCamera(width, height float64) *Camera {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("alder: camera extent must be positive, got %v x %v", width, height))
	}
	return &Camera{Width: width, Height: height}
}

// Follow makes the camera track a node with the given offset and lerp
// factor. A lerp of 1.0 snaps immediately; lower values give smoother
// following.
func (c *Camera) Follow(node *Node, offsetX, offsetY, lerp float64) {
	c.followTarget = node
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given world position over duration
// seconds. Scrolling overrides following until it completes.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// SetClamp enables position clamping: the view never shows outside bounds.
func (c *Camera) SetClamp(bounds Bounds) {
	c.clampEnabled = true
	c.clampBounds = bounds
}

// ClearClamp disables position clamping.
func (c *Camera) ClearClamp() {
	c.clampEnabled = false
}

// Update advances follow, scroll, and clamping by dt seconds. Call once
// per tick before World.Update so the viewport matches what the player
// sees this frame.
func (c *Camera) Update(dt float64) {
	if c.scrollTween != nil {
		s := c.scrollTween
		if !s.doneX {
			val, done := s.tweenX.Update(float32(dt))
			c.X = float64(val)
			s.doneX = done
		}
		if !s.doneY {
			val, done := s.tweenY.Update(float32(dt))
			c.Y = float64(val)
			s.doneY = done
		}
		if s.doneX && s.doneY {
			c.scrollTween = nil
		}
	} else if c.followTarget != nil && !c.followTarget.IsDisposed() {
		tx, ty := c.followTarget.WorldPosition()
		tx += c.followOffsetX
		ty += c.followOffsetY
		c.X += (tx - c.X) * c.followLerp
		c.Y += (ty - c.Y) * c.followLerp
	}

	if c.clampEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts the camera position so the view stays within
// clampBounds. When the bounds are smaller than the view on an axis, the
// camera centers on them instead.
func (c *Camera) clampToBounds() {
	halfW := c.Width / 2
	halfH := c.Height / 2

	minX := c.clampBounds.MinX + halfW
	maxX := c.clampBounds.MaxX - halfW
	minY := c.clampBounds.MinY + halfH
	maxY := c.clampBounds.MaxY - halfH

	if minX > maxX {
		c.X = c.clampBounds.CenterX()
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.clampBounds.CenterY()
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// View returns the camera's visible region in world space.
func (c *Camera) View() Bounds {
	return Bounds{
		MinX: c.X - c.Width/2,
		MinY: c.Y - c.Height/2,
		MaxX: c.X + c.Width/2,
		MaxY: c.Y + c.Height/2,
	}
}

// Apply pushes the camera's current view to the world as its culling
// viewport.
func (c *Camera) Apply(w *World) {
	w.SetViewport(c.View())
}
