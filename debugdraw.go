package alder

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Debug overlay rendering. These helpers stroke the spatial structures
// onto a caller-provided image; they own no game loop and allocate no
// textures, so they can be layered over any renderer during development.

const debugStrokeWidth = 1

// DrawQuadTree strokes every leaf region of the quadtree onto dst.
// Occupied leaves get the full color; empty ones are drawn at quarter
// alpha so the subdivision pattern stays readable.
func DrawQuadTree(dst *ebiten.Image, q *QuadTree, clr color.RGBA) {
	faint := clr
	faint.A /= 4
	q.Walk(func(region Bounds, leaf bool, items int) {
		if !leaf {
			return
		}
		c := faint
		if items > 0 {
			c = clr
		}
		vector.StrokeRect(dst,
			float32(region.MinX), float32(region.MinY),
			float32(region.Width()), float32(region.Height()),
			debugStrokeWidth, c, false)
	})
}

// DrawBodies strokes the collision shape of every registered body onto
// dst at its current world position.
func DrawBodies(dst *ebiten.Image, w *World, clr color.RGBA) {
	for _, body := range w.Bodies() {
		n := body.Ancestor()
		if n == nil || n.IsDisposed() {
			continue
		}
		drawShape(dst, body.Shape, n.worldX, n.worldY, clr)
	}
}

func drawShape(dst *ebiten.Image, s Shape, x, y float64, clr color.RGBA) {
	switch s.Type {
	case ShapeRect:
		b := s.BoundsAt(x, y)
		vector.StrokeRect(dst,
			float32(b.MinX), float32(b.MinY),
			float32(b.Width()), float32(b.Height()),
			debugStrokeWidth, clr, false)
	case ShapeEllipse:
		cx, cy, r := circleAt(s, x, y)
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r),
			debugStrokeWidth, clr, false)
	case ShapePolygon, ShapeLine:
		pts := s.Points
		if len(pts) < 2 {
			return
		}
		ox := x + s.OffsetX
		oy := y + s.OffsetY
		for i := 0; i < len(pts); i++ {
			j := i + 1
			if j == len(pts) {
				if s.Type == ShapeLine {
					break // segments are open, don't close the loop
				}
				j = 0
			}
			vector.StrokeLine(dst,
				float32(ox+pts[i].X), float32(oy+pts[i].Y),
				float32(ox+pts[j].X), float32(oy+pts[j].Y),
				debugStrokeWidth, clr, false)
		}
	}
}
