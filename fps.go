package alder

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// StatsHUD renders frame rate and simulation counters into a screen
// corner. It throttles its own refresh so the text is readable instead of
// flickering every frame.
type StatsHUD struct {
	world    *World
	interval float64
	elapsed  float64
	text     string
}

// NewStatsHUD creates a HUD over w that refreshes its text every ~0.5
// seconds.
func NewStatsHUD(w *World) *StatsHUD {
	return &StatsHUD{world: w, interval: 0.5}
}

// Update advances the refresh timer by dt seconds.
func (h *StatsHUD) Update(dt float64) {
	h.elapsed += dt
	if h.elapsed < h.interval && h.text != "" {
		return
	}
	h.elapsed = 0
	h.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nbodies: %d\nquadtree: %d entries, depth %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		len(h.world.Bodies()),
		h.world.Broadphase().Len(), h.world.Broadphase().Depth())
}

// Draw prints the current stats text at (x, y) on dst.
func (h *StatsHUD) Draw(dst *ebiten.Image, x, y int) {
	ebitenutil.DebugPrintAt(dst, h.text, x, y)
}
