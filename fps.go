package trellis

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSWidget creates a label that displays the current FPS and TPS,
// refreshed every ~0.5 seconds. Attach it anywhere on the base screen.
func NewFPSWidget() *Widget {
	w := NewLabel("fps_widget", Rect{Width: 110, Height: 16}, "")
	w.Interactive = false

	var lastUpdate float64
	w.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0
		w.Text = fmt.Sprintf("FPS: %.1f TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	return w
}
