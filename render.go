package trellis

import "github.com/hajimehoshi/ebiten/v2"

// Canvas is the abstract 2-D render surface the toolkit paints onto: filled
// and stroked rects, single-line text blits, image blits, and a clip stack
// for scrolled content. The game supplies an implementation (EbitenCanvas
// here, or a recording fake in tests).
type Canvas interface {
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color, width float64)
	DrawText(s string, x, y float64, c Color)
	DrawImage(img *ebiten.Image, r Rect)
	// PushClip restricts subsequent draws to r (intersected with any
	// current clip); PopClip restores the previous region.
	PushClip(r Rect)
	PopClip()
	// Bounds returns the current destination bounds in screen coordinates.
	Bounds() Rect
}

// scaled returns the color with alpha premultiplied by a.
func (c Color) scaled(a float64) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A * a}
}

// Draw paints the current mode's base screen, then every open panel in
// descending ZIndex so the lowest ZIndex (highest priority) lands topmost.
func (ui *UI) Draw(c Canvas) {
	if root := ui.Root(); root != nil {
		for _, w := range root.Children() {
			paintWidget(c, w, 1)
		}
	}
	open := ui.Panels.OpenPanels()
	for i := len(open) - 1; i >= 0; i-- {
		paintWidget(c, open[i], 1)
	}
}

// paintWidget draws one widget and its children. alpha accumulates down the
// tree. Widget-level problems never abort the frame: degenerate rects
// simply draw nothing.
func paintWidget(c Canvas, w *Widget, alpha float64) {
	if !w.Visible {
		return
	}
	a := alpha * w.Alpha
	if a <= 0 {
		return
	}
	r := w.AbsoluteRect()

	switch w.Kind {
	case KindContainer:
		for _, child := range w.Children() {
			paintWidget(c, child, a)
		}

	case KindButton:
		c.FillRect(r, w.Color.scaled(a))
		if w.Text != "" {
			c.DrawText(w.Text, r.X+textPadX, r.Y+r.Height/2, w.TextColor.scaled(a))
		}

	case KindToggle:
		if w.Checked {
			c.FillRect(r, w.Color.scaled(a))
		} else {
			c.StrokeRect(r, w.Color.scaled(a), 1)
		}
		if w.Text != "" {
			c.DrawText(w.Text, r.X+textPadX, r.Y+r.Height/2, w.TextColor.scaled(a))
		}

	case KindLabel:
		c.DrawText(w.Text, r.X, r.Y+r.Height/2, w.TextColor.scaled(a))

	case KindImage:
		if w.Image != nil {
			c.DrawImage(w.Image, r)
		}

	case KindSlider:
		c.FillRect(r, w.Color.scaled(a*sliderTrackDim))
		c.FillRect(w.handleRect().translate(r.X, r.Y), w.Color.scaled(a))

	case KindScroll:
		// Content is clipped to viewport ∩ destination; nothing outside is
		// rasterized. The scrollbar stays outside the clip — it never
		// receives the scroll offset.
		clip := intersect(r, c.Bounds())
		if !clip.Empty() {
			c.PushClip(clip)
			for _, child := range w.Children() {
				if child.Frame == FrameContent {
					paintWidget(c, child, a)
				}
			}
			c.PopClip()
		}
		for _, child := range w.Children() {
			if child.Frame == FrameFixed {
				paintWidget(c, child, a)
			}
		}

	case KindPanel:
		c.FillRect(r, w.Color.scaled(a))
		// Inactive tab roots are invisible; painting all children renders
		// exactly the tab strip plus the active tab's content.
		for _, child := range w.Children() {
			paintWidget(c, child, a)
		}
	}
}

const (
	textPadX       = 6.0
	sliderTrackDim = 0.35
)
