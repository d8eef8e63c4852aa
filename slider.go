package trellis

// Slider value/pixel mapping. A slider's track runs along its rect's major
// axis (Width, or Height when Vertical); the handle occupies HandleLen pixels
// of it. The travel range is track length minus handle length so the handle
// never leaves the track.
//
// Drags always update the handle position from pointer pixels and derive the
// value from the position, never the reverse; the router calls beginDrag /
// dragTo / commitDrag in that order.

// trackLength returns the slider's track length in pixels along its axis.
func (w *Widget) trackLength() float64 {
	if w.Vertical {
		return w.rect.Height
	}
	return w.rect.Width
}

// travel returns the handle's pixel travel range.
func (w *Widget) travel() float64 {
	return w.trackLength() - w.HandleLen
}

// PositionFor maps a value to the handle's pixel offset from the track
// start. The value is clamped to [Min, Max] first. Monotonic non-decreasing
// in v. Returns 0 for a degenerate range or track (never a fault).
func (w *Widget) PositionFor(v float64) float64 {
	if w.Max == w.Min {
		return 0
	}
	tr := w.travel()
	if tr <= 0 {
		return 0
	}
	v = clamp(v, w.Min, w.Max)
	return (v - w.Min) / (w.Max - w.Min) * tr
}

// ValueFor is the exact inverse of PositionFor: it maps a handle pixel
// offset back to a value, clamped to [Min, Max]. Returns Min when the value
// range or the travel range is degenerate.
func (w *Widget) ValueFor(pos float64) float64 {
	if w.Max == w.Min {
		return w.Min
	}
	tr := w.travel()
	if tr <= 0 {
		return w.Min
	}
	pos = clamp(pos, 0, tr)
	return w.Min + pos/tr*(w.Max-w.Min)
}

// SetValue sets the slider value, clamped to [Min, Max], without firing
// callbacks. When the slider is a scroll container's scrollbar the host's
// offset is NOT derived here; use the router drag path or SetScrollOffset so
// exactly one side is ever authoritative.
func (w *Widget) SetValue(v float64) {
	w.Value = clamp(v, w.Min, w.Max)
}

// handleRect returns the handle's rect in the slider's own frame.
func (w *Widget) handleRect() Rect {
	pos := w.PositionFor(w.Value)
	if w.Vertical {
		return Rect{X: 0, Y: pos, Width: w.rect.Width, Height: w.HandleLen}
	}
	return Rect{X: pos, Y: 0, Width: w.HandleLen, Height: w.rect.Height}
}

// beginDrag captures the handle's pixel position at gesture start.
func (w *Widget) beginDrag() {
	w.dragStartHandle = w.PositionFor(w.Value)
}

// dragTo moves the handle by the pointer's delta along the slider axis since
// gesture start, derives the value from the new position, and fires OnChange.
// When the slider is a scrollbar the scroll offset is derived from the new
// value in the same step (the drag is the frame's authoritative path).
func (w *Widget) dragTo(dx, dy float64) {
	delta := dx
	if w.Vertical {
		delta = dy
	}
	w.Value = w.ValueFor(w.dragStartHandle + delta)
	if w.scrollHost != nil {
		w.scrollHost.applyScrollbarValue(w.Value)
	}
	if w.OnChange != nil {
		w.OnChange(w.Value)
	}
}

// commitDrag fires OnCommit exactly once at gesture end. The commit always
// runs, even when the release point is off-track: the last derived value is
// what gets committed.
func (w *Widget) commitDrag() {
	if w.OnCommit != nil {
		w.OnCommit(w.Value)
	}
}

// isSliderLike reports whether w takes the slider drag/commit input path.
func (w *Widget) isSliderLike() bool {
	return w.Kind == KindSlider
}
