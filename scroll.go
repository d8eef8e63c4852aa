package trellis

// ScrollableContainer: a KindScroll widget's rect is the viewport, fixed in
// its parent's frame; content taller than the viewport is exposed by a
// scroll offset in [0, maxScroll]. Content-frame children resolve through
// the offset (they scroll); the container itself and its fixed-frame
// scrollbar do not.
//
// Two update paths exist and exactly one is authoritative per gesture:
// wheel deltas write the offset and derive the scrollbar value; scrollbar
// handle drags write the value (from pixels, slider.go) and derive the
// offset. Neither path ever integrates the other's state, so they cannot
// drift apart.

// NewScroll creates a scroll container with the given viewport rect and
// content extent, plus an attached vertical scrollbar of the given width at
// the viewport's right edge.
func NewScroll(name string, viewport Rect, contentExtent, scrollbarWidth float64) *Widget {
	w := &Widget{Name: name, Kind: KindScroll, rect: viewport, ContentExtent: contentExtent}
	widgetDefaults(w)

	bar := NewSlider(name+".scrollbar", Rect{
		X:     viewport.Width - scrollbarWidth,
		Y:     0,
		Width: scrollbarWidth, Height: viewport.Height,
	}, 0, 1, scrollbarHandleLen(viewport.Height, contentExtent))
	bar.Vertical = true
	bar.Frame = FrameFixed
	bar.scrollHost = w
	w.scrollbar = bar
	w.Attach(bar)
	return w
}

// scrollbarHandleLen sizes the handle proportionally to the visible share of
// the content, with a floor so it stays grabbable.
func scrollbarHandleLen(viewportH, contentExtent float64) float64 {
	const minHandle = 16.0
	if contentExtent <= viewportH || contentExtent <= 0 {
		return viewportH
	}
	h := viewportH * viewportH / contentExtent
	if h < minHandle {
		h = minHandle
	}
	return h
}

// Scrollbar returns the container's scrollbar widget, or nil for non-scroll
// widgets.
func (w *Widget) Scrollbar() *Widget { return w.scrollbar }

// MaxScroll returns the largest valid scroll offset:
// max(0, contentExtent - viewportHeight).
func (w *Widget) MaxScroll() float64 {
	m := w.ContentExtent - w.rect.Height
	if m < 0 {
		m = 0
	}
	return m
}

// ScrollOffset returns the current scroll offset.
func (w *Widget) ScrollOffset() float64 { return w.scrollOffset }

// SetScrollOffset sets the offset (clamped to [0, MaxScroll]), invalidates
// the content subtree, and derives the scrollbar value from the offset.
// This is the wheel/programmatic path.
func (w *Widget) SetScrollOffset(offset float64) {
	w.setOffset(offset)
	if w.scrollbar != nil {
		max := w.MaxScroll()
		if max == 0 {
			w.scrollbar.SetValue(0)
		} else {
			w.scrollbar.SetValue(w.scrollOffset / max)
		}
	}
}

// ScrollBy applies a wheel delta (positive scrolls down) through the
// offset-authoritative path.
func (w *Widget) ScrollBy(delta float64) {
	w.SetScrollOffset(w.scrollOffset + delta)
}

// applyScrollbarValue derives the offset from the scrollbar's value in
// [0, 1]. This is the handle-drag path; the value has already been set by
// the slider drag, so only the offset is written here.
func (w *Widget) applyScrollbarValue(v float64) {
	w.setOffset(v * w.MaxScroll())
}

// setOffset clamps and stores the offset and invalidates content-frame
// children (their screen rects depend on it). The container's own cached
// rect and fixed-frame children stay valid.
func (w *Widget) setOffset(offset float64) {
	w.scrollOffset = clamp(offset, 0, w.MaxScroll())
	for _, c := range w.children {
		if c.Frame == FrameContent {
			c.invalidate()
		}
	}
}

// SetContentExtent updates the content height, re-clamps the offset, and
// resizes the scrollbar handle. The scrollbar value is re-derived so the
// invariant value == offset/maxScroll holds across the change.
func (w *Widget) SetContentExtent(extent float64) {
	w.ContentExtent = extent
	if w.scrollbar != nil {
		w.scrollbar.HandleLen = scrollbarHandleLen(w.rect.Height, extent)
	}
	w.SetScrollOffset(w.scrollOffset)
}
