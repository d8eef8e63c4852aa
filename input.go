package trellis

import "math"

const (
	maxPointers         = 4   // pointer 0 = mouse, 1-3 = touch
	defaultDragDeadZone = 5.0 // pixels of travel before a press becomes a drag
	wheelScrollStep     = 24.0
)

// routerPhase is the per-pointer state machine: Idle → (down) Pressed →
// (move beyond dead zone) Dragging → (up) Idle. There is no cancel event;
// a release outside the candidate simply returns to Idle without firing
// (sliders excepted — they always commit).
type routerPhase uint8

const (
	phaseIdle routerPhase = iota
	phasePressed
	phaseDragging
)

type pointerState struct {
	phase          routerPhase
	startX, startY float64
	lastX, lastY   float64
	candidate      *Widget
	panel          *Widget // context panel the press resolved in, if any
}

// Router translates raw input events into widget callbacks via the
// priority-ordered hit test. One event is consumed at a time, in arrival
// order; all mutation happens synchronously inside Dispatch.
type Router struct {
	ui       *UI
	pointers [maxPointers]pointerState

	dragDeadZone float64
	bindings     map[Key]func()
	cancelKey    Key
}

func newRouter(ui *UI) *Router {
	return &Router{
		ui:           ui,
		dragDeadZone: defaultDragDeadZone,
		bindings:     make(map[Key]func()),
		cancelKey:    KeyNone,
	}
}

// Bind registers fn to run when key is pressed. A nil fn removes the binding.
func (r *Router) Bind(key Key, fn func()) {
	if fn == nil {
		delete(r.bindings, key)
		return
	}
	r.bindings[key] = fn
}

// SetCancelKey names the key whose press closes the topmost open panel.
func (r *Router) SetCancelKey(key Key) { r.cancelKey = key }

// SetDragDeadZone sets the minimum movement in pixels before a press
// becomes a drag.
func (r *Router) SetDragDeadZone(px float64) { r.dragDeadZone = px }

// Dispatch runs one raw event through the router.
func (r *Router) Dispatch(ev Event) {
	switch ev.Kind {
	case EventDown:
		r.pointerDown(ev)
	case EventMove:
		r.pointerMove(ev)
	case EventUp:
		r.pointerUp(ev)
	case EventWheel:
		r.wheel(ev)
	case EventKey:
		r.key(ev)
	}
}

func (r *Router) pointer(ev Event) *pointerState {
	if ev.Pointer < 0 || ev.Pointer >= maxPointers {
		return nil
	}
	return &r.pointers[ev.Pointer]
}

func (r *Router) pointerDown(ev Event) {
	ps := r.pointer(ev)
	if ps == nil {
		return
	}
	candidate, panel := r.hitTest(ev.X, ev.Y)
	ps.phase = phasePressed
	ps.startX, ps.startY = ev.X, ev.Y
	ps.lastX, ps.lastY = ev.X, ev.Y
	ps.candidate = candidate
	ps.panel = panel
	if candidate != nil && candidate.isSliderLike() {
		candidate.beginDrag()
	}
}

func (r *Router) pointerMove(ev Event) {
	ps := r.pointer(ev)
	if ps == nil || ps.phase == phaseIdle {
		return
	}
	dx := ev.X - ps.lastX
	dy := ev.Y - ps.lastY
	ps.lastX, ps.lastY = ev.X, ev.Y

	if ps.phase == phasePressed {
		tx := ev.X - ps.startX
		ty := ev.Y - ps.startY
		if math.Sqrt(tx*tx+ty*ty) > r.dragDeadZone {
			ps.phase = phaseDragging
		}
	}
	if ps.phase != phaseDragging || ps.candidate == nil {
		return
	}

	switch {
	case ps.candidate.isSliderLike():
		// Handle position follows the pointer delta; the value is derived
		// from the position on every update.
		ps.candidate.dragTo(ev.X-ps.startX, ev.Y-ps.startY)
	case ps.candidate.Kind == KindScroll:
		// Drag-to-scroll: content follows the finger, offset moves opposite.
		ps.candidate.ScrollBy(-dy)
	case ps.candidate.Kind == KindPanel && r.ui.editMode:
		// Edit mode: panel backgrounds drag the panel around.
		ps.candidate.Move(dx, dy)
	}
}

func (r *Router) pointerUp(ev Event) {
	ps := r.pointer(ev)
	if ps == nil || ps.phase == phaseIdle {
		return
	}
	candidate := ps.candidate
	ps.phase = phaseIdle
	ps.candidate = nil
	ps.panel = nil
	if candidate == nil {
		return
	}

	// Sliders and scrollbars always commit on release, even off-widget.
	if candidate.isSliderLike() {
		candidate.commitDrag()
		return
	}
	// Everything else fires only when the release point still intersects the
	// candidate's (offset-adjusted) screen rect.
	if !candidate.effectivelyVisible() || !candidate.Interactive {
		return
	}
	if !candidate.AbsoluteRect().Contains(ev.X, ev.Y) {
		return
	}
	switch candidate.Kind {
	case KindButton:
		if candidate.Action != nil {
			candidate.Action()
		}
	case KindToggle:
		candidate.activateToggle()
	case KindLabel, KindImage:
		if candidate.Action != nil {
			candidate.Action()
		}
	case KindScroll, KindPanel:
		// Consumed; a scroll or panel surface has no release action.
	}
}

func (r *Router) wheel(ev Event) {
	sc := r.findScroll(ev.X, ev.Y)
	if sc == nil {
		return
	}
	sc.ScrollBy(-ev.DeltaY * wheelScrollStep)
}

func (r *Router) key(ev Event) {
	if r.cancelKey != KeyNone && ev.Key == r.cancelKey {
		r.ui.Panels.CloseTopmost()
		return
	}
	if fn, ok := r.bindings[ev.Key]; ok {
		fn()
	}
}

// --- Hit testing ---

// hitTest resolves a pointer-down location to a candidate widget and its
// panel context. Open panels are queried first, ascending by ZIndex; the
// first panel whose tab content, tab strip, or (edit-mode only) background
// intersects the pointer wins and lower-priority panels and the base screen
// are never queried. If no panel matches, an open modal panel swallows the
// event; otherwise the base screen's current-mode widgets are tested.
func (r *Router) hitTest(x, y float64) (candidate, panel *Widget) {
	for _, p := range r.ui.Panels.OpenPanels() {
		if w := r.hitPanel(p, x, y); w != nil {
			return w, p
		}
	}
	if r.ui.Panels.anyOpenModal() {
		return nil, nil
	}
	root := r.ui.Root()
	if root == nil {
		return nil, nil
	}
	return bestCandidate(root.children, x, y), nil
}

// hitPanel tests one panel's hit regions and, on a match, resolves the
// widget inside. A region match with no inner widget falls back to the
// panel itself (its background consumes the press).
func (r *Router) hitPanel(p *Widget, x, y float64) *Widget {
	var regions []*Widget
	if tab := p.ActiveTab(); tab != nil {
		regions = append(regions, tab.Root)
	}
	if p.tabStrip != nil {
		regions = append(regions, p.tabStrip)
	}
	for _, region := range regions {
		if !region.AbsoluteRect().Contains(x, y) {
			continue
		}
		if w := bestCandidate(region.children, x, y); w != nil {
			return w
		}
		return p
	}
	if r.ui.editMode && p.AbsoluteRect().Contains(x, y) {
		return p
	}
	return nil
}

// precedence ranks widget kinds for overlap resolution within one context.
// Lower rank wins: scrollable-container > label/image > slider > toggle >
// button > panel background.
func precedence(k WidgetKind) int {
	switch k {
	case KindScroll:
		return 0
	case KindLabel, KindImage:
		return 1
	case KindSlider:
		return 2
	case KindToggle:
		return 3
	case KindButton:
		return 4
	case KindPanel:
		return 5
	default:
		return 6 // containers are not hit-testable themselves
	}
}

// bestCandidate finds the winning widget for (x, y) among the given
// siblings and their subtrees. Ties in precedence resolve to the
// later-painted (topmost) widget.
func bestCandidate(widgets []*Widget, x, y float64) *Widget {
	var best *Widget
	bestRank := precedence(KindContainer)
	var walk func(list []*Widget)
	walk = func(list []*Widget) {
		for _, w := range list {
			if !w.Visible || !w.Interactive {
				continue
			}
			switch w.Kind {
			case KindContainer:
				walk(w.children)
			case KindScroll:
				if !w.AbsoluteRect().Contains(x, y) {
					continue
				}
				inner := scrollCandidate(w, x, y)
				if rank := precedence(KindScroll); rank <= bestRank {
					best, bestRank = inner, rank
				}
			default:
				if !w.AbsoluteRect().Contains(x, y) {
					continue
				}
				if rank := precedence(w.Kind); rank <= bestRank {
					best, bestRank = w, rank
				}
			}
		}
	}
	walk(widgets)
	return best
}

// scrollCandidate resolves a hit inside a scroll container's viewport: the
// scrollbar wins over content (it is the container's own fixed part),
// content children are tested through the offset frame and clipped to the
// viewport, and the container itself is the fallback (wheel and
// drag-to-scroll target).
func scrollCandidate(sc *Widget, x, y float64) *Widget {
	if sc.scrollbar != nil && sc.scrollbar.Visible &&
		sc.scrollbar.AbsoluteRect().Contains(x, y) {
		return sc.scrollbar
	}
	var best *Widget
	bestRank := precedence(KindContainer)
	var walk func(list []*Widget)
	walk = func(list []*Widget) {
		for _, w := range list {
			if !w.Visible || !w.Interactive || w == sc.scrollbar {
				continue
			}
			if w.Kind == KindContainer {
				walk(w.children)
				continue
			}
			// Content outside the viewport is not hit-testable.
			hit := intersect(w.AbsoluteRect(), sc.AbsoluteRect())
			if hit.Empty() || !hit.Contains(x, y) {
				continue
			}
			if rank := precedence(w.Kind); rank <= bestRank {
				best, bestRank = w, rank
			}
		}
	}
	walk(sc.children)
	if best != nil {
		return best
	}
	return sc
}

// findScroll locates the scroll container under (x, y) for wheel routing,
// honoring the same panel-first priority as pointer hits.
func (r *Router) findScroll(x, y float64) *Widget {
	for _, p := range r.ui.Panels.OpenPanels() {
		var regions []*Widget
		if tab := p.ActiveTab(); tab != nil {
			regions = append(regions, tab.Root)
		}
		for _, region := range regions {
			if region.AbsoluteRect().Contains(x, y) {
				if sc := findScrollIn(region.children, x, y); sc != nil {
					return sc
				}
			}
		}
		if p.AbsoluteRect().Contains(x, y) {
			return nil // panel surface without scroll consumes the wheel
		}
	}
	if r.ui.Panels.anyOpenModal() {
		return nil
	}
	root := r.ui.Root()
	if root == nil {
		return nil
	}
	return findScrollIn(root.children, x, y)
}

func findScrollIn(widgets []*Widget, x, y float64) *Widget {
	for _, w := range widgets {
		if !w.Visible {
			continue
		}
		switch w.Kind {
		case KindScroll:
			if w.AbsoluteRect().Contains(x, y) {
				return w
			}
		case KindContainer:
			if sc := findScrollIn(w.children, x, y); sc != nil {
				return sc
			}
		}
	}
	return nil
}
