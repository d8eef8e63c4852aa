package trellis

// UI is the top-level object that owns the widget tree (one base root per
// screen mode), the panel manager, the input router, and the driver
// pipeline. Everything on it is single-threaded and frame-stepped: call
// Update once per tick and Draw once per frame.
type UI struct {
	modes map[string]*Widget
	mode  string

	Panels *PanelManager
	router *Router

	drivers *pipeline

	// Stable (mode, kind, name) → widget lookup, populated by the
	// descriptor builder and by AddWidget.
	index map[widgetKey]*Widget

	editMode bool

	// Queued raw events. Real input accumulates in events and drains fully
	// each Update, after drivers have written this frame's geometry.
	// Injected synthetic events drain one per Update (see inject.go).
	events      []Event
	injectQueue []Event

	script *ScriptRunner
}

type widgetKey struct {
	mode string
	kind WidgetKind
	name string
}

// New creates an empty UI with no modes.
func New() *UI {
	ui := &UI{
		modes:  make(map[string]*Widget),
		Panels: NewPanelManager(),
		drivers: newPipeline(),
		index:  make(map[widgetKey]*Widget),
	}
	ui.router = newRouter(ui)
	return ui
}

// AddMode registers a screen mode and returns its root container. Re-adding
// an existing mode returns the existing root. The first mode added becomes
// current.
func (ui *UI) AddMode(name string) *Widget {
	if root, ok := ui.modes[name]; ok {
		return root
	}
	root := NewContainer(name, Rect{})
	ui.modes[name] = root
	if ui.mode == "" {
		ui.mode = name
	}
	return root
}

// SetMode switches the base screen to the named mode. Unknown modes warn
// and return false.
func (ui *UI) SetMode(name string) bool {
	if _, ok := ui.modes[name]; !ok {
		warnf("unknown screen mode %q", name)
		return false
	}
	ui.mode = name
	return true
}

// Mode returns the current screen mode name.
func (ui *UI) Mode() string { return ui.mode }

// Root returns the current mode's root container, or nil before any mode
// exists.
func (ui *UI) Root() *Widget {
	return ui.modes[ui.mode]
}

// AddWidget attaches w to the named mode's root and indexes it for Widget
// lookups. The mode is created on demand.
func (ui *UI) AddWidget(mode string, w *Widget) {
	root := ui.AddMode(mode)
	root.Attach(w)
	ui.index[widgetKey{mode: mode, kind: w.Kind, name: w.Name}] = w
}

// Widget returns the base-screen widget registered under (mode, kind, name).
// Unknown references warn and return nil.
func (ui *UI) Widget(mode string, kind WidgetKind, name string) *Widget {
	w, ok := ui.index[widgetKey{mode: mode, kind: kind, name: name}]
	if !ok {
		warnf("unknown widget %s/%s/%q", mode, kind, name)
		return nil
	}
	return w
}

// SetEditMode toggles edit mode: panel backgrounds become hit-testable and
// draggable so a live editor can reposition them.
func (ui *UI) SetEditMode(on bool) { ui.editMode = on }

// EditMode reports whether edit mode is on.
func (ui *UI) EditMode() bool { return ui.editMode }

// Router returns the input router for key bindings and tuning.
func (ui *UI) Router() *Router { return ui.router }

// Dispatch queues one raw input event. Events are consumed during the next
// Update, in arrival order, after drivers have run — hit-testing must never
// observe pre-driver geometry for the same frame.
func (ui *UI) Dispatch(ev Event) {
	ui.events = append(ui.events, ev)
}

// AttachDriver binds a value source to a dot-separated property path on w
// (for example "y", "alpha", or "gold_label.x" to reach a child). Drivers
// on the same (widget, path) pair combine by blend in priority order; a
// higher priority number is applied later and wins when overriding.
func (ui *UI) AttachDriver(w *Widget, path string, src Source, blend Blend, priority int, onComplete func()) *Binding {
	return ui.drivers.attach(w, path, src, blend, priority, onComplete)
}

// DetachDriver removes a binding. When the last binding for a pair is
// removed its additive baseline is dropped.
func (ui *UI) DetachDriver(b *Binding) {
	ui.drivers.detach(b)
}

// Update advances one frame: drivers write bound properties, per-widget
// OnUpdate hooks run, the script runner steps, then queued input events are
// routed. Cache invalidation is synchronous with each mutation throughout,
// so the router and the subsequent Draw always observe current geometry.
// No error can propagate out of Update; widget-level issues degrade to
// warnings.
func (ui *UI) Update(dt float64) {
	ui.drivers.tick(dt)

	for _, root := range ui.modes {
		root.updateTree(dt)
	}
	for _, p := range ui.Panels.panels {
		p.updateTree(dt)
	}

	if ui.script != nil {
		ui.script.step(ui)
	}

	// One synthetic event per frame, then all real events in arrival order.
	if len(ui.injectQueue) > 0 {
		ev := ui.injectQueue[0]
		copy(ui.injectQueue, ui.injectQueue[1:])
		ui.injectQueue = ui.injectQueue[:len(ui.injectQueue)-1]
		ui.router.Dispatch(ev)
	}
	// Index loop: callbacks may queue more events, which drain this frame too.
	for i := 0; i < len(ui.events); i++ {
		ui.router.Dispatch(ui.events[i])
	}
	ui.events = ui.events[:0]
}
