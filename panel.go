package trellis

import "sort"

// defaultTabStripHeight is the height of the tab button row created by
// ensureTabStrip when a panel gets its first tab.
const defaultTabStripHeight = 28.0

// Tab is a named partition of a panel's children. Only the active tab's
// widgets are visible and interactive; switching tabs flips visibility and
// never rebuilds anything.
type Tab struct {
	Name string
	Root *Widget // container child of the panel holding this tab's widgets

	// byKind provides the stable (kind, name) → widget lookup the
	// descriptor layer promises.
	byKind map[WidgetKind]map[string]*Widget
}

// Add attaches w to the tab's container and indexes it by (kind, name).
func (t *Tab) Add(w *Widget) {
	t.Root.Attach(w)
	m := t.byKind[w.Kind]
	if m == nil {
		m = make(map[string]*Widget)
		t.byKind[w.Kind] = m
	}
	m[w.Name] = w
}

// Widget returns the tab's widget with the given kind and name, or nil.
func (t *Tab) Widget(kind WidgetKind, name string) *Widget {
	return t.byKind[kind][name]
}

// NewPanel creates an overlay panel of the given size. The panel starts
// closed: hidden, positioned at closedPos. Lower zIndex means higher input
// priority and topmost paint order.
func NewPanel(name string, size, openPos, closedPos Vec2, zIndex int) *Widget {
	w := &Widget{
		Name: name, Kind: KindPanel,
		rect:      Rect{X: closedPos.X, Y: closedPos.Y, Width: size.X, Height: size.Y},
		OpenPos:   openPos,
		ClosedPos: closedPos,
		ZIndex:    zIndex,
	}
	widgetDefaults(w)
	w.Visible = false
	return w
}

// TabStrip returns the panel's tab button row, creating it on first use.
func (w *Widget) TabStrip() *Widget {
	if w.tabStrip == nil {
		w.tabStrip = NewContainer(w.Name+".tabstrip", Rect{
			X: 0, Y: 0, Width: w.rect.Width, Height: defaultTabStripHeight,
		})
		w.Attach(w.tabStrip)
	}
	return w.tabStrip
}

// AddTab creates a new named tab on the panel, including its content
// container and a tab-strip toggle that activates it. The first tab added
// becomes active.
func (w *Widget) AddTab(name string) *Tab {
	strip := w.TabStrip()
	tab := &Tab{
		Name: name,
		Root: NewContainer(name, Rect{
			X: 0, Y: strip.rect.Height,
			Width: w.rect.Width, Height: w.rect.Height - strip.rect.Height,
		}),
		byKind: make(map[WidgetKind]map[string]*Widget),
	}
	w.Attach(tab.Root)
	w.tabs = append(w.tabs, tab)

	// Tab buttons share the strip evenly and form one radio group.
	idx := len(w.tabs) - 1
	btn := NewToggle(name, Rect{}, nil)
	btn.RadioGroup = w.Name + ".tabs"
	btn.Text = name
	panel := w
	btn.OnToggle = func(on bool) {
		if on {
			panel.SetActiveTab(name)
		}
	}
	strip.Attach(btn)
	relayoutTabStrip(strip)

	if idx == 0 {
		btn.Checked = true
		w.activeTab = 0
		tab.Root.Visible = true
	} else {
		tab.Root.Visible = false
	}
	return tab
}

// relayoutTabStrip divides the strip width evenly among its tab buttons.
func relayoutTabStrip(strip *Widget) {
	n := len(strip.children)
	if n == 0 {
		return
	}
	bw := strip.rect.Width / float64(n)
	for i, btn := range strip.children {
		btn.SetRect(Rect{X: float64(i) * bw, Y: 0, Width: bw, Height: strip.rect.Height})
	}
}

// Tabs returns the panel's tabs in creation order. MUST NOT be mutated.
func (w *Widget) Tabs() []*Tab { return w.tabs }

// Tab returns the named tab, or nil.
func (w *Widget) Tab(name string) *Tab {
	for _, t := range w.tabs {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// ActiveTab returns the active tab, or nil for a panel without tabs.
func (w *Widget) ActiveTab() *Tab {
	if len(w.tabs) == 0 {
		return nil
	}
	return w.tabs[w.activeTab]
}

// SetActiveTab makes the named tab's widgets visible and interactive and
// hides every other tab's. Unknown names warn and return false.
func (w *Widget) SetActiveTab(name string) bool {
	for i, t := range w.tabs {
		if t.Name == name {
			w.activeTab = i
			for j, other := range w.tabs {
				other.Root.Visible = j == i
			}
			// Keep the strip toggle in sync when activated programmatically.
			if w.tabStrip != nil {
				for _, btn := range w.tabStrip.children {
					btn.Checked = btn.Name == name
				}
			}
			return true
		}
	}
	warnf("panel %q has no tab %q", w.Name, name)
	return false
}

// --- Panel manager ---

// PanelManager tracks the set of overlay panels, their open state, z-order
// precedence, and mutual exclusion.
type PanelManager struct {
	panels []*Widget
	byName map[string]*Widget
	buf    []*Widget // reused by OpenPanels
}

// NewPanelManager creates an empty manager.
func NewPanelManager() *PanelManager {
	return &PanelManager{byName: make(map[string]*Widget)}
}

// Add registers a panel. Re-adding a name replaces the previous entry and
// warns.
func (m *PanelManager) Add(p *Widget) {
	if prev, ok := m.byName[p.Name]; ok {
		warnf("panel %q registered twice; replacing", p.Name)
		for i, q := range m.panels {
			if q == prev {
				m.panels = append(m.panels[:i], m.panels[i+1:]...)
				break
			}
		}
	}
	m.byName[p.Name] = p
	m.panels = append(m.panels, p)
}

// Panel returns the registered panel with the given name. Unknown names warn
// and return nil.
func (m *PanelManager) Panel(name string) *Widget {
	p, ok := m.byName[name]
	if !ok {
		warnf("unknown panel %q", name)
		return nil
	}
	return p
}

// IsOpen reports whether the named panel is open. Unknown names are closed.
func (m *PanelManager) IsOpen(name string) bool {
	p, ok := m.byName[name]
	return ok && p.Visible
}

// Open opens the named panel: every currently-open panel that is exclusive
// with it (in either direction, resolved now) is closed first, then the
// panel moves to its open position and becomes visible. Returns false for
// unknown names.
func (m *PanelManager) Open(name string) bool {
	p := m.Panel(name)
	if p == nil {
		return false
	}
	for _, q := range m.panels {
		if q != p && q.Visible && exclusive(p, q) {
			m.closePanel(q)
		}
	}
	p.SetPos(p.OpenPos.X, p.OpenPos.Y)
	p.Visible = true
	return true
}

// Close closes the named panel. Returns false for unknown names; closing an
// already-closed panel is a no-op.
func (m *PanelManager) Close(name string) bool {
	p := m.Panel(name)
	if p == nil {
		return false
	}
	m.closePanel(p)
	return true
}

func (m *PanelManager) closePanel(p *Widget) {
	p.SetPos(p.ClosedPos.X, p.ClosedPos.Y)
	p.Visible = false
}

// TopmostOpen returns the open panel with the minimum ZIndex, or nil when
// nothing is open. Ties resolve to the earliest registered.
func (m *PanelManager) TopmostOpen() *Widget {
	var top *Widget
	for _, p := range m.panels {
		if p.Visible && (top == nil || p.ZIndex < top.ZIndex) {
			top = p
		}
	}
	return top
}

// CloseTopmost closes only the topmost open panel — the cancel gesture.
// Returns true if a panel was closed.
func (m *PanelManager) CloseTopmost() bool {
	top := m.TopmostOpen()
	if top == nil {
		return false
	}
	m.closePanel(top)
	return true
}

// OpenPanels returns the open panels in ascending ZIndex (input priority
// order). The returned slice is reused across calls; do not retain it.
func (m *PanelManager) OpenPanels() []*Widget {
	m.buf = m.buf[:0]
	for _, p := range m.panels {
		if p.Visible {
			m.buf = append(m.buf, p)
		}
	}
	sort.SliceStable(m.buf, func(i, j int) bool { return m.buf[i].ZIndex < m.buf[j].ZIndex })
	return m.buf
}

// anyOpenModal reports whether any open panel is modal.
func (m *PanelManager) anyOpenModal() bool {
	for _, p := range m.panels {
		if p.Visible && p.Modal {
			return true
		}
	}
	return false
}

// exclusive reports the bidirectional exclusivity relation between panels.
func exclusive(p, q *Widget) bool {
	for _, n := range p.ExclusiveWith {
		if n == q.Name {
			return true
		}
	}
	for _, n := range q.ExclusiveWith {
		if n == p.Name {
			return true
		}
	}
	return false
}
