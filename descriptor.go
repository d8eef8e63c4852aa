package trellis

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// The descriptor layer builds a whole UI from data: per-mode widget sets
// keyed by kind and name, plus panel definitions with tabs. Callbacks and
// images are referenced by name and resolved through a Registry, so the
// data side stays serializable. Every dangling reference degrades to a
// warning, never a panic: a misnamed callback yields an inert widget.

// Registry supplies the callables and assets a Descriptor refers to by name.
type Registry struct {
	Actions map[string]func()        // button / label / image press actions
	Toggles map[string]func(bool)    // toggle callbacks
	Changes map[string]func(float64) // slider OnChange and OnCommit callbacks
	Images  map[string]*ebiten.Image
}

func (r Registry) action(name string) func() {
	if name == "" {
		return nil
	}
	fn, ok := r.Actions[name]
	if !ok {
		warnf("registry has no action %q", name)
		return nil
	}
	return fn
}

func (r Registry) toggle(name string) func(bool) {
	if name == "" {
		return nil
	}
	fn, ok := r.Toggles[name]
	if !ok {
		warnf("registry has no toggle callback %q", name)
		return nil
	}
	return fn
}

func (r Registry) change(name string) func(float64) {
	if name == "" {
		return nil
	}
	fn, ok := r.Changes[name]
	if !ok {
		warnf("registry has no change callback %q", name)
		return nil
	}
	return fn
}

func (r Registry) image(name string) *ebiten.Image {
	if name == "" {
		return nil
	}
	img, ok := r.Images[name]
	if !ok {
		warnf("registry has no image %q", name)
		return nil
	}
	return img
}

// WidgetDef describes one widget. Unused fields are ignored for kinds they
// don't apply to.
type WidgetDef struct {
	Rect      Rect
	Text      string
	Color     Color // zero value means the default tint
	TextColor Color
	Hidden    bool
	Inert     bool // Interactive = false
	Frame     Frame
	// In names a previously-built container or scroll container in the same
	// mode (or tab) to nest this widget into. Empty means the root.
	In string

	// Button / label / image
	Action string
	Image  string

	// Toggle
	OnToggle   string
	Checked    bool
	RadioGroup string

	// Slider
	Min, Max, Value float64
	HandleLen       float64
	Vertical        bool
	OnChange        string
	OnCommit        string

	// Scroll container
	ContentExtent  float64
	ScrollbarWidth float64
}

// TabDef describes one panel tab: its name and widget set.
type TabDef struct {
	Name    string
	Widgets map[WidgetKind]map[string]WidgetDef
}

// PanelDef describes one overlay panel.
type PanelDef struct {
	Name               string
	Size               Vec2
	OpenPos, ClosedPos Vec2
	ZIndex             int
	ExclusiveWith      []string
	Modal              bool
	Color              Color
	Tabs               []TabDef
}

// Descriptor is the data form of a complete UI: widget sets per screen mode
// plus the panel list.
type Descriptor struct {
	Modes  map[string]map[WidgetKind]map[string]WidgetDef
	Panels []PanelDef
}

// Build constructs a UI from the descriptor, resolving names through reg.
func Build(d Descriptor, reg Registry) *UI {
	ui := New()

	modeNames := make([]string, 0, len(d.Modes))
	for name := range d.Modes {
		modeNames = append(modeNames, name)
	}
	sort.Strings(modeNames)

	for _, mode := range modeNames {
		root := ui.AddMode(mode)
		buildSet(d.Modes[mode], reg, root, func(w *Widget) {
			ui.index[widgetKey{mode: mode, kind: w.Kind, name: w.Name}] = w
		})
	}

	for _, pd := range d.Panels {
		p := NewPanel(pd.Name, pd.Size, pd.OpenPos, pd.ClosedPos, pd.ZIndex)
		p.ExclusiveWith = pd.ExclusiveWith
		p.Modal = pd.Modal
		if pd.Color != (Color{}) {
			p.Color = pd.Color
		}
		for _, td := range pd.Tabs {
			tab := p.AddTab(td.Name)
			buildSet(td.Widgets, reg, tab.Root, tab.indexOnly)
		}
		ui.Panels.Add(p)
	}
	return ui
}

// indexOnly records w in the tab's (kind, name) lookup without re-attaching;
// buildSet has already placed it (possibly inside a nested container).
func (t *Tab) indexOnly(w *Widget) {
	m := t.byKind[w.Kind]
	if m == nil {
		m = make(map[string]*Widget)
		t.byKind[w.Kind] = m
	}
	m[w.Name] = w
}

// kindBuildOrder: containers first so In targets exist by the time their
// occupants are built.
var kindBuildOrder = []WidgetKind{
	KindContainer, KindScroll,
	KindImage, KindLabel, KindButton, KindToggle, KindSlider,
}

// buildSet constructs one widget set under root. register is called for each
// built widget so the caller can index it.
func buildSet(set map[WidgetKind]map[string]WidgetDef, reg Registry, root *Widget, register func(*Widget)) {
	for _, kind := range kindBuildOrder {
		defs := set[kind]
		names := make([]string, 0, len(defs))
		for name := range defs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			def := defs[name]
			w := buildWidget(kind, name, def, reg)

			parent := root
			if def.In != "" {
				if target := root.Find(def.In); target != nil {
					parent = target
				} else {
					warnf("widget %s/%q: no container %q; attaching to root", kind, name, def.In)
				}
			}
			parent.Attach(w)
			register(w)
		}
	}
}

func buildWidget(kind WidgetKind, name string, def WidgetDef, reg Registry) *Widget {
	var w *Widget
	switch kind {
	case KindContainer:
		w = NewContainer(name, def.Rect)
	case KindScroll:
		sbw := def.ScrollbarWidth
		if sbw <= 0 {
			sbw = 12
		}
		w = NewScroll(name, def.Rect, def.ContentExtent, sbw)
	case KindButton:
		w = NewButton(name, def.Rect, reg.action(def.Action))
		w.Text = def.Text
	case KindToggle:
		w = NewToggle(name, def.Rect, reg.toggle(def.OnToggle))
		w.Text = def.Text
		w.Checked = def.Checked
		w.RadioGroup = def.RadioGroup
	case KindSlider:
		w = NewSlider(name, def.Rect, def.Min, def.Max, def.HandleLen)
		w.Vertical = def.Vertical
		w.SetValue(def.Value)
		w.OnChange = reg.change(def.OnChange)
		w.OnCommit = reg.change(def.OnCommit)
	case KindLabel:
		w = NewLabel(name, def.Rect, def.Text)
		w.Action = reg.action(def.Action)
	case KindImage:
		w = NewImage(name, def.Rect, reg.image(def.Image))
		w.Action = reg.action(def.Action)
	default:
		warnf("descriptor: kind %s cannot be built; making a container", kind)
		w = NewContainer(name, def.Rect)
	}

	if def.Color != (Color{}) {
		w.Color = def.Color
	}
	if def.TextColor != (Color{}) {
		w.TextColor = def.TextColor
	}
	if def.Hidden {
		w.Visible = false
	}
	if def.Inert {
		w.Interactive = false
	}
	w.Frame = def.Frame
	return w
}
