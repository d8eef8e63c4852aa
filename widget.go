package trellis

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// widgetIDCounter is a plain counter (no atomic — trellis is single-threaded).
var widgetIDCounter uint32

func nextWidgetID() uint32 {
	widgetIDCounter++
	return widgetIDCounter
}

// Widget is the fundamental UI element. A single flat struct is used for all
// widget kinds to avoid interface dispatch on the hot path; the Kind tag
// selects behavior in switches. Kind-specific fields are grouped below and
// are simply unused for other kinds.
type Widget struct {
	// Identity
	ID   uint32
	Name string
	Kind WidgetKind

	// Hierarchy. Parent is a non-owning back-reference; children are owned
	// top-down and ordered.
	Parent   *Widget
	children []*Widget

	// Rect in the parent's frame. For a parentless widget this is already
	// the screen frame.
	rect Rect

	// Visibility & interaction
	Visible     bool
	Interactive bool
	Frame       Frame
	Alpha       float64

	// Appearance
	Color     Color
	TextColor Color
	Text      string
	Image     *ebiten.Image

	// Button
	Action func()

	// Toggle
	Checked    bool
	RadioGroup string
	OnToggle   func(bool)

	// Slider (scrollbars are sliders)
	Value     float64
	Min, Max  float64
	HandleLen float64
	Vertical  bool
	OnChange  func(float64)
	OnCommit  func(float64)
	// handle pixel position captured when a drag begins; drags derive value
	// from pixels, never the reverse.
	dragStartHandle float64
	scrollHost      *Widget // set when this slider is a scroll container's scrollbar

	// Scroll container
	scrollOffset  float64
	ContentExtent float64
	scrollbar     *Widget

	// Panel
	OpenPos, ClosedPos Vec2
	ZIndex             int
	ExclusiveWith      []string
	Modal              bool
	tabs               []*Tab
	activeTab          int
	tabStrip           *Widget

	// Optional per-frame hook, called from UI.Update after drivers run.
	OnUpdate func(dt float64)

	// Memoized screen rect. Populated lazily by AbsoluteRect, cleared
	// synchronously (self + descendants) by every geometry mutation.
	absRect  Rect
	absValid bool
}

// widgetDefaults sets the common default field values shared by all constructors.
func widgetDefaults(w *Widget) {
	w.ID = nextWidgetID()
	w.Alpha = 1
	w.Color = ColorWhite
	w.TextColor = ColorWhite
	w.Visible = true
	w.Interactive = true
}

// NewContainer creates a group widget with no visual representation.
// Containers are not hit-testable themselves.
func NewContainer(name string, rect Rect) *Widget {
	w := &Widget{Name: name, Kind: KindContainer, rect: rect}
	widgetDefaults(w)
	return w
}

// NewButton creates a button that invokes action on release inside its rect.
func NewButton(name string, rect Rect, action func()) *Widget {
	w := &Widget{Name: name, Kind: KindButton, rect: rect, Action: action}
	widgetDefaults(w)
	return w
}

// NewToggle creates a two-state toggle. Toggles sharing a non-empty
// RadioGroup under the same parent are mutually exclusive.
func NewToggle(name string, rect Rect, onToggle func(bool)) *Widget {
	w := &Widget{Name: name, Kind: KindToggle, rect: rect, OnToggle: onToggle}
	widgetDefaults(w)
	return w
}

// NewSlider creates a horizontal slider over [min, max] with the given handle
// length in pixels. See slider.go for the value/pixel mapping.
func NewSlider(name string, rect Rect, min, max, handleLen float64) *Widget {
	w := &Widget{
		Name: name, Kind: KindSlider, rect: rect,
		Min: min, Max: max, Value: min, HandleLen: handleLen,
	}
	widgetDefaults(w)
	return w
}

// NewLabel creates a text line widget. Labels are hit-testable (their rect
// can act as a click target) but carry no press behavior of their own.
func NewLabel(name string, rect Rect, text string) *Widget {
	w := &Widget{Name: name, Kind: KindLabel, rect: rect, Text: text}
	widgetDefaults(w)
	return w
}

// NewImage creates a widget that blits img scaled into its rect.
func NewImage(name string, rect Rect, img *ebiten.Image) *Widget {
	w := &Widget{Name: name, Kind: KindImage, rect: rect, Image: img}
	widgetDefaults(w)
	return w
}

// Rect returns the widget's rect in its parent's frame.
func (w *Widget) Rect() Rect { return w.rect }

// SetRect replaces the widget's relative rect and invalidates the cached
// screen rects of this widget and every descendant.
func (w *Widget) SetRect(r Rect) {
	w.rect = r
	w.invalidate()
}

// Move offsets the widget's relative rect by (dx, dy) and invalidates self
// and descendants.
func (w *Widget) Move(dx, dy float64) {
	w.rect.X += dx
	w.rect.Y += dy
	w.invalidate()
}

// SetPos places the widget's relative rect origin at (x, y).
func (w *Widget) SetPos(x, y float64) {
	w.rect.X = x
	w.rect.Y = y
	w.invalidate()
}

// --- Tree manipulation ---

// Attach appends child to this widget's children. If child already has a
// parent, it is removed from that parent first. The child's subtree cache is
// invalidated. Panics if child is nil or an ancestor of this widget (cycle).
func (w *Widget) Attach(child *Widget) {
	if child == nil {
		panic("trellis: cannot attach nil child")
	}
	if isAncestor(child, w) {
		panic("trellis: attaching child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = w
	w.children = append(w.children, child)
	child.invalidate()
}

// Detach removes child from this widget. Detaching a widget that is not a
// child is a no-op. The child's subtree cache is invalidated.
func (w *Widget) Detach(child *Widget) {
	if child == nil || child.Parent != w {
		return
	}
	w.removeChildByPtr(child)
	child.Parent = nil
	child.invalidate()
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (w *Widget) Children() []*Widget { return w.children }

// NumChildren returns the number of children.
func (w *Widget) NumChildren() int { return len(w.children) }

// Child returns the direct child with the given name, or nil.
func (w *Widget) Child(name string) *Widget {
	for _, c := range w.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find returns the first widget named name in this subtree (depth-first,
// including w itself), or nil.
func (w *Widget) Find(name string) *Widget {
	if w.Name == name {
		return w
	}
	for _, c := range w.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// isAncestor reports whether candidate is an ancestor of widget.
func isAncestor(candidate, widget *Widget) bool {
	for p := widget; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from w.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (w *Widget) removeChildByPtr(child *Widget) {
	for i, c := range w.children {
		if c == child {
			copy(w.children[i:], w.children[i+1:])
			w.children[len(w.children)-1] = nil
			w.children = w.children[:len(w.children)-1]
			return
		}
	}
}

// --- Screen-rect resolution ---

// AbsoluteRect returns the widget's rect in screen coordinates: the relative
// rect summed up the parent chain, memoized until the next invalidation.
// Content-frame children of a scroll container additionally ride the
// negative scroll offset; fixed-frame children (the scrollbar) do not.
func (w *Widget) AbsoluteRect() Rect {
	if w.absValid {
		return w.absRect
	}
	r := w.rect
	if w.Parent != nil {
		p := w.Parent.AbsoluteRect()
		r.X += p.X
		r.Y += p.Y
		if w.Parent.Kind == KindScroll && w.Frame == FrameContent {
			r.Y -= w.Parent.scrollOffset
		}
	}
	w.absRect = r
	w.absValid = true
	return r
}

// invalidate clears the memoized screen rect on w and transitively on every
// descendant. Always called synchronously from the mutation that caused it.
func (w *Widget) invalidate() {
	w.absValid = false
	for _, c := range w.children {
		c.invalidate()
	}
}

// effectivelyVisible reports whether w and all its ancestors are visible.
func (w *Widget) effectivelyVisible() bool {
	for p := w; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// updateTree runs OnUpdate hooks depth-first. Hidden subtrees still update:
// animation state (e.g. a panel sliding closed) outlives visibility.
func (w *Widget) updateTree(dt float64) {
	if w.OnUpdate != nil {
		w.OnUpdate(dt)
	}
	for _, c := range w.children {
		c.updateTree(dt)
	}
}

// --- Toggle behavior ---

// SetChecked sets the toggle state without firing OnToggle.
func (w *Widget) SetChecked(checked bool) {
	w.Checked = checked
}

// activateToggle flips the toggle, clears siblings in the same radio group,
// and fires OnToggle. Radio toggles cannot be un-checked by re-clicking.
func (w *Widget) activateToggle() {
	if w.RadioGroup != "" {
		if w.Checked {
			return
		}
		if w.Parent != nil {
			for _, sib := range w.Parent.children {
				if sib != w && sib.Kind == KindToggle && sib.RadioGroup == w.RadioGroup {
					sib.Checked = false
				}
			}
		}
		w.Checked = true
	} else {
		w.Checked = !w.Checked
	}
	if w.OnToggle != nil {
		w.OnToggle(w.Checked)
	}
}

// --- Property paths ---

// resolvePath walks a dot-separated property path from w. Every segment but
// the last navigates to a direct child by name; the last names a scalar
// property. Returns the target widget, the property name, and whether every
// intermediate segment resolved.
func (w *Widget) resolvePath(path string) (*Widget, string, bool) {
	segs := strings.Split(path, ".")
	target := w
	for _, seg := range segs[:len(segs)-1] {
		target = target.Child(seg)
		if target == nil {
			return nil, "", false
		}
	}
	return target, segs[len(segs)-1], true
}

// getProperty reads a scalar property by name.
func (w *Widget) getProperty(prop string) (float64, bool) {
	switch prop {
	case "x":
		return w.rect.X, true
	case "y":
		return w.rect.Y, true
	case "w":
		return w.rect.Width, true
	case "h":
		return w.rect.Height, true
	case "alpha":
		return w.Alpha, true
	case "value":
		return w.Value, true
	case "scroll":
		return w.scrollOffset, true
	default:
		return 0, false
	}
}

// setProperty writes a scalar property by name, running the same invariants
// as the corresponding setter (cache invalidation, clamping, scrollbar sync).
func (w *Widget) setProperty(prop string, v float64) bool {
	switch prop {
	case "x":
		w.rect.X = v
		w.invalidate()
	case "y":
		w.rect.Y = v
		w.invalidate()
	case "w":
		w.rect.Width = v
		w.invalidate()
	case "h":
		w.rect.Height = v
		w.invalidate()
	case "alpha":
		w.Alpha = clamp(v, 0, 1)
	case "value":
		w.SetValue(v)
	case "scroll":
		w.SetScrollOffset(v)
	default:
		return false
	}
	return true
}
