package trellis

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default widget tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent draws nothing when used as a fill.
var ColorTransparent = Color{0, 0, 0, 0}

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. A widget stores its Rect in its
// parent's frame; the screen-space equivalent is derived (see
// Widget.AbsoluteRect).
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// WidgetKind distinguishes behavior and paint for a Widget. The set is
// closed: every widget is exactly one of these, dispatched by switch.
type WidgetKind uint8

const (
	KindContainer WidgetKind = iota // group widget with no visual output
	KindButton                      // fires Action on release inside
	KindToggle                      // boolean state, optional radio group
	KindSlider                      // value mapped to handle pixels
	KindLabel                       // static or driver-written text line
	KindImage                       // blits an image into its rect
	KindScroll                      // fixed viewport over taller content
	KindPanel                       // overlay with z-order and exclusivity
)

// String returns the descriptor key for the kind ("button", "slider", ...).
func (k WidgetKind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindButton:
		return "button"
	case KindToggle:
		return "toggle"
	case KindSlider:
		return "slider"
	case KindLabel:
		return "label"
	case KindImage:
		return "image"
	case KindScroll:
		return "scroll"
	case KindPanel:
		return "panel"
	default:
		return "unknown"
	}
}

// Frame selects which coordinate resolution strategy a widget uses when its
// parent is a scroll container. Content children ride the scroll offset;
// fixed children (the scrollbar) do not. On any other parent the two are
// identical.
type Frame uint8

const (
	FrameContent Frame = iota // offset by the parent's scroll position
	FrameFixed                // pinned to the parent's screen rect
)

// EventKind identifies a raw input event.
type EventKind uint8

const (
	EventDown  EventKind = iota // pointer button pressed
	EventMove                   // pointer moved
	EventUp                     // pointer button released
	EventWheel                  // wheel delta (DeltaY)
	EventKey                    // key press (Key)
)

// Key is a raw key code. Values match ebiten.Key so the polling adapter can
// convert for free; the router itself never inspects ebiten.
type Key int

// KeyNone is the zero Key; it never matches a binding.
const KeyNone Key = -1

// Named keys for the common bindings. Any ebiten.Key converts directly.
var (
	KeyEscape = Key(ebiten.KeyEscape)
	KeyEnter  = Key(ebiten.KeyEnter)
	KeySpace  = Key(ebiten.KeySpace)
	KeyTab    = Key(ebiten.KeyTab)
)

// Event is a single raw input event. Events are delivered to the router one
// at a time in arrival order.
type Event struct {
	Kind    EventKind
	X, Y    float64
	Pointer int     // pointer slot; 0 is the mouse
	DeltaY  float64 // wheel only
	Key     Key     // key events only
}

// --- Game loop helper ---

// RunConfig configures the Run helper.
type RunConfig struct {
	Title         string
	Width, Height int
	TPS           int       // ticks per second; 0 means ebiten's default
	Face          TextFace  // font face for labels; nil falls back to debug text
	Background    Color
}

type runGame struct {
	ui     *UI
	canvas *EbitenCanvas
	bg     Color
}

func (g *runGame) Update() error {
	g.canvas.PollInput(g.ui)
	g.ui.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *runGame) Draw(screen *ebiten.Image) {
	if g.bg.A > 0 {
		screen.Fill(g.bg.toRGBA())
	}
	g.canvas.Reset(screen)
	g.ui.Draw(g.canvas)
}

func (g *runGame) Layout(w, h int) (int, int) { return w, h }

// Run opens a window and drives the UI with ebiten's game loop. For full
// control implement ebiten.Game yourself and call UI.Update, UI.Draw and
// EbitenCanvas.PollInput directly.
func Run(ui *UI, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	return ebiten.RunGame(&runGame{
		ui:     ui,
		canvas: NewEbitenCanvas(cfg.Face),
		bg:     cfg.Background,
	})
}
