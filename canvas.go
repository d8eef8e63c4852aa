package trellis

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TextFace is the font face labels render with. Any text/v2 face works; a
// nil face falls back to ebitenutil debug text.
type TextFace = text.Face

// toRGBA converts to 8-bit straight-alpha RGBA, clamping each channel.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1) * 255),
		G: uint8(clamp(c.G, 0, 1) * 255),
		B: uint8(clamp(c.B, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

type touchRec struct {
	slot int
	x, y float64
}

// EbitenCanvas renders the widget tree onto an ebiten.Image and polls raw
// ebiten input into UI events. Clipping uses SubImage, so PushClip is cheap
// and nests naturally.
type EbitenCanvas struct {
	stack []*ebiten.Image // clip stack; last entry is the current destination
	face  TextFace

	// polling state
	mouseDown    bool
	lastX, lastY int
	keys         []ebiten.Key
	prevKeys     []ebiten.Key
	touchIDs     []ebiten.TouchID
	touches      map[ebiten.TouchID]touchRec
	slotUsed     [maxPointers]bool
}

// NewEbitenCanvas creates a canvas rendering text with the given face.
func NewEbitenCanvas(face TextFace) *EbitenCanvas {
	return &EbitenCanvas{
		face:    face,
		touches: make(map[ebiten.TouchID]touchRec),
	}
}

// Reset points the canvas at this frame's destination image and clears the
// clip stack. Call once per Draw before UI.Draw.
func (c *EbitenCanvas) Reset(screen *ebiten.Image) {
	c.stack = c.stack[:0]
	c.stack = append(c.stack, screen)
}

func (c *EbitenCanvas) cur() *ebiten.Image {
	return c.stack[len(c.stack)-1]
}

// FillRect draws a filled rectangle.
func (c *EbitenCanvas) FillRect(r Rect, col Color) {
	if col.A <= 0 || r.Empty() {
		return
	}
	vector.DrawFilledRect(c.cur(),
		float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		col.toRGBA(), false)
}

// StrokeRect draws a rectangle outline.
func (c *EbitenCanvas) StrokeRect(r Rect, col Color, width float64) {
	if col.A <= 0 || r.Empty() {
		return
	}
	vector.StrokeRect(c.cur(),
		float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		float32(width), col.toRGBA(), false)
}

// DrawText draws one line of text, left-aligned, vertically centered on y.
func (c *EbitenCanvas) DrawText(s string, x, y float64, col Color) {
	if s == "" || col.A <= 0 {
		return
	}
	if c.face == nil {
		ebitenutil.DebugPrintAt(c.cur(), s, int(x), int(y)-8)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col.toRGBA())
	op.SecondaryAlign = text.AlignCenter
	text.Draw(c.cur(), s, c.face, op)
}

// DrawImage blits img scaled to fill r.
func (c *EbitenCanvas) DrawImage(img *ebiten.Image, r Rect) {
	if img == nil || r.Empty() {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	c.cur().DrawImage(img, op)
}

// PushClip restricts subsequent draws to r via SubImage. Nested clips
// intersect implicitly because the sub-image is taken from the current
// destination.
func (c *EbitenCanvas) PushClip(r Rect) {
	sub := c.cur().SubImage(r.imageRect()).(*ebiten.Image)
	c.stack = append(c.stack, sub)
}

// PopClip restores the previous clip region.
func (c *EbitenCanvas) PopClip() {
	if len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// Bounds returns the current destination bounds.
func (c *EbitenCanvas) Bounds() Rect {
	if len(c.stack) == 0 {
		return Rect{}
	}
	b := c.cur().Bounds()
	return Rect{X: float64(b.Min.X), Y: float64(b.Min.Y),
		Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// --- Input polling ---

// PollInput samples ebiten's mouse, touch, wheel, and keyboard state and
// queues the corresponding edge events on the UI. Pointer 0 is the mouse;
// touches take slots 1 and up. Call once per Update, before UI.Update.
func (c *EbitenCanvas) PollInput(ui *UI) {
	mx, my := ebiten.CursorPosition()
	fx, fy := float64(mx), float64(my)

	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case down && !c.mouseDown:
		ui.Dispatch(Event{Kind: EventDown, X: fx, Y: fy})
	case down && (mx != c.lastX || my != c.lastY):
		ui.Dispatch(Event{Kind: EventMove, X: fx, Y: fy})
	case !down && c.mouseDown:
		ui.Dispatch(Event{Kind: EventUp, X: fx, Y: fy})
	}
	c.mouseDown = down
	c.lastX, c.lastY = mx, my

	if _, wy := ebiten.Wheel(); wy != 0 {
		ui.Dispatch(Event{Kind: EventWheel, X: fx, Y: fy, DeltaY: wy})
	}

	c.pollTouches(ui)

	c.keys = inpututil.AppendPressedKeys(c.keys[:0])
	for _, k := range c.keys {
		if !containsKey(c.prevKeys, k) {
			ui.Dispatch(Event{Kind: EventKey, Key: Key(k)})
		}
	}
	c.prevKeys = append(c.prevKeys[:0], c.keys...)
}

func (c *EbitenCanvas) pollTouches(ui *UI) {
	c.touchIDs = ebiten.AppendTouchIDs(c.touchIDs[:0])

	for _, tid := range c.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		fx, fy := float64(tx), float64(ty)
		rec, known := c.touches[tid]
		if !known {
			slot := c.claimSlot()
			if slot < 0 {
				continue // out of pointer slots; ignore extra touches
			}
			c.touches[tid] = touchRec{slot: slot, x: fx, y: fy}
			ui.Dispatch(Event{Kind: EventDown, X: fx, Y: fy, Pointer: slot})
			continue
		}
		if fx != rec.x || fy != rec.y {
			ui.Dispatch(Event{Kind: EventMove, X: fx, Y: fy, Pointer: rec.slot})
			rec.x, rec.y = fx, fy
			c.touches[tid] = rec
		}
	}

	// Touches that vanished this frame release at their last known position.
	for tid, rec := range c.touches {
		if !containsTouch(c.touchIDs, tid) {
			ui.Dispatch(Event{Kind: EventUp, X: rec.x, Y: rec.y, Pointer: rec.slot})
			c.slotUsed[rec.slot] = false
			delete(c.touches, tid)
		}
	}
}

// claimSlot reserves the lowest free touch pointer slot (1 and up; 0 is the
// mouse). Returns -1 when all slots are taken.
func (c *EbitenCanvas) claimSlot() int {
	for i := 1; i < maxPointers; i++ {
		if !c.slotUsed[i] {
			c.slotUsed[i] = true
			return i
		}
	}
	return -1
}

func containsKey(keys []ebiten.Key, k ebiten.Key) bool {
	for _, other := range keys {
		if other == k {
			return true
		}
	}
	return false
}

func containsTouch(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}
