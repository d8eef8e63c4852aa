package trellis

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeCanvas records paint calls for order and clip assertions.
type fakeCanvas struct {
	ops   []string // "fill:<name-by-rect>" is too brittle; record op kinds + rects
	fills []Rect
	texts []string
	clips []Rect
	depth int
}

func (f *fakeCanvas) FillRect(r Rect, c Color) {
	f.ops = append(f.ops, "fill")
	f.fills = append(f.fills, r)
}

func (f *fakeCanvas) StrokeRect(r Rect, c Color, width float64) {
	f.ops = append(f.ops, "stroke")
}

func (f *fakeCanvas) DrawText(s string, x, y float64, c Color) {
	f.ops = append(f.ops, "text")
	f.texts = append(f.texts, s)
}

func (f *fakeCanvas) DrawImage(img *ebiten.Image, r Rect) {
	f.ops = append(f.ops, "image")
}

func (f *fakeCanvas) PushClip(r Rect) {
	f.ops = append(f.ops, "pushclip")
	f.clips = append(f.clips, r)
	f.depth++
}

func (f *fakeCanvas) PopClip() {
	f.ops = append(f.ops, "popclip")
	f.depth--
}

func (f *fakeCanvas) Bounds() Rect {
	return Rect{Width: 800, Height: 600}
}

func TestDrawSkipsHidden(t *testing.T) {
	ui := New()
	root := ui.AddMode("game")
	b := NewButton("b", Rect{X: 10, Y: 10, Width: 50, Height: 20}, nil)
	b.Visible = false
	root.Attach(b)

	fc := &fakeCanvas{}
	ui.Draw(fc)
	if len(fc.fills) != 0 {
		t.Errorf("hidden widget painted: %v", fc.fills)
	}
}

func TestDrawSkipsZeroAlpha(t *testing.T) {
	ui := New()
	root := ui.AddMode("game")
	b := NewButton("b", Rect{X: 10, Y: 10, Width: 50, Height: 20}, nil)
	b.Alpha = 0
	root.Attach(b)

	fc := &fakeCanvas{}
	ui.Draw(fc)
	if len(fc.fills) != 0 {
		t.Error("zero-alpha widget painted")
	}
}

func TestDrawPanelsPaintTopmostLast(t *testing.T) {
	ui := New()
	root := ui.AddMode("game")
	root.Attach(NewButton("base", Rect{X: 0, Y: 0, Width: 10, Height: 10}, nil))

	back := NewPanel("back", Vec2{X: 100, Y: 100}, Vec2{X: 200, Y: 0}, Vec2{}, 9)
	front := NewPanel("front", Vec2{X: 100, Y: 100}, Vec2{X: 400, Y: 0}, Vec2{}, 1)
	ui.Panels.Add(back)
	ui.Panels.Add(front)
	ui.Panels.Open("back")
	ui.Panels.Open("front")

	fc := &fakeCanvas{}
	ui.Draw(fc)
	// base fill, then back panel (z 9), then front panel (z 1) last.
	if len(fc.fills) != 3 {
		t.Fatalf("fill count = %d, want 3", len(fc.fills))
	}
	if fc.fills[1].X != 200 || fc.fills[2].X != 400 {
		t.Errorf("paint order = %v; lowest ZIndex must paint last", fc.fills)
	}
}

func TestDrawScrollClipsContentNotScrollbar(t *testing.T) {
	ui := New()
	root := ui.AddMode("game")
	sc := NewScroll("list", Rect{X: 50, Y: 50, Width: 200, Height: 400}, 1000, 12)
	item := NewButton("item", Rect{X: 10, Y: 100, Width: 100, Height: 30}, nil)
	sc.Attach(item)
	root.Attach(sc)

	fc := &fakeCanvas{}
	ui.Draw(fc)

	if len(fc.clips) != 1 {
		t.Fatalf("clip count = %d, want 1", len(fc.clips))
	}
	want := Rect{X: 50, Y: 50, Width: 200, Height: 400}
	if fc.clips[0] != want {
		t.Errorf("clip = %v, want the viewport %v", fc.clips[0], want)
	}
	if fc.depth != 0 {
		t.Errorf("clip stack unbalanced: depth %d", fc.depth)
	}

	// Ops: pushclip, item fill, popclip, then the scrollbar's two fills
	// (track and handle) outside the clip.
	var afterPop int
	for i, op := range fc.ops {
		if op == "popclip" {
			afterPop = i
		}
	}
	fillsAfter := 0
	for _, op := range fc.ops[afterPop:] {
		if op == "fill" {
			fillsAfter++
		}
	}
	if fillsAfter != 2 {
		t.Errorf("scrollbar fills after PopClip = %d, want 2", fillsAfter)
	}
}

func TestDrawInactiveTabHidden(t *testing.T) {
	ui := New()
	ui.AddMode("game")
	p := NewPanel("settings", Vec2{X: 300, Y: 200}, Vec2{X: 100, Y: 100}, Vec2{}, 1)
	audio := p.AddTab("Audio")
	video := p.AddTab("Video")
	audio.Add(NewLabel("a_lbl", Rect{Width: 50, Height: 20}, "audio"))
	video.Add(NewLabel("v_lbl", Rect{Width: 50, Height: 20}, "video"))
	ui.Panels.Add(p)
	ui.Panels.Open("settings")

	fc := &fakeCanvas{}
	ui.Draw(fc)

	var sawAudio, sawVideo bool
	for _, s := range fc.texts {
		switch s {
		case "audio":
			sawAudio = true
		case "video":
			sawVideo = true
		}
	}
	if !sawAudio || sawVideo {
		t.Errorf("audio=%v video=%v, want only the active tab's content", sawAudio, sawVideo)
	}
}

func TestColorScaled(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.8}
	got := c.scaled(0.5)
	if got.A != 0.4 || got.R != 1 {
		t.Errorf("scaled = %v", got)
	}
}

func TestColorToRGBAClamps(t *testing.T) {
	c := Color{R: 2, G: -1, B: 0.5, A: 1}
	rgba := c.toRGBA()
	if rgba.R != 255 || rgba.G != 0 || rgba.B != 127 || rgba.A != 255 {
		t.Errorf("toRGBA = %v", rgba)
	}
}
