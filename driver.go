package trellis

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// A Source generates one float64 per tick for the driver pipeline.
// Step advances by dt seconds and reports the current value and whether the
// source has finished. Finished sources keep reporting their final value.
type Source interface {
	Step(dt float64) (value float64, done bool)
}

// Blend selects how a driver's value combines with others bound to the same
// (widget, property) pair.
type Blend uint8

const (
	// BlendOverride replaces the accumulated value.
	BlendOverride Blend = iota
	// BlendAdditive offsets from a baseline captured once when the pair is
	// first evaluated, never re-captured, so stacked offsets cannot compound
	// into drift.
	BlendAdditive
)

// Driver is a time-parameterized value generator:
//
//	value = start + easing(elapsed/duration) × (end − start)
//
// elapsed wraps modulo duration when Periodic, otherwise clamps at duration
// and the driver stops.
type Driver struct {
	Start, End float64
	Duration   float64
	Elapsed    float64
	Periodic   bool
	Ease       ease.TweenFunc // nil means linear
}

// NewDriver creates a one-shot driver from start to end over duration
// seconds.
func NewDriver(start, end, duration float64, fn ease.TweenFunc) *Driver {
	return &Driver{Start: start, End: end, Duration: duration, Ease: fn}
}

// Step advances the driver. A non-positive duration resolves immediately to
// the end value.
func (d *Driver) Step(dt float64) (float64, bool) {
	if d.Duration <= 0 {
		return d.End, true
	}
	done := false
	if d.Periodic {
		d.Elapsed = math.Mod(d.Elapsed+dt, d.Duration)
	} else {
		d.Elapsed += dt
		if d.Elapsed >= d.Duration {
			d.Elapsed = d.Duration
			done = true
		}
	}
	if d.Ease == nil {
		t := d.Elapsed / d.Duration
		return d.Start + t*(d.End-d.Start), done
	}
	v := d.Ease(float32(d.Elapsed), float32(d.Start), float32(d.End-d.Start), float32(d.Duration))
	return float64(v), done
}

// Spring is a critically-dampable property source driven by harmonica's
// spring physics. Unlike a Driver it has no fixed duration: it settles
// toward Target and finishes when position and velocity fall under the
// settle threshold. The spring integrates at a fixed 60 Hz step, matching
// the frame-stepped update model.
type Spring struct {
	Target   float64
	pos, vel float64
	spring   harmonica.Spring
}

const springSettleEps = 0.05

// NewSpring creates a spring source starting at `from` and settling toward
// target. Typical values: frequency 6–12, damping 0.7–1.0 (1.0 is
// critically damped, no overshoot).
func NewSpring(from, target, frequency, damping float64) *Spring {
	return &Spring{
		Target: target,
		pos:    from,
		spring: harmonica.NewSpring(harmonica.FPS(60), frequency, damping),
	}
}

// Step advances the spring one frame. dt is ignored: the spring constants
// are baked for the fixed tick rate.
func (s *Spring) Step(_ float64) (float64, bool) {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.Target)
	done := math.Abs(s.pos-s.Target) < springSettleEps && math.Abs(s.vel) < springSettleEps
	return s.pos, done
}

// --- Pipeline ---

// Binding ties a Source to a widget property path inside the pipeline.
// Obtain one from UI.AttachDriver; pass it to UI.DetachDriver to remove.
type Binding struct {
	widget     *Widget
	path       string
	source     Source
	blend      Blend
	priority   int
	OnComplete func() // fired at most once, when a non-periodic source finishes

	value float64
	done  bool
	fired bool
}

type pairKey struct {
	widget *Widget
	path   string
}

// driverGroup holds every binding for one (widget, path) pair, sorted by
// priority. Bindings with a higher priority number are applied later and
// therefore win when overriding.
type driverGroup struct {
	key         pairKey
	bindings    []*Binding
	baseline    float64
	baselineSet bool
}

// pipeline evaluates all driver bindings once per frame, before input and
// hit-testing read widget geometry.
type pipeline struct {
	groups []*driverGroup
	index  map[pairKey]*driverGroup
}

func newPipeline() *pipeline {
	return &pipeline{index: make(map[pairKey]*driverGroup)}
}

// attach registers src against w's dot-separated property path. The path is
// resolved lazily every tick: paths that stop resolving become silent no-ops
// rather than errors.
func (pl *pipeline) attach(w *Widget, path string, src Source, blend Blend, priority int, onComplete func()) *Binding {
	b := &Binding{
		widget: w, path: path, source: src,
		blend: blend, priority: priority, OnComplete: onComplete,
	}
	key := pairKey{widget: w, path: path}
	g := pl.index[key]
	if g == nil {
		g = &driverGroup{key: key}
		pl.index[key] = g
		pl.groups = append(pl.groups, g)
	}
	// Insert keeping ascending priority, stable for equal priorities.
	i := len(g.bindings)
	for i > 0 && g.bindings[i-1].priority > priority {
		i--
	}
	g.bindings = append(g.bindings, nil)
	copy(g.bindings[i+1:], g.bindings[i:])
	g.bindings[i] = b
	return b
}

// detach removes b. When the last binding for a pair detaches, the pair's
// additive baseline is dropped with it.
func (pl *pipeline) detach(b *Binding) {
	key := pairKey{widget: b.widget, path: b.path}
	g := pl.index[key]
	if g == nil {
		return
	}
	for i, other := range g.bindings {
		if other == b {
			g.bindings = append(g.bindings[:i], g.bindings[i+1:]...)
			break
		}
	}
	if len(g.bindings) == 0 {
		delete(pl.index, key)
		for i, other := range pl.groups {
			if other == g {
				pl.groups = append(pl.groups[:i], pl.groups[i+1:]...)
				break
			}
		}
	}
}

// tick steps every source and writes each group's blended value to its
// property. Completed non-periodic sources hold their final value (so
// additive stacks do not pop) until detached.
func (pl *pipeline) tick(dt float64) {
	for _, g := range pl.groups {
		target, prop, resolved := g.key.widget.resolvePath(g.key.path)
		if resolved {
			if _, ok := target.getProperty(prop); !ok {
				resolved = false
			}
		}

		hasAdditive := false
		for _, b := range g.bindings {
			if !b.done {
				v, done := b.source.Step(dt)
				b.value = v
				if done {
					b.done = true
					if !b.fired && b.OnComplete != nil {
						b.fired = true
						b.OnComplete()
					}
				}
			}
			if b.blend == BlendAdditive {
				hasAdditive = true
			}
		}

		if !resolved {
			continue // dangling binding: time advances, nothing is written
		}

		var acc float64
		if hasAdditive {
			if !g.baselineSet {
				g.baseline, _ = target.getProperty(prop)
				g.baselineSet = true
			}
			acc = g.baseline
		} else {
			acc, _ = target.getProperty(prop)
		}
		for _, b := range g.bindings {
			switch b.blend {
			case BlendOverride:
				acc = b.value
			case BlendAdditive:
				acc += b.value
			}
		}
		target.setProperty(prop, acc)
	}
}

// --- Tween groups ---

// TweenGroup animates up to 4 float64 fields on a Widget simultaneously,
// outside the driver pipeline. Create one via the convenience constructors
// and call Update(dt) each frame; the group invalidates the widget's cached
// geometry after every write.
//
// There is no global tween manager — callers own the Update call.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Widget
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.target != nil {
		g.target.invalidate()
	}
}

// TweenMove animates the widget's relative position to (toX, toY).
func TweenMove(w *Widget, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: w}
	g.tweens[0] = gween.New(float32(w.rect.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(w.rect.Y), float32(toY), duration, fn)
	g.fields[0] = &w.rect.X
	g.fields[1] = &w.rect.Y
	return g
}

// TweenResize animates the widget's width and height.
func TweenResize(w *Widget, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: w}
	g.tweens[0] = gween.New(float32(w.rect.Width), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(w.rect.Height), float32(toH), duration, fn)
	g.fields[0] = &w.rect.Width
	g.fields[1] = &w.rect.Height
	return g
}

// TweenAlpha animates the widget's alpha.
func TweenAlpha(w *Widget, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: w}
	g.tweens[0] = gween.New(float32(w.Alpha), float32(to), duration, fn)
	g.fields[0] = &w.Alpha
	return g
}
