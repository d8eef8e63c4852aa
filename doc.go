// Package trellis is a retained-mode UI toolkit for turn-based board games
// built on [Ebitengine].
//
// Trellis provides the widget tree, panel management, priority hit-testing,
// and property-driven animation that a board game's interface needs: buttons,
// toggles with radio groups, sliders, labels, images, scrollable containers,
// and tabbed overlay panels with z-order and mutual exclusion.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	ui := trellis.New()
//	root := ui.AddMode("game")
//	root.Attach(trellis.NewButton("end_turn",
//		trellis.Rect{X: 540, Y: 440, Width: 90, Height: 32}, endTurn))
//	trellis.Run(ui, trellis.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [EbitenCanvas.PollInput], [UI.Update] and [UI.Draw] directly.
//
// # Widget tree
//
// Every element is a [Widget]; the [WidgetKind] tag selects behavior. A
// widget's rect is relative to its parent, and [Widget.AbsoluteRect] resolves
// the screen rect on demand with memoization. Any geometry mutation
// invalidates the cached rects of the widget and its descendants in the same
// call, so reads are always current.
//
// # Panels
//
// Overlay panels live outside the base screen, managed by [PanelManager].
// Lower ZIndex means higher input priority and topmost paint. Panels can be
// mutually exclusive, modal, and tabbed; tab switches flip visibility without
// rebuilding anything.
//
// # Input
//
// Raw events queue on the [UI] and route through a per-pointer state machine
// (press, drag past a dead zone, release). Hit-testing walks open panels in
// priority order before the base screen, and overlapping widgets resolve by
// kind precedence. Synthetic events can be injected for headless tests, one
// per frame, or sequenced from a JSON script via [ScriptRunner].
//
// # Drivers
//
// [UI.AttachDriver] binds a value [Source] ([Driver] tweens, [Spring]
// physics, or anything implementing Step) to a widget property path such as
// "y" or "gold_label.alpha". Sources on the same property combine by
// priority with override or additive blending; additive offsets are applied
// against a baseline captured once, so they never compound into drift.
//
// [Ebitengine]: https://ebitengine.org
package trellis
