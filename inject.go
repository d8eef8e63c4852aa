package trellis

// Synthetic input injection. Injected events join a separate queue and are
// consumed one per Update, so a scripted interaction advances in lockstep
// with the frame clock and every intermediate frame is observable. Real
// events from PollInput are unaffected.

// Inject queues one synthetic event.
func (ui *UI) Inject(ev Event) {
	ui.injectQueue = append(ui.injectQueue, ev)
}

// InjectPress queues a pointer-down at (x, y) on pointer 0.
func (ui *UI) InjectPress(x, y float64) {
	ui.Inject(Event{Kind: EventDown, X: x, Y: y})
}

// InjectMove queues a pointer move to (x, y) on pointer 0.
func (ui *UI) InjectMove(x, y float64) {
	ui.Inject(Event{Kind: EventMove, X: x, Y: y})
}

// InjectRelease queues a pointer-up at (x, y) on pointer 0.
func (ui *UI) InjectRelease(x, y float64) {
	ui.Inject(Event{Kind: EventUp, X: x, Y: y})
}

// InjectClick queues a press and release at the same point.
func (ui *UI) InjectClick(x, y float64) {
	ui.InjectPress(x, y)
	ui.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), a number of interpolated
// moves, and a release at (toX, toY). steps < 1 is treated as 1.
func (ui *UI) InjectDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	ui.InjectPress(fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		ui.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	ui.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at (x, y) with the given Y delta.
func (ui *UI) InjectWheel(x, y, deltaY float64) {
	ui.Inject(Event{Kind: EventWheel, X: x, Y: y, DeltaY: deltaY})
}

// InjectKey queues a key press.
func (ui *UI) InjectKey(key Key) {
	ui.Inject(Event{Kind: EventKey, Key: key})
}

// PendingInjected reports how many synthetic events are still queued.
func (ui *UI) PendingInjected() int { return len(ui.injectQueue) }
