package trellis

import (
	"math"
	"testing"
)

func testSlider() *Widget {
	// 100px track, 20px handle → 80px travel over [0, 10]
	return NewSlider("s", Rect{Width: 100, Height: 20}, 0, 10, 20)
}

func TestPositionForEndpoints(t *testing.T) {
	s := testSlider()
	if got := s.PositionFor(0); got != 0 {
		t.Errorf("PositionFor(Min) = %v, want 0", got)
	}
	if got := s.PositionFor(10); got != 80 {
		t.Errorf("PositionFor(Max) = %v, want travel 80", got)
	}
	if got := s.PositionFor(5); got != 40 {
		t.Errorf("PositionFor(mid) = %v, want 40", got)
	}
}

func TestPositionForClampsValue(t *testing.T) {
	s := testSlider()
	if got := s.PositionFor(-5); got != 0 {
		t.Errorf("PositionFor below Min = %v, want 0", got)
	}
	if got := s.PositionFor(99); got != 80 {
		t.Errorf("PositionFor above Max = %v, want 80", got)
	}
}

func TestValueForInverse(t *testing.T) {
	s := testSlider()
	for v := 0.0; v <= 10; v += 0.5 {
		back := s.ValueFor(s.PositionFor(v))
		if math.Abs(back-v) > 1e-9 {
			t.Errorf("round trip %v → %v", v, back)
		}
	}
}

func TestPositionForMonotonic(t *testing.T) {
	s := testSlider()
	prev := s.PositionFor(0)
	for v := 0.5; v <= 10; v += 0.5 {
		pos := s.PositionFor(v)
		if pos < prev {
			t.Fatalf("PositionFor not monotonic at %v: %v < %v", v, pos, prev)
		}
		prev = pos
	}
}

func TestDegenerateRanges(t *testing.T) {
	// Max == Min
	s := NewSlider("s", Rect{Width: 100, Height: 20}, 5, 5, 20)
	if got := s.PositionFor(5); got != 0 {
		t.Errorf("degenerate value range: PositionFor = %v, want 0", got)
	}
	if got := s.ValueFor(40); got != 5 {
		t.Errorf("degenerate value range: ValueFor = %v, want Min", got)
	}

	// Handle longer than track
	s = NewSlider("s", Rect{Width: 10, Height: 20}, 0, 10, 50)
	if got := s.PositionFor(7); got != 0 {
		t.Errorf("degenerate travel: PositionFor = %v, want 0", got)
	}
	if got := s.ValueFor(3); got != 0 {
		t.Errorf("degenerate travel: ValueFor = %v, want Min", got)
	}
}

func TestSetValueClampsSilently(t *testing.T) {
	fired := false
	s := testSlider()
	s.OnChange = func(float64) { fired = true }
	s.SetValue(99)
	if s.Value != 10 {
		t.Errorf("Value = %v, want 10", s.Value)
	}
	if fired {
		t.Error("SetValue must not fire OnChange")
	}
}

func TestVerticalTrack(t *testing.T) {
	s := NewSlider("v", Rect{Width: 20, Height: 100}, 0, 10, 20)
	s.Vertical = true
	if got := s.trackLength(); got != 100 {
		t.Errorf("vertical track = %v, want Height 100", got)
	}
	hr := s.handleRect()
	if hr.Width != 20 || hr.Height != 20 {
		t.Errorf("vertical handle = %v", hr)
	}
}

// --- Drag path ---

func TestDragDerivesValueFromPixels(t *testing.T) {
	var changes []float64
	s := testSlider()
	s.SetValue(0)
	s.OnChange = func(v float64) { changes = append(changes, v) }

	s.beginDrag()
	s.dragTo(40, 0) // half the travel
	if math.Abs(s.Value-5) > 1e-9 {
		t.Errorf("Value = %v, want 5", s.Value)
	}
	s.dragTo(80, 0)
	if s.Value != 10 {
		t.Errorf("Value = %v, want 10", s.Value)
	}
	// Overshoot clamps; value stays pinned rather than accumulating.
	s.dragTo(500, 0)
	if s.Value != 10 {
		t.Errorf("overshoot Value = %v, want 10", s.Value)
	}
	if len(changes) != 3 {
		t.Errorf("OnChange fired %d times, want 3", len(changes))
	}
}

func TestDragAnchorsAtGestureStart(t *testing.T) {
	s := testSlider()
	s.SetValue(5) // handle at 40px
	s.beginDrag()
	s.dragTo(-40, 0)
	if math.Abs(s.Value) > 1e-9 {
		t.Errorf("Value = %v, want 0 (40px left of the 40px anchor)", s.Value)
	}
}

func TestCommitAlwaysFires(t *testing.T) {
	var committed []float64
	s := testSlider()
	s.OnCommit = func(v float64) { committed = append(committed, v) }
	s.beginDrag()
	s.dragTo(999, 0) // released far off-track
	s.commitDrag()
	if len(committed) != 1 || committed[0] != 10 {
		t.Errorf("committed = %v, want [10]", committed)
	}
}

func TestVerticalDragUsesY(t *testing.T) {
	s := NewSlider("v", Rect{Width: 20, Height: 100}, 0, 10, 20)
	s.Vertical = true
	s.beginDrag()
	s.dragTo(500, 40) // x delta must be ignored
	if math.Abs(s.Value-5) > 1e-9 {
		t.Errorf("Value = %v, want 5", s.Value)
	}
}
