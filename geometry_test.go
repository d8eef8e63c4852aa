package trellis

import "testing"

func TestRectContainsEdges(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},  // top-left corner
		{30, 30, true},  // bottom-right corner (edges inclusive)
		{20, 20, true},  // center
		{9.9, 20, false},
		{20, 30.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	got := intersect(a, b)
	want := Rect{X: 5, Y: 5, Width: 5, Height: 5}
	if got != want {
		t.Errorf("intersect = %v, want %v", got, want)
	}

	c := Rect{X: 100, Y: 100, Width: 5, Height: 5}
	if !intersect(a, c).Empty() {
		t.Error("disjoint intersect should be empty")
	}
	if got := intersect(a, c); got.Width < 0 || got.Height < 0 {
		t.Errorf("intersect must never invert: %v", got)
	}
}

func TestUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 5, Width: 10, Height: 10}
	got := union(a, b)
	want := Rect{X: 0, Y: 0, Width: 30, Height: 15}
	if got != want {
		t.Errorf("union = %v, want %v", got, want)
	}
}

func TestImageRectExpandsOutward(t *testing.T) {
	r := Rect{X: 1.2, Y: 2.7, Width: 10.1, Height: 5.1}
	ir := r.imageRect()
	if ir.Min.X != 1 || ir.Min.Y != 2 || ir.Max.X != 12 || ir.Max.Y != 8 {
		t.Errorf("imageRect = %v", ir)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 0, 10); got != 5 {
		t.Errorf("clamp in-range = %v", got)
	}
	if got := clamp(-1, 0, 10); got != 0 {
		t.Errorf("clamp below = %v", got)
	}
	if got := clamp(11, 0, 10); got != 10 {
		t.Errorf("clamp above = %v", got)
	}
	// lo wins on an inverted interval
	if got := clamp(5, 6, 4); got != 6 {
		t.Errorf("clamp inverted = %v, want 6", got)
	}
}
