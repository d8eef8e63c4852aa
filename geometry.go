package trellis

import (
	"image"
	"math"
)

// translate returns r shifted by (dx, dy).
func (r Rect) translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// intersect returns the overlapping area of a and b.
// If there is no overlap, an empty rectangle is returned (never inverted).
func intersect(a, b Rect) Rect {
	x0 := math.Max(a.X, b.X)
	y0 := math.Max(a.Y, b.Y)
	x1 := math.Min(a.X+a.Width, b.X+b.Width)
	y1 := math.Min(a.Y+a.Height, b.Y+b.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// union expands a to encompass b and returns the result.
func union(a, b Rect) Rect {
	x0 := math.Min(a.X, b.X)
	y0 := math.Min(a.Y, b.Y)
	x1 := math.Max(a.X+a.Width, b.X+b.Width)
	y1 := math.Max(a.Y+a.Height, b.Y+b.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// imageRect converts a Rect to the standard image.Rectangle type, expanding
// outward to whole pixels.
func (r Rect) imageRect() image.Rectangle {
	return image.Rectangle{
		Min: image.Point{X: int(math.Floor(r.X)), Y: int(math.Floor(r.Y))},
		Max: image.Point{X: int(math.Ceil(r.X + r.Width)), Y: int(math.Ceil(r.Y + r.Height))},
	}
}

// clamp bounds v to [lo, hi]. lo wins when the interval is inverted.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
