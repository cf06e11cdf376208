package state

import "math"

// Bounds is the drawable area. Both edges are inclusive, so a canvas of
// width W accepts x in [0, W].
type Bounds struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the area.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}

// ContainsAll reports whether every point lies inside the area.
func (b Bounds) ContainsAll(points ...Point) bool {
	for _, p := range points {
		if !b.Contains(p) {
			return false
		}
	}
	return true
}

// TriangleVertices returns the top, bottom-left and bottom-right corners of
// an upward equilateral triangle of side size anchored at center. Offsets
// are truncated toward zero before they are applied.
func TriangleVertices(center Point, size int) [3]Point {
	height := math.Sqrt(3) / 2 * float64(size)
	halfSide := float64(size) / 2.0

	return [3]Point{
		{X: center.X, Y: center.Y - int(height)},
		{X: center.X - int(halfSide), Y: center.Y + int(height/2)},
		{X: center.X + int(halfSide), Y: center.Y + int(height/2)},
	}
}
