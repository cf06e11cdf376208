// Package shape holds the immutable shapes the pen can draw.
package shape

import (
	"image/color"
	"math"

	"PenBoard/internal/canvas"
	"PenBoard/internal/state"
)

// Shape renders itself onto a surface in the given color, either filled
// or as an outline.
type Shape interface {
	Render(s canvas.Surface, c color.Color, filled bool)
}

// Rectangle is an axis-aligned box with its top-left corner at At.
type Rectangle struct {
	At   state.Point
	Size state.Size
}

func (r Rectangle) Render(s canvas.Surface, c color.Color, filled bool) {
	s.Rectangle(r.At, r.Size, c, filled)
}

// Circle is drawn inside a square bounding box whose top-left corner is At.
type Circle struct {
	At     state.Point
	Radius int
}

// Diameter returns the side of the bounding box, saturated at math.MaxInt.
func (c Circle) Diameter() int {
	if c.Radius > math.MaxInt/2 {
		return math.MaxInt
	}
	return c.Radius * 2
}

func (c Circle) Render(s canvas.Surface, col color.Color, filled bool) {
	s.Ellipse(c.At, c.Diameter(), col, filled)
}

// Triangle is a closed polygon over three vertices.
type Triangle struct {
	Vertices [3]state.Point
}

// Equilateral builds the upward triangle of side size anchored at center.
func Equilateral(center state.Point, size int) Triangle {
	return Triangle{Vertices: state.TriangleVertices(center, size)}
}

func (t Triangle) Render(s canvas.Surface, c color.Color, filled bool) {
	s.Polygon(t.Vertices[:], c, filled)
}
