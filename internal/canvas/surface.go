// Package canvas defines the drawing surface the interpreter renders onto,
// together with surfaces that record, replay and fan out primitives.
package canvas

import (
	"image/color"

	"PenBoard/internal/state"
)

// Surface accepts drawing primitives. Implementations are synchronous and
// never fail per call; backends that can fail report it through their own
// Err method.
type Surface interface {
	DrawLine(from, to state.Point, c color.Color)
	// Ellipse draws a circle whose bounding box starts at topLeft.
	Ellipse(topLeft state.Point, diameter int, c color.Color, filled bool)
	Rectangle(topLeft state.Point, size state.Size, c color.Color, filled bool)
	Polygon(vertices []state.Point, c color.Color, filled bool)
	Clear(background color.Color)
	Width() int
	Height() int
}

// BoundsOf returns the drawable area of s.
func BoundsOf(s Surface) state.Bounds {
	return state.Bounds{Width: s.Width(), Height: s.Height()}
}

// NRGBA converts any color to its non-premultiplied form.
func NRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// Tee fans every primitive out to several surfaces. The first surface
// decides the reported size.
type Tee []Surface

var _ Surface = Tee(nil)

func (t Tee) DrawLine(from, to state.Point, c color.Color) {
	for _, s := range t {
		s.DrawLine(from, to, c)
	}
}

func (t Tee) Ellipse(topLeft state.Point, diameter int, c color.Color, filled bool) {
	for _, s := range t {
		s.Ellipse(topLeft, diameter, c, filled)
	}
}

func (t Tee) Rectangle(topLeft state.Point, size state.Size, c color.Color, filled bool) {
	for _, s := range t {
		s.Rectangle(topLeft, size, c, filled)
	}
}

func (t Tee) Polygon(vertices []state.Point, c color.Color, filled bool) {
	for _, s := range t {
		s.Polygon(vertices, c, filled)
	}
}

func (t Tee) Clear(background color.Color) {
	for _, s := range t {
		s.Clear(background)
	}
}

func (t Tee) Width() int {
	if len(t) == 0 {
		return 0
	}
	return t[0].Width()
}

func (t Tee) Height() int {
	if len(t) == 0 {
		return 0
	}
	return t[0].Height()
}
