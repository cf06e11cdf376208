package state

import (
	"fmt"
	"image/color"
	"strings"
)

// Point is a position on the canvas. The origin is the top-left corner,
// x grows to the right and y grows downwards.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Size is the extent of an axis-aligned box.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Color is one of the pen colors the language knows about.
type Color int

const (
	Black Color = iota
	Red
	Green
	Blue
	Yellow
)

var colorNames = [...]string{"black", "red", "green", "blue", "yellow"}

var colorValues = [...]color.NRGBA{
	{A: 255},
	{R: 255, A: 255},
	{G: 128, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 255, A: 255},
}

// ParseColor maps a color name to a Color. Matching ignores case.
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return Black, false
}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts any name ParseColor does.
func (c *Color) UnmarshalText(text []byte) error {
	v, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("unknown color %q", text)
	}
	*c = v
	return nil
}

// NRGBA returns the concrete color value.
func (c Color) NRGBA() color.NRGBA {
	if c < 0 || int(c) >= len(colorValues) {
		return colorValues[Black]
	}
	return colorValues[c]
}

// RGBA implements color.Color so a Color can be handed straight to a surface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Pen is the cursor state owned by one interpreter. The zero value is the
// initial state: origin, black stroke, fill off.
type Pen struct {
	Position Point `json:"position"`
	Color    Color `json:"color"`
	Fill     bool  `json:"fill"`
}
