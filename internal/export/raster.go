// Package export provides canvas surfaces that render to image and
// document formats.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"PenBoard/internal/canvas"
	"PenBoard/internal/state"
)

// Raster renders primitives into an anti-aliased bitmap.
type Raster struct {
	dc  *gg.Context
	err error
}

var _ canvas.Surface = (*Raster)(nil)

// NewRaster creates a width x height bitmap cleared to background. Outlines
// are stroked lineWidth pixels wide.
func NewRaster(width, height int, lineWidth float64, background color.Color) *Raster {
	dc := gg.NewContext(width, height)
	dc.SetLineWidth(lineWidth)
	r := &Raster{dc: dc}
	r.Clear(background)
	return r
}

// keep records the first rendering error.
func (r *Raster) keep(err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("raster: %w", err)
	}
}

func (r *Raster) paint(c color.Color, filled bool) {
	r.dc.SetColor(c)
	if filled {
		r.keep(r.dc.Fill())
	} else {
		r.keep(r.dc.Stroke())
	}
}

func (r *Raster) DrawLine(from, to state.Point, c color.Color) {
	r.dc.DrawLine(float64(from.X), float64(from.Y), float64(to.X), float64(to.Y))
	r.paint(c, false)
}

func (r *Raster) Ellipse(topLeft state.Point, diameter int, c color.Color, filled bool) {
	radius := float64(diameter) / 2
	r.dc.DrawEllipse(float64(topLeft.X)+radius, float64(topLeft.Y)+radius, radius, radius)
	r.paint(c, filled)
}

func (r *Raster) Rectangle(topLeft state.Point, size state.Size, c color.Color, filled bool) {
	r.dc.DrawRectangle(float64(topLeft.X), float64(topLeft.Y), float64(size.Width), float64(size.Height))
	r.paint(c, filled)
}

func (r *Raster) Polygon(vertices []state.Point, c color.Color, filled bool) {
	if len(vertices) == 0 {
		return
	}
	for i, v := range vertices {
		if i == 0 {
			r.dc.MoveTo(float64(v.X), float64(v.Y))
		} else {
			r.dc.LineTo(float64(v.X), float64(v.Y))
		}
	}
	r.dc.ClosePath()
	r.paint(c, filled)
}

func (r *Raster) Clear(background color.Color) {
	r.dc.ClearWithColor(gg.FromColor(background))
}

func (r *Raster) Width() int  { return r.dc.Width() }
func (r *Raster) Height() int { return r.dc.Height() }

// Image returns a snapshot of the bitmap.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the bitmap as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	return r.dc.EncodePNG(w)
}

// SavePNG writes the bitmap to a PNG file.
func (r *Raster) SavePNG(path string) error {
	if r.err != nil {
		return r.err
	}
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// Err returns the first rendering error, if any.
func (r *Raster) Err() error { return r.err }

// Close releases the drawing context.
func (r *Raster) Close() error { return r.dc.Close() }
