package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"PenBoard/internal/canvas"
	"PenBoard/internal/state"
)

// PDF renders primitives onto a single page sized to the canvas, one point
// per pixel.
type PDF struct {
	doc           *gofpdf.Fpdf
	width, height int
}

var _ canvas.Surface = (*PDF)(nil)

// NewPDF creates a one-page document cleared to background.
func NewPDF(width, height int, lineWidth float64, background color.Color) *PDF {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetLineWidth(lineWidth)

	p := &PDF{doc: doc, width: width, height: height}
	p.Clear(background)
	return p
}

func rgb(c color.Color) (int, int, int) {
	n := canvas.NRGBA(c)
	return int(n.R), int(n.G), int(n.B)
}

// style selects the color for the operation and returns the gofpdf style.
func (p *PDF) style(c color.Color, filled bool) string {
	r, g, b := rgb(c)
	if filled {
		p.doc.SetFillColor(r, g, b)
		return "F"
	}
	p.doc.SetDrawColor(r, g, b)
	return "D"
}

func (p *PDF) DrawLine(from, to state.Point, c color.Color) {
	p.style(c, false)
	p.doc.Line(float64(from.X), float64(from.Y), float64(to.X), float64(to.Y))
}

func (p *PDF) Ellipse(topLeft state.Point, diameter int, c color.Color, filled bool) {
	radius := float64(diameter) / 2
	p.doc.Ellipse(float64(topLeft.X)+radius, float64(topLeft.Y)+radius, radius, radius, 0, p.style(c, filled))
}

func (p *PDF) Rectangle(topLeft state.Point, size state.Size, c color.Color, filled bool) {
	p.doc.Rect(float64(topLeft.X), float64(topLeft.Y), float64(size.Width), float64(size.Height), p.style(c, filled))
}

func (p *PDF) Polygon(vertices []state.Point, c color.Color, filled bool) {
	if len(vertices) == 0 {
		return
	}
	points := make([]gofpdf.PointType, len(vertices))
	for i, v := range vertices {
		points[i] = gofpdf.PointType{X: float64(v.X), Y: float64(v.Y)}
	}
	p.doc.Polygon(points, p.style(c, filled))
}

// Clear paints the whole page; PDF content cannot be erased.
func (p *PDF) Clear(background color.Color) {
	p.doc.Rect(0, 0, float64(p.width), float64(p.height), p.style(background, true))
}

func (p *PDF) Width() int  { return p.width }
func (p *PDF) Height() int { return p.height }

// Err returns the first error recorded by the document.
func (p *PDF) Err() error { return p.doc.Error() }

// Output writes the document to w and closes it.
func (p *PDF) Output(w io.Writer) error {
	if err := p.doc.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

// Save writes the document to path and closes it.
func (p *PDF) Save(path string) error {
	if err := p.doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}
