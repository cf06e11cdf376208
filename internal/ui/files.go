package ui

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"PenBoard/internal/canvas"
	"PenBoard/internal/export"
)

var (
	textFilter = storage.NewExtensionFileFilter([]string{".txt"})
	pngFilter  = storage.NewExtensionFileFilter([]string{".png"})
	pdfFilter  = storage.NewExtensionFileFilter([]string{".pdf"})
)

// LoadProgram replaces the program text with the content of r.
func (e *Editor) LoadProgram(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading the file: %w", err)
	}
	e.SetProgram(string(data))
	e.status.SetText("Program loaded")
	return nil
}

// SaveProgram writes the program text to w.
func (e *Editor) SaveProgram(w io.Writer) error {
	if _, err := io.WriteString(w, e.Program()); err != nil {
		return fmt.Errorf("error writing the file: %w", err)
	}
	e.status.SetText("Program saved")
	return nil
}

// ExportPNG writes the current canvas as PNG.
func (e *Editor) ExportPNG(w io.Writer) error {
	return e.raster.EncodePNG(w)
}

// ExportPDF redraws the session's history into a PDF page.
func (e *Editor) ExportPDF(w io.Writer) error {
	doc := export.NewPDF(e.cfg.Canvas.Width, e.cfg.Canvas.Height, e.cfg.Pen.Width, e.cfg.BackgroundColor())
	canvas.Replay(doc, e.rec.Primitives())
	if err := doc.Err(); err != nil {
		return err
	}
	return doc.Output(w)
}

func (e *Editor) showOpen() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			e.report(err)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		if err := e.LoadProgram(r); err != nil {
			e.report(err)
		}
	}, e.window)
	d.SetFilter(textFilter)
	d.Show()
}

func (e *Editor) showSave(name string, filter storage.FileFilter, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			e.report(err)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := write(w); err != nil {
			e.report(err)
			return
		}
		e.status.SetText("Saved " + w.URI().Name())
	}, e.window)
	d.SetFileName(name)
	d.SetFilter(filter)
	d.Show()
}
