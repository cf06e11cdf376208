package ui

import (
	"errors"
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"PenBoard/internal/canvas"
	"PenBoard/internal/config"
	"PenBoard/internal/export"
	"PenBoard/internal/lang"
)

// Editor is the program editor: a multi-line program, a single-line
// command entry and a live preview of the canvas.
type Editor struct {
	cfg    config.Config
	interp *lang.Interpreter
	raster *export.Raster
	rec    *canvas.Recorder

	preview *fynecanvas.Image
	program *widget.Entry
	command *widget.Entry
	fill    *widget.Check
	status  *widget.Label
	pen     *widget.Label

	// window is nil until the editor is shown; dialogs need it.
	window fyne.Window
}

// NewEditor creates an editor with a fresh session.
func NewEditor(cfg config.Config) *Editor {
	e := &Editor{
		cfg:     cfg,
		program: widget.NewMultiLineEntry(),
		command: widget.NewEntry(),
		status:  widget.NewLabel("Ready"),
		pen:     widget.NewLabel(""),
	}
	e.program.SetPlaceHolder("moveto 10,10\ncircle 5")
	e.program.SetMinRowsVisible(12)
	e.command.SetPlaceHolder("command, Enter to run")
	e.command.OnSubmitted = func(line string) { _ = e.Execute(line) }
	e.fill = widget.NewCheck("Fill", func(on bool) {
		if on != e.interp.Pen().Fill {
			_ = e.Execute(fillCommand(on))
		}
	})

	e.preview = fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, cfg.Canvas.Width, cfg.Canvas.Height)))
	e.preview.FillMode = fynecanvas.ImageFillOriginal
	e.reset()
	return e
}

func fillCommand(on bool) string {
	if on {
		return "fill on"
	}
	return "fill off"
}

// reset replaces the session with a new one.
func (e *Editor) reset() {
	bg := e.cfg.BackgroundColor()
	if e.raster != nil {
		_ = e.raster.Close()
	}
	e.raster = export.NewRaster(e.cfg.Canvas.Width, e.cfg.Canvas.Height, e.cfg.Pen.Width, bg)
	e.rec = canvas.NewRecorder(e.cfg.Canvas.Width, e.cfg.Canvas.Height)
	e.interp = lang.New(canvas.Tee{e.raster, e.rec}, lang.WithBackground(bg))
	e.refresh()
}

// Program returns the program text.
func (e *Editor) Program() string { return e.program.Text }

// SetProgram replaces the program text.
func (e *Editor) SetProgram(text string) { e.program.SetText(text) }

// Status returns the status line.
func (e *Editor) Status() string { return e.status.Text }

// Interpreter exposes the session, mostly for tests.
func (e *Editor) Interpreter() *lang.Interpreter { return e.interp }

// Execute runs a single command. The entry is cleared when it succeeds.
func (e *Editor) Execute(line string) error {
	err := e.interp.Execute(line)
	e.refresh()
	if err != nil {
		e.report(err)
		return err
	}
	e.command.SetText("")
	e.status.SetText(fmt.Sprintf("OK: %s", line))
	return nil
}

// RunProgram executes the program text.
func (e *Editor) RunProgram() error {
	err := e.interp.Run(e.Program())
	e.refresh()
	if err != nil {
		e.report(err)
		return err
	}
	e.status.SetText("Program ran successfully")
	return nil
}

// CheckProgram dry-runs the program text.
func (e *Editor) CheckProgram() error {
	if err := e.interp.Check(e.Program()); err != nil {
		e.report(err)
		return err
	}
	e.status.SetText("Syntax is correct. You can run now!")
	return nil
}

// Reset starts a new session; the program text is kept.
func (e *Editor) Reset() {
	e.reset()
	e.status.SetText("New canvas")
}

func (e *Editor) report(err error) {
	e.status.SetText(err.Error())
	if e.window == nil {
		return
	}
	var ce *lang.CommandError
	if errors.As(err, &ce) {
		dialog.ShowInformation("Command rejected", err.Error(), e.window)
		return
	}
	dialog.ShowError(err, e.window)
}

func (e *Editor) refresh() {
	pen := e.interp.Pen()
	e.preview.Image = e.raster.Image()
	e.preview.Refresh()
	e.pen.SetText(fmt.Sprintf("Pen %s at %s", pen.Color, pen.Position))
	if e.fill != nil && e.fill.Checked != pen.Fill {
		e.fill.SetChecked(pen.Fill)
	}
}
