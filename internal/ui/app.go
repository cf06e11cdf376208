package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PenBoard/internal/config"
)

// Content lays out the editor. The window is used for dialogs and may be
// nil.
func (e *Editor) Content(w fyne.Window) fyne.CanvasObject {
	e.window = w

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), e.showOpen),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			e.showSave("program.txt", textFilter, e.SaveProgram)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FileImageIcon(), func() {
			e.showSave("canvas.png", pngFilter, e.ExportPNG)
		}),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() {
			e.showSave("canvas.pdf", pdfFilter, e.ExportPDF)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentClearIcon(), e.Reset),
	)

	buttons := container.NewHBox(
		widget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), func() { _ = e.RunProgram() }),
		widget.NewButtonWithIcon("Check", theme.ConfirmIcon(), func() { _ = e.CheckProgram() }),
		layout.NewSpacer(),
	)

	left := container.NewBorder(nil, container.NewVBox(buttons, e.command), nil, nil, e.program)
	right := container.NewScroll(e.preview)
	split := container.NewHSplit(left, right)
	split.Offset = 0.3

	top := container.NewHBox(toolbar, widget.NewSeparator(), e.palette(), e.fill, layout.NewSpacer())
	bottom := container.NewHBox(e.status, layout.NewSpacer(), e.pen)
	return container.NewBorder(top, bottom, nil, nil, split)
}

// RunApp opens the editor window and blocks until it is closed.
func RunApp(cfg config.Config, program string) {
	a := app.New()
	w := a.NewWindow("PenBoard")
	w.Resize(fyne.NewSize(float32(cfg.Canvas.Width)*1.5, float32(cfg.Canvas.Height)+120))

	editor := NewEditor(cfg)
	editor.SetProgram(program)
	w.SetContent(editor.Content(w))
	w.ShowAndRun()
}
