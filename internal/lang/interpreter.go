package lang

import (
	"image/color"

	"PenBoard/internal/canvas"
	"PenBoard/internal/program"
	"PenBoard/internal/shape"
	"PenBoard/internal/state"
)

// The cursor marker is a small filled dot centered on the pen.
const (
	markerDiameter = 3
	markerOffset   = 1
)

// Interpreter executes commands against one pen and one surface. It is not
// safe for concurrent use.
type Interpreter struct {
	surface    canvas.Surface
	background color.Color
	pen        state.Pen
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithBackground sets the color used by clear and to erase the cursor
// marker. The default is white.
func WithBackground(c color.Color) Option {
	return func(in *Interpreter) {
		if c != nil {
			in.background = c
		}
	}
}

// New creates an interpreter with the pen at the origin and draws the
// cursor marker there.
func New(surface canvas.Surface, opts ...Option) *Interpreter {
	in := &Interpreter{
		surface:    surface,
		background: color.White,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.mark(in.pen.Position, in.pen.Color)
	return in
}

// Pen returns a copy of the current pen state.
func (in *Interpreter) Pen() state.Pen { return in.pen }

// Bounds returns the drawable area of the surface.
func (in *Interpreter) Bounds() state.Bounds { return canvas.BoundsOf(in.surface) }

// Background returns the clear color.
func (in *Interpreter) Background() color.Color { return in.background }

// Execute parses and runs a single command. A rejected command leaves the
// pen untouched and draws nothing.
func (in *Interpreter) Execute(line string) error {
	cmd, err := Parse(line)
	if err != nil {
		Logger().Warn("command rejected", "line", line, "err", err)
		return err
	}
	return in.ExecuteCommand(cmd)
}

// ExecuteCommand runs an already parsed command.
func (in *Interpreter) ExecuteCommand(cmd Command) error {
	next, err := Apply(cmd, in.pen, in.Bounds())
	if err != nil {
		Logger().Warn("command rejected", "command", cmd.String(), "err", err)
		return err
	}
	in.render(cmd, in.pen, next)
	in.pen = next
	Logger().Debug("command executed", "command", cmd.String(), "pen", next.Position, "color", next.Color, "fill", next.Fill)
	return nil
}

// Run executes text line by line, skipping blank lines. It stops at the
// first failing line; lines before it stay drawn.
func (in *Interpreter) Run(text string) error {
	executed := 0
	for n, line := range program.Lines(text) {
		if err := in.Execute(line); err != nil {
			return atLine(err, n)
		}
		executed++
	}
	Logger().Info("program finished", "commands", executed, "pen", in.pen.Position)
	return nil
}

// Check dry-runs text from the current pen without drawing or moving it.
func (in *Interpreter) Check(text string) error {
	return Check(text, in.pen, in.Bounds())
}

func (in *Interpreter) render(cmd Command, prev, next state.Pen) {
	switch cmd.Kind {
	case Clear:
		in.surface.Clear(in.background)
		in.mark(next.Position, next.Color)
	case Reset, MoveTo:
		in.erase(prev.Position)
		in.mark(next.Position, next.Color)
	case DrawTo:
		in.erase(prev.Position)
		in.surface.DrawLine(prev.Position, next.Position, prev.Color)
		in.mark(next.Position, next.Color)
	case Rectangle:
		shape.Rectangle{At: prev.Position, Size: cmd.Size}.Render(in.surface, prev.Color, prev.Fill)
	case Circle:
		shape.Circle{At: prev.Position, Radius: cmd.Radius}.Render(in.surface, prev.Color, prev.Fill)
	case Triangle:
		shape.Equilateral(prev.Position, cmd.Side).Render(in.surface, prev.Color, prev.Fill)
	}
}

func markerAt(p state.Point) state.Point {
	return state.Point{X: p.X - markerOffset, Y: p.Y - markerOffset}
}

func (in *Interpreter) mark(p state.Point, c color.Color) {
	in.surface.Ellipse(markerAt(p), markerDiameter, c, true)
}

func (in *Interpreter) erase(p state.Point) {
	in.surface.Ellipse(markerAt(p), markerDiameter, in.background, true)
}
