package lang

import "PenBoard/internal/state"

// Validate runs the checks that depend on the pen position and the canvas
// bounds. It never mutates anything.
func Validate(cmd Command, pen state.Pen, bounds state.Bounds) error {
	switch cmd.Kind {
	case MoveTo, DrawTo:
		return validateTarget(cmd, bounds)
	case Rectangle:
		return validateRectangle(cmd, pen, bounds)
	case Circle:
		if cmd.Radius <= 0 {
			return newError(ErrNonPositiveDimension, cmd.Kind.String(), "negative or zero radius %d", cmd.Radius)
		}
	case Triangle:
		if cmd.Side <= 0 {
			return newError(ErrNonPositiveDimension, cmd.Kind.String(), "negative or zero size %d", cmd.Side)
		}
		v := state.TriangleVertices(pen.Position, cmd.Side)
		if !bounds.ContainsAll(v[:]...) {
			return newError(ErrOutOfBounds, cmd.Kind.String(), "triangle exceeds canvas bounds, cannot be drawn")
		}
	}
	return nil
}

func validateTarget(cmd Command, bounds state.Bounds) error {
	name := cmd.Kind.String()
	p := cmd.Point
	switch {
	case p.X < 0 || p.Y < 0:
		return newError(ErrOutOfBounds, name, "negative parameters %d,%d", p.X, p.Y)
	case p.X > bounds.Width:
		return newError(ErrOutOfBounds, name, "x %d is greater than the canvas width %d", p.X, bounds.Width)
	case p.Y > bounds.Height:
		return newError(ErrOutOfBounds, name, "y %d is greater than the canvas height %d", p.Y, bounds.Height)
	}
	return nil
}

func validateRectangle(cmd Command, pen state.Pen, bounds state.Bounds) error {
	name := cmd.Kind.String()
	w, h := cmd.Size.Width, cmd.Size.Height
	if w <= 0 || h <= 0 {
		return newError(ErrNonPositiveDimension, name, "negative or zero size %d,%d", w, h)
	}
	// at is inside bounds, so the subtractions cannot overflow.
	at := pen.Position
	if w > bounds.Width-at.X {
		return newError(ErrOutOfBounds, name, "pen x %d plus width %d exceeds the canvas width %d", at.X, w, bounds.Width)
	}
	// The vertical check uses the width, not the height. This is probably a
	// defect, but existing programs depend on it.
	if w > bounds.Height-at.Y {
		return newError(ErrOutOfBounds, name, "pen y %d plus width %d exceeds the canvas height %d", at.Y, w, bounds.Height)
	}
	return nil
}

// Step returns the pen after cmd. It assumes cmd already passed Validate.
func Step(cmd Command, pen state.Pen) state.Pen {
	switch cmd.Kind {
	case Clear, Reset:
		pen.Position = state.Point{}
	case MoveTo, DrawTo:
		pen.Position = cmd.Point
	case Pen:
		pen.Color = cmd.Color
	case Fill:
		pen.Fill = cmd.Fill
	}
	return pen
}

// Apply validates cmd and returns the resulting pen. On error the input pen
// is returned unchanged.
func Apply(cmd Command, pen state.Pen, bounds state.Bounds) (state.Pen, error) {
	if err := Validate(cmd, pen, bounds); err != nil {
		return pen, err
	}
	return Step(cmd, pen), nil
}
