package lang

import (
	"PenBoard/internal/program"
	"PenBoard/internal/state"
)

// Check validates every non-blank line of text without drawing.
//
// The checker replays cursor movement: it starts from pen and applies each
// command's transition, so shape bounds are checked against the position
// the pen would really have at that line. It stops at the first error,
// which carries the line number.
func Check(text string, pen state.Pen, bounds state.Bounds) error {
	for n, line := range program.Lines(text) {
		cmd, err := Parse(line)
		if err != nil {
			return atLine(err, n)
		}
		if pen, err = Apply(cmd, pen, bounds); err != nil {
			return atLine(err, n)
		}
	}
	return nil
}
