package lang

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this package wraps exactly one of
// them; test with errors.Is.
var (
	ErrEmptyCommand         = errors.New("empty command")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrArityMismatch        = errors.New("wrong number of parameters")
	ErrMalformedParameter   = errors.New("malformed parameter")
	ErrOutOfBounds          = errors.New("out of bounds")
	ErrNonPositiveDimension = errors.New("non-positive dimension")
	ErrUnknownColor         = errors.New("unknown color")
	ErrUnknownFillToken     = errors.New("unknown fill token")
)

// CommandError reports why a command was rejected.
type CommandError struct {
	Kind    error
	Command string // lowercased command name, empty for an empty line
	Line    int    // 1-based program line, 0 for a single command
	Msg     string
}

func (e *CommandError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Command != "" {
		fmt.Fprintf(&b, "'%s': ", e.Command)
	}
	b.WriteString(e.Msg)
	return b.String()
}

func (e *CommandError) Unwrap() error { return e.Kind }

func newError(kind error, command, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Command: command, Msg: fmt.Sprintf(format, args...)}
}

// atLine stamps a program line number onto err.
func atLine(err error, line int) error {
	var ce *CommandError
	if errors.As(err, &ce) {
		stamped := *ce
		stamped.Line = line
		return &stamped
	}
	return fmt.Errorf("line %d: %w", line, err)
}
