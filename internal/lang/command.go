package lang

import (
	"fmt"
	"strconv"
	"strings"

	"PenBoard/internal/state"
)

// Kind identifies a command.
type Kind int

const (
	Clear Kind = iota
	Reset
	MoveTo
	DrawTo
	Rectangle
	Circle
	Triangle
	Pen
	Fill
)

var kindInfo = [...]struct {
	name  string
	arity int
}{
	Clear:     {"clear", 0},
	Reset:     {"reset", 0},
	MoveTo:    {"moveto", 2},
	DrawTo:    {"drawto", 2},
	Rectangle: {"rectangle", 2},
	Circle:    {"circle", 1},
	Triangle:  {"triangle", 1},
	Pen:       {"pen", 1},
	Fill:      {"fill", 1},
}

// LookupKind finds the command with the given (lowercased) name.
func LookupKind(name string) (Kind, bool) {
	for k, info := range kindInfo {
		if info.name == name {
			return Kind(k), true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// Arity is the exact number of parameters the command takes.
func (k Kind) Arity() int { return kindInfo[k].arity }

// Command is one parsed line. Only the fields used by Kind are set.
type Command struct {
	Kind   Kind
	Point  state.Point // moveto, drawto
	Size   state.Size  // rectangle
	Radius int         // circle
	Side   int         // triangle
	Color  state.Color // pen
	Fill   bool        // fill
}

// String formats the command the way it would be written in a program.
func (c Command) String() string {
	switch c.Kind {
	case MoveTo, DrawTo:
		return fmt.Sprintf("%s %d,%d", c.Kind, c.Point.X, c.Point.Y)
	case Rectangle:
		return fmt.Sprintf("%s %d,%d", c.Kind, c.Size.Width, c.Size.Height)
	case Circle:
		return fmt.Sprintf("%s %d", c.Kind, c.Radius)
	case Triangle:
		return fmt.Sprintf("%s %d", c.Kind, c.Side)
	case Pen:
		return fmt.Sprintf("%s %s", c.Kind, c.Color)
	case Fill:
		if c.Fill {
			return "fill on"
		}
		return "fill off"
	default:
		return c.Kind.String()
	}
}

// Parse turns one line into a Command. It checks the name, the arity and
// the parameter types; bounds and sizes are left to Validate.
func Parse(line string) (Command, error) {
	if strings.TrimSpace(line) == "" {
		return Command{}, newError(ErrEmptyCommand, "", "empty command")
	}

	name, params := Tokenize(line)
	kind, ok := LookupKind(name)
	if !ok {
		return Command{}, newError(ErrUnknownCommand, name, "invalid command")
	}
	if len(params) != kind.Arity() {
		return Command{}, newError(ErrArityMismatch, name,
			"invalid number of parameters: expected %d, got %d", kind.Arity(), len(params))
	}

	cmd := Command{Kind: kind}
	switch kind {
	case MoveTo, DrawTo:
		v, err := parseInts(name, params)
		if err != nil {
			return Command{}, err
		}
		cmd.Point = state.Point{X: v[0], Y: v[1]}
	case Rectangle:
		v, err := parseInts(name, params)
		if err != nil {
			return Command{}, err
		}
		cmd.Size = state.Size{Width: v[0], Height: v[1]}
	case Circle:
		v, err := parseInts(name, params)
		if err != nil {
			return Command{}, err
		}
		cmd.Radius = v[0]
	case Triangle:
		v, err := parseInts(name, params)
		if err != nil {
			return Command{}, err
		}
		cmd.Side = v[0]
	case Pen:
		c, ok := state.ParseColor(params[0])
		if !ok {
			return Command{}, newError(ErrUnknownColor, name,
				"invalid color %q, expected black, red, green, blue or yellow", params[0])
		}
		cmd.Color = c
	case Fill:
		switch strings.ToLower(params[0]) {
		case "on":
			cmd.Fill = true
		case "off":
			cmd.Fill = false
		default:
			return Command{}, newError(ErrUnknownFillToken, name,
				"invalid parameter %q, expected on or off", params[0])
		}
	}
	return cmd, nil
}

func parseInts(name string, params []string) ([]int, error) {
	out := make([]int, len(params))
	for i, p := range params {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, newError(ErrMalformedParameter, name,
				"invalid parameter %q, please provide valid integers", p)
		}
		out[i] = v
	}
	return out, nil
}
