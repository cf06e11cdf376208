package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PenBoard/internal/state"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"clear", Command{Kind: Clear}},
		{"reset", Command{Kind: Reset}},
		{"moveto 10,20", Command{Kind: MoveTo, Point: state.Point{X: 10, Y: 20}}},
		{"DRAWTO 5 6", Command{Kind: DrawTo, Point: state.Point{X: 5, Y: 6}}},
		{"rectangle 100, 200", Command{Kind: Rectangle, Size: state.Size{Width: 100, Height: 200}}},
		{"circle 10", Command{Kind: Circle, Radius: 10}},
		{"triangle 30", Command{Kind: Triangle, Side: 30}},
		{"pen YELLOW", Command{Kind: Pen, Color: state.Yellow}},
		{"fill On", Command{Kind: Fill, Fill: true}},
		{"fill off", Command{Kind: Fill}},
		// validation happens later, parsing accepts any integer
		{"moveto -1,5", Command{Kind: MoveTo, Point: state.Point{X: -1, Y: 5}}},
		{"circle 0", Command{Kind: Circle}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line    string
		kind    error
		message string
	}{
		{"", ErrEmptyCommand, "empty command"},
		{"   ", ErrEmptyCommand, "empty command"},
		{"jump 1,2", ErrUnknownCommand, "'jump': invalid command"},
		{"clear now", ErrArityMismatch, "'clear': invalid number of parameters: expected 0, got 1"},
		{"moveto 10", ErrArityMismatch, "'moveto': invalid number of parameters: expected 2, got 1"},
		{"moveto 1,2,3", ErrArityMismatch, "expected 2, got 1"},
		{"circle", ErrArityMismatch, "expected 1, got 0"},
		{"circle 1,2", ErrArityMismatch, "expected 1, got 2"},
		{"moveto a,b", ErrMalformedParameter, `'moveto': invalid parameter "a"`},
		{"rectangle 10,2.5", ErrMalformedParameter, `"2.5"`},
		{"triangle x", ErrMalformedParameter, "'triangle'"},
		{"pen purple", ErrUnknownColor, `'pen': invalid color "purple"`},
		{"fill maybe", ErrUnknownFillToken, `'fill': invalid parameter "maybe"`},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := Parse(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.message)

			var ce *CommandError
			require.ErrorAs(t, err, &ce)
			assert.Zero(t, ce.Line)
		})
	}
}

func TestCommandString(t *testing.T) {
	for _, line := range []string{
		"clear", "reset", "moveto 1,2", "drawto 3,4", "rectangle 5,6",
		"circle 7", "triangle 8", "pen green", "fill on", "fill off",
	} {
		cmd, err := Parse(line)
		require.NoError(t, err)
		assert.Equal(t, line, cmd.String())
	}
}

func TestLookupKind(t *testing.T) {
	k, ok := LookupKind("triangle")
	assert.True(t, ok)
	assert.Equal(t, Triangle, k)
	assert.Equal(t, 1, k.Arity())

	_, ok = LookupKind("Triangle")
	assert.False(t, ok)
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
