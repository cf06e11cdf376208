package lang

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PenBoard/internal/canvas"
	"PenBoard/internal/state"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind error
		line int
	}{
		{"example", "moveto 10,10\ncircle 5\npen red\nfill on\nrectangle 20,20", nil, 0},
		{"blank program", "\n\n  \n", nil, 0},
		{"negative moveto", "moveto -1,5", ErrOutOfBounds, 1},
		{"unknown command", "clear\nspin 3", ErrUnknownCommand, 2},
		{"bad color", "pen red\n\npen mauve", ErrUnknownColor, 3},
		{"bad fill", "fill sometimes", ErrUnknownFillToken, 1},
		{"arity", "rectangle 10", ErrArityMismatch, 1},
		{"malformed", "circle ten", ErrMalformedParameter, 1},
		// shape checks follow the replayed cursor
		{"triangle after move", "moveto 100,100\ntriangle 10", nil, 0},
		{"triangle before move", "triangle 10\nmoveto 100,100", ErrOutOfBounds, 1},
		{"rectangle after move", "moveto 750,0\nrectangle 60,10", ErrOutOfBounds, 2},
		{"reset rewinds cursor", "moveto 750,0\nreset\nrectangle 60,10", nil, 0},
		{"clear rewinds cursor", "moveto 100,100\nclear\ntriangle 10", ErrOutOfBounds, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.text, state.Pen{}, canvas800)
			if tt.kind == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.kind)
			var ce *CommandError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.line, ce.Line)
			assert.True(t, strings.HasPrefix(err.Error(), fmt.Sprintf("line %d: ", tt.line)), err.Error())
		})
	}
}

func TestCheckDoesNotTouchSession(t *testing.T) {
	in, rec := newTestInterpreter(t)
	require.NoError(t, in.Execute("moveto 50,50"))
	pen, before := in.Pen(), rec.Primitives()

	require.NoError(t, in.Check("moveto 10,10\ndrawto 20,20\npen red\nfill on\ncircle 5"))
	assert.Error(t, in.Check("moveto -1,5"))

	assert.Equal(t, pen, in.Pen())
	assert.Equal(t, before, rec.Primitives())
}

func TestCheckStartsFromLivePen(t *testing.T) {
	in, _ := newTestInterpreter(t)
	assert.ErrorIs(t, in.Check("triangle 10"), ErrOutOfBounds)

	require.NoError(t, in.Execute("moveto 100,100"))
	assert.NoError(t, in.Check("triangle 10"))
}

var randomLines = []func(r *rand.Rand) string{
	func(*rand.Rand) string { return "clear" },
	func(*rand.Rand) string { return "reset" },
	func(r *rand.Rand) string { return fmt.Sprintf("moveto %d,%d", r.IntN(240)-20, r.IntN(180)-20) },
	func(r *rand.Rand) string { return fmt.Sprintf("drawto %d %d", r.IntN(240)-20, r.IntN(180)-20) },
	func(r *rand.Rand) string { return fmt.Sprintf("rectangle %d, %d", r.IntN(120)-10, r.IntN(120)-10) },
	func(r *rand.Rand) string { return fmt.Sprintf("circle %d", r.IntN(40)-5) },
	func(r *rand.Rand) string { return fmt.Sprintf("triangle %d", r.IntN(60)-5) },
	func(r *rand.Rand) string { return []string{"pen red", "pen blue", "pen teal"}[r.IntN(3)] },
	func(r *rand.Rand) string { return []string{"fill on", "fill OFF", "fill 1"}[r.IntN(3)] },
	func(*rand.Rand) string { return "" },
}

// Check succeeds exactly when Run would execute every line, and both
// report the same failing line.
func TestCheckMatchesRun(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		lines := make([]string, 1+r.IntN(8))
		for j := range lines {
			lines[j] = randomLines[r.IntN(len(randomLines))](r)
		}
		text := strings.Join(lines, "\n")

		in := New(canvas.NewRecorder(200, 150))
		checkErr := in.Check(text)
		runErr := in.Run(text)

		if checkErr == nil {
			assert.NoError(t, runErr, "program:\n%s", text)
			continue
		}
		if assert.Error(t, runErr, "program:\n%s", text) {
			assert.Equal(t, checkErr.Error(), runErr.Error(), "program:\n%s", text)
		}
	}
}
