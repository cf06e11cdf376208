package program

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type numbered struct {
	n    int
	line string
}

func collect(text string) []numbered {
	var out []numbered
	for n, line := range Lines(text) {
		out = append(out, numbered{n, line})
	}
	return out
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []numbered
	}{
		{"empty", "", nil},
		{"blank only", "  \n\t\n", nil},
		{"lf", "moveto 1,1\ncircle 5", []numbered{{1, "moveto 1,1"}, {2, "circle 5"}}},
		{"crlf", "clear\r\n\r\nreset\r\n", []numbered{{1, "clear"}, {3, "reset"}}},
		{"lone cr", "clear\rreset", []numbered{{1, "clear"}, {2, "reset"}}},
		{"keeps indentation", "  pen red  ", []numbered{{1, "  pen red  "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(tt.text))
		})
	}
}

func TestLinesStopsEarly(t *testing.T) {
	count := 0
	for range Lines("a\nb\nc") {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.txt")
	require.NoError(t, Save(path, "moveto 10,10\ncircle 5\n"))

	text, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "moveto 10,10\ncircle 5\n", text)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "load program")
}
