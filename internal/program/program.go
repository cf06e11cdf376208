// Package program loads, saves and splits plain-text pen programs.
package program

import (
	"fmt"
	"iter"
	"os"
	"strings"
)

// Lines yields every non-blank line of text with its 1-based line number.
// CRLF pairs count as one line break; a lone CR is a break of its own.
func Lines(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		for i, line := range strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !yield(i+1, line) {
				return
			}
		}
	}
}

// Load reads a program from path.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load program: %w", err)
	}
	return string(data), nil
}

// Save writes text to path, replacing any existing file.
func Save(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("save program: %w", err)
	}
	return nil
}
