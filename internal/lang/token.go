package lang

import "strings"

// Tokenize splits a line into a lowercased command name and its
// parameters.
//
// The line is split on single spaces. The second field is split on commas
// and contributes its first part; a third space-separated field, when it
// is the last one, comes next; then the second comma part. Parameters are
// trimmed and empty ones dropped, so "moveto 10,20", "moveto 10, 20" and
// "moveto 10 20" all give ["10" "20"].
func Tokenize(line string) (name string, params []string) {
	parts := strings.Split(strings.TrimSpace(line), " ")
	name = strings.ToLower(parts[0])

	var raw []string
	if len(parts) > 1 {
		raw = strings.Split(parts[1], ",")
	}

	var candidates []string
	if len(raw) > 0 {
		candidates = append(candidates, raw[0])
	}
	if len(parts) == 3 {
		candidates = append(candidates, parts[2])
	}
	if len(raw) == 2 {
		candidates = append(candidates, raw[1])
	}

	for _, p := range candidates {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	return name, params
}
