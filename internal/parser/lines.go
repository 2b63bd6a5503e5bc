package parser

import (
	"regexp"
	"strings"
)

var collapseSpaces = regexp.MustCompile(`\s+`)

// normalizeLine cleans up common text-extraction artifacts and collapses
// internal whitespace runs to single spaces.
func normalizeLine(line string) string {
	line = strings.ReplaceAll(line, " ", " ") // non-breaking space
	line = strings.ReplaceAll(line, "​", "")  // zero-width space
	line = strings.ReplaceAll(line, "\t", " ")
	line = collapseSpaces.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// splitLines breaks the raw statement blob into trimmed, whitespace-collapsed,
// non-empty lines in source order.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = normalizeLine(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
