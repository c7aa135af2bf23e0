package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Prefix word-wraps text so that every line still fits DefaultWidth once
// prefix is prepended, then prepends it to every line.
func Prefix(text, prefix string) string {
	width := DefaultWidth - len(prefix)
	lines := strings.Split(wordwrap.String(text, width), "\n")
	for i, l := range lines {
		lines[i] = prefix + strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
