// Package document parses whole BEL scripts: it sanitizes physical lines,
// reads the metadata and definition preamble strictly, and runs the
// statement section leniently, collecting per-line warnings while building
// the graph.
package document

import (
	"strings"
)

// Line is one logical line of a BEL script after sanitizing, tagged with
// the 1-based number of its first physical line.
type Line struct {
	Number int
	Text   string
}

// Sanitize turns physical lines into logical ones: comment lines and blank
// lines are dropped, trailing // comments stripped, backslash-continued
// lines and multi-line quoted strings joined.
func Sanitize(raw []string) []Line {
	var out []Line

	for i := 0; i < len(raw); i++ {
		number := i + 1
		text := strings.TrimSpace(raw[i])

		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		// Join continuations until the line neither ends in a backslash nor
		// leaves a quoted string open.
		for {
			if strings.HasSuffix(text, "\\") {
				text = strings.TrimSuffix(text, "\\")
				if i+1 < len(raw) {
					i++
					text = strings.TrimSpace(text) + " " + strings.TrimSpace(raw[i])
					continue
				}
				break
			}
			if quotesUnbalanced(text) && i+1 < len(raw) {
				i++
				text = text + " " + strings.TrimSpace(raw[i])
				continue
			}
			break
		}

		text = stripTrailingComment(text)
		text = strings.TrimSpace(text)
		if text != "" {
			out = append(out, Line{Number: number, Text: text})
		}
	}

	return out
}

// quotesUnbalanced reports whether the line leaves a double-quoted string
// open, ignoring escaped quotes.
func quotesUnbalanced(text string) bool {
	open := false
	escaped := false
	for _, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			open = !open
		}
	}
	return open
}

// stripTrailingComment removes a // comment that sits outside any quoted
// string.
func stripTrailingComment(text string) string {
	open := false
	escaped := false
	for i, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			open = !open
		case r == '/' && !open:
			if strings.HasPrefix(text[i:], "//") {
				return strings.TrimSpace(text[:i])
			}
		}
	}
	return text
}
