package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Width returns the number of terminal columns s occupies. East Asian wide and
// full-width characters count as two.
func Width(s string) int {
	w := 0
	for _, r := range s {
		w += runeWidth(r)
	}
	return w
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}

// Fit shortens s to at most cols columns, ending it with "…" when cut, and pads
// it with spaces to exactly cols columns.
func Fit(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	if Width(s) > cols {
		var b strings.Builder
		used := 0
		for _, r := range s {
			rw := runeWidth(r)
			if used+rw > cols-1 {
				break
			}
			b.WriteRune(r)
			used += rw
		}
		b.WriteString("…")
		s = b.String()
	}
	if pad := cols - Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// OneLine collapses line breaks and tabs so a value fits in a table cell.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
