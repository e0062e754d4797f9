package interpolation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoPlaceholder is returned for a template that would give every record the same value.
var ErrNoPlaceholder = errors.New("template has no placeholder")

// varMatch stores a detected placeholder position.
type varMatch struct {
	start, end int
	value      string
}

// patterns to detect number placeholders in URL templates.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{(?:id|n)\}`),   // ${id}, ${n}
	regexp.MustCompile(`\{(?:id|n|0)\}`),   // {id}, {n}, {0}
	regexp.MustCompile(`%(?:0[1-9][0-9]*)?d`), // %d, %03d
	regexp.MustCompile(`%%`),                  // escaped percent literal
}

// Template is a parsed thumbnail URL template such as
// "https://img.example/covers/%03d.jpg" or "https://img.example/{id}.webp".
//
// Only %d and zero-padded widths like %03d are number verbs. Other percent
// sequences are URL escapes and stay literal: %5d is "]" and %da, %db and
// so on are bytes 0xDA, 0xDB.
type Template struct {
	raw     string
	matches []varMatch
}

// Parse finds the placeholders of tpl. At least one number placeholder is required.
func Parse(tpl string) (*Template, error) {
	var allMatches []varMatch
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(tpl, -1) {
			if isPercentEscape(tpl, loc) {
				continue
			}
			allMatches = append(allMatches, varMatch{
				start: loc[0],
				end:   loc[1],
				value: tpl[loc[0]:loc[1]],
			})
		}
	}

	// Sort by position to ensure deterministic ordering.
	sortVarMatches(allMatches)

	// Remove overlapping matches (keep the first/longest).
	var filtered []varMatch
	lastEnd := -1
	numbers := 0
	for _, m := range allMatches {
		if m.start >= lastEnd {
			filtered = append(filtered, m)
			lastEnd = m.end
			if m.value != "%%" {
				numbers++
			}
		}
	}

	if numbers == 0 {
		return nil, fmt.Errorf("parse %q: %w", tpl, ErrNoPlaceholder)
	}
	return &Template{raw: tpl, matches: filtered}, nil
}

// String returns the template source.
func (t *Template) String() string { return t.raw }

// Placeholders lists the number placeholders in order of appearance.
func (t *Template) Placeholders() []string {
	var out []string
	for _, m := range t.matches {
		if m.value != "%%" {
			out = append(out, m.value)
		}
	}
	return out
}

// Expand substitutes n for every placeholder.
func (t *Template) Expand(n int) string {
	var b strings.Builder
	last := 0
	for _, m := range t.matches {
		b.WriteString(t.raw[last:m.start])
		switch {
		case m.value == "%%":
			b.WriteString("%")
		case strings.HasPrefix(m.value, "%"):
			b.WriteString(fmt.Sprintf(m.value, n))
		default:
			b.WriteString(strconv.Itoa(n))
		}
		last = m.end
	}
	b.WriteString(t.raw[last:])
	return b.String()
}

// isPercentEscape reports whether a bare %d match is really the start of a
// URL escape such as %dA.
func isPercentEscape(tpl string, loc []int) bool {
	if tpl[loc[0]:loc[1]] != "%d" || loc[1] >= len(tpl) {
		return false
	}
	switch c := tpl[loc[1]]; {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}

// sortVarMatches sorts by start position, then by length (descending) for overlaps.
func sortVarMatches(matches []varMatch) {
	for i := 1; i < len(matches); i++ {
		key := matches[i]
		j := i - 1
		for j >= 0 && (matches[j].start > key.start ||
			(matches[j].start == key.start && (matches[j].end-matches[j].start) < (key.end-key.start))) {
			matches[j+1] = matches[j]
			j--
		}
		matches[j+1] = key
	}
}
