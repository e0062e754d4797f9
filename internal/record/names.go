package record

import (
	"regexp"
	"strings"
)

// nameSeparators matches every delimiter used to join several people in one field:
// ASCII and ideographic commas, the enumeration comma, ampersands, slashes and a
// whitespace-bounded "and".
var nameSeparators = regexp.MustCompile(`(?i)\s*(?:,|，|、|&|＆|/|\s+and\s+)\s*`)

// tagSeparators matches the delimiters accepted in a typed tag list.
var tagSeparators = regexp.MustCompile(`\s*[,，]\s*`)

// SplitNames splits a composite author or translator string into individual names.
// Order of first appearance is kept and duplicates are dropped.
func SplitNames(s string) []string {
	return dedupe(nameSeparators.Split(strings.TrimSpace(s), -1))
}

// ParseTags splits a user-typed tag string such as "a, b，c".
func ParseTags(s string) []string {
	return dedupe(tagSeparators.Split(strings.TrimSpace(s), -1))
}

// CleanTags trims tags and drops empty and repeated entries. It never returns nil.
func CleanTags(tags []string) []string {
	out := dedupe(tags)
	if out == nil {
		return []string{}
	}
	return out
}

// AddTag appends tag unless it is already present.
func AddTag(tags []string, tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tags
	}
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

func dedupe(parts []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
