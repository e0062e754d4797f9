package suggest

import (
	"sort"
	"strings"

	"dramactl/internal/record"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TagCount is one tag of the vocabulary with the number of records using it.
type TagCount struct {
	Tag     string `json:"tag"`
	Count   int    `json:"count"`
	Initial string `json:"initial"`
}

// Group is one letter bucket of ranked tags.
type Group struct {
	Initial string
	Tags    []string
}

// Suggestions is what an edit form offers for autocompletion.
type Suggestions struct {
	Authors     []string
	Translators []string
	Tags        []TagCount
}

// Build derives every suggestion list from records.
func Build(records []record.Record) Suggestions {
	return Suggestions{
		Authors:     Authors(records),
		Translators: Translators(records),
		Tags:        Tags(records),
	}
}

// Authors returns the sorted unique non-empty authors.
func Authors(records []record.Record) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		if a := strings.TrimSpace(r.Author); a != "" {
			set[a] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Translators returns the sorted unique individual translator names. Composite
// values such as "甲、乙" contribute each name separately.
func Translators(records []record.Record) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		for _, name := range record.SplitNames(r.Translator) {
			set[name] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Tags returns the tag vocabulary in ranked order with usage counts.
func Tags(records []record.Record) []TagCount {
	counts := make(map[string]int)
	for _, r := range records {
		for _, t := range record.CleanTags(r.Tags) {
			counts[t]++
		}
	}
	vocab := make([]string, 0, len(counts))
	for t := range counts {
		vocab = append(vocab, t)
	}

	ranked := RankTags(vocab)
	out := make([]TagCount, len(ranked))
	for i, t := range ranked {
		out[i] = TagCount{Tag: t, Count: counts[t], Initial: Initial(t)}
	}
	return out
}

// ByUsage reorders tags most used first, keeping ranked order between equal counts.
func ByUsage(tags []TagCount) []TagCount {
	out := append([]TagCount(nil), tags...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// RankTags orders tags by initial letter, A to Z, with unknown initials last.
// Inside a letter, tags follow Chinese collation, then byte order.
func RankTags(tags []string) []string {
	out := append([]string(nil), tags...)
	initials := make(map[string]string, len(out))
	for _, t := range out {
		initials[t] = Initial(t)
	}

	col := collate.New(language.Chinese)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ia, ib := initials[a], initials[b]
		if ia != ib {
			if ia == OtherInitial || ib == OtherInitial {
				return ib == OtherInitial
			}
			return ia < ib
		}
		if c := col.CompareString(a, b); c != 0 {
			return c < 0
		}
		return a < b
	})
	return out
}

// GroupTags ranks tags and splits them into letter buckets.
func GroupTags(tags []string) []Group {
	var groups []Group
	for _, t := range RankTags(tags) {
		ini := Initial(t)
		if len(groups) == 0 || groups[len(groups)-1].Initial != ini {
			groups = append(groups, Group{Initial: ini})
		}
		g := &groups[len(groups)-1]
		g.Tags = append(g.Tags, t)
	}
	return groups
}

// Complete returns the candidates that start with prefix, case-insensitively.
// Candidates containing prefix elsewhere follow.
func Complete(candidates []string, prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return append([]string(nil), candidates...)
	}
	var head, tail []string
	for _, c := range candidates {
		lc := strings.ToLower(c)
		switch {
		case strings.HasPrefix(lc, prefix):
			head = append(head, c)
		case strings.Contains(lc, prefix):
			tail = append(tail, c)
		}
	}
	return append(head, tail...)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
