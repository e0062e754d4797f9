package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dramactl/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteData = `const dramas = [
    {
        id: 1,
        title: "死神与少年",
        author: "ささきの茶釜",
        translator: "就是很一般",
        tags: ["小町","圣白莲","命莲"],
        isTranslated: true,
        originalUrl: "https://www.youtube.com/playlist?list=PLxioisTzjlBa1NoKDTH1nkAHgOwAHzhma",
        translatedUrl: "https://space.bilibili.com/12621850/lists/4882608",
        description: "你是我活过的证明。",
        thumbnail: "https://img.remit.ee/api/file/a.jpg",
        dateAdded: "2023-06-18"
    },
    {
        id: 2,
        title: "幻想死洛谭",
        author: "ささきの茶釜",
        translator: "就是很一般",
        tags: [],
        isTranslated: false,
        originalUrl: "https://www.youtube.com/playlist?list=PLxioisTzjlBZ63LCFxhe0uDIma4lgCMfC",
        translatedUrl: "",
        description: "死而未绝，络续不绝之缘。",
        thumbnail: "",
        dateAdded: "2024-08-24"
    },

];

const authorLinks = {
    "ささきの茶釜": "https://www.youtube.com/@sasaki",
    "就是很一般": "https://space.bilibili.com/12621850",
};
`

func newTestParser() *LiteralParser {
	return NewLiteralParser(DefaultOptions())
}

func TestDecode_SiteData(t *testing.T) {
	doc, err := newTestParser().Decode(siteData)
	require.NoError(t, err)

	assert.Equal(t, SourceHeuristic, doc.Source)
	require.Len(t, doc.Records, 2)

	first := doc.Records[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "死神与少年", first.Title)
	assert.Equal(t, []string{"小町", "圣白莲", "命莲"}, first.Tags)
	assert.Equal(t, record.StatusTranslated, first.Status)
	assert.Equal(t, "https://space.bilibili.com/12621850/lists/4882608", first.TranslatedURL)

	second := doc.Records[1]
	assert.Equal(t, record.StatusUntranslated, second.Status)
	assert.Equal(t, []string{}, second.Tags)

	assert.Equal(t, []string{"ささきの茶釜", "就是很一般"}, doc.Links.Names())
	u, _ := doc.Links.Get("就是很一般")
	assert.Equal(t, "https://space.bilibili.com/12621850", u)
}

func TestDecode_MissingLinksIsNotAnError(t *testing.T) {
	content := `const dramas = [{ id: 1, title: "a", tags: [] }];`
	doc, err := newTestParser().Decode(content)
	require.NoError(t, err)
	assert.Len(t, doc.Records, 1)
	assert.Equal(t, 0, doc.Links.Len())
	assert.Empty(t, doc.Warnings)
}

func TestDecode_MissingCollection(t *testing.T) {
	_, err := newTestParser().Decode(`const somethingElse = [];`)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecode_JavaScriptFallback(t *testing.T) {
	// Single quotes and comments are not JSON.
	content := `const dramas = [
    {
        id: 1, // first
        title: 'single quoted',
        author: "A",
        translator: "B",
        tags: ['x', 'y'],
        isTranslated: true,
        description: "see note: here",
        dateAdded: "2025-01-01",
    },
];`

	doc, err := newTestParser().Decode(content)
	require.NoError(t, err)
	assert.Equal(t, SourceJavaScript, doc.Source)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "single quoted", doc.Records[0].Title)
	assert.Equal(t, "see note: here", doc.Records[0].Description)
	assert.Equal(t, []string{"x", "y"}, doc.Records[0].Tags)

	opts := DefaultOptions()
	opts.JSFallback = false
	_, err = NewLiteralParser(opts).Decode(content)
	assert.Error(t, err)
}

func TestDecode_JavaScriptTimeout(t *testing.T) {
	d := newJSDecoder(50 * time.Millisecond)
	_, err := d.ToJSON(`(function(){ for(;;){} })()`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluate literal")
}

func TestDecode_InconsistentStatus(t *testing.T) {
	content := `const dramas = [{ id: 1, title: "both", tags: [], isTranslated: true, isDomestic: true }];`
	doc, err := newTestParser().Decode(content)
	require.NoError(t, err)
	assert.Equal(t, record.StatusDomestic, doc.Records[0].Status)
	require.Len(t, doc.Warnings, 1)
	assert.Contains(t, doc.Warnings[0], "both")
}

func TestDecode_BrokenLinksKeepsRecords(t *testing.T) {
	content := `const dramas = [{ id: 1, title: "a", tags: [] }];
const authorLinks = { "a": ??? };`
	doc, err := newTestParser().Decode(content)
	require.NoError(t, err)
	assert.Len(t, doc.Records, 1)
	assert.Equal(t, 0, doc.Links.Len())
	assert.Len(t, doc.Warnings, 1)
}

func TestParse_FallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()

	missing := newTestParser().Parse(filepath.Join(dir, "nope.js"))
	assert.Equal(t, SourceEmpty, missing.Source)
	assert.Empty(t, missing.Records)

	broken := filepath.Join(dir, "broken.js")
	require.NoError(t, os.WriteFile(broken, []byte(`const dramas = [ {{{ ];`), 0o644))
	doc := newTestParser().Parse(broken)
	assert.Equal(t, SourceEmpty, doc.Source)
	assert.Empty(t, doc.Records)
	assert.NotNil(t, doc.Links)
}

func TestRoundTrip(t *testing.T) {
	p := newTestParser()
	doc, err := p.Decode(siteData)
	require.NoError(t, err)

	doc.Records = append(doc.Records, record.Record{
		ID:          3,
		Title:       `quotes " and \ backslash`,
		Author:      "x",
		Translator:  "甲、乙",
		Tags:        []string{"<tag>", "a&b"},
		Status:      record.StatusDomestic,
		Description: "line one\nline two ",
		DateAdded:   "2026-02-03",
	})

	out := p.Reconstruct(doc)
	again, err := p.Decode(string(out))
	require.NoError(t, err)

	assert.Equal(t, doc.Records, again.Records)
	assert.Equal(t, doc.Links.Names(), again.Links.Names())
	assert.Equal(t, SourceHeuristic, again.Source)

	// Re-encoding is stable.
	assert.Equal(t, string(out), string(p.Reconstruct(again)))
}

func TestRoundTrip_BracketsAndQuotesInValues(t *testing.T) {
	links := record.NewLinks()
	links.Set(`甲 "}"`, "https://example.com/?q=];")
	links.Set("乙, ", "")
	doc := &Document{
		Records: []record.Record{
			{Title: "参见[1]; 完", Description: `列表 (a, b, }`, Tags: []string{"[甲, 乙, ]", "}"}},
			{Title: `"];`, Author: `x: y`, Translator: "a ]; b", Description: "// not a comment /* either */"},
			{Title: "plain", Description: `trailing \`},
		},
		Links: links,
	}
	record.NewCollection(doc.Records)
	for i := range doc.Records {
		doc.Records[i].Tags = record.CleanTags(doc.Records[i].Tags)
	}

	opts := DefaultOptions()
	opts.JSFallback = false
	for _, p := range []*LiteralParser{newTestParser(), NewLiteralParser(opts)} {
		out := p.Reconstruct(doc)
		again, err := p.Decode(string(out))
		require.NoError(t, err)

		assert.Equal(t, SourceHeuristic, again.Source)
		assert.Equal(t, doc.Records, again.Records)
		assert.Equal(t, doc.Links.Names(), again.Links.Names())
		u, _ := again.Links.Get(`甲 "}"`)
		assert.Equal(t, "https://example.com/?q=];", u)
	}
}

func TestHeuristicDecoder(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    string
	}{
		{"trailing commas", `[{a: 1, b: [1, 2, ], }, ]`, `[{"a": 1, "b": [1, 2]}]`},
		{"key after brace", `{title:"t"}`, `{"title":"t"}`},
		{"unicode key", `{标题 : "t"}`, `{"标题" : "t"}`},
		{"comma brace in string", `[{d: "列表 (a, b, }"}]`, `[{"d": "列表 (a, b, }"}]`},
		{"comma bracket in string", `["[甲, 乙, ]"]`, `["[甲, 乙, ]"]`},
		{"colon in string", `[{d: "see note: here"}]`, `[{"d": "see note: here"}]`},
		{"escaped quote", `[{d: "say \"x, ]\""}]`, `[{"d": "say \"x, ]\""}]`},
		{"literals untouched", `[true, false, null, -1.5e3]`, `[true, false, null, -1.5e3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := heuristicDecoder{}.ToJSON(tt.literal)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}

	_, err := heuristicDecoder{}.ToJSON(`[{a: 'single'}]`)
	assert.Error(t, err)
}

func TestExtractLiteral(t *testing.T) {
	head := declarationHead("dramas", '[')
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"simple", `const dramas = [1, 2];`, `[1, 2]`},
		{"no semicolon", "const dramas = [\n  {a: [1]}\n]\nconst x = 1", "[\n  {a: [1]}\n]"},
		{"closer in strings", `const dramas = ["];", '}', ` + "`]`" + `];`, `["];", '}', ` + "`]`" + `]`},
		{"closer in comments", "const dramas = [ // ];\n 1 /* ] */ ];", "[ // ];\n 1 /* ] */ ]"},
		{"declaration inside string", `const note = "const dramas = [0];"; const dramas = [1];`, `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractLiteral(tt.content, head)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := extractLiteral(`const other = [1];`, head)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = extractLiteral(`const dramas = ["open];`, head)
	assert.ErrorIs(t, err, errUnterminated)
	_, err = extractLiteral(`const dramas = [ {{ ];`, head)
	assert.ErrorIs(t, err, errMismatched)
}

func TestReconstruct_Format(t *testing.T) {
	p := newTestParser()
	links := record.NewLinks()
	links.Set("作者", "")
	doc := &Document{
		Records: []record.Record{{ID: 1, Title: "t", Tags: []string{"a", "b"}, Status: record.StatusTranslated}},
		Links:   links,
	}

	out := string(p.Reconstruct(doc))
	assert.True(t, strings.HasPrefix(out, "const dramas = [\n    {\n        id: 1,\n        title: \"t\",\n"))
	assert.Contains(t, out, `        tags: ["a","b"],`)
	assert.Contains(t, out, "        isTranslated: true,\n        isDomestic: false,\n")
	assert.Contains(t, out, "        dateAdded: \"\"\n    }\n];\n")
	assert.Contains(t, out, "const authorLinks = {\n    \"作者\": \"\"\n};\n")

	empty := string(p.Reconstruct(&Document{Links: record.NewLinks()}))
	assert.Equal(t, "const dramas = [\n];\n\nconst authorLinks = {\n};\n", empty)
	again, err := p.Decode(empty)
	require.NoError(t, err)
	assert.Empty(t, again.Records)
}

func TestCustomNames(t *testing.T) {
	p := NewLiteralParser(Options{CollectionName: "works", LinksName: "people"})
	content := `const works = [{ id: 1, title: "w", tags: [] }];
const people = { p: "https://p.example" };`
	doc, err := p.Decode(content)
	require.NoError(t, err)
	assert.Len(t, doc.Records, 1)
	u, ok := doc.Links.Get("p")
	assert.True(t, ok)
	assert.Equal(t, "https://p.example", u)

	out := string(p.Reconstruct(doc))
	assert.Contains(t, out, "const works = [")
	assert.Contains(t, out, "const people = {")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "data.js")

	require.NoError(t, WriteFile(path, []byte("one")))
	require.NoError(t, WriteFile(path, []byte("two")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
