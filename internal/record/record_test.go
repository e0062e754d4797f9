package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(c *Collection) []string {
	var out []string
	for _, r := range c.Records() {
		out = append(out, r.Title)
	}
	return out
}

func assertSequentialIDs(t *testing.T, c *Collection) {
	t.Helper()
	for i, r := range c.Records() {
		assert.Equal(t, i+1, r.ID, "record %q", r.Title)
	}
}

func sample() *Collection {
	return NewCollection([]Record{
		{ID: 7, Title: "a"},
		{ID: 3, Title: "b"},
		{ID: 3, Title: "c"},
		{ID: 9, Title: "d"},
	})
}

func TestNewCollection_Renumbers(t *testing.T) {
	c := sample()
	assertSequentialIDs(t, c)
}

func TestCollection_Insert(t *testing.T) {
	c := sample()
	id := c.Insert(Record{ID: 42, Title: "e"})
	assert.Equal(t, 5, id)
	assertSequentialIDs(t, c)

	require.NoError(t, c.InsertAt(1, Record{Title: "first"}))
	assert.Equal(t, []string{"first", "a", "b", "c", "d", "e"}, titles(c))
	assertSequentialIDs(t, c)

	err := c.InsertAt(9, Record{Title: "nope"})
	assert.True(t, errors.Is(err, ErrInvalidPosition))
}

func TestCollection_UpdateKeepsID(t *testing.T) {
	c := sample()
	require.NoError(t, c.Update(2, Record{ID: 100, Title: "B"}))
	got, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ID)
	assert.Equal(t, "B", got.Title)

	assert.ErrorIs(t, c.Update(5, Record{Title: "x"}), ErrNotFound)
}

func TestCollection_Delete(t *testing.T) {
	c := sample()
	removed, err := c.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Title)
	assert.Equal(t, []string{"a", "c", "d"}, titles(c))
	assertSequentialIDs(t, c)

	_, err = c.Delete(0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_Move(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"down", 1, 3, []string{"b", "c", "a", "d"}},
		{"up", 4, 1, []string{"d", "a", "b", "c"}},
		{"to end", 2, 4, []string{"a", "c", "d", "b"}},
		{"same place", 2, 2, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sample()
			require.NoError(t, c.Move(tt.from, tt.to))
			assert.Equal(t, tt.want, titles(c))
			assertSequentialIDs(t, c)
		})
	}

	c := sample()
	assert.ErrorIs(t, c.Move(1, 5), ErrInvalidPosition)
	assert.ErrorIs(t, c.Move(6, 1), ErrNotFound)
}

func TestCollection_GetReturnsCopy(t *testing.T) {
	c := NewCollection([]Record{{Title: "a", Tags: []string{"x"}}})
	got, err := c.Get(1)
	require.NoError(t, err)
	got.Tags[0] = "changed"
	assert.Equal(t, "x", c.Records()[0].Tags[0])
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"就是很一般", []string{"就是很一般"}},
		{"甲,乙", []string{"甲", "乙"}},
		{"甲，乙", []string{"甲", "乙"}},
		{"甲、乙、丙", []string{"甲", "乙", "丙"}},
		{"Alice & Bob", []string{"Alice", "Bob"}},
		{"甲＆乙", []string{"甲", "乙"}},
		{"Alice and Bob", []string{"Alice", "Bob"}},
		{"Alice AND Bob", []string{"Alice", "Bob"}},
		{"Sandy, Andrew", []string{"Sandy", "Andrew"}},
		{"甲 / 乙, 甲", []string{"甲", "乙"}},
		{"  ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitNames(tt.in))
		})
	}
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"小町", "琪露诺", "大妖精"}, ParseTags(" 小町, 琪露诺，大妖精 ,小町,"))
	assert.Nil(t, ParseTags(""))
	assert.Equal(t, []string{}, CleanTags(nil))
	assert.Equal(t, []string{"a", "b"}, AddTag([]string{"a"}, " b "))
	assert.Equal(t, []string{"a"}, AddTag([]string{"a"}, "a"))
}

func TestStatus(t *testing.T) {
	s, ok := StatusFromFlags(true, false)
	assert.Equal(t, StatusTranslated, s)
	assert.True(t, ok)

	s, ok = StatusFromFlags(true, true)
	assert.Equal(t, StatusDomestic, s)
	assert.False(t, ok)

	s, _ = StatusFromFlags(false, false)
	assert.Equal(t, StatusUntranslated, s)

	tr, dom := StatusDomestic.Flags()
	assert.False(t, tr)
	assert.True(t, dom)

	parsed, err := ParseStatus("已汉化")
	require.NoError(t, err)
	assert.Equal(t, StatusTranslated, parsed)
	_, err = ParseStatus("finished?")
	assert.Error(t, err)

	var st Status
	require.NoError(t, st.UnmarshalText([]byte("domestic")))
	assert.Equal(t, StatusDomestic, st)
	text, err := StatusTranslated.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "translated", string(text))
}

func TestNormalize(t *testing.T) {
	r := Record{Title: "  t ", Tags: []string{" a", "", "a", "b "}, DateAdded: " 2024-01-02 "}
	r.Normalize()
	assert.Equal(t, "t", r.Title)
	assert.Equal(t, []string{"a", "b"}, r.Tags)
	assert.Equal(t, "2024-01-02", r.DateAdded)
}

func TestValidate(t *testing.T) {
	ok := Record{
		Title:       "死神与少年",
		OriginalURL: "https://www.youtube.com/playlist?list=abc",
		DateAdded:   "2023-06-18",
	}
	assert.NoError(t, Validate(ok))

	tests := []struct {
		name    string
		mutate  func(*Record)
		wantMsg string
	}{
		{"missing title", func(r *Record) { r.Title = "" }, "Title is required"},
		{"bad url", func(r *Record) { r.Thumbnail = "not a url" }, "Thumbnail must be a URL"},
		{"bad date", func(r *Record) { r.DateAdded = "18/06/2023" }, "DateAdded must be a date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ok
			tt.mutate(&r)
			err := Validate(r)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLinks_Populate(t *testing.T) {
	l := NewLinks()
	l.Set("ささきの茶釜", "https://example.com/sasaki")

	added := l.Populate([]Record{
		{Author: "ささきの茶釜", Translator: "就是很一般"},
		{Author: "B", Translator: "甲、就是很一般 & 乙"},
		{Author: "", Translator: ""},
	})

	assert.Equal(t, []string{"就是很一般", "B", "甲", "乙"}, added)
	assert.Equal(t, []string{"ささきの茶釜", "就是很一般", "B", "甲", "乙"}, l.Names())

	u, ok := l.Get("ささきの茶釜")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/sasaki", u)
	u, ok = l.Get("甲")
	assert.True(t, ok)
	assert.Empty(t, u)
}

func TestLinks_SetDelete(t *testing.T) {
	l := NewLinks()
	l.Set("a", "1")
	l.Set("b", "2")
	l.Set("a", "3")
	assert.Equal(t, []string{"a", "b"}, l.Names())
	u, _ := l.Get("a")
	assert.Equal(t, "3", u)

	assert.True(t, l.Delete("a"))
	assert.False(t, l.Delete("a"))
	assert.Equal(t, 1, l.Len())
}
