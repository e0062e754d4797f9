package record

import (
	"fmt"
	"strings"
)

// Status is the publication state of a record.
// On disk it is spread over the isTranslated and isDomestic flags.
type Status int

const (
	StatusUntranslated Status = iota
	StatusTranslated
	StatusDomestic
)

var statusNames = map[Status]string{
	StatusUntranslated: "untranslated",
	StatusTranslated:   "translated",
	StatusDomestic:     "domestic",
}

var statusLabels = map[Status]string{
	StatusUntranslated: "未汉化",
	StatusTranslated:   "已汉化",
	StatusDomestic:     "国产",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Label returns the display label used by the website and the table view.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s.String()
}

func (s Status) MarshalText() ([]byte, error) {
	n, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(n), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus accepts the canonical names, the display labels and a few short aliases.
func ParseStatus(v string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "untranslated", "raw", "未汉化":
		return StatusUntranslated, nil
	case "translated", "done", "已汉化":
		return StatusTranslated, nil
	case "domestic", "original", "国产":
		return StatusDomestic, nil
	}
	return StatusUntranslated, fmt.Errorf("unknown status %q", v)
}

// StatusFromFlags maps the two on-disk booleans to a Status.
// The second return value is false when both flags were set.
func StatusFromFlags(isTranslated, isDomestic bool) (Status, bool) {
	switch {
	case isDomestic && isTranslated:
		return StatusDomestic, false
	case isDomestic:
		return StatusDomestic, true
	case isTranslated:
		return StatusTranslated, true
	}
	return StatusUntranslated, true
}

// Flags returns the on-disk isTranslated / isDomestic pair.
func (s Status) Flags() (isTranslated, isDomestic bool) {
	return s == StatusTranslated, s == StatusDomestic
}

// Record is one collection entry.
type Record struct {
	// ID is the 1-based display position. It is reassigned on every insert, delete and move.
	ID            int      `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title" validate:"required"`
	Author        string   `json:"author" yaml:"author"`
	Translator    string   `json:"translator" yaml:"translator"`
	Tags          []string `json:"tags" yaml:"tags"`
	Status        Status   `json:"status" yaml:"status"`
	OriginalURL   string   `json:"originalUrl" yaml:"originalUrl" validate:"omitempty,url"`
	TranslatedURL string   `json:"translatedUrl" yaml:"translatedUrl" validate:"omitempty,url"`
	Description   string   `json:"description" yaml:"description"`
	Thumbnail     string   `json:"thumbnail" yaml:"thumbnail" validate:"omitempty,url"`
	DateAdded     string   `json:"dateAdded" yaml:"dateAdded" validate:"omitempty,datetime=2006-01-02"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	if r.Tags != nil {
		c.Tags = append([]string(nil), r.Tags...)
	}
	return c
}

// Normalize trims every string field and cleans up the tag list in place.
func (r *Record) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Translator = strings.TrimSpace(r.Translator)
	r.OriginalURL = strings.TrimSpace(r.OriginalURL)
	r.TranslatedURL = strings.TrimSpace(r.TranslatedURL)
	r.Description = strings.TrimSpace(r.Description)
	r.Thumbnail = strings.TrimSpace(r.Thumbnail)
	r.DateAdded = strings.TrimSpace(r.DateAdded)
	r.Tags = CleanTags(r.Tags)
}
