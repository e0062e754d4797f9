package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dramactl/internal/record"
)

// ErrEmpty is returned when there is nothing to import.
var ErrEmpty = errors.New("nothing to import")

// entry is the pasted shape: the file shape plus a few lenient variants.
type entry struct {
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Translator    string          `json:"translator"`
	Tags          json.RawMessage `json:"tags"`
	IsTranslated  bool            `json:"isTranslated"`
	IsDomestic    bool            `json:"isDomestic"`
	Status        string          `json:"status"`
	OriginalURL   string          `json:"originalUrl"`
	TranslatedURL string          `json:"translatedUrl"`
	Description   string          `json:"description"`
	Thumbnail     string          `json:"thumbnail"`
	DateAdded     string          `json:"dateAdded"`
}

// Clean strips surrounding whitespace and the backticks chat tools put around URLs.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "`https://", "https://")
	return strings.ReplaceAll(text, "`", "")
}

// Parse decodes one JSON object or an array of objects into normalized, validated
// records. Records without a date get today's.
func Parse(text string, today time.Time) ([]record.Record, error) {
	text = Clean(text)
	if text == "" {
		return nil, ErrEmpty
	}

	var entries []entry
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &entries); err != nil {
			return nil, fmt.Errorf("decode JSON array: %w", err)
		}
	} else {
		var e entry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, fmt.Errorf("decode JSON object: %w", err)
		}
		entries = []entry{e}
	}
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	records := make([]record.Record, 0, len(entries))
	for i, e := range entries {
		r, err := e.toRecord(today)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func (e entry) toRecord(today time.Time) (record.Record, error) {
	tags, err := decodeTags(e.Tags)
	if err != nil {
		return record.Record{}, err
	}

	status, _ := record.StatusFromFlags(e.IsTranslated, e.IsDomestic)
	if e.Status != "" {
		if status, err = record.ParseStatus(e.Status); err != nil {
			return record.Record{}, err
		}
	}

	r := record.Record{
		Title:         e.Title,
		Author:        e.Author,
		Translator:    e.Translator,
		Tags:          tags,
		Status:        status,
		OriginalURL:   e.OriginalURL,
		TranslatedURL: e.TranslatedURL,
		Description:   e.Description,
		Thumbnail:     e.Thumbnail,
		DateAdded:     e.DateAdded,
	}
	r.Normalize()
	if r.DateAdded == "" {
		r.DateAdded = today.Format(time.DateOnly)
	}
	if err := record.Validate(r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// decodeTags accepts "a，b", ["a，b", "c"] or null.
func decodeTags(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}

	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return record.CleanTags(record.ParseTags(one)), nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, fmt.Errorf("tags must be a string or a list of strings: %w", err)
	}
	var tags []string
	for _, s := range many {
		tags = append(tags, record.ParseTags(s)...)
	}
	return record.CleanTags(tags), nil
}
