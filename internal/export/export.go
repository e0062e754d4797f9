package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dramactl/internal/record"

	"gopkg.in/yaml.v3"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV}

// ParseFormat accepts a format name, case-insensitively. "yml" is an alias of yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Write encodes records to w in the given format.
func Write(w io.Writer, format Format, records []record.Record) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatYAML:
		return WriteYAML(w, records)
	case FormatCSV:
		return WriteCSV(w, records)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []record.Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if records == nil {
		records = []record.Record{}
	}
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteYAML writes records as a YAML sequence.
func WriteYAML(w io.Writer, records []record.Record) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if records == nil {
		records = []record.Record{}
	}
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return nil
}

// csvHeader is the column order of WriteCSV.
var csvHeader = []string{
	"id", "title", "author", "translator", "tags", "status",
	"original_url", "translated_url", "description", "thumbnail", "date_added",
}

// WriteCSV writes a header row and one row per record. Tags are joined with "|".
func WriteCSV(w io.Writer, records []record.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID),
			r.Title,
			r.Author,
			r.Translator,
			strings.Join(r.Tags, "|"),
			r.Status.String(),
			r.OriginalURL,
			r.TranslatedURL,
			r.Description,
			r.Thumbnail,
			r.DateAdded,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	return nil
}

// RecordJSON renders one record the way the import command accepts it.
func RecordJSON(r record.Record) (string, error) {
	var b strings.Builder
	encoder := json.NewEncoder(&b)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(r); err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
