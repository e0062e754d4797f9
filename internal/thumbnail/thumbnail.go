package thumbnail

import (
	"errors"
	"fmt"

	"dramactl/internal/interpolation"
	"dramactl/internal/record"

	"github.com/rs/zerolog/log"
)

// ErrInvalidRange is returned when a generation range is empty or starts below 1.
var ErrInvalidRange = errors.New("invalid id range")

// Change describes one thumbnail a bulk operation rewrites.
type Change struct {
	ID    int
	Title string
	Old   string
	New   string
}

// GenerateOptions selects which records Generate touches.
type GenerateOptions struct {
	Template string
	// From and To bound the record IDs, both inclusive.
	From, To int
	// OnlyEmpty skips records that already have a thumbnail.
	OnlyEmpty bool
}

// PlanClear lists the records whose thumbnail Clear would empty.
func PlanClear(records []record.Record) []Change {
	var changes []Change
	for _, r := range records {
		if r.Thumbnail != "" {
			changes = append(changes, Change{ID: r.ID, Title: r.Title, Old: r.Thumbnail})
		}
	}
	return changes
}

// Clear empties every thumbnail and returns how many changed.
func Clear(records []record.Record) int {
	n := 0
	for i := range records {
		if records[i].Thumbnail != "" {
			records[i].Thumbnail = ""
			n++
		}
	}
	return n
}

// PlanGenerate lists the thumbnails Generate would write, without touching records.
func PlanGenerate(records []record.Record, opts GenerateOptions) ([]Change, error) {
	if opts.From < 1 || opts.To < opts.From {
		return nil, fmt.Errorf("range %d-%d: %w", opts.From, opts.To, ErrInvalidRange)
	}
	tpl, err := interpolation.Parse(opts.Template)
	if err != nil {
		return nil, fmt.Errorf("thumbnail template: %w", err)
	}
	log.Debug().Str("template", tpl.String()).Strs("placeholders", tpl.Placeholders()).
		Int("from", opts.From).Int("to", opts.To).Msg("Planning thumbnail generation")

	var changes []Change
	for _, r := range records {
		if r.ID < opts.From || r.ID > opts.To {
			continue
		}
		if opts.OnlyEmpty && r.Thumbnail != "" {
			continue
		}
		url := tpl.Expand(r.ID)
		if url == r.Thumbnail {
			continue
		}
		changes = append(changes, Change{ID: r.ID, Title: r.Title, Old: r.Thumbnail, New: url})
	}
	return changes, nil
}

// Generate writes template-derived thumbnails into records in place and returns
// the applied changes. Records outside the range are never modified.
func Generate(records []record.Record, opts GenerateOptions) ([]Change, error) {
	changes, err := PlanGenerate(records, opts)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]string, len(changes))
	for _, c := range changes {
		byID[c.ID] = c.New
	}
	for i := range records {
		if url, ok := byID[records[i].ID]; ok {
			records[i].Thumbnail = url
		}
	}
	return changes, nil
}
