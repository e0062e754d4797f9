package record

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidPosition = errors.New("invalid position")
)

// Collection is the ordered record list. Display order is the only order:
// after every mutation IDs are 1..N.
type Collection struct {
	records []Record
}

// NewCollection wraps records and renumbers them.
func NewCollection(records []Record) *Collection {
	c := &Collection{records: records}
	c.Renumber()
	return c
}

func (c *Collection) Len() int { return len(c.records) }

// Records returns the underlying slice. Callers must not keep it across mutations.
func (c *Collection) Records() []Record { return c.records }

// Renumber assigns sequential IDs starting at 1.
func (c *Collection) Renumber() {
	for i := range c.records {
		c.records[i].ID = i + 1
	}
}

// Get returns a copy of the record with the given ID.
func (c *Collection) Get(id int) (Record, error) {
	idx, err := c.index(id)
	if err != nil {
		return Record{}, err
	}
	return c.records[idx].Clone(), nil
}

// Insert appends rec and returns its assigned ID.
func (c *Collection) Insert(rec Record) int {
	c.records = append(c.records, rec)
	c.Renumber()
	return len(c.records)
}

// InsertAt places rec at the 1-based position pos, shifting later records down.
func (c *Collection) InsertAt(pos int, rec Record) error {
	if pos < 1 || pos > len(c.records)+1 {
		return fmt.Errorf("insert at %d of %d: %w", pos, len(c.records), ErrInvalidPosition)
	}
	c.records = append(c.records, Record{})
	copy(c.records[pos:], c.records[pos-1:])
	c.records[pos-1] = rec
	c.Renumber()
	return nil
}

// Update replaces the record with the given ID, keeping the ID.
func (c *Collection) Update(id int, rec Record) error {
	idx, err := c.index(id)
	if err != nil {
		return err
	}
	rec.ID = c.records[idx].ID
	c.records[idx] = rec
	return nil
}

// Delete removes the record with the given ID and returns it.
func (c *Collection) Delete(id int) (Record, error) {
	idx, err := c.index(id)
	if err != nil {
		return Record{}, err
	}
	removed := c.records[idx]
	c.records = append(c.records[:idx], c.records[idx+1:]...)
	c.Renumber()
	return removed, nil
}

// Move takes the record at position from out of the list and reinserts it at position to.
func (c *Collection) Move(from, to int) error {
	fromIdx, err := c.index(from)
	if err != nil {
		return err
	}
	if to < 1 || to > len(c.records) {
		return fmt.Errorf("move to %d of %d: %w", to, len(c.records), ErrInvalidPosition)
	}
	if from == to {
		return nil
	}
	rec := c.records[fromIdx]
	c.records = append(c.records[:fromIdx], c.records[fromIdx+1:]...)
	toIdx := to - 1
	c.records = append(c.records, Record{})
	copy(c.records[toIdx+1:], c.records[toIdx:])
	c.records[toIdx] = rec
	c.Renumber()
	return nil
}

func (c *Collection) index(id int) (int, error) {
	if id < 1 || id > len(c.records) {
		return -1, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return id - 1, nil
}
