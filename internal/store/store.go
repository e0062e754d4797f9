package store

import (
	"errors"
	"fmt"
	"os"

	"dramactl/internal/parser"
	"dramactl/internal/record"
	"dramactl/internal/textutil"

	"github.com/rs/zerolog/log"
)

// ErrUndecodable is returned by Save when the data file exists but could not be
// decoded at load time. Writing would replace its content with what the store holds.
var ErrUndecodable = errors.New("data file exists but could not be decoded")

// Options configures a Store.
type Options struct {
	Parser parser.Options
	// Backups is nil when backups are disabled.
	Backups *Backups
	// Force allows saving over a data file that failed to decode.
	Force bool
}

// Store is the in-memory collection bound to its data file. Every mutating
// method renumbers the records and rewrites the file.
type Store struct {
	path    string
	parser  *parser.LiteralParser
	backups *Backups
	force   bool

	coll        *record.Collection
	links       *record.Links
	source      parser.Source
	undecodable bool
}

// Open loads path. Load problems are logged and leave the store empty.
func Open(path string, opts Options) *Store {
	s := &Store{
		path:    path,
		parser:  parser.NewLiteralParser(opts.Parser),
		backups: opts.Backups,
		force:   opts.Force,
	}
	s.load(s.parser.Parse(path))
	return s
}

func (s *Store) load(doc *parser.Document) {
	s.coll = record.NewCollection(doc.Records)
	s.links = doc.Links
	if s.links == nil {
		s.links = record.NewLinks()
	}
	s.source = doc.Source

	_, err := os.Stat(s.path)
	s.undecodable = doc.Source == parser.SourceEmpty && err == nil
}

// Undecodable reports whether the data file exists but could not be decoded.
// Save refuses to overwrite it unless the store was opened with Force.
func (s *Store) Undecodable() bool { return s.undecodable }

func (s *Store) Path() string { return s.path }

// Source reports which decoder produced the loaded data.
func (s *Store) Source() parser.Source { return s.source }

// Records returns the records in display order.
func (s *Store) Records() []record.Record {
	src := s.coll.Records()
	out := make([]record.Record, len(src))
	for i, r := range src {
		out[i] = r.Clone()
	}
	return out
}

func (s *Store) Len() int { return s.coll.Len() }

func (s *Store) Get(id int) (record.Record, error) { return s.coll.Get(id) }

// Links returns the side-table. Changes made through it are persisted by the next save.
func (s *Store) Links() *record.Links { return s.links }

// Backups returns the backup set, nil when disabled.
func (s *Store) Backups() *Backups { return s.backups }

// Add validates rec, appends it and saves. It returns the new ID.
func (s *Store) Add(rec record.Record) (int, error) {
	rec.Normalize()
	if err := record.Validate(rec); err != nil {
		return 0, err
	}
	id := s.coll.Insert(rec)
	if err := s.Save(); err != nil {
		return 0, err
	}
	log.Info().Int("id", id).Str("title", textutil.Truncate(rec.Title, 30)).Msg("Record added")
	return id, nil
}

// InsertAt validates rec, places it at position pos (1..Len()+1) and saves.
func (s *Store) InsertAt(pos int, rec record.Record) (int, error) {
	rec.Normalize()
	if err := record.Validate(rec); err != nil {
		return 0, err
	}
	if err := s.coll.InsertAt(pos, rec); err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	if err := s.Save(); err != nil {
		return 0, err
	}
	log.Info().Int("id", pos).Str("title", textutil.Truncate(rec.Title, 30)).Msg("Record inserted")
	return pos, nil
}

// AddAll validates every record, appends them in order and saves once.
// Nothing is added when any record is invalid. It returns the new IDs.
func (s *Store) AddAll(recs []record.Record) ([]int, error) {
	for i := range recs {
		recs[i].Normalize()
		if err := record.Validate(recs[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	ids := make([]int, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, s.coll.Insert(rec))
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if err := s.Save(); err != nil {
		return nil, err
	}
	log.Info().Int("added", len(ids)).Int("records", s.coll.Len()).Msg("Records imported")
	return ids, nil
}

// Update validates rec and replaces the record with the given ID, keeping the ID.
func (s *Store) Update(id int, rec record.Record) error {
	rec.Normalize()
	if err := record.Validate(rec); err != nil {
		return err
	}
	if err := s.coll.Update(id, rec); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if err := s.Save(); err != nil {
		return err
	}
	log.Info().Int("id", id).Str("title", textutil.Truncate(rec.Title, 30)).Msg("Record updated")
	return nil
}

// Delete removes the record with the given ID and saves.
func (s *Store) Delete(id int) (record.Record, error) {
	removed, err := s.coll.Delete(id)
	if err != nil {
		return record.Record{}, fmt.Errorf("delete record: %w", err)
	}
	if err := s.Save(); err != nil {
		return record.Record{}, err
	}
	log.Info().Int("id", id).Str("title", textutil.Truncate(removed.Title, 30)).Msg("Record deleted")
	return removed, nil
}

// Move reorders one record and saves.
func (s *Store) Move(from, to int) error {
	if err := s.coll.Move(from, to); err != nil {
		return fmt.Errorf("move record: %w", err)
	}
	if from == to {
		return nil
	}
	if err := s.Save(); err != nil {
		return err
	}
	log.Info().Int("from", from).Int("to", to).Msg("Record moved")
	return nil
}

// Apply runs fn over a copy of the records and saves when fn reports changes.
// The copy replaces the collection only once it is written. It returns fn's change count.
func (s *Store) Apply(fn func(records []record.Record) (int, error)) (int, error) {
	records := s.Records()
	changed, err := fn(records)
	if err != nil {
		return 0, err
	}
	if changed == 0 {
		return 0, nil
	}

	prev := s.coll
	s.coll = record.NewCollection(records)
	if err := s.Save(); err != nil {
		s.coll = prev
		return 0, err
	}
	return changed, nil
}

// SetLink sets the profile URL of name and saves.
func (s *Store) SetLink(name, url string) error {
	if name == "" {
		return fmt.Errorf("set link: empty name")
	}
	s.links.Set(name, url)
	return s.Save()
}

// DeleteLink removes name from the side-table and saves. Names still used by a record
// come back with an empty URL on save.
func (s *Store) DeleteLink(name string) (bool, error) {
	if !s.links.Delete(name) {
		return false, nil
	}
	return true, s.Save()
}

// Save renumbers, fills in missing link names, backs up the current file and rewrites it.
func (s *Store) Save() error {
	if s.undecodable && !s.force {
		return fmt.Errorf("save %s: %w; fix it or restore a backup first", s.path, ErrUndecodable)
	}

	s.coll.Renumber()
	if added := s.links.Populate(s.coll.Records()); len(added) > 0 {
		log.Info().Strs("names", added).Msg("Added names to link table")
	}

	if s.backups != nil {
		if _, err := s.backups.Snapshot(s.path); err != nil {
			return fmt.Errorf("backup before save: %w", err)
		}
	}

	doc := &parser.Document{Records: s.coll.Records(), Links: s.links}
	if err := s.parser.Save(s.path, doc); err != nil {
		return fmt.Errorf("save data file: %w", err)
	}

	s.undecodable = false
	log.Debug().Str("path", s.path).Int("records", s.coll.Len()).Msg("Data file saved")
	return nil
}

// Restore replaces the data file with the named backup and reloads it.
// The current file is backed up first.
func (s *Store) Restore(name string) error {
	if s.backups == nil {
		return fmt.Errorf("restore: backups are disabled")
	}
	data, err := s.backups.Read(name)
	if err != nil {
		return err
	}
	if _, err := s.parser.Decode(string(data)); err != nil {
		return fmt.Errorf("restore %s: %w", name, err)
	}
	if _, err := s.backups.Snapshot(s.path); err != nil {
		return fmt.Errorf("backup before restore: %w", err)
	}
	if err := parser.WriteFile(s.path, data); err != nil {
		return fmt.Errorf("restore %s: %w", name, err)
	}
	s.load(s.parser.Parse(s.path))

	log.Info().Str("backup", name).Int("records", s.coll.Len()).Msg("Backup restored")
	return nil
}

