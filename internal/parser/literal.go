package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"dramactl/internal/record"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a declaration is missing from the file.
var ErrNotFound = errors.New("declaration not found")

// LiteralParser reads and writes the `const dramas = [...]` / `const authorLinks = {...}` file.
type LiteralParser struct {
	opts       Options
	arrayHead  *regexp.Regexp
	objectHead *regexp.Regexp
	decoders   []literalDecoder
}

// NewLiteralParser creates a parser for the given declaration names.
func NewLiteralParser(opts Options) *LiteralParser {
	def := DefaultOptions()
	if opts.CollectionName == "" {
		opts.CollectionName = def.CollectionName
	}
	if opts.LinksName == "" {
		opts.LinksName = def.LinksName
	}
	if opts.JSTimeout <= 0 {
		opts.JSTimeout = def.JSTimeout
	}

	p := &LiteralParser{
		opts:       opts,
		arrayHead:  declarationHead(opts.CollectionName, '['),
		objectHead: declarationHead(opts.LinksName, '{'),
		decoders:   []literalDecoder{heuristicDecoder{}},
	}
	if opts.JSFallback {
		p.decoders = append(p.decoders, newJSDecoder(opts.JSTimeout))
	}
	return p
}

// Parse loads filePath. It never fails: a missing or undecodable file yields an
// empty document and the problem is logged.
func (p *LiteralParser) Parse(filePath string) *Document {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info().Str("path", filePath).Msg("Data file does not exist yet, starting empty")
		} else {
			log.Warn().Err(err).Str("path", filePath).Msg("Cannot read data file, starting empty")
		}
		return emptyDocument(filePath)
	}

	doc, err := p.Decode(string(content))
	if err != nil {
		log.Warn().Err(err).Str("path", filePath).Msg("Cannot decode data file, starting empty")
		return emptyDocument(filePath)
	}
	doc.FilePath = filePath
	for _, w := range doc.Warnings {
		log.Warn().Str("path", filePath).Msg(w)
	}

	log.Debug().
		Str("path", filePath).
		Str("source", string(doc.Source)).
		Int("records", len(doc.Records)).
		Int("links", doc.Links.Len()).
		Msg("Loaded data file")
	return doc
}

// Decode extracts both declarations from content. A missing links table is not an
// error; a missing or undecodable collection is.
func (p *LiteralParser) Decode(content string) (*Document, error) {
	literal, err := extractLiteral(content, p.arrayHead)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", p.opts.CollectionName, err)
	}

	var (
		raw     []fileRecord
		source  Source
		lastErr error
	)
	for _, d := range p.decoders {
		data, err := d.ToJSON(literal)
		if err == nil {
			err = json.Unmarshal(data, &raw)
		}
		if err != nil {
			log.Debug().Err(err).Str("decoder", string(d.Source())).Msg("Decoder rejected collection literal")
			lastErr = err
			raw = nil
			continue
		}
		source = d.Source()
		lastErr = nil
		break
	}
	if lastErr != nil {
		return nil, fmt.Errorf("decode %s: %w", p.opts.CollectionName, lastErr)
	}

	doc := &Document{Source: source, Links: record.NewLinks()}
	doc.Records = make([]record.Record, 0, len(raw))
	for i, fr := range raw {
		status, consistent := record.StatusFromFlags(fr.IsTranslated, fr.IsDomestic)
		if !consistent {
			doc.Warnings = append(doc.Warnings,
				fmt.Sprintf("record %d (%s) is marked both translated and domestic, keeping domestic", i+1, fr.Title))
		}
		doc.Records = append(doc.Records, record.Record{
			ID:            fr.ID,
			Title:         fr.Title,
			Author:        fr.Author,
			Translator:    fr.Translator,
			Tags:          record.CleanTags(fr.Tags),
			Status:        status,
			OriginalURL:   fr.OriginalURL,
			TranslatedURL: fr.TranslatedURL,
			Description:   fr.Description,
			Thumbnail:     fr.Thumbnail,
			DateAdded:     fr.DateAdded,
		})
	}

	links, err := p.decodeLinks(content)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("ignoring %s: %v", p.opts.LinksName, err))
	default:
		doc.Links = links
	}

	return doc, nil
}

func (p *LiteralParser) decodeLinks(content string) (*record.Links, error) {
	literal, err := extractLiteral(content, p.objectHead)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", p.opts.LinksName, err)
	}

	var lastErr error
	for _, d := range p.decoders {
		data, err := d.ToJSON(literal)
		if err == nil {
			var links *record.Links
			if links, err = orderedLinks(data); err == nil {
				return links, nil
			}
		}
		lastErr = err
	}
	return nil, fmt.Errorf("decode %s: %w", p.opts.LinksName, lastErr)
}

// orderedLinks decodes a JSON object of name -> url keeping key order.
func orderedLinks(data []byte) (*record.Links, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	links := record.NewLinks()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", keyTok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("value of %q: %w", name, err)
		}
		url, _ := v.(string)
		links.Set(name, url)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return links, nil
}

func emptyDocument(filePath string) *Document {
	return &Document{
		FilePath: filePath,
		Records:  []record.Record{},
		Links:    record.NewLinks(),
		Source:   SourceEmpty,
	}
}

// heuristicDecoder rewrites a loose literal into JSON: trailing commas are dropped
// and bare keys are quoted, outside string values only.
type heuristicDecoder struct{}

func (heuristicDecoder) Source() Source { return SourceHeuristic }

func (heuristicDecoder) ToJSON(literal string) ([]byte, error) {
	s := repairJSON(literal)
	if !json.Valid([]byte(s)) {
		return nil, errors.New("literal is not valid JSON after key quoting")
	}
	return []byte(s), nil
}
