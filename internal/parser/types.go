package parser

import (
	"time"

	"dramactl/internal/record"
)

// Source names the decoder that produced a Document.
type Source string

const (
	SourceHeuristic  Source = "heuristic"
	SourceJavaScript Source = "javascript"
	SourceEmpty      Source = "empty"
)

// Document holds the decoded content of one data file.
type Document struct {
	// FilePath is the path the document was read from, if any.
	FilePath string
	// Records are the collection entries in display order.
	Records []record.Record
	// Links is the author/translator side-table.
	Links *record.Links
	// Source tells which decoder succeeded.
	Source Source
	// Warnings collects non-fatal problems found while decoding.
	Warnings []string
}

// Options configures the declaration names and the fallback decoder.
type Options struct {
	// CollectionName is the identifier of the record array, "dramas" by default.
	CollectionName string
	// LinksName is the identifier of the side-table object, "authorLinks" by default.
	LinksName string
	// JSFallback enables evaluating a literal in an embedded JavaScript VM
	// when the heuristic pass cannot decode it.
	JSFallback bool
	// JSTimeout bounds a single evaluation.
	JSTimeout time.Duration
}

// DefaultOptions matches the file layout the website expects.
func DefaultOptions() Options {
	return Options{
		CollectionName: "dramas",
		LinksName:      "authorLinks",
		JSFallback:     true,
		JSTimeout:      5 * time.Second,
	}
}

// literalDecoder turns the source text of one array or object literal into strict JSON.
type literalDecoder interface {
	Source() Source
	ToJSON(literal string) ([]byte, error)
}

// fileRecord is the on-disk shape of a record.
type fileRecord struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Translator    string   `json:"translator"`
	Tags          []string `json:"tags"`
	IsTranslated  bool     `json:"isTranslated"`
	IsDomestic    bool     `json:"isDomestic"`
	OriginalURL   string   `json:"originalUrl"`
	TranslatedURL string   `json:"translatedUrl"`
	Description   string   `json:"description"`
	Thumbnail     string   `json:"thumbnail"`
	DateAdded     string   `json:"dateAdded"`
}
