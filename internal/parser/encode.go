package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const indent = "    "

// Reconstruct renders doc back into the literal syntax the website loads.
// String values are JSON-escaped with non-ASCII and HTML characters left as is.
func (p *LiteralParser) Reconstruct(doc *Document) []byte {
	var b strings.Builder

	b.WriteString("const " + p.opts.CollectionName + " = [")
	for i, r := range doc.Records {
		isTranslated, isDomestic := r.Status.Flags()
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}

		b.WriteString("\n" + indent + "{\n")
		field(&b, "id", fmt.Sprint(r.ID), true)
		field(&b, "title", quote(r.Title), true)
		field(&b, "author", quote(r.Author), true)
		field(&b, "translator", quote(r.Translator), true)
		field(&b, "tags", marshal(tags), true)
		field(&b, "isTranslated", fmt.Sprint(isTranslated), true)
		field(&b, "isDomestic", fmt.Sprint(isDomestic), true)
		field(&b, "originalUrl", quote(r.OriginalURL), true)
		field(&b, "translatedUrl", quote(r.TranslatedURL), true)
		field(&b, "description", quote(r.Description), true)
		field(&b, "thumbnail", quote(r.Thumbnail), true)
		field(&b, "dateAdded", quote(r.DateAdded), false)
		b.WriteString(indent + "}")
		if i < len(doc.Records)-1 {
			b.WriteString(",")
		}
	}
	b.WriteString("\n];\n")

	b.WriteString("\nconst " + p.opts.LinksName + " = {")
	if doc.Links != nil {
		names := doc.Links.Names()
		for i, name := range names {
			url, _ := doc.Links.Get(name)
			b.WriteString("\n" + indent + quote(name) + ": " + quote(url))
			if i < len(names)-1 {
				b.WriteString(",")
			}
		}
	}
	b.WriteString("\n};\n")

	return []byte(b.String())
}

func field(b *strings.Builder, key, value string, comma bool) {
	b.WriteString(indent + indent + key + ": " + value)
	if comma {
		b.WriteString(",")
	}
	b.WriteString("\n")
}

func quote(s string) string {
	return marshal(s)
}

func marshal(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Strings and string slices always encode.
	_ = enc.Encode(v)
	return strings.TrimSuffix(buf.String(), "\n")
}

// WriteFile replaces path with data through a temporary file in the same directory,
// so a failed write never leaves a truncated data file behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// Save renders doc and writes it to path.
func (p *LiteralParser) Save(path string, doc *Document) error {
	return WriteFile(path, p.Reconstruct(doc))
}
