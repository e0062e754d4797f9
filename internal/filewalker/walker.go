package filewalker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Walker lists files under a directory whose names end with one of the accepted suffixes.
type Walker struct {
	suffixes []string
}

// NewWalker creates a Walker for the given name suffixes, e.g. ".lz4" or ".js.lz4".
func NewWalker(suffixes ...string) *Walker {
	return &Walker{suffixes: suffixes}
}

// FileEntry represents a discovered file.
type FileEntry struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Walk returns every matching file under root sorted by name, newest-named last.
// A missing root is not an error and yields no entries.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() || !w.accepts(d.Name()) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Cannot stat file")
			return nil
		}
		entries = append(entries, FileEntry{
			Path:    path,
			Name:    d.Name(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	log.Debug().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}

func (w *Walker) accepts(name string) bool {
	if len(w.suffixes) == 0 {
		return true
	}
	for _, s := range w.suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
