package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dramactl/internal/filewalker"

	"github.com/pierrec/lz4"
	"github.com/rs/zerolog/log"
)

const backupSuffix = ".lz4"

// ErrBackupNotFound is returned by Backups.Read for an unknown name.
var ErrBackupNotFound = errors.New("backup not found")

// Backups keeps lz4-compressed snapshots of the data file taken before each overwrite.
type Backups struct {
	dir    string
	keep   int
	walker *filewalker.Walker
	now    func() time.Time
}

// NewBackups creates a backup set in dir keeping at most keep snapshots (0 keeps all).
func NewBackups(dir string, keep int) *Backups {
	return &Backups{
		dir:    dir,
		keep:   keep,
		walker: filewalker.NewWalker(backupSuffix),
		now:    time.Now,
	}
}

// Dir returns the backup directory.
func (b *Backups) Dir() string { return b.dir }

// Snapshot compresses the current content of path into the backup directory and
// returns the backup name. A missing file is skipped and yields "".
func (b *Backups) Snapshot(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read data file: %w", err)
	}

	compressed, err := compressLZ4(data)
	if err != nil {
		return "", fmt.Errorf("compress backup: %w", err)
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("%s.%s%s", filepath.Base(path), b.now().UTC().Format("20060102-150405.000000000"), backupSuffix)
	if err := os.WriteFile(filepath.Join(b.dir, name), compressed, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	log.Debug().Str("backup", name).Int("bytes", len(data)).Int("compressed", len(compressed)).Msg("Backup written")

	if err := b.Prune(); err != nil {
		log.Warn().Err(err).Str("dir", b.dir).Msg("Failed to prune backups")
	}
	return name, nil
}

// List returns the backups, newest first.
func (b *Backups) List() ([]filewalker.FileEntry, error) {
	entries, err := b.walker.Walk(b.dir)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Prune removes the oldest backups beyond the retention limit.
func (b *Backups) Prune() error {
	if b.keep <= 0 {
		return nil
	}
	entries, err := b.List()
	if err != nil {
		return err
	}
	if len(entries) <= b.keep {
		return nil
	}
	for _, e := range entries[b.keep:] {
		if err := os.Remove(e.Path); err != nil {
			return fmt.Errorf("remove backup %s: %w", e.Name, err)
		}
		log.Debug().Str("backup", e.Name).Msg("Backup pruned")
	}
	return nil
}

// Read returns the decompressed content of the named backup.
func (b *Backups) Read(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("backup %q: %w", name, ErrBackupNotFound)
	}
	compressed, err := os.ReadFile(filepath.Join(b.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("backup %q: %w", name, ErrBackupNotFound)
		}
		return nil, fmt.Errorf("read backup: %w", err)
	}
	data, err := decompressLZ4(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress backup %q: %w", name, err)
	}
	return data, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := lz4.NewWriter(&buf)

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	reader := lz4.NewReader(bytes.NewReader(data))

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
