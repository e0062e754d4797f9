package store

import (
	"context"
	"fmt"

	"dramactl/internal/filewalker"
	"dramactl/internal/parser"
	"dramactl/internal/worker"

	"github.com/rs/zerolog/log"
)

// BackupReport describes whether one backup could be restored.
type BackupReport struct {
	Entry   filewalker.FileEntry
	Records int
	Links   int
	Source  parser.Source
	Err     error
}

// OK reports whether the backup decoded cleanly.
func (r BackupReport) OK() bool { return r.Err == nil }

// VerifyBackups decompresses and decodes every backup, newest first, using up to
// workers goroutines. A backup that fails to decode would be refused by Restore.
func (s *Store) VerifyBackups(ctx context.Context, workers int) ([]BackupReport, error) {
	if s.backups == nil {
		return nil, fmt.Errorf("verify: backups are disabled")
	}
	entries, err := s.backups.List()
	if err != nil {
		return nil, err
	}

	pool := worker.NewPool[filewalker.FileEntry, BackupReport](workers,
		func(ctx context.Context, e filewalker.FileEntry) (BackupReport, error) {
			if err := ctx.Err(); err != nil {
				return BackupReport{}, err
			}
			data, err := s.backups.Read(e.Name)
			if err != nil {
				return BackupReport{}, err
			}
			doc, err := s.parser.Decode(string(data))
			if err != nil {
				return BackupReport{}, err
			}
			return BackupReport{Records: len(doc.Records), Links: doc.Links.Len(), Source: doc.Source}, nil
		},
	)

	tasks := pool.Execute(ctx, entries)
	reports := make([]BackupReport, len(tasks))
	failed := 0
	for i, task := range tasks {
		reports[i] = task.Result
		reports[i].Entry = task.Input
		reports[i].Err = task.Err
		if task.Err != nil {
			failed++
		}
	}

	log.Info().Int("backups", len(reports)).Int("failed", failed).Msg("Backups verified")
	return reports, ctx.Err()
}
