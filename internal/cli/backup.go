package cli

import (
	"fmt"

	"dramactl/internal/textutil"

	"github.com/spf13/cobra"
)

func backupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Inspect and restore the snapshots taken before each save",
	}
	cmd.AddCommand(backupListCmd(a), backupVerifyCmd(a), backupRestoreCmd(a))
	return cmd
}

func backupListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.openStore().Backups()
			if b == nil {
				return fmt.Errorf("backups are disabled")
			}
			entries, err := b.List()
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %8d  %s\n",
					textutil.Fit(e.Name, 44), e.Size, e.ModTime.Local().Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d backups in %s\n", len(entries), b.Dir())
			return nil
		},
	}
}

func backupVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every backup decompresses and decodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			reports, err := a.openStore().VerifyBackups(ctx, a.cfg.Backup.Workers)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range reports {
				name := textutil.Fit(r.Entry.Name, 44)
				if !r.OK() {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s FAIL %v\n", name, r.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s ok   %d records, %d links (%s)\n", name, r.Records, r.Links, r.Source)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d backups cannot be restored", failed, len(reports))
			}
			return nil
		},
	}
}

func backupRestoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <name>",
		Short: "Replace the data file with a backup; the current file is backed up first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd, a.yes, fmt.Sprintf("Replace %s with %s?", a.cfg.DataFile, args[0]))
			if err != nil || !ok {
				return err
			}
			s := a.openStore()
			if err := s.Restore(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s (%d records)\n", args[0], s.Len())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&a.yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
