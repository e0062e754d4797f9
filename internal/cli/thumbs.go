package cli

import (
	"fmt"
	"io"

	"dramactl/internal/record"
	"dramactl/internal/textutil"
	"dramactl/internal/thumbnail"

	"github.com/spf13/cobra"
)

func thumbsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thumbs",
		Short: "Bulk thumbnail edits",
	}
	cmd.AddCommand(thumbsClearCmd(a), thumbsGenerateCmd(a))
	return cmd
}

func thumbsClearCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the thumbnail of every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.openStore()
			plan := thumbnail.PlanClear(s.Records())
			if len(plan) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No thumbnails to clear")
				return nil
			}
			printChanges(cmd.OutOrStdout(), plan)
			ok, err := confirm(cmd, a.yes, fmt.Sprintf("Clear %d thumbnails?", len(plan)))
			if err != nil || !ok {
				return err
			}

			n, err := s.Apply(func(records []record.Record) (int, error) {
				return thumbnail.Clear(records), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d thumbnails\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&a.yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func thumbsGenerateCmd(a *app) *cobra.Command {
	var (
		opts   thumbnail.GenerateOptions
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill thumbnails from a URL template for a range of IDs",
		Long: `generate expands the template with each record ID in the range, e.g.
  dramactl thumbs generate --template 'https://img.example/covers/%03d.jpg' --from 10 --to 20
Placeholders: {id}, {n}, ${id}, {0} and printf verbs such as %d or %03d.
URL escapes like %5d stay literal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.openStore()
			if !cmd.Flags().Changed("template") {
				opts.Template = a.cfg.Thumbnail.Template
			}
			if opts.Template == "" {
				return fmt.Errorf("generate: --template is required (or set thumbnail.template)")
			}
			if !cmd.Flags().Changed("to") {
				opts.To = s.Len()
			}
			if s.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records")
				return nil
			}

			plan, err := thumbnail.PlanGenerate(s.Records(), opts)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			if len(plan) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change")
				return nil
			}
			printChanges(cmd.OutOrStdout(), plan)
			if dryRun {
				return nil
			}
			ok, err := confirm(cmd, a.yes, fmt.Sprintf("Write %d thumbnails for IDs %d-%d?", len(plan), opts.From, opts.To))
			if err != nil || !ok {
				return err
			}

			n, err := s.Apply(func(records []record.Record) (int, error) {
				changes, err := thumbnail.Generate(records, opts)
				return len(changes), err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d thumbnails\n", n)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&opts.Template, "template", "", "URL template (default thumbnail.template)")
	fl.IntVar(&opts.From, "from", 1, "First ID, inclusive")
	fl.IntVar(&opts.To, "to", 0, "Last ID, inclusive (default the last record)")
	fl.BoolVar(&opts.OnlyEmpty, "only-empty", false, "Skip records that already have a thumbnail")
	fl.BoolVar(&dryRun, "dry-run", false, "Show the changes without writing them")
	fl.BoolVarP(&a.yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func printChanges(w io.Writer, changes []thumbnail.Change) {
	for _, c := range changes {
		old := c.Old
		if old == "" {
			old = "(empty)"
		}
		next := c.New
		if next == "" {
			next = "(empty)"
		}
		fmt.Fprintf(w, "%s %s %s -> %s\n", textutil.Fit(fmt.Sprint(c.ID), 4), textutil.Fit(c.Title, 24), old, next)
	}
}
