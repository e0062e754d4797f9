package cli

import (
	"fmt"
	"os"
	"strings"

	"dramactl/internal/export"
	"dramactl/internal/importer"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func importCmd(a *app) *cobra.Command {
	var fromClipboard bool
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Append records from pasted JSON",
		Long: `import reads one JSON object, or an array of objects, in the record shape of
the data file. "tags" may be a list or a comma separated string and the status
may be given as isTranslated/isDomestic or as "status". Without a file, or with
"-", the JSON is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				text string
				err  error
			)
			switch {
			case fromClipboard && len(args) > 0:
				return fmt.Errorf("import: give a file or --clipboard, not both")
			case fromClipboard:
				text, err = importer.ReadClipboard()
			default:
				path := ""
				if len(args) > 0 {
					path = args[0]
				}
				text, err = importer.ReadSource(path, cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			recs, err := importer.Parse(text, a.now())
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			ids, err := a.openStore().AddAll(recs)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			for i, id := range ids {
				fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", id, recs[i].Title)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read the JSON from the system clipboard")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the records as JSON, YAML or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			records := a.openStore().Records()

			if output == "" || output == "-" {
				return export.Write(cmd.OutOrStdout(), f, records)
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := export.Write(file, f, records); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}

			log.Info().Str("path", output).Str("format", string(f)).Int("records", len(records)).Msg("Export complete")
			return nil
		},
	}
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	cmd.Flags().StringVar(&format, "format", string(export.FormatJSON), "Output format: "+strings.Join(names, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func copyCmd(a *app) *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy one record as importable JSON to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "id")
			if err != nil {
				return err
			}
			r, err := a.openStore().Get(id)
			if err != nil {
				return err
			}
			text, err := export.RecordJSON(r)
			if err != nil {
				return err
			}
			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if err := importer.WriteClipboard(text); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied #%d %s\n", id, r.Title)
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the JSON instead of copying it")
	return cmd
}
