package cli

import (
	"fmt"

	"dramactl/internal/textutil"

	"github.com/spf13/cobra"
)

func linksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Manage the author and translator link table",
	}
	cmd.AddCommand(linksListCmd(a), linksSetCmd(a), linksDeleteCmd(a), linksPopulateCmd(a))
	return cmd
}

func linksListCmd(a *app) *cobra.Command {
	var missing bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every name and its profile URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			links := a.openStore().Links()
			shown := 0
			for _, name := range links.Names() {
				url, _ := links.Get(name)
				if missing && url != "" {
					continue
				}
				if url == "" {
					url = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", textutil.Fit(name, 24), url)
				shown++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d names\n", shown, links.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&missing, "missing", false, "Only names without a URL")
	return cmd
}

func linksSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <url>",
		Short: "Set the profile URL of a name; an empty URL keeps the name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openStore().SetLink(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked %s\n", args[0])
			return nil
		},
	}
}

func linksDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a name; names still used by a record come back with an empty URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.openStore().DeleteLink(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("link %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func linksPopulateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "populate",
		Short: "Add every author and translator missing from the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.openStore()
			added := s.Links().Populate(s.Records())
			if len(added) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Link table already complete")
				return nil
			}
			if err := s.Save(); err != nil {
				return err
			}
			for _, name := range added {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", name)
			}
			return nil
		},
	}
}
