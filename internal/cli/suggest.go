package cli

import (
	"fmt"
	"io"
	"strings"

	"dramactl/internal/suggest"

	"github.com/spf13/cobra"
)

func suggestCmd(a *app) *cobra.Command {
	var (
		prefix  string
		byUsage bool
	)
	cmd := &cobra.Command{
		Use:       "suggest [authors|translators|tags]",
		Short:     "List the values used so far, for completion",
		Long:      "Without an argument every list is shown. Tags are grouped by the pinyin initial of their first character.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"authors", "translators", "tags"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := suggest.Build(a.openStore().Records())
			out := cmd.OutOrStdout()

			which := ""
			if len(args) > 0 {
				which = args[0]
			}
			if which == "" || which == "authors" {
				printNames(out, "Authors", suggest.Complete(s.Authors, prefix))
			}
			if which == "" || which == "translators" {
				printNames(out, "Translators", suggest.Complete(s.Translators, prefix))
			}
			if which == "" || which == "tags" {
				printTags(out, filterTags(s.Tags, prefix), byUsage)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Only values matching this text, prefix matches first")
	cmd.Flags().BoolVar(&byUsage, "by-usage", false, "Order tags by how many records use them")
	return cmd
}

func printNames(w io.Writer, heading string, names []string) {
	fmt.Fprintf(w, "%s (%d)\n", heading, len(names))
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", n)
	}
}

func filterTags(tags []suggest.TagCount, prefix string) []suggest.TagCount {
	if prefix == "" {
		return tags
	}
	names := make([]string, len(tags))
	byName := make(map[string]suggest.TagCount, len(tags))
	for i, t := range tags {
		names[i] = t.Tag
		byName[t.Tag] = t
	}
	var out []suggest.TagCount
	for _, n := range suggest.Complete(names, prefix) {
		out = append(out, byName[n])
	}
	return out
}

func printTags(w io.Writer, tags []suggest.TagCount, byUsage bool) {
	fmt.Fprintf(w, "Tags (%d)\n", len(tags))
	if byUsage {
		for _, t := range suggest.ByUsage(tags) {
			fmt.Fprintf(w, "  %s (%d)\n", t.Tag, t.Count)
		}
		return
	}

	counts := make(map[string]int, len(tags))
	names := make([]string, len(tags))
	for i, t := range tags {
		counts[t.Tag] = t.Count
		names[i] = t.Tag
	}
	for _, g := range suggest.GroupTags(names) {
		line := make([]string, len(g.Tags))
		for i, tag := range g.Tags {
			line[i] = fmt.Sprintf("%s(%d)", tag, counts[tag])
		}
		fmt.Fprintf(w, "  %s  %s\n", g.Initial, strings.Join(line, "  "))
	}
}
