package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"dramactl/internal/record"
	"dramactl/internal/textutil"

	"github.com/spf13/cobra"
)

func listCmd(a *app) *cobra.Command {
	var (
		status string
		tag    string
		search string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the records in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := newListFilter(cmd, status, tag, search)
			if err != nil {
				return err
			}
			s := a.openStore()
			var rows []record.Record
			for _, r := range s.Records() {
				if filter.match(r) {
					rows = append(rows, r)
				}
			}
			printTable(cmd.OutOrStdout(), rows)
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d records\n", len(rows), s.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only records with this status (untranslated, translated, domestic)")
	cmd.Flags().StringVar(&tag, "tag", "", "Only records carrying this tag")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only records whose title, author or translator contains this text")
	return cmd
}

type listFilter struct {
	status *record.Status
	tag    string
	search string
}

func newListFilter(cmd *cobra.Command, status, tag, search string) (listFilter, error) {
	f := listFilter{tag: strings.TrimSpace(tag), search: strings.ToLower(strings.TrimSpace(search))}
	if cmd.Flags().Changed("status") {
		st, err := record.ParseStatus(status)
		if err != nil {
			return f, err
		}
		f.status = &st
	}
	return f, nil
}

func (f listFilter) match(r record.Record) bool {
	if f.status != nil && r.Status != *f.status {
		return false
	}
	if f.tag != "" {
		found := false
		for _, t := range r.Tags {
			if t == f.tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.search != "" {
		hay := strings.ToLower(r.Title + "\x00" + r.Author + "\x00" + r.Translator)
		if !strings.Contains(hay, f.search) {
			return false
		}
	}
	return true
}

func printTable(w io.Writer, rows []record.Record) {
	fmt.Fprintf(w, "%s %s %s %s %s %s %s\n",
		textutil.Fit("ID", 4), textutil.Fit("状态", 6), textutil.Fit("Title", 30),
		textutil.Fit("Author", 16), textutil.Fit("Translator", 16), textutil.Fit("Tags", 24), "Added")
	for _, r := range rows {
		fmt.Fprintf(w, "%s %s %s %s %s %s %s\n",
			textutil.Fit(fmt.Sprint(r.ID), 4),
			textutil.Fit(r.Status.Label(), 6),
			textutil.Fit(textutil.OneLine(r.Title), 30),
			textutil.Fit(textutil.OneLine(r.Author), 16),
			textutil.Fit(textutil.OneLine(r.Translator), 16),
			textutil.Fit(strings.Join(r.Tags, ", "), 24),
			r.DateAdded)
	}
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one record",
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
			printRecord(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func printRecord(w io.Writer, r record.Record) {
	rows := [][2]string{
		{"ID", fmt.Sprint(r.ID)},
		{"Title", r.Title},
		{"Author", r.Author},
		{"Translator", r.Translator},
		{"Tags", strings.Join(r.Tags, ", ")},
		{"Status", fmt.Sprintf("%s (%s)", r.Status.Label(), r.Status)},
		{"Original URL", r.OriginalURL},
		{"Translated URL", r.TranslatedURL},
		{"Thumbnail", r.Thumbnail},
		{"Date added", r.DateAdded},
		{"Description", r.Description},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s %s\n", textutil.Fit(row[0]+":", 16), row[1])
	}
}

// recordFlags binds one flag per editable field.
type recordFlags struct {
	title, author, translator string
	tags                      string
	addTags                   []string
	status                    string
	originalURL               string
	translatedURL             string
	description               string
	thumbnail                 string
	date                      string
}

func (f *recordFlags) register(cmd *cobra.Command, withAddTag bool) {
	fl := cmd.Flags()
	fl.StringVarP(&f.title, "title", "t", "", "Title")
	fl.StringVarP(&f.author, "author", "a", "", "Author")
	fl.StringVar(&f.translator, "translator", "", "Translator(s), e.g. \"甲、乙\"")
	fl.StringVar(&f.tags, "tags", "", "Tags separated by , or ，")
	if withAddTag {
		fl.StringSliceVar(&f.addTags, "add-tag", nil, "Append a tag, keeping the existing ones (repeatable)")
	}
	fl.StringVar(&f.status, "status", "", "untranslated, translated or domestic")
	fl.StringVar(&f.originalURL, "original-url", "", "Original video URL")
	fl.StringVar(&f.translatedURL, "translated-url", "", "Translated video URL")
	fl.StringVarP(&f.description, "description", "d", "", "Description")
	fl.StringVar(&f.thumbnail, "thumbnail", "", "Thumbnail URL")
	fl.StringVar(&f.date, "date", "", "Date added, YYYY-MM-DD")
}

// apply copies every flag the user set onto r.
func (f *recordFlags) apply(cmd *cobra.Command, r *record.Record) error {
	changed := cmd.Flags().Changed
	if changed("title") {
		r.Title = f.title
	}
	if changed("author") {
		r.Author = f.author
	}
	if changed("translator") {
		r.Translator = f.translator
	}
	if changed("tags") {
		r.Tags = record.ParseTags(f.tags)
	}
	for _, t := range f.addTags {
		r.Tags = record.AddTag(r.Tags, t)
	}
	if changed("status") {
		st, err := record.ParseStatus(f.status)
		if err != nil {
			return err
		}
		r.Status = st
	}
	if changed("original-url") {
		r.OriginalURL = f.originalURL
	}
	if changed("translated-url") {
		r.TranslatedURL = f.translatedURL
	}
	if changed("description") {
		r.Description = f.description
	}
	if changed("thumbnail") {
		r.Thumbnail = f.thumbnail
	}
	if changed("date") {
		r.DateAdded = f.date
	}
	return nil
}

func addCmd(a *app) *cobra.Command {
	var (
		f  recordFlags
		at int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := record.Record{DateAdded: a.now().Format(time.DateOnly)}
			if err := f.apply(cmd, &r); err != nil {
				return err
			}
			var (
				id  int
				err error
			)
			if cmd.Flags().Changed("at") {
				id, err = a.openStore().InsertAt(at, r)
			} else {
				id, err = a.openStore().Add(r)
			}
			if err != nil {
				return fmt.Errorf("add record: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", id, strings.TrimSpace(r.Title))
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().IntVar(&at, "at", 0, "Insert at this position instead of appending")
	return cmd
}

func editCmd(a *app) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a record; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "id")
			if err != nil {
				return err
			}
			s := a.openStore()
			r, err := s.Get(id)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &r); err != nil {
				return err
			}
			if err := s.Update(id, r); err != nil {
				return fmt.Errorf("edit record %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d %s\n", id, strings.TrimSpace(r.Title))
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func deleteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "id")
			if err != nil {
				return err
			}
			s := a.openStore()
			r, err := s.Get(id)
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, a.yes, fmt.Sprintf("Delete #%d %s?", id, r.Title))
			if err != nil || !ok {
				return err
			}
			if _, err := s.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d %s\n", id, r.Title)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&a.yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func moveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a record to another position; IDs follow the new order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseID(args[0], "from")
			if err != nil {
				return err
			}
			to, err := parseID(args[1], "to")
			if err != nil {
				return err
			}
			if err := a.openStore().Move(from, to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved #%d to #%d\n", from, to)
			return nil
		},
	}
}

func saveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Rewrite the data file in canonical form",
		Long: `save renumbers the records, adds missing author and translator names to the
link table and rewrites the file. Use it after editing the file by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.openStore()
			loaded := s.Source()
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d records and %d links to %s (read by the %s decoder)\n",
				s.Len(), s.Links().Len(), s.Path(), loaded)
			return nil
		},
	}
}
