package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
	"github.com/aretw0/quire/pkg/render"
)

var (
	newTitle    string
	newBody     string
	newBodyFile string
	newTags     []string

	editTitle     string
	editBody      string
	editBodyFile  string
	editTags      []string
	editClearTags bool

	showHTML bool
	showJSON bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Create, edit, remove and show notes",
}

var noteNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long: `Create a note. Tags are given by label or id; unknown labels are created.
The body comes from --body, or --body-file ("-" reads stdin).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readBody(cmd, newBody, newBodyFile)
		if err != nil {
			return err
		}
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			tags, err := nb.ResolveTags(ctx, newTags, true)
			if err := checkSave(cmd, err); err != nil {
				return err
			}

			note, err := nb.CreateNote(ctx, quire.NoteData{Title: newTitle, Markdown: body, Tags: tags})
			if err := checkSave(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), note.ID)
			return nil
		})
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit [ref]",
	Short: "Edit a note",
	Long: `Edit a note by id or unique id prefix. Only the given fields change.
--tag adds tags; combine with --clear-tags to replace the whole set.
Saving a note also drops references to tags that were deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var body string
		if flags.Changed("body") || flags.Changed("body-file") {
			b, err := readBody(cmd, editBody, editBodyFile)
			if err != nil {
				return err
			}
			body = b
		}

		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			note, err := nb.FindNote(args[0])
			if err != nil {
				return err
			}

			data := quire.NoteData{Title: note.Title, Markdown: note.Markdown, Tags: note.Tags}
			if flags.Changed("title") {
				data.Title = editTitle
			}
			if flags.Changed("body") || flags.Changed("body-file") {
				data.Markdown = body
			}
			if editClearTags {
				data.Tags = nil
			}
			if len(editTags) > 0 {
				added, err := nb.ResolveTags(ctx, editTags, true)
				if err := checkSave(cmd, err); err != nil {
					return err
				}
				data.Tags = mergeTags(data.Tags, added)
			}

			_, err = nb.UpdateNote(ctx, note.ID, data)
			if err := checkSave(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated note", note.ID)
			return nil
		})
	},
}

var noteRmCmd = &cobra.Command{
	Use:     "rm [ref]",
	Aliases: []string{"delete"},
	Short:   "Remove a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			note, err := nb.FindNote(args[0])
			if err != nil {
				return err
			}
			_, err = nb.DeleteNote(ctx, note.ID)
			if err := checkSave(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted note", note.ID)
			return nil
		})
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show [ref]",
	Short: "Show a note",
	Long:  `Show a note with its live tags. --html renders the markdown body, --json prints the derived note.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if showHTML && showJSON {
			return fmt.Errorf("--html and --json are mutually exclusive")
		}
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			note, err := nb.FindNote(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case showJSON:
				return writeJSON(out, note)
			case showHTML:
				html, err := render.NoteHTML(note)
				if err != nil {
					return err
				}
				fmt.Fprint(out, html)
			default:
				printNote(out, note)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteNewCmd, noteEditCmd, noteRmCmd, noteShowCmd)

	noteNewCmd.Flags().StringVar(&newTitle, "title", "", "Note title")
	noteNewCmd.Flags().StringVar(&newBody, "body", "", "Markdown body")
	noteNewCmd.Flags().StringVar(&newBodyFile, "body-file", "", "Read the body from a file (- for stdin)")
	noteNewCmd.Flags().StringSliceVarP(&newTags, "tag", "t", nil, "Tag label or id (repeatable)")
	noteNewCmd.MarkFlagRequired("title")

	noteEditCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	noteEditCmd.Flags().StringVar(&editBody, "body", "", "New markdown body")
	noteEditCmd.Flags().StringVar(&editBodyFile, "body-file", "", "Read the new body from a file (- for stdin)")
	noteEditCmd.Flags().StringSliceVarP(&editTags, "tag", "t", nil, "Add a tag by label or id (repeatable)")
	noteEditCmd.Flags().BoolVar(&editClearTags, "clear-tags", false, "Remove all tags before adding --tag ones")

	noteShowCmd.Flags().BoolVar(&showHTML, "html", false, "Render the body as HTML")
	noteShowCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}

func readBody(cmd *cobra.Command, body, file string) (string, error) {
	if file == "" {
		return body, nil
	}
	if body != "" {
		return "", fmt.Errorf("--body and --body-file are mutually exclusive")
	}

	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(data), nil
}

func mergeTags(tags, more []quire.Tag) []quire.Tag {
	out := append([]quire.Tag(nil), tags...)
	for _, t := range more {
		seen := false
		for _, have := range out {
			if have.ID == t.ID {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, t)
		}
	}
	return out
}
