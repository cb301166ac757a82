package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
)

var (
	listJSON  bool
	listTitle string
	listTags  []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List notes whose title contains --title (case-insensitive) and which carry
every --tag. Tags are referenced by label, id or unique id prefix.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			filter, err := buildFilter(ctx, nb, listTitle, listTags)
			if err != nil {
				return err
			}

			notes := filter.Apply(nb.Notes())
			if listJSON {
				return writeJSON(cmd.OutOrStdout(), notes)
			}
			printNotes(cmd.OutOrStdout(), notes)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listTitle, "title", "", "Keep notes whose title contains this text")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "Keep notes carrying this tag (repeatable)")
}

// buildFilter resolves tag references without creating tags.
func buildFilter(ctx context.Context, nb *quire.Notebook, title string, refs []string) (quire.Filter, error) {
	tags, err := nb.ResolveTags(ctx, refs, false)
	if err != nil {
		return quire.Filter{}, err
	}
	return quire.Filter{Title: title, Tags: tags}, nil
}
