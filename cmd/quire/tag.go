package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
)

var tagsJSON bool

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long: `Manage tags. A tag is referenced by id, unique id prefix or label.
Removing a tag keeps the notes; they simply stop showing it.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			tag, err := nb.AddTag(ctx, args[0])
			if err := checkSave(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag.ID)
			return nil
		})
	},
}

var tagRenameCmd = &cobra.Command{
	Use:   "rename [ref] [label]",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			tag, err := nb.FindTag(args[0])
			if err != nil {
				return err
			}
			_, err = nb.UpdateTag(ctx, tag.ID, args[1])
			if err := checkSave(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed tag %s to %q\n", tag.ID, args[1])
			return nil
		})
	},
}

var tagRmCmd = &cobra.Command{
	Use:     "rm [ref]",
	Aliases: []string{"delete"},
	Short:   "Remove a tag",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			tag, err := nb.FindTag(args[0])
			if err != nil {
				return err
			}
			_, err = nb.DeleteTag(ctx, tag.ID)
			if err := checkSave(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted tag", tag.ID)
			return nil
		})
	},
}

var tagLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tags",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			tags := nb.Tags()
			if tagsJSON {
				if tags == nil {
					tags = []quire.Tag{}
				}
				return writeJSON(cmd.OutOrStdout(), tags)
			}
			printTags(cmd.OutOrStdout(), tags, nb.Notes())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd, tagRenameCmd, tagRmCmd, tagLsCmd)
	tagLsCmd.Flags().BoolVar(&tagsJSON, "json", false, "Output in JSON format")
}
