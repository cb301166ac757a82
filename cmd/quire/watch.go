package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/lifecycle"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
	lcadapter "github.com/aretw0/quire/pkg/adapters/lifecycle"
)

var (
	watchTitle string
	watchTags  []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-print the filtered note list whenever the notebook changes",
	Long: `Watch the notebook files (fs adapter only) and print the filtered list
again after every change made by another process. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, store quire.Store) error {
			watchable, ok := store.(quire.Watchable)
			if !ok {
				return fmt.Errorf("watch needs a watchable store (the fs adapter), got %T", store)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			source := lcadapter.NewSource(watchable, "*")
			if err := source.Start(ctx); err != nil {
				return err
			}
			return watchLoop(ctx, cmd, nb, source.Events())
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchTitle, "title", "", "Keep notes whose title contains this text")
	watchCmd.Flags().StringSliceVarP(&watchTags, "tag", "t", nil, "Keep notes carrying this tag (repeatable)")
}

// watchLoop prints the filtered list, then reloads and prints it again on
// every event until ctx ends or events closes.
func watchLoop(ctx context.Context, cmd *cobra.Command, nb *quire.Notebook, events <-chan lifecycle.Event) error {
	out := cmd.OutOrStdout()
	show := func() {
		// Tags are resolved again each time. A selected tag that no longer
		// resolves stays selected and matches nothing.
		filter, err := buildFilter(ctx, nb, watchTitle, watchTags)
		if err != nil {
			warn(cmd, "%v", err)
			filter = staleFilter(nb, watchTitle, watchTags)
		}
		notes := filter.Apply(nb.Notes())
		fmt.Fprintln(out, color.HiBlackString("--- %d notes ---", len(notes)))
		printNotes(out, notes)
	}

	show()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			slog.Debug("notebook changed", "event", e.String())
			if err := nb.Reload(ctx); err != nil {
				warn(cmd, "reload kept the previous state: %v", err)
			}
			show()
		}
	}
}

// staleFilter keeps every reference in the selection, standing in an
// unknown one by a tag no note carries.
func staleFilter(nb *quire.Notebook, title string, refs []string) quire.Filter {
	filter := quire.Filter{Title: title}
	for _, ref := range refs {
		tag, err := nb.FindTag(ref)
		if err != nil {
			tag = quire.Tag{ID: ref}
		}
		filter.Tags = append(filter.Tags, tag)
	}
	return filter
}
