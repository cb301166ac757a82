package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
)

// notebookOptions layers the config file under the command-line flags.
func notebookOptions(cmd *cobra.Command) []quire.Option {
	var opts []quire.Option
	if fileConfig != nil {
		opts = append(opts, fileConfig.Options()...)
	}

	flags := cmd.Flags()
	if flags.Changed("adapter") {
		opts = append(opts, quire.WithAdapter(adapter))
	}
	if flags.Changed("format") {
		opts = append(opts, quire.WithFormat(format))
	}
	if readOnly {
		opts = append(opts, quire.WithReadOnly(true))
	}
	return append(opts, quire.WithLogger(slog.Default()))
}

// withNotebook opens the notebook of the resolved root, runs fn and closes
// the store. The notebook must already exist, except in memory.
func withNotebook(cmd *cobra.Command, fn func(ctx context.Context, nb *quire.Notebook, store quire.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := append(notebookOptions(cmd), quire.WithMustExist(true))
	nb, store, err := quire.New(ctx, notebookDir, opts...)
	if err != nil {
		return fmt.Errorf("opening notebook in %s (run 'quire init' first?): %w", notebookDir, err)
	}
	if c, ok := store.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close store", "error", err)
			}
		}()
	}

	for _, err := range nb.LoadErrors() {
		warn(cmd, "a collection could not be loaded and starts empty: %v", err)
	}
	return fn(ctx, nb, store)
}

// checkSave turns a failed write after a successful in-memory change into a
// warning. Read-only stores and other errors are returned.
func checkSave(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, quire.ErrReadOnly) {
		return fmt.Errorf("notebook is read-only: %w", err)
	}
	if errors.Is(err, quire.ErrPersistence) {
		warn(cmd, "change applied but not saved: %v", err)
		return nil
	}
	return err
}

func warn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("warning: "+format, args...))
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
