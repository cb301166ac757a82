package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a notebook",
	Long: `Initialize a new notebook in --dir or the current directory.
This creates the store (.quire/ for the fs and sqlite adapters) and a
starter quire.yaml unless a config file already exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dirFlag
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			dir = cwd
		}
		if readOnly {
			return fmt.Errorf("cannot initialize a notebook in read-only mode")
		}

		opts := notebookOptions(cmd)
		store, err := quire.Init(cmd.Context(), dir, opts...)
		if err != nil {
			return fmt.Errorf("initializing notebook: %w", err)
		}
		if c, ok := store.(io.Closer); ok {
			_ = c.Close()
		}

		cfg := quire.Config{
			Adapter: effective(cmd, "adapter", adapter, fileConfig.Adapter),
			Format:  effective(cmd, "format", format, fileConfig.Format),
		}
		path, err := quire.WriteDefaultConfig(dir, cfg)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized empty Quire notebook in", dir)
		fmt.Fprintln(cmd.OutOrStdout(), "Config:", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// effective returns the flag value when it was set or nothing came from the
// config file.
func effective(cmd *cobra.Command, name, flagValue, fileValue string) string {
	if cmd.Flags().Changed(name) || fileValue == "" {
		return flagValue
	}
	return fileValue
}
