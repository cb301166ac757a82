package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
)

var (
	verbose    bool
	dirFlag    string
	adapter    string
	configFile string
	format     string
	readOnly   bool
	logFormat  string

	// Resolved by the root PersistentPreRunE.
	notebookDir string
	fileConfig  *quire.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quire",
	Short: "A small notebook of tagged markdown notes",
	Long: `Quire keeps markdown notes and the tags attached to them.
Every change is written through to the notebook store (.quire/ by default)
before the command returns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir()
		if err != nil {
			return err
		}
		cfg, err := loadConfig(dir)
		if err != nil {
			return err
		}
		notebookDir, fileConfig = dir, cfg

		logger, err := newLogger(cmd.ErrOrStderr(), logLevel(cfg), logFormatFor(cmd, cfg))
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("Error", err)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&dirFlag, "dir", "", "Notebook directory (default: discovered root or current directory)")
	flags.StringVar(&adapter, "adapter", "fs", "Storage adapter: fs, sqlite, s3 or memory")
	flags.StringVar(&configFile, "config", "", "Config file (default: quire.yaml or quire.toml in the notebook root)")
	flags.StringVar(&format, "format", "json", "Record encoding: json or yaml")
	flags.BoolVar(&readOnly, "read-only", false, "Open the notebook without writing to it")
	flags.StringVar(&logFormat, "log-format", "color", "Log output: color, text or json")
}

// resolveDir returns --dir, else the notebook root above the working
// directory, else the working directory itself.
func resolveDir() (string, error) {
	if dirFlag != "" {
		return dirFlag, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	root, err := quire.FindRoot(cwd)
	if errors.Is(err, quire.ErrRootNotFound) {
		return cwd, nil
	}
	if err != nil {
		return "", err
	}
	return root, nil
}

func loadConfig(dir string) (*quire.Config, error) {
	path := configFile
	if path == "" {
		found, ok := quire.FindConfig(dir)
		if !ok {
			return &quire.Config{}, nil
		}
		path = found
	}
	return quire.LoadConfig(path)
}

func logLevel(cfg *quire.Config) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logFormatFor(cmd *cobra.Command, cfg *quire.Config) string {
	if !cmd.Flags().Changed("log-format") && cfg.Log.Format != "" {
		return cfg.Log.Format
	}
	return logFormat
}
