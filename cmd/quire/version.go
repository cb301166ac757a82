package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Quire",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quire version %s\n", strings.TrimSpace(quire.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
