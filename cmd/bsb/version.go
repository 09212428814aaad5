package main

import (
	"fmt"
	"strings"

	"github.com/fdurupinar/bioagents"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bsb",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bsb version %s\n", strings.TrimSpace(bioagents.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
