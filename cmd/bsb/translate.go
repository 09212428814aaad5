package main

import (
	"os"

	"github.com/fdurupinar/bioagents/internal/cli"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [file]",
	Short: "Render a JSON statement collection as a diagram",
	Long:  `Reads statements from the file (or stdin) and prints the diagram the bridge would send.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		in := os.Stdin
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return cli.Translate(cmd.Context(), in, cmd.OutOrStdout(), format)
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().StringP("format", "f", "sbgn", "Diagram format: sbgn or mermaid")
}
