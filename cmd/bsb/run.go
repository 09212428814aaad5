package main

import (
	"fmt"
	"os"

	"github.com/fdurupinar/bioagents/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the message bus and serve display requests",
	Long: `Connects to the message bus, registers as a module, and runs until interrupted
(SIGINT/SIGTERM) or until the bus closes the connection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.LogLevel, _ = cmd.Flags().GetString("log-level")
		opts.Host, _ = cmd.Flags().GetString("host")
		opts.Port, _ = cmd.Flags().GetInt("port")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		opts.Cache, _ = cmd.Flags().GetString("cache")
		opts.RelaySpoken, _ = cmd.Flags().GetBool("relay-spoken")
		opts.StartConversation, _ = cmd.Flags().GetBool("start-conversation")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err := cli.Execute(ctx, opts)
		if sig := ctx.Signal(); sig != nil {
			fmt.Fprintf(os.Stderr, "bsb stopped by %s\n", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("host", "", "Message bus host (default localhost)")
	runCmd.Flags().IntP("port", "p", 0, "Message bus port (default 6200)")
	runCmd.Flags().StringP("format", "f", "", "Diagram format: sbgn or mermaid")
	runCmd.Flags().String("metrics-addr", "", "Serve /health, /info and /metrics on this address")
	runCmd.Flags().String("cache", "", "Diagram cache backend: none, memory, file or redis")
	runCmd.Flags().Bool("relay-spoken", false, "Send the spoken acknowledgment back to the bus")
	runCmd.Flags().Bool("start-conversation", false, "Send start-conversation after the handshake")
}
