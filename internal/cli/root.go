// Package cli wires the aids commands: the live capture TUI, one-shot
// capture control, file analysis, and artifact downloads against a remote
// AI-IDS detection server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Persistent flags shared by all commands.
var (
	configFlag string
	serverFlag string
)

// rootCmd is the base command for aids.
var rootCmd = &cobra.Command{
	Use:   "aids",
	Short: "Terminal client for the AI-IDS network detection server",
	Long: `aids controls a remote AI-IDS capture-and-classification server.

Start a live capture session, watch flows get classified in real time,
and pull down the prediction CSVs - all from the terminal.

Common workflows:
  aids live                  Interactive capture monitor
  aids analyze traffic.pcap  Classify a capture file
  aids status                Check the server and any running capture`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors are printed in their structured
// multi-line form and exit nonzero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default: .aids.yaml discovery)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "detection server base URL (overrides config)")
}
