package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Mehak261124/AI-IDS/internal/errors"
)

// Command-specific flags
var (
	liveIntervalFlag string
	statusJSONFlag   bool
	analyzeJSONFlag  bool
	downloadDirFlag  string
	initForceFlag    bool
	initServerFlag   string
)

// liveCmd starts the interactive capture monitor.
var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Interactive live capture monitor",
	Long: `Start the interactive monitor for live network capture.

Controls the server's capture session and shows classified flows as they
arrive. When a session ends, the results view summarizes the flows and
offers the prediction CSV for download.

Keyboard shortcuts:
  s           Start a capture session
  x           Stop the running session
  r           Refresh status once
  d           Download the results CSV (results view)
  b / Esc     Back to monitoring from results
  q / Ctrl+C  Quit

Examples:
  aids live
  aids live --interval 2s
  aids live --server http://sensor:8000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return liveCommand(liveIntervalFlag)
	},
}

// startCmd starts a capture session without entering the TUI.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a live capture session",
	Long: `Ask the server to begin capturing and classifying traffic.

A scriptable alternative to pressing 's' in 'aids live'. The session runs
on the server until stopped; watch it with 'aids live' or 'aids status'.

Examples:
  aids start
  aids start && sleep 60 && aids stop`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startCommand()
	},
}

// stopCmd stops the running capture session.
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the live capture session",
	Long: `Ask the server to end the running capture session.

The server finishes classifying the last capture window after
acknowledging; give it a moment before downloading results.

Examples:
  aids stop
  aids stop && aids download`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopCommand()
	},
}

// statusCmd prints the server and capture state once.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server health and capture status",
	Long: `Check the detection server and print the current capture state.

Shows reachability, whether a capture is running, flow counts by label,
and the last processed capture window.

Examples:
  aids status
  aids status --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand()
	},
}

// analyzeCmd uploads a capture file for classification.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Classify a capture file (.pcap, .pcapng, .csv)",
	Long: `Upload a capture file to the server for classification.

Prints the label summary, detected attack types, and a preview of the
classified flows. The full results CSV stays on the server; fetch it with
'aids download <name>' using the artifact name printed at the end.

Examples:
  aids analyze traffic.pcap
  aids analyze flows.csv --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyzeCommand(args[0])
	},
}

// downloadCmd fetches a results artifact.
var downloadCmd = &cobra.Command{
	Use:   "download [name]",
	Short: "Download a results CSV from the server",
	Long: `Download a prediction CSV from the server.

With no argument, fetches the live session results
(live_predictions.csv). Pass a name to fetch an analyze artifact instead.

Examples:
  aids download
  aids download predictions_traffic.csv
  aids download --dir ~/captures`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return downloadCommand(name, downloadDirFlag)
	},
}

// initCmd creates a .aids.yaml configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .aids.yaml configuration",
	Long: `Create an aids configuration file in the current directory.

Prompts for the server address and polling cadence, checks the server is
reachable, and writes .aids.yaml.

Examples:
  aids init
  aids init --server http://sensor:8000 --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initServerFlag, initForceFlag)
	},
}

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for aids.

Examples:
  # Bash
  aids completion bash > /etc/bash_completion.d/aids

  # Zsh
  aids completion zsh > "${fpath[1]}/_aids"

  # Fish
  aids completion fish > ~/.config/fish/completions/aids.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrInput,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// live command flags
	liveCmd.Flags().StringVar(&liveIntervalFlag, "interval", "", "status poll interval (e.g., 2s, 5s; overrides config)")

	// status command flags
	statusCmd.Flags().BoolVar(&statusJSONFlag, "json", false, "output in JSON format")

	// analyze command flags
	analyzeCmd.Flags().BoolVar(&analyzeJSONFlag, "json", false, "output in JSON format")

	// download command flags
	downloadCmd.Flags().StringVar(&downloadDirFlag, "dir", "", "target directory (overrides config download_dir)")

	// init command flags
	initCmd.Flags().StringVar(&initServerFlag, "server", "", "pre-specify the server URL (skips the prompt)")
	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
