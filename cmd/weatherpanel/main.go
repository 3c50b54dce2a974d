// Weatherpanel drives a two-button weather display.
//
// The panel boots to a menu with three entries: a live forecast for the
// selected city, yesterday's observations from the city's weather station,
// and a settings page for choosing the city. Button 1 moves, button 2
// selects, and holding both returns to the menu.
//
// Without real hardware the panel runs as a terminal simulator; with
// --remote it is also served over a websocket so other machines can watch
// and press buttons. On a Raspberry Pi the gpio command reads physical
// buttons through periph.io.
//
// Usage:
//
//	weatherpanel [command] [flags]
//
// Running without arguments launches the simulator.
// See 'weatherpanel --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/weatherpanel/internal/logging"
	"github.com/muurk/weatherpanel/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	statePath  string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "weatherpanel",
	Short: "Two-button weather display",
	Long: `A two-button weather display for Swedish cities.

Shows the current forecast and yesterday's station observations on a small
character panel. Without hardware the panel runs as a terminal simulator.

If no command is specified, the simulator will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the simulator when no subcommand provided
		return runSimulator(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the user config directory)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "State file holding the selected city (default next to the config file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); empty disables logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stdout")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "weatherpanel %s\n", version.Full())
	},
}
