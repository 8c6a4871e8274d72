// Legform is a terminal form for planning a multi-leg flight itinerary.
//
// It runs an interactive form where each leg has a departure location,
// arrival location, departure date and passenger count, validates the
// itinerary as it is edited, and shows the submitted legs in a summary.
// Itinerary files can also be validated non-interactively.
//
// Usage:
//
//	legform [command] [flags]
//
// Running without arguments launches the interactive form.
// See 'legform --help' for available commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/legform/internal/logging"
	"github.com/muurk/legform/internal/version"
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
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "legform",
	Short: "Multi-leg flight itinerary form",
	Long: `An interactive terminal form for planning a multi-leg flight itinerary.

Each itinerary has between 2 and 5 legs. Every leg needs a departure location,
an arrival location different from it, a departure date and a passenger count.
Errors are shown under a field once it has been visited, and all of them are
shown when you submit.

If no command is specified, the interactive form will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Logging is silent unless asked for, the form owns the terminal
		if logLevel != "" {
			return logging.Initialize(logLevel)
		}
		return logging.InitializeFromEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the form when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logs go to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default is the user config directory)")

	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version information as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSON {
			data, err := json.MarshalIndent(version.Get(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "legform %s (commit: %s)\n", version.Version, version.Commit)
		return nil
	},
}
