// Picker is a terminal item picker with a search field and multi-select.
//
// Items come from a YAML catalog (or a built-in demo list). The same picker
// state can be driven remotely: `picker serve` hosts one session per
// WebSocket connection and `picker remote` talks to it.
//
// Usage:
//
//	picker [command] [flags]
//
// Running without arguments opens the interactive picker.
// See 'picker --help' for available commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/catalog"
	"github.com/muurk/picker/internal/config"
	"github.com/muurk/picker/internal/logging"
	"github.com/muurk/picker/internal/version"
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
	catalogPath string
	logLevel    string
	logFile     string
	logJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "picker",
	Short: "Searchable multi-select item picker",
	Long: `A terminal picker for choosing items from a list.

Type to filter the list by substring, move with the arrow keys, and toggle
items with space. Confirm with ctrl+s to print the selected names.

If no command is specified, the interactive picker will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the picker when no subcommand provided
		return runPick(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a YAML item catalog (default: preferences, then built-in demo)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Use JSON log encoding")

	rootCmd.AddCommand(versionCmd)
}

// interactiveCommands draw on the terminal, so their logs go to a file.
var interactiveCommands = map[string]bool{
	"picker": true,
	"pick":   true,
}

func setupLogging(cmd *cobra.Command, args []string) error {
	output := logFile
	if output == "" && interactiveCommands[cmd.Name()] {
		if dir, err := config.GetConfigDir(); err == nil {
			if err := os.MkdirAll(dir, 0755); err == nil {
				output = filepath.Join(dir, "picker.log")
			}
		}
	}

	if err := logging.InitializeWithOptions(logging.Options{
		Level:      logLevel,
		OutputPath: output,
		JSON:       logJSON,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	logging.Debug("Starting picker",
		zap.String("command", cmd.CommandPath()),
		zap.String("version", version.Full()),
	)
	return nil
}

// preferences returns the saved preferences, or defaults if the registry
// cannot be read.
func preferences() *config.Preferences {
	reg, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("Failed to load preferences, using defaults", zap.Error(err))
		return config.DefaultPreferences()
	}
	return reg.Preferences
}

// loadCatalog resolves the catalog from --catalog, then preferences, then the
// built-in demo list.
func loadCatalog(prefs *config.Preferences) (*catalog.Catalog, error) {
	path := catalogPath
	if path == "" && prefs != nil {
		path = prefs.CatalogPath
	}
	if path == "" {
		return catalog.Default(), nil
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(cat.Duplicates) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: duplicate item names share one selection flag: %v\n", cat.Duplicates)
	}
	return cat, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("picker %s\n", version.Detailed())
	},
}
