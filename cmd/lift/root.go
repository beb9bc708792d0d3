// ABOUTME: Root Cobra command for lift CLI.
// ABOUTME: Opens the configured store and tracker via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/config"
	"github.com/harperreed/lift/internal/logging"
	"github.com/harperreed/lift/internal/storage"
	"github.com/harperreed/lift/internal/tracker"
	"github.com/spf13/cobra"
)

// skipStoreAnnotation marks commands that manage storage themselves.
const skipStoreAnnotation = "lift/skip-store"

var (
	store  storage.BlobStore
	trk    *tracker.Tracker
	logger *log.Logger
	cfg    *config.Config

	newOpts = func() tracker.Options {
		return tracker.Options{Logger: logger}
	}

	rootDebug   bool
	rootBackend string
	rootDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "lift",
	Short: "Resistance training tracker",
	Long: `Lift is a CLI tool for planning and logging strength workouts.

WHAT IT TRACKS:

  Exercises   A catalog of movements by muscle group and equipment
  Templates   Up to 10 reusable workout plans
  Sessions    Completed workouts with every set (reps x weight)
  Records     Personal records and progress per exercise

QUICK START:

  $ lift template create Push ex1 ex4     # Plan a workout
  $ lift workout start Push               # Train it, logging sets live
  $ lift workout start                    # Or go freestyle
  $ lift history                          # See completed sessions
  $ lift pr ex1                           # Heaviest bench set so far
  $ lift progress ex1 --metric volume     # Volume per session

STORAGE:

  Data lives in ~/.local/share/lift. Choose a backend in
  ~/.config/lift/config.json ("sqlite", "badger", or "charm") or per
  command with --backend. The charm backend syncs across devices.

MCP INTEGRATION:

  Run 'lift mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "lift": { "command": "lift", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		// Skip store init for commands that don't need it
		if cmd.Name() == "help" || cmd.Annotations[skipStoreAnnotation] == "true" {
			return nil
		}

		var err error
		store, err = cfg.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		trk = tracker.Open(store, newOpts())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// loadConfig reads the config file, applies flag overrides, and builds the logger.
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if rootBackend != "" {
		cfg.Backend = rootBackend
	}
	if rootDataDir != "" {
		cfg.DataDir = rootDataDir
	}

	if rootDebug {
		logger = logging.New(os.Stderr, true)
	} else {
		logger = logging.WithLevel(os.Stderr, cfg.LogLevel)
	}
	return nil
}

func closeStore() error {
	trk = nil
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// Execute runs the root command. The store is closed even when a command fails.
func Execute() error {
	defer func() { _ = closeStore() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "enable debug logging (also LIFT_DEBUG=1)")
	rootCmd.PersistentFlags().StringVar(&rootBackend, "backend", "", "storage backend: sqlite, badger, or charm")
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "data directory (default ~/.local/share/lift)")
}
