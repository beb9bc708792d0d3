// ABOUTME: CLI commands for the profile and lift configuration.
// ABOUTME: Shows settings and updates the profile name or storage backend.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/config"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show profile and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := trk.Settings()
		fmt.Printf("Name: %s\n", settings.Name)
		fmt.Printf("Favorites: %d\n", len(trk.Favorites()))
		fmt.Printf("Backend: %s\n", cfg.GetBackend())
		fmt.Printf("Data: %s\n", cfg.GetDataDir())
		fmt.Printf("Config: %s\n", config.GetConfigPath())
		return nil
	},
}

var settingsNameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Set your profile name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		if err := trk.SetName(name); err != nil {
			return fmt.Errorf("failed to set name: %w", err)
		}
		color.Green("✓ Name set to %s", strings.TrimSpace(name))
		return nil
	},
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend <sqlite|badger|charm>",
	Short: "Choose the storage backend",
	Long: `Choose where lift keeps its data.

  sqlite   Single file at <data-dir>/lift.db (default)
  badger   Embedded key-value directory at <data-dir>/badger
  charm    Charm KV, encrypted and synced across devices

Switching does not move data. Use 'lift migrate' first.`,
	Args:        cobra.ExactArgs(1),
	ValidArgs:   config.Backends,
	Annotations: map[string]string{skipStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := strings.ToLower(args[0])
		valid := false
		for _, b := range config.Backends {
			valid = valid || b == backend
		}
		if !valid {
			return fmt.Errorf("unknown backend: %s (use %s)", args[0], strings.Join(config.Backends, ", "))
		}

		// Reload so flag overrides are not persisted.
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		c.Backend = backend
		if err := c.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ Backend set to %s", backend)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsNameCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	rootCmd.AddCommand(settingsCmd)
}
