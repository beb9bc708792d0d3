// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Moves every collection from one backend to another.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/charm"
	"github.com/harperreed/lift/internal/config"
	"github.com/harperreed/lift/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy lift data from one storage backend to another.

BACKENDS:

  sqlite   <data-dir>/lift.db
  badger   <data-dir>/badger/
  charm    Charm KV (synced)

IMPORTANT:

  - The source is left untouched
  - A destination that already holds lift data is NOT overwritten unless
    you pass --force
  - Run with --dry-run first to see what would be copied

USAGE:

  lift migrate --from sqlite --to charm --dry-run
  lift migrate --from sqlite --to charm
  lift settings backend charm`,
	Annotations: map[string]string{skipStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}
		dataDir := cfg.GetDataDir()

		src, err := config.OpenBackend(migrateFrom, dataDir, logger)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer func() { _ = src.Close() }()

		if has, err := storage.HasData(src); err != nil {
			return err
		} else if !has {
			color.Yellow("⚠ No lift data found in %s", migrateFrom)
			return nil
		}

		if migrateTo == config.BackendBadger && !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(dataDir, "badger"))
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("badger directory already exists in %s (use --force to overwrite)", dataDir)
			}
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Printf("Would copy %s -> %s\n", migrateFrom, migrateTo)
			return nil
		}

		dst, err := config.OpenBackend(migrateTo, dataDir, logger)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer func() { _ = dst.Close() }()

		if has, err := storage.HasData(dst); err != nil {
			return err
		} else if has && !migrateForce {
			return fmt.Errorf("%s already holds lift data (use --force to overwrite)", migrateTo)
		}

		// Sync once after the copy instead of after every key.
		kvDst, isCharm := dst.(*charm.Client)
		if isCharm {
			kvDst.SetAutoSync(false)
		}
		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		if isCharm {
			if err := kvDst.Sync(); err != nil {
				color.Yellow("⚠ Migrated locally but sync failed: %v", err)
			}
		}

		color.Green("✓ Migrated %s -> %s", migrateFrom, migrateTo)
		for _, key := range summary.Copied {
			fmt.Printf("  copied  %s\n", key)
		}
		for _, key := range summary.Missing {
			fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint("skipped"), key)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendSQLite, "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendCharm, "destination backend")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite data at the destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
