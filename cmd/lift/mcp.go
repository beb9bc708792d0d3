// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/lift/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to plan, run, and review your workouts
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "lift": {
        "command": "lift",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_exercises, add_exercise, archive_exercise, toggle_favorite
  list_templates, save_template, delete_template
  start_workout, workout_status, add_set, next_exercise, choose_exercise,
  finish_workout, exit_workout
  log_session, list_history, get_session, delete_session
  get_pr, get_progress

AVAILABLE RESOURCES:

  lift://recent      Last 10 sessions
  lift://today       Today's sessions
  lift://summary     Totals, favorite PRs, templates, live workout
  lift://exercises   Catalog by muscle group`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(trk, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
