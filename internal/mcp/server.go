// ABOUTME: MCP server setup for the lift training tracker.
// ABOUTME: Wraps the MCP server around a shared tracker store.
package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	tracker   *tracker.Tracker
	logger    *log.Logger
}

// NewServer creates a new MCP server over the given tracker.
func NewServer(t *tracker.Tracker, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "lift",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   t,
		logger:    logger.WithPrefix("mcp"),
	}

	s.registerTools()
	s.registerWorkoutTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debug("serving on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
