// ABOUTME: MCP server setup for the coach training core.
// ABOUTME: Wraps MCP server with the service facade and a default athlete.
package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with service access.
type Server struct {
	mcpServer *mcp.Server
	svc       *service.Service
	athleteID uuid.UUID
}

// NewServer creates a new MCP server over the given service. The
// athlete id is used by tools and resources when the caller does not
// specify one.
func NewServer(svc *service.Service, athleteID uuid.UUID) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "coach",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		athleteID: athleteID,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// athleteOrDefault resolves an optional athlete id string.
func (s *Server) athleteOrDefault(id string) (uuid.UUID, error) {
	if id == "" {
		return s.athleteID, nil
	}
	return uuid.Parse(id)
}
