// ABOUTME: MCP resource implementations for the coach training core.
// ABOUTME: Provides coach://readiness, coach://pending, and coach://adjustments.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// coach://readiness - today's score for the configured athlete
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "coach://readiness",
		Name:        "Today's Readiness",
		Description: "Today's readiness score and biometric inputs for the configured athlete",
		MIMEType:    "application/json",
	}, s.handleReadinessResource)

	// coach://pending - offline queue snapshot
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "coach://pending",
		Name:        "Pending Sets",
		Description: "Workout sets queued locally, awaiting sync",
		MIMEType:    "application/json",
	}, s.handlePendingResource)

	// coach://adjustments - recent load adjustments
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "coach://adjustments",
		Name:        "Recent Adjustments",
		Description: "Last 10 load adjustments across all sessions",
		MIMEType:    "application/json",
	}, s.handleAdjustmentsResource)
}

// Resource handlers

func (s *Server) handleReadinessResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	r, err := s.svc.GetReadiness(s.athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute readiness: %w", err)
	}
	return jsonResource("coach://readiness", r)
}

func (s *Server) handlePendingResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	pending, err := s.svc.Pending()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending sets: %w", err)
	}
	result := map[string]interface{}{
		"count":   len(pending),
		"pending": pending,
	}
	return jsonResource("coach://pending", result)
}

func (s *Server) handleAdjustmentsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	events, err := s.svc.ListAdjustments(nil, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	return jsonResource("coach://adjustments", events)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
