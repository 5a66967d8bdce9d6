// ABOUTME: MCP tool implementations for the coach training core.
// ABOUTME: Exposes readiness, set logging, queue sync, and live adjustment tools.
package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// get_readiness
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_readiness",
		Description: "Get today's 0-100 readiness score with its biometric inputs",
	}, s.handleGetReadiness)

	// add_snapshot
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_snapshot",
		Description: "Record a day's biometric snapshot (hrv, sleep, soreness, jump height)",
	}, s.handleAddSnapshot)

	// log_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Log a workout set to the offline queue (synced to the store later)",
	}, s.handleLogSet)

	// list_pending
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_pending",
		Description: "List workout sets queued locally and not yet synced",
	}, s.handleListPending)

	// sync_pending
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sync_pending",
		Description: "Flush the offline queue to the authoritative store",
	}, s.handleSyncPending)

	// adjust_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "adjust_set",
		Description: "Evaluate a live sample (velocity_loss or hr_drift) and apply a load adjustment if it triggers",
	}, s.handleAdjustSet)

	// list_adjustments
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_adjustments",
		Description: "List recent load adjustments, optionally scoped to a session",
	}, s.handleListAdjustments)

	// get_plan
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_plan",
		Description: "Get an athlete's active training plan",
	}, s.handleGetPlan)
}

// Tool input/output types

type getReadinessInput struct {
	AthleteID string `json:"athlete_id,omitempty" jsonschema:"description=Athlete UUID, defaults to the configured athlete"`
	Date      string `json:"date,omitempty" jsonschema:"description=Day (YYYY-MM-DD), defaults to today"`
}

type addSnapshotInput struct {
	AthleteID    string   `json:"athlete_id,omitempty" jsonschema:"description=Athlete UUID, defaults to the configured athlete"`
	Date         string   `json:"date" jsonschema:"description=Day (YYYY-MM-DD),required"`
	HRVRMSSD     *float64 `json:"hrv_rmssd,omitempty" jsonschema:"description=HRV RMSSD in ms"`
	SleepMinutes *int     `json:"sleep_minutes,omitempty" jsonschema:"description=Total sleep in minutes"`
	Soreness     *int     `json:"soreness_score,omitempty" jsonschema:"description=Soreness 0 (none) to 10 (worst)"`
	JumpHeightCM *float64 `json:"jump_height_cm,omitempty" jsonschema:"description=Jump height in cm"`
}

type logSetInput struct {
	SessionID string   `json:"session_id" jsonschema:"description=Training session UUID,required"`
	Exercise  string   `json:"exercise" jsonschema:"description=Exercise name,required"`
	Weight    float64  `json:"weight" jsonschema:"description=Weight used,required"`
	Reps      int      `json:"reps" jsonschema:"description=Repetitions completed,required"`
	RPE       *float64 `json:"rpe,omitempty" jsonschema:"description=Rating of perceived exertion 0-10"`
	Tempo     string   `json:"tempo,omitempty" jsonschema:"description=Tempo notation"`
	Velocity  *float64 `json:"velocity,omitempty" jsonschema:"description=Mean concentric velocity in m/s"`
}

type adjustSetInput struct {
	SessionID string  `json:"session_id" jsonschema:"description=Training session UUID,required"`
	AthleteID string  `json:"athlete_id,omitempty" jsonschema:"description=Athlete UUID, defaults to the configured athlete"`
	Metric    string  `json:"metric" jsonschema:"description=velocity_loss or hr_drift,required"`
	Value     float64 `json:"value" jsonschema:"description=Observed fractional value (0.18 = 18%),required"`
}

type listAdjustmentsInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Filter by session UUID"`
	Limit     int    `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type getPlanInput struct {
	AthleteID string `json:"athlete_id,omitempty" jsonschema:"description=Athlete UUID, defaults to the configured athlete"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleGetReadiness(ctx context.Context, req *mcp.CallToolRequest, input getReadinessInput) (*mcp.CallToolResult, any, error) {
	athleteID, err := s.athleteOrDefault(input.AthleteID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid athlete id: %w", err)
	}

	if input.Date != "" {
		r, err := s.svc.GetReadinessOn(athleteID, input.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to compute readiness: %w", err)
		}
		return nil, r, nil
	}

	r, err := s.svc.GetReadiness(athleteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute readiness: %w", err)
	}
	return nil, r, nil
}

func (s *Server) handleAddSnapshot(ctx context.Context, req *mcp.CallToolRequest, input addSnapshotInput) (*mcp.CallToolResult, simpleOutput, error) {
	athleteID, err := s.athleteOrDefault(input.AthleteID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid athlete id: %w", err)
	}

	snap := models.NewMetricSnapshot(athleteID, input.Date)
	if input.HRVRMSSD != nil {
		snap.WithHRV(*input.HRVRMSSD)
	}
	if input.SleepMinutes != nil {
		snap.WithSleep(*input.SleepMinutes)
	}
	if input.Soreness != nil {
		snap.WithSoreness(*input.Soreness)
	}
	if input.JumpHeightCM != nil {
		snap.WithJumpHeight(*input.JumpHeightCM)
	}

	if err := s.svc.PutSnapshot(snap); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to record snapshot: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded snapshot for %s", input.Date),
	}, nil
}

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, any, error) {
	sessionID, err := uuid.Parse(input.SessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid session id: %w", err)
	}

	set := models.NewPendingSet(sessionID, input.Exercise, input.Weight, input.Reps)
	if input.RPE != nil {
		set.WithRPE(*input.RPE)
	}
	if input.Tempo != "" {
		set.WithTempo(input.Tempo)
	}
	if input.Velocity != nil {
		set.WithVelocity(*input.Velocity)
	}

	if err := s.svc.LogSet(set); err != nil {
		return nil, nil, fmt.Errorf("failed to log set: %w", err)
	}

	msg := fmt.Sprintf("Queued %s %gx%d (ID: %s)", input.Exercise, input.Weight, input.Reps, set.ID.String()[:8])
	if s.svc.QueueDegraded() {
		msg += " - WARNING: queue is not durable, sync before exiting"
	}
	return nil, map[string]any{"id": set.ID.String(), "message": msg}, nil
}

func (s *Server) handleListPending(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	pending, err := s.svc.Pending()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pending sets: %w", err)
	}
	if len(pending) == 0 {
		return nil, map[string]any{"message": "No pending sets."}, nil
	}
	return nil, pending, nil
}

func (s *Server) handleSyncPending(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	flushed, err := s.svc.SyncPending(ctx)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("sync stopped after %d sets: %w", flushed, err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Synced %d sets", flushed),
	}, nil
}

func (s *Server) handleAdjustSet(ctx context.Context, req *mcp.CallToolRequest, input adjustSetInput) (*mcp.CallToolResult, any, error) {
	sessionID, err := uuid.Parse(input.SessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid session id: %w", err)
	}
	athleteID, err := s.athleteOrDefault(input.AthleteID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid athlete id: %w", err)
	}

	res, err := s.svc.AdjustSet(ctx, sessionID, athleteID, input.Metric, input.Value)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to evaluate sample: %w", err)
	}
	return nil, res, nil
}

func (s *Server) handleListAdjustments(ctx context.Context, req *mcp.CallToolRequest, input listAdjustmentsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var sessionID *uuid.UUID
	if input.SessionID != "" {
		id, err := uuid.Parse(input.SessionID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid session id: %w", err)
		}
		sessionID = &id
	}

	events, err := s.svc.ListAdjustments(sessionID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	if len(events) == 0 {
		return nil, map[string]any{"message": "No adjustments found."}, nil
	}
	return nil, events, nil
}

func (s *Server) handleGetPlan(ctx context.Context, req *mcp.CallToolRequest, input getPlanInput) (*mcp.CallToolResult, any, error) {
	athleteID, err := s.athleteOrDefault(input.AthleteID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid athlete id: %w", err)
	}

	p, err := s.svc.Repo().GetPlan(ctx, athleteID)
	if err != nil {
		return nil, nil, fmt.Errorf("plan not found for %s", athleteID)
	}
	return nil, p, nil
}
