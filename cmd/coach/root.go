// ABOUTME: Root Cobra command for coach CLI.
// ABOUTME: Opens config, store, and offline queue via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/buffer"
	"github.com/harperreed/coach/internal/config"
	"github.com/harperreed/coach/internal/service"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	svc       *service.Service
	athleteID uuid.UUID
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Live training adaptation for strength coaching",
	Long: `Coach is a CLI for running the live training-adaptation loop:
morning readiness scoring, in-session load auto-regulation, and an
offline-first set log that syncs when connectivity returns.

DAILY FLOW:

  $ coach snapshot add --hrv 72 --sleep 450 --soreness 3 --jump 41
  $ coach readiness                     # Morning readiness score (0-100)
  $ coach log "Back Squat" 140 5        # Log a set (queued locally)
  $ coach sync                          # Push queued sets to the store

LIVE SESSION:

  $ coach sample velocity_loss 0.18 --session <id>   # Feed a live metric
  $ coach adjustments --session <id>                 # Review what fired
  $ coach watch --session <id>                       # Interactive live loop

PLANS:

  $ coach plan seed                     # Create a starter program
  $ coach plan show                     # Inspect target loads
  $ coach plan set program.json         # Replace the active program

MCP INTEGRATION:

  Run 'coach mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "coach": { "command": "coach", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  The authoritative store is SQLite at ~/.local/share/coach/coach.db.
  Queued sets live in a Badger queue at ~/.local/share/coach/queue and
  survive restarts; if the queue directory cannot be opened the CLI
  falls back to an in-memory queue and warns.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		athleteID, err = cfg.GetAthleteID()
		if err != nil {
			return fmt.Errorf("failed to resolve athlete id: %w", err)
		}

		repo, err := cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}

		queue, qErr := buffer.OpenOrDegraded(cfg.QueueDir())
		if qErr != nil {
			color.Yellow("! offline queue unavailable (%v); queued sets will not survive restarts", qErr)
		}

		svc = service.New(repo, queue)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if svc != nil {
			return svc.Close()
		}
		return nil
	},
}
