// ABOUTME: CLI command for logging a completed set.
// ABOUTME: Writes to the offline queue; the store sees it on sync.
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
	"github.com/spf13/cobra"
)

var (
	logSession  string
	logRPE      float64
	logTempo    string
	logVelocity float64
	logSync     bool
)

var logCmd = &cobra.Command{
	Use:   "log <exercise> <weight> <reps>",
	Short: "Log a completed set",
	Long: `Log a completed set. The set is appended to the local offline queue
and reported as saved immediately; 'coach sync' (or --sync) pushes
queued sets to the authoritative store in the order they were logged.

EXAMPLES:

  coach log "Back Squat" 140 5
  coach log "Bench Press" 100 3 --rpe 8.5 --tempo 31X0
  coach log "Trap Bar Jump" 60 3 --velocity 0.92 --session 7d9e...
  coach log "Deadlift" 180 2 --sync`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		exercise := args[0]

		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[1])
		}
		reps, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid rep count: %s", args[2])
		}

		sessionID, err := resolveSession(logSession)
		if err != nil {
			return err
		}

		set := models.NewPendingSet(sessionID, exercise, weight, reps)
		if cmd.Flags().Changed("rpe") {
			set.WithRPE(logRPE)
		}
		if logTempo != "" {
			set.WithTempo(logTempo)
		}
		if cmd.Flags().Changed("velocity") {
			set.WithVelocity(logVelocity)
		}

		if err := svc.LogSet(set); err != nil {
			return fmt.Errorf("failed to log set: %w", err)
		}

		color.Green("✓ Logged %s %gx%d", exercise, weight, reps)
		fmt.Printf("  %s session %s\n",
			color.New(color.Faint).Sprint(shortID(set.ID)),
			color.New(color.Faint).Sprint(shortID(sessionID)))
		if svc.QueueDegraded() {
			color.Yellow("! queue is in-memory only; sync before exiting")
		}

		if logSync || cfg.AutoSync {
			flushed, err := svc.SyncPending(context.Background())
			if err != nil {
				return fmt.Errorf("synced %d set(s), then: %w", flushed, err)
			}
			fmt.Printf("  synced %d set(s)\n", flushed)
		}

		return nil
	},
}

// resolveSession parses a session id flag, minting a fresh session
// when none was given.
func resolveSession(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id: %s", s)
	}
	return id, nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func init() {
	logCmd.Flags().StringVarP(&logSession, "session", "s", "", "training session id (default: new session)")
	logCmd.Flags().Float64Var(&logRPE, "rpe", 0, "rating of perceived exertion 0-10")
	logCmd.Flags().StringVar(&logTempo, "tempo", "", "tempo notation, e.g. 31X0")
	logCmd.Flags().Float64Var(&logVelocity, "velocity", 0, "mean concentric velocity in m/s")
	logCmd.Flags().BoolVar(&logSync, "sync", false, "sync the queue after logging")
	rootCmd.AddCommand(logCmd)
}
