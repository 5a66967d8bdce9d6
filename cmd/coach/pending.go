// ABOUTME: CLI commands for inspecting and clearing the offline queue.
// ABOUTME: Clearing discards unsynced sets and requires --force.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var pendingForce bool

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List sets waiting to sync",
	Long: `List the sets queued locally in the order they will be synced.

Each line shows: ID  LOGGED-AT  SESSION  EXERCISE  WEIGHTxREPS`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pending, err := svc.Pending()
		if err != nil {
			return fmt.Errorf("failed to list pending sets: %w", err)
		}

		if len(pending) == 0 {
			fmt.Println("No pending sets.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range pending {
			fmt.Printf("%s %s %s %s %gx%d\n",
				faint.Sprint(shortID(p.ID)),
				faint.Sprint(p.CreatedAt.Format("2006-01-02 15:04")),
				faint.Sprint(shortID(p.SessionID)),
				padRight(p.Exercise, 20),
				p.Weight, p.Reps)
		}
		fmt.Printf("\n%d set(s) pending\n", len(pending))
		if svc.QueueDegraded() {
			color.Yellow("! queue is in-memory only; these do not survive exit")
		}

		return nil
	},
}

var pendingClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard all queued sets without syncing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !pendingForce {
			return fmt.Errorf("this discards unsynced sets permanently; re-run with --force")
		}
		dropped, err := svc.ClearPending()
		if err != nil {
			return fmt.Errorf("failed to clear queue: %w", err)
		}
		color.Green("✓ Discarded %d queued set(s)", dropped)
		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	pendingClearCmd.Flags().BoolVar(&pendingForce, "force", false, "confirm discarding unsynced sets")
	pendingCmd.AddCommand(pendingClearCmd)
	rootCmd.AddCommand(pendingCmd)
}
