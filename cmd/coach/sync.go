// ABOUTME: CLI command for draining the offline queue into the store.
// ABOUTME: A failure mid-drain keeps the remainder queued for retry.
package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push queued sets to the authoritative store",
	Long: `Drain the offline queue into the authoritative store, oldest set
first. If a write fails the drain stops; everything not yet written
stays queued, and re-running sync picks up from the failed set. A set
is removed from the queue only after the store confirms the write, so
a crash between write and confirmation results in a retry, never a
lost set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flushed, err := svc.SyncPending(context.Background())
		if err != nil {
			if flushed > 0 {
				color.Yellow("! synced %d set(s) before failing", flushed)
			}
			return fmt.Errorf("sync stopped: %w", err)
		}

		if flushed == 0 {
			fmt.Println("Nothing to sync.")
			return nil
		}
		color.Green("✓ Synced %d set(s)", flushed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
