// ABOUTME: CLI command for recording a daily biometric snapshot.
// ABOUTME: Snapshots are immutable per athlete per day.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/models"
	"github.com/spf13/cobra"
)

var (
	snapshotDate     string
	snapshotHRV      float64
	snapshotSleep    int
	snapshotSoreness int
	snapshotJump     float64
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage daily biometric snapshots",
}

var snapshotAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record today's biometric snapshot",
	Long: `Record the day's biometric snapshot for the configured athlete.
Every field is optional; omitted fields score pessimistically in the
readiness calculation. A day's snapshot is write-once: re-running the
command for the same day is an error.

EXAMPLES:

  coach snapshot add --hrv 72 --sleep 450 --soreness 3 --jump 41
  coach snapshot add --hrv 55 --date 2026-08-29`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := snapshotDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", date)
		}

		snap := models.NewMetricSnapshot(athleteID, date)
		if cmd.Flags().Changed("hrv") {
			snap.WithHRV(snapshotHRV)
		}
		if cmd.Flags().Changed("sleep") {
			snap.WithSleep(snapshotSleep)
		}
		if cmd.Flags().Changed("soreness") {
			snap.WithSoreness(snapshotSoreness)
		}
		if cmd.Flags().Changed("jump") {
			snap.WithJumpHeight(snapshotJump)
		}

		if err := svc.PutSnapshot(snap); err != nil {
			return fmt.Errorf("failed to record snapshot: %w", err)
		}

		color.Green("✓ Recorded snapshot for %s", date)

		r, err := svc.GetReadinessOn(athleteID, date)
		if err == nil {
			fmt.Printf("  readiness %d\n", r.Score)
		}

		return nil
	},
}

func init() {
	snapshotAddCmd.Flags().StringVar(&snapshotDate, "date", "", "snapshot day (YYYY-MM-DD, default today)")
	snapshotAddCmd.Flags().Float64Var(&snapshotHRV, "hrv", 0, "HRV rmssd in ms")
	snapshotAddCmd.Flags().IntVar(&snapshotSleep, "sleep", 0, "sleep duration in minutes")
	snapshotAddCmd.Flags().IntVar(&snapshotSoreness, "soreness", 0, "soreness score 0-10 (10 = worst)")
	snapshotAddCmd.Flags().Float64Var(&snapshotJump, "jump", 0, "countermovement jump height in cm")
	snapshotCmd.AddCommand(snapshotAddCmd)
	rootCmd.AddCommand(snapshotCmd)
}
