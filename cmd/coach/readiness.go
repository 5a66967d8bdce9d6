// ABOUTME: CLI command for the morning readiness score.
// ABOUTME: Prints the 0-100 score plus the inputs it was derived from.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var readinessDate string

var readinessCmd = &cobra.Command{
	Use:     "readiness",
	Aliases: []string{"r"},
	Short:   "Show the readiness score",
	Long: `Compute the readiness score for a day from that day's biometric
snapshot. Missing inputs score pessimistically, so a day with no
snapshot at all scores 0 rather than erroring.

SCORING:

  Four equally weighted components, each normalized to [0,1]:

    HRV (rmssd)    value / 100 ms
    Sleep          minutes / 480
    Soreness       (10 - score) / 9      (10 = worst, defaults to 10)
    Jump height    cm / 50

EXAMPLES:

  coach readiness                    # Today's score
  coach readiness --date 2026-08-29  # A specific day`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := readinessDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", date)
		}

		r, err := svc.GetReadinessOn(athleteID, date)
		if err != nil {
			return fmt.Errorf("failed to compute readiness: %w", err)
		}

		scoreColor := color.New(color.FgGreen, color.Bold)
		switch {
		case r.Score < 40:
			scoreColor = color.New(color.FgRed, color.Bold)
		case r.Score < 70:
			scoreColor = color.New(color.FgYellow, color.Bold)
		}

		fmt.Printf("Readiness %s  %s\n", scoreColor.Sprintf("%d", r.Score), color.New(color.Faint).Sprint(r.Date))
		fmt.Printf("  hrv       %.0f ms\n", r.HRVRMSSD)
		fmt.Printf("  sleep     %d min\n", r.SleepMin)
		fmt.Printf("  soreness  %d/10\n", r.SorenessScore)
		fmt.Printf("  jump      %.1f cm\n", r.JumpCM)

		return nil
	},
}

func init() {
	readinessCmd.Flags().StringVar(&readinessDate, "date", "", "day to score (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(readinessCmd)
}
