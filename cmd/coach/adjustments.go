// ABOUTME: CLI command for reviewing the adjustment log.
// ABOUTME: Supports scoping to one session and limiting results.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	adjustmentsSession string
	adjustmentsLimit   int
)

var adjustmentsCmd = &cobra.Command{
	Use:     "adjustments",
	Aliases: []string{"adj"},
	Short:   "List load adjustments",
	Long: `List the append-only log of load adjustments, newest first.

Each line shows: ID  TIME  SESSION  METRIC  VALUE  DELTA

EXAMPLES:

  coach adjustments                     # Last 20 adjustments
  coach adjustments --session 7d9e...   # One session only
  coach adjustments -n 50               # More history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var sessionID *uuid.UUID
		if adjustmentsSession != "" {
			id, err := uuid.Parse(adjustmentsSession)
			if err != nil {
				return fmt.Errorf("invalid session id: %s", adjustmentsSession)
			}
			sessionID = &id
		}

		events, err := svc.ListAdjustments(sessionID, adjustmentsLimit)
		if err != nil {
			return fmt.Errorf("failed to list adjustments: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No adjustments recorded.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range events {
			fmt.Printf("%s %s %s %s %.3f %+.0f%%\n",
				faint.Sprint(shortID(e.ID)),
				faint.Sprint(e.CreatedAt.Format("2006-01-02 15:04")),
				faint.Sprint(shortID(e.SessionID)),
				padRight(string(e.Metric), 14),
				e.TriggerValue,
				e.Delta*100)
		}

		return nil
	},
}

func init() {
	adjustmentsCmd.Flags().StringVarP(&adjustmentsSession, "session", "s", "", "filter by session id")
	adjustmentsCmd.Flags().IntVarP(&adjustmentsLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(adjustmentsCmd)
}
