// ABOUTME: CLI command for feeding a live metric sample to the engine.
// ABOUTME: Prints the coach prompt when a load adjustment fires.
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var sampleSession string

var sampleCmd = &cobra.Command{
	Use:   "sample <metric> <value>",
	Short: "Feed a live metric sample into the adjustment engine",
	Long: `Feed one mid-session metric sample into the adjustment engine.

METRICS:

  velocity_loss   fractional bar-speed decay; triggers above 0.15
  hr_drift        fractional heart-rate drift; triggers above 0.10

A triggering sample reduces every target load in the active program by
5% and appends an event to the adjustment log. Samples at or below the
threshold do nothing.

EXAMPLES:

  coach sample velocity_loss 0.18 --session 7d9e1b22-...
  coach sample hr_drift 0.08 --session 7d9e1b22-...`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric := args[0]
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		sessionID, err := resolveSession(sampleSession)
		if err != nil {
			return err
		}

		res, err := svc.AdjustSet(context.Background(), sessionID, athleteID, metric, value)
		if err != nil {
			return fmt.Errorf("failed to process sample: %w", err)
		}

		if !res.Adjusted {
			fmt.Printf("%s %s %.3f within range, no adjustment\n",
				color.New(color.Faint).Sprint(shortID(sessionID)), metric, value)
			return nil
		}

		color.Yellow("⚡ %s", res.PromptText)
		fmt.Printf("  %s delta %.0f%%\n",
			color.New(color.Faint).Sprint(shortID(sessionID)), res.Delta*100)

		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleSession, "session", "s", "", "training session id (default: new session)")
	rootCmd.AddCommand(sampleCmd)
}
