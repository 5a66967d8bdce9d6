// ABOUTME: CLI command for an interactive live-session loop.
// ABOUTME: Reads samples from stdin and prints coach prompts as they fire.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/broadcast"
	"github.com/harperreed/coach/internal/models"
	"github.com/spf13/cobra"
)

var watchSession string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run an interactive live session",
	Long: `Run a live session loop: type metric samples on stdin, one per
line, and coach prompts print as adjustments fire.

INPUT:

  <metric> <value>       e.g.  velocity_loss 0.18
                               hr_drift 0.07

Press Ctrl-D (or type 'quit') to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := resolveSession(watchSession)
		if err != nil {
			return err
		}

		unsubscribe, err := svc.Broker().Subscribe(
			broadcast.SessionChannel(sessionID),
			broadcast.EventLoadAdjusted,
			func(msg broadcast.Message) {
				if event, ok := msg.Payload.(*models.AdjustmentEvent); ok {
					color.Yellow("⚡ %s", event.PromptText)
				}
			},
		)
		if err != nil {
			return fmt.Errorf("failed to subscribe: %w", err)
		}
		defer unsubscribe()

		fmt.Printf("Watching session %s. Enter '<metric> <value>' per line, 'quit' to end.\n", shortID(sessionID))

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "quit" || line == "q" {
				break
			}

			fields := strings.Fields(line)
			if len(fields) != 2 {
				color.Red("expected '<metric> <value>'")
				continue
			}
			value, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				color.Red("invalid value: %s", fields[1])
				continue
			}

			res, err := svc.AdjustSet(context.Background(), sessionID, athleteID, fields[0], value)
			if err != nil {
				color.Red("%v", err)
				continue
			}
			if !res.Adjusted {
				fmt.Printf("%s within range\n", color.New(color.Faint).Sprint(line))
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		fmt.Println("Session ended.")
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchSession, "session", "s", "", "training session id (default: new session)")
	rootCmd.AddCommand(watchCmd)
}
