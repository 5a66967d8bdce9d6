// ABOUTME: CLI commands for managing the athlete's active program.
// ABOUTME: Show target loads, replace the program, or seed a starter.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/plan"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage the active training program",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active program's target loads",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := svc.Repo().GetPlan(context.Background(), athleteID)
		if err != nil {
			return fmt.Errorf("failed to load program: %w", err)
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(p.Name), faint.Sprintf("updated %s", p.UpdatedAt.Format("2006-01-02 15:04")))
		for _, b := range p.Blocks {
			fmt.Printf("  %s\n", b.Name)
			for _, s := range b.Sessions {
				fmt.Printf("    %s\n", s.Name)
				for _, e := range s.Exercises {
					fmt.Printf("      %s %dx%d @ %.1f\n", padRight(e.Name, 20), e.Sets, e.Reps, e.TargetLoad)
				}
			}
		}

		return nil
	},
}

var planSetCmd = &cobra.Command{
	Use:   "set <file.json>",
	Short: "Replace the active program from a JSON file",
	Long: `Replace the active program with one read from a JSON file. The
file must contain a full program tree (blocks, sessions, exercises
with target loads). The athlete id is taken from config; a new program
id is minted if the file omits one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read program file: %w", err)
		}

		var p plan.Program
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to parse program: %w", err)
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.AthleteID = athleteID

		if err := svc.Repo().PutPlan(context.Background(), &p); err != nil {
			return fmt.Errorf("failed to store program: %w", err)
		}

		color.Green("✓ Program %q set (%d exercises)", p.Name, p.CountExercises())
		return nil
	},
}

var planSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a starter program",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := seedProgram(athleteID)
		if err := svc.Repo().PutPlan(context.Background(), p); err != nil {
			return fmt.Errorf("failed to store program: %w", err)
		}
		color.Green("✓ Seeded %q (%d exercises)", p.Name, p.CountExercises())
		return nil
	},
}

// seedProgram builds a small default block so the adjustment loop has
// target loads to work against.
func seedProgram(athleteID uuid.UUID) *plan.Program {
	p := plan.NewProgram(athleteID, "Starter Strength")
	p.Blocks = []plan.Block{
		{
			ID:   uuid.New(),
			Name: "Accumulation",
			Sessions: []plan.Session{
				{
					ID:   uuid.New(),
					Name: "Lower A",
					Exercises: []plan.Exercise{
						{ID: uuid.New(), Name: "Back Squat", Sets: 5, Reps: 5, TargetLoad: 140},
						{ID: uuid.New(), Name: "Romanian Deadlift", Sets: 3, Reps: 8, TargetLoad: 100},
					},
				},
				{
					ID:   uuid.New(),
					Name: "Upper A",
					Exercises: []plan.Exercise{
						{ID: uuid.New(), Name: "Bench Press", Sets: 5, Reps: 5, TargetLoad: 100},
						{ID: uuid.New(), Name: "Barbell Row", Sets: 4, Reps: 8, TargetLoad: 80},
					},
				},
			},
		},
	}
	return p
}

func init() {
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planSetCmd)
	planCmd.AddCommand(planSeedCmd)
	rootCmd.AddCommand(planCmd)
}
