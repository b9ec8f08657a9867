// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports list, add and delete scoped to the logged-in identity.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/bbg/internal/models"
	"github.com/spf13/cobra"
)

func newWorkoutCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workout",
		Aliases: []string{"workouts", "w"},
		Short:   "Manage workouts",
		Long: `A workout is one member's session on one piece of equipment.

WHO SEES WHAT:

  admin     all workouts
  captain   workouts of its own members
  member    its own workouts; new workouts default to yourself

Example:
  workout add --member m1 --equipment e2 --sets 3 --reps 12 --weight 15 --duration 45`,
	}
	cmd.AddCommand(newWorkoutListCmd(c), newWorkoutAddCmd(c), newWorkoutDeleteCmd(c))
	return cmd
}

func newWorkoutListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List visible workouts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.app.Workouts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No workouts found.")
				return nil
			}
			for _, w := range rows {
				fmt.Fprintf(out, "%s %s %s %s %s %s %s\n",
					faint(padRight(shortID(w.ID), shortIDLen)),
					faint(w.Date.String()),
					padRight(w.MemberName, 16),
					padRight(w.EquipmentName, 20),
					padRight(fmt.Sprintf("%dx%d", w.Sets, w.Reps), 6),
					padRight(formatWeight(w.Weight), 9),
					fmt.Sprintf("%d min", w.Duration))
			}
			return nil
		},
	}
}

func newWorkoutAddCmd(c *cli) *cobra.Command {
	var in models.WorkoutInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a workout",
		Long: `Log a workout. The date defaults to today.

Examples:
  workout add --member m1 --equipment e1 --sets 1 --reps 1 --duration 30
  workout add --equipment e2 --sets 3 --reps 12 --weight 15 --duration 45`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Date == "" {
				in.Date = models.DateOf(c.app.Now()).String()
			}
			created, err := c.app.AddWorkout(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Added workout on %s", created.Date))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s member %s equipment %s %dx%d\n",
				faint(shortID(created.ID)), created.MemberID, created.EquipmentID, created.Sets, created.Reps)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.MemberID, "member", "", "member id (default: yourself when logged in as a member)")
	cmd.Flags().StringVar(&in.EquipmentID, "equipment", "", "equipment id")
	cmd.Flags().StringVar(&in.Date, "date", "", "workout date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&in.Sets, "sets", 0, "number of sets")
	cmd.Flags().IntVar(&in.Reps, "reps", 0, "reps per set")
	cmd.Flags().Float64Var(&in.Weight, "weight", 0, "weight in kg")
	cmd.Flags().IntVar(&in.Duration, "duration", 0, "duration in minutes")
	return cmd
}

func newWorkoutDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"del", "rm"},
		Short:   "Delete a workout by id or id prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := c.app.DeleteWorkout(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("✗ Deleted workout %s", deleted.ID))
			return nil
		},
	}
}
