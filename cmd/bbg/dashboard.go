// ABOUTME: CLI command printing dashboard statistics for the logged-in identity.
// ABOUTME: Counts, workouts per date and equipment per condition.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDashboardCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash", "d"},
		Short:   "Show dashboard statistics",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := c.app.Dashboard()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			fmt.Fprintf(out, "%s %s\n\n", bold.Sprint("Welcome, "+stats.Identity.Name), faint("("+stats.Identity.Role.String()+")"))

			fmt.Fprintf(out, "  %s %d\n", padRight("Members", 12), stats.TotalMembers)
			fmt.Fprintf(out, "  %s %d\n", padRight("Captains", 12), stats.Captains)
			fmt.Fprintf(out, "  %s %d\n", padRight("Equipment", 12), stats.EquipmentCount)
			fmt.Fprintf(out, "  %s %d\n", padRight("Workouts", 12), stats.TotalWorkouts)

			if len(stats.WorkoutsByDate) > 0 {
				fmt.Fprintf(out, "\n%s\n", bold.Sprint("Workouts by date"))
				for _, d := range stats.WorkoutsByDate {
					fmt.Fprintf(out, "  %s %s %d\n", faint(d.Date), strings.Repeat("■", d.Count), d.Count)
				}
			}

			if len(stats.ByCondition) > 0 {
				fmt.Fprintf(out, "\n%s\n", bold.Sprint("Equipment by condition"))
				for _, cc := range stats.ByCondition {
					fmt.Fprintf(out, "  %s %d\n", padRight(conditionColor(cc.Condition), 12), cc.Count)
				}
			}
			return nil
		},
	}
}
