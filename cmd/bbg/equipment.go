// ABOUTME: CLI commands for managing gym equipment.
// ABOUTME: Equipment in use by a workout cannot be deleted.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/bbg/internal/models"
	"github.com/spf13/cobra"
)

func newEquipmentCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "equipment",
		Aliases: []string{"eq", "e"},
		Short:   "Manage equipment",
		Long: `Equipment is the gym's stock. Every role may add and delete equipment.

Condition is one of Good, Fair or Poor. A piece of equipment cannot be deleted
while any workout references it.`,
	}
	cmd.AddCommand(newEquipmentListCmd(c), newEquipmentAddCmd(c), newEquipmentDeleteCmd(c))
	return cmd
}

func conditionColor(cond models.Condition) string {
	switch cond {
	case models.ConditionGood:
		return color.GreenString(string(cond))
	case models.ConditionFair:
		return color.YellowString(string(cond))
	case models.ConditionPoor:
		return color.RedString(string(cond))
	default:
		return string(cond)
	}
}

func newEquipmentListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List equipment",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.app.Equipment()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No equipment found.")
				return nil
			}
			for _, e := range items {
				fmt.Fprintf(out, "%s %s %s x%-3d %s\n",
					faint(padRight(shortID(e.ID), shortIDLen)),
					padRight(e.Name, 20),
					padRight(e.Type, 10),
					e.Quantity,
					conditionColor(e.Condition))
			}
			return nil
		},
	}
}

func newEquipmentAddCmd(c *cli) *cobra.Command {
	in := models.EquipmentInput{Condition: string(models.ConditionGood), Quantity: 1}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add equipment",
		Long: `Add a piece of equipment.

Examples:
  equipment add --name "Rowing Machine" --type Cardio --quantity 3
  equipment add --name "Kettlebell" --type Weights --condition Fair`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := c.app.AddEquipment(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Added equipment %s", created.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s x%d %s\n", faint(shortID(created.ID)), created.Quantity, created.Condition)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "equipment name")
	cmd.Flags().StringVar(&in.Type, "type", "", "equipment type, e.g. Cardio")
	cmd.Flags().StringVar(&in.Condition, "condition", in.Condition, "Good, Fair or Poor")
	cmd.Flags().IntVar(&in.Quantity, "quantity", in.Quantity, "number of items")
	return cmd
}

func newEquipmentDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"del", "rm"},
		Short:   "Delete equipment by id or id prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := c.app.DeleteEquipment(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("✗ Deleted equipment %s", deleted.Name))
			return nil
		},
	}
}
