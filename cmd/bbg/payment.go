// ABOUTME: CLI commands for payment subscriptions.
// ABOUTME: Payments are append-only; status is derived from the end date.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/bbg/internal/models"
	"github.com/spf13/cobra"
)

func newPaymentCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment",
		Aliases: []string{"payments", "p"},
		Short:   "Manage payment subscriptions",
		Long: `Payments are member subscriptions on a Monthly, Quarterly or Yearly plan.

The end date is derived from the start date and plan. A payment is Expired
once its end date has passed and is highlighted when it ends within a week.

Only the administrator may record payments; payments cannot be deleted.
Captains see no payments, members see their own.`,
	}
	cmd.AddCommand(newPaymentListCmd(c), newPaymentAddCmd(c))
	return cmd
}

func newPaymentListCmd(c *cli) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List visible payments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.app.Payments(search)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No payments found.")
				return nil
			}
			for _, p := range rows {
				member := p.MemberName
				if p.Orphaned {
					member = faint(p.MemberID + " (deleted)")
				}
				fmt.Fprintf(out, "%s %s %s %s %s %s\n",
					faint(padRight(shortID(p.ID), shortIDLen)),
					padRight(member, 16),
					padRight(string(p.PlanType), 10),
					padRight(fmt.Sprintf("%.2f", p.Amount), 9),
					faint(p.StartDate.String()+" → "+p.EndDate.String()),
					paymentStatus(p))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by member name or plan")
	return cmd
}

func newPaymentAddCmd(c *cli) *cobra.Command {
	in := models.PaymentInput{PlanType: string(models.PlanMonthly)}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment",
		Long: `Record a subscription payment. The start date defaults to today.

Examples:
  payment add --member m2 --amount 50
  payment add --member m1 --amount 500 --plan Yearly --start 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.StartDate == "" {
				in.StartDate = models.DateOf(c.app.Now()).String()
			}
			created, err := c.app.AddPayment(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Added %s payment", created.PlanType))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s member %s %.2f until %s\n",
				faint(shortID(created.ID)), created.MemberID, created.Amount, created.EndDate)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.MemberID, "member", "", "member id")
	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "amount paid")
	cmd.Flags().StringVar(&in.StartDate, "start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&in.PlanType, "plan", in.PlanType, "Monthly, Quarterly or Yearly")
	return cmd
}
