// ABOUTME: Output helpers shared by the listing commands.
// ABOUTME: Short ids, column padding, truncation and payment status colouring.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/bbg/internal/app"
	"github.com/harperreed/bbg/internal/models"
)

// shortIDLen keeps the kind prefix plus eight uuid characters.
const shortIDLen = 10

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func faint(s string) string {
	return color.New(color.Faint).Sprint(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// paymentStatus renders the derived status: red when expired, yellow when
// ending within a week, green otherwise.
func paymentStatus(p app.PaymentRow) string {
	switch {
	case p.Status == models.StatusExpired:
		return color.RedString("Expired")
	case p.ExpiringSoon:
		return color.YellowString("Active (%d days left)", p.DaysLeft)
	default:
		return color.GreenString("Active")
	}
}

func formatWeight(w float64) string {
	if w == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f kg", w)
}
