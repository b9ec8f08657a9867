// ABOUTME: Tests for plan end-date arithmetic and payment status derivation.
// ABOUTME: Covers month clamping, leap years and the expiring-soon window.
package models

import (
	"testing"
	"time"
)

func TestPlanEndDate(t *testing.T) {
	tests := []struct {
		name  string
		start string
		plan  PlanType
		want  string
	}{
		{"monthly leap february clamp", "2024-01-31", PlanMonthly, "2024-02-29"},
		{"monthly non-leap february clamp", "2023-01-31", PlanMonthly, "2023-02-28"},
		{"monthly plain", "2024-03-01", PlanMonthly, "2024-04-01"},
		{"monthly december rollover", "2024-12-15", PlanMonthly, "2025-01-15"},
		{"quarterly", "2024-01-15", PlanQuarterly, "2024-04-15"},
		{"quarterly clamp to 30 days", "2024-01-31", PlanQuarterly, "2024-04-30"},
		{"yearly", "2024-01-31", PlanYearly, "2025-01-31"},
		{"yearly from leap day", "2024-02-29", PlanYearly, "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanEndDate(MustDate(tt.start), tt.plan)
			if err != nil {
				t.Fatalf("PlanEndDate: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("PlanEndDate(%s, %s) = %s, want %s", tt.start, tt.plan, got, tt.want)
			}
		})
	}
}

func TestPlanEndDateUnknownPlan(t *testing.T) {
	if _, err := PlanEndDate(MustDate("2024-01-01"), PlanType("Weekly")); err == nil {
		t.Error("expected error for unknown plan")
	}
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, time.February, 4, 15, 30, 0, 0, time.Local)
	day := func(offset int) Date {
		return DateOf(now.AddDate(0, 0, offset))
	}

	tests := []struct {
		name     string
		end      Date
		status   PaymentStatus
		soon     bool
		daysLeft int
	}{
		{"yesterday is expired", day(-1), StatusExpired, false, -1},
		{"today is active and expiring", day(0), StatusActive, true, 0},
		{"three days is expiring soon", day(3), StatusActive, true, 3},
		{"seven days is expiring soon", day(7), StatusActive, true, 7},
		{"eight days is plain active", day(8), StatusActive, false, 8},
		{"thirty days is plain active", day(30), StatusActive, false, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.end, now)
			if got.Status != tt.status {
				t.Errorf("Status = %s, want %s", got.Status, tt.status)
			}
			if got.ExpiringSoon != tt.soon {
				t.Errorf("ExpiringSoon = %v, want %v", got.ExpiringSoon, tt.soon)
			}
			if got.DaysLeft != tt.daysLeft {
				t.Errorf("DaysLeft = %d, want %d", got.DaysLeft, tt.daysLeft)
			}
		})
	}
}

func TestPaymentInputDerivesEndDate(t *testing.T) {
	in := PaymentInput{MemberID: "m1", Amount: 50, StartDate: "2024-01-31", PlanType: "Monthly"}

	p, err := in.Payment()
	if err != nil {
		t.Fatalf("Payment: %v", err)
	}
	if p.EndDate.String() != "2024-02-29" {
		t.Errorf("EndDate = %s, want 2024-02-29", p.EndDate)
	}
	if p.Status != StatusActive {
		t.Errorf("Status = %s, want Active", p.Status)
	}
	if p.ID != "" {
		t.Errorf("ID = %q, want empty until stored", p.ID)
	}
}
