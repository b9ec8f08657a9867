// ABOUTME: Payment subscription model with plan end-date and status derivation.
// ABOUTME: Status is recomputed from the end date on every read.
package models

import (
	"fmt"
	"math"
	"time"
)

// PlanType is the length of a subscription.
type PlanType string

const (
	PlanMonthly   PlanType = "Monthly"
	PlanQuarterly PlanType = "Quarterly"
	PlanYearly    PlanType = "Yearly"
)

// AllPlanTypes lists the plans in display order.
var AllPlanTypes = []PlanType{PlanMonthly, PlanQuarterly, PlanYearly}

// Months returns the plan length in calendar months.
func (p PlanType) Months() (int, error) {
	switch p {
	case PlanMonthly:
		return 1, nil
	case PlanQuarterly:
		return 3, nil
	case PlanYearly:
		return 12, nil
	default:
		return 0, fmt.Errorf("unknown plan type: %q", string(p))
	}
}

// PaymentStatus is the display status of a subscription.
type PaymentStatus string

const (
	StatusActive  PaymentStatus = "Active"
	StatusExpired PaymentStatus = "Expired"
)

// ExpiringSoonDays is how close to its end date an active subscription gets emphasis.
const ExpiringSoonDays = 7

// Payment is a member's subscription purchase.
type Payment struct {
	ID        string        `json:"id" yaml:"id"`
	MemberID  string        `json:"member_id" yaml:"member_id" validate:"required"`
	Amount    float64       `json:"amount" yaml:"amount" validate:"gte=0"`
	StartDate Date          `json:"start_date" yaml:"start_date"`
	EndDate   Date          `json:"end_date" yaml:"end_date"`
	PlanType  PlanType      `json:"plan_type" yaml:"plan_type" validate:"oneof=Monthly Quarterly Yearly"`
	Status    PaymentStatus `json:"status" yaml:"status" validate:"omitempty,oneof=Active Expired"`
}

// PaymentInput is the submitted form for a new payment. The end date is not
// part of the form; it is derived from the plan.
type PaymentInput struct {
	MemberID  string  `json:"member_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"gte=0"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	PlanType  string  `json:"plan_type" validate:"required,oneof=Monthly Quarterly Yearly"`
}

// Payment builds a record from a validated form, deriving the end date.
func (in PaymentInput) Payment() (*Payment, error) {
	start, err := ParseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	plan := PlanType(in.PlanType)
	end, err := PlanEndDate(start, plan)
	if err != nil {
		return nil, err
	}
	return &Payment{
		MemberID:  in.MemberID,
		Amount:    in.Amount,
		StartDate: start,
		EndDate:   end,
		PlanType:  plan,
		Status:    StatusActive,
	}, nil
}

// PlanEndDate returns start advanced by the plan length. Month arithmetic is
// calendar-aware and clamps to the last day of the target month, so
// 2024-01-31 + 1 month is 2024-02-29.
func PlanEndDate(start Date, plan PlanType) (Date, error) {
	months, err := plan.Months()
	if err != nil {
		return Date{}, err
	}
	return addMonths(start, months), nil
}

func addMonths(d Date, months int) Date {
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return NewDate(first.Year(), first.Month(), day)
}

// PaymentState is the display state derived from an end date.
type PaymentState struct {
	Status       PaymentStatus `json:"status"`
	ExpiringSoon bool          `json:"expiring_soon"`
	DaysLeft     int           `json:"days_left"`
}

// DeriveStatus compares end with now truncated to local midnight. An end
// date before today is Expired; otherwise the payment is Active and expiring
// soon when 0 to 7 days remain.
func DeriveStatus(end Date, now time.Time) PaymentState {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, now.Location())

	// Round rather than truncate: DST days are 23 or 25 hours long.
	days := int(math.Round(endDay.Sub(today).Hours() / 24))
	if endDay.Before(today) {
		return PaymentState{Status: StatusExpired, DaysLeft: days}
	}
	return PaymentState{
		Status:       StatusActive,
		ExpiringSoon: days <= ExpiringSoonDays,
		DaysLeft:     days,
	}
}

// GetID returns the record id, or "" for a nil Payment.
func (p *Payment) GetID() string {
	if p == nil {
		return ""
	}
	return p.ID
}
