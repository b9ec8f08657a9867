// ABOUTME: Display rows for each collection: records joined with related names.
// ABOUTME: Lists are taken from the visible view and can be narrowed by search.
package app

import (
	"strings"

	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/storage"
)

// MemberRow is a member with its captain's name.
type MemberRow struct {
	models.Member
	CaptainName string `json:"captain_name"`
}

// WorkoutRow is a workout with member and equipment names.
type WorkoutRow struct {
	models.Workout
	MemberName    string `json:"member_name"`
	EquipmentName string `json:"equipment_name"`
}

// PaymentRow is a payment whose Status has been derived as of now.
// Orphaned is set when the member has been deleted since the payment was
// recorded.
type PaymentRow struct {
	models.Payment
	ExpiringSoon bool   `json:"expiring_soon"`
	DaysLeft     int    `json:"days_left"`
	MemberName   string `json:"member_name"`
	Orphaned     bool   `json:"orphaned,omitempty"`
}

// Captains lists the visible captains.
func (a *App) Captains() ([]models.Captain, error) {
	_, view, err := a.View()
	if err != nil {
		return nil, err
	}
	return view.Captains, nil
}

// Members lists the visible members whose name or email contains query,
// case-insensitively. An empty query matches everything.
func (a *App) Members(query string) ([]MemberRow, error) {
	_, view, err := a.View()
	if err != nil {
		return nil, err
	}
	rows := make([]MemberRow, 0, len(view.Members))
	for _, m := range view.Members {
		if !matches(query, m.Name, m.Email) {
			continue
		}
		row := MemberRow{Member: m}
		if c, ok := view.FindCaptain(m.CaptainID); ok {
			row.CaptainName = c.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Equipment lists the visible equipment.
func (a *App) Equipment() ([]models.Equipment, error) {
	_, view, err := a.View()
	if err != nil {
		return nil, err
	}
	return view.Equipment, nil
}

// Workouts lists the visible workouts, newest first.
func (a *App) Workouts() ([]WorkoutRow, error) {
	_, view, err := a.View()
	if err != nil {
		return nil, err
	}
	rows := make([]WorkoutRow, 0, len(view.Workouts))
	for i := len(view.Workouts) - 1; i >= 0; i-- {
		w := view.Workouts[i]
		row := WorkoutRow{Workout: w}
		if m, ok := view.FindMember(w.MemberID); ok {
			row.MemberName = m.Name
		}
		if e, ok := view.FindEquipment(w.EquipmentID); ok {
			row.EquipmentName = e.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Payments lists the visible payments matching query against member name
// or plan type, newest first. Status is derived from the end date as of now.
func (a *App) Payments(query string) ([]PaymentRow, error) {
	_, view, err := a.View()
	if err != nil {
		return nil, err
	}
	orphans := map[string]bool{}
	for _, p := range storage.OrphanedPayments(view) {
		orphans[p.ID] = true
	}

	now := a.now()
	rows := make([]PaymentRow, 0, len(view.Payments))
	for i := len(view.Payments) - 1; i >= 0; i-- {
		p := view.Payments[i]
		state := models.DeriveStatus(p.EndDate, now)
		row := PaymentRow{
			Payment:      p,
			ExpiringSoon: state.ExpiringSoon,
			DaysLeft:     state.DaysLeft,
			Orphaned:     orphans[p.ID],
		}
		row.Status = state.Status
		if m, ok := view.FindMember(p.MemberID); ok {
			row.MemberName = m.Name
		}
		if !matches(query, row.MemberName, string(p.PlanType)) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func matches(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
