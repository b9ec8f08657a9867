// ABOUTME: Dashboard statistics derived from the identity's visible view.
// ABOUTME: Counts, workouts per date and equipment items per condition.
package app

import (
	"sort"

	"github.com/harperreed/bbg/internal/models"
)

// DateCount is the number of workouts on one date.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ConditionCount is the number of equipment items in one condition.
type ConditionCount struct {
	Condition models.Condition `json:"condition"`
	Count     int              `json:"count"`
}

// Stats is the dashboard summary.
type Stats struct {
	Identity       models.Identity  `json:"identity"`
	TotalMembers   int              `json:"total_members"`
	Captains       int              `json:"captains"`
	EquipmentCount int              `json:"equipment_count"`
	TotalWorkouts  int              `json:"total_workouts"`
	WorkoutsByDate []DateCount      `json:"workouts_by_date"`
	ByCondition    []ConditionCount `json:"equipment_by_condition"`
}

// Dashboard computes the summary for the current identity. A member sees
// only itself in the member count; other roles see the full member count.
func (a *App) Dashboard() (*Stats, error) {
	ident, view, err := a.View()
	if err != nil {
		return nil, err
	}

	totalMembers := len(view.Members)
	if ident.Role != models.RoleMember {
		snap, err := a.store.Snapshot()
		if err != nil {
			return nil, err
		}
		totalMembers = len(snap.Members)
	}

	return &Stats{
		Identity:       *ident,
		TotalMembers:   totalMembers,
		Captains:       len(view.Captains),
		EquipmentCount: EquipmentQuantity(view.Equipment),
		TotalWorkouts:  len(view.Workouts),
		WorkoutsByDate: WorkoutsByDate(view.Workouts),
		ByCondition:    EquipmentByCondition(view.Equipment),
	}, nil
}

// EquipmentQuantity sums the quantity of every equipment record.
func EquipmentQuantity(items []models.Equipment) int {
	total := 0
	for _, e := range items {
		total += e.Quantity
	}
	return total
}

// WorkoutsByDate groups workouts by date, oldest first.
func WorkoutsByDate(workouts []models.Workout) []DateCount {
	counts := map[string]int{}
	for _, w := range workouts {
		counts[w.Date.String()]++
	}
	out := make([]DateCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, DateCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// EquipmentByCondition counts equipment records per condition, in
// Good, Fair, Poor order. Conditions with no records are left out.
func EquipmentByCondition(items []models.Equipment) []ConditionCount {
	counts := map[models.Condition]int{}
	for _, e := range items {
		counts[e.Condition]++
	}
	out := make([]ConditionCount, 0, len(counts))
	for _, c := range models.AllConditions {
		if n := counts[c]; n > 0 {
			out = append(out, ConditionCount{Condition: c, Count: n})
		}
	}
	return out
}
