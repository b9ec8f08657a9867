// ABOUTME: Referential integrity rules for deletes and inserts.
// ABOUTME: Pure functions over collections, enforced inside store transactions.
package storage

import (
	"errors"
	"fmt"

	"github.com/harperreed/bbg/internal/models"
)

var (
	// ErrReferenced means a delete was blocked because other records depend on the target.
	ErrReferenced = errors.New("record is referenced")
	// ErrMissingReference means an insert points at a record that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
	// ErrInvalidRecord means a loaded record breaks a field rule.
	ErrInvalidRecord = errors.New("invalid record")
)

// ReferenceError reports a blocked delete and how many records block it.
type ReferenceError struct {
	Kind      models.Kind
	ID        string
	Dependent models.Kind
	Count     int
}

func (e *ReferenceError) Error() string {
	switch e.Kind {
	case models.KindCaptain:
		return fmt.Sprintf("cannot delete captain %s: currently assigned to %d member(s)", e.ID, e.Count)
	case models.KindEquipment:
		return fmt.Sprintf("cannot delete equipment %s: referenced by %d workout(s)", e.ID, e.Count)
	default:
		return fmt.Sprintf("cannot delete %s %s: referenced by %d %s record(s)", e.Kind, e.ID, e.Count, e.Dependent)
	}
}

// Is makes errors.Is(err, ErrReferenced) match.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReferenced
}

// MissingRefError reports an insert whose reference does not resolve.
type MissingRefError struct {
	Kind  models.Kind // the record being inserted
	Field string
	RefID string
}

func (e *MissingRefError) Error() string {
	return fmt.Sprintf("%s %s %q does not exist", e.Kind, e.Field, e.RefID)
}

// Is makes errors.Is(err, ErrMissingReference) match.
func (e *MissingRefError) Is(target error) bool {
	return target == ErrMissingReference
}

// BlockingMembers counts the members assigned to a captain.
func BlockingMembers(members []models.Member, captainID string) int {
	n := 0
	for _, m := range members {
		if m.CaptainID == captainID {
			n++
		}
	}
	return n
}

// CanDeleteCaptain reports whether no member references the captain.
func CanDeleteCaptain(members []models.Member, captainID string) bool {
	return BlockingMembers(members, captainID) == 0
}

// ReferencingWorkouts counts the workouts that used a piece of equipment.
func ReferencingWorkouts(workouts []models.Workout, equipmentID string) int {
	n := 0
	for _, w := range workouts {
		if w.EquipmentID == equipmentID {
			n++
		}
	}
	return n
}

// CanDeleteEquipment reports whether no workout references the equipment.
func CanDeleteEquipment(workouts []models.Workout, equipmentID string) bool {
	return ReferencingWorkouts(workouts, equipmentID) == 0
}

// CascadeWorkouts returns the workouts that must be removed along with a member.
// Payments are not included: deleting a member leaves its payments in place.
func CascadeWorkouts(workouts []models.Workout, memberID string) []models.Workout {
	var out []models.Workout
	for _, w := range workouts {
		if w.MemberID == memberID {
			out = append(out, w)
		}
	}
	return out
}

// OrphanedPayments returns payments whose member no longer exists.
func OrphanedPayments(c *models.Collections) []models.Payment {
	known := make(map[string]struct{}, len(c.Members))
	for _, m := range c.Members {
		known[m.ID] = struct{}{}
	}
	var out []models.Payment
	for _, p := range c.Payments {
		if _, ok := known[p.MemberID]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// CheckRecords validates every record of a dataset before it is loaded.
// Forms are validated on submission; seed files are not, so the same field
// rules are applied here. A payment's end date must match its plan.
func CheckRecords(c *models.Collections) error {
	for i := range c.Captains {
		if err := checkRecord(models.KindCaptain, c.Captains[i].ID, &c.Captains[i]); err != nil {
			return err
		}
	}
	for i := range c.Members {
		if err := checkRecord(models.KindMember, c.Members[i].ID, &c.Members[i]); err != nil {
			return err
		}
	}
	for i := range c.Equipment {
		if err := checkRecord(models.KindEquipment, c.Equipment[i].ID, &c.Equipment[i]); err != nil {
			return err
		}
	}
	for i := range c.Workouts {
		if err := checkRecord(models.KindWorkout, c.Workouts[i].ID, &c.Workouts[i]); err != nil {
			return err
		}
	}
	for i := range c.Payments {
		p := &c.Payments[i]
		if err := checkRecord(models.KindPayment, p.ID, p); err != nil {
			return err
		}
		end, err := models.PlanEndDate(p.StartDate, p.PlanType)
		if err != nil {
			return fmt.Errorf("%s %s: %w: %w", models.KindPayment, p.ID, ErrInvalidRecord, err)
		}
		if !end.Equal(p.EndDate.Time) {
			return fmt.Errorf("%s %s: %w: end date %s does not match %s plan from %s (want %s)",
				models.KindPayment, p.ID, ErrInvalidRecord, p.EndDate, p.PlanType, p.StartDate, end)
		}
	}
	return nil
}

func checkRecord(kind models.Kind, id string, record any) error {
	if err := models.Validate(record); err != nil {
		return fmt.Errorf("%s %s: %w: %w", kind, id, ErrInvalidRecord, err)
	}
	return nil
}
