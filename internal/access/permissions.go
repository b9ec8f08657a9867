// ABOUTME: Mutation permission table: which role may add or delete which kind.
// ABOUTME: Record-scoped checks are made against the identity's visible view.
package access

import (
	"errors"
	"fmt"

	"github.com/harperreed/bbg/internal/models"
)

// ErrForbidden means the identity may not perform the mutation.
var ErrForbidden = errors.New("forbidden")

// Action is a mutation verb. Records are never updated in place.
type Action string

const (
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
)

// Allowed reports whether the role of id may perform action on kind at all.
// It does not look at individual records; see Authorize.
func Allowed(id *models.Identity, action Action, kind models.Kind) bool {
	if id == nil {
		return false
	}

	switch id.Role {
	case models.RoleAdministrator:
		if kind == models.KindPayment {
			return action == ActionAdd
		}
		return true

	case models.RoleCaptain:
		switch kind {
		case models.KindMember, models.KindEquipment, models.KindWorkout:
			return true
		}
		return false

	case models.RoleMember:
		switch kind {
		case models.KindEquipment, models.KindWorkout:
			return true
		}
		return false
	}

	return false
}

// Target describes the record a mutation touches. For adds, ID is empty and
// the reference fields come from the submitted form.
type Target struct {
	Kind      models.Kind
	ID        string
	MemberID  string // workouts and payments
	CaptainID string // members
}

// Authorize checks the role table and then the record scope:
//
//   - a captain may only add members assigned to itself and only delete
//     members it can see;
//   - captains and members may only add or delete workouts of members
//     in their view.
//
// view must be Visible(id, snapshot) for the current snapshot.
func Authorize(id *models.Identity, view *models.Collections, action Action, t Target) error {
	if !Allowed(id, action, t.Kind) {
		return forbidden(id, action, t.Kind)
	}
	if id.Role == models.RoleAdministrator {
		return nil
	}

	switch t.Kind {
	case models.KindMember:
		if action == ActionAdd {
			if t.CaptainID != id.ID {
				return fmt.Errorf("%w: captains can only add members assigned to themselves", ErrForbidden)
			}
			return nil
		}
		if _, ok := view.FindMember(t.ID); !ok {
			return fmt.Errorf("%w: member %s is not one of yours", ErrForbidden, t.ID)
		}

	case models.KindWorkout:
		if action == ActionAdd {
			if _, ok := view.FindMember(t.MemberID); !ok {
				return fmt.Errorf("%w: cannot log a workout for member %s", ErrForbidden, t.MemberID)
			}
			return nil
		}
		if _, ok := view.FindWorkout(t.ID); !ok {
			return fmt.Errorf("%w: workout %s is not visible to you", ErrForbidden, t.ID)
		}
	}

	return nil
}

func forbidden(id *models.Identity, action Action, kind models.Kind) error {
	if id == nil {
		return fmt.Errorf("%w: not logged in", ErrForbidden)
	}
	return fmt.Errorf("%w: %s cannot %s %s", ErrForbidden, id.Role, action, kind.Plural())
}
