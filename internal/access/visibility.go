// ABOUTME: Role-based visibility filter over a snapshot of all collections.
// ABOUTME: Pure function; the view is re-derived on every read and never cached.
package access

import (
	"github.com/harperreed/bbg/internal/models"
)

// Visible returns the slice of c the identity may see.
//
//   - Administrator: everything.
//   - Captain: its own members, their workouts, no payments.
//   - Member: itself, its workouts and its payments.
//
// Captains and equipment are unrestricted for every logged-in role. A nil
// identity or an unknown role sees nothing.
func Visible(id *models.Identity, c *models.Collections) *models.Collections {
	empty := &models.Collections{
		Captains:  []models.Captain{},
		Members:   []models.Member{},
		Equipment: []models.Equipment{},
		Workouts:  []models.Workout{},
		Payments:  []models.Payment{},
	}
	if id == nil || c == nil {
		return empty
	}

	switch id.Role {
	case models.RoleAdministrator:
		return &models.Collections{
			Captains:  clone(c.Captains),
			Members:   clone(c.Members),
			Equipment: clone(c.Equipment),
			Workouts:  clone(c.Workouts),
			Payments:  clone(c.Payments),
		}

	case models.RoleCaptain:
		members := filter(c.Members, func(m models.Member) bool { return m.CaptainID == id.ID })
		mine := memberSet(members)
		return &models.Collections{
			Captains:  clone(c.Captains),
			Members:   members,
			Equipment: clone(c.Equipment),
			Workouts:  filter(c.Workouts, func(w models.Workout) bool { _, ok := mine[w.MemberID]; return ok }),
			Payments:  []models.Payment{},
		}

	case models.RoleMember:
		return &models.Collections{
			Captains:  clone(c.Captains),
			Members:   filter(c.Members, func(m models.Member) bool { return m.ID == id.ID }),
			Equipment: clone(c.Equipment),
			Workouts:  filter(c.Workouts, func(w models.Workout) bool { return w.MemberID == id.ID }),
			Payments:  filter(c.Payments, func(p models.Payment) bool { return p.MemberID == id.ID }),
		}
	}

	return empty
}

func memberSet(members []models.Member) map[string]struct{} {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m.ID] = struct{}{}
	}
	return set
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, x := range in {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
