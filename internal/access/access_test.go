// ABOUTME: Tests for the visibility filter and the mutation permission table.
// ABOUTME: Uses the demo dataset: captain c1 owns m1, captain c2 owns m2.
package access

import (
	"errors"
	"testing"

	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(role models.Role, id string) *models.Identity {
	if role == models.RoleAdministrator {
		admin := models.Administrator()
		return &admin
	}
	return &models.Identity{ID: id, Role: role}
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, x := range items {
		out = append(out, id(x))
	}
	return out
}

func memberIDs(ms []models.Member) []string {
	return ids(ms, func(m models.Member) string { return m.ID })
}

func workoutIDs(ws []models.Workout) []string {
	return ids(ws, func(w models.Workout) string { return w.ID })
}

func paymentIDs(ps []models.Payment) []string {
	return ids(ps, func(p models.Payment) string { return p.ID })
}

func TestVisibleAdministratorSeesEverything(t *testing.T) {
	data := storage.DemoData()
	v := Visible(identity(models.RoleAdministrator, ""), data)

	assert.Equal(t, data, v)
}

func TestVisibleCaptain(t *testing.T) {
	data := storage.DemoData()
	v := Visible(identity(models.RoleCaptain, "c1"), data)

	assert.Equal(t, []string{"m1"}, memberIDs(v.Members))
	assert.Equal(t, []string{"w1", "w3"}, workoutIDs(v.Workouts))
	assert.NotNil(t, v.Payments)
	assert.Empty(t, v.Payments, "captains never see payments")
	assert.Len(t, v.Captains, 3)
	assert.Len(t, v.Equipment, 3)
}

func TestVisibleCaptainWithoutMembers(t *testing.T) {
	v := Visible(identity(models.RoleCaptain, "c3"), storage.DemoData())

	assert.Empty(t, v.Members)
	assert.Empty(t, v.Workouts)
	assert.Len(t, v.Captains, 3)
}

func TestVisibleMember(t *testing.T) {
	v := Visible(identity(models.RoleMember, "m2"), storage.DemoData())

	assert.Equal(t, []string{"m2"}, memberIDs(v.Members))
	assert.Equal(t, []string{"w2", "w4"}, workoutIDs(v.Workouts))
	assert.Equal(t, []string{"p2"}, paymentIDs(v.Payments))
	assert.Len(t, v.Captains, 3)
	assert.Len(t, v.Equipment, 3)
}

func TestVisibleNoIdentity(t *testing.T) {
	for name, id := range map[string]*models.Identity{
		"nil identity": nil,
		"zero role":    {ID: "m1"},
		"unknown role": {ID: "m1", Role: models.Role(42)},
	} {
		t.Run(name, func(t *testing.T) {
			v := Visible(id, storage.DemoData())
			assert.Empty(t, v.Captains)
			assert.Empty(t, v.Members)
			assert.Empty(t, v.Equipment)
			assert.Empty(t, v.Workouts)
			assert.Empty(t, v.Payments)
		})
	}
}

func TestVisibleDoesNotAliasInput(t *testing.T) {
	data := storage.DemoData()
	v := Visible(identity(models.RoleAdministrator, ""), data)

	v.Captains[0].Name = "changed"
	assert.Equal(t, "John Doe", data.Captains[0].Name)
}

func TestAllowedTable(t *testing.T) {
	admin := identity(models.RoleAdministrator, "")
	captain := identity(models.RoleCaptain, "c1")
	member := identity(models.RoleMember, "m1")

	tests := []struct {
		id     *models.Identity
		action Action
		kind   models.Kind
		want   bool
	}{
		{admin, ActionAdd, models.KindCaptain, true},
		{admin, ActionDelete, models.KindCaptain, true},
		{admin, ActionAdd, models.KindPayment, true},
		{admin, ActionDelete, models.KindPayment, false},
		{captain, ActionAdd, models.KindCaptain, false},
		{captain, ActionDelete, models.KindCaptain, false},
		{captain, ActionAdd, models.KindMember, true},
		{captain, ActionDelete, models.KindEquipment, true},
		{captain, ActionAdd, models.KindWorkout, true},
		{captain, ActionAdd, models.KindPayment, false},
		{member, ActionAdd, models.KindMember, false},
		{member, ActionDelete, models.KindMember, false},
		{member, ActionAdd, models.KindEquipment, true},
		{member, ActionDelete, models.KindWorkout, true},
		{member, ActionAdd, models.KindPayment, false},
		{nil, ActionAdd, models.KindEquipment, false},
	}

	for _, tt := range tests {
		role := "none"
		if tt.id != nil {
			role = tt.id.Role.String()
		}
		t.Run(role+" "+string(tt.action)+" "+string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.id, tt.action, tt.kind))
		})
	}
}

func TestAuthorizeCaptainScope(t *testing.T) {
	data := storage.DemoData()
	captain := identity(models.RoleCaptain, "c1")
	view := Visible(captain, data)

	assert.NoError(t, Authorize(captain, view, ActionAdd, Target{Kind: models.KindMember, CaptainID: "c1"}))
	assert.ErrorIs(t, Authorize(captain, view, ActionAdd, Target{Kind: models.KindMember, CaptainID: "c2"}), ErrForbidden)

	assert.NoError(t, Authorize(captain, view, ActionDelete, Target{Kind: models.KindMember, ID: "m1"}))
	assert.ErrorIs(t, Authorize(captain, view, ActionDelete, Target{Kind: models.KindMember, ID: "m2"}), ErrForbidden)

	assert.NoError(t, Authorize(captain, view, ActionAdd, Target{Kind: models.KindWorkout, MemberID: "m1"}))
	assert.ErrorIs(t, Authorize(captain, view, ActionAdd, Target{Kind: models.KindWorkout, MemberID: "m2"}), ErrForbidden)

	assert.NoError(t, Authorize(captain, view, ActionDelete, Target{Kind: models.KindWorkout, ID: "w3"}))
	assert.ErrorIs(t, Authorize(captain, view, ActionDelete, Target{Kind: models.KindWorkout, ID: "w2"}), ErrForbidden)

	assert.ErrorIs(t, Authorize(captain, view, ActionDelete, Target{Kind: models.KindCaptain, ID: "c3"}), ErrForbidden)
}

func TestAuthorizeMemberScope(t *testing.T) {
	data := storage.DemoData()
	member := identity(models.RoleMember, "m1")
	view := Visible(member, data)

	assert.NoError(t, Authorize(member, view, ActionAdd, Target{Kind: models.KindWorkout, MemberID: "m1"}))
	assert.ErrorIs(t, Authorize(member, view, ActionAdd, Target{Kind: models.KindWorkout, MemberID: "m2"}), ErrForbidden)
	assert.ErrorIs(t, Authorize(member, view, ActionDelete, Target{Kind: models.KindWorkout, ID: "w4"}), ErrForbidden)
	assert.NoError(t, Authorize(member, view, ActionDelete, Target{Kind: models.KindEquipment, ID: "e3"}))
}

func TestAuthorizeMessage(t *testing.T) {
	member := identity(models.RoleMember, "m1")
	err := Authorize(member, Visible(member, storage.DemoData()), ActionAdd, Target{Kind: models.KindCaptain})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "forbidden: member cannot add captains", err.Error())
}
