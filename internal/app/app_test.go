// ABOUTME: Tests for the application controller against the demo dataset.
// ABOUTME: Covers login, visibility, permissions, integrity errors and stats.
package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harperreed/bbg/internal/access"
	"github.com/harperreed/bbg/internal/metrics"
	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/session"
	"github.com/harperreed/bbg/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-28: p1 (ends 2024-04-01) is expiring soon, p2 (ends 2025-01-01) is not.
var testNow = time.Date(2024, 3, 28, 10, 0, 0, 0, time.Local)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store, err := storage.Open(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Load(storage.DemoData()))
	return New(store, WithClock(func() time.Time { return testNow }), WithMetrics(metrics.New()))
}

func loginAs(t *testing.T, a *App, role models.Role, id string) {
	t.Helper()
	_, err := a.Login(role, id)
	require.NoError(t, err)
}

func TestLoggedOutSeesNothing(t *testing.T) {
	a := newTestApp(t)

	_, _, err := a.View()
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, err = a.Members("")
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, err = a.AddEquipment(models.EquipmentInput{Name: "Bench", Type: "Weights", Condition: "Good", Quantity: 1})
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestCaptainView(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleCaptain, "c1")

	members, err := a.Members("")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "m1", members[0].ID)
	assert.Equal(t, "John Doe", members[0].CaptainName)

	payments, err := a.Payments("")
	require.NoError(t, err)
	assert.Empty(t, payments)

	workouts, err := a.Workouts()
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	assert.Equal(t, "w3", workouts[0].ID)
	assert.Equal(t, "Alice Brown", workouts[0].MemberName)
	assert.Equal(t, "Treadmill 3000", workouts[0].EquipmentName)
	assert.Equal(t, "Dumbbell Set", workouts[1].EquipmentName)
}

func TestMemberSearch(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleAdministrator, "")

	rows, err := a.Members("BOB@")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "m2", rows[0].ID)

	rows, err = a.Members("nobody")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPaymentRowsDeriveStatus(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleAdministrator, "")

	rows, err := a.Payments("")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "p2", rows[0].ID)
	assert.Equal(t, models.StatusActive, rows[0].Status)
	assert.False(t, rows[0].ExpiringSoon)

	assert.Equal(t, models.StatusActive, rows[1].Status)
	assert.True(t, rows[1].ExpiringSoon)
	assert.Equal(t, 4, rows[1].DaysLeft)
	assert.Equal(t, "Alice Brown", rows[1].MemberName)

	yearly, err := a.Payments("year")
	require.NoError(t, err)
	require.Len(t, yearly, 1)
	assert.Equal(t, "p2", yearly[0].ID)
}

func TestPaymentExpiredLater(t *testing.T) {
	a := newTestApp(t)
	a.now = func() time.Time { return time.Date(2024, 4, 2, 8, 0, 0, 0, time.Local) }
	loginAs(t, a, models.RoleMember, "m1")

	rows, err := a.Payments("")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusExpired, rows[0].Status)
}

func TestAddPaymentDerivesEndDate(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleAdministrator, "")

	p, err := a.AddPayment(models.PaymentInput{MemberID: "m2", Amount: 150, StartDate: "2024-01-31", PlanType: "Monthly"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", p.EndDate.String())
	assert.Equal(t, models.StatusActive, p.Status)
}

func TestOrphanedPaymentAfterMemberDelete(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleAdministrator, "")

	_, removed, err := a.DeleteMember("m1")
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	rows, err := a.Payments("")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.False(t, rows[0].Orphaned)
	assert.True(t, rows[1].Orphaned)
	assert.Empty(t, rows[1].MemberName)

	rec := httptest.NewRecorder()
	a.Metrics().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "bbg_cascaded_workouts_total 2")
	assert.Contains(t, rec.Body.String(), `bbg_mutations_total{action="delete",kind="member",outcome="ok"} 1`)
}

func TestCaptainAddMemberDefaultsToSelf(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleCaptain, "c3")

	m, err := a.AddMember(models.MemberInput{Name: "Cara Lee", Email: "cara@example.com", JoinDate: "2024-03-20"})
	require.NoError(t, err)
	assert.Equal(t, "c3", m.CaptainID)

	_, err = a.AddMember(models.MemberInput{Name: "Dan Roe", Email: "dan@example.com", JoinDate: "2024-03-20", CaptainID: "c1"})
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestCaptainCannotDeleteOtherCaptainsMember(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleCaptain, "c1")

	_, _, err := a.DeleteMember("m2")
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, _, err = a.DeleteMember("m1")
	assert.NoError(t, err)
}

func TestMemberPermissions(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleMember, "m2")

	_, err := a.AddCaptain(models.CaptainInput{Name: "X Y", Specialization: "Z", Experience: "1 year"})
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = a.AddPayment(models.PaymentInput{MemberID: "m2", Amount: 1, StartDate: "2024-01-01", PlanType: "Monthly"})
	assert.ErrorIs(t, err, access.ErrForbidden)

	w, err := a.AddWorkout(models.WorkoutInput{EquipmentID: "e2", Date: "2024-03-20", Sets: 3, Reps: 8, Weight: 20, Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, "m2", w.MemberID)

	_, err = a.DeleteWorkout("w1")
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = a.DeleteWorkout(w.ID)
	assert.NoError(t, err)
}

func TestValidationBlocksInsert(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleAdministrator, "")

	_, err := a.AddEquipment(models.EquipmentInput{Name: "Bench", Type: "Weights", Condition: "Broken", Quantity: 0})
	var verrs models.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "quantity must be at least 1", verrs.Field("quantity"))
	assert.Equal(t, "condition must be one of: Good, Fair, Poor", verrs.Field("condition"))

	items, err := a.Equipment()
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestIntegrityErrorsSurface(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleAdministrator, "")

	_, err := a.DeleteCaptain("c2")
	var ref *storage.ReferenceError
	require.True(t, errors.As(err, &ref))
	assert.Equal(t, 1, ref.Count)

	_, err = a.DeleteEquipment("e3")
	assert.ErrorIs(t, err, storage.ErrReferenced)

	_, err = a.AddMember(models.MemberInput{Name: "Eve", Email: "eve@example.com", JoinDate: "2024-03-01", CaptainID: "c9"})
	assert.ErrorIs(t, err, storage.ErrMissingReference)

	_, err = a.DeleteWorkout("w404")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeletedIdentityIsLoggedOut(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleMember, "m2")

	_, _, err := a.Store().DeleteMember("m2")
	require.NoError(t, err)

	_, err = a.Whoami()
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, err = a.Login(models.RoleMember, "m2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	a := newTestApp(t)

	loginAs(t, a, models.RoleAdministrator, "")
	stats, err := a.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMembers)
	assert.Equal(t, 3, stats.Captains)
	assert.Equal(t, 17, stats.EquipmentCount)
	assert.Equal(t, 4, stats.TotalWorkouts)
	assert.Equal(t, []DateCount{{"2024-03-10", 1}, {"2024-03-11", 1}, {"2024-03-12", 2}}, stats.WorkoutsByDate)
	assert.Equal(t, []ConditionCount{{models.ConditionGood, 2}, {models.ConditionFair, 1}}, stats.ByCondition)

	loginAs(t, a, models.RoleCaptain, "c1")
	stats, err = a.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMembers, "captains see the full member count")
	assert.Equal(t, 2, stats.TotalWorkouts)

	loginAs(t, a, models.RoleMember, "m1")
	stats, err = a.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMembers)
	assert.Equal(t, "Alice Brown", stats.Identity.Name)
}

func TestNewRecordsListFirst(t *testing.T) {
	a := newTestApp(t)
	loginAs(t, a, models.RoleAdministrator, "")

	w, err := a.AddWorkout(models.WorkoutInput{MemberID: "m2", EquipmentID: "e2", Date: "2024-03-27", Sets: 2, Reps: 8, Weight: 20, Duration: 25})
	require.NoError(t, err)
	p, err := a.AddPayment(models.PaymentInput{MemberID: "m1", Amount: 50, StartDate: "2024-04-01", PlanType: "Monthly"})
	require.NoError(t, err)

	workouts, err := a.Workouts()
	require.NoError(t, err)
	require.Len(t, workouts, 5)
	assert.Equal(t, w.ID, workouts[0].ID)
	assert.Equal(t, "w1", workouts[4].ID)

	payments, err := a.Payments("")
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, p.ID, payments[0].ID)
	assert.Equal(t, "p1", payments[2].ID)
}
