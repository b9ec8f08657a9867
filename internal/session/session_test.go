// ABOUTME: Tests for login by selection, logout and stale-identity refresh.
// ABOUTME: Runs against a demo-seeded in-memory store.
package session

import (
	"testing"

	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Load(storage.DemoData()))
	return s
}

func TestNewSessionIsLoggedOut(t *testing.T) {
	_, err := New().Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoginAdministratorIgnoresID(t *testing.T) {
	s := New()
	ident, err := s.Login(demoStore(t), models.RoleAdministrator, "whatever")
	require.NoError(t, err)

	assert.Equal(t, models.Administrator(), ident)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "System Administrator", cur.Name)
	assert.Equal(t, "admin@bbg.com", cur.Email)
}

func TestLoginCaptain(t *testing.T) {
	s := New()
	ident, err := s.Login(demoStore(t), models.RoleCaptain, "c2")
	require.NoError(t, err)

	assert.Equal(t, models.RoleCaptain, ident.Role)
	assert.Equal(t, "Sarah Smith", ident.Name)
	assert.Equal(t, "sarah.smith@bbg.com", ident.Email)
}

func TestLoginMember(t *testing.T) {
	s := New()
	ident, err := s.Login(demoStore(t), models.RoleMember, "m1")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", ident.Email)
}

func TestFailedLoginKeepsSession(t *testing.T) {
	store := demoStore(t)
	s := New()
	_, err := s.Login(store, models.RoleMember, "m1")
	require.NoError(t, err)

	_, err = s.Login(store, models.RoleCaptain, "c404")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.Login(store, models.Role(0), "")
	assert.Error(t, err)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "m1", cur.ID)
}

func TestLogout(t *testing.T) {
	s := New()
	_, err := s.Login(demoStore(t), models.RoleAdministrator, "")
	require.NoError(t, err)

	s.Logout()
	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNoSession)

	s.Logout()
}

func TestCurrentReturnsCopy(t *testing.T) {
	s := New()
	_, err := s.Login(demoStore(t), models.RoleMember, "m2")
	require.NoError(t, err)

	cur, _ := s.Current()
	cur.ID = "tampered"

	again, _ := s.Current()
	assert.Equal(t, "m2", again.ID)
}

func TestRefreshLogsOutDeletedIdentity(t *testing.T) {
	store := demoStore(t)
	s := New()
	_, err := s.Login(store, models.RoleMember, "m1")
	require.NoError(t, err)

	ident, err := s.Refresh(store)
	require.NoError(t, err)
	assert.Equal(t, "m1", ident.ID)

	_, _, err = store.DeleteMember("m1")
	require.NoError(t, err)

	_, err = s.Refresh(store)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRefreshDoesNotMatchByPrefix(t *testing.T) {
	store := demoStore(t)
	require.NoError(t, store.AddCaptain(&models.Captain{ID: "c30", Name: "Other Captain"}))

	s := New()
	_, err := s.Login(store, models.RoleCaptain, "c3")
	require.NoError(t, err)

	_, err = store.DeleteCaptain("c3")
	require.NoError(t, err)

	// "c3" now prefixes only c30, which is a different captain.
	_, err = s.Refresh(store)
	assert.ErrorIs(t, err, ErrNoSession)
}
