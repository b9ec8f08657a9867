// ABOUTME: Tests for the JSON API using Fiber's in-process app.Test.
// ABOUTME: Checks status codes per error kind and the problem+json body shape.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/bbg/internal/app"
	"github.com/harperreed/bbg/internal/logging"
	"github.com/harperreed/bbg/internal/metrics"
	"github.com/harperreed/bbg/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.Open(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Load(storage.DemoData()))

	now := time.Date(2024, 3, 28, 9, 0, 0, 0, time.Local)
	a := app.New(store,
		app.WithClock(func() time.Time { return now }),
		app.WithMetrics(metrics.New()),
	)
	return New(a, logging.Discard())
}

func do(t *testing.T, s *Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.Handler().Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var out map[string]any
	if len(raw) > 0 && (raw[0] == '{') {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func loginAs(t *testing.T, s *Server, role, id string) {
	t.Helper()
	resp, _ := do(t, s, http.MethodPost, "/session", `{"role":"`+role+`","id":"`+id+`"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	_, body := do(t, s, http.MethodGet, "/session", "")
	assert.Equal(t, false, body["logged_in"])

	resp, body := do(t, s, http.MethodPost, "/session", `{"role":"captain","id":"c1"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	ident := body["identity"].(map[string]any)
	assert.Equal(t, "captain", ident["role"])
	assert.Equal(t, "john.doe@bbg.com", ident["email"])

	resp, _ = do(t, s, http.MethodDelete, "/session", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body = do(t, s, http.MethodGet, "/session", "")
	assert.Equal(t, false, body["logged_in"])
}

func TestLoginErrors(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, http.MethodPost, "/session", `{"role":"owner"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "urn:bbg:problem:bad-request", body["type"])

	resp, _ = do(t, s, http.MethodPost, "/session", `{"role":"member","id":"m404"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnauthorizedWithoutSession(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, http.MethodGet, "/members", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "urn:bbg:problem:unauthorized", body["type"])
	assert.Equal(t, float64(401), body["status"])
	assert.Equal(t, "/members", body["instance"])
}

func TestCaptainSeesOwnMembers(t *testing.T) {
	s := newTestServer(t)
	loginAs(t, s, "captain", "c2")

	resp, body := do(t, s, http.MethodGet, "/members", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	members := body["members"].([]any)
	require.Len(t, members, 1)
	assert.Equal(t, "m2", members[0].(map[string]any)["id"])

	_, body = do(t, s, http.MethodGet, "/payments", "")
	assert.Empty(t, body["payments"])
}

func TestValidationProblem(t *testing.T) {
	s := newTestServer(t)
	loginAs(t, s, "admin", "")

	resp, body := do(t, s, http.MethodPost, "/members", `{"name":"Eve","email":"not-an-email","join_date":"2024-03-01","captain_id":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "urn:bbg:problem:invalid-form", body["type"])

	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].(map[string]any)["field"])
	assert.Equal(t, "email must be a valid email address", errs[0].(map[string]any)["message"])
}

func TestForbidden(t *testing.T) {
	s := newTestServer(t)
	loginAs(t, s, "member", "m1")

	resp, body := do(t, s, http.MethodPost, "/captains", `{"name":"A B","specialization":"C","experience":"1 year"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "urn:bbg:problem:forbidden", body["type"])
}

func TestBlockedDeleteIsConflict(t *testing.T) {
	s := newTestServer(t)
	loginAs(t, s, "admin", "")

	resp, body := do(t, s, http.MethodDelete, "/captains/c1", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, float64(1), body["blocking_count"])
	assert.Contains(t, body["detail"], "currently assigned to 1 member(s)")

	resp, _ = do(t, s, http.MethodDelete, "/equipment/e2", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = do(t, s, http.MethodPost, "/workouts", `{"member_id":"m9","equipment_id":"e1","date":"2024-03-20","sets":1,"reps":1,"duration":10}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeleteMemberCascade(t *testing.T) {
	s := newTestServer(t)
	loginAs(t, s, "admin", "")

	resp, body := do(t, s, http.MethodDelete, "/members/m1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.ElementsMatch(t, []any{"w1", "w3"}, body["removed_workouts"])

	_, body = do(t, s, http.MethodGet, "/workouts", "")
	assert.Len(t, body["workouts"], 2)

	_, body = do(t, s, http.MethodGet, "/payments", "")
	payments := body["payments"].([]any)
	require.Len(t, payments, 2)
	assert.Equal(t, true, payments[1].(map[string]any)["orphaned"])

	resp, _ = do(t, s, http.MethodDelete, "/members/m1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateAndListEquipment(t *testing.T) {
	s := newTestServer(t)
	loginAs(t, s, "member", "m2")

	resp, body := do(t, s, http.MethodPost, "/equipment", `{"name":"Spin Bike","type":"Cardio","condition":"Good","quantity":4}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)
	assert.True(t, strings.HasPrefix(id, "e-"))

	resp, _ = do(t, s, http.MethodDelete, "/equipment/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreatePayment(t *testing.T) {
	s := newTestServer(t)
	loginAs(t, s, "admin", "")

	resp, body := do(t, s, http.MethodPost, "/payments", `{"member_id":"m2","amount":500,"start_date":"2024-02-29","plan_type":"Yearly"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "2025-02-28", body["end_date"])
	assert.Equal(t, "Active", body["status"])

	_, body = do(t, s, http.MethodGet, "/payments?q=bob", "")
	assert.Len(t, body["payments"], 2)
}

func TestDashboardEndpoint(t *testing.T) {
	s := newTestServer(t)
	loginAs(t, s, "member", "m1")

	resp, body := do(t, s, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total_members"])
	assert.Equal(t, float64(2), body["total_workouts"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	loginAs(t, s, "admin", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.Handler().Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `bbg_logins_total{outcome="ok",role="admin"} 1`)
}
