// ABOUTME: Tests for the mutation counters and the exposition handler.
// ABOUTME: Reads counter values with prometheus testutil.
package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationCounter(t *testing.T) {
	m := New()
	m.Mutation("member", "delete", OutcomeOK)
	m.Mutation("member", "delete", OutcomeOK)
	m.Mutation("captain", "delete", OutcomeConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("member", "delete", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("captain", "delete", OutcomeConflict)))
}

func TestCascadedIgnoresZero(t *testing.T) {
	m := New()
	m.Cascaded(0)
	m.Cascaded(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cascaded))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Mutation("member", "add", OutcomeOK)
	m.Login("admin", OutcomeOK)
	m.Cascaded(3)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Login("captain", OutcomeOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bbg_logins_total{outcome="ok",role="captain"} 1`)
}
