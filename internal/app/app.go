// ABOUTME: Application controller owning the entity store and the session.
// ABOUTME: Every surface (shell, MCP, HTTP) calls through an App.
package app

import (
	"errors"
	"time"

	"github.com/harperreed/bbg/internal/access"
	"github.com/harperreed/bbg/internal/metrics"
	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/session"
	"github.com/harperreed/bbg/internal/storage"
	"github.com/sirupsen/logrus"
)

// App is the explicit application state. It is safe for concurrent use:
// the store serializes mutations in transactions and the session has its
// own lock.
type App struct {
	store   storage.Repository
	session *session.Session
	log     *logrus.Entry
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the structured logger.
func WithLogger(log *logrus.Entry) Option {
	return func(a *App) { a.log = log }
}

// WithMetrics records mutations and logins on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithClock overrides the clock used for payment status.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New creates an App over store, starting logged out.
func New(store storage.Repository, opts ...Option) *App {
	a := &App{
		store:   store,
		session: session.New(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		a.log = logrus.NewEntry(l)
	}
	return a
}

// Store exposes the underlying repository for export and tests.
func (a *App) Store() storage.Repository {
	return a.store
}

// Metrics returns the recorder, or nil when metrics are off.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Now returns the application clock.
func (a *App) Now() time.Time {
	return a.now()
}

// Login selects an identity by role and record id.
func (a *App) Login(role models.Role, id string) (models.Identity, error) {
	ident, err := a.session.Login(a.store, role, id)
	if err != nil {
		a.metrics.Login(role.String(), outcome(err))
		return models.Identity{}, err
	}
	a.metrics.Login(role.String(), metrics.OutcomeOK)
	a.log.WithFields(logrus.Fields{"role": ident.Role, "id": ident.ID}).Info("logged in")
	return ident, nil
}

// Logout clears the session.
func (a *App) Logout() {
	a.session.Logout()
	a.log.Info("logged out")
}

// Whoami returns the current identity. If its record was deleted since
// login, the session is cleared and ErrNoSession is returned.
func (a *App) Whoami() (*models.Identity, error) {
	return a.session.Refresh(a.store)
}

// View returns the current identity and the collections it may see,
// derived from a fresh snapshot.
func (a *App) View() (*models.Identity, *models.Collections, error) {
	ident, err := a.Whoami()
	if err != nil {
		return nil, nil, err
	}
	snap, err := a.store.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	return ident, access.Visible(ident, snap), nil
}

// outcome maps an error to a metrics label.
func outcome(err error) string {
	var verrs models.ValidationErrors
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &verrs):
		return metrics.OutcomeInvalid
	case errors.Is(err, access.ErrForbidden), errors.Is(err, session.ErrNoSession):
		return metrics.OutcomeForbidden
	case errors.Is(err, storage.ErrReferenced), errors.Is(err, storage.ErrMissingReference):
		return metrics.OutcomeConflict
	case errors.Is(err, storage.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
