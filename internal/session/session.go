// ABOUTME: Current-identity session: login by selection, logout, lookup.
// ABOUTME: No credentials are checked; the selected record is the identity.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/harperreed/bbg/internal/models"
)

// ErrNoSession means nobody is logged in.
var ErrNoSession = errors.New("not logged in")

// Directory resolves the records an identity can be selected from.
type Directory interface {
	GetCaptain(idOrPrefix string) (*models.Captain, error)
	GetMember(idOrPrefix string) (*models.Member, error)
}

// Session holds the logged-in identity, if any. Safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	current *models.Identity
}

// New returns a logged-out session.
func New() *Session {
	return &Session{}
}

// Login selects an identity. The administrator ignores id; captains and
// members must resolve to an existing record. A failed login leaves the
// previous session in place.
func (s *Session) Login(dir Directory, role models.Role, id string) (models.Identity, error) {
	var ident models.Identity

	switch role {
	case models.RoleAdministrator:
		ident = models.Administrator()
	case models.RoleCaptain:
		c, err := dir.GetCaptain(id)
		if err != nil {
			return models.Identity{}, fmt.Errorf("login as captain %q: %w", id, err)
		}
		ident = models.CaptainIdentity(*c)
	case models.RoleMember:
		m, err := dir.GetMember(id)
		if err != nil {
			return models.Identity{}, fmt.Errorf("login as member %q: %w", id, err)
		}
		ident = models.MemberIdentity(*m)
	default:
		return models.Identity{}, fmt.Errorf("login: invalid role %s", role)
	}

	s.mu.Lock()
	s.current = &ident
	s.mu.Unlock()
	return ident, nil
}

// Logout clears the session. Logging out twice is not an error.
func (s *Session) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns a copy of the logged-in identity.
func (s *Session) Current() (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoSession
	}
	ident := *s.current
	return &ident, nil
}

// Refresh re-resolves the identity against dir and logs out if its record
// has been deleted. Lookups use the exact stored id.
func (s *Session) Refresh(dir Directory) (*models.Identity, error) {
	ident, err := s.Current()
	if err != nil {
		return nil, err
	}

	var lookupErr error
	switch ident.Role {
	case models.RoleAdministrator:
		return ident, nil
	case models.RoleCaptain:
		var c *models.Captain
		c, lookupErr = dir.GetCaptain(ident.ID)
		if lookupErr == nil && c.ID != ident.ID {
			lookupErr = errors.New("identity record replaced")
		}
	case models.RoleMember:
		var m *models.Member
		m, lookupErr = dir.GetMember(ident.ID)
		if lookupErr == nil && m.ID != ident.ID {
			lookupErr = errors.New("identity record replaced")
		}
	default:
		lookupErr = fmt.Errorf("invalid role %s", ident.Role)
	}

	if lookupErr != nil {
		s.mu.Lock()
		// Only clear if nobody logged in again meanwhile.
		if s.current != nil && s.current.ID == ident.ID && s.current.Role == ident.Role {
			s.current = nil
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s %s no longer exists", ErrNoSession, ident.Role, ident.ID)
	}
	return ident, nil
}
