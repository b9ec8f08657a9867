// ABOUTME: Role variant and Identity for the logged-in dashboard user.
// ABOUTME: Roles are a closed set: administrator, captain, member.
package models

import (
	"fmt"
	"strings"
)

// Role identifies what kind of identity is logged in.
type Role int

const (
	RoleAdministrator Role = iota + 1
	RoleCaptain
	RoleMember
)

// AllRoles lists every valid role.
var AllRoles = []Role{RoleAdministrator, RoleCaptain, RoleMember}

// String returns the lower-case role name.
func (r Role) String() string {
	switch r {
	case RoleAdministrator:
		return "admin"
	case RoleCaptain:
		return "captain"
	case RoleMember:
		return "member"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleCaptain, RoleMember:
		return true
	default:
		return false
	}
}

// ParseRole converts a role name to a Role. "administrator" is accepted as an alias of "admin".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "administrator":
		return RoleAdministrator, nil
	case "captain":
		return RoleCaptain, nil
	case "member":
		return RoleMember, nil
	default:
		return 0, fmt.Errorf("unknown role: %q (want admin, captain or member)", s)
	}
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// AdminID is the fixed id of the administrator pseudo-identity.
const AdminID = "admin"

// Identity is the user selected at login. No credentials are attached.
type Identity struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Role  Role   `json:"role" yaml:"role"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Administrator returns the administrator pseudo-identity.
func Administrator() Identity {
	return Identity{
		ID:    AdminID,
		Name:  "System Administrator",
		Role:  RoleAdministrator,
		Email: "admin@bbg.com",
	}
}

// CaptainIdentity builds the identity for a captain record.
// The email is derived from the name: lower-cased, first space replaced by a dot.
func CaptainIdentity(c Captain) Identity {
	local := strings.Replace(strings.ToLower(c.Name), " ", ".", 1)
	return Identity{
		ID:    c.ID,
		Name:  c.Name,
		Role:  RoleCaptain,
		Email: local + "@bbg.com",
	}
}

// MemberIdentity builds the identity for a member record.
func MemberIdentity(m Member) Identity {
	return Identity{
		ID:    m.ID,
		Name:  m.Name,
		Role:  RoleMember,
		Email: m.Email,
	}
}
