// Package identity models the verified caller the core trusts: a subject id
// plus a closed role variant. Token mechanics live here too so the rest of
// the system only ever sees Claims.
package identity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleProfessor:
		return RoleProfessor, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Claims is what an authenticated request carries into the core. The core
// never re-verifies it.
type Claims struct {
	Subject uuid.UUID
	Role    Role
}
