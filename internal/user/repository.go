package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/campushours/officehours/internal/identity"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Repository is the user directory: registration writes plus the role lookup
// the scheduling core needs to confirm a professor id.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// FindRole reports the role of an existing user. ok is false when the id
	// resolves to nobody.
	FindRole(ctx context.Context, id uuid.UUID) (role identity.Role, ok bool, err error)
}
