package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/campushours/officehours/internal/identity"
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         identity.Role
	CreatedAt    time.Time
}
