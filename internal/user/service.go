package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushours/officehours/internal/identity"
)

var ErrBadCredentials = errors.New("invalid credentials")

type Service struct {
	repo   Repository
	tokens *identity.TokenManager
}

func NewService(repo Repository, tokens *identity.TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, username, password string, role identity.Role) (User, error) {
	hash, err := identity.HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// Login checks credentials and issues an access token carrying the subject
// id and role. Unknown user and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, username, password string) (token string, role identity.Role, err error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", "", ErrBadCredentials
		}
		return "", "", fmt.Errorf("load user: %w", err)
	}

	if !identity.CheckPassword(u.PasswordHash, password) {
		return "", "", ErrBadCredentials
	}

	token, err = s.tokens.Issue(identity.Claims{Subject: u.ID, Role: u.Role})
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}
	return token, u.Role, nil
}
