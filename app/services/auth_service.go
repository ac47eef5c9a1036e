package services

import (
	"context"

	"muse/app/repositories"
)

// AuthService verifies submitted credentials against stored accounts.
type AuthService struct {
	users repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Authenticate reports whether the credentials match a registered account.
// An unknown username and a wrong password both come back false; the caller
// cannot tell them apart.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	return s.users.Authenticate(ctx, username, password)
}
