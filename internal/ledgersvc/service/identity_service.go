package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/eloboard/elo-services/internal/ledgersvc/store"
	"golang.org/x/crypto/bcrypt"
)

// IdentityService owns signup and credential checks. Passwords are
// bcrypt-hashed before they reach the store.
type IdentityService struct {
	store store.Ledger
}

func NewIdentityService(store store.Ledger) *IdentityService {
	return &IdentityService{store: store}
}

func (s *IdentityService) Signup(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.CreateUser(ctx, username, string(hash))
}

// Validate resolves credentials to an owner id, or reports
// models.ErrInvalidCredentials without revealing whether the username
// or the password was wrong.
func (s *IdentityService) Validate(ctx context.Context, username, password string) (int64, error) {
	u, err := s.store.GetUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return 0, models.ErrInvalidCredentials
		}
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return 0, models.ErrInvalidCredentials
	}

	return u.UserId, nil
}
