package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrDuplicateName      = errors.New("name already exists for this owner")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGameNotFound       = errors.New("gametype not found")

	// ErrRatingRowMissing means the roster manager failed to keep the
	// player x gametype rating cross-join intact. It is an internal
	// consistency fault, not a user error.
	ErrRatingRowMissing = errors.New("rating row missing for player/gametype pair")
)

// ValidationError reports a malformed match submission shape.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid submission: " + e.Reason
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
