package models

import (
	"time"
)

// User represents the users table in the database. The password is
// stored as a bcrypt hash and never leaves the service.
type User struct {
	UserId       int64     `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
