package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthMethodType represents the type of login credential.
type AuthMethodType string

const (
	AuthMethodPassword AuthMethodType = "password"
)

func (m AuthMethodType) String() string { return string(m) }

// IsValid returns true if the method type is a known value.
func (m AuthMethodType) IsValid() bool {
	return m == AuthMethodPassword
}

// AuthMethod represents a login credential for a user.
// PasswordHash is a bcrypt hash; plaintext passwords are never stored.
type AuthMethod struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Method       AuthMethodType
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
