package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// AuthResult is returned by Register, Login and Refresh operations.
type AuthResult struct {
	AccessToken  string
	RefreshToken string // raw token, NOT hash
	ExpiresIn    int
	User         *domain.User
}

// PasswordReset is a freshly issued reset grant. Token is the raw value
// and is never stored.
type PasswordReset struct {
	UserID    uuid.UUID
	Email     string
	Token     string
	ExpiresAt time.Time
}
