package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountStatus is the connection health of a social account.
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "active"
	AccountStatusExpired AccountStatus = "expired"
	AccountStatusRevoked AccountStatus = "revoked"
)

func (s AccountStatus) String() string { return string(s) }

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusExpired, AccountStatusRevoked:
		return true
	}
	return false
}

// SocialAccount is a third-party account linked to a user.
// Token fields hold plaintext only in memory; repositories persist them sealed.
type SocialAccount struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Platform       Platform
	ExternalID     string
	Username       string
	DisplayName    string
	AvatarURL      *string
	AccessToken    string
	RefreshToken   *string
	TokenSecret    *string
	TokenExpiresAt *time.Time
	Status         AccountStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExpiresWithin reports whether the access token expires before now+d.
// Tokens without an expiry never expire.
func (a *SocialAccount) ExpiresWithin(now time.Time, d time.Duration) bool {
	if a.TokenExpiresAt == nil {
		return false
	}
	return a.TokenExpiresAt.Before(now.Add(d))
}

// CanRefresh reports whether the account carries a refresh token.
func (a *SocialAccount) CanRefresh() bool {
	return a.RefreshToken != nil && *a.RefreshToken != ""
}
