package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/adapter/provider/social"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// refreshBatch bounds how many accounts a single RefreshExpiring run touches.
const refreshBatch = 100

type accountRepo interface {
	Create(ctx context.Context, a *domain.SocialAccount) (*domain.SocialAccount, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SocialAccount, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SocialAccount, error)
	ListExpiring(ctx context.Context, cutoff time.Time, limit uint64) ([]domain.SocialAccount, error)
	UpdateTokens(ctx context.Context, id uuid.UUID, accessToken string, refreshToken *string, expiresAt *time.Time) error
	SetStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type tokenRefresher interface {
	Refresh(ctx context.Context, p domain.Platform, refreshToken string) (*social.Tokens, error)
}

// Service manages the social accounts linked to a user.
type Service struct {
	log           *slog.Logger
	accounts      accountRepo
	refresher     tokenRefresher
	refreshWindow time.Duration
	now           func() time.Time
}

// NewService creates a new account service. refreshWindow is how far ahead
// RefreshExpiring looks for expiring tokens.
func NewService(
	logger *slog.Logger,
	accounts accountRepo,
	refresher tokenRefresher,
	refreshWindow time.Duration,
) *Service {
	return &Service{
		log:           logger.With("service", "account"),
		accounts:      accounts,
		refresher:     refresher,
		refreshWindow: refreshWindow,
		now:           func() time.Time { return time.Now().UTC() },
	}
}
