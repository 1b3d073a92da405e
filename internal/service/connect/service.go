// Package connect runs the server half of the social connect flow: it
// starts provider handshakes, receives provider callbacks and hands the
// result to the polling client exactly once.
package connect

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/adapter/provider/social"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/platform"
)

type provider interface {
	Configured(p domain.Platform) bool
	Begin(ctx context.Context, p domain.Platform, state string) (*social.Grant, error)
	Exchange(ctx context.Context, pending *domain.PendingAuth, params social.Params) (*social.Tokens, error)
	FetchProfile(ctx context.Context, p domain.Platform, tokens *social.Tokens) (*social.Profile, error)
}

type stateStore interface {
	SavePending(ctx context.Context, p *domain.PendingAuth) error
	ClaimPending(ctx context.Context, state string) (*domain.PendingAuth, error)
	DropPending(ctx context.Context, state string) error
	SaveCompletion(ctx context.Context, c *domain.Completion) error
	ConsumeCompletion(ctx context.Context, token string) (*domain.Completion, error)
	ConsumeByState(ctx context.Context, state string) (*domain.Completion, error)
}

type accountRepo interface {
	Upsert(ctx context.Context, a *domain.SocialAccount) (*domain.SocialAccount, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SocialAccount, error)
}

// Service implements StartAuth, HandleCallback and CompleteAuth.
type Service struct {
	log       *slog.Logger
	registry  *platform.Registry
	provider  provider
	states    stateStore
	accounts  accountRepo
	publicURL string
	now       func() time.Time
	newToken  func() (string, error)
}

// NewService creates a connect service. publicURL is the dashboard origin
// the callback redirects the browser to.
func NewService(
	logger *slog.Logger,
	registry *platform.Registry,
	provider provider,
	states stateStore,
	accounts accountRepo,
	publicURL string,
) *Service {
	return &Service{
		log:       logger.With("service", "connect"),
		registry:  registry,
		provider:  provider,
		states:    states,
		accounts:  accounts,
		publicURL: publicURL,
		now:       func() time.Time { return time.Now().UTC() },
		newToken:  randomToken,
	}
}
