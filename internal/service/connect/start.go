package connect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/pkg/ctxutil"
)

// StartAuth begins a connect attempt for the caller and returns the URL of
// the provider consent page. Unconfigured platforms fail with
// missing_credentials before any state is stored.
func (s *Service) StartAuth(ctx context.Context, p domain.Platform) (*AuthStart, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	d, err := s.registry.Lookup(p)
	if err != nil {
		return nil, err
	}
	if !s.provider.Configured(p) {
		return nil, domain.NewConnectError(p, domain.ErrCodeMissingCredentials, nil)
	}

	state, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("connect.StartAuth generate state: %w", err)
	}

	grant, err := s.provider.Begin(ctx, p, state)
	if err != nil {
		return nil, fmt.Errorf("connect.StartAuth: %w", err)
	}
	if grant.AuthURL == "" {
		return nil, domain.NewConnectError(p, domain.ErrCodeMissingAuthURL, nil)
	}

	err = s.states.SavePending(ctx, &domain.PendingAuth{
		State:         state,
		Platform:      p,
		UserID:        userID,
		CodeVerifier:  grant.CodeVerifier,
		RequestToken:  grant.RequestToken,
		RequestSecret: grant.RequestSecret,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect.StartAuth save state: %w", err)
	}

	s.log.InfoContext(ctx, "connect started",
		slog.String("user_id", userID.String()),
		slog.String("platform", p.String()),
	)

	return &AuthStart{
		AuthURL:          grant.AuthURL,
		State:            state,
		Platform:         p,
		Strategy:         d.Strategy,
		OAuthToken:       grant.RequestToken,
		OAuthTokenSecret: grant.RequestSecret,
	}, nil
}
