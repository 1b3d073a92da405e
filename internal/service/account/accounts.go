package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/pkg/ctxutil"
)

// List returns the caller's connected accounts.
func (s *Service) List(ctx context.Context) ([]domain.SocialAccount, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account.List: %w", err)
	}
	return accounts, nil
}

// Get returns one of the caller's accounts.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.SocialAccount, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	a, err := s.accounts.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("account.Get: %w", err)
	}
	return a, nil
}

// Create stores an account that did not come from a provider callback.
// The external id defaults to the username.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.SocialAccount, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	externalID := strings.TrimSpace(input.ExternalID)
	if externalID == "" {
		externalID = username
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}

	now := s.now()
	a, err := s.accounts.Create(ctx, &domain.SocialAccount{
		ID:          uuid.New(),
		UserID:      userID,
		Platform:    domain.Platform(input.Platform),
		ExternalID:  externalID,
		Username:    username,
		DisplayName: displayName,
		AvatarURL:   input.AvatarURL,
		AccessToken: input.AccessToken,
		Status:      domain.AccountStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("account.Create: %w", err)
	}

	s.log.InfoContext(ctx, "account created",
		slog.String("user_id", userID.String()),
		slog.String("account_id", a.ID.String()),
		slog.String("platform", a.Platform.String()),
	)
	return a, nil
}

// Disconnect deletes one of the caller's accounts. Unknown ids return
// domain.ErrNotFound.
func (s *Service) Disconnect(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.accounts.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("account.Disconnect: %w", err)
	}

	s.log.InfoContext(ctx, "account disconnected",
		slog.String("user_id", userID.String()),
		slog.String("account_id", id.String()),
	)
	return nil
}
