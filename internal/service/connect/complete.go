package connect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/pkg/ctxutil"
)

// CompleteAuth collects the result of a callback. token is either the
// one-shot completion token from a redirect landing page or the state
// returned by StartAuth.
//
// Each completion is handed out once: a second call returns
// domain.ErrNotFound. While the callback has not landed it returns
// domain.ErrPending. A failed attempt returns its *domain.ConnectError.
func (s *Service) CompleteAuth(ctx context.Context, p domain.Platform, token string) (*domain.SocialAccount, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.NewValidationError("token", "required")
	}

	c, err := s.states.ConsumeCompletion(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		c, err = s.states.ConsumeByState(ctx, token)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPending):
			return nil, domain.ErrPending
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("connect.CompleteAuth: %w", err)
	}

	// someone else's or another platform's completion is as good as absent
	if c.UserID != userID || c.Platform != p {
		return nil, domain.ErrNotFound
	}
	if !c.Succeeded() {
		code := c.Code
		if code == "" {
			code = domain.ErrCodeUnknown
		}
		return nil, domain.NewConnectError(p, code, nil)
	}

	account, err := s.accounts.GetByID(ctx, userID, *c.AccountID)
	if err != nil {
		return nil, fmt.Errorf("connect.CompleteAuth get account: %w", err)
	}
	return account, nil
}
