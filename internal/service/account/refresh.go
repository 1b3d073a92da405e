package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// RefreshResult summarises a RefreshExpiring run.
type RefreshResult struct {
	Refreshed int
	Expired   int
}

// RefreshExpiring renews tokens that expire within the refresh window.
// An account whose refresh fails is marked expired so the user is asked to
// reconnect it; other accounts in the batch are still processed.
func (s *Service) RefreshExpiring(ctx context.Context) (RefreshResult, error) {
	var res RefreshResult

	cutoff := s.now().Add(s.refreshWindow)
	accounts, err := s.accounts.ListExpiring(ctx, cutoff, refreshBatch)
	if err != nil {
		return res, fmt.Errorf("account.RefreshExpiring list: %w", err)
	}

	for i := range accounts {
		a := &accounts[i]
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !a.CanRefresh() {
			continue
		}

		log := s.log.With(
			slog.String("account_id", a.ID.String()),
			slog.String("platform", a.Platform.String()),
		)

		tokens, err := s.refresher.Refresh(ctx, a.Platform, *a.RefreshToken)
		if err != nil {
			log.WarnContext(ctx, "token refresh failed", slog.String("error", err.Error()))
			if err := s.accounts.SetStatus(ctx, a.ID, domain.AccountStatusExpired); err != nil {
				return res, fmt.Errorf("account.RefreshExpiring mark expired: %w", err)
			}
			res.Expired++
			continue
		}

		if err := s.accounts.UpdateTokens(ctx, a.ID, tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresAt); err != nil {
			return res, fmt.Errorf("account.RefreshExpiring update: %w", err)
		}
		res.Refreshed++
	}

	if res.Refreshed > 0 || res.Expired > 0 {
		s.log.InfoContext(ctx, "tokens refreshed",
			slog.Int("refreshed", res.Refreshed),
			slog.Int("expired", res.Expired),
		)
	}
	return res, nil
}
