package connect

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/adapter/provider/social"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/platform"
)

const errAccessDenied = "access_denied"

// HandleCallback finishes the provider handshake and returns the dashboard
// URL to redirect the browser to. It never returns an error: failures
// become a /connect?error=... redirect, and when the attempt is known a
// failed completion is stored so a polling client learns the code too.
func (s *Service) HandleCallback(ctx context.Context, p domain.Platform, params CallbackParams) string {
	log := s.log.With(slog.String("platform", p.String()))

	d, err := s.registry.Lookup(p)
	if err != nil {
		log.WarnContext(ctx, "callback for unknown platform")
		return platform.FailureRedirect(s.publicURL, p, domain.ErrCodeUnsupportedPlatform)
	}
	if params.State == "" {
		log.WarnContext(ctx, "callback without state")
		return platform.FailureRedirect(s.publicURL, p, domain.ErrCodeInvalidState)
	}

	pending, err := s.states.ClaimPending(ctx, params.State)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrConflict) {
			log.ErrorContext(ctx, "claim pending auth", slog.String("error", err.Error()))
			return platform.FailureRedirect(s.publicURL, p, domain.ErrCodeUnknown)
		}
		log.WarnContext(ctx, "callback with unknown or reused state")
		return platform.FailureRedirect(s.publicURL, p, domain.ErrCodeInvalidState)
	}
	if pending.Platform != p {
		return s.fail(ctx, pending, domain.ErrCodeInvalidState, errors.New("state issued for "+pending.Platform.String()))
	}

	if params.Error != "" || params.Denied != "" {
		code := domain.ErrCodeExchangeFailed
		if params.Error == errAccessDenied || params.Denied != "" {
			code = domain.ErrCodeCancelled
		}
		return s.fail(ctx, pending, code, nil)
	}

	tokens, err := s.provider.Exchange(ctx, pending, social.Params{
		Code:          params.Code,
		OAuthToken:    params.OAuthToken,
		OAuthVerifier: params.OAuthVerifier,
	})
	if err != nil {
		return s.fail(ctx, pending, codeOr(err, domain.ErrCodeExchangeFailed), err)
	}

	profile, err := s.provider.FetchProfile(ctx, p, tokens)
	if err != nil {
		return s.fail(ctx, pending, codeOr(err, domain.ErrCodeProfileFailed), err)
	}

	now := s.now()
	account, err := s.accounts.Upsert(ctx, &domain.SocialAccount{
		ID:             uuid.New(),
		UserID:         pending.UserID,
		Platform:       p,
		ExternalID:     profile.ExternalID,
		Username:       profile.Username,
		DisplayName:    profile.DisplayName,
		AvatarURL:      profile.AvatarURL,
		AccessToken:    tokens.AccessToken,
		RefreshToken:   tokens.RefreshToken,
		TokenSecret:    tokens.TokenSecret,
		TokenExpiresAt: tokens.ExpiresAt,
		Status:         domain.AccountStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return s.fail(ctx, pending, domain.ErrCodeUnknown, err)
	}

	token, err := s.newToken()
	if err != nil {
		return s.fail(ctx, pending, domain.ErrCodeUnknown, err)
	}
	err = s.states.SaveCompletion(ctx, &domain.Completion{
		Token:     token,
		State:     pending.State,
		Platform:  p,
		UserID:    pending.UserID,
		AccountID: &account.ID,
		CreatedAt: now,
	})
	if err != nil {
		return s.fail(ctx, pending, domain.ErrCodeUnknown, err)
	}

	log.InfoContext(ctx, "account connected",
		slog.String("user_id", pending.UserID.String()),
		slog.String("account_id", account.ID.String()),
	)
	return platform.SuccessRedirect(s.publicURL, d, token)
}

// fail records a failed completion for the attempt and returns the
// failure redirect. When even that cannot be stored the pending record is
// dropped, so pollers get not found instead of waiting out their timeout.
func (s *Service) fail(ctx context.Context, pending *domain.PendingAuth, code domain.ErrorCode, cause error) string {
	attrs := []any{
		slog.String("platform", pending.Platform.String()),
		slog.String("user_id", pending.UserID.String()),
		slog.String("code", code.String()),
	}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
	}
	s.log.WarnContext(ctx, "connect failed", attrs...)

	token, err := s.newToken()
	if err == nil {
		err = s.states.SaveCompletion(ctx, &domain.Completion{
			Token:     token,
			State:     pending.State,
			Platform:  pending.Platform,
			UserID:    pending.UserID,
			Code:      code,
			CreatedAt: s.now(),
		})
	}
	if err != nil {
		s.log.ErrorContext(ctx, "save failed completion", slog.String("error", err.Error()))
		if err := s.states.DropPending(ctx, pending.State); err != nil {
			s.log.ErrorContext(ctx, "drop pending auth", slog.String("error", err.Error()))
		}
	}
	return platform.FailureRedirect(s.publicURL, pending.Platform, code)
}

// codeOr returns the ConnectError code carried by err, or fallback.
func codeOr(err error, fallback domain.ErrorCode) domain.ErrorCode {
	if code := domain.CodeOf(err); code != domain.ErrCodeUnknown {
		return code
	}
	return fallback
}
