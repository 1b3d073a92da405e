package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/ewasl-backend/internal/auth"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// RequestPasswordReset issues a single-use reset token for the account
// behind email. Returns ErrNotFound for unknown emails and for users
// without a password; callers must not reveal the difference.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*PasswordReset, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if errs := validateEmail(nil, email); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("auth.RequestPasswordReset get user: %w", err)
	}

	if _, err := s.authMethods.GetByUserAndMethod(ctx, user.ID, domain.AuthMethodPassword); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("auth.RequestPasswordReset get auth method: %w", err)
	}

	raw, hash, err := auth.NewOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("auth.RequestPasswordReset generate token: %w", err)
	}

	expiresAt := s.now().Add(s.cfg.ResetTokenTTL)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// one live grant per user
		if err := s.resets.InvalidateAllByUser(txCtx, user.ID); err != nil {
			return fmt.Errorf("invalidate previous: %w", err)
		}
		if _, err := s.resets.Create(txCtx, user.ID, hash, expiresAt); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.RequestPasswordReset: %w", err)
	}

	s.log.InfoContext(ctx, "password reset requested", slog.String("user_id", user.ID.String()))

	return &PasswordReset{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     raw,
		ExpiresAt: expiresAt,
	}, nil
}

// ResetPassword redeems a reset token, replaces the password hash and
// signs the user out everywhere. Used, expired or unknown tokens yield
// ErrUnauthorized.
func (s *Service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	input.Token = strings.TrimSpace(input.Token)
	if err := input.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword hash password: %w", err)
	}

	var userID string
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		grant, err := s.resets.Consume(txCtx, auth.HashToken(input.Token))
		if err != nil {
			return err
		}
		userID = grant.UserID.String()

		if err := s.authMethods.UpdatePasswordHash(txCtx, grant.UserID, string(hash)); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if err := s.tokens.RevokeAllByUser(txCtx, grant.UserID); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "invalid password reset token")
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("auth.ResetPassword: %w", err)
	}

	s.log.InfoContext(ctx, "password reset", slog.String("user_id", userID))
	return nil
}
