package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// LoginWithPassword authenticates a dashboard user by email and password.
// Unknown emails, accounts without a password and wrong passwords all yield
// ErrUnauthorized, and each of them pays for one bcrypt comparison.
func (s *Service) LoginWithPassword(ctx context.Context, input LoginPasswordInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, hash, err := s.passwordCredentials(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithPassword: %w", err)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(input.Password)) != nil || user == nil {
		s.log.InfoContext(ctx, "password login rejected", slog.String("email_domain", emailDomain(input.Email)))
		return nil, domain.ErrUnauthorized
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithPassword issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in via password", slog.String("user_id", user.ID.String()))
	return result, nil
}

// passwordCredentials returns the user and stored hash for email. When there
// is no usable password it returns a nil user with the decoy hash.
func (s *Service) passwordCredentials(ctx context.Context, email string) (*domain.User, []byte, error) {
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, s.decoyHash(), nil
	case err != nil:
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	am, err := s.authMethods.GetByUserAndMethod(ctx, user.ID, domain.AuthMethodPassword)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, s.decoyHash(), nil
	case err != nil:
		return nil, nil, fmt.Errorf("get auth method: %w", err)
	case am.PasswordHash == nil:
		return nil, s.decoyHash(), nil
	}
	return user, []byte(*am.PasswordHash), nil
}

func emailDomain(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}
