package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// Register creates a dashboard user with a password login and signs them in.
// Email and username uniqueness come from DB constraints and surface as
// ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	name := input.Name
	if name == "" {
		name = input.Username
	}
	now := s.now()
	user := &domain.User{
		ID:        uuid.New(),
		Email:     input.Email,
		Username:  input.Username,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.users.Create(txCtx, user)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		hashStr := string(hash)
		if _, err := s.authMethods.Create(txCtx, &domain.AuthMethod{
			UserID:       created.ID,
			Method:       domain.AuthMethodPassword,
			PasswordHash: &hashStr,
		}); err != nil {
			return fmt.Errorf("create auth method: %w", err)
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user registered via password", slog.String("user_id", user.ID.String()))
	return result, nil
}
