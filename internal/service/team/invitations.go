package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/auth"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/pkg/ctxutil"
)

// Invite is a stored invitation plus its raw token. The token is returned
// only here; the store keeps its hash.
type Invite struct {
	Invitation *domain.TeamInvitation
	Token      string
}

// Invite invites an email address into the caller's team.
func (s *Service) Invite(ctx context.Context, input InviteInput) (*Invite, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	input.Email = strings.TrimSpace(input.Email)
	if err := input.Validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(input.Email)

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("team.Invite get owner: %w", err)
	}
	if strings.EqualFold(owner.Email, email) {
		return nil, domain.NewValidationError("email", "cannot invite yourself")
	}

	count, err := s.team.CountMembers(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("team.Invite count members: %w", err)
	}
	if s.cfg.MaxMembers > 0 && count >= s.cfg.MaxMembers {
		return nil, domain.NewValidationError("team", fmt.Sprintf("team is full (max %d members)", s.cfg.MaxMembers))
	}

	raw, hash, err := auth.NewOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("team.Invite generate token: %w", err)
	}

	now := s.now()
	inv, err := s.team.CreateInvitation(ctx, &domain.TeamInvitation{
		OwnerID:   ownerID,
		Email:     email,
		Role:      domain.TeamRole(input.Role),
		TokenHash: hash,
		Status:    domain.InvitationPending,
		ExpiresAt: now.Add(s.cfg.InvitationTTL),
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("team.Invite: %w", err)
	}

	s.log.InfoContext(ctx, "invitation created",
		slog.String("owner_id", ownerID.String()),
		slog.String("invitation_id", inv.ID.String()),
		slog.String("role", inv.Role.String()),
	)
	return &Invite{Invitation: inv, Token: raw}, nil
}

// ListInvitations returns the invitations the caller has sent.
func (s *Service) ListInvitations(ctx context.Context) ([]domain.TeamInvitation, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	invs, err := s.team.ListInvitations(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("team.ListInvitations: %w", err)
	}
	return invs, nil
}

// RevokeInvitation withdraws one of the caller's pending invitations.
func (s *Service) RevokeInvitation(ctx context.Context, id uuid.UUID) error {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.team.RevokeInvitation(ctx, ownerID, id, s.now()); err != nil {
		return fmt.Errorf("team.RevokeInvitation: %w", err)
	}
	return nil
}

// AcceptInvitation joins the caller to the inviting team. The caller's
// email must be the invited one.
func (s *Service) AcceptInvitation(ctx context.Context, token string) (*domain.TeamMember, error) {
	user, inv, err := s.openInvitation(ctx, token)
	if err != nil {
		return nil, err
	}

	var member *domain.TeamMember
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.team.Respond(txCtx, inv.ID, domain.InvitationAccepted, s.now()); err != nil {
			return err
		}
		m, err := s.team.AddMember(txCtx, &domain.TeamMember{
			OwnerID:      inv.OwnerID,
			MemberUserID: user.ID,
			Email:        user.Email,
			Role:         inv.Role,
		})
		if err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("team.AcceptInvitation: %w", err)
	}

	s.log.InfoContext(ctx, "invitation accepted",
		slog.String("owner_id", inv.OwnerID.String()),
		slog.String("user_id", user.ID.String()),
	)
	return member, nil
}

// DeclineInvitation refuses an invitation addressed to the caller.
func (s *Service) DeclineInvitation(ctx context.Context, token string) error {
	_, inv, err := s.openInvitation(ctx, token)
	if err != nil {
		return err
	}

	if err := s.team.Respond(ctx, inv.ID, domain.InvitationDeclined, s.now()); err != nil {
		return fmt.Errorf("team.DeclineInvitation: %w", err)
	}
	return nil
}

// ExpireInvitations closes pending invitations past their expiry.
func (s *Service) ExpireInvitations(ctx context.Context) (int, error) {
	n, err := s.team.ExpireInvitations(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("team.ExpireInvitations: %w", err)
	}
	if n > 0 {
		s.log.InfoContext(ctx, "invitations expired", slog.Int("count", n))
	}
	return n, nil
}

// openInvitation resolves token to an invitation the caller may answer.
// Unknown tokens return ErrNotFound, closed invitations ErrConflict, and
// invitations for another email ErrForbidden.
func (s *Service) openInvitation(ctx context.Context, token string) (*domain.User, *domain.TeamInvitation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, nil, domain.ErrUnauthorized
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, domain.NewValidationError("token", "required")
	}

	inv, err := s.team.GetInvitationByHash(ctx, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get invitation: %w", err)
	}
	if !inv.IsOpen(s.now()) {
		return nil, nil, fmt.Errorf("invitation is %s: %w", inv.Status, domain.ErrConflict)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if !strings.EqualFold(user.Email, inv.Email) || inv.OwnerID == user.ID {
		return nil, nil, domain.ErrForbidden
	}
	return user, inv, nil
}
