package team

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/pkg/ctxutil"
)

// ListMembers returns the caller's team.
func (s *Service) ListMembers(ctx context.Context) ([]domain.TeamMember, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	members, err := s.team.ListMembers(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("team.ListMembers: %w", err)
	}
	return members, nil
}

// UpdateMemberRole changes the role of one of the caller's members.
func (s *Service) UpdateMemberRole(ctx context.Context, input UpdateRoleInput) (*domain.TeamMember, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	m, err := s.team.UpdateMemberRole(ctx, ownerID, input.MemberID, domain.TeamRole(input.Role))
	if err != nil {
		return nil, fmt.Errorf("team.UpdateMemberRole: %w", err)
	}

	s.log.InfoContext(ctx, "member role changed",
		slog.String("owner_id", ownerID.String()),
		slog.String("member_id", m.ID.String()),
		slog.String("role", m.Role.String()),
	)
	return m, nil
}

// RemoveMember removes one of the caller's members.
func (s *Service) RemoveMember(ctx context.Context, memberID uuid.UUID) error {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.team.RemoveMember(ctx, ownerID, memberID); err != nil {
		return fmt.Errorf("team.RemoveMember: %w", err)
	}

	s.log.InfoContext(ctx, "member removed",
		slog.String("owner_id", ownerID.String()),
		slog.String("member_id", memberID.String()),
	)
	return nil
}
