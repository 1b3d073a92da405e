package team

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/config"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

type teamRepo interface {
	ListMembers(ctx context.Context, ownerID uuid.UUID) ([]domain.TeamMember, error)
	CountMembers(ctx context.Context, ownerID uuid.UUID) (int, error)
	AddMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	UpdateMemberRole(ctx context.Context, ownerID, id uuid.UUID, role domain.TeamRole) (*domain.TeamMember, error)
	RemoveMember(ctx context.Context, ownerID, id uuid.UUID) error
	CreateInvitation(ctx context.Context, inv *domain.TeamInvitation) (*domain.TeamInvitation, error)
	ListInvitations(ctx context.Context, ownerID uuid.UUID) ([]domain.TeamInvitation, error)
	GetInvitationByHash(ctx context.Context, tokenHash string) (*domain.TeamInvitation, error)
	Respond(ctx context.Context, id uuid.UUID, status domain.InvitationStatus, at time.Time) error
	RevokeInvitation(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error
	ExpireInvitations(ctx context.Context, now time.Time) (int, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the caller's team and the invitations addressed to them.
// Every user owns exactly one team; the owner is not listed as a member.
type Service struct {
	log   *slog.Logger
	team  teamRepo
	users userRepo
	tx    txManager
	cfg   config.TeamConfig
	now   func() time.Time
}

// NewService creates a new team service.
func NewService(
	logger *slog.Logger,
	team teamRepo,
	users userRepo,
	tx txManager,
	cfg config.TeamConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "team"),
		team:  team,
		users: users,
		tx:    tx,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}
