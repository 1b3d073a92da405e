package team

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const invitationsTable = "team_invitations"

var invitationColumns = []string{
	"id", "owner_id", "email", "role", "token_hash", "status", "expires_at", "responded_at", "created_at",
}

type invitationRow struct {
	ID          uuid.UUID  `db:"id"`
	OwnerID     uuid.UUID  `db:"owner_id"`
	Email       string     `db:"email"`
	Role        string     `db:"role"`
	TokenHash   string     `db:"token_hash"`
	Status      string     `db:"status"`
	ExpiresAt   time.Time  `db:"expires_at"`
	RespondedAt *time.Time `db:"responded_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (r invitationRow) toDomain() domain.TeamInvitation {
	return domain.TeamInvitation{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Email:       r.Email,
		Role:        domain.TeamRole(r.Role),
		TokenHash:   r.TokenHash,
		Status:      domain.InvitationStatus(r.Status),
		ExpiresAt:   r.ExpiresAt,
		RespondedAt: r.RespondedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// CreateInvitation inserts a pending invitation. A second open invitation
// for the same address returns domain.ErrAlreadyExists.
func (r *Repo) CreateInvitation(ctx context.Context, inv *domain.TeamInvitation) (*domain.TeamInvitation, error) {
	q := postgres.Builder().Insert(invitationsTable).
		Columns("owner_id", "email", "role", "token_hash", "status", "expires_at").
		Values(inv.OwnerID, inv.Email, inv.Role.String(), inv.TokenHash, domain.InvitationPending.String(), inv.ExpiresAt).
		Suffix("RETURNING " + strings.Join(invitationColumns, ", "))

	got, err := postgres.Get[invitationRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "team_invitation", inv.Email)
	}
	out := got.toDomain()
	return &out, nil
}

// ListInvitations returns the owner's invitations, newest first.
func (r *Repo) ListInvitations(ctx context.Context, ownerID uuid.UUID) ([]domain.TeamInvitation, error) {
	q := postgres.Builder().Select(invitationColumns...).From(invitationsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id")

	rows, err := postgres.Select[invitationRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "team_invitation", ownerID)
	}

	out := make([]domain.TeamInvitation, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// GetInvitationByHash looks an invitation up by its token hash.
func (r *Repo) GetInvitationByHash(ctx context.Context, tokenHash string) (*domain.TeamInvitation, error) {
	q := postgres.Builder().Select(invitationColumns...).From(invitationsTable).
		Where(squirrel.Eq{"token_hash": tokenHash})

	got, err := postgres.Get[invitationRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "team_invitation", "")
	}
	out := got.toDomain()
	return &out, nil
}

// Respond moves a pending invitation to status. It returns domain.ErrConflict
// if the invitation is no longer pending.
func (r *Repo) Respond(ctx context.Context, id uuid.UUID, status domain.InvitationStatus, at time.Time) error {
	q := postgres.Builder().Update(invitationsTable).
		Set("status", status.String()).
		Set("responded_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.InvitationPending.String()})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "team_invitation", id)
	}
	if n == 0 {
		return postgres.MapError(domain.ErrConflict, "team_invitation", id)
	}
	return nil
}

// RevokeInvitation revokes one of the owner's pending invitations.
func (r *Repo) RevokeInvitation(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error {
	q := postgres.Builder().Update(invitationsTable).
		Set("status", domain.InvitationRevoked.String()).
		Set("responded_at", at).
		Where(squirrel.Eq{"id": id, "owner_id": ownerID, "status": domain.InvitationPending.String()})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "team_invitation", id)
	}
	if n == 0 {
		return postgres.MapError(domain.ErrNotFound, "team_invitation", id)
	}
	return nil
}

// ExpireInvitations marks pending invitations past their expiry and returns the count.
func (r *Repo) ExpireInvitations(ctx context.Context, now time.Time) (int, error) {
	q := postgres.Builder().Update(invitationsTable).
		Set("status", domain.InvitationExpired.String()).
		Where(squirrel.Eq{"status": domain.InvitationPending.String()}).
		Where(squirrel.LtOrEq{"expires_at": now})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return 0, postgres.MapError(err, "team_invitation", "")
	}
	return int(n), nil
}
