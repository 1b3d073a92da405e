// Package team implements team member and invitation persistence using PostgreSQL.
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

const membersTable = "team_members"

var memberColumns = []string{"id", "owner_id", "member_user_id", "email", "role", "created_at"}

type memberRow struct {
	ID           uuid.UUID `db:"id"`
	OwnerID      uuid.UUID `db:"owner_id"`
	MemberUserID uuid.UUID `db:"member_user_id"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r memberRow) toDomain() domain.TeamMember {
	return domain.TeamMember{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		MemberUserID: r.MemberUserID,
		Email:        r.Email,
		Role:         domain.TeamRole(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}

type countRow struct {
	N int `db:"n"`
}

// Repo provides team persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new team repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListMembers returns the owner's team, oldest member first.
func (r *Repo) ListMembers(ctx context.Context, ownerID uuid.UUID) ([]domain.TeamMember, error) {
	q := postgres.Builder().Select(memberColumns...).From(membersTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at", "id")

	rows, err := postgres.Select[memberRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "team_member", ownerID)
	}

	out := make([]domain.TeamMember, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// CountMembers returns the size of the owner's team.
func (r *Repo) CountMembers(ctx context.Context, ownerID uuid.UUID) (int, error) {
	q := postgres.Builder().Select("count(*) AS n").From(membersTable).
		Where(squirrel.Eq{"owner_id": ownerID})

	got, err := postgres.Get[countRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return 0, postgres.MapError(err, "team_member", ownerID)
	}
	return got.N, nil
}

// AddMember inserts a member. Adding the same user twice returns domain.ErrAlreadyExists.
func (r *Repo) AddMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	q := postgres.Builder().Insert(membersTable).
		Columns("owner_id", "member_user_id", "email", "role").
		Values(m.OwnerID, m.MemberUserID, m.Email, m.Role.String()).
		Suffix("RETURNING " + strings.Join(memberColumns, ", "))

	got, err := postgres.Get[memberRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "team_member", m.MemberUserID)
	}
	out := got.toDomain()
	return &out, nil
}

// UpdateMemberRole changes the role of one of the owner's members.
func (r *Repo) UpdateMemberRole(ctx context.Context, ownerID, id uuid.UUID, role domain.TeamRole) (*domain.TeamMember, error) {
	q := postgres.Builder().Update(membersTable).
		Set("role", role.String()).
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		Suffix("RETURNING " + strings.Join(memberColumns, ", "))

	got, err := postgres.Get[memberRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "team_member", id)
	}
	out := got.toDomain()
	return &out, nil
}

// RemoveMember deletes one of the owner's members.
func (r *Repo) RemoveMember(ctx context.Context, ownerID, id uuid.UUID) error {
	q := postgres.Builder().Delete(membersTable).
		Where(squirrel.Eq{"id": id, "owner_id": ownerID})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "team_member", id)
	}
	if n == 0 {
		return postgres.MapError(domain.ErrNotFound, "team_member", id)
	}
	return nil
}
