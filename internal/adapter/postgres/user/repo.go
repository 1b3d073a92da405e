// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const table = "users"

var columns = []string{"id", "email", "username", "name", "avatar_url", "created_at", "updated_at"}

type row struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Username  string    `db:"username"`
	Name      string    `db:"name"`
	AvatarURL *string   `db:"avatar_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Email:     r.Email,
		Username:  r.Username,
		Name:      r.Name,
		AvatarURL: r.AvatarURL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id})

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return got.toDomain(), nil
}

// GetByEmail returns a user by email address, case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where("lower(email) = lower(?)", email)

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}
	return got.toDomain(), nil
}

// Create inserts a new user. The ID and timestamps are assigned by the database.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.Builder().Insert(table).
		Columns("email", "username", "name", "avatar_url").
		Values(u.Email, u.Username, u.Name, u.AvatarURL).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.Email)
	}
	return got.toDomain(), nil
}

// Update changes profile fields. Nil arguments leave the column as is; an
// empty avatar URL clears it.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, name *string, avatarURL *string) (*domain.User, error) {
	q := postgres.Builder().Update(table).
		Set("name", squirrel.Expr("COALESCE(?, name)", name)).
		Set("avatar_url", squirrel.Expr("CASE WHEN ?::text IS NULL THEN avatar_url ELSE NULLIF(?::text, '') END", avatarURL, avatarURL)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return got.toDomain(), nil
}
