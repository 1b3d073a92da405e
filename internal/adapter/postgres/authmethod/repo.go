// Package authmethod implements the AuthMethod repository using PostgreSQL.
package authmethod

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const table = "auth_methods"

var columns = []string{"id", "user_id", "method", "password_hash", "created_at", "updated_at"}

type row struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Method       string    `db:"method"`
	PasswordHash *string   `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.AuthMethod {
	return &domain.AuthMethod{
		ID:           r.ID,
		UserID:       r.UserID,
		Method:       domain.AuthMethodType(r.Method),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Repo provides auth method persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new auth method repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a credential for a user.
func (r *Repo) Create(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error) {
	q := postgres.Builder().Insert(table).
		Columns("user_id", "method", "password_hash").
		Values(am.UserID, am.Method.String(), am.PasswordHash).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "auth_method", am.UserID)
	}
	return got.toDomain(), nil
}

// GetByUserAndMethod returns the user's credential of the given type.
func (r *Repo) GetByUserAndMethod(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"user_id": userID, "method": method.String()})

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "auth_method", userID)
	}
	return got.toDomain(), nil
}

// UpdatePasswordHash replaces the password hash of the user's password credential.
func (r *Repo) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error {
	q := postgres.Builder().Update(table).
		Set("password_hash", hash).
		Where(squirrel.Eq{"user_id": userID, "method": domain.AuthMethodPassword.String()})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "auth_method", userID)
	}
	if n == 0 {
		return postgres.MapError(domain.ErrNotFound, "auth_method", userID)
	}
	return nil
}
