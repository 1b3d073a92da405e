package token

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const resetTable = "password_reset_tokens"

var resetColumns = []string{"id", "user_id", "token_hash", "expires_at", "used_at", "created_at"}

type resetRow struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

func (r resetRow) toDomain() *domain.PasswordResetToken {
	return &domain.PasswordResetToken{
		ID:        r.ID,
		UserID:    r.UserID,
		TokenHash: r.TokenHash,
		ExpiresAt: r.ExpiresAt,
		UsedAt:    r.UsedAt,
		CreatedAt: r.CreatedAt,
	}
}

// ResetRepo stores single-use password reset grants.
type ResetRepo struct {
	db postgres.Querier
}

// NewResetRepo creates a password reset token repository.
func NewResetRepo(db postgres.Querier) *ResetRepo {
	return &ResetRepo{db: db}
}

// Create inserts a reset token hash for userID.
func (r *ResetRepo) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.PasswordResetToken, error) {
	q := postgres.Builder().Insert(resetTable).
		Columns("user_id", "token_hash", "expires_at").
		Values(userID, tokenHash, expiresAt).
		Suffix("RETURNING " + strings.Join(resetColumns, ", "))

	got, err := postgres.Get[resetRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_token", userID)
	}
	return got.toDomain(), nil
}

// Consume marks an unused, unexpired token as used and returns it.
// A second call with the same hash returns domain.ErrNotFound.
func (r *ResetRepo) Consume(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	q := postgres.Builder().Update(resetTable).
		Set("used_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"token_hash": tokenHash, "used_at": nil}).
		Where("expires_at > now()").
		Suffix("RETURNING " + strings.Join(resetColumns, ", "))

	got, err := postgres.Get[resetRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_token", "")
	}
	return got.toDomain(), nil
}

// InvalidateAllByUser marks every outstanding token of the user as used.
func (r *ResetRepo) InvalidateAllByUser(ctx context.Context, userID uuid.UUID) error {
	q := postgres.Builder().Update(resetTable).
		Set("used_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"user_id": userID, "used_at": nil})

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q); err != nil {
		return postgres.MapError(err, "password_reset_token", userID)
	}
	return nil
}

// DeleteExpired removes used or expired reset tokens and returns the count.
func (r *ResetRepo) DeleteExpired(ctx context.Context) (int, error) {
	q := postgres.Builder().Delete(resetTable).
		Where(squirrel.Or{
			squirrel.Expr("expires_at <= now()"),
			squirrel.NotEq{"used_at": nil},
		})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return 0, postgres.MapError(err, "password_reset_token", "")
	}
	return int(n), nil
}
