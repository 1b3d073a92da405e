// Package account implements the SocialAccount repository using PostgreSQL.
// Access tokens, refresh tokens and OAuth 1.0a secrets are sealed before
// they are written and opened after they are read.
package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const table = "social_accounts"

var columns = []string{
	"id", "user_id", "platform", "external_id", "username", "display_name", "avatar_url",
	"access_token", "refresh_token", "token_secret", "token_expires_at", "status",
	"created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// sealer encrypts credentials at rest.
type sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
	SealPtr(plain *string) (*string, error)
	OpenPtr(sealed *string) (*string, error)
}

type row struct {
	ID             uuid.UUID  `db:"id"`
	UserID         uuid.UUID  `db:"user_id"`
	Platform       string     `db:"platform"`
	ExternalID     string     `db:"external_id"`
	Username       string     `db:"username"`
	DisplayName    string     `db:"display_name"`
	AvatarURL      *string    `db:"avatar_url"`
	AccessToken    string     `db:"access_token"`
	RefreshToken   *string    `db:"refresh_token"`
	TokenSecret    *string    `db:"token_secret"`
	TokenExpiresAt *time.Time `db:"token_expires_at"`
	Status         string     `db:"status"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// Repo provides social account persistence backed by PostgreSQL.
type Repo struct {
	db     postgres.Querier
	sealer sealer
}

// New creates a new account repository.
func New(db postgres.Querier, s sealer) *Repo {
	return &Repo{db: db, sealer: s}
}

// Upsert stores an account produced by an OAuth callback. Reconnecting the
// same external account refreshes its profile and credentials and marks it active.
func (r *Repo) Upsert(ctx context.Context, a *domain.SocialAccount) (*domain.SocialAccount, error) {
	sealed, err := r.seal(a)
	if err != nil {
		return nil, err
	}

	q := postgres.Builder().Insert(table).
		Columns("user_id", "platform", "external_id", "username", "display_name", "avatar_url",
			"access_token", "refresh_token", "token_secret", "token_expires_at", "status").
		Values(a.UserID, a.Platform.String(), a.ExternalID, a.Username, a.DisplayName, a.AvatarURL,
			sealed.access, sealed.refresh, sealed.secret, a.TokenExpiresAt, domain.AccountStatusActive.String()).
		Suffix(`ON CONFLICT (user_id, platform, external_id) DO UPDATE SET
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			avatar_url = EXCLUDED.avatar_url,
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(EXCLUDED.refresh_token, social_accounts.refresh_token),
			token_secret = EXCLUDED.token_secret,
			token_expires_at = EXCLUDED.token_expires_at,
			status = EXCLUDED.status ` + returning)

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "social_account", a.ExternalID)
	}
	return r.toDomain(got)
}

// Create inserts a manually added account. A duplicate external id for the
// same user and platform returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, a *domain.SocialAccount) (*domain.SocialAccount, error) {
	sealed, err := r.seal(a)
	if err != nil {
		return nil, err
	}

	status := a.Status
	if status == "" {
		status = domain.AccountStatusActive
	}

	q := postgres.Builder().Insert(table).
		Columns("user_id", "platform", "external_id", "username", "display_name", "avatar_url",
			"access_token", "refresh_token", "token_secret", "token_expires_at", "status").
		Values(a.UserID, a.Platform.String(), a.ExternalID, a.Username, a.DisplayName, a.AvatarURL,
			sealed.access, sealed.refresh, sealed.secret, a.TokenExpiresAt, status.String()).
		Suffix(returning)

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "social_account", a.ExternalID)
	}
	return r.toDomain(got)
}

// GetByID returns the user's account by id.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SocialAccount, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id, "user_id": userID})

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "social_account", id)
	}
	return r.toDomain(got)
}

// ListByUser returns every account of the user, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SocialAccount, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	return r.list(ctx, q, userID)
}

// ListActiveByPlatforms returns the user's active accounts on any of platforms.
func (r *Repo) ListActiveByPlatforms(ctx context.Context, userID uuid.UUID, platforms []domain.Platform) ([]domain.SocialAccount, error) {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = p.String()
	}

	q := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"user_id": userID, "status": domain.AccountStatusActive.String()}).
		Where(squirrel.Eq{"platform": names}).
		OrderBy("platform", "created_at")

	return r.list(ctx, q, userID)
}

// ListExpiring returns active, refreshable accounts whose token expires before cutoff.
func (r *Repo) ListExpiring(ctx context.Context, cutoff time.Time, limit uint64) ([]domain.SocialAccount, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"status": domain.AccountStatusActive.String()}).
		Where(squirrel.NotEq{"refresh_token": nil}).
		Where(squirrel.Lt{"token_expires_at": cutoff}).
		OrderBy("token_expires_at").
		Limit(limit)

	return r.list(ctx, q, uuid.Nil)
}

// UpdateTokens replaces the credentials after a refresh. A nil refreshToken
// keeps the stored one.
func (r *Repo) UpdateTokens(ctx context.Context, id uuid.UUID, accessToken string, refreshToken *string, expiresAt *time.Time) error {
	access, err := r.sealer.Seal(accessToken)
	if err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}
	refresh, err := r.sealer.SealPtr(refreshToken)
	if err != nil {
		return fmt.Errorf("seal refresh token: %w", err)
	}

	q := postgres.Builder().Update(table).
		Set("access_token", access).
		Set("refresh_token", squirrel.Expr("COALESCE(?, refresh_token)", refresh)).
		Set("token_expires_at", expiresAt).
		Set("status", domain.AccountStatusActive.String()).
		Where(squirrel.Eq{"id": id})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "social_account", id)
	}
	if n == 0 {
		return postgres.MapError(domain.ErrNotFound, "social_account", id)
	}
	return nil
}

// SetStatus changes the connection status of an account.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error {
	q := postgres.Builder().Update(table).
		Set("status", status.String()).
		Where(squirrel.Eq{"id": id})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "social_account", id)
	}
	if n == 0 {
		return postgres.MapError(domain.ErrNotFound, "social_account", id)
	}
	return nil
}

// Delete removes the user's account. Unknown ids return domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := postgres.Builder().Delete(table).
		Where(squirrel.Eq{"id": id, "user_id": userID})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "social_account", id)
	}
	if n == 0 {
		return postgres.MapError(domain.ErrNotFound, "social_account", id)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, q squirrel.Sqlizer, key uuid.UUID) ([]domain.SocialAccount, error) {
	rows, err := postgres.Select[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "social_account", key)
	}

	out := make([]domain.SocialAccount, 0, len(rows))
	for i := range rows {
		a, err := r.toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

type sealedTokens struct {
	access  string
	refresh *string
	secret  *string
}

func (r *Repo) seal(a *domain.SocialAccount) (sealedTokens, error) {
	var (
		out sealedTokens
		err error
	)
	if out.access, err = r.sealer.Seal(a.AccessToken); err != nil {
		return out, fmt.Errorf("seal access token: %w", err)
	}
	if out.refresh, err = r.sealer.SealPtr(a.RefreshToken); err != nil {
		return out, fmt.Errorf("seal refresh token: %w", err)
	}
	if out.secret, err = r.sealer.SealPtr(a.TokenSecret); err != nil {
		return out, fmt.Errorf("seal token secret: %w", err)
	}
	return out, nil
}

func (r *Repo) toDomain(rec *row) (*domain.SocialAccount, error) {
	access, err := r.sealer.Open(rec.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("open access token of %s: %w", rec.ID, err)
	}
	refresh, err := r.sealer.OpenPtr(rec.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("open refresh token of %s: %w", rec.ID, err)
	}
	secret, err := r.sealer.OpenPtr(rec.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("open token secret of %s: %w", rec.ID, err)
	}

	return &domain.SocialAccount{
		ID:             rec.ID,
		UserID:         rec.UserID,
		Platform:       domain.Platform(rec.Platform),
		ExternalID:     rec.ExternalID,
		Username:       rec.Username,
		DisplayName:    rec.DisplayName,
		AvatarURL:      rec.AvatarURL,
		AccessToken:    access,
		RefreshToken:   refresh,
		TokenSecret:    secret,
		TokenExpiresAt: rec.TokenExpiresAt,
		Status:         domain.AccountStatus(rec.Status),
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}, nil
}
