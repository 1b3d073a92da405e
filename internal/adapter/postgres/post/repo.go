// Package post implements post and delivery persistence using PostgreSQL.
package post

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const table = "posts"

var columns = []string{
	"id", "user_id", "content", "platforms", "media_urls", "scheduled_at", "status",
	"published_at", "last_error", "created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

type row struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id"`
	Content     string     `db:"content"`
	Platforms   []string   `db:"platforms"`
	MediaURLs   []string   `db:"media_urls"`
	ScheduledAt *time.Time `db:"scheduled_at"`
	Status      string     `db:"status"`
	PublishedAt *time.Time `db:"published_at"`
	LastError   *string    `db:"last_error"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r row) toDomain() domain.Post {
	platforms := make([]domain.Platform, len(r.Platforms))
	for i, p := range r.Platforms {
		platforms[i] = domain.Platform(p)
	}
	media := r.MediaURLs
	if media == nil {
		media = []string{}
	}
	return domain.Post{
		ID:          r.ID,
		UserID:      r.UserID,
		Content:     r.Content,
		Platforms:   platforms,
		MediaURLs:   media,
		ScheduledAt: r.ScheduledAt,
		Status:      domain.PostStatus(r.Status),
		PublishedAt: r.PublishedAt,
		LastError:   r.LastError,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func platformNames(ps []domain.Platform) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type countRow struct {
	N int `db:"n"`
}

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new post repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a post.
func (r *Repo) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	q := postgres.Builder().Insert(table).
		Columns("user_id", "content", "platforms", "media_urls", "scheduled_at", "status").
		Values(p.UserID, p.Content, platformNames(p.Platforms), nonNil(p.MediaURLs), p.ScheduledAt, p.Status.String()).
		Suffix(returning)

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "post", p.UserID)
	}
	out := got.toDomain()
	return &out, nil
}

// GetByID returns the user's post.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Post, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id, "user_id": userID})

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "post", id)
	}
	out := got.toDomain()
	return &out, nil
}

// List returns the user's posts newest first, and the total matching count.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, f domain.PostFilter) ([]domain.Post, int, error) {
	where := squirrel.Eq{"user_id": userID}
	if f.Status != nil {
		where["status"] = f.Status.String()
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	q := postgres.Builder().Select(columns...).From(table).
		Where(where).
		OrderBy("created_at DESC", "id")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	rows, err := postgres.Select[row](ctx, querier, q)
	if err != nil {
		return nil, 0, postgres.MapError(err, "post", userID)
	}

	cq := postgres.Builder().Select("count(*) AS n").From(table).Where(where)
	total, err := postgres.Get[countRow](ctx, querier, cq)
	if err != nil {
		return nil, 0, postgres.MapError(err, "post", userID)
	}

	out := make([]domain.Post, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, total.N, nil
}

// Update writes the editable fields of a post.
func (r *Repo) Update(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	q := postgres.Builder().Update(table).
		Set("content", p.Content).
		Set("platforms", platformNames(p.Platforms)).
		Set("media_urls", nonNil(p.MediaURLs)).
		Set("scheduled_at", p.ScheduledAt).
		Set("status", p.Status.String()).
		Set("last_error", p.LastError).
		Where(squirrel.Eq{"id": p.ID, "user_id": p.UserID}).
		Suffix(returning)

	got, err := postgres.Get[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "post", p.ID)
	}
	out := got.toDomain()
	return &out, nil
}

// Delete removes the user's post. Unknown ids return domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := postgres.Builder().Delete(table).Where(squirrel.Eq{"id": id, "user_id": userID})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "post", id)
	}
	if n == 0 {
		return postgres.MapError(domain.ErrNotFound, "post", id)
	}
	return nil
}

// ClaimDue moves up to limit scheduled posts whose time has come into
// publishing and returns them. Rows locked by a concurrent claimer are skipped.
func (r *Repo) ClaimDue(ctx context.Context, now time.Time, limit uint64) ([]domain.Post, error) {
	q := postgres.Builder().Update(table).
		Set("status", domain.PostStatusPublishing.String()).
		Where(squirrel.Expr(
			"id IN (SELECT id FROM posts WHERE status = ? AND scheduled_at <= ? ORDER BY scheduled_at LIMIT ? FOR UPDATE SKIP LOCKED)",
			domain.PostStatusScheduled.String(), now, limit,
		)).
		Suffix(returning)

	rows, err := postgres.Select[row](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "post", "due")
	}

	out := make([]domain.Post, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// FailStale marks posts stuck in publishing since before as failed and
// returns how many it touched.
func (r *Repo) FailStale(ctx context.Context, before time.Time, lastError string) (int64, error) {
	q := postgres.Builder().Update(table).
		Set("status", domain.PostStatusFailed.String()).
		Set("last_error", lastError).
		Where(squirrel.Eq{"status": domain.PostStatusPublishing.String()}).
		Where(squirrel.Lt{"updated_at": before})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return 0, postgres.MapError(err, "post", "stale")
	}
	return n, nil
}

// MarkResult records the outcome of a publish run.
func (r *Repo) MarkResult(ctx context.Context, id uuid.UUID, status domain.PostStatus, publishedAt *time.Time, lastError *string) error {
	q := postgres.Builder().Update(table).
		Set("status", status.String()).
		Set("published_at", publishedAt).
		Set("last_error", lastError).
		Where(squirrel.Eq{"id": id})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "post", id)
	}
	if n == 0 {
		return postgres.MapError(domain.ErrNotFound, "post", id)
	}
	return nil
}
