package post

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const deliveryTable = "post_deliveries"

var deliveryColumns = []string{
	"id", "post_id", "account_id", "platform", "status", "external_post_id", "error_code", "created_at",
}

type deliveryRow struct {
	ID             uuid.UUID `db:"id"`
	PostID         uuid.UUID `db:"post_id"`
	AccountID      uuid.UUID `db:"account_id"`
	Platform       string    `db:"platform"`
	Status         string    `db:"status"`
	ExternalPostID *string   `db:"external_post_id"`
	ErrorCode      *string   `db:"error_code"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r deliveryRow) toDomain() domain.PostDelivery {
	d := domain.PostDelivery{
		ID:             r.ID,
		PostID:         r.PostID,
		AccountID:      r.AccountID,
		Platform:       domain.Platform(r.Platform),
		Status:         domain.DeliveryStatus(r.Status),
		ExternalPostID: r.ExternalPostID,
		CreatedAt:      r.CreatedAt,
	}
	if r.ErrorCode != nil {
		code := domain.ErrorCode(*r.ErrorCode)
		d.ErrorCode = &code
	}
	return d
}

// CreateDeliveries stores the per-account results of one publish run in a batch.
func (r *Repo) CreateDeliveries(ctx context.Context, ds []domain.PostDelivery) error {
	if len(ds) == 0 {
		return nil
	}

	q := postgres.Builder().Insert(deliveryTable).
		Columns("post_id", "account_id", "platform", "status", "external_post_id", "error_code")
	for _, d := range ds {
		var code *string
		if d.ErrorCode != nil {
			s := d.ErrorCode.String()
			code = &s
		}
		q = q.Values(d.PostID, d.AccountID, d.Platform.String(), string(d.Status), d.ExternalPostID, code)
	}

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q); err != nil {
		return postgres.MapError(err, "post_delivery", ds[0].PostID)
	}
	return nil
}

// ListDeliveries returns the delivery history of a post, oldest first.
func (r *Repo) ListDeliveries(ctx context.Context, postID uuid.UUID) ([]domain.PostDelivery, error) {
	q := postgres.Builder().Select(deliveryColumns...).From(deliveryTable).
		Where(squirrel.Eq{"post_id": postID}).
		OrderBy("created_at", "id")

	rows, err := postgres.Select[deliveryRow](ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return nil, postgres.MapError(err, "post_delivery", postID)
	}

	out := make([]domain.PostDelivery, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

