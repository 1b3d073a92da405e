package post

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	// dueBatch bounds how many posts one PublishDue run claims.
	dueBatch = 50
	// publishConcurrency bounds concurrent provider calls per post.
	publishConcurrency = 4
	// staleAfter is how long a post may sit in publishing before a later
	// run gives up on it. Longer than the scheduler's job timeout.
	staleAfter = 15 * time.Minute
)

type postRepo interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, userID uuid.UUID, f domain.PostFilter) ([]domain.Post, int, error)
	Update(ctx context.Context, p *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ClaimDue(ctx context.Context, now time.Time, limit uint64) ([]domain.Post, error)
	FailStale(ctx context.Context, before time.Time, lastError string) (int64, error)
	MarkResult(ctx context.Context, id uuid.UUID, status domain.PostStatus, publishedAt *time.Time, lastError *string) error
	CreateDeliveries(ctx context.Context, ds []domain.PostDelivery) error
	ListDeliveries(ctx context.Context, postID uuid.UUID) ([]domain.PostDelivery, error)
}

type accountRepo interface {
	ListActiveByPlatforms(ctx context.Context, userID uuid.UUID, platforms []domain.Platform) ([]domain.SocialAccount, error)
}

type publisher interface {
	Publish(ctx context.Context, account *domain.SocialAccount, content string, mediaURLs []string) (string, error)
}

// Service manages posts and delivers scheduled ones.
type Service struct {
	log       *slog.Logger
	posts     postRepo
	accounts  accountRepo
	publisher publisher
	now       func() time.Time
}

// NewService creates a new post service.
func NewService(
	logger *slog.Logger,
	posts postRepo,
	accounts accountRepo,
	publisher publisher,
) *Service {
	return &Service{
		log:       logger.With("service", "post"),
		posts:     posts,
		accounts:  accounts,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
