package post

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/pkg/ctxutil"
)

// Create composes a post. Posts with a schedule start in scheduled,
// others in draft.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Post, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	status := domain.PostStatusDraft
	if input.ScheduledAt != nil {
		if err := s.checkFuture(*input.ScheduledAt); err != nil {
			return nil, err
		}
		status = domain.PostStatusScheduled
	}

	p, err := s.posts.Create(ctx, &domain.Post{
		ID:          uuid.New(),
		UserID:      userID,
		Content:     strings.TrimSpace(input.Content),
		Platforms:   toPlatforms(input.Platforms),
		MediaURLs:   input.MediaURLs,
		ScheduledAt: input.ScheduledAt,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("post.Create: %w", err)
	}

	s.log.InfoContext(ctx, "post created",
		slog.String("user_id", userID.String()),
		slog.String("post_id", p.ID.String()),
		slog.String("status", p.Status.String()),
	)
	return p, nil
}

// Get returns one of the caller's posts.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	p, err := s.posts.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("post.Get: %w", err)
	}
	return p, nil
}

// List returns a page of the caller's posts and the total count.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Post, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	f := domain.PostFilter{Limit: uint64(limit), Offset: uint64(input.Offset)}
	if input.Status != nil {
		st := domain.PostStatus(*input.Status)
		f.Status = &st
	}

	posts, total, err := s.posts.List(ctx, userID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("post.List: %w", err)
	}
	return posts, total, nil
}

// Update edits a post that has not been handed to publishers. Editing a
// failed post returns it to draft.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Post, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.posts.GetByID(ctx, userID, input.ID)
	if err != nil {
		return nil, fmt.Errorf("post.Update get: %w", err)
	}
	if !p.Status.IsEditable() {
		return nil, fmt.Errorf("post %s is %s: %w", p.ID, p.Status, domain.ErrConflict)
	}

	if input.Content != nil {
		p.Content = strings.TrimSpace(*input.Content)
	}
	if input.Platforms != nil {
		p.Platforms = toPlatforms(input.Platforms)
	}
	if input.MediaURLs != nil {
		p.MediaURLs = input.MediaURLs
	}
	// limits depend on the combination of content and targets
	if err := Validate(p); err != nil {
		return nil, err
	}
	if p.Status == domain.PostStatusFailed {
		p.Status = domain.PostStatusDraft
		p.LastError = nil
	}
	p.UpdatedAt = s.now()

	updated, err := s.posts.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("post.Update: %w", err)
	}
	return updated, nil
}

// Delete removes one of the caller's posts.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.posts.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("post.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "post deleted",
		slog.String("user_id", userID.String()),
		slog.String("post_id", id.String()),
	)
	return nil
}

// Schedule sets the publish time of an editable post. at must be in the future.
func (s *Service) Schedule(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Post, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := s.checkFuture(at); err != nil {
		return nil, err
	}

	p, err := s.posts.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("post.Schedule get: %w", err)
	}
	if !p.Status.IsEditable() {
		return nil, fmt.Errorf("post %s is %s: %w", p.ID, p.Status, domain.ErrConflict)
	}

	at = at.UTC()
	p.ScheduledAt = &at
	p.Status = domain.PostStatusScheduled
	p.LastError = nil
	p.UpdatedAt = s.now()

	updated, err := s.posts.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("post.Schedule: %w", err)
	}

	s.log.InfoContext(ctx, "post scheduled",
		slog.String("post_id", p.ID.String()),
		slog.Time("scheduled_at", at),
	)
	return updated, nil
}

// Deliveries returns the publish attempts recorded for one of the caller's posts.
func (s *Service) Deliveries(ctx context.Context, id uuid.UUID) ([]domain.PostDelivery, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.posts.GetByID(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("post.Deliveries get: %w", err)
	}
	ds, err := s.posts.ListDeliveries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post.Deliveries: %w", err)
	}
	return ds, nil
}

func (s *Service) checkFuture(at time.Time) error {
	if !at.After(s.now()) {
		return domain.NewValidationError("scheduled_at", "must be in the future")
	}
	return nil
}
