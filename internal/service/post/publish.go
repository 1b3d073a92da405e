package post

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// PublishReport summarises a PublishDue run.
type PublishReport struct {
	Claimed   int
	Published int
	Failed    int
	// Stale counts posts abandoned in publishing by an earlier run.
	Stale int
}

const (
	staleError    = "publishing was interrupted"
	internalError = "publishing aborted by an internal error"
)

// PublishDue claims scheduled posts whose time has come and delivers each
// to every active account on its target platforms. A post is published when
// at least one delivery succeeded. A post that hits an internal error is
// marked failed and the rest of the batch still runs. Posts left in
// publishing by an interrupted run are failed once they exceed staleAfter.
func (s *Service) PublishDue(ctx context.Context) (PublishReport, error) {
	var report PublishReport

	stale, err := s.posts.FailStale(ctx, s.now().Add(-staleAfter), staleError)
	if err != nil {
		s.log.WarnContext(ctx, "stale publishing sweep failed", slog.String("error", err.Error()))
	}
	report.Stale = int(stale)

	due, err := s.posts.ClaimDue(ctx, s.now(), dueBatch)
	if err != nil {
		return report, fmt.Errorf("post.PublishDue claim: %w", err)
	}
	report.Claimed = len(due)

	for i := range due {
		if ctx.Err() != nil {
			s.release(ctx, due[i:])
			return report, fmt.Errorf("post.PublishDue: %w", ctx.Err())
		}

		p := &due[i]
		ok, err := s.publishPost(ctx, p)
		switch {
		case err != nil:
			report.Failed++
			s.abandon(ctx, p, err)
		case ok:
			report.Published++
		default:
			report.Failed++
		}
	}

	if report.Claimed > 0 || report.Stale > 0 {
		s.log.InfoContext(ctx, "due posts processed",
			slog.Int("claimed", report.Claimed),
			slog.Int("published", report.Published),
			slog.Int("failed", report.Failed),
			slog.Int("stale", report.Stale),
		)
	}
	return report, nil
}

// abandon marks a post failed after an internal error. If that write fails
// too, the post stays in publishing until the stale sweep picks it up.
func (s *Service) abandon(ctx context.Context, p *domain.Post, cause error) {
	s.log.ErrorContext(ctx, "publish post",
		slog.String("post_id", p.ID.String()),
		slog.String("error", cause.Error()),
	)
	msg := internalError
	if err := s.posts.MarkResult(context.WithoutCancel(ctx), p.ID, domain.PostStatusFailed, nil, &msg); err != nil {
		s.log.ErrorContext(ctx, "mark post failed",
			slog.String("post_id", p.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// release puts claimed posts that were never attempted back to scheduled.
func (s *Service) release(ctx context.Context, posts []domain.Post) {
	ctx = context.WithoutCancel(ctx)
	for i := range posts {
		if err := s.posts.MarkResult(ctx, posts[i].ID, domain.PostStatusScheduled, nil, nil); err != nil {
			s.log.ErrorContext(ctx, "release claimed post",
				slog.String("post_id", posts[i].ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

// publishPost fans the post out to its accounts and records the outcome.
// Provider failures become failed deliveries, not errors.
func (s *Service) publishPost(ctx context.Context, p *domain.Post) (bool, error) {
	accounts, err := s.accounts.ListActiveByPlatforms(ctx, p.UserID, p.Platforms)
	if err != nil {
		return false, fmt.Errorf("list accounts: %w", err)
	}

	deliveries := make([]domain.PostDelivery, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(publishConcurrency)
	for i := range accounts {
		a := &accounts[i]
		g.Go(func() error {
			deliveries[i] = s.deliver(gctx, p, a)
			return nil
		})
	}
	_ = g.Wait()

	if len(deliveries) > 0 {
		if err := s.posts.CreateDeliveries(ctx, deliveries); err != nil {
			return false, fmt.Errorf("record deliveries: %w", err)
		}
	}

	succeeded := 0
	var failures []string
	for _, d := range deliveries {
		if d.Status == domain.DeliveryStatusSucceeded {
			succeeded++
			continue
		}
		failures = append(failures, d.Platform.String()+": "+d.ErrorCode.String())
	}
	if len(accounts) == 0 {
		failures = append(failures, "no connected accounts for target platforms")
	}

	if succeeded > 0 {
		now := s.now()
		var lastErr *string
		if len(failures) > 0 {
			lastErr = joinFailures(failures)
		}
		if err := s.posts.MarkResult(ctx, p.ID, domain.PostStatusPublished, &now, lastErr); err != nil {
			return false, fmt.Errorf("mark published: %w", err)
		}
		return true, nil
	}

	if err := s.posts.MarkResult(ctx, p.ID, domain.PostStatusFailed, nil, joinFailures(failures)); err != nil {
		return false, fmt.Errorf("mark failed: %w", err)
	}
	return false, nil
}

func (s *Service) deliver(ctx context.Context, p *domain.Post, a *domain.SocialAccount) domain.PostDelivery {
	d := domain.PostDelivery{
		ID:        uuid.New(),
		PostID:    p.ID,
		AccountID: a.ID,
		Platform:  a.Platform,
		CreatedAt: s.now(),
	}

	externalID, err := s.publisher.Publish(ctx, a, p.Content, p.MediaURLs)
	if err != nil {
		code := domain.CodeOf(err)
		if code == domain.ErrCodeUnknown {
			code = domain.ErrCodePublishFailed
		}
		d.Status = domain.DeliveryStatusFailed
		d.ErrorCode = &code
		s.log.WarnContext(ctx, "delivery failed",
			slog.String("post_id", p.ID.String()),
			slog.String("account_id", a.ID.String()),
			slog.String("code", code.String()),
			slog.String("error", err.Error()),
		)
		return d
	}

	d.Status = domain.DeliveryStatusSucceeded
	d.ExternalPostID = &externalID
	return d
}

func joinFailures(failures []string) *string {
	sort.Strings(failures)
	s := strings.Join(failures, "; ")
	return &s
}
