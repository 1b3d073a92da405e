package scheduler

import (
	"context"

	"github.com/heartmarshall/ewasl-backend/internal/config"
	"github.com/heartmarshall/ewasl-backend/internal/service/account"
	"github.com/heartmarshall/ewasl-backend/internal/service/post"
)

// Job names.
const (
	JobPublishDue        = "publish_due"
	JobRefreshTokens     = "refresh_tokens"
	JobExpireInvitations = "expire_invitations"
	JobCleanupTokens     = "cleanup_tokens"
)

type duePublisher interface {
	PublishDue(ctx context.Context) (post.PublishReport, error)
}

type tokenRefresher interface {
	RefreshExpiring(ctx context.Context) (account.RefreshResult, error)
}

type invitationExpirer interface {
	ExpireInvitations(ctx context.Context) (int, error)
}

type tokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

// Services are the job targets. The services log their own results.
type Services struct {
	Posts    duePublisher
	Accounts tokenRefresher
	Team     invitationExpirer
	Auth     tokenCleaner
}

// Jobs builds the standard job set from cfg.
func Jobs(cfg config.SchedulerConfig, svc Services) []Job {
	return []Job{
		{
			Name: JobPublishDue,
			Spec: cfg.PublishSpec,
			Run: func(ctx context.Context) error {
				_, err := svc.Posts.PublishDue(ctx)
				return err
			},
		},
		{
			Name: JobRefreshTokens,
			Spec: cfg.RefreshSpec,
			Run: func(ctx context.Context) error {
				_, err := svc.Accounts.RefreshExpiring(ctx)
				return err
			},
		},
		{
			Name: JobExpireInvitations,
			Spec: cfg.MaintenanceSpec,
			Run: func(ctx context.Context) error {
				_, err := svc.Team.ExpireInvitations(ctx)
				return err
			},
		},
		{
			Name: JobCleanupTokens,
			Spec: cfg.MaintenanceSpec,
			Run: func(ctx context.Context) error {
				_, err := svc.Auth.CleanupExpiredTokens(ctx)
				return err
			},
		},
	}
}
