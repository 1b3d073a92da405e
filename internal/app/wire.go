package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	accountrepo "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres/account"
	"github.com/heartmarshall/ewasl-backend/internal/adapter/postgres/authmethod"
	postrepo "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres/post"
	teamrepo "github.com/heartmarshall/ewasl-backend/internal/adapter/postgres/team"
	"github.com/heartmarshall/ewasl-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/ewasl-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/ewasl-backend/internal/adapter/provider/social"
	"github.com/heartmarshall/ewasl-backend/internal/adapter/redisstore"
	"github.com/heartmarshall/ewasl-backend/internal/adapter/supabase"
	"github.com/heartmarshall/ewasl-backend/internal/auth"
	"github.com/heartmarshall/ewasl-backend/internal/config"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/platform"
	"github.com/heartmarshall/ewasl-backend/internal/scheduler"
	"github.com/heartmarshall/ewasl-backend/internal/service/account"
	authsvc "github.com/heartmarshall/ewasl-backend/internal/service/auth"
	connectsvc "github.com/heartmarshall/ewasl-backend/internal/service/connect"
	"github.com/heartmarshall/ewasl-backend/internal/service/post"
	"github.com/heartmarshall/ewasl-backend/internal/service/team"
	usersvc "github.com/heartmarshall/ewasl-backend/internal/service/user"
	"github.com/heartmarshall/ewasl-backend/internal/transport/middleware"
	"github.com/heartmarshall/ewasl-backend/internal/transport/rest"
)

// services holds the wired application services.
type services struct {
	auth     *authsvc.Service
	connect  *connectsvc.Service
	accounts *account.Service
	posts    *post.Service
	team     *team.Service
	users    *usersvc.Service
}

// newServices builds repositories and services on top of the pool and redis.
func newServices(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, rdb redis.Cmdable) (*services, error) {
	sealer, err := auth.NewTokenSealer(cfg.Connect.TokenEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("token sealer: %w", err)
	}
	jwtManager := auth.NewJWTManager(cfg.Auth.SessionSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	txm := postgres.NewTxManager(pool)

	users := user.New(pool)
	accounts := accountrepo.New(pool, sealer)

	registry := platform.Default()
	providers := social.NewClient(registry, platformCredentials(cfg.Platforms), logger)
	states := redisstore.NewOAuthStateStore(rdb, cfg.Connect.StateTTL, cfg.Connect.CompletionTTL)

	return &services{
		auth: authsvc.NewService(logger, users, token.New(pool), token.NewResetRepo(pool),
			authmethod.New(pool), txm, jwtManager, cfg.Auth),
		connect:  connectsvc.NewService(logger, registry, providers, states, accounts, cfg.App.PublicURL),
		accounts: account.NewService(logger, accounts, providers, cfg.Connect.RefreshWindow),
		posts:    post.NewService(logger, postrepo.New(pool), accounts, providers),
		team:     team.NewService(logger, teamrepo.New(pool), users, txm, cfg.Team),
		users:    usersvc.NewService(logger, users),
	}, nil
}

// platformCredentials maps the configured OAuth applications by platform.
func platformCredentials(cfg config.PlatformsConfig) map[domain.Platform]social.Credentials {
	creds := make(map[domain.Platform]social.Credentials, len(domain.AllPlatforms))
	for _, p := range domain.AllPlatforms {
		c, _ := cfg.For(p.String())
		creds[p] = social.Credentials{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			CallbackURL:  c.CallbackURL,
		}
	}
	return creds
}

// newMediaStorage returns nil when Supabase is not configured.
func newMediaStorage(cfg config.SupabaseConfig, logger *slog.Logger) *supabase.Storage {
	if !cfg.Enabled() {
		return nil
	}
	return supabase.NewStorage(cfg.URL, cfg.ServiceRoleKey, cfg.MediaBucket, logger)
}

// newHandler assembles the HTTP stack. The returned stop func releases the
// rate limiter's janitor.
func newHandler(cfg *config.Config, logger *slog.Logger, svc *services, pool *pgxpool.Pool, rdb redis.Cmdable, storage *supabase.Storage) (http.Handler, func()) {
	checks := []rest.Check{
		{Name: "database", Pinger: pool, Critical: true},
		{Name: "redis", Pinger: rest.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }), Critical: true},
	}
	// an interface holding a nil *Storage is not nil, so media gets an
	// explicit nil when uploads are disabled
	var media *rest.MediaHandler
	if storage != nil {
		checks = append(checks, rest.Check{Name: "storage", Pinger: storage})
		media = rest.NewMediaHandler(storage, cfg.Supabase.MaxUploadBytes, logger)
	} else {
		media = rest.NewMediaHandler(nil, cfg.Supabase.MaxUploadBytes, logger)
	}

	exposeReset := strings.EqualFold(cfg.App.Environment, "development")
	limiter := middleware.NewRateLimiter(rateLimiterCleanup)
	var limit middleware.Middleware
	if cfg.Server.RateLimitPerMin > 0 {
		limit = limiter.Limit(cfg.Server.RateLimitPerMin)
	}

	router := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(BuildVersion(), cfg.App.Environment, checks...),
		Auth:     rest.NewAuthHandler(svc.auth, cfg.App.PublicURL, exposeReset, logger),
		Connect:  rest.NewConnectHandler(svc.connect, logger),
		Accounts: rest.NewAccountHandler(svc.accounts, logger),
		Posts:    rest.NewPostHandler(svc.posts, logger),
		Team:     rest.NewTeamHandler(svc.team, cfg.App.PublicURL, logger),
		Media:    media,
		Profile:  rest.NewProfileHandler(svc.users, logger),
	}, rest.RouterDeps{
		Global: []middleware.Middleware{
			middleware.RequestID(),
			middleware.Recovery(logger),
			middleware.CORS(cfg.CORS, cfg.App.PublicURL),
		},
		Auth:  middleware.Auth(svc.auth),
		Log:   middleware.Logger(logger),
		Limit: limit,
	})
	return router, limiter.Stop
}

// newScheduler wires the background jobs, or returns nil when disabled.
func newScheduler(cfg config.SchedulerConfig, logger *slog.Logger, svc *services) (*scheduler.Scheduler, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return scheduler.New(logger, scheduler.Jobs(cfg, scheduler.Services{
		Posts:    svc.posts,
		Accounts: svc.accounts,
		Team:     svc.team,
		Auth:     svc.auth,
	}))
}
