// Command cleanup-tokens deletes expired refresh tokens and password reset
// grants. The server's scheduler does the same on its maintenance spec;
// this command is for deployments that run with the scheduler disabled.
//
// Usage:
//
//	cleanup-tokens
//
// Uses the server configuration (environment or .env).
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ewasl-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/ewasl-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	refresh, err := token.New(pool).DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("cleanup refresh tokens: %v", err)
	}
	resets, err := token.NewResetRepo(pool).DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("cleanup reset tokens: %v", err)
	}

	logger.Info("token cleanup finished", slog.Int("refresh_tokens", refresh), slog.Int("reset_tokens", resets))
	fmt.Printf("Deleted %d refresh tokens and %d reset grants.\n", refresh, resets)
}
