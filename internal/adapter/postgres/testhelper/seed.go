package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a unique email and username.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + suffix + "@example.com",
		Username:  "testuser-" + suffix,
		Name:      "Test User " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Username, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedSocialAccount links an active account on platform to userID.
// Token columns receive opaque placeholder values; they are not decryptable.
func SeedSocialAccount(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, platform domain.Platform) domain.SocialAccount {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	acc := domain.SocialAccount{
		ID:          uuid.New(),
		UserID:      userID,
		Platform:    platform,
		ExternalID:  "ext-" + suffix,
		Username:    "handle_" + suffix,
		DisplayName: "Handle " + suffix,
		AccessToken: "sealed-" + suffix,
		Status:      domain.AccountStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO social_accounts
		   (id, user_id, platform, external_id, username, display_name, access_token, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		acc.ID, acc.UserID, acc.Platform.String(), acc.ExternalID, acc.Username, acc.DisplayName,
		acc.AccessToken, acc.Status.String(), acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSocialAccount: %v", err)
	}

	return acc
}

// SeedPost creates a draft post for userID targeting platforms.
func SeedPost(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, platforms ...domain.Platform) domain.Post {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	post := domain.Post{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   "hello from " + uniqueSuffix(),
		Platforms: platforms,
		MediaURLs: []string{},
		Status:    domain.PostStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = p.String()
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO posts (id, user_id, content, platforms, media_urls, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		post.ID, post.UserID, post.Content, names, post.MediaURLs, post.Status.String(), post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPost: %v", err)
	}

	return post
}
