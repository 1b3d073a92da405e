package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const (
	pendingPrefix    = "oauth:pending:"
	claimPrefix      = "oauth:claim:"
	completionPrefix = "oauth:completion:"
	aliasPrefix      = "oauth:completion-state:"
)

// OAuthStateStore holds PendingAuth records between StartAuth and the
// provider callback, and Completion records until the client collects them.
//
// The pending record is deleted only after the completion is written, so
// a poller never observes a gap where neither exists.
type OAuthStateStore struct {
	rdb           redis.Cmdable
	pendingTTL    time.Duration
	completionTTL time.Duration
}

// NewOAuthStateStore creates a store. TTLs bound how long an abandoned
// attempt or an uncollected completion survives.
func NewOAuthStateStore(rdb redis.Cmdable, pendingTTL, completionTTL time.Duration) *OAuthStateStore {
	return &OAuthStateStore{rdb: rdb, pendingTTL: pendingTTL, completionTTL: completionTTL}
}

// SavePending stores p under its state. A state collision returns domain.ErrAlreadyExists.
func (s *OAuthStateStore) SavePending(ctx context.Context, p *domain.PendingAuth) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending auth: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, pendingPrefix+p.State, data, s.pendingTTL).Result()
	if err != nil {
		return fmt.Errorf("save pending auth: %w", err)
	}
	if !ok {
		return fmt.Errorf("pending auth %s: %w", p.State, domain.ErrAlreadyExists)
	}
	return nil
}

// ClaimPending returns the pending record for state and marks it claimed.
// Unknown or expired states return domain.ErrNotFound; a second claim
// returns domain.ErrConflict.
func (s *OAuthStateStore) ClaimPending(ctx context.Context, state string) (*domain.PendingAuth, error) {
	raw, err := s.rdb.Get(ctx, pendingPrefix+state).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("pending auth: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get pending auth: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, claimPrefix+state, 1, s.pendingTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("claim pending auth: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("pending auth already claimed: %w", domain.ErrConflict)
	}

	var p domain.PendingAuth
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshal pending auth: %w", err)
	}
	return &p, nil
}

// DropPending deletes the pending record for state. Unknown states are a no-op.
func (s *OAuthStateStore) DropPending(ctx context.Context, state string) error {
	if err := s.rdb.Del(ctx, pendingPrefix+state).Err(); err != nil {
		return fmt.Errorf("drop pending auth: %w", err)
	}
	return nil
}

// SaveCompletion stores c under its token and aliases it by state, then
// drops the pending record.
func (s *OAuthStateStore) SaveCompletion(ctx context.Context, c *domain.Completion) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal completion: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, completionPrefix+c.Token, data, s.completionTTL)
		if c.State != "" {
			pipe.Set(ctx, aliasPrefix+c.State, c.Token, s.completionTTL)
			pipe.Del(ctx, pendingPrefix+c.State)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save completion: %w", err)
	}
	return nil
}

// ConsumeCompletion returns and deletes the completion for token.
// A second call returns domain.ErrNotFound.
func (s *OAuthStateStore) ConsumeCompletion(ctx context.Context, token string) (*domain.Completion, error) {
	raw, err := s.rdb.GetDel(ctx, completionPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("completion: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("consume completion: %w", err)
	}

	var c domain.Completion
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("unmarshal completion: %w", err)
	}
	if c.State != "" {
		if err := s.rdb.Del(ctx, aliasPrefix+c.State).Err(); err != nil {
			return nil, fmt.Errorf("drop completion alias: %w", err)
		}
	}
	return &c, nil
}

// ConsumeByState is ConsumeCompletion addressed by correlation state.
// While the attempt is still waiting for its callback it returns domain.ErrPending.
func (s *OAuthStateStore) ConsumeByState(ctx context.Context, state string) (*domain.Completion, error) {
	token, err := s.rdb.GetDel(ctx, aliasPrefix+state).Result()
	if err == nil {
		return s.ConsumeCompletion(ctx, token)
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("resolve completion alias: %w", err)
	}

	n, err := s.rdb.Exists(ctx, pendingPrefix+state).Result()
	if err != nil {
		return nil, fmt.Errorf("check pending auth: %w", err)
	}
	if n > 0 {
		return nil, domain.ErrPending
	}
	return nil, fmt.Errorf("completion: %w", domain.ErrNotFound)
}
