package post

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	ListActiveByPlatformsFunc func(ctx context.Context, userID uuid.UUID, platforms []domain.Platform) ([]domain.SocialAccount, error)

	calls struct {
		ListActiveByPlatforms []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			Platforms []domain.Platform
		}
	}
	lockListActiveByPlatforms sync.RWMutex
}

func (mock *accountRepoMock) ListActiveByPlatforms(ctx context.Context, userID uuid.UUID, platforms []domain.Platform) ([]domain.SocialAccount, error) {
	if mock.ListActiveByPlatformsFunc == nil {
		panic("accountRepoMock.ListActiveByPlatformsFunc: method is nil but accountRepo.ListActiveByPlatforms was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		Platforms []domain.Platform
	}{Ctx: ctx, UserID: userID, Platforms: platforms}
	mock.lockListActiveByPlatforms.Lock()
	mock.calls.ListActiveByPlatforms = append(mock.calls.ListActiveByPlatforms, callInfo)
	mock.lockListActiveByPlatforms.Unlock()
	return mock.ListActiveByPlatformsFunc(ctx, userID, platforms)
}

func (mock *accountRepoMock) ListActiveByPlatformsCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	Platforms []domain.Platform
} {
	mock.lockListActiveByPlatforms.RLock()
	calls := mock.calls.ListActiveByPlatforms
	mock.lockListActiveByPlatforms.RUnlock()
	return calls
}
