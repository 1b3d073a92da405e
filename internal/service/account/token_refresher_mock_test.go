package account

import (
	"context"
	"sync"

	"github.com/heartmarshall/ewasl-backend/internal/adapter/provider/social"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

var _ tokenRefresher = &tokenRefresherMock{}

type tokenRefresherMock struct {
	RefreshFunc func(ctx context.Context, p domain.Platform, refreshToken string) (*social.Tokens, error)

	calls struct {
		Refresh []struct {
			Ctx          context.Context
			P            domain.Platform
			RefreshToken string
		}
	}
	lockRefresh sync.RWMutex
}

func (mock *tokenRefresherMock) Refresh(ctx context.Context, p domain.Platform, refreshToken string) (*social.Tokens, error) {
	if mock.RefreshFunc == nil {
		panic("tokenRefresherMock.RefreshFunc: method is nil but tokenRefresher.Refresh was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		P            domain.Platform
		RefreshToken string
	}{Ctx: ctx, P: p, RefreshToken: refreshToken}
	mock.lockRefresh.Lock()
	mock.calls.Refresh = append(mock.calls.Refresh, callInfo)
	mock.lockRefresh.Unlock()
	return mock.RefreshFunc(ctx, p, refreshToken)
}

func (mock *tokenRefresherMock) RefreshCalls() []struct {
	Ctx          context.Context
	P            domain.Platform
	RefreshToken string
} {
	mock.lockRefresh.RLock()
	calls := mock.calls.Refresh
	mock.lockRefresh.RUnlock()
	return calls
}
