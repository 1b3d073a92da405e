package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/service/connect"
)

var _ connectService = &connectServiceMock{}

type connectServiceMock struct {
	StartAuthFunc      func(ctx context.Context, p domain.Platform) (*connect.AuthStart, error)
	HandleCallbackFunc func(ctx context.Context, p domain.Platform, params connect.CallbackParams) string
	CompleteAuthFunc   func(ctx context.Context, p domain.Platform, token string) (*domain.SocialAccount, error)

	calls struct {
		StartAuth []struct {
			Ctx context.Context
			P   domain.Platform
		}
		HandleCallback []struct {
			Ctx    context.Context
			P      domain.Platform
			Params connect.CallbackParams
		}
		CompleteAuth []struct {
			Ctx   context.Context
			P     domain.Platform
			Token string
		}
	}
	lockStartAuth      sync.RWMutex
	lockHandleCallback sync.RWMutex
	lockCompleteAuth   sync.RWMutex
}

func (mock *connectServiceMock) StartAuth(ctx context.Context, p domain.Platform) (*connect.AuthStart, error) {
	if mock.StartAuthFunc == nil {
		panic("connectServiceMock.StartAuthFunc: method is nil but connectService.StartAuth was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Platform
	}{Ctx: ctx, P: p}
	mock.lockStartAuth.Lock()
	mock.calls.StartAuth = append(mock.calls.StartAuth, callInfo)
	mock.lockStartAuth.Unlock()
	return mock.StartAuthFunc(ctx, p)
}

func (mock *connectServiceMock) StartAuthCalls() []struct {
	Ctx context.Context
	P   domain.Platform
} {
	mock.lockStartAuth.RLock()
	calls := mock.calls.StartAuth
	mock.lockStartAuth.RUnlock()
	return calls
}

func (mock *connectServiceMock) HandleCallback(ctx context.Context, p domain.Platform, params connect.CallbackParams) string {
	if mock.HandleCallbackFunc == nil {
		panic("connectServiceMock.HandleCallbackFunc: method is nil but connectService.HandleCallback was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		P      domain.Platform
		Params connect.CallbackParams
	}{Ctx: ctx, P: p, Params: params}
	mock.lockHandleCallback.Lock()
	mock.calls.HandleCallback = append(mock.calls.HandleCallback, callInfo)
	mock.lockHandleCallback.Unlock()
	return mock.HandleCallbackFunc(ctx, p, params)
}

func (mock *connectServiceMock) HandleCallbackCalls() []struct {
	Ctx    context.Context
	P      domain.Platform
	Params connect.CallbackParams
} {
	mock.lockHandleCallback.RLock()
	calls := mock.calls.HandleCallback
	mock.lockHandleCallback.RUnlock()
	return calls
}

func (mock *connectServiceMock) CompleteAuth(ctx context.Context, p domain.Platform, token string) (*domain.SocialAccount, error) {
	if mock.CompleteAuthFunc == nil {
		panic("connectServiceMock.CompleteAuthFunc: method is nil but connectService.CompleteAuth was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		P     domain.Platform
		Token string
	}{Ctx: ctx, P: p, Token: token}
	mock.lockCompleteAuth.Lock()
	mock.calls.CompleteAuth = append(mock.calls.CompleteAuth, callInfo)
	mock.lockCompleteAuth.Unlock()
	return mock.CompleteAuthFunc(ctx, p, token)
}

func (mock *connectServiceMock) CompleteAuthCalls() []struct {
	Ctx   context.Context
	P     domain.Platform
	Token string
} {
	mock.lockCompleteAuth.RLock()
	calls := mock.calls.CompleteAuth
	mock.lockCompleteAuth.RUnlock()
	return calls
}
