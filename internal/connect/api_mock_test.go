package connect

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

var _ API = &APIMock{}

type APIMock struct {
	StartAuthFunc     func(ctx context.Context, p domain.Platform) (*AuthResponse, error)
	CompleteAuthFunc  func(ctx context.Context, p domain.Platform, token string) (*Account, error)
	DeleteAccountFunc func(ctx context.Context, id uuid.UUID) error
	ListAccountsFunc  func(ctx context.Context) ([]Account, error)

	calls struct {
		StartAuth []struct {
			Ctx context.Context
			P   domain.Platform
		}
		CompleteAuth []struct {
			Ctx   context.Context
			P     domain.Platform
			Token string
		}
		DeleteAccount []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListAccounts []struct {
			Ctx context.Context
		}
	}
	lockStartAuth     sync.RWMutex
	lockCompleteAuth  sync.RWMutex
	lockDeleteAccount sync.RWMutex
	lockListAccounts  sync.RWMutex
}

func (mock *APIMock) StartAuth(ctx context.Context, p domain.Platform) (*AuthResponse, error) {
	if mock.StartAuthFunc == nil {
		panic("APIMock.StartAuthFunc: method is nil but API.StartAuth was just called")
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

func (mock *APIMock) StartAuthCalls() []struct {
	Ctx context.Context
	P   domain.Platform
} {
	mock.lockStartAuth.RLock()
	calls := mock.calls.StartAuth
	mock.lockStartAuth.RUnlock()
	return calls
}

func (mock *APIMock) CompleteAuth(ctx context.Context, p domain.Platform, token string) (*Account, error) {
	if mock.CompleteAuthFunc == nil {
		panic("APIMock.CompleteAuthFunc: method is nil but API.CompleteAuth was just called")
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

func (mock *APIMock) CompleteAuthCalls() []struct {
	Ctx   context.Context
	P     domain.Platform
	Token string
} {
	mock.lockCompleteAuth.RLock()
	calls := mock.calls.CompleteAuth
	mock.lockCompleteAuth.RUnlock()
	return calls
}

func (mock *APIMock) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteAccountFunc == nil {
		panic("APIMock.DeleteAccountFunc: method is nil but API.DeleteAccount was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDeleteAccount.Lock()
	mock.calls.DeleteAccount = append(mock.calls.DeleteAccount, callInfo)
	mock.lockDeleteAccount.Unlock()
	return mock.DeleteAccountFunc(ctx, id)
}

func (mock *APIMock) DeleteAccountCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeleteAccount.RLock()
	calls := mock.calls.DeleteAccount
	mock.lockDeleteAccount.RUnlock()
	return calls
}

func (mock *APIMock) ListAccounts(ctx context.Context) ([]Account, error) {
	if mock.ListAccountsFunc == nil {
		panic("APIMock.ListAccountsFunc: method is nil but API.ListAccounts was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListAccounts.Lock()
	mock.calls.ListAccounts = append(mock.calls.ListAccounts, callInfo)
	mock.lockListAccounts.Unlock()
	return mock.ListAccountsFunc(ctx)
}

func (mock *APIMock) ListAccountsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListAccounts.RLock()
	calls := mock.calls.ListAccounts
	mock.lockListAccounts.RUnlock()
	return calls
}
