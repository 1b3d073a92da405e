package connect

import (
	"context"
	"sync"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

var _ stateStore = &stateStoreMock{}

type stateStoreMock struct {
	SavePendingFunc       func(ctx context.Context, p *domain.PendingAuth) error
	ClaimPendingFunc      func(ctx context.Context, state string) (*domain.PendingAuth, error)
	DropPendingFunc       func(ctx context.Context, state string) error
	SaveCompletionFunc    func(ctx context.Context, c *domain.Completion) error
	ConsumeCompletionFunc func(ctx context.Context, token string) (*domain.Completion, error)
	ConsumeByStateFunc    func(ctx context.Context, state string) (*domain.Completion, error)

	calls struct {
		SavePending []struct {
			Ctx context.Context
			P   *domain.PendingAuth
		}
		ClaimPending []struct {
			Ctx   context.Context
			State string
		}
		DropPending []struct {
			Ctx   context.Context
			State string
		}
		SaveCompletion []struct {
			Ctx context.Context
			C   *domain.Completion
		}
		ConsumeCompletion []struct {
			Ctx   context.Context
			Token string
		}
		ConsumeByState []struct {
			Ctx   context.Context
			State string
		}
	}
	lockSavePending       sync.RWMutex
	lockClaimPending      sync.RWMutex
	lockDropPending       sync.RWMutex
	lockSaveCompletion    sync.RWMutex
	lockConsumeCompletion sync.RWMutex
	lockConsumeByState    sync.RWMutex
}

func (mock *stateStoreMock) SavePending(ctx context.Context, p *domain.PendingAuth) error {
	if mock.SavePendingFunc == nil {
		panic("stateStoreMock.SavePendingFunc: method is nil but stateStore.SavePending was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.PendingAuth
	}{Ctx: ctx, P: p}
	mock.lockSavePending.Lock()
	mock.calls.SavePending = append(mock.calls.SavePending, callInfo)
	mock.lockSavePending.Unlock()
	return mock.SavePendingFunc(ctx, p)
}

func (mock *stateStoreMock) SavePendingCalls() []struct {
	Ctx context.Context
	P   *domain.PendingAuth
} {
	mock.lockSavePending.RLock()
	calls := mock.calls.SavePending
	mock.lockSavePending.RUnlock()
	return calls
}

func (mock *stateStoreMock) ClaimPending(ctx context.Context, state string) (*domain.PendingAuth, error) {
	if mock.ClaimPendingFunc == nil {
		panic("stateStoreMock.ClaimPendingFunc: method is nil but stateStore.ClaimPending was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		State string
	}{Ctx: ctx, State: state}
	mock.lockClaimPending.Lock()
	mock.calls.ClaimPending = append(mock.calls.ClaimPending, callInfo)
	mock.lockClaimPending.Unlock()
	return mock.ClaimPendingFunc(ctx, state)
}

func (mock *stateStoreMock) ClaimPendingCalls() []struct {
	Ctx   context.Context
	State string
} {
	mock.lockClaimPending.RLock()
	calls := mock.calls.ClaimPending
	mock.lockClaimPending.RUnlock()
	return calls
}

func (mock *stateStoreMock) DropPending(ctx context.Context, state string) error {
	if mock.DropPendingFunc == nil {
		panic("stateStoreMock.DropPendingFunc: method is nil but stateStore.DropPending was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		State string
	}{Ctx: ctx, State: state}
	mock.lockDropPending.Lock()
	mock.calls.DropPending = append(mock.calls.DropPending, callInfo)
	mock.lockDropPending.Unlock()
	return mock.DropPendingFunc(ctx, state)
}

func (mock *stateStoreMock) DropPendingCalls() []struct {
	Ctx   context.Context
	State string
} {
	mock.lockDropPending.RLock()
	calls := mock.calls.DropPending
	mock.lockDropPending.RUnlock()
	return calls
}

func (mock *stateStoreMock) SaveCompletion(ctx context.Context, c *domain.Completion) error {
	if mock.SaveCompletionFunc == nil {
		panic("stateStoreMock.SaveCompletionFunc: method is nil but stateStore.SaveCompletion was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Completion
	}{Ctx: ctx, C: c}
	mock.lockSaveCompletion.Lock()
	mock.calls.SaveCompletion = append(mock.calls.SaveCompletion, callInfo)
	mock.lockSaveCompletion.Unlock()
	return mock.SaveCompletionFunc(ctx, c)
}

func (mock *stateStoreMock) SaveCompletionCalls() []struct {
	Ctx context.Context
	C   *domain.Completion
} {
	mock.lockSaveCompletion.RLock()
	calls := mock.calls.SaveCompletion
	mock.lockSaveCompletion.RUnlock()
	return calls
}

func (mock *stateStoreMock) ConsumeCompletion(ctx context.Context, token string) (*domain.Completion, error) {
	if mock.ConsumeCompletionFunc == nil {
		panic("stateStoreMock.ConsumeCompletionFunc: method is nil but stateStore.ConsumeCompletion was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockConsumeCompletion.Lock()
	mock.calls.ConsumeCompletion = append(mock.calls.ConsumeCompletion, callInfo)
	mock.lockConsumeCompletion.Unlock()
	return mock.ConsumeCompletionFunc(ctx, token)
}

func (mock *stateStoreMock) ConsumeCompletionCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockConsumeCompletion.RLock()
	calls := mock.calls.ConsumeCompletion
	mock.lockConsumeCompletion.RUnlock()
	return calls
}

func (mock *stateStoreMock) ConsumeByState(ctx context.Context, state string) (*domain.Completion, error) {
	if mock.ConsumeByStateFunc == nil {
		panic("stateStoreMock.ConsumeByStateFunc: method is nil but stateStore.ConsumeByState was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		State string
	}{Ctx: ctx, State: state}
	mock.lockConsumeByState.Lock()
	mock.calls.ConsumeByState = append(mock.calls.ConsumeByState, callInfo)
	mock.lockConsumeByState.Unlock()
	return mock.ConsumeByStateFunc(ctx, state)
}

func (mock *stateStoreMock) ConsumeByStateCalls() []struct {
	Ctx   context.Context
	State string
} {
	mock.lockConsumeByState.RLock()
	calls := mock.calls.ConsumeByState
	mock.lockConsumeByState.RUnlock()
	return calls
}
