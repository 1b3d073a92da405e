package connect

import (
	"sync"
)

var _ AccountCache = &AccountCacheMock{}

type AccountCacheMock struct {
	InvalidateFunc func()

	calls struct {
		Invalidate []struct{}
	}
	lockInvalidate sync.RWMutex
}

func (mock *AccountCacheMock) Invalidate() {
	if mock.InvalidateFunc == nil {
		panic("AccountCacheMock.InvalidateFunc: method is nil but AccountCache.Invalidate was just called")
	}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, struct{}{})
	mock.lockInvalidate.Unlock()
	mock.InvalidateFunc()
}

func (mock *AccountCacheMock) InvalidateCalls() []struct{} {
	mock.lockInvalidate.RLock()
	calls := mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
