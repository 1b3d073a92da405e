package connect

import (
	"context"
	"sync"
)

var _ Navigator = &NavigatorMock{}

type NavigatorMock struct {
	NavigateFunc  func(ctx context.Context, url string) error
	OpenPopupFunc func(ctx context.Context, url string) (Window, error)

	calls struct {
		Navigate []struct {
			Ctx context.Context
			Url string
		}
		OpenPopup []struct {
			Ctx context.Context
			Url string
		}
	}
	lockNavigate  sync.RWMutex
	lockOpenPopup sync.RWMutex
}

func (mock *NavigatorMock) Navigate(ctx context.Context, url string) error {
	if mock.NavigateFunc == nil {
		panic("NavigatorMock.NavigateFunc: method is nil but Navigator.Navigate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Url string
	}{Ctx: ctx, Url: url}
	mock.lockNavigate.Lock()
	mock.calls.Navigate = append(mock.calls.Navigate, callInfo)
	mock.lockNavigate.Unlock()
	return mock.NavigateFunc(ctx, url)
}

func (mock *NavigatorMock) NavigateCalls() []struct {
	Ctx context.Context
	Url string
} {
	mock.lockNavigate.RLock()
	calls := mock.calls.Navigate
	mock.lockNavigate.RUnlock()
	return calls
}

func (mock *NavigatorMock) OpenPopup(ctx context.Context, url string) (Window, error) {
	if mock.OpenPopupFunc == nil {
		panic("NavigatorMock.OpenPopupFunc: method is nil but Navigator.OpenPopup was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Url string
	}{Ctx: ctx, Url: url}
	mock.lockOpenPopup.Lock()
	mock.calls.OpenPopup = append(mock.calls.OpenPopup, callInfo)
	mock.lockOpenPopup.Unlock()
	return mock.OpenPopupFunc(ctx, url)
}

func (mock *NavigatorMock) OpenPopupCalls() []struct {
	Ctx context.Context
	Url string
} {
	mock.lockOpenPopup.RLock()
	calls := mock.calls.OpenPopup
	mock.lockOpenPopup.RUnlock()
	return calls
}
