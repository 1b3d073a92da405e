package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/service/auth"
)

var _ authService = &authServiceMock{}

type authServiceMock struct {
	LoginWithPasswordFunc    func(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error)
	RegisterFunc             func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	RefreshFunc              func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	LogoutFunc               func(ctx context.Context) error
	ValidateTokenFunc        func(ctx context.Context, token string) (uuid.UUID, error)
	RequestPasswordResetFunc func(ctx context.Context, email string) (*auth.PasswordReset, error)
	ResetPasswordFunc        func(ctx context.Context, input auth.ResetPasswordInput) error

	calls struct {
		LoginWithPassword []struct {
			Ctx   context.Context
			Input auth.LoginPasswordInput
		}
		Register []struct {
			Ctx   context.Context
			Input auth.RegisterInput
		}
		Refresh []struct {
			Ctx   context.Context
			Input auth.RefreshInput
		}
		Logout []struct {
			Ctx context.Context
		}
		ValidateToken []struct {
			Ctx   context.Context
			Token string
		}
		RequestPasswordReset []struct {
			Ctx   context.Context
			Email string
		}
		ResetPassword []struct {
			Ctx   context.Context
			Input auth.ResetPasswordInput
		}
	}
	lockLoginWithPassword    sync.RWMutex
	lockRegister             sync.RWMutex
	lockRefresh              sync.RWMutex
	lockLogout               sync.RWMutex
	lockValidateToken        sync.RWMutex
	lockRequestPasswordReset sync.RWMutex
	lockResetPassword        sync.RWMutex
}

func (mock *authServiceMock) LoginWithPassword(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error) {
	if mock.LoginWithPasswordFunc == nil {
		panic("authServiceMock.LoginWithPasswordFunc: method is nil but authService.LoginWithPassword was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.LoginPasswordInput
	}{Ctx: ctx, Input: input}
	mock.lockLoginWithPassword.Lock()
	mock.calls.LoginWithPassword = append(mock.calls.LoginWithPassword, callInfo)
	mock.lockLoginWithPassword.Unlock()
	return mock.LoginWithPasswordFunc(ctx, input)
}

func (mock *authServiceMock) LoginWithPasswordCalls() []struct {
	Ctx   context.Context
	Input auth.LoginPasswordInput
} {
	mock.lockLoginWithPassword.RLock()
	calls := mock.calls.LoginWithPassword
	mock.lockLoginWithPassword.RUnlock()
	return calls
}

func (mock *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	if mock.RegisterFunc == nil {
		panic("authServiceMock.RegisterFunc: method is nil but authService.Register was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.RegisterInput
	}{Ctx: ctx, Input: input}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(ctx, input)
}

func (mock *authServiceMock) RegisterCalls() []struct {
	Ctx   context.Context
	Input auth.RegisterInput
} {
	mock.lockRegister.RLock()
	calls := mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}

func (mock *authServiceMock) Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
	if mock.RefreshFunc == nil {
		panic("authServiceMock.RefreshFunc: method is nil but authService.Refresh was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.RefreshInput
	}{Ctx: ctx, Input: input}
	mock.lockRefresh.Lock()
	mock.calls.Refresh = append(mock.calls.Refresh, callInfo)
	mock.lockRefresh.Unlock()
	return mock.RefreshFunc(ctx, input)
}

func (mock *authServiceMock) RefreshCalls() []struct {
	Ctx   context.Context
	Input auth.RefreshInput
} {
	mock.lockRefresh.RLock()
	calls := mock.calls.Refresh
	mock.lockRefresh.RUnlock()
	return calls
}

func (mock *authServiceMock) Logout(ctx context.Context) error {
	if mock.LogoutFunc == nil {
		panic("authServiceMock.LogoutFunc: method is nil but authService.Logout was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockLogout.Lock()
	mock.calls.Logout = append(mock.calls.Logout, callInfo)
	mock.lockLogout.Unlock()
	return mock.LogoutFunc(ctx)
}

func (mock *authServiceMock) LogoutCalls() []struct {
	Ctx context.Context
} {
	mock.lockLogout.RLock()
	calls := mock.calls.Logout
	mock.lockLogout.RUnlock()
	return calls
}

func (mock *authServiceMock) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	if mock.ValidateTokenFunc == nil {
		panic("authServiceMock.ValidateTokenFunc: method is nil but authService.ValidateToken was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockValidateToken.Lock()
	mock.calls.ValidateToken = append(mock.calls.ValidateToken, callInfo)
	mock.lockValidateToken.Unlock()
	return mock.ValidateTokenFunc(ctx, token)
}

func (mock *authServiceMock) ValidateTokenCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockValidateToken.RLock()
	calls := mock.calls.ValidateToken
	mock.lockValidateToken.RUnlock()
	return calls
}

func (mock *authServiceMock) RequestPasswordReset(ctx context.Context, email string) (*auth.PasswordReset, error) {
	if mock.RequestPasswordResetFunc == nil {
		panic("authServiceMock.RequestPasswordResetFunc: method is nil but authService.RequestPasswordReset was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockRequestPasswordReset.Lock()
	mock.calls.RequestPasswordReset = append(mock.calls.RequestPasswordReset, callInfo)
	mock.lockRequestPasswordReset.Unlock()
	return mock.RequestPasswordResetFunc(ctx, email)
}

func (mock *authServiceMock) RequestPasswordResetCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockRequestPasswordReset.RLock()
	calls := mock.calls.RequestPasswordReset
	mock.lockRequestPasswordReset.RUnlock()
	return calls
}

func (mock *authServiceMock) ResetPassword(ctx context.Context, input auth.ResetPasswordInput) error {
	if mock.ResetPasswordFunc == nil {
		panic("authServiceMock.ResetPasswordFunc: method is nil but authService.ResetPassword was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.ResetPasswordInput
	}{Ctx: ctx, Input: input}
	mock.lockResetPassword.Lock()
	mock.calls.ResetPassword = append(mock.calls.ResetPassword, callInfo)
	mock.lockResetPassword.Unlock()
	return mock.ResetPasswordFunc(ctx, input)
}

func (mock *authServiceMock) ResetPasswordCalls() []struct {
	Ctx   context.Context
	Input auth.ResetPasswordInput
} {
	mock.lockResetPassword.RLock()
	calls := mock.calls.ResetPassword
	mock.lockResetPassword.RUnlock()
	return calls
}
