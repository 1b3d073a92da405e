package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	CreateFunc       func(ctx context.Context, a *domain.SocialAccount) (*domain.SocialAccount, error)
	GetByIDFunc      func(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*domain.SocialAccount, error)
	ListByUserFunc   func(ctx context.Context, userID uuid.UUID) ([]domain.SocialAccount, error)
	ListExpiringFunc func(ctx context.Context, cutoff time.Time, limit uint64) ([]domain.SocialAccount, error)
	UpdateTokensFunc func(ctx context.Context, id uuid.UUID, accessToken string, refreshToken *string, expiresAt *time.Time) error
	SetStatusFunc    func(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error
	DeleteFunc       func(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	calls struct {
		Create []struct {
			Ctx context.Context
			A   *domain.SocialAccount
		}
		GetByID []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Id     uuid.UUID
		}
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListExpiring []struct {
			Ctx    context.Context
			Cutoff time.Time
			Limit  uint64
		}
		UpdateTokens []struct {
			Ctx          context.Context
			Id           uuid.UUID
			AccessToken  string
			RefreshToken *string
			ExpiresAt    *time.Time
		}
		SetStatus []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Status domain.AccountStatus
		}
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Id     uuid.UUID
		}
	}
	lockCreate       sync.RWMutex
	lockGetByID      sync.RWMutex
	lockListByUser   sync.RWMutex
	lockListExpiring sync.RWMutex
	lockUpdateTokens sync.RWMutex
	lockSetStatus    sync.RWMutex
	lockDelete       sync.RWMutex
}

func (mock *accountRepoMock) Create(ctx context.Context, a *domain.SocialAccount) (*domain.SocialAccount, error) {
	if mock.CreateFunc == nil {
		panic("accountRepoMock.CreateFunc: method is nil but accountRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   *domain.SocialAccount
	}{Ctx: ctx, A: a}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *accountRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   *domain.SocialAccount
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *accountRepoMock) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*domain.SocialAccount, error) {
	if mock.GetByIDFunc == nil {
		panic("accountRepoMock.GetByIDFunc: method is nil but accountRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Id     uuid.UUID
	}{Ctx: ctx, UserID: userID, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, userID, id)
}

func (mock *accountRepoMock) GetByIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Id     uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *accountRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SocialAccount, error) {
	if mock.ListByUserFunc == nil {
		panic("accountRepoMock.ListByUserFunc: method is nil but accountRepo.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *accountRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListByUser.RLock()
	calls := mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}

func (mock *accountRepoMock) ListExpiring(ctx context.Context, cutoff time.Time, limit uint64) ([]domain.SocialAccount, error) {
	if mock.ListExpiringFunc == nil {
		panic("accountRepoMock.ListExpiringFunc: method is nil but accountRepo.ListExpiring was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
		Limit  uint64
	}{Ctx: ctx, Cutoff: cutoff, Limit: limit}
	mock.lockListExpiring.Lock()
	mock.calls.ListExpiring = append(mock.calls.ListExpiring, callInfo)
	mock.lockListExpiring.Unlock()
	return mock.ListExpiringFunc(ctx, cutoff, limit)
}

func (mock *accountRepoMock) ListExpiringCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
	Limit  uint64
} {
	mock.lockListExpiring.RLock()
	calls := mock.calls.ListExpiring
	mock.lockListExpiring.RUnlock()
	return calls
}

func (mock *accountRepoMock) UpdateTokens(ctx context.Context, id uuid.UUID, accessToken string, refreshToken *string, expiresAt *time.Time) error {
	if mock.UpdateTokensFunc == nil {
		panic("accountRepoMock.UpdateTokensFunc: method is nil but accountRepo.UpdateTokens was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		Id           uuid.UUID
		AccessToken  string
		RefreshToken *string
		ExpiresAt    *time.Time
	}{Ctx: ctx, Id: id, AccessToken: accessToken, RefreshToken: refreshToken, ExpiresAt: expiresAt}
	mock.lockUpdateTokens.Lock()
	mock.calls.UpdateTokens = append(mock.calls.UpdateTokens, callInfo)
	mock.lockUpdateTokens.Unlock()
	return mock.UpdateTokensFunc(ctx, id, accessToken, refreshToken, expiresAt)
}

func (mock *accountRepoMock) UpdateTokensCalls() []struct {
	Ctx          context.Context
	Id           uuid.UUID
	AccessToken  string
	RefreshToken *string
	ExpiresAt    *time.Time
} {
	mock.lockUpdateTokens.RLock()
	calls := mock.calls.UpdateTokens
	mock.lockUpdateTokens.RUnlock()
	return calls
}

func (mock *accountRepoMock) SetStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error {
	if mock.SetStatusFunc == nil {
		panic("accountRepoMock.SetStatusFunc: method is nil but accountRepo.SetStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Status domain.AccountStatus
	}{Ctx: ctx, Id: id, Status: status}
	mock.lockSetStatus.Lock()
	mock.calls.SetStatus = append(mock.calls.SetStatus, callInfo)
	mock.lockSetStatus.Unlock()
	return mock.SetStatusFunc(ctx, id, status)
}

func (mock *accountRepoMock) SetStatusCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Status domain.AccountStatus
} {
	mock.lockSetStatus.RLock()
	calls := mock.calls.SetStatus
	mock.lockSetStatus.RUnlock()
	return calls
}

func (mock *accountRepoMock) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("accountRepoMock.DeleteFunc: method is nil but accountRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Id     uuid.UUID
	}{Ctx: ctx, UserID: userID, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, id)
}

func (mock *accountRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Id     uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
