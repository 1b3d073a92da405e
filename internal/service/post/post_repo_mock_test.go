package post

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

var _ postRepo = &postRepoMock{}

type postRepoMock struct {
	CreateFunc           func(ctx context.Context, p *domain.Post) (*domain.Post, error)
	GetByIDFunc          func(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*domain.Post, error)
	ListFunc             func(ctx context.Context, userID uuid.UUID, f domain.PostFilter) ([]domain.Post, int, error)
	UpdateFunc           func(ctx context.Context, p *domain.Post) (*domain.Post, error)
	DeleteFunc           func(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	ClaimDueFunc         func(ctx context.Context, now time.Time, limit uint64) ([]domain.Post, error)
	FailStaleFunc        func(ctx context.Context, before time.Time, lastError string) (int64, error)
	MarkResultFunc       func(ctx context.Context, id uuid.UUID, status domain.PostStatus, publishedAt *time.Time, lastError *string) error
	CreateDeliveriesFunc func(ctx context.Context, ds []domain.PostDelivery) error
	ListDeliveriesFunc   func(ctx context.Context, postID uuid.UUID) ([]domain.PostDelivery, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			P   *domain.Post
		}
		GetByID []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Id     uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			UserID uuid.UUID
			F      domain.PostFilter
		}
		Update []struct {
			Ctx context.Context
			P   *domain.Post
		}
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Id     uuid.UUID
		}
		ClaimDue []struct {
			Ctx   context.Context
			Now   time.Time
			Limit uint64
		}
		FailStale []struct {
			Ctx       context.Context
			Before    time.Time
			LastError string
		}
		MarkResult []struct {
			Ctx         context.Context
			Id          uuid.UUID
			Status      domain.PostStatus
			PublishedAt *time.Time
			LastError   *string
		}
		CreateDeliveries []struct {
			Ctx context.Context
			Ds  []domain.PostDelivery
		}
		ListDeliveries []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
	}
	lockCreate           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockList             sync.RWMutex
	lockUpdate           sync.RWMutex
	lockDelete           sync.RWMutex
	lockClaimDue         sync.RWMutex
	lockFailStale        sync.RWMutex
	lockMarkResult       sync.RWMutex
	lockCreateDeliveries sync.RWMutex
	lockListDeliveries   sync.RWMutex
}

func (mock *postRepoMock) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	if mock.CreateFunc == nil {
		panic("postRepoMock.CreateFunc: method is nil but postRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.Post
	}{Ctx: ctx, P: p}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *postRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   *domain.Post
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *postRepoMock) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*domain.Post, error) {
	if mock.GetByIDFunc == nil {
		panic("postRepoMock.GetByIDFunc: method is nil but postRepo.GetByID was just called")
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

func (mock *postRepoMock) GetByIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Id     uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *postRepoMock) List(ctx context.Context, userID uuid.UUID, f domain.PostFilter) ([]domain.Post, int, error) {
	if mock.ListFunc == nil {
		panic("postRepoMock.ListFunc: method is nil but postRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		F      domain.PostFilter
	}{Ctx: ctx, UserID: userID, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, f)
}

func (mock *postRepoMock) ListCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	F      domain.PostFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *postRepoMock) Update(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	if mock.UpdateFunc == nil {
		panic("postRepoMock.UpdateFunc: method is nil but postRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.Post
	}{Ctx: ctx, P: p}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, p)
}

func (mock *postRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	P   *domain.Post
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *postRepoMock) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("postRepoMock.DeleteFunc: method is nil but postRepo.Delete was just called")
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

func (mock *postRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Id     uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *postRepoMock) ClaimDue(ctx context.Context, now time.Time, limit uint64) ([]domain.Post, error) {
	if mock.ClaimDueFunc == nil {
		panic("postRepoMock.ClaimDueFunc: method is nil but postRepo.ClaimDue was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Now   time.Time
		Limit uint64
	}{Ctx: ctx, Now: now, Limit: limit}
	mock.lockClaimDue.Lock()
	mock.calls.ClaimDue = append(mock.calls.ClaimDue, callInfo)
	mock.lockClaimDue.Unlock()
	return mock.ClaimDueFunc(ctx, now, limit)
}

func (mock *postRepoMock) ClaimDueCalls() []struct {
	Ctx   context.Context
	Now   time.Time
	Limit uint64
} {
	mock.lockClaimDue.RLock()
	calls := mock.calls.ClaimDue
	mock.lockClaimDue.RUnlock()
	return calls
}

func (mock *postRepoMock) FailStale(ctx context.Context, before time.Time, lastError string) (int64, error) {
	if mock.FailStaleFunc == nil {
		panic("postRepoMock.FailStaleFunc: method is nil but postRepo.FailStale was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Before    time.Time
		LastError string
	}{Ctx: ctx, Before: before, LastError: lastError}
	mock.lockFailStale.Lock()
	mock.calls.FailStale = append(mock.calls.FailStale, callInfo)
	mock.lockFailStale.Unlock()
	return mock.FailStaleFunc(ctx, before, lastError)
}

func (mock *postRepoMock) FailStaleCalls() []struct {
	Ctx       context.Context
	Before    time.Time
	LastError string
} {
	mock.lockFailStale.RLock()
	calls := mock.calls.FailStale
	mock.lockFailStale.RUnlock()
	return calls
}

func (mock *postRepoMock) MarkResult(ctx context.Context, id uuid.UUID, status domain.PostStatus, publishedAt *time.Time, lastError *string) error {
	if mock.MarkResultFunc == nil {
		panic("postRepoMock.MarkResultFunc: method is nil but postRepo.MarkResult was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Id          uuid.UUID
		Status      domain.PostStatus
		PublishedAt *time.Time
		LastError   *string
	}{Ctx: ctx, Id: id, Status: status, PublishedAt: publishedAt, LastError: lastError}
	mock.lockMarkResult.Lock()
	mock.calls.MarkResult = append(mock.calls.MarkResult, callInfo)
	mock.lockMarkResult.Unlock()
	return mock.MarkResultFunc(ctx, id, status, publishedAt, lastError)
}

func (mock *postRepoMock) MarkResultCalls() []struct {
	Ctx         context.Context
	Id          uuid.UUID
	Status      domain.PostStatus
	PublishedAt *time.Time
	LastError   *string
} {
	mock.lockMarkResult.RLock()
	calls := mock.calls.MarkResult
	mock.lockMarkResult.RUnlock()
	return calls
}

func (mock *postRepoMock) CreateDeliveries(ctx context.Context, ds []domain.PostDelivery) error {
	if mock.CreateDeliveriesFunc == nil {
		panic("postRepoMock.CreateDeliveriesFunc: method is nil but postRepo.CreateDeliveries was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ds  []domain.PostDelivery
	}{Ctx: ctx, Ds: ds}
	mock.lockCreateDeliveries.Lock()
	mock.calls.CreateDeliveries = append(mock.calls.CreateDeliveries, callInfo)
	mock.lockCreateDeliveries.Unlock()
	return mock.CreateDeliveriesFunc(ctx, ds)
}

func (mock *postRepoMock) CreateDeliveriesCalls() []struct {
	Ctx context.Context
	Ds  []domain.PostDelivery
} {
	mock.lockCreateDeliveries.RLock()
	calls := mock.calls.CreateDeliveries
	mock.lockCreateDeliveries.RUnlock()
	return calls
}

func (mock *postRepoMock) ListDeliveries(ctx context.Context, postID uuid.UUID) ([]domain.PostDelivery, error) {
	if mock.ListDeliveriesFunc == nil {
		panic("postRepoMock.ListDeliveriesFunc: method is nil but postRepo.ListDeliveries was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{Ctx: ctx, PostID: postID}
	mock.lockListDeliveries.Lock()
	mock.calls.ListDeliveries = append(mock.calls.ListDeliveries, callInfo)
	mock.lockListDeliveries.Unlock()
	return mock.ListDeliveriesFunc(ctx, postID)
}

func (mock *postRepoMock) ListDeliveriesCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockListDeliveries.RLock()
	calls := mock.calls.ListDeliveries
	mock.lockListDeliveries.RUnlock()
	return calls
}
