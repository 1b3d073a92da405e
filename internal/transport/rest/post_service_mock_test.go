package rest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/service/post"
)

var _ postService = &postServiceMock{}

type postServiceMock struct {
	CreateFunc     func(ctx context.Context, input post.CreateInput) (*domain.Post, error)
	GetFunc        func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListFunc       func(ctx context.Context, input post.ListInput) ([]domain.Post, int, error)
	UpdateFunc     func(ctx context.Context, input post.UpdateInput) (*domain.Post, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	ScheduleFunc   func(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Post, error)
	DeliveriesFunc func(ctx context.Context, id uuid.UUID) ([]domain.PostDelivery, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input post.CreateInput
		}
		Get []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		List []struct {
			Ctx   context.Context
			Input post.ListInput
		}
		Update []struct {
			Ctx   context.Context
			Input post.UpdateInput
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Schedule []struct {
			Ctx context.Context
			Id  uuid.UUID
			At  time.Time
		}
		Deliveries []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockCreate     sync.RWMutex
	lockGet        sync.RWMutex
	lockList       sync.RWMutex
	lockUpdate     sync.RWMutex
	lockDelete     sync.RWMutex
	lockSchedule   sync.RWMutex
	lockDeliveries sync.RWMutex
}

func (mock *postServiceMock) Create(ctx context.Context, input post.CreateInput) (*domain.Post, error) {
	if mock.CreateFunc == nil {
		panic("postServiceMock.CreateFunc: method is nil but postService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input post.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *postServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input post.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *postServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if mock.GetFunc == nil {
		panic("postServiceMock.GetFunc: method is nil but postService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *postServiceMock) GetCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *postServiceMock) List(ctx context.Context, input post.ListInput) ([]domain.Post, int, error) {
	if mock.ListFunc == nil {
		panic("postServiceMock.ListFunc: method is nil but postService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input post.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *postServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input post.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *postServiceMock) Update(ctx context.Context, input post.UpdateInput) (*domain.Post, error) {
	if mock.UpdateFunc == nil {
		panic("postServiceMock.UpdateFunc: method is nil but postService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input post.UpdateInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *postServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Input post.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *postServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("postServiceMock.DeleteFunc: method is nil but postService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *postServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *postServiceMock) Schedule(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Post, error) {
	if mock.ScheduleFunc == nil {
		panic("postServiceMock.ScheduleFunc: method is nil but postService.Schedule was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		At  time.Time
	}{Ctx: ctx, Id: id, At: at}
	mock.lockSchedule.Lock()
	mock.calls.Schedule = append(mock.calls.Schedule, callInfo)
	mock.lockSchedule.Unlock()
	return mock.ScheduleFunc(ctx, id, at)
}

func (mock *postServiceMock) ScheduleCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	At  time.Time
} {
	mock.lockSchedule.RLock()
	calls := mock.calls.Schedule
	mock.lockSchedule.RUnlock()
	return calls
}

func (mock *postServiceMock) Deliveries(ctx context.Context, id uuid.UUID) ([]domain.PostDelivery, error) {
	if mock.DeliveriesFunc == nil {
		panic("postServiceMock.DeliveriesFunc: method is nil but postService.Deliveries was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDeliveries.Lock()
	mock.calls.Deliveries = append(mock.calls.Deliveries, callInfo)
	mock.lockDeliveries.Unlock()
	return mock.DeliveriesFunc(ctx, id)
}

func (mock *postServiceMock) DeliveriesCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeliveries.RLock()
	calls := mock.calls.Deliveries
	mock.lockDeliveries.RUnlock()
	return calls
}
