package organization

//go:generate moq -out mocks_test.go -pkg organization . orgRepo auditLogger txManager eventPublisher

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

var (
	_ orgRepo        = &orgRepoMock{}
	_ auditLogger    = &auditLoggerMock{}
	_ txManager      = &txManagerMock{}
	_ eventPublisher = &eventPublisherMock{}
)

type orgRepoMock struct {
	CreateFunc      func(ctx context.Context, org domain.Organization) (domain.Organization, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (domain.Organization, error)
	GetByWalletFunc func(ctx context.Context, wallet string) (domain.Organization, error)
	ListFunc        func(ctx context.Context, limit int, offset int) ([]domain.Organization, int, error)
	UpdateFunc      func(ctx context.Context, org domain.Organization) (domain.Organization, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Org domain.Organization
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetByWallet []struct {
			Ctx    context.Context
			Wallet string
		}
		List []struct {
			Ctx    context.Context
			Limit  int
			Offset int
		}
		Update []struct {
			Ctx context.Context
			Org domain.Organization
		}
	}
	lockCreate      sync.RWMutex
	lockGetByID     sync.RWMutex
	lockGetByWallet sync.RWMutex
	lockList        sync.RWMutex
	lockUpdate      sync.RWMutex
}

func (mock *orgRepoMock) Create(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	if mock.CreateFunc == nil {
		panic("orgRepoMock.CreateFunc: method is nil but orgRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Org domain.Organization
	}{Ctx: ctx, Org: org}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, org)
}

func (mock *orgRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Org domain.Organization
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *orgRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error) {
	if mock.GetByIDFunc == nil {
		panic("orgRepoMock.GetByIDFunc: method is nil but orgRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *orgRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *orgRepoMock) GetByWallet(ctx context.Context, wallet string) (domain.Organization, error) {
	if mock.GetByWalletFunc == nil {
		panic("orgRepoMock.GetByWalletFunc: method is nil but orgRepo.GetByWallet was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Wallet string
	}{Ctx: ctx, Wallet: wallet}
	mock.lockGetByWallet.Lock()
	mock.calls.GetByWallet = append(mock.calls.GetByWallet, callInfo)
	mock.lockGetByWallet.Unlock()
	return mock.GetByWalletFunc(ctx, wallet)
}

func (mock *orgRepoMock) GetByWalletCalls() []struct {
	Ctx    context.Context
	Wallet string
} {
	mock.lockGetByWallet.RLock()
	calls := mock.calls.GetByWallet
	mock.lockGetByWallet.RUnlock()
	return calls
}

func (mock *orgRepoMock) List(ctx context.Context, limit int, offset int) ([]domain.Organization, int, error) {
	if mock.ListFunc == nil {
		panic("orgRepoMock.ListFunc: method is nil but orgRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Limit  int
		Offset int
	}{Ctx: ctx, Limit: limit, Offset: offset}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, limit, offset)
}

func (mock *orgRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Limit  int
	Offset int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *orgRepoMock) Update(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	if mock.UpdateFunc == nil {
		panic("orgRepoMock.UpdateFunc: method is nil but orgRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Org domain.Organization
	}{Ctx: ctx, Org: org}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, org)
}

func (mock *orgRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	Org domain.Organization
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error

	calls struct {
		Log []struct {
			Ctx    context.Context
			Record domain.AuditRecord
		}
	}
	lockLog sync.RWMutex
}

func (mock *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if mock.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Record domain.AuditRecord
	}{Ctx: ctx, Record: record}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, record)
}

func (mock *auditLoggerMock) LogCalls() []struct {
	Ctx    context.Context
	Record domain.AuditRecord
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

type eventPublisherMock struct {
	PublishFunc func(ctx context.Context, routingKey string, data any) error

	calls struct {
		Publish []struct {
			Ctx        context.Context
			RoutingKey string
			Data       any
		}
	}
	lockPublish sync.RWMutex
}

func (mock *eventPublisherMock) Publish(ctx context.Context, routingKey string, data any) error {
	if mock.PublishFunc == nil {
		panic("eventPublisherMock.PublishFunc: method is nil but eventPublisher.Publish was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		RoutingKey string
		Data       any
	}{Ctx: ctx, RoutingKey: routingKey, Data: data}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, routingKey, data)
}

func (mock *eventPublisherMock) PublishCalls() []struct {
	Ctx        context.Context
	RoutingKey string
	Data       any
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
