package campaign

//go:generate moq -out mocks_test.go -pkg campaign . campaignRepo orgRepo auditLogger txManager eventPublisher

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

var (
	_ campaignRepo   = &campaignRepoMock{}
	_ orgRepo        = &orgRepoMock{}
	_ auditLogger    = &auditLoggerMock{}
	_ txManager      = &txManagerMock{}
	_ eventPublisher = &eventPublisherMock{}
)

type campaignRepoMock struct {
	InsertPendingFunc func(ctx context.Context, c domain.Campaign) (domain.Campaign, bool, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	GetForUpdateFunc  func(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	ListFunc          func(ctx context.Context, f domain.CampaignFilter) ([]domain.Campaign, int, error)
	UpdateStateFunc   func(ctx context.Context, c domain.Campaign) (domain.Campaign, error)
	StatsFunc         func(ctx context.Context, id uuid.UUID) (domain.CampaignStats, error)

	calls struct {
		InsertPending []struct {
			Ctx context.Context
			C   domain.Campaign
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.CampaignFilter
		}
		UpdateState []struct {
			Ctx context.Context
			C   domain.Campaign
		}
		Stats []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockInsertPending sync.RWMutex
	lockGetByID       sync.RWMutex
	lockGetForUpdate  sync.RWMutex
	lockList          sync.RWMutex
	lockUpdateState   sync.RWMutex
	lockStats         sync.RWMutex
}

func (mock *campaignRepoMock) InsertPending(ctx context.Context, c domain.Campaign) (domain.Campaign, bool, error) {
	if mock.InsertPendingFunc == nil {
		panic("campaignRepoMock.InsertPendingFunc: method is nil but campaignRepo.InsertPending was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   domain.Campaign
	}{Ctx: ctx, C: c}
	mock.lockInsertPending.Lock()
	mock.calls.InsertPending = append(mock.calls.InsertPending, callInfo)
	mock.lockInsertPending.Unlock()
	return mock.InsertPendingFunc(ctx, c)
}

func (mock *campaignRepoMock) InsertPendingCalls() []struct {
	Ctx context.Context
	C   domain.Campaign
} {
	mock.lockInsertPending.RLock()
	calls := mock.calls.InsertPending
	mock.lockInsertPending.RUnlock()
	return calls
}

func (mock *campaignRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	if mock.GetByIDFunc == nil {
		panic("campaignRepoMock.GetByIDFunc: method is nil but campaignRepo.GetByID was just called")
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

func (mock *campaignRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *campaignRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	if mock.GetForUpdateFunc == nil {
		panic("campaignRepoMock.GetForUpdateFunc: method is nil but campaignRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *campaignRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *campaignRepoMock) List(ctx context.Context, f domain.CampaignFilter) ([]domain.Campaign, int, error) {
	if mock.ListFunc == nil {
		panic("campaignRepoMock.ListFunc: method is nil but campaignRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.CampaignFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *campaignRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.CampaignFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *campaignRepoMock) UpdateState(ctx context.Context, c domain.Campaign) (domain.Campaign, error) {
	if mock.UpdateStateFunc == nil {
		panic("campaignRepoMock.UpdateStateFunc: method is nil but campaignRepo.UpdateState was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   domain.Campaign
	}{Ctx: ctx, C: c}
	mock.lockUpdateState.Lock()
	mock.calls.UpdateState = append(mock.calls.UpdateState, callInfo)
	mock.lockUpdateState.Unlock()
	return mock.UpdateStateFunc(ctx, c)
}

func (mock *campaignRepoMock) UpdateStateCalls() []struct {
	Ctx context.Context
	C   domain.Campaign
} {
	mock.lockUpdateState.RLock()
	calls := mock.calls.UpdateState
	mock.lockUpdateState.RUnlock()
	return calls
}

func (mock *campaignRepoMock) Stats(ctx context.Context, id uuid.UUID) (domain.CampaignStats, error) {
	if mock.StatsFunc == nil {
		panic("campaignRepoMock.StatsFunc: method is nil but campaignRepo.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx, id)
}

func (mock *campaignRepoMock) StatsCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}

type orgRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Organization, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
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
