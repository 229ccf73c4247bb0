package donation

//go:generate moq -out mocks_test.go -pkg donation . donationRepo campaignRepo auditLogger txManager eventPublisher

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

var (
	_ donationRepo   = &donationRepoMock{}
	_ campaignRepo   = &campaignRepoMock{}
	_ auditLogger    = &auditLoggerMock{}
	_ txManager      = &txManagerMock{}
	_ eventPublisher = &eventPublisherMock{}
)

type donationRepoMock struct {
	InsertPendingFunc  func(ctx context.Context, d domain.Donation) (domain.Donation, bool, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Donation, error)
	GetForUpdateFunc   func(ctx context.Context, id uuid.UUID) (domain.Donation, error)
	UpdateStateFunc    func(ctx context.Context, d domain.Donation) (domain.Donation, error)
	ListByCampaignFunc func(ctx context.Context, f domain.DonationFilter) ([]domain.Donation, int, error)

	calls struct {
		InsertPending []struct {
			Ctx context.Context
			D   domain.Donation
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		UpdateState []struct {
			Ctx context.Context
			D   domain.Donation
		}
		ListByCampaign []struct {
			Ctx context.Context
			F   domain.DonationFilter
		}
	}
	lockInsertPending  sync.RWMutex
	lockGetByID        sync.RWMutex
	lockGetForUpdate   sync.RWMutex
	lockUpdateState    sync.RWMutex
	lockListByCampaign sync.RWMutex
}

func (mock *donationRepoMock) InsertPending(ctx context.Context, d domain.Donation) (domain.Donation, bool, error) {
	if mock.InsertPendingFunc == nil {
		panic("donationRepoMock.InsertPendingFunc: method is nil but donationRepo.InsertPending was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   domain.Donation
	}{Ctx: ctx, D: d}
	mock.lockInsertPending.Lock()
	mock.calls.InsertPending = append(mock.calls.InsertPending, callInfo)
	mock.lockInsertPending.Unlock()
	return mock.InsertPendingFunc(ctx, d)
}

func (mock *donationRepoMock) InsertPendingCalls() []struct {
	Ctx context.Context
	D   domain.Donation
} {
	mock.lockInsertPending.RLock()
	calls := mock.calls.InsertPending
	mock.lockInsertPending.RUnlock()
	return calls
}

func (mock *donationRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Donation, error) {
	if mock.GetByIDFunc == nil {
		panic("donationRepoMock.GetByIDFunc: method is nil but donationRepo.GetByID was just called")
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

func (mock *donationRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *donationRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Donation, error) {
	if mock.GetForUpdateFunc == nil {
		panic("donationRepoMock.GetForUpdateFunc: method is nil but donationRepo.GetForUpdate was just called")
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

func (mock *donationRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *donationRepoMock) UpdateState(ctx context.Context, d domain.Donation) (domain.Donation, error) {
	if mock.UpdateStateFunc == nil {
		panic("donationRepoMock.UpdateStateFunc: method is nil but donationRepo.UpdateState was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   domain.Donation
	}{Ctx: ctx, D: d}
	mock.lockUpdateState.Lock()
	mock.calls.UpdateState = append(mock.calls.UpdateState, callInfo)
	mock.lockUpdateState.Unlock()
	return mock.UpdateStateFunc(ctx, d)
}

func (mock *donationRepoMock) UpdateStateCalls() []struct {
	Ctx context.Context
	D   domain.Donation
} {
	mock.lockUpdateState.RLock()
	calls := mock.calls.UpdateState
	mock.lockUpdateState.RUnlock()
	return calls
}

func (mock *donationRepoMock) ListByCampaign(ctx context.Context, f domain.DonationFilter) ([]domain.Donation, int, error) {
	if mock.ListByCampaignFunc == nil {
		panic("donationRepoMock.ListByCampaignFunc: method is nil but donationRepo.ListByCampaign was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.DonationFilter
	}{Ctx: ctx, F: f}
	mock.lockListByCampaign.Lock()
	mock.calls.ListByCampaign = append(mock.calls.ListByCampaign, callInfo)
	mock.lockListByCampaign.Unlock()
	return mock.ListByCampaignFunc(ctx, f)
}

func (mock *donationRepoMock) ListByCampaignCalls() []struct {
	Ctx context.Context
	F   domain.DonationFilter
} {
	mock.lockListByCampaign.RLock()
	calls := mock.calls.ListByCampaign
	mock.lockListByCampaign.RUnlock()
	return calls
}

type campaignRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	UpdateStateFunc  func(ctx context.Context, c domain.Campaign) (domain.Campaign, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		UpdateState []struct {
			Ctx context.Context
			C   domain.Campaign
		}
	}
	lockGetByID      sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockUpdateState  sync.RWMutex
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
