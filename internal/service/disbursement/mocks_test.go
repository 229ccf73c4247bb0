package disbursement

//go:generate moq -out mocks_test.go -pkg disbursement . disbursementRepo campaignRepo orgRepo auditLogger txManager eventPublisher

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

var (
	_ disbursementRepo = &disbursementRepoMock{}
	_ campaignRepo     = &campaignRepoMock{}
	_ orgRepo          = &orgRepoMock{}
	_ auditLogger      = &auditLoggerMock{}
	_ txManager        = &txManagerMock{}
	_ eventPublisher   = &eventPublisherMock{}
)

type disbursementRepoMock struct {
	InsertPendingFunc  func(ctx context.Context, d domain.Disbursement) (domain.Disbursement, bool, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Disbursement, error)
	GetForUpdateFunc   func(ctx context.Context, id uuid.UUID) (domain.Disbursement, error)
	UpdateStateFunc    func(ctx context.Context, d domain.Disbursement) (domain.Disbursement, error)
	ListByCampaignFunc func(ctx context.Context, campaignID uuid.UUID) ([]domain.Disbursement, error)

	calls struct {
		InsertPending []struct {
			Ctx context.Context
			D   domain.Disbursement
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
			D   domain.Disbursement
		}
		ListByCampaign []struct {
			Ctx        context.Context
			CampaignID uuid.UUID
		}
	}
	lockInsertPending  sync.RWMutex
	lockGetByID        sync.RWMutex
	lockGetForUpdate   sync.RWMutex
	lockUpdateState    sync.RWMutex
	lockListByCampaign sync.RWMutex
}

func (mock *disbursementRepoMock) InsertPending(ctx context.Context, d domain.Disbursement) (domain.Disbursement, bool, error) {
	if mock.InsertPendingFunc == nil {
		panic("disbursementRepoMock.InsertPendingFunc: method is nil but disbursementRepo.InsertPending was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   domain.Disbursement
	}{Ctx: ctx, D: d}
	mock.lockInsertPending.Lock()
	mock.calls.InsertPending = append(mock.calls.InsertPending, callInfo)
	mock.lockInsertPending.Unlock()
	return mock.InsertPendingFunc(ctx, d)
}

func (mock *disbursementRepoMock) InsertPendingCalls() []struct {
	Ctx context.Context
	D   domain.Disbursement
} {
	mock.lockInsertPending.RLock()
	calls := mock.calls.InsertPending
	mock.lockInsertPending.RUnlock()
	return calls
}

func (mock *disbursementRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Disbursement, error) {
	if mock.GetByIDFunc == nil {
		panic("disbursementRepoMock.GetByIDFunc: method is nil but disbursementRepo.GetByID was just called")
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

func (mock *disbursementRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *disbursementRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Disbursement, error) {
	if mock.GetForUpdateFunc == nil {
		panic("disbursementRepoMock.GetForUpdateFunc: method is nil but disbursementRepo.GetForUpdate was just called")
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

func (mock *disbursementRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *disbursementRepoMock) UpdateState(ctx context.Context, d domain.Disbursement) (domain.Disbursement, error) {
	if mock.UpdateStateFunc == nil {
		panic("disbursementRepoMock.UpdateStateFunc: method is nil but disbursementRepo.UpdateState was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   domain.Disbursement
	}{Ctx: ctx, D: d}
	mock.lockUpdateState.Lock()
	mock.calls.UpdateState = append(mock.calls.UpdateState, callInfo)
	mock.lockUpdateState.Unlock()
	return mock.UpdateStateFunc(ctx, d)
}

func (mock *disbursementRepoMock) UpdateStateCalls() []struct {
	Ctx context.Context
	D   domain.Disbursement
} {
	mock.lockUpdateState.RLock()
	calls := mock.calls.UpdateState
	mock.lockUpdateState.RUnlock()
	return calls
}

func (mock *disbursementRepoMock) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Disbursement, error) {
	if mock.ListByCampaignFunc == nil {
		panic("disbursementRepoMock.ListByCampaignFunc: method is nil but disbursementRepo.ListByCampaign was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		CampaignID uuid.UUID
	}{Ctx: ctx, CampaignID: campaignID}
	mock.lockListByCampaign.Lock()
	mock.calls.ListByCampaign = append(mock.calls.ListByCampaign, callInfo)
	mock.lockListByCampaign.Unlock()
	return mock.ListByCampaignFunc(ctx, campaignID)
}

func (mock *disbursementRepoMock) ListByCampaignCalls() []struct {
	Ctx        context.Context
	CampaignID uuid.UUID
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
