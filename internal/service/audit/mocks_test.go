package audit

//go:generate moq -out mocks_test.go -pkg audit . auditRepo campaignRepo donationRepo disbursementRepo txManager

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

var (
	_ auditRepo        = &auditRepoMock{}
	_ campaignRepo     = &campaignRepoMock{}
	_ donationRepo     = &donationRepoMock{}
	_ disbursementRepo = &disbursementRepoMock{}
	_ txManager        = &txManagerMock{}
)

type auditRepoMock struct {
	LockChainFunc      func(ctx context.Context) error
	LastHashFunc       func(ctx context.Context) (string, error)
	CreateFunc         func(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
	ListByCampaignFunc func(ctx context.Context, campaignID uuid.UUID) ([]domain.AuditRecord, error)
	ListFromSeqFunc    func(ctx context.Context, after int64, limit int) ([]domain.AuditRecord, error)

	calls struct {
		LockChain   []struct{ Ctx context.Context }
		Create      []struct{ Record domain.AuditRecord }
		ListFromSeq []struct {
			After int64
			Limit int
		}
	}
	lockLockChain   sync.RWMutex
	lockCreate      sync.RWMutex
	lockListFromSeq sync.RWMutex
}

func (mock *auditRepoMock) LockChain(ctx context.Context) error {
	if mock.LockChainFunc == nil {
		panic("auditRepoMock.LockChainFunc: method is nil but auditRepo.LockChain was just called")
	}
	mock.lockLockChain.Lock()
	mock.calls.LockChain = append(mock.calls.LockChain, struct{ Ctx context.Context }{ctx})
	mock.lockLockChain.Unlock()
	return mock.LockChainFunc(ctx)
}

func (mock *auditRepoMock) LockChainCalls() []struct{ Ctx context.Context } {
	mock.lockLockChain.RLock()
	defer mock.lockLockChain.RUnlock()
	return mock.calls.LockChain
}

func (mock *auditRepoMock) LastHash(ctx context.Context) (string, error) {
	if mock.LastHashFunc == nil {
		panic("auditRepoMock.LastHashFunc: method is nil but auditRepo.LastHash was just called")
	}
	return mock.LastHashFunc(ctx)
}

func (mock *auditRepoMock) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	if mock.CreateFunc == nil {
		panic("auditRepoMock.CreateFunc: method is nil but auditRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Record domain.AuditRecord }{record})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, record)
}

func (mock *auditRepoMock) CreateCalls() []struct{ Record domain.AuditRecord } {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

func (mock *auditRepoMock) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.AuditRecord, error) {
	if mock.ListByCampaignFunc == nil {
		panic("auditRepoMock.ListByCampaignFunc: method is nil but auditRepo.ListByCampaign was just called")
	}
	return mock.ListByCampaignFunc(ctx, campaignID)
}

func (mock *auditRepoMock) ListFromSeq(ctx context.Context, after int64, limit int) ([]domain.AuditRecord, error) {
	if mock.ListFromSeqFunc == nil {
		panic("auditRepoMock.ListFromSeqFunc: method is nil but auditRepo.ListFromSeq was just called")
	}
	mock.lockListFromSeq.Lock()
	mock.calls.ListFromSeq = append(mock.calls.ListFromSeq, struct {
		After int64
		Limit int
	}{after, limit})
	mock.lockListFromSeq.Unlock()
	return mock.ListFromSeqFunc(ctx, after, limit)
}

func (mock *auditRepoMock) ListFromSeqCalls() []struct {
	After int64
	Limit int
} {
	mock.lockListFromSeq.RLock()
	defer mock.lockListFromSeq.RUnlock()
	return mock.calls.ListFromSeq
}

type campaignRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
}

func (mock *campaignRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	if mock.GetByIDFunc == nil {
		panic("campaignRepoMock.GetByIDFunc: method is nil but campaignRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

type donationRepoMock struct {
	AllByCampaignFunc func(ctx context.Context, campaignID uuid.UUID) ([]domain.Donation, error)
}

func (mock *donationRepoMock) AllByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Donation, error) {
	if mock.AllByCampaignFunc == nil {
		panic("donationRepoMock.AllByCampaignFunc: method is nil but donationRepo.AllByCampaign was just called")
	}
	return mock.AllByCampaignFunc(ctx, campaignID)
}

type disbursementRepoMock struct {
	ListByCampaignFunc func(ctx context.Context, campaignID uuid.UUID) ([]domain.Disbursement, error)
}

func (mock *disbursementRepoMock) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Disbursement, error) {
	if mock.ListByCampaignFunc == nil {
		panic("disbursementRepoMock.ListByCampaignFunc: method is nil but disbursementRepo.ListByCampaign was just called")
	}
	return mock.ListByCampaignFunc(ctx, campaignID)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{ Ctx context.Context }
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{ Ctx context.Context }{ctx})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{ Ctx context.Context } {
	mock.lockRunInTx.RLock()
	defer mock.lockRunInTx.RUnlock()
	return mock.calls.RunInTx
}
