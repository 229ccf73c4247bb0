// Package reconcile brings the off-chain mirror back in line with the ledger.
// A pass resolves stuck pending_chain rows and patches drifted campaign and
// disbursement state.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
)

const (
	defaultBatch = 100
	maxBatch     = 500
)

type campaignRepo interface {
	ListPending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Campaign, error)
	ListConfirmedAfter(ctx context.Context, after uuid.UUID, limit int) ([]domain.Campaign, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	UpdateState(ctx context.Context, c domain.Campaign) (domain.Campaign, error)
}

type donationRepo interface {
	ListPending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Donation, error)
}

type disbursementRepo interface {
	ListPending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Disbursement, error)
	ListOpenAfter(ctx context.Context, after uuid.UUID, limit int) ([]domain.Disbursement, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Disbursement, error)
	UpdateState(ctx context.Context, d domain.Disbursement) (domain.Disbursement, error)
}

type campaignWriter interface {
	Resume(ctx context.Context, c domain.Campaign) (*domain.Campaign, error)
	FinalizeReceipt(ctx context.Context, c domain.Campaign, rcpt *ledger.Receipt) (*domain.Campaign, error)
}

type donationWriter interface {
	Resume(ctx context.Context, d domain.Donation) (*domain.Donation, error)
	FinalizeReceipt(ctx context.Context, d domain.Donation, rcpt *ledger.Receipt) (*domain.Donation, error)
}

type disbursementWriter interface {
	Resume(ctx context.Context, d domain.Disbursement) (*domain.Disbursement, error)
	FinalizeReceipt(ctx context.Context, d domain.Disbursement, rcpt *ledger.Receipt) (*domain.Disbursement, error)
}

type ledgerClient interface {
	LookupTx(ctx context.Context, txHash string) (*ledger.Receipt, bool, error)
	GetCampaign(ctx context.Context, id uint64) (ledger.CampaignRecord, error)
	GetDisbursement(ctx context.Context, id uint64) (ledger.DisbursementRecord, error)
}

type quorumSource interface {
	Quorum(ctx context.Context) (int, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventPublisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// Writers groups the services that own the write protocol of each entity.
type Writers struct {
	Campaigns     campaignWriter
	Donations     donationWriter
	Disbursements disbursementWriter
}

// Options tunes a reconciler.
type Options struct {
	Grace time.Duration
	Batch int
}

// Report summarizes one pass.
type Report struct {
	Finalized            int `json:"finalized"`
	Resubmitted          int `json:"resubmitted"`
	Rejected             int `json:"rejected"`
	CampaignsPatched     int `json:"campaigns_patched"`
	DisbursementsPatched int `json:"disbursements_patched"`
	Errors               int `json:"errors"`
}

// Changed reports whether the pass wrote anything.
func (r Report) Changed() bool {
	return r.Finalized+r.Resubmitted+r.Rejected+r.CampaignsPatched+r.DisbursementsPatched > 0
}

// Service runs reconciliation passes.
type Service struct {
	campaigns     campaignRepo
	donations     donationRepo
	disbursements disbursementRepo
	writers       Writers
	chain         ledgerClient
	quorum        quorumSource
	audit         auditLogger
	tx            txManager
	events        eventPublisher
	log           *slog.Logger
	grace         time.Duration
	batch         int
	now           func() time.Time
}

// NewService creates a reconciler.
func NewService(
	log *slog.Logger,
	campaigns campaignRepo,
	donations donationRepo,
	disbursements disbursementRepo,
	writers Writers,
	chain ledgerClient,
	quorum quorumSource,
	audit auditLogger,
	tx txManager,
	events eventPublisher,
	opts Options,
) *Service {
	batch := opts.Batch
	switch {
	case batch <= 0:
		batch = defaultBatch
	case batch > maxBatch:
		batch = maxBatch
	}
	return &Service{
		campaigns:     campaigns,
		donations:     donations,
		disbursements: disbursements,
		writers:       writers,
		chain:         chain,
		quorum:        quorum,
		audit:         audit,
		tx:            tx,
		events:        events,
		log:           log.With("job", "reconcile"),
		grace:         opts.Grace,
		batch:         batch,
		now:           time.Now,
	}
}

// Run executes one pass. Per-row failures are logged and counted; the
// returned error reports stages that could not list their rows.
func (s *Service) Run(ctx context.Context) (Report, error) {
	start := s.now()
	var r Report

	err := errors.Join(
		s.resolvePending(ctx, &r),
		s.patchCampaigns(ctx, &r),
		s.patchDisbursements(ctx, &r),
	)

	level := slog.LevelDebug
	if r.Changed() || r.Errors > 0 || err != nil {
		level = slog.LevelInfo
	}
	s.log.Log(ctx, level, "reconcile pass finished",
		slog.Int("finalized", r.Finalized),
		slog.Int("resubmitted", r.Resubmitted),
		slog.Int("rejected", r.Rejected),
		slog.Int("campaigns_patched", r.CampaignsPatched),
		slog.Int("disbursements_patched", r.DisbursementsPatched),
		slog.Int("errors", r.Errors),
		slog.Duration("duration", s.now().Sub(start)),
	)
	if r.Changed() {
		s.publish(ctx, domain.EventMirrorReconciled, r)
	}
	return r, err
}

func (s *Service) publish(ctx context.Context, key string, data any) {
	if err := s.events.Publish(ctx, key, data); err != nil {
		s.log.WarnContext(ctx, "publish event failed",
			slog.String("event", key),
			slog.String("error", err.Error()),
		)
	}
}
