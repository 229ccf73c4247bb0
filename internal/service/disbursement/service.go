// Package disbursement drives the disbursement state machine: propose,
// approve, execute and reject.
package disbursement

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
)

type disbursementRepo interface {
	InsertPending(ctx context.Context, d domain.Disbursement) (domain.Disbursement, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Disbursement, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Disbursement, error)
	UpdateState(ctx context.Context, d domain.Disbursement) (domain.Disbursement, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Disbursement, error)
}

type campaignRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	UpdateState(ctx context.Context, c domain.Campaign) (domain.Campaign, error)
}

type orgRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error)
}

type quorumSource interface {
	Quorum(ctx context.Context) (int, error)
	Refresh(ctx context.Context) (int, error)
}

type ledgerClient interface {
	ProposeDisbursement(ctx context.Context, tx chain.Tx, campaignID uint64, recipient string, amount int64, proposer string) (ledger.DisbursementRecord, *ledger.Receipt, error)
	ApproveDisbursement(ctx context.Context, tx chain.Tx, disbursementID uint64, approver string) (ledger.ApproveResult, *ledger.Receipt, error)
	ExecuteDisbursement(ctx context.Context, tx chain.Tx, disbursementID uint64) (ledger.ExecuteResult, *ledger.Receipt, error)
	RejectDisbursement(ctx context.Context, tx chain.Tx, disbursementID uint64, caller string) (ledger.DisbursementRecord, *ledger.Receipt, error)
	LookupTx(ctx context.Context, txHash string) (*ledger.Receipt, bool, error)
	SubmitHash(memo string) string
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

// Service provides disbursement operations.
type Service struct {
	disbursements disbursementRepo
	campaigns     campaignRepo
	orgs          orgRepo
	quorum        quorumSource
	chain         ledgerClient
	audit         auditLogger
	tx            txManager
	events        eventPublisher
	log           *slog.Logger
}

// NewService creates a new disbursement service.
func NewService(
	log *slog.Logger,
	disbursements disbursementRepo,
	campaigns campaignRepo,
	orgs orgRepo,
	quorum quorumSource,
	chain ledgerClient,
	audit auditLogger,
	tx txManager,
	events eventPublisher,
) *Service {
	return &Service{
		disbursements: disbursements,
		campaigns:     campaigns,
		orgs:          orgs,
		quorum:        quorum,
		chain:         chain,
		audit:         audit,
		tx:            tx,
		events:        events,
		log:           log.With("service", "disbursement"),
	}
}

func (s *Service) publish(ctx context.Context, key string, data any) {
	if err := s.events.Publish(ctx, key, data); err != nil {
		s.log.WarnContext(ctx, "publish event failed",
			slog.String("event", key),
			slog.String("error", err.Error()),
		)
	}
}

// onLedger returns the contract id of a disbursement that reached the
// ledger and is still open.
func onLedger(d domain.Disbursement) (uint64, error) {
	switch {
	case d.ContractDisbursementID == nil:
		return 0, domain.NewRuleError(domain.RuleNotPending, "disbursement is not on the ledger")
	case d.Status == domain.DisbursementStatusExecuted:
		return 0, domain.NewRuleError(domain.RuleAlreadyExecuted, "disbursement already executed")
	case !d.Status.IsOpen():
		return 0, domain.NewRuleError(domain.RuleNotPending, "disbursement is "+d.Status.String())
	}
	return *d.ContractDisbursementID, nil
}
