// Package donation records donations on the ledger and mirrors them.
package donation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
)

type donationRepo interface {
	InsertPending(ctx context.Context, d domain.Donation) (domain.Donation, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Donation, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Donation, error)
	UpdateState(ctx context.Context, d domain.Donation) (domain.Donation, error)
	ListByCampaign(ctx context.Context, f domain.DonationFilter) ([]domain.Donation, int, error)
}

type campaignRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	UpdateState(ctx context.Context, c domain.Campaign) (domain.Campaign, error)
}

type ledgerClient interface {
	Donate(ctx context.Context, tx chain.Tx, campaignID uint64, donor string, amount int64) (ledger.DonateResult, *ledger.Receipt, error)
	LookupTx(ctx context.Context, txHash string) (*ledger.Receipt, bool, error)
	SubmitHash(memo string) string
	Now() time.Time
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

// Service provides donation operations.
type Service struct {
	donations donationRepo
	campaigns campaignRepo
	chain     ledgerClient
	audit     auditLogger
	tx        txManager
	events    eventPublisher
	log       *slog.Logger
}

// NewService creates a new donation service.
func NewService(
	log *slog.Logger,
	donations donationRepo,
	campaigns campaignRepo,
	chain ledgerClient,
	audit auditLogger,
	tx txManager,
	events eventPublisher,
) *Service {
	return &Service{
		donations: donations,
		campaigns: campaigns,
		chain:     chain,
		audit:     audit,
		tx:        tx,
		events:    events,
		log:       log.With("service", "donation"),
	}
}
