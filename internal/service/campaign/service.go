// Package campaign runs the campaign write protocol against the ledger and
// serves campaign reads from the mirror.
package campaign

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
)

type campaignRepo interface {
	InsertPending(ctx context.Context, c domain.Campaign) (domain.Campaign, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
	List(ctx context.Context, f domain.CampaignFilter) ([]domain.Campaign, int, error)
	UpdateState(ctx context.Context, c domain.Campaign) (domain.Campaign, error)
	Stats(ctx context.Context, id uuid.UUID) (domain.CampaignStats, error)
}

type orgRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error)
}

type ledgerClient interface {
	CreateCampaign(ctx context.Context, tx chain.Tx, org, name string, goal int64, deadline time.Time) (ledger.CampaignRecord, *ledger.Receipt, error)
	CloseCampaign(ctx context.Context, tx chain.Tx, campaignID uint64) (ledger.CampaignRecord, *ledger.Receipt, error)
	GetCampaign(ctx context.Context, id uint64) (ledger.CampaignRecord, error)
	GetRemainingAmount(ctx context.Context, campaignID uint64) (int64, error)
	LookupTx(ctx context.Context, txHash string) (*ledger.Receipt, bool, error)
	SubmitHash(memo string) string
	Now() time.Time
	TxURL(txHash string) string
	ContractID() string
	Network() string
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

// Service provides campaign operations.
type Service struct {
	campaigns campaignRepo
	orgs      orgRepo
	chain     ledgerClient
	audit     auditLogger
	tx        txManager
	events    eventPublisher
	log       *slog.Logger
}

// NewService creates a new campaign service.
func NewService(
	log *slog.Logger,
	campaigns campaignRepo,
	orgs orgRepo,
	chain ledgerClient,
	audit auditLogger,
	tx txManager,
	events eventPublisher,
) *Service {
	return &Service{
		campaigns: campaigns,
		orgs:      orgs,
		chain:     chain,
		audit:     audit,
		tx:        tx,
		events:    events,
		log:       log.With("service", "campaign"),
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

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func ptr[T any](v T) *T { return &v }
