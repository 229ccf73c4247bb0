package organization

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

type orgRepo interface {
	Create(ctx context.Context, org domain.Organization) (domain.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error)
	GetByWallet(ctx context.Context, wallet string) (domain.Organization, error)
	List(ctx context.Context, limit, offset int) ([]domain.Organization, int, error)
	Update(ctx context.Context, org domain.Organization) (domain.Organization, error)
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

// Service manages the NGOs that own campaigns.
type Service struct {
	orgs   orgRepo
	audit  auditLogger
	tx     txManager
	events eventPublisher
	log    *slog.Logger
}

// NewService creates a new organization service.
func NewService(
	log *slog.Logger,
	orgs orgRepo,
	audit auditLogger,
	tx txManager,
	events eventPublisher,
) *Service {
	return &Service{
		orgs:   orgs,
		audit:  audit,
		tx:     tx,
		events: events,
		log:    log.With("service", "organization"),
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
