package disbursement

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Disbursement, error) {
	d, err := s.disbursements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items := []domain.Disbursement{d}
	s.derive(ctx, items)
	return &items[0], nil
}

// ListByCampaign returns the disbursements of a campaign. A missing campaign
// is reported as not found.
func (s *Service) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Disbursement, error) {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	items, err := s.disbursements.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Disbursement{}
	}
	s.derive(ctx, items)
	return items, nil
}

// derive recomputes approved/pending against the current quorum, which may
// have changed since the rows were written.
func (s *Service) derive(ctx context.Context, items []domain.Disbursement) {
	q, err := s.quorum.Quorum(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "quorum unavailable, serving stored status", slog.String("error", err.Error()))
		return
	}
	for i := range items {
		items[i].Status = domain.DeriveDisbursementStatus(items[i].Status, len(items[i].Approvers), q)
	}
}
