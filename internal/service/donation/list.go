package donation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

// List returns the donations of a campaign, newest first.
func (s *Service) List(ctx context.Context, input ListInput) (*domain.DonationPage, error) {
	if input.CampaignID == uuid.Nil {
		return nil, domain.NewValidationError("campaign_id", "required")
	}
	f := domain.DonationFilter{
		CampaignID: input.CampaignID,
		Limit:      domain.ClampLimit(input.Limit),
		Offset:     domain.ClampOffset(input.Offset),
	}
	if donor := strings.TrimSpace(input.Donor); donor != "" {
		f.Donor = &donor
	}

	items, total, err := s.donations.ListByCampaign(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Donation{}
	}
	return &domain.DonationPage{Donations: items, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	d, err := s.donations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
