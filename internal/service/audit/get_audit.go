package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

// GetAudit returns the campaign with its donations, disbursements and audit
// entries. The four reads run concurrently.
func (s *Service) GetAudit(ctx context.Context, campaignID uuid.UUID) (*domain.CampaignAudit, error) {
	if campaignID == uuid.Nil {
		return nil, domain.NewValidationError("campaign_id", "required")
	}

	var out domain.CampaignAudit
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := s.campaigns.GetByID(gctx, campaignID)
		if err != nil {
			return fmt.Errorf("get campaign: %w", err)
		}
		out.Campaign = c
		return nil
	})
	g.Go(func() error {
		d, err := s.donations.AllByCampaign(gctx, campaignID)
		if err != nil {
			return fmt.Errorf("list donations: %w", err)
		}
		out.Donations = d
		return nil
	})
	g.Go(func() error {
		d, err := s.disbursements.ListByCampaign(gctx, campaignID)
		if err != nil {
			return fmt.Errorf("list disbursements: %w", err)
		}
		out.Disbursements = d
		return nil
	})
	g.Go(func() error {
		e, err := s.audit.ListByCampaign(gctx, campaignID)
		if err != nil {
			return fmt.Errorf("list audit entries: %w", err)
		}
		out.Entries = e
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out.Donations == nil {
		out.Donations = []domain.Donation{}
	}
	if out.Disbursements == nil {
		out.Disbursements = []domain.Disbursement{}
	}
	if out.Entries == nil {
		out.Entries = []domain.AuditRecord{}
	}
	return &out, nil
}
