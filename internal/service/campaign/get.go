package campaign

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
)

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CampaignPage is a page of campaigns with the unpaged total.
type CampaignPage struct {
	Campaigns []domain.Campaign `json:"campaigns"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// List returns campaigns joined with their organization, newest first.
func (s *Service) List(ctx context.Context, input ListInput) (*CampaignPage, error) {
	f, err := input.filter()
	if err != nil {
		return nil, err
	}
	items, total, err := s.campaigns.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Campaign{}
	}
	return &CampaignPage{Campaigns: items, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// Stats returns donation and disbursement totals for a campaign.
func (s *Service) Stats(ctx context.Context, id uuid.UUID) (*domain.CampaignStats, error) {
	stats, err := s.campaigns.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// OnChainCampaign is the authoritative ledger view of a campaign.
type OnChainCampaign struct {
	Campaign    ledger.CampaignRecord `json:"campaign"`
	Remaining   int64                 `json:"remaining"`
	GoalReached bool                  `json:"goal_reached"`
	ContractID  string                `json:"contract_id"`
	Network     string                `json:"network"`
	TxURL       string                `json:"tx_url,omitempty"`
}

// OnChain reads the campaign straight from the ledger. Campaigns that never
// reached the ledger are reported as not found.
func (s *Service) OnChain(ctx context.Context, id uuid.UUID) (*OnChainCampaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.ContractCampaignID == nil {
		return nil, fmt.Errorf("campaign %s on ledger: %w", id, domain.ErrNotFound)
	}

	rec, err := s.chain.GetCampaign(ctx, *c.ContractCampaignID)
	if err != nil {
		return nil, err
	}
	remaining, err := s.chain.GetRemainingAmount(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	out := &OnChainCampaign{
		Campaign:    rec,
		Remaining:   remaining,
		GoalReached: rec.Donated >= rec.Goal,
		ContractID:  s.chain.ContractID(),
		Network:     s.chain.Network(),
	}
	if c.TxHash != nil {
		out.TxURL = s.chain.TxURL(*c.TxHash)
	}
	return out, nil
}
