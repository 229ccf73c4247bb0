package campaign

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

// Close stops donations and proposals for a campaign. The raised balance is
// kept and pending disbursements stay executable.
func (s *Service) Close(ctx context.Context, input CloseInput) (*domain.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if c.ContractCampaignID == nil {
		return nil, domain.NewRuleError(domain.RuleNotActive, "campaign is not on the ledger")
	}
	if c.Status == domain.CampaignStatusClosed {
		return nil, domain.NewRuleError(domain.RuleAlreadyClosed, "campaign is already closed")
	}

	org, err := s.orgs.GetByID(ctx, c.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	if err := workflow.RequireOwnerOrAdmin(ctx, org.Wallet); err != nil {
		return nil, err
	}
	actor, err := workflow.Actor(ctx, input.Actor, org.Wallet)
	if err != nil {
		return nil, err
	}

	hash := s.chain.SubmitHash(ledger.OpCloseCampaign + ":" + c.ID.String())
	rec, rcpt, err := s.chain.CloseCampaign(ctx, chain.Tx{Signers: []string{org.Wallet}, Hash: hash}, *c.ContractCampaignID)
	rec, rcpt, err = workflow.Recover(ctx, s.chain, ledger.OpCloseCampaign, hash, rec, rcpt, err)
	if err != nil {
		return nil, err
	}

	var (
		out     domain.Campaign
		changed bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, getErr := s.campaigns.GetForUpdate(txCtx, c.ID)
		if getErr != nil {
			return fmt.Errorf("lock campaign: %w", getErr)
		}
		if locked.Status == domain.CampaignStatusClosed {
			out = locked
			return nil
		}
		workflow.ApplyCampaign(&locked, rec)
		locked.Status = domain.CampaignStatusClosed

		var updErr error
		out, updErr = s.campaigns.UpdateState(txCtx, locked)
		if updErr != nil {
			return fmt.Errorf("update campaign: %w", updErr)
		}
		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeCampaign,
			EntityID:   out.ID,
			CampaignID: &out.ID,
			Action:     domain.AuditActionClosed,
			Actor:      actor,
			Details: map[string]any{
				"raised":  rec.Raised,
				"tx_hash": rcpt.TxHash,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.log.InfoContext(ctx, "campaign closed",
			slog.String("campaign_id", out.ID.String()),
			slog.String("actor", actor),
		)
		s.publish(ctx, domain.EventCampaignClosed, out)
	}
	return &out, nil
}
