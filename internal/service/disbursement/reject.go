package disbursement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

// Reject terminally rejects an open disbursement. The ledger accepts the
// campaign owner or the admin as caller.
func (s *Service) Reject(ctx context.Context, input RejectInput) (*domain.Disbursement, error) {
	d, err := s.disbursements.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get disbursement: %w", err)
	}
	contractID, err := onLedger(d)
	if err != nil {
		return nil, err
	}
	c, err := s.campaigns.GetByID(ctx, d.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	org, err := s.orgs.GetByID(ctx, c.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	if err := workflow.RequireOwnerOrAdmin(ctx, org.Wallet); err != nil {
		return nil, err
	}
	caller, err := workflow.Actor(ctx, input.Actor, org.Wallet)
	if err != nil {
		return nil, err
	}

	hash := s.chain.SubmitHash(ledger.OpRejectDisbursement + ":" + d.ID.String())
	rec, rcpt, err := s.chain.RejectDisbursement(ctx, chain.Tx{Signers: []string{caller}, Hash: hash}, contractID, caller)
	rec, rcpt, err = workflow.Recover(ctx, s.chain, ledger.OpRejectDisbursement, hash, rec, rcpt, err)
	if err != nil {
		return nil, err
	}

	var (
		out      domain.Disbursement
		rejected bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, getErr := s.disbursements.GetForUpdate(txCtx, d.ID)
		if getErr != nil {
			return fmt.Errorf("lock disbursement: %w", getErr)
		}
		if locked.Status == domain.DisbursementStatusRejected {
			out = locked
			return nil
		}
		locked.Status = domain.DisbursementStatusRejected
		locked.Approvers = rec.Approvers

		var updErr error
		out, updErr = s.disbursements.UpdateState(txCtx, locked)
		if updErr != nil {
			return fmt.Errorf("update disbursement: %w", updErr)
		}
		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeDisbursement,
			EntityID:   out.ID,
			CampaignID: &out.CampaignID,
			Action:     domain.AuditActionRejected,
			Actor:      caller,
			Details:    map[string]any{"tx_hash": rcpt.TxHash},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		rejected = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rejected {
		s.log.InfoContext(ctx, "disbursement rejected",
			slog.String("disbursement_id", out.ID.String()),
			slog.String("caller", caller),
		)
		s.publish(ctx, domain.EventDisbursementRejected, out)
	}
	return &out, nil
}
