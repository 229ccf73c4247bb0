package disbursement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

// Execute releases an approved disbursement. The mirror checks run first;
// the ledger re-checks quorum and balance atomically.
func (s *Service) Execute(ctx context.Context, input ExecuteInput) (*domain.Disbursement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	d, err := s.disbursements.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get disbursement: %w", err)
	}
	contractID, err := onLedger(d)
	if err != nil {
		return nil, err
	}
	quorum, err := s.quorum.Quorum(ctx)
	if err != nil {
		return nil, err
	}
	if len(d.Approvers) < quorum {
		return nil, domain.NewRuleError(domain.RuleQuorumNotMet,
			fmt.Sprintf("%d of %d required approvals", len(d.Approvers), quorum))
	}

	c, err := s.campaigns.GetByID(ctx, d.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if d.Amount > c.Available() {
		return nil, domain.NewRuleError(domain.RuleInsufficientAvailable,
			fmt.Sprintf("amount %d exceeds available %d", d.Amount, c.Available()))
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

	hash := strings.TrimSpace(input.TxHash)
	if hash == "" {
		hash = s.chain.SubmitHash(ledger.OpExecuteDisbursement + ":" + d.ID.String())
	}
	res, rcpt, err := s.chain.ExecuteDisbursement(ctx, chain.Tx{Signers: []string{org.Wallet}, Hash: hash}, contractID)
	res, rcpt, err = workflow.Recover(ctx, s.chain, ledger.OpExecuteDisbursement, hash, res, rcpt, err)
	if err == nil && res.Disbursement.ID != contractID {
		err = &domain.ChainError{
			Kind:    domain.ErrChainRejected,
			Code:    string(ledger.CodeDuplicateTransaction),
			Message: fmt.Sprintf("transaction %s already executed another disbursement", hash),
		}
	}
	if err != nil {
		var ce *domain.ChainError
		if errors.As(err, &ce) && ce.Code == string(ledger.CodeQuorumNotMet) {
			if _, qerr := s.quorum.Refresh(ctx); qerr != nil {
				s.log.WarnContext(ctx, "refresh quorum failed", slog.String("error", qerr.Error()))
			}
		}
		return nil, err
	}

	var (
		out      domain.Disbursement
		executed bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, getErr := s.disbursements.GetForUpdate(txCtx, d.ID)
		if getErr != nil {
			return fmt.Errorf("lock disbursement: %w", getErr)
		}
		if locked.Status == domain.DisbursementStatusExecuted {
			out = locked
			return nil
		}
		camp, getErr := s.campaigns.GetForUpdate(txCtx, locked.CampaignID)
		if getErr != nil {
			return fmt.Errorf("lock campaign: %w", getErr)
		}

		executedAt := time.Unix(res.Disbursement.ExecutedAt, 0).UTC()
		locked.Status = domain.DisbursementStatusExecuted
		locked.TxHash = ptr(rcpt.TxHash)
		locked.ExecutedAt = &executedAt
		locked.Approvers = res.Disbursement.Approvers

		var updErr error
		out, updErr = s.disbursements.UpdateState(txCtx, locked)
		if updErr != nil {
			return fmt.Errorf("update disbursement: %w", updErr)
		}

		if workflow.ApplyCampaign(&camp, res.Campaign) {
			if _, updErr = s.campaigns.UpdateState(txCtx, camp); updErr != nil {
				return fmt.Errorf("update campaign: %w", updErr)
			}
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeDisbursement,
			EntityID:   out.ID,
			CampaignID: &out.CampaignID,
			Action:     domain.AuditActionExecuted,
			Actor:      actor,
			Details: map[string]any{
				"recipient":       out.Recipient,
				"amount":          out.Amount,
				"tx_hash":         rcpt.TxHash,
				"campaign_raised": camp.Raised,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		executed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if executed {
		s.log.InfoContext(ctx, "disbursement executed",
			slog.String("disbursement_id", out.ID.String()),
			slog.Int64("amount", out.Amount),
			slog.String("tx_hash", rcpt.TxHash),
		)
		s.publish(ctx, domain.EventDisbursementExecuted, out)
	}
	return &out, nil
}
