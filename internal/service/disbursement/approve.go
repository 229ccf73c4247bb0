package disbursement

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

// Approve submits one ledger approval per approver, in order. Approvals that
// land before a failure stay committed. Repeating an approval is a no-op and
// writes no audit entry.
func (s *Service) Approve(ctx context.Context, input ApproveInput) (*domain.Disbursement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	approvers := input.normalized()
	for i, a := range approvers {
		actor, err := workflow.Actor(ctx, a, "")
		if err != nil {
			return nil, err
		}
		approvers[i] = actor
	}

	d, err := s.disbursements.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get disbursement: %w", err)
	}
	contractID, err := onLedger(d)
	if err != nil {
		return nil, err
	}

	out := d
	for _, approver := range approvers {
		hash := s.chain.SubmitHash(fmt.Sprintf("%s:%s:%s", ledger.OpApproveDisbursement, d.ID, approver))
		res, rcpt, err := s.chain.ApproveDisbursement(ctx, chain.Tx{Signers: []string{approver}, Hash: hash}, contractID, approver)
		res, rcpt, err = workflow.Recover(ctx, s.chain, ledger.OpApproveDisbursement, hash, res, rcpt, err)
		if err != nil {
			return nil, err
		}
		if out, err = s.finalizeApprove(ctx, d.ID, approver, res.Disbursement, rcpt); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func (s *Service) finalizeApprove(ctx context.Context, id uuid.UUID, approver string, rec ledger.DisbursementRecord, rcpt *ledger.Receipt) (domain.Disbursement, error) {
	quorum, err := s.quorum.Quorum(ctx)
	if err != nil {
		return domain.Disbursement{}, err
	}

	var (
		out   domain.Disbursement
		added bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, getErr := s.disbursements.GetForUpdate(txCtx, id)
		if getErr != nil {
			return fmt.Errorf("lock disbursement: %w", getErr)
		}
		if d.HasApprover(approver) || !d.Status.IsOpen() {
			out = d
			return nil
		}

		// A recovered receipt can be older than the mirror row.
		approvers := slices.Clone(d.Approvers)
		for _, a := range rec.Approvers {
			if !slices.Contains(approvers, a) {
				approvers = append(approvers, a)
			}
		}
		if !slices.Contains(approvers, approver) {
			approvers = append(approvers, approver)
		}
		d.Approvers = approvers
		d.Status = domain.DeriveDisbursementStatus(d.Status, len(approvers), quorum)

		var updErr error
		out, updErr = s.disbursements.UpdateState(txCtx, d)
		if updErr != nil {
			return fmt.Errorf("update disbursement: %w", updErr)
		}
		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeDisbursement,
			EntityID:   out.ID,
			CampaignID: &out.CampaignID,
			Action:     domain.AuditActionApproved,
			Actor:      approver,
			Details: map[string]any{
				"approvals": len(out.Approvers),
				"quorum":    quorum,
				"status":    string(out.Status),
				"tx_hash":   rcpt.TxHash,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		added = true
		return nil
	})
	if err != nil {
		return domain.Disbursement{}, err
	}

	if added {
		s.log.InfoContext(ctx, "disbursement approved",
			slog.String("disbursement_id", out.ID.String()),
			slog.String("approver", approver),
			slog.Int("approvals", len(out.Approvers)),
			slog.Int("quorum", quorum),
		)
		s.publish(ctx, domain.EventDisbursementApproved, out)
	}
	return out, nil
}
