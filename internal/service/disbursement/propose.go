package disbursement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

// Propose opens a disbursement for a campaign. Only the owning organization
// may propose, and the amount may not exceed the available balance.
func (s *Service) Propose(ctx context.Context, input ProposeInput) (*domain.Disbursement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	org, err := s.orgs.GetByID(ctx, c.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	proposer, err := workflow.Actor(ctx, input.Proposer, org.Wallet)
	if err != nil {
		return nil, err
	}
	if proposer != org.Wallet {
		return nil, fmt.Errorf("%w: only the campaign owner may propose disbursements", domain.ErrUnauthorized)
	}

	switch {
	case c.ContractCampaignID == nil:
		return nil, domain.NewRuleError(domain.RuleNotActive, "campaign is not on the ledger")
	case c.Status == domain.CampaignStatusClosed:
		return nil, domain.NewRuleError(domain.RuleCampaignClosed, "campaign is closed")
	case !c.Status.AcceptsProposals():
		return nil, domain.NewRuleError(domain.RuleNotActive, fmt.Sprintf("campaign is %s", c.Status))
	case input.Amount > c.Available():
		return nil, domain.NewRuleError(domain.RuleInsufficientAvailable,
			fmt.Sprintf("amount %d exceeds available %d", input.Amount, c.Available()))
	}

	key := workflow.IdempotencyKey(ledger.OpProposeDisbursement, input.Nonce)
	now := time.Now().UTC().Truncate(time.Microsecond)
	pending := domain.Disbursement{
		ID:             uuid.New(),
		CampaignID:     c.ID,
		Recipient:      strings.TrimSpace(input.Recipient),
		Amount:         input.Amount,
		Status:         domain.DisbursementStatusPendingChain,
		Proposer:       proposer,
		Approvers:      []string{},
		IdempotencyKey: key,
		SubmitHash:     ptr(s.chain.SubmitHash(key)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	row, created, err := s.disbursements.InsertPending(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("insert pending disbursement: %w", err)
	}
	if !created {
		if row.CampaignID != pending.CampaignID || row.Recipient != pending.Recipient || row.Amount != pending.Amount {
			return nil, fmt.Errorf("%w: idempotency key %s was used for a different disbursement", domain.ErrAlreadyExists, key)
		}
		switch row.Status {
		case domain.DisbursementStatusPendingChain:
			s.log.InfoContext(ctx, "resuming pending disbursement", slog.String("disbursement_id", row.ID.String()))
		case domain.DisbursementStatusFailed:
			return nil, fmt.Errorf("%w: request %s was already rejected by the ledger", domain.ErrAlreadyExists, key)
		default:
			return &row, nil
		}
	}

	return s.submitPropose(ctx, row, *c.ContractCampaignID)
}

// Resume re-submits a pending_chain proposal under its stored submit hash.
func (s *Service) Resume(ctx context.Context, d domain.Disbursement) (*domain.Disbursement, error) {
	if d.Status != domain.DisbursementStatusPendingChain {
		return &d, nil
	}
	c, err := s.campaigns.GetByID(ctx, d.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if c.ContractCampaignID == nil {
		return nil, fmt.Errorf("campaign %s is not on the ledger", c.ID)
	}
	return s.submitPropose(ctx, d, *c.ContractCampaignID)
}

// FinalizeReceipt completes a pending_chain proposal from a receipt found on
// the ledger.
func (s *Service) FinalizeReceipt(ctx context.Context, d domain.Disbursement, rcpt *ledger.Receipt) (*domain.Disbursement, error) {
	rec, err := workflow.Decode[ledger.DisbursementRecord](rcpt)
	if err != nil {
		return nil, err
	}
	return s.finalizePropose(ctx, d.ID, rec, rcpt)
}

func (s *Service) submitPropose(ctx context.Context, row domain.Disbursement, contractCampaignID uint64) (*domain.Disbursement, error) {
	hash := *row.SubmitHash
	rec, rcpt, err := s.chain.ProposeDisbursement(ctx, chain.Tx{Signers: []string{row.Proposer}, Hash: hash},
		contractCampaignID, row.Recipient, row.Amount, row.Proposer)
	rec, rcpt, err = workflow.Recover(ctx, s.chain, ledger.OpProposeDisbursement, hash, rec, rcpt, err)
	if err != nil {
		if domain.IsChainRejected(err) {
			if failErr := s.markFailed(ctx, row.ID, err); failErr != nil {
				return nil, errors.Join(err, failErr)
			}
		}
		return nil, err
	}
	return s.finalizePropose(ctx, row.ID, rec, rcpt)
}

func (s *Service) finalizePropose(ctx context.Context, id uuid.UUID, rec ledger.DisbursementRecord, rcpt *ledger.Receipt) (*domain.Disbursement, error) {
	quorum, err := s.quorum.Quorum(ctx)
	if err != nil {
		return nil, err
	}

	var (
		out       domain.Disbursement
		finalized bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, getErr := s.disbursements.GetForUpdate(txCtx, id)
		if getErr != nil {
			return fmt.Errorf("lock disbursement: %w", getErr)
		}
		if d.Status != domain.DisbursementStatusPendingChain {
			out = d
			return nil
		}

		d.ContractDisbursementID = ptr(rec.ID)
		d.ProposeTxHash = ptr(rcpt.TxHash)
		d.Approvers = rec.Approvers
		d.Status = workflow.DisbursementStatus(rec, quorum)

		var updErr error
		out, updErr = s.disbursements.UpdateState(txCtx, d)
		if updErr != nil {
			return fmt.Errorf("update disbursement: %w", updErr)
		}
		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeDisbursement,
			EntityID:   out.ID,
			CampaignID: &out.CampaignID,
			Action:     domain.AuditActionCreated,
			Actor:      out.Proposer,
			Details: map[string]any{
				"recipient":                out.Recipient,
				"amount":                   out.Amount,
				"contract_disbursement_id": rec.ID,
				"tx_hash":                  rcpt.TxHash,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		finalized = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if finalized {
		s.log.InfoContext(ctx, "disbursement proposed",
			slog.String("disbursement_id", out.ID.String()),
			slog.Uint64("contract_disbursement_id", rec.ID),
			slog.Int64("amount", out.Amount),
		)
		s.publish(ctx, domain.EventDisbursementProposed, out)
	}
	return &out, nil
}

// markFailed records a ledger rejection on a pending row.
func (s *Service) markFailed(ctx context.Context, id uuid.UUID, cause error) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, err := s.disbursements.GetForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock disbursement: %w", err)
		}
		if d.Status != domain.DisbursementStatusPendingChain {
			return nil
		}
		d.Status = domain.DisbursementStatusFailed
		if _, err := s.disbursements.UpdateState(txCtx, d); err != nil {
			return fmt.Errorf("update disbursement: %w", err)
		}
		if err := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeDisbursement,
			EntityID:   d.ID,
			CampaignID: &d.CampaignID,
			Action:     domain.AuditActionFailed,
			Actor:      d.Proposer,
			Details:    workflow.RejectionDetails(cause),
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
}

func ptr[T any](v T) *T { return &v }
