package donation

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

// Donate records a donation. The mirror is checked first, then a
// pending_chain row is inserted under the idempotency key, then the ledger
// is invoked and the result is finalized together with the campaign balance.
func (s *Service) Donate(ctx context.Context, input DonateInput) (*domain.Donation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	donor, err := workflow.Actor(ctx, input.Donor, "")
	if err != nil {
		return nil, err
	}

	c, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if c.ContractCampaignID == nil || !c.Status.AcceptsDonations() {
		return nil, domain.NewRuleError(domain.RuleNotActive, fmt.Sprintf("campaign is %s", c.Status))
	}
	if s.chain.Now().After(c.Deadline) {
		return nil, domain.NewRuleError(domain.RuleDeadlinePassed, "campaign deadline has passed")
	}

	txHash := strings.TrimSpace(input.TxHash)
	nonce := input.Nonce
	if strings.TrimSpace(nonce) == "" {
		nonce = txHash
	}
	key := workflow.IdempotencyKey(ledger.OpDonate, nonce)
	if txHash == "" {
		txHash = s.chain.SubmitHash(key)
	}

	pending := domain.Donation{
		ID:             uuid.New(),
		CampaignID:     c.ID,
		Donor:          donor,
		Amount:         input.Amount,
		Status:         domain.DonationStatusPendingChain,
		IdempotencyKey: key,
		SubmitHash:     txHash,
		Actor:          donor,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
	row, created, err := s.donations.InsertPending(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("insert pending donation: %w", err)
	}
	if !created {
		if row.CampaignID != pending.CampaignID || row.Donor != pending.Donor || row.Amount != pending.Amount {
			return nil, fmt.Errorf("%w: idempotency key %s was used for a different donation", domain.ErrAlreadyExists, key)
		}
		switch row.Status {
		case domain.DonationStatusPendingChain:
			s.log.InfoContext(ctx, "resuming pending donation", slog.String("donation_id", row.ID.String()))
		case domain.DonationStatusFailed:
			return nil, fmt.Errorf("%w: request %s was already rejected by the ledger", domain.ErrAlreadyExists, key)
		default:
			return &row, nil
		}
	}

	return s.submit(ctx, row, *c.ContractCampaignID)
}

// Resume re-submits a pending_chain donation under its stored submit hash.
func (s *Service) Resume(ctx context.Context, d domain.Donation) (*domain.Donation, error) {
	if d.Status != domain.DonationStatusPendingChain {
		return &d, nil
	}
	c, err := s.campaigns.GetByID(ctx, d.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if c.ContractCampaignID == nil {
		return nil, fmt.Errorf("campaign %s is not on the ledger", c.ID)
	}
	return s.submit(ctx, d, *c.ContractCampaignID)
}

// FinalizeReceipt completes a pending_chain donation from a receipt found on
// the ledger.
func (s *Service) FinalizeReceipt(ctx context.Context, d domain.Donation, rcpt *ledger.Receipt) (*domain.Donation, error) {
	res, err := workflow.Decode[ledger.DonateResult](rcpt)
	if err != nil {
		return nil, err
	}
	return s.finalize(ctx, d.ID, res, rcpt)
}

func (s *Service) submit(ctx context.Context, row domain.Donation, contractCampaignID uint64) (*domain.Donation, error) {
	res, rcpt, err := s.chain.Donate(ctx, chain.Tx{Signers: []string{row.Donor}, Hash: row.SubmitHash},
		contractCampaignID, row.Donor, row.Amount)
	res, rcpt, err = workflow.Recover(ctx, s.chain, ledger.OpDonate, row.SubmitHash, res, rcpt, err)
	if err == nil && (res.Donation.Donor != row.Donor || res.Donation.Amount != row.Amount || res.Donation.CampaignID != contractCampaignID) {
		err = &domain.ChainError{
			Kind:    domain.ErrChainRejected,
			Code:    string(ledger.CodeDuplicateTransaction),
			Message: fmt.Sprintf("transaction %s already applied to a different donation", row.SubmitHash),
		}
	}
	if err != nil {
		if domain.IsChainRejected(err) {
			if failErr := s.markFailed(ctx, row.ID, err); failErr != nil {
				return nil, errors.Join(err, failErr)
			}
		}
		return nil, err
	}
	return s.finalize(ctx, row.ID, res, rcpt)
}

func (s *Service) finalize(ctx context.Context, id uuid.UUID, res ledger.DonateResult, rcpt *ledger.Receipt) (*domain.Donation, error) {
	var (
		out       domain.Donation
		finalized bool
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, getErr := s.donations.GetForUpdate(txCtx, id)
		if getErr != nil {
			return fmt.Errorf("lock donation: %w", getErr)
		}
		if d.Status != domain.DonationStatusPendingChain {
			out = d
			return nil
		}
		c, getErr := s.campaigns.GetForUpdate(txCtx, d.CampaignID)
		if getErr != nil {
			return fmt.Errorf("lock campaign: %w", getErr)
		}

		ts := time.Unix(res.Donation.Timestamp, 0).UTC()
		seq := res.Donation.Seq
		d.Status = domain.DonationStatusConfirmed
		d.TxHash = &rcpt.TxHash
		d.Timestamp = &ts
		d.ContractSeq = &seq

		var updErr error
		out, updErr = s.donations.UpdateState(txCtx, d)
		if updErr != nil {
			return fmt.Errorf("update donation: %w", updErr)
		}

		if workflow.ApplyCampaign(&c, res.Campaign) {
			if _, updErr = s.campaigns.UpdateState(txCtx, c); updErr != nil {
				return fmt.Errorf("update campaign: %w", updErr)
			}
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeDonation,
			EntityID:   out.ID,
			CampaignID: &c.ID,
			Action:     domain.AuditActionCreated,
			Actor:      out.Actor,
			Details: map[string]any{
				"donor_address":   out.Donor,
				"amount":          out.Amount,
				"tx_hash":         rcpt.TxHash,
				"contract_seq":    seq,
				"campaign_raised": c.Raised,
				"campaign_status": string(c.Status),
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
		s.log.InfoContext(ctx, "donation confirmed",
			slog.String("donation_id", out.ID.String()),
			slog.String("campaign_id", out.CampaignID.String()),
			slog.Int64("amount", out.Amount),
			slog.String("tx_hash", rcpt.TxHash),
		)
		if err := s.events.Publish(ctx, domain.EventDonationConfirmed, out); err != nil {
			s.log.WarnContext(ctx, "publish event failed", slog.String("error", err.Error()))
		}
	}
	return &out, nil
}

// markFailed records a ledger rejection on a pending row.
func (s *Service) markFailed(ctx context.Context, id uuid.UUID, cause error) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, err := s.donations.GetForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock donation: %w", err)
		}
		if d.Status != domain.DonationStatusPendingChain {
			return nil
		}
		d.Status = domain.DonationStatusFailed
		if _, err := s.donations.UpdateState(txCtx, d); err != nil {
			return fmt.Errorf("update donation: %w", err)
		}
		if err := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeDonation,
			EntityID:   d.ID,
			CampaignID: &d.CampaignID,
			Action:     domain.AuditActionFailed,
			Actor:      d.Actor,
			Details:    workflow.RejectionDetails(cause),
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
}
