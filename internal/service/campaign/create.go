package campaign

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

// Create registers a campaign for an organization. The mirror row is
// inserted as pending_chain before the ledger is called, so a retry with the
// same nonce resumes the same submission instead of creating a second one.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Campaign, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	org, err := s.orgs.GetByID(ctx, input.OrgID)
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

	deadline := input.Deadline.UTC().Truncate(time.Second)
	if !deadline.After(s.chain.Now()) {
		return nil, domain.NewValidationError("deadline", "must be in the future")
	}

	key := workflow.IdempotencyKey(ledger.OpCreateCampaign, input.Nonce)
	now := time.Now().UTC().Truncate(time.Microsecond)
	pending := domain.Campaign{
		ID:             uuid.New(),
		OrgID:          org.ID,
		Name:           strings.TrimSpace(input.Name),
		Description:    trimOrNil(input.Description),
		Goal:           input.Goal,
		Deadline:       deadline,
		Status:         domain.CampaignStatusPendingChain,
		IdempotencyKey: key,
		SubmitHash:     ptr(s.chain.SubmitHash(key)),
		CreatedBy:      actor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	row, created, err := s.campaigns.InsertPending(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("insert pending campaign: %w", err)
	}
	if !created {
		if !samePayload(row, pending) {
			return nil, fmt.Errorf("%w: idempotency key %s was used for a different campaign", domain.ErrAlreadyExists, key)
		}
		switch row.Status {
		case domain.CampaignStatusPendingChain:
			s.log.InfoContext(ctx, "resuming pending campaign", slog.String("campaign_id", row.ID.String()))
		case domain.CampaignStatusFailed:
			return nil, fmt.Errorf("%w: request %s was already rejected by the ledger", domain.ErrAlreadyExists, key)
		default:
			return &row, nil
		}
	}

	return s.submitCreate(ctx, row, org.Wallet)
}

// Resume re-submits a pending_chain campaign under its stored submit hash.
func (s *Service) Resume(ctx context.Context, c domain.Campaign) (*domain.Campaign, error) {
	if c.Status != domain.CampaignStatusPendingChain {
		return &c, nil
	}
	org, err := s.orgs.GetByID(ctx, c.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return s.submitCreate(ctx, c, org.Wallet)
}

// FinalizeReceipt completes a pending_chain campaign from a receipt found on
// the ledger.
func (s *Service) FinalizeReceipt(ctx context.Context, c domain.Campaign, rcpt *ledger.Receipt) (*domain.Campaign, error) {
	rec, err := workflow.Decode[ledger.CampaignRecord](rcpt)
	if err != nil {
		return nil, err
	}
	return s.finalizeCreate(ctx, c.ID, rec, rcpt, c.CreatedBy)
}

func (s *Service) submitCreate(ctx context.Context, row domain.Campaign, owner string) (*domain.Campaign, error) {
	hash := *row.SubmitHash
	rec, rcpt, err := s.chain.CreateCampaign(ctx, chain.Tx{Signers: []string{owner}, Hash: hash},
		owner, row.Name, row.Goal, row.Deadline)
	rec, rcpt, err = workflow.Recover(ctx, s.chain, ledger.OpCreateCampaign, hash, rec, rcpt, err)
	if err != nil {
		if domain.IsChainRejected(err) {
			if failErr := s.markFailed(ctx, row.ID, row.CreatedBy, err); failErr != nil {
				return nil, errors.Join(err, failErr)
			}
		}
		return nil, err
	}
	return s.finalizeCreate(ctx, row.ID, rec, rcpt, row.CreatedBy)
}

func (s *Service) finalizeCreate(ctx context.Context, id uuid.UUID, rec ledger.CampaignRecord, rcpt *ledger.Receipt, actor string) (*domain.Campaign, error) {
	var (
		out       domain.Campaign
		finalized bool
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, getErr := s.campaigns.GetForUpdate(txCtx, id)
		if getErr != nil {
			return fmt.Errorf("lock campaign: %w", getErr)
		}
		if c.Status != domain.CampaignStatusPendingChain {
			out = c
			return nil
		}

		workflow.ApplyCampaign(&c, rec)
		c.ContractCampaignID = ptr(rec.ID)
		c.TxHash = ptr(rcpt.TxHash)

		var updErr error
		out, updErr = s.campaigns.UpdateState(txCtx, c)
		if updErr != nil {
			return fmt.Errorf("update campaign: %w", updErr)
		}

		details := map[string]any{
			"name":                 out.Name,
			"goal":                 out.Goal,
			"deadline":             out.Deadline.Format(time.RFC3339),
			"contract_campaign_id": rec.ID,
			"tx_hash":              rcpt.TxHash,
		}
		if out.Description != nil {
			details["description"] = *out.Description
		}
		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeCampaign,
			EntityID:   out.ID,
			CampaignID: &out.ID,
			Action:     domain.AuditActionCreated,
			Actor:      actor,
			Details:    details,
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
		s.log.InfoContext(ctx, "campaign created",
			slog.String("campaign_id", out.ID.String()),
			slog.Uint64("contract_campaign_id", rec.ID),
			slog.String("tx_hash", rcpt.TxHash),
		)
		s.publish(ctx, domain.EventCampaignCreated, out)
	}
	return &out, nil
}

// markFailed records a ledger rejection on a pending row.
func (s *Service) markFailed(ctx context.Context, id uuid.UUID, actor string, cause error) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.campaigns.GetForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock campaign: %w", err)
		}
		if c.Status != domain.CampaignStatusPendingChain {
			return nil
		}
		c.Status = domain.CampaignStatusFailed
		if _, err := s.campaigns.UpdateState(txCtx, c); err != nil {
			return fmt.Errorf("update campaign: %w", err)
		}
		if err := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeCampaign,
			EntityID:   c.ID,
			CampaignID: &c.ID,
			Action:     domain.AuditActionFailed,
			Actor:      actor,
			Details:    workflow.RejectionDetails(cause),
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
}

func samePayload(a, b domain.Campaign) bool {
	return a.OrgID == b.OrgID &&
		a.Name == b.Name &&
		a.Goal == b.Goal &&
		a.Deadline.Unix() == b.Deadline.Unix()
}
