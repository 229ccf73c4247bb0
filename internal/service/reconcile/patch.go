package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

// patchCampaigns copies raised and status from the ledger onto every
// confirmed campaign that drifted.
func (s *Service) patchCampaigns(ctx context.Context, r *Report) error {
	after := uuid.Nil
	for {
		page, err := s.campaigns.ListConfirmedAfter(ctx, after, s.batch)
		if err != nil {
			return fmt.Errorf("list confirmed campaigns: %w", err)
		}
		for _, c := range page {
			rec, err := s.chain.GetCampaign(ctx, *c.ContractCampaignID)
			if err != nil {
				r.Errors++
				s.log.WarnContext(ctx, "read ledger campaign failed",
					slog.String("campaign_id", c.ID.String()),
					slog.String("error", err.Error()),
				)
				continue
			}
			if !campaignDrifted(c, rec) {
				continue
			}
			patched, err := s.patchCampaign(ctx, c.ID, rec)
			if err != nil {
				r.Errors++
				s.log.ErrorContext(ctx, "patch campaign failed",
					slog.String("campaign_id", c.ID.String()),
					slog.String("error", err.Error()),
				)
				continue
			}
			if patched {
				r.CampaignsPatched++
			}
		}
		if len(page) < s.batch {
			return nil
		}
		after = page[len(page)-1].ID
	}
}

// campaignDrifted reports whether rec would change c. A ledger read that
// lags the mirror is not drift.
func campaignDrifted(c domain.Campaign, rec ledger.CampaignRecord) bool {
	next := c
	workflow.ApplyCampaign(&next, rec)
	return next.Raised != c.Raised || next.Status != c.Status
}

func (s *Service) patchCampaign(ctx context.Context, id uuid.UUID, rec ledger.CampaignRecord) (bool, error) {
	var patched bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.campaigns.GetForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock campaign: %w", err)
		}
		if !campaignDrifted(c, rec) {
			return nil
		}

		before := c
		workflow.ApplyCampaign(&c, rec)
		details := map[string]any{}
		if c.Raised != before.Raised {
			details["raised"] = map[string]any{"old": before.Raised, "new": c.Raised}
		}
		if c.Status != before.Status {
			details["status"] = map[string]any{"old": string(before.Status), "new": string(c.Status)}
		}

		if _, err := s.campaigns.UpdateState(txCtx, c); err != nil {
			return fmt.Errorf("update campaign: %w", err)
		}
		if err := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeCampaign,
			EntityID:   c.ID,
			CampaignID: &c.ID,
			Action:     domain.AuditActionReconciled,
			Actor:      domain.SystemActor,
			Details:    details,
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		patched = true
		return nil
	})
	if err == nil && patched {
		s.log.InfoContext(ctx, "campaign reconciled", slog.String("campaign_id", id.String()))
	}
	return patched, err
}

// patchDisbursements copies status, approvers and the execution hash from
// the ledger onto open disbursements that drifted.
func (s *Service) patchDisbursements(ctx context.Context, r *Report) error {
	quorum, err := s.quorum.Quorum(ctx)
	if err != nil {
		return fmt.Errorf("get quorum: %w", err)
	}

	after := uuid.Nil
	for {
		page, err := s.disbursements.ListOpenAfter(ctx, after, s.batch)
		if err != nil {
			return fmt.Errorf("list open disbursements: %w", err)
		}
		for _, d := range page {
			rec, err := s.chain.GetDisbursement(ctx, *d.ContractDisbursementID)
			if err != nil {
				r.Errors++
				s.log.WarnContext(ctx, "read ledger disbursement failed",
					slog.String("disbursement_id", d.ID.String()),
					slog.String("error", err.Error()),
				)
				continue
			}
			if !disbursementDrifted(d, rec, quorum) {
				continue
			}
			patched, err := s.patchDisbursement(ctx, d.ID, rec, quorum)
			if err != nil {
				r.Errors++
				s.log.ErrorContext(ctx, "patch disbursement failed",
					slog.String("disbursement_id", d.ID.String()),
					slog.String("error", err.Error()),
				)
				continue
			}
			if patched {
				r.DisbursementsPatched++
			}
		}
		if len(page) < s.batch {
			return nil
		}
		after = page[len(page)-1].ID
	}
}

func disbursementDrifted(d domain.Disbursement, rec ledger.DisbursementRecord, quorum int) bool {
	if d.Status != workflow.DisbursementStatus(rec, quorum) || !slices.Equal(d.Approvers, rec.Approvers) {
		return true
	}
	return rec.ExecTxHash != "" && (d.TxHash == nil || *d.TxHash != rec.ExecTxHash)
}

func (s *Service) patchDisbursement(ctx context.Context, id uuid.UUID, rec ledger.DisbursementRecord, quorum int) (bool, error) {
	var patched bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, err := s.disbursements.GetForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock disbursement: %w", err)
		}
		if !d.Status.IsOpen() || !disbursementDrifted(d, rec, quorum) {
			return nil
		}

		status := workflow.DisbursementStatus(rec, quorum)
		details := map[string]any{
			"status":    map[string]any{"old": string(d.Status), "new": string(status)},
			"approvers": map[string]any{"old": d.Approvers, "new": rec.Approvers},
		}
		d.Status = status
		d.Approvers = slices.Clone(rec.Approvers)
		if rec.ExecTxHash != "" {
			executedAt := time.Unix(rec.ExecutedAt, 0).UTC()
			d.TxHash = &rec.ExecTxHash
			d.ExecutedAt = &executedAt
			details["tx_hash"] = rec.ExecTxHash
		}

		if _, err := s.disbursements.UpdateState(txCtx, d); err != nil {
			return fmt.Errorf("update disbursement: %w", err)
		}
		if err := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeDisbursement,
			EntityID:   d.ID,
			CampaignID: &d.CampaignID,
			Action:     domain.AuditActionReconciled,
			Actor:      domain.SystemActor,
			Details:    details,
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		patched = true
		return nil
	})
	if err == nil && patched {
		s.log.InfoContext(ctx, "disbursement reconciled", slog.String("disbursement_id", id.String()))
	}
	return patched, err
}
