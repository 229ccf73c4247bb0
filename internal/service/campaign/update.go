package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

// Update edits the mirror-only fields of a campaign. Setting status to
// closed delegates to Close after the field edits are committed.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Campaign, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := s.campaigns.GetByID(ctx, input.ID)
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
	actor, err := workflow.Actor(ctx, input.Actor, org.Wallet)
	if err != nil {
		return nil, err
	}

	out := c
	updated := false
	if input.Name != nil || input.Description != nil {
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			locked, getErr := s.campaigns.GetForUpdate(txCtx, c.ID)
			if getErr != nil {
				return fmt.Errorf("lock campaign: %w", getErr)
			}

			next := locked
			if input.Name != nil {
				next.Name = strings.TrimSpace(*input.Name)
			}
			if input.Description != nil {
				next.Description = trimOrNil(input.Description)
			}
			changes := buildChanges(locked, next)
			if len(changes) == 0 {
				out = locked
				return nil
			}

			var updErr error
			out, updErr = s.campaigns.UpdateState(txCtx, next)
			if updErr != nil {
				return fmt.Errorf("update campaign: %w", updErr)
			}
			if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
				EntityType: domain.EntityTypeCampaign,
				EntityID:   out.ID,
				CampaignID: &out.ID,
				Action:     domain.AuditActionUpdated,
				Actor:      actor,
				Details:    changes,
			}); auditErr != nil {
				return fmt.Errorf("audit log: %w", auditErr)
			}
			updated = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if updated {
		s.log.InfoContext(ctx, "campaign updated", slog.String("campaign_id", out.ID.String()))
		s.publish(ctx, domain.EventCampaignUpdated, out)
	}

	if input.Status != nil && out.Status != domain.CampaignStatusClosed {
		return s.Close(ctx, CloseInput{ID: out.ID, Actor: actor})
	}
	return &out, nil
}

// buildChanges returns only changed fields for audit.
func buildChanges(old, next domain.Campaign) map[string]any {
	changes := make(map[string]any)
	if old.Name != next.Name {
		changes["name"] = map[string]any{"old": old.Name, "new": next.Name}
	}
	if deref(old.Description) != deref(next.Description) {
		changes["description"] = map[string]any{"old": old.Description, "new": next.Description}
	}
	return changes
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
