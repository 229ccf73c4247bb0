package organization

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

// Update changes the profile of an organization. Only the owner wallet or an
// admin may update; only an admin may change the verified flag.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Organization, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.Verified != nil {
		if err := workflow.RequireAdmin(ctx); err != nil {
			return nil, err
		}
	}

	var updated domain.Organization
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, getErr := s.orgs.GetByID(txCtx, input.ID)
		if getErr != nil {
			return fmt.Errorf("get organization: %w", getErr)
		}
		if authErr := workflow.RequireOwnerOrAdmin(txCtx, old.Wallet); authErr != nil {
			return authErr
		}
		actor, actorErr := workflow.Actor(txCtx, input.Actor, old.Wallet)
		if actorErr != nil {
			return actorErr
		}

		next := old
		if input.Name != nil {
			next.Name = strings.TrimSpace(*input.Name)
		}
		if input.Email != nil {
			next.Email = trimOrNil(input.Email)
		}
		if input.Description != nil {
			next.Description = trimOrNil(input.Description)
		}
		if input.Verified != nil {
			next.Verified = *input.Verified
		}

		changes := buildChanges(old, next)
		if len(changes) == 0 {
			updated = old
			return nil
		}
		next.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

		var updateErr error
		updated, updateErr = s.orgs.Update(txCtx, next)
		if updateErr != nil {
			return fmt.Errorf("update organization: %w", updateErr)
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeOrganization,
			EntityID:   updated.ID,
			Action:     domain.AuditActionUpdated,
			Actor:      actor,
			Details:    changes,
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "organization updated", slog.String("organization_id", updated.ID.String()))
	return &updated, nil
}

// buildChanges returns only changed fields for audit.
func buildChanges(old, next domain.Organization) map[string]any {
	changes := make(map[string]any)
	if old.Name != next.Name {
		changes["name"] = map[string]any{"old": old.Name, "new": next.Name}
	}
	if deref(old.Email) != deref(next.Email) {
		changes["email"] = map[string]any{"old": old.Email, "new": next.Email}
	}
	if deref(old.Description) != deref(next.Description) {
		changes["description"] = map[string]any{"old": old.Description, "new": next.Description}
	}
	if old.Verified != next.Verified {
		changes["verified"] = map[string]any{"old": old.Verified, "new": next.Verified}
	}
	return changes
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
