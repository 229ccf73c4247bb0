package organization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

// Create registers an organization. A second organization with the same
// wallet is rejected with ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Organization, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	wallet := strings.TrimSpace(input.Wallet)
	actor, err := workflow.Actor(ctx, input.Actor, wallet)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	org := domain.Organization{
		ID:          uuid.New(),
		Wallet:      wallet,
		Name:        strings.TrimSpace(input.Name),
		Email:       trimOrNil(input.Email),
		Description: trimOrNil(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created domain.Organization
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.orgs.Create(txCtx, org)
		if createErr != nil {
			if errors.Is(createErr, domain.ErrAlreadyExists) {
				return fmt.Errorf("organization with wallet %s: %w", wallet, domain.ErrAlreadyExists)
			}
			return fmt.Errorf("create organization: %w", createErr)
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeOrganization,
			EntityID:   created.ID,
			Action:     domain.AuditActionCreated,
			Actor:      actor,
			Details: map[string]any{
				"wallet_address": created.Wallet,
				"name":           created.Name,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "organization created",
		slog.String("organization_id", created.ID.String()),
		slog.String("wallet", created.Wallet),
	)
	if err := s.events.Publish(ctx, domain.EventOrganizationCreated, created); err != nil {
		s.log.WarnContext(ctx, "publish event failed", slog.String("error", err.Error()))
	}

	return &created, nil
}
