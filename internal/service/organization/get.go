package organization

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *Service) GetByWallet(ctx context.Context, wallet string) (*domain.Organization, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return nil, domain.NewValidationError("wallet_address", "required")
	}
	org, err := s.orgs.GetByWallet(ctx, wallet)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// OrganizationPage is a page of organizations with the unpaged total.
type OrganizationPage struct {
	Organizations []domain.Organization `json:"organizations"`
	Total         int                   `json:"total"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
}

// List returns organizations newest first.
func (s *Service) List(ctx context.Context, limit, offset int) (*OrganizationPage, error) {
	limit = domain.ClampLimit(limit)
	offset = domain.ClampOffset(offset)

	orgs, total, err := s.orgs.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if orgs == nil {
		orgs = []domain.Organization{}
	}
	return &OrganizationPage{Organizations: orgs, Total: total, Limit: limit, Offset: offset}, nil
}
