package campaign

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

const (
	maxNameLen        = 200
	maxDescriptionLen = 5000
)

// CreateInput holds the parameters for creating a campaign.
type CreateInput struct {
	OrgID       uuid.UUID
	Name        string
	Description *string
	Goal        int64
	Deadline    time.Time
	Nonce       string
	Actor       string
}

// Validate checks all fields and collects all errors. The deadline is
// checked against the ledger clock by the caller.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.OrgID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "org_id", Message: "required"})
	}
	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if i.Description != nil && len(strings.TrimSpace(*i.Description)) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 5000 characters"})
	}
	if i.Goal <= 0 {
		errs = append(errs, domain.FieldError{Field: "goal", Message: "must be positive"})
	}
	if i.Deadline.IsZero() {
		errs = append(errs, domain.FieldError{Field: "deadline", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds list filters. Status is the raw query value.
type ListInput struct {
	OrgID  *uuid.UUID
	Status string
	Limit  int
	Offset int
}

func (i ListInput) filter() (domain.CampaignFilter, error) {
	f := domain.CampaignFilter{
		OrgID:  i.OrgID,
		Limit:  domain.ClampLimit(i.Limit),
		Offset: domain.ClampOffset(i.Offset),
	}
	if s := strings.TrimSpace(i.Status); s != "" {
		status := domain.CampaignStatus(s)
		if !status.IsValid() {
			return f, domain.NewValidationError("status", "unknown status "+s)
		}
		f.Status = &status
	}
	return f, nil
}

// UpdateInput holds an admin edit. Status may only be "closed", which
// closes the campaign on the ledger.
type UpdateInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Status      *string
	Actor       string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name == nil && i.Description == nil && i.Status == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		name := strings.TrimSpace(*i.Name)
		if name == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
		}
		if len(name) > maxNameLen {
			errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
		}
	}
	if i.Description != nil && len(strings.TrimSpace(*i.Description)) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 5000 characters"})
	}
	if i.Status != nil && domain.CampaignStatus(*i.Status) != domain.CampaignStatusClosed {
		errs = append(errs, domain.FieldError{Field: "status", Message: "only closed may be set"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CloseInput holds the parameters for closing a campaign.
type CloseInput struct {
	ID    uuid.UUID
	Actor string
}
