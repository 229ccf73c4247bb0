package organization

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

const (
	maxNameLen        = 200
	maxDescriptionLen = 2000
	maxWalletLen      = 128
)

// CreateInput holds the parameters for registering an organization.
type CreateInput struct {
	Wallet      string
	Name        string
	Email       *string
	Description *string
	Actor       string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateWallet(i.Wallet)...)

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	errs = append(errs, validateEmail(i.Email)...)
	if i.Description != nil && len(strings.TrimSpace(*i.Description)) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the mutable organization fields. Nil means unchanged.
type UpdateInput struct {
	ID          uuid.UUID
	Name        *string
	Email       *string
	Description *string
	Verified    *bool
	Actor       string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name == nil && i.Email == nil && i.Description == nil && i.Verified == nil {
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
	errs = append(errs, validateEmail(i.Email)...)
	if i.Description != nil && len(strings.TrimSpace(*i.Description)) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateWallet(w string) []domain.FieldError {
	w = strings.TrimSpace(w)
	switch {
	case w == "":
		return []domain.FieldError{{Field: "wallet_address", Message: "required"}}
	case len(w) > maxWalletLen:
		return []domain.FieldError{{Field: "wallet_address", Message: "max 128 characters"}}
	case strings.ContainsAny(w, " \t\r\n"):
		return []domain.FieldError{{Field: "wallet_address", Message: "must not contain whitespace"}}
	}
	return nil
}

// validateEmail accepts nil or blank (cleared) and otherwise requires a bare address.
func validateEmail(email *string) []domain.FieldError {
	if email == nil {
		return nil
	}
	e := strings.TrimSpace(*email)
	if e == "" {
		return nil
	}
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return []domain.FieldError{{Field: "email", Message: "invalid email"}}
	}
	return nil
}
