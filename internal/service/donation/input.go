package donation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

const maxTxHashLen = 128

// DonateInput holds the parameters for a donation. TxHash is an optional
// client-chosen submission hash; it also serves as the nonce when Nonce is
// empty.
type DonateInput struct {
	CampaignID uuid.UUID
	Donor      string
	Amount     int64
	TxHash     string
	Nonce      string
}

// Validate checks all fields and collects all errors.
func (i DonateInput) Validate() error {
	var errs []domain.FieldError

	if i.CampaignID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "campaign_id", Message: "required"})
	}
	donor := strings.TrimSpace(i.Donor)
	if donor == "" {
		errs = append(errs, domain.FieldError{Field: "donor_address", Message: "required"})
	}
	if strings.ContainsAny(donor, " \t\r\n") {
		errs = append(errs, domain.FieldError{Field: "donor_address", Message: "must not contain whitespace"})
	}
	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if h := strings.TrimSpace(i.TxHash); len(h) > maxTxHashLen || strings.ContainsAny(h, " \t\r\n") {
		errs = append(errs, domain.FieldError{Field: "tx_hash", Message: "max 128 characters without whitespace"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds list parameters for one campaign.
type ListInput struct {
	CampaignID uuid.UUID
	Donor      string
	Limit      int
	Offset     int
}
