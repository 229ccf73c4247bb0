package disbursement

import (
	"strings"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

const maxTxHashLen = 128

// ProposeInput holds the parameters for proposing a disbursement.
type ProposeInput struct {
	CampaignID uuid.UUID
	Recipient  string
	Amount     int64
	Proposer   string
	Nonce      string
}

// Validate checks all fields and collects all errors.
func (i ProposeInput) Validate() error {
	var errs []domain.FieldError

	if i.CampaignID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "campaign_id", Message: "required"})
	}
	recipient := strings.TrimSpace(i.Recipient)
	if recipient == "" {
		errs = append(errs, domain.FieldError{Field: "recipient", Message: "required"})
	}
	if strings.ContainsAny(recipient, " \t\r\n") {
		errs = append(errs, domain.FieldError{Field: "recipient", Message: "must not contain whitespace"})
	}
	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ApproveInput carries one or more approvers. Each approval is submitted
// with that approver's own authorization.
type ApproveInput struct {
	ID        uuid.UUID
	Approvers []string
}

// Validate checks all fields and collects all errors.
func (i ApproveInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if len(i.normalized()) == 0 {
		errs = append(errs, domain.FieldError{Field: "approvers", Message: "at least one approver is required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// normalized returns the trimmed, de-duplicated approvers in input order.
func (i ApproveInput) normalized() []string {
	seen := make(map[string]struct{}, len(i.Approvers))
	out := make([]string, 0, len(i.Approvers))
	for _, a := range i.Approvers {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// ExecuteInput holds the parameters for executing a disbursement.
type ExecuteInput struct {
	ID     uuid.UUID
	TxHash string
	Actor  string
}

// Validate checks all fields and collects all errors.
func (i ExecuteInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if h := strings.TrimSpace(i.TxHash); len(h) > maxTxHashLen || strings.ContainsAny(h, " \t\r\n") {
		errs = append(errs, domain.FieldError{Field: "tx_hash", Message: "max 128 characters without whitespace"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RejectInput holds the parameters for rejecting a disbursement.
type RejectInput struct {
	ID    uuid.UUID
	Actor string
}
