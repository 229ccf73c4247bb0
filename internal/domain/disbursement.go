package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Disbursement is a proposed release of campaign funds to a recipient.
type Disbursement struct {
	ID                     uuid.UUID          `json:"id"`
	CampaignID             uuid.UUID          `json:"campaign_id"`
	Recipient              string             `json:"recipient"`
	Amount                 int64              `json:"amount"`
	Status                 DisbursementStatus `json:"status"`
	Proposer               string             `json:"proposer"`
	Approvers              []string           `json:"approvers"`
	ContractDisbursementID *uint64            `json:"contract_disbursement_id,omitempty"`
	IdempotencyKey         string             `json:"-"`
	SubmitHash             *string            `json:"-"`
	ProposeTxHash          *string            `json:"propose_tx_hash,omitempty"`
	TxHash                 *string            `json:"tx_hash,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
	ExecutedAt             *time.Time         `json:"executed_at,omitempty"`
}

// HasApprover reports whether principal already approved.
func (d *Disbursement) HasApprover(principal string) bool {
	return slices.Contains(d.Approvers, principal)
}
