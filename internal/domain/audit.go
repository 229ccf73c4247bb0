package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one append-only entry of the audit trail.
// EntryHash chains to PrevHash of the preceding record.
type AuditRecord struct {
	ID         uuid.UUID      `json:"id"`
	Seq        int64          `json:"seq"`
	EntityType EntityType     `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	CampaignID *uuid.UUID     `json:"campaign_id,omitempty"`
	Action     AuditAction    `json:"action"`
	Actor      string         `json:"actor"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
	PrevHash   string         `json:"prev_hash"`
	EntryHash  string         `json:"entry_hash"`
}

// CampaignAudit is the merged history of one campaign.
type CampaignAudit struct {
	Campaign      Campaign       `json:"campaign"`
	Donations     []Donation     `json:"donations"`
	Disbursements []Disbursement `json:"disbursements"`
	Entries       []AuditRecord  `json:"audit_logs"`
}

// ChainVerification is the result of recomputing the audit hash chain.
type ChainVerification struct {
	Valid     bool   `json:"valid"`
	Checked   int64  `json:"checked"`
	BrokenSeq *int64 `json:"broken_seq,omitempty"`
}
