package domain

import (
	"time"

	"github.com/google/uuid"
)

// Campaign is the mirror of a ledger campaign.
// Raised is the net balance: donations minus executed disbursements.
type Campaign struct {
	ID                 uuid.UUID      `json:"id"`
	OrgID              uuid.UUID      `json:"org_id"`
	Name               string         `json:"name"`
	Description        *string        `json:"description,omitempty"`
	Goal               int64          `json:"goal"`
	Raised             int64          `json:"raised"`
	Deadline           time.Time      `json:"deadline"`
	Status             CampaignStatus `json:"status"`
	ContractCampaignID *uint64        `json:"contract_campaign_id,omitempty"`
	IdempotencyKey     string         `json:"-"`
	SubmitHash         *string        `json:"-"`
	TxHash             *string        `json:"tx_hash,omitempty"`
	CreatedBy          string         `json:"created_by"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`

	// LedgerVersion is the ledger's donated+disbursed total at the snapshot
	// Raised was copied from.
	LedgerVersion int64 `json:"-"`

	// Populated by list queries joined with organizations.
	OrgName   string `json:"org_name,omitempty"`
	OrgWallet string `json:"org_wallet,omitempty"`
}

// Available returns the amount that may still be disbursed.
func (c *Campaign) Available() int64 { return c.Raised }

// Advance folds a ledger snapshot taken at version into c. Raised only
// follows a snapshot at least as new as the stored one and status never
// moves backwards. It reports whether c changed.
func (c *Campaign) Advance(raised, version int64, status CampaignStatus) bool {
	changed := false
	if version >= c.LedgerVersion && (raised != c.Raised || version != c.LedgerVersion) {
		c.Raised = raised
		c.LedgerVersion = version
		changed = true
	}
	if status.ledgerRank() > c.Status.ledgerRank() {
		c.Status = status
		changed = true
	}
	return changed
}

// CampaignFilter holds list parameters for campaigns.
type CampaignFilter struct {
	OrgID  *uuid.UUID
	Status *CampaignStatus
	Limit  int
	Offset int
}

// CampaignStats are per-campaign totals. ProgressBps is raised/goal in basis points.
type CampaignStats struct {
	CampaignID      uuid.UUID `json:"campaign_id"`
	Goal            int64     `json:"goal"`
	Raised          int64     `json:"raised"`
	TotalDonated    int64     `json:"total_donated"`
	TotalDisbursed  int64     `json:"total_disbursed"`
	DonationCount   int64     `json:"donation_count"`
	UniqueDonors    int64     `json:"unique_donors"`
	AverageDonation int64     `json:"average_donation"`
	ProgressBps     int64     `json:"progress_bps"`
	GoalReached     bool      `json:"goal_reached"`
}

// ProgressBps computes raised/goal in basis points, capped at 10000.
func ProgressBps(raised, goal int64) int64 {
	if goal <= 0 || raised <= 0 {
		return 0
	}
	if raised >= goal {
		return 10000
	}
	// raised < goal, so raised*10000 overflows only for goals above ~9.2e14.
	if raised > (1<<63-1)/10000 {
		return raised / (goal / 10000)
	}
	return raised * 10000 / goal
}
