package domain

import (
	"time"

	"github.com/google/uuid"
)

// Donation is an append-only contribution to a campaign.
type Donation struct {
	ID             uuid.UUID      `json:"id"`
	CampaignID     uuid.UUID      `json:"campaign_id"`
	Donor          string         `json:"donor_address"`
	Amount         int64          `json:"amount"`
	Status         DonationStatus `json:"status"`
	Timestamp      *time.Time     `json:"timestamp,omitempty"`
	TxHash         *string        `json:"tx_hash,omitempty"`
	IdempotencyKey string         `json:"-"`
	SubmitHash     string         `json:"-"`
	Actor          string         `json:"-"`
	ContractSeq    *uint64        `json:"contract_seq,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// DonationFilter holds list parameters for donations of one campaign.
type DonationFilter struct {
	CampaignID uuid.UUID
	Donor      *string
	Limit      int
	Offset     int
}

// DonationPage is a page of donations with the unpaged total.
type DonationPage struct {
	Donations []Donation `json:"donations"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
