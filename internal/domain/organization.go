package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is an NGO that owns campaigns. Wallet is its ledger principal.
type Organization struct {
	ID          uuid.UUID `json:"id"`
	Wallet      string    `json:"wallet_address"`
	Name        string    `json:"name"`
	Email       *string   `json:"email,omitempty"`
	Description *string   `json:"description,omitempty"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
