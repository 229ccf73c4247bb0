package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedOrganization inserts an organization with a unique wallet.
func SeedOrganization(t *testing.T, pool *pgxpool.Pool) domain.Organization {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	org := domain.Organization{
		ID:        uuid.New(),
		Wallet:    "GORG" + suffix,
		Name:      "Org " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO organizations (id, wallet_address, name, verified, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		org.ID, org.Wallet, org.Name, org.Verified, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed organization: %v", err)
	}
	return org
}

// SeedCampaign inserts an active campaign for org with the given goal.
func SeedCampaign(t *testing.T, pool *pgxpool.Pool, org domain.Organization, goal int64) domain.Campaign {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	contractID := uint64(time.Now().UnixNano())
	tx := "tx-" + suffix
	c := domain.Campaign{
		ID:                 uuid.New(),
		OrgID:              org.ID,
		Name:               "Campaign " + suffix,
		Goal:               goal,
		Deadline:           now.Add(24 * time.Hour),
		Status:             domain.CampaignStatusActive,
		ContractCampaignID: &contractID,
		IdempotencyKey:     "create_campaign:" + suffix,
		TxHash:             &tx,
		CreatedBy:          org.Wallet,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO campaigns (id, org_id, name, goal, raised, deadline, status, contract_campaign_id,
		                        idempotency_key, tx_hash, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 0, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.OrgID, c.Name, c.Goal, c.Deadline, string(c.Status), int64(contractID),
		c.IdempotencyKey, tx, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed campaign: %v", err)
	}
	return c
}
