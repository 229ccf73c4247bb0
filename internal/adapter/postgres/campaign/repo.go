// Package campaign implements the Campaign repository using PostgreSQL.
package campaign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/aidflow/fundflow-backend/internal/adapter/postgres"
	"github.com/aidflow/fundflow-backend/internal/domain"
)

const table = "campaigns"

var columns = []string{
	"id", "org_id", "name", "description", "goal", "raised", "deadline", "status",
	"contract_campaign_id", "idempotency_key", "submit_hash", "tx_hash", "created_by",
	"created_at", "updated_at", "ledger_version",
}

// Repo provides campaign persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new campaign repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID                 uuid.UUID `db:"id"`
	OrgID              uuid.UUID `db:"org_id"`
	Name               string    `db:"name"`
	Description        *string   `db:"description"`
	Goal               int64     `db:"goal"`
	Raised             int64     `db:"raised"`
	Deadline           time.Time `db:"deadline"`
	Status             string    `db:"status"`
	ContractCampaignID *int64    `db:"contract_campaign_id"`
	IdempotencyKey     string    `db:"idempotency_key"`
	SubmitHash         *string   `db:"submit_hash"`
	TxHash             *string   `db:"tx_hash"`
	CreatedBy          string    `db:"created_by"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
	LedgerVersion      int64     `db:"ledger_version"`
}

type listRow struct {
	row
	OrgName   string `db:"org_name"`
	OrgWallet string `db:"org_wallet"`
}

func (r row) toDomain() domain.Campaign {
	c := domain.Campaign{
		ID:             r.ID,
		OrgID:          r.OrgID,
		Name:           r.Name,
		Description:    r.Description,
		Goal:           r.Goal,
		Raised:         r.Raised,
		Deadline:       r.Deadline,
		Status:         domain.CampaignStatus(r.Status),
		IdempotencyKey: r.IdempotencyKey,
		SubmitHash:     r.SubmitHash,
		TxHash:         r.TxHash,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		LedgerVersion:  r.LedgerVersion,
	}
	if r.ContractCampaignID != nil {
		id := uint64(*r.ContractCampaignID)
		c.ContractCampaignID = &id
	}
	return c
}

func contractID(id *uint64) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

func qualified(prefix string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = prefix + "." + c
	}
	return out
}

// InsertPending inserts c unless a row with the same idempotency key exists.
// It returns the stored row and whether this call created it.
func (r *Repo) InsertPending(ctx context.Context, c domain.Campaign) (domain.Campaign, bool, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(c.ID, c.OrgID, c.Name, c.Description, c.Goal, c.Raised, c.Deadline, string(c.Status),
			contractID(c.ContractCampaignID), c.IdempotencyKey, c.SubmitHash, c.TxHash, c.CreatedBy,
			c.CreatedAt, c.UpdatedAt, c.LedgerVersion).
		Suffix("ON CONFLICT (idempotency_key) DO NOTHING RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Campaign{}, false, fmt.Errorf("build insert campaign: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return domain.Campaign{}, false, postgres.MapError(err, "campaign", c.ID)
	}
	if len(rows) == 1 {
		return rows[0].toDomain(), true, nil
	}

	existing, err := r.GetByIdempotencyKey(ctx, c.IdempotencyKey)
	if err != nil {
		return domain.Campaign{}, false, err
	}
	return existing, false, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	return r.getOne(ctx, postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id}), id)
}

func (r *Repo) GetByIdempotencyKey(ctx context.Context, key string) (domain.Campaign, error) {
	return r.getOne(ctx, postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"idempotency_key": key}), key)
}

// GetForUpdate locks the campaign row for the rest of the transaction.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	return r.getOne(ctx, postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"), id)
}

func (r *Repo) getOne(ctx context.Context, b squirrel.SelectBuilder, id any) (domain.Campaign, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("build select campaign: %w", err)
	}
	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Campaign{}, postgres.MapError(err, "campaign", id)
	}
	return out.toDomain(), nil
}

// List returns campaigns joined with their organization, newest first.
func (r *Repo) List(ctx context.Context, f domain.CampaignFilter) ([]domain.Campaign, int, error) {
	where := squirrel.And{}
	if f.OrgID != nil {
		where = append(where, squirrel.Eq{"c.org_id": *f.OrgID})
	}
	if f.Status != nil {
		where = append(where, squirrel.Eq{"c.status": string(*f.Status)})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := postgres.Builder().
		Select("count(*)").
		From(table+" c").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count campaigns: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	query, args, err := postgres.Builder().
		Select(qualified("c")...).
		Columns("o.name AS org_name", "o.wallet_address AS org_wallet").
		From(table+" c").
		Join("organizations o ON o.id = c.org_id").
		Where(where).
		OrderBy("c.created_at DESC", "c.id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list campaigns: %w", err)
	}

	var rows []listRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}

	out := make([]domain.Campaign, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
		out[i].OrgName = rw.OrgName
		out[i].OrgWallet = rw.OrgWallet
	}
	return out, total, nil
}

// UpdateState writes the mutable columns of c and bumps updated_at.
func (r *Repo) UpdateState(ctx context.Context, c domain.Campaign) (domain.Campaign, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("name", c.Name).
		Set("description", c.Description).
		Set("raised", c.Raised).
		Set("ledger_version", c.LedgerVersion).
		Set("status", string(c.Status)).
		Set("contract_campaign_id", contractID(c.ContractCampaignID)).
		Set("tx_hash", c.TxHash).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("build update campaign: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Campaign{}, postgres.MapError(err, "campaign", c.ID)
	}
	return out.toDomain(), nil
}

// ListPending returns pending_chain campaigns not touched since olderThan.
func (r *Repo) ListPending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Campaign, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": string(domain.CampaignStatusPendingChain)}).
		Where(squirrel.Lt{"updated_at": olderThan}).
		OrderBy("updated_at ASC").
		Limit(uint64(limit)))
}

// ListConfirmedAfter pages through campaigns known to the ledger in id order.
func (r *Repo) ListConfirmedAfter(ctx context.Context, after uuid.UUID, limit int) ([]domain.Campaign, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.NotEq{"contract_campaign_id": nil}).
		Where(squirrel.Gt{"id": after}).
		OrderBy("id ASC").
		Limit(uint64(limit)))
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]domain.Campaign, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list campaigns: %w", err)
	}
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	out := make([]domain.Campaign, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// Stats aggregates confirmed donations and executed disbursements of a campaign.
func (r *Repo) Stats(ctx context.Context, id uuid.UUID) (domain.CampaignStats, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.CampaignStats{}, err
	}

	query, args, err := postgres.Builder().
		Select(
			"COALESCE(SUM(amount), 0)::bigint",
			"count(*)",
			"count(DISTINCT donor_address)",
		).
		From("donations").
		Where(squirrel.Eq{"campaign_id": id, "status": string(domain.DonationStatusConfirmed)}).
		ToSql()
	if err != nil {
		return domain.CampaignStats{}, fmt.Errorf("build donation stats: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	stats := domain.CampaignStats{CampaignID: c.ID, Goal: c.Goal, Raised: c.Raised}
	if err := q.QueryRow(ctx, query, args...).Scan(&stats.TotalDonated, &stats.DonationCount, &stats.UniqueDonors); err != nil {
		return domain.CampaignStats{}, fmt.Errorf("donation stats: %w", err)
	}

	query, args, err = postgres.Builder().
		Select("COALESCE(SUM(amount), 0)::bigint").
		From("disbursements").
		Where(squirrel.Eq{"campaign_id": id, "status": string(domain.DisbursementStatusExecuted)}).
		ToSql()
	if err != nil {
		return domain.CampaignStats{}, fmt.Errorf("build disbursement stats: %w", err)
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&stats.TotalDisbursed); err != nil {
		return domain.CampaignStats{}, fmt.Errorf("disbursement stats: %w", err)
	}

	if stats.DonationCount > 0 {
		stats.AverageDonation = stats.TotalDonated / stats.DonationCount
	}
	stats.ProgressBps = domain.ProgressBps(stats.TotalDonated, c.Goal)
	stats.GoalReached = stats.TotalDonated >= c.Goal
	return stats, nil
}
