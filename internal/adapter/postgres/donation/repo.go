// Package donation implements the Donation repository using PostgreSQL.
// Donations are append-only: only bookkeeping columns change after insert.
package donation

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

const table = "donations"

var columns = []string{
	"id", "campaign_id", "donor_address", "amount", "status", `"timestamp"`, "tx_hash",
	"idempotency_key", "submit_hash", "contract_seq", "actor", "created_at",
}

// Repo provides donation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new donation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID             uuid.UUID  `db:"id"`
	CampaignID     uuid.UUID  `db:"campaign_id"`
	Donor          string     `db:"donor_address"`
	Amount         int64      `db:"amount"`
	Status         string     `db:"status"`
	Timestamp      *time.Time `db:"timestamp"`
	TxHash         *string    `db:"tx_hash"`
	IdempotencyKey string     `db:"idempotency_key"`
	SubmitHash     string     `db:"submit_hash"`
	ContractSeq    *int64     `db:"contract_seq"`
	Actor          string     `db:"actor"`
	CreatedAt      time.Time  `db:"created_at"`
}

func (r row) toDomain() domain.Donation {
	d := domain.Donation{
		ID:             r.ID,
		CampaignID:     r.CampaignID,
		Donor:          r.Donor,
		Amount:         r.Amount,
		Status:         domain.DonationStatus(r.Status),
		Timestamp:      r.Timestamp,
		TxHash:         r.TxHash,
		IdempotencyKey: r.IdempotencyKey,
		SubmitHash:     r.SubmitHash,
		Actor:          r.Actor,
		CreatedAt:      r.CreatedAt,
	}
	if r.ContractSeq != nil {
		seq := uint64(*r.ContractSeq)
		d.ContractSeq = &seq
	}
	return d
}

func seqArg(seq *uint64) *int64 {
	if seq == nil {
		return nil
	}
	v := int64(*seq)
	return &v
}

// InsertPending inserts d unless its idempotency key is already taken and
// returns the stored row and whether this call created it.
func (r *Repo) InsertPending(ctx context.Context, d domain.Donation) (domain.Donation, bool, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(d.ID, d.CampaignID, d.Donor, d.Amount, string(d.Status), d.Timestamp, d.TxHash,
			d.IdempotencyKey, d.SubmitHash, seqArg(d.ContractSeq), d.Actor, d.CreatedAt).
		Suffix("ON CONFLICT (idempotency_key) DO NOTHING RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Donation{}, false, fmt.Errorf("build insert donation: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return domain.Donation{}, false, postgres.MapError(err, "donation", d.ID)
	}
	if len(rows) == 1 {
		return rows[0].toDomain(), true, nil
	}

	existing, err := r.getOne(ctx, squirrel.Eq{"idempotency_key": d.IdempotencyKey}, false, d.IdempotencyKey)
	if err != nil {
		return domain.Donation{}, false, err
	}
	return existing, false, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Donation, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, false, id)
}

// GetForUpdate locks the donation row for the rest of the transaction.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Donation, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, true, id)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Eq, lock bool, id any) (domain.Donation, error) {
	b := postgres.Builder().Select(columns...).From(table).Where(where)
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return domain.Donation{}, fmt.Errorf("build select donation: %w", err)
	}
	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Donation{}, postgres.MapError(err, "donation", id)
	}
	return out.toDomain(), nil
}

// UpdateState writes the bookkeeping columns of d: status, tx hash, ledger
// timestamp and sequence.
func (r *Repo) UpdateState(ctx context.Context, d domain.Donation) (domain.Donation, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("status", string(d.Status)).
		Set("tx_hash", d.TxHash).
		Set(`"timestamp"`, d.Timestamp).
		Set("contract_seq", seqArg(d.ContractSeq)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": d.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Donation{}, fmt.Errorf("build update donation: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Donation{}, postgres.MapError(err, "donation", d.ID)
	}
	return out.toDomain(), nil
}

// ListByCampaign returns a page of a campaign's donations, newest first,
// with the unpaged total.
func (r *Repo) ListByCampaign(ctx context.Context, f domain.DonationFilter) ([]domain.Donation, int, error) {
	where := squirrel.And{squirrel.Eq{"campaign_id": f.CampaignID}}
	if f.Donor != nil {
		where = append(where, squirrel.Eq{"donor_address": *f.Donor})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := postgres.Builder().Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count donations: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count donations: %w", err)
	}

	out, err := r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)))
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// AllByCampaign returns every donation of a campaign, newest first.
func (r *Repo) AllByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Donation, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at DESC", "id DESC"))
}

// ListPending returns pending_chain donations not touched since olderThan.
func (r *Repo) ListPending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Donation, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": string(domain.DonationStatusPendingChain)}).
		Where(squirrel.Lt{"updated_at": olderThan}).
		OrderBy("updated_at ASC").
		Limit(uint64(limit)))
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]domain.Donation, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list donations: %w", err)
	}
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	out := make([]domain.Donation, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}
