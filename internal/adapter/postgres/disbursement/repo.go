// Package disbursement implements the Disbursement repository using PostgreSQL.
package disbursement

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

const table = "disbursements"

var columns = []string{
	"id", "campaign_id", "recipient", "amount", "status", "proposer", "approvers",
	"contract_disbursement_id", "idempotency_key", "submit_hash", "propose_tx_hash", "tx_hash",
	"created_at", "updated_at", "executed_at",
}

// Repo provides disbursement persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new disbursement repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID                     uuid.UUID  `db:"id"`
	CampaignID             uuid.UUID  `db:"campaign_id"`
	Recipient              string     `db:"recipient"`
	Amount                 int64      `db:"amount"`
	Status                 string     `db:"status"`
	Proposer               string     `db:"proposer"`
	Approvers              []string   `db:"approvers"`
	ContractDisbursementID *int64     `db:"contract_disbursement_id"`
	IdempotencyKey         string     `db:"idempotency_key"`
	SubmitHash             *string    `db:"submit_hash"`
	ProposeTxHash          *string    `db:"propose_tx_hash"`
	TxHash                 *string    `db:"tx_hash"`
	CreatedAt              time.Time  `db:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at"`
	ExecutedAt             *time.Time `db:"executed_at"`
}

func (r row) toDomain() domain.Disbursement {
	d := domain.Disbursement{
		ID:             r.ID,
		CampaignID:     r.CampaignID,
		Recipient:      r.Recipient,
		Amount:         r.Amount,
		Status:         domain.DisbursementStatus(r.Status),
		Proposer:       r.Proposer,
		Approvers:      r.Approvers,
		IdempotencyKey: r.IdempotencyKey,
		SubmitHash:     r.SubmitHash,
		ProposeTxHash:  r.ProposeTxHash,
		TxHash:         r.TxHash,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		ExecutedAt:     r.ExecutedAt,
	}
	if d.Approvers == nil {
		d.Approvers = []string{}
	}
	if r.ContractDisbursementID != nil {
		id := uint64(*r.ContractDisbursementID)
		d.ContractDisbursementID = &id
	}
	return d
}

func contractID(id *uint64) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

func approvers(a []string) []string {
	if a == nil {
		return []string{}
	}
	return a
}

// InsertPending inserts d unless its idempotency key is already taken and
// returns the stored row and whether this call created it.
func (r *Repo) InsertPending(ctx context.Context, d domain.Disbursement) (domain.Disbursement, bool, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(d.ID, d.CampaignID, d.Recipient, d.Amount, string(d.Status), d.Proposer, approvers(d.Approvers),
			contractID(d.ContractDisbursementID), d.IdempotencyKey, d.SubmitHash, d.ProposeTxHash, d.TxHash,
			d.CreatedAt, d.UpdatedAt, d.ExecutedAt).
		Suffix("ON CONFLICT (idempotency_key) DO NOTHING RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Disbursement{}, false, fmt.Errorf("build insert disbursement: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return domain.Disbursement{}, false, postgres.MapError(err, "disbursement", d.ID)
	}
	if len(rows) == 1 {
		return rows[0].toDomain(), true, nil
	}

	existing, err := r.GetByIdempotencyKey(ctx, d.IdempotencyKey)
	if err != nil {
		return domain.Disbursement{}, false, err
	}
	return existing, false, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Disbursement, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, false, id)
}

func (r *Repo) GetByIdempotencyKey(ctx context.Context, key string) (domain.Disbursement, error) {
	return r.getOne(ctx, squirrel.Eq{"idempotency_key": key}, false, key)
}

// GetForUpdate locks the disbursement row for the rest of the transaction.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Disbursement, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, true, id)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Eq, lock bool, id any) (domain.Disbursement, error) {
	b := postgres.Builder().Select(columns...).From(table).Where(where)
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return domain.Disbursement{}, fmt.Errorf("build select disbursement: %w", err)
	}
	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Disbursement{}, postgres.MapError(err, "disbursement", id)
	}
	return out.toDomain(), nil
}

// UpdateState writes the mutable columns of d.
func (r *Repo) UpdateState(ctx context.Context, d domain.Disbursement) (domain.Disbursement, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("status", string(d.Status)).
		Set("approvers", approvers(d.Approvers)).
		Set("contract_disbursement_id", contractID(d.ContractDisbursementID)).
		Set("propose_tx_hash", d.ProposeTxHash).
		Set("tx_hash", d.TxHash).
		Set("executed_at", d.ExecutedAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": d.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Disbursement{}, fmt.Errorf("build update disbursement: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Disbursement{}, postgres.MapError(err, "disbursement", d.ID)
	}
	return out.toDomain(), nil
}

// ListByCampaign returns every disbursement of a campaign, newest first.
func (r *Repo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Disbursement, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at DESC", "id DESC"))
}

// ListPending returns pending_chain disbursements not touched since olderThan.
func (r *Repo) ListPending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Disbursement, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": string(domain.DisbursementStatusPendingChain)}).
		Where(squirrel.Lt{"updated_at": olderThan}).
		OrderBy("updated_at ASC").
		Limit(uint64(limit)))
}

// ListOpenAfter pages through pending and approved disbursements that are
// known to the ledger, ordered by id.
func (r *Repo) ListOpenAfter(ctx context.Context, after uuid.UUID, limit int) ([]domain.Disbursement, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": []string{
			string(domain.DisbursementStatusPending),
			string(domain.DisbursementStatusApproved),
		}}).
		Where(squirrel.NotEq{"contract_disbursement_id": nil}).
		Where(squirrel.Gt{"id": after}).
		OrderBy("id ASC").
		Limit(uint64(limit)))
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]domain.Disbursement, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list disbursements: %w", err)
	}
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list disbursements: %w", err)
	}
	out := make([]domain.Disbursement, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}
