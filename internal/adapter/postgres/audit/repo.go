// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/aidflow/fundflow-backend/internal/adapter/postgres"
	"github.com/aidflow/fundflow-backend/internal/domain"
)

const table = "audit_logs"

// chainLockKey is the pg_advisory_xact_lock key that serializes appends.
const chainLockKey int64 = 0x61756469746c6f67

var columns = []string{
	"id", "seq", "entity_type", "entity_id", "campaign_id", "action", "actor",
	"details", "created_at", "prev_hash", "entry_hash",
}

// insertColumns omits seq, which the database assigns.
var insertColumns = []string{
	"id", "entity_type", "entity_id", "campaign_id", "action", "actor",
	"details", "created_at", "prev_hash", "entry_hash",
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	Seq        int64      `db:"seq"`
	EntityType string     `db:"entity_type"`
	EntityID   uuid.UUID  `db:"entity_id"`
	CampaignID *uuid.UUID `db:"campaign_id"`
	Action     string     `db:"action"`
	Actor      string     `db:"actor"`
	Details    []byte     `db:"details"`
	CreatedAt  time.Time  `db:"created_at"`
	PrevHash   string     `db:"prev_hash"`
	EntryHash  string     `db:"entry_hash"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// LockChain takes the transaction-scoped advisory lock guarding the hash
// chain. It must run inside a transaction.
func (r *Repo) LockChain(ctx context.Context) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, "SELECT pg_advisory_xact_lock($1)", chainLockKey); err != nil {
		return fmt.Errorf("lock audit chain: %w", err)
	}
	return nil
}

// LastHash returns the entry hash of the newest record, or "" for an empty log.
func (r *Repo) LastHash(ctx context.Context) (string, error) {
	query, args, err := postgres.Builder().
		Select("entry_hash").
		From(table).
		OrderBy("seq DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build last audit hash: %w", err)
	}

	var hashes []string
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &hashes, query, args...); err != nil {
		return "", fmt.Errorf("last audit hash: %w", err)
	}
	if len(hashes) == 0 {
		return "", nil
	}
	return hashes[0], nil
}

// Create inserts a new audit record and returns it with its assigned seq.
// Details are stored exactly as canonicalDetails renders them.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	details, err := canonicalDetails(record.Details)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record %s: %w", record.ID, err)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(insertColumns...).
		Values(record.ID, string(record.EntityType), record.EntityID, record.CampaignID,
			string(record.Action), record.Actor, details, record.CreatedAt, record.PrevHash, record.EntryHash).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("build insert audit_record: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}
	return out.toDomain()
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByCampaign returns every entry referencing the campaign, its donations
// or its disbursements, ordered by created_at DESC, entity_id DESC, seq DESC.
func (r *Repo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.AuditRecord, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at DESC", "entity_id DESC", "seq DESC"))
}

// ListFromSeq returns up to limit entries with seq > after, in chain order.
func (r *Repo) ListFromSeq(ctx context.Context, after int64, limit int) ([]domain.AuditRecord, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Gt{"seq": after}).
		OrderBy("seq ASC").
		Limit(uint64(limit)))
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]domain.AuditRecord, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit_records: %w", err)
	}
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list audit_records: %w", err)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, rw := range rows {
		rec, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func (r row) toDomain() (domain.AuditRecord, error) {
	record := domain.AuditRecord{
		ID:         r.ID,
		Seq:        r.Seq,
		EntityType: domain.EntityType(r.EntityType),
		EntityID:   r.EntityID,
		CampaignID: r.CampaignID,
		Action:     domain.AuditAction(r.Action),
		Actor:      r.Actor,
		CreatedAt:  r.CreatedAt,
		PrevHash:   r.PrevHash,
		EntryHash:  r.EntryHash,
		Details:    map[string]any{},
	}

	if len(r.Details) > 0 {
		dec := json.NewDecoder(bytes.NewReader(r.Details))
		dec.UseNumber()
		if err := dec.Decode(&record.Details); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal details: %w", r.ID, err)
		}
	}
	return record, nil
}

// canonicalDetails renders details as compact JSON with sorted keys, the
// same bytes the audit service hashes.
// Values decoded with UseNumber re-render to the same bytes, so the hash of a
// stored entry can be recomputed after a round trip through jsonb.
func canonicalDetails(details map[string]any) ([]byte, error) {
	if details == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal details: %w", err)
	}
	return b, nil
}
