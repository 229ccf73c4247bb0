// Package audit writes the append-only, hash-chained audit trail and serves
// the merged campaign history.
package audit

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type auditRepo interface {
	LockChain(ctx context.Context) error
	LastHash(ctx context.Context) (string, error)
	Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.AuditRecord, error)
	ListFromSeq(ctx context.Context, after int64, limit int) ([]domain.AuditRecord, error)
}

type campaignRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error)
}

type donationRepo interface {
	AllByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Donation, error)
}

type disbursementRepo interface {
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Disbursement, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service appends audit entries and reads them back.
type Service struct {
	audit         auditRepo
	campaigns     campaignRepo
	donations     donationRepo
	disbursements disbursementRepo
	tx            txManager
	log           *slog.Logger
	now           func() time.Time
}

// NewService creates a new audit service.
func NewService(
	log *slog.Logger,
	audit auditRepo,
	campaigns campaignRepo,
	donations donationRepo,
	disbursements disbursementRepo,
	tx txManager,
) *Service {
	return &Service{
		audit:         audit,
		campaigns:     campaigns,
		donations:     donations,
		disbursements: disbursements,
		tx:            tx,
		log:           log.With("service", "audit"),
		now:           time.Now,
	}
}

// Log appends one entry to the chain. Called inside a caller's transaction
// it joins that transaction, so the entry commits or rolls back with the
// state change it describes.
func (s *Service) Log(ctx context.Context, rec domain.AuditRecord) error {
	rec.Actor = strings.TrimSpace(rec.Actor)
	if rec.Actor == "" {
		return domain.NewValidationError("actor", "required")
	}
	if !rec.EntityType.IsValid() {
		return domain.NewValidationError("entity_type", "invalid")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC().Truncate(time.Microsecond)
	if rec.Details == nil {
		rec.Details = map[string]any{}
	}

	details, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.audit.LockChain(txCtx); err != nil {
			return err
		}
		prev, err := s.audit.LastHash(txCtx)
		if err != nil {
			return err
		}
		rec.PrevHash = prev
		rec.EntryHash = EntryHash(rec, details)

		if _, err := s.audit.Create(txCtx, rec); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}
		return nil
	})
}

// EntryHash computes blake2b-256 over the previous hash and the entry's
// content. details must be the canonical JSON of rec.Details.
func EntryHash(rec domain.AuditRecord, details []byte) string {
	parts := []string{
		rec.PrevHash,
		string(rec.EntityType),
		rec.EntityID.String(),
		string(rec.Action),
		rec.Actor,
		string(details),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	sum := blake2b.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
