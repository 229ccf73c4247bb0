// Package workflow holds the pieces shared by the coordinator services:
// actor resolution, idempotency keys, duplicate submission recovery and
// ledger status mapping.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
	"github.com/aidflow/fundflow-backend/pkg/ctxutil"
)

const roleAdmin = "admin"

// IdempotencyKey returns op:nonce. An empty nonce gets a random one, which
// makes the request non-replayable.
func IdempotencyKey(op, nonce string) string {
	nonce = strings.TrimSpace(nonce)
	if nonce == "" {
		nonce = uuid.NewString()
	}
	return op + ":" + nonce
}

// Actor returns the principal acting on a request: the authenticated
// principal when present, otherwise the claimed address, otherwise fallback.
// An authenticated caller may not claim to be someone else.
func Actor(ctx context.Context, claimed, fallback string) (string, error) {
	claimed = strings.TrimSpace(claimed)
	if p, ok := ctxutil.PrincipalFromCtx(ctx); ok {
		if claimed != "" && claimed != p {
			return "", fmt.Errorf("%w: principal %s cannot act as %s", domain.ErrUnauthorized, p, claimed)
		}
		return p, nil
	}
	if claimed != "" {
		return claimed, nil
	}
	if fallback = strings.TrimSpace(fallback); fallback != "" {
		return fallback, nil
	}
	return "", domain.NewValidationError("actor", "required")
}

// RequireOwnerOrAdmin fails when an authenticated caller is neither owner
// nor an admin. Unauthenticated requests pass; the ledger still checks
// signatures.
func RequireOwnerOrAdmin(ctx context.Context, owner string) error {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok || p == owner || ctxutil.RoleFromCtx(ctx) == roleAdmin {
		return nil
	}
	return fmt.Errorf("%w: %s is not the owner", domain.ErrUnauthorized, p)
}

// RequireAdmin fails when an authenticated caller lacks the admin role.
func RequireAdmin(ctx context.Context) error {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok || ctxutil.RoleFromCtx(ctx) == roleAdmin {
		return nil
	}
	return fmt.Errorf("%w: admin role required", domain.ErrUnauthorized)
}

// ReceiptLookup resolves a submitted tx hash to its receipt.
type ReceiptLookup interface {
	LookupTx(ctx context.Context, txHash string) (*ledger.Receipt, bool, error)
}

// Recover turns a DuplicateTransaction rejection for hash into the stored
// result of the earlier submission of the same op. Any other outcome is
// returned unchanged.
func Recover[T any](ctx context.Context, lookup ReceiptLookup, op, hash string, res T, rcpt *ledger.Receipt, err error) (T, *ledger.Receipt, error) {
	if !IsDuplicate(err) {
		return res, rcpt, err
	}
	prior, found, lerr := lookup.LookupTx(ctx, hash)
	if lerr != nil {
		return res, nil, lerr
	}
	if !found || prior.Op != op {
		return res, nil, err
	}
	var out T
	if derr := prior.DecodeResult(&out); derr != nil {
		return res, nil, fmt.Errorf("decode %s receipt %s: %w", op, hash, derr)
	}
	return out, prior, nil
}

// Decode reads the typed result out of a receipt found by the reconciler.
func Decode[T any](rcpt *ledger.Receipt) (T, error) {
	var out T
	if err := rcpt.DecodeResult(&out); err != nil {
		return out, fmt.Errorf("decode %s receipt %s: %w", rcpt.Op, rcpt.TxHash, err)
	}
	return out, nil
}

// IsDuplicate reports whether err is a ledger DuplicateTransaction rejection.
func IsDuplicate(err error) bool {
	var ce *domain.ChainError
	return errors.As(err, &ce) && ce.Code == string(ledger.CodeDuplicateTransaction)
}

// RejectionDetails describes a ledger rejection for a failed audit entry.
func RejectionDetails(err error) map[string]any {
	var ce *domain.ChainError
	if errors.As(err, &ce) {
		return map[string]any{"code": ce.Code, "message": ce.Message}
	}
	return map[string]any{"message": err.Error()}
}

// CampaignStatus maps a ledger campaign status into the mirror.
func CampaignStatus(s ledger.CampaignStatus) domain.CampaignStatus {
	switch s {
	case ledger.CampaignCompleted:
		return domain.CampaignStatusCompleted
	case ledger.CampaignClosed:
		return domain.CampaignStatusClosed
	default:
		return domain.CampaignStatusActive
	}
}

// ApplyCampaign folds a ledger campaign snapshot into c. A receipt older
// than what c already mirrors leaves raised alone and never reverts status.
func ApplyCampaign(c *domain.Campaign, rec ledger.CampaignRecord) bool {
	return c.Advance(rec.Raised, rec.Version(), CampaignStatus(rec.Status))
}

// DisbursementStatus maps a ledger disbursement into the mirror, deriving
// approved from the approver count and quorum.
func DisbursementStatus(rec ledger.DisbursementRecord, quorum int) domain.DisbursementStatus {
	switch rec.Status {
	case ledger.DisbursementExecuted:
		return domain.DisbursementStatusExecuted
	case ledger.DisbursementRejected:
		return domain.DisbursementStatusRejected
	default:
		return domain.DeriveDisbursementStatus(domain.DisbursementStatusPending, len(rec.Approvers), quorum)
	}
}
