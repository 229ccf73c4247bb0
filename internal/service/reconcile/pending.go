package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
)

// resolvePending settles pending_chain rows older than the grace period. A
// row whose submission landed is finalized from its receipt; otherwise it is
// re-submitted under the same hash.
func (s *Service) resolvePending(ctx context.Context, r *Report) error {
	cutoff := s.now().Add(-s.grace)
	var errs []error

	campaigns, err := s.campaigns.ListPending(ctx, cutoff, s.batch)
	if err != nil {
		errs = append(errs, fmt.Errorf("list pending campaigns: %w", err))
	}
	for _, c := range campaigns {
		s.resolve(ctx, r, domain.EntityTypeCampaign, c.ID, c.SubmitHash,
			func(rcpt *ledger.Receipt) error {
				_, err := s.writers.Campaigns.FinalizeReceipt(ctx, c, rcpt)
				return err
			},
			func() error {
				_, err := s.writers.Campaigns.Resume(ctx, c)
				return err
			})
	}

	donations, err := s.donations.ListPending(ctx, cutoff, s.batch)
	if err != nil {
		errs = append(errs, fmt.Errorf("list pending donations: %w", err))
	}
	for _, d := range donations {
		s.resolve(ctx, r, domain.EntityTypeDonation, d.ID, &d.SubmitHash,
			func(rcpt *ledger.Receipt) error {
				_, err := s.writers.Donations.FinalizeReceipt(ctx, d, rcpt)
				return err
			},
			func() error {
				_, err := s.writers.Donations.Resume(ctx, d)
				return err
			})
	}

	disbursements, err := s.disbursements.ListPending(ctx, cutoff, s.batch)
	if err != nil {
		errs = append(errs, fmt.Errorf("list pending disbursements: %w", err))
	}
	for _, d := range disbursements {
		s.resolve(ctx, r, domain.EntityTypeDisbursement, d.ID, d.SubmitHash,
			func(rcpt *ledger.Receipt) error {
				_, err := s.writers.Disbursements.FinalizeReceipt(ctx, d, rcpt)
				return err
			},
			func() error {
				_, err := s.writers.Disbursements.Resume(ctx, d)
				return err
			})
	}

	return errors.Join(errs...)
}

func (s *Service) resolve(
	ctx context.Context,
	r *Report,
	kind domain.EntityType,
	id uuid.UUID,
	submitHash *string,
	finalize func(*ledger.Receipt) error,
	resume func() error,
) {
	log := s.log.With(slog.String("entity_type", kind.String()), slog.String("entity_id", id.String()))
	if submitHash == nil || *submitHash == "" {
		r.Errors++
		log.WarnContext(ctx, "pending row has no submit hash")
		return
	}

	rcpt, found, err := s.chain.LookupTx(ctx, *submitHash)
	if err != nil {
		r.Errors++
		log.WarnContext(ctx, "receipt lookup failed", slog.String("error", err.Error()))
		return
	}

	if found {
		if err := finalize(rcpt); err != nil {
			r.Errors++
			log.ErrorContext(ctx, "finalize from receipt failed", slog.String("error", err.Error()))
			return
		}
		r.Finalized++
		log.InfoContext(ctx, "pending row finalized from receipt", slog.String("tx_hash", rcpt.TxHash))
		return
	}

	switch err := resume(); {
	case err == nil:
		r.Resubmitted++
		log.InfoContext(ctx, "pending row resubmitted")
	case domain.IsChainRejected(err):
		r.Rejected++
		log.InfoContext(ctx, "pending row rejected by the ledger", slog.String("error", err.Error()))
	default:
		r.Errors++
		log.WarnContext(ctx, "resubmit failed", slog.String("error", err.Error()))
	}
}
