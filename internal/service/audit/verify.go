package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

const verifyPageSize = 500

// Verify walks the whole chain in seq order and reports the first entry whose
// prev_hash or entry_hash does not match the recomputed value.
func (s *Service) Verify(ctx context.Context) (domain.ChainVerification, error) {
	var (
		res   = domain.ChainVerification{Valid: true}
		prev  string
		after int64
	)

	for {
		page, err := s.audit.ListFromSeq(ctx, after, verifyPageSize)
		if err != nil {
			return domain.ChainVerification{}, fmt.Errorf("read audit chain: %w", err)
		}

		for _, rec := range page {
			res.Checked++
			details, err := json.Marshal(rec.Details)
			if err != nil {
				return domain.ChainVerification{}, fmt.Errorf("marshal audit details seq %d: %w", rec.Seq, err)
			}

			stored := rec.EntryHash
			rec.PrevHash = prev
			if stored != EntryHash(rec, details) {
				seq := rec.Seq
				res.Valid = false
				res.BrokenSeq = &seq
				s.log.WarnContext(ctx, "audit chain broken", slog.Int64("seq", seq))
				return res, nil
			}
			prev = stored
			after = rec.Seq
		}

		if len(page) < verifyPageSize {
			return res, nil
		}
	}
}
