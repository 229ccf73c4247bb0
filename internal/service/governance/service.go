// Package governance manages the approval quorum and keeps an in-process
// copy of it for status derivation.
package governance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
	"github.com/aidflow/fundflow-backend/internal/service/workflow"
)

type ledgerClient interface {
	GetQuorum(ctx context.Context) (uint32, error)
	GetAdmin(ctx context.Context) (string, error)
	SetQuorum(ctx context.Context, tx chain.Tx, caller string, n uint32) (ledger.QuorumResult, *ledger.Receipt, error)
	SubmitHash(memo string) string
	LookupTx(ctx context.Context, txHash string) (*ledger.Receipt, bool, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// Settings is the governance state reported to callers.
type Settings struct {
	Admin  string `json:"admin"`
	Quorum int    `json:"quorum"`
}

// Service caches the ledger quorum. The cache is filled on first use and
// replaced after a successful SetQuorum.
type Service struct {
	chain  ledgerClient
	events eventPublisher
	log    *slog.Logger

	mu     sync.RWMutex
	quorum int
}

// NewService creates a new governance service.
func NewService(log *slog.Logger, chain ledgerClient, events eventPublisher) *Service {
	return &Service{
		chain:  chain,
		events: events,
		log:    log.With("service", "governance"),
	}
}

// Quorum returns the cached quorum, loading it from the ledger on a miss.
func (s *Service) Quorum(ctx context.Context) (int, error) {
	s.mu.RLock()
	q := s.quorum
	s.mu.RUnlock()
	if q > 0 {
		return q, nil
	}
	return s.Refresh(ctx)
}

// Refresh reloads the quorum from the ledger.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	n, err := s.chain.GetQuorum(ctx)
	if err != nil {
		return 0, fmt.Errorf("get quorum: %w", err)
	}
	q := max(int(n), 1)

	s.mu.Lock()
	s.quorum = q
	s.mu.Unlock()
	return q, nil
}

// Settings returns the ledger admin and the current quorum.
func (s *Service) Settings(ctx context.Context) (Settings, error) {
	admin, err := s.chain.GetAdmin(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("get admin: %w", err)
	}
	q, err := s.Quorum(ctx)
	if err != nil {
		return Settings{}, err
	}
	return Settings{Admin: admin, Quorum: q}, nil
}

// SetQuorumInput holds the parameters for changing the quorum.
type SetQuorumInput struct {
	Quorum int
	Caller string
}

func (i SetQuorumInput) Validate() error {
	if i.Quorum < 1 {
		return domain.NewValidationError("quorum", "must be at least 1")
	}
	if i.Quorum > 1<<16 {
		return domain.NewValidationError("quorum", "too large")
	}
	return nil
}

// SetQuorum changes the approval quorum on the ledger. Only the ledger admin
// may do this.
func (s *Service) SetQuorum(ctx context.Context, input SetQuorumInput) (Settings, error) {
	if err := input.Validate(); err != nil {
		return Settings{}, err
	}
	if err := workflow.RequireAdmin(ctx); err != nil {
		return Settings{}, err
	}

	admin, err := s.chain.GetAdmin(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("get admin: %w", err)
	}
	caller, err := workflow.Actor(ctx, input.Caller, admin)
	if err != nil {
		return Settings{}, err
	}

	hash := s.chain.SubmitHash(workflow.IdempotencyKey(ledger.OpSetQuorum, ""))
	res, rcpt, err := s.chain.SetQuorum(ctx, chain.Tx{Signers: []string{caller}, Hash: hash}, caller, uint32(input.Quorum))
	res, rcpt, err = workflow.Recover(ctx, s.chain, ledger.OpSetQuorum, hash, res, rcpt, err)
	if err != nil {
		return Settings{}, err
	}

	q := max(int(res.Quorum), 1)
	s.mu.Lock()
	s.quorum = q
	s.mu.Unlock()

	s.log.InfoContext(ctx, "quorum changed",
		slog.String("caller", caller),
		slog.Int("quorum", q),
		slog.String("tx_hash", rcpt.TxHash),
	)
	if err := s.events.Publish(ctx, domain.EventQuorumChanged, Settings{Admin: res.Admin, Quorum: q}); err != nil {
		s.log.WarnContext(ctx, "publish event failed", slog.String("error", err.Error()))
	}

	return Settings{Admin: res.Admin, Quorum: q}, nil
}
