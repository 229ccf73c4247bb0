// Package chain is the coordinator-facing client of the donation ledger.
package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
)

// Client invokes the ledger contract with a bounded deadline and classifies
// failures into rejected (deterministic) or transient (unknown outcome).
type Client struct {
	contract   *ledger.Contract
	timeout    time.Duration
	network    string
	horizonURL string
	log        *slog.Logger
}

// Config holds client settings.
type Config struct {
	Network     string
	HorizonURL  string
	CallTimeout time.Duration
}

func NewClient(logger *slog.Logger, contract *ledger.Contract, cfg Config) *Client {
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		contract:   contract,
		timeout:    timeout,
		network:    cfg.Network,
		horizonURL: strings.TrimSuffix(cfg.HorizonURL, "/"),
		log:        logger.With("adapter", "chain"),
	}
}

// ContractID returns the id of the contract this client talks to.
func (c *Client) ContractID() string { return c.contract.Runtime().ContractID() }

// Network returns the configured network name.
func (c *Client) Network() string { return c.network }

// TxURL returns the explorer URL of a transaction.
func (c *Client) TxURL(txHash string) string {
	if c.horizonURL == "" || txHash == "" {
		return ""
	}
	return c.horizonURL + "/transactions/" + txHash
}

// SubmitHash returns the hash a transaction carrying memo will be stored under.
func (c *Client) SubmitHash(memo string) string {
	return c.contract.Runtime().DeriveTxHash(memo)
}

// Now returns the ledger clock.
func (c *Client) Now() time.Time {
	return time.Unix(c.contract.Runtime().Now(), 0).UTC()
}

type outcome[T any] struct {
	res  T
	rcpt *ledger.Receipt
	err  error
}

// call runs fn detached from the caller's cancellation, bounded by the
// client timeout. On timeout the invocation may still land; the caller
// treats the result as unknown.
func call[T any](ctx context.Context, c *Client, op string, fn func(context.Context) (T, *ledger.Receipt, error)) (T, *ledger.Receipt, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		res, rcpt, err := fn(ctx)
		done <- outcome[T]{res: res, rcpt: rcpt, err: err}
	}()

	var zero T
	select {
	case out := <-done:
		if out.err != nil {
			return zero, nil, c.classify(ctx, op, out.err)
		}
		c.log.DebugContext(ctx, "ledger call ok",
			slog.String("op", op),
			slog.String("tx_hash", out.rcpt.TxHash),
		)
		return out.res, out.rcpt, nil
	case <-ctx.Done():
		return zero, nil, c.classify(ctx, op, ctx.Err())
	}
}

func read[T any](ctx context.Context, c *Client, op string, fn func(context.Context) (T, error)) (T, error) {
	res, _, err := call(ctx, c, op, func(ctx context.Context) (T, *ledger.Receipt, error) {
		v, err := fn(ctx)
		return v, &ledger.Receipt{}, err
	})
	return res, err
}

func (c *Client) classify(ctx context.Context, op string, err error) error {
	var le *ledger.Error
	if errors.As(err, &le) {
		ce := &domain.ChainError{Kind: domain.ErrChainRejected, Code: string(le.Code), Message: le.Message}
		if le.Code == ledger.CodeNotFound {
			ce.Err = domain.ErrNotFound
		}
		return ce
	}

	msg := "ledger unavailable"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "ledger call timed out"
	}
	c.log.WarnContext(ctx, "ledger call failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return &domain.ChainError{Kind: domain.ErrChainTransient, Message: fmt.Sprintf("%s: %s", op, msg), Err: err}
}
