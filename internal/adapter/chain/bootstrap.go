package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
)

// EnsureInitialized initializes the contract with admin when it has no admin
// yet and applies the starting quorum. An initialized ledger is left as is.
func (c *Client) EnsureInitialized(ctx context.Context, admin string, quorum uint32) error {
	current, err := c.GetAdmin(ctx)
	if err == nil {
		if current != admin {
			c.log.WarnContext(ctx, "ledger admin differs from config",
				slog.String("ledger_admin", current),
				slog.String("config_admin", admin),
			)
		}
		return nil
	}
	var ce *domain.ChainError
	if !errors.As(err, &ce) || ce.Code != string(ledger.CodeNotInitialized) {
		return fmt.Errorf("get ledger admin: %w", err)
	}

	tx := Tx{Signers: []string{admin}}
	if _, _, err := c.Initialize(ctx, tx, admin); err != nil {
		return fmt.Errorf("initialize ledger: %w", err)
	}
	if quorum > 1 {
		if _, _, err := c.SetQuorum(ctx, tx, admin, quorum); err != nil {
			return fmt.Errorf("set quorum: %w", err)
		}
	}
	c.log.InfoContext(ctx, "ledger initialized",
		slog.String("admin", admin),
		slog.Int("quorum", int(max(quorum, 1))),
	)
	return nil
}
