// Package ledger implements the donation ledger contract and an embedded
// runtime that executes it against a key-value store.
package ledger

import "context"

// Contract exposes the ledger entry points.
type Contract struct {
	rt *Runtime
}

func NewContract(rt *Runtime) *Contract {
	return &Contract{rt: rt}
}

// Runtime returns the runtime the contract executes on.
func (c *Contract) Runtime() *Runtime { return c.rt }

// Initialize sets the admin. It runs exactly once.
func (c *Contract) Initialize(ctx context.Context, inv Invocation, admin string) (QuorumResult, *Receipt, error) {
	return invoke(ctx, c.rt, OpInitialize, inv, func(e *Env) (QuorumResult, error) {
		if err := e.requireAuth(admin); err != nil {
			return QuorumResult{}, err
		}
		if _, ok, err := e.loadAdmin(); err != nil {
			return QuorumResult{}, err
		} else if ok {
			return QuorumResult{}, reject(CodeAlreadyInitialized, "contract already initialized")
		}
		e.put(instanceKey(kAdmin), []byte(admin))
		e.setCount(instanceKey(kQuorum), 1)
		e.emit("init|admin:%s", admin)
		return QuorumResult{Admin: admin, Quorum: 1}, nil
	})
}

// SetQuorum changes the number of distinct approvals required for execution.
func (c *Contract) SetQuorum(ctx context.Context, inv Invocation, caller string, n uint32) (QuorumResult, *Receipt, error) {
	return invoke(ctx, c.rt, OpSetQuorum, inv, func(e *Env) (QuorumResult, error) {
		admin, ok, err := e.loadAdmin()
		if err != nil {
			return QuorumResult{}, err
		}
		if !ok {
			return QuorumResult{}, reject(CodeNotInitialized, "contract not initialized")
		}
		if caller != admin {
			return QuorumResult{}, reject(CodeUnauthorized, "only the admin may set the quorum")
		}
		if err := e.requireAuth(admin); err != nil {
			return QuorumResult{}, err
		}
		if n < 1 {
			return QuorumResult{}, reject(CodeInvalidQuorum, "quorum must be at least 1")
		}
		e.setCount(instanceKey(kQuorum), uint64(n))
		e.emit("sq|n:%d|by:%s", n, admin)
		return QuorumResult{Admin: admin, Quorum: n}, nil
	})
}
