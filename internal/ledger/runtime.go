package ledger

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Invocation describes who signs a transaction and how it is identified.
// TxHash, when set, is used verbatim (a client-signed hash). Otherwise the
// hash is derived from the contract id and Memo.
type Invocation struct {
	Signers []string
	TxHash  string
	Memo    string
}

// Runtime executes contract invocations one at a time against a Store.
type Runtime struct {
	mu         sync.Mutex
	store      Store
	contractID string
	clock      func() int64
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithClock overrides the ledger clock (unix seconds).
func WithClock(clock func() int64) Option {
	return func(r *Runtime) { r.clock = clock }
}

func NewRuntime(store Store, contractID string, opts ...Option) *Runtime {
	r := &Runtime{
		store:      store,
		contractID: contractID,
		clock:      func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContractID returns the id of the deployed contract.
func (r *Runtime) ContractID() string { return r.contractID }

// Now returns the current ledger time.
func (r *Runtime) Now() int64 { return r.clock() }

// DeriveTxHash computes hex(blake2b-256(contract_id|memo)).
func (r *Runtime) DeriveTxHash(memo string) string {
	return DeriveTxHash(r.contractID, memo)
}

// DeriveTxHash computes hex(blake2b-256(contract_id|memo)).
func DeriveTxHash(contractID, memo string) string {
	sum := blake2b.Sum256([]byte(contractID + "|" + memo))
	return hex.EncodeToString(sum[:])
}

// Receipt returns the receipt stored for txHash.
func (r *Runtime) Receipt(ctx context.Context, txHash string) (*Receipt, bool, error) {
	raw, ok, err := r.store.Get(ctx, receiptKey(txHash))
	if err != nil || !ok {
		return nil, false, err
	}
	var rcpt Receipt
	if err := json.Unmarshal(raw, &rcpt); err != nil {
		return nil, false, fmt.Errorf("decode receipt: %w", err)
	}
	return &rcpt, true, nil
}

// invoke runs fn under the runtime lock. On success the buffered writes and
// the receipt are applied in one batch; on any error nothing is written.
func invoke[T any](ctx context.Context, r *Runtime, op string, inv Invocation, fn func(*Env) (T, error)) (T, *Receipt, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	txHash := inv.TxHash
	if txHash == "" {
		memo := inv.Memo
		if memo == "" {
			memo = uuid.NewString()
		}
		txHash = r.DeriveTxHash(memo)
	}

	if _, dup, err := r.store.Get(ctx, receiptKey(txHash)); err != nil {
		return zero, nil, fmt.Errorf("load receipt: %w", err)
	} else if dup {
		return zero, nil, reject(CodeDuplicateTransaction, "transaction %s already applied", txHash)
	}

	env := newEnv(ctx, r.store, inv.Signers, r.clock(), txHash)
	result, err := runGuarded(env, fn)
	if err != nil {
		return zero, nil, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return zero, nil, fmt.Errorf("encode result: %w", err)
	}
	rcpt := &Receipt{
		TxHash:     txHash,
		Op:         op,
		Signers:    inv.Signers,
		LedgerTime: env.now,
		Events:     env.events,
		Result:     raw,
	}
	if err := env.storeObject(receiptKey(txHash), rcpt); err != nil {
		return zero, nil, err
	}
	if err := r.store.Apply(ctx, env.writes); err != nil {
		return zero, nil, fmt.Errorf("apply writes: %w", err)
	}
	return result, rcpt, nil
}

func runGuarded[T any](env *Env, fn func(*Env) (T, error)) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			op, ok := p.(overflowPanic)
			if !ok {
				panic(p)
			}
			err = reject(CodeOverflow, "%s overflow", op.what)
		}
	}()
	return fn(env)
}

// view runs a read-only function under the runtime lock.
func view[T any](ctx context.Context, r *Runtime, fn func(*Env) (T, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(newEnv(ctx, r.store, nil, r.clock(), ""))
}
