package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Env is the execution context of a single invocation. Reads see the
// invocation's own buffered writes; nothing reaches the store until the
// runtime applies the buffer.
type Env struct {
	ctx     context.Context
	store   Store
	writes  map[string][]byte
	signers map[string]struct{}
	now     int64
	txHash  string
	events  []string
}

func newEnv(ctx context.Context, store Store, signers []string, now int64, txHash string) *Env {
	set := make(map[string]struct{}, len(signers))
	for _, s := range signers {
		set[s] = struct{}{}
	}
	return &Env{
		ctx:     ctx,
		store:   store,
		writes:  make(map[string][]byte),
		signers: set,
		now:     now,
		txHash:  txHash,
	}
}

// Now returns the ledger timestamp of the invocation in unix seconds.
func (e *Env) Now() int64 { return e.now }

func (e *Env) get(key string) ([]byte, bool, error) {
	if v, ok := e.writes[key]; ok {
		return v, true, nil
	}
	return e.store.Get(e.ctx, key)
}

func (e *Env) put(key string, v []byte) { e.writes[key] = v }

func (e *Env) requireAuth(principal string) error {
	if principal == "" {
		return reject(CodeUnauthorized, "missing principal")
	}
	if _, ok := e.signers[principal]; !ok {
		return reject(CodeUnauthorized, "authorization required from %s", principal)
	}
	return nil
}

// emit records a pipe-delimited event line, e.g. "dn|c:1|by:GABC|amt:300".
func (e *Env) emit(format string, args ...any) {
	e.events = append(e.events, fmt.Sprintf(format, args...))
}

func (e *Env) loadObject(key string, v any) (bool, error) {
	raw, ok, err := e.get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %x: %w", key, err)
	}
	return true, nil
}

func (e *Env) storeObject(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %x: %w", key, err)
	}
	e.put(key, raw)
	return nil
}

// Counters are stored as decimal strings.
func (e *Env) getCount(key string) (uint64, error) {
	raw, ok, err := e.get(key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode counter %x: %w", key, err)
	}
	return n, nil
}

func (e *Env) setCount(key string, n uint64) {
	e.put(key, []byte(strconv.FormatUint(n, 10)))
}

// nextID increments the counter at key and returns the new value.
func (e *Env) nextID(key string) (uint64, error) {
	n, err := e.getCount(key)
	if err != nil {
		return 0, err
	}
	if n == math.MaxUint64 {
		panic(overflowPanic{what: "counter"})
	}
	n++
	e.setCount(key, n)
	return n, nil
}

func (e *Env) loadCampaign(id uint64) (*CampaignRecord, error) {
	var c CampaignRecord
	ok, err := e.loadObject(campaignKey(id), &c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, reject(CodeNotFound, "campaign %d not found", id)
	}
	return &c, nil
}

func (e *Env) loadDisbursement(id uint64) (*DisbursementRecord, error) {
	var d DisbursementRecord
	ok, err := e.loadObject(disbursementKey(id), &d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, reject(CodeNotFound, "disbursement %d not found", id)
	}
	return &d, nil
}

func (e *Env) loadAdmin() (string, bool, error) {
	raw, ok, err := e.get(instanceKey(kAdmin))
	if err != nil || !ok {
		return "", false, err
	}
	return string(raw), true, nil
}

// loadQuorum returns the configured quorum, 1 when unset.
func (e *Env) loadQuorum() (uint32, error) {
	n, err := e.getCount(instanceKey(kQuorum))
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 1, nil
	}
	return uint32(n), nil
}

// addAmount returns a+b, panicking with overflowPanic on overflow.
func addAmount(a, b int64) int64 {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		panic(overflowPanic{what: "amount"})
	}
	return a + b
}
