// Package chaintest runs an initialized in-memory ledger for tests.
package chaintest

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/ledger"
)

// Admin is the admin principal of every test ledger.
const Admin = "GADMIN"

// Clock is a settable ledger clock.
type Clock struct {
	now atomic.Int64
}

func (c *Clock) Now() int64 { return c.now.Load() }

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) { c.now.Store(t.Unix()) }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.now.Add(int64(d / time.Second)) }

// Ledger is a test ledger together with its clock and store.
type Ledger struct {
	Client *chain.Client
	Clock  *Clock
	Store  *ledger.MemoryStore
}

// New starts a ledger initialized with Admin and the given quorum. The clock
// starts at 2025-01-01 UTC.
func New(t *testing.T, quorum uint32) *Ledger {
	t.Helper()

	clock := &Clock{}
	clock.Set(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	store := ledger.NewMemoryStore()
	rt := ledger.NewRuntime(store, "test-contract", ledger.WithClock(clock.Now))
	client := chain.NewClient(slog.Default(), ledger.NewContract(rt), chain.Config{
		Network:     "testnet",
		HorizonURL:  "https://horizon.test",
		CallTimeout: 5 * time.Second,
	})
	if err := client.EnsureInitialized(context.Background(), Admin, quorum); err != nil {
		t.Fatalf("chaintest: initialize ledger: %v", err)
	}
	return &Ledger{Client: client, Clock: clock, Store: store}
}
