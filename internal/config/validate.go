package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

const (
	LedgerStoreMemory = "memory"
	LedgerStoreRedis  = "redis"

	maxReconcileBatch = 500
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required (DATABASE_URL)")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be >= 1 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Stellar.validate(); err != nil {
		return fmt.Errorf("stellar: %w", err)
	}
	if c.Stellar.Store == LedgerStoreRedis && c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required when stellar.store is %q", LedgerStoreRedis)
	}

	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Reconcile.validate(); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	if c.RateLimit.Enabled && c.RateLimit.WritesPerMinute < 1 {
		return fmt.Errorf("rate_limit.writes_per_minute must be >= 1 (got %d)", c.RateLimit.WritesPerMinute)
	}

	return nil
}

func (s *StellarConfig) validate() error {
	switch s.Store {
	case LedgerStoreMemory, LedgerStoreRedis:
	default:
		return fmt.Errorf("store must be %q or %q (got %q)", LedgerStoreMemory, LedgerStoreRedis, s.Store)
	}
	if strings.TrimSpace(s.ContractID) == "" {
		return fmt.Errorf("contract_id is required")
	}
	if strings.TrimSpace(s.AdminAddress) == "" {
		return fmt.Errorf("admin_address is required")
	}
	if s.CallTimeout <= 0 {
		return fmt.Errorf("call_timeout must be > 0 (got %v)", s.CallTimeout)
	}
	if s.DefaultQuorum < 1 {
		return fmt.Errorf("default_quorum must be >= 1 (got %d)", s.DefaultQuorum)
	}
	if _, err := url.ParseRequestURI(s.HorizonURL); err != nil {
		return fmt.Errorf("horizon_url: %w", err)
	}
	return nil
}

// validate clamps the batch into 1..500 and rejects an unparsable schedule.
func (r *ReconcileConfig) validate() error {
	if r.Batch <= 0 {
		r.Batch = 100
	}
	if r.Batch > maxReconcileBatch {
		r.Batch = maxReconcileBatch
	}
	if r.Grace < 0 {
		return fmt.Errorf("grace must be >= 0 (got %v)", r.Grace)
	}
	if !r.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(r.Schedule); err != nil {
		return fmt.Errorf("schedule %q: %w", r.Schedule, err)
	}
	return nil
}
