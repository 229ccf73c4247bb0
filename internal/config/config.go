package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Stellar   StellarConfig   `yaml:"stellar"`
	Redis     RedisConfig     `yaml:"redis"`
	Events    EventsConfig    `yaml:"events"`
	Auth      AuthConfig      `yaml:"auth"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,Idempotency-Key,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"45s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_URL"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// StellarConfig holds ledger network and contract settings.
type StellarConfig struct {
	Network       string        `yaml:"network"         env:"STELLAR_NETWORK"       env-default:"testnet"`
	HorizonURL    string        `yaml:"horizon_url"     env:"STELLAR_HORIZON_URL"   env-default:"https://horizon-testnet.stellar.org"`
	ContractID    string        `yaml:"contract_id"     env:"CONTRACT_ID"           env-default:"fundflow-local"`
	CallTimeout   time.Duration `yaml:"call_timeout"    env:"STELLAR_CALL_TIMEOUT"  env-default:"30s"`
	AdminAddress  string        `yaml:"admin_address"   env:"LEDGER_ADMIN_ADDRESS"  env-default:"GADMIN"`
	Store         string        `yaml:"store"           env:"LEDGER_STORE"          env-default:"memory"`
	DefaultQuorum uint32        `yaml:"default_quorum"  env:"LEDGER_DEFAULT_QUORUM" env-default:"1"`
}

// RedisConfig holds the Redis connection used by the redis ledger store.
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL"`
}

// EventsConfig holds lifecycle event publishing settings.
// An empty AMQPURL disables publishing.
type EventsConfig struct {
	AMQPURL  string `yaml:"amqp_url" env:"AMQP_URL"`
	Exchange string `yaml:"exchange" env:"EVENTS_EXCHANGE" env-default:"fundflow_events"`
}

// AuthConfig holds principal authentication settings.
// Authentication is enabled only when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"fundflow"`
	AccessTTL time.Duration `yaml:"access_ttl" env:"AUTH_ACCESS_TTL" env-default:"24h"`
}

// Enabled reports whether JWT principal auth is configured.
func (c AuthConfig) Enabled() bool { return c.JWTSecret != "" }

// ReconcileConfig holds the mirror reconciler settings.
type ReconcileConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"RECONCILE_ENABLED"  env-default:"true"`
	Schedule string        `yaml:"schedule" env:"RECONCILE_SCHEDULE" env-default:"@every 1m"`
	Grace    time.Duration `yaml:"grace"    env:"RECONCILE_GRACE"    env-default:"30s"`
	Batch    int           `yaml:"batch"    env:"RECONCILE_BATCH"    env-default:"100"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client limits for write requests.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	WritesPerMinute int           `yaml:"writes_per_minute" env:"RATE_LIMIT_WRITES_PER_MINUTE" env-default:"120"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// SplitList splits a comma-separated setting into trimmed, non-empty items.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
