package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain"
	"github.com/aidflow/fundflow-backend/internal/adapter/postgres"
	auditrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/audit"
	campaignrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/campaign"
	disbursementrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/disbursement"
	donationrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/donation"
	orgrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/organization"
	"github.com/aidflow/fundflow-backend/internal/adapter/rabbitmq"
	"github.com/aidflow/fundflow-backend/internal/adapter/redisstate"
	"github.com/aidflow/fundflow-backend/internal/config"
	"github.com/aidflow/fundflow-backend/internal/ledger"
	"github.com/aidflow/fundflow-backend/internal/service/audit"
	"github.com/aidflow/fundflow-backend/internal/service/campaign"
	"github.com/aidflow/fundflow-backend/internal/service/disbursement"
	"github.com/aidflow/fundflow-backend/internal/service/donation"
	"github.com/aidflow/fundflow-backend/internal/service/governance"
	"github.com/aidflow/fundflow-backend/internal/service/organization"
	"github.com/aidflow/fundflow-backend/internal/service/reconcile"
)

type eventPublisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
	Close()
}

// container holds the wired adapters and services shared by the server and
// the one-shot commands.
type container struct {
	pool   *pgxpool.Pool
	redis  *redis.Client
	events eventPublisher
	chain  *chain.Client

	governance    *governance.Service
	audit         *audit.Service
	organizations *organization.Service
	campaigns     *campaign.Service
	donations     *donation.Service
	disbursements *disbursement.Service
	reconciler    *reconcile.Service
}

// newContainer connects to the database, the ledger store and the broker,
// then wires every service. The caller must Close the container.
func newContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *container, err error) {
	c := &container{}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	c.pool, err = postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected",
		slog.Int("max_conns", int(cfg.Database.MaxConns)),
	)

	store, err := c.ledgerStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.chain = chain.NewClient(logger,
		ledger.NewContract(ledger.NewRuntime(store, cfg.Stellar.ContractID)),
		chain.Config{
			Network:     cfg.Stellar.Network,
			HorizonURL:  cfg.Stellar.HorizonURL,
			CallTimeout: cfg.Stellar.CallTimeout,
		},
	)
	if err := c.chain.EnsureInitialized(ctx, cfg.Stellar.AdminAddress, cfg.Stellar.DefaultQuorum); err != nil {
		return nil, fmt.Errorf("initialize ledger: %w", err)
	}

	if cfg.Events.AMQPURL != "" {
		pub, err := rabbitmq.NewPublisher(logger, cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			return nil, fmt.Errorf("connect event broker: %w", err)
		}
		c.events = pub
	} else {
		c.events = rabbitmq.NewNoopPublisher(logger)
	}

	txm := postgres.NewTxManager(c.pool)
	orgs := orgrepo.New(c.pool)
	campaigns := campaignrepo.New(c.pool)
	donations := donationrepo.New(c.pool)
	disbursements := disbursementrepo.New(c.pool)
	auditLog := auditrepo.New(c.pool)

	c.audit = audit.NewService(logger, auditLog, campaigns, donations, disbursements, txm)
	c.governance = governance.NewService(logger, c.chain, c.events)
	c.organizations = organization.NewService(logger, orgs, c.audit, txm, c.events)
	c.campaigns = campaign.NewService(logger, campaigns, orgs, c.chain, c.audit, txm, c.events)
	c.donations = donation.NewService(logger, donations, campaigns, c.chain, c.audit, txm, c.events)
	c.disbursements = disbursement.NewService(logger, disbursements, campaigns, orgs, c.governance, c.chain, c.audit, txm, c.events)
	c.reconciler = reconcile.NewService(logger,
		campaigns, donations, disbursements,
		reconcile.Writers{
			Campaigns:     c.campaigns,
			Donations:     c.donations,
			Disbursements: c.disbursements,
		},
		c.chain, c.governance, c.audit, txm, c.events,
		reconcile.Options{Grace: cfg.Reconcile.Grace, Batch: cfg.Reconcile.Batch},
	)

	return c, nil
}

func (c *container) ledgerStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ledger.Store, error) {
	if cfg.Stellar.Store != config.LedgerStoreRedis {
		logger.Warn("ledger state is in memory and is lost on restart")
		return ledger.NewMemoryStore(), nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c.redis = redis.NewClient(opts)
	if err := c.redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info("ledger state in redis", slog.String("addr", opts.Addr))
	return redisstate.NewStore(c.redis, cfg.Stellar.Network, cfg.Stellar.ContractID), nil
}

// Close releases every connection the container opened.
func (c *container) Close() {
	if c.events != nil {
		c.events.Close()
	}
	if c.redis != nil {
		c.redis.Close() //nolint:errcheck
	}
	if c.pool != nil {
		c.pool.Close()
	}
}
