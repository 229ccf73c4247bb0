package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/aidflow/fundflow-backend/internal/auth"
	"github.com/aidflow/fundflow-backend/internal/config"
	"github.com/aidflow/fundflow-backend/internal/service/reconcile"
	"github.com/aidflow/fundflow-backend/internal/transport/middleware"
	"github.com/aidflow/fundflow-backend/internal/transport/rest"
)

// Run is the server entry point. It wires the application, serves HTTP and
// runs the reconciler until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("network", cfg.Stellar.Network),
		slog.String("contract_id", cfg.Stellar.ContractID),
	)

	c, err := newContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	handler, stopLimiter := newHTTPHandler(cfg, logger, c)
	defer stopLimiter()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var sched *Scheduler
	if cfg.Reconcile.Enabled {
		sched, err = NewScheduler(ctx, logger, cfg.Reconcile, c.reconciler)
		if err != nil {
			return err
		}
		sched.Start()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown started")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if sched != nil {
			select {
			case <-sched.Stop().Done():
			case <-shutdownCtx.Done():
				logger.Warn("reconcile pass still running at shutdown")
			}
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("shutdown complete")
	return err
}

// newHTTPHandler builds the router and its middleware chain. The returned
// func stops the rate limiter's cleanup goroutine.
func newHTTPHandler(cfg *config.Config, logger *slog.Logger, c *container) (http.Handler, func()) {
	var authMW, limitMW middleware.Middleware
	if cfg.Auth.Enabled() {
		jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTTL)
		authMW = middleware.Auth(jwt)
	} else {
		logger.Warn("principal auth disabled; requests act as the addresses they claim")
	}

	stop := func() {}
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit)
		limitMW = rl.Middleware()
		stop = rl.Stop
	}

	mws := []middleware.Middleware{
		middleware.RequestID(),
		chimw.RealIP,
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		authMW,
		middleware.Logger(logger),
		limitMW,
	}

	handlers := rest.Handlers{
		Health:        rest.NewHealthHandler(c.pool, Version, cfg.Stellar.Network),
		Organizations: rest.NewOrganizationHandler(c.organizations, logger),
		Campaigns:     rest.NewCampaignHandler(c.campaigns, logger),
		Donations:     rest.NewDonationHandler(c.donations, logger),
		Disbursements: rest.NewDisbursementHandler(c.disbursements, logger),
		Audit:         rest.NewAuditHandler(c.audit, logger),
		Admin:         rest.NewAdminHandler(c.governance, logger),
	}
	return rest.NewRouter(handlers, mws...), stop
}

// RunReconcile executes a single reconcile pass. It backs the reconcile
// command for deployments that schedule passes externally.
func RunReconcile(ctx context.Context, cfg *config.Config, logger *slog.Logger) (reconcile.Report, error) {
	c, err := newContainer(ctx, cfg, logger)
	if err != nil {
		return reconcile.Report{}, err
	}
	defer c.Close()

	return c.reconciler.Run(ctx)
}
