// Command reconcile runs one pass of the mirror reconciler and exits. It is
// intended for deployments that disable the in-process scheduler and invoke
// reconciliation from an external cron job.
//
// Exit codes: 0 = success, 1 = error, 2 = pass finished with row errors.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/aidflow/fundflow-backend/internal/app"
	"github.com/aidflow/fundflow-backend/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := app.RunReconcile(ctx, cfg, logger)
	if err != nil {
		logger.Error("reconcile failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if report.Errors > 0 {
		os.Exit(2)
	}
}
