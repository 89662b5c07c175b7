// Command cleanup removes stale guest data: saved items whose guest owner has
// been inactive past the retention period, and rate-limit counters whose
// window closed long ago. It is intended to be invoked by an external cron
// job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/juniperhq/storefront-backend/internal/adapter/postgres"
	"github.com/juniperhq/storefront-backend/internal/adapter/postgres/ratecounter"
	"github.com/juniperhq/storefront-backend/internal/adapter/postgres/saveditem"
	"github.com/juniperhq/storefront-backend/internal/app"
	"github.com/juniperhq/storefront-backend/internal/config"
	"github.com/juniperhq/storefront-backend/internal/service/saveditems"
)

// Counters older than a day belong to windows no policy still reads.
const counterMaxAge = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	itemsSvc := saveditems.NewService(logger, saveditem.New(pool))

	removed, err := itemsSvc.CleanupStaleGuestItems(ctx, cfg.Guest.ItemRetentionDays)
	if err != nil {
		logger.Error("cleanup stale guest items failed",
			slog.String("error", err.Error()),
			slog.Int("retention_days", cfg.Guest.ItemRetentionDays),
		)
		os.Exit(1)
	}

	counters, err := ratecounter.New(pool).DeleteExpired(ctx, counterMaxAge)
	if err != nil {
		logger.Error("cleanup rate counters failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup completed",
		slog.Int("guest_items_removed", removed),
		slog.Int("counters_removed", counters),
		slog.Int("retention_days", cfg.Guest.ItemRetentionDays),
	)
}
