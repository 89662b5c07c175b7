// Command cleanup-tokens deletes expired and revoked refresh tokens.
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
	"github.com/juniperhq/storefront-backend/internal/adapter/postgres/token"
	"github.com/juniperhq/storefront-backend/internal/app"
	"github.com/juniperhq/storefront-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	deleted, err := token.New(pool).DeleteExpired(ctx)
	if err != nil {
		logger.Error("cleanup tokens failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup tokens completed", slog.Int("deleted", deleted))
}
