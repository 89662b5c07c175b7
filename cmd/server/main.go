// Command server runs the storefront backend HTTP server.
//
// Configuration is read from a YAML file (CONFIG_PATH, default config.yaml)
// with environment variable overrides. Requires DATABASE_DSN, AUTH_JWT_SECRET
// and CSRF_KEY to be set. The server shuts down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/juniperhq/storefront-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("failed to run: %v", err)
	}
}
