package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/juniperhq/storefront-backend/internal/adapter/postgres"
	loyaltyrepo "github.com/juniperhq/storefront-backend/internal/adapter/postgres/loyalty"
	"github.com/juniperhq/storefront-backend/internal/adapter/postgres/ratecounter"
	"github.com/juniperhq/storefront-backend/internal/adapter/postgres/saveditem"
	tokenrepo "github.com/juniperhq/storefront-backend/internal/adapter/postgres/token"
	userrepo "github.com/juniperhq/storefront-backend/internal/adapter/postgres/user"
	jwtauth "github.com/juniperhq/storefront-backend/internal/auth"
	"github.com/juniperhq/storefront-backend/internal/config"
	"github.com/juniperhq/storefront-backend/internal/csrf"
	"github.com/juniperhq/storefront-backend/internal/identity"
	"github.com/juniperhq/storefront-backend/internal/ratelimit"
	authsvc "github.com/juniperhq/storefront-backend/internal/service/auth"
	"github.com/juniperhq/storefront-backend/internal/service/contact"
	loyaltysvc "github.com/juniperhq/storefront-backend/internal/service/loyalty"
	"github.com/juniperhq/storefront-backend/internal/service/saveditems"
	"github.com/juniperhq/storefront-backend/internal/transport/middleware"
	"github.com/juniperhq/storefront-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and handlers, and serves HTTP until ctx is
// cancelled, then drains in-flight requests within the shutdown timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	items := saveditem.New(pool)
	ledger := loyaltyrepo.New(pool)
	counters := ratecounter.New(pool)
	txManager := postgres.NewTxManager(pool)

	// Services.
	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	savedItemsSvc := saveditems.NewService(logger, items)
	loyaltySvc := loyaltysvc.NewService(logger, ledger, txManager, cfg.Loyalty)
	authSvc := authsvc.NewService(logger, users, tokens, jwtManager, loyaltySvc, savedItemsSvc, cfg.Auth)
	contactSvc := contact.NewService(logger, &contact.LogMailer{Log: logger}, cfg.Contact)

	csrfSvc, err := csrf.NewService(cfg.CSRF)
	if err != nil {
		return fmt.Errorf("create csrf service: %w", err)
	}

	resolver := identity.NewResolver(jwtManager, cfg.Guest)
	limiter := ratelimit.New(counters, cfg.RateLimit.StoreTimeout, logger)

	// HTTP surface.
	router := rest.NewRouter(rest.RouterConfig{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		CSRF:       rest.NewCSRFHandler(csrfSvc, logger),
		Auth:       rest.NewAuthHandler(authSvc, resolver, logger),
		Account:    rest.NewAccountHandler(authSvc, logger),
		SavedItems: rest.NewSavedItemsHandler(savedItemsSvc, resolver, logger),
		Loyalty:    rest.NewLoyaltyHandler(loyaltySvc, logger),
		Contact:    rest.NewContactHandler(contactSvc, logger),

		Base: middleware.Chain(
			middleware.RequestID,
			middleware.Recovery(logger),
			middleware.Logger(logger),
			middleware.CORS(cfg.CORS),
			middleware.Identity(resolver),
		),
		Strict:    middleware.RateLimit(limiter, ratelimit.StrictPolicy(cfg.RateLimit)),
		Standard:  middleware.RateLimit(limiter, ratelimit.StandardPolicy(cfg.RateLimit)),
		CSRFGuard: middleware.CSRF(csrfSvc),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
