package rest

import (
	"net/http"

	"github.com/juniperhq/storefront-backend/internal/transport/middleware"
)

// RouterConfig carries the handlers and route-scoped middleware the router
// composes. The base middleware (request id, recovery, logging, CORS,
// identity resolution) wraps every route; Strict and Standard are the two
// rate-limit tiers, and CSRFGuard protects mutating routes.
type RouterConfig struct {
	Health     *HealthHandler
	CSRF       *CSRFHandler
	Auth       *AuthHandler
	Account    *AccountHandler
	SavedItems *SavedItemsHandler
	Loyalty    *LoyaltyHandler
	Contact    *ContactHandler

	Base      middleware.Middleware
	Strict    middleware.Middleware
	Standard  middleware.Middleware
	CSRFGuard middleware.Middleware
}

// NewRouter builds the HTTP routing table. Rate limiting keys on the caller
// identity, so both tiers sit after identity resolution in the base chain;
// the anti-forgery guard runs last so a rejected burst never consumes token
// validation work.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", cfg.Health.Live)
	mux.HandleFunc("GET /ready", cfg.Health.Ready)
	mux.HandleFunc("GET /health", cfg.Health.Health)

	mux.HandleFunc("GET /csrf", cfg.CSRF.Token)

	strict := middleware.Chain(cfg.Strict, cfg.CSRFGuard)
	standard := middleware.Chain(cfg.Standard, cfg.CSRFGuard)
	user := middleware.RequireUser()

	mux.Handle("POST /auth/signup", strict(http.HandlerFunc(cfg.Auth.Signup)))
	mux.Handle("POST /auth/login", strict(http.HandlerFunc(cfg.Auth.Login)))
	mux.Handle("POST /auth/refresh", strict(http.HandlerFunc(cfg.Auth.Refresh)))
	mux.Handle("POST /auth/logout", strict(user(http.HandlerFunc(cfg.Auth.Logout))))

	mux.Handle("PATCH /account/password", strict(user(http.HandlerFunc(cfg.Account.ChangePassword))))

	mux.Handle("GET /saved-items", standard(http.HandlerFunc(cfg.SavedItems.List)))
	mux.Handle("POST /saved-items", standard(http.HandlerFunc(cfg.SavedItems.Save)))
	mux.Handle("DELETE /saved-items/{productID}", standard(http.HandlerFunc(cfg.SavedItems.Delete)))
	mux.Handle("POST /saved-items/migrate", standard(user(http.HandlerFunc(cfg.SavedItems.Migrate))))

	mux.Handle("GET /loyalty/account", standard(user(http.HandlerFunc(cfg.Loyalty.Account))))
	mux.Handle("GET /loyalty/history", standard(user(http.HandlerFunc(cfg.Loyalty.History))))

	mux.Handle("POST /contact", strict(http.HandlerFunc(cfg.Contact.Submit)))

	return cfg.Base(mux)
}
