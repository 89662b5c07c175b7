package middleware

import (
	"net/http"

	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/pkg/ctxutil"
)

// identityResolver derives the caller identity from a request, minting a
// guest id (and setting its cookie on w) when the caller has none.
type identityResolver interface {
	Resolve(w http.ResponseWriter, req *http.Request) domain.CallerIdentity
}

// Identity returns middleware that resolves every request to a caller
// identity and stores it in the request context. It never rejects: an
// invalid or missing credential degrades to a fresh guest identity.
// Must run before any middleware that keys on the caller.
func Identity(resolver identityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := resolver.Resolve(w, r)
			ctx := ctxutil.WithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser returns middleware that rejects guests and unresolved callers
// with 401. Place after Identity.
func RequireUser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
