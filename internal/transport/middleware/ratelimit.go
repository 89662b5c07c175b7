package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/internal/ratelimit"
	"github.com/juniperhq/storefront-backend/pkg/ctxutil"
)

// limitChecker checks one request against a named policy's ceiling.
type limitChecker interface {
	Check(ctx context.Context, policy ratelimit.Policy, identifier string) ratelimit.Decision
}

// RateLimit returns middleware that enforces the given policy. Authenticated
// users are limited per account; guests are limited per client address — a
// guest id is client-supplied and minted fresh for any request without a
// cookie, so keying guests on it would let a cookie-discarding client present
// a new identifier every request and never hit the ceiling. Rejected requests
// get 429 with a Retry-After header and a JSON body carrying the window reset
// time. Place after Identity.
func RateLimit(limiter limitChecker, policy ratelimit.Policy) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := clientAddr(r)
			if id, ok := ctxutil.IdentityFromCtx(r.Context()); ok && id.IsUser() {
				identifier = id.OwnerID()
			}

			decision := limiter.Check(r.Context(), policy, identifier)
			if !decision.Allowed {
				retryAfter := int(time.Until(decision.ResetAt).Seconds()) + 1
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": domain.ErrRateLimited.Error(),
					"reset": decision.ResetAt.UTC().Format(time.RFC3339),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr strips the ephemeral port from RemoteAddr so one client counts
// into one window across connections.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
