// Package identity derives a stable caller identity from a request: the
// authenticated user when a valid session token is present, a cookie-scoped
// guest otherwise. Resolution never fails; absent or invalid credentials
// degrade to a fresh guest identity.
package identity

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/config"
	"github.com/juniperhq/storefront-backend/internal/domain"
)

// maxGuestIDLen guards against junk cookies occupying unbounded key space.
const maxGuestIDLen = 72

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// Resolver resolves the caller identity for each inbound request.
type Resolver struct {
	tokens       tokenValidator
	cookieName   string
	cookieTTL    int // seconds
	cookieSecure bool
}

// NewResolver creates a Resolver using the given session-token validator and
// guest cookie settings.
func NewResolver(tokens tokenValidator, cfg config.GuestConfig) *Resolver {
	return &Resolver{
		tokens:       tokens,
		cookieName:   cfg.CookieName,
		cookieTTL:    int(cfg.CookieTTL.Seconds()),
		cookieSecure: cfg.CookieSecure,
	}
}

// Resolve returns the caller identity. When no authenticated session and no
// valid guest cookie are present it mints a fresh guest id and instructs the
// client to persist it via a cookie on w. This is the only side effect.
func (r *Resolver) Resolve(w http.ResponseWriter, req *http.Request) domain.CallerIdentity {
	if token := extractBearer(req); token != "" {
		if userID, err := r.tokens.ValidateAccessToken(token); err == nil {
			return domain.UserIdentity(userID)
		}
	}

	if c, err := req.Cookie(r.cookieName); err == nil {
		if domain.IsGuestID(c.Value) && len(c.Value) <= maxGuestIDLen {
			return domain.GuestIdentity(c.Value)
		}
	}

	id := NewGuestID()
	r.setGuestCookie(w, id)
	return domain.GuestIdentity(id)
}

// GuestIDFromRequest returns the guest id carried by the request cookie, if
// any. Used by flows that reconcile guest activity after authentication,
// where Resolve would already report the user identity.
func (r *Resolver) GuestIDFromRequest(req *http.Request) (string, bool) {
	c, err := req.Cookie(r.cookieName)
	if err != nil || !domain.IsGuestID(c.Value) || len(c.Value) > maxGuestIDLen {
		return "", false
	}
	return c.Value, true
}

// ClearGuestCookie instructs the client to drop its guest id, after the
// guest's activity has been migrated into a user account.
func (r *Resolver) ClearGuestCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     r.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (r *Resolver) setGuestCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     r.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   r.cookieTTL,
		HttpOnly: true,
		Secure:   r.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// NewGuestID mints a prefixed, cryptographically random guest identifier.
func NewGuestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// random UUID rather than panicking in the request path.
		return domain.GuestIDPrefix + uuid.NewString()
	}
	return domain.GuestIDPrefix + hex.EncodeToString(b)
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
