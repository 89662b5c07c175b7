package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/config"
	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/internal/ratelimit"
	"github.com/juniperhq/storefront-backend/pkg/ctxutil"
)

func testLimiter(t *testing.T) (*ratelimit.Limiter, ratelimit.Policy) {
	t.Helper()
	store := ratelimit.NewMemoryStore(time.Minute)
	t.Cleanup(store.Stop)

	cfg := config.RateLimitConfig{
		StandardCeiling: 2,
		StandardWindow:  10 * time.Second,
		StrictCeiling:   5,
		StrictWindow:    time.Minute,
		StoreTimeout:    200 * time.Millisecond,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ratelimit.New(store, cfg.StoreTimeout, log), ratelimit.StandardPolicy(cfg)
}

func TestRateLimit_UnderCeiling(t *testing.T) {
	limiter, policy := testLimiter(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RateLimit(limiter, policy)(handler)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimit_OverCeiling(t *testing.T) {
	limiter, policy := testLimiter(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RateLimit(limiter, policy)(handler)

	for i := 0; i < 2; i++ {
		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	}

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != domain.ErrRateLimited.Error() {
		t.Errorf("expected rate-limited error in body, got %v", body["error"])
	}
	if _, ok := body["reset"]; !ok {
		t.Error("expected reset timestamp in body")
	}
}

// A client that discards cookies gets a fresh guest identity on every
// request; the ceiling must still hold because guests count per address, not
// per minted id.
func TestRateLimit_CookielessBurstStillCounts(t *testing.T) {
	limiter, policy := testLimiter(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RateLimit(limiter, policy)(handler)

	var last *httptest.ResponseRecorder
	for i := 0; i < policy.Ceiling+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "203.0.113.9:" + fmt.Sprint(40000+i)
		guest := domain.GuestIdentity(domain.GuestIDPrefix + fmt.Sprintf("fresh%032d", i))
		req = req.WithContext(ctxutil.WithIdentity(req.Context(), guest))

		last = httptest.NewRecorder()
		wrapped.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for the request over the ceiling, got %d", last.Code)
	}
}

func TestRateLimit_UsersCountPerAccount(t *testing.T) {
	limiter, policy := testLimiter(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RateLimit(limiter, policy)(handler)

	// Exhaust the window for one user.
	first := domain.UserIdentity(uuid.New())
	for i := 0; i < policy.Ceiling+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(ctxutil.WithIdentity(req.Context(), first))
		wrapped.ServeHTTP(httptest.NewRecorder(), req)
	}

	// A different account from the same address still has its own window.
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(ctxutil.WithIdentity(req.Context(), domain.UserIdentity(uuid.New())))
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a different account, got %d", rec.Code)
	}
}
