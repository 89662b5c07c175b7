// Package ratelimit implements fixed-window request limiting keyed by
// (policy, caller identifier). Counting is pushed into a CounterStore whose
// increment is atomic, so the ceiling holds across concurrent workers and
// multiple server instances; no in-process lock is held across store calls.
package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/juniperhq/storefront-backend/internal/config"
)

// FailMode decides what a policy does when the counter store is unreachable.
type FailMode string

const (
	// FailOpen allows the request on store failure. Used for general traffic
	// so a store outage does not take the whole site down.
	FailOpen FailMode = "OPEN"
	// FailClosed denies the request on store failure. Used for sensitive
	// endpoints where unlimited traffic during an outage is the worse risk.
	FailClosed FailMode = "CLOSED"
)

// Policy is a named fixed-window limit.
type Policy struct {
	Name     string
	Ceiling  int
	Window   time.Duration
	FailMode FailMode
}

// Decision is the outcome of a limit check. ResetAt is when the current
// window ends and the counter restarts.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// CounterStore atomically increments a window counter. Implementations must
// reset the counter to 1 when the stored window started before windowStart,
// and must make increment-and-fetch a single atomic operation; a non-atomic
// check-then-increment permits ceiling bypass under concurrent bursts.
type CounterStore interface {
	Incr(ctx context.Context, key string, windowStart time.Time, window time.Duration) (count int, activeWindowStart time.Time, err error)
}

// StandardPolicy returns the policy applied to general API traffic.
func StandardPolicy(cfg config.RateLimitConfig) Policy {
	return Policy{
		Name:     "standard",
		Ceiling:  cfg.StandardCeiling,
		Window:   cfg.StandardWindow,
		FailMode: FailOpen,
	}
}

// StrictPolicy returns the policy applied to sensitive endpoints
// (signup, sign-in, password change, contact form).
func StrictPolicy(cfg config.RateLimitConfig) Policy {
	return Policy{
		Name:     "strict",
		Ceiling:  cfg.StrictCeiling,
		Window:   cfg.StrictWindow,
		FailMode: FailClosed,
	}
}

// Limiter checks requests against policies using a shared counter store.
type Limiter struct {
	store        CounterStore
	storeTimeout time.Duration
	log          *slog.Logger

	now func() time.Time
}

// New creates a Limiter. storeTimeout bounds every counter-store round trip;
// a timed-out check resolves per the policy's FailMode instead of hanging.
func New(store CounterStore, storeTimeout time.Duration, logger *slog.Logger) *Limiter {
	return &Limiter{
		store:        store,
		storeTimeout: storeTimeout,
		log:          logger.With("component", "ratelimit"),
		now:          time.Now,
	}
}

// Check counts this request against the policy's current window and decides
// allow/deny. It never returns an error: store failures resolve per the
// policy's FailMode and are logged.
func (l *Limiter) Check(ctx context.Context, p Policy, identifier string) Decision {
	now := l.now()
	windowStart := now.Truncate(p.Window)
	key := p.Name + ":" + identifier

	ctx, cancel := context.WithTimeout(ctx, l.storeTimeout)
	defer cancel()

	count, activeStart, err := l.store.Incr(ctx, key, windowStart, p.Window)
	if err != nil {
		allowed := p.FailMode == FailOpen
		l.log.WarnContext(ctx, "counter store unavailable",
			slog.String("policy", p.Name),
			slog.String("fail_mode", string(p.FailMode)),
			slog.Bool("allowed", allowed),
			slog.String("error", err.Error()),
		)
		return Decision{
			Allowed:   allowed,
			Remaining: 0,
			ResetAt:   windowStart.Add(p.Window),
		}
	}

	remaining := p.Ceiling - count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= p.Ceiling,
		Remaining: remaining,
		ResetAt:   activeStart.Add(p.Window),
	}
}
