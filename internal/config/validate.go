package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if len(c.CSRF.Key) < 32 {
		return fmt.Errorf("csrf.key must be at least 32 characters (got %d)", len(c.CSRF.Key))
	}
	if c.CSRF.TokenTTL <= 0 {
		return fmt.Errorf("csrf.token_ttl must be positive (got %v)", c.CSRF.TokenTTL)
	}

	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}

	if c.Guest.CookieTTL <= 0 {
		return fmt.Errorf("guest.cookie_ttl must be positive (got %v)", c.Guest.CookieTTL)
	}

	if c.Loyalty.SignupBonusPoints < 0 {
		return fmt.Errorf("loyalty.signup_bonus_points must be >= 0 (got %d)", c.Loyalty.SignupBonusPoints)
	}

	return nil
}

func (r *RateLimitConfig) validate() error {
	if r.StandardCeiling <= 0 {
		return fmt.Errorf("standard_ceiling must be > 0 (got %d)", r.StandardCeiling)
	}
	if r.StandardWindow <= 0 {
		return fmt.Errorf("standard_window must be positive (got %v)", r.StandardWindow)
	}
	if r.StrictCeiling <= 0 {
		return fmt.Errorf("strict_ceiling must be > 0 (got %d)", r.StrictCeiling)
	}
	if r.StrictWindow <= 0 {
		return fmt.Errorf("strict_window must be positive (got %v)", r.StrictWindow)
	}
	if r.StoreTimeout <= 0 {
		return fmt.Errorf("store_timeout must be positive (got %v)", r.StoreTimeout)
	}
	return nil
}
