package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CSRF      CSRFConfig      `yaml:"csrf"`
	Guest     GuestConfig     `yaml:"guest"`
	Loyalty   LoyaltyConfig   `yaml:"loyalty"`
	Contact   ContactConfig   `yaml:"contact"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	QueryTimeout    time.Duration `yaml:"query_timeout"      env:"DATABASE_QUERY_TIMEOUT"      env-default:"3s"`
}

// AuthConfig holds session token and password settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"storefront"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"  env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
}

// RateLimitConfig holds the two named rate-limit policies and the bound on
// counter-store round trips. Failure modes are fixed per policy: standard
// fails open, strict fails closed (see ratelimit package).
type RateLimitConfig struct {
	StandardCeiling int           `yaml:"standard_ceiling" env:"RATE_LIMIT_STANDARD_CEILING" env-default:"10"`
	StandardWindow  time.Duration `yaml:"standard_window"  env:"RATE_LIMIT_STANDARD_WINDOW"  env-default:"10s"`
	StrictCeiling   int           `yaml:"strict_ceiling"   env:"RATE_LIMIT_STRICT_CEILING"   env-default:"5"`
	StrictWindow    time.Duration `yaml:"strict_window"    env:"RATE_LIMIT_STRICT_WINDOW"    env-default:"60s"`
	StoreTimeout    time.Duration `yaml:"store_timeout"    env:"RATE_LIMIT_STORE_TIMEOUT"    env-default:"200ms"`
}

// CSRFConfig holds anti-forgery token settings.
type CSRFConfig struct {
	Key          string        `yaml:"key"           env:"CSRF_KEY"           env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl"     env:"CSRF_TOKEN_TTL"     env-default:"24h"`
	CookieName   string        `yaml:"cookie_name"   env:"CSRF_COOKIE_NAME"   env-default:"csrf_token"`
	HeaderName   string        `yaml:"header_name"   env:"CSRF_HEADER_NAME"   env-default:"X-CSRF-Token"`
	CookieSecure bool          `yaml:"cookie_secure" env:"CSRF_COOKIE_SECURE" env-default:"true"`
}

// GuestConfig holds guest identity cookie settings.
type GuestConfig struct {
	CookieName        string        `yaml:"cookie_name"         env:"GUEST_COOKIE_NAME"         env-default:"guest_id"`
	CookieTTL         time.Duration `yaml:"cookie_ttl"          env:"GUEST_COOKIE_TTL"          env-default:"720h"`
	CookieSecure      bool          `yaml:"cookie_secure"       env:"GUEST_COOKIE_SECURE"       env-default:"true"`
	ItemRetentionDays int           `yaml:"item_retention_days" env:"GUEST_ITEM_RETENTION_DAYS" env-default:"60"`
}

// LoyaltyConfig holds reward-points settings.
type LoyaltyConfig struct {
	SignupBonusPoints int `yaml:"signup_bonus_points" env:"LOYALTY_SIGNUP_BONUS_POINTS" env-default:"100"`
}

// ContactConfig holds contact-form settings.
type ContactConfig struct {
	Recipient string `yaml:"recipient" env:"CONTACT_RECIPIENT" env-default:"support@example.com"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-CSRF-Token"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
