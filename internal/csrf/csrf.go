// Package csrf implements double-submit anti-forgery tokens.
//
// Issue sets an HTTP-only cookie holding "value.issuedAt.signature" and
// returns the plain value for the client to echo in a request header (or a
// form field). Validate requires that the echoed value matches the cookie's
// value and that the cookie's HMAC signature verifies and is not expired: the
// cookie proves server issuance and freshness, the echo proves the request
// came from a context able to read the cookie.
package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/juniperhq/storefront-backend/internal/config"
	"github.com/juniperhq/storefront-backend/internal/domain"
)

// FormField is the fallback body field checked when the header is absent.
const FormField = "csrf_token"

// Service issues and validates signed anti-forgery tokens.
type Service struct {
	key        []byte
	ttl        time.Duration
	cookieName string
	headerName string
	secure     bool

	now func() time.Time
}

// NewService creates a Service from config. The signing key must be present;
// issuing without one is a server-side failure (500 at the endpoint).
func NewService(cfg config.CSRFConfig) (*Service, error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("csrf: signing key is not configured")
	}
	return &Service{
		key:        []byte(cfg.Key),
		ttl:        cfg.TokenTTL,
		cookieName: cfg.CookieName,
		headerName: cfg.HeaderName,
		secure:     cfg.CookieSecure,
		now:        time.Now,
	}, nil
}

// HeaderName returns the request header carrying the echoed token value.
func (s *Service) HeaderName() string { return s.headerName }

// Issue generates a fresh token, sets the signed cookie, and returns the
// plain value for the client to echo.
func (s *Service) Issue(w http.ResponseWriter) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf: generate token: %w", err)
	}
	value := base64.RawURLEncoding.EncodeToString(b)
	issuedAt := s.now().Unix()

	cookie := value + "." + strconv.FormatInt(issuedAt, 10) + "." + s.sign(value, issuedAt)

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    cookie,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return value, nil
}

// Validate checks the double-submit pair on a mutating request. All failures
// wrap domain.ErrForbidden; the reasons are distinguished for logs only and
// never leak to the client beyond a 403.
func (s *Service) Validate(r *http.Request) error {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		return fmt.Errorf("%w: missing anti-forgery cookie", domain.ErrForbidden)
	}

	value, issuedAt, sig, err := splitToken(c.Value)
	if err != nil {
		return fmt.Errorf("%w: malformed anti-forgery cookie", domain.ErrForbidden)
	}

	expected := s.sign(value, issuedAt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return fmt.Errorf("%w: anti-forgery signature mismatch", domain.ErrForbidden)
	}

	if s.now().Sub(time.Unix(issuedAt, 0)) > s.ttl {
		return fmt.Errorf("%w: anti-forgery token expired", domain.ErrForbidden)
	}

	echoed := s.echoedValue(r)
	if echoed == "" {
		return fmt.Errorf("%w: missing anti-forgery token value", domain.ErrForbidden)
	}
	if subtle.ConstantTimeCompare([]byte(echoed), []byte(value)) != 1 {
		return fmt.Errorf("%w: anti-forgery token mismatch", domain.ErrForbidden)
	}

	return nil
}

// echoedValue extracts the client-echoed token: header first, then a form
// field for form-encoded bodies. JSON bodies must use the header so the body
// stays unread for the handler.
func (s *Service) echoedValue(r *http.Request) string {
	if v := r.Header.Get(s.headerName); v != "" {
		return v
	}

	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		return r.PostFormValue(FormField)
	}
	return ""
}

func (s *Service) sign(value string, issuedAt int64) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(value))
	mac.Write([]byte("."))
	mac.Write([]byte(strconv.FormatInt(issuedAt, 10)))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func splitToken(cookie string) (value string, issuedAt int64, sig string, err error) {
	parts := strings.Split(cookie, ".")
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return "", 0, "", fmt.Errorf("expected value.issuedAt.signature")
	}
	issuedAt, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, "", fmt.Errorf("issuedAt: %w", err)
	}
	return parts[0], issuedAt, parts[2], nil
}
