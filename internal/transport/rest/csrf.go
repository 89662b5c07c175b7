package rest

import (
	"log/slog"
	"net/http"
)

// tokenIssuer issues a fresh anti-forgery token and sets its signed cookie.
type tokenIssuer interface {
	Issue(w http.ResponseWriter) (string, error)
	HeaderName() string
}

// CSRFHandler serves the anti-forgery token endpoint.
type CSRFHandler struct {
	issuer tokenIssuer
	log    *slog.Logger
}

// NewCSRFHandler creates a CSRFHandler.
func NewCSRFHandler(issuer tokenIssuer, logger *slog.Logger) *CSRFHandler {
	return &CSRFHandler{issuer: issuer, log: logger.With("handler", "csrf")}
}

// Token handles GET /csrf. It always hands out a fresh token; callers fetch
// one before any mutating request and echo it in the configured header.
func (h *CSRFHandler) Token(w http.ResponseWriter, r *http.Request) {
	token, err := h.issuer.Issue(w)
	if err != nil {
		h.log.ErrorContext(r.Context(), "issue csrf token", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":  token,
		"header": h.issuer.HeaderName(),
	})
}
