package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/internal/service/contact"
)

// contactService defines the minimal interface needed by ContactHandler.
type contactService interface {
	Submit(ctx context.Context, input contact.SubmitInput) error
}

// ContactHandler serves the contact form endpoint.
type ContactHandler struct {
	svc contactService
	log *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(svc contactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: logger.With("handler", "contact")}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /contact. Delivery is asynchronous from the caller's
// point of view, so success is a 202.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.svc.Submit(r.Context(), contact.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *ContactHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
