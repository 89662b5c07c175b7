package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/internal/service/auth"
)

// accountService covers the account-management surface of the auth service.
type accountService interface {
	ChangePassword(ctx context.Context, input auth.ChangePasswordInput) error
}

// AccountHandler serves authenticated account endpoints.
type AccountHandler struct {
	svc accountService
	log *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(svc accountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, log: logger.With("handler", "account")}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles PATCH /account/password. Success revokes every
// refresh token the user holds, so clients must re-authenticate elsewhere.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.svc.ChangePassword(r.Context(), auth.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
