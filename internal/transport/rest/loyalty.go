package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/pkg/ctxutil"
)

// loyaltyService defines the minimal interface needed by LoyaltyHandler.
type loyaltyService interface {
	GetAccount(ctx context.Context, userID uuid.UUID) (*domain.LoyaltyAccount, error)
	History(ctx context.Context, userID uuid.UUID) ([]domain.LoyaltyTransaction, error)
}

// LoyaltyHandler serves the loyalty REST endpoints.
type LoyaltyHandler struct {
	svc loyaltyService
	log *slog.Logger
}

// NewLoyaltyHandler creates a LoyaltyHandler.
func NewLoyaltyHandler(svc loyaltyService, logger *slog.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{svc: svc, log: logger.With("handler", "loyalty")}
}

type loyaltyAccountResponse struct {
	UserID        string `json:"user_id"`
	PointsBalance int    `json:"points_balance"`
	UpdatedAt     string `json:"updated_at"`
}

type loyaltyTransactionResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Points    int    `json:"points"`
	CreatedAt string `json:"created_at"`
}

// Account handles GET /loyalty/account.
func (h *LoyaltyHandler) Account(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	account, err := h.svc.GetAccount(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loyaltyAccountResponse{
		UserID:        account.UserID.String(),
		PointsBalance: account.PointsBalance,
		UpdatedAt:     account.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// History handles GET /loyalty/history.
func (h *LoyaltyHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	txs, err := h.svc.History(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]loyaltyTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, loyaltyTransactionResponse{
			ID:        tx.ID.String(),
			Kind:      tx.Kind.String(),
			Points:    tx.Points,
			CreatedAt: tx.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": resp})
}

func (h *LoyaltyHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "loyalty account not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
