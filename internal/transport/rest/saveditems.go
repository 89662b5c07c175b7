package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/internal/service/saveditems"
	"github.com/juniperhq/storefront-backend/pkg/ctxutil"
)

// savedItemsService defines the minimal interface needed by SavedItemsHandler.
type savedItemsService interface {
	List(ctx context.Context, ownerID string) ([]domain.SavedItem, error)
	Save(ctx context.Context, ownerID string, input saveditems.SaveInput) (*domain.SavedItem, error)
	Delete(ctx context.Context, ownerID, productID string) error
	Migrate(ctx context.Context, guestID string, userID uuid.UUID) (saveditems.MigrateResult, error)
}

// SavedItemsHandler serves the saved-items REST endpoints. Every operation is
// keyed by the caller identity resolved earlier in the middleware chain; a
// request with no identity at all cannot reach this handler.
type SavedItemsHandler struct {
	svc    savedItemsService
	guests guestCookie
	log    *slog.Logger
}

// NewSavedItemsHandler creates a SavedItemsHandler.
func NewSavedItemsHandler(svc savedItemsService, guests guestCookie, logger *slog.Logger) *SavedItemsHandler {
	return &SavedItemsHandler{svc: svc, guests: guests, log: logger.With("handler", "saved_items")}
}

type saveItemRequest struct {
	ProductID string  `json:"product_id"`
	Note      *string `json:"note"`
}

type savedItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Note      *string `json:"note,omitempty"`
	AddedAt   string  `json:"added_at"`
}

// List handles GET /saved-items.
func (h *SavedItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.svc.List(r.Context(), id.OwnerID())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]savedItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toSavedItemResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": resp})
}

// Save handles POST /saved-items.
func (h *SavedItemsHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req saveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := h.svc.Save(r.Context(), id.OwnerID(), saveditems.SaveInput{
		ProductID: req.ProductID,
		Note:      req.Note,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSavedItemResponse(item))
}

// Delete handles DELETE /saved-items/{productID}.
func (h *SavedItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	productID := r.PathValue("productID")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product id is required")
		return
	}

	if err := h.svc.Delete(r.Context(), id.OwnerID(), productID); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Migrate handles POST /saved-items/migrate. It adopts the caller's guest
// items into their account and clears the guest cookie when anything was
// found. The route requires an authenticated user.
func (h *SavedItemsHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	guestID, ok := h.guests.GuestIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusOK, migrationResponse{})
		return
	}

	result, err := h.svc.Migrate(r.Context(), guestID, userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.guests.ClearGuestCookie(w)
	writeJSON(w, http.StatusOK, migrationResponse{
		Migrated: result.Migrated,
		Skipped:  result.Skipped,
		Total:    result.Total(),
	})
}

func (h *SavedItemsHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "saved item not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "product already saved")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toSavedItemResponse(item *domain.SavedItem) savedItemResponse {
	return savedItemResponse{
		ID:        item.ID.String(),
		ProductID: item.ProductID,
		Note:      item.Note,
		AddedAt:   item.AddedAt.UTC().Format(time.RFC3339),
	}
}
