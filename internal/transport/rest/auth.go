package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/internal/service/auth"
	"github.com/juniperhq/storefront-backend/internal/service/saveditems"
	"github.com/juniperhq/storefront-backend/pkg/ctxutil"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Signup(ctx context.Context, input auth.SignupInput) (*auth.SignupResult, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
	Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	Logout(ctx context.Context) error
}

// guestCookie supplies and clears the caller's guest session cookie.
type guestCookie interface {
	GuestIDFromRequest(req *http.Request) (string, bool)
	ClearGuestCookie(w http.ResponseWriter)
}

// AuthHandler serves auth REST endpoints.
type AuthHandler struct {
	svc    authService
	guests guestCookie
	log    *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, guests guestCookie, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, guests: guests, log: logger.With("handler", "auth")}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type bonusResponse struct {
	Awarded bool `json:"awarded"`
	Points  int  `json:"points"`
}

type migrationResponse struct {
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

type authResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

type signupResponse struct {
	authResponse
	LoyaltyBonus *bonusResponse     `json:"loyalty_bonus"`
	Migration    *migrationResponse `json:"migration,omitempty"`
}

type loginResponse struct {
	authResponse
	Migration *migrationResponse `json:"migration,omitempty"`
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	input := auth.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}
	if guestID, ok := h.guests.GuestIDFromRequest(r); ok {
		input.GuestID = guestID
	}

	result, err := h.svc.Signup(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if result.Migration != nil {
		h.guests.ClearGuestCookie(w)
	}

	resp := signupResponse{
		authResponse: toAuthResponse(&result.AuthResult),
		Migration:    toMigrationResponse(result.Migration),
	}
	if result.Bonus != nil {
		resp.LoyaltyBonus = &bonusResponse{Awarded: true, Points: result.Bonus.Points}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	input := auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}
	if guestID, ok := h.guests.GuestIDFromRequest(r); ok {
		input.GuestID = guestID
	}

	result, err := h.svc.Login(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if result.Migration != nil {
		h.guests.ClearGuestCookie(w)
	}

	writeJSON(w, http.StatusOK, loginResponse{
		authResponse: toAuthResponse(&result.AuthResult),
		Migration:    toMigrationResponse(result.Migration),
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.svc.Refresh(r.Context(), auth.RefreshInput{RefreshToken: req.RefreshToken})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.Logout(r.Context()); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "email already registered")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toAuthResponse(result *auth.AuthResult) authResponse {
	return authResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User: userResponse{
			ID:    result.User.ID.String(),
			Email: result.User.Email,
			Name:  result.User.Name,
		},
	}
}

func toMigrationResponse(result *saveditems.MigrateResult) *migrationResponse {
	if result == nil {
		return nil
	}
	return &migrationResponse{
		Migrated: result.Migrated,
		Skipped:  result.Skipped,
		Total:    result.Total(),
	}
}
