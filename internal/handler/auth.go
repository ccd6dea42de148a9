package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"vitalchat/internal/domain"
	"vitalchat/internal/httputil"
	"vitalchat/internal/service/auth"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a new account
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := httputil.ParseJSON(w, r, &creds); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), &creds)
	if err != nil {
		// The app treats a taken username as a client mistake, not a conflict.
		if errors.Is(err, domain.ErrConflict) {
			httputil.RespondError(w, http.StatusBadRequest, "Usuário já existe.")
			return
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// Login checks credentials and issues a session token
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := httputil.ParseJSON(w, r, &creds); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), &creds)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"user_id":  result.UserID,
		"username": result.Username,
		"token":    result.Token,
	})
}
