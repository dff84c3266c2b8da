package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/http/middleware"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/service"
)

// AuthHandlers serves signup, login and logout.
type AuthHandlers struct {
	sessions *service.SessionService
	logger   *zap.Logger
}

// NewAuthHandlers returns handler set.
func NewAuthHandlers(sessions *service.SessionService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{sessions: sessions, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	User      *models.Profile `json:"user"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.sessions.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			writeError(w, http.StatusConflict, service.ErrEmailInUse.Error())
			return
		}
		h.logger.Error("signup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		User:      session.User,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, service.ErrProfileNotFound.Error())
		default:
			h.logger.Error("login failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to login")
		}
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		User:      session.User,
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.sessions.Logout(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusBadGateway, service.ErrLogout.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
