package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/http/middleware"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/service"
)

// ProfileHandlers serves the profile view.
type ProfileHandlers struct {
	sessions *service.SessionService
	logger   *zap.Logger
}

// NewProfileHandlers returns handler set.
func NewProfileHandlers(sessions *service.SessionService, logger *zap.Logger) *ProfileHandlers {
	return &ProfileHandlers{sessions: sessions, logger: logger}
}

// Me handles GET /api/profile.
func (h *ProfileHandlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	profile, err := h.sessions.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, service.ErrProfileNotFound.Error())
			return
		}
		h.logger.Error("profile lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
