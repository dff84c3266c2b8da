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

// ReservationHandlers serves the booking workflow.
type ReservationHandlers struct {
	reservations *service.ReservationService
	chargers     *service.ChargerService
	logger       *zap.Logger
}

// NewReservationHandlers returns handler set.
func NewReservationHandlers(
	reservations *service.ReservationService,
	chargers *service.ChargerService,
	logger *zap.Logger,
) *ReservationHandlers {
	return &ReservationHandlers{reservations: reservations, chargers: chargers, logger: logger}
}

// Create handles POST /api/reservations. The response carries the refreshed
// charger list so the directory view can re-render without a second call.
func (h *ReservationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "you must be logged in to make a reservation")
		return
	}

	var req struct {
		ChargerID string `json:"charger_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.ChargerID = strings.TrimSpace(req.ChargerID)
	if req.ChargerID == "" {
		writeError(w, http.StatusBadRequest, "charger_id is required")
		return
	}

	reservation, err := h.reservations.Reserve(r.Context(), userID, req.ChargerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChargerNotFound):
			writeError(w, http.StatusNotFound, service.ErrChargerNotFound.Error())
		case errors.Is(err, service.ErrChargerUnavailable):
			writeError(w, http.StatusConflict, service.ErrChargerUnavailable.Error())
		default:
			h.logger.Error("reservation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create reservation")
		}
		return
	}

	chargers, err := h.chargers.List(r.Context())
	if err != nil {
		h.logger.Warn("failed to refresh charger list", zap.Error(err))
		chargers = nil
	}

	writeJSON(w, http.StatusCreated, struct {
		Reservation *models.Reservation `json:"reservation"`
		Chargers    []models.Charger    `json:"chargers,omitempty"`
	}{
		Reservation: reservation,
		Chargers:    chargers,
	})
}

// List handles GET /api/reservations.
func (h *ReservationHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	reservations, err := h.reservations.ListByUser(r.Context(), userID, 0)
	if err != nil {
		h.logger.Error("reservation list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load reservations")
		return
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservations)
}
