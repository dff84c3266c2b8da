package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/geo"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/http/middleware"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/service"
)

// ChargerHandlers serves the station directory.
type ChargerHandlers struct {
	chargers *service.ChargerService
	locator  *geo.Provider
	logger   *zap.Logger
}

// NewChargerHandlers returns handler set.
func NewChargerHandlers(chargers *service.ChargerService, locator *geo.Provider, logger *zap.Logger) *ChargerHandlers {
	return &ChargerHandlers{chargers: chargers, locator: locator, logger: logger}
}

// List handles GET /api/chargers.
func (h *ChargerHandlers) List(w http.ResponseWriter, r *http.Request) {
	chargers, err := h.chargers.List(r.Context())
	if err != nil {
		h.logger.Error("charger list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load chargers")
		return
	}
	if chargers == nil {
		chargers = []models.Charger{}
	}
	writeJSON(w, http.StatusOK, chargers)
}

type registerChargerRequest struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	Latitude          string `json:"latitude"`
	Longitude         string `json:"longitude"`
	PowerLevel        string `json:"power_level"`
	EstimatedWaitTime *int   `json:"estimated_wait_time,omitempty"`
}

// Register handles POST /api/chargers. Field presence is checked before
// numeric parsing; only the first offending condition is reported.
func (h *ChargerHandlers) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "you must be logged in to add a charger")
		return
	}

	var req registerChargerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Latitude = strings.TrimSpace(req.Latitude)
	req.Longitude = strings.TrimSpace(req.Longitude)
	req.PowerLevel = strings.TrimSpace(req.PowerLevel)
	if req.Name == "" || req.Latitude == "" || req.Longitude == "" || req.PowerLevel == "" {
		writeError(w, http.StatusBadRequest, "please fill in all fields")
		return
	}

	lat, latErr := strconv.ParseFloat(req.Latitude, 64)
	lon, lonErr := strconv.ParseFloat(req.Longitude, 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "invalid latitude or longitude")
		return
	}

	power, err := strconv.ParseFloat(req.PowerLevel, 64)
	if err != nil || power <= 0 {
		writeError(w, http.StatusBadRequest, "power level must be a positive number")
		return
	}

	chargerType := strings.TrimSpace(req.Type)
	if chargerType == "" {
		chargerType = models.ChargerTypeStandard
	}
	if chargerType != models.ChargerTypeFast && chargerType != models.ChargerTypeStandard {
		writeError(w, http.StatusBadRequest, "charger type must be fast or standard")
		return
	}

	charger, err := h.chargers.Register(r.Context(), service.RegisterChargerInput{
		Name:              req.Name,
		Type:              chargerType,
		Latitude:          lat,
		Longitude:         lon,
		PowerLevelKW:      power,
		EstimatedWaitTime: req.EstimatedWaitTime,
		OwnerID:           userID,
	})
	if err != nil {
		h.logger.Error("charger registration failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred while adding the charger")
		return
	}

	writeJSON(w, http.StatusCreated, charger)
}

type nearestResponse struct {
	Origin        geo.Point       `json:"origin"`
	Source        string          `json:"source"`
	LocationError string          `json:"location_error,omitempty"`
	Nearest       *models.Charger `json:"nearest"`
	DistanceKm    float64         `json:"distance_km"`
}

// Nearest handles GET /api/chargers/nearest. Explicit lat/lon query
// parameters act as a manually entered location; otherwise the lookup
// provider is asked, and its failure falls back to the default coordinate.
func (h *ChargerHandlers) Nearest(w http.ResponseWriter, r *http.Request) {
	origin := geo.DefaultLocation
	source := "default"
	locationError := ""

	latParam := strings.TrimSpace(r.URL.Query().Get("lat"))
	lonParam := strings.TrimSpace(r.URL.Query().Get("lon"))
	switch {
	case latParam != "" || lonParam != "":
		lat, latErr := strconv.ParseFloat(latParam, 64)
		lon, lonErr := strconv.ParseFloat(lonParam, 64)
		if latErr != nil || lonErr != nil {
			writeError(w, http.StatusBadRequest, "invalid latitude or longitude")
			return
		}
		origin = geo.Point{Latitude: lat, Longitude: lon}
		source = "manual"
	case h.locator != nil:
		point, err := h.locator.Locate(r.Context())
		if err != nil {
			locationError = err.Error()
		} else {
			origin = point
			source = "lookup"
		}
	}

	chargers, err := h.chargers.List(r.Context())
	if err != nil {
		h.logger.Error("charger list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load chargers")
		return
	}

	nearest, ok := geo.Nearest(origin, chargers)
	if !ok {
		writeError(w, http.StatusNotFound, "no chargers available at the moment")
		return
	}

	writeJSON(w, http.StatusOK, nearestResponse{
		Origin:        origin,
		Source:        source,
		LocationError: locationError,
		Nearest:       &nearest,
		DistanceKm: geo.Distance(origin, geo.Point{
			Latitude:  nearest.Latitude,
			Longitude: nearest.Longitude,
		}),
	})
}
