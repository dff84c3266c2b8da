package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/http/middleware"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/service"
)

// WalletHandlers serves the wallet balance and top-up endpoints.
type WalletHandlers struct {
	sessions *service.SessionService
	logger   *zap.Logger
}

// NewWalletHandlers returns handler set.
func NewWalletHandlers(sessions *service.SessionService, logger *zap.Logger) *WalletHandlers {
	return &WalletHandlers{sessions: sessions, logger: logger}
}

// Balance handles GET /api/wallet.
func (h *WalletHandlers) Balance(w http.ResponseWriter, r *http.Request) {
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
		h.logger.Error("wallet lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load wallet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"wallet_balance": profile.WalletBalance})
}

// AddFunds handles POST /api/wallet/funds. The amount is validated here,
// before any backend call is issued.
func (h *WalletHandlers) AddFunds(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		writeError(w, http.StatusBadRequest, "please enter a valid amount greater than zero")
		return
	}

	balance, err := h.sessions.AddFunds(r.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, service.ErrProfileNotFound.Error())
		case errors.Is(err, service.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, service.ErrInvalidAmount.Error())
		default:
			h.logger.Error("add funds failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to add funds")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"wallet_balance": balance})
}
