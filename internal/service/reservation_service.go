package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/repository"
)

// ErrChargerNotFound mirrors the repository sentinel at the service boundary.
var ErrChargerNotFound = repository.ErrChargerNotFound

// ErrChargerUnavailable rejects bookings against non-available chargers.
var ErrChargerUnavailable = repository.ErrChargerUnavailable

// ReservationStore defines the reservation storage contract.
type ReservationStore interface {
	Reserve(ctx context.Context, reservation *models.Reservation) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Reservation, error)
}

// StatusBroadcaster pushes charger status changes to feed subscribers.
type StatusBroadcaster interface {
	BroadcastStatus(chargerID, status string)
}

// ReservationConfig parameterizes the cost estimate and booking window.
type ReservationConfig struct {
	EnergyUnits float64
	Duration    time.Duration
}

// ReservationService orchestrates the booking workflow.
type ReservationService struct {
	reservations ReservationStore
	chargers     ChargerStore
	feed         StatusBroadcaster
	cfg          ReservationConfig
	logger       *zap.Logger
}

// NewReservationService builds ReservationService.
func NewReservationService(
	reservations ReservationStore,
	chargers ChargerStore,
	feed StatusBroadcaster,
	cfg ReservationConfig,
	logger *zap.Logger,
) *ReservationService {
	if cfg.EnergyUnits <= 0 {
		cfg.EnergyUnits = 10
	}
	if cfg.Duration <= 0 {
		cfg.Duration = time.Hour
	}
	return &ReservationService{
		reservations: reservations,
		chargers:     chargers,
		feed:         feed,
		cfg:          cfg,
		logger:       logger,
	}
}

// Reserve books the charger for the caller. The charger must report
// status available before any write is issued; the occupy-and-insert then
// happens in one transaction, so a lost race leaves no partial state.
func (s *ReservationService) Reserve(ctx context.Context, userID, chargerID string) (*models.Reservation, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	charger, err := s.chargers.GetByID(ctx, chargerID)
	if err != nil {
		return nil, err
	}
	if charger.Status != models.ChargerStatusAvailable {
		return nil, ErrChargerUnavailable
	}

	reservation := &models.Reservation{
		ID:              uuid.New().String(),
		UserID:          userID,
		ChargerID:       charger.ID,
		StartTime:       time.Now().UTC(),
		DurationMinutes: int(s.cfg.Duration.Minutes()),
		Status:          models.ReservationStatusPending,
		EstimatedCost:   EstimateCost(charger.PricePerKWh, s.cfg.EnergyUnits),
	}

	if err := s.reservations.Reserve(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrChargerUnavailable) {
			return nil, ErrChargerUnavailable
		}
		return nil, err
	}

	if s.feed != nil {
		s.feed.BroadcastStatus(charger.ID, models.ChargerStatusOccupied)
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", reservation.ID),
		zap.String("charger_id", charger.ID),
		zap.String("user_id", userID),
		zap.Float64("estimated_cost", reservation.EstimatedCost),
	)
	return reservation, nil
}

// ListByUser returns the caller's booking history.
func (s *ReservationService) ListByUser(ctx context.Context, userID string, limit int) ([]models.Reservation, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.reservations.ListByUser(ctx, userID, limit)
}
