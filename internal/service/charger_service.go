package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
)

// ChargerStore defines the charger storage contract used by services.
type ChargerStore interface {
	Create(ctx context.Context, charger *models.Charger) error
	List(ctx context.Context) ([]models.Charger, error)
	GetByID(ctx context.Context, id string) (*models.Charger, error)
}

// RegisterChargerInput is a validated registration form.
type RegisterChargerInput struct {
	Name              string
	Type              string
	Latitude          float64
	Longitude         float64
	PowerLevelKW      float64
	EstimatedWaitTime *int
	OwnerID           string
}

// ChargerService owns the station directory.
type ChargerService struct {
	chargers ChargerStore
	logger   *zap.Logger
}

// NewChargerService builds ChargerService.
func NewChargerService(chargers ChargerStore, logger *zap.Logger) *ChargerService {
	return &ChargerService{chargers: chargers, logger: logger}
}

// List returns the full directory, newest first.
func (s *ChargerService) List(ctx context.Context) ([]models.Charger, error) {
	return s.chargers.List(ctx)
}

// Register creates a new charger owned by the caller. The unit price is
// derived from the charger type, never taken from the form.
func (s *ChargerService) Register(ctx context.Context, input RegisterChargerInput) (*models.Charger, error) {
	if input.OwnerID == "" {
		return nil, ErrNotAuthenticated
	}
	if input.Type != models.ChargerTypeFast && input.Type != models.ChargerTypeStandard {
		return nil, errors.New("charger: unknown type")
	}

	ownerID := input.OwnerID
	charger := &models.Charger{
		ID:                uuid.New().String(),
		Name:              input.Name,
		Type:              input.Type,
		Status:            models.ChargerStatusAvailable,
		PricePerKWh:       UnitPrice(input.Type),
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		EstimatedWaitTime: input.EstimatedWaitTime,
		OwnerID:           &ownerID,
	}

	if err := s.chargers.Create(ctx, charger); err != nil {
		return nil, err
	}

	s.logger.Info("charger registered",
		zap.String("charger_id", charger.ID),
		zap.String("type", charger.Type),
		zap.String("owner_id", ownerID),
	)
	return charger, nil
}
