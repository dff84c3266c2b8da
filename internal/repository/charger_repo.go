package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
)

// ErrChargerNotFound represents missing charger rows.
var ErrChargerNotFound = errors.New("charger not found")

// ChargerRepository handles the chargers table.
type ChargerRepository struct {
	db *sql.DB
}

// NewChargerRepository returns repository instance.
func NewChargerRepository(db *sql.DB) *ChargerRepository {
	return &ChargerRepository{db: db}
}

// Create inserts a new charger.
func (r *ChargerRepository) Create(ctx context.Context, charger *models.Charger) error {
	const query = `
		INSERT INTO chargers (id, name, type, status, price_per_kwh, latitude, longitude, estimated_wait_time, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		charger.ID,
		charger.Name,
		charger.Type,
		charger.Status,
		charger.PricePerKWh,
		charger.Latitude,
		charger.Longitude,
		charger.EstimatedWaitTime,
		charger.OwnerID,
	).Scan(&charger.CreatedAt, &charger.UpdatedAt)
}

// List returns all chargers, newest first.
func (r *ChargerRepository) List(ctx context.Context) ([]models.Charger, error) {
	const query = `
		SELECT id, name, type, status, price_per_kwh, latitude, longitude, estimated_wait_time, owner_id, created_at, updated_at
		FROM chargers
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chargers []models.Charger
	for rows.Next() {
		var c models.Charger
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Type,
			&c.Status,
			&c.PricePerKWh,
			&c.Latitude,
			&c.Longitude,
			&c.EstimatedWaitTime,
			&c.OwnerID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		chargers = append(chargers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chargers, nil
}

// GetByID fetches a charger by id.
func (r *ChargerRepository) GetByID(ctx context.Context, id string) (*models.Charger, error) {
	const query = `
		SELECT id, name, type, status, price_per_kwh, latitude, longitude, estimated_wait_time, owner_id, created_at, updated_at
		FROM chargers
		WHERE id = $1
		LIMIT 1
	`
	var c models.Charger
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Type,
		&c.Status,
		&c.PricePerKWh,
		&c.Latitude,
		&c.Longitude,
		&c.EstimatedWaitTime,
		&c.OwnerID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChargerNotFound
		}
		return nil, err
	}
	return &c, nil
}
