package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
)

// ErrChargerUnavailable is returned when the targeted charger is no longer
// available at commit time.
var ErrChargerUnavailable = errors.New("charger is not available")

// ReservationRepository persists reservations.
type ReservationRepository struct {
	db *sql.DB
}

// NewReservationRepository returns repository instance.
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Reserve occupies the charger and records the reservation in one transaction.
// The status update is guarded by the current status, so a booking that lost a
// race with another client commits nothing and reports ErrChargerUnavailable.
func (r *ReservationRepository) Reserve(ctx context.Context, reservation *models.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const occupy = `
		UPDATE chargers
		SET status = $2,
		    updated_at = NOW()
		WHERE id = $1 AND status = $3
	`
	result, err := tx.ExecContext(ctx, occupy,
		reservation.ChargerID,
		models.ChargerStatusOccupied,
		models.ChargerStatusAvailable,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrChargerUnavailable
	}

	const insert = `
		INSERT INTO reservations (id, user_id, charger_id, start_time, duration_minutes, status, estimated_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, insert,
		reservation.ID,
		reservation.UserID,
		reservation.ChargerID,
		reservation.StartTime,
		reservation.DurationMinutes,
		reservation.Status,
		reservation.EstimatedCost,
	).Scan(&reservation.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListByUser returns the user's reservations, newest first.
func (r *ReservationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Reservation, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, user_id, charger_id, start_time, duration_minutes, status, estimated_cost, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.ChargerID,
			&res.StartTime,
			&res.DurationMinutes,
			&res.Status,
			&res.EstimatedCost,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}
