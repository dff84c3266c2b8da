package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
)

// ErrProfileNotFound represents missing profile rows.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository handles the profiles table.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository returns repository instance.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a fresh profile row.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	const query = `
		INSERT INTO profiles (id, email, name, phone, wallet_balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.Name,
		profile.Phone,
		profile.WalletBalance,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

// GetByID fetches a profile by user id.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	const query = `
		SELECT id, email, name, phone, wallet_balance, created_at, updated_at
		FROM profiles
		WHERE id = $1
		LIMIT 1
	`
	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&p.Phone,
		&p.WalletBalance,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// AddToBalance applies an atomic increment and returns the resulting balance.
// The increment happens backend-side so concurrent top-ups cannot lose updates.
func (r *ProfileRepository) AddToBalance(ctx context.Context, id string, amount float64) (float64, error) {
	const query = `
		UPDATE profiles
		SET wallet_balance = wallet_balance + $2,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING wallet_balance
	`
	var balance float64
	if err := r.db.QueryRowContext(ctx, query, id, amount).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrProfileNotFound
		}
		return 0, err
	}
	return balance, nil
}
