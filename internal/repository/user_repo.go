package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
)

// ErrUserNotFound represents missing user rows.
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles CRUD for the users table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository returns repository instance.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user account.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	const query = `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt)
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email)))
	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
