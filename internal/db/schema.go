package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		email TEXT NOT NULL,
		name TEXT,
		phone TEXT,
		wallet_balance NUMERIC(10, 2) NOT NULL DEFAULT 0 CHECK (wallet_balance >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS chargers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'available',
		price_per_kwh NUMERIC(10, 2) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		estimated_wait_time INT,
		owner_id TEXT REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		charger_id TEXT NOT NULL REFERENCES chargers(id),
		start_time TIMESTAMPTZ NOT NULL,
		duration_minutes INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		estimated_cost NUMERIC(10, 2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chargers_created_at ON chargers (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_user_id ON reservations (user_id)`,
}

// Bootstrap creates the schema if it does not exist yet.
func Bootstrap(ctx context.Context, pool *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db: bootstrap schema: %w", err)
		}
	}
	return nil
}
