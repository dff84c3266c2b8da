package models

import "time"

// Charger type constants.
const (
	ChargerTypeFast     = "fast"
	ChargerTypeStandard = "standard"
)

// Charger status constants.
const (
	ChargerStatusAvailable   = "available"
	ChargerStatusOccupied    = "occupied"
	ChargerStatusMaintenance = "maintenance"
)

// Reservation status constants.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusActive    = "active"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

// User holds account credentials.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Profile is the user-facing record mirrored into session state.
type Profile struct {
	ID            string    `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	Name          *string   `db:"name" json:"name,omitempty"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	WalletBalance float64   `db:"wallet_balance" json:"wallet_balance"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Charger represents a physical charging point.
type Charger struct {
	ID                string    `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Type              string    `db:"type" json:"type"`
	Status            string    `db:"status" json:"status"`
	PricePerKWh       float64   `db:"price_per_kwh" json:"price_per_kwh"`
	Latitude          float64   `db:"latitude" json:"latitude"`
	Longitude         float64   `db:"longitude" json:"longitude"`
	EstimatedWaitTime *int      `db:"estimated_wait_time" json:"estimated_wait_time,omitempty"`
	OwnerID           *string   `db:"owner_id" json:"owner_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Reservation links a user to a charger for a time window.
type Reservation struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	ChargerID       string    `db:"charger_id" json:"charger_id"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Status          string    `db:"status" json:"status"`
	EstimatedCost   float64   `db:"estimated_cost" json:"estimated_cost"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

var reservationNext = map[string]map[string]bool{
	ReservationStatusPending:   {ReservationStatusActive: true, ReservationStatusCancelled: true},
	ReservationStatusActive:    {ReservationStatusCompleted: true, ReservationStatusCancelled: true},
	ReservationStatusCompleted: {},
	ReservationStatusCancelled: {},
}

// CanTransitionReservation reports whether a reservation status change is legal.
func CanTransitionReservation(from, to string) bool {
	return reservationNext[from][to]
}
