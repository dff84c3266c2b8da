package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"EVCHARGER_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"EVCHARGER_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"EVCHARGER_REDIS_ADDR"`
		Password string `yaml:"password" env:"EVCHARGER_REDIS_PASSWORD"`
	} `yaml:"redis"`
	JWT struct {
		Secret           string `yaml:"secret" env:"EVCHARGER_JWT_SECRET"`
		ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"EVCHARGER_JWT_EXPIRES_MINUTES"`
	} `yaml:"jwt"`
	Location struct {
		Endpoint string `yaml:"endpoint" env:"EVCHARGER_LOCATION_ENDPOINT"`
	} `yaml:"location"`
	Reservation struct {
		EnergyUnits     float64 `yaml:"energyUnits" env:"EVCHARGER_RESERVATION_ENERGY_UNITS"`
		DurationMinutes int     `yaml:"durationMinutes" env:"EVCHARGER_RESERVATION_DURATION_MINUTES"`
	} `yaml:"reservation"`
}

// Load reads configuration and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.JWT.ExpiresInMinutes = 60
	cfg.Reservation.EnergyUnits = 10
	cfg.Reservation.DurationMinutes = 60

	if err := load(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if cfg.JWT.ExpiresInMinutes <= 0 {
		cfg.JWT.ExpiresInMinutes = 60
	}
	if cfg.Reservation.EnergyUnits <= 0 {
		cfg.Reservation.EnergyUnits = 10
	}
	if cfg.Reservation.DurationMinutes <= 0 {
		cfg.Reservation.DurationMinutes = 60
	}

	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// JWTExpiration converts configured expiry to duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}

// ReservationDuration converts configured reservation window to duration.
func (c *Config) ReservationDuration() time.Duration {
	if c.Reservation.DurationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.Reservation.DurationMinutes) * time.Minute
}
