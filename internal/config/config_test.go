package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("EVCHARGER_POSTGRES_DSN", "postgres://localhost:5432/evcharger")
	t.Setenv("EVCHARGER_JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddress() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.HTTPAddress())
	}
	if cfg.JWTExpiration() != time.Hour {
		t.Fatalf("expected 1h token expiry, got %s", cfg.JWTExpiration())
	}
	if cfg.Reservation.EnergyUnits != 10 {
		t.Fatalf("expected 10 energy units, got %v", cfg.Reservation.EnergyUnits)
	}
	if cfg.ReservationDuration() != time.Hour {
		t.Fatalf("expected 1h reservation window, got %s", cfg.ReservationDuration())
	}
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("EVCHARGER_POSTGRES_DSN", "")
	t.Setenv("EVCHARGER_JWT_SECRET", "test-secret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without database DSN")
	}

	t.Setenv("EVCHARGER_POSTGRES_DSN", "postgres://localhost:5432/evcharger")
	t.Setenv("EVCHARGER_JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without jwt secret")
	}
}

func TestEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("EVCHARGER_HTTP_PORT", "9090")
	t.Setenv("EVCHARGER_JWT_EXPIRES_MINUTES", "15")
	t.Setenv("EVCHARGER_RESERVATION_ENERGY_UNITS", "7.5")
	t.Setenv("EVCHARGER_RESERVATION_DURATION_MINUTES", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddress() != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.HTTPAddress())
	}
	if cfg.JWTExpiration() != 15*time.Minute {
		t.Fatalf("expected 15m expiry, got %s", cfg.JWTExpiration())
	}
	if cfg.Reservation.EnergyUnits != 7.5 {
		t.Fatalf("expected 7.5 units, got %v", cfg.Reservation.EnergyUnits)
	}
	if cfg.ReservationDuration() != 30*time.Minute {
		t.Fatalf("expected 30m window, got %s", cfg.ReservationDuration())
	}
}

func TestYAMLFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte(`
http:
  port: "7070"
database:
  dsn: "postgres://yaml-host:5432/evcharger"
jwt:
  secret: "yaml-secret"
  expiresInMinutes: 45
`)
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("EVCHARGER_HTTP_PORT", "6060")
	// registers restore, then drops the keys so yaml values survive
	for _, key := range []string{"EVCHARGER_POSTGRES_DSN", "EVCHARGER_JWT_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.Secret != "yaml-secret" {
		t.Fatalf("expected yaml secret, got %q", cfg.JWT.Secret)
	}
	if cfg.JWT.ExpiresInMinutes != 45 {
		t.Fatalf("expected 45 minutes, got %d", cfg.JWT.ExpiresInMinutes)
	}
	if cfg.HTTPAddress() != ":6060" {
		t.Fatalf("expected env to win over yaml, got %s", cfg.HTTPAddress())
	}
}
