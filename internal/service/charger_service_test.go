package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
)

func TestRegisterDerivesPriceFromType(t *testing.T) {
	store := newFakeChargerStore()
	svc := NewChargerService(store, zap.NewNop())

	fast, err := svc.Register(context.Background(), RegisterChargerInput{
		Name: "Fast one", Type: models.ChargerTypeFast,
		Latitude: 40, Longitude: -74, PowerLevelKW: 50, OwnerID: "user-1",
	})
	if err != nil {
		t.Fatalf("register fast: %v", err)
	}
	standard, err := svc.Register(context.Background(), RegisterChargerInput{
		Name: "Standard one", Type: models.ChargerTypeStandard,
		Latitude: 40, Longitude: -74, PowerLevelKW: 11, OwnerID: "user-1",
	})
	if err != nil {
		t.Fatalf("register standard: %v", err)
	}

	if fast.PricePerKWh <= standard.PricePerKWh {
		t.Fatalf("fast price %v must exceed standard %v", fast.PricePerKWh, standard.PricePerKWh)
	}
	if fast.Status != models.ChargerStatusAvailable {
		t.Fatalf("expected new charger available, got %s", fast.Status)
	}
	if fast.OwnerID == nil || *fast.OwnerID != "user-1" {
		t.Fatalf("expected owner user-1, got %v", fast.OwnerID)
	}
	if len(store.created) != 2 {
		t.Fatalf("expected two stored chargers, got %d", len(store.created))
	}
}

func TestRegisterRequiresOwner(t *testing.T) {
	svc := NewChargerService(newFakeChargerStore(), zap.NewNop())

	_, err := svc.Register(context.Background(), RegisterChargerInput{
		Name: "Orphan", Type: models.ChargerTypeFast, Latitude: 1, Longitude: 2, PowerLevelKW: 22,
	})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRegisterRejectsUnknownType(t *testing.T) {
	svc := NewChargerService(newFakeChargerStore(), zap.NewNop())

	_, err := svc.Register(context.Background(), RegisterChargerInput{
		Name: "Weird", Type: "turbo", Latitude: 1, Longitude: 2, PowerLevelKW: 22, OwnerID: "user-1",
	})
	if err == nil {
		t.Fatal("expected error for unknown charger type")
	}
}
