package service

import (
	"testing"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
)

func TestUnitPriceTiers(t *testing.T) {
	fast := UnitPrice(models.ChargerTypeFast)
	standard := UnitPrice(models.ChargerTypeStandard)

	if fast != 0.45 {
		t.Fatalf("expected fast tier 0.45, got %v", fast)
	}
	if standard != 0.30 {
		t.Fatalf("expected standard tier 0.30, got %v", standard)
	}
	if fast <= standard {
		t.Fatalf("fast tier %v must price above standard %v", fast, standard)
	}
}

func TestEstimateCost(t *testing.T) {
	if got := EstimateCost(0.30, 10); got != 3.0 {
		t.Fatalf("expected estimate 3.0, got %v", got)
	}
	if got := EstimateCost(0.45, 10); got != 4.5 {
		t.Fatalf("expected estimate 4.5, got %v", got)
	}
}
