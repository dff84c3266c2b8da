package service

import "github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"

// Fixed pricing tiers per charger type, in currency units per kWh.
const (
	fastPricePerKWh     = 0.45
	standardPricePerKWh = 0.30
)

// UnitPrice derives the price per energy unit from the charger type. The
// price is never user-supplied.
func UnitPrice(chargerType string) float64 {
	if chargerType == models.ChargerTypeFast {
		return fastPricePerKWh
	}
	return standardPricePerKWh
}

// EstimateCost returns the up-front cost estimate for a reservation assuming
// the configured energy draw.
func EstimateCost(pricePerKWh, energyUnits float64) float64 {
	return pricePerKWh * energyUnits
}
