package simulate

import "github.com/bstlaurentnz/energy-provider-comparison/internal/model"

// Settle computes the net monetary cost of one timestep's grid exchange.
// GST applies to the purchase side only; buyback revenue is untaxed.
func Settle(purchaseKWh, saleKWh, buyPrice, buybackPrice float64, gstApplicable bool) float64 {
	purchaseCost := purchaseKWh * buyPrice
	if gstApplicable {
		purchaseCost *= model.GSTMultiplier
	}
	return purchaseCost - saleKWh*buybackPrice
}
