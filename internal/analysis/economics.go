package analysis

import (
	"math"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/simulate"
)

// BatteryEconomics compares a battery run against the no-battery baseline
// over the same series and tariff.
type BatteryEconomics struct {
	CostWithBattery    float64 `json:"cost_with_battery"`
	CostWithoutBattery float64 `json:"cost_without_battery"`
	Savings            float64 `json:"savings"`

	// AnnualSavings extrapolates the observed savings to a full year, and
	// PaybackYears divides the system cost by it (Inf when nothing is
	// saved).
	AnnualSavings float64 `json:"annual_savings"`
	BatteryCost   float64 `json:"battery_cost"`
	PaybackYears  float64 `json:"payback_years"`

	TotalChargedKWh    float64 `json:"total_charged_kwh"`
	TotalDischargedKWh float64 `json:"total_discharged_kwh"`
	// ObservedEfficiency is discharged/charged over the run. For complete
	// charge/discharge cycles it converges to the configured round-trip
	// efficiency.
	ObservedEfficiency float64 `json:"observed_efficiency"`
	EquivalentCycles   float64 `json:"equivalent_cycles"`

	// PeriodPurchaseShiftKWh is purchases-without minus purchases-with per
	// time-of-use period; positive means the battery moved load out of that
	// period.
	PeriodPurchaseShiftKWh map[string]float64 `json:"period_purchase_shift_kwh"`
}

// CompareEconomics derives battery economics from a with-battery run, its
// baseline, and the battery's capacity and system cost. batteryCost <= 0
// skips the payback projection.
func CompareEconomics(withBattery, baseline *simulate.Result, capacityKWh, batteryCost float64) BatteryEconomics {
	e := BatteryEconomics{
		CostWithBattery:        withBattery.TotalEnergyCost,
		CostWithoutBattery:     baseline.TotalEnergyCost,
		BatteryCost:            batteryCost,
		PeriodPurchaseShiftKWh: map[string]float64{},
	}
	e.Savings = e.CostWithoutBattery - e.CostWithBattery

	days := spanDays(withBattery)
	if days > 0 {
		e.AnnualSavings = e.Savings / float64(days) * 365
	}
	if batteryCost > 0 {
		if e.AnnualSavings > 0 {
			e.PaybackYears = batteryCost / e.AnnualSavings
		} else {
			e.PaybackYears = math.Inf(1)
		}
	}

	for _, row := range withBattery.Ledger {
		e.TotalChargedKWh += row.BatteryChargeKWh
		e.TotalDischargedKWh += row.BatteryDischargeKWh
		e.PeriodPurchaseShiftKWh[row.PeriodName] -= row.GridPurchaseKWh
	}
	for _, row := range baseline.Ledger {
		e.PeriodPurchaseShiftKWh[row.PeriodName] += row.GridPurchaseKWh
	}
	if e.TotalChargedKWh > 0 {
		e.ObservedEfficiency = e.TotalDischargedKWh / e.TotalChargedKWh
	}
	if capacityKWh > 0 {
		e.EquivalentCycles = e.TotalDischargedKWh / capacityKWh
	}
	return e
}

func spanDays(r *simulate.Result) int {
	if len(r.Ledger) == 0 {
		return 0
	}
	first := r.Ledger[0].Timestamp
	last := r.Ledger[len(r.Ledger)-1].Timestamp
	return int(last.Sub(first).Hours()/24) + 1
}
