package simulate

import (
	"time"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"
)

// LedgerRow is one row of per-timestep output.
// This is the primary artifact for "what happened" in a simulation.
type LedgerRow struct {
	Index int

	Timestamp       time.Time
	IntervalMinutes float64

	PVPowerKW          float64
	ConsumptionPowerKW float64

	PVEnergyKWh          float64
	ConsumptionEnergyKWh float64
	NetEnergyKWh         float64

	Action model.Action

	BatteryChargeKWh    float64
	BatteryDischargeKWh float64
	BatteryLevelKWh     float64
	BatterySOC          float64

	GridPurchaseKWh float64
	GridSaleKWh     float64

	BuyPrice     float64
	BuybackPrice float64
	PeriodName   string

	EnergyCost    float64
	CumEnergyCost float64
}

// Date returns the calendar date the row falls on, for daily grouping.
func (r LedgerRow) Date() time.Time {
	y, m, d := r.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Timestamp.Location())
}

// Result is the immutable outcome of simulating one provider over a series.
type Result struct {
	Provider *model.Provider

	Ledger          []LedgerRow
	IntervalMinutes float64

	TotalEnergyCost float64
	FinalLevelKWh   float64
}
