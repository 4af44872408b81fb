package simulate

import (
	"errors"
	"fmt"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"
)

// ErrEmptySeries is returned when a run is requested over zero readings.
var ErrEmptySeries = errors.New("input series is empty")

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run replays the series against one provider's tariff, stepping the battery
// in timestamp order and settling each step's residual grid exchange. The
// battery is mutated; callers wanting independent runs pass a fresh one.
// Passing nil uses the no-battery baseline.
func (e *Engine) Run(series model.Series, provider *model.Provider, batt *model.Battery) (*Result, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is nil")
	}
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}
	if batt == nil {
		batt = model.NoBattery()
	}

	dtHours := series.IntervalHours()
	intervalMinutes := series.IntervalMinutes()

	ledger := make([]LedgerRow, 0, len(series))
	cum := 0.0

	for idx, reading := range series {
		buyPrice, buybackPrice, periodName := provider.Pricing(reading.Timestamp)

		flows, err := batt.Step(reading.PVPowerKW, reading.ConsumptionPowerKW, dtHours)
		if err != nil {
			return nil, fmt.Errorf("timestep %d battery step: %w", idx, err)
		}

		cost := Settle(flows.GridPurchaseKWh, flows.GridSaleKWh, buyPrice, buybackPrice, provider.GSTApplicable)
		cum += cost

		ledger = append(ledger, LedgerRow{
			Index: idx,

			Timestamp:       reading.Timestamp,
			IntervalMinutes: intervalMinutes,

			PVPowerKW:          reading.PVPowerKW,
			ConsumptionPowerKW: reading.ConsumptionPowerKW,

			PVEnergyKWh:          reading.PVPowerKW * dtHours,
			ConsumptionEnergyKWh: reading.ConsumptionPowerKW * dtHours,
			NetEnergyKWh:         flows.NetPowerKW * dtHours,

			Action: model.ActionFromFlows(flows),

			BatteryChargeKWh:    flows.BatteryChargeKWh,
			BatteryDischargeKWh: flows.BatteryDischargeKWh,
			BatteryLevelKWh:     flows.LevelEndKWh,
			BatterySOC:          batt.SOC(),

			GridPurchaseKWh: flows.GridPurchaseKWh,
			GridSaleKWh:     flows.GridSaleKWh,

			BuyPrice:     buyPrice,
			BuybackPrice: buybackPrice,
			PeriodName:   periodName,

			EnergyCost:    cost,
			CumEnergyCost: cum,
		})
	}

	return &Result{
		Provider:        provider,
		Ledger:          ledger,
		IntervalMinutes: intervalMinutes,
		TotalEnergyCost: cum,
		FinalLevelKWh:   batt.State.LevelKWh,
	}, nil
}
