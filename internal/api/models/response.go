package models

import (
	"time"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/analysis"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/simulate"
)

// CompareResponse is the result of a comparison run. ID can be used to
// fetch per-provider ledgers later via GET /compare/:id/ledger.
type CompareResponse struct {
	ID       string                   `json:"id"`
	Status   string                   `json:"status"`
	Rankings []analysis.RankedSummary `json:"rankings"`
	Failures []ProviderFailure        `json:"failures,omitempty"`
	Ledgers  map[string][]LedgerRow   `json:"ledgers,omitempty"`
}

// ProviderFailure reports a provider whose simulation failed.
type ProviderFailure struct {
	Provider string `json:"provider"`
	Error    string `json:"error"`
}

// SimulateResponse is the result of a single-tariff battery run.
type SimulateResponse struct {
	Status    string                    `json:"status"`
	Summary   analysis.ProviderSummary  `json:"summary"`
	Baseline  analysis.ProviderSummary  `json:"baseline"`
	Economics analysis.BatteryEconomics `json:"economics"`
	Ledger    []LedgerRow               `json:"ledger,omitempty"`
}

// LedgerRow is one timestep in a simulation ledger.
type LedgerRow struct {
	Index                int       `json:"index"`
	Timestamp            time.Time `json:"timestamp"`
	IntervalMinutes      float64   `json:"interval_minutes"`
	PVPowerKW            float64   `json:"pv_power_kw"`
	ConsumptionPowerKW   float64   `json:"consumption_power_kw"`
	PVEnergyKWh          float64   `json:"pv_energy_kwh"`
	ConsumptionEnergyKWh float64   `json:"consumption_energy_kwh"`
	NetEnergyKWh         float64   `json:"net_energy_kwh"`
	Action               string    `json:"action"`
	BatteryChargeKWh     float64   `json:"battery_charge_kwh"`
	BatteryDischargeKWh  float64   `json:"battery_discharge_kwh"`
	BatteryLevelKWh      float64   `json:"battery_level_kwh"`
	BatterySOC           float64   `json:"battery_soc"`
	GridPurchaseKWh      float64   `json:"grid_purchase_kwh"`
	GridSaleKWh          float64   `json:"grid_sale_kwh"`
	BuyPrice             float64   `json:"buy_price"`
	BuybackPrice         float64   `json:"buyback_price"`
	PeriodName           string    `json:"period_name"`
	EnergyCost           float64   `json:"energy_cost"`
	CumEnergyCost        float64   `json:"cum_energy_cost"`
}

// ConvertLedger maps engine ledger rows to their wire shape.
func ConvertLedger(ledger []simulate.LedgerRow) []LedgerRow {
	out := make([]LedgerRow, len(ledger))
	for i, r := range ledger {
		out[i] = LedgerRow{
			Index:                r.Index,
			Timestamp:            r.Timestamp,
			IntervalMinutes:      r.IntervalMinutes,
			PVPowerKW:            r.PVPowerKW,
			ConsumptionPowerKW:   r.ConsumptionPowerKW,
			PVEnergyKWh:          r.PVEnergyKWh,
			ConsumptionEnergyKWh: r.ConsumptionEnergyKWh,
			NetEnergyKWh:         r.NetEnergyKWh,
			Action:               string(r.Action),
			BatteryChargeKWh:     r.BatteryChargeKWh,
			BatteryDischargeKWh:  r.BatteryDischargeKWh,
			BatteryLevelKWh:      r.BatteryLevelKWh,
			BatterySOC:           r.BatterySOC,
			GridPurchaseKWh:      r.GridPurchaseKWh,
			GridSaleKWh:          r.GridSaleKWh,
			BuyPrice:             r.BuyPrice,
			BuybackPrice:         r.BuybackPrice,
			PeriodName:           r.PeriodName,
			EnergyCost:           r.EnergyCost,
			CumEnergyCost:        r.CumEnergyCost,
		}
	}
	return out
}

// ProviderInfo describes a built-in provider for listing.
type ProviderInfo struct {
	Name          string                   `json:"name"`
	DailyCharge   float64                  `json:"daily_charge"`
	GSTApplicable bool                     `json:"gst_applicable"`
	Periods       []analysis.PeriodSummary `json:"periods"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
