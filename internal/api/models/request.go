package models

import "github.com/bstlaurentnz/energy-provider-comparison/internal/model"

// CompareRequest is the request body for running a provider comparison.
// The caller supplies the time series inline; providers come either inline
// or from the built-in samples.
type CompareRequest struct {
	Series    []model.Reading   `json:"series" binding:"required"`
	Providers []*model.Provider `json:"providers,omitempty"`
	// UseSampleProviders substitutes the built-in demonstration tariffs
	// when no providers are given.
	UseSampleProviders bool `json:"use_sample_providers,omitempty"`

	Battery *BatteryConfig `json:"battery,omitempty"`

	Options CompareOptions `json:"options,omitempty"`
}

// BatteryConfig defines battery parameters for a request.
type BatteryConfig struct {
	CapacityKWh    float64 `json:"capacity_kwh"`
	Efficiency     float64 `json:"efficiency"`
	MaxChargeKW    float64 `json:"max_charge_kw"`
	MaxDischargeKW float64 `json:"max_discharge_kw"`
	InitialSOC     float64 `json:"initial_soc,omitempty"`
	SystemCost     float64 `json:"system_cost,omitempty"`
}

func (b BatteryConfig) ToModelParams() model.BatteryParams {
	return model.BatteryParams{
		CapacityKWh:    b.CapacityKWh,
		Efficiency:     b.Efficiency,
		MaxChargeKW:    b.MaxChargeKW,
		MaxDischargeKW: b.MaxDischargeKW,
	}
}

// CompareOptions contains optional comparison parameters.
type CompareOptions struct {
	StartDate      string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate        string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
	IncludeLedgers bool   `json:"include_ledgers,omitempty"`
}

// SimulateRequest is the request body for a single-tariff battery run with
// its no-battery baseline.
type SimulateRequest struct {
	Series   []model.Reading `json:"series" binding:"required"`
	Provider *model.Provider `json:"provider" binding:"required"`
	Battery  BatteryConfig   `json:"battery" binding:"required"`

	IncludeLedger bool `json:"include_ledger,omitempty"`
}
