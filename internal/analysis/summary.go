package analysis

import (
	"time"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/simulate"
)

// Window is an optional inclusive calendar-date range. Zero bounds are
// unbounded on that side.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) contains(t time.Time) bool {
	d := dateOf(t)
	if !w.Start.IsZero() && d.Before(dateOf(w.Start)) {
		return false
	}
	if !w.End.IsZero() && d.After(dateOf(w.End)) {
		return false
	}
	return true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DailySummary is the rollup of one calendar date: summed per-step energy
// cost plus the provider's fixed charge, applied exactly once for the date.
type DailySummary struct {
	Date        time.Time
	EnergyCost  float64
	DailyCharge float64
	TotalCost   float64
}

// DailyTotals groups ledger rows by calendar date, in first-seen order. The
// fixed daily charge (GST-multiplied when applicable) is counted once per
// date no matter how many timesteps fall on it.
func DailyTotals(provider *model.Provider, ledger []simulate.LedgerRow) []DailySummary {
	charge := provider.DailyChargeFor()

	var out []DailySummary
	index := map[time.Time]int{}
	for _, row := range ledger {
		d := row.Date()
		i, ok := index[d]
		if !ok {
			index[d] = len(out)
			out = append(out, DailySummary{Date: d, DailyCharge: charge})
			i = len(out) - 1
		}
		out[i].EnergyCost += row.EnergyCost
	}
	for i := range out {
		out[i].TotalCost = out[i].EnergyCost + out[i].DailyCharge
	}
	return out
}

// PeriodSummary buckets grid exchange by the time-of-use period it settled
// under, alongside the period's listed prices.
type PeriodSummary struct {
	Name         string  `json:"name"`
	BuyPrice     float64 `json:"buy_price"`
	BuybackPrice float64 `json:"buyback_price"`
	PurchasedKWh float64 `json:"purchased_kwh"`
	SoldKWh      float64 `json:"sold_kwh"`
}

// ProviderSummary aggregates one provider's run over an analysis window.
type ProviderSummary struct {
	Provider string `json:"provider"`

	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	AnalysisDays int       `json:"analysis_days"`

	IntervalMinutes float64 `json:"interval_minutes"`
	TotalTimesteps  int     `json:"total_timesteps"`

	TotalCost         float64 `json:"total_cost"`
	TotalEnergyCost   float64 `json:"total_energy_cost"`
	TotalDailyCharges float64 `json:"total_daily_charges"`
	AvgDailyCost      float64 `json:"avg_daily_cost"`
	// AvgCostPerKWh is total cost over kWh consumed, zero when nothing was
	// consumed in the window.
	AvgCostPerKWh float64 `json:"avg_cost_per_kwh_consumed"`

	TotalConsumptionKWh      float64 `json:"total_consumption_kwh"`
	TotalGenerationKWh       float64 `json:"total_generation_kwh"`
	TotalGridPurchaseKWh     float64 `json:"total_grid_purchase_kwh"`
	TotalGridSaleKWh         float64 `json:"total_grid_sale_kwh"`
	TotalBatteryChargeKWh    float64 `json:"total_battery_charge_kwh"`
	TotalBatteryDischargeKWh float64 `json:"total_battery_discharge_kwh"`

	DailyCharge float64 `json:"daily_charge"`

	Periods []PeriodSummary `json:"periods"`
}

// Summarize rolls a run up over the window. Recomputed from the ledger on
// every call; the ledger itself is never mutated.
func Summarize(result *simulate.Result, window Window) ProviderSummary {
	provider := result.Provider
	s := ProviderSummary{
		Provider:        provider.Name,
		IntervalMinutes: result.IntervalMinutes,
		DailyCharge:     provider.DailyCharge,
	}

	filtered := make([]simulate.LedgerRow, 0, len(result.Ledger))
	for _, row := range result.Ledger {
		if window.contains(row.Timestamp) {
			filtered = append(filtered, row)
		}
	}
	if len(filtered) == 0 {
		return s
	}

	daily := DailyTotals(provider, filtered)
	for _, d := range daily {
		s.TotalEnergyCost += d.EnergyCost
		s.TotalDailyCharges += d.DailyCharge
	}
	s.TotalCost = s.TotalEnergyCost + s.TotalDailyCharges
	s.AnalysisDays = len(daily)
	s.TotalTimesteps = len(filtered)
	s.StartDate = filtered[0].Timestamp
	s.EndDate = filtered[len(filtered)-1].Timestamp

	byPeriod := map[string]*PeriodSummary{}
	s.Periods = make([]PeriodSummary, len(provider.TimePeriods))
	for i, period := range provider.TimePeriods {
		s.Periods[i] = PeriodSummary{
			Name:         period.Name,
			BuyPrice:     period.BuyPrice,
			BuybackPrice: period.BuybackPrice,
		}
		byPeriod[period.Name] = &s.Periods[i]
	}

	for _, row := range filtered {
		s.TotalConsumptionKWh += row.ConsumptionEnergyKWh
		s.TotalGenerationKWh += row.PVEnergyKWh
		s.TotalGridPurchaseKWh += row.GridPurchaseKWh
		s.TotalGridSaleKWh += row.GridSaleKWh
		s.TotalBatteryChargeKWh += row.BatteryChargeKWh
		s.TotalBatteryDischargeKWh += row.BatteryDischargeKWh

		if p, ok := byPeriod[row.PeriodName]; ok {
			p.PurchasedKWh += row.GridPurchaseKWh
			p.SoldKWh += row.GridSaleKWh
		}
	}

	s.AvgDailyCost = s.TotalCost / float64(s.AnalysisDays)
	if s.TotalConsumptionKWh > 0 {
		s.AvgCostPerKWh = s.TotalCost / s.TotalConsumptionKWh
	}
	return s
}
