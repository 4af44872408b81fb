package simulate

import (
	"testing"
	"time"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatProvider(buy, buyback, dailyCharge float64, gst bool) *model.Provider {
	return &model.Provider{
		Name:          "flat",
		DailyCharge:   dailyCharge,
		GSTApplicable: gst,
		TimePeriods: []model.TimeOfUsePeriod{
			{
				Name:         "all",
				BuyPrice:     buy,
				BuybackPrice: buyback,
				TimeRanges:   []model.TimeRange{{StartHour: 0, EndHour: 24, Days: []int{0, 1, 2, 3, 4, 5, 6}}},
			},
		},
	}
}

// hourlySeries builds hourly readings starting 2024-01-01 00:00 UTC from
// (pv, consumption) kW pairs.
func hourlySeries(flows ...[2]float64) model.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(model.Series, len(flows))
	for i, f := range flows {
		series[i] = model.Reading{
			Timestamp:          start.Add(time.Duration(i) * time.Hour),
			PVPowerKW:          f[0],
			ConsumptionPowerKW: f[1],
		}
	}
	return series
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name     string
		purchase float64
		sale     float64
		gst      bool
		want     float64
	}{
		{"purchase only", 2, 0, false, 0.60},
		{"sale only", 0, 2, false, -0.20},
		{"net of both", 2, 1, false, 0.50},
		{"gst on purchases", 2, 0, true, 0.69},
		{"gst never touches sales", 0, 2, true, -0.20},
		{"nothing exchanged", 0, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.purchase, tt.sale, 0.30, 0.10, tt.gst)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRunBaseline(t *testing.T) {
	// One purchased kWh at 0.30, one sold kWh at 0.10.
	series := hourlySeries([2]float64{0, 1}, [2]float64{1, 0}, [2]float64{0, 0})
	provider := flatProvider(0.30, 0.10, 1.0, false)

	res, err := New().Run(series, provider, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.20, res.TotalEnergyCost, 1e-9)
	assert.InDelta(t, 60.0, res.IntervalMinutes, 1e-9)
	require.Len(t, res.Ledger, 3)

	assert.InDelta(t, 0.30, res.Ledger[0].EnergyCost, 1e-9)
	assert.Equal(t, model.ActionIdle, res.Ledger[0].Action)
	assert.InDelta(t, -0.10, res.Ledger[1].EnergyCost, 1e-9)
	assert.InDelta(t, 0.0, res.Ledger[2].EnergyCost, 1e-9)
	assert.InDelta(t, 0.20, res.Ledger[2].CumEnergyCost, 1e-9)
	assert.Equal(t, "all", res.Ledger[0].PeriodName)
	assert.Zero(t, res.FinalLevelKWh)
}

func TestRunGSTAsymmetry(t *testing.T) {
	series := hourlySeries([2]float64{0, 1}, [2]float64{1, 0})
	provider := flatProvider(0.30, 0.10, 0, true)

	res, err := New().Run(series, provider, nil)
	require.NoError(t, err)

	// 1 kWh * 0.30 * 1.15 purchased, 1 kWh * 0.10 sold untaxed.
	assert.InDelta(t, 0.245, res.TotalEnergyCost, 1e-9)
}

func TestRunWithBattery(t *testing.T) {
	// Surplus hour fills the battery, deficit hour drains it: nothing is
	// purchased, only the uncapturable surplus is sold.
	series := hourlySeries([2]float64{4, 0}, [2]float64{0, 2})
	provider := flatProvider(0.30, 0.10, 0, false)

	batt, err := model.NewBattery(model.BatteryParams{
		CapacityKWh:    10,
		Efficiency:     1.0,
		MaxChargeKW:    3,
		MaxDischargeKW: 3,
	}, 0)
	require.NoError(t, err)

	res, err := New().Run(series, provider, batt)
	require.NoError(t, err)

	require.Len(t, res.Ledger, 2)
	assert.Equal(t, model.ActionCharging, res.Ledger[0].Action)
	assert.InDelta(t, 3.0, res.Ledger[0].BatteryChargeKWh, 1e-9)
	assert.InDelta(t, 1.0, res.Ledger[0].GridSaleKWh, 1e-9)

	assert.Equal(t, model.ActionDischarging, res.Ledger[1].Action)
	assert.InDelta(t, 2.0, res.Ledger[1].BatteryDischargeKWh, 1e-9)
	assert.Zero(t, res.Ledger[1].GridPurchaseKWh)

	assert.InDelta(t, -0.10, res.TotalEnergyCost, 1e-9)
	assert.InDelta(t, 1.0, res.FinalLevelKWh, 1e-9)
}

func TestRunBatteryReducesCost(t *testing.T) {
	series := hourlySeries(
		[2]float64{0, 1}, [2]float64{5, 0}, [2]float64{5, 0},
		[2]float64{0, 3}, [2]float64{0, 3}, [2]float64{0, 1},
	)
	provider := flatProvider(0.30, 0.08, 0, false)

	baseline, err := New().Run(series, provider, model.NoBattery())
	require.NoError(t, err)

	batt, err := model.NewBattery(model.BatteryParams{
		CapacityKWh:    8,
		Efficiency:     0.95,
		MaxChargeKW:    5,
		MaxDischargeKW: 5,
	}, 0)
	require.NoError(t, err)

	withBattery, err := New().Run(series, provider, batt)
	require.NoError(t, err)

	assert.Less(t, withBattery.TotalEnergyCost, baseline.TotalEnergyCost,
		"buyback below purchase price means self-consumption wins")
}

func TestRunErrors(t *testing.T) {
	provider := flatProvider(0.30, 0.10, 0, false)

	_, err := New().Run(nil, provider, nil)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = New().Run(hourlySeries([2]float64{1, 0}), nil, nil)
	assert.Error(t, err)
}

func TestRunSubHourlyIntervals(t *testing.T) {
	// 15-minute intervals: 1 kW of deficit settles as 0.25 kWh per step.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := model.Series{
		{Timestamp: start, ConsumptionPowerKW: 1},
		{Timestamp: start.Add(15 * time.Minute), ConsumptionPowerKW: 1},
	}
	provider := flatProvider(0.40, 0, 0, false)

	res, err := New().Run(series, provider, nil)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, res.IntervalMinutes, 1e-9)
	assert.InDelta(t, 0.25, res.Ledger[0].GridPurchaseKWh, 1e-9)
	assert.InDelta(t, 0.20, res.TotalEnergyCost, 1e-9)
}
