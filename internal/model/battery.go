package model

import (
	"errors"
	"math"
)

// BatteryParams defines the physical parameters of the battery.
// Units:
// - CapacityKWh: kWh (0 disables the battery entirely)
// - Efficiency: round-trip, (0,1]
// - MaxChargeKW / MaxDischargeKW: kW
type BatteryParams struct {
	CapacityKWh    float64
	Efficiency     float64
	MaxChargeKW    float64
	MaxDischargeKW float64
}

// BatteryState captures mutable state.
type BatteryState struct {
	// LevelKWh is the stored energy, always within [0, CapacityKWh].
	LevelKWh float64
}

// Battery bundles params + state for one simulation run. State does not
// persist across runs; each provider simulation gets its own instance.
type Battery struct {
	Params BatteryParams
	State  BatteryState
}

// NewBattery constructs a battery starting at the given state of charge
// (fraction of capacity).
func NewBattery(params BatteryParams, initialSOC float64) (*Battery, error) {
	if initialSOC < 0 || initialSOC > 1 {
		return nil, errors.New("initial SOC must be in [0, 1]")
	}
	b := &Battery{
		Params: params,
		State:  BatteryState{LevelKWh: params.CapacityKWh * initialSOC},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// NoBattery returns the zero-capacity baseline used for comparison runs:
// every deficit is bought and every surplus is sold.
func NoBattery() *Battery {
	return &Battery{}
}

func (b *Battery) Validate() error {
	p := b.Params
	if p.CapacityKWh < 0 {
		return errors.New("CapacityKWh must be >= 0")
	}
	if p.CapacityKWh == 0 {
		// Baseline battery; remaining params are irrelevant.
		return nil
	}
	if p.Efficiency <= 0 || p.Efficiency > 1 {
		return errors.New("Efficiency must be in (0, 1]")
	}
	if p.MaxChargeKW <= 0 {
		return errors.New("MaxChargeKW must be > 0")
	}
	if p.MaxDischargeKW <= 0 {
		return errors.New("MaxDischargeKW must be > 0")
	}
	if b.State.LevelKWh < 0 || b.State.LevelKWh > p.CapacityKWh {
		return errors.New("level must be within [0, CapacityKWh]")
	}
	return nil
}

// SOC is the state of charge as a fraction of capacity (0 for the baseline
// battery).
func (b *Battery) SOC() float64 {
	if b.Params.CapacityKWh <= 0 {
		return 0
	}
	return b.State.LevelKWh / b.Params.CapacityKWh
}

// StepFlows captures what happened in one timestep. Power values are kW over
// the step; energy values are the corresponding kWh for the step length.
type StepFlows struct {
	NetPowerKW float64

	BatteryChargeKW    float64
	BatteryDischargeKW float64
	GridPurchaseKW     float64
	GridSaleKW         float64

	BatteryChargeKWh    float64
	BatteryDischargeKWh float64
	GridPurchaseKWh     float64
	GridSaleKWh         float64

	LevelStartKWh float64
	LevelEndKWh   float64
}

// Step advances the battery one timestep under the greedy self-consumption
// policy: surplus charges the battery before selling, deficit discharges it
// before buying. Round-trip loss is split evenly between the legs — each leg
// applies the square root of the round-trip efficiency, charging stores
// charge*sqrt(eff) and discharging withdraws discharge/sqrt(eff) — so the
// empirical discharged/charged ratio converges to the configured efficiency
// over closed cycles.
//
// dtHours must be > 0.
func (b *Battery) Step(pvPowerKW, consumptionPowerKW, dtHours float64) (StepFlows, error) {
	if dtHours <= 0 {
		return StepFlows{}, errors.New("dtHours must be > 0")
	}

	netPower := pvPowerKW - consumptionPowerKW
	flows := StepFlows{
		NetPowerKW:    netPower,
		LevelStartKWh: b.State.LevelKWh,
	}
	legEff := math.Sqrt(b.Params.Efficiency)

	switch {
	case netPower > 0:
		headroomKW := 0.0
		if b.Params.CapacityKWh > 0 {
			headroomKW = (b.Params.CapacityKWh - b.State.LevelKWh) / dtHours / legEff
		}
		chargeKW := math.Min(netPower, math.Min(b.Params.MaxChargeKW, headroomKW))
		if chargeKW < 0 {
			chargeKW = 0
		}
		if chargeKW > 0 {
			b.State.LevelKWh = math.Min(b.Params.CapacityKWh,
				b.State.LevelKWh+chargeKW*dtHours*legEff)
		}

		flows.BatteryChargeKW = chargeKW
		flows.GridSaleKW = netPower - chargeKW

	case netPower < 0:
		deficitKW := -netPower
		availableKW := 0.0
		if b.Params.CapacityKWh > 0 {
			availableKW = b.State.LevelKWh * legEff / dtHours
		}
		dischargeKW := math.Min(deficitKW, math.Min(b.Params.MaxDischargeKW, availableKW))
		if dischargeKW < 0 {
			dischargeKW = 0
		}
		// Guard the level update: the zero-capacity baseline has
		// Efficiency 0, and 0/0 would poison the level with NaN.
		if dischargeKW > 0 {
			b.State.LevelKWh = math.Max(0,
				b.State.LevelKWh-dischargeKW*dtHours/legEff)
		}

		flows.BatteryDischargeKW = dischargeKW
		flows.GridPurchaseKW = deficitKW - dischargeKW
	}

	flows.BatteryChargeKWh = flows.BatteryChargeKW * dtHours
	flows.BatteryDischargeKWh = flows.BatteryDischargeKW * dtHours
	flows.GridPurchaseKWh = flows.GridPurchaseKW * dtHours
	flows.GridSaleKWh = flows.GridSaleKW * dtHours
	flows.LevelEndKWh = b.State.LevelKWh
	return flows, nil
}
