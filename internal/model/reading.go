package model

import (
	"sort"
	"time"
)

// Reading is one time-series row of instantaneous power observations.
// PV and consumption are kW, not energy; the simulation converts them to
// kWh using the series interval.
type Reading struct {
	Timestamp          time.Time `json:"timestamp"`
	PVPowerKW          float64   `json:"pv_power_kw"`
	ConsumptionPowerKW float64   `json:"consumption_power_kw"`
}

// Series is an ordered sequence of readings. Timestamps are expected to be
// monotonically non-decreasing; SortByTimestamp restores that after loading.
type Series []Reading

// DefaultIntervalMinutes is assumed when the series has fewer than two
// readings and the interval cannot be measured.
const DefaultIntervalMinutes = 1.0

// IntervalMinutes measures the sampling interval from the first two
// timestamps. The interval is measured once and assumed fixed for the whole
// series; variable-interval input is not supported.
func (s Series) IntervalMinutes() float64 {
	if len(s) < 2 {
		return DefaultIntervalMinutes
	}
	return s[1].Timestamp.Sub(s[0].Timestamp).Minutes()
}

// IntervalHours is IntervalMinutes converted to the dt used by the battery
// and settlement steps.
func (s Series) IntervalHours() float64 {
	return s.IntervalMinutes() / 60.0
}

func (s Series) SortByTimestamp() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Timestamp.Before(s[j].Timestamp)
	})
}

// Span returns the first and last timestamps and the number of calendar days
// covered, inclusive. Zero values for an empty series.
func (s Series) Span() (start, end time.Time, days int) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}, 0
	}
	start = s[0].Timestamp
	end = s[len(s)-1].Timestamp
	days = int(end.Sub(start).Hours()/24) + 1
	return start, end, days
}
