package model

import (
	"errors"
	"fmt"
	"time"
)

// GSTMultiplier is the flat 15% goods-and-services tax applied to grid
// purchases and daily charges. Sale revenue is never taxed.
const GSTMultiplier = 1.15

// PeriodUnknown is the label returned when no time range matches a
// timestamp. The first declared period's prices still apply; a tariff with
// full 24x7 coverage never produces it.
const PeriodUnknown = "unknown"

// TimeRange is a recurring window of hours on a set of weekdays.
// Days use 0=Monday..6=Sunday. EndHour <= StartHour means the range wraps
// past midnight (e.g. 23..7).
type TimeRange struct {
	StartHour int   `json:"start_hour" yaml:"start_hour"`
	EndHour   int   `json:"end_hour" yaml:"end_hour"`
	Days      []int `json:"days" yaml:"days"`
}

// containsHour checks the [StartHour, EndHour) window on a 24h clock.
// If StartHour >= EndHour the window wraps across midnight.
func (r TimeRange) containsHour(hour int) bool {
	if r.EndHour > r.StartHour {
		return hour >= r.StartHour && hour < r.EndHour
	}
	return hour >= r.StartHour || hour < r.EndHour
}

func (r TimeRange) containsDay(weekday int) bool {
	for _, d := range r.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// Contains reports whether the range covers the given hour on the given
// weekday (0=Monday..6=Sunday).
func (r TimeRange) Contains(hour, weekday int) bool {
	return r.containsDay(weekday) && r.containsHour(hour)
}

// TimeOfUsePeriod is a named pricing regime active during its time ranges.
// Prices are currency per kWh.
type TimeOfUsePeriod struct {
	Name         string      `json:"name" yaml:"name"`
	BuyPrice     float64     `json:"buy_price" yaml:"buy_price"`
	BuybackPrice float64     `json:"buyback_price" yaml:"buyback_price"`
	TimeRanges   []TimeRange `json:"time_ranges" yaml:"time_ranges"`
}

// Provider is an energy retailer's pricing structure. It is immutable once
// constructed; the resolver picks the first period whose ranges cover a
// timestamp, in declaration order.
type Provider struct {
	Name          string            `json:"name" yaml:"name"`
	DailyCharge   float64           `json:"daily_charge" yaml:"daily_charge"`
	GSTApplicable bool              `json:"gst_applicable" yaml:"gst_applicable"`
	TimePeriods   []TimeOfUsePeriod `json:"time_periods" yaml:"time_periods"`
}

func (p *Provider) Validate() error {
	if p.Name == "" {
		return errors.New("provider name is required")
	}
	if p.DailyCharge < 0 {
		return errors.New("daily_charge must be >= 0")
	}
	if len(p.TimePeriods) == 0 {
		return fmt.Errorf("provider %q has no time periods", p.Name)
	}
	seen := map[string]bool{}
	for _, period := range p.TimePeriods {
		if period.Name == "" {
			return fmt.Errorf("provider %q has a period with no name", p.Name)
		}
		if seen[period.Name] {
			return fmt.Errorf("provider %q declares period %q twice", p.Name, period.Name)
		}
		seen[period.Name] = true
		if period.BuyPrice < 0 || period.BuybackPrice < 0 {
			return fmt.Errorf("provider %q period %q has a negative price", p.Name, period.Name)
		}
		for _, r := range period.TimeRanges {
			if r.StartHour < 0 || r.StartHour > 23 {
				return fmt.Errorf("provider %q period %q: start_hour %d out of range", p.Name, period.Name, r.StartHour)
			}
			if r.EndHour < 1 || r.EndHour > 24 {
				return fmt.Errorf("provider %q period %q: end_hour %d out of range", p.Name, period.Name, r.EndHour)
			}
			if len(r.Days) == 0 {
				return fmt.Errorf("provider %q period %q has a range with no days", p.Name, period.Name)
			}
			for _, d := range r.Days {
				if d < 0 || d > 6 {
					return fmt.Errorf("provider %q period %q: day %d out of range", p.Name, period.Name, d)
				}
			}
		}
	}
	return nil
}

// Pricing resolves the buy price, buyback price and period name applying at
// t. Periods are tried in declaration order and the first match wins, so
// overlapping ranges have a stable tie-break. When no range matches, the
// first declared period's prices apply under the PeriodUnknown label; a
// provider with no periods resolves to (0, 0, unknown).
func (p *Provider) Pricing(t time.Time) (buyPrice, buybackPrice float64, periodName string) {
	hour := t.Hour()
	weekday := Weekday(t)

	for _, period := range p.TimePeriods {
		for _, r := range period.TimeRanges {
			if r.Contains(hour, weekday) {
				return period.BuyPrice, period.BuybackPrice, period.Name
			}
		}
	}
	if len(p.TimePeriods) > 0 {
		first := p.TimePeriods[0]
		return first.BuyPrice, first.BuybackPrice, PeriodUnknown
	}
	return 0, 0, PeriodUnknown
}

// DailyChargeFor returns the fixed charge for one calendar day, with GST
// applied when the provider is GST-registered.
func (p *Provider) DailyChargeFor() float64 {
	if p.GSTApplicable {
		return p.DailyCharge * GSTMultiplier
	}
	return p.DailyCharge
}

// Weekday maps time.Weekday to the 0=Monday..6=Sunday convention used by
// TimeRange.Days.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

var allDays = []int{0, 1, 2, 3, 4, 5, 6}
var weekdays = []int{0, 1, 2, 3, 4}
var weekendDays = []int{5, 6}

// NewTwoTierProvider builds a provider with a flat peak (07-21 every day)
// and off-peak (21-07 every day) schedule and a single buyback price.
//
// Deprecated: legacy alias for configurations predating the N-period model.
// New code should declare TimePeriods directly.
func NewTwoTierProvider(name string, peakBuy, offpeakBuy, solarBuyback, dailyCharge float64) *Provider {
	return &Provider{
		Name:        name,
		DailyCharge: dailyCharge,
		TimePeriods: []TimeOfUsePeriod{
			{
				Name:         "peak",
				BuyPrice:     peakBuy,
				BuybackPrice: solarBuyback,
				TimeRanges:   []TimeRange{{StartHour: 7, EndHour: 21, Days: allDays}},
			},
			{
				Name:         "offpeak",
				BuyPrice:     offpeakBuy,
				BuybackPrice: solarBuyback,
				TimeRanges:   []TimeRange{{StartHour: 21, EndHour: 7, Days: allDays}},
			},
		},
	}
}

// NewThreeTierProvider builds a peak/offpeak/night provider:
// peak 07-11 and 17-21 on weekdays; offpeak 11-17 and 21-23 on weekdays
// plus 07-23 on weekends; night 23-07 every day.
//
// Deprecated: legacy alias for configurations predating the N-period model.
// New code should declare TimePeriods directly.
func NewThreeTierProvider(name string, peakBuy, offpeakBuy, nightBuy, peakBuyback, offpeakBuyback, nightBuyback, dailyCharge float64) *Provider {
	return &Provider{
		Name:        name,
		DailyCharge: dailyCharge,
		TimePeriods: []TimeOfUsePeriod{
			{
				Name:         "peak",
				BuyPrice:     peakBuy,
				BuybackPrice: peakBuyback,
				TimeRanges: []TimeRange{
					{StartHour: 7, EndHour: 11, Days: weekdays},
					{StartHour: 17, EndHour: 21, Days: weekdays},
				},
			},
			{
				Name:         "offpeak",
				BuyPrice:     offpeakBuy,
				BuybackPrice: offpeakBuyback,
				TimeRanges: []TimeRange{
					{StartHour: 11, EndHour: 17, Days: weekdays},
					{StartHour: 21, EndHour: 23, Days: weekdays},
					{StartHour: 7, EndHour: 23, Days: weekendDays},
				},
			},
			{
				Name:         "night",
				BuyPrice:     nightBuy,
				BuybackPrice: nightBuyback,
				TimeRanges:   []TimeRange{{StartHour: 23, EndHour: 7, Days: allDays}},
			},
		},
	}
}
