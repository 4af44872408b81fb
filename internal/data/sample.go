package data

import "github.com/bstlaurentnz/energy-provider-comparison/internal/model"

var everyDay = []int{0, 1, 2, 3, 4, 5, 6}

// SampleProviders returns the built-in demonstration tariffs used when no
// provider configuration is supplied.
func SampleProviders() []*model.Provider {
	return []*model.Provider{
		{
			Name:        "PowerCorp Standard",
			DailyCharge: 1.20,
			TimePeriods: []model.TimeOfUsePeriod{
				{
					Name:         "peak",
					BuyPrice:     0.28,
					BuybackPrice: 0.08,
					TimeRanges:   []model.TimeRange{{StartHour: 7, EndHour: 21, Days: everyDay}},
				},
				{
					Name:         "offpeak",
					BuyPrice:     0.12,
					BuybackPrice: 0.08,
					TimeRanges: []model.TimeRange{
						{StartHour: 21, EndHour: 24, Days: everyDay},
						{StartHour: 0, EndHour: 7, Days: everyDay},
					},
				},
			},
		},
		{
			Name:          "GreenEnergy Plus",
			DailyCharge:   0.80,
			GSTApplicable: true,
			TimePeriods: []model.TimeOfUsePeriod{
				{
					Name:         "peak",
					BuyPrice:     0.32,
					BuybackPrice: 0.12,
					TimeRanges:   []model.TimeRange{{StartHour: 7, EndHour: 21, Days: everyDay}},
				},
				{
					Name:         "offpeak",
					BuyPrice:     0.08,
					BuybackPrice: 0.12,
					TimeRanges: []model.TimeRange{
						{StartHour: 21, EndHour: 24, Days: everyDay},
						{StartHour: 0, EndHour: 7, Days: everyDay},
					},
				},
			},
		},
		{
			Name:        "EcoUtility Premium",
			DailyCharge: 1.50,
			TimePeriods: []model.TimeOfUsePeriod{
				{
					Name:         "peak",
					BuyPrice:     0.26,
					BuybackPrice: 0.10,
					TimeRanges:   []model.TimeRange{{StartHour: 7, EndHour: 21, Days: everyDay}},
				},
				{
					Name:         "offpeak",
					BuyPrice:     0.15,
					BuybackPrice: 0.10,
					TimeRanges: []model.TimeRange{
						{StartHour: 21, EndHour: 24, Days: everyDay},
						{StartHour: 0, EndHour: 7, Days: everyDay},
					},
				},
			},
		},
	}
}
