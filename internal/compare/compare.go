// Package compare runs the same input series through every configured
// provider and ranks the outcomes. Each provider gets a fresh battery and an
// independent engine run, so one provider's failure or state can never leak
// into another's results.
package compare

import (
	"errors"
	"fmt"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/analysis"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/simulate"
)

var (
	ErrNoProviders     = errors.New("no providers configured")
	ErrMissingProvider = errors.New("provider not found")
)

// Options tunes a comparison run.
type Options struct {
	// Battery is simulated identically for every provider; nil means the
	// no-battery baseline. InitialSOC is the starting state of charge each
	// provider's fresh battery is initialized to.
	Battery    *model.BatteryParams
	InitialSOC float64

	// Window is the optional inclusive date range for the summaries. The
	// full series is still simulated so battery state evolves correctly
	// before the window opens.
	Window analysis.Window
}

// ProviderFailure records a provider whose simulation failed. Failures are
// reported alongside the surviving results instead of aborting the run.
type ProviderFailure struct {
	Provider string
	Err      error
}

// Outcome is the immutable result of one comparison run.
type Outcome struct {
	Results  map[string]*simulate.Result
	Ranked   []analysis.RankedSummary
	Failures []ProviderFailure
}

// Run simulates every provider over the series and returns per-provider
// ledgers plus a ranked summary table, cheapest first. Deterministic: the
// same series and providers always produce the same outcome.
func Run(series model.Series, providers []*model.Provider, opts Options) (*Outcome, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	if len(series) == 0 {
		return nil, simulate.ErrEmptySeries
	}

	engine := simulate.New()
	outcome := &Outcome{Results: make(map[string]*simulate.Result, len(providers))}
	summaries := make([]analysis.ProviderSummary, 0, len(providers))

	for _, provider := range providers {
		if err := provider.Validate(); err != nil {
			outcome.Failures = append(outcome.Failures, ProviderFailure{Provider: provider.Name, Err: err})
			continue
		}

		batt, err := batteryFor(opts)
		if err != nil {
			return nil, err
		}

		result, err := engine.Run(series, provider, batt)
		if err != nil {
			outcome.Failures = append(outcome.Failures, ProviderFailure{Provider: provider.Name, Err: err})
			continue
		}

		outcome.Results[provider.Name] = result
		summaries = append(summaries, analysis.Summarize(result, opts.Window))
	}

	outcome.Ranked = analysis.Rank(summaries)
	return outcome, nil
}

// Lookup finds a provider by name.
func Lookup(providers []*model.Provider, name string) (*model.Provider, error) {
	for _, p := range providers {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMissingProvider, name)
}

func batteryFor(opts Options) (*model.Battery, error) {
	if opts.Battery == nil {
		return model.NoBattery(), nil
	}
	batt, err := model.NewBattery(*opts.Battery, opts.InitialSOC)
	if err != nil {
		return nil, fmt.Errorf("battery config invalid: %w", err)
	}
	return batt, nil
}
