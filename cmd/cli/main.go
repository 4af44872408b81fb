package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/analysis"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/compare"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/config"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/data"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/export"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/simulate"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "compare":
		cmdCompare(os.Args[2:])
	case "simulate":
		cmdSimulate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli compare --csv power_data.csv --providers providers.json --export results/comparison.xlsx")
	fmt.Println("  cli compare --config examples/config.yaml --ledger-dir results/")
	fmt.Println("  cli simulate --csv power_data.csv --capacity 10 --efficiency 0.95 --out results/dispatch.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - compare ranks every provider by total cost over the same series")
	fmt.Println("  - simulate runs one tariff with and without the battery and reports payback")
	fmt.Println("  - omit --providers to use the built-in sample tariffs")
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (flags override file values)")
	csvPath := fs.String("csv", "", "Path to power readings CSV")
	providersPath := fs.String("providers", "", "Path to providers JSON (empty=built-in samples)")
	pvCol := fs.String("pv-column", "", "PV power column name (empty=auto-detect)")
	consCol := fs.String("consumption-column", "", "Consumption power column name (empty=auto-detect)")
	startDate := fs.String("start", "", "Analysis window start, YYYY-MM-DD inclusive")
	endDate := fs.String("end", "", "Analysis window end, YYYY-MM-DD inclusive")
	ledgerDir := fs.String("ledger-dir", "", "Optional: write per-provider ledger CSVs here")
	exportPath := fs.String("export", "", "Optional: write an Excel workbook here")
	_ = fs.Parse(args)

	cfg := &config.Config{}
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	if *csvPath != "" {
		cfg.Data.CSV = *csvPath
	}
	if *pvCol != "" {
		cfg.Data.PVColumn = *pvCol
	}
	if *consCol != "" {
		cfg.Data.ConsumptionColumn = *consCol
	}
	if *providersPath != "" {
		cfg.ProvidersFile = *providersPath
	}
	if *startDate != "" {
		cfg.Analysis.StartDate = *startDate
	}
	if *endDate != "" {
		cfg.Analysis.EndDate = *endDate
	}

	if cfg.Data.CSV == "" {
		fmt.Println("--csv (or data.csv in the config file) is required")
		os.Exit(2)
	}

	series := loadSeries(cfg)

	providers := data.SampleProviders()
	if cfg.ProvidersFile != "" {
		loaded, err := data.LoadProvidersJSON(cfg.ProvidersFile)
		if err != nil {
			panic(err)
		}
		providers = loaded
	}

	start, end, err := cfg.Analysis.Window()
	if err != nil {
		panic(err)
	}

	opts := compare.Options{Window: analysis.Window{Start: start, End: end}}
	if cfg.Battery.CapacityKWh > 0 {
		params := cfg.Battery.ToModelParams()
		opts.Battery = &params
		opts.InitialSOC = cfg.Battery.InitialSOC
	}

	outcome, err := compare.Run(series, providers, opts)
	if err != nil {
		panic(err)
	}

	printRankings(outcome)

	if *ledgerDir != "" {
		if err := os.MkdirAll(*ledgerDir, 0o755); err != nil {
			panic(err)
		}
		for name, result := range outcome.Results {
			path := filepath.Join(*ledgerDir, ledgerFileName(name))
			if err := simulate.WriteLedgerCSV(path, result.Ledger); err != nil {
				panic(err)
			}
			fmt.Printf("Wrote %d rows to %s\n", len(result.Ledger), path)
		}
	}

	if *exportPath != "" {
		if err := os.MkdirAll(filepath.Dir(*exportPath), 0o755); err != nil {
			panic(err)
		}
		if err := export.WriteWorkbook(*exportPath, outcome); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote workbook to %s\n", *exportPath)
	}
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	csvPath := fs.String("csv", "", "Path to power readings CSV")
	pvCol := fs.String("pv-column", "", "PV power column name (empty=auto-detect)")
	consCol := fs.String("consumption-column", "", "Consumption power column name (empty=auto-detect)")

	peakBuy := fs.Float64("buy-price-peak", 0.30, "Peak import price per kWh")
	offpeakBuy := fs.Float64("buy-price-offpeak", 0.15, "Off-peak import price per kWh")
	sellPrice := fs.Float64("sell-price", 0.08, "Export buyback price per kWh")
	peakStart := fs.Int("peak-start", 7, "Peak window start hour (0-23)")
	peakEnd := fs.Int("peak-end", 21, "Peak window end hour (0-23)")
	dailyCharge := fs.Float64("daily-charge", 0.0, "Fixed daily charge")
	gst := fs.Bool("gst", false, "Apply GST to purchases and the daily charge")

	capacity := fs.Float64("capacity", 10, "Battery capacity in kWh (0=no battery)")
	efficiency := fs.Float64("efficiency", 0.95, "Round-trip efficiency (0-1]")
	maxCharge := fs.Float64("max-charge", 5, "Max charge rate in kW")
	maxDischarge := fs.Float64("max-discharge", 5, "Max discharge rate in kW")
	initialSOC := fs.Float64("initial-soc", 0, "Initial state of charge (0-1)")
	batteryCost := fs.Float64("battery-cost", 0, "Installed system cost, for payback (0=skip)")

	outPath := fs.String("out", "", "Optional: write the dispatch ledger CSV here")
	_ = fs.Parse(args)

	if *csvPath == "" {
		fmt.Println("--csv is required")
		os.Exit(2)
	}

	cfg := &config.Config{}
	cfg.Data.CSV = *csvPath
	cfg.Data.PVColumn = *pvCol
	cfg.Data.ConsumptionColumn = *consCol
	series := loadSeries(cfg)

	everyDay := []int{0, 1, 2, 3, 4, 5, 6}
	provider := &model.Provider{
		Name:          "simulated tariff",
		DailyCharge:   *dailyCharge,
		GSTApplicable: *gst,
		TimePeriods: []model.TimeOfUsePeriod{
			{
				Name:         "peak",
				BuyPrice:     *peakBuy,
				BuybackPrice: *sellPrice,
				TimeRanges:   []model.TimeRange{{StartHour: *peakStart, EndHour: *peakEnd, Days: everyDay}},
			},
			{
				Name:         "offpeak",
				BuyPrice:     *offpeakBuy,
				BuybackPrice: *sellPrice,
				TimeRanges:   []model.TimeRange{{StartHour: *peakEnd, EndHour: *peakStart, Days: everyDay}},
			},
		},
	}
	if err := provider.Validate(); err != nil {
		panic(err)
	}

	params := model.BatteryParams{
		CapacityKWh:    *capacity,
		Efficiency:     *efficiency,
		MaxChargeKW:    *maxCharge,
		MaxDischargeKW: *maxDischarge,
	}
	batt, err := model.NewBattery(params, *initialSOC)
	if err != nil {
		panic(err)
	}

	engine := simulate.New()
	withBattery, err := engine.Run(series, provider, batt)
	if err != nil {
		panic(err)
	}
	baseline, err := engine.Run(series, provider, model.NoBattery())
	if err != nil {
		panic(err)
	}

	summary := analysis.Summarize(withBattery, analysis.Window{})
	base := analysis.Summarize(baseline, analysis.Window{})
	econ := analysis.CompareEconomics(withBattery, baseline, *capacity, *batteryCost)

	fmt.Printf("Simulated %d timesteps (%.0f-minute intervals) over %d days\n",
		summary.TotalTimesteps, summary.IntervalMinutes, summary.AnalysisDays)
	fmt.Printf("Consumption %.1f kWh, generation %.1f kWh\n",
		summary.TotalConsumptionKWh, summary.TotalGenerationKWh)
	fmt.Println("")
	fmt.Printf("Cost with battery:    $%.2f\n", econ.CostWithBattery)
	fmt.Printf("Cost without battery: $%.2f\n", econ.CostWithoutBattery)
	fmt.Printf("Savings:              $%.2f ($%.2f/year)\n", econ.Savings, econ.AnnualSavings)
	if *batteryCost > 0 {
		if math.IsInf(econ.PaybackYears, 1) {
			fmt.Println("Payback:              never (no savings)")
		} else {
			fmt.Printf("Payback:              %.1f years\n", econ.PaybackYears)
		}
	}
	fmt.Println("")
	fmt.Printf("Battery charged %.1f kWh, discharged %.1f kWh (%.1f equivalent cycles)\n",
		econ.TotalChargedKWh, econ.TotalDischargedKWh, econ.EquivalentCycles)
	fmt.Printf("Grid purchases %.1f kWh (baseline %.1f), sales %.1f kWh (baseline %.1f)\n",
		summary.TotalGridPurchaseKWh, base.TotalGridPurchaseKWh,
		summary.TotalGridSaleKWh, base.TotalGridSaleKWh)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		if err := simulate.WriteLedgerCSV(*outPath, withBattery.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(withBattery.Ledger), *outPath)
	}
}

func loadSeries(cfg *config.Config) model.Series {
	frame, err := data.LoadCSV(cfg.Data.CSV)
	if err != nil {
		panic(err)
	}
	pvColumn, consumptionColumn, err := data.DetectColumns(frame, cfg.Data.PVColumn, cfg.Data.ConsumptionColumn)
	if err != nil {
		panic(err)
	}
	series, err := frame.Series(pvColumn, consumptionColumn)
	if err != nil {
		panic(err)
	}
	return series
}

func printRankings(outcome *compare.Outcome) {
	fmt.Printf("%-4s %-28s %-10s %-10s %-10s %-10s %-10s\n",
		"rank", "provider", "total$", "energy$", "daily$", "$/day", "$/kWh")
	for _, r := range outcome.Ranked {
		fmt.Printf("%-4d %-28s %-10.2f %-10.2f %-10.2f %-10.2f %-10.4f\n",
			r.Rank,
			r.Provider,
			r.TotalCost,
			r.TotalEnergyCost,
			r.TotalDailyCharges,
			r.AvgDailyCost,
			r.AvgCostPerKWh,
		)
	}
	if len(outcome.Ranked) > 1 {
		best := outcome.Ranked[0]
		fmt.Printf("\nCheapest: %s, saving $%.2f (%.1f%%) vs the most expensive\n",
			best.Provider, best.SavingsVsMostExpensive, best.SavingsPercent)
	}
	for _, f := range outcome.Failures {
		fmt.Printf("skipped %s: %v\n", f.Provider, f.Err)
	}
}

func ledgerFileName(provider string) string {
	s := strings.ToLower(provider)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	return s + "_ledger.csv"
}
