// Package export writes comparison outcomes to an Excel workbook: one
// Summary sheet with the ranked provider table, plus one detailed ledger
// sheet per provider.
package export

import (
	"fmt"
	"sort"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/analysis"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/compare"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/simulate"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// maxSheetName is Excel's hard sheet-name length limit.
const maxSheetName = 31

func WriteWorkbook(path string, outcome *compare.Outcome) error {
	wb := excelize.NewFile()
	defer wb.Close()

	wb.SetSheetName("Sheet1", summarySheet)
	if err := writeSummarySheet(wb, outcome.Ranked); err != nil {
		return err
	}

	// Sheets in rank order so the workbook reads cheapest-first.
	used := map[string]bool{summarySheet: true}
	for _, ranked := range outcome.Ranked {
		result, ok := outcome.Results[ranked.Provider]
		if !ok {
			continue
		}
		name := sheetName(ranked.Provider, used)
		if _, err := wb.NewSheet(name); err != nil {
			return err
		}
		if err := writeLedgerSheet(wb, name, result); err != nil {
			return err
		}
	}

	return wb.SaveAs(path)
}

func writeSummarySheet(wb *excelize.File, ranked []analysis.RankedSummary) error {
	header := []interface{}{
		"rank", "provider", "start_date", "end_date", "analysis_days",
		"total_cost", "total_energy_cost", "total_daily_charges",
		"avg_daily_cost", "avg_cost_per_kwh_consumed",
		"total_consumption_kwh", "total_generation_kwh",
		"total_grid_purchase_kwh", "total_grid_sale_kwh",
		"daily_charge", "savings_vs_most_expensive", "savings_percent",
	}
	if err := writeRow(wb, summarySheet, 1, header); err != nil {
		return err
	}

	periodColumns := map[string]bool{}
	for i, s := range ranked {
		row := []interface{}{
			s.Rank, s.Provider,
			s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02"),
			s.AnalysisDays,
			s.TotalCost, s.TotalEnergyCost, s.TotalDailyCharges,
			s.AvgDailyCost, s.AvgCostPerKWh,
			s.TotalConsumptionKWh, s.TotalGenerationKWh,
			s.TotalGridPurchaseKWh, s.TotalGridSaleKWh,
			s.DailyCharge, s.SavingsVsMostExpensive, s.SavingsPercent,
		}
		if err := writeRow(wb, summarySheet, i+2, row); err != nil {
			return err
		}
		for _, p := range s.Periods {
			periodColumns[p.Name] = true
		}
	}

	// Per-period kWh breakdown appended after the fixed columns, one pair
	// of columns per period name seen across providers.
	names := make([]string, 0, len(periodColumns))
	for name := range periodColumns {
		names = append(names, name)
	}
	sort.Strings(names)

	col := len(header) + 1
	for _, name := range names {
		if err := setCell(wb, summarySheet, col, 1, name+"_purchases_kwh"); err != nil {
			return err
		}
		if err := setCell(wb, summarySheet, col+1, 1, name+"_sales_kwh"); err != nil {
			return err
		}
		for i, s := range ranked {
			for _, p := range s.Periods {
				if p.Name != name {
					continue
				}
				if err := setCell(wb, summarySheet, col, i+2, p.PurchasedKWh); err != nil {
					return err
				}
				if err := setCell(wb, summarySheet, col+1, i+2, p.SoldKWh); err != nil {
					return err
				}
			}
		}
		col += 2
	}
	return nil
}

func writeLedgerSheet(wb *excelize.File, sheet string, result *simulate.Result) error {
	header := []interface{}{
		"timestamp", "period_name", "pv_energy_kwh", "consumption_energy_kwh",
		"net_energy_kwh", "action", "battery_charge_kwh", "battery_discharge_kwh",
		"battery_level_kwh", "grid_purchase_kwh", "grid_sale_kwh",
		"buy_price", "buyback_price", "energy_cost", "cum_energy_cost",
	}
	if err := writeRow(wb, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range result.Ledger {
		row := []interface{}{
			r.Timestamp.Format("2006-01-02 15:04:05"), r.PeriodName,
			r.PVEnergyKWh, r.ConsumptionEnergyKWh,
			r.NetEnergyKWh, string(r.Action), r.BatteryChargeKWh, r.BatteryDischargeKWh,
			r.BatteryLevelKWh, r.GridPurchaseKWh, r.GridSaleKWh,
			r.BuyPrice, r.BuybackPrice, r.EnergyCost, r.CumEnergyCost,
		}
		if err := writeRow(wb, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(wb *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, cell, &values)
}

func setCell(wb *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return wb.SetCellValue(sheet, cell, value)
}

// sheetName fits a provider name into Excel's sheet-name length limit,
// truncating on rune boundaries, and disambiguates names that collide after
// truncation (or with the Summary sheet).
func sheetName(provider string, used map[string]bool) string {
	name := truncateRunes(provider, maxSheetName)
	for i := 2; used[name]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(provider, maxSheetName-len(suffix)) + suffix
	}
	used[name] = true
	return name
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
