package simulate

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"timestamp",
		"interval_minutes",
		"pv_power_kw",
		"consumption_power_kw",
		"pv_energy_kwh",
		"consumption_energy_kwh",
		"net_energy_kwh",
		"action",
		"battery_charge_kwh",
		"battery_discharge_kwh",
		"battery_level_kwh",
		"battery_soc",
		"grid_purchase_kwh",
		"grid_sale_kwh",
		"buy_price",
		"buyback_price",
		"period_name",
		"energy_cost",
		"cum_energy_cost",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.Timestamp),
			fmtFloat(r.IntervalMinutes),
			fmtFloat(r.PVPowerKW),
			fmtFloat(r.ConsumptionPowerKW),
			fmtFloat(r.PVEnergyKWh),
			fmtFloat(r.ConsumptionEnergyKWh),
			fmtFloat(r.NetEnergyKWh),
			string(r.Action),
			fmtFloat(r.BatteryChargeKWh),
			fmtFloat(r.BatteryDischargeKWh),
			fmtFloat(r.BatteryLevelKWh),
			fmtFloat(r.BatterySOC),
			fmtFloat(r.GridPurchaseKWh),
			fmtFloat(r.GridSaleKWh),
			fmtFloat(r.BuyPrice),
			fmtFloat(r.BuybackPrice),
			r.PeriodName,
			fmtFloat(r.EnergyCost),
			fmtFloat(r.CumEnergyCost),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
