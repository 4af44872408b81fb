package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "config.yaml", `
data:
  csv: power_data.csv
  pv_column: sensor.pv_power
  consumption_column: sensor.load
providers_file: providers.json
battery:
  name: home
  capacity_kwh: 10
  efficiency: 0.95
  max_charge_kw: 5
  max_discharge_kw: 5
  initial_soc: 0.5
  system_cost: 8000
analysis:
  start_date: "2024-01-01"
  end_date: "2024-01-31"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "power_data.csv", cfg.Data.CSV)
	assert.Equal(t, "sensor.pv_power", cfg.Data.PVColumn)
	assert.Equal(t, "providers.json", cfg.ProvidersFile)
	assert.Equal(t, 10.0, cfg.Battery.CapacityKWh)
	assert.Equal(t, 8000.0, cfg.Battery.SystemCost)

	start, end, err := cfg.Analysis.Window()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), end)

	params := cfg.Battery.ToModelParams()
	assert.Equal(t, 0.95, params.Efficiency)
}

func TestLoadInvalidBattery(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "config.yaml", `
battery:
  capacity_kwh: 10
  efficiency: 1.4
  max_charge_kw: 5
  max_discharge_kw: 5
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "battery config invalid")
}

func TestLoadZeroCapacityBatteryIsValid(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "config.yaml", `
data:
  csv: power_data.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Battery.CapacityKWh)
}

func TestLoadInvalidWindow(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "config.yaml", `
analysis:
  start_date: "01/02/2024"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date")
}

func TestBatteryFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "tesla.yaml", `
battery:
  name: powerwall
  capacity_kwh: 13.5
  efficiency: 0.9
  max_charge_kw: 5
  max_discharge_kw: 5
  system_cost: 12000
`)
	path := writeTemp(t, dir, "config.yaml", `
battery_file: tesla.yaml
battery:
  capacity_kwh: 27
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "powerwall", cfg.Battery.Name)
	assert.Equal(t, 27.0, cfg.Battery.CapacityKWh, "inline value overrides the file")
	assert.Equal(t, 0.9, cfg.Battery.Efficiency)
	assert.Equal(t, 12000.0, cfg.Battery.SystemCost)
}

func TestMergeBattery(t *testing.T) {
	base := BatteryConfig{Name: "a", CapacityKWh: 10, Efficiency: 0.9, MaxChargeKW: 3, MaxDischargeKW: 3}
	override := BatteryConfig{CapacityKWh: 20, InitialSOC: 0.4}

	merged := MergeBattery(base, override)
	assert.Equal(t, "a", merged.Name)
	assert.Equal(t, 20.0, merged.CapacityKWh)
	assert.Equal(t, 0.9, merged.Efficiency)
	assert.Equal(t, 0.4, merged.InitialSOC)
}
