package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration shape (YAML).
type Config struct {
	Data DataConfig `yaml:"data"`

	// ProvidersFile points at the providers JSON document. Empty means use
	// the built-in sample providers.
	ProvidersFile string `yaml:"providers_file"`

	// Optional: load battery parameters from a separate YAML file. If both
	// BatteryFile and Battery are provided, Battery overrides BatteryFile.
	BatteryFile string        `yaml:"battery_file"`
	Battery     BatteryConfig `yaml:"battery"`

	Analysis AnalysisConfig `yaml:"analysis"`
}

type DataConfig struct {
	CSV               string `yaml:"csv"`
	PVColumn          string `yaml:"pv_column"`
	ConsumptionColumn string `yaml:"consumption_column"`
}

type BatteryConfig struct {
	Name           string  `yaml:"name"`
	CapacityKWh    float64 `yaml:"capacity_kwh"`
	Efficiency     float64 `yaml:"efficiency"`
	MaxChargeKW    float64 `yaml:"max_charge_kw"`
	MaxDischargeKW float64 `yaml:"max_discharge_kw"`
	InitialSOC     float64 `yaml:"initial_soc"`
	SystemCost     float64 `yaml:"system_cost"`
}

// AnalysisConfig bounds the summary window. Dates are YYYY-MM-DD and
// inclusive; empty means unbounded.
type AnalysisConfig struct {
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If battery_file is set, load it and merge in any explicit overrides
	// from c.Battery.
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer interpreting relative paths as relative to the config file
			// directory, falling back to the path as given.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := loadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	// A zero-capacity battery (the no-battery baseline) is valid; anything
	// else must construct cleanly.
	if c.Battery.CapacityKWh != 0 {
		if _, err := model.NewBattery(c.Battery.ToModelParams(), c.Battery.InitialSOC); err != nil {
			return fmt.Errorf("battery config invalid: %w", err)
		}
	}
	if _, _, err := c.Analysis.Window(); err != nil {
		return err
	}
	return nil
}

func (b BatteryConfig) ToModelParams() model.BatteryParams {
	return model.BatteryParams{
		CapacityKWh:    b.CapacityKWh,
		Efficiency:     b.Efficiency,
		MaxChargeKW:    b.MaxChargeKW,
		MaxDischargeKW: b.MaxDischargeKW,
	}
}

// Window parses the analysis date bounds.
func (a AnalysisConfig) Window() (start, end time.Time, err error) {
	if a.StartDate != "" {
		start, err = time.Parse("2006-01-02", a.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("analysis.start_date: %w", err)
		}
	}
	if a.EndDate != "" {
		end, err = time.Parse("2006-01-02", a.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("analysis.end_date: %w", err)
		}
	}
	return start, end, nil
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

func loadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base. This is
// used when loading a battery file and then applying request overrides.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.Efficiency != 0 {
		out.Efficiency = override.Efficiency
	}
	if override.MaxChargeKW != 0 {
		out.MaxChargeKW = override.MaxChargeKW
	}
	if override.MaxDischargeKW != 0 {
		out.MaxDischargeKW = override.MaxDischargeKW
	}
	if override.InitialSOC != 0 {
		out.InitialSOC = override.InitialSOC
	}
	if override.SystemCost != 0 {
		out.SystemCost = override.SystemCost
	}
	return out
}
