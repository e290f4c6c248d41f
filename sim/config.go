package sim

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// WorkCellConfig describes the machines making up the simulated cell.
// Efficiencies are given in percent (0 < e <= 100).
type WorkCellConfig struct {
	FirstMachineID           string  `yaml:"first_machine_id"`
	MachineCount             int     `yaml:"machine_count"`
	DefaultMachineEfficiency float64 `yaml:"default_machine_efficiency"`
}

// ShiftDef is one configured working period. End may be <= start,
// denoting wraparound past midnight.
type ShiftDef struct {
	Name           string `yaml:"name"`
	StartTime      string `yaml:"start_time"` // "HH:MM"
	EndTime        string `yaml:"end_time"`   // "HH:MM"
	ActiveMachines int    `yaml:"active_machines"`
}

// ShiftsConfig holds the shift schedule and break parameters shared by
// every shift.
type ShiftsConfig struct {
	ShiftSchedule            []ShiftDef `yaml:"shift_schedule"`
	BreakDurationMinutes     int        `yaml:"break_duration_minutes"`
	LunchDurationMinutes     int        `yaml:"lunch_duration_minutes"`
	BreakAndLunchTimes       []int      `yaml:"break_and_lunch_times"` // hour offsets from shift start
	ShiftStartupDelaySeconds []float64  `yaml:"shift_startup_delay_seconds"`
}

// OrderConfig sets the production target and base process parameters.
type OrderConfig struct {
	TotalParts           int     `yaml:"total_parts"`
	BaseCycleTimeSeconds float64 `yaml:"base_cycle_time_seconds"`
	ProductID            string  `yaml:"product_id"`
	ErrorPercentage      float64 `yaml:"error_percentage"`
}

// OperatorsConfig sets operator handling-time parameters.
// Efficiency and variation are given in percent.
type OperatorsConfig struct {
	DefaultOperatorEfficiency             float64 `yaml:"default_operator_efficiency"`
	BaseHandlingTimeSeconds               float64 `yaml:"base_handling_time_seconds"`
	ResumeDelaySeconds                    float64 `yaml:"resume_delay_seconds"`
	OperatorEfficiencyVariationPercentage float64 `yaml:"operator_efficiency_variation_percentage"`
}

// OutputConfig names the generated artifact.
type OutputConfig struct {
	Filename string `yaml:"filename"`
}

// Config represents the full configuration document. All top-level
// sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	WorkCell            WorkCellConfig     `yaml:"work_cell"`
	MachineEfficiencies map[string]float64 `yaml:"machine_efficiencies"` // percent, per machine id
	Shifts              ShiftsConfig       `yaml:"shifts"`
	Order               OrderConfig        `yaml:"order"`
	Operators           OperatorsConfig    `yaml:"operators"`
	Output              OutputConfig       `yaml:"output"`
}

// DefaultConfig returns the built-in configuration used when no config
// file is supplied. The values model a six-machine cell running three
// shifts around the clock.
func DefaultConfig() *Config {
	return &Config{
		WorkCell: WorkCellConfig{
			FirstMachineID:           "M001",
			MachineCount:             6,
			DefaultMachineEfficiency: 95.0,
		},
		MachineEfficiencies: map[string]float64{},
		Shifts: ShiftsConfig{
			ShiftSchedule: []ShiftDef{
				{Name: "1st", StartTime: "08:00", EndTime: "16:00", ActiveMachines: 6},
				{Name: "2nd", StartTime: "16:00", EndTime: "00:00", ActiveMachines: 4},
				{Name: "3rd", StartTime: "00:00", EndTime: "08:00", ActiveMachines: 3},
			},
			BreakDurationMinutes:     10,
			LunchDurationMinutes:     30,
			BreakAndLunchTimes:       []int{2, 4, 6},
			ShiftStartupDelaySeconds: []float64{30, 180},
		},
		Order: OrderConfig{
			TotalParts:           2000,
			BaseCycleTimeSeconds: 74.0,
			ProductID:            "111111111",
			ErrorPercentage:      5.0,
		},
		Operators: OperatorsConfig{
			DefaultOperatorEfficiency:             90.0,
			BaseHandlingTimeSeconds:               5.0,
			ResumeDelaySeconds:                    120,
			OperatorEfficiencyVariationPercentage: 5.0,
		},
		Output: OutputConfig{
			Filename: "production_data.csv",
		},
	}
}

// LoadConfig reads a YAML configuration file, layering it over the
// built-in defaults. A missing file is not an error: the defaults are
// returned with a warning. Unknown fields and malformed values are.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Warnf("config file %s not found, using default values", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	logrus.Infof("loading configuration from %s", path)

	// Strict field checking: typos must cause errors, not silent defaults.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate fails fast on configuration that would make the run
// diverge or loop indefinitely. Percent fields are checked before
// normalization.
func (c *Config) Validate() error {
	if c.WorkCell.MachineCount <= 0 {
		return fmt.Errorf("work_cell.machine_count must be positive, got %d", c.WorkCell.MachineCount)
	}
	if c.WorkCell.DefaultMachineEfficiency <= 0 || c.WorkCell.DefaultMachineEfficiency > 100 {
		return fmt.Errorf("work_cell.default_machine_efficiency must be in (0, 100], got %v", c.WorkCell.DefaultMachineEfficiency)
	}
	for id, eff := range c.MachineEfficiencies {
		if eff <= 0 || eff > 100 {
			return fmt.Errorf("machine_efficiencies[%s] must be in (0, 100], got %v", id, eff)
		}
	}
	if len(c.Shifts.ShiftSchedule) == 0 {
		return fmt.Errorf("shifts.shift_schedule must not be empty")
	}
	for _, def := range c.Shifts.ShiftSchedule {
		if _, err := parseClock(def.StartTime); err != nil {
			return fmt.Errorf("shift %q start_time: %w", def.Name, err)
		}
		if _, err := parseClock(def.EndTime); err != nil {
			return fmt.Errorf("shift %q end_time: %w", def.Name, err)
		}
		if def.ActiveMachines < 0 {
			return fmt.Errorf("shift %q active_machines must not be negative, got %d", def.Name, def.ActiveMachines)
		}
	}
	if len(c.Shifts.ShiftStartupDelaySeconds) != 2 {
		return fmt.Errorf("shifts.shift_startup_delay_seconds must be a [min, max] pair, got %v", c.Shifts.ShiftStartupDelaySeconds)
	}
	if c.Shifts.ShiftStartupDelaySeconds[0] > c.Shifts.ShiftStartupDelaySeconds[1] {
		return fmt.Errorf("shifts.shift_startup_delay_seconds min %v exceeds max %v",
			c.Shifts.ShiftStartupDelaySeconds[0], c.Shifts.ShiftStartupDelaySeconds[1])
	}
	if c.Order.TotalParts <= 0 {
		return fmt.Errorf("order.total_parts must be positive, got %d", c.Order.TotalParts)
	}
	if c.Order.BaseCycleTimeSeconds <= 0 {
		return fmt.Errorf("order.base_cycle_time_seconds must be positive, got %v", c.Order.BaseCycleTimeSeconds)
	}
	if c.Order.ErrorPercentage < 0 || c.Order.ErrorPercentage > 100 {
		return fmt.Errorf("order.error_percentage must be in [0, 100], got %v", c.Order.ErrorPercentage)
	}
	if c.Operators.DefaultOperatorEfficiency <= 0 || c.Operators.DefaultOperatorEfficiency > 100 {
		return fmt.Errorf("operators.default_operator_efficiency must be in (0, 100], got %v", c.Operators.DefaultOperatorEfficiency)
	}
	if c.Operators.BaseHandlingTimeSeconds < 0 {
		return fmt.Errorf("operators.base_handling_time_seconds must not be negative, got %v", c.Operators.BaseHandlingTimeSeconds)
	}
	if c.Operators.ResumeDelaySeconds < 0 {
		return fmt.Errorf("operators.resume_delay_seconds must not be negative, got %v", c.Operators.ResumeDelaySeconds)
	}
	if c.Operators.OperatorEfficiencyVariationPercentage < 0 || c.Operators.OperatorEfficiencyVariationPercentage > 100 {
		return fmt.Errorf("operators.operator_efficiency_variation_percentage must be in [0, 100], got %v", c.Operators.OperatorEfficiencyVariationPercentage)
	}
	return nil
}
