// Package config loads the deployment configuration: which GPIO lines play
// which role, how many cells are fitted, and the loop timing.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PinsCfg names the GPIO line for each role. Names are resolved through the
// host GPIO registry, so BCM names like "GPIO2" and aliases both work.
type PinsCfg struct {
	SerialIn     string `yaml:"serial_in"`
	ShiftClock   string `yaml:"shift_clock"`
	Clear        string `yaml:"clear"`
	LatchClock   string `yaml:"latch_clock"`
	OutputEnable string `yaml:"output_enable"`

	Button1    string `yaml:"button1"`
	Button2    string `yaml:"button2"`
	Indicator1 string `yaml:"indicator1"`
	Indicator2 string `yaml:"indicator2"`
}

// TimingCfg holds the loop delays in integer units convenient for YAML.
type TimingCfg struct {
	SettleUs   int `yaml:"settle_us"`   // per-edge settle on the chain
	PollMs     int `yaml:"poll_ms"`     // idle sampling interval
	HoldMs     int `yaml:"hold_ms"`     // actuation pulse length
	CooldownMs int `yaml:"cooldown_ms"` // debounce after an action
}

func (t TimingCfg) Settle() time.Duration   { return time.Duration(t.SettleUs) * time.Microsecond }
func (t TimingCfg) Poll() time.Duration     { return time.Duration(t.PollMs) * time.Millisecond }
func (t TimingCfg) Hold() time.Duration     { return time.Duration(t.HoldMs) * time.Millisecond }
func (t TimingCfg) Cooldown() time.Duration { return time.Duration(t.CooldownMs) * time.Millisecond }

type Config struct {
	Driver string `yaml:"driver"` // "gpio" | "sim"
	Cells  int    `yaml:"cells"`

	Pins   PinsCfg   `yaml:"pins"`
	Timing TimingCfg `yaml:"timing"`

	// MaxRestarts bounds supervisor restarts; 0 retries forever.
	MaxRestarts int `yaml:"max_restarts"`
}

// Default matches the deployed four-cell unit: chain control on GP2..GP6,
// buttons on GPIO16/17, indicators on GPIO20/21.
func Default() *Config {
	return &Config{
		Driver: "gpio",
		Cells:  4,
		Pins: PinsCfg{
			SerialIn:     "GPIO2",
			ShiftClock:   "GPIO3",
			Clear:        "GPIO4",
			LatchClock:   "GPIO5",
			OutputEnable: "GPIO6",
			Button1:      "GPIO16",
			Button2:      "GPIO17",
			Indicator1:   "GPIO20",
			Indicator2:   "GPIO21",
		},
		Timing: TimingCfg{
			SettleUs:   1000,
			PollMs:     5,
			HoldMs:     100,
			CooldownMs: 800,
		},
	}
}

// Validate rejects configurations the rest of the stack would only trip
// over later.
func (c *Config) Validate() error {
	if c.Cells <= 0 {
		return fmt.Errorf("config: cells must be positive, got %d", c.Cells)
	}
	if c.Timing.SettleUs <= 0 {
		return fmt.Errorf("config: settle_us must be nonzero")
	}
	switch c.Driver {
	case "gpio", "sim":
	default:
		return fmt.Errorf("config: unknown driver %q", c.Driver)
	}
	return nil
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
