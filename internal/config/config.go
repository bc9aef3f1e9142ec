// Package config provides YAML-based gameplay configuration loading for the
// café engine.
package config

import (
	"time"

	"github.com/vovakirdan/tui-cafe/internal/cafe"
)

// CafeConfig contains all tunable gameplay configuration.
type CafeConfig struct {
	Timing    TimingConfig    `yaml:"timing"`
	Customers CustomersConfig `yaml:"customers"`
	Actor     ActorConfig     `yaml:"actor"`
	Grid      GridConfig      `yaml:"grid"`
}

// TimingConfig defines the engine clock parameters.
type TimingConfig struct {
	TickMillis   int `yaml:"tick_millis"`   // One logical tick (nominally 1000)
	RepollMillis int `yaml:"repoll_millis"` // Fine movement interval
	Countdown    int `yaml:"countdown"`     // Pre/post level countdown ticks
}

// CustomersConfig defines queue admission and mood parameters.
type CustomersConfig struct {
	MoodBaseTicks int     `yaml:"mood_base_ticks"` // Ticks before a head customer's mood decays
	AdmitSpacing  int     `yaml:"admit_spacing"`   // Minimum ticks between admissions
	VisibleWindow int     `yaml:"visible_window"`  // Queue positions eligible to appear
	WalkRate      float64 `yaml:"walk_rate"`       // Cells per tick
}

// ActorConfig defines player movement parameters.
type ActorConfig struct {
	MoveRate float64 `yaml:"move_rate"` // Cells per repoll interval
}

// GridConfig defines the logical play grid.
type GridConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Tuning converts the loaded configuration into engine tuning constants.
func (c CafeConfig) Tuning() cafe.Tuning {
	tun := cafe.DefaultTuning()
	if c.Timing.TickMillis > 0 {
		tun.TickPeriod = time.Duration(c.Timing.TickMillis) * time.Millisecond
	}
	if c.Timing.RepollMillis > 0 {
		tun.Repoll = time.Duration(c.Timing.RepollMillis) * time.Millisecond
	}
	if c.Timing.Countdown > 0 {
		tun.Countdown = c.Timing.Countdown
	}
	if c.Customers.MoodBaseTicks > 0 {
		tun.MoodBaseTicks = cafe.Ticks(c.Customers.MoodBaseTicks)
	}
	if c.Customers.AdmitSpacing > 0 {
		tun.AdmitSpacing = cafe.Ticks(c.Customers.AdmitSpacing)
	}
	if c.Customers.VisibleWindow > 0 {
		tun.VisibleWindow = c.Customers.VisibleWindow
	}
	if c.Customers.WalkRate > 0 {
		tun.CustomerRate = c.Customers.WalkRate
	}
	if c.Actor.MoveRate > 0 {
		tun.ActorRate = c.Actor.MoveRate
	}
	if c.Grid.Cols > 0 {
		tun.GridCols = c.Grid.Cols
	}
	if c.Grid.Rows > 0 {
		tun.GridRows = c.Grid.Rows
	}
	return tun
}
