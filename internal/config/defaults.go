package config

import (
	_ "embed"
)

//go:embed defaults/cafe.yaml
var defaultCafeYAML []byte

// DefaultCafeConfig returns the hardcoded default configuration, used as
// the last fallback when even the embedded YAML fails to parse.
func DefaultCafeConfig() CafeConfig {
	return CafeConfig{
		Timing: TimingConfig{
			TickMillis:   1000,
			RepollMillis: 50,
			Countdown:    3,
		},
		Customers: CustomersConfig{
			MoodBaseTicks: 12,
			AdmitSpacing:  2,
			VisibleWindow: 4,
			WalkRate:      1.5,
		},
		Actor: ActorConfig{
			MoveRate: 0.25,
		},
		Grid: GridConfig{
			Cols: 24,
			Rows: 14,
		},
	}
}
