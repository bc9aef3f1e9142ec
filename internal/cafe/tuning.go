package cafe

import "time"

// Tuning holds the gameplay constants that are the same across levels.
// The config package populates it from YAML; tests use DefaultTuning.
type Tuning struct {
	TickPeriod    time.Duration // One logical tick, nominally 1s
	Repoll        time.Duration // Fine movement/repoll interval
	MoodBaseTicks Ticks         // Base ticks before a head customer's mood decays
	AdmitSpacing  Ticks         // Minimum ticks between queue admissions
	VisibleWindow int           // Queue positions eligible to become visible
	ActorRate     float64       // Actor cells moved per repoll
	CustomerRate  float64       // Customer cells moved per tick
	Countdown     int           // Pre/post level countdown ticks
	GridCols      int
	GridRows      int
}

// DefaultTuning returns the stock gameplay constants.
func DefaultTuning() Tuning {
	return Tuning{
		TickPeriod:    time.Second,
		Repoll:        50 * time.Millisecond,
		MoodBaseTicks: 12,
		AdmitSpacing:  2,
		VisibleWindow: 4,
		ActorRate:     0.25,
		CustomerRate:  1.5,
		Countdown:     3,
		GridCols:      24,
		GridRows:      14,
	}
}
