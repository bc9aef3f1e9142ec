package cafe

// NoTransition is the PrevState sentinel meaning no state change occurred.
const NoTransition = -1

// Interaction describes the result of one actor/item interaction: the state
// the target was in before the transition, whether the interaction succeeded,
// and the point/money deltas it earned. It is a transient return value and
// is never stored.
type Interaction struct {
	PrevState int
	Success   bool
	Points    int
	Money     int
}

// NoInteraction returns the no-op result.
func NoInteraction() Interaction {
	return Interaction{PrevState: NoTransition}
}
