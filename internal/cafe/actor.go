package cafe

import "sync"

// Actor is the player character: a continuous grid position, a walk target,
// and the single food item currently carried.
//
// The walk target is a cross-context handoff: the input context writes it,
// the engine loop reads it while stepping the position. A mutex guards the
// handoff so the reader always sees a whole coordinate pair, never a torn
// write.
type Actor struct {
	x, y float64
	rate float64

	mu        sync.Mutex
	hasTarget bool
	targetX   float64
	targetY   float64

	held FoodID
	// Display state per held item, registered at level assembly. Empty
	// hands map to state 0.
	heldStates map[FoodID]int
}

// NewActor places the actor at the given grid position.
func NewActor(x, y, rate float64) *Actor {
	return &Actor{
		x:          x,
		y:          y,
		rate:       rate,
		heldStates: map[FoodID]int{FoodNone: 0},
	}
}

// Position returns the actor's grid position.
func (a *Actor) Position() (float64, float64) { return a.x, a.y }

// SetTarget records a new walk target. Called from the input context.
func (a *Actor) SetTarget(x, y float64) {
	a.mu.Lock()
	a.hasTarget = true
	a.targetX = x
	a.targetY = y
	a.mu.Unlock()
}

// target snapshots the current walk target under the lock.
func (a *Actor) target() (x, y float64, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.targetX, a.targetY, a.hasTarget
}

// Move steps the actor toward its target by at most the move rate. Called
// only from the engine loop.
func (a *Actor) Move() {
	tx, ty, ok := a.target()
	if !ok {
		return
	}
	a.x = stepToward(a.x, tx, a.rate)
	a.y = stepToward(a.y, ty, a.rate)
}

// Held returns the carried item (FoodNone when empty-handed).
func (a *Actor) Held() FoodID { return a.held }

// RegisterHeldState associates a food item with an actor display state.
// Every item must be registered before it can be held.
func (a *Actor) RegisterHeldState(id FoodID, state int) {
	a.heldStates[id] = state
}

// SetHeld sets the carried item. Unregistered items are rejected, which
// keeps the display-state index inside the registered range.
func (a *Actor) SetHeld(id FoodID) bool {
	if _, ok := a.heldStates[id]; !ok {
		return false
	}
	a.held = id
	return true
}

// DisplayState returns the display state for the carried item.
func (a *Actor) DisplayState() int {
	return a.heldStates[a.held]
}
