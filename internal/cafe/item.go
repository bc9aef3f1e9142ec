package cafe

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/tui-cafe/internal/core"
)

// StateSpec describes one state of an item's state machine.
type StateSpec struct {
	Name         string
	MinDwell     Ticks  // Minimum ticks in this state before a timed advance
	NeedsInput   bool   // Advancing out requires a tap
	NeedsTime    bool   // Advancing out requires MinDwell elapsed
	RequiredHeld FoodID // If set, a tap only advances when holding this item
}

// ItemSpec is the full data-driven description of a stationary item.
// Appliance kinds are configuration, not subclasses: a coffee machine, a
// blender and a microwave differ only in their spec tables.
type ItemSpec struct {
	ID          ItemID
	Kind        ItemKind
	X, Y        float64 // Grid position (center)
	W, H        float64 // Grid extent
	Orientation Orientation
	Product     FoodID      // What a machine/source yields
	States      []StateSpec // Empty = stateless (always interactable)
	QueueIndex  int         // For KindQueue: index into the queue group

	// OnTransition, if set, is called after each state change. Used for
	// per-appliance side effects such as sound cues.
	OnTransition func(from, to int)
}

// Item is a stationary café item driven by its spec's state table.
//
// The pending-interaction slot is a single-producer/single-consumer handoff:
// the input context queues a tap, the engine loop consumes it with an atomic
// test-and-clear. Later taps overwrite rather than accumulate.
type Item struct {
	spec       ItemSpec
	current    int
	lastChange Ticks
	pending    atomic.Bool

	// Counter slot. Guarded by mu because the render context reads it
	// while the engine loop writes it.
	mu     sync.Mutex
	stored FoodID
}

// NewItem creates an item from its spec, starting in state 0.
func NewItem(spec ItemSpec) *Item {
	return &Item{spec: spec}
}

// ID returns the item's identity.
func (it *Item) ID() ItemID { return it.spec.ID }

// Kind returns the item's rule-table classification.
func (it *Item) Kind() ItemKind { return it.spec.Kind }

// Product returns the food this item yields, if any.
func (it *Item) Product() FoodID { return it.spec.Product }

// QueueIndex returns the queue this item fronts (KindQueue only).
func (it *Item) QueueIndex() int { return it.spec.QueueIndex }

// Position returns the item's grid position.
func (it *Item) Position() (float64, float64) { return it.spec.X, it.spec.Y }

// StateCount returns the number of registered states.
func (it *Item) StateCount() int { return len(it.spec.States) }

// StateIndex returns the current state index (0 for stateless items).
func (it *Item) StateIndex() int { return it.current }

// StateName returns the current state's name, or "" for stateless items.
func (it *Item) StateName() string {
	return it.StateNameAt(it.current)
}

// StateNameAt returns the name of the state at the given index.
func (it *Item) StateNameAt(i int) string {
	if i < 0 || i >= len(it.spec.States) {
		return ""
	}
	return it.spec.States[i].Name
}

// OnInteraction attempts an input-driven transition while the actor holds
// heldItem. It returns PrevState == NoTransition unless the current state
// requires input and its held-item guard (if any) matches, in which case the
// machine advances to the next state modulo the state count.
//
// An item with zero registered states is "stateless": always eligible to
// interact, no state to track. It reports PrevState 0 with no real
// transition.
func (it *Item) OnInteraction(heldItem FoodID, now Ticks) Interaction {
	if len(it.spec.States) == 0 {
		return Interaction{PrevState: 0, Success: true}
	}
	st := it.spec.States[it.current]
	if !st.NeedsInput {
		return NoInteraction()
	}
	if st.RequiredHeld != FoodNone && st.RequiredHeld != heldItem {
		return NoInteraction()
	}
	return it.advance(st, now)
}

// OnUpdate attempts a time-driven transition: only states that do not
// require input and are time-gated can advance on ticks. Calling it any
// number of times on an input-gated state never changes the state.
func (it *Item) OnUpdate(now Ticks) Interaction {
	if len(it.spec.States) == 0 {
		return NoInteraction()
	}
	st := it.spec.States[it.current]
	if st.NeedsInput {
		return NoInteraction()
	}
	return it.advance(st, now)
}

func (it *Item) advance(st StateSpec, now Ticks) Interaction {
	if st.NeedsTime && now-it.lastChange < st.MinDwell {
		return NoInteraction()
	}
	prev := it.current
	it.current = (it.current + 1) % len(it.spec.States)
	it.lastChange = now
	if it.spec.OnTransition != nil {
		it.spec.OnTransition(prev, it.current)
	}
	return Interaction{PrevState: prev, Success: true}
}

// SensitivityRect is the proximity region within which a queued tap can
// produce an interaction: the item's extent, extended by a full extent
// toward the side the item faces.
func (it *Item) SensitivityRect() core.Rect {
	r := core.NewRect(it.spec.X-it.spec.W/2, it.spec.Y-it.spec.H/2, it.spec.W, it.spec.H)
	dx, dy := it.spec.Orientation.Offsets()
	return r.Extend(dx*it.spec.W, dy*it.spec.H)
}

// HandleTap queues a pending interaction if the tap lands inside the
// sensitivity rectangle and clears any pending interaction otherwise, so
// tapping elsewhere (walking away) cancels it. Reports whether the tap hit.
func (it *Item) HandleTap(gx, gy float64) bool {
	if it.SensitivityRect().Contains(gx, gy) {
		it.pending.Store(true)
		return true
	}
	it.pending.Store(false)
	return false
}

// HasPending reports whether a tap is queued.
func (it *Item) HasPending() bool {
	return it.pending.Load()
}

// ConsumePending atomically takes the queued tap, if any. Each queued tap is
// consumed at most once.
func (it *Item) ConsumePending() bool {
	return it.pending.CompareAndSwap(true, false)
}

// ClearPending drops any queued tap.
func (it *Item) ClearPending() {
	it.pending.Store(false)
}

// Stored returns the food on a counter-top slot (FoodNone when idle).
func (it *Item) Stored() FoodID {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.stored
}

// Exchange swaps the counter slot with the actor's hands in one step:
// an empty-handed actor takes what is stored, a holding actor puts their
// item down on an idle counter. Returns the actor's new held item and
// whether anything changed.
func (it *Item) Exchange(held FoodID) (FoodID, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	switch {
	case held == FoodNone && it.stored != FoodNone:
		took := it.stored
		it.stored = FoodNone
		return took, true
	case held != FoodNone && it.stored == FoodNone:
		it.stored = held
		return FoodNone, true
	default:
		return held, false
	}
}
