package cafe

import (
	"math/rand"
	"testing"
)

func testMachine() *Item {
	return NewItem(ItemSpec{
		ID:          ItemCoffeeMachine,
		Kind:        KindMachine,
		X:           3, Y: 3, W: 1, H: 1,
		Orientation: FaceDown,
		Product:     FoodCoffee,
		States:      machineStates(3),
	})
}

func TestMachineCycle(t *testing.T) {
	it := testMachine()

	// Idle is input-gated: ticks alone never move it.
	for now := Ticks(1); now <= 5; now++ {
		if res := it.OnUpdate(now); res.PrevState != NoTransition {
			t.Fatalf("idle state advanced on tick %d", now)
		}
	}
	if it.StateName() != StateIdle {
		t.Fatalf("expected idle, got %q", it.StateName())
	}

	// A tap starts the brew.
	res := it.OnInteraction(FoodNone, 5)
	if !res.Success || res.PrevState != 0 {
		t.Fatalf("tap on idle: got %+v", res)
	}
	if it.StateName() != StateWorking {
		t.Fatalf("expected working, got %q", it.StateName())
	}

	// Working ignores taps and does not finish before the dwell elapses.
	if res := it.OnInteraction(FoodNone, 6); res.PrevState != NoTransition {
		t.Fatal("tap advanced a working machine")
	}
	if res := it.OnUpdate(6); res.PrevState != NoTransition {
		t.Fatal("machine finished one tick into a three-tick brew")
	}
	if res := it.OnUpdate(7); res.PrevState != NoTransition {
		t.Fatal("machine finished two ticks into a three-tick brew")
	}
	if res := it.OnUpdate(8); res.PrevState == NoTransition {
		t.Fatal("machine did not finish after the dwell elapsed")
	}
	if it.StateName() != StateDone {
		t.Fatalf("expected done, got %q", it.StateName())
	}

	// Done is input-gated again; a tap wraps back to idle.
	if res := it.OnUpdate(20); res.PrevState != NoTransition {
		t.Fatal("done state advanced on tick")
	}
	res = it.OnInteraction(FoodNone, 20)
	if !res.Success || it.StateName() != StateIdle {
		t.Fatalf("pickup tap: got %+v, state %q", res, it.StateName())
	}
}

func TestUpdateIdempotentOnInputStates(t *testing.T) {
	it := testMachine()
	for i := range 50 {
		it.OnUpdate(Ticks(i))
	}
	if it.StateIndex() != 0 {
		t.Fatalf("repeated updates moved an input-gated state to %d", it.StateIndex())
	}
}

func TestStateIndexAlwaysInRange(t *testing.T) {
	it := testMachine()
	rng := rand.New(rand.NewSource(7))
	for now := Ticks(0); now < 500; now++ {
		if rng.Intn(2) == 0 {
			it.OnInteraction(FoodNone, now)
		} else {
			it.OnUpdate(now)
		}
		if idx := it.StateIndex(); idx < 0 || idx >= it.StateCount() {
			t.Fatalf("state index %d out of range at tick %d", idx, now)
		}
	}
}

func TestRequiredHeldGuard(t *testing.T) {
	it := NewItem(ItemSpec{
		ID:   "espresso_press",
		Kind: KindMachine,
		States: []StateSpec{
			{Name: StateIdle, NeedsInput: true, RequiredHeld: FoodCoffee},
			{Name: StateDone, NeedsInput: true},
		},
	})

	if res := it.OnInteraction(FoodNone, 1); res.Success {
		t.Fatal("empty-handed tap passed a held-item guard")
	}
	if res := it.OnInteraction(FoodCupcake, 1); res.Success {
		t.Fatal("wrong held item passed the guard")
	}
	if res := it.OnInteraction(FoodCoffee, 1); !res.Success {
		t.Fatal("matching held item was rejected")
	}
}

func TestStatelessItem(t *testing.T) {
	it := NewItem(ItemSpec{ID: ItemTrashCan, Kind: KindTrash, X: 2, Y: 8, W: 1, H: 1})

	res := it.OnInteraction(FoodCoffee, 3)
	if !res.Success || res.PrevState != 0 {
		t.Fatalf("stateless interaction: got %+v", res)
	}
	if res := it.OnUpdate(4); res.PrevState != NoTransition {
		t.Fatal("stateless item advanced on tick")
	}
	if it.StateIndex() != 0 {
		t.Fatalf("stateless item left state 0: %d", it.StateIndex())
	}
}

func TestPendingConsumedAtMostOnce(t *testing.T) {
	it := testMachine()

	if !it.HandleTap(3, 3) {
		t.Fatal("tap on the item itself missed")
	}
	if !it.ConsumePending() {
		t.Fatal("queued tap was not consumable")
	}
	if it.ConsumePending() {
		t.Fatal("queued tap consumed twice")
	}

	// Tapping elsewhere cancels a queued interaction.
	it.HandleTap(3, 3)
	if it.HandleTap(20, 20) {
		t.Fatal("far-away tap reported a hit")
	}
	if it.HasPending() {
		t.Fatal("far-away tap did not cancel the queued interaction")
	}
}

func TestSensitivityRectFollowsFacing(t *testing.T) {
	it := testMachine() // 1x1 at (3,3), facing down
	r := it.SensitivityRect()

	if !r.Contains(3, 4) {
		t.Error("point one cell below a down-facing item should be inside")
	}
	if r.Contains(3, 2) {
		t.Error("point above a down-facing item should be outside")
	}
	if r.Contains(4.6, 3) {
		t.Error("point beside the item should be outside")
	}
}

func TestCounterExchange(t *testing.T) {
	it := NewItem(ItemSpec{ID: ItemCounterTop, Kind: KindCounter, X: 10, Y: 6, W: 1, H: 1})

	// Put down, then pick back up.
	held, changed := it.Exchange(FoodPie)
	if !changed || held != FoodNone || it.Stored() != FoodPie {
		t.Fatalf("put down: held=%q stored=%q changed=%v", held, it.Stored(), changed)
	}
	// Occupied counter refuses a second item.
	held, changed = it.Exchange(FoodCoffee)
	if changed || held != FoodCoffee {
		t.Fatalf("occupied counter accepted a second item: held=%q", held)
	}
	held, changed = it.Exchange(FoodNone)
	if !changed || held != FoodPie || it.Stored() != FoodNone {
		t.Fatalf("pick up: held=%q stored=%q changed=%v", held, it.Stored(), changed)
	}
	// Empty hands on an empty counter is a no-op.
	if _, changed := it.Exchange(FoodNone); changed {
		t.Fatal("empty exchange reported a change")
	}
}
