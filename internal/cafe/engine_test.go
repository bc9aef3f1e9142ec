package cafe

import (
	"testing"
)

// testLevelConfig is a small controllable level: one line, generous timer,
// coffee machine plus trash can.
func testLevelConfig() LevelConfig {
	return LevelConfig{
		ID: 1, Name: "Test Shift",
		QueueLen: 3, TimeLimit: 200, PointsMult: 1, MoneyMult: 1,
		MaxOrder: 1, Impatience: 0, MultRange: 0,
		BonusPoints: 100, BonusMoney: 10, BonusDerating: 25, PenaltyPoints: 15, ToClear: 1,
		Appliances: []ItemID{ItemCoffeeMachine, ItemTrashCan},
	}
}

// newTestEngine assembles an engine mid-level without starting its
// goroutines, so tests drive the mailbox handlers directly.
func newTestEngine(cfg LevelConfig, tun Tuning) *Engine {
	ses := NewSession("test")
	ses.SetLevel(cfg.ID)
	e := NewEngine(ses, tun, 1, nil)
	e.lvl = buildLevel(cfg, ses, e.rng, tun, e.logger)
	e.phase = PhaseInplay
	return e
}

func drainEvents(e *Engine) []Event {
	var out []Event
	for {
		select {
		case ev := <-e.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestBrewPickupTrashFlow(t *testing.T) {
	tun := DefaultTuning()
	tun.MoodBaseTicks = 1000 // Keep customers out of the way
	e := newTestEngine(testLevelConfig(), tun)
	actor := e.lvl.actor
	machine := e.lvl.item(ItemCoffeeMachine)

	// Start the brew empty-handed.
	e.handleInteract(ItemCoffeeMachine)
	if machine.StateName() != StateWorking {
		t.Fatalf("machine not brewing: %q", machine.StateName())
	}
	if actor.Held() != FoodNone {
		t.Fatalf("starting a brew gave the actor %q", actor.Held())
	}

	// Brew takes three ticks.
	e.handleTick()
	e.handleTick()
	if machine.StateName() != StateWorking {
		t.Fatalf("machine finished early: %q", machine.StateName())
	}
	e.handleTick()
	if machine.StateName() != StateDone {
		t.Fatalf("machine not done after the brew time: %q", machine.StateName())
	}

	// A full-handed actor cannot take the product.
	actor.SetHeld(FoodCupcake)
	e.handleInteract(ItemCoffeeMachine)
	if machine.StateName() != StateDone || actor.Held() != FoodCupcake {
		t.Fatal("full-handed pickup was not rejected")
	}

	// Empty-handed pickup takes the coffee and resets the machine.
	actor.SetHeld(FoodNone)
	e.handleInteract(ItemCoffeeMachine)
	if actor.Held() != FoodCoffee {
		t.Fatalf("actor holds %q after pickup, want coffee", actor.Held())
	}
	if machine.StateName() != StateIdle {
		t.Fatalf("machine not reset after pickup: %q", machine.StateName())
	}

	// Tossing the coffee empties the hands and costs its trash deltas.
	before := e.ses.Snapshot()
	e.handleInteract(ItemTrashCan)
	after := e.ses.Snapshot()
	if actor.Held() != FoodNone {
		t.Fatalf("actor still holds %q after trashing", actor.Held())
	}
	wantP, wantM := menuFood(e.lvl.menu, FoodCoffee).Score(KindTrash, 0)
	if after.Points-before.Points != wantP || after.Money-before.Money != wantM {
		t.Fatalf("trash deltas: points %d money %d, want %d %d",
			after.Points-before.Points, after.Money-before.Money, wantP, wantM)
	}
}

func TestServeCustomerThroughEngine(t *testing.T) {
	tun := DefaultTuning()
	tun.MoodBaseTicks = 1000
	e := newTestEngine(testLevelConfig(), tun)
	actor := e.lvl.actor

	// Pin down the head customer's order and multipliers.
	head := e.lvl.queues.Queues()[0].Customers()[0]
	head.order = []*FoodItem{{ID: FoodCoffee, CustomerPoints: 50, CustomerMoney: 3, DecayPerTick: 1}}
	head.pointsMult = 1
	head.moneyMult = 1

	e.handleTick() // Admits the head
	if !head.State().InLine() {
		t.Fatalf("head not in line after first tick: %v", head.State())
	}

	// Serving requires something in hand.
	e.handleInteract(ItemQueueFront)
	if head.OrderSatisfied() {
		t.Fatal("empty-handed serve satisfied an order")
	}

	actor.SetHeld(FoodCoffee)
	before := e.ses.Snapshot()
	e.handleInteract(ItemQueueFront)
	after := e.ses.Snapshot()

	if !head.OrderSatisfied() {
		t.Fatal("serve did not satisfy the order")
	}
	if actor.Held() != FoodNone {
		t.Fatalf("actor still holds %q after serving", actor.Held())
	}
	if after.Points-before.Points != 50 || after.Money-before.Money != 3 {
		t.Fatalf("serve earnings: +%d points +%d money, want +50 +3",
			after.Points-before.Points, after.Money-before.Money)
	}
}

func TestLevelTimeout(t *testing.T) {
	cfg := testLevelConfig()
	cfg.TimeLimit = 45
	cfg.BonusDerating = 50 // Three missed customers wipe both bonuses
	tun := DefaultTuning()
	tun.MoodBaseTicks = 1000 // Nobody walks off, nobody is served
	e := newTestEngine(cfg, tun)

	ticks := 0
	for e.phase == PhaseInplay && ticks < 100 {
		e.handleTick()
		ticks++
	}
	if ticks != 45 {
		t.Fatalf("level ran %d ticks, want exactly 45", ticks)
	}
	if e.phase != PhasePostplayMessage {
		t.Fatalf("phase after timeout: %v", e.phase)
	}
	if e.announcement != "Time's up!" {
		t.Fatalf("announcement %q", e.announcement)
	}
	drainEvents(e)

	// Post-level countdown, then settle.
	for range tun.Countdown + 1 {
		e.handleTick()
	}
	if e.phase != PhasePostplay {
		t.Fatalf("phase after countdown: %v", e.phase)
	}

	// All three customers missed: the bonus derates to zero and no ignored
	// penalty applies since nobody departed.
	snap := e.ses.Snapshot()
	if snap.Points != 0 || snap.Money != 0 {
		t.Fatalf("settlement changed totals to %d points, %d money", snap.Points, snap.Money)
	}

	e.handleTick()
	if e.phase != PhasePostplay {
		t.Fatalf("phase after notification: %v", e.phase)
	}
	var failed *LevelFailedEvent
	for _, ev := range drainEvents(e) {
		switch ev := ev.(type) {
		case LevelFailedEvent:
			failed = &ev
		case LevelSummaryEvent:
			t.Fatal("summary emitted for a failed level")
		}
	}
	if failed == nil {
		t.Fatal("no level-failed notification")
	}
	if failed.Required != 1 || failed.Achieved != 0 {
		t.Fatalf("failure details: %+v", failed)
	}
}

func TestBonusDeratesPointsAndMoneyIndependently(t *testing.T) {
	cfg := testLevelConfig() // Three customers in line
	cfg.TimeLimit = 1
	cfg.BonusPoints = 100
	cfg.BonusMoney = 40
	cfg.BonusDerating = 10
	tun := DefaultTuning()
	tun.MoodBaseTicks = 1000
	e := newTestEngine(cfg, tun)

	e.handleTick() // Timer expires
	for range tun.Countdown + 1 {
		e.handleTick()
	}
	if e.phase != PhasePostplay {
		t.Fatalf("phase %v after countdown", e.phase)
	}

	// Three missed customers derate each bonus by 30.
	snap := e.ses.Snapshot()
	if snap.Points != 70 || snap.Money != 10 {
		t.Fatalf("settled %d points, %d money, want 70 and 10", snap.Points, snap.Money)
	}
}

func TestTimeoutOnCampaignLevelAwardsNothing(t *testing.T) {
	cfg := *GetLevel(1) // Five customers; bonus base 100/10, derating 25
	tun := DefaultTuning()
	tun.MoodBaseTicks = 1000 // Nobody walks off, nobody is served
	e := newTestEngine(cfg, tun)

	ticks := 0
	for e.phase == PhaseInplay && ticks < 200 {
		e.handleTick()
		ticks++
	}
	if Ticks(ticks) != cfg.TimeLimit {
		t.Fatalf("level ran %d ticks, want %d", ticks, cfg.TimeLimit)
	}
	for range tun.Countdown + 1 {
		e.handleTick()
	}

	// Five missed customers push both bonuses below zero, so the failed
	// shift credits nothing at all.
	snap := e.ses.Snapshot()
	if snap.Points != 0 || snap.Money != 0 {
		t.Fatalf("failed shift credited %d points, %d money", snap.Points, snap.Money)
	}
}

func TestSettlementRunsOnce(t *testing.T) {
	cfg := testLevelConfig()
	cfg.TimeLimit = 1
	e := newTestEngine(cfg, DefaultTuning())

	e.handleTick() // Timer expires
	for range 10 {
		e.handleTick()
	}
	snap := e.ses.Snapshot()

	for range 10 {
		e.handleTick()
	}
	again := e.ses.Snapshot()
	if snap.Points != again.Points || snap.Money != again.Money {
		t.Fatalf("settlement applied more than once: %+v vs %+v", snap, again)
	}
}

func TestAllServedEndsLevelEarly(t *testing.T) {
	e := newTestEngine(testLevelConfig(), DefaultTuning())

	for _, c := range e.lvl.queues.Queues()[0].Customers() {
		for _, f := range c.Order() {
			f.Satisfied = true
		}
	}
	e.handleTick()
	if e.phase != PhasePostplayMessage {
		t.Fatalf("phase %v after every order satisfied", e.phase)
	}
	if e.announcement != "All customers served!" {
		t.Fatalf("announcement %q", e.announcement)
	}
}

func TestTutorialAdvancesWithoutDialog(t *testing.T) {
	cfg := Levels[0]
	if !cfg.Tutorial {
		t.Fatal("level 0 should be the tutorial")
	}
	tun := DefaultTuning()
	tun.MoodBaseTicks = 1000
	e := newTestEngine(cfg, tun)

	for _, c := range e.lvl.queues.Queues()[0].Customers() {
		for _, f := range c.Order() {
			f.Satisfied = true
		}
	}
	e.handleTick() // Everyone served, level ends
	if e.phase != PhasePostplayMessage {
		t.Fatalf("phase %v after the tutorial completed", e.phase)
	}
	for range tun.Countdown + 1 {
		e.handleTick()
	}
	drainEvents(e)

	e.handleTick() // Tutorial hand-off
	if e.phase != PhasePreplay {
		t.Fatalf("phase %v after the tutorial settled, want preplay", e.phase)
	}
	if e.ses.Level() != 1 {
		t.Fatalf("session on level %d after the tutorial, want 1", e.ses.Level())
	}
	for _, ev := range drainEvents(e) {
		switch ev.(type) {
		case LevelEndedEvent, LevelFailedEvent, GameOverEvent:
			t.Fatalf("tutorial hand-off emitted a dialog event: %#v", ev)
		}
	}
}

func TestPhaseWalkFromPreplay(t *testing.T) {
	ses := NewSession("test")
	ses.SetLevel(1)
	tun := DefaultTuning()
	e := NewEngine(ses, tun, 1, nil)

	if e.phase != PhasePreplay {
		t.Fatalf("fresh engine in phase %v", e.phase)
	}
	e.handleTick()
	if e.phase != PhasePreplayMessage {
		t.Fatalf("phase %v after level assembly", e.phase)
	}
	if e.lvl == nil || e.lvl.cfg.ID != 1 {
		t.Fatal("level not assembled from the session's level index")
	}

	// Countdown ticks announce, then play begins.
	e.handleTick()
	if e.announcement != "Ready... 3" {
		t.Fatalf("countdown announcement %q", e.announcement)
	}
	e.handleTick()
	e.handleTick()
	e.handleTick()
	if e.phase != PhaseInplay {
		t.Fatalf("phase %v after countdown", e.phase)
	}
	if e.announcement != "" {
		t.Fatalf("stale announcement %q at play start", e.announcement)
	}
	if e.ses.Remaining() != GetLevel(1).TimeLimit {
		t.Fatalf("timer %d, want %d", e.ses.Remaining(), GetLevel(1).TimeLimit)
	}
}

func TestMissingLevelSubstitutesGeneric(t *testing.T) {
	ses := NewSession("test")
	ses.SetLevel(99)
	e := NewEngine(ses, DefaultTuning(), 1, nil)

	e.handleTick()
	if e.lvl == nil {
		t.Fatal("no level assembled for an out-of-range index")
	}
	if e.lvl.cfg.ID != 99 {
		t.Fatalf("substitute level has id %d", e.lvl.cfg.ID)
	}
	if e.lvl.queues.TotalLength() == 0 {
		t.Fatal("substitute level has no customers")
	}
}

func TestTapQueuesAndProximityFires(t *testing.T) {
	e := newTestEngine(testLevelConfig(), DefaultTuning())
	machine := e.lvl.item(ItemCoffeeMachine)
	trash := e.lvl.item(ItemTrashCan)

	// Park the actor inside the machine's sensitivity area.
	e.lvl.actor.x, e.lvl.actor.y = 3, 4

	e.handleTap(TapMsg{GX: 3, GY: 3})
	if !machine.HasPending() {
		t.Fatal("tap on the machine queued nothing")
	}
	if trash.HasPending() {
		t.Fatal("tap on the machine also queued the trash can")
	}

	e.handleFrame()
	select {
	case m := <-e.msgCh:
		im, ok := m.(InteractMsg)
		if !ok || im.Item != ItemCoffeeMachine {
			t.Fatalf("posted %#v, want machine interaction", m)
		}
	default:
		t.Fatal("proximity check posted no interaction")
	}

	// The consumed tap never fires twice.
	e.handleFrame()
	select {
	case m := <-e.msgCh:
		t.Fatalf("second frame posted %#v", m)
	default:
	}
}

func TestTapElsewhereCancelsPending(t *testing.T) {
	e := newTestEngine(testLevelConfig(), DefaultTuning())
	machine := e.lvl.item(ItemCoffeeMachine)

	e.handleTap(TapMsg{GX: 3, GY: 3})
	if !machine.HasPending() {
		t.Fatal("tap on the machine queued nothing")
	}
	e.handleTap(TapMsg{GX: 20, GY: 12})
	if machine.HasPending() {
		t.Fatal("walking away left the interaction queued")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	e := newTestEngine(testLevelConfig(), DefaultTuning())
	e.Pause(true)

	before := e.ses.Remaining()
	e.handleTick()
	e.handleTick()
	if e.ses.Remaining() != before {
		t.Fatal("timer advanced while paused")
	}
	if e.elapsed != 0 {
		t.Fatal("elapsed advanced while paused")
	}

	e.Pause(false)
	e.handleTick()
	if e.ses.Remaining() != before-1 {
		t.Fatal("timer did not resume after unpause")
	}
}

func TestSnapshotWithoutLevel(t *testing.T) {
	e := NewEngine(NewSession("test"), DefaultTuning(), 1, nil)
	snap := e.Snapshot()
	if snap.Phase != PhasePreplay {
		t.Fatalf("snapshot phase %v", snap.Phase)
	}
	if len(snap.Items) != 0 || len(snap.Customers) != 0 {
		t.Fatal("snapshot of an empty engine has level content")
	}
}

func TestSnapshotReflectsLevel(t *testing.T) {
	e := newTestEngine(testLevelConfig(), DefaultTuning())
	e.handleTick()

	snap := e.Snapshot()
	if len(snap.Items) != 3 { // machine, trash, queue front
		t.Fatalf("snapshot has %d items, want 3", len(snap.Items))
	}
	if snap.LevelName != "Test Shift" {
		t.Fatalf("snapshot level name %q", snap.LevelName)
	}
	if len(snap.Customers) == 0 {
		t.Fatal("no visible customer after the first tick")
	}
}
