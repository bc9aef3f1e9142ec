package cafe

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Appliance state names shared by the actor-transition rules.
const (
	StateIdle    = "idle"
	StateWorking = "working"
	StateDone    = "done"
)

// Upgrade identifiers the level assembler understands.
const (
	UpgradeSecondCoffeeMachine = "coffee_machine_2"
	UpgradeMicrowave           = "microwave"
	UpgradeCounterTop          = "counter_top"
)

// LevelConfig is a per-level configuration record. Levels are pure data;
// one generic assembly routine turns a record into a running level.
type LevelConfig struct {
	ID         int
	Name       string
	Tutorial   bool
	QueueLen   int   // Customers per line
	TimeLimit  Ticks // Level timer
	PointsMult float64
	MoneyMult  float64
	MaxOrder   int     // Max order slots per customer
	Impatience float64 // Upper bound of the per-customer impatience range
	MultRange  float64 // Upper bound of the per-customer reward multiplier range

	BonusPoints   int // End-of-level bonus base, points
	BonusMoney    int // End-of-level bonus base, money
	BonusDerating int // Bonus lost per unserved customer
	PenaltyPoints int // Point deduction per ignored customer
	ToClear       int // Customers that must be served to clear the level

	TwoQueues  bool
	Appliances []ItemID // Base appliance set; upgrades add more
}

// Levels is the campaign table. Level 0 is the tutorial: short, unfailable,
// and it rolls straight into the next shift with no between-level dialog.
var Levels = []LevelConfig{
	{
		ID: 0, Name: "First Shift", Tutorial: true,
		QueueLen: 2, TimeLimit: 60, PointsMult: 1, MoneyMult: 1,
		MaxOrder: 1, Impatience: 0, MultRange: 0,
		BonusPoints: 0, BonusMoney: 0, BonusDerating: 0, PenaltyPoints: 0, ToClear: 0,
		Appliances: []ItemID{ItemCoffeeMachine, ItemTrashCan},
	},
	{
		ID: 1, Name: "Morning Rush",
		QueueLen: 5, TimeLimit: 90, PointsMult: 1, MoneyMult: 1,
		MaxOrder: 1, Impatience: 0.5, MultRange: 0.2,
		BonusPoints: 100, BonusMoney: 10, BonusDerating: 25, PenaltyPoints: 15, ToClear: 3,
		Appliances: []ItemID{ItemCoffeeMachine, ItemCupcakeTray, ItemTrashCan},
	},
	{
		ID: 2, Name: "Lunch Crowd",
		QueueLen: 7, TimeLimit: 120, PointsMult: 1.2, MoneyMult: 1.1,
		MaxOrder: 2, Impatience: 0.8, MultRange: 0.3,
		BonusPoints: 150, BonusMoney: 15, BonusDerating: 25, PenaltyPoints: 20, ToClear: 5,
		Appliances: []ItemID{ItemCoffeeMachine, ItemBlender, ItemCupcakeTray, ItemTrashCan},
	},
	{
		ID: 3, Name: "Matinee",
		QueueLen: 8, TimeLimit: 120, PointsMult: 1.4, MoneyMult: 1.2,
		MaxOrder: 2, Impatience: 1.0, MultRange: 0.4,
		BonusPoints: 200, BonusMoney: 20, BonusDerating: 30, PenaltyPoints: 25, ToClear: 6,
		Appliances: []ItemID{ItemCoffeeMachine, ItemBlender, ItemCupcakeTray, ItemPieTray, ItemTrashCan},
	},
	{
		ID: 4, Name: "Double Feature",
		QueueLen: 6, TimeLimit: 150, PointsMult: 1.6, MoneyMult: 1.3,
		MaxOrder: 3, Impatience: 1.2, MultRange: 0.5,
		BonusPoints: 250, BonusMoney: 25, BonusDerating: 30, PenaltyPoints: 30, ToClear: 8,
		TwoQueues:  true,
		Appliances: []ItemID{ItemCoffeeMachine, ItemBlender, ItemCupcakeTray, ItemPieTray, ItemTrashCan},
	},
	{
		ID: 5, Name: "Closing Night",
		QueueLen: 8, TimeLimit: 180, PointsMult: 2, MoneyMult: 1.5,
		MaxOrder: 3, Impatience: 1.5, MultRange: 0.6,
		BonusPoints: 300, BonusMoney: 30, BonusDerating: 35, PenaltyPoints: 40, ToClear: 11,
		TwoQueues:  true,
		Appliances: []ItemID{ItemCoffeeMachine, ItemBlender, ItemCupcakeTray, ItemPieTray, ItemTrashCan},
	},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index, or nil if out of range.
func GetLevel(index int) *LevelConfig {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// GenericLevel synthesizes a playable fallback configuration for a level
// index with no registered definition, so the play loop never halts on a
// missing level.
func GenericLevel(index int) LevelConfig {
	return LevelConfig{
		ID: index, Name: fmt.Sprintf("Shift %d", index+1),
		QueueLen: 6, TimeLimit: 120, PointsMult: 1, MoneyMult: 1,
		MaxOrder: 2, Impatience: 1, MultRange: 0.3,
		BonusPoints: 150, BonusMoney: 15, BonusDerating: 25, PenaltyPoints: 20, ToClear: 4,
		Appliances: []ItemID{ItemCoffeeMachine, ItemBlender, ItemCupcakeTray, ItemTrashCan},
	}
}

// appliancePlacement fixes where each appliance sits on the grid.
type appliancePlacement struct {
	x, y   float64
	facing Orientation
}

var placements = map[ItemID]appliancePlacement{
	ItemCoffeeMachine:  {x: 3, y: 3, facing: FaceDown},
	ItemCoffeeMachine2: {x: 5, y: 3, facing: FaceDown},
	ItemBlender:        {x: 8, y: 3, facing: FaceDown},
	ItemMicrowave:      {x: 11, y: 3, facing: FaceDown},
	ItemCupcakeTray:    {x: 14, y: 3, facing: FaceDown},
	ItemPieTray:        {x: 16, y: 3, facing: FaceDown},
	ItemTrashCan:       {x: 2, y: 8, facing: FaceRight},
	ItemCounterTop:     {x: 10, y: 6, facing: FaceDown},
	ItemQueueFront:     {x: 18, y: 7, facing: FaceLeft},
	ItemQueueSecond:    {x: 18, y: 11, facing: FaceLeft},
}

// machineStates builds the idle -> working -> done cycle of a producing
// appliance. The working state is time-gated, the others need a tap.
func machineStates(brewTime Ticks) []StateSpec {
	return []StateSpec{
		{Name: StateIdle, NeedsInput: true},
		{Name: StateWorking, NeedsTime: true, MinDwell: brewTime},
		{Name: StateDone, NeedsInput: true},
	}
}

// applianceSpec returns the data-driven spec for a known appliance id.
func applianceSpec(id ItemID) (ItemSpec, bool) {
	p, ok := placements[id]
	if !ok {
		return ItemSpec{}, false
	}
	spec := ItemSpec{ID: id, X: p.x, Y: p.y, W: 1, H: 1, Orientation: p.facing}
	switch id {
	case ItemCoffeeMachine, ItemCoffeeMachine2:
		spec.Kind = KindMachine
		spec.Product = FoodCoffee
		spec.States = machineStates(3)
	case ItemBlender:
		spec.Kind = KindMachine
		spec.Product = FoodSmoothie
		spec.States = machineStates(4)
	case ItemMicrowave:
		spec.Kind = KindMachine
		spec.Product = FoodPopcorn
		spec.States = machineStates(2)
	case ItemCupcakeTray:
		spec.Kind = KindSource
		spec.Product = FoodCupcake
	case ItemPieTray:
		spec.Kind = KindSource
		spec.Product = FoodPie
	case ItemTrashCan:
		spec.Kind = KindTrash
	case ItemCounterTop:
		spec.Kind = KindCounter
	default:
		return ItemSpec{}, false
	}
	return spec, true
}

// upgradeAppliances maps owned upgrade ids to the extra appliance they add.
var upgradeAppliances = map[string]ItemID{
	UpgradeSecondCoffeeMachine: ItemCoffeeMachine2,
	UpgradeMicrowave:           ItemMicrowave,
	UpgradeCounterTop:          ItemCounterTop,
}

// levelState is a fully assembled level: the actor, the item registry and
// the customer lines, wired together for the engine.
type levelState struct {
	cfg    LevelConfig
	menu   []FoodItem
	actor  *Actor
	items  []*Item
	byID   map[ItemID]*Item
	queues *QueueGroup
}

// buildLevel is the single generic assembly routine: it instantiates the
// actor, the appliances (including upgrade-gated ones), the menu, and one
// or two customer lines from a level configuration record.
func buildLevel(cfg LevelConfig, ses *Session, rng *rand.Rand, tun Tuning, logger *log.Logger) *levelState {
	lvl := &levelState{
		cfg:  cfg,
		menu: DefaultMenu(),
		byID: make(map[ItemID]*Item),
	}

	lvl.actor = NewActor(float64(tun.GridCols)/2, float64(tun.GridRows)-3, tun.ActorRate)
	for i, f := range lvl.menu {
		lvl.actor.RegisterHeldState(f.ID, i+1)
	}

	ids := append([]ItemID(nil), cfg.Appliances...)
	for upgrade, extra := range upgradeAppliances {
		if ses.Owns(upgrade) {
			ids = append(ids, extra)
		}
	}
	for _, id := range ids {
		spec, ok := applianceSpec(id)
		if !ok {
			logger.Warn("unknown appliance in level config, skipping", "item", id, "level", cfg.ID)
			continue
		}
		lvl.addItem(NewItem(spec))
	}

	// Customer lines, each fronted by a queue interaction item.
	queues := []*Queue{lvl.addQueue(ItemQueueFront, 0, cfg, rng, tun, logger)}
	if cfg.TwoQueues {
		queues = append(queues, lvl.addQueue(ItemQueueSecond, 1, cfg, rng, tun, logger))
	}
	lvl.queues = NewQueueGroup(queues...)

	ses.SetRemaining(cfg.TimeLimit)
	ses.ResetLevelTotals()
	return lvl
}

func (l *levelState) addItem(it *Item) {
	l.items = append(l.items, it)
	l.byID[it.ID()] = it
}

func (l *levelState) addQueue(front ItemID, index int, cfg LevelConfig, rng *rand.Rand, tun Tuning, logger *log.Logger) *Queue {
	p := placements[front]
	l.addItem(NewItem(ItemSpec{
		ID: front, Kind: KindQueue, QueueIndex: index,
		X: p.x, Y: p.y, W: 1, H: 1, Orientation: p.facing,
	}))
	qcfg := QueueConfig{
		Length:      cfg.QueueLen,
		HeadX:       p.x - 1.5,
		HeadY:       p.y,
		SlotSpacing: -1.2, // Line extends off toward the entrance
		SpawnX:      -2,
		SpawnY:      p.y,
		ExitX:       -3,
		ExitY:       p.y + 1,
	}
	return NewQueue(qcfg, rng, l.menu, cfg.MaxOrder, cfg.Impatience, cfg.MultRange, tun, logger)
}

// item looks up an assembled item by id.
func (l *levelState) item(id ItemID) *Item {
	return l.byID[id]
}
