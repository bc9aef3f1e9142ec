// Package cafe implements the café-management game logic engine: data-driven
// appliance state machines, the customer queue simulation, the level
// progression state machine, and the message loop that ties them together.
// It contains no rendering or terminal dependencies.
package cafe

// FoodID identifies a producible food item. The empty value means
// "nothing" (empty hands, empty counter slot).
type FoodID string

// Food identifiers for the standard menu.
const (
	FoodNone     FoodID = ""
	FoodCoffee   FoodID = "coffee"
	FoodSmoothie FoodID = "smoothie"
	FoodPopcorn  FoodID = "popcorn"
	FoodCupcake  FoodID = "cupcake"
	FoodPie      FoodID = "pie"
)

// ItemID identifies a stationary item placed on the café floor.
type ItemID string

// Item identifiers for the standard appliance set.
const (
	ItemCoffeeMachine  ItemID = "coffee_machine"
	ItemCoffeeMachine2 ItemID = "coffee_machine_2"
	ItemBlender        ItemID = "blender"
	ItemMicrowave      ItemID = "microwave"
	ItemCupcakeTray    ItemID = "cupcake_tray"
	ItemPieTray        ItemID = "pie_tray"
	ItemTrashCan       ItemID = "trash_can"
	ItemCounterTop     ItemID = "counter_top"
	ItemQueueFront     ItemID = "queue_front"
	ItemQueueSecond    ItemID = "queue_second"
)

// ItemKind classifies how the actor-transition rules treat an item.
// Kinds replace per-appliance subclassing: an appliance is configuration
// data (an ItemSpec), not a type.
type ItemKind int

const (
	KindMachine ItemKind = iota // Multi-state appliance producing a food after a dwell
	KindSource                  // Infinite tray: pick up the product unconditionally
	KindCounter                 // Shared temporary storage, one slot
	KindTrash                   // Stateless, accepts any held item
	KindQueue                   // Interaction point of a customer queue
)

// String returns a human-readable name for the kind.
func (k ItemKind) String() string {
	switch k {
	case KindMachine:
		return "machine"
	case KindSource:
		return "source"
	case KindCounter:
		return "counter"
	case KindTrash:
		return "trash"
	case KindQueue:
		return "queue"
	default:
		return "unknown"
	}
}

// Orientation is the direction an item faces; the sensitivity area extends
// toward the facing side, where the actor stands.
type Orientation int

const (
	FaceUp Orientation = iota
	FaceDown
	FaceLeft
	FaceRight
)

// Offsets returns the unit direction vector of the facing side.
func (o Orientation) Offsets() (dx, dy float64) {
	switch o {
	case FaceUp:
		return 0, -1
	case FaceDown:
		return 0, 1
	case FaceLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Ticks counts discrete advances of the level state machine. One tick is
// nominally one real-time second.
type Ticks int
