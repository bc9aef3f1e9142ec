package cafe

// FoodItem describes a producible item's scoring rules and its weight in
// customer order generation. Each customer owns independent clones so
// satisfied flags never leak between orders.
type FoodItem struct {
	ID        FoodID
	Weight    float64 // Order-probability weight in menu sampling
	Satisfied bool    // Per-order flag, meaningful only on clones

	CustomerPoints int // Base points for serving a customer
	CustomerMoney  int // Base money for serving a customer
	TrashPoints    int // Points when tossed (usually negative)
	TrashMoney     int
	DecayPerTick   float64 // Serving points shrink with customer wait time
}

// Clone returns an independent copy with a fresh satisfied flag.
func (f FoodItem) Clone() *FoodItem {
	f.Satisfied = false
	return &f
}

// Score returns the point and money deltas for interacting this food with
// the given counterparty after the given wait.
func (f FoodItem) Score(counterparty ItemKind, wait Ticks) (points, money int) {
	switch counterparty {
	case KindTrash:
		return f.TrashPoints, f.TrashMoney
	case KindQueue:
		p := f.CustomerPoints - int(f.DecayPerTick*float64(wait))
		if p < 1 {
			p = 1
		}
		return p, f.CustomerMoney
	default:
		return 0, 0
	}
}

// DefaultMenu returns the standard five-item menu.
func DefaultMenu() []FoodItem {
	return []FoodItem{
		{ID: FoodCoffee, Weight: 3, CustomerPoints: 50, CustomerMoney: 3, TrashPoints: -10, TrashMoney: 0, DecayPerTick: 1},
		{ID: FoodSmoothie, Weight: 2, CustomerPoints: 70, CustomerMoney: 4, TrashPoints: -15, TrashMoney: 0, DecayPerTick: 1},
		{ID: FoodPopcorn, Weight: 2, CustomerPoints: 60, CustomerMoney: 3, TrashPoints: -10, TrashMoney: 0, DecayPerTick: 1},
		{ID: FoodCupcake, Weight: 1.5, CustomerPoints: 40, CustomerMoney: 2, TrashPoints: -5, TrashMoney: 0, DecayPerTick: 0.5},
		{ID: FoodPie, Weight: 1, CustomerPoints: 45, CustomerMoney: 2, TrashPoints: -5, TrashMoney: 0, DecayPerTick: 0.5},
	}
}

// menuFood looks up a food by id in a menu. Returns a zero FoodItem when
// the id is unknown.
func menuFood(menu []FoodItem, id FoodID) FoodItem {
	for _, f := range menu {
		if f.ID == id {
			return f
		}
	}
	return FoodItem{ID: id}
}
