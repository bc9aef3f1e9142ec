package cafe

// ItemView is the render-side view of a stationary item.
type ItemView struct {
	ID     ItemID
	Kind   ItemKind
	X, Y   float64
	State  string
	Stored FoodID
}

// CustomerView is the render-side view of a customer.
type CustomerView struct {
	X, Y     float64
	State    CustomerState
	QueuePos int
}

// Snapshot is a consistent copy of everything the render context needs for
// one frame. Taken under the engine's loop lock, so it never observes a
// half-applied message.
type Snapshot struct {
	Phase        Phase
	Announcement string
	Tick         Ticks

	ActorX, ActorY float64
	Held           FoodID

	Items     []ItemView
	Customers []CustomerView

	LevelName string
	Session   SessionSnapshot

	Served    int
	Ignored   int
	Remaining int
}

// Snapshot captures the current engine state for rendering.
func (e *Engine) Snapshot() Snapshot {
	e.snapshotLock.Lock()
	defer e.snapshotLock.Unlock()

	snap := Snapshot{
		Phase:        e.phase,
		Announcement: e.announcement,
		Tick:         e.now,
		Session:      e.ses.Snapshot(),
	}
	if e.lvl == nil {
		return snap
	}
	snap.ActorX, snap.ActorY = e.lvl.actor.Position()
	snap.Held = e.lvl.actor.Held()
	snap.LevelName = e.lvl.cfg.Name
	snap.Served = e.lvl.queues.NumberServed()
	snap.Ignored = e.lvl.queues.NumberIgnored()
	snap.Remaining = e.lvl.queues.NumberLeft()

	for _, it := range e.lvl.items {
		x, y := it.Position()
		snap.Items = append(snap.Items, ItemView{
			ID:     it.ID(),
			Kind:   it.Kind(),
			X:      x,
			Y:      y,
			State:  it.StateName(),
			Stored: it.Stored(),
		})
	}
	for _, q := range e.lvl.queues.Queues() {
		for _, c := range q.Customers() {
			if !c.Visible() {
				continue
			}
			x, y := c.Position()
			snap.Customers = append(snap.Customers, CustomerView{
				X: x, Y: y, State: c.State(), QueuePos: c.QueuePos(),
			})
		}
	}
	return snap
}
