package cafe

import (
	"math/rand"

	"github.com/charmbracelet/log"
)

// QueueConfig positions one customer line on the grid.
type QueueConfig struct {
	Length      int
	HeadX       float64 // Grid position of queue position 0
	HeadY       float64
	SlotSpacing float64 // Distance between consecutive line positions
	SpawnX      float64 // Where admitted customers walk in from
	SpawnY      float64
	ExitX       float64 // Walk-off target for served/angry customers
	ExitY       float64
}

// Queue is a FIFO line of pre-generated customers. Position 0 is the head;
// positions decrement monotonically as the line advances.
type Queue struct {
	cfg       QueueConfig
	tun       Tuning
	customers []*Customer
	processed int // Head departures so far
	served    int // Head departures that were satisfied
	lastAdmit Ticks
	admitted  int
}

// NewQueue pre-generates the entire roster for a level's line.
func NewQueue(cfg QueueConfig, rng *rand.Rand, menu []FoodItem, maxOrder int, impatience, multRange float64, tun Tuning, logger *log.Logger) *Queue {
	q := &Queue{cfg: cfg, tun: tun}
	for i := range cfg.Length {
		q.customers = append(q.customers, newCustomer(rng, menu, i, maxOrder, impatience, multRange, tun, logger))
	}
	return q
}

// Length returns the total roster size.
func (q *Queue) Length() int { return len(q.customers) }

// Customers returns the roster in construction order.
func (q *Queue) Customers() []*Customer { return q.customers }

// Head returns the customer currently at position 0, or nil once the whole
// roster has been processed.
func (q *Queue) Head() *Customer {
	if q.processed >= len(q.customers) {
		return nil
	}
	return q.customers[q.processed]
}

// Update advances the whole line by one tick: it admits the next customer
// when the spacing interval allows, updates every customer, and advances
// queue positions when the head departs.
func (q *Queue) Update(now Ticks) {
	q.admit(now)

	for _, c := range q.customers {
		sx := q.cfg.HeadX + float64(c.QueuePos())*q.cfg.SlotSpacing
		c.Update(now, sx, q.cfg.HeadY)
	}

	head := q.Head()
	if head == nil || !head.State().Departed() {
		return
	}
	// Queue advance: the head has left the line. Everyone still waiting
	// steps forward exactly once.
	if head.State() == CustomerServed || (head.State() == CustomerFinished && head.OrderSatisfied()) {
		q.served++
	}
	q.processed++
	for _, c := range q.customers[q.processed:] {
		if c.queuePos > 0 {
			c.queuePos--
		}
	}
}

// admit makes the next hidden customer visible once its position falls
// within the visible window and the minimum spacing since the previous
// admission has elapsed. One admission per tick at most, so customers never
// pop in simultaneously.
func (q *Queue) admit(now Ticks) {
	for _, c := range q.customers {
		if c.State() != CustomerHidden {
			continue
		}
		if c.QueuePos() >= q.tun.VisibleWindow {
			return
		}
		if q.admitted > 0 && now-q.lastAdmit < q.tun.AdmitSpacing {
			return
		}
		c.appear(now, q.cfg.SpawnX, q.cfg.SpawnY, q.cfg.ExitX, q.cfg.ExitY)
		q.lastAdmit = now
		q.admitted++
		return
	}
}

// Interact forwards a held-item interaction to the head customer. Only a
// visible, waiting head can be served.
func (q *Queue) Interact(itemName FoodID, now Ticks) Interaction {
	head := q.Head()
	if head == nil || !head.State().InLine() || head.QueuePos() != 0 {
		return Interaction{PrevState: NoTransition, Success: false}
	}
	return head.OnInteraction(itemName, now)
}

// Finished reports whether every customer's order has been satisfied.
// Every slot of every customer is checked, so the result does not depend
// on customers being processed strictly in line order.
func (q *Queue) Finished() bool {
	for _, c := range q.customers {
		if !c.OrderSatisfied() {
			return false
		}
	}
	return true
}

// NumberServed returns how many head customers departed satisfied.
func (q *Queue) NumberServed() int { return q.served }

// NumberProcessed returns how many customers have departed the line.
func (q *Queue) NumberProcessed() int { return q.processed }

// NumberIgnored returns how many customers departed unsatisfied.
func (q *Queue) NumberIgnored() int { return q.processed - q.served }

// NumberLeft returns how many customers have not yet been processed.
func (q *Queue) NumberLeft() int { return len(q.customers) - q.processed }

// QueueGroup aggregates the one or two simultaneous lines of a level so the
// engine treats them uniformly.
type QueueGroup struct {
	queues []*Queue
}

// NewQueueGroup wraps the given lines.
func NewQueueGroup(queues ...*Queue) *QueueGroup {
	return &QueueGroup{queues: queues}
}

// Queues returns the contained lines.
func (g *QueueGroup) Queues() []*Queue { return g.queues }

// Update advances every line.
func (g *QueueGroup) Update(now Ticks) {
	for _, q := range g.queues {
		q.Update(now)
	}
}

// Interact forwards to the line at the given index.
func (g *QueueGroup) Interact(index int, itemName FoodID, now Ticks) Interaction {
	if index < 0 || index >= len(g.queues) {
		return Interaction{PrevState: NoTransition, Success: false}
	}
	return g.queues[index].Interact(itemName, now)
}

// Finished reports whether every line is finished.
func (g *QueueGroup) Finished() bool {
	for _, q := range g.queues {
		if !q.Finished() {
			return false
		}
	}
	return true
}

// NumberServed sums served counts across lines.
func (g *QueueGroup) NumberServed() int {
	n := 0
	for _, q := range g.queues {
		n += q.NumberServed()
	}
	return n
}

// NumberProcessed sums processed counts across lines.
func (g *QueueGroup) NumberProcessed() int {
	n := 0
	for _, q := range g.queues {
		n += q.NumberProcessed()
	}
	return n
}

// NumberIgnored sums ignored counts across lines.
func (g *QueueGroup) NumberIgnored() int {
	n := 0
	for _, q := range g.queues {
		n += q.NumberIgnored()
	}
	return n
}

// NumberLeft sums remaining counts across lines.
func (g *QueueGroup) NumberLeft() int {
	n := 0
	for _, q := range g.queues {
		n += q.NumberLeft()
	}
	return n
}

// TotalLength sums roster sizes across lines.
func (g *QueueGroup) TotalLength() int {
	n := 0
	for _, q := range g.queues {
		n += q.Length()
	}
	return n
}
