package cafe

import (
	"math/rand"

	"github.com/charmbracelet/log"
)

// CustomerState is a customer's lifecycle state. Mood is folded into the
// in-line states: happy and ok are waiting moods, Angry is the walk-off
// after the mood decays past ok.
type CustomerState int

const (
	CustomerHidden CustomerState = iota
	CustomerInLineHappy
	CustomerInLineOK
	CustomerAngry  // Leaving unsatisfied
	CustomerServed // Leaving satisfied
	CustomerFinished
)

// String returns a human-readable name for the state.
func (s CustomerState) String() string {
	switch s {
	case CustomerHidden:
		return "hidden"
	case CustomerInLineHappy:
		return "happy"
	case CustomerInLineOK:
		return "ok"
	case CustomerAngry:
		return "angry"
	case CustomerServed:
		return "served"
	case CustomerFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// InLine reports whether the customer is waiting in the queue.
func (s CustomerState) InLine() bool {
	return s == CustomerInLineHappy || s == CustomerInLineOK
}

// Departed reports whether the customer has left or is leaving the line.
func (s CustomerState) Departed() bool {
	return s == CustomerServed || s == CustomerAngry || s == CustomerFinished
}

// Order-size weights: sizes 1..3 are drawn with weights 3:2:1, then capped
// at the level's max order size.
var orderSizeWeights = []int{3, 2, 1}

// Customer is one queued customer: a pre-generated multi-item order, a
// randomized impatience timer, and randomized reward multipliers. The whole
// roster is generated at queue construction; customers are never reused.
type Customer struct {
	state    CustomerState
	queuePos int

	x, y             float64
	targetX, targetY float64
	exitX, exitY     float64
	rate             float64

	order      []*FoodItem
	pointsMult float64
	moneyMult  float64

	moodSince     Ticks // Last mood reset
	moodThreshold Ticks
	lineSince     Ticks // When the customer became visible, for wait scoring
}

// newCustomer generates a customer with a random order drawn from the menu.
func newCustomer(rng *rand.Rand, menu []FoodItem, pos int, maxOrder int, impatience, multRange float64, tun Tuning, logger *log.Logger) *Customer {
	size := drawOrderSize(rng, maxOrder, logger)
	order := make([]*FoodItem, 0, size)
	for range size {
		order = append(order, sampleMenu(rng, menu).Clone())
	}

	// Per-customer impatience in [1, 1+impatience) shortens the mood timer.
	factor := 1 + rng.Float64()*impatience
	threshold := Ticks(float64(tun.MoodBaseTicks) / factor)
	if threshold < 1 {
		threshold = 1
	}

	return &Customer{
		state:         CustomerHidden,
		queuePos:      pos,
		rate:          tun.CustomerRate,
		order:         order,
		pointsMult:    1 + rng.Float64()*multRange,
		moneyMult:     1 + rng.Float64()*multRange,
		moodThreshold: threshold,
	}
}

// drawOrderSize samples the discrete weighted size distribution, clamping
// out-of-range results to the configured maximum.
func drawOrderSize(rng *rand.Rand, maxOrder int, logger *log.Logger) int {
	if maxOrder < 1 {
		maxOrder = 1
	}
	total := 0
	for _, w := range orderSizeWeights {
		total += w
	}
	roll := rng.Intn(total)
	size := 0
	for i, w := range orderSizeWeights {
		roll -= w
		if roll < 0 {
			size = i + 1
			break
		}
	}
	if size < 1 || size > maxOrder {
		if logger != nil {
			logger.Warn("order size out of range, clamping", "size", size, "max", maxOrder)
		}
		if size < 1 {
			size = 1
		} else {
			size = maxOrder
		}
	}
	return size
}

// sampleMenu picks a food item proportional to its configured weight using
// cumulative bins.
func sampleMenu(rng *rand.Rand, menu []FoodItem) FoodItem {
	total := 0.0
	for _, f := range menu {
		total += f.Weight
	}
	roll := rng.Float64() * total
	for _, f := range menu {
		roll -= f.Weight
		if roll < 0 {
			return f
		}
	}
	return menu[len(menu)-1]
}

// State returns the customer's lifecycle state.
func (c *Customer) State() CustomerState { return c.state }

// QueuePos returns the customer's distance from being served (0 = head).
func (c *Customer) QueuePos() int { return c.queuePos }

// Position returns the customer's grid position.
func (c *Customer) Position() (float64, float64) { return c.x, c.y }

// Visible reports whether the customer is on screen.
func (c *Customer) Visible() bool {
	return c.state != CustomerHidden && c.state != CustomerFinished
}

// Order returns the customer's order slots.
func (c *Customer) Order() []*FoodItem { return c.order }

// OrderSatisfied reports whether every order slot is satisfied.
func (c *Customer) OrderSatisfied() bool {
	for _, f := range c.order {
		if !f.Satisfied {
			return false
		}
	}
	return true
}

// appear transitions Hidden -> InLineHappy when the queue admits the
// customer, placing them at the given spawn point.
func (c *Customer) appear(now Ticks, spawnX, spawnY, exitX, exitY float64) {
	if c.state != CustomerHidden {
		return
	}
	c.state = CustomerInLineHappy
	c.x, c.y = spawnX, spawnY
	c.exitX, c.exitY = exitX, exitY
	c.moodSince = now
	c.lineSince = now
}

// Update advances the customer's state machine by one tick. slotX/slotY is
// the line position for the customer's current queue position.
func (c *Customer) Update(now Ticks, slotX, slotY float64) {
	switch c.state {
	case CustomerHidden, CustomerFinished:
		return

	case CustomerServed, CustomerAngry:
		c.targetX, c.targetY = c.exitX, c.exitY
		c.move()
		if c.atTarget() {
			c.state = CustomerFinished
		}

	case CustomerInLineHappy, CustomerInLineOK:
		c.targetX, c.targetY = slotX, slotY
		c.move()

		// A fully satisfied order preempts mood decay.
		if c.OrderSatisfied() {
			c.state = CustomerServed
			return
		}
		// No mood decay while waiting behind someone.
		if c.queuePos > 0 {
			c.moodSince = now
			return
		}
		if now-c.moodSince >= c.moodThreshold {
			c.moodSince = now
			if c.state == CustomerInLineHappy {
				c.state = CustomerInLineOK
			} else {
				// Second expiry at the head: the customer leaves
				// unsatisfied and is counted as ignored.
				c.state = CustomerAngry
			}
		}
	}
}

// OnInteraction marks the first unsatisfied order slot matching itemName as
// satisfied and returns the scaled reward. wait is the customer's time in
// line. A non-matching item yields a failed Interaction.
func (c *Customer) OnInteraction(itemName FoodID, now Ticks) Interaction {
	for i, f := range c.order {
		if f.ID != itemName || f.Satisfied {
			continue
		}
		f.Satisfied = true
		p, m := f.Score(KindQueue, now-c.lineSince)
		return Interaction{
			PrevState: i,
			Success:   true,
			Points:    int(float64(p) * c.pointsMult),
			Money:     int(float64(m) * c.moneyMult),
		}
	}
	return Interaction{PrevState: NoTransition, Success: false}
}

func (c *Customer) move() {
	c.x = stepToward(c.x, c.targetX, c.rate)
	c.y = stepToward(c.y, c.targetY, c.rate)
}

func (c *Customer) atTarget() bool {
	return c.x == c.targetX && c.y == c.targetY
}

// stepToward moves cur toward want by at most rate, landing exactly on want.
func stepToward(cur, want, rate float64) float64 {
	d := want - cur
	if d > rate {
		return cur + rate
	}
	if d < -rate {
		return cur - rate
	}
	return want
}
