package cafe

import (
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Phase is a state of the level-progression state machine.
type Phase int

const (
	PhasePreplay Phase = iota
	PhasePreplayMessage
	PhaseInplay
	PhasePostplayMessage
	PhasePostplay
	PhaseGameEnd
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePreplay:
		return "preplay"
	case PhasePreplayMessage:
		return "preplay_message"
	case PhaseInplay:
		return "inplay"
	case PhasePostplayMessage:
		return "postplay_message"
	case PhasePostplay:
		return "postplay"
	case PhaseGameEnd:
		return "game_end"
	default:
		return "unknown"
	}
}

// bonusPending marks the postplay countdown as already fired, so the bonus
// computation runs exactly once.
const bonusFired = -1

// Engine is the game logic orchestrator. It owns the actor, the item
// registry, the queue group and the level-progression state machine, and it
// consumes ticks and interactions from a single mailbox so all mutation
// happens on one logical thread. Collaborators read state only through
// Snapshot and the outbound event channel.
type Engine struct {
	logger *log.Logger
	tun    Tuning
	ses    *Session
	rng    *rand.Rand

	msgCh  chan Msg
	events chan Event
	done   chan struct{}

	paused    atomic.Bool // Stop acting on ticks, keep looping
	suspended atomic.Bool // Stop the clock entirely, cheaply resumable

	// Fields below are mutated only inside the message loop; snapshotLock
	// makes them readable from the render context.
	snapshotLock chMutex
	lvl          *levelState
	phase        Phase
	now          Ticks
	elapsed      Ticks
	countdown    int
	notified     bool // Postplay notification emitted
	announcement string
}

// chMutex is a channel-based mutex so the engine can also try-lock from the
// render path without blocking the simulation.
type chMutex chan struct{}

func newChMutex() chMutex {
	m := make(chMutex, 1)
	m <- struct{}{}
	return m
}

func (m chMutex) Lock()   { <-m }
func (m chMutex) Unlock() { m <- struct{}{} }

// NewEngine creates an engine for the given session. A nil logger discards
// diagnostics.
func NewEngine(ses *Session, tun Tuning, seed int64, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		logger:       logger,
		tun:          tun,
		ses:          ses,
		rng:          rand.New(rand.NewSource(seed)),
		msgCh:        make(chan Msg, 256),
		events:       make(chan Event, 64),
		done:         make(chan struct{}),
		snapshotLock: newChMutex(),
		phase:        PhasePreplay,
	}
}

// Start launches the message loop and the internal clock.
func (e *Engine) Start() {
	go e.loop()
	go e.clock()
}

// Stop shuts the engine down.
func (e *Engine) Stop() {
	close(e.done)
}

// Send delivers a message to the engine's mailbox.
func (e *Engine) Send(m Msg) {
	select {
	case e.msgCh <- m:
	case <-e.done:
	}
}

// Events returns the outbound notification channel.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Pause stops the engine from acting on clock events without stopping the
// loops. Idempotent.
func (e *Engine) Pause(paused bool) {
	e.paused.Store(paused)
}

// Paused reports the pause flag.
func (e *Engine) Paused() bool {
	return e.paused.Load()
}

// Suspend stops the clock from producing events altogether. Idempotent and
// cheaply resumable.
func (e *Engine) Suspend(suspended bool) {
	e.suspended.Store(suspended)
}

// loop is the single consumer of the mailbox. Messages are handled strictly
// in arrival order; no two messages are ever processed concurrently.
func (e *Engine) loop() {
	for {
		select {
		case m := <-e.msgCh:
			e.snapshotLock.Lock()
			e.handle(m)
			e.snapshotLock.Unlock()
		case <-e.done:
			return
		}
	}
}

// clock is the periodic event source: a sleep-and-repoll loop with a fine
// interval bounding jitter and a nominal one-second tick period.
func (e *Engine) clock() {
	ticker := time.NewTicker(e.tun.Repoll)
	defer ticker.Stop()

	var acc time.Duration
	for {
		select {
		case <-ticker.C:
			if e.suspended.Load() {
				continue
			}
			e.Send(FrameMsg{})
			acc += e.tun.Repoll
			if acc >= e.tun.TickPeriod {
				acc = 0
				e.Send(TickMsg{})
			}
		case <-e.done:
			return
		}
	}
}

func (e *Engine) handle(m Msg) {
	switch m := m.(type) {
	case TickMsg:
		e.handleTick()
	case FrameMsg:
		e.handleFrame()
	case TapMsg:
		e.handleTap(m)
	case InteractMsg:
		e.handleInteract(m.Item)
	case LoadLevelMsg:
		e.ses.SetLevel(m.Level)
		e.phase = PhasePreplay
	case NextLevelMsg:
		if e.phase == PhasePostplay {
			e.ses.AdvanceLevel()
			e.phase = PhasePreplay
		}
	case DialogClosedMsg:
		if e.phase == PhasePostplay {
			e.Pause(false)
		}
	}
}

// handleTick is the level-progression state machine, advanced exactly once
// per tick message.
func (e *Engine) handleTick() {
	e.now++
	switch e.phase {
	case PhasePreplay:
		e.startLevel()

	case PhasePreplayMessage:
		if e.countdown > 0 {
			e.announce(fmt.Sprintf("Ready... %d", e.countdown), true)
			e.countdown--
			return
		}
		e.clearAnnouncement()
		e.emit(SetPausedEvent{Paused: false})
		e.phase = PhaseInplay

	case PhaseInplay:
		if e.paused.Load() {
			return
		}
		e.elapsed++
		remaining := e.ses.DecRemaining()
		for _, it := range e.lvl.items {
			if res := it.OnUpdate(e.now); res.PrevState != NoTransition && it.StateName() == StateDone {
				e.emit(PlayShortEffectEvent{Effect: EffectMachineDone})
			}
		}
		e.lvl.queues.Update(e.now)
		if remaining <= 0 || e.lvl.queues.Finished() {
			e.endLevel(remaining <= 0)
		}

	case PhasePostplayMessage:
		if e.countdown > 0 {
			e.countdown--
			return
		}
		if e.countdown == 0 {
			e.countdown = bonusFired
			e.settleLevel()
			e.phase = PhasePostplay
			e.notified = false
		}

	case PhasePostplay:
		e.finishLevel()

	case PhaseGameEnd:
		// Terminal.
	}
}

// startLevel loads and assembles the session's current level, substituting
// a synthesized generic level for a missing definition.
func (e *Engine) startLevel() {
	index := e.ses.Level()
	cfg := GetLevel(index)
	if cfg == nil {
		e.logger.Warn("no level definition, substituting generic level", "level", index)
		generic := GenericLevel(index)
		cfg = &generic
	}
	e.lvl = buildLevel(*cfg, e.ses, e.rng, e.tun, e.logger)
	e.elapsed = 0
	e.countdown = e.tun.Countdown
	e.phase = PhasePreplayMessage
	e.emit(SetPausedEvent{Paused: true})
	e.emit(PlayLevelMusicEvent{Level: cfg.ID})
	e.logger.Info("level assembled", "level", cfg.ID, "name", cfg.Name, "customers", e.lvl.queues.TotalLength())
}

// endLevel arms the post-level countdown when the timer runs out or every
// customer has been satisfied.
func (e *Engine) endLevel(timedOut bool) {
	if timedOut {
		e.announce("Time's up!", true)
	} else {
		e.announce("All customers served!", true)
	}
	e.countdown = e.tun.Countdown
	e.phase = PhasePostplayMessage
}

// settleLevel computes the end-of-level bonus and dissatisfaction penalty.
// Runs exactly once per level, guarded by the countdown sentinel.
func (e *Engine) settleLevel() {
	cfg := e.lvl.cfg
	served := e.lvl.queues.NumberServed()
	ignored := e.lvl.queues.NumberIgnored()
	missed := e.lvl.queues.TotalLength() - served

	// The derating curve applies to points and money independently.
	bonusPoints := max(0, cfg.BonusPoints-cfg.BonusDerating*missed)
	bonusMoney := max(0, cfg.BonusMoney-cfg.BonusDerating*missed)
	penalty := cfg.PenaltyPoints * ignored

	e.ses.AddEarnings(bonusPoints-penalty, bonusMoney)

	if served >= cfg.ToClear {
		snap := e.ses.Snapshot()
		e.emit(LevelSummaryEvent{
			Level:        cfg.ID,
			TotalPoints:  snap.Points,
			TotalMoney:   snap.Money,
			EarnedPoints: snap.LevelPoints,
			EarnedMoney:  snap.LevelMoney,
			BonusPoints:  bonusPoints,
			BonusMoney:   bonusMoney,
		})
	}
	e.logger.Info("level settled",
		"level", cfg.ID, "served", served, "ignored", ignored,
		"bonus_points", bonusPoints, "bonus_money", bonusMoney, "penalty", penalty)
}

// finishLevel decides where the progression goes after settlement: roll the
// tutorial into the next shift, wait on the between-level dialog, or end
// the game.
func (e *Engine) finishLevel() {
	cfg := e.lvl.cfg
	if cfg.Tutorial {
		e.clearAnnouncement()
		e.ses.AdvanceLevel()
		e.phase = PhasePreplay
		return
	}
	if e.notified {
		return // Waiting for NextLevelMsg / LoadLevelMsg.
	}
	e.notified = true
	served := e.lvl.queues.NumberServed()

	if e.ses.Level()+1 >= LevelCount() && served >= cfg.ToClear {
		e.emit(GameOverEvent{})
		e.phase = PhaseGameEnd
		return
	}
	e.emit(SetPausedEvent{Paused: true})
	if served < cfg.ToClear {
		e.emit(LevelFailedEvent{Level: cfg.ID, Required: cfg.ToClear, Achieved: served})
	} else {
		e.emit(LevelEndedEvent{Level: cfg.ID})
	}
}

// handleFrame advances fine-grained movement and runs the proximity check
// that turns queued taps into interactions.
func (e *Engine) handleFrame() {
	if e.phase != PhaseInplay || e.paused.Load() || e.lvl == nil {
		return
	}
	e.lvl.actor.Move()

	ax, ay := e.lvl.actor.Position()
	for _, it := range e.lvl.items {
		if it.HasPending() && it.SensitivityRect().Contains(ax, ay) && it.ConsumePending() {
			e.post(InteractMsg{Item: it.ID()})
		}
	}
}

// post enqueues a message from inside the loop without ever blocking on the
// engine's own mailbox.
func (e *Engine) post(m Msg) {
	select {
	case e.msgCh <- m:
	default:
		e.logger.Warn("mailbox full, dropping message", "msg", fmt.Sprintf("%T", m))
	}
}

// handleTap routes a tap in grid coordinates: it retargets the actor's walk
// and queues a pending interaction on the item whose sensitivity area
// contains the tap (clearing everyone else's).
func (e *Engine) handleTap(m TapMsg) {
	if e.lvl == nil || e.paused.Load() {
		return
	}
	e.lvl.actor.SetTarget(m.GX, m.GY)
	hit := false
	for _, it := range e.lvl.items {
		if hit {
			it.ClearPending()
			continue
		}
		hit = it.HandleTap(m.GX, m.GY)
	}
}

// handleInteract resolves an interaction between the actor and the target
// item: the actor-transition rule table. Exactly one rule fires per
// interaction; an unmatched combination is an explicit no-op.
func (e *Engine) handleInteract(id ItemID) {
	if e.lvl == nil || e.phase != PhaseInplay {
		return
	}
	it := e.lvl.item(id)
	if it == nil {
		e.logger.Warn("interaction against unknown item", "item", id)
		return
	}
	actor := e.lvl.actor
	held := actor.Held()
	cfg := e.lvl.cfg

	switch it.Kind() {
	case KindQueue:
		if held == FoodNone {
			return
		}
		res := e.lvl.queues.Interact(it.QueueIndex(), held, e.now)
		if !res.Success {
			return
		}
		e.ses.AddEarnings(
			int(float64(res.Points)*cfg.PointsMult),
			int(float64(res.Money)*cfg.MoneyMult),
		)
		actor.SetHeld(FoodNone)
		e.emit(PlayShortEffectEvent{Effect: EffectServe})

	case KindTrash:
		if held == FoodNone {
			return
		}
		points, money := menuFood(e.lvl.menu, held).Score(KindTrash, 0)
		e.ses.AddEarnings(points, money)
		actor.SetHeld(FoodNone)
		e.emit(PlayShortEffectEvent{Effect: EffectTrash})

	case KindCounter:
		if newHeld, changed := it.Exchange(held); changed {
			actor.SetHeld(newHeld)
			e.emit(PlayShortEffectEvent{Effect: EffectPickup})
		}

	case KindSource:
		if held != FoodNone {
			return
		}
		actor.SetHeld(it.Product())
		e.emit(PlayShortEffectEvent{Effect: EffectPickup})

	case KindMachine:
		// Picking up a finished product needs empty hands; otherwise the
		// tap drives the machine's own state machine.
		if it.StateName() == StateDone && held != FoodNone {
			return
		}
		res := it.OnInteraction(held, e.now)
		if res.PrevState != NoTransition && it.StateNameAt(res.PrevState) == StateDone {
			actor.SetHeld(it.Product())
			e.emit(PlayShortEffectEvent{Effect: EffectPickup})
		}
	}
}

func (e *Engine) announce(text string, emphasize bool) {
	e.announcement = text
	e.emit(AnnounceEvent{Text: text, Emphasize: emphasize})
}

func (e *Engine) clearAnnouncement() {
	e.announcement = ""
	e.emit(ClearAnnouncementEvent{})
}

// emit sends an outbound notification without blocking; a slow or absent
// collaborator never stalls the simulation.
func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
		e.logger.Debug("event channel full, dropping", "event", fmt.Sprintf("%T", ev))
	}
}
