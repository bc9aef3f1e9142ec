package cafe

import (
	"sort"
	"sync"
)

// Session is the game-wide mutable state register: money, points, level
// progress, remaining time, owned upgrades. One instance exists per play
// session and is passed explicitly to the engine, the platform and the
// storage layer; nothing reaches it through package state.
//
// Every accessor is atomic with respect to the read-modify-write it
// performs: compound updates such as "add to money and to level money" are
// single methods under one lock, and the render context only ever sees
// consistent snapshots.
type Session struct {
	mu sync.Mutex

	character string
	money     int
	points    int

	levelMoney  int
	levelPoints int

	level     int
	remaining Ticks

	upgrades map[string]bool
}

// SessionSnapshot is a consistent read-only copy of the session for the
// render context and for persistence.
type SessionSnapshot struct {
	Character   string
	Money       int
	Points      int
	LevelMoney  int
	LevelPoints int
	Level       int
	Remaining   Ticks
	Upgrades    []string
}

// NewSession creates an empty session for a new game.
func NewSession(character string) *Session {
	return &Session{
		character: character,
		upgrades:  make(map[string]bool),
	}
}

// Snapshot returns a consistent copy of all session fields.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{
		Character:   s.character,
		Money:       s.money,
		Points:      s.points,
		LevelMoney:  s.levelMoney,
		LevelPoints: s.levelPoints,
		Level:       s.level,
		Remaining:   s.remaining,
		Upgrades:    s.ownedLocked(),
	}
}

// AddEarnings adds point and money deltas to both the running totals and
// the per-level totals in one atomic operation.
func (s *Session) AddEarnings(points, money int) {
	s.mu.Lock()
	s.points += points
	s.money += money
	s.levelPoints += points
	s.levelMoney += money
	s.mu.Unlock()
}

// SpendMoney deducts amount if affordable, reporting success.
func (s *Session) SpendMoney(amount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount > s.money {
		return false
	}
	s.money -= amount
	return true
}

// ResetLevelTotals zeroes the per-level earnings at level start.
func (s *Session) ResetLevelTotals() {
	s.mu.Lock()
	s.levelPoints = 0
	s.levelMoney = 0
	s.mu.Unlock()
}

// Level returns the current level index.
func (s *Session) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetLevel jumps to the given level index.
func (s *Session) SetLevel(level int) {
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
}

// AdvanceLevel moves to the next level and returns the new index.
func (s *Session) AdvanceLevel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level++
	return s.level
}

// Remaining returns the remaining level time.
func (s *Session) Remaining() Ticks {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// SetRemaining arms the level timer.
func (s *Session) SetRemaining(t Ticks) {
	s.mu.Lock()
	s.remaining = t
	s.mu.Unlock()
}

// DecRemaining decrements the level timer, floored at zero, and returns the
// new value. Decrement and read are one atomic step.
func (s *Session) DecRemaining() Ticks {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remaining > 0 {
		s.remaining--
	}
	return s.remaining
}

// Own records an upgrade as purchased.
func (s *Session) Own(upgrade string) {
	s.mu.Lock()
	s.upgrades[upgrade] = true
	s.mu.Unlock()
}

// Owns reports whether an upgrade is owned.
func (s *Session) Owns(upgrade string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upgrades[upgrade]
}

// OwnedUpgrades returns the owned upgrade ids, sorted.
func (s *Session) OwnedUpgrades() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownedLocked()
}

func (s *Session) ownedLocked() []string {
	ids := make([]string, 0, len(s.upgrades))
	for id := range s.upgrades {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Character returns the active character name.
func (s *Session) Character() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.character
}

// Restore overwrites the session from a saved snapshot. Used by the
// persistence collaborator when loading a saved game.
func (s *Session) Restore(snap SessionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.character = snap.Character
	s.money = snap.Money
	s.points = snap.Points
	s.levelMoney = snap.LevelMoney
	s.levelPoints = snap.LevelPoints
	s.level = snap.Level
	s.remaining = snap.Remaining
	s.upgrades = make(map[string]bool, len(snap.Upgrades))
	for _, id := range snap.Upgrades {
		s.upgrades[id] = true
	}
}
