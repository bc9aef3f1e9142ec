package cafe

// Msg is a message delivered to the engine's mailbox. Messages are
// processed strictly in arrival order on the engine's single logic
// goroutine; there is no ordering guarantee between independent producers
// (a tap and a tick race freely, which the design tolerates).
type Msg interface {
	engineMsg()
}

// TickMsg advances the level state machine by one logical tick.
type TickMsg struct{}

func (TickMsg) engineMsg() {}

// FrameMsg advances fine-grained movement between ticks (the repoll step).
type FrameMsg struct{}

func (FrameMsg) engineMsg() {}

// TapMsg is a player tap in grid coordinates.
type TapMsg struct {
	GX, GY float64
}

func (TapMsg) engineMsg() {}

// InteractMsg resolves a queued interaction against the named item.
type InteractMsg struct {
	Item ItemID
}

func (InteractMsg) engineMsg() {}

// LoadLevelMsg jumps to a specific level and restarts the progression.
type LoadLevelMsg struct {
	Level int
}

func (LoadLevelMsg) engineMsg() {}

// NextLevelMsg advances past a completed level's summary.
type NextLevelMsg struct{}

func (NextLevelMsg) engineMsg() {}

// DialogClosedMsg reports that the platform dismissed the post-level dialog.
type DialogClosedMsg struct{}

func (DialogClosedMsg) engineMsg() {}

// Event is an outbound notification to rendering/sound/UI collaborators.
// Events are fire-and-forget: the state machine's progression never depends
// on one being delivered, and a full channel drops rather than blocks.
type Event interface {
	engineEvent()
}

// AnnounceEvent shows an announcement banner.
type AnnounceEvent struct {
	Text      string
	Emphasize bool
}

func (AnnounceEvent) engineEvent() {}

// ClearAnnouncementEvent hides the announcement banner.
type ClearAnnouncementEvent struct{}

func (ClearAnnouncementEvent) engineEvent() {}

// SetPausedEvent pauses or unpauses rendering and input.
type SetPausedEvent struct {
	Paused bool
}

func (SetPausedEvent) engineEvent() {}

// LevelEndedEvent reports a successfully cleared level.
type LevelEndedEvent struct {
	Level int
}

func (LevelEndedEvent) engineEvent() {}

// LevelFailedEvent reports an insufficient serve count.
type LevelFailedEvent struct {
	Level    int
	Required int
	Achieved int
}

func (LevelFailedEvent) engineEvent() {}

// GameOverEvent reports that no levels remain. Terminal.
type GameOverEvent struct{}

func (GameOverEvent) engineEvent() {}

// PlayLevelMusicEvent asks the sound collaborator for the level's track.
type PlayLevelMusicEvent struct {
	Level int
}

func (PlayLevelMusicEvent) engineEvent() {}

// EffectID identifies a short sound effect.
type EffectID int

const (
	EffectServe EffectID = iota
	EffectTrash
	EffectPickup
	EffectMachineDone
)

// PlayShortEffectEvent asks the sound collaborator for a one-shot effect.
type PlayShortEffectEvent struct {
	Effect EffectID
}

func (PlayShortEffectEvent) engineEvent() {}

// LevelSummaryEvent carries the end-of-level earnings breakdown.
type LevelSummaryEvent struct {
	Level        int
	TotalPoints  int
	TotalMoney   int
	EarnedPoints int
	EarnedMoney  int
	BonusPoints  int
	BonusMoney   int
}

func (LevelSummaryEvent) engineEvent() {}
