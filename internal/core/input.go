package core

// Action represents a semantic input action, abstracted from physical key
// presses. The platform maps keys to actions; the engine consumes actions.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - walk one cell up
	ActionDown           // S, Down arrow - walk one cell down
	ActionLeft           // A, Left arrow - walk one cell left
	ActionRight          // D, Right arrow - walk one cell right
	ActionTap            // Space, Enter - tap at the actor's position
	ActionConfirm        // Enter - confirm in dialogs
	ActionPause          // P, Esc - pause/unpause
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionTap:
		return "Tap"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Tap is a raw pointer/tap event in device coordinates. It must be converted
// through Grid before reaching any item sensitivity check.
type Tap struct {
	X, Y float64
}

// RuntimeConfig contains configuration passed to the platform at startup.
type RuntimeConfig struct {
	ScreenW   int    // Screen width in characters
	ScreenH   int    // Screen height in characters
	FPS       int    // Render frames per second
	Seed      int64  // RNG seed for deterministic simulation (0 = time-based)
	DBPath    string // Saves database location
	Level     int    // Starting level override (0 = from save)
	Character string // Save to resume (empty = ask)
}

// DefaultRuntimeConfig returns a RuntimeConfig with sensible defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		FPS:     30,
	}
}
