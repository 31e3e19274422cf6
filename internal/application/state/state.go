package state

// GameState represents the current state of the game session
type GameState int

const (
	StateLoading GameState = iota
	StatePlaying
	StateOver
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StateOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// CanTransition reports whether the session may move from s to next.
// The session only moves forward; Over is terminal.
func (s GameState) CanTransition(next GameState) bool {
	switch s {
	case StateLoading:
		return next == StatePlaying
	case StatePlaying:
		return next == StateOver
	default:
		return false
	}
}

// IsTerminal returns true for states that never change again
func (s GameState) IsTerminal() bool {
	return s == StateOver
}
