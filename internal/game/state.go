package game

import "fmt"

// GameState is the phase of a session. Exactly one is active at a time.
type GameState uint8

const (
	// NewGame is the initial state; the table shows the filler hand.
	NewGame GameState = iota
	// FirstDeal means five cards are dealt and holds may be toggled.
	FirstDeal
	// GameOver means the replacement draw happened and the hand is final.
	GameOver
)

// String returns a human-readable state name.
func (s GameState) String() string {
	switch s {
	case NewGame:
		return "New Game"
	case FirstDeal:
		return "First Deal"
	case GameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// Key returns the snake_case identifier used on the wire.
func (s GameState) Key() string {
	switch s {
	case NewGame:
		return "new_game"
	case FirstDeal:
		return "first_deal"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s GameState) MarshalText() ([]byte, error) {
	if s > GameOver {
		return nil, fmt.Errorf("unknown game state %d", s)
	}
	return []byte(s.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *GameState) UnmarshalText(text []byte) error {
	for candidate := NewGame; candidate <= GameOver; candidate++ {
		if string(text) == candidate.Key() {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", text)
}
