package protocol

import (
	"github.com/lox/videopoker/poker"
)

const (
	// Client -> Server
	TypeDeal   = "deal"
	TypeHold   = "hold"
	TypeState  = "state"
	TypeAdvise = "advise"

	// Server -> Client
	TypeSnapshot = "snapshot"
	TypeAdvice   = "advice"
	TypeError    = "error"
)

// Error codes
const (
	CodeBadRequest       = "bad_request"
	CodeUnknownType      = "unknown_type"
	CodeInsufficientDeck = "insufficient_deck"
	CodeInternal         = "internal"
	CodeSessionNotFound  = "session_not_found"
	CodeRegistryFull     = "registry_full"
)

// Client -> Server Messages

// Request is any client command. Index is required for hold requests.
type Request struct {
	Type  string `json:"type"`
	Index *int   `json:"index,omitempty"`
}

// NewHold builds a hold request for the given slot
func NewHold(index int) *Request {
	return &Request{Type: TypeHold, Index: &index}
}

// Server -> Client Messages

// Snapshot is the full visible state of a session
type Snapshot struct {
	Type        string   `json:"type"`
	SessionID   string   `json:"session_id"`
	State       string   `json:"state"`
	Round       int      `json:"round"`
	Cards       []string `json:"cards"`
	Holds       []bool   `json:"holds"`
	Category    string   `json:"category"`     // e.g., "Two Pair"
	CategoryKey string   `json:"category_key"` // e.g., "two_pair"
}

// Advice is the advisor's suggested holds for the current hand
type Advice struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Holds     []bool `json:"holds"`
	Reasoning string `json:"reasoning"`
}

// Error message
type Error struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError builds an error message
func NewError(code, message string) *Error {
	return &Error{Type: TypeError, Code: code, Message: message}
}

// CardStrings converts cards to their two-character notation
func CardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
