package server

import (
	"errors"

	"github.com/lox/videopoker/internal/game"
	"github.com/lox/videopoker/internal/protocol"
	"github.com/lox/videopoker/internal/strategy"
)

// CodeFor maps an error to its protocol error code
func CodeFor(err error) string {
	switch {
	case errors.Is(err, game.ErrInsufficientDeck):
		return protocol.CodeInsufficientDeck
	case errors.Is(err, ErrSessionNotFound):
		return protocol.CodeSessionNotFound
	case errors.Is(err, ErrRegistryFull):
		return protocol.CodeRegistryFull
	default:
		return protocol.CodeInternal
	}
}

// NewSnapshot captures the visible state of a session
func NewSnapshot(sessionID string, s *game.Session) *protocol.Snapshot {
	cards := s.Cards()
	holds := s.Holds()
	category := s.HandCategory()
	return &protocol.Snapshot{
		Type:        protocol.TypeSnapshot,
		SessionID:   sessionID,
		State:       s.State().Key(),
		Round:       s.Round(),
		Cards:       protocol.CardStrings(cards[:]),
		Holds:       holds[:],
		Category:    category.String(),
		CategoryKey: category.Key(),
	}
}

func encodeError(code, message string) ([]byte, error) {
	return protocol.Marshal(protocol.NewError(code, message))
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(data []byte) {
	var req protocol.Request
	if err := protocol.Unmarshal(data, &req); err != nil {
		c.sendError(protocol.CodeBadRequest, "Failed to parse request")
		return
	}
	c.logger.Debug("Received message", "type", req.Type)

	switch req.Type {
	case protocol.TypeDeal:
		err := c.registry.With(c.sessionID, func(s *game.Session) error {
			return s.Deal()
		})
		if err != nil {
			c.logger.Warn("Deal failed", "error", err)
			c.sendError(CodeFor(err), err.Error())
			return
		}
		c.sendSnapshot()

	case protocol.TypeHold:
		if req.Index == nil {
			c.sendError(protocol.CodeBadRequest, "hold requires an index")
			return
		}
		index := *req.Index
		err := c.registry.With(c.sessionID, func(s *game.Session) error {
			s.ToggleHold(index)
			return nil
		})
		if err != nil {
			c.sendError(CodeFor(err), err.Error())
			return
		}
		c.sendSnapshot()

	case protocol.TypeState:
		c.sendSnapshot()

	case protocol.TypeAdvise:
		var decision strategy.Decision
		err := c.registry.With(c.sessionID, func(s *game.Session) error {
			decision = strategy.Advise(s.Cards())
			return nil
		})
		if err != nil {
			c.sendError(CodeFor(err), err.Error())
			return
		}
		c.deliver(&protocol.Advice{
			Type:      protocol.TypeAdvice,
			SessionID: c.sessionID,
			Holds:     decision.Holds[:],
			Reasoning: decision.Reasoning,
		})

	default:
		c.sendError(protocol.CodeUnknownType, "unknown message type: "+req.Type)
	}
}

func (c *Connection) sendSnapshot() {
	var snap *protocol.Snapshot
	err := c.registry.With(c.sessionID, func(s *game.Session) error {
		snap = NewSnapshot(c.sessionID, s)
		return nil
	})
	if err != nil {
		c.sendError(CodeFor(err), err.Error())
		return
	}
	c.deliver(snap)
}

func (c *Connection) sendError(code, message string) {
	c.deliver(protocol.NewError(code, message))
}

func (c *Connection) deliver(msg any) {
	data, err := protocol.Marshal(msg)
	if err != nil {
		c.logger.Error("Failed to encode message", "error", err)
		return
	}
	if err := c.SendMessage(data); err != nil {
		c.logger.Debug("Dropped message for closed connection", "error", err)
	}
}
