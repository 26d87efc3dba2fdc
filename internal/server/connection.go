package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10 // must be shorter than pongWait
	maxMessageSize = 1024
	sendBuffer     = 64
)

// ErrConnectionClosed is returned when queueing on a closed connection
var ErrConnectionClosed = websocket.ErrCloseSent

// Connection binds one WebSocket client to one session
type Connection struct {
	conn      *websocket.Conn
	outbox    chan []byte
	sessionID string
	registry  *Registry
	clock     quartz.Clock
	logger    *log.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps conn for the given session
func NewConnection(conn *websocket.Conn, sessionID string, registry *Registry, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:      conn,
		outbox:    make(chan []byte, sendBuffer),
		sessionID: sessionID,
		registry:  registry,
		clock:     registry.clock,
		logger:    logger.WithPrefix("conn").With("session", sessionID),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start queues the current snapshot, then services the socket until it closes
func (c *Connection) Start() {
	go c.writeLoop()
	c.sendSnapshot()
	go c.readLoop()
}

// SessionID returns the session this connection plays
func (c *Connection) SessionID() string {
	return c.sessionID
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close shuts the connection down. Safe to call more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues an encoded message. A client that stops reading and
// fills its outbox is disconnected.
func (c *Connection) SendMessage(data []byte) error {
	if c.ctx.Err() != nil {
		return ErrConnectionClosed
	}

	select {
	case c.outbox <- data:
		return nil
	default:
		c.logger.Warn("Outbox full, dropping slow client")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) readLoop() {
	defer func() { _ = c.Close() }()

	extend := func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(extend)
	_ = extend("")

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("Read failed", "error", err)
			}
			return
		}
		c.handleMessage(data)
	}
}

func (c *Connection) writeLoop() {
	ping := c.clock.NewTicker(pingPeriod, "conn", "ping")
	defer func() {
		ping.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case data := <-c.outbox:
			if err := c.write(websocket.TextMessage, data); err != nil {
				c.logger.Error("Write failed", "error", err)
				return
			}
		case <-ping.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Connection) write(messageType int, data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
