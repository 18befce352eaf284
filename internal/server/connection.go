package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-equity/internal/equity"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	sim       *equity.Simulator
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	work      sync.WaitGroup
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, sim *equity.Simulator, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		sim:    sim,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection. Simulations still running for it are
// cancelled.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// wait blocks until every request started by the connection has finished
func (c *Connection) wait() {
	c.work.Wait()
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
			err = ErrConnectionClosed
		}
	}()

	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// ErrConnectionClosed is returned when sending on a closed connection
var ErrConnectionClosed = errors.New("connection closed")

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	msg.ensureRequestID()
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	switch msg.Type {
	case MessageTypeEquityRequest:
		var data EquityRequestData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, CodeInvalidRequest, "Failed to parse equity request data")
			return
		}

		// Simulations run off the read loop so one connection can have
		// several requests in flight.
		c.work.Add(1)
		go func() {
			defer c.work.Done()
			c.handleEquity(msg, data)
		}()

	case MessageTypeRankRequest:
		var data RankRequestData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, CodeInvalidRequest, "Failed to parse rank request data")
			return
		}
		c.handleRank(msg, data)

	case MessageTypeRangesRequest:
		c.reply(msg, MessageTypeRangesResult, rangesResult(c.sim))

	default:
		c.sendError(msg, CodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleEquity(msg *Message, data EquityRequestData) {
	start := time.Now()
	out, err := equity.Calculate(c.ctx, c.sim, data)
	if err != nil {
		c.sendFailure(msg, err)
		return
	}

	c.logger.Debug("Equity calculated",
		"requestId", msg.RequestID,
		"trials", out.TrialsCompleted,
		"duration", time.Since(start))
	c.reply(msg, MessageTypeEquityResult, out)
}

func (c *Connection) handleRank(msg *Message, data RankRequestData) {
	out, err := equity.RankHand(data.Cards)
	if err != nil {
		c.sendFailure(msg, err)
		return
	}
	c.reply(msg, MessageTypeRankResult, out)
}

func (c *Connection) reply(msg *Message, messageType MessageType, data any) {
	reply, err := msg.Reply(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create reply", "type", messageType, "error", err)
		return
	}
	_ = c.SendMessage(reply) // Ignore send errors, the client may have gone
}

func (c *Connection) sendFailure(msg *Message, err error) {
	code, _ := classify(err)
	if code == CodeInternal {
		c.logger.Error("Request failed", "requestId", msg.RequestID, "error", err)
	}
	c.sendError(msg, code, err.Error())
}

// sendError sends an error message to the client
func (c *Connection) sendError(msg *Message, code, message string) {
	c.reply(msg, MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
}
