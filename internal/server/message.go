package server

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lox/holdem-equity/internal/equity"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeEquityRequest MessageType = "equity_request"
	MessageTypeRankRequest   MessageType = "rank_request"
	MessageTypeRangesRequest MessageType = "ranges_request"

	// Server to client messages
	MessageTypeEquityResult MessageType = "equity_result"
	MessageTypeRankResult   MessageType = "rank_result"
	MessageTypeRangesResult MessageType = "ranges_result"
	MessageTypeError        MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Reply creates a response to msg carrying the same request id
func (msg *Message) Reply(messageType MessageType, data any) (*Message, error) {
	reply, err := NewMessage(messageType, data)
	if err != nil {
		return nil, err
	}
	reply.RequestID = msg.RequestID
	return reply, nil
}

// ensureRequestID assigns a fresh id to messages that arrive without one
func (msg *Message) ensureRequestID() {
	if msg.RequestID == "" {
		msg.RequestID = uuid.NewString()
	}
}

// EquityRequestData is the payload of an equity_request; it is the same
// shape the HTTP endpoint accepts.
type EquityRequestData = equity.Input

// EquityResultData is the payload of an equity_result
type EquityResultData = equity.Output

// RankRequestData asks for the best hand among 5 to 7 cards
type RankRequestData struct {
	Cards string `json:"cards"`
}

// RankResultData is the payload of a rank_result
type RankResultData = equity.HandOutput

// RangeInfo describes one archetype
type RangeInfo struct {
	Name   string   `json:"name"`
	Hands  []string `json:"hands"`
	Combos int      `json:"combos"`
}

// RangesResultData lists the available archetypes
type RangesResultData struct {
	Ranges []RangeInfo `json:"ranges"`
}

// ErrorData is the payload of an error message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
