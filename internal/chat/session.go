// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/joshua-tui/internal/model"
)

// ConnectionFailureMessage is the terminal assistant message shown when an
// exchange fails for any reason. The wording is part of the product.
const ConnectionFailureMessage = "ERROR: UNABLE TO ESTABLISH CONNECTION WITH JOSHUA MAINCORE."

// =============================================================================
// STATE
// =============================================================================

// State is the lifecycle phase of the current (or most recent) exchange.
type State int

const (
	// StateIdle means no exchange has run yet.
	StateIdle State = iota
	// StateSending means the request is posted but no fragment has arrived.
	StateSending
	// StateStreaming means at least one fragment has been applied.
	StateStreaming
	// StateCompleted means the last exchange finished cleanly.
	StateCompleted
	// StateFailed means the last exchange ended with the terminal message.
	StateFailed
)

// String returns the state name for logs and the status bar.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// EVENTS
// =============================================================================

// Event is stream progress for one exchange. Events carry the exchange ID
// they belong to; the session discards events for any other exchange.
type Event interface {
	exchangeID() uuid.UUID
}

// Fragment is one decoded content chunk.
type Fragment struct {
	Exchange uuid.UUID
	Text     string
}

// Done signals the stream ended cleanly.
type Done struct {
	Exchange uuid.UUID
}

// Failed signals the exchange ended in error, transport-level or in-band.
type Failed struct {
	Exchange uuid.UUID
	Err      error
}

func (f Fragment) exchangeID() uuid.UUID { return f.Exchange }
func (d Done) exchangeID() uuid.UUID     { return d.Exchange }
func (f Failed) exchangeID() uuid.UUID   { return f.Exchange }

// =============================================================================
// SESSION
// =============================================================================

// Session is the chat state machine. It is not safe for concurrent use;
// the TUI applies events on its update goroutine and the REPL is serial.
type Session struct {
	conv     *model.Conversation
	state    State
	exchange uuid.UUID
	lastErr  error
}

// NewSession creates a session with an empty conversation.
func NewSession() *Session {
	return &Session{conv: model.NewConversation(), state: StateIdle}
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Busy reports whether an exchange is in flight. Submits are rejected and
// the input stays disabled while busy.
func (s *Session) Busy() bool {
	return s.state == StateSending || s.state == StateStreaming
}

// Err returns the error that failed the last exchange, if any.
func (s *Session) Err() error {
	return s.lastErr
}

// Messages returns a copy of the conversation for rendering.
func (s *Session) Messages() []model.Message {
	return s.conv.Snapshot()
}

// Len returns the conversation length.
func (s *Session) Len() int {
	return s.conv.Len()
}

// Clear empties the conversation. No-op while an exchange is in flight.
func (s *Session) Clear() {
	if s.Busy() {
		return
	}
	s.conv.Clear()
	s.state = StateIdle
	s.lastErr = nil
}

// Submit starts a new exchange. The user message is appended to the log,
// the wire payload (the full log, placeholder excluded) is snapshotted, and
// an empty assistant placeholder is appended for fragments to land in.
//
// Returns ok=false without side effects when the trimmed text is empty or
// an exchange is already in flight.
func (s *Session) Submit(text string) (exchange uuid.UUID, payload []model.Message, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || s.Busy() {
		return uuid.Nil, nil, false
	}

	s.conv.Append(model.NewUserMessage(text))
	payload = s.conv.Snapshot()
	s.conv.Append(model.NewAssistantPlaceholder())

	s.exchange = uuid.New()
	s.state = StateSending
	s.lastErr = nil
	return s.exchange, payload, true
}

// Apply feeds one stream event into the machine. Events whose exchange ID
// does not match the in-flight exchange are ignored; this covers fragments
// that race a failure as well as events from a cleared session.
func (s *Session) Apply(ev Event) {
	if !s.Busy() || ev.exchangeID() != s.exchange {
		return
	}

	switch ev := ev.(type) {
	case Fragment:
		s.state = StateStreaming
		s.conv.AppendFragment(ev.Text)

	case Done:
		s.state = StateCompleted
		s.exchange = uuid.Nil

	case Failed:
		s.failExchange(ev.Err)
	}
}

// failExchange records the terminal failure message. An empty assistant
// placeholder is replaced in place; a partially streamed reply is kept and
// the terminal message is appended after it.
func (s *Session) failExchange(err error) {
	if last, exists := s.conv.Last(); exists && last.Role == model.RoleAssistant && last.IsEmpty() {
		s.conv.ReplaceLast(ConnectionFailureMessage)
	} else {
		s.conv.Append(model.Message{Role: model.RoleAssistant, Content: ConnectionFailureMessage})
	}
	s.state = StateFailed
	s.exchange = uuid.Nil
	s.lastErr = err
}
