// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the append-only in-memory chat log for one session.
// It lives only for the lifetime of the process; nothing is persisted.
//
// Mutation happens exclusively through the methods below so the chat state
// machine can be tested in isolation. Fragment appends carry a defensive
// role check: if the last entry is not an assistant message the fragment is
// dropped rather than mis-appended.
type Conversation struct {
	messages []Message
}

// NewConversation creates an empty conversation log.
func NewConversation() *Conversation {
	return &Conversation{messages: make([]Message, 0)}
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Append adds a message to the end of the log.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
}

// Last returns the most recent message and true, or a zero Message and
// false when the log is empty.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// AppendFragment appends a decoded content fragment onto the last message,
// provided that message is an assistant message. Fragments arriving when
// the last message has any other role are dropped.
func (c *Conversation) AppendFragment(fragment string) {
	if len(c.messages) == 0 {
		return
	}
	last := &c.messages[len(c.messages)-1]
	if last.Role != RoleAssistant {
		return
	}
	last.Content += fragment
}

// ReplaceLast overwrites the content of the last message. Used to convert
// an empty assistant placeholder into a terminal error message.
func (c *Conversation) ReplaceLast(content string) {
	if len(c.messages) == 0 {
		return
	}
	c.messages[len(c.messages)-1].Content = content
}

// Snapshot returns a fresh copy of the log. Callers (rendering, the wire
// request body) never alias the internal slice, so in-flight appends cannot
// corrupt a view that is being drawn.
func (c *Conversation) Snapshot() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Clear removes all messages. Used by the /clear REPL command.
func (c *Conversation) Clear() {
	c.messages = c.messages[:0]
}
