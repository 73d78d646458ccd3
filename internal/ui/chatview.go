// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/joshua-tui/internal/chat"
	"github.com/jeranaias/joshua-tui/internal/config"
	"github.com/jeranaias/joshua-tui/internal/model"
	"github.com/jeranaias/joshua-tui/internal/ui/components"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
)

// chatEventMsg wraps one stream event for the Bubble Tea loop.
type chatEventMsg struct {
	event chat.Event
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// ChatModel is the JOSHUA chat screen. It owns a chat.Session and renders
// the conversation in a viewport with a single-line input below.
type ChatModel struct {
	client  chat.Streamer
	session *chat.Session

	markdown       bool
	renderer       markdownRenderer
	viewport       viewport.Model
	input          textinput.Model
	events         <-chan chat.Event
	cancelExchange context.CancelFunc

	width  int
	height int
	ready  bool
}

// NewChatModel creates the chat screen.
func NewChatModel(client chat.Streamer, cfg *config.Config) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "ask JOSHUA about the solicitation library"
	ti.CharLimit = 2000
	ti.Focus()

	return &ChatModel{
		client:   client,
		session:  chat.NewSession(),
		markdown: cfg.Chat.Markdown,
		input:    ti,
		width:    80,
		height:   24,
	}
}

// ApplyConfig applies chat rendering settings.
func (m *ChatModel) ApplyConfig(cfg *config.Config) {
	m.markdown = cfg.Chat.Markdown
	m.refreshViewport()
}

// SetSize updates the layout dimensions.
func (m *ChatModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := height - 3
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 4
	m.refreshViewport()
}

// =============================================================================
// EXCHANGE PLUMBING
// =============================================================================

// submit starts a new exchange from the input text.
func (m *ChatModel) submit() tea.Cmd {
	exchange, payload, ok := m.session.Submit(m.input.Value())
	if !ok {
		return nil
	}
	m.input.SetValue("")
	m.refreshViewport()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelExchange = cancel

	ch := make(chan chat.Event, 64)
	m.events = ch
	go func() {
		defer close(ch)
		chat.Run(ctx, m.client, exchange, payload, func(ev chat.Event) {
			ch <- ev
		})
	}()
	return m.waitForEvent()
}

// waitForEvent delivers the next stream event as a Bubble Tea message.
func (m *ChatModel) waitForEvent() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return chatEventMsg{event: ev}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles chat input and stream events.
func (m *ChatModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case chatEventMsg:
		m.session.Apply(msg.event)
		m.refreshViewport()
		if m.session.Busy() {
			return m.waitForEvent()
		}
		m.events = nil
		if m.cancelExchange != nil {
			m.cancelExchange()
			m.cancelExchange = nil
		}
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.submit()
		case "esc":
			// Abandon the in-flight exchange; the failure event that
			// results is applied like any other.
			if m.session.Busy() && m.cancelExchange != nil {
				m.cancelExchange()
			}
			return nil
		case "ctrl+l":
			m.session.Clear()
			m.refreshViewport()
			return nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// Shortcuts lists the key hints for the status bar.
func (m *ChatModel) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "send"},
		{Key: "esc", Desc: "abort"},
		{Key: "C-l", Desc: "clear"},
		{Key: "PgUp/PgDn", Desc: "scroll"},
	}
}

// refreshViewport re-renders the conversation and keeps the view pinned
// to the newest message.
func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

// renderConversation renders every message with its speaker line.
func (m *ChatModel) renderConversation() string {
	t := styles.Current()
	msgs := m.session.Messages()

	if len(msgs) == 0 {
		return t.ChartValue.Render("\n  GREETINGS PROFESSOR FALKEN.\n\n  Ask JOSHUA about the solicitation library.")
	}

	wrap := m.width - 8
	var b strings.Builder
	for _, msg := range msgs {
		switch msg.Role {
		case model.RoleUser:
			b.WriteString(t.SpeakerUser.Render(msg.Role.DisplayName()) + "\n")
			b.WriteString(t.UserBubble.Width(wrap).Render(msg.Content) + "\n")

		case model.RoleAssistant:
			b.WriteString(t.SpeakerBot.Render(msg.Role.DisplayName()) + "\n")
			content := msg.Content
			switch {
			case msg.IsEmpty():
				content = "..."
				b.WriteString(t.BotBubble.Width(wrap).Render(content) + "\n")
			case content == chat.ConnectionFailureMessage:
				b.WriteString(t.ChatError.Render(content) + "\n")
			case m.markdown:
				b.WriteString(t.BotBubble.Width(wrap).Render(
					strings.TrimSpace(m.renderer.Render(content, wrap-4))) + "\n")
			default:
				b.WriteString(t.BotBubble.Width(wrap).Render(content) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the conversation viewport above the input line.
func (m *ChatModel) View() string {
	t := styles.Current()

	prompt := t.InputPrompt.Render("> ")
	input := prompt + m.input.View()
	if m.session.Busy() {
		input = t.ChartValue.Render("JOSHUA is thinking... (esc to abort)")
	}

	return m.viewport.View() + "\n" + input
}
