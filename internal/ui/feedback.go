// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/model"
	"github.com/jeranaias/joshua-tui/internal/ui/components"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
)

// feedbackAppName identifies this client in submitted reports.
const feedbackAppName = "joshua-tui"

// feedbackSentMsg reports the submission outcome.
type feedbackSentMsg struct {
	err error
}

// =============================================================================
// FEEDBACK MODEL
// =============================================================================

// FeedbackModel is a free-text report form posted to the portal.
type FeedbackModel struct {
	client *api.Client

	editor  textarea.Model
	editing bool
	sending bool

	width  int
	height int
}

// NewFeedbackModel creates the feedback screen.
func NewFeedbackModel(client *api.Client) *FeedbackModel {
	ed := textarea.New()
	ed.Placeholder = "what is broken, confusing, or missing?"
	ed.CharLimit = 4000
	return &FeedbackModel{client: client, editor: ed, width: 80, height: 24}
}

// SetSize updates the layout dimensions.
func (m *FeedbackModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.SetWidth(width - 4)
	editorHeight := height - 6
	if editorHeight < 4 {
		editorHeight = 4
	}
	m.editor.SetHeight(editorHeight)
}

// submit posts the report.
func (m *FeedbackModel) submit() tea.Cmd {
	content := strings.TrimSpace(m.editor.Value())
	if content == "" {
		return nil
	}
	m.sending = true

	fb := model.Feedback{AppName: feedbackAppName, ViewName: "feedback", Content: content}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return feedbackSentMsg{err: m.client.SendFeedback(ctx, fb)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles the report form.
func (m *FeedbackModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case feedbackSentMsg:
		m.sending = false
		if msg.err != nil {
			return func() tea.Msg {
				return flashMsg{status: components.StatusError, text: "feedback failed: " + msg.err.Error()}
			}
		}
		m.editor.SetValue("")
		m.editing = false
		m.editor.Blur()
		return func() tea.Msg {
			return flashMsg{status: components.StatusReady, text: "feedback sent - thank you"}
		}

	case tea.KeyMsg:
		if m.sending {
			return nil
		}
		if m.editing {
			switch msg.String() {
			case "ctrl+s":
				return m.submit()
			case "esc":
				m.editing = false
				m.editor.Blur()
				return nil
			default:
				var cmd tea.Cmd
				m.editor, cmd = m.editor.Update(msg)
				return cmd
			}
		}
		if msg.String() == "e" || msg.String() == "enter" {
			m.editing = true
			return m.editor.Focus()
		}
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// Shortcuts lists the key hints for the status bar.
func (m *FeedbackModel) Shortcuts() []components.Shortcut {
	if m.editing {
		return []components.Shortcut{
			{Key: "C-s", Desc: "send"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	return []components.Shortcut{
		{Key: "e", Desc: "write feedback"},
	}
}

// View renders the report form.
func (m *FeedbackModel) View() string {
	t := styles.Current()

	var b strings.Builder
	b.WriteString(t.ChartTitle.Render("FEEDBACK"))
	b.WriteString("\n")
	b.WriteString(t.HeaderMeta.Render("reports go straight to the portal team"))
	b.WriteString("\n\n")
	b.WriteString(m.editor.View())
	if m.sending {
		b.WriteString("\n")
		b.WriteString(t.ChartValue.Render("sending..."))
	}
	return b.String()
}
