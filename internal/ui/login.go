// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
)

// loginBanner is the splash shown above the form.
const loginBanner = `     ____  ____  _____ __  ____  _____
    / / / / __ \/ ___// / / / / / /   |
 __/ / / / / / /\__ \/ /_/ / / / / /| |
/ __/ /_/ / /_/ /___/ / __  / /_/ / ___ |
\____\____/\____//____/_/ /_/\____/_/  |_|`

// =============================================================================
// LOGIN MODEL
// =============================================================================

// LoginModel is the credential form shown until the portal session is valid.
type LoginModel struct {
	client *api.Client

	username textinput.Model
	password textinput.Model
	focused  int // 0 username, 1 password
	waiting  bool
	errText  string
}

// NewLoginModel creates the login screen.
func NewLoginModel(client *api.Client) *LoginModel {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	return &LoginModel{client: client, username: user, password: pass}
}

// SetError surfaces a failed auth attempt on the form.
func (m *LoginModel) SetError(err error) {
	m.waiting = false
	switch {
	case err == nil:
		m.errText = ""
	case errors.Is(err, api.ErrUnauthorized):
		m.errText = "invalid username or password"
	default:
		m.errText = err.Error()
	}
}

// submit posts the credentials. The session cookie lands in the client jar.
func (m *LoginModel) submit() tea.Cmd {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.errText = "username and password are required"
		return nil
	}

	m.waiting = true
	m.errText = ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := m.client.Login(ctx, username, password)
		return loginDoneMsg{user: user, err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles form navigation and submission.
func (m *LoginModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.waiting {
		return nil
	}

	switch keyMsg.String() {
	case "tab", "shift+tab", "up", "down":
		m.focused = 1 - m.focused
		if m.focused == 0 {
			m.password.Blur()
			return m.username.Focus()
		}
		m.username.Blur()
		return m.password.Focus()

	case "enter":
		if m.focused == 0 {
			m.focused = 1
			m.username.Blur()
			return m.password.Focus()
		}
		return m.submit()

	default:
		var cmd tea.Cmd
		if m.focused == 0 {
			m.username, cmd = m.username.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
		return cmd
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the centered login form.
func (m *LoginModel) View(width, height int) string {
	t := styles.Current()

	fieldStyle := func(idx int) func(string) string {
		if m.focused == idx {
			return func(s string) string { return t.FormFocused.Render(s) }
		}
		return func(s string) string { return t.FormField.Render(s) }
	}

	var b strings.Builder
	b.WriteString(t.HeaderTitle.Render(loginBanner))
	b.WriteString("\n\n")
	b.WriteString(t.HeaderMeta.Render("BD portal sign-in"))
	b.WriteString("\n\n")
	b.WriteString(fieldStyle(0)(" " + m.username.View() + " "))
	b.WriteString("\n")
	b.WriteString(fieldStyle(1)(" " + m.password.View() + " "))
	b.WriteString("\n\n")

	switch {
	case m.waiting:
		b.WriteString(t.ChartValue.Render("signing in..."))
	case m.errText != "":
		b.WriteString(t.ErrorStyle.Render(m.errText))
	default:
		b.WriteString(t.ShortcutDesc.Render("enter to sign in, tab to switch fields"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
