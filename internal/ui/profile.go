// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/model"
	"github.com/jeranaias/joshua-tui/internal/ui/components"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
	"github.com/jeranaias/joshua-tui/internal/util"
)

// profileMode is the active sub-view on the profile screen.
type profileMode int

const (
	profileViewing profileMode = iota
	profileEditing
	profileHistory
	profilePassword
	profileAvatar
)

// narrativeLoadedMsg delivers the current narrative text.
type narrativeLoadedMsg struct {
	content string
	err     error
}

// narrativeSavedMsg reports the outcome of a narrative save.
type narrativeSavedMsg struct {
	content string
	err     error
}

// versionsLoadedMsg delivers the narrative revision list.
type versionsLoadedMsg struct {
	versions []model.NarrativeVersion
	err      error
}

// versionLoadedMsg delivers one full prior revision.
type versionLoadedMsg struct {
	version *model.NarrativeVersion
	err     error
}

// passwordChangedMsg reports the outcome of a password change.
type passwordChangedMsg struct {
	err error
}

// avatarUploadedMsg reports the outcome of an avatar upload.
type avatarUploadedMsg struct {
	err error
}

// =============================================================================
// PROFILE MODEL
// =============================================================================

// ProfileModel shows the signed-in user and their capability narrative,
// the text the match scorer compares solicitations against. The narrative
// is editable and keeps a server-side revision history.
type ProfileModel struct {
	client *api.Client
	user   *model.User

	mode      profileMode
	narrative string
	loaded    bool

	editor textarea.Model

	// input serves the password and avatar modes; passwordStage tracks
	// whether the current or the new password is being typed.
	input           textinput.Model
	passwordStage   int
	currentPassword string

	versions      []model.NarrativeVersion
	versionCursor int
	preview       *model.NarrativeVersion

	width  int
	height int
}

// NewProfileModel creates the profile screen.
func NewProfileModel(client *api.Client) *ProfileModel {
	ed := textarea.New()
	ed.Placeholder = "describe your company's capabilities, past performance, and target work"
	ed.CharLimit = 0
	in := textinput.New()
	in.CharLimit = 256
	return &ProfileModel{client: client, editor: ed, input: in, width: 80, height: 24}
}

// SetUser records the authenticated user and seeds the narrative from the
// auth payload until the dedicated endpoint answers.
func (m *ProfileModel) SetUser(user *model.User) {
	m.user = user
	if user != nil && !m.loaded {
		m.narrative = user.Narrative
	}
}

// SetSize updates the layout dimensions.
func (m *ProfileModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.SetWidth(width - 4)
	editorHeight := height - 8
	if editorHeight < 4 {
		editorHeight = 4
	}
	m.editor.SetHeight(editorHeight)
	m.input.Width = width - 8
}

// =============================================================================
// COMMANDS
// =============================================================================

// loadNarrative fetches the authoritative narrative text.
func (m *ProfileModel) loadNarrative() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		content, err := m.client.Narrative(ctx)
		return narrativeLoadedMsg{content: content, err: err}
	}
}

// saveNarrative stores a new revision.
func (m *ProfileModel) saveNarrative(content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := m.client.SaveNarrative(ctx, content)
		return narrativeSavedMsg{content: content, err: err}
	}
}

// loadVersions fetches the revision list, newest first.
func (m *ProfileModel) loadVersions() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		versions, err := m.client.NarrativeVersions(ctx)
		return versionsLoadedMsg{versions: versions, err: err}
	}
}

// loadVersion fetches the full text of one revision.
func (m *ProfileModel) loadVersion(version int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		v, err := m.client.NarrativeVersion(ctx, version)
		return versionLoadedMsg{version: v, err: err}
	}
}

// changePassword asks the portal to replace the account password.
func (m *ProfileModel) changePassword(current, next string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return passwordChangedMsg{err: m.client.ChangePassword(ctx, current, next)}
	}
}

// uploadAvatar streams a local image file to the portal.
func (m *ProfileModel) uploadAvatar(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return avatarUploadedMsg{err: err}
		}
		defer f.Close()
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return avatarUploadedMsg{err: m.client.UploadAvatar(ctx, filepath.Base(path), f)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles profile keys and narrative round trips.
func (m *ProfileModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case narrativeLoadedMsg:
		if msg.err == nil {
			m.narrative = msg.content
			m.loaded = true
		}
		return nil

	case narrativeSavedMsg:
		if msg.err != nil {
			return func() tea.Msg {
				return flashMsg{status: components.StatusError, text: "narrative not saved: " + msg.err.Error()}
			}
		}
		m.narrative = msg.content
		m.mode = profileViewing
		m.editor.Blur()
		return func() tea.Msg {
			return flashMsg{status: components.StatusReady, text: "narrative saved"}
		}

	case versionsLoadedMsg:
		if msg.err != nil {
			return func() tea.Msg {
				return flashMsg{status: components.StatusError, text: "history unavailable: " + msg.err.Error()}
			}
		}
		m.versions = msg.versions
		m.versionCursor = 0
		m.preview = nil
		m.mode = profileHistory
		return nil

	case versionLoadedMsg:
		if msg.err == nil {
			m.preview = msg.version
		}
		return nil

	case passwordChangedMsg:
		if msg.err != nil {
			return func() tea.Msg {
				return flashMsg{status: components.StatusError, text: "password not changed: " + msg.err.Error()}
			}
		}
		m.exitInputMode()
		return func() tea.Msg {
			return flashMsg{status: components.StatusReady, text: "password changed"}
		}

	case avatarUploadedMsg:
		if msg.err != nil {
			return func() tea.Msg {
				return flashMsg{status: components.StatusError, text: "avatar not uploaded: " + msg.err.Error()}
			}
		}
		m.exitInputMode()
		return func() tea.Msg {
			return flashMsg{status: components.StatusReady, text: "avatar uploaded"}
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *ProfileModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case profileEditing:
		switch msg.String() {
		case "ctrl+s":
			return m.saveNarrative(m.editor.Value())
		case "esc":
			m.mode = profileViewing
			m.editor.Blur()
			return nil
		default:
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return cmd
		}

	case profileHistory:
		switch msg.String() {
		case "up", "k":
			if m.versionCursor > 0 {
				m.versionCursor--
				m.preview = nil
			}
		case "down", "j":
			if m.versionCursor < len(m.versions)-1 {
				m.versionCursor++
				m.preview = nil
			}
		case "enter":
			if m.versionCursor < len(m.versions) {
				return m.loadVersion(m.versions[m.versionCursor].Version)
			}
		case "R":
			// Restore: save the previewed revision as the newest one.
			if m.preview != nil {
				return m.saveNarrative(m.preview.Content)
			}
		case "esc":
			m.mode = profileViewing
			m.preview = nil
		}
		return nil

	case profilePassword:
		switch msg.String() {
		case "enter":
			value := m.input.Value()
			if value == "" {
				return nil
			}
			if m.passwordStage == 0 {
				m.currentPassword = value
				m.passwordStage = 1
				m.input.SetValue("")
				m.input.Placeholder = "new password"
				return nil
			}
			return m.changePassword(m.currentPassword, value)
		case "esc":
			m.exitInputMode()
			return nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}

	case profileAvatar:
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				return nil
			}
			return m.uploadAvatar(path)
		case "esc":
			m.exitInputMode()
			return nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}

	default:
		switch msg.String() {
		case "e":
			m.mode = profileEditing
			m.editor.SetValue(m.narrative)
			cmd := m.editor.Focus()
			if !m.loaded {
				return tea.Batch(cmd, m.loadNarrative())
			}
			return cmd
		case "h":
			return m.loadVersions()
		case "p":
			m.mode = profilePassword
			m.passwordStage = 0
			m.currentPassword = ""
			m.input.SetValue("")
			m.input.Placeholder = "current password"
			m.input.EchoMode = textinput.EchoPassword
			m.input.EchoCharacter = '*'
			return m.input.Focus()
		case "a":
			m.mode = profileAvatar
			m.input.SetValue("")
			m.input.Placeholder = "path to image file"
			m.input.EchoMode = textinput.EchoNormal
			return m.input.Focus()
		}
		return nil
	}
}

// exitInputMode returns to viewing and scrubs any typed password.
func (m *ProfileModel) exitInputMode() {
	m.mode = profileViewing
	m.passwordStage = 0
	m.currentPassword = ""
	m.input.SetValue("")
	m.input.Blur()
}

// =============================================================================
// VIEW
// =============================================================================

// Shortcuts lists the key hints for the status bar.
func (m *ProfileModel) Shortcuts() []components.Shortcut {
	switch m.mode {
	case profileEditing:
		return []components.Shortcut{
			{Key: "C-s", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case profileHistory:
		return []components.Shortcut{
			{Key: "enter", Desc: "preview"},
			{Key: "R", Desc: "restore"},
			{Key: "esc", Desc: "back"},
		}
	case profilePassword, profileAvatar:
		return []components.Shortcut{
			{Key: "enter", Desc: "submit"},
			{Key: "esc", Desc: "cancel"},
		}
	default:
		return []components.Shortcut{
			{Key: "e", Desc: "edit narrative"},
			{Key: "h", Desc: "history"},
			{Key: "p", Desc: "password"},
			{Key: "a", Desc: "avatar"},
		}
	}
}

// View renders the user card plus the active narrative sub-view.
func (m *ProfileModel) View() string {
	t := styles.Current()

	if m.user == nil {
		return t.ChartValue.Render("  profile unavailable")
	}

	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(t.DetailLabel.Render(label) + " " + t.DetailValue.Render(value) + "\n")
	}

	b.WriteString(t.HeaderTitle.Render(m.user.FullName))
	b.WriteString("\n\n")
	row("Username", m.user.Username)
	row("Email", m.user.Email)
	row("Role", m.user.Role)

	switch m.mode {
	case profileEditing:
		b.WriteString("\n")
		b.WriteString(t.ChartTitle.Render("CAPABILITY NARRATIVE (editing)"))
		b.WriteString("\n")
		b.WriteString(m.editor.View())

	case profileHistory:
		b.WriteString("\n")
		b.WriteString(t.ChartTitle.Render("NARRATIVE HISTORY"))
		b.WriteString("\n")
		if len(m.versions) == 0 {
			b.WriteString(t.ChartValue.Render("  no prior revisions"))
			break
		}
		for i, v := range m.versions {
			line := fmt.Sprintf("v%d  %s", v.Version, v.CreatedAt.Format("2006-01-02 15:04"))
			if i == m.versionCursor {
				b.WriteString(t.TableRowSelected.Render("> " + line))
			} else {
				b.WriteString(t.TableRow.Render("  " + line))
			}
			b.WriteString("\n")
		}
		if m.preview != nil {
			b.WriteString("\n")
			b.WriteString(t.ChartTitle.Render(fmt.Sprintf("REVISION v%d", m.preview.Version)))
			b.WriteString("\n")
			b.WriteString(t.DetailValue.Render(util.TruncateRunes(m.preview.Content, 1500)))
		}

	case profilePassword:
		b.WriteString("\n")
		b.WriteString(t.ChartTitle.Render("CHANGE PASSWORD"))
		b.WriteString("\n")
		if m.passwordStage == 0 {
			b.WriteString(t.DetailLabel.Render("Current password:"))
		} else {
			b.WriteString(t.DetailLabel.Render("New password:"))
		}
		b.WriteString("\n")
		b.WriteString(m.input.View())

	case profileAvatar:
		b.WriteString("\n")
		b.WriteString(t.ChartTitle.Render("UPLOAD AVATAR"))
		b.WriteString("\n")
		b.WriteString(t.DetailLabel.Render("Image file:"))
		b.WriteString("\n")
		b.WriteString(m.input.View())

	default:
		b.WriteString("\n")
		b.WriteString(t.ChartTitle.Render("CAPABILITY NARRATIVE"))
		b.WriteString("\n")
		if m.narrative == "" {
			b.WriteString(t.ChartValue.Render("  no narrative yet - press e to write one"))
		} else {
			b.WriteString(t.DetailValue.Render(util.TruncateRunes(m.narrative, 2000)))
		}
	}

	return b.String()
}
