// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/command"
	"github.com/jeranaias/joshua-tui/internal/model"
	"github.com/jeranaias/joshua-tui/internal/ui/components"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
	"github.com/jeranaias/joshua-tui/internal/util"
)

// detailMode is the active input mode on the detail screen.
type detailMode int

const (
	detailViewing detailMode = iota
	detailCommenting
	detailSharing
)

// commentsLoadedMsg delivers the comment thread.
type commentsLoadedMsg struct {
	sourceID string
	comments []model.Comment
	err      error
}

// commentAddedMsg delivers a newly stored comment.
type commentAddedMsg struct {
	comment *model.Comment
	err     error
}

// =============================================================================
// DETAIL MODEL
// =============================================================================

// DetailModel shows one solicitation with claim, archive, share, and
// comment actions. Claim and archive are optimistic: the view updates
// immediately and rolls back if the portal call fails.
type DetailModel struct {
	client *api.Client

	sol      *model.Solicitation
	match    *model.Match
	comments []model.Comment

	mode  detailMode
	input textinput.Model

	// Pending optimistic mutations keyed by sequence number.
	seq     int
	pending map[int]*command.Pending[model.Solicitation]

	width  int
	height int
}

// NewDetailModel creates the detail screen.
func NewDetailModel(client *api.Client) *DetailModel {
	ti := textinput.New()
	ti.CharLimit = 500
	return &DetailModel{
		client:  client,
		input:   ti,
		pending: map[int]*command.Pending[model.Solicitation]{},
		width:   80,
		height:  24,
	}
}

// SetSolicitation points the screen at a record. match is nil when opened
// from the library.
func (m *DetailModel) SetSolicitation(sol *model.Solicitation, match *model.Match) {
	m.sol = sol
	m.match = match
	m.comments = nil
	m.mode = detailViewing
}

// SetSize updates the layout dimensions.
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// LoadComments fetches the comment thread for the current record.
func (m *DetailModel) LoadComments() tea.Cmd {
	if m.sol == nil {
		return nil
	}
	sourceID := m.sol.SourceID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		comments, err := m.client.Comments(ctx, sourceID)
		return commentsLoadedMsg{sourceID: sourceID, comments: comments, err: err}
	}
}

// =============================================================================
// OPTIMISTIC ACTIONS
// =============================================================================

// beginMutation applies cmd locally and schedules its remote half.
func (m *DetailModel) beginMutation(cmd command.Optimistic[model.Solicitation]) tea.Cmd {
	m.seq++
	seq := m.seq
	p := command.Begin(m.sol, cmd)
	m.pending[seq] = p
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return mutationDoneMsg{seq: seq, err: p.Remote(ctx)}
	}
}

// claim marks interest or leadership on the record.
func (m *DetailModel) claim(claim model.ClaimType) tea.Cmd {
	sourceID := m.sol.SourceID
	prevLead := m.sol.LeadName
	prevCount := m.sol.InterestedCount

	return m.beginMutation(command.Optimistic[model.Solicitation]{
		Apply: func(s *model.Solicitation) {
			switch claim {
			case model.ClaimLead:
				s.LeadName = "you"
			case model.ClaimInterested:
				s.InterestedCount++
			case model.ClaimNone:
				s.LeadName = prevLead
				s.InterestedCount = prevCount
			}
		},
		Remote: func(ctx context.Context) error {
			_, err := m.client.Claim(ctx, sourceID, claim)
			return err
		},
		Rollback: func(s *model.Solicitation) {
			s.LeadName = prevLead
			s.InterestedCount = prevCount
		},
	})
}

// toggleArchive flips the archived flag.
func (m *DetailModel) toggleArchive() tea.Cmd {
	sourceID := m.sol.SourceID
	next := !m.sol.Archived

	return m.beginMutation(command.Optimistic[model.Solicitation]{
		Apply:    func(s *model.Solicitation) { s.Archived = next },
		Remote:   func(ctx context.Context) error { return m.client.Archive(ctx, sourceID, next) },
		Rollback: func(s *model.Solicitation) { s.Archived = !next },
	})
}

// share emails the record to a colleague. Not optimistic; there is no
// local state to mutate.
func (m *DetailModel) share(email string) tea.Cmd {
	sourceID := m.sol.SourceID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := m.client.Share(ctx, sourceID, email, ""); err != nil {
			return flashMsg{status: components.StatusError, text: "share failed: " + err.Error()}
		}
		return flashMsg{status: components.StatusReady, text: "shared with " + email}
	}
}

// addComment posts the comment text.
func (m *DetailModel) addComment(content string) tea.Cmd {
	sourceID := m.sol.SourceID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		comment, err := m.client.AddComment(ctx, sourceID, content)
		return commentAddedMsg{comment: comment, err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles detail keys and mutation outcomes.
func (m *DetailModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case commentsLoadedMsg:
		if msg.err == nil && m.sol != nil && msg.sourceID == m.sol.SourceID {
			m.comments = msg.comments
		}
		return nil

	case commentAddedMsg:
		if msg.err != nil {
			return func() tea.Msg {
				return flashMsg{status: components.StatusError, text: "comment failed: " + msg.err.Error()}
			}
		}
		if msg.comment != nil {
			m.comments = append(m.comments, *msg.comment)
		}
		return nil

	case mutationDoneMsg:
		p, ok := m.pending[msg.seq]
		if !ok {
			return nil
		}
		delete(m.pending, msg.seq)
		if err := p.Finish(msg.err); err != nil {
			return func() tea.Msg {
				return flashMsg{status: components.StatusError, text: "action failed: " + err.Error()}
			}
		}
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *DetailModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.sol == nil {
		return nil
	}

	if m.mode != detailViewing {
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			mode := m.mode
			m.mode = detailViewing
			m.input.Blur()
			m.input.SetValue("")
			if value == "" {
				return nil
			}
			if mode == detailCommenting {
				return m.addComment(value)
			}
			return m.share(value)
		case "esc":
			m.mode = detailViewing
			m.input.Blur()
			m.input.SetValue("")
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}
		return nil
	}

	switch msg.String() {
	case "i":
		return m.claim(model.ClaimInterested)
	case "l":
		return m.claim(model.ClaimLead)
	case "u":
		return m.claim(model.ClaimNone)
	case "a":
		return m.toggleArchive()
	case "s":
		m.mode = detailSharing
		m.input.Placeholder = "colleague email"
		return m.input.Focus()
	case "c":
		m.mode = detailCommenting
		m.input.Placeholder = "add a comment"
		return m.input.Focus()
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// Shortcuts lists the key hints for the status bar.
func (m *DetailModel) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "i", Desc: "interested"},
		{Key: "l", Desc: "lead"},
		{Key: "a", Desc: "archive"},
		{Key: "s", Desc: "share"},
		{Key: "c", Desc: "comment"},
		{Key: "esc", Desc: "back"},
	}
}

// View renders the record, its score when opened from the inbox, the
// documents, and the comment thread.
func (m *DetailModel) View() string {
	if m.sol == nil {
		return "no solicitation selected"
	}
	t := styles.Current()
	now := time.Now()
	s := m.sol

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(t.DetailLabel.Render(label) + " " + t.DetailValue.Render(value) + "\n")
	}

	b.WriteString(t.HeaderTitle.Render(util.TruncateWidth(s.Title, m.width-2)))
	b.WriteString("\n\n")

	row("Agency", s.Agency)
	due := components.FormatDueDate(s.DueDate, now)
	b.WriteString(t.DetailLabel.Render("Due") + " " + components.DueDateStyle(s.DueDate, now)(due) + "\n")
	row("Source ID", s.SourceID)
	if s.URL != "" {
		row("URL", s.URL)
	}
	if claim := components.FormatClaim(s); claim != "" {
		row("Claims", claim)
	}
	if s.Archived {
		b.WriteString(t.WarningStyle.Render("ARCHIVED") + "\n")
	}

	if m.match != nil {
		b.WriteString("\n")
		b.WriteString(t.DetailLabel.Render("Match score") + " " + components.FormatScore(m.match.Score) + "\n")
		if m.match.Explanation != "" {
			b.WriteString(t.DetailValue.Render(util.TruncateRunes(m.match.Explanation, 500)) + "\n")
		}
	}

	if s.Description != "" {
		b.WriteString("\n")
		b.WriteString(t.ChartTitle.Render("DESCRIPTION") + "\n")
		b.WriteString(t.DetailValue.Render(util.TruncateRunes(s.Description, 1200)) + "\n")
	}

	if len(s.Documents) > 0 {
		b.WriteString("\n")
		b.WriteString(t.ChartTitle.Render("DOCUMENTS") + "\n")
		for _, d := range s.Documents {
			b.WriteString(fmt.Sprintf("  - %s (%s)\n", d.Title, d.Type))
		}
	}

	b.WriteString("\n")
	b.WriteString(t.ChartTitle.Render(fmt.Sprintf("COMMENTS (%d)", len(m.comments))) + "\n")
	for _, c := range m.comments {
		b.WriteString(t.SpeakerUser.Render(c.AuthorName) + " " +
			t.ChartValue.Render(c.CreatedAt.Format("2006-01-02 15:04")) + "\n")
		b.WriteString("  " + t.DetailValue.Render(c.Content) + "\n")
	}

	if m.mode != detailViewing {
		prompt := "share: "
		if m.mode == detailCommenting {
			prompt = "comment: "
		}
		b.WriteString("\n" + t.InputPrompt.Render(prompt) + m.input.View())
	}

	return b.String()
}
