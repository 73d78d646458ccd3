// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/joshua-tui/internal/analytics"
	"github.com/jeranaias/joshua-tui/internal/config"
	"github.com/jeranaias/joshua-tui/internal/model"
	"github.com/jeranaias/joshua-tui/internal/ui/components"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
	"github.com/jeranaias/joshua-tui/internal/util"
)

// matchProj adapts matches to the analytics engine through their
// embedded solicitation.
var matchProj = analytics.Projection[model.Match]{
	Title:  func(m model.Match) string { return m.Solicitation.Title },
	Agency: func(m model.Match) string { return m.Solicitation.Agency },
	Date:   func(m model.Match) string { return m.Solicitation.DueDate },
}

// inboxSortSpecs maps the config sort column to a comparison.
var inboxSortSpecs = map[string]func(a, b model.Match) bool{
	"score":    func(a, b model.Match) bool { return a.Score < b.Score },
	"due_date": func(a, b model.Match) bool { return a.Solicitation.DueDate < b.Solicitation.DueDate },
	"title":    func(a, b model.Match) bool { return util.Fold(a.Solicitation.Title) < util.Fold(b.Solicitation.Title) },
}

// =============================================================================
// INBOX MODEL
// =============================================================================

// InboxModel is the scored match inbox, default sorted score descending.
type InboxModel struct {
	base    []model.Match
	visible []model.Match

	sortColumn string
	sortDesc   bool

	cursor    int
	scrollTop int
	width     int
	height    int
}

// NewInboxModel creates the inbox screen with config defaults.
func NewInboxModel(cfg *config.Config) *InboxModel {
	m := &InboxModel{width: 80, height: 24}
	m.ApplyConfig(cfg)
	return m
}

// ApplyConfig applies the configured sort.
func (m *InboxModel) ApplyConfig(cfg *config.Config) {
	m.sortColumn = cfg.UI.InboxSort
	m.sortDesc = cfg.UI.InboxSortDesc
	m.recompute()
}

// SetItems replaces the match list.
func (m *InboxModel) SetItems(items []model.Match) {
	m.base = items
	m.recompute()
}

// SetSize updates the layout dimensions.
func (m *InboxModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *InboxModel) recompute() {
	less := inboxSortSpecs[m.sortColumn]
	if less == nil {
		less = inboxSortSpecs["score"]
	}
	spec := analytics.SortSpec[model.Match]{Less: less}
	if m.sortDesc {
		spec.Direction = analytics.Descending
	}

	m.visible = analytics.Apply(m.base, matchProj, analytics.FilterState{}, spec, time.Now())
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles inbox keys.
func (m *InboxModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.visible) {
			match := m.visible[m.cursor]
			return func() tea.Msg {
				return openDetailMsg{sol: &match.Solicitation, match: &match}
			}
		}
	case "r":
		m.sortDesc = !m.sortDesc
		m.recompute()
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// Shortcuts lists the key hints for the status bar.
func (m *InboxModel) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "open"},
		{Key: "r", Desc: "reverse sort"},
		{Key: "C-r", Desc: "refresh"},
	}
}

// View renders the scored match list with the explanation of the
// selected match below it.
func (m *InboxModel) View() string {
	t := styles.Current()
	now := time.Now()

	if len(m.visible) == 0 {
		return t.ChartValue.Render("  inbox is empty - JOSHUA has no new matches")
	}

	rows := m.height - 7
	if rows < 3 {
		rows = 3
	}
	if m.cursor < m.scrollTop {
		m.scrollTop = m.cursor
	}
	if m.cursor >= m.scrollTop+rows {
		m.scrollTop = m.cursor - rows + 1
	}

	titleW := m.width * 5 / 10
	agencyW := m.width * 2 / 10
	dueW := m.width - titleW - agencyW - 12

	var b strings.Builder
	b.WriteString(t.TableHeader.Render(
		"SCORE " +
			util.PadWidth("TITLE", titleW) + " " +
			util.PadWidth("AGENCY", agencyW) + " " +
			util.PadWidth("DUE", dueW)))
	b.WriteString("\n")

	end := m.scrollTop + rows
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := m.scrollTop; i < end; i++ {
		match := m.visible[i]
		sol := match.Solicitation

		line := fmt.Sprintf("%s  %s %s %s",
			components.FormatScore(match.Score),
			util.PadWidth(util.TruncateWidth(sol.Title, titleW), titleW),
			util.PadWidth(util.TruncateWidth(sol.Agency, agencyW), agencyW),
			util.PadWidth(components.FormatDueDate(sol.DueDate, now), dueW))

		if i == m.cursor {
			b.WriteString(t.TableRowSelected.Render("> " + line))
		} else {
			b.WriteString(t.TableRow.Render("  " + line))
		}
		b.WriteString("\n")
	}

	// Explanation panel for the selected match.
	if m.cursor < len(m.visible) {
		sel := m.visible[m.cursor]
		explanation := sel.Explanation
		if explanation == "" {
			explanation = "no explanation provided"
		}
		b.WriteString("\n")
		b.WriteString(t.ChartTitle.Render("WHY THIS MATCHED"))
		b.WriteString("\n")
		b.WriteString(t.DetailValue.Render(util.TruncateRunes(explanation, 400)))
	}
	return b.String()
}
