// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/joshua-tui/internal/analytics"
	"github.com/jeranaias/joshua-tui/internal/config"
	"github.com/jeranaias/joshua-tui/internal/model"
	"github.com/jeranaias/joshua-tui/internal/ui/components"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
	"github.com/jeranaias/joshua-tui/internal/util"
)

// solProj adapts solicitations to the analytics engine.
var solProj = analytics.Projection[model.Solicitation]{
	Title:  func(s model.Solicitation) string { return s.Title },
	Agency: func(s model.Solicitation) string { return s.Agency },
	Date:   func(s model.Solicitation) string { return s.DueDate },
}

// librarySortSpecs maps the config sort column to a comparison.
var librarySortSpecs = map[string]func(a, b model.Solicitation) bool{
	"due_date": func(a, b model.Solicitation) bool { return a.DueDate < b.DueDate },
	"title":    func(a, b model.Solicitation) bool { return util.Fold(a.Title) < util.Fold(b.Title) },
	"agency":   func(a, b model.Solicitation) bool { return util.Fold(a.Agency) < util.Fold(b.Agency) },
}

// librarySortOrder is the cycle order for the sort key.
var librarySortOrder = []string{"due_date", "title", "agency"}

// pane is the focused region of the library screen.
type pane int

const (
	paneList pane = iota
	paneTimeChart
	paneAgencyChart
)

// =============================================================================
// LIBRARY MODEL
// =============================================================================

// LibraryModel is the solicitation library: a filterable, sortable table
// with cross-filtering due-date and agency histograms.
type LibraryModel struct {
	base []model.Solicitation

	// Derived views, recomputed on any input change with one frozen now.
	visible       []model.Solicitation
	timeEntries   []analytics.Entry
	agencyEntries []analytics.Entry

	filters      analytics.FilterState
	sortColumn   string
	sortDesc     bool
	showArchived bool

	filter    textinput.Model
	filtering bool

	focus     pane
	cursor    int
	scrollTop int

	timeChart   *components.BarChart
	agencyChart *components.BarChart

	width  int
	height int
}

// NewLibraryModel creates the library screen with config defaults.
func NewLibraryModel(cfg *config.Config) *LibraryModel {
	ti := textinput.New()
	ti.Placeholder = "filter by title or agency"
	ti.CharLimit = 120

	m := &LibraryModel{
		filter:      ti,
		timeChart:   components.NewBarChart("DUE DATES"),
		agencyChart: components.NewBarChart("TOP AGENCIES"),
		width:       80,
		height:      24,
	}
	m.ApplyConfig(cfg)
	return m
}

// ApplyConfig applies sort and visibility settings from configuration.
func (m *LibraryModel) ApplyConfig(cfg *config.Config) {
	m.sortColumn = cfg.UI.LibrarySort
	m.sortDesc = cfg.UI.LibrarySortDesc
	m.showArchived = cfg.UI.ShowArchived
	m.recompute()
}

// SetItems replaces the underlying records.
func (m *LibraryModel) SetItems(items []model.Solicitation) {
	m.base = items
	m.recompute()
}

// SetSize updates the layout dimensions.
func (m *LibraryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	chartWidth := m.chartWidth()
	m.timeChart.Width = chartWidth
	m.agencyChart.Width = chartWidth
}

func (m *LibraryModel) chartWidth() int {
	w := m.width * 2 / 5
	if w < 24 {
		w = 24
	}
	return w
}

// sortSpec builds the active sort from the current column and direction.
func (m *LibraryModel) sortSpec() analytics.SortSpec[model.Solicitation] {
	spec := analytics.SortSpec[model.Solicitation]{
		Less: librarySortSpecs[m.sortColumn],
	}
	if spec.Less == nil {
		spec.Less = librarySortSpecs["due_date"]
	}
	if m.sortDesc {
		spec.Direction = analytics.Descending
	}
	return spec
}

// recompute rebuilds the visible list and both histograms. A single now
// feeds every derived value so one pass cannot disagree with itself.
func (m *LibraryModel) recompute() {
	now := time.Now()

	source := m.base
	if !m.showArchived {
		source = make([]model.Solicitation, 0, len(m.base))
		for _, s := range m.base {
			if !s.Archived {
				source = append(source, s)
			}
		}
	}

	// The text filter feeds the histograms; the selections cross-filter
	// each histogram with the other's selection only.
	textFiltered := analytics.FilterText(source, solProj, m.filters.Text)
	m.timeEntries = analytics.TimeHistogram(textFiltered, solProj, m.filters.Agency, now)
	m.agencyEntries = analytics.AgencyHistogram(textFiltered, solProj, m.filters.Bucket, now)
	m.timeChart.SetEntries(m.timeEntries)
	m.agencyChart.SetEntries(m.agencyEntries)
	m.timeChart.Selected = string(m.filters.Bucket)
	m.agencyChart.Selected = m.filters.Agency

	m.visible = analytics.Apply(source, solProj, m.filters, m.sortSpec(), now)

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

// Update handles library keys.
func (m *LibraryModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	// While the filter input is focused it owns printable keys.
	if m.filtering {
		switch keyMsg.String() {
		case "enter":
			m.filtering = false
			m.filter.Blur()
		case "esc":
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.filters.Text = ""
			m.recompute()
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.filters.Text = m.filter.Value()
			m.recompute()
			return cmd
		}
		return nil
	}

	switch keyMsg.String() {
	case "/":
		m.filtering = true
		return m.filter.Focus()

	case "esc":
		if !m.filters.IsZero() {
			m.filters = analytics.FilterState{}
			m.filter.SetValue("")
			m.recompute()
		}

	case "f":
		m.focus = (m.focus + 1) % 3

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "enter":
		return m.selectCurrent()

	case "s":
		m.cycleSortColumn()

	case "r":
		m.sortDesc = !m.sortDesc
		m.recompute()

	case "A":
		m.showArchived = !m.showArchived
		m.recompute()
	}
	return nil
}

func (m *LibraryModel) moveCursor(delta int) {
	switch m.focus {
	case paneList:
		next := m.cursor + delta
		if next >= 0 && next < len(m.visible) {
			m.cursor = next
		}
	case paneTimeChart:
		m.timeChart.MoveCursor(delta)
	case paneAgencyChart:
		m.agencyChart.MoveCursor(delta)
	}
}

// selectCurrent opens the detail screen from the list, or toggles the
// cross-filter from a histogram. Re-selecting the active filter clears it.
func (m *LibraryModel) selectCurrent() tea.Cmd {
	switch m.focus {
	case paneList:
		if m.cursor < len(m.visible) {
			sol := m.visible[m.cursor]
			return func() tea.Msg { return openDetailMsg{sol: &sol} }
		}

	case paneTimeChart:
		if entry, ok := m.timeChart.CursorEntry(); ok {
			bucket := analytics.Bucket(entry.Name)
			if m.filters.Bucket == bucket {
				m.filters.Bucket = ""
			} else {
				m.filters.Bucket = bucket
			}
			m.recompute()
		}

	case paneAgencyChart:
		if entry, ok := m.agencyChart.CursorEntry(); ok {
			if m.filters.Agency == entry.Name {
				m.filters.Agency = ""
			} else {
				m.filters.Agency = entry.Name
			}
			m.recompute()
		}
	}
	return nil
}

func (m *LibraryModel) cycleSortColumn() {
	for i, col := range librarySortOrder {
		if col == m.sortColumn {
			m.sortColumn = librarySortOrder[(i+1)%len(librarySortOrder)]
			m.recompute()
			return
		}
	}
	m.sortColumn = librarySortOrder[0]
	m.recompute()
}

// =============================================================================
// VIEW
// =============================================================================

// Shortcuts lists the key hints for the status bar.
func (m *LibraryModel) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "/", Desc: "filter"},
		{Key: "f", Desc: "pane"},
		{Key: "s", Desc: "sort"},
		{Key: "enter", Desc: "open/toggle"},
		{Key: "esc", Desc: "clear"},
	}
}

// View renders the table beside the two histograms.
func (m *LibraryModel) View() string {
	t := styles.Current()

	chartWidth := m.chartWidth()
	tableWidth := m.width - chartWidth - 3
	if tableWidth < 30 {
		tableWidth = 30
	}

	var header strings.Builder
	if m.filtering || m.filters.Text != "" {
		header.WriteString(t.InputPrompt.Render("filter: ") + m.filter.View())
	} else {
		dir := "asc"
		if m.sortDesc {
			dir = "desc"
		}
		header.WriteString(t.HeaderMeta.Render(fmt.Sprintf(
			"%d of %d shown  sort: %s %s", len(m.visible), len(m.base), m.sortColumn, dir)))
	}

	table := m.renderTable(tableWidth)

	m.timeChart.Focused = m.focus == paneTimeChart
	m.agencyChart.Focused = m.focus == paneAgencyChart
	charts := m.timeChart.View() + "\n" + m.agencyChart.View()

	body := lipgloss.JoinHorizontal(lipgloss.Top, table, " | ", charts)
	return header.String() + "\n" + body
}

// renderTable renders the visible rows with cursor and scrolling.
func (m *LibraryModel) renderTable(width int) string {
	t := styles.Current()
	now := time.Now()

	rows := m.height - 4
	if rows < 3 {
		rows = 3
	}
	if m.cursor < m.scrollTop {
		m.scrollTop = m.cursor
	}
	if m.cursor >= m.scrollTop+rows {
		m.scrollTop = m.cursor - rows + 1
	}

	titleW := width * 5 / 10
	agencyW := width * 2 / 10
	dueW := width - titleW - agencyW - 4

	var b strings.Builder
	b.WriteString(t.TableHeader.Render(
		util.PadWidth("TITLE", titleW) + " " +
			util.PadWidth("AGENCY", agencyW) + " " +
			util.PadWidth("DUE", dueW)))
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(t.ChartValue.Render("  no solicitations match"))
		return b.String()
	}

	end := m.scrollTop + rows
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := m.scrollTop; i < end; i++ {
		s := m.visible[i]
		line := util.PadWidth(util.TruncateWidth(s.Title, titleW), titleW) + " " +
			util.PadWidth(util.TruncateWidth(s.Agency, agencyW), agencyW) + " " +
			util.PadWidth(components.FormatDueDate(s.DueDate, now), dueW)

		style := t.TableRow
		switch {
		case m.focus == paneList && i == m.cursor:
			style = t.TableRowSelected
		case s.Archived:
			style = t.TableRowArchived
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
