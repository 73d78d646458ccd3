// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/joshua-tui/internal/ui/styles"
	"github.com/jeranaias/joshua-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar with screen tabs and the signed-in user.
type Header struct {
	Title    string
	Tabs     []string
	Active   int
	Username string
	Width    int
}

// NewHeader creates a header with the application title.
func NewHeader(tabs []string) *Header {
	return &Header{
		Title: "JOSHUA",
		Tabs:  tabs,
		Width: 80,
	}
}

// SetWidth updates the available width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetActive selects the highlighted tab.
func (h *Header) SetActive(index int) {
	if index >= 0 && index < len(h.Tabs) {
		h.Active = index
	}
}

// SetUser updates the signed-in username shown on the right.
func (h *Header) SetUser(username string) {
	h.Username = username
}

// View renders the header line followed by the tab row.
func (h *Header) View() string {
	t := styles.Current()

	title := t.HeaderTitle.Render(h.Title)
	user := ""
	if h.Username != "" {
		user = t.HeaderMeta.Render(h.Username)
	}

	gap := h.Width - lipgloss.Width(title) - lipgloss.Width(user) - 2
	if gap < 1 {
		gap = 1
	}
	top := t.Header.Width(h.Width).Render(title + strings.Repeat(" ", gap) + user)

	var tabs []string
	for i, tab := range h.Tabs {
		if i == h.Active {
			tabs = append(tabs, t.TabActive.Render(tab))
		} else {
			tabs = append(tabs, t.Tab.Render(tab))
		}
	}
	tabRow := util.TruncateWidth(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), h.Width)

	return top + "\n" + tabRow
}
