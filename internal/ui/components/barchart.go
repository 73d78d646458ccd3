// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/joshua-tui/internal/analytics"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
	"github.com/jeranaias/joshua-tui/internal/util"
)

// =============================================================================
// BAR CHART COMPONENT
// =============================================================================

// labelWidth is the fixed column for entry names so bars line up.
const labelWidth = 14

// BarChart renders a histogram as horizontal bars. One entry can be marked
// selected (the active cross-filter) and one can be the cursor position.
type BarChart struct {
	Title    string
	Entries  []analytics.Entry
	Cursor   int
	Selected string // name of the entry acting as the active filter, "" for none
	Width    int
	Focused  bool
}

// NewBarChart creates an empty chart.
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 40}
}

// SetEntries replaces the chart data, clamping the cursor.
func (c *BarChart) SetEntries(entries []analytics.Entry) {
	c.Entries = entries
	if c.Cursor >= len(entries) {
		c.Cursor = len(entries) - 1
	}
	if c.Cursor < 0 {
		c.Cursor = 0
	}
}

// MoveCursor moves the cursor by delta, staying in range.
func (c *BarChart) MoveCursor(delta int) {
	next := c.Cursor + delta
	if next < 0 || next >= len(c.Entries) {
		return
	}
	c.Cursor = next
}

// CursorEntry returns the entry under the cursor.
func (c *BarChart) CursorEntry() (analytics.Entry, bool) {
	if c.Cursor < 0 || c.Cursor >= len(c.Entries) {
		return analytics.Entry{}, false
	}
	return c.Entries[c.Cursor], true
}

// View renders the chart.
func (c *BarChart) View() string {
	t := styles.Current()

	var b strings.Builder
	title := c.Title
	if c.Selected != "" {
		title += "  " + t.FilterActive.Render("[filtered: "+c.Selected+"]")
	}
	b.WriteString(t.ChartTitle.Render(title))
	b.WriteString("\n")

	max := 0
	for _, e := range c.Entries {
		if e.Count > max {
			max = e.Count
		}
	}

	barSpace := c.Width - labelWidth - 8
	if barSpace < 4 {
		barSpace = 4
	}

	for i, e := range c.Entries {
		label := util.PadWidth(util.TruncateWidth(e.Name, labelWidth), labelWidth)

		barLen := 0
		if max > 0 {
			barLen = e.Count * barSpace / max
		}
		if e.Count > 0 && barLen == 0 {
			barLen = 1
		}
		bar := strings.Repeat("#", barLen)

		barStyle := t.ChartBar
		if e.Name == c.Selected {
			barStyle = t.ChartBarSelected
		}

		cursor := "  "
		if c.Focused && i == c.Cursor {
			cursor = "> "
		}

		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			cursor,
			t.ChartLabel.Render(label),
			barStyle.Render(bar),
			t.ChartValue.Render(fmt.Sprintf("%d", e.Count)),
		))
	}
	return b.String()
}
