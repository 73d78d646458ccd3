// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/joshua-tui/internal/analytics"
	"github.com/jeranaias/joshua-tui/internal/model"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

// =============================================================================
// BAR CHART
// =============================================================================

func TestBarChartRendersAllEntries(t *testing.T) {
	c := NewBarChart("DUE DATES")
	c.Width = 50
	c.SetEntries([]analytics.Entry{
		{Name: "Expired", Count: 0},
		{Name: "0-7 Days", Count: 3},
		{Name: "8-14 Days", Count: 1},
	})

	out := c.View()
	assert.Contains(t, out, "DUE DATES")
	assert.Contains(t, out, "Expired")
	assert.Contains(t, out, "0-7 Days")
	assert.Contains(t, out, "8-14 Days")
	// Zero-count rows render with no bar but keep their count.
	require.Equal(t, 4, strings.Count(out, "\n"), "title plus one line per entry")
}

func TestBarChartCursorStaysInRange(t *testing.T) {
	c := NewBarChart("x")
	c.SetEntries([]analytics.Entry{{Name: "a", Count: 1}, {Name: "b", Count: 2}})

	c.MoveCursor(-1)
	assert.Equal(t, 0, c.Cursor)
	c.MoveCursor(1)
	c.MoveCursor(1)
	assert.Equal(t, 1, c.Cursor)

	entry, ok := c.CursorEntry()
	require.True(t, ok)
	assert.Equal(t, "b", entry.Name)
}

func TestBarChartCursorClampedOnShrink(t *testing.T) {
	c := NewBarChart("x")
	c.SetEntries([]analytics.Entry{{Name: "a"}, {Name: "b"}, {Name: "c"}})
	c.Cursor = 2

	c.SetEntries([]analytics.Entry{{Name: "a"}})
	assert.Equal(t, 0, c.Cursor)
}

func TestBarChartShowsActiveFilter(t *testing.T) {
	c := NewBarChart("AGENCIES")
	c.Width = 50
	c.Selected = "DoD"
	c.SetEntries([]analytics.Entry{{Name: "DoD", Count: 2}})

	assert.Contains(t, c.View(), "[filtered: DoD]")
}

// =============================================================================
// FORMATTERS
// =============================================================================

func TestFormatDueDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"sentinel", model.SentinelDate, "N/A"},
		{"empty", "", "N/A"},
		{"future", "2026-03-14T12:00:00Z", "2026-03-14 (4 days)"},
		{"tomorrow", "2026-03-11T12:00:00Z", "2026-03-11 (1 day)"},
		{"today", "2026-03-10T12:00:00Z", "2026-03-10 (today)"},
		{"expired", "2026-03-01T12:00:00Z", "2026-03-01 (expired)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDueDate(tt.date, testNow))
		})
	}
}

func TestFormatClaim(t *testing.T) {
	assert.Equal(t, "", FormatClaim(&model.Solicitation{}))
	assert.Equal(t, "lead: Falken", FormatClaim(&model.Solicitation{LeadName: "Falken"}))
	assert.Equal(t, "3 interested", FormatClaim(&model.Solicitation{InterestedCount: 3}))
	assert.Equal(t, "lead: Falken +2", FormatClaim(&model.Solicitation{LeadName: "Falken", InterestedCount: 2}))
}

func TestFormatScoreThresholds(t *testing.T) {
	// The rendered text always carries the number; styling varies.
	assert.Contains(t, FormatScore(91), "91")
	assert.Contains(t, FormatScore(80), "80")
	assert.Contains(t, FormatScore(50), "50")
	assert.Contains(t, FormatScore(12), "12")
}

// =============================================================================
// HEADER AND STATUS BAR
// =============================================================================

func TestHeaderMarksActiveTab(t *testing.T) {
	h := NewHeader([]string{"Library", "Inbox", "Chat"})
	h.SetWidth(60)
	h.SetActive(1)
	h.SetUser("falken")

	out := h.View()
	assert.Contains(t, out, "JOSHUA")
	assert.Contains(t, out, "Inbox")
	assert.Contains(t, out, "falken")

	// Out-of-range selection is ignored.
	h.SetActive(9)
	assert.Equal(t, 1, h.Active)
}

func TestStatusBarStatesAndShortcuts(t *testing.T) {
	b := NewStatusBar()
	b.SetWidth(80)
	b.Set(StatusStreaming, "JOSHUA is replying")

	out := b.View([]Shortcut{{Key: "esc", Desc: "back"}, {Key: "q", Desc: "quit"}})
	assert.Contains(t, out, "Streaming...")
	assert.Contains(t, out, "JOSHUA is replying")
	assert.Contains(t, out, "esc")
	assert.Contains(t, out, "quit")
}

func TestStatusIconsDistinct(t *testing.T) {
	icons := map[string]bool{}
	for _, s := range []Status{StatusReady, StatusLoading, StatusStreaming, StatusError} {
		icons[s.Icon()] = true
	}
	assert.Len(t, icons, 4, "every status has a distinct shape")
}
