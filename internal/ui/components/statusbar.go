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
// STATUS BAR COMPONENT
// =============================================================================

// Status is the current application state shown on the left of the bar.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusStreaming
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusStreaming:
		return "Streaming..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
// ACCESSIBILITY: Distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusStreaming:
		return "~"
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "-"
	}
}

// Shortcut is one key hint shown on the right of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom bar: status on the left, key hints on the right.
type StatusBar struct {
	Status  Status
	Message string
	Width   int
}

// NewStatusBar creates a status bar in the ready state.
func NewStatusBar() *StatusBar {
	return &StatusBar{Status: StatusReady, Width: 80}
}

// SetWidth updates the available width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

// Set updates the status and optional message in one call.
func (b *StatusBar) Set(status Status, message string) {
	b.Status = status
	b.Message = message
}

// View renders the bar with the given shortcuts.
func (b *StatusBar) View(shortcuts []Shortcut) string {
	t := styles.Current()

	left := b.Status.Icon() + " " + b.Status.String()
	if b.Message != "" {
		left += "  " + b.Message
	}

	var hints []string
	for _, sc := range shortcuts {
		hints = append(hints, t.ShortcutKey.Render(sc.Key)+" "+t.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Drop the hints before truncating the status.
		right = ""
		gap = b.Width - lipgloss.Width(left) - 2
		if gap < 1 {
			gap = 1
		}
	}

	line := left + strings.Repeat(" ", gap) + right
	return t.StatusBar.Width(b.Width).Render(util.TruncateWidth(line, b.Width-2))
}
