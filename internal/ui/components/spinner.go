// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/joshua-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER COMPONENT
// =============================================================================

// Spinner is the loading indicator used while a fetch or chat exchange is
// in flight. ASCII frames keep it readable on limited terminals.
type Spinner struct {
	spinner spinner.Model
	message string
	active  bool
	started time.Time
}

// NewSpinner creates a spinner with the default message.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return Spinner{spinner: s, message: "Loading"}
}

// Start activates the spinner with a message and returns the tick command.
func (s *Spinner) Start(message string) tea.Cmd {
	s.message = message
	s.active = true
	s.started = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	return s.active
}

// Update advances the animation on tick messages.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.active {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the spinner frame and message, or nothing when stopped.
func (s *Spinner) View() string {
	if !s.active {
		return ""
	}
	t := styles.Current()
	return t.Spinner.Render(s.spinner.View()) + " " + t.ShortcutDesc.Render(s.message)
}
