// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/joshua-tui/internal/ui/styles"
)

// markdownRenderer caches a glamour renderer keyed by the width and style
// it was built for; chat re-renders on every fragment, so rebuilding the
// renderer each frame would dominate the render cost.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// Render renders markdown for terminal display, rebuilding the underlying
// renderer when the width or active theme changed. Falls back to the raw
// content if rendering fails.
func (m *markdownRenderer) Render(content string, width int) string {
	if width < 20 {
		width = 20
	}
	style := styles.Current().Palette.GlamourStyle

	if m.renderer == nil || m.width != width || m.style != style {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		m.renderer = r
		m.width = width
		m.style = style
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
