// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application, built from
// one palette.
type Theme struct {
	// Palette this theme was built from.
	Palette Palette

	// Terminal capabilities
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND NAVIGATION STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style

	// ==========================================================================
	// TABLE STYLES
	// ==========================================================================

	TableHeader      lipgloss.Style
	TableRow         lipgloss.Style
	TableRowSelected lipgloss.Style
	TableRowArchived lipgloss.Style

	// ==========================================================================
	// HISTOGRAM STYLES
	// ==========================================================================

	ChartTitle       lipgloss.Style
	ChartBar         lipgloss.Style
	ChartBarSelected lipgloss.Style
	ChartLabel       lipgloss.Style
	ChartValue       lipgloss.Style

	// ==========================================================================
	// SCORE BADGE STYLES
	// ==========================================================================

	ScoreStrong lipgloss.Style
	ScoreFair   lipgloss.Style
	ScoreWeak   lipgloss.Style

	// ==========================================================================
	// DETAIL AND FORM STYLES
	// ==========================================================================

	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style
	DetailBox   lipgloss.Style
	FormField   lipgloss.Style
	FormFocused lipgloss.Style

	// ==========================================================================
	// CHAT STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	SpeakerUser lipgloss.Style
	SpeakerBot  lipgloss.Style
	ChatError   lipgloss.Style
	InputPrompt lipgloss.Style
	InputText   lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND FEEDBACK STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	FilterActive lipgloss.Style
}

// NewTheme builds a theme from the named palette, falling back to dark for
// an unknown name.
func NewTheme(name string) *Theme {
	p, ok := palettes[name]
	if !ok {
		p = palettes["dark"]
	}

	colorProfile := termenv.ColorProfile()
	t := &Theme{
		Palette:      p,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles() {
	p := t.Palette

	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header and navigation
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		Background(p.SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	t.Tab = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Padding(0, 2)

	t.TabActive = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Primary).
		Bold(true).
		Padding(0, 2)

	// Tables
	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Overlay)

	t.TableRow = lipgloss.NewStyle().
		Foreground(p.TextPrimary)

	t.TableRowSelected = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Primary).
		Bold(true)

	t.TableRowArchived = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Strikethrough(true)

	// Histograms
	t.ChartTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary)

	t.ChartBar = lipgloss.NewStyle().
		Foreground(p.Primary)

	t.ChartBarSelected = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	t.ChartLabel = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	t.ChartValue = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Score badges
	t.ScoreStrong = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	t.ScoreFair = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	t.ScoreWeak = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Detail and forms
	t.DetailLabel = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Bold(true).
		Width(16)

	t.DetailValue = lipgloss.NewStyle().
		Foreground(p.TextPrimary)

	t.DetailBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(1, 2)

	t.FormField = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.FormFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)

	// Chat
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(p.BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.BotBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SpeakerUser = lipgloss.NewStyle().
		Foreground(p.UserBubbleBorder).
		Bold(true)

	t.SpeakerBot = lipgloss.NewStyle().
		Foreground(p.BotBubbleBorder).
		Bold(true)

	t.ChatError = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(p.TextPrimary)

	// Status bar and feedback
	t.StatusBar = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Secondary)

	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(p.Danger).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(p.Info).
		Bold(true)

	t.FilterActive = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)
}

// =============================================================================
// THEME REGISTRY
// =============================================================================

var (
	themeMu sync.RWMutex
	current = NewTheme("dark")
)

// Current returns the active theme. Screens call this on every render.
func Current() *Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return current
}

// Set switches the active theme. Unknown names are rejected so a bad
// config value cannot blank the UI.
func Set(name string) bool {
	if !ValidTheme(name) {
		return false
	}
	themeMu.Lock()
	current = NewTheme(name)
	themeMu.Unlock()
	return true
}

// =============================================================================
// STATUS RENDER HELPERS
// =============================================================================

// RenderSuccess renders a success message with its shape indicator.
func RenderSuccess(message string) string {
	return Current().SuccessStyle.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its shape indicator.
func RenderError(message string) string {
	return Current().ErrorStyle.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with its shape indicator.
func RenderWarning(message string) string {
	return Current().WarningStyle.Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an info message with its shape indicator.
func RenderInfo(message string) string {
	return Current().InfoStyle.Render(StatusIndicators.Info + " " + message)
}
