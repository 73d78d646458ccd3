// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the named color set one theme is built from.
type Palette struct {
	Name string

	// Accents
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Semantic
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Info    lipgloss.Color

	// Surfaces
	Surface     lipgloss.Color
	SurfaceDim  lipgloss.Color
	Overlay     lipgloss.Color

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	// Chat bubbles
	UserBubbleFg      lipgloss.Color
	UserBubbleBorder  lipgloss.Color
	BotBubbleFg       lipgloss.Color
	BotBubbleBorder   lipgloss.Color

	// GlamourStyle names the glamour style config used for markdown
	// rendering under this palette.
	GlamourStyle string
}

// The built-in palettes. Dark is the default; light for bright terminals;
// forest is the green alternate carried over from the web portal.
var palettes = map[string]Palette{
	"dark": {
		Name:             "dark",
		Primary:          lipgloss.Color("#22D3EE"),
		Secondary:        lipgloss.Color("#A78BFA"),
		Success:          lipgloss.Color("#34D399"),
		Warning:          lipgloss.Color("#FBBF24"),
		Danger:           lipgloss.Color("#FB7185"),
		Info:             lipgloss.Color("#60A5FA"),
		Surface:          lipgloss.Color("#1E1E2E"),
		SurfaceDim:       lipgloss.Color("#181825"),
		Overlay:          lipgloss.Color("#313244"),
		TextPrimary:      lipgloss.Color("#CDD6F4"),
		TextSecondary:    lipgloss.Color("#A6ADC8"),
		TextMuted:        lipgloss.Color("#6C7086"),
		TextInverse:      lipgloss.Color("#1E1E2E"),
		UserBubbleFg:     lipgloss.Color("#E0F2FE"),
		UserBubbleBorder: lipgloss.Color("#3B82F6"),
		BotBubbleFg:      lipgloss.Color("#E9E4F5"),
		BotBubbleBorder:  lipgloss.Color("#A78BFA"),
		GlamourStyle:     "dark",
	},
	"light": {
		Name:             "light",
		Primary:          lipgloss.Color("#0891B2"),
		Secondary:        lipgloss.Color("#7C3AED"),
		Success:          lipgloss.Color("#059669"),
		Warning:          lipgloss.Color("#D97706"),
		Danger:           lipgloss.Color("#E11D48"),
		Info:             lipgloss.Color("#2563EB"),
		Surface:          lipgloss.Color("#FFFFFF"),
		SurfaceDim:       lipgloss.Color("#F5F5F5"),
		Overlay:          lipgloss.Color("#E5E5E5"),
		TextPrimary:      lipgloss.Color("#1F2937"),
		TextSecondary:    lipgloss.Color("#6B7280"),
		TextMuted:        lipgloss.Color("#9CA3AF"),
		TextInverse:      lipgloss.Color("#FFFFFF"),
		UserBubbleFg:     lipgloss.Color("#1E40AF"),
		UserBubbleBorder: lipgloss.Color("#3B82F6"),
		BotBubbleFg:      lipgloss.Color("#5B4B8A"),
		BotBubbleBorder:  lipgloss.Color("#C4B5FD"),
		GlamourStyle:     "light",
	},
	"forest": {
		Name:             "forest",
		Primary:          lipgloss.Color("#4ADE80"),
		Secondary:        lipgloss.Color("#A3E635"),
		Success:          lipgloss.Color("#86EFAC"),
		Warning:          lipgloss.Color("#FACC15"),
		Danger:           lipgloss.Color("#F87171"),
		Info:             lipgloss.Color("#5EEAD4"),
		Surface:          lipgloss.Color("#14231A"),
		SurfaceDim:       lipgloss.Color("#0D1912"),
		Overlay:          lipgloss.Color("#2B4434"),
		TextPrimary:      lipgloss.Color("#D9F2E2"),
		TextSecondary:    lipgloss.Color("#9FBFAC"),
		TextMuted:        lipgloss.Color("#5E7D6B"),
		TextInverse:      lipgloss.Color("#14231A"),
		UserBubbleFg:     lipgloss.Color("#D9F9E6"),
		UserBubbleBorder: lipgloss.Color("#4ADE80"),
		BotBubbleFg:      lipgloss.Color("#E4F5D9"),
		BotBubbleBorder:  lipgloss.Color("#A3E635"),
		GlamourStyle:     "dark",
	},
}

// PaletteNames returns the available theme names in display order.
func PaletteNames() []string {
	return []string{"light", "dark", "forest"}
}

// ValidTheme reports whether name is a built-in palette.
func ValidTheme(name string) bool {
	_, ok := palettes[name]
	return ok
}

// =============================================================================
// ACCESSIBILITY INDICATORS
// =============================================================================

// StatusIndicatorSet contains ASCII shape indicators for status states.
// These provide visual cues beyond color for colorblind accessibility.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
	Active  string
}

// StatusIndicators provides accessible shape indicators alongside colors.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
	Active:  "[*]",
}
