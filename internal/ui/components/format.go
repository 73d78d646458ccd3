// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/jeranaias/joshua-tui/internal/analytics"
	"github.com/jeranaias/joshua-tui/internal/model"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
)

// =============================================================================
// DISPLAY FORMATTERS
// =============================================================================

// NoDueDateDisplay is what a sentinel or missing due date renders as.
const NoDueDateDisplay = "N/A"

// FormatDueDate renders a due date for table and detail views: the date
// plus how many days remain, "N/A" for the sentinel zero-date.
func FormatDueDate(date string, now time.Time) string {
	days := analytics.DaysRemaining(date, now)
	if days == analytics.NoDueDate {
		return NoDueDateDisplay
	}
	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return NoDueDateDisplay
	}

	switch {
	case days < 0:
		return fmt.Sprintf("%s (expired)", parsed.Format("2006-01-02"))
	case days == 0:
		return fmt.Sprintf("%s (today)", parsed.Format("2006-01-02"))
	case days == 1:
		return fmt.Sprintf("%s (1 day)", parsed.Format("2006-01-02"))
	default:
		return fmt.Sprintf("%s (%d days)", parsed.Format("2006-01-02"), days)
	}
}

// DueDateStyle returns the style a due date should render in, keyed by
// urgency bucket.
func DueDateStyle(date string, now time.Time) func(string) string {
	t := styles.Current()
	days := analytics.DaysRemaining(date, now)
	if days == analytics.NoDueDate {
		return func(s string) string { return t.ChartValue.Render(s) }
	}
	switch analytics.BucketOf(days) {
	case analytics.BucketExpired:
		return func(s string) string { return t.ErrorStyle.Render(s) }
	case analytics.Bucket0to7:
		return func(s string) string { return t.WarningStyle.Render(s) }
	default:
		return func(s string) string { return t.DetailValue.Render(s) }
	}
}

// FormatScore renders a match score as a styled badge. Thresholds follow
// the portal: 80+ strong, 50+ fair, below that weak.
func FormatScore(score int) string {
	t := styles.Current()
	text := fmt.Sprintf("%3d", score)
	switch {
	case score >= model.ScoreStrong:
		return t.ScoreStrong.Render(text)
	case score >= model.ScoreFair:
		return t.ScoreFair.Render(text)
	default:
		return t.ScoreWeak.Render(text)
	}
}

// FormatClaim renders the claim column for a solicitation row.
func FormatClaim(s *model.Solicitation) string {
	switch {
	case s.LeadName != "" && s.InterestedCount > 0:
		return fmt.Sprintf("lead: %s +%d", s.LeadName, s.InterestedCount)
	case s.LeadName != "":
		return "lead: " + s.LeadName
	case s.InterestedCount > 0:
		return fmt.Sprintf("%d interested", s.InterestedCount)
	default:
		return ""
	}
}
