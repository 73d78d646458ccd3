// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// SentinelDate is the zero-date literal the portal uses for "no due date
// set." Records carrying it are exempt from expiry bucketing: they are
// excluded from the time histogram rather than counted as Expired.
const SentinelDate = "0001-01-01T00:00:00Z"

// =============================================================================
// SOLICITATION
// =============================================================================

// Solicitation is a single tracked government opportunity.
type Solicitation struct {
	SourceID        string     `json:"source_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Agency          string     `json:"agency"`
	DueDate         string     `json:"due_date"`
	URL             string     `json:"url"`
	Documents       []Document `json:"documents"`
	LeadName        string     `json:"lead_name,omitempty"`
	InterestedCount int        `json:"interested_count,omitempty"`
	Archived        bool       `json:"archived,omitempty"`
}

// Document is an attachment published with a solicitation.
type Document struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// HasDueDate reports whether the solicitation carries a real due date.
func (s *Solicitation) HasDueDate() bool {
	return s.DueDate != SentinelDate && s.DueDate != ""
}

// ClaimType is the user's relationship to a solicitation.
type ClaimType string

const (
	ClaimInterested ClaimType = "interested"
	ClaimLead       ClaimType = "lead"
	ClaimNone       ClaimType = "none"
)

// Comment is a user note attached to a solicitation or task.
type Comment struct {
	ID         int       `json:"id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// =============================================================================
// MATCH
// =============================================================================

// Match pairs a solicitation with the upstream AI relevance score for the
// current user. Score and explanation are opaque to the client.
type Match struct {
	MatchID      int          `json:"match_id"`
	Score        int          `json:"score"`
	Explanation  string       `json:"explanation"`
	Solicitation Solicitation `json:"solicitation"`
}

// Score badge thresholds used by the inbox display.
const (
	ScoreStrong = 80
	ScoreFair   = 50
)

// =============================================================================
// USER
// =============================================================================

// User is the authenticated portal user returned by /api/auth/me.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	Narrative    string `json:"narrative"`
	AuthProvider string `json:"auth_provider,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

// NarrativeVersion is one saved revision of the user's capability narrative.
type NarrativeVersion struct {
	Version   int       `json:"version"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// DEVELOPER TASKS & REQUIREMENTS
// =============================================================================

// Task is a developer work item from the internal tooling screen.
type Task struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	Selected   bool   `json:"selected"`
	Plan       string `json:"plan,omitempty"`
	PlanStatus string `json:"plan_status,omitempty"`
}

// Requirement is a saved requirements document revision.
type Requirement struct {
	Version   int       `json:"version"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// IRAD PORTFOLIO
// =============================================================================

// SCO is a strategic capability objective in the IRAD portfolio.
type SCO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// IRADProject is an internal R&D project tracked against an SCO.
type IRADProject struct {
	ID     int    `json:"id"`
	SCOID  int    `json:"sco_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Lead   string `json:"lead,omitempty"`
}

// =============================================================================
// FEEDBACK
// =============================================================================

// Feedback is a user-submitted report about a portal screen.
type Feedback struct {
	AppName  string `json:"app_name"`
	ViewName string `json:"view_name"`
	Content  string `json:"content"`
}
