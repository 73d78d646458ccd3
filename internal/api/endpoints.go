// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/jeranaias/joshua-tui/internal/model"
)

// =============================================================================
// AUTH
// =============================================================================

// Login authenticates with the portal. On success the session cookie lands
// in the client's jar and the authenticated user is returned.
func (c *Client) Login(ctx context.Context, username, password string) (*model.User, error) {
	body := map[string]string{"username": username, "password": password}
	var user model.User
	if err := c.postJSON(ctx, "/api/auth/login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/api/auth/logout", nil, nil)
}

// Me returns the currently authenticated user, or ErrUnauthorized.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.getJSON(ctx, "/api/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword updates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"current_password": current, "new_password": next}
	return c.postJSON(ctx, "/api/auth/password", body, nil)
}

// =============================================================================
// SOLICITATIONS
// =============================================================================

// Solicitations returns the full solicitation library. Analytics and
// filtering happen client side, so this is the one list fetch per refresh.
func (c *Client) Solicitations(ctx context.Context) ([]model.Solicitation, error) {
	var out []model.Solicitation
	if err := c.getJSON(ctx, "/api/solicitations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Solicitation returns a single record by its source ID.
func (c *Client) Solicitation(ctx context.Context, sourceID string) (*model.Solicitation, error) {
	var out model.Solicitation
	if err := c.getJSON(ctx, "/api/solicitations/"+pathEscape(sourceID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Claim sets the caller's claim on a solicitation: interested, lead, or
// none to withdraw. The updated record is returned.
func (c *Client) Claim(ctx context.Context, sourceID string, claim model.ClaimType) (*model.Solicitation, error) {
	body := map[string]string{"claim_type": string(claim)}
	var out model.Solicitation
	err := c.postJSON(ctx, "/api/solicitations/"+pathEscape(sourceID)+"/claim", body, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Archive sets or clears the archived flag on a solicitation.
func (c *Client) Archive(ctx context.Context, sourceID string, archived bool) error {
	body := map[string]bool{"archived": archived}
	return c.postJSON(ctx, "/api/solicitations/"+pathEscape(sourceID)+"/archive", body, nil)
}

// Share emails a solicitation link to a colleague.
func (c *Client) Share(ctx context.Context, sourceID, email, note string) error {
	body := map[string]string{"email": email, "note": note}
	return c.postJSON(ctx, "/api/solicitations/"+pathEscape(sourceID)+"/share", body, nil)
}

// Comments returns the comment thread on a solicitation.
func (c *Client) Comments(ctx context.Context, sourceID string) ([]model.Comment, error) {
	var out []model.Comment
	err := c.getJSON(ctx, "/api/solicitations/"+pathEscape(sourceID)+"/comments", &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddComment posts a comment and returns the stored record.
func (c *Client) AddComment(ctx context.Context, sourceID, content string) (*model.Comment, error) {
	body := map[string]string{"content": content}
	var out model.Comment
	err := c.postJSON(ctx, "/api/solicitations/"+pathEscape(sourceID)+"/comments", body, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// MATCHES (INBOX)
// =============================================================================

// Matches returns the caller's scored inbox.
func (c *Client) Matches(ctx context.Context) ([]model.Match, error) {
	var out []model.Match
	if err := c.getJSON(ctx, "/api/matches", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DismissMatch removes a match from the inbox.
func (c *Client) DismissMatch(ctx context.Context, matchID int) error {
	return c.postJSON(ctx, fmt.Sprintf("/api/matches/%d/dismiss", matchID), nil, nil)
}

// =============================================================================
// PROFILE
// =============================================================================

// Profile returns the caller's profile.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.getJSON(ctx, "/api/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile saves profile edits and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, user *model.User) (*model.User, error) {
	var out model.User
	if err := c.putJSON(ctx, "/api/profile", user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAvatar uploads an avatar image as multipart form data.
func (c *Client) UploadAvatar(ctx context.Context, filename string, image io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("avatar", filepath.Base(filename))
	if err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish upload: %w", err)
	}

	return c.postMultipart(ctx, "/api/profile/avatar", writer.FormDataContentType(), &buf, nil)
}

// =============================================================================
// NARRATIVE
// =============================================================================

// Narrative returns the caller's capability narrative, the text the match
// scorer compares solicitations against.
func (c *Client) Narrative(ctx context.Context) (string, error) {
	var out struct {
		Content string `json:"content"`
	}
	if err := c.getJSON(ctx, "/api/narrative", &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

// SaveNarrative stores a new narrative revision.
func (c *Client) SaveNarrative(ctx context.Context, content string) error {
	body := map[string]string{"content": content}
	return c.putJSON(ctx, "/api/narrative", body, nil)
}

// NarrativeVersions lists prior narrative revisions, newest first.
func (c *Client) NarrativeVersions(ctx context.Context) ([]model.NarrativeVersion, error) {
	var out []model.NarrativeVersion
	if err := c.getJSON(ctx, "/api/narrative/versions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NarrativeVersion returns the full text of one prior revision.
func (c *Client) NarrativeVersion(ctx context.Context, version int) (*model.NarrativeVersion, error) {
	var out model.NarrativeVersion
	err := c.getJSON(ctx, fmt.Sprintf("/api/narrative/versions/%d", version), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// REQUIREMENTS
// =============================================================================

// Requirements returns the current requirements document set.
func (c *Client) Requirements(ctx context.Context) ([]model.Requirement, error) {
	var out []model.Requirement
	if err := c.getJSON(ctx, "/api/requirements", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveRequirement stores a requirement and returns the saved record.
func (c *Client) SaveRequirement(ctx context.Context, req *model.Requirement) (*model.Requirement, error) {
	var out model.Requirement
	if err := c.postJSON(ctx, "/api/requirements", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// TASKS
// =============================================================================

// Tasks returns the team's task board.
func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.getJSON(ctx, "/api/tasks", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Task returns one task with its plan and comments.
func (c *Client) Task(ctx context.Context, taskID int) (*model.Task, error) {
	var out model.Task
	if err := c.getJSON(ctx, fmt.Sprintf("/api/tasks/%d", taskID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelectTask claims a task for the current user.
func (c *Client) SelectTask(ctx context.Context, taskID int) error {
	return c.postJSON(ctx, fmt.Sprintf("/api/tasks/%d/select", taskID), nil, nil)
}

// SaveTaskPlan stores the execution plan for a task.
func (c *Client) SaveTaskPlan(ctx context.Context, taskID int, plan string) error {
	body := map[string]string{"plan": plan}
	return c.putJSON(ctx, fmt.Sprintf("/api/tasks/%d/plan", taskID), body, nil)
}

// AddTaskComment posts a comment on a task.
func (c *Client) AddTaskComment(ctx context.Context, taskID int, content string) (*model.Comment, error) {
	body := map[string]string{"content": content}
	var out model.Comment
	err := c.postJSON(ctx, fmt.Sprintf("/api/tasks/%d/comments", taskID), body, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// IRAD
// =============================================================================

// SCOs returns the strategic capability objectives.
func (c *Client) SCOs(ctx context.Context) ([]model.SCO, error) {
	var out []model.SCO
	if err := c.getJSON(ctx, "/api/irad/scos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IRADProjects returns internal research projects, optionally scoped to an SCO.
func (c *Client) IRADProjects(ctx context.Context, scoID int) ([]model.IRADProject, error) {
	path := "/api/irad/projects"
	if scoID > 0 {
		path = fmt.Sprintf("%s?sco=%d", path, scoID)
	}
	var out []model.IRADProject
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SendFeedback submits in-app feedback about a screen.
func (c *Client) SendFeedback(ctx context.Context, fb model.Feedback) error {
	return c.postJSON(ctx, "/api/feedback", fb, nil)
}
