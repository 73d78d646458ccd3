// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/joshua-tui/internal/analytics"
	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/chat"
	"github.com/jeranaias/joshua-tui/internal/config"
	"github.com/jeranaias/joshua-tui/internal/model"
)

// =============================================================================
// HELPERS
// =============================================================================

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEscape() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEscape} }

// dueIn returns an RFC3339 date the given number of days from now, padded
// an hour so ceiling rounding cannot drift across a bucket boundary.
func dueIn(days int) string {
	return time.Now().Add(time.Duration(days)*24*time.Hour + time.Hour).Format(time.RFC3339)
}

func testSolicitations() []model.Solicitation {
	return []model.Solicitation{
		{SourceID: "A-1", Title: "Radar Maintenance", Agency: "USAF", DueDate: dueIn(3)},
		{SourceID: "A-2", Title: "Satellite Uplink", Agency: "USSF", DueDate: dueIn(20)},
		{SourceID: "A-3", Title: "Radar Upgrade", Agency: "USAF", DueDate: dueIn(45)},
		{SourceID: "A-4", Title: "Janitorial Services", Agency: "GSA", DueDate: model.SentinelDate},
		{SourceID: "A-5", Title: "Old Radar RFP", Agency: "USN", DueDate: "2020-01-01T00:00:00Z"},
	}
}

func newTestLibrary(t *testing.T) *LibraryModel {
	t.Helper()
	m := NewLibraryModel(config.Default())
	m.SetSize(120, 30)
	m.SetItems(testSolicitations())
	return m
}

// =============================================================================
// LIBRARY
// =============================================================================

func TestLibraryTextFilterTyping(t *testing.T) {
	m := newTestLibrary(t)
	require.Len(t, m.visible, 5)

	m.Update(keyRunes("/"))
	require.True(t, m.filtering)
	m.Update(keyRunes("radar"))

	require.Len(t, m.visible, 3)
	for _, s := range m.visible {
		assert.Contains(t, s.Title, "Radar")
	}

	// Histograms follow the text filter.
	total := 0
	for _, e := range m.agencyEntries {
		total += e.Count
	}
	assert.Equal(t, 3, total)

	// Escape clears the text filter entirely.
	m.Update(keyEscape())
	assert.False(t, m.filtering)
	assert.Len(t, m.visible, 5)
}

func TestLibraryBucketToggle(t *testing.T) {
	m := newTestLibrary(t)

	// Focus the due-date chart; its cursor starts on Expired.
	m.Update(keyRunes("f"))
	require.Equal(t, paneTimeChart, m.focus)
	m.Update(keyEnter())

	require.Equal(t, analytics.BucketExpired, m.filters.Bucket)
	require.Len(t, m.visible, 1)
	assert.Equal(t, "A-5", m.visible[0].SourceID)

	// The agency histogram is restricted to the bucket selection. The
	// sentinel-dated record matches no bucket, so GSA disappears.
	names := map[string]bool{}
	for _, e := range m.agencyEntries {
		if e.Count > 0 {
			names[e.Name] = true
		}
	}
	assert.Equal(t, map[string]bool{"USN": true}, names)

	// Re-selecting the same bar clears the filter.
	m.Update(keyEnter())
	assert.Equal(t, analytics.Bucket(""), m.filters.Bucket)
	assert.Len(t, m.visible, 5)
}

func TestLibraryAgencyCrossFiltersTimeChart(t *testing.T) {
	m := newTestLibrary(t)
	m.filters.Agency = "USAF"
	m.recompute()

	require.Len(t, m.visible, 2)

	// Time histogram counts only USAF records: one 0-7, one 30+.
	counts := map[string]int{}
	for _, e := range m.timeEntries {
		counts[e.Name] = e.Count
	}
	assert.Equal(t, 1, counts[string(analytics.Bucket0to7)])
	assert.Equal(t, 1, counts[string(analytics.BucketOver30)])
	assert.Equal(t, 0, counts[string(analytics.BucketExpired)])
}

func TestLibraryArchivedHiddenByDefault(t *testing.T) {
	m := newTestLibrary(t)
	items := testSolicitations()
	items[0].Archived = true
	m.SetItems(items)

	require.Len(t, m.visible, 4)

	m.Update(keyRunes("A"))
	assert.Len(t, m.visible, 5)
}

func TestLibrarySortCycleAndReverse(t *testing.T) {
	m := newTestLibrary(t)
	require.Equal(t, "due_date", m.sortColumn)

	// Default: due date ascending, sentinel (lexicographically smallest)
	// record first.
	assert.Equal(t, "A-4", m.visible[0].SourceID)

	m.Update(keyRunes("s"))
	assert.Equal(t, "title", m.sortColumn)
	assert.Equal(t, "Janitorial Services", m.visible[0].Title)

	m.Update(keyRunes("r"))
	assert.True(t, m.sortDesc)
	assert.Equal(t, "Satellite Uplink", m.visible[0].Title)
}

func TestLibraryEnterOpensDetail(t *testing.T) {
	m := newTestLibrary(t)
	cmd := m.Update(keyEnter())
	require.NotNil(t, cmd)

	msg, ok := cmd().(openDetailMsg)
	require.True(t, ok)
	require.NotNil(t, msg.sol)
	assert.Nil(t, msg.match)
}

// =============================================================================
// INBOX
// =============================================================================

func testMatches() []model.Match {
	return []model.Match{
		{MatchID: 1, Score: 55, Solicitation: model.Solicitation{SourceID: "B-1", Title: "Fair Fit", DueDate: dueIn(5)}},
		{MatchID: 2, Score: 91, Solicitation: model.Solicitation{SourceID: "B-2", Title: "Strong Fit", DueDate: dueIn(9)}},
		{MatchID: 3, Score: 30, Solicitation: model.Solicitation{SourceID: "B-3", Title: "Weak Fit", DueDate: dueIn(2)}},
	}
}

func TestInboxDefaultSortScoreDescending(t *testing.T) {
	m := NewInboxModel(config.Default())
	m.SetSize(100, 30)
	m.SetItems(testMatches())

	require.Len(t, m.visible, 3)
	assert.Equal(t, 91, m.visible[0].Score)
	assert.Equal(t, 55, m.visible[1].Score)
	assert.Equal(t, 30, m.visible[2].Score)

	m.Update(keyRunes("r"))
	assert.Equal(t, 30, m.visible[0].Score)
}

func TestInboxEnterOpensDetailWithMatch(t *testing.T) {
	m := NewInboxModel(config.Default())
	m.SetItems(testMatches())

	cmd := m.Update(keyEnter())
	require.NotNil(t, cmd)

	msg, ok := cmd().(openDetailMsg)
	require.True(t, ok)
	require.NotNil(t, msg.match)
	assert.Equal(t, 91, msg.match.Score)
	assert.Equal(t, "B-2", msg.sol.SourceID)
}

// =============================================================================
// CHAT
// =============================================================================

// stubStreamer plays back fragments and then an optional error.
type stubStreamer struct {
	fragments []string
	err       error
}

func (s *stubStreamer) ChatStream(ctx context.Context, msgs []model.Message, onFragment func(string)) error {
	for _, f := range s.fragments {
		onFragment(f)
	}
	return s.err
}

// drainChat pumps stream events through the model until the exchange settles.
func drainChat(t *testing.T, m *ChatModel, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 100, "exchange did not settle")
		msg := cmd()
		if msg == nil {
			return
		}
		cmd = m.Update(msg)
	}
}

func TestChatExchangeStreamsReply(t *testing.T) {
	m := NewChatModel(&stubStreamer{fragments: []string{"GREETINGS ", "PROFESSOR"}}, config.Default())
	m.SetSize(80, 24)

	m.input.SetValue("shall we play a game?")
	drainChat(t, m, m.Update(keyEnter()))

	require.False(t, m.session.Busy())
	msgs := m.session.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "shall we play a game?", msgs[0].Content)
	assert.Equal(t, "GREETINGS PROFESSOR", msgs[1].Content)
	assert.Equal(t, chat.StateCompleted, m.session.State())
	assert.Empty(t, m.input.Value())
}

func TestChatFailureShowsTerminalMessage(t *testing.T) {
	m := NewChatModel(&stubStreamer{err: errors.New("connection refused")}, config.Default())
	m.SetSize(80, 24)

	m.input.SetValue("hello")
	drainChat(t, m, m.Update(keyEnter()))

	msgs := m.session.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.ConnectionFailureMessage, msgs[1].Content)
	assert.Equal(t, chat.StateFailed, m.session.State())
}

func TestChatEmptyInputIsIgnored(t *testing.T) {
	m := NewChatModel(&stubStreamer{}, config.Default())
	m.SetSize(80, 24)

	m.input.SetValue("   ")
	cmd := m.Update(keyEnter())
	assert.Nil(t, cmd)
	assert.Zero(t, m.session.Len())
}

// =============================================================================
// LOGIN
// =============================================================================

func TestLoginRequiresBothFields(t *testing.T) {
	m := NewLoginModel(nil)
	m.focused = 1

	cmd := m.Update(keyEnter())
	assert.Nil(t, cmd)
	assert.Equal(t, "username and password are required", m.errText)
}

func TestLoginSetErrorMapsUnauthorized(t *testing.T) {
	m := NewLoginModel(nil)

	m.SetError(api.ErrUnauthorized)
	assert.Equal(t, "invalid username or password", m.errText)

	m.SetError(errors.New("dial tcp: refused"))
	assert.Equal(t, "dial tcp: refused", m.errText)

	m.SetError(nil)
	assert.Empty(t, m.errText)
}

// =============================================================================
// DETAIL
// =============================================================================

func TestDetailClaimIsOptimisticWithRollback(t *testing.T) {
	m := NewDetailModel(nil)
	sol := &model.Solicitation{SourceID: "C-1", Title: "Radar", InterestedCount: 2}
	m.SetSolicitation(sol, nil)

	cmd := m.Update(keyRunes("i"))
	require.NotNil(t, cmd)
	assert.Equal(t, 3, sol.InterestedCount, "apply is immediate")

	// Remote half failed: the pending command rolls back.
	m.Update(mutationDoneMsg{seq: 1, err: errors.New("boom")})
	assert.Equal(t, 2, sol.InterestedCount)
	assert.Empty(t, m.pending)
}

func TestDetailArchiveToggleCommits(t *testing.T) {
	m := NewDetailModel(nil)
	sol := &model.Solicitation{SourceID: "C-2", Title: "Radar"}
	m.SetSolicitation(sol, nil)

	require.NotNil(t, m.Update(keyRunes("a")))
	assert.True(t, sol.Archived)

	m.Update(mutationDoneMsg{seq: 1, err: nil})
	assert.True(t, sol.Archived, "success keeps the optimistic state")
}

// =============================================================================
// TASKS
// =============================================================================

func testTasks() []model.Task {
	return []model.Task{
		{ID: 1, Title: "Wire histogram cache", Status: "open", Content: "Cache bucket counts between keystrokes."},
		{ID: 2, Title: "Add export command", Status: "open", Selected: true},
		{ID: 3, Title: "Polish login banner", Status: "done"},
	}
}

func TestTasksLoadAndNavigate(t *testing.T) {
	m := NewTasksModel(nil)
	m.SetSize(100, 30)

	m.Update(tasksLoadedMsg{items: testTasks()})
	require.True(t, m.loaded)
	require.Len(t, m.tasks, 3)

	m.Update(keyRunes("j"))
	m.Update(keyRunes("j"))
	assert.Equal(t, 2, m.cursor)
	m.Update(keyRunes("j"))
	assert.Equal(t, 2, m.cursor, "cursor stops at the last task")
	m.Update(keyRunes("k"))
	assert.Equal(t, 1, m.cursor)

	view := m.View()
	assert.Contains(t, view, "[x] #2 Add export command")
	assert.Contains(t, view, "[ ] #1 Wire histogram cache")
}

func TestTasksEnterTogglesSelection(t *testing.T) {
	m := NewTasksModel(nil)
	m.Update(tasksLoadedMsg{items: testTasks()})

	cmd := m.Update(keyEnter())
	require.NotNil(t, cmd, "enter issues the toggle round trip")
}

func TestTasksCursorClampsAfterReload(t *testing.T) {
	m := NewTasksModel(nil)
	m.Update(tasksLoadedMsg{items: testTasks()})
	m.cursor = 2

	m.Update(tasksLoadedMsg{items: testTasks()[:1]})
	assert.Equal(t, 0, m.cursor)
}

// =============================================================================
// PROFILE
// =============================================================================

func TestProfilePasswordTwoStageEntry(t *testing.T) {
	m := NewProfileModel(nil)
	m.SetUser(&model.User{Username: "falken", FullName: "Stephen Falken"})

	m.Update(keyRunes("p"))
	require.Equal(t, profilePassword, m.mode)
	assert.Equal(t, 0, m.passwordStage)

	m.Update(keyRunes("hunter2"))
	m.Update(keyEnter())
	assert.Equal(t, 1, m.passwordStage)
	assert.Equal(t, "hunter2", m.currentPassword)
	assert.Empty(t, m.input.Value(), "input clears between stages")

	// Empty new password is ignored.
	assert.Nil(t, m.Update(keyEnter()))

	m.Update(keyEscape())
	assert.Equal(t, profileViewing, m.mode)
	assert.Empty(t, m.currentPassword, "escape scrubs the typed password")
}

func TestProfileAvatarRequiresPath(t *testing.T) {
	m := NewProfileModel(nil)
	m.SetUser(&model.User{Username: "falken"})

	m.Update(keyRunes("a"))
	require.Equal(t, profileAvatar, m.mode)

	assert.Nil(t, m.Update(keyEnter()), "blank path is ignored")

	m.Update(keyRunes("/tmp/avatar.png"))
	require.NotNil(t, m.Update(keyEnter()), "a path issues the upload")
}
