// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/joshua-tui/internal/model"
)

// byDueDateAsc mirrors the library screen's default sort: lexicographic on
// the ISO-8601 due date, which orders chronologically and places the
// sentinel zero-date first.
var byDueDateAsc = SortSpec[model.Solicitation]{
	Less: func(a, b model.Solicitation) bool { return a.DueDate < b.DueDate },
}

func TestApplyZeroFilterIsDefaultSortedInput(t *testing.T) {
	items := []model.Solicitation{
		sol("DoD", "late", due(24*40)),
		sol("NASA", "soon", due(24*2)),
		sol("GSA", "none", model.SentinelDate),
	}

	got := Apply(items, solProj, FilterState{}, byDueDateAsc, testNow)

	require.Len(t, got, 3)
	assert.Equal(t, "none", got[0].Title) // sentinel sorts first
	assert.Equal(t, "soon", got[1].Title)
	assert.Equal(t, "late", got[2].Title)

	// The base list is untouched.
	assert.Equal(t, "late", items[0].Title)
}

func TestApplyClearingFiltersIsIdempotent(t *testing.T) {
	items := []model.Solicitation{
		sol("DoD", "a", due(24*3)),
		sol("NASA", "b", due(24*9)),
		sol("DoD", "c", due(24*20)),
	}

	base := Apply(items, solProj, FilterState{}, byDueDateAsc, testNow)

	// Filter down, then clear: the result must reproduce the base exactly.
	fs := FilterState{Bucket: Bucket0to7, Agency: "DoD"}
	_ = Apply(items, solProj, fs, byDueDateAsc, testNow)
	cleared := Apply(items, solProj, fs.ClearSelections(), byDueDateAsc, testNow)

	assert.Equal(t, base, cleared)
}

func TestApplyTextFilterFoldsCase(t *testing.T) {
	items := []model.Solicitation{
		sol("Department of Defense", "Radar Upgrade", due(24)),
		sol("NASA", "Satellite BUS", due(24)),
		sol("GSA", "Janitorial Services", due(24)),
	}

	// Matches against title.
	got := Apply(items, solProj, FilterState{Text: "radar"}, byDueDateAsc, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "Radar Upgrade", got[0].Title)

	// Matches against agency.
	got = Apply(items, solProj, FilterState{Text: "nasa"}, byDueDateAsc, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "Satellite BUS", got[0].Title)
}

func TestApplyBucketAndAgencyFilters(t *testing.T) {
	items := []model.Solicitation{
		sol("DoD", "a", due(24*3)),
		sol("DoD", "b", due(24*20)),
		sol("NASA", "c", due(24*5)),
		sol("GSA", "d", model.SentinelDate),
	}

	got := Apply(items, solProj, FilterState{Bucket: Bucket0to7}, byDueDateAsc, testNow)
	require.Len(t, got, 2)

	got = Apply(items, solProj, FilterState{Bucket: Bucket0to7, Agency: "DoD"}, byDueDateAsc, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Title)

	// A selection with zero matches is legal and yields an empty list.
	got = Apply(items, solProj, FilterState{Bucket: BucketOver30, Agency: "NASA"}, byDueDateAsc, testNow)
	assert.Empty(t, got)
}

func TestApplyTextFilterUnaffectedBySelections(t *testing.T) {
	items := []model.Solicitation{
		sol("DoD", "radar alpha", due(24*3)),
		sol("DoD", "radar beta", due(24*20)),
		sol("NASA", "radar gamma", due(24*3)),
	}

	// The text-filtered base feeding the histograms ignores the selections.
	base := FilterText(items, solProj, "radar")
	assert.Len(t, base, 3)

	withSelections := FilterText(items, solProj, "radar")
	assert.Equal(t, base, withSelections)
}

func TestApplyStableSortPreservesTies(t *testing.T) {
	sameDay := due(24 * 4)
	items := []model.Solicitation{
		sol("DoD", "first", sameDay),
		sol("NASA", "second", sameDay),
		sol("GSA", "third", sameDay),
	}

	got := Apply(items, solProj, FilterState{}, byDueDateAsc, testNow)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
}

func TestApplyDescendingScoreSort(t *testing.T) {
	matches := []model.Match{
		{MatchID: 1, Score: 55},
		{MatchID: 2, Score: 91},
		{MatchID: 3, Score: 55},
		{MatchID: 4, Score: 12},
	}
	proj := Projection[model.Match]{
		Title:  func(m model.Match) string { return m.Solicitation.Title },
		Agency: func(m model.Match) string { return m.Solicitation.Agency },
		Date:   func(m model.Match) string { return m.Solicitation.DueDate },
	}
	// The inbox default: score descending.
	spec := SortSpec[model.Match]{
		Less:      func(a, b model.Match) bool { return a.Score < b.Score },
		Direction: Descending,
	}

	got := Apply(matches, proj, FilterState{}, spec, testNow)
	require.Len(t, got, 4)
	assert.Equal(t, 2, got[0].MatchID)
	assert.Equal(t, 1, got[1].MatchID) // tie keeps prior relative order
	assert.Equal(t, 3, got[2].MatchID)
	assert.Equal(t, 4, got[3].MatchID)
}

func TestSortDirectionToggle(t *testing.T) {
	assert.Equal(t, Descending, Ascending.Toggle())
	assert.Equal(t, Ascending, Descending.Toggle())
}
