// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/joshua-tui/internal/model"
)

// testNow is the frozen reference time used by every test pass.
var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

// due returns an ISO-8601 date string the given number of hours after testNow.
func due(hours int) string {
	return testNow.Add(time.Duration(hours) * time.Hour).Format(time.RFC3339)
}

var solProj = Projection[model.Solicitation]{
	Title:  func(s model.Solicitation) string { return s.Title },
	Agency: func(s model.Solicitation) string { return s.Agency },
	Date:   func(s model.Solicitation) string { return s.DueDate },
}

func sol(agency, title, dueDate string) model.Solicitation {
	return model.Solicitation{Agency: agency, Title: title, DueDate: dueDate}
}

// =============================================================================
// DAYS REMAINING / BUCKETS
// =============================================================================

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name string
		date string
		want int
	}{
		{"sentinel", model.SentinelDate, NoDueDate},
		{"empty", "", NoDueDate},
		{"unparseable", "not-a-date", NoDueDate},
		{"due in 3.1 days rounds up to 4", due(74), 4}, // 74h ≈ 3.08d
		{"due in exactly 24h", due(24), 1},
		{"due in one hour", due(1), 1},
		{"due now", due(0), 0},
		{"expired an hour ago", due(-1), 0}, // ceil(-0.04) == 0
		{"expired 36 hours ago", due(-36), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysRemaining(tt.date, testNow))
		})
	}
}

func TestBucketOfBoundaries(t *testing.T) {
	tests := []struct {
		days int
		want Bucket
	}{
		{-100, BucketExpired},
		{-1, BucketExpired},
		{0, Bucket0to7},
		{7, Bucket0to7},
		{8, Bucket8to14},
		{14, Bucket8to14},
		{15, Bucket15to30},
		{30, Bucket15to30},
		{31, BucketOver30},
		{365, BucketOver30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketOf(tt.days), "days=%d", tt.days)
	}
}

// =============================================================================
// TIME HISTOGRAM
// =============================================================================

func TestTimeHistogramFixedShape(t *testing.T) {
	wantNames := []string{"Expired", "0-7 Days", "8-14 Days", "15-30 Days", "30+ Days"}

	// Shape holds even for an empty input.
	entries := TimeHistogram(nil, solProj, "", testNow)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, wantNames[i], e.Name)
		assert.Zero(t, e.Count)
	}

	items := []model.Solicitation{
		sol("DoD", "a", due(24*3)),
		sol("DoD", "b", due(24*10)),
		sol("NASA", "c", model.SentinelDate),
	}
	entries = TimeHistogram(items, solProj, "", testNow)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, wantNames[i], e.Name)
	}
}

func TestTimeHistogramSkipsSentinel(t *testing.T) {
	// The worked scenario: DoD +3d, DoD +10d, NASA sentinel.
	items := []model.Solicitation{
		sol("DoD", "a", due(24*3)),
		sol("DoD", "b", due(24*10)),
		sol("NASA", "c", model.SentinelDate),
	}

	entries := TimeHistogram(items, solProj, "", testNow)
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Name] = e.Count
	}

	assert.Equal(t, 0, counts["Expired"], "sentinel is not Expired")
	assert.Equal(t, 1, counts["0-7 Days"])
	assert.Equal(t, 1, counts["8-14 Days"])
	assert.Equal(t, 0, counts["15-30 Days"])
	assert.Equal(t, 0, counts["30+ Days"])
}

func TestTimeHistogramAgencyRestriction(t *testing.T) {
	items := []model.Solicitation{
		sol("DoD", "a", due(24*3)),
		sol("DoD", "b", due(24*20)),
		sol("NASA", "c", due(24*3)),
		sol("NASA", "d", model.SentinelDate),
	}

	entries := TimeHistogram(items, solProj, "NASA", testNow)

	// Must equal manually filtering to NASA and bucketing.
	var manual []model.Solicitation
	for _, it := range items {
		if it.Agency == "NASA" {
			manual = append(manual, it)
		}
	}
	want := TimeHistogram(manual, solProj, "", testNow)
	assert.Equal(t, want, entries)

	total := 0
	for _, e := range entries {
		total += e.Count
	}
	assert.Equal(t, 1, total, "one NASA record has a real due date")
}

// Conservation: bucketed counts plus skipped sentinel records account for
// every record matching the agency filter.
func TestTimeHistogramConservation(t *testing.T) {
	items := []model.Solicitation{
		sol("DoD", "a", due(-24*5)),
		sol("DoD", "b", due(24*2)),
		sol("DoD", "c", model.SentinelDate),
		sol("NASA", "d", due(24*40)),
		sol("GSA", "e", model.SentinelDate),
	}

	for _, agency := range []string{"", "DoD", "NASA", "GSA"} {
		entries := TimeHistogram(items, solProj, agency, testNow)
		sum := 0
		for _, e := range entries {
			sum += e.Count
		}

		matching, sentinels := 0, 0
		for _, it := range items {
			if agency != "" && it.Agency != agency {
				continue
			}
			matching++
			if !it.HasDueDate() {
				sentinels++
			}
		}
		assert.Equal(t, matching, sum+sentinels, "agency=%q", agency)
	}
}

// =============================================================================
// AGENCY HISTOGRAM
// =============================================================================

func TestAgencyHistogramUnfilteredCountsAllDueDateStates(t *testing.T) {
	items := []model.Solicitation{
		sol("DoD", "a", due(24*3)),
		sol("DoD", "b", due(24*10)),
		sol("NASA", "c", model.SentinelDate),
	}

	entries := AgencyHistogram(items, solProj, "", testNow)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "DoD", Count: 2}, entries[0])
	assert.Equal(t, Entry{Name: "NASA", Count: 1}, entries[1])
}

func TestAgencyHistogramTopFiveDescending(t *testing.T) {
	var items []model.Solicitation
	agencies := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, a := range agencies {
		for j := 0; j <= i; j++ { // A:1, B:2, ... G:7
			items = append(items, sol(a, "x", due(24)))
		}
	}

	entries := AgencyHistogram(items, solProj, "", testNow)
	require.Len(t, entries, MaxAgencyEntries)
	assert.Equal(t, "G", entries[0].Name)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Count, entries[i].Count)
	}
}

func TestAgencyHistogramTiesFirstSeen(t *testing.T) {
	items := []model.Solicitation{
		sol("NASA", "a", due(24)),
		sol("DoD", "b", due(24)),
		sol("GSA", "c", due(24)),
	}

	entries := AgencyHistogram(items, solProj, "", testNow)
	require.Len(t, entries, 3)
	assert.Equal(t, "NASA", entries[0].Name)
	assert.Equal(t, "DoD", entries[1].Name)
	assert.Equal(t, "GSA", entries[2].Name)
}

func TestAgencyHistogramDateBucketRestriction(t *testing.T) {
	items := []model.Solicitation{
		sol("DoD", "a", due(24*3)),   // 0-7 Days
		sol("DoD", "b", due(24*20)),  // 15-30 Days
		sol("NASA", "c", due(24*5)),  // 0-7 Days
		sol("GSA", "d", model.SentinelDate),
	}

	entries := AgencyHistogram(items, solProj, Bucket0to7, testNow)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "DoD", Count: 1}, entries[0])
	assert.Equal(t, Entry{Name: "NASA", Count: 1}, entries[1])
}

func TestAgencyHistogramSentinelMatchesNoBucket(t *testing.T) {
	items := []model.Solicitation{
		sol("GSA", "d", model.SentinelDate),
		sol("DoD", "a", due(-24*30)),
	}

	// Even under the Expired selection, sentinel records stay excluded.
	entries := AgencyHistogram(items, solProj, BucketExpired, testNow)
	require.Len(t, entries, 1)
	assert.Equal(t, "DoD", entries[0].Name)
}

func TestAgencyHistogramEmptyInput(t *testing.T) {
	assert.Empty(t, AgencyHistogram(nil, solProj, "", testNow))
}
