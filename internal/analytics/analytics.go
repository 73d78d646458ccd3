// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analytics

import (
	"math"
	"time"

	"github.com/jeranaias/joshua-tui/internal/model"
)

// =============================================================================
// DUE-DATE BUCKETS
// =============================================================================

// Bucket is one of the five fixed due-date urgency categories.
type Bucket string

const (
	BucketExpired Bucket = "Expired"
	Bucket0to7    Bucket = "0-7 Days"
	Bucket8to14   Bucket = "8-14 Days"
	Bucket15to30  Bucket = "15-30 Days"
	BucketOver30  Bucket = "30+ Days"
)

// Buckets lists every bucket in display order. The time histogram always
// emits exactly these five entries, zero counts included.
var Buckets = [5]Bucket{BucketExpired, Bucket0to7, Bucket8to14, Bucket15to30, BucketOver30}

// NoDueDate is the value DaysRemaining returns for the portal's sentinel
// zero-date. It must never be passed to BucketOf: sentinel records are
// excluded from bucketing entirely, they are not "Expired".
const NoDueDate = -999

// DaysRemaining returns the number of calendar days between now and the
// given ISO-8601 due date, rounded toward later (ceiling): a record due in
// 3.1 days counts as 4 days remaining.
//
// The reference time is passed in rather than sampled so that every item in
// one computation pass shares an identical now. Sentinel and unparseable
// dates return NoDueDate.
func DaysRemaining(date string, now time.Time) int {
	if date == model.SentinelDate || date == "" {
		return NoDueDate
	}
	due, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return NoDueDate
	}
	diff := due.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// BucketOf maps a real days-remaining value onto its bucket. Callers must
// filter out NoDueDate before calling; it is not a valid input.
func BucketOf(days int) Bucket {
	switch {
	case days < 0:
		return BucketExpired
	case days <= 7:
		return Bucket0to7
	case days <= 14:
		return Bucket8to14
	case days <= 30:
		return Bucket15to30
	default:
		return BucketOver30
	}
}

// bucketMatches reports whether a record's due date falls in the given
// bucket. Sentinel records match no bucket.
func bucketMatches(date string, bucket Bucket, now time.Time) bool {
	days := DaysRemaining(date, now)
	if days == NoDueDate {
		return false
	}
	return BucketOf(days) == bucket
}

// =============================================================================
// HISTOGRAMS
// =============================================================================

// Entry is a single named count in a histogram.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Projection supplies the field accessors the engine needs. The engine
// inspects nothing else about the record type.
type Projection[T any] struct {
	// Title is used by the text filter (matched together with Agency).
	Title func(T) string
	// Agency returns the exact agency string.
	Agency func(T) string
	// Date returns the ISO-8601 due date or the sentinel.
	Date func(T) string
}

// MaxAgencyEntries caps the agency histogram at the top N agencies.
const MaxAgencyEntries = 5

// TimeHistogram buckets records into the five fixed due-date categories.
//
// Cross-filtering: when agencyFilter is non-empty the source list is first
// restricted to that agency. Records with the sentinel date are skipped,
// neither counted nor an error. The result always has exactly five entries
// in fixed order regardless of which buckets are empty.
func TimeHistogram[T any](items []T, proj Projection[T], agencyFilter string, now time.Time) []Entry {
	counts := make(map[Bucket]int, len(Buckets))

	for _, item := range items {
		if agencyFilter != "" && proj.Agency(item) != agencyFilter {
			continue
		}
		days := DaysRemaining(proj.Date(item), now)
		if days == NoDueDate {
			continue
		}
		counts[BucketOf(days)]++
	}

	out := make([]Entry, 0, len(Buckets))
	for _, b := range Buckets {
		out = append(out, Entry{Name: string(b), Count: counts[b]})
	}
	return out
}

// AgencyHistogram counts records per agency and returns the top five,
// sorted by descending count with ties resolved by first-seen order in the
// (filtered) input.
//
// Cross-filtering: when dateFilter is non-empty the source list is first
// restricted to records whose due date falls in that bucket; sentinel-dated
// records match no bucket. With no date filter, records are counted
// regardless of due-date state.
func AgencyHistogram[T any](items []T, proj Projection[T], dateFilter Bucket, now time.Time) []Entry {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, item := range items {
		if dateFilter != "" && !bucketMatches(proj.Date(item), dateFilter, now) {
			continue
		}
		agency := proj.Agency(item)
		if _, seen := counts[agency]; !seen {
			order = append(order, agency)
		}
		counts[agency]++
	}

	// Entries start in first-seen order; the stable sort preserves that
	// order among equal counts.
	entries := make([]Entry, 0, len(order))
	for _, agency := range order {
		entries = append(entries, Entry{Name: agency, Count: counts[agency]})
	}
	stableSortByCountDesc(entries)

	if len(entries) > MaxAgencyEntries {
		entries = entries[:MaxAgencyEntries]
	}
	return entries
}

// stableSortByCountDesc sorts entries by descending count, keeping the
// relative order of equal counts (insertion sort; the list is tiny).
func stableSortByCountDesc(entries []Entry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Count > entries[j-1].Count; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}
