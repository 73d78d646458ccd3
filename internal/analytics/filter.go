// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analytics

import (
	"sort"
	"time"

	"github.com/jeranaias/joshua-tui/internal/util"
)

// =============================================================================
// FILTER STATE
// =============================================================================

// FilterState is the current cross-filter selection for a record list.
// Zero values mean "not set". The text filter is always applied first and
// is never itself affected by the bucket or agency selections; the two
// selections are independent and individually clearable.
type FilterState struct {
	Text   string
	Bucket Bucket
	Agency string
}

// IsZero reports whether no filter is active.
func (f FilterState) IsZero() bool {
	return f.Text == "" && f.Bucket == "" && f.Agency == ""
}

// ClearSelections drops the bucket and agency selections, keeping the text.
func (f FilterState) ClearSelections() FilterState {
	f.Bucket = ""
	f.Agency = ""
	return f
}

// =============================================================================
// SORTING
// =============================================================================

// SortDirection orders a sorted view ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// Toggle flips the direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortSpec is the per-screen sort configuration: an ascending comparison
// plus a direction. Each screen declares its own default explicitly
// (due date ascending for the library, score descending for the inbox)
// rather than inferring it from field presence.
type SortSpec[T any] struct {
	Less      func(a, b T) bool
	Direction SortDirection
}

// =============================================================================
// FILTER PIPELINE
// =============================================================================

// TextMatch reports whether a record matches the text filter: a Unicode
// case-folded substring match against the title and agency projections.
func TextMatch[T any](item T, proj Projection[T], text string) bool {
	if text == "" {
		return true
	}
	return util.ContainsFold(proj.Title(item), text) ||
		util.ContainsFold(proj.Agency(item), text)
}

// FilterText applies only the text filter. The result is the shared base
// for both histograms and the table view.
func FilterText[T any](items []T, proj Projection[T], text string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if TextMatch(item, proj, text) {
			out = append(out, item)
		}
	}
	return out
}

// Apply runs the full display pipeline over a base list:
//
//  1. text filter (always first, unaffected by the selections)
//  2. date-bucket filter (sentinel-dated records match no bucket)
//  3. agency exact-match filter
//  4. stable sort by the given spec, ties keeping prior relative order
//
// The input is never mutated; the returned slice is freshly allocated.
// With a zero FilterState the result is the default-sorted input, so
// clearing all filters reproduces the unfiltered view exactly.
func Apply[T any](items []T, proj Projection[T], fs FilterState, spec SortSpec[T], now time.Time) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !TextMatch(item, proj, fs.Text) {
			continue
		}
		if fs.Bucket != "" && !bucketMatches(proj.Date(item), fs.Bucket, now) {
			continue
		}
		if fs.Agency != "" && proj.Agency(item) != fs.Agency {
			continue
		}
		out = append(out, item)
	}

	if spec.Less != nil {
		less := spec.Less
		if spec.Direction == Descending {
			asc := less
			less = func(a, b T) bool { return asc(b, a) }
		}
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}
