// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analytics derives dashboard histograms and cross-filtered table
// views from a raw list of portal records.
//
// Everything here is a pure function of (records, filter state, a frozen
// reference time). Records are never mutated: filtering and sorting always
// allocate fresh slices, so re-renders triggered by filter changes cannot
// corrupt the source list.
//
// The engine is generic over record type. Callers supply two projections,
// a due-date accessor and an agency accessor, and the engine never looks at
// any other field.
package analytics
