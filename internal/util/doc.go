// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared helper functions for the joshua-tui
// application: display-width-aware string handling for table rendering,
// Unicode case folding for filter matching, and atomic file writes for
// config persistence.
package util
