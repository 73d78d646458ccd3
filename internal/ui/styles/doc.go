// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the joshua TUI.
//
// Three named palettes are built in: light, dark, and forest. The active
// theme is a process-wide registry entry; screens read it through Current()
// on every render, so switching themes repaints everything on the next
// frame with no plumbing through the model tree.
package styles
