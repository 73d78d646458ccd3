// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the joshua TUI.
//
// Components are plain view builders: they hold display state, take the
// active theme from the styles registry at render time, and return strings
// for bubbletea views. None of them talk to the portal.
package components
