// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the joshua TUI: a Bubble Tea application with one
// root model routing between screens.
//
// Screens are Library (the solicitation table with due-date and agency
// histograms), Inbox (scored matches), Detail, Chat (the streaming JOSHUA
// panel), Login, Profile, and Feedback. The root model owns the portal
// client and the loaded records; screens hold only view state, so a
// refresh or an optimistic update in one screen is visible in all of them.
package ui
