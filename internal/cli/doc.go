// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses joshua's command line and implements the non-TUI
// commands: login, logout, chat, status, config, feedback, and version.
// Running joshua with no command starts the TUI.
package cli
