// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for joshua.
//
// Configuration lives in a single TOML file at ~/.joshua/config.toml with
// built-in defaults and JOSHUA_* environment variable overrides on top.
// Saves are atomic, and a Watcher lets a running TUI pick up edits made
// outside the app.
//
// Precedence, lowest to highest:
//   - Built-in defaults
//   - ~/.joshua/config.toml
//   - JOSHUA_* environment variables
package config
