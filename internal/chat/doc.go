// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the streaming chat exchange state machine.
//
// A Session owns the conversation log and enforces the single-exchange
// rule: one request/stream/response cycle is in flight at a time, and
// submits while busy are rejected. Stream progress arrives as Events keyed
// by an exchange ID so late events from an abandoned exchange cannot
// corrupt the log.
//
// The package is UI-free. The TUI chat screen and the REPL both drive the
// same Session; only the event delivery differs (bubbletea messages versus
// a synchronous callback).
package chat
