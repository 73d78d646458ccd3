// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the BD_Bot
// portal API and the in-memory chat conversation log.
//
// Records (solicitations, matches, tasks, ...) are plain JSON mirrors of
// the portal contract. They are fetched fresh per screen and held only in
// transient view state; nothing in this package is persisted locally.
package model
