// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command implements optimistic remote mutations.
//
// Claim, archive, and dismiss actions update the local view immediately,
// run the portal call in the background, and roll the view back if the
// call fails. The pattern is a three-part command: Apply, Remote,
// Rollback, where Rollback must exactly undo Apply.
package command
