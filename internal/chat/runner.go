// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/jeranaias/joshua-tui/internal/model"
)

// Streamer is the transport an exchange runs against. *api.Client
// satisfies it; tests use scripted fakes.
type Streamer interface {
	ChatStream(ctx context.Context, messages []model.Message, onFragment func(string)) error
}

// Run executes one exchange to completion, translating stream progress
// into events on emit. Every fragment is emitted in arrival order, then
// exactly one of Done or Failed. Run blocks until the stream ends; callers
// run it on their own goroutine (a bubbletea command, or inline for the
// REPL) and deliver the events back to Session.Apply.
func Run(ctx context.Context, streamer Streamer, exchange uuid.UUID, payload []model.Message, emit func(Event)) {
	err := streamer.ChatStream(ctx, payload, func(fragment string) {
		emit(Fragment{Exchange: exchange, Text: fragment})
	})
	if err != nil {
		emit(Failed{Exchange: exchange, Err: err})
		return
	}
	emit(Done{Exchange: exchange})
}
