// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/joshua-tui/internal/model"
)

func TestSubmitAppendsUserMessageAndPlaceholder(t *testing.T) {
	s := NewSession()

	exchange, payload, ok := s.Submit("  Shall we play a game?  ")
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, exchange)
	assert.Equal(t, StateSending, s.State())
	assert.True(t, s.Busy())

	// The wire payload holds the full log including the new user message,
	// but not the local placeholder.
	require.Len(t, payload, 1)
	assert.Equal(t, model.RoleUser, payload[0].Role)
	assert.Equal(t, "Shall we play a game?", payload[0].Content)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.True(t, msgs[1].IsEmpty())
}

func TestSubmitRejectsEmptyAndWhitespace(t *testing.T) {
	s := NewSession()

	for _, input := range []string{"", "   ", "\n\t"} {
		_, _, ok := s.Submit(input)
		assert.False(t, ok, "input %q", input)
	}
	assert.Zero(t, s.Len())
	assert.Equal(t, StateIdle, s.State())
}

func TestSubmitWhileBusyIsNoOp(t *testing.T) {
	s := NewSession()
	_, _, ok := s.Submit("first")
	require.True(t, ok)

	_, _, ok = s.Submit("second")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len(), "log unchanged by rejected submit")
}

func TestFragmentsAccumulateIntoPlaceholder(t *testing.T) {
	s := NewSession()
	exchange, _, _ := s.Submit("hello")

	s.Apply(Fragment{Exchange: exchange, Text: "Hel"})
	assert.Equal(t, StateStreaming, s.State())
	s.Apply(Fragment{Exchange: exchange, Text: "lo"})
	s.Apply(Done{Exchange: exchange})

	assert.Equal(t, StateCompleted, s.State())
	assert.False(t, s.Busy())

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Hello", msgs[1].Content)
}

func TestFailureReplacesEmptyPlaceholder(t *testing.T) {
	s := NewSession()
	exchange, _, _ := s.Submit("hello")

	s.Apply(Failed{Exchange: exchange, Err: errors.New("connection refused")})

	assert.Equal(t, StateFailed, s.State())
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, ConnectionFailureMessage, msgs[1].Content)
	assert.EqualError(t, s.Err(), "connection refused")
}

func TestFailureAfterPartialReplyAppendsTerminalMessage(t *testing.T) {
	s := NewSession()
	exchange, _, _ := s.Submit("hello")

	s.Apply(Fragment{Exchange: exchange, Text: "partial answer"})
	s.Apply(Failed{Exchange: exchange, Err: errors.New("stream cut")})

	msgs := s.Messages()
	require.Len(t, msgs, 3, "partial reply is kept, terminal message appended")
	assert.Equal(t, "partial answer", msgs[1].Content)
	assert.Equal(t, ConnectionFailureMessage, msgs[2].Content)
}

func TestStaleEventsIgnored(t *testing.T) {
	s := NewSession()
	exchange, _, _ := s.Submit("hello")
	s.Apply(Done{Exchange: exchange})

	stale := uuid.New()
	s.Apply(Fragment{Exchange: stale, Text: "ghost"})
	s.Apply(Failed{Exchange: stale, Err: errors.New("ghost")})

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].IsEmpty(), "stale fragment must not land")
	assert.Equal(t, StateCompleted, s.State())
}

func TestFragmentWithWrongExchangeIgnoredWhileBusy(t *testing.T) {
	s := NewSession()
	_, _, ok := s.Submit("hello")
	require.True(t, ok)

	s.Apply(Fragment{Exchange: uuid.New(), Text: "imposter"})

	msgs := s.Messages()
	assert.True(t, msgs[1].IsEmpty())
	assert.Equal(t, StateSending, s.State())
}

func TestSubmitAfterCompletionSendsGrownLog(t *testing.T) {
	s := NewSession()
	ex1, _, _ := s.Submit("first question")
	s.Apply(Fragment{Exchange: ex1, Text: "first answer"})
	s.Apply(Done{Exchange: ex1})

	_, payload, ok := s.Submit("second question")
	require.True(t, ok)

	// Payload carries the whole history: user, assistant, user.
	require.Len(t, payload, 3)
	assert.Equal(t, "first question", payload[0].Content)
	assert.Equal(t, "first answer", payload[1].Content)
	assert.Equal(t, "second question", payload[2].Content)
}

func TestClearOnlyWhenNotBusy(t *testing.T) {
	s := NewSession()
	ex, _, _ := s.Submit("hello")

	s.Clear()
	assert.Equal(t, 2, s.Len(), "clear is a no-op while busy")

	s.Apply(Done{Exchange: ex})
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Equal(t, StateIdle, s.State())
}

// =============================================================================
// RUNNER
// =============================================================================

// scriptedStreamer replays fragments and a final error.
type scriptedStreamer struct {
	fragments []string
	err       error
}

func (f *scriptedStreamer) ChatStream(_ context.Context, _ []model.Message, onFragment func(string)) error {
	for _, frag := range f.fragments {
		onFragment(frag)
	}
	return f.err
}

func TestRunEmitsFragmentsThenDone(t *testing.T) {
	s := NewSession()
	exchange, payload, _ := s.Submit("hello")

	streamer := &scriptedStreamer{fragments: []string{"Hel", "lo"}}
	Run(context.Background(), streamer, exchange, payload, s.Apply)

	assert.Equal(t, StateCompleted, s.State())
	msgs := s.Messages()
	assert.Equal(t, "Hello", msgs[1].Content)
}

func TestRunEmitsFailedOnStreamError(t *testing.T) {
	s := NewSession()
	exchange, payload, _ := s.Submit("hello")

	streamer := &scriptedStreamer{err: errors.New("boom")}
	Run(context.Background(), streamer, exchange, payload, s.Apply)

	assert.Equal(t, StateFailed, s.State())
	msgs := s.Messages()
	assert.Equal(t, ConnectionFailureMessage, msgs[1].Content)
}
