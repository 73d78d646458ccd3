// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/joshua-tui/internal/model"
)

// streamServer returns a test server that writes the given raw lines as the
// chat response body and captures the request payload.
func streamServer(t *testing.T, lines []string, gotMessages *[]model.Message) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		if gotMessages != nil {
			var payload struct {
				Messages []model.Message `json:"messages"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			*gotMessages = payload.Messages
		}

		flusher := w.(http.Flusher)
		for _, line := range lines {
			w.Write([]byte(line + "\n"))
			flusher.Flush()
		}
	}))
}

func TestChatStreamDeliversFragmentsInOrder(t *testing.T) {
	var gotMessages []model.Message
	srv := streamServer(t, []string{
		`data: {"content":"Hel"}`,
		`data: {"content":"lo"}`,
		`data: {"content":", Professor."}`,
	}, &gotMessages)
	defer srv.Close()

	sent := []model.Message{model.NewUserMessage("Shall we play a game?")}

	var fragments []string
	err := NewClient(srv.URL).ChatStream(context.Background(), sent, func(f string) {
		fragments = append(fragments, f)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo", ", Professor."}, fragments)

	// The full message log rides in the request body.
	require.Len(t, gotMessages, 1)
	assert.Equal(t, model.RoleUser, gotMessages[0].Role)
	assert.Equal(t, "Shall we play a game?", gotMessages[0].Content)
}

func TestChatStreamIgnoresNonDataLines(t *testing.T) {
	srv := streamServer(t, []string{
		``,
		`: keep-alive`,
		`event: message`,
		`data: {"content":"ok"}`,
	}, nil)
	defer srv.Close()

	var fragments []string
	err := NewClient(srv.URL).ChatStream(context.Background(), nil, func(f string) {
		fragments = append(fragments, f)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, fragments)
}

func TestChatStreamSkipsMalformedLine(t *testing.T) {
	srv := streamServer(t, []string{
		`data: {"content":"first"}`,
		`data: {not json`,
		`data: {"content":"second"}`,
	}, nil)
	defer srv.Close()

	var fragments []string
	err := NewClient(srv.URL).ChatStream(context.Background(), nil, func(f string) {
		fragments = append(fragments, f)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, fragments)
}

func TestChatStreamInBandErrorAborts(t *testing.T) {
	srv := streamServer(t, []string{
		`data: {"content":"partial"}`,
		`data: {"error":"model overloaded"}`,
		`data: {"content":"never delivered"}`,
	}, nil)
	defer srv.Close()

	var fragments []string
	err := NewClient(srv.URL).ChatStream(context.Background(), nil, func(f string) {
		fragments = append(fragments, f)
	})

	var serr *StreamError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "model overloaded", serr.Message)
	// Fragments before the error were already delivered; nothing after it.
	assert.Equal(t, []string{"partial"}, fragments)
}

func TestChatStreamHTTPErrorMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"session expired"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).ChatStream(context.Background(), nil, func(string) {
		t.Fatal("no fragments expected")
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestChatStreamFinalLineWithoutNewline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data: {\"content\":\"a\"}\ndata: {\"content\":\"b\"}"))
	}))
	defer srv.Close()

	var fragments []string
	err := NewClient(srv.URL).ChatStream(context.Background(), nil, func(f string) {
		fragments = append(fragments, f)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fragments)
}

func TestChatStreamContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data: {\"content\":\"x\"}\n"))
		w.(http.Flusher).Flush()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	err := NewClient(srv.URL).ChatStream(ctx, nil, func(string) {
		cancel()
	})
	assert.ErrorIs(t, err, context.Canceled)
}
