// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jeranaias/joshua-tui/internal/model"
)

// =============================================================================
// CHAT STREAMING
// =============================================================================

// streamDataPrefix marks payload lines in the chat response stream. Lines
// without it (keep-alives, blank separators) are ignored.
const streamDataPrefix = "data: "

// maxStreamLineSize caps a single stream line. A model reply fragment is
// a few hundred bytes; 1MB leaves generous headroom.
const maxStreamLineSize = 1024 * 1024

// StreamError is an in-band error object received on the chat stream. The
// backend sends it in place of a content chunk when generation fails
// mid-reply; any fragments already delivered remain valid.
type StreamError struct {
	Message string
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	return fmt.Sprintf("chat stream error: %s", e.Message)
}

// streamEvent is the wire shape of one "data: " payload. Exactly one field
// is set per event.
type streamEvent struct {
	Content string `json:"content"`
	Error   string `json:"error"`
}

// ChatStream sends the full message log to the chat endpoint and invokes
// onFragment for each content chunk, in arrival order, on the calling
// goroutine. It returns nil when the stream ends cleanly, a *StreamError
// for an in-band error object, and an ordinary error for transport or
// HTTP-level failures.
//
// RELIABILITY: A malformed stream line is logged and skipped rather than
// aborting the exchange; the backend occasionally interleaves diagnostics.
func (c *Client) ChatStream(ctx context.Context, messages []model.Message, onFragment func(string)) error {
	payload, err := json.Marshal(map[string][]model.Message{"messages": messages})
	if err != nil {
		return fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	reader := bufio.NewReaderSize(resp.Body, 64*1024)
	for {
		line, err := readStreamLine(reader)
		if len(line) > 0 {
			if serr := processStreamLine(line, onFragment); serr != nil {
				return serr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// Context cancellation surfaces here as a read error.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("stream read failed: %w", err)
		}
	}
}

// readStreamLine reads one line, tolerating a final line with no trailing
// newline. Oversized lines are truncated rather than failing the stream.
func readStreamLine(reader *bufio.Reader) (string, error) {
	var builder strings.Builder
	for {
		chunk, err := reader.ReadString('\n')
		if builder.Len()+len(chunk) <= maxStreamLineSize {
			builder.WriteString(chunk)
		}
		if err != nil || strings.HasSuffix(chunk, "\n") {
			return strings.TrimRight(builder.String(), "\r\n"), err
		}
	}
}

// processStreamLine decodes one payload line and dispatches it. Returns
// non-nil only for an in-band error event.
func processStreamLine(line string, onFragment func(string)) error {
	if !strings.HasPrefix(line, streamDataPrefix) {
		return nil
	}
	data := strings.TrimSpace(strings.TrimPrefix(line, streamDataPrefix))
	if data == "" {
		return nil
	}

	var event streamEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		log.Printf("chat stream: skipping malformed line: %v", err)
		return nil
	}

	if event.Error != "" {
		return &StreamError{Message: event.Error}
	}
	if event.Content != "" {
		onFragment(event.Content)
	}
	return nil
}
