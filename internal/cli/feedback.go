// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// feedback.go - feedback command handler.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/model"
)

// HandleFeedback handles the "feedback" command. The report text comes
// from the arguments, or from stdin when piped.
func HandleFeedback(client *api.Client, args Args) error {
	content := strings.TrimSpace(args.Query)
	if content == "" && !IsTTY() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read feedback from stdin: %w", err)
		}
		content = strings.TrimSpace(string(data))
	}
	if content == "" {
		return NewUsageError("feedback", "feedback text is required",
			`joshua feedback "the inbox sort resets on refresh"`)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fb := model.Feedback{AppName: "joshua-tui", ViewName: "cli", Content: content}
	if err := client.SendFeedback(ctx, fb); err != nil {
		return fmt.Errorf("feedback failed: %w", err)
	}

	if !args.Quiet {
		fmt.Println(okStyle.Render("[OK]") + " feedback sent")
	}
	return nil
}
