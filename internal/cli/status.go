// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - status command handler.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/config"
)

// HandleStatus handles the "status" command: portal reachability, auth
// state, and library counts when signed in.
func HandleStatus(client *api.Client, cfg *config.Config, args Args) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Println()
	fmt.Println(headerStyle.Render("joshua status"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 20)))
	fmt.Printf("  %s %s\n", infoStyle.Render("Portal:"), cfg.Server.URL)
	fmt.Printf("  %s %s\n", infoStyle.Render("Theme:"), cfg.UI.Theme)

	user, err := client.Me(ctx)
	switch {
	case err == nil:
		fmt.Printf("  %s %s\n", infoStyle.Render("Session:"),
			okStyle.Render("signed in as "+user.Username))

	case errors.Is(err, api.ErrUnauthorized):
		fmt.Printf("  %s %s\n", infoStyle.Render("Session:"),
			warningStyle.Render("not signed in (run: joshua login)"))
		fmt.Println()
		return nil

	default:
		fmt.Printf("  %s %s\n", infoStyle.Render("Session:"),
			errorStyle.Render("portal unreachable"))
		fmt.Println()
		return fmt.Errorf("portal unreachable: %w", err)
	}

	// Library and inbox counts, best effort once authenticated.
	if sols, err := client.Solicitations(ctx); err == nil {
		archived := 0
		for _, s := range sols {
			if s.Archived {
				archived++
			}
		}
		fmt.Printf("  %s %d (%d archived)\n", infoStyle.Render("Library:"), len(sols), archived)
	}
	if matches, err := client.Matches(ctx); err == nil {
		fmt.Printf("  %s %d matches\n", infoStyle.Render("Inbox:"), len(matches))
	}

	fmt.Println()
	return nil
}
