// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth.go - login and logout command handlers.
//
// SECURITY: Passwords are read with terminal echo disabled and never echoed
// back or logged.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/joshua-tui/internal/api"
)

// authTimeout bounds the login round trip.
const authTimeout = 30 * time.Second

// HandleLogin handles the "login" command. Credentials are prompted
// interactively; the portal session cookie is held by the client for the
// remainder of the process.
func HandleLogin(client *api.Client, args Args) error {
	if !IsTTY() {
		return NewUsageError("login", "requires an interactive terminal", "joshua login")
	}

	fmt.Print(promptStyle.Render("Username: "))
	reader := bufio.NewReader(os.Stdin)
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return NewUsageError("login", "username is required", "joshua login")
	}

	password, err := readPassword(promptStyle.Render("Password: "))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return NewUsageError("login", "password is required", "joshua login")
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	user, err := client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if !args.Quiet {
		fmt.Printf("%s signed in as %s (%s)\n",
			okStyle.Render("[OK]"), user.Username, user.Email)
	}
	return nil
}

// HandleLogout handles the "logout" command.
func HandleLogout(client *api.Client, args Args) error {
	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	if err := client.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	if !args.Quiet {
		fmt.Println(okStyle.Render("[OK]") + " signed out")
	}
	return nil
}
