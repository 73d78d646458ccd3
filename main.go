// joshua - a terminal client for the BD solicitation portal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/cli"
	"github.com/jeranaias/joshua-tui/internal/config"
	"github.com/jeranaias/joshua-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitConfigError)
	}
	if args.Server != "" {
		cfg.Server.URL = args.Server
	}

	client := api.NewClient(cfg.Server.URL)
	client.SetTimeout(time.Duration(cfg.Server.TimeoutSecs) * time.Second)

	switch cmd {
	case cli.CmdTUI:
		runTUI(client, cfg)

	case cli.CmdChat:
		exitOnError(cli.HandleChat(client, cfg, args))

	case cli.CmdLogin:
		exitOnError(cli.HandleLogin(client, args))

	case cli.CmdLogout:
		exitOnError(cli.HandleLogout(client, args))

	case cli.CmdStatus:
		exitOnError(cli.HandleStatus(client, cfg, args))

	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))

	case cli.CmdFeedback:
		exitOnError(cli.HandleFeedback(client, args))

	case cli.CmdVersion:
		cli.HandleVersion()

	case cli.CmdHelp:
		cli.HandleHelp(args)
	}
}

// exitOnError prints a CLI error and exits with its mapped code.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(cli.GetExitCode(err))
}

// runTUI starts the full-screen interface with config hot reload.
func runTUI(client *api.Client, cfg *config.Config) {
	// The TUI owns the terminal; route stray log output to a file so it
	// cannot corrupt the display.
	if f, err := logFile(); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Config watcher is best effort: without it the TUI still runs, it
	// just stops picking up edits made outside the app.
	var updates <-chan *config.Config
	if path, err := config.ConfigPath(); err == nil {
		if watcher, err := config.NewWatcher(path); err == nil {
			defer watcher.Close()
			updates = watcher.Watch(ctx)
		}
	}

	app := ui.NewApp(client, cfg, updates)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}

// logFile opens ~/.joshua/joshua.log for append.
func logFile() (*os.File, error) {
	if err := config.EnsureConfigDir(); err != nil {
		return nil, err
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	return os.OpenFile(dir+"/joshua.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}
